// Package sed synthesizes photometry from spectra: it resamples spectral
// energy distributions and filter transmission curves onto one shared
// wavelength grid, redshifts spectra, and integrates band fluxes.
//
// All tables live on a [Grid], a strictly ascending wavelength axis.
// [Resample] evaluates an arbitrary (wavelength, value) table at every grid
// point by linear interpolation; outside the table's native range the edge
// value is held constant. That clamp is the documented extrapolation
// policy: filters are zero-padded by construction, and spectra keep their
// boundary flux rather than inventing structure.
//
// A band flux at redshift z integrates the stretched spectrum against a
// filter curve:
//
//	F(z) = integral S((1+z)-shifted lambda) * T(lambda) dlambda
//	mag  = zp - 2.5*log10(F)
//
// The wavelength axis is stretched by (1+z) with flux values unchanged;
// distance dimming is a calibration concern handled by the zero point.
// Filters that never overlap the shifted spectrum report [ErrNoOverlap],
// and non-positive integrals report [ErrZeroIntegral] instead of feeding
// the logarithm.
//
// # Usage
//
//	grid, _ := sed.NewGrid(3000, 11000, 2)
//	flux, _ := sed.Resample(grid, wave, values)
//	trans, _ := sed.Resample(grid, fwave, fvalues)
//	f, err := sed.BandFlux(grid, flux, trans, 0.5)
//	mag, err := sed.BandMag(grid, flux, trans, 0.5, 30.0)
package sed
