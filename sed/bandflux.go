package sed

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-astro/phot/core"
)

// Errors returned by band integration.
var (
	ErrNoOverlap    = errors.New("sed: filter does not overlap the redshifted spectrum")
	ErrZeroIntegral = errors.New("sed: band integral is not positive")
)

// BandFlux integrates the spectrum flux against the filter transmission
// trans at redshift z. Both columns are sampled on grid. The spectrum's
// wavelength axis is stretched by (1+z), brought back onto the grid, and
// multiplied by the transmission before trapezoid integration.
//
// ErrNoOverlap is reported when the filter's support lies entirely outside
// the stretched spectrum's native range, where only clamped edge values
// would be integrated.
func BandFlux(grid Grid, flux, trans []float64, z float64) (float64, error) {
	if err := grid.Validate(); err != nil {
		return 0, err
	}

	if len(flux) != len(grid) || len(trans) != len(grid) {
		return 0, fmt.Errorf("%w: flux %d, trans %d on %d grid points",
			ErrLengthMismatch, len(flux), len(trans), len(grid))
	}

	shifted, err := Redshift(grid, z)
	if err != nil {
		return 0, err
	}

	if err := checkOverlap(grid, trans, shifted[0], shifted[len(shifted)-1]); err != nil {
		return 0, err
	}

	atZ := flux
	if z != 0 {
		atZ, err = Resample(grid, shifted, flux)
		if err != nil {
			return 0, err
		}
	}

	integrand := make([]float64, len(grid))
	vecmath.MulBlock(integrand, atZ, trans)

	return Trapezoid(grid, integrand)
}

// BandMag returns the calibrated magnitude of the band flux at redshift z:
// zeroPoint - 2.5*log10(F). A non-positive integral yields ErrZeroIntegral
// rather than an undefined logarithm.
func BandMag(grid Grid, flux, trans []float64, z, zeroPoint float64) (float64, error) {
	f, err := BandFlux(grid, flux, trans, z)
	if err != nil {
		return 0, err
	}

	if f <= 0 {
		return 0, fmt.Errorf("%w: %g at z=%g", ErrZeroIntegral, f, z)
	}

	return core.MagFromFlux(f, zeroPoint), nil
}

// checkOverlap verifies that some filter support falls inside the shifted
// spectrum range [lo, hi].
func checkOverlap(grid Grid, trans []float64, lo, hi float64) error {
	for i, t := range trans {
		if t > 0 && grid[i] >= lo && grid[i] <= hi {
			return nil
		}
	}

	return ErrNoOverlap
}
