// Package aperture sums pixel flux inside a circular aperture and converts
// it to a calibrated magnitude with propagated uncertainty.
//
// For N aperture pixels with raw sum S, background level b and scatter s
// (see package sky), gain g and zero point zp:
//
//	flux     = S - b*N                     (when subtracting sky)
//	fluxErr  = sqrt(max(flux,0)/g + N*s^2)
//	mag      = zp - 2.5*log10(flux)
//	magErr   = sqrt((1.0857*fluxErr/flux)^2 + zpErr^2)
//
// A non-positive flux has no defined magnitude; Mag and MagErr are then NaN
// and the measurement carries ErrUndefinedMag. Flux and FluxErr stay valid
// in that case: a negative sky-subtracted sum is a real measurement, only
// the logarithm is undefined.
//
// Measure is a pure function of its inputs and never modifies the pixel
// slice.
package aperture
