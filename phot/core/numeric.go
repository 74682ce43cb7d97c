package core

import "math"

const defaultEpsilon = 1e-12

// magErrFactor is the first-order magnitude error coefficient 2.5/ln(10),
// kept at the conventional truncated value used in photometric catalogs.
const magErrFactor = 1.0857

// MagFromFlux converts a summed flux to a calibrated magnitude:
// mag = zeroPoint - 2.5*log10(flux).
// Returns NaN for non-positive flux, the undefined-magnitude sentinel.
func MagFromFlux(flux, zeroPoint float64) float64 {
	if flux <= 0 {
		return math.NaN()
	}

	return zeroPoint - 2.5*math.Log10(flux)
}

// FluxFromMag inverts MagFromFlux: flux = 10^((zeroPoint-mag)/2.5).
func FluxFromMag(mag, zeroPoint float64) float64 {
	return math.Pow(10, (zeroPoint-mag)/2.5)
}

// MagErrFromFlux propagates a flux uncertainty to a magnitude uncertainty:
// magErr = 1.0857 * fluxErr / flux.
// Returns NaN for non-positive flux.
func MagErrFromFlux(flux, fluxErr float64) float64 {
	if flux <= 0 {
		return math.NaN()
	}

	return magErrFactor * fluxErr / flux
}

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampInt limits value to the inclusive range [min, max].
func ClampInt(value, min, max int) int {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps, comparing
// absolutely for small values and relatively for large ones.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}
