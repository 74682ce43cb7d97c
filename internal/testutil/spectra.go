package testutil

import (
	"math"
	"math/rand"
)

// Linspace generates n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// FlatSpectrum generates a constant-valued spectrum.
func FlatSpectrum(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// TopHat samples a box transmission curve on the given wavelengths:
// 1 inside [lo, hi], 0 outside.
func TopHat(wave []float64, lo, hi float64) []float64 {
	out := make([]float64, len(wave))
	for i, w := range wave {
		if w >= lo && w <= hi {
			out[i] = 1
		}
	}
	return out
}

// EmissionLine samples a Gaussian line profile with the given center,
// width and peak on the given wavelengths.
func EmissionLine(wave []float64, center, sigma, peak float64) []float64 {
	out := make([]float64, len(wave))
	for i, w := range wave {
		d := (w - center) / sigma
		out[i] = peak * math.Exp(-0.5*d*d)
	}
	return out
}

// DeterministicNoise generates flux scatter with a fixed seed for
// reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}
