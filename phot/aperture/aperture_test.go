package aperture

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-astro/phot/sky"
)

const tolerance = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func flat(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func TestMeasureRawSum(t *testing.T) {
	pixels := []float64{1, 2, 3, 4}

	m, err := Measure(pixels, sky.Background{}, Options{ZeroPoint: 25})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if !almostEqual(m.RawFlux, 10, tolerance) {
		t.Errorf("RawFlux = %g, want 10", m.RawFlux)
	}
	if !almostEqual(m.Flux, 10, tolerance) {
		t.Errorf("Flux = %g, want 10 (no subtraction)", m.Flux)
	}
	if m.Area != 4 {
		t.Errorf("Area = %d, want 4", m.Area)
	}
}

func TestMeasureSkySubtraction(t *testing.T) {
	// 29 pixels of background 100 plus one pixel carrying 1000 extra.
	pixels := flat(100, 29)
	pixels[14] += 1000
	bg := sky.Background{Level: 100, Scatter: 0}

	m, err := Measure(pixels, bg, Options{SubtractSky: true, Gain: 1, ZeroPoint: 30})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if !almostEqual(m.Flux, 1000, 1e-9) {
		t.Errorf("Flux = %g, want 1000", m.Flux)
	}

	wantErr := math.Sqrt(1000) // pure Poisson term, zero sky scatter
	if !almostEqual(m.FluxErr, wantErr, 1e-9) {
		t.Errorf("FluxErr = %g, want %g", m.FluxErr, wantErr)
	}

	wantMag := 30 - 2.5*math.Log10(1000)
	if !almostEqual(m.Mag, wantMag, 1e-9) {
		t.Errorf("Mag = %g, want %g", m.Mag, wantMag)
	}
}

func TestMeasureErrorPropagation(t *testing.T) {
	pixels := flat(10, 25)
	bg := sky.Background{Level: 4, Scatter: 2}

	m, err := Measure(pixels, bg, Options{SubtractSky: true, Gain: 2, ZeroPoint: 25})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	flux := 250.0 - 4*25 // 150
	if !almostEqual(m.Flux, flux, tolerance) {
		t.Fatalf("Flux = %g, want %g", m.Flux, flux)
	}

	wantVar := flux/2 + 25*4 // Poisson + N*scatter^2
	if !almostEqual(m.FluxErr, math.Sqrt(wantVar), tolerance) {
		t.Errorf("FluxErr = %g, want %g", m.FluxErr, math.Sqrt(wantVar))
	}

	wantMagErr := 1.0857 * m.FluxErr / flux
	if !almostEqual(m.MagErr, wantMagErr, tolerance) {
		t.Errorf("MagErr = %g, want %g", m.MagErr, wantMagErr)
	}
}

func TestMeasureZeroPointError(t *testing.T) {
	pixels := flat(100, 10)

	m, err := Measure(pixels, sky.Background{}, Options{Gain: 1, ZeroPoint: 25, ZeroPointErr: 0.05})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	base := 1.0857 * m.FluxErr / m.Flux
	want := math.Sqrt(base*base + 0.05*0.05)
	if !almostEqual(m.MagErr, want, tolerance) {
		t.Errorf("MagErr = %g, want %g (quadrature with zp error)", m.MagErr, want)
	}
}

func TestMeasureGainDisabled(t *testing.T) {
	pixels := flat(10, 4)
	bg := sky.Background{Level: 0, Scatter: 3}

	m, err := Measure(pixels, bg, Options{SubtractSky: true, ZeroPoint: 25})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	want := math.Sqrt(4 * 9.0) // only the sky-scatter term
	if !almostEqual(m.FluxErr, want, tolerance) {
		t.Errorf("FluxErr = %g, want %g", m.FluxErr, want)
	}
}

func TestMeasureUndefinedMagnitude(t *testing.T) {
	// Background higher than the pixel values drives the flux negative.
	pixels := flat(10, 9)
	bg := sky.Background{Level: 50, Scatter: 1}

	m, err := Measure(pixels, bg, Options{SubtractSky: true, Gain: 1, ZeroPoint: 25})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if m.Flux >= 0 {
		t.Fatalf("Flux = %g, want negative", m.Flux)
	}
	if !math.IsNaN(m.Mag) || !math.IsNaN(m.MagErr) {
		t.Errorf("Mag, MagErr = %g, %g; want NaN, NaN", m.Mag, m.MagErr)
	}
	if m.Defined() {
		t.Error("Defined() = true for non-positive flux")
	}
	if !errors.Is(m.Err(), ErrUndefinedMag) {
		t.Errorf("Err() = %v, want ErrUndefinedMag", m.Err())
	}

	// The flux error is still meaningful: sqrt(N * scatter^2).
	if !almostEqual(m.FluxErr, 3, tolerance) {
		t.Errorf("FluxErr = %g, want 3", m.FluxErr)
	}
}

func TestMeasureNoPixels(t *testing.T) {
	if _, err := Measure(nil, sky.Background{}, Options{}); !errors.Is(err, ErrNoPixels) {
		t.Errorf("err = %v, want ErrNoPixels", err)
	}
}

func TestMeasurePure(t *testing.T) {
	pixels := []float64{5, 6, 7}
	orig := append([]float64(nil), pixels...)

	if _, err := Measure(pixels, sky.Background{Level: 1}, Options{SubtractSky: true}); err != nil {
		t.Fatalf("Measure: %v", err)
	}
	for i := range orig {
		if pixels[i] != orig[i] {
			t.Fatalf("pixel %d modified: %g != %g", i, pixels[i], orig[i])
		}
	}
}
