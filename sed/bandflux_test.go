package sed

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-astro/internal/testutil"
)

func rampSpectrum(g Grid) []float64 {
	flux := make([]float64, len(g))
	for i, w := range g {
		flux[i] = 1 + (w-g.Min())/(g.Max()-g.Min())
	}
	return flux
}

func TestBandFluxRedshiftZero(t *testing.T) {
	// At z=0 the band flux is the plain product integral, bit for bit.
	g, _ := NewGrid(4000, 8000, 10)
	flux := rampSpectrum(g)
	trans := testutil.TopHat(g, 5000, 6000)

	got, err := BandFlux(g, flux, trans, 0)
	if err != nil {
		t.Fatalf("BandFlux: %v", err)
	}

	prod := make([]float64, len(g))
	vecmath.MulBlock(prod, flux, trans)
	want, err := Trapezoid(g, prod)
	if err != nil {
		t.Fatalf("Trapezoid: %v", err)
	}
	if got != want {
		t.Errorf("BandFlux(z=0) = %g, want exact %g", got, want)
	}
}

func TestBandFluxConstant(t *testing.T) {
	// Unit spectrum through a unit top hat integrates to the hat width.
	g, _ := NewGrid(4000, 8000, 1)
	flux := testutil.FlatSpectrum(1, len(g))
	trans := testutil.TopHat(g, 5000, 6000)

	got, err := BandFlux(g, flux, trans, 0)
	if err != nil {
		t.Fatalf("BandFlux: %v", err)
	}
	// The trapezoid rule tapers over the half-open edge samples.
	if !almostEqual(got, 1000, 1.5) {
		t.Errorf("band flux = %g, want ~1000", got)
	}
}

func TestBandFluxRedshiftMovesBand(t *testing.T) {
	// A line at 5000 drops out of a 4900..5100 hat once redshifted away.
	g, _ := NewGrid(4000, 8000, 5)
	flux := testutil.EmissionLine(g, 5000, 50, 1)
	trans := testutil.TopHat(g, 4900, 5100)

	atRest, err := BandFlux(g, flux, trans, 0)
	if err != nil {
		t.Fatalf("BandFlux(0): %v", err)
	}
	shifted, err := BandFlux(g, flux, trans, 0.2)
	if err != nil {
		t.Fatalf("BandFlux(0.2): %v", err)
	}
	if shifted >= atRest/10 {
		t.Errorf("shifted flux = %g, want well below rest flux %g", shifted, atRest)
	}
}

func TestBandFluxNoOverlap(t *testing.T) {
	g, _ := NewGrid(4000, 5000, 10)
	flux := rampSpectrum(g)
	trans := testutil.TopHat(g, 4000, 4500)

	// z=2 moves the spectrum to 12000..15000, far past the filter.
	if _, err := BandFlux(g, flux, trans, 2); !errors.Is(err, ErrNoOverlap) {
		t.Errorf("err = %v, want ErrNoOverlap", err)
	}
}

func TestBandFluxZeroTransmission(t *testing.T) {
	g, _ := NewGrid(4000, 5000, 10)
	flux := rampSpectrum(g)
	trans := make([]float64, len(g))

	if _, err := BandFlux(g, flux, trans, 0); !errors.Is(err, ErrNoOverlap) {
		t.Errorf("err = %v, want ErrNoOverlap", err)
	}
}

func TestBandFluxLengthMismatch(t *testing.T) {
	g, _ := NewGrid(4000, 5000, 10)
	flux := rampSpectrum(g)

	if _, err := BandFlux(g, flux[:10], testutil.TopHat(g, 4000, 4500), 0); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("short flux err = %v, want ErrLengthMismatch", err)
	}
	if _, err := BandFlux(g, flux, []float64{1}, 0); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("short trans err = %v, want ErrLengthMismatch", err)
	}
}

func TestBandMag(t *testing.T) {
	g, _ := NewGrid(4000, 8000, 1)
	flux := testutil.FlatSpectrum(1, len(g))
	trans := testutil.TopHat(g, 5000, 6000)

	f, err := BandFlux(g, flux, trans, 0)
	if err != nil {
		t.Fatalf("BandFlux: %v", err)
	}
	mag, err := BandMag(g, flux, trans, 0, 30)
	if err != nil {
		t.Fatalf("BandMag: %v", err)
	}
	want := 30 - 2.5*math.Log10(f)
	if !almostEqual(mag, want, tolerance) {
		t.Errorf("mag = %g, want %g", mag, want)
	}
}

func TestBandMagZeroIntegral(t *testing.T) {
	g, _ := NewGrid(4000, 5000, 10)
	flux := make([]float64, len(g)) // all zero
	trans := testutil.TopHat(g, 4200, 4400)

	if _, err := BandMag(g, flux, trans, 0, 30); !errors.Is(err, ErrZeroIntegral) {
		t.Errorf("err = %v, want ErrZeroIntegral", err)
	}
}

func BenchmarkBandFlux(b *testing.B) {
	g, _ := NewGrid(3000, 11000, 1)
	flux := rampSpectrum(g)
	trans := testutil.TopHat(g, 5000, 7000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := BandFlux(g, flux, trans, 0.3); err != nil {
			b.Fatal(err)
		}
	}
}
