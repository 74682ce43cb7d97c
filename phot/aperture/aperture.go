package aperture

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-astro/phot/core"
	"github.com/cwbudde/algo-astro/phot/sky"
)

// Errors returned or carried by aperture measurements.
var (
	ErrNoPixels     = errors.New("aperture: no pixels inside aperture")
	ErrUndefinedMag = errors.New("aperture: non-positive flux has no magnitude")
)

// Options holds the calibration constants applied to a flux sum.
type Options struct {
	// SubtractSky removes Level * Area from the raw pixel sum.
	SubtractSky bool

	// Gain converts counts to photo-electrons for the Poisson noise term.
	// A non-positive gain disables that term.
	Gain float64

	// ZeroPoint calibrates the magnitude scale; ZeroPointErr is added in
	// quadrature to the propagated flux error.
	ZeroPoint    float64
	ZeroPointErr float64
}

// Measurement is the result of one aperture sum.
type Measurement struct {
	Area    int     // pixels inside the aperture
	RawFlux float64 // plain pixel sum
	Flux    float64 // sky-subtracted when requested, else RawFlux
	FluxErr float64
	Mag     float64 // NaN when Flux <= 0
	MagErr  float64 // NaN when Flux <= 0
}

// Defined reports whether the measurement has a usable magnitude.
func (m Measurement) Defined() bool {
	return !math.IsNaN(m.Mag)
}

// Err returns ErrUndefinedMag for measurements without a usable magnitude,
// nil otherwise.
func (m Measurement) Err() error {
	if m.Defined() {
		return nil
	}

	return ErrUndefinedMag
}

// Measure sums the aperture pixels against the given background estimate
// and calibrates the result. The pixel slice is read, never written.
func Measure(pixels []float64, bg sky.Background, opts Options) (Measurement, error) {
	n := len(pixels)
	if n == 0 {
		return Measurement{}, ErrNoPixels
	}

	raw := vecmath.Sum(pixels)

	flux := raw
	if opts.SubtractSky {
		flux = raw - bg.Level*float64(n)
	}

	variance := float64(n) * bg.Scatter * bg.Scatter
	if opts.Gain > 0 && flux > 0 {
		variance += flux / opts.Gain
	}

	fluxErr := math.Sqrt(variance)

	m := Measurement{
		Area:    n,
		RawFlux: raw,
		Flux:    flux,
		FluxErr: fluxErr,
		Mag:     core.MagFromFlux(flux, opts.ZeroPoint),
		MagErr:  math.NaN(),
	}

	if m.Defined() {
		magErr := core.MagErrFromFlux(flux, fluxErr)
		m.MagErr = math.Sqrt(magErr*magErr + opts.ZeroPointErr*opts.ZeroPointErr)
	}

	return m, nil
}
