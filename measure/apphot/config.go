package apphot

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-astro/config"
	"github.com/cwbudde/algo-astro/phot/image"
)

const (
	defaultSigma   = 3.0
	defaultEpsilon = 0.01

	// cutoutMargin pads the cutout half-size past the largest radius so
	// the full annulus fits with room for fractional centers.
	cutoutMargin = 1.1
)

// Errors reported by configuration validation.
var (
	ErrNoRadii      = errors.New("apphot: at least one aperture radius is required")
	ErrRadiusCount  = errors.New("apphot: R, R_i and R_o must share one length")
	ErrRadiusValue  = errors.New("apphot: radii must be positive and finite")
	ErrAnnulusOrder = errors.New("apphot: annulus inner radius must lie below the outer")
	ErrClipValue    = errors.New("apphot: sigma, epsilon and smoothing must be non-negative")
)

// Config holds the measurement parameters for one photometry run.
// Radii, InnerRadii and OuterRadii are parallel slices: tier k measures
// aperture radius Radii[k] against the sky annulus
// (InnerRadii[k], OuterRadii[k]]. An aperture radius reaching into its own
// annulus is permitted; only the annulus ordering is enforced.
type Config struct {
	// Unit applies to all radii and is resolved against the image pixel
	// scale when angular.
	Unit image.Unit

	Radii      []float64
	InnerRadii []float64
	OuterRadii []float64

	// Sigma and Epsilon drive the sigma-clipped sky estimate; zero values
	// take the package defaults (3.0, 0.01). MaxIter zero defers to the
	// sky package cap.
	Sigma   float64
	Epsilon float64
	MaxIter int

	// SubtractSky removes the annulus level from the aperture sum.
	SubtractSky bool

	// SmoothSigma applies Gaussian PSF smoothing (in pixels) to the image
	// before measuring. Zero disables it.
	SmoothSigma float64

	// Workers bounds how many sources are measured concurrently.
	// Values below two keep the run serial.
	Workers int
}

// DefaultConfig returns the parameters used when a key is absent from the
// parameter file.
func DefaultConfig() Config {
	return Config{
		Unit:        image.Pixel,
		Sigma:       defaultSigma,
		Epsilon:     defaultEpsilon,
		SubtractSky: true,
		Workers:     1,
	}
}

// Validate checks the radius tiers and clipping parameters.
func (c Config) Validate() error {
	if len(c.Radii) == 0 {
		return ErrNoRadii
	}

	if len(c.InnerRadii) != len(c.Radii) || len(c.OuterRadii) != len(c.Radii) {
		return fmt.Errorf("%w: R %d, R_i %d, R_o %d",
			ErrRadiusCount, len(c.Radii), len(c.InnerRadii), len(c.OuterRadii))
	}

	for k := range c.Radii {
		for _, r := range [...]float64{c.Radii[k], c.InnerRadii[k], c.OuterRadii[k]} {
			if !(r > 0) || math.IsInf(r, 0) {
				return fmt.Errorf("%w: tier %d", ErrRadiusValue, k)
			}
		}

		if c.InnerRadii[k] >= c.OuterRadii[k] {
			return fmt.Errorf("%w: tier %d has R_i %g, R_o %g",
				ErrAnnulusOrder, k, c.InnerRadii[k], c.OuterRadii[k])
		}
	}

	if c.Sigma < 0 || c.Epsilon < 0 || c.SmoothSigma < 0 ||
		math.IsNaN(c.Sigma) || math.IsNaN(c.Epsilon) || math.IsNaN(c.SmoothSigma) {
		return ErrClipValue
	}

	return nil
}

// ConfigFromFile builds a Config from the recognized parameter-file keys
// unit, R, R_i, R_o, sigma and epsilon. R, R_i and R_o are required;
// single-valued R_i/R_o are broadcast across all tiers, matching the
// parameter files that give one annulus for several apertures.
func ConfigFromFile(f *config.File) (Config, error) {
	cfg := DefaultConfig()

	radii, err := f.Floats("R")
	if err != nil {
		return Config{}, fmt.Errorf("apphot: %w", err)
	}

	inner, err := f.Floats("R_i")
	if err != nil {
		return Config{}, fmt.Errorf("apphot: %w", err)
	}

	outer, err := f.Floats("R_o")
	if err != nil {
		return Config{}, fmt.Errorf("apphot: %w", err)
	}

	cfg.Radii = radii
	cfg.InnerRadii = broadcast(inner, len(radii))
	cfg.OuterRadii = broadcast(outer, len(radii))

	if f.Has("unit") {
		s, err := f.String("unit")
		if err != nil {
			return Config{}, fmt.Errorf("apphot: %w", err)
		}

		cfg.Unit, err = image.ParseUnit(s)
		if err != nil {
			return Config{}, fmt.Errorf("apphot: %w", err)
		}
	}

	if f.Has("sigma") {
		if cfg.Sigma, err = f.Float("sigma"); err != nil {
			return Config{}, fmt.Errorf("apphot: %w", err)
		}
	}

	if f.Has("epsilon") {
		if cfg.Epsilon, err = f.Float("epsilon"); err != nil {
			return Config{}, fmt.Errorf("apphot: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func broadcast(vals []float64, n int) []float64 {
	if len(vals) != 1 || n <= 1 {
		return vals
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = vals[0]
	}

	return out
}
