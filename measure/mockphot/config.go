package mockphot

import (
	"errors"
	"math"
)

// defaultZeroPoint is the fixed reference zero point of the mock
// magnitude scale.
const defaultZeroPoint = 30.0

// stepRoundoff absorbs float error when counting redshift steps, so a
// range that divides evenly still includes its upper end.
const stepRoundoff = 1e-9

// Errors reported by configuration validation.
var (
	ErrRangeValue = errors.New("mockphot: redshift range must be ordered and above -1")
	ErrStepValue  = errors.New("mockphot: redshift step must be positive")
)

// Config holds the synthesis parameters for one mock photometry run.
// Redshift runs from Z0 to Z1 inclusive in steps of DZ.
type Config struct {
	Z0 float64
	Z1 float64
	DZ float64

	// ZeroPoint calibrates the mock magnitudes; zero takes the package
	// default of 30.
	ZeroPoint float64

	// Colors requests one pairwise color matrix per redshift step.
	Colors bool
}

// DefaultConfig returns a single-step z=0 run on the default magnitude
// scale.
func DefaultConfig() Config {
	return Config{ZeroPoint: defaultZeroPoint}
}

// Validate checks the redshift range and step.
func (c Config) Validate() error {
	if c.Z0 <= -1 || math.IsNaN(c.Z0) || math.IsNaN(c.Z1) || c.Z1 < c.Z0 {
		return ErrRangeValue
	}

	if c.DZ < 0 || math.IsNaN(c.DZ) || (c.Z1 > c.Z0 && c.DZ == 0) {
		return ErrStepValue
	}

	return nil
}

// steps enumerates the redshift values of the run.
func (c Config) steps() []float64 {
	if c.Z1 == c.Z0 {
		return []float64{c.Z0}
	}

	n := int(math.Floor((c.Z1-c.Z0)/c.DZ+stepRoundoff)) + 1

	zs := make([]float64, n)
	for i := range zs {
		zs[i] = c.Z0 + float64(i)*c.DZ
	}

	return zs
}
