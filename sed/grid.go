package sed

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by grid construction and integration.
var (
	ErrGridTooShort   = errors.New("sed: grid needs at least two points")
	ErrGridOrder      = errors.New("sed: wavelengths must be finite and strictly ascending")
	ErrGridStep       = errors.New("sed: grid step must be positive")
	ErrGridRange      = errors.New("sed: grid range must be positive")
	ErrLengthMismatch = errors.New("sed: wavelength and value lengths differ")
	ErrRedshift       = errors.New("sed: redshift must be greater than -1")
)

// Grid is a shared ascending wavelength axis.
type Grid []float64

// NewGrid returns the axis {lo, lo+step, ...} up to and including hi
// (within half a step).
func NewGrid(lo, hi, step float64) (Grid, error) {
	if step <= 0 || math.IsNaN(step) {
		return nil, fmt.Errorf("%w: %g", ErrGridStep, step)
	}

	if hi <= lo || math.IsInf(hi-lo, 0) || math.IsNaN(hi-lo) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrGridRange, lo, hi)
	}

	n := int(math.Floor((hi-lo)/step+0.5)) + 1
	if n < 2 {
		return nil, ErrGridTooShort
	}

	g := make(Grid, n)
	for i := range g {
		g[i] = lo + float64(i)*step
	}

	return g, nil
}

// Validate checks that the axis is usable as an interpolation target.
func (g Grid) Validate() error {
	if len(g) < 2 {
		return ErrGridTooShort
	}

	return checkAscending([]float64(g))
}

// Min returns the shortest wavelength of the axis.
func (g Grid) Min() float64 { return g[0] }

// Max returns the longest wavelength of the axis.
func (g Grid) Max() float64 { return g[len(g)-1] }

// Trapezoid integrates y over the grid with the composite trapezoid rule.
// y must have the grid's length.
func Trapezoid(g Grid, y []float64) (float64, error) {
	if err := g.Validate(); err != nil {
		return 0, err
	}

	if len(y) != len(g) {
		return 0, fmt.Errorf("%w: %d values on %d grid points",
			ErrLengthMismatch, len(y), len(g))
	}

	sum := 0.0
	for i := 1; i < len(g); i++ {
		sum += (g[i] - g[i-1]) * (y[i] + y[i-1])
	}

	return 0.5 * sum, nil
}

// Redshift returns a new wavelength axis stretched by (1+z). Flux values
// are unaffected by the stretch; callers pair the shifted axis with the
// original values.
func Redshift(wave []float64, z float64) ([]float64, error) {
	if z <= -1 || math.IsNaN(z) {
		return nil, fmt.Errorf("%w: %g", ErrRedshift, z)
	}

	out := make([]float64, len(wave))
	factor := 1 + z

	for i, w := range wave {
		out[i] = w * factor
	}

	return out, nil
}

func checkAscending(wave []float64) error {
	for i, w := range wave {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("%w: index %d", ErrGridOrder, i)
		}

		if i > 0 && wave[i-1] >= w {
			return fmt.Errorf("%w: index %d", ErrGridOrder, i)
		}
	}

	return nil
}
