package sed

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when a source table has no samples.
var ErrNoData = errors.New("sed: empty wavelength table")

// Resample evaluates the table (wave, values) at every grid point by linear
// interpolation. wave must be strictly ascending. Grid points outside the
// table's native range take the nearest edge value, so the result is always
// fully populated.
//
// A grid point equal to a table wavelength reproduces that table value
// exactly, making resampling onto a table's own axis the identity.
func Resample(grid Grid, wave, values []float64) ([]float64, error) {
	out := make([]float64, len(grid))
	if err := ResampleTo(out, grid, wave, values); err != nil {
		return nil, err
	}

	return out, nil
}

// ResampleTo is Resample writing into dst, which must have the grid's
// length.
func ResampleTo(dst []float64, grid Grid, wave, values []float64) error {
	if err := grid.Validate(); err != nil {
		return err
	}

	if len(dst) != len(grid) {
		return fmt.Errorf("%w: dst %d for %d grid points",
			ErrLengthMismatch, len(dst), len(grid))
	}

	if len(wave) == 0 {
		return ErrNoData
	}

	if len(wave) != len(values) {
		return fmt.Errorf("%w: %d wavelengths, %d values",
			ErrLengthMismatch, len(wave), len(values))
	}

	if err := checkAscending(wave); err != nil {
		return err
	}

	last := len(wave) - 1
	seg := 0 // current table segment, advanced with the grid walk

	for i, w := range grid {
		switch {
		case w <= wave[0]:
			dst[i] = values[0]

		case w >= wave[last]:
			dst[i] = values[last]

		default:
			for wave[seg+1] < w {
				seg++
			}

			if w == wave[seg+1] {
				dst[i] = values[seg+1]
				continue
			}

			t := (w - wave[seg]) / (wave[seg+1] - wave[seg])
			dst[i] = values[seg] + t*(values[seg+1]-values[seg])
		}
	}

	return nil
}
