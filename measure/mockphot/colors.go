package mockphot

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-astro/table"
)

// ErrNoFilters is reported when a run or color matrix has no filters to
// work with.
var ErrNoFilters = errors.New("mockphot: at least one filter is required")

// ColorMatrix is the full pairwise color matrix of one magnitude vector:
// M[i][j] = mag_i - mag_j. The diagonal is zero and the matrix
// antisymmetric wherever the magnitudes are defined; an undefined (NaN)
// magnitude propagates NaN through its row and column, diagonal included.
type ColorMatrix struct {
	Filters []string
	Z       float64
	M       [][]float64
}

// Colors builds the pairwise color matrix of one magnitude vector. The
// mags follow the filter order.
func Colors(filters []string, mags []float64) (*ColorMatrix, error) {
	if len(filters) == 0 {
		return nil, ErrNoFilters
	}

	if len(mags) != len(filters) {
		return nil, fmt.Errorf("mockphot: %d magnitudes for %d filters",
			len(mags), len(filters))
	}

	m := make([][]float64, len(mags))
	for i := range m {
		m[i] = make([]float64, len(mags))
		for j := range m[i] {
			m[i][j] = mags[i] - mags[j]
		}
	}

	return &ColorMatrix{Filters: filters, M: m}, nil
}

// Table flattens the matrix into a record table with one column per
// filter; rows follow the same filter order. The redshift goes into the
// comments.
func (c *ColorMatrix) Table() *table.Table {
	cols := make([]table.Column, len(c.Filters))
	for j, name := range c.Filters {
		cols[j] = table.Column{Name: name, Kind: table.Float}
	}

	t := table.New(cols...)
	t.Comments = append(t.Comments,
		fmt.Sprintf("colors at z %g", c.Z),
		"rows follow the column order",
	)

	for j := range t.Data {
		t.Data[j] = make([]float64, len(c.Filters))
		for i := range c.M {
			t.Data[j][i] = c.M[i][j]
		}
	}

	return t
}
