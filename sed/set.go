package sed

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-astro/table"
)

// Errors returned by Set operations.
var (
	ErrEmptyName     = errors.New("sed: column names must be non-empty")
	ErrDuplicateName = errors.New("sed: column already present")
	ErrNoColumn      = errors.New("sed: column not found")
)

// Set is an ordered collection of named value columns sampled on one
// shared wavelength grid: the working form of a directory of SED or filter
// tables after resampling.
type Set struct {
	grid    Grid
	names   []string
	columns map[string][]float64
}

// NewSet returns an empty set bound to the given grid.
func NewSet(grid Grid) (*Set, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	return &Set{
		grid:    grid,
		columns: make(map[string][]float64),
	}, nil
}

// Grid returns the shared wavelength axis.
func (s *Set) Grid() Grid { return s.grid }

// Names returns the column names in insertion order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of columns.
func (s *Set) Len() int { return len(s.names) }

// Add resamples the table (wave, values) onto the set's grid and stores it
// under name.
func (s *Set) Add(name string, wave, values []float64) error {
	resampled, err := Resample(s.grid, wave, values)
	if err != nil {
		return fmt.Errorf("sed: add %q: %w", name, err)
	}

	return s.AddSampled(name, resampled)
}

// AddSampled stores a column that is already sampled on the set's grid.
// The slice is kept, not copied.
func (s *Set) AddSampled(name string, values []float64) error {
	if name == "" {
		return ErrEmptyName
	}

	if _, dup := s.columns[name]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	if len(values) != len(s.grid) {
		return fmt.Errorf("%w: %d values on %d grid points",
			ErrLengthMismatch, len(values), len(s.grid))
	}

	s.names = append(s.names, name)
	s.columns[name] = values

	return nil
}

// Column returns the named column, shared with the set.
func (s *Set) Column(name string) ([]float64, error) {
	col, ok := s.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoColumn, name)
	}

	return col, nil
}

// Table flattens the set into a record table with a leading "wavelength"
// column followed by the value columns in insertion order, ready for
// persistence.
func (s *Set) Table() *table.Table {
	cols := make([]table.Column, 0, len(s.names)+1)
	cols = append(cols, table.Column{Name: "wavelength", Kind: table.Float})

	for _, name := range s.names {
		cols = append(cols, table.Column{Name: name, Kind: table.Float})
	}

	t := table.New(cols...)
	t.Data[0] = append([]float64(nil), s.grid...)

	for i, name := range s.names {
		t.Data[i+1] = append([]float64(nil), s.columns[name]...)
	}

	return t
}

// SetFromTable resamples every non-wavelength column of t onto grid. The
// wavelength column is named by waveCol.
func SetFromTable(grid Grid, t *table.Table, waveCol string) (*Set, error) {
	wave, err := t.Column(waveCol)
	if err != nil {
		return nil, fmt.Errorf("sed: wavelength column: %w", err)
	}

	s, err := NewSet(grid)
	if err != nil {
		return nil, err
	}

	for _, name := range t.Names() {
		if name == waveCol {
			continue
		}

		values, err := t.Column(name)
		if err != nil {
			return nil, err
		}

		if err := s.Add(name, wave, values); err != nil {
			return nil, err
		}
	}

	return s, nil
}
