package mockphot

import (
	"math"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-astro/table"
)

// Result is the magnitude table of one SED: Mags[i][j] holds the
// magnitude of Filters[j] at redshift Z[i]. Colors carries one matrix per
// redshift step when the run requested them.
type Result struct {
	RunID   uuid.UUID
	SED     string
	Filters []string
	Z       []float64
	Mags    [][]float64
	Colors  []*ColorMatrix
}

// Failed counts NaN sentinel cells.
func (r *Result) Failed() int {
	n := 0

	for i := range r.Mags {
		for j := range r.Mags[i] {
			if math.IsNaN(r.Mags[i][j]) {
				n++
			}
		}
	}

	return n
}

// Table flattens the magnitudes into the output schema: a z column
// followed by one mag_<filter> column per filter. Run provenance goes
// into the table comments.
func (r *Result) Table() *table.Table {
	cols := make([]table.Column, 0, 1+len(r.Filters))
	cols = append(cols, table.Column{Name: "z", Kind: table.Float})

	for _, name := range r.Filters {
		cols = append(cols, table.Column{Name: "mag_" + name, Kind: table.Float})
	}

	t := table.New(cols...)
	t.Comments = append(t.Comments,
		"run "+r.RunID.String(),
		"sed "+r.SED,
	)

	t.Data[0] = append([]float64(nil), r.Z...)

	for j := range r.Filters {
		col := make([]float64, len(r.Z))
		for i := range r.Mags {
			col[i] = r.Mags[i][j]
		}

		t.Data[j+1] = col
	}

	return t
}
