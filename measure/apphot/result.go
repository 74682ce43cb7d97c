package apphot

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-astro/table"
)

// Tier is the six-field record of one aperture radius on one source. The
// radii are the resolved pixel values. A failed tier carries NaN
// measurements and a non-nil Err naming the cause.
type Tier struct {
	Radius float64 // aperture radius, pixels
	Inner  float64 // annulus bounds, pixels
	Outer  float64

	Sky     float64
	SkyStd  float64
	Flux    float64
	FluxErr float64
	Mag     float64
	MagErr  float64

	Err error
}

// Row holds one source's measurements across all radius tiers, in
// configured tier order.
type Row struct {
	Source Source
	Tiers  []Tier
}

// Result is the outcome of one image run.
type Result struct {
	RunID uuid.UUID
	Image string

	// Radii are the configured radius values in their configured unit.
	// They label the per-tier output columns, so the catalog reader sees
	// the same numbers the parameter file gave.
	Radii []float64

	Rows []Row
}

// Failed counts tier cells that recorded sentinel values.
func (r *Result) Failed() int {
	n := 0

	for i := range r.Rows {
		for k := range r.Rows[i].Tiers {
			if r.Rows[i].Tiers[k].Err != nil {
				n++
			}
		}
	}

	return n
}

// tierColumns is the per-radius column layout of the output schema.
var tierColumns = [...]string{"sky_", "sky_std_", "flux_", "flux_err_", "mag_", "mag_err_"}

// Table flattens the rows into the output schema: id, alpha, delta, then
// the six measurement columns per radius tier, suffixed with the
// configured radius. Run provenance goes into the table comments.
func (r *Result) Table() *table.Table {
	cols := make([]table.Column, 0, 3+len(tierColumns)*len(r.Radii))
	cols = append(cols,
		table.Column{Name: "id", Kind: table.Int},
		table.Column{Name: "alpha", Kind: table.Float},
		table.Column{Name: "delta", Kind: table.Float},
	)

	for _, radius := range r.Radii {
		label := strconv.FormatFloat(radius, 'g', -1, 64)
		for _, prefix := range tierColumns {
			cols = append(cols, table.Column{Name: prefix + label, Kind: table.Float})
		}
	}

	t := table.New(cols...)
	t.Comments = append(t.Comments,
		"run "+r.RunID.String(),
		"image "+r.Image,
	)

	for i := range t.Data {
		t.Data[i] = make([]float64, len(r.Rows))
	}

	for i := range r.Rows {
		row := &r.Rows[i]
		t.Data[0][i] = float64(row.Source.ID)
		t.Data[1][i] = row.Source.Alpha
		t.Data[2][i] = row.Source.Delta

		for k := range row.Tiers {
			tier := &row.Tiers[k]
			base := 3 + len(tierColumns)*k

			t.Data[base+0][i] = tier.Sky
			t.Data[base+1][i] = tier.SkyStd
			t.Data[base+2][i] = tier.Flux
			t.Data[base+3][i] = tier.FluxErr
			t.Data[base+4][i] = tier.Mag
			t.Data[base+5][i] = tier.MagErr
		}
	}

	return t
}
