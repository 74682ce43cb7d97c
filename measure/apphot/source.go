package apphot

import (
	"fmt"

	"github.com/cwbudde/algo-astro/table"
)

// Source is one catalog entry: an identifier and a sky position in
// degrees.
type Source struct {
	ID    int64
	Alpha float64
	Delta float64
}

// SourcesFromTable builds the source list from a catalog table's id, alpha
// and delta columns.
func SourcesFromTable(t *table.Table) ([]Source, error) {
	ids, err := t.Column("id")
	if err != nil {
		return nil, fmt.Errorf("apphot: catalog: %w", err)
	}

	alphas, err := t.Column("alpha")
	if err != nil {
		return nil, fmt.Errorf("apphot: catalog: %w", err)
	}

	deltas, err := t.Column("delta")
	if err != nil {
		return nil, fmt.Errorf("apphot: catalog: %w", err)
	}

	sources := make([]Source, len(ids))
	for i := range ids {
		sources[i] = Source{
			ID:    int64(ids[i]),
			Alpha: alphas[i],
			Delta: deltas[i],
		}
	}

	return sources, nil
}
