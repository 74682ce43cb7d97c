package mockphot

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-astro/internal/testutil"
	"github.com/cwbudde/algo-astro/sed"
)

type recordObserver struct {
	starts int
	cells  int
	dones  int
	failed int
}

func (o *recordObserver) SEDStart(string, int, int) { o.starts++ }

func (o *recordObserver) CellFailed(string, string, float64, error) { o.cells++ }

func (o *recordObserver) SEDDone(_ string, failed int) {
	o.dones++
	o.failed += failed
}

func mustSet(t *testing.T, g sed.Grid) *sed.Set {
	t.Helper()

	s, err := sed.NewSet(g)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}

	return s
}

func addFlat(t *testing.T, s *sed.Set, name string, level float64) {
	t.Helper()

	col := testutil.FlatSpectrum(level, len(s.Grid()))
	if err := s.AddSampled(name, col); err != nil {
		t.Fatalf("AddSampled(%q): %v", name, err)
	}
}

func addHat(t *testing.T, s *sed.Set, name string, lo, hi float64) {
	t.Helper()

	col := testutil.TopHat(s.Grid(), lo, hi)
	if err := s.AddSampled(name, col); err != nil {
		t.Fatalf("AddSampled(%q): %v", name, err)
	}
}

// TestRunIdenticalFilters checks the zero-color property: identical flat
// SEDs through identical filters at z=0 give an exactly zero color matrix.
func TestRunIdenticalFilters(t *testing.T) {
	g, _ := sed.NewGrid(4000, 7000, 100)

	seds := mustSet(t, g)
	addFlat(t, seds, "flat_a", 2)
	addFlat(t, seds, "flat_b", 2)

	filters := mustSet(t, g)
	addHat(t, filters, "f1", 5000, 6000)
	addHat(t, filters, "f2", 5000, 6000)

	cfg := DefaultConfig()
	cfg.Colors = true

	r, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	results, err := r.Run(context.Background(), seds, filters)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	for _, res := range results {
		if len(res.Colors) != 1 {
			t.Fatalf("sed %s: %d color matrices, want 1", res.SED, len(res.Colors))
		}

		m := res.Colors[0].M
		for i := range m {
			for j := range m[i] {
				if m[i][j] != 0 {
					t.Errorf("sed %s: M[%d][%d] = %g, want exactly 0",
						res.SED, i, j, m[i][j])
				}
			}
		}
	}

	// Identical SEDs produce identical magnitudes.
	if results[0].Mags[0][0] != results[1].Mags[0][0] {
		t.Errorf("flat_a mag %g differs from flat_b mag %g",
			results[0].Mags[0][0], results[1].Mags[0][0])
	}
}

// TestRunNoOverlapSentinel pushes the spectrum past the filter: the
// affected cell keeps NaN, the observer hears about it, and the run
// continues.
func TestRunNoOverlapSentinel(t *testing.T) {
	g, _ := sed.NewGrid(4000, 5000, 100)

	seds := mustSet(t, g)
	addFlat(t, seds, "flat", 1)

	filters := mustSet(t, g)
	addHat(t, filters, "blue", 4000, 4500)

	cfg := DefaultConfig()
	cfg.Z0, cfg.Z1, cfg.DZ = 0, 2, 2
	cfg.Colors = true

	obs := &recordObserver{}

	r, err := New(cfg, WithObserver(obs))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	results, err := r.Run(context.Background(), seds, filters)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	res := results[0]
	if len(res.Z) != 2 {
		t.Fatalf("steps = %v, want [0 2]", res.Z)
	}

	if math.IsNaN(res.Mags[0][0]) {
		t.Error("z=0 cell is NaN, want defined")
	}
	if !math.IsNaN(res.Mags[1][0]) {
		t.Errorf("z=2 cell = %g, want NaN sentinel", res.Mags[1][0])
	}

	if res.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", res.Failed())
	}
	if obs.cells != 1 || obs.failed != 1 {
		t.Errorf("observer saw %d cells, summary %d, want 1 and 1", obs.cells, obs.failed)
	}
	if obs.starts != 1 || obs.dones != 1 {
		t.Errorf("observer saw starts=%d dones=%d, want 1 each", obs.starts, obs.dones)
	}

	// The color matrix at the failed step carries the sentinel too.
	if !math.IsNaN(res.Colors[1].M[0][0]) {
		t.Errorf("failed-step color = %g, want NaN", res.Colors[1].M[0][0])
	}
	if res.Colors[0].M[0][0] != 0 {
		t.Errorf("clean-step color = %g, want 0", res.Colors[0].M[0][0])
	}
}

func TestRunNoFilters(t *testing.T) {
	g, _ := sed.NewGrid(4000, 5000, 100)

	seds := mustSet(t, g)
	addFlat(t, seds, "flat", 1)

	r, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := r.Run(context.Background(), seds, mustSet(t, g)); !errors.Is(err, ErrNoFilters) {
		t.Fatalf("err = %v, want ErrNoFilters", err)
	}
}

func TestRunGridMismatch(t *testing.T) {
	ga, _ := sed.NewGrid(4000, 5000, 100)
	gb, _ := sed.NewGrid(4000, 5000, 50)

	seds := mustSet(t, ga)
	addFlat(t, seds, "flat", 1)

	filters := mustSet(t, gb)
	addHat(t, filters, "blue", 4000, 4500)

	r, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := r.Run(context.Background(), seds, filters); !errors.Is(err, ErrGridMismatch) {
		t.Fatalf("err = %v, want ErrGridMismatch", err)
	}
}

func TestRunCancelled(t *testing.T) {
	g, _ := sed.NewGrid(4000, 5000, 100)

	seds := mustSet(t, g)
	addFlat(t, seds, "flat", 1)

	filters := mustSet(t, g)
	addHat(t, filters, "blue", 4000, 4500)

	r, err := New(DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Run(ctx, seds, filters); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRunZeroPointDefault(t *testing.T) {
	r, err := New(Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if r.cfg.ZeroPoint != defaultZeroPoint {
		t.Errorf("zero point = %g, want %g", r.cfg.ZeroPoint, defaultZeroPoint)
	}
}

func BenchmarkRun(b *testing.B) {
	g, err := sed.NewGrid(3000, 11000, 2)
	if err != nil {
		b.Fatal(err)
	}

	seds, err := sed.NewSet(g)
	if err != nil {
		b.Fatal(err)
	}

	ramp := make([]float64, len(g))
	for i, w := range g {
		ramp[i] = 1 + (w-3000)/8000
	}
	if err := seds.AddSampled("ramp", ramp); err != nil {
		b.Fatal(err)
	}

	filters, err := sed.NewSet(g)
	if err != nil {
		b.Fatal(err)
	}

	bands := []struct {
		name   string
		lo, hi float64
	}{
		{"u", 3200, 3800}, {"g", 4200, 5400}, {"r", 5600, 6800},
		{"i", 7000, 8200}, {"z", 8400, 9600},
	}
	for _, band := range bands {
		if err := filters.AddSampled(band.name, testutil.TopHat(g, band.lo, band.hi)); err != nil {
			b.Fatal(err)
		}
	}

	cfg := DefaultConfig()
	cfg.Z1, cfg.DZ = 2, 0.05

	r, err := New(cfg)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := r.Run(context.Background(), seds, filters); err != nil {
			b.Fatal(err)
		}
	}
}
