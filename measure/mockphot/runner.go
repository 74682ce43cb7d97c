package mockphot

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-astro/sed"
)

// ErrGridMismatch is reported when the SED and filter sets were resampled
// onto different wavelength grids.
var ErrGridMismatch = errors.New("mockphot: SED and filter sets must share one wavelength grid")

// Runner synthesizes mock photometry: for every SED, every redshift step
// and every filter it integrates the redshifted spectrum against the
// filter curve and calibrates a magnitude. A Runner is immutable after
// New and safe to share.
type Runner struct {
	cfg Config
	obs Observer
}

// Option adjusts a Runner beyond its Config.
type Option func(*Runner)

// WithObserver routes progress events to obs. The default discards them.
func WithObserver(obs Observer) Option {
	return func(r *Runner) {
		if obs != nil {
			r.obs = obs
		}
	}
}

// New validates cfg and builds a Runner.
func New(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.ZeroPoint == 0 {
		cfg.ZeroPoint = defaultZeroPoint
	}

	r := &Runner{cfg: cfg, obs: NopObserver{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r, nil
}

// Run synthesizes every SED in seds through every filter in filters, one
// Result per SED in set order. Both sets must live on the same wavelength
// grid. Cells whose band integral is undefined keep a NaN sentinel while
// the run continues; cancellation aborts the whole run.
func (r *Runner) Run(ctx context.Context, seds, filters *sed.Set) ([]*Result, error) {
	if filters.Len() == 0 {
		return nil, ErrNoFilters
	}

	if err := sameGrid(seds.Grid(), filters.Grid()); err != nil {
		return nil, err
	}

	runID := uuid.New()
	zs := r.cfg.steps()
	results := make([]*Result, 0, seds.Len())

	for _, name := range seds.Names() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := r.runSED(runID, name, seds, filters, zs)
		if err != nil {
			return nil, err
		}

		results = append(results, res)
	}

	return results, nil
}

// runSED fills one SED's magnitude table, filter-minor within each
// redshift step.
func (r *Runner) runSED(runID uuid.UUID, name string, seds, filters *sed.Set, zs []float64) (*Result, error) {
	flux, err := seds.Column(name)
	if err != nil {
		return nil, err
	}

	grid := seds.Grid()
	names := filters.Names()

	res := &Result{
		RunID:   runID,
		SED:     name,
		Filters: names,
		Z:       zs,
		Mags:    make([][]float64, len(zs)),
	}

	r.obs.SEDStart(name, len(names), len(zs))

	failed := 0

	for i, z := range zs {
		mags := make([]float64, len(names))

		for j, fname := range names {
			trans, err := filters.Column(fname)
			if err != nil {
				return nil, err
			}

			mag, err := sed.BandMag(grid, flux, trans, z, r.cfg.ZeroPoint)
			if err != nil {
				mags[j] = math.NaN()
				failed++

				r.obs.CellFailed(name, fname, z, err)

				continue
			}

			mags[j] = mag
		}

		res.Mags[i] = mags

		if r.cfg.Colors {
			cm, err := Colors(names, mags)
			if err != nil {
				return nil, err
			}

			cm.Z = z
			res.Colors = append(res.Colors, cm)
		}
	}

	r.obs.SEDDone(name, failed)

	return res, nil
}

func sameGrid(a, b sed.Grid) error {
	if len(a) != len(b) {
		return ErrGridMismatch
	}

	for i := range a {
		if a[i] != b[i] {
			return ErrGridMismatch
		}
	}

	return nil
}
