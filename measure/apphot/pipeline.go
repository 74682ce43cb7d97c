package apphot

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/cwbudde/algo-astro/phot/aperture"
	"github.com/cwbudde/algo-astro/phot/image"
	"github.com/cwbudde/algo-astro/phot/sky"
)

// Pipeline measures a source catalog on images, producing one Result per
// image. A Pipeline is immutable after New and safe to share.
type Pipeline struct {
	cfg Config
	obs Observer
}

// Option adjusts a Pipeline beyond its Config.
type Option func(*Pipeline)

// WithObserver routes progress events to obs. The default discards them.
func WithObserver(obs Observer) Option {
	return func(p *Pipeline) {
		if obs != nil {
			p.obs = obs
		}
	}
}

// New validates cfg and builds a Pipeline.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	p := &Pipeline{cfg: cfg, obs: NopObserver{}}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p, nil
}

// tierSpec is one radius tier resolved to pixel units.
type tierSpec struct {
	radius float64
	inner  float64
	outer  float64
}

// Run measures every catalog source on one image, source-major and
// radius-minor. Geometry and numeric failures stay local to their tier
// cell: the cell keeps NaN sentinels, the observer hears about it, and the
// run continues. Configuration errors and context cancellation abort the
// run with no partial result.
func (p *Pipeline) Run(ctx context.Context, im *image.Image, proj image.Projector, sources []Source) (*Result, error) {
	if err := im.Validate(); err != nil {
		return nil, err
	}

	tiers, reach, err := p.resolveTiers(im)
	if err != nil {
		return nil, err
	}

	frame := im
	if p.cfg.SmoothSigma > 0 {
		if frame, err = image.SmoothGaussian(im, p.cfg.SmoothSigma); err != nil {
			return nil, err
		}
	}

	p.obs.ImageStart(im.Name, len(sources), len(tiers))

	res := &Result{
		RunID: uuid.New(),
		Image: im.Name,
		Radii: append([]float64(nil), p.cfg.Radii...),
		Rows:  make([]Row, len(sources)),
	}

	r := &runner{
		p:        p,
		frame:    frame,
		proj:     proj,
		tiers:    tiers,
		halfSize: cutoutMargin * reach,
		skyCfg: sky.Config{
			Sigma:   p.cfg.Sigma,
			Epsilon: p.cfg.Epsilon,
			MaxIter: p.cfg.MaxIter,
		},
		apOpts: aperture.Options{
			SubtractSky:  p.cfg.SubtractSky,
			Gain:         frame.Gain,
			ZeroPoint:    frame.ZeroPoint,
			ZeroPointErr: frame.ZeroPointErr,
		},
	}

	if p.cfg.Workers > 1 {
		err = r.parallel(ctx, sources, res.Rows)
	} else {
		err = r.serial(ctx, sources, res.Rows)
	}

	if err != nil {
		return nil, err
	}

	p.obs.ImageDone(im.Name, res.Failed())

	return res, nil
}

// resolveTiers converts the configured radii to pixels and returns the
// largest disc radius any tier will test.
func (p *Pipeline) resolveTiers(im *image.Image) ([]tierSpec, float64, error) {
	tiers := make([]tierSpec, len(p.cfg.Radii))
	reach := 0.0

	for k := range p.cfg.Radii {
		radius, err := p.cfg.Unit.ToPixels(p.cfg.Radii[k], im.PixelScale)
		if err != nil {
			return nil, 0, err
		}

		inner, err := p.cfg.Unit.ToPixels(p.cfg.InnerRadii[k], im.PixelScale)
		if err != nil {
			return nil, 0, err
		}

		outer, err := p.cfg.Unit.ToPixels(p.cfg.OuterRadii[k], im.PixelScale)
		if err != nil {
			return nil, 0, err
		}

		tiers[k] = tierSpec{radius: radius, inner: inner, outer: outer}
		reach = math.Max(reach, math.Max(radius, outer))
	}

	return tiers, reach, nil
}

// runner carries the per-run state shared by all source measurements.
type runner struct {
	p        *Pipeline
	frame    *image.Image
	proj     image.Projector
	tiers    []tierSpec
	halfSize float64
	skyCfg   sky.Config
	apOpts   aperture.Options
}

func (r *runner) serial(ctx context.Context, sources []Source, rows []Row) error {
	for i := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		rows[i] = r.measureSource(sources[i])
		r.p.obs.SourceDone(r.frame.Name, sources[i])
	}

	return nil
}

// parallel measures sources behind a weighted semaphore. Each worker owns
// its row exclusively, so the rows slice needs no locking; ordering of the
// output is positional and unaffected by scheduling.
func (r *runner) parallel(ctx context.Context, sources []Source, rows []Row) error {
	sem := semaphore.NewWeighted(int64(r.p.cfg.Workers))
	wg := &sync.WaitGroup{}

	var runErr error

	for i := range sources {
		// Acquire may succeed without blocking even on a done context,
		// so cancellation is checked explicitly per source.
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			runErr = err
			break
		}

		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)

			rows[i] = r.measureSource(sources[i])
			r.p.obs.SourceDone(r.frame.Name, sources[i])
		}(i)
	}

	wg.Wait()

	return runErr
}

// measureSource extracts one cutout and measures every tier on it. The
// pixel buffer is reused across tiers; concurrent callers each bring their
// own.
func (r *runner) measureSource(src Source) Row {
	row := Row{Source: src, Tiers: make([]Tier, len(r.tiers))}

	x, y := r.proj.Project(src.Alpha, src.Delta)

	cut, err := image.Extract(r.frame, x, y, r.halfSize)
	if err != nil {
		// The whole window is off frame; every tier gets the sentinel.
		for k, spec := range r.tiers {
			row.Tiers[k] = sentinelTier(spec, err)
			r.p.obs.TierFailed(r.frame.Name, src, r.p.cfg.Radii[k], err)
		}

		return row
	}

	var buf []float64

	for k, spec := range r.tiers {
		row.Tiers[k], buf = r.measureTier(cut, buf, spec)
		if err := row.Tiers[k].Err; err != nil {
			r.p.obs.TierFailed(r.frame.Name, src, r.p.cfg.Radii[k], err)
		}
	}

	return row
}

// measureTier runs sky estimation and aperture summation for one radius
// tier. Failures come back inside the Tier, never as a panic: the caller
// decides what continuing means.
func (r *runner) measureTier(cut *image.Cutout, buf []float64, spec tierSpec) (Tier, []float64) {
	reach := math.Max(spec.radius, spec.outer)
	if !cut.ContainsDisc(reach) {
		err := fmt.Errorf("%w: radius %g px at (%.1f, %.1f)",
			image.ErrOutOfBounds, reach, cut.CX, cut.CY)

		return sentinelTier(spec, err), buf
	}

	buf = cut.AnnulusPixels(buf[:0], spec.inner, spec.outer)

	bg, err := sky.Estimate(buf, r.skyCfg)
	if err != nil {
		return sentinelTier(spec, err), buf
	}

	buf = cut.CirclePixels(buf[:0], spec.radius)

	m, err := aperture.Measure(buf, bg, r.apOpts)
	if err != nil {
		return sentinelTier(spec, err), buf
	}

	tier := Tier{
		Radius:  spec.radius,
		Inner:   spec.inner,
		Outer:   spec.outer,
		Sky:     bg.Level,
		SkyStd:  bg.Scatter,
		Flux:    m.Flux,
		FluxErr: m.FluxErr,
		Mag:     m.Mag,
		MagErr:  m.MagErr,
		Err:     m.Err(),
	}

	return tier, buf
}

func sentinelTier(spec tierSpec, err error) Tier {
	nan := math.NaN()

	return Tier{
		Radius:  spec.radius,
		Inner:   spec.inner,
		Outer:   spec.outer,
		Sky:     nan,
		SkyStd:  nan,
		Flux:    nan,
		FluxErr: nan,
		Mag:     nan,
		MagErr:  nan,
		Err:     err,
	}
}
