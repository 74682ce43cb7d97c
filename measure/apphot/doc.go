// Package apphot drives aperture photometry over a source catalog: for
// every source and every configured radius tier it estimates the local sky
// from an annulus, sums the aperture flux, and calibrates a magnitude.
//
// A run is source-major, radius-minor. Each tier k measures aperture
// radius R[k] against its own annulus (R_i[k], R_o[k]], so sky statistics
// are recomputed per tier. Radii may be configured in pixels or angular
// units; angular radii resolve against the image pixel scale.
//
// Failure handling follows a per-cell policy: a tier whose aperture or
// annulus leaves the image, whose annulus clips to nothing, or whose flux
// has no magnitude keeps NaN sentinel values and a descriptive error while
// the rest of the image proceeds. Only configuration errors and context
// cancellation abort a run.
//
// # Usage
//
//	cfg := apphot.DefaultConfig()
//	cfg.Radii = []float64{3, 5}
//	cfg.InnerRadii = []float64{6, 6}
//	cfg.OuterRadii = []float64{9, 9}
//
//	p, err := apphot.New(cfg)
//	res, err := p.Run(ctx, im, proj, sources)
//	tab := res.Table() // id, alpha, delta, sky_3, ..., mag_err_5
//
// Progress reporting goes through the [Observer] interface; [LogObserver]
// adapts it to zerolog, [NopObserver] discards it.
package apphot
