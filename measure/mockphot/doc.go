// Package mockphot predicts observed photometry from spectra: for every
// SED, redshift step and filter it integrates the redshifted spectrum
// against the filter transmission and calibrates a magnitude on a fixed
// reference zero point, optionally expanding each magnitude vector into a
// pairwise color matrix.
//
// SEDs and filters arrive as [sed.Set] values resampled onto one shared
// wavelength grid. A filter whose passband never overlaps the redshifted
// spectrum, or a band whose integral is not positive, yields a NaN
// sentinel in that cell while the run continues; only configuration
// errors and context cancellation abort a run.
//
// # Usage
//
//	cfg := mockphot.DefaultConfig()
//	cfg.Z1, cfg.DZ = 2, 0.1
//	cfg.Colors = true
//
//	r, err := mockphot.New(cfg)
//	results, err := r.Run(ctx, seds, filters)
//	tab := results[0].Table() // z, mag_g, mag_r, ...
package mockphot
