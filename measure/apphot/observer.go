package apphot

import "github.com/rs/zerolog"

// Observer receives progress callbacks from a photometry run.
// Implementations must be safe for concurrent use when Config.Workers
// exceeds one: SourceDone and TierFailed fire from worker goroutines.
type Observer interface {
	// ImageStart announces a run over one image.
	ImageStart(image string, sources, tiers int)

	// SourceDone reports one fully measured source, sentinel tiers
	// included.
	SourceDone(image string, src Source)

	// TierFailed reports a radius tier that recorded sentinel values,
	// with enough context to locate the cell.
	TierFailed(image string, src Source, radius float64, err error)

	// ImageDone closes the run with the number of failed tier cells.
	ImageDone(image string, failed int)
}

// NopObserver discards all progress events.
type NopObserver struct{}

func (NopObserver) ImageStart(string, int, int)               {}
func (NopObserver) SourceDone(string, Source)                 {}
func (NopObserver) TierFailed(string, Source, float64, error) {}
func (NopObserver) ImageDone(string, int)                     {}

// LogObserver forwards progress events to a zerolog logger. zerolog
// loggers are safe for concurrent use, so LogObserver works with any
// worker count.
type LogObserver struct {
	Log zerolog.Logger
}

// ImageStart logs the run header.
func (o LogObserver) ImageStart(image string, sources, tiers int) {
	o.Log.Info().
		Str("image", image).
		Int("sources", sources).
		Int("tiers", tiers).
		Msg("photometry started")
}

// SourceDone logs one measured source at debug level.
func (o LogObserver) SourceDone(image string, src Source) {
	o.Log.Debug().
		Str("image", image).
		Int64("source", src.ID).
		Msg("source measured")
}

// TierFailed logs a sentinel cell with its cause.
func (o LogObserver) TierFailed(image string, src Source, radius float64, err error) {
	o.Log.Warn().
		Str("image", image).
		Int64("source", src.ID).
		Float64("radius", radius).
		Err(err).
		Msg("tier skipped")
}

// ImageDone logs the run summary.
func (o LogObserver) ImageDone(image string, failed int) {
	o.Log.Info().
		Str("image", image).
		Int("failed", failed).
		Msg("photometry finished")
}
