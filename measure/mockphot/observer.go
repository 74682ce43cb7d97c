package mockphot

import "github.com/rs/zerolog"

// Observer receives progress callbacks from a mock photometry run.
type Observer interface {
	// SEDStart announces one SED's synthesis across all filters and
	// redshift steps.
	SEDStart(sed string, filters, steps int)

	// CellFailed reports one (filter, redshift) cell that recorded a NaN
	// sentinel, with the error that caused it.
	CellFailed(sed, filter string, z float64, err error)

	// SEDDone closes one SED with the number of failed cells.
	SEDDone(sed string, failed int)
}

// NopObserver discards all progress events.
type NopObserver struct{}

func (NopObserver) SEDStart(string, int, int)                 {}
func (NopObserver) CellFailed(string, string, float64, error) {}
func (NopObserver) SEDDone(string, int)                       {}

// LogObserver forwards progress events to a zerolog logger.
type LogObserver struct {
	Log zerolog.Logger
}

// SEDStart logs the synthesis header.
func (o LogObserver) SEDStart(sed string, filters, steps int) {
	o.Log.Info().
		Str("sed", sed).
		Int("filters", filters).
		Int("steps", steps).
		Msg("mock photometry started")
}

// CellFailed logs a sentinel cell with its cause.
func (o LogObserver) CellFailed(sed, filter string, z float64, err error) {
	o.Log.Warn().
		Str("sed", sed).
		Str("filter", filter).
		Float64("z", z).
		Err(err).
		Msg("cell skipped")
}

// SEDDone logs the per-SED summary.
func (o LogObserver) SEDDone(sed string, failed int) {
	o.Log.Info().
		Str("sed", sed).
		Int("failed", failed).
		Msg("mock photometry finished")
}
