package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogReporter writes notifications to a zerolog logger.
type LogReporter struct {
	logger zerolog.Logger
}

// NewLogReporter creates a reporter logging at error level.
func NewLogReporter(logger zerolog.Logger) *LogReporter {
	return &LogReporter{logger: logger.With().Str("component", "notify").Logger()}
}

func (r *LogReporter) Notify(ctx context.Context, err error) {
	ev := r.logger.Error().Err(err)
	if id := ServiceIDFrom(ctx); id != "" {
		ev = ev.Str("service_id", id)
	}
	ev.Msg("User notification")
}

// Clear is a no-op; a log cannot be taken back.
func (r *LogReporter) Clear(ctx context.Context) {}
