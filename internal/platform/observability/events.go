package observability

import (
	"time"

	"github.com/rs/zerolog"
)

// Event is one named occurrence the pipeline driver reports to a
// MetricsSink: a stage starting, a stage ending, or the run reaching a
// terminal status.
type Event struct {
	Name       string
	Stage      string
	CampaignID string
	Duration   *time.Duration
	Metadata   map[string]interface{}
}

// MetricsSink accepts named pipeline events; the reference
// implementation logs them structurally, but this is the seam a
// caller would use to wire an external metrics collector.
type MetricsSink interface {
	Record(event Event)
}

// LoggingSink is a MetricsSink backed by structured zerolog logging.
type LoggingSink struct {
	logger *zerolog.Logger
}

// NewLoggingSink builds a LoggingSink. A nil logger falls back to a
// no-op logger so callers need not guard every Record call.
func NewLoggingSink(logger *zerolog.Logger) *LoggingSink {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &LoggingSink{logger: logger}
}

func (s *LoggingSink) Record(event Event) {
	entry := s.logger.Info().
		Str("event", event.Name).
		Str("stage", event.Stage).
		Str("campaign_id", event.CampaignID)

	if event.Duration != nil {
		entry = entry.Int64("duration_ms", event.Duration.Milliseconds())
	}

	for k, v := range event.Metadata {
		entry = entry.Interface(k, v)
	}

	entry.Msg("pipeline event")
}
