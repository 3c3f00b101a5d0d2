package events

import (
	"context"

	"github.com/rs/zerolog/log"
)

// LogPublisher writes events to the application log. It is used when no
// broker is configured.
type LogPublisher struct{}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (LogPublisher) Publish(ctx context.Context, e Event) error {
	log.Info().
		Str("event_id", e.ID).
		Str("type", string(e.Type)).
		Str("booking_code", e.BookingCode).
		Str("trip_id", e.TripID).
		Str("status", string(e.Status)).
		Str("previous", string(e.Previous)).
		Time("occurred_at", e.OccurredAt).
		Msg("booking event")
	return nil
}

func (LogPublisher) Close() error { return nil }
