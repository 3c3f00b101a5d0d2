// Package events publishes booking lifecycle events to downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
)

// Type identifies what happened to a booking.
type Type string

const (
	TypeBookingCreated Type = "booking.created"
	TypeStatusChanged  Type = "booking.status_changed"
	TypePaymentSettled Type = "booking.payment_settled"
)

// Event is the message body written to the bus.
type Event struct {
	ID          string            `json:"id"`
	Type        Type              `json:"type"`
	BookingCode string            `json:"booking_code"`
	TripID      string            `json:"trip_id"`
	Status      domain.TripStatus `json:"status,omitempty"`
	Previous    domain.TripStatus `json:"previous,omitempty"`
	TotalPrice  int64             `json:"total_price,omitempty"`
	Payment     string            `json:"payment_status,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// BookingCreated builds the event emitted after a booking is stored.
func BookingCreated(b *domain.Booking, at time.Time) Event {
	return Event{
		ID:          uuid.New().String(),
		Type:        TypeBookingCreated,
		BookingCode: b.Code,
		TripID:      b.Trip.ID,
		Status:      b.Status,
		TotalPrice:  b.TotalPrice,
		OccurredAt:  at,
	}
}

// StatusChanged builds the event emitted after a status transition.
func StatusChanged(b *domain.Booking, previous domain.TripStatus, at time.Time) Event {
	return Event{
		ID:          uuid.New().String(),
		Type:        TypeStatusChanged,
		BookingCode: b.Code,
		TripID:      b.Trip.ID,
		Status:      b.Status,
		Previous:    previous,
		OccurredAt:  at,
	}
}

// PaymentSettled builds the event emitted once a payment reaches a final state.
func PaymentSettled(b *domain.Booking, p *domain.Payment, at time.Time) Event {
	return Event{
		ID:          uuid.New().String(),
		Type:        TypePaymentSettled,
		BookingCode: b.Code,
		TripID:      b.Trip.ID,
		TotalPrice:  p.Amount,
		Payment:     string(p.Status),
		OccurredAt:  at,
	}
}
