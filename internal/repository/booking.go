package repository

import (
	"context"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking. Returns ErrAlreadyExists if the code is taken.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByCode retrieves a booking by its booking code.
	GetByCode(ctx context.Context, code string) (*domain.Booking, error)

	// GetAll retrieves all bookings in creation order.
	GetAll(ctx context.Context) ([]*domain.Booking, error)

	// UpdateStatus replaces the trip status of a booking.
	UpdateStatus(ctx context.Context, code string, status domain.TripStatus) error
}
