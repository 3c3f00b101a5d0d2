// Package memory holds map-backed repositories for a single process.
package memory

import (
	"context"
	"sync"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/repository"
)

// BookingRepository is an in-memory implementation of repository.BookingRepository.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
	order    []string
}

// NewBookingRepository creates an empty booking repository.
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.Code]; ok {
		return repository.ErrAlreadyExists
	}
	r.bookings[booking.Code] = cloneBooking(booking)
	r.order = append(r.order, booking.Code)
	return nil
}

// GetByCode retrieves a booking by code.
func (r *BookingRepository) GetByCode(ctx context.Context, code string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[code]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneBooking(b), nil
}

// GetAll retrieves all bookings in creation order.
func (r *BookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Booking, 0, len(r.order))
	for _, code := range r.order {
		result = append(result, cloneBooking(r.bookings[code]))
	}
	return result, nil
}

// UpdateStatus replaces the trip status of a booking.
func (r *BookingRepository) UpdateStatus(ctx context.Context, code string, status domain.TripStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[code]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	return nil
}

// cloneBooking returns a copy that shares nothing mutable with b.
func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	c.Trip.Amenities = append([]string(nil), b.Trip.Amenities...)
	c.Pickup.Location.Coordinate = cloneCoordinate(b.Pickup.Location.Coordinate)
	c.Dropoff.Location.Coordinate = cloneCoordinate(b.Dropoff.Location.Coordinate)
	return &c
}

func cloneCoordinate(c *domain.Coordinate) *domain.Coordinate {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

var _ repository.BookingRepository = (*BookingRepository)(nil)
