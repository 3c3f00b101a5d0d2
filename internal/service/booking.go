package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ridwan89/swiftbus-booking/internal/booking"
	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/events"
	"github.com/ridwan89/swiftbus-booking/internal/pricing"
	"github.com/ridwan89/swiftbus-booking/internal/repository"
)

// TripCatalog is the read-only trip source.
type TripCatalog interface {
	Get(id string) (domain.Trip, error)
}

// BookingService orchestrates quoting and checkout.
type BookingService struct {
	catalog             TripCatalog
	composer            *booking.Composer
	bookingRepo         repository.BookingRepository
	publisher           events.Publisher
	notificationService *NotificationService
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	catalog TripCatalog,
	composer *booking.Composer,
	bookingRepo repository.BookingRepository,
	publisher events.Publisher,
	notificationService *NotificationService,
) *BookingService {
	return &BookingService{
		catalog:             catalog,
		composer:            composer,
		bookingRepo:         bookingRepo,
		publisher:           publisher,
		notificationService: notificationService,
	}
}

// QuoteRequest contains the parameters for pricing a draft selection.
type QuoteRequest struct {
	TripID string
	AddOns domain.AddOnSelection
}

// Quote prices a trip and in-progress add-ons. Locations are not required.
func (s *BookingService) Quote(ctx context.Context, req QuoteRequest) (*pricing.Quote, error) {
	trip, err := s.trip(req.TripID)
	if err != nil {
		return nil, err
	}

	addOns, err := booking.ValidateDraft(req.AddOns)
	if err != nil {
		return nil, err
	}

	quote := pricing.ComputeTotal(trip, addOns.Pickup, addOns.Dropoff)
	return &quote, nil
}

// CreateBookingRequest contains the parameters for checkout.
type CreateBookingRequest struct {
	TripID    string
	AddOns    domain.AddOnSelection
	Passenger domain.Passenger
}

// CreateBooking composes, stores and announces a booking.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	trip, err := s.trip(req.TripID)
	if err != nil {
		return nil, err
	}

	b, err := s.composer.Compose(trip, req.AddOns, req.Passenger)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_code", b.Code).
		Str("trip_id", trip.ID).
		Int64("total_price", b.TotalPrice).
		Bool("pickup", b.Pickup.Enabled).
		Bool("dropoff", b.Dropoff.Enabled).
		Msg("booking created")

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.BookingCreated(b, time.Now())); err != nil {
			log.Warn().Err(err).Str("booking_code", b.Code).Msg("failed to publish booking event")
		}
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyBookingConfirmed(ctx, b)
	}

	return b, nil
}

// GetBooking retrieves a booking by code.
func (s *BookingService) GetBooking(ctx context.Context, code string) (*domain.Booking, error) {
	if code == "" {
		return nil, ErrInvalidBookingCode
	}
	return s.bookingRepo.GetByCode(ctx, code)
}

// ListBookings returns every booking in creation order.
func (s *BookingService) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	return s.bookingRepo.GetAll(ctx)
}

func (s *BookingService) trip(id string) (domain.Trip, error) {
	if id == "" {
		return domain.Trip{}, ErrInvalidTripID
	}
	return s.catalog.Get(id)
}
