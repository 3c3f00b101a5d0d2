package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/events"
	"github.com/ridwan89/swiftbus-booking/internal/repository"
	"github.com/ridwan89/swiftbus-booking/internal/tracking"
)

// TrackingView is a booking's status together with its rendered progress.
type TrackingView struct {
	BookingCode string
	Status      domain.TripStatus
	Label       string
	Steps       []tracking.StepView
	Progress    float64
	Terminal    bool
	// Finished is true when no further transition will change the status.
	Finished bool
}

// TrackingService moves bookings through the trip status machine.
type TrackingService struct {
	bookingRepo         repository.BookingRepository
	policy              tracking.WrapPolicy
	publisher           events.Publisher
	notificationService *NotificationService

	// mu serializes read-advance-write so concurrent advances are not lost.
	mu sync.Mutex
}

// NewTrackingService creates a new TrackingService.
func NewTrackingService(
	bookingRepo repository.BookingRepository,
	policy tracking.WrapPolicy,
	publisher events.Publisher,
	notificationService *NotificationService,
) *TrackingService {
	return &TrackingService{
		bookingRepo:         bookingRepo,
		policy:              policy,
		publisher:           publisher,
		notificationService: notificationService,
	}
}

// Policy returns the wrap policy applied at the completed status.
func (s *TrackingService) Policy() tracking.WrapPolicy {
	return s.policy
}

// View renders the current status of a booking.
func (s *TrackingService) View(ctx context.Context, code string) (*TrackingView, error) {
	if code == "" {
		return nil, ErrInvalidBookingCode
	}
	b, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.view(b.Code, b.Status), nil
}

// Advance moves a booking to its next status and returns the new view.
// Under the stop policy a completed booking is returned unchanged.
func (s *TrackingService) Advance(ctx context.Context, code string) (*TrackingView, error) {
	if code == "" {
		return nil, ErrInvalidBookingCode
	}

	s.mu.Lock()
	b, err := s.bookingRepo.GetByCode(ctx, code)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	previous := b.Status
	next := tracking.Advance(previous, s.policy)
	if next != previous {
		if err := s.bookingRepo.UpdateStatus(ctx, code, next); err != nil {
			s.mu.Unlock()
			return nil, err
		}
	}
	s.mu.Unlock()

	if next == previous {
		return s.view(code, next), nil
	}

	b.Status = next
	log.Debug().
		Str("booking_code", code).
		Str("from", string(previous)).
		Str("to", string(next)).
		Msg("status advanced")

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.StatusChanged(b, previous, time.Now())); err != nil {
			log.Warn().Err(err).Str("booking_code", code).Msg("failed to publish status event")
		}
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyStatusChanged(ctx, b)
	}

	return s.view(code, next), nil
}

func (s *TrackingService) view(code string, status domain.TripStatus) *TrackingView {
	terminal := tracking.IsTerminal(status)
	return &TrackingView{
		BookingCode: code,
		Status:      status,
		Label:       tracking.Label(status),
		Steps:       tracking.RenderSteps(status),
		Progress:    tracking.Progress(status),
		Terminal:    terminal,
		Finished:    terminal && s.policy == tracking.Stop,
	}
}
