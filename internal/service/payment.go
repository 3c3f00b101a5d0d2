package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/events"
	"github.com/ridwan89/swiftbus-booking/internal/repository"
)

// PSP is the interface for a Payment Service Provider.
type PSP interface {
	Charge(ctx context.Context, amount int64) (bool, error)
}

// SimulatedPSP stands in for a real provider: it waits for delay and approves.
type SimulatedPSP struct {
	delay time.Duration
}

// NewSimulatedPSP creates a SimulatedPSP with the given round-trip delay.
func NewSimulatedPSP(delay time.Duration) *SimulatedPSP {
	return &SimulatedPSP{delay: delay}
}

// Charge waits out the simulated round trip. It fails only when ctx ends first.
func (p *SimulatedPSP) Charge(ctx context.Context, amount int64) (bool, error) {
	if p.delay <= 0 {
		return true, nil
	}
	t := time.NewTimer(p.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-t.C:
		return true, nil
	}
}

// PaymentConfig bounds the PSP retry loop.
type PaymentConfig struct {
	MaxRetries     uint64
	InitialBackoff time.Duration
}

// PaymentService handles payment operations.
type PaymentService struct {
	paymentRepo         repository.PaymentRepository
	bookingRepo         repository.BookingRepository
	psp                 PSP
	cfg                 PaymentConfig
	publisher           events.Publisher
	notificationService *NotificationService
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	psp PSP,
	cfg PaymentConfig,
	publisher events.Publisher,
	notificationService *NotificationService,
) *PaymentService {
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 200 * time.Millisecond
	}
	return &PaymentService{
		paymentRepo:         paymentRepo,
		bookingRepo:         bookingRepo,
		psp:                 psp,
		cfg:                 cfg,
		publisher:           publisher,
		notificationService: notificationService,
	}
}

// ProcessPaymentRequest contains the parameters for processing a payment.
// A zero Amount charges the booking total.
type ProcessPaymentRequest struct {
	BookingCode string
	Amount      int64
}

// ProcessPayment charges a booking once. Repeated calls return the first payment.
func (s *PaymentService) ProcessPayment(ctx context.Context, req ProcessPaymentRequest) (*domain.Payment, error) {
	if req.BookingCode == "" {
		return nil, ErrInvalidBookingCode
	}

	b, err := s.bookingRepo.GetByCode(ctx, req.BookingCode)
	if err != nil {
		return nil, err
	}

	amount := req.Amount
	if amount == 0 {
		amount = b.TotalPrice
	}
	if amount != b.TotalPrice {
		return nil, ErrInvalidPaymentAmount
	}

	// Generate idempotency key based on booking code.
	idempotencyKey := fmt.Sprintf("payment:%s", b.Code)

	existingPayment, err := s.paymentRepo.GetByIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if existingPayment != nil {
		return existingPayment, nil
	}

	payment := &domain.Payment{
		ID:             uuid.New().String(),
		BookingCode:    b.Code,
		Amount:         amount,
		Status:         domain.PaymentStatusPending,
		IdempotencyKey: idempotencyKey,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			// Lost a race with a concurrent request for the same booking.
			return s.paymentRepo.GetByIdempotencyKey(ctx, idempotencyKey)
		}
		return nil, err
	}

	success, err := s.charge(ctx, amount)
	status := domain.PaymentStatusFailed
	if err == nil && success {
		status = domain.PaymentStatusSuccess
	}
	if err != nil {
		log.Warn().Err(err).Str("booking_code", b.Code).Msg("psp charge failed")
	}

	if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, status); err != nil {
		return nil, err
	}
	payment.Status = status

	s.announce(ctx, b, payment)
	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}

	return s.paymentRepo.GetByID(ctx, paymentID)
}

// PaymentFor returns the payment recorded for a booking, or nil if none.
func (s *PaymentService) PaymentFor(ctx context.Context, code string) (*domain.Payment, error) {
	return s.paymentRepo.GetByIdempotencyKey(ctx, fmt.Sprintf("payment:%s", code))
}

// charge calls the PSP, retrying errors with exponential backoff. A decline
// is an answer, not an error, and is not retried.
func (s *PaymentService) charge(ctx context.Context, amount int64) (bool, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.cfg.InitialBackoff
	b := backoff.WithContext(backoff.WithMaxRetries(eb, s.cfg.MaxRetries), ctx)

	var approved bool
	err := backoff.Retry(func() error {
		ok, err := s.psp.Charge(ctx, amount)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		approved = ok
		return nil
	}, b)
	return approved, err
}

func (s *PaymentService) announce(ctx context.Context, b *domain.Booking, payment *domain.Payment) {
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.PaymentSettled(b, payment, time.Now())); err != nil {
			log.Warn().Err(err).Str("booking_code", b.Code).Msg("failed to publish payment event")
		}
	}
	if s.notificationService == nil {
		return
	}
	if payment.Status == domain.PaymentStatusSuccess {
		_ = s.notificationService.NotifyPaymentSuccess(ctx, b, payment)
	} else {
		_ = s.notificationService.NotifyPaymentFailed(ctx, b, payment)
	}
}
