package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/tracking"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationStatusChanged    NotificationType = "STATUS_CHANGED"
	NotificationPaymentSuccess   NotificationType = "PAYMENT_SUCCESS"
	NotificationPaymentFailed    NotificationType = "PAYMENT_FAILED"
	NotificationReceiptReady     NotificationType = "RECEIPT_READY"
)

// Notification represents a notification to be sent.
type Notification struct {
	ID          string
	Type        NotificationType
	RecipientID string // passenger phone
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationSender delivers a notification to the passenger.
type NotificationSender interface {
	Send(ctx context.Context, n Notification) error
}

// LogSender writes notifications to the application log.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, n Notification) error {
	log.Info().
		Str("notification_id", n.ID).
		Str("type", string(n.Type)).
		Str("recipient", n.RecipientID).
		Str("title", n.Title).
		Fields(n.Data).
		Msg(n.Message)
	return nil
}

// NotificationService handles notification delivery.
type NotificationService struct {
	sender NotificationSender
}

// NewNotificationService creates a NotificationService. A nil sender logs.
func NewNotificationService(sender NotificationSender) *NotificationService {
	if sender == nil {
		sender = LogSender{}
	}
	return &NotificationService{sender: sender}
}

// NotifyBookingConfirmed tells the passenger their booking is in place.
func (s *NotificationService) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error {
	msg := fmt.Sprintf("Booking %s on %s %s to %s departs at %s", b.Code, b.Trip.Operator, b.Trip.Origin, b.Trip.Destination, b.Trip.DepartureTime)
	if b.PickupTime != "" {
		msg += fmt.Sprintf(". Your pickup driver arrives at %s", b.PickupTime)
	}
	return s.send(ctx, Notification{
		Type:        NotificationBookingConfirmed,
		RecipientID: b.Passenger.Phone,
		Title:       "Booking Confirmed",
		Message:     msg,
		Data: map[string]interface{}{
			"booking_code": b.Code,
			"trip_id":      b.Trip.ID,
			"total_price":  b.TotalPrice,
		},
	})
}

// NotifyStatusChanged tells the passenger where their journey is.
func (s *NotificationService) NotifyStatusChanged(ctx context.Context, b *domain.Booking) error {
	return s.send(ctx, Notification{
		Type:        NotificationStatusChanged,
		RecipientID: b.Passenger.Phone,
		Title:       "Trip Update",
		Message:     tracking.Label(b.Status),
		Data: map[string]interface{}{
			"booking_code": b.Code,
			"status":       string(b.Status),
		},
	})
}

// NotifyPaymentSuccess notifies the passenger of successful payment.
func (s *NotificationService) NotifyPaymentSuccess(ctx context.Context, b *domain.Booking, payment *domain.Payment) error {
	return s.send(ctx, Notification{
		Type:        NotificationPaymentSuccess,
		RecipientID: b.Passenger.Phone,
		Title:       "Payment Successful",
		Message:     fmt.Sprintf("Payment of %s for %s was successful", formatRupiah(payment.Amount), b.Code),
		Data: map[string]interface{}{
			"payment_id":   payment.ID,
			"booking_code": b.Code,
			"amount":       payment.Amount,
		},
	})
}

// NotifyPaymentFailed notifies the passenger of failed payment.
func (s *NotificationService) NotifyPaymentFailed(ctx context.Context, b *domain.Booking, payment *domain.Payment) error {
	return s.send(ctx, Notification{
		Type:        NotificationPaymentFailed,
		RecipientID: b.Passenger.Phone,
		Title:       "Payment Failed",
		Message:     fmt.Sprintf("Payment of %s for %s failed. Please try again.", formatRupiah(payment.Amount), b.Code),
		Data: map[string]interface{}{
			"payment_id":   payment.ID,
			"booking_code": b.Code,
			"amount":       payment.Amount,
		},
	})
}

// NotifyReceiptReady notifies the passenger that the receipt is ready.
func (s *NotificationService) NotifyReceiptReady(ctx context.Context, r *domain.Receipt, recipient string) error {
	return s.send(ctx, Notification{
		Type:        NotificationReceiptReady,
		RecipientID: recipient,
		Title:       "Receipt Ready",
		Message:     fmt.Sprintf("Your receipt for %s is ready", formatRupiah(r.TotalPrice)),
		Data: map[string]interface{}{
			"receipt_id":   r.ID,
			"booking_code": r.BookingCode,
			"total_price":  r.TotalPrice,
		},
	})
}

func (s *NotificationService) send(ctx context.Context, n Notification) error {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now()
	return s.sender.Send(ctx, n)
}
