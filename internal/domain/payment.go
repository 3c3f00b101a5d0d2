package domain

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment represents a payment for a booking.
type Payment struct {
	ID             string
	BookingCode    string
	Amount         int64
	Status         PaymentStatus
	IdempotencyKey string
}
