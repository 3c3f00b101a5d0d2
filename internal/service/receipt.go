package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
)

// ReceiptService handles receipt generation.
type ReceiptService struct {
	notificationService *NotificationService
}

// NewReceiptService creates a new ReceiptService.
func NewReceiptService(notificationService *NotificationService) *ReceiptService {
	return &ReceiptService{
		notificationService: notificationService,
	}
}

// GenerateReceiptRequest contains the parameters for generating a receipt.
type GenerateReceiptRequest struct {
	Booking *domain.Booking
	Payment *domain.Payment
}

// GenerateReceipt builds the confirmation for a booking. A missing payment
// is reported as pending.
func (s *ReceiptService) GenerateReceipt(ctx context.Context, req GenerateReceiptRequest) (*domain.Receipt, error) {
	if req.Booking == nil {
		return nil, ErrInvalidBookingCode
	}
	b := req.Booking

	paymentStatus := domain.PaymentStatusPending
	if req.Payment != nil {
		paymentStatus = req.Payment.Status
	}

	receipt := &domain.Receipt{
		ID:            uuid.New().String(),
		BookingCode:   b.Code,
		TripID:        b.Trip.ID,
		Operator:      b.Trip.Operator,
		Origin:        b.Trip.Origin,
		Destination:   b.Trip.Destination,
		DepartureTime: b.Trip.DepartureTime,
		ArrivalTime:   b.Trip.ArrivalTime,
		PickupTime:    b.PickupTime,
		PassengerName: b.Passenger.Name,
		Pickup:        b.Pickup,
		Dropoff:       b.Dropoff,
		BasePrice:     b.Trip.BasePrice,
		PickupPrice:   b.PickupPrice,
		DropoffPrice:  b.DropoffPrice,
		TotalPrice:    b.TotalPrice,
		PaymentStatus: paymentStatus,
		IssuedAt:      time.Now(),
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyReceiptReady(ctx, receipt, b.Passenger.Phone)
	}

	return receipt, nil
}

// FormatReceipt formats the receipt as plain text (for email/print).
func (s *ReceiptService) FormatReceipt(r *domain.Receipt) string {
	var sb strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&sb, format+"\n", args...)
	}

	line("=====================================")
	line("        SWIFTBUS E-RECEIPT")
	line("=====================================")
	line("Booking Code: %s", r.BookingCode)
	line("Receipt ID:   %s", r.ID)
	line("Date:         %s", r.IssuedAt.Format("Jan 02, 2006 3:04 PM"))
	line("")
	line("TRIP DETAILS")
	line("-------------------------------------")
	line("Operator:  %s", r.Operator)
	line("Route:     %s -> %s", r.Origin, r.Destination)
	line("Departure: %s", r.DepartureTime)
	line("Arrival:   %s", r.ArrivalTime)
	line("Passenger: %s", r.PassengerName)
	if r.Pickup.Enabled {
		line("")
		line("PICKUP (%s, %s)", r.Pickup.Provider, r.Pickup.Vehicle)
		line("  From: %s", r.Pickup.Location.Address)
		line("  At:   %s", r.PickupTime)
	}
	if r.Dropoff.Enabled {
		line("")
		line("DROPOFF (%s, %s)", r.Dropoff.Provider, r.Dropoff.Vehicle)
		line("  To:   %s", r.Dropoff.Location.Address)
	}
	line("")
	line("FARE BREAKDOWN")
	line("-------------------------------------")
	line("Bus ticket:      %s", formatRupiah(r.BasePrice))
	if r.Pickup.Enabled {
		line("Pickup:          %s", formatRupiah(r.PickupPrice))
	}
	if r.Dropoff.Enabled {
		line("Dropoff:         %s", formatRupiah(r.DropoffPrice))
	}
	line("-------------------------------------")
	line("TOTAL:           %s", formatRupiah(r.TotalPrice))
	line("")
	line("Payment: %s", r.PaymentStatus)
	line("=====================================")
	line("   Thank you for travelling with us!")
	line("=====================================")
	return sb.String()
}

// TicketPDF renders the receipt as a one-page A4 e-ticket.
func (s *ReceiptService) TicketPDF(r *domain.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+r.BookingCode, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SWIFTBUS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	rows := []string{
		"Booking Code : " + r.BookingCode,
		"Passenger    : " + safe(r.PassengerName, "-"),
		"Operator     : " + safe(r.Operator, "-"),
		"Route        : " + r.Origin + " - " + r.Destination,
		"Departure    : " + safe(r.DepartureTime, "-"),
		"Arrival      : " + safe(r.ArrivalTime, "-"),
	}
	if r.Pickup.Enabled {
		rows = append(rows,
			"Pickup       : "+safe(r.Pickup.Location.Address, "-"),
			"Pickup Time  : "+safe(r.PickupTime, "-"),
		)
	}
	if r.Dropoff.Enabled {
		rows = append(rows, "Dropoff      : "+safe(r.Dropoff.Location.Address, "-"))
	}
	for _, row := range rows {
		pdf.Cell(0, 7, row)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+formatRupiah(r.TotalPrice)+"  ("+string(r.PaymentStatus)+")")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Show this e-ticket to the crew at departure. Valid for one passenger.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func formatRupiah(v int64) string {
	if v <= 0 {
		return "Rp 0"
	}
	s := fmt.Sprintf("%d", v)
	var out []byte
	n := len(s)
	for i := 0; i < n; i++ {
		out = append(out, s[i])
		pos := n - i - 1
		if pos > 0 && pos%3 == 0 {
			out = append(out, '.')
		}
	}
	return "Rp " + string(out)
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
