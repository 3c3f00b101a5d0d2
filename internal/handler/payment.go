package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/service"
)

// PaymentHandler handles HTTP requests for payments and receipts.
type PaymentHandler struct {
	bookingService *service.BookingService
	paymentService *service.PaymentService
	receiptService *service.ReceiptService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(bookingService *service.BookingService, paymentService *service.PaymentService, receiptService *service.ReceiptService) *PaymentHandler {
	return &PaymentHandler{
		bookingService: bookingService,
		paymentService: paymentService,
		receiptService: receiptService,
	}
}

// ProcessPaymentRequest is the HTTP request body for processing a payment.
type ProcessPaymentRequest struct {
	Amount int64 `json:"amount"`
}

// PaymentResponse is the HTTP response for payment operations.
type PaymentResponse struct {
	ID             string `json:"id"`
	BookingCode    string `json:"booking_code"`
	Amount         int64  `json:"amount"`
	Status         string `json:"status"`
	IdempotencyKey string `json:"idempotency_key"`
}

// ProcessPayment handles POST /v1/bookings/:code/payment
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount must be positive"})
		return
	}

	payment, err := h.paymentService.ProcessPayment(c.Request.Context(), service.ProcessPaymentRequest{
		BookingCode: c.Param("code"),
		Amount:      req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, PaymentResponse{
		ID:             payment.ID,
		BookingCode:    payment.BookingCode,
		Amount:         payment.Amount,
		Status:         string(payment.Status),
		IdempotencyKey: payment.IdempotencyKey,
	})
}

// GetReceipt handles GET /v1/bookings/:code/receipt
func (h *PaymentHandler) GetReceipt(c *gin.Context) {
	r, err := h.receipt(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.String(http.StatusOK, h.receiptService.FormatReceipt(r))
}

// GetTicketPDF handles GET /v1/bookings/:code/ticket.pdf
func (h *PaymentHandler) GetTicketPDF(c *gin.Context) {
	r, err := h.receipt(c)
	if err != nil {
		respondError(c, err)
		return
	}

	pdf, err := h.receiptService.TicketPDF(r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+r.BookingCode+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// receipt builds the receipt for the booking in the path.
func (h *PaymentHandler) receipt(c *gin.Context) (*domain.Receipt, error) {
	ctx := c.Request.Context()

	b, err := h.bookingService.GetBooking(ctx, c.Param("code"))
	if err != nil {
		return nil, err
	}
	payment, err := h.paymentService.PaymentFor(ctx, b.Code)
	if err != nil {
		return nil, err
	}

	return h.receiptService.GenerateReceipt(ctx, service.GenerateReceiptRequest{Booking: b, Payment: payment})
}
