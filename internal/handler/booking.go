package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/service"
)

// BookingHandler handles HTTP requests for quotes and bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// QuoteRequest is the HTTP request body for pricing a draft.
type QuoteRequest struct {
	TripID  string     `json:"trip_id"`
	Pickup  LegRequest `json:"pickup"`
	Dropoff LegRequest `json:"dropoff"`
}

// CreateBookingRequest is the HTTP request body for checkout.
type CreateBookingRequest struct {
	TripID    string           `json:"trip_id"`
	Passenger domain.Passenger `json:"passenger"`
	Pickup    LegRequest       `json:"pickup"`
	Dropoff   LegRequest       `json:"dropoff"`
}

// Quote handles POST /v1/quotes
func (h *BookingHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	quote, err := h.bookingService.Quote(c.Request.Context(), service.QuoteRequest{
		TripID: req.TripID,
		AddOns: domain.AddOnSelection{Pickup: req.Pickup.toDomain(), Dropoff: req.Dropoff.toDomain()},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, quote)
}

// CreateBooking handles POST /v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	b, err := h.bookingService.CreateBooking(c.Request.Context(), service.CreateBookingRequest{
		TripID:    req.TripID,
		AddOns:    domain.AddOnSelection{Pickup: req.Pickup.toDomain(), Dropoff: req.Dropoff.toDomain()},
		Passenger: req.Passenger,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newBookingResponse(b))
}

// GetAll handles GET /v1/bookings
func (h *BookingHandler) GetAll(c *gin.Context) {
	bookings, err := h.bookingService.ListBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, newBookingResponse(b))
	}
	respondJSON(c, http.StatusOK, gin.H{"bookings": out})
}

// GetBooking handles GET /v1/bookings/:code
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, newBookingResponse(b))
}
