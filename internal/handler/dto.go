package handler

import (
	"time"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/service"
	"github.com/ridwan89/swiftbus-booking/internal/tracking"
)

// LocationRequest is a free-text address with an optional map pin.
type LocationRequest struct {
	Address string   `json:"address"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// LegRequest is one pick & drop leg of a request body.
type LegRequest struct {
	Enabled  bool            `json:"enabled"`
	Vehicle  string          `json:"vehicle"`
	Provider string          `json:"provider"`
	Location LocationRequest `json:"location"`
}

func (r LegRequest) toDomain() domain.LegSelection {
	leg := domain.LegSelection{
		Enabled:  r.Enabled,
		Vehicle:  domain.VehicleCategory(r.Vehicle),
		Provider: domain.Provider(r.Provider),
		Location: domain.Location{Address: r.Location.Address},
	}
	if r.Location.Lat != nil && r.Location.Lng != nil {
		leg.Location.Coordinate = &domain.Coordinate{Lat: *r.Location.Lat, Lng: *r.Location.Lng}
	}
	return leg
}

// LegResponse is a committed leg in a response.
type LegResponse struct {
	Enabled  bool     `json:"enabled"`
	Vehicle  string   `json:"vehicle,omitempty"`
	Provider string   `json:"provider,omitempty"`
	Address  string   `json:"address,omitempty"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	Price    int64    `json:"price"`
}

func newLegResponse(leg domain.LegSelection, price int64) LegResponse {
	r := LegResponse{
		Enabled:  leg.Enabled,
		Vehicle:  string(leg.Vehicle),
		Provider: string(leg.Provider),
		Address:  leg.Location.Address,
		Price:    price,
	}
	if c := leg.Location.Coordinate; c != nil {
		lat, lng := c.Lat, c.Lng
		r.Lat, r.Lng = &lat, &lng
	}
	return r
}

// BookingResponse is the HTTP response for booking operations.
type BookingResponse struct {
	Code       string           `json:"code"`
	Trip       domain.Trip      `json:"trip"`
	Passenger  domain.Passenger `json:"passenger"`
	Pickup     LegResponse      `json:"pickup"`
	Dropoff    LegResponse      `json:"dropoff"`
	PickupTime string           `json:"pickup_time,omitempty"`
	TotalPrice int64            `json:"total_price"`
	Status     string           `json:"status"`
	CreatedAt  string           `json:"created_at"`
}

func newBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		Code:       b.Code,
		Trip:       b.Trip,
		Passenger:  b.Passenger,
		Pickup:     newLegResponse(b.Pickup, b.PickupPrice),
		Dropoff:    newLegResponse(b.Dropoff, b.DropoffPrice),
		PickupTime: b.PickupTime,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

// TrackingResponse is the HTTP response for tracking operations.
type TrackingResponse struct {
	Code     string              `json:"code"`
	Status   string              `json:"status"`
	Label    string              `json:"label"`
	Steps    []tracking.StepView `json:"steps"`
	Progress float64             `json:"progress"`
	Terminal bool                `json:"terminal"`
	Playing  bool                `json:"playing"`
}

func newTrackingResponse(v *service.TrackingView, playing bool) TrackingResponse {
	return TrackingResponse{
		Code:     v.BookingCode,
		Status:   string(v.Status),
		Label:    v.Label,
		Steps:    v.Steps,
		Progress: v.Progress,
		Terminal: v.Terminal,
		Playing:  playing,
	}
}
