package domain

import "time"

// Passenger is the identity captured at checkout.
type Passenger struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Booking is a priced, committed ticket with its pick & drop add-ons.
// Everything except Status is fixed once the booking is composed.
type Booking struct {
	Code         string
	Trip         Trip
	Passenger    Passenger
	Pickup       LegSelection
	Dropoff      LegSelection
	PickupPrice  int64
	DropoffPrice int64
	TotalPrice   int64
	PickupTime   string // HH:MM, empty when pickup is disabled
	Status       TripStatus
	CreatedAt    time.Time
}
