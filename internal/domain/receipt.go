package domain

import "time"

// Receipt is the confirmation handed to the passenger after checkout.
type Receipt struct {
	ID            string
	BookingCode   string
	TripID        string
	Operator      string
	Origin        string
	Destination   string
	DepartureTime string
	ArrivalTime   string
	PickupTime    string
	PassengerName string
	Pickup        LegSelection
	Dropoff       LegSelection
	BasePrice     int64
	PickupPrice   int64
	DropoffPrice  int64
	TotalPrice    int64
	PaymentStatus PaymentStatus
	IssuedAt      time.Time
}
