// Package booking validates checkout input and composes priced bookings.
package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/pricing"
	"github.com/ridwan89/swiftbus-booking/internal/tracking"
)

// pickupBuffer is how long before departure the pickup driver arrives.
const pickupBuffer = time.Hour

// Composer turns a trip, add-ons and passenger into a Booking.
type Composer struct {
	codes CodeGenerator
	now   func() time.Time
}

// NewComposer creates a Composer. A nil now uses time.Now.
func NewComposer(codes CodeGenerator, now func() time.Time) *Composer {
	if now == nil {
		now = time.Now
	}
	return &Composer{codes: codes, now: now}
}

// Compose validates the input and returns an immutable booking, or a
// *ValidationError naming the first offending field.
func (c *Composer) Compose(trip domain.Trip, addOns domain.AddOnSelection, passenger domain.Passenger) (*domain.Booking, error) {
	if err := validateTrip(trip); err != nil {
		return nil, err
	}

	passenger = domain.Passenger{
		Name:  strings.TrimSpace(passenger.Name),
		Phone: strings.TrimSpace(passenger.Phone),
		Email: strings.TrimSpace(passenger.Email),
	}
	if err := validatePassenger(passenger); err != nil {
		return nil, err
	}

	pickup, err := commitLeg("pickup", addOns.Pickup)
	if err != nil {
		return nil, err
	}
	dropoff, err := commitLeg("dropoff", addOns.Dropoff)
	if err != nil {
		return nil, err
	}

	quote := pricing.ComputeTotal(trip, pickup, dropoff)

	b := &domain.Booking{
		Code:         c.codes.Next(),
		Trip:         trip,
		Passenger:    passenger,
		Pickup:       pickup,
		Dropoff:      dropoff,
		PickupPrice:  quote.PickupPrice,
		DropoffPrice: quote.DropoffPrice,
		TotalPrice:   quote.Total,
		Status:       tracking.Initial,
		CreatedAt:    c.now(),
	}
	if pickup.Enabled {
		b.PickupTime = PickupTime(trip.DepartureTime)
	}

	return b, nil
}

// ValidateDraft normalizes an in-progress selection for quoting. Locations
// are not required yet.
func ValidateDraft(addOns domain.AddOnSelection) (domain.AddOnSelection, error) {
	pickup, err := normalizeLeg("pickup", addOns.Pickup)
	if err != nil {
		return domain.AddOnSelection{}, err
	}
	dropoff, err := normalizeLeg("dropoff", addOns.Dropoff)
	if err != nil {
		return domain.AddOnSelection{}, err
	}
	return domain.AddOnSelection{Pickup: pickup, Dropoff: dropoff}, nil
}

// PickupTime returns departure minus the pickup buffer as HH:MM, wrapping
// past midnight. Unparseable input yields an empty string.
func PickupTime(departure string) string {
	t, err := time.Parse("15:04", departure)
	if err != nil {
		return ""
	}
	return t.Add(-pickupBuffer).Format("15:04")
}

func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.ID) == "" {
		return invalid("trip", "trip is required")
	}
	if trip.BasePrice <= 0 {
		return invalid("trip", fmt.Sprintf("trip %s has no valid price", trip.ID))
	}
	return nil
}

func validatePassenger(p domain.Passenger) error {
	switch {
	case p.Name == "":
		return invalid("passenger.name", "name is required")
	case p.Phone == "":
		return invalid("passenger.phone", "phone is required")
	case p.Email == "":
		return invalid("passenger.email", "email is required")
	}
	return nil
}

func normalizeLeg(name string, leg domain.LegSelection) (domain.LegSelection, error) {
	if !leg.Enabled {
		return domain.LegSelection{}, nil
	}

	vehicle, err := domain.ParseVehicleCategory(string(leg.Vehicle))
	if err != nil {
		return domain.LegSelection{}, invalid(name+".vehicle", err.Error())
	}
	provider, err := domain.ParseProvider(string(leg.Provider))
	if err != nil {
		return domain.LegSelection{}, invalid(name+".provider", err.Error())
	}

	leg.Vehicle = vehicle
	leg.Provider = provider
	leg.Location.Address = strings.TrimSpace(leg.Location.Address)
	if leg.Location.Coordinate != nil {
		c := *leg.Location.Coordinate
		leg.Location.Coordinate = &c
	}
	return leg, nil
}

func commitLeg(name string, leg domain.LegSelection) (domain.LegSelection, error) {
	leg, err := normalizeLeg(name, leg)
	if err != nil || !leg.Enabled {
		return leg, err
	}

	if leg.Location.IsEmpty() {
		return domain.LegSelection{}, invalid(name+".location", "location is required")
	}
	if leg.Location.Coordinate != nil && !leg.Location.Coordinate.Valid() {
		return domain.LegSelection{}, invalid(name+".location", "coordinate out of range")
	}
	return leg, nil
}
