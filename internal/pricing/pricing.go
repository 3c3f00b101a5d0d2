// Package pricing computes pick & drop add-on prices and booking totals.
//
// Every function here is pure: identical inputs always produce identical
// outputs and nothing is read from or written to the outside world.
package pricing

import (
	"fmt"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
)

// Tier is a distance bucket for a pick & drop leg.
type Tier string

const (
	TierShort  Tier = "short"  // < 5 km
	TierMedium Tier = "medium" // 5-10 km
	TierLong   Tier = "long"   // > 10 km
)

// DefaultTier is applied to every leg. Distance is never measured, so tier
// selection from real routes does not happen.
const DefaultTier = TierMedium

var tierRates = map[Tier]int64{
	TierShort:  15000,
	TierMedium: 25000,
	TierLong:   40000,
}

// vehicleMultipliers are expressed in tenths so that rounding stays exact.
var vehicleMultipliers = map[domain.VehicleCategory]int64{
	domain.VehicleMotor: 10, // x1.0
	domain.VehicleCar:   18, // x1.8
}

// Quote is the price breakdown for a single passenger.
type Quote struct {
	BasePrice    int64 `json:"base_price"`
	PickupPrice  int64 `json:"pickup_price"`
	DropoffPrice int64 `json:"dropoff_price"`
	Total        int64 `json:"total"`
}

// BaseRate returns the flat rate for a tier. It panics on an unknown tier.
func BaseRate(t Tier) int64 {
	rate, ok := tierRates[t]
	if !ok {
		panic(fmt.Sprintf("pricing: unknown tier %q", t))
	}
	return rate
}

// ComputeAddOnPrice applies the vehicle multiplier to baseRate and rounds
// half up to a whole currency unit. It panics on an unknown vehicle or a
// negative rate.
func ComputeAddOnPrice(baseRate int64, vehicle domain.VehicleCategory) int64 {
	if baseRate < 0 {
		panic(fmt.Sprintf("pricing: negative base rate %d", baseRate))
	}
	m, ok := vehicleMultipliers[vehicle]
	if !ok {
		panic(fmt.Sprintf("pricing: unknown vehicle category %q", vehicle))
	}
	return (baseRate*m + 5) / 10
}

// LegPrice prices one leg at the default tier. A disabled leg is free no
// matter what else it carries.
func LegPrice(leg domain.LegSelection) int64 {
	if !leg.Enabled {
		return 0
	}
	return ComputeAddOnPrice(BaseRate(DefaultTier), leg.Vehicle)
}

// ComputeTotal prices a trip with its pickup and dropoff legs.
// It panics when the trip carries a negative base price.
func ComputeTotal(trip domain.Trip, pickup, dropoff domain.LegSelection) Quote {
	if trip.BasePrice < 0 {
		panic(fmt.Sprintf("pricing: trip %s has negative base price %d", trip.ID, trip.BasePrice))
	}

	q := Quote{
		BasePrice:    trip.BasePrice,
		PickupPrice:  LegPrice(pickup),
		DropoffPrice: LegPrice(dropoff),
	}
	q.Total = q.BasePrice + q.PickupPrice + q.DropoffPrice
	return q
}
