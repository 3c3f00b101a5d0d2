package manifest

import "github.com/ridwan89/swiftbus-booking/internal/domain"

// PickupStatusOf derives the manifest pickup status from a booking's journey.
func PickupStatusOf(b *domain.Booking) domain.PickupStatus {
	if !b.Pickup.Enabled {
		return domain.PickupStatusNotApplicable
	}
	switch b.Status {
	case domain.TripStatusWaitingPickup:
		return domain.PickupStatusPending
	case domain.TripStatusDriverOnWay:
		return domain.PickupStatusDriverAssigned
	default:
		return domain.PickupStatusDeliveredToPool
	}
}

// FromBooking turns a live booking into a manifest record.
func FromBooking(b *domain.Booking) domain.PassengerRecord {
	return domain.PassengerRecord{
		ID:             b.Code,
		Name:           b.Passenger.Name,
		Phone:          b.Passenger.Phone,
		TripID:         b.Trip.ID,
		Origin:         b.Trip.Origin,
		Destination:    b.Trip.Destination,
		PickupEnabled:  b.Pickup.Enabled,
		PickupStatus:   PickupStatusOf(b),
		PickupLocation: b.Pickup.Location.Address,
	}
}
