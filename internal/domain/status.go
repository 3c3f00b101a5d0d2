package domain

// TripStatus is a checkpoint in the pickup, bus transit and dropoff journey.
type TripStatus string

const (
	TripStatusWaitingPickup  TripStatus = "waiting_pickup"
	TripStatusDriverOnWay    TripStatus = "driver_on_way"
	TripStatusArrivedAtPool  TripStatus = "arrived_at_pool"
	TripStatusBusDeparted    TripStatus = "bus_departed"
	TripStatusBusArrived     TripStatus = "bus_arrived"
	TripStatusDriverDropping TripStatus = "driver_dropping"
	TripStatusCompleted      TripStatus = "completed"
)

// PickupStatus tracks the pickup leg only, as shown on the manifest.
type PickupStatus string

const (
	PickupStatusNotApplicable   PickupStatus = "not_applicable"
	PickupStatusPending         PickupStatus = "pending"
	PickupStatusDriverAssigned  PickupStatus = "driver_assigned"
	PickupStatusPickedUp        PickupStatus = "picked_up"
	PickupStatusDeliveredToPool PickupStatus = "delivered_to_pool"
)

// PickupStatuses lists every pickup status in display order.
var PickupStatuses = []PickupStatus{
	PickupStatusNotApplicable,
	PickupStatusPending,
	PickupStatusDriverAssigned,
	PickupStatusPickedUp,
	PickupStatusDeliveredToPool,
}
