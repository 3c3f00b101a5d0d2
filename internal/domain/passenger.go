package domain

// PassengerRecord is one manifest line for operations staff.
type PassengerRecord struct {
	ID             string       `json:"id" csv:"id"`
	Name           string       `json:"name" csv:"name"`
	Phone          string       `json:"phone" csv:"phone"`
	SeatNumber     string       `json:"seat_number" csv:"seat_number"`
	TripID         string       `json:"trip_id" csv:"trip_id"`
	Origin         string       `json:"origin" csv:"origin"`
	Destination    string       `json:"destination" csv:"destination"`
	PickupEnabled  bool         `json:"pickup_enabled" csv:"pickup_enabled"`
	PickupStatus   PickupStatus `json:"pickup_status" csv:"pickup_status"`
	DriverName     string       `json:"driver_name,omitempty" csv:"driver_name"`
	DriverPhone    string       `json:"driver_phone,omitempty" csv:"driver_phone"`
	PickupLocation string       `json:"pickup_location,omitempty" csv:"pickup_location"`
}
