package domain

// Trip is a scheduled intercity bus departure from the catalog.
// Trips are loaded once and never mutated; bookings hold a copy.
type Trip struct {
	ID             string   `json:"id" yaml:"id"`
	Operator       string   `json:"operator" yaml:"operator"`
	DepartureTime  string   `json:"departure_time" yaml:"departure_time"` // HH:MM
	ArrivalTime    string   `json:"arrival_time" yaml:"arrival_time"`     // HH:MM
	Duration       string   `json:"duration" yaml:"duration"`
	Origin         string   `json:"origin" yaml:"origin"`
	Destination    string   `json:"destination" yaml:"destination"`
	BasePrice      int64    `json:"base_price" yaml:"base_price"` // IDR
	Class          string   `json:"class" yaml:"class"`
	Amenities      []string `json:"amenities" yaml:"amenities"`
	SeatsAvailable int      `json:"seats_available" yaml:"seats_available"`
}
