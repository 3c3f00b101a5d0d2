package domain

import (
	"fmt"
	"strings"
)

// VehicleCategory is the kind of vehicle used for a pick & drop leg.
type VehicleCategory string

const (
	VehicleMotor VehicleCategory = "motor" // two-wheeler
	VehicleCar   VehicleCategory = "car"   // four-wheeler
)

// Provider is the ride-hailing partner fulfilling a leg.
type Provider string

const (
	ProviderGojek Provider = "gojek"
	ProviderGrab  Provider = "grab"
)

// ParseVehicleCategory validates a vehicle category string.
// An empty value defaults to a two-wheeler.
func ParseVehicleCategory(s string) (VehicleCategory, error) {
	switch v := VehicleCategory(strings.ToLower(strings.TrimSpace(s))); v {
	case VehicleMotor, VehicleCar:
		return v, nil
	case "":
		return VehicleMotor, nil
	default:
		return "", fmt.Errorf("unknown vehicle category: %s", s)
	}
}

// ParseProvider validates a provider string. An empty value defaults to Gojek.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(s))); p {
	case ProviderGojek, ProviderGrab:
		return p, nil
	case "":
		return ProviderGojek, nil
	default:
		return "", fmt.Errorf("unknown provider: %s", s)
	}
}

// Coordinate is a map-picked point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate lies on the globe.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Location describes where a leg starts or ends: either a typed address or a
// map-picked coordinate with its resolved address.
type Location struct {
	Address    string      `json:"address"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

// IsEmpty reports whether the location carries no usable address.
func (l Location) IsEmpty() bool {
	return strings.TrimSpace(l.Address) == ""
}

// LegSelection is the add-on choice for one leg (pickup or dropoff).
// While a selection is still a draft, Location may be empty even when
// Enabled is true.
type LegSelection struct {
	Enabled  bool            `json:"enabled"`
	Vehicle  VehicleCategory `json:"vehicle,omitempty"`
	Provider Provider        `json:"provider,omitempty"`
	Location Location        `json:"location"`
}

// AddOnSelection holds both pick & drop legs.
type AddOnSelection struct {
	Pickup  LegSelection `json:"pickup"`
	Dropoff LegSelection `json:"dropoff"`
}
