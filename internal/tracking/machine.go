// Package tracking implements the journey status machine and the step view
// derived from it.
package tracking

import (
	"fmt"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
)

// WrapPolicy decides what Advance does once a journey is completed.
type WrapPolicy int

const (
	// Stop keeps a completed journey completed.
	Stop WrapPolicy = iota
	// Loop restarts a completed journey at waiting_pickup, for demo playback.
	Loop
)

// order is the strict total order of statuses.
var order = []domain.TripStatus{
	domain.TripStatusWaitingPickup,
	domain.TripStatusDriverOnWay,
	domain.TripStatusArrivedAtPool,
	domain.TripStatusBusDeparted,
	domain.TripStatusBusArrived,
	domain.TripStatusDriverDropping,
	domain.TripStatusCompleted,
}

var position = func() map[domain.TripStatus]int {
	m := make(map[domain.TripStatus]int, len(order))
	for i, s := range order {
		m[s] = i
	}
	return m
}()

var labels = map[domain.TripStatus]string{
	domain.TripStatusWaitingPickup:  "Waiting for pickup",
	domain.TripStatusDriverOnWay:    "Driver is on the way",
	domain.TripStatusArrivedAtPool:  "Arrived at the bus pool",
	domain.TripStatusBusDeparted:    "Bus on the road",
	domain.TripStatusBusArrived:     "Bus arrived at destination",
	domain.TripStatusDriverDropping: "Driver heading to final destination",
	domain.TripStatusCompleted:      "Journey completed",
}

// Initial is the status every new booking starts in.
const Initial = domain.TripStatusWaitingPickup

// Statuses returns all statuses in journey order.
func Statuses() []domain.TripStatus {
	out := make([]domain.TripStatus, len(order))
	copy(out, order)
	return out
}

// Parse validates a status string.
func Parse(s string) (domain.TripStatus, error) {
	st := domain.TripStatus(s)
	if _, ok := position[st]; !ok {
		return "", fmt.Errorf("unknown trip status: %s", s)
	}
	return st, nil
}

// Advance returns the status that follows s. From completed it either stays
// put or wraps to the initial status depending on p.
// It panics when s is not a known status.
func Advance(s domain.TripStatus, p WrapPolicy) domain.TripStatus {
	i := mustPosition(s)
	if i < len(order)-1 {
		return order[i+1]
	}
	if p == Loop {
		return order[0]
	}
	return s
}

// IsTerminal reports whether s is the last checkpoint of the journey.
func IsTerminal(s domain.TripStatus) bool {
	return mustPosition(s) == len(order)-1
}

// Label returns a rider-facing message for s.
func Label(s domain.TripStatus) string {
	mustPosition(s)
	return labels[s]
}

func mustPosition(s domain.TripStatus) int {
	i, ok := position[s]
	if !ok {
		panic(fmt.Sprintf("tracking: undefined trip status %q", s))
	}
	return i
}
