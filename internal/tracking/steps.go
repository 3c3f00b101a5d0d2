package tracking

import "github.com/ridwan89/swiftbus-booking/internal/domain"

// StepState is the visual state of a display step.
type StepState string

const (
	StepCompleted StepState = "completed"
	StepActive    StepState = "active"
	StepPending   StepState = "pending"
)

// StepView is one row of the journey timeline.
type StepView struct {
	ID          int       `json:"id"`
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	State       StepState `json:"state"`
}

type step struct {
	key, title, description, icon string
}

// The display has five steps while the enum has seven statuses.
var steps = []step{
	{"pickup_drive", "Driver picking you up", "Your driver is heading to the pickup point", "motorcycle"},
	{"arrive_at_pool", "Arrived at the bus pool", "You reached the departure terminal", "building"},
	{"bus_departed", "Bus departed", "The intercity leg has started", "bus"},
	{"bus_arrived", "Bus arrived at destination pool", "Welcome to your destination city", "building"},
	{"final_drop", "Driver dropping you off", "Your driver is taking you to the final address", "motorcycle"},
}

// stepIndex maps each status onto the display. completed points one past the
// last step so that every step renders as completed.
var stepIndex = map[domain.TripStatus]int{
	domain.TripStatusWaitingPickup:  0,
	domain.TripStatusDriverOnWay:    0,
	domain.TripStatusArrivedAtPool:  1,
	domain.TripStatusBusDeparted:    2,
	domain.TripStatusBusArrived:     3,
	domain.TripStatusDriverDropping: 4,
	domain.TripStatusCompleted:      5,
}

// StepCount is the number of display steps.
func StepCount() int { return len(steps) }

// StepIndex returns the display index s maps to. It panics on an unknown status.
func StepIndex(s domain.TripStatus) int {
	mustPosition(s)
	return stepIndex[s]
}

// RenderSteps derives the timeline for s. A step before the mapped index is
// completed, the step at it is active and later ones are pending. Nothing is
// active while waiting for pickup since no leg has been dispatched yet.
func RenderSteps(s domain.TripStatus) []StepView {
	current := StepIndex(s)
	dispatched := s != domain.TripStatusWaitingPickup

	views := make([]StepView, len(steps))
	for i, st := range steps {
		state := StepPending
		switch {
		case i < current:
			state = StepCompleted
		case i == current && dispatched:
			state = StepActive
		}
		views[i] = StepView{
			ID:          i + 1,
			Key:         st.key,
			Title:       st.title,
			Description: st.description,
			Icon:        st.icon,
			State:       state,
		}
	}
	return views
}

// Progress returns the fraction of completed steps, from 0 to 1.
func Progress(s domain.TripStatus) float64 {
	return float64(StepIndex(s)) / float64(len(steps))
}
