package tracking

import (
	"testing"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
)

func TestAdvance_FollowsJourneyOrder(t *testing.T) {
	t.Parallel()

	want := []domain.TripStatus{
		domain.TripStatusDriverOnWay,
		domain.TripStatusArrivedAtPool,
		domain.TripStatusBusDeparted,
		domain.TripStatusBusArrived,
		domain.TripStatusDriverDropping,
		domain.TripStatusCompleted,
	}

	status := Initial
	for i, expected := range want {
		status = Advance(status, Stop)
		if status != expected {
			t.Fatalf("step %d: expected %s, got %s", i+1, expected, status)
		}
	}
}

func TestAdvance_LoopCycleLengthIsSeven(t *testing.T) {
	t.Parallel()

	status := domain.TripStatusWaitingPickup
	for i := 0; i < 7; i++ {
		status = Advance(status, Loop)
		if i < 6 && status == domain.TripStatusWaitingPickup {
			t.Fatalf("returned to start early after %d advances", i+1)
		}
	}

	if status != domain.TripStatusWaitingPickup {
		t.Errorf("expected %s after 7 advances, got %s", domain.TripStatusWaitingPickup, status)
	}
}

func TestAdvance_StopPolicyHoldsCompleted(t *testing.T) {
	t.Parallel()

	if got := Advance(domain.TripStatusCompleted, Stop); got != domain.TripStatusCompleted {
		t.Errorf("expected completed to stay completed, got %s", got)
	}
}

func TestAdvance_UndefinedStatusPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for undefined status")
		}
	}()
	Advance(domain.TripStatus("teleported"), Stop)
}

func TestParse(t *testing.T) {
	t.Parallel()

	for _, s := range Statuses() {
		got, err := Parse(string(s))
		if err != nil {
			t.Errorf("parse %s: unexpected error: %v", s, err)
		}
		if got != s {
			t.Errorf("parse %s: got %s", s, got)
		}
	}

	if _, err := Parse("COMPLETED"); err == nil {
		t.Error("expected error for wrong-case status")
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	for _, s := range Statuses() {
		if IsTerminal(s) != (s == domain.TripStatusCompleted) {
			t.Errorf("IsTerminal(%s) = %v", s, IsTerminal(s))
		}
	}
}

func TestLabel_EveryStatusHasMessage(t *testing.T) {
	t.Parallel()

	for _, s := range Statuses() {
		if Label(s) == "" {
			t.Errorf("missing label for %s", s)
		}
	}
}
