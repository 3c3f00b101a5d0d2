package manifest

import (
	"strings"
	"testing"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
)

func TestDefaultRoster(t *testing.T) {
	t.Parallel()

	r, err := DefaultRoster()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all := r.All()
	if len(all) != 5 {
		t.Fatalf("expected 5 records, got %d", len(all))
	}

	first := all[0]
	if first.Name != "Ahmad Hidayat" || !first.PickupEnabled || first.PickupStatus != domain.PickupStatusPickedUp {
		t.Errorf("unexpected first record %+v", first)
	}
	if first.PickupLocation != "Jl. Sudirman No. 45, Jakarta Selatan" {
		t.Errorf("quoted location not decoded: %q", first.PickupLocation)
	}
	if all[2].PickupEnabled || all[2].DriverName != "" {
		t.Errorf("record without pickup decoded wrong: %+v", all[2])
	}
}

func TestRoster_ForTrip(t *testing.T) {
	t.Parallel()

	r, err := NewRoster([]domain.PassengerRecord{
		{ID: "a", TripID: "bus-001", PickupStatus: domain.PickupStatusPending},
		{ID: "b", TripID: "bus-002", PickupStatus: domain.PickupStatusPending},
		{ID: "c", TripID: "bus-001", PickupStatus: domain.PickupStatusPending},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ids(r.ForTrip("bus-001"))
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("unexpected records %v", got)
	}
	if len(r.ForTrip("bus-404")) != 0 {
		t.Error("expected no records for unknown trip")
	}
}

func TestRoster_AllReturnsCopy(t *testing.T) {
	t.Parallel()

	r, _ := DefaultRoster()
	all := r.All()
	all[0].Name = "changed"
	if r.All()[0].Name == "changed" {
		t.Error("All must not expose internal storage")
	}
}

func TestLoadRoster_Rejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown status": "id,name,pickup_status\npax-1,A,flying\n",
		"missing id":     "id,name,pickup_status\n,A,pending\n",
		"bad bool":       "id,name,pickup_enabled,pickup_status\npax-1,A,maybe,pending\n",
	}
	for name, data := range tests {
		if _, err := LoadRoster(strings.NewReader(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
