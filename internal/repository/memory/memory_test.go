package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/repository"
)

func newBooking(code string) *domain.Booking {
	return &domain.Booking{
		Code:   code,
		Trip:   domain.Trip{ID: "bus-001", BasePrice: 350000, Amenities: []string{"AC"}},
		Status: domain.TripStatusWaitingPickup,
		Pickup: domain.LegSelection{
			Enabled:  true,
			Location: domain.Location{Address: "Jl. Sudirman", Coordinate: &domain.Coordinate{Lat: -6.2, Lng: 106.8}},
		},
	}
}

func TestBookingRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewBookingRepository()

	if err := repo.Create(ctx, newBooking("SWB-00000001")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(ctx, newBooking("SWB-00000001")); !errors.Is(err, repository.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}

	got, err := repo.GetByCode(ctx, "SWB-00000001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Trip.ID != "bus-001" || got.Status != domain.TripStatusWaitingPickup {
		t.Errorf("unexpected booking %+v", got)
	}

	if _, err := repo.GetByCode(ctx, "SWB-404"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingRepository_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewBookingRepository()
	in := newBooking("SWB-00000002")
	_ = repo.Create(ctx, in)

	in.Status = domain.TripStatusCompleted
	in.Pickup.Location.Coordinate.Lat = 0

	got, _ := repo.GetByCode(ctx, "SWB-00000002")
	got.Trip.Amenities[0] = "changed"

	again, _ := repo.GetByCode(ctx, "SWB-00000002")
	if again.Status != domain.TripStatusWaitingPickup {
		t.Error("stored booking changed through caller pointer")
	}
	if again.Pickup.Location.Coordinate.Lat != -6.2 {
		t.Error("stored coordinate changed through caller pointer")
	}
	if again.Trip.Amenities[0] != "AC" {
		t.Error("stored amenities changed through returned copy")
	}
}

func TestBookingRepository_GetAllKeepsOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewBookingRepository()
	codes := []string{"SWB-3", "SWB-1", "SWB-2"}
	for _, c := range codes {
		_ = repo.Create(ctx, newBooking(c))
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 bookings, got %d", len(all))
	}
	for i, b := range all {
		if b.Code != codes[i] {
			t.Errorf("position %d: expected %s, got %s", i, codes[i], b.Code)
		}
	}
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewBookingRepository()
	_ = repo.Create(ctx, newBooking("SWB-1"))

	if err := repo.UpdateStatus(ctx, "SWB-1", domain.TripStatusDriverOnWay); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := repo.GetByCode(ctx, "SWB-1")
	if got.Status != domain.TripStatusDriverOnWay {
		t.Errorf("expected driver_on_way, got %s", got.Status)
	}

	if err := repo.UpdateStatus(ctx, "SWB-404", domain.TripStatusDriverOnWay); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingRepository_ConcurrentUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewBookingRepository()
	_ = repo.Create(ctx, newBooking("SWB-1"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.UpdateStatus(ctx, "SWB-1", domain.TripStatusBusDeparted)
			_, _ = repo.GetByCode(ctx, "SWB-1")
		}()
	}
	wg.Wait()

	got, _ := repo.GetByCode(ctx, "SWB-1")
	if got.Status != domain.TripStatusBusDeparted {
		t.Errorf("expected bus_departed, got %s", got.Status)
	}
}

func TestPaymentRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPaymentRepository()

	p := &domain.Payment{ID: "pay-1", BookingCode: "SWB-1", Amount: 375000, Status: domain.PaymentStatusPending, IdempotencyKey: "payment:SWB-1"}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dup := *p
	dup.ID = "pay-2"
	if err := repo.Create(ctx, &dup); !errors.Is(err, repository.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists for reused key, got %v", err)
	}

	byKey, err := repo.GetByIdempotencyKey(ctx, "payment:SWB-1")
	if err != nil || byKey == nil || byKey.ID != "pay-1" {
		t.Fatalf("GetByIdempotencyKey = %+v, %v", byKey, err)
	}

	missing, err := repo.GetByIdempotencyKey(ctx, "payment:SWB-404")
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil for unknown key, got %+v, %v", missing, err)
	}

	if err := repo.UpdateStatus(ctx, "pay-1", domain.PaymentStatusSuccess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := repo.GetByID(ctx, "pay-1")
	if got.Status != domain.PaymentStatusSuccess {
		t.Errorf("expected SUCCESS, got %s", got.Status)
	}

	if _, err := repo.GetByID(ctx, "pay-404"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateStatus(ctx, "pay-404", domain.PaymentStatusFailed); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
