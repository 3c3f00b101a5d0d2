package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		Code:       "SWB-12345678",
		Trip:       domain.Trip{ID: "bus-001"},
		TotalPrice: 375000,
		Status:     domain.TripStatusDriverOnWay,
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := NewKafkaPublisher(w)
	at := time.Date(2025, 10, 10, 8, 0, 0, 0, time.UTC)

	e := StatusChanged(testBooking(), domain.TripStatusWaitingPickup, at)
	if err := p.Publish(context.Background(), e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(w.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.messages))
	}
	msg := w.messages[0]
	if string(msg.Key) != "SWB-12345678" {
		t.Errorf("expected key to be booking code, got %q", msg.Key)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != string(TypeStatusChanged) {
		t.Errorf("unexpected headers %+v", msg.Headers)
	}

	var decoded Event
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if decoded.ID == "" || decoded.ID != e.ID {
		t.Errorf("event id not carried: %q", decoded.ID)
	}
	if decoded.Status != domain.TripStatusDriverOnWay || decoded.Previous != domain.TripStatusWaitingPickup {
		t.Errorf("unexpected statuses %s <- %s", decoded.Status, decoded.Previous)
	}

	if err := p.Close(); err != nil || !w.closed {
		t.Error("expected writer to be closed")
	}
}

func TestKafkaPublisher_WriterError(t *testing.T) {
	t.Parallel()

	boom := errors.New("broker down")
	p := NewKafkaPublisher(&fakeWriter{err: boom})

	err := p.Publish(context.Background(), BookingCreated(testBooking(), time.Now()))
	if !errors.Is(err, boom) {
		t.Errorf("expected writer error, got %v", err)
	}
}

func TestBuilders(t *testing.T) {
	t.Parallel()

	b := testBooking()
	created := BookingCreated(b, time.Now())
	if created.Type != TypeBookingCreated || created.TotalPrice != 375000 || created.TripID != "bus-001" {
		t.Errorf("unexpected created event %+v", created)
	}

	settled := PaymentSettled(b, &domain.Payment{Amount: 375000, Status: domain.PaymentStatusSuccess}, time.Now())
	if settled.Type != TypePaymentSettled || settled.Payment != "SUCCESS" {
		t.Errorf("unexpected settled event %+v", settled)
	}

	if created.ID == settled.ID {
		t.Error("event ids must differ")
	}
}

func TestSplitBrokers(t *testing.T) {
	t.Parallel()

	got := splitBrokers(" kafka-1:9092, ,kafka-2:9092 ")
	if len(got) != 2 || got[0] != "kafka-1:9092" || got[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers %v", got)
	}
}

func TestNewKafkaWriter(t *testing.T) {
	t.Parallel()

	w := NewKafkaWriter("localhost:9092", "swiftbus.bookings")
	if w.Topic != "swiftbus.bookings" {
		t.Errorf("unexpected topic %s", w.Topic)
	}
	if w.Addr.String() != "localhost:9092" {
		t.Errorf("unexpected addr %s", w.Addr.String())
	}
}

func TestLogPublisher(t *testing.T) {
	t.Parallel()

	p := NewLogPublisher()
	if err := p.Publish(context.Background(), BookingCreated(testBooking(), time.Now())); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
