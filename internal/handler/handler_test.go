package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ridwan89/swiftbus-booking/internal/booking"
	"github.com/ridwan89/swiftbus-booking/internal/catalog"
	"github.com/ridwan89/swiftbus-booking/internal/events"
	"github.com/ridwan89/swiftbus-booking/internal/manifest"
	"github.com/ridwan89/swiftbus-booking/internal/repository/memory"
	"github.com/ridwan89/swiftbus-booking/internal/service"
	"github.com/ridwan89/swiftbus-booking/internal/tracking"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	playback *service.Playback
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	trips, err := catalog.Default()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	roster, err := manifest.DefaultRoster()
	if err != nil {
		t.Fatalf("failed to load roster: %v", err)
	}

	publisher := events.NewLogPublisher()
	notifications := service.NewNotificationService(nil)
	bookingRepo := memory.NewBookingRepository()

	composer := booking.NewComposer(booking.NewClockCodes(time.Now), time.Now)
	bookingService := service.NewBookingService(trips, composer, bookingRepo, publisher, notifications)
	trackingService := service.NewTrackingService(bookingRepo, tracking.Stop, publisher, notifications)
	playback := service.NewPlayback(trackingService, nil, 5*time.Millisecond, nil)
	t.Cleanup(playback.Close)

	paymentService := service.NewPaymentService(
		memory.NewPaymentRepository(), bookingRepo, service.NewSimulatedPSP(0),
		service.PaymentConfig{MaxRetries: 1, InitialBackoff: time.Millisecond}, publisher, notifications,
	)
	receiptService := service.NewReceiptService(notifications)

	catalogHandler := NewCatalogHandler(trips, service.NewManifestService(trips, roster, bookingRepo))
	bookingHandler := NewBookingHandler(bookingService)
	trackingHandler := NewTrackingHandler(trackingService, playback)
	paymentHandler := NewPaymentHandler(bookingService, paymentService, receiptService)

	r := gin.New()
	r.GET("/v1/trips", catalogHandler.ListTrips)
	r.GET("/v1/trips/:id", catalogHandler.GetTrip)
	r.GET("/v1/trips/:id/manifest", catalogHandler.GetManifest)
	r.POST("/v1/quotes", bookingHandler.Quote)
	r.POST("/v1/bookings", bookingHandler.CreateBooking)
	r.GET("/v1/bookings", bookingHandler.GetAll)
	r.GET("/v1/bookings/:code", bookingHandler.GetBooking)
	r.GET("/v1/bookings/:code/tracking", trackingHandler.GetTracking)
	r.POST("/v1/bookings/:code/advance", trackingHandler.Advance)
	r.POST("/v1/bookings/:code/playback", trackingHandler.StartPlayback)
	r.DELETE("/v1/bookings/:code/playback", trackingHandler.StopPlayback)
	r.POST("/v1/bookings/:code/payment", paymentHandler.ProcessPayment)
	r.GET("/v1/bookings/:code/receipt", paymentHandler.GetReceipt)
	r.GET("/v1/bookings/:code/ticket.pdf", paymentHandler.GetTicketPDF)

	return &testServer{router: r, playback: playback}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(v); err != nil {
		t.Fatalf("failed to decode %q: %v", w.Body.String(), err)
	}
}

const checkoutBody = `{
	"trip_id": "bus-001",
	"passenger": {"name": "Ahmad", "phone": "0812", "email": "ahmad@example.com"},
	"pickup": {"enabled": true, "vehicle": "motor", "provider": "gojek", "location": {"address": "Jl. Sudirman 1"}},
	"dropoff": {"enabled": true, "vehicle": "car", "provider": "grab", "location": {"address": "Jl. Tunjungan 5", "lat": -7.26, "lng": 112.74}}
}`

func (s *testServer) checkout(t *testing.T) BookingResponse {
	t.Helper()
	w := s.do(http.MethodPost, "/v1/bookings", checkoutBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp BookingResponse
	decode(t, w, &resp)
	return resp
}

// ──── 1. CATALOG ────

func TestListTrips(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/v1/trips?from=jakarta&to=surabaya", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Trips []json.RawMessage `json:"trips"`
	}
	decode(t, w, &resp)
	if len(resp.Trips) != 5 {
		t.Errorf("expected 5 trips, got %d", len(resp.Trips))
	}

	w = s.do(http.MethodGet, "/v1/trips?from=Bandung", "")
	if !strings.Contains(w.Body.String(), `"trips":[]`) {
		t.Errorf("expected empty list, got %s", w.Body.String())
	}
}

func TestGetTrip_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	if w := s.do(http.MethodGet, "/v1/trips/bus-999", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/v1/trips/bus-001", ""); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

// ──── 2. QUOTE & CHECKOUT ────

func TestQuote_DraftWithoutLocation(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/v1/quotes", `{"trip_id":"bus-001","pickup":{"enabled":true,"vehicle":"car"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var q struct {
		Base   int64 `json:"base_price"`
		Pickup int64 `json:"pickup_price"`
		Total  int64 `json:"total"`
	}
	decode(t, w, &q)
	if q.Base != 350000 || q.Pickup != 45000 || q.Total != 395000 {
		t.Errorf("unexpected quote %+v", q)
	}
}

func TestCreateBooking(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	b := s.checkout(t)
	if !strings.HasPrefix(b.Code, "SWB-") {
		t.Errorf("unexpected code %s", b.Code)
	}
	if b.TotalPrice != 350000+25000+45000 {
		t.Errorf("unexpected total %d", b.TotalPrice)
	}
	if b.Status != "waiting_pickup" || b.PickupTime != "05:00" {
		t.Errorf("unexpected status %s or pickup time %s", b.Status, b.PickupTime)
	}
	if b.Dropoff.Lat == nil || *b.Dropoff.Lat != -7.26 {
		t.Error("expected dropoff coordinate in response")
	}

	w := s.do(http.MethodGet, "/v1/bookings/"+b.Code, "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	w = s.do(http.MethodGet, "/v1/bookings", "")
	if !strings.Contains(w.Body.String(), b.Code) {
		t.Errorf("expected booking in list, got %s", w.Body.String())
	}
}

func TestCreateBooking_ValidationErrors(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	tests := []struct {
		name  string
		body  string
		code  int
		field string
	}{
		{"bad json", `{`, http.StatusBadRequest, ""},
		{"unknown trip", `{"trip_id":"bus-999","passenger":{"name":"a","phone":"b","email":"c"}}`, http.StatusNotFound, ""},
		{"missing email", `{"trip_id":"bus-001","passenger":{"name":"a","phone":"b"}}`, http.StatusBadRequest, "passenger.email"},
		{"pickup without location", `{"trip_id":"bus-001","passenger":{"name":"a","phone":"b","email":"c"},"pickup":{"enabled":true}}`, http.StatusBadRequest, "pickup.location"},
		{"unknown vehicle", `{"trip_id":"bus-001","passenger":{"name":"a","phone":"b","email":"c"},"dropoff":{"enabled":true,"vehicle":"truck","location":{"address":"x"}}}`, http.StatusBadRequest, "dropoff.vehicle"},
	}

	for _, tt := range tests {
		w := s.do(http.MethodPost, "/v1/bookings", tt.body)
		if w.Code != tt.code {
			t.Errorf("%s: expected %d, got %d: %s", tt.name, tt.code, w.Code, w.Body.String())
			continue
		}
		if tt.field == "" {
			continue
		}
		var resp ErrorResponse
		decode(t, w, &resp)
		if resp.Field != tt.field {
			t.Errorf("%s: expected field %s, got %s", tt.name, tt.field, resp.Field)
		}
	}
}

func TestGetBooking_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	for _, path := range []string{"/v1/bookings/SWB-00000000", "/v1/bookings/SWB-00000000/tracking", "/v1/bookings/SWB-00000000/receipt"} {
		if w := s.do(http.MethodGet, path, ""); w.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, w.Code)
		}
	}
}

// ──── 3. TRACKING ────

func TestTracking_AdvanceToCompleted(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	b := s.checkout(t)

	w := s.do(http.MethodGet, "/v1/bookings/"+b.Code+"/tracking", "")
	var view TrackingResponse
	decode(t, w, &view)
	if view.Status != "waiting_pickup" || len(view.Steps) != 5 {
		t.Fatalf("unexpected initial view %+v", view)
	}
	for _, step := range view.Steps {
		if step.State != tracking.StepPending {
			t.Errorf("expected all steps pending, step %d is %s", step.ID, step.State)
		}
	}

	for i := 0; i < 6; i++ {
		w = s.do(http.MethodPost, "/v1/bookings/"+b.Code+"/advance", "")
		if w.Code != http.StatusOK {
			t.Fatalf("advance %d: expected 200, got %d", i, w.Code)
		}
	}
	decode(t, w, &view)
	if view.Status != "completed" || !view.Terminal || view.Progress != 1 {
		t.Errorf("expected completed view, got %+v", view)
	}

	// Stop policy holds completed.
	w = s.do(http.MethodPost, "/v1/bookings/"+b.Code+"/advance", "")
	decode(t, w, &view)
	if view.Status != "completed" {
		t.Errorf("expected completed to hold, got %s", view.Status)
	}

	if w := s.do(http.MethodPost, "/v1/bookings/"+b.Code+"/playback", ""); w.Code != http.StatusConflict {
		t.Errorf("expected 409 for completed booking, got %d", w.Code)
	}
}

func TestPlayback_StartStop(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	b := s.checkout(t)

	if w := s.do(http.MethodDelete, "/v1/bookings/"+b.Code+"/playback", ""); w.Code != http.StatusConflict {
		t.Errorf("expected 409 when not playing, got %d", w.Code)
	}
	if w := s.do(http.MethodPost, "/v1/bookings/"+b.Code+"/playback", ""); w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}

	s.playback.Wait()

	var view TrackingResponse
	decode(t, s.do(http.MethodGet, "/v1/bookings/"+b.Code+"/tracking", ""), &view)
	if view.Status != "completed" || view.Playing {
		t.Errorf("expected finished playback, got %+v", view)
	}
}

// ──── 4. MANIFEST ────

func TestManifest(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	s.checkout(t)

	w := s.do(http.MethodGet, "/v1/trips/bus-001/manifest?status=pending", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res manifest.Result
	decode(t, w, &res)
	if res.Counts.Total != 6 || res.Counts.WithPickup != 5 {
		t.Errorf("unexpected counts %+v", res.Counts)
	}
	if len(res.Matches) != 2 {
		t.Errorf("expected roster and live booking pending, got %d", len(res.Matches))
	}

	if w := s.do(http.MethodGet, "/v1/trips/bus-001/manifest?status=lost", ""); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown facet, got %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/v1/trips/bus-999/manifest", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown trip, got %d", w.Code)
	}
}

// ──── 5. PAYMENT & RECEIPT ────

func TestPaymentAndReceipt(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	b := s.checkout(t)

	w := s.do(http.MethodGet, "/v1/bookings/"+b.Code+"/receipt", "")
	if !strings.Contains(w.Body.String(), "Payment: PENDING") {
		t.Errorf("expected pending receipt, got %s", w.Body.String())
	}

	if w := s.do(http.MethodPost, "/v1/bookings/"+b.Code+"/payment", `{"amount":1}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for wrong amount, got %d", w.Code)
	}

	w = s.do(http.MethodPost, "/v1/bookings/"+b.Code+"/payment", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var first PaymentResponse
	decode(t, w, &first)
	if first.Status != "SUCCESS" || first.Amount != b.TotalPrice {
		t.Errorf("unexpected payment %+v", first)
	}

	var again PaymentResponse
	decode(t, s.do(http.MethodPost, "/v1/bookings/"+b.Code+"/payment", ""), &again)
	if again.ID != first.ID {
		t.Error("expected repeated payment to return the first one")
	}

	w = s.do(http.MethodGet, "/v1/bookings/"+b.Code+"/receipt", "")
	body := w.Body.String()
	for _, want := range []string{b.Code, "Rp 350.000", "Rp 420.000", "Payment: SUCCESS", "PICKUP", "DROPOFF"} {
		if !strings.Contains(body, want) {
			t.Errorf("receipt missing %q:\n%s", want, body)
		}
	}

	w = s.do(http.MethodGet, "/v1/bookings/"+b.Code+"/ticket.pdf", "")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("expected pdf, got %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Error("expected a PDF document")
	}
}
