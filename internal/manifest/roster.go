package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
)

//go:embed roster.csv
var defaultRoster []byte

// Roster is an immutable set of manifest records across trips.
type Roster struct {
	records []domain.PassengerRecord
}

// NewRoster validates records and keeps their order.
func NewRoster(records []domain.PassengerRecord) (*Roster, error) {
	valid := make(map[domain.PickupStatus]bool, len(domain.PickupStatuses))
	for _, st := range domain.PickupStatuses {
		valid[st] = true
	}

	out := make([]domain.PassengerRecord, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			return nil, errors.New("manifest: record without id")
		}
		if !valid[r.PickupStatus] {
			return nil, fmt.Errorf("manifest: record %s has unknown pickup status %q", r.ID, r.PickupStatus)
		}
		out = append(out, r)
	}
	return &Roster{records: out}, nil
}

// LoadRoster parses a CSV roster with a header row.
func LoadRoster(r io.Reader) (*Roster, error) {
	var records []domain.PassengerRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("manifest: parse csv: %w", err)
	}
	return NewRoster(records)
}

// LoadRosterFile reads a roster from path, or the built-in one when path is empty.
func LoadRosterFile(path string) (*Roster, error) {
	if path == "" {
		return DefaultRoster()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadRoster(f)
}

// DefaultRoster returns the demo manifest.
func DefaultRoster() (*Roster, error) {
	return LoadRoster(bytes.NewReader(defaultRoster))
}

// ForTrip returns the records booked on tripID.
func (r *Roster) ForTrip(tripID string) []domain.PassengerRecord {
	var out []domain.PassengerRecord
	for _, rec := range r.records {
		if rec.TripID == tripID {
			out = append(out, rec)
		}
	}
	return out
}

// All returns a copy of every record.
func (r *Roster) All() []domain.PassengerRecord {
	out := make([]domain.PassengerRecord, len(r.records))
	copy(out, r.records)
	return out
}
