package service

import (
	"context"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
	"github.com/ridwan89/swiftbus-booking/internal/manifest"
	"github.com/ridwan89/swiftbus-booking/internal/repository"
)

// ManifestService builds the operations view of a trip's passengers.
type ManifestService struct {
	catalog     TripCatalog
	roster      *manifest.Roster
	bookingRepo repository.BookingRepository
}

// NewManifestService creates a ManifestService. bookingRepo may be nil, in
// which case only the static roster is listed.
func NewManifestService(catalog TripCatalog, roster *manifest.Roster, bookingRepo repository.BookingRepository) *ManifestService {
	return &ManifestService{
		catalog:     catalog,
		roster:      roster,
		bookingRepo: bookingRepo,
	}
}

// ManifestRequest contains the filters for a manifest view.
type ManifestRequest struct {
	TripID string
	Search string
	Status string
}

// Manifest returns the filtered roster for a trip, followed by bookings
// made in this process. Counts cover every passenger on the trip.
func (s *ManifestService) Manifest(ctx context.Context, req ManifestRequest) (*manifest.Result, error) {
	if req.TripID == "" {
		return nil, ErrInvalidTripID
	}
	if _, err := s.catalog.Get(req.TripID); err != nil {
		return nil, err
	}

	facet, err := manifest.ParseFacet(req.Status)
	if err != nil {
		return nil, err
	}

	records, err := s.records(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	res := manifest.Filter(records, req.Search, facet)
	return &res, nil
}

func (s *ManifestService) records(ctx context.Context, tripID string) ([]domain.PassengerRecord, error) {
	records := s.roster.ForTrip(tripID)
	if s.bookingRepo == nil {
		return records, nil
	}

	bookings, err := s.bookingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.Trip.ID == tripID {
			records = append(records, manifest.FromBooking(b))
		}
	}
	return records, nil
}
