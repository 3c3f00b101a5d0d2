// Package manifest filters and summarizes a trip's passenger roster.
package manifest

import (
	"errors"
	"strings"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
)

// FacetAll disables the pickup status facet.
const FacetAll = "all"

// ErrInvalidFacet is returned for a facet that is neither "all" nor a pickup status.
var ErrInvalidFacet = errors.New("invalid pickup status facet")

// Facet selects records by pickup status. The zero value matches everything.
type Facet struct {
	status domain.PickupStatus
}

// ParseFacet accepts "all", an empty string, or an exact pickup status.
func ParseFacet(s string) (Facet, error) {
	if s == "" || s == FacetAll {
		return Facet{}, nil
	}
	for _, st := range domain.PickupStatuses {
		if string(st) == s {
			return Facet{status: st}, nil
		}
	}
	return Facet{}, ErrInvalidFacet
}

// StatusFacet selects exactly one pickup status.
func StatusFacet(st domain.PickupStatus) Facet { return Facet{status: st} }

func (f Facet) String() string {
	if f.status == "" {
		return FacetAll
	}
	return string(f.status)
}

func (f Facet) match(r domain.PassengerRecord) bool {
	return f.status == "" || r.PickupStatus == f.status
}

// Counts summarizes the full roster.
type Counts struct {
	Total      int `json:"total"`
	WithPickup int `json:"with_pickup"`
	PickedUp   int `json:"picked_up"`
}

// Result is the filtered view of a roster.
type Result struct {
	Matches []domain.PassengerRecord `json:"matches"`
	Counts  Counts                   `json:"counts"`
}

// Filter returns records whose name or phone contains search
// (case-insensitive) and that match facet, in roster order. Counts always
// cover the whole roster regardless of the filters.
func Filter(roster []domain.PassengerRecord, search string, facet Facet) Result {
	needle := strings.ToLower(search)

	res := Result{
		Matches: make([]domain.PassengerRecord, 0, len(roster)),
		Counts:  Summarize(roster),
	}
	for _, r := range roster {
		if !matchesSearch(r, needle) || !facet.match(r) {
			continue
		}
		res.Matches = append(res.Matches, r)
	}
	return res
}

// Summarize counts the roster.
func Summarize(roster []domain.PassengerRecord) Counts {
	c := Counts{Total: len(roster)}
	for _, r := range roster {
		if r.PickupEnabled {
			c.WithPickup++
		}
		if r.PickupStatus == domain.PickupStatusPickedUp || r.PickupStatus == domain.PickupStatusDeliveredToPool {
			c.PickedUp++
		}
	}
	return c
}

func matchesSearch(r domain.PassengerRecord, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.Phone), needle)
}
