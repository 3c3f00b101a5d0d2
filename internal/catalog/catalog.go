// Package catalog holds the read-only list of bookable trips.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ridwan89/swiftbus-booking/internal/domain"
)

//go:embed trips.yaml
var defaultTrips []byte

// ErrTripNotFound is returned when no trip has the requested ID.
var ErrTripNotFound = errors.New("trip not found")

type file struct {
	Trips []domain.Trip `yaml:"trips"`
}

// Catalog is an ordered, immutable set of trips.
type Catalog struct {
	trips []domain.Trip
	byID  map[string]int
}

// New builds a catalog from trips, keeping their order. Trips must have a
// unique ID, a positive price and a non-negative seat count.
func New(trips []domain.Trip) (*Catalog, error) {
	c := &Catalog{
		trips: make([]domain.Trip, 0, len(trips)),
		byID:  make(map[string]int, len(trips)),
	}

	for _, t := range trips {
		if t.ID == "" {
			return nil, errors.New("catalog: trip without id")
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate trip %s", t.ID)
		}
		if t.BasePrice <= 0 {
			return nil, fmt.Errorf("catalog: trip %s has non-positive price %d", t.ID, t.BasePrice)
		}
		if t.SeatsAvailable < 0 {
			return nil, fmt.Errorf("catalog: trip %s has negative seat count", t.ID)
		}
		c.byID[t.ID] = len(c.trips)
		c.trips = append(c.trips, t)
	}

	return c, nil
}

// Load decodes a YAML catalog document.
func Load(r io.Reader) (*Catalog, error) {
	var f file
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return New(f.Trips)
}

// LoadFile reads a catalog from path, or the built-in catalog when path is empty.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Default returns the built-in demo catalog.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultTrips))
}

// List returns every trip in catalog order.
func (c *Catalog) List() []domain.Trip {
	out := make([]domain.Trip, len(c.trips))
	copy(out, c.trips)
	return out
}

// Get returns the trip with the given ID.
func (c *Catalog) Get(id string) (domain.Trip, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Trip{}, ErrTripNotFound
	}
	return c.trips[i], nil
}

// Search returns trips between two cities, matched case-insensitively.
// An empty city matches any.
func (c *Catalog) Search(origin, destination string) []domain.Trip {
	var out []domain.Trip
	for _, t := range c.trips {
		if origin != "" && !strings.EqualFold(t.Origin, strings.TrimSpace(origin)) {
			continue
		}
		if destination != "" && !strings.EqualFold(t.Destination, strings.TrimSpace(destination)) {
			continue
		}
		out = append(out, t)
	}
	return out
}
