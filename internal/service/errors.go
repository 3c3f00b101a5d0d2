package service

import (
	"errors"

	"github.com/ridwan89/swiftbus-booking/internal/catalog"
	"github.com/ridwan89/swiftbus-booking/internal/manifest"
)

var (
	// ErrInvalidBookingCode is returned when a booking code is empty.
	ErrInvalidBookingCode = errors.New("invalid booking code")

	// ErrInvalidTripID is returned when trip ID is empty.
	ErrInvalidTripID = errors.New("invalid trip id")

	// ErrTripNotFound is returned when the catalog has no such trip.
	ErrTripNotFound = catalog.ErrTripNotFound

	// ErrInvalidFacet is returned for an unknown manifest status filter.
	ErrInvalidFacet = manifest.ErrInvalidFacet

	// ErrBookingCompleted is returned when playback is requested for a booking
	// that can no longer change status.
	ErrBookingCompleted = errors.New("booking already completed")

	// ErrPlaybackRunning is returned when playback is already active for a booking.
	ErrPlaybackRunning = errors.New("playback already running")

	// ErrPlaybackNotRunning is returned when stopping a playback that is not active.
	ErrPlaybackNotRunning = errors.New("playback not running")

	// ErrPlaybackLocked is returned when another instance holds the playback lock.
	ErrPlaybackLocked = errors.New("playback locked by another instance")

	// ErrPlaybackClosed is returned when starting playback after shutdown.
	ErrPlaybackClosed = errors.New("playback scheduler closed")

	// ErrInvalidPaymentAmount is returned when payment amount is invalid.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrInvalidPaymentID is returned when payment ID is empty.
	ErrInvalidPaymentID = errors.New("invalid payment id")
)
