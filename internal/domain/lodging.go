package domain

import (
	"time"

	"github.com/google/uuid"
)

// LodgingStatus is the booking state of a lodging record.
type LodgingStatus string

const (
	LodgingSuggested LodgingStatus = "suggested"
	LodgingPending   LodgingStatus = "pending"
	LodgingConfirmed LodgingStatus = "confirmed"
	LodgingCancelled LodgingStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s LodgingStatus) Valid() bool {
	switch s {
	case LodgingSuggested, LodgingPending, LodgingConfirmed, LodgingCancelled:
		return true
	}
	return false
}

// Lodging is a booked (or proposed) stay covering the nights in the
// half-open interval [CheckIn, CheckOut).
type Lodging struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Name      string
	CheckIn   time.Time
	CheckOut  time.Time
	Status    LodgingStatus
	Place     Location
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether the night starting on date falls inside the stay.
func (l Lodging) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(l.CheckIn)) && d.Before(DateOnly(l.CheckOut))
}
