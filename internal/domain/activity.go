package domain

import (
	"time"

	"github.com/google/uuid"
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64
	Lng float64
}

// Location describes where something happens. Any subset of the fields may
// be set; PlaceRef is the most precise, then Coords, then Name.
type Location struct {
	// PlaceRef is an opaque reference into an external places catalog.
	PlaceRef string
	Coords   *LatLng
	// Name is free text such as "Louvre, Paris".
	Name string
}

// IsZero reports whether no descriptor is available.
func (l Location) IsZero() bool {
	return l.PlaceRef == "" && l.Coords == nil && l.Name == ""
}

// Activity is one scheduled unit within a day.
// Duration is in minutes; zero means unset and is resolved through the
// category default lookup wherever a duration is needed.
type Activity struct {
	ID           uuid.UUID
	DayID        uuid.UUID
	Name         string
	Category     string
	Time         Clock
	Duration     int
	IsFixedTime  bool
	Place        Location
	Notes        string
	TravelToNext *TravelSegment
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Day is one calendar date of a trip with its ordered activities.
// TravelFromLodging is the segment from the night's lodging to the first
// activity, when enrichment could compute one.
type Day struct {
	ID                uuid.UUID
	TripID            uuid.UUID
	Date              time.Time
	Title             string
	Activities        []Activity
	TravelFromLodging *TravelSegment
}

// IndexOf returns the position of the activity with the given id, or -1.
func (d Day) IndexOf(id uuid.UUID) int {
	for i, a := range d.Activities {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy of d whose Activities slice can be mutated freely.
func (d Day) Clone() Day {
	out := d
	out.Activities = append([]Activity(nil), d.Activities...)
	return out
}
