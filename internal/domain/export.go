package domain

import "time"

// ExportRow is one row of a flat trip export: one row per activity, with
// the trip and day fields repeated. A day with no activities yields a single
// row whose activity fields are zero.
type ExportRow struct {
	TripName string
	Date     time.Time
	DayTitle string

	// Position is the activity's 1-based place in the day; 0 on an empty day.
	Position    int
	Name        string
	Category    string
	Start       Clock
	End         Clock
	Duration    int
	IsFixedTime bool
	Location    string
	Notes       string

	// TravelToNext is the segment to the following stop, if enriched.
	TravelToNext *TravelSegment

	// Lodging names the stay for the night. Overlapping stays are joined
	// with " / ".
	Lodging string
}
