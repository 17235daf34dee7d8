// Package domain contains the core data types for the itinerary planner.
// This package depends only on uuid and is imported by every other
// internal package (timeline, lodging, enrich, repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate; days and lodgings belong to a trip.
// StartDate and EndDate are calendar dates (UTC midnight). Both are days of
// the trip, so a trip from June 1 to June 6 has six days and five nights.
type Trip struct {
	ID        uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Dates returns every calendar date of the trip, StartDate through EndDate inclusive.
func (t Trip) Dates() []time.Time {
	start, end := DateOnly(t.StartDate), DateOnly(t.EndDate)
	var out []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// DateOnly truncates t to midnight UTC of its calendar date.
// All date comparisons in the planner go through this so that timestamps
// carrying a wall-clock component never leak into day arithmetic.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
