// Package lodging joins trip days to the lodging booked for each night and
// finds the nights nobody has booked yet. All functions are pure.
package lodging

import (
	"time"

	"github.com/pkordes/itinerary/internal/domain"
)

// Gap is a run of uncovered nights, half-open: [Start, End).
type Gap struct {
	Start time.Time
	End   time.Time
}

// Nights returns the number of nights in the gap.
func (g Gap) Nights() int {
	return int(g.End.Sub(g.Start).Hours() / 24)
}

// Match is the lodging situation for one night.
type Match struct {
	Date     time.Time
	Lodgings []domain.Lodging
}

// Single returns the only matching lodging. ok is false when there is no
// match or when overlapping bookings make the match ambiguous.
func (m Match) Single() (domain.Lodging, bool) {
	if len(m.Lodgings) != 1 {
		return domain.Lodging{}, false
	}
	return m.Lodgings[0], true
}

// Ambiguous reports whether more than one active booking covers the night.
func (m Match) Ambiguous() bool {
	return len(m.Lodgings) > 1
}

// ForDay returns every non-cancelled lodging whose [CheckIn, CheckOut)
// contains date, in input order. More than one result means the bookings
// overlap; picking one is left to the caller.
func ForDay(date time.Time, records []domain.Lodging) Match {
	m := Match{Date: domain.DateOnly(date)}
	for _, l := range records {
		if l.Status == domain.LodgingCancelled {
			continue
		}
		if l.Covers(m.Date) {
			m.Lodgings = append(m.Lodgings, l)
		}
	}
	return m
}

// FindGaps returns the ranges inside [tripStart, tripEnd) that no
// non-cancelled lodging covers, with adjacent uncovered nights merged.
func FindGaps(tripStart, tripEnd time.Time, records []domain.Lodging) []Gap {
	start, end := domain.DateOnly(tripStart), domain.DateOnly(tripEnd)

	var gaps []Gap
	var open *Gap
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if len(ForDay(d, records).Lodgings) > 0 {
			if open != nil {
				gaps = append(gaps, *open)
				open = nil
			}
			continue
		}
		next := d.AddDate(0, 0, 1)
		if open == nil {
			open = &Gap{Start: d, End: next}
		} else {
			open.End = next
		}
	}
	if open != nil {
		gaps = append(gaps, *open)
	}
	return gaps
}
