// Package timeline holds the pure scheduling algorithms of the itinerary:
// the time grid mapper, the conflict detector, the recalculator that retimes
// a day, and the resolver for cross-day moves.
//
// Nothing in this package performs I/O or keeps state. Every function takes
// its inputs by value and returns a new derived value; callers own replacing
// whatever state they hold.
package timeline

import "github.com/pkordes/itinerary/internal/domain"

// FallbackDuration is used when neither the activity nor the category lookup
// supplies a positive duration.
const FallbackDuration = 60

// DurationDefaults supplies a default duration in minutes for a category.
// Implementations return zero or a negative value when they have no opinion.
type DurationDefaults interface {
	DefaultDuration(category string) int
}

// DurationOf returns a's duration in minutes. An unset duration is resolved
// through defaults, and never resolves to zero.
func DurationOf(a domain.Activity, defaults DurationDefaults) int {
	if a.Duration > 0 {
		return a.Duration
	}
	if defaults != nil {
		if m := defaults.DefaultDuration(a.Category); m > 0 {
			return m
		}
	}
	return FallbackDuration
}
