// Package category supplies default activity durations by category. It is
// the duration-default collaborator consulted whenever an activity has no
// explicit duration.
package category

import "strings"

// Table maps a normalised category name to a duration in minutes.
type Table map[string]int

// Default returns the built-in table.
func Default() Table {
	return Table{
		"flight":      180,
		"train":       120,
		"transit":     45,
		"transport":   45,
		"hotel":       30,
		"check-in":    30,
		"checkout":    30,
		"breakfast":   45,
		"lunch":       60,
		"dinner":      90,
		"meal":        60,
		"restaurant":  75,
		"cafe":        30,
		"coffee":      30,
		"museum":      120,
		"gallery":     90,
		"attraction":  90,
		"sightseeing": 90,
		"landmark":    45,
		"tour":        180,
		"park":        90,
		"hike":        180,
		"beach":       180,
		"shopping":    90,
		"market":      60,
		"show":        150,
		"nightlife":   120,
		"bar":         90,
		"spa":         120,
	}
}

// DefaultDuration returns the minutes for category, or zero if unknown.
// Lookups ignore case, surrounding space, and treat spaces and underscores
// like hyphens.
func (t Table) DefaultDuration(category string) int {
	return t[normalise(category)]
}

func normalise(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}
