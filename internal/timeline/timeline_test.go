package timeline_test

import (
	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
)

// fixedDefaults is a DurationDefaults backed by a map.
type fixedDefaults map[string]int

func (f fixedDefaults) DefaultDuration(category string) int {
	return f[category]
}

func at(s string) domain.Clock {
	return domain.ParseClock(s)
}

func act(t string, minutes int, fixed bool) domain.Activity {
	return domain.Activity{
		ID:          uuid.New(),
		Name:        "activity " + t,
		Time:        at(t),
		Duration:    minutes,
		IsFixedTime: fixed,
	}
}

func ids(activities []domain.Activity) []uuid.UUID {
	out := make([]uuid.UUID, len(activities))
	for i, a := range activities {
		out[i] = a.ID
	}
	return out
}

func times(activities []domain.Activity) []string {
	out := make([]string, len(activities))
	for i, a := range activities {
		out[i] = a.Time.String()
	}
	return out
}
