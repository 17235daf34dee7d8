package timeline

import (
	"errors"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
)

var (
	// ErrNoTargetDay means the drop target did not resolve to a day.
	ErrNoTargetDay = errors.New("timeline: no target day")
	// ErrSameDay means source and target are the same day; use Reorder instead.
	ErrSameDay = errors.New("timeline: source and target day are the same")
	// ErrNotInSource means the activity is not part of the source day.
	ErrNotInSource = errors.New("timeline: activity not in source day")
)

// Move is the outcome of ResolveMove.
type Move struct {
	Time  domain.Clock
	Index int
}

// ResolveMove decides what time a moved activity takes on the target day and
// where in the target's current order it lands.
//
// An unscheduled activity stays unscheduled and goes to the end. A scheduled
// activity keeps its time unless the target already has an activity at that
// exact time, in which case it falls back to Unscheduled rather than
// double-booking. The caller removes the activity from source, inserts it at
// Index on target, and recalculates both days.
func ResolveMove(a domain.Activity, source, target domain.Day) (Move, error) {
	if target.ID == uuid.Nil {
		return Move{}, ErrNoTargetDay
	}
	if source.ID == target.ID {
		return Move{}, ErrSameDay
	}
	if source.IndexOf(a.ID) < 0 {
		return Move{}, ErrNotInSource
	}

	t := a.Time
	if t.IsScheduled() {
		for _, other := range target.Activities {
			if other.ID != a.ID && other.Time == t {
				t = domain.Unscheduled
				break
			}
		}
	}
	return Move{Time: t, Index: InsertionIndex(target.Activities, t)}, nil
}

// InsertionIndex returns the first position whose time is later than t.
// Unscheduled entries count as later than any scheduled time, so a scheduled
// t lands before them while an unscheduled t goes to the end.
func InsertionIndex(activities []domain.Activity, t domain.Clock) int {
	key := t.SortKey()
	for i, a := range activities {
		if a.Time.SortKey() > key {
			return i
		}
	}
	return len(activities)
}
