package timeline

import (
	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
)

// Insert returns a copy of activities with a placed at index. Out-of-range
// indexes are clamped to the ends of the list.
func Insert(activities []domain.Activity, index int, a domain.Activity) []domain.Activity {
	index = max(0, min(index, len(activities)))
	out := make([]domain.Activity, 0, len(activities)+1)
	out = append(out, activities[:index]...)
	out = append(out, a)
	return append(out, activities[index:]...)
}

// Remove returns a copy of activities without id, and the removed activity.
// ok is false when id is not present.
func Remove(activities []domain.Activity, id uuid.UUID) (rest []domain.Activity, removed domain.Activity, ok bool) {
	rest = make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		if a.ID == id && !ok {
			removed, ok = a, true
			continue
		}
		rest = append(rest, a)
	}
	return rest, removed, ok
}

// Reorder moves id to index within the list.
func Reorder(activities []domain.Activity, id uuid.UUID, index int) ([]domain.Activity, bool) {
	rest, a, ok := Remove(activities, id)
	if !ok {
		return activities, false
	}
	return Insert(rest, index, a), true
}

// Drag pins id to the time under position on g and moves it to the slot its
// new time implies. The position is snapped first. A dragged activity becomes
// a fixed-time anchor so the following Recalculate does not pull it back.
func Drag(activities []domain.Activity, id uuid.UUID, position float64, g Grid) ([]domain.Activity, bool) {
	rest, a, ok := Remove(activities, id)
	if !ok {
		return activities, false
	}
	a.Time = g.PositionToTime(g.Snap(position))
	a.IsFixedTime = true
	return Insert(rest, InsertionIndex(rest, a.Time), a), true
}
