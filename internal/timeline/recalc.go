package timeline

import "github.com/pkordes/itinerary/internal/domain"

// Recalculate retimes a day's activities without reordering them.
//
// Fixed-time activities keep their time verbatim. A fixed activity without a
// time anchors nothing and is retimed like a floating one. Every floating
// activity is placed immediately after the end of whatever precedes it in the
// list, fixed or floating. A floating activity with no predecessor keeps its
// explicit time, or starts at domain.DefaultDayStart when it has none.
//
// Overlaps between fixed anchors are left in place for DetectConflicts to
// report. The input slice is not modified.
func Recalculate(activities []domain.Activity, defaults DurationDefaults) []domain.Activity {
	out := make([]domain.Activity, len(activities))
	copy(out, activities)

	prevEnd := domain.Unscheduled
	for i := range out {
		a := &out[i]
		switch {
		case a.IsFixedTime && a.Time.IsScheduled():
		case prevEnd.IsScheduled():
			a.Time = prevEnd
		case !a.Time.IsScheduled():
			a.Time = domain.DefaultDayStart
		}
		if a.Time.IsScheduled() {
			prevEnd = a.Time.Add(DurationOf(*a, defaults))
		}
	}
	return out
}
