package enrich

import (
	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
)

// Leg identifies the two ends of a segment. From is uuid.Nil for the leg
// from the night's lodging to the first activity. To is uuid.Nil for the
// terminal leg on the last activity.
type Leg struct {
	From uuid.UUID
	To   uuid.UUID
}

// IsLodging reports whether the leg starts at the lodging.
func (l Leg) IsLodging() bool { return l.From == uuid.Nil }

// Result is a resolved leg. FromPlace and ToPlace are the endpoint
// locations in the snapshot that was routed; FromPlace is the lodging's
// location for the lodging leg and ToPlace is zero for the terminal leg.
type Result struct {
	Leg
	FromPlace domain.Location
	ToPlace   domain.Location
	Segment   domain.TravelSegment
}

// terminal reports whether the result is the no-travel leg on the last stop.
func (r Result) terminal() bool { return r.To == uuid.Nil }

// Patch is the outcome of enriching one day snapshot.
type Patch struct {
	DayID   uuid.UUID
	Results []Result
}

// Empty reports whether the patch carries nothing to merge.
func (p Patch) Empty() bool { return len(p.Results) == 0 }

// MergeStats counts what happened to each result during Apply.
type MergeStats struct {
	Applied int
	Stale   int
}

// Apply merges p into current by identity and returns the merged copy.
//
// A result is applied only if its endpoints are still adjacent in current:
// From is present and immediately followed by To (or is last, for the
// terminal leg), or To is the first activity, for the lodging leg. The
// routed endpoints must also still be at the locations they had in the
// snapshot, so an older job finishing late never replaces the route to a
// stop that has since moved. Anything else is dropped. current is never
// modified, and activities are never added or removed.
func (p Patch) Apply(current domain.Day) (domain.Day, MergeStats) {
	var stats MergeStats
	if p.DayID != current.ID {
		stats.Stale = len(p.Results)
		return current, stats
	}

	out := current.Clone()
	for _, r := range p.Results {
		seg := r.Segment
		if r.IsLodging() {
			if len(out.Activities) == 0 || out.Activities[0].ID != r.To ||
				!sameLocation(out.Activities[0].Place, r.ToPlace) {
				stats.Stale++
				continue
			}
			out.TravelFromLodging = &seg
			stats.Applied++
			continue
		}

		i := out.IndexOf(r.From)
		if i < 0 || successor(out.Activities, i) != r.To || !r.sameEnds(out.Activities, i) {
			stats.Stale++
			continue
		}
		out.Activities[i].TravelToNext = &seg
		stats.Applied++
	}
	return out, stats
}

// sameEnds reports whether the stops at i and i+1 are still where r was
// routed. The terminal leg carries no route, so only adjacency matters.
func (r Result) sameEnds(activities []domain.Activity, i int) bool {
	if r.terminal() {
		return true
	}
	return sameLocation(activities[i].Place, r.FromPlace) &&
		sameLocation(activities[i+1].Place, r.ToPlace)
}

func successor(activities []domain.Activity, i int) uuid.UUID {
	if i+1 < len(activities) {
		return activities[i+1].ID
	}
	return uuid.Nil
}

// Invalidate clears travel segments in after whose endpoints differ from
// before: the successor changed, or either end's location changed. It is
// applied to the optimistic state so stale segments are not shown while
// enrichment is in flight.
func Invalidate(before, after domain.Day) domain.Day {
	out := after.Clone()
	prev := make(map[uuid.UUID]int, len(before.Activities))
	for i, a := range before.Activities {
		prev[a.ID] = i
	}

	for i := range out.Activities {
		a := &out.Activities[i]
		if a.TravelToNext == nil {
			continue
		}
		j, ok := prev[a.ID]
		if !ok || successor(before.Activities, j) != successor(out.Activities, i) ||
			!sameLocation(before.Activities[j].Place, a.Place) {
			a.TravelToNext = nil
			continue
		}
		if k := i + 1; k < len(out.Activities) && !sameLocation(before.Activities[j+1].Place, out.Activities[k].Place) {
			a.TravelToNext = nil
		}
	}

	if out.TravelFromLodging != nil {
		switch {
		case len(out.Activities) == 0 || len(before.Activities) == 0:
			out.TravelFromLodging = nil
		case out.Activities[0].ID != before.Activities[0].ID,
			!sameLocation(out.Activities[0].Place, before.Activities[0].Place):
			out.TravelFromLodging = nil
		}
	}
	return out
}

func sameLocation(a, b domain.Location) bool {
	if a.PlaceRef != b.PlaceRef || a.Name != b.Name {
		return false
	}
	if (a.Coords == nil) != (b.Coords == nil) {
		return false
	}
	return a.Coords == nil || *a.Coords == *b.Coords
}
