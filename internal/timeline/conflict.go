package timeline

import (
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
)

// Pair is two activities whose intervals overlap. First starts no later
// than Second.
type Pair struct {
	First  uuid.UUID `json:"first"`
	Second uuid.UUID `json:"second"`
}

// Conflicts is the result of DetectConflicts.
type Conflicts struct {
	ids   map[uuid.UUID]struct{}
	order []uuid.UUID
	Pairs []Pair
}

// Has reports whether id takes part in at least one conflict.
func (c Conflicts) Has(id uuid.UUID) bool {
	_, ok := c.ids[id]
	return ok
}

// IDs returns the conflicting activity ids in the order they were first seen
// by the sweep.
func (c Conflicts) IDs() []uuid.UUID {
	return slices.Clone(c.order)
}

// Len is the number of conflicting activities.
func (c Conflicts) Len() int {
	return len(c.order)
}

func (c *Conflicts) mark(id uuid.UUID) {
	if c.ids == nil {
		c.ids = make(map[uuid.UUID]struct{})
	}
	if _, ok := c.ids[id]; ok {
		return
	}
	c.ids[id] = struct{}{}
	c.order = append(c.order, id)
}

type interval struct {
	id         uuid.UUID
	start, end int
}

// DetectConflicts finds activities whose [time, time+duration) intervals
// strictly overlap. Back-to-back activities do not conflict, and
// unscheduled activities never take part.
//
// Intervals are sorted by start with ties kept in input order, then swept
// once while tracking the intervals still open, so the result is
// deterministic for a given input ordering.
func DetectConflicts(activities []domain.Activity, defaults DurationDefaults) Conflicts {
	ivs := make([]interval, 0, len(activities))
	for _, a := range activities {
		if !a.Time.IsScheduled() {
			continue
		}
		start := int(a.Time)
		ivs = append(ivs, interval{id: a.ID, start: start, end: start + DurationOf(a, defaults)})
	}
	slices.SortStableFunc(ivs, func(a, b interval) int { return a.start - b.start })

	var out Conflicts
	var open []interval
	for _, iv := range ivs {
		kept := open[:0]
		for _, o := range open {
			if o.end > iv.start {
				kept = append(kept, o)
			}
		}
		open = kept
		for _, o := range open {
			out.mark(o.id)
			out.mark(iv.id)
			out.Pairs = append(out.Pairs, Pair{First: o.id, Second: iv.id})
		}
		open = append(open, iv)
	}
	return out
}
