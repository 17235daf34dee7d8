package timeline

import (
	"math"

	"github.com/pkordes/itinerary/internal/domain"
)

// DefaultPixelsPerHour gives one unit of position per minute.
const DefaultPixelsPerHour = 60

// SnapMinutes is the granularity of the drag grid.
const SnapMinutes = 15

// Grid maps a continuous vertical position axis covering one 24-hour day
// onto wall-clock time. The zero value uses DefaultPixelsPerHour.
type Grid struct {
	PixelsPerHour float64
}

// Bounds is the vertical extent of an activity block on the grid.
type Bounds struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

func (g Grid) pph() float64 {
	if g.PixelsPerHour <= 0 || math.IsNaN(g.PixelsPerHour) || math.IsInf(g.PixelsPerHour, 0) {
		return DefaultPixelsPerHour
	}
	return g.PixelsPerHour
}

// TotalHeight is the position just past the end of the day.
func (g Grid) TotalHeight() float64 {
	return 24 * g.pph()
}

// SnapStep is the distance covered by SnapMinutes.
func (g Grid) SnapStep() float64 {
	return g.pph() * SnapMinutes / 60
}

// Snap rounds position to the nearest grid line, keeping the result inside
// [0, TotalHeight-SnapStep] so a snapped block always starts inside the day.
func (g Grid) Snap(position float64) float64 {
	step := g.SnapStep()
	if math.IsNaN(position) {
		return 0
	}
	s := math.Round(position/step) * step
	return clamp(s, 0, g.TotalHeight()-step)
}

// PositionToTime converts a position to the time of day at that point.
// Positions outside the day clamp to its first or last minute.
func (g Grid) PositionToTime(position float64) domain.Clock {
	if math.IsNaN(position) {
		return 0
	}
	minutes := math.Round(position * 60 / g.pph())
	return domain.Clock(clamp(minutes, 0, domain.MinutesPerDay-1))
}

// TimeToPosition is the inverse of PositionToTime for scheduled times.
func (g Grid) TimeToPosition(t domain.Clock) (float64, bool) {
	if !t.IsScheduled() {
		return -1, false
	}
	return float64(t) * g.pph() / 60, true
}

// ActivityBounds returns where a's block sits on the grid. Blocks are clamped
// so they never extend past the end of the day. Unscheduled activities have
// no position; ok is false and the UI decides how to show them.
func (g Grid) ActivityBounds(a domain.Activity, defaults DurationDefaults) (b Bounds, ok bool) {
	top, ok := g.TimeToPosition(a.Time)
	if !ok {
		return Bounds{Top: -1}, false
	}
	height := float64(DurationOf(a, defaults)) * g.pph() / 60
	if top+height > g.TotalHeight() {
		height = g.TotalHeight() - top
	}
	return Bounds{Top: top, Height: height}, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
