package enrich

import (
	"context"

	"github.com/pkordes/itinerary/internal/domain"
)

// Router estimates travel between two waypoints. Implementations return an
// error for any transient provider failure; the pipeline never retries.
type Router interface {
	Route(ctx context.Context, from, to Waypoint, mode domain.TravelMethod) (domain.TravelSegment, error)
}

// RouterFunc adapts a function to Router.
type RouterFunc func(ctx context.Context, from, to Waypoint, mode domain.TravelMethod) (domain.TravelSegment, error)

// Route calls f.
func (f RouterFunc) Route(ctx context.Context, from, to Waypoint, mode domain.TravelMethod) (domain.TravelSegment, error) {
	return f(ctx, from, to, mode)
}
