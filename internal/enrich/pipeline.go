package enrich

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/itinerary/internal/domain"
)

// DefaultConcurrency bounds router calls in flight for a single day.
const DefaultConcurrency = 4

// Pipeline turns a day snapshot into a Patch by routing every leg.
type Pipeline struct {
	router      Router
	mode        domain.TravelMethod
	concurrency int
	log         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMode sets the travel mode preference passed to the router.
func WithMode(m domain.TravelMethod) Option {
	return func(p *Pipeline) {
		if m.Valid() && m != domain.TravelNone {
			p.mode = m
		}
	}
}

// WithConcurrency bounds concurrent router calls per day.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets the logger used for per-leg failures.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPipeline builds a Pipeline around router.
func NewPipeline(router Router, opts ...Option) *Pipeline {
	p := &Pipeline{
		router:      router,
		mode:        domain.TravelDriving,
		concurrency: DefaultConcurrency,
		log:         slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// request is a leg still to be routed.
type request struct {
	Leg
	fromPlace, toPlace domain.Location
	from, to           Waypoint
}

// plan lists the legs to route for day. A day with fewer than two resolvable
// activities (scheduled, with a location) yields nothing. Otherwise it covers
// the lodging leg when stay is given, every adjacent pair where both ends
// resolve, and the terminal leg on the last activity, which needs no routing.
func plan(day domain.Day, stay *domain.Lodging) (reqs []request, terminal *Result) {
	acts := day.Activities
	points := make([]*Waypoint, len(acts))
	resolvable := 0
	for i, a := range acts {
		if !a.Time.IsScheduled() {
			continue
		}
		if w, ok := WaypointFor(a.Place); ok {
			points[i] = &w
			resolvable++
		}
	}
	if resolvable < 2 {
		return nil, nil
	}

	if stay != nil && points[0] != nil {
		if w, ok := WaypointFor(stay.Place); ok {
			reqs = append(reqs, request{
				Leg:       Leg{From: uuid.Nil, To: acts[0].ID},
				fromPlace: stay.Place,
				toPlace:   acts[0].Place,
				from:      w,
				to:        *points[0],
			})
		}
	}
	for i := 0; i+1 < len(acts); i++ {
		if points[i] == nil || points[i+1] == nil {
			continue
		}
		reqs = append(reqs, request{
			Leg:       Leg{From: acts[i].ID, To: acts[i+1].ID},
			fromPlace: acts[i].Place,
			toPlace:   acts[i+1].Place,
			from:      *points[i],
			to:        *points[i+1],
		})
	}
	last := acts[len(acts)-1]
	terminal = &Result{Leg: Leg{From: last.ID, To: uuid.Nil}, FromPlace: last.Place, Segment: *domain.NoTravel()}
	return reqs, terminal
}

// Enrich routes every leg of day and returns the resulting Patch. Router
// failures are logged and counted, and the leg is left out of the patch;
// nothing is fabricated in its place and nothing is retried. Enrich itself
// only fails when ctx is cancelled before all legs finish.
func (p *Pipeline) Enrich(ctx context.Context, day domain.Day, stay *domain.Lodging) (Patch, error) {
	patch := Patch{DayID: day.ID}
	reqs, terminal := plan(day, stay)
	if terminal == nil {
		return patch, nil
	}

	results := make([]*Result, len(reqs))
	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			start := time.Now()
			seg, err := p.router.Route(ctx, req.from, req.to, p.mode)
			routeDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				legsTotal.WithLabelValues("failed").Inc()
				p.log.WarnContext(ctx, "travel estimate failed",
					"day_id", day.ID,
					"from", req.From,
					"to", req.To,
					"error", err,
				)
				return nil
			}
			legsTotal.WithLabelValues("ok").Inc()
			results[i] = &Result{Leg: req.Leg, FromPlace: req.fromPlace, ToPlace: req.toPlace, Segment: seg}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return Patch{DayID: day.ID}, err
	}

	for _, r := range results {
		if r != nil {
			patch.Results = append(patch.Results, *r)
		}
	}
	patch.Results = append(patch.Results, *terminal)
	return patch, nil
}
