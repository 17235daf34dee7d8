package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/enrich"
	"github.com/pkordes/itinerary/internal/lodging"
	"github.com/pkordes/itinerary/internal/repo"
	"github.com/pkordes/itinerary/internal/timeline"
)

// Enqueuer schedules background travel enrichment for a day snapshot.
// *enrich.Dispatcher satisfies it.
type Enqueuer interface {
	Submit(day domain.Day, stay *domain.Lodging)
}

// ItineraryService owns every edit to a day's activity list.
//
// Each edit runs in two phases. The first happens inside the request: the
// list is changed, retimed, stale travel is cleared, and the result is
// persisted and returned. The second is enrichment, which is queued for
// every touched day and merged back later through MergeTravel.
type ItineraryService struct {
	trips     repo.TripRepo
	days      repo.DayRepo
	lodgings  repo.LodgingRepo
	durations timeline.DurationDefaults
	grid      timeline.Grid
	enricher  Enqueuer
	log       *slog.Logger
}

// NewItineraryService constructs an ItineraryService. enricher may be nil,
// in which case edits are never enriched.
func NewItineraryService(
	trips repo.TripRepo,
	days repo.DayRepo,
	lodgings repo.LodgingRepo,
	durations timeline.DurationDefaults,
	enricher Enqueuer,
	log *slog.Logger,
) *ItineraryService {
	if log == nil {
		log = slog.Default()
	}
	return &ItineraryService{
		trips:     trips,
		days:      days,
		lodgings:  lodgings,
		durations: durations,
		grid:      timeline.Grid{PixelsPerHour: timeline.DefaultPixelsPerHour},
		enricher:  enricher,
		log:       log,
	}
}

// ActivityInput holds the user-editable fields of an activity.
type ActivityInput struct {
	Name        string
	Category    string
	Time        domain.Clock
	Duration    int
	IsFixedTime bool
	Place       domain.Location
	Notes       string
}

func (in ActivityInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if in.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", domain.ErrValidation)
	}
	if in.Time != domain.Unscheduled && !in.Time.IsScheduled() {
		return fmt.Errorf("%w: time must be within the day", domain.ErrValidation)
	}
	return nil
}

func (in ActivityInput) applyTo(a *domain.Activity) {
	a.Name = strings.TrimSpace(in.Name)
	a.Category = in.Category
	a.Time = in.Time
	a.Duration = in.Duration
	a.IsFixedTime = in.IsFixedTime
	a.Place = in.Place
	a.Notes = in.Notes
}

// DayView is a day together with everything derived from it on read.
type DayView struct {
	Day       domain.Day
	Conflicts timeline.Conflicts
	Lodging   lodging.Match
}

// Slot is the grid placement of one activity.
type Slot struct {
	ActivityID uuid.UUID
	Bounds     timeline.Bounds
	Scheduled  bool
}

// Layout is the grid placement of a whole day.
type Layout struct {
	PixelsPerHour float64
	TotalHeight   float64
	Slots         []Slot
}

// Coverage is the lodging situation across a trip.
type Coverage struct {
	Gaps   []lodging.Gap
	Nights []lodging.Match
}

// ListDays returns every day of a trip with its activities.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ItineraryService) ListDays(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListDays: %w", err)
	}
	days, err := s.days.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListDays: %w", err)
	}
	if days == nil {
		return []domain.Day{}, nil
	}
	return days, nil
}

// GetDay returns a day with its conflicts and the lodging matched to its night.
func (s *ItineraryService) GetDay(ctx context.Context, tripID, dayID uuid.UUID) (DayView, error) {
	day, err := s.days.GetByID(ctx, tripID, dayID)
	if err != nil {
		return DayView{}, fmt.Errorf("service.ItineraryService.GetDay: %w", err)
	}
	records, err := s.lodgings.ListByTrip(ctx, tripID)
	if err != nil {
		return DayView{}, fmt.Errorf("service.ItineraryService.GetDay: %w", err)
	}
	return DayView{
		Day:       day,
		Conflicts: timeline.DetectConflicts(day.Activities, s.durations),
		Lodging:   lodging.ForDay(day.Date, records),
	}, nil
}

// Layout returns the grid bounds of each activity of a day, in list order.
func (s *ItineraryService) Layout(ctx context.Context, tripID, dayID uuid.UUID) (Layout, error) {
	day, err := s.days.GetByID(ctx, tripID, dayID)
	if err != nil {
		return Layout{}, fmt.Errorf("service.ItineraryService.Layout: %w", err)
	}
	out := Layout{
		PixelsPerHour: s.grid.PixelsPerHour,
		TotalHeight:   s.grid.TotalHeight(),
		Slots:         make([]Slot, 0, len(day.Activities)),
	}
	for _, a := range day.Activities {
		b, ok := s.grid.ActivityBounds(a, s.durations)
		out.Slots = append(out.Slots, Slot{ActivityID: a.ID, Bounds: b, Scheduled: ok})
	}
	return out, nil
}

// Coverage returns the uncovered night ranges of a trip and the lodging
// match for each night.
func (s *ItineraryService) Coverage(ctx context.Context, tripID uuid.UUID) (Coverage, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return Coverage{}, fmt.Errorf("service.ItineraryService.Coverage: %w", err)
	}
	records, err := s.lodgings.ListByTrip(ctx, tripID)
	if err != nil {
		return Coverage{}, fmt.Errorf("service.ItineraryService.Coverage: %w", err)
	}

	dates := trip.Dates()
	out := Coverage{
		Gaps:   lodging.FindGaps(trip.StartDate, trip.EndDate, records),
		Nights: make([]lodging.Match, 0, len(dates)),
	}
	// The last date of a trip is a departure day; nights stop before it.
	for _, d := range dates[:max(len(dates)-1, 0)] {
		out.Nights = append(out.Nights, lodging.ForDay(d, records))
	}
	return out, nil
}

// AddActivity appends a new activity to a day. An activity with a time is
// placed by that time; one without goes last.
// Returns the day as it stands after the edit.
func (s *ItineraryService) AddActivity(ctx context.Context, tripID, dayID uuid.UUID, in ActivityInput) (domain.Day, error) {
	if err := in.validate(); err != nil {
		return domain.Day{}, err
	}
	a := domain.Activity{ID: uuid.New()}
	in.applyTo(&a)

	days, err := s.edit(ctx, tripID, []uuid.UUID{dayID}, func(days []domain.Day) error {
		acts := days[0].Activities
		index := len(acts)
		if a.Time.IsScheduled() {
			index = timeline.InsertionIndex(acts, a.Time)
		}
		days[0].Activities = timeline.Insert(acts, index, a)
		return nil
	})
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.ItineraryService.AddActivity: %w", err)
	}
	return days[0], nil
}

// UpdateActivity replaces the editable fields of an activity. The activity
// keeps its place in the list.
func (s *ItineraryService) UpdateActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID, in ActivityInput) (domain.Day, error) {
	if err := in.validate(); err != nil {
		return domain.Day{}, err
	}
	days, err := s.edit(ctx, tripID, []uuid.UUID{dayID}, func(days []domain.Day) error {
		i := days[0].IndexOf(activityID)
		if i < 0 {
			return domain.ErrNotFound
		}
		in.applyTo(&days[0].Activities[i])
		return nil
	})
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.ItineraryService.UpdateActivity: %w", err)
	}
	return days[0], nil
}

// DeleteActivity removes an activity from its day.
func (s *ItineraryService) DeleteActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID) (domain.Day, error) {
	days, err := s.edit(ctx, tripID, []uuid.UUID{dayID}, func(days []domain.Day) error {
		rest, _, ok := timeline.Remove(days[0].Activities, activityID)
		if !ok {
			return domain.ErrNotFound
		}
		days[0].Activities = rest
		return nil
	})
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.ItineraryService.DeleteActivity: %w", err)
	}
	return days[0], nil
}

// ReorderActivity moves an activity to index within its day. Out-of-range
// indexes land at the nearest end.
func (s *ItineraryService) ReorderActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID, index int) (domain.Day, error) {
	days, err := s.edit(ctx, tripID, []uuid.UUID{dayID}, func(days []domain.Day) error {
		acts, ok := timeline.Reorder(days[0].Activities, activityID, index)
		if !ok {
			return domain.ErrNotFound
		}
		days[0].Activities = acts
		return nil
	})
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.ItineraryService.ReorderActivity: %w", err)
	}
	return days[0], nil
}

// DragActivity pins an activity to the time under a grid position.
func (s *ItineraryService) DragActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID, position float64) (domain.Day, error) {
	if math.IsNaN(position) || math.IsInf(position, 0) {
		return domain.Day{}, fmt.Errorf("%w: position must be a finite number", domain.ErrValidation)
	}
	days, err := s.edit(ctx, tripID, []uuid.UUID{dayID}, func(days []domain.Day) error {
		acts, ok := timeline.Drag(days[0].Activities, activityID, position, s.grid)
		if !ok {
			return domain.ErrNotFound
		}
		days[0].Activities = acts
		return nil
	})
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.ItineraryService.DragActivity: %w", err)
	}
	return days[0], nil
}

// MoveActivity moves an activity from one day of a trip to another.
// It returns the source and target days after the move.
// Returns domain.ErrNotFound if either day or the activity is missing, and
// domain.ErrConflict if source and target are the same day.
func (s *ItineraryService) MoveActivity(ctx context.Context, tripID, dayID, activityID, targetDayID uuid.UUID) (source, target domain.Day, err error) {
	if targetDayID == uuid.Nil {
		return domain.Day{}, domain.Day{}, fmt.Errorf("%w: target day is required", domain.ErrValidation)
	}
	if targetDayID == dayID {
		return domain.Day{}, domain.Day{}, fmt.Errorf("service.ItineraryService.MoveActivity: %w: %w", domain.ErrConflict, timeline.ErrSameDay)
	}

	days, err := s.edit(ctx, tripID, []uuid.UUID{dayID, targetDayID}, func(days []domain.Day) error {
		src, dst := &days[0], &days[1]
		i := src.IndexOf(activityID)
		if i < 0 {
			return domain.ErrNotFound
		}
		a := src.Activities[i]
		mv, err := timeline.ResolveMove(a, *src, *dst)
		if err != nil {
			return err
		}
		src.Activities, _, _ = timeline.Remove(src.Activities, activityID)
		a.Time = mv.Time
		if !mv.Time.IsScheduled() {
			// Lost its slot to a collision; the target day's chain retimes it.
			a.IsFixedTime = false
		}
		a.DayID = dst.ID
		a.TravelToNext = nil
		dst.Activities = timeline.Insert(dst.Activities, mv.Index, a)
		return nil
	})
	if err != nil {
		return domain.Day{}, domain.Day{}, fmt.Errorf("service.ItineraryService.MoveActivity: %w", err)
	}
	return days[0], days[1], nil
}

// Enrich queues enrichment for a day without changing it.
func (s *ItineraryService) Enrich(ctx context.Context, tripID, dayID uuid.UUID) error {
	day, err := s.days.GetByID(ctx, tripID, dayID)
	if err != nil {
		return fmt.Errorf("service.ItineraryService.Enrich: %w", err)
	}
	s.enqueue(ctx, tripID, day)
	return nil
}

// MergeTravel applies a resolved enrichment patch to the current state of
// its day. Legs whose endpoints are no longer adjacent are dropped. A day
// that no longer exists makes the whole patch stale, which is not an error.
func (s *ItineraryService) MergeTravel(ctx context.Context, p enrich.Patch) error {
	_, err := s.days.Mutate(ctx, []uuid.UUID{p.DayID}, func(days []domain.Day) ([]domain.Day, error) {
		merged, stats := p.Apply(days[0])
		enrich.RecordStale(stats.Stale)
		if stats.Stale > 0 {
			s.log.DebugContext(ctx, "dropped stale travel legs", "day_id", p.DayID, "stale", stats.Stale, "applied", stats.Applied)
		}
		return []domain.Day{merged}, nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		enrich.RecordStale(len(p.Results))
		return nil
	}
	if err != nil {
		return fmt.Errorf("service.ItineraryService.MergeTravel: %w", err)
	}
	return nil
}

// edit runs fn over the locked days, then retimes each day, clears travel
// that no longer matches, persists, and queues enrichment. Days that do not
// belong to tripID are reported as not found.
func (s *ItineraryService) edit(ctx context.Context, tripID uuid.UUID, dayIDs []uuid.UUID, fn func(days []domain.Day) error) ([]domain.Day, error) {
	updated, err := s.days.Mutate(ctx, dayIDs, func(days []domain.Day) ([]domain.Day, error) {
		before := make([]domain.Day, len(days))
		for i, d := range days {
			if d.TripID != tripID {
				return nil, domain.ErrNotFound
			}
			before[i] = d.Clone()
		}
		if err := fn(days); err != nil {
			return nil, err
		}
		for i := range days {
			days[i].Activities = timeline.Recalculate(days[i].Activities, s.durations)
			for j := range days[i].Activities {
				days[i].Activities[j].DayID = days[i].ID
			}
			days[i] = enrich.Invalidate(before[i], days[i])
		}
		return days, nil
	})
	if err != nil {
		return nil, err
	}
	s.enqueue(ctx, tripID, updated...)
	return updated, nil
}

// enqueue submits each day for enrichment with the lodging for its night,
// when exactly one booking covers it.
func (s *ItineraryService) enqueue(ctx context.Context, tripID uuid.UUID, days ...domain.Day) {
	if s.enricher == nil {
		return
	}
	records, err := s.lodgings.ListByTrip(ctx, tripID)
	if err != nil {
		s.log.WarnContext(ctx, "enrichment without lodging", "trip_id", tripID, "error", err)
	}
	for _, d := range days {
		var stay *domain.Lodging
		m := lodging.ForDay(d.Date, records)
		if l, ok := m.Single(); ok {
			stay = &l
		} else if m.Ambiguous() {
			s.log.InfoContext(ctx, "overlapping lodgings, skipping lodging leg", "day_id", d.ID, "matches", len(m.Lodgings))
		}
		s.enricher.Submit(d, stay)
	}
}
