package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/lodging"
	"github.com/pkordes/itinerary/internal/repo"
	"github.com/pkordes/itinerary/internal/timeline"
)

// ExportService assembles a flat export of a trip's itinerary.
type ExportService struct {
	trips     repo.TripRepo
	days      repo.DayRepo
	lodgings  repo.LodgingRepo
	durations timeline.DurationDefaults
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, days repo.DayRepo, lodgings repo.LodgingRepo, durations timeline.DurationDefaults) *ExportService {
	return &ExportService{trips: trips, days: days, lodgings: lodgings, durations: durations}
}

// Export returns one ExportRow per activity across the trip, in day order.
// End is Start plus the resolved duration, so category defaults show up as
// they would on the timeline.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	days, err := s.days.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	records, err := s.lodgings.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(days))
	for _, d := range days {
		base := domain.ExportRow{
			TripName: trip.Name,
			Date:     d.Date,
			DayTitle: d.Title,
			Start:    domain.Unscheduled,
			End:      domain.Unscheduled,
			Lodging:  stayNames(lodging.ForDay(d.Date, records)),
		}
		if len(d.Activities) == 0 {
			rows = append(rows, base)
			continue
		}
		for i, a := range d.Activities {
			row := base
			row.Position = i + 1
			row.Name = a.Name
			row.Category = a.Category
			row.Start = a.Time
			row.Duration = timeline.DurationOf(a, s.durations)
			if a.Time.IsScheduled() {
				row.End = a.Time.Add(row.Duration)
			}
			row.IsFixedTime = a.IsFixedTime
			row.Location = placeLabel(a.Place)
			row.Notes = a.Notes
			row.TravelToNext = a.TravelToNext
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func stayNames(m lodging.Match) string {
	names := make([]string, len(m.Lodgings))
	for i, l := range m.Lodgings {
		names[i] = l.Name
	}
	return strings.Join(names, " / ")
}

// placeLabel is the most readable descriptor of a location.
func placeLabel(l domain.Location) string {
	switch {
	case l.Name != "":
		return l.Name
	case l.Coords != nil:
		return strconv.FormatFloat(l.Coords.Lat, 'f', 5, 64) + "," + strconv.FormatFloat(l.Coords.Lng, 'f', 5, 64)
	default:
		return l.PlaceRef
	}
}
