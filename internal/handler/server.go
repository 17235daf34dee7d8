// Package handler implements the HTTP handlers for the itinerary API.
// All handlers are methods on Server. They are split into resource files
// (health.go, trip.go, day.go, activity.go, lodging.go, export.go) but share
// the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ItineraryServicer defines the day and activity operations.
type ItineraryServicer interface {
	ListDays(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error)
	GetDay(ctx context.Context, tripID, dayID uuid.UUID) (service.DayView, error)
	Layout(ctx context.Context, tripID, dayID uuid.UUID) (service.Layout, error)
	Coverage(ctx context.Context, tripID uuid.UUID) (service.Coverage, error)
	AddActivity(ctx context.Context, tripID, dayID uuid.UUID, in service.ActivityInput) (domain.Day, error)
	UpdateActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID, in service.ActivityInput) (domain.Day, error)
	DeleteActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID) (domain.Day, error)
	ReorderActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID, index int) (domain.Day, error)
	DragActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID, position float64) (domain.Day, error)
	MoveActivity(ctx context.Context, tripID, dayID, activityID, targetDayID uuid.UUID) (domain.Day, domain.Day, error)
	Enrich(ctx context.Context, tripID, dayID uuid.UUID) error
}

// LodgingServicer defines the lodging operations.
type LodgingServicer interface {
	Create(ctx context.Context, l domain.Lodging) (domain.Lodging, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Lodging, error)
	Update(ctx context.Context, l domain.Lodging) (domain.Lodging, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

// ExportServicer produces the flat itinerary export.
type ExportServicer interface {
	Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

// Server holds the services behind every endpoint.
type Server struct {
	trips     TripServicer
	itinerary ItineraryServicer
	lodgings  LodgingServicer
	export    ExportServicer
}

// NewServer constructs the Server with all its dependencies. Any of them
// may be nil in tests that do not reach the matching routes.
func NewServer(trips TripServicer, itinerary ItineraryServicer, lodgings LodgingServicer, export ExportServicer) *Server {
	return &Server{trips: trips, itinerary: itinerary, lodgings: lodgings, export: export}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns the API router. main.go mounts it under the middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)

	r.Route("/trips", func(r chi.Router) {
		r.Post("/", s.CreateTrip)
		r.Get("/", s.ListTrips)

		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Put("/", s.UpdateTrip)
			r.Delete("/", s.DeleteTrip)
			r.Get("/coverage", s.GetCoverage)
			r.Get("/export", s.GetExport)

			r.Get("/days", s.ListDays)
			r.Route("/days/{dayId}", func(r chi.Router) {
				r.Get("/", s.GetDay)
				r.Get("/layout", s.GetLayout)
				r.Post("/enrich", s.EnrichDay)
				r.Post("/activities", s.AddActivity)
				r.Route("/activities/{activityId}", func(r chi.Router) {
					r.Put("/", s.UpdateActivity)
					r.Delete("/", s.DeleteActivity)
					r.Post("/reorder", s.ReorderActivity)
					r.Post("/drag", s.DragActivity)
					r.Post("/move", s.MoveActivity)
				})
			})

			r.Get("/lodgings", s.ListLodgings)
			r.Post("/lodgings", s.CreateLodging)
			r.Put("/lodgings/{lodgingId}", s.UpdateLodging)
			r.Delete("/lodgings/{lodgingId}", s.DeleteLodging)
		})
	})
	return r
}
