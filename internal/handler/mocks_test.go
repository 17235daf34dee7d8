package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/handler"
	"github.com/pkordes/itinerary/internal/service"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list    func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) List(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.list(ctx, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// mockItineraryServicer is a test double for handler.ItineraryServicer.
type mockItineraryServicer struct {
	listDays       func(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error)
	getDay         func(ctx context.Context, tripID, dayID uuid.UUID) (service.DayView, error)
	layout         func(ctx context.Context, tripID, dayID uuid.UUID) (service.Layout, error)
	coverage       func(ctx context.Context, tripID uuid.UUID) (service.Coverage, error)
	addActivity    func(ctx context.Context, tripID, dayID uuid.UUID, in service.ActivityInput) (domain.Day, error)
	updateActivity func(ctx context.Context, tripID, dayID, activityID uuid.UUID, in service.ActivityInput) (domain.Day, error)
	deleteActivity func(ctx context.Context, tripID, dayID, activityID uuid.UUID) (domain.Day, error)
	reorder        func(ctx context.Context, tripID, dayID, activityID uuid.UUID, index int) (domain.Day, error)
	drag           func(ctx context.Context, tripID, dayID, activityID uuid.UUID, position float64) (domain.Day, error)
	move           func(ctx context.Context, tripID, dayID, activityID, targetDayID uuid.UUID) (domain.Day, domain.Day, error)
	enrich         func(ctx context.Context, tripID, dayID uuid.UUID) error
}

func (m *mockItineraryServicer) ListDays(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error) {
	return m.listDays(ctx, tripID)
}
func (m *mockItineraryServicer) GetDay(ctx context.Context, tripID, dayID uuid.UUID) (service.DayView, error) {
	return m.getDay(ctx, tripID, dayID)
}
func (m *mockItineraryServicer) Layout(ctx context.Context, tripID, dayID uuid.UUID) (service.Layout, error) {
	return m.layout(ctx, tripID, dayID)
}
func (m *mockItineraryServicer) Coverage(ctx context.Context, tripID uuid.UUID) (service.Coverage, error) {
	return m.coverage(ctx, tripID)
}
func (m *mockItineraryServicer) AddActivity(ctx context.Context, tripID, dayID uuid.UUID, in service.ActivityInput) (domain.Day, error) {
	return m.addActivity(ctx, tripID, dayID, in)
}
func (m *mockItineraryServicer) UpdateActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID, in service.ActivityInput) (domain.Day, error) {
	return m.updateActivity(ctx, tripID, dayID, activityID, in)
}
func (m *mockItineraryServicer) DeleteActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID) (domain.Day, error) {
	return m.deleteActivity(ctx, tripID, dayID, activityID)
}
func (m *mockItineraryServicer) ReorderActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID, index int) (domain.Day, error) {
	return m.reorder(ctx, tripID, dayID, activityID, index)
}
func (m *mockItineraryServicer) DragActivity(ctx context.Context, tripID, dayID, activityID uuid.UUID, position float64) (domain.Day, error) {
	return m.drag(ctx, tripID, dayID, activityID, position)
}
func (m *mockItineraryServicer) MoveActivity(ctx context.Context, tripID, dayID, activityID, targetDayID uuid.UUID) (domain.Day, domain.Day, error) {
	return m.move(ctx, tripID, dayID, activityID, targetDayID)
}
func (m *mockItineraryServicer) Enrich(ctx context.Context, tripID, dayID uuid.UUID) error {
	return m.enrich(ctx, tripID, dayID)
}

// mockLodgingServicer is a test double for handler.LodgingServicer.
type mockLodgingServicer struct {
	create     func(ctx context.Context, l domain.Lodging) (domain.Lodging, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Lodging, error)
	update     func(ctx context.Context, l domain.Lodging) (domain.Lodging, error)
	delete     func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockLodgingServicer) Create(ctx context.Context, l domain.Lodging) (domain.Lodging, error) {
	return m.create(ctx, l)
}
func (m *mockLodgingServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Lodging, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockLodgingServicer) Update(ctx context.Context, l domain.Lodging) (domain.Lodging, error) {
	return m.update(ctx, l)
}
func (m *mockLodgingServicer) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export func(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	return m.export(ctx, tripID)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.TripServicer      = (*mockTripServicer)(nil)
	_ handler.ItineraryServicer = (*mockItineraryServicer)(nil)
	_ handler.LodgingServicer   = (*mockLodgingServicer)(nil)
	_ handler.ExportServicer    = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the API router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(trips handler.TripServicer, itinerary handler.ItineraryServicer, lodgings handler.LodgingServicer) http.Handler {
	return handler.NewServer(trips, itinerary, lodgings, nil).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func dateStr(t time.Time) string {
	return t.Format("2006-01-02")
}

func decodeError(t *testing.T, b *bytes.Buffer) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(b).Decode(&resp))
	return resp
}
