package service_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/repo"
	"github.com/pkordes/itinerary/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	update    func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockLodgingRepo is a hand-written test double for repo.LodgingRepo.
type mockLodgingRepo struct {
	create     func(ctx context.Context, l domain.Lodging) (domain.Lodging, error)
	getByID    func(ctx context.Context, tripID, id uuid.UUID) (domain.Lodging, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Lodging, error)
	update     func(ctx context.Context, l domain.Lodging) (domain.Lodging, error)
	delete     func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockLodgingRepo) Create(ctx context.Context, l domain.Lodging) (domain.Lodging, error) {
	return m.create(ctx, l)
}
func (m *mockLodgingRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Lodging, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockLodgingRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Lodging, error) {
	if m.listByTrip == nil {
		return nil, nil
	}
	return m.listByTrip(ctx, tripID)
}
func (m *mockLodgingRepo) Update(ctx context.Context, l domain.Lodging) (domain.Lodging, error) {
	return m.update(ctx, l)
}
func (m *mockLodgingRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ repo.LodgingRepo = (*mockLodgingRepo)(nil)

// memDayRepo is an in-memory repo.DayRepo. Mutate hands fn copies and only
// stores the result when fn succeeds, like the real transaction.
type memDayRepo struct {
	mu   sync.Mutex
	days map[uuid.UUID]domain.Day
}

func newMemDayRepo(days ...domain.Day) *memDayRepo {
	m := &memDayRepo{days: make(map[uuid.UUID]domain.Day)}
	for _, d := range days {
		m.days[d.ID] = d.Clone()
	}
	return m
}

func (m *memDayRepo) ListByTrip(_ context.Context, tripID uuid.UUID) ([]domain.Day, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Day
	for _, d := range m.days {
		if d.TripID == tripID {
			out = append(out, d.Clone())
		}
	}
	slices.SortFunc(out, func(a, b domain.Day) int { return a.Date.Compare(b.Date) })
	return out, nil
}

func (m *memDayRepo) GetByID(_ context.Context, tripID, dayID uuid.UUID) (domain.Day, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.days[dayID]
	if !ok || d.TripID != tripID {
		return domain.Day{}, domain.ErrNotFound
	}
	return d.Clone(), nil
}

func (m *memDayRepo) Mutate(_ context.Context, dayIDs []uuid.UUID, fn repo.MutateFunc) ([]domain.Day, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	days := make([]domain.Day, len(dayIDs))
	for i, id := range dayIDs {
		d, ok := m.days[id]
		if !ok {
			return nil, domain.ErrNotFound
		}
		days[i] = d.Clone()
	}
	updated, err := fn(days)
	if err != nil {
		return nil, err
	}
	for _, d := range updated {
		m.days[d.ID] = d.Clone()
	}
	return updated, nil
}

// get returns the stored state of a day.
func (m *memDayRepo) get(id uuid.UUID) domain.Day {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.days[id].Clone()
}

// put overwrites the stored state of a day, simulating a concurrent edit.
func (m *memDayRepo) put(d domain.Day) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.days[d.ID] = d.Clone()
}

var _ repo.DayRepo = (*memDayRepo)(nil)

// submission is one call to recordingEnqueuer.Submit.
type submission struct {
	day  domain.Day
	stay *domain.Lodging
}

// recordingEnqueuer captures submissions instead of running enrichment.
type recordingEnqueuer struct {
	mu   sync.Mutex
	subs []submission
}

func (r *recordingEnqueuer) Submit(day domain.Day, stay *domain.Lodging) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, submission{day: day.Clone(), stay: stay})
}

func (r *recordingEnqueuer) submissions() []submission {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]submission(nil), r.subs...)
}

var _ service.Enqueuer = (*recordingEnqueuer)(nil)

// durations is a fixed category table for tests.
type durations map[string]int

func (d durations) DefaultDuration(category string) int { return d[category] }

func date(month time.Month, day int) time.Time {
	return time.Date(2025, month, day, 0, 0, 0, 0, time.UTC)
}
