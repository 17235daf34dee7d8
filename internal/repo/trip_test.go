package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/repo"
	"github.com/pkordes/itinerary/testutil"
)

// newTestTx returns a rolled-back-on-cleanup transaction; TestMain has
// already applied the migrations.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	return domain.Trip{
		Name:      "Paris Long Weekend",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		Notes:     "Test notes",
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Name, got.Name)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
	assert.Equal(t, input.Notes, got.Notes)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestTripRepo_Create_GeneratesDays(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()

	trip, err := repo.NewTripRepo(tx).Create(ctx, tripFixture())
	require.NoError(t, err)

	days, err := repo.NewDayRepo(tx).ListByTrip(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, days, 4, "June 1 through June 4 inclusive")
	for i, d := range days {
		assert.True(t, d.Date.Equal(trip.StartDate.AddDate(0, 0, i)), "day %d date", i)
		assert.Equal(t, trip.ID, d.TripID)
		assert.Empty(t, d.Activities)
	}
	assert.Equal(t, "Day 1", days[0].Title)
	assert.Equal(t, "Day 4", days[3].Title)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_ListPaged(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	first := tripFixture()
	first.Name = "First Trip"
	second := tripFixture()
	second.Name = "Second Trip"
	second.StartDate = first.StartDate.AddDate(1, 0, 0)
	second.EndDate = first.EndDate.AddDate(1, 0, 0)

	_, err := r.Create(ctx, first)
	require.NoError(t, err)
	_, err = r.Create(ctx, second)
	require.NoError(t, err)

	page, total, err := r.ListPaged(ctx, domain.PaginationParams{Page: 1, Limit: 1})

	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(2))
	require.Len(t, page, 1)
	assert.Equal(t, "Second Trip", page[0].Name, "later start date first")
}

func TestTripRepo_Update(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.Name = "Updated Name"
	created.Notes = "Updated notes"
	created.EndDate = created.EndDate.AddDate(0, 0, 10)

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Updated Name", updated.Name)
	assert.Equal(t, "Updated notes", updated.Notes)
	assert.True(t, updated.EndDate.Equal(tripFixture().EndDate), "dates are fixed after creation")
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	ghost := tripFixture()
	ghost.ID = uuid.New()
	_, err := r.Update(context.Background(), ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	tx := newTestTx(t)
	r := repo.NewTripRepo(tx)
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
	days, err := repo.NewDayRepo(tx).ListByTrip(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, days, "days cascade with the trip")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	err := r.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
