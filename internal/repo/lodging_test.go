package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/repo"
)

func newLodgingRepo(t *testing.T) (repo.LodgingRepo, domain.Trip) {
	t.Helper()
	tx := newTestTx(t)
	trip, err := repo.NewTripRepo(tx).Create(context.Background(), tripFixture())
	require.NoError(t, err)
	return repo.NewLodgingRepo(tx), trip
}

func lodgingFixture(tripID uuid.UUID) domain.Lodging {
	return domain.Lodging{
		TripID:   tripID,
		Name:     "Hotel du Louvre",
		CheckIn:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		Status:   domain.LodgingConfirmed,
		Place:    domain.Location{Name: "Place André Malraux, Paris", Coords: &domain.LatLng{Lat: 48.863, Lng: 2.335}},
	}
}

func TestLodgingRepo_CreateAndGet(t *testing.T) {
	r, trip := newLodgingRepo(t)
	ctx := context.Background()

	created, err := r.Create(ctx, lodgingFixture(trip.ID))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	got, err := r.GetByID(ctx, trip.ID, created.ID)

	require.NoError(t, err)
	assert.Equal(t, "Hotel du Louvre", got.Name)
	assert.Equal(t, domain.LodgingConfirmed, got.Status)
	assert.True(t, got.CheckIn.Equal(lodgingFixture(trip.ID).CheckIn))
	assert.Equal(t, lodgingFixture(trip.ID).Place, got.Place)
}

func TestLodgingRepo_GetByID_OtherTrip(t *testing.T) {
	r, trip := newLodgingRepo(t)
	ctx := context.Background()
	created, err := r.Create(ctx, lodgingFixture(trip.ID))
	require.NoError(t, err)

	_, err = r.GetByID(ctx, uuid.New(), created.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLodgingRepo_ListByTrip_OrderedByCheckIn(t *testing.T) {
	r, trip := newLodgingRepo(t)
	ctx := context.Background()

	late := lodgingFixture(trip.ID)
	late.Name = "Second"
	late.CheckIn = late.CheckIn.AddDate(0, 0, 2)
	late.CheckOut = late.CheckOut.AddDate(0, 0, 2)
	_, err := r.Create(ctx, late)
	require.NoError(t, err)
	_, err = r.Create(ctx, lodgingFixture(trip.ID))
	require.NoError(t, err)

	got, err := r.ListByTrip(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Hotel du Louvre", got[0].Name)
	assert.Equal(t, "Second", got[1].Name)
}

func TestLodgingRepo_Update(t *testing.T) {
	r, trip := newLodgingRepo(t)
	ctx := context.Background()
	created, err := r.Create(ctx, lodgingFixture(trip.ID))
	require.NoError(t, err)

	created.Status = domain.LodgingCancelled
	created.Place = domain.Location{PlaceRef: "place-42"}
	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, domain.LodgingCancelled, updated.Status)
	assert.Equal(t, domain.Location{PlaceRef: "place-42"}, updated.Place)
}

func TestLodgingRepo_Delete(t *testing.T) {
	r, trip := newLodgingRepo(t)
	ctx := context.Background()
	created, err := r.Create(ctx, lodgingFixture(trip.ID))
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, trip.ID, created.ID))
	assert.ErrorIs(t, r.Delete(ctx, trip.ID, created.ID), domain.ErrNotFound)
}
