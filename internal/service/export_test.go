package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/service"
)

func TestExport_OneRowPerActivityInDayOrder(t *testing.T) {
	a := domain.Lodging{ID: uuid.New(), Name: "Hotel A", CheckIn: date(6, 1), CheckOut: date(6, 3), Status: domain.LodgingConfirmed}
	b := domain.Lodging{ID: uuid.New(), Name: "Hotel B", CheckIn: date(6, 2), CheckOut: date(6, 3), Status: domain.LodgingPending}
	f := newFixture(t, a, b)
	f.add(t, 0, floating("Louvre", "museum"))
	f.add(t, 0, floating("Lunch", "meal"))
	f.add(t, 1, fixedAt("Orsay", domain.ClockOf(14, 0), 90))
	exp := service.NewExportService(f.trips, f.store, f.lr, durations{"museum": 120, "meal": 60})

	rows, err := exp.Export(context.Background(), f.tripID)

	require.NoError(t, err)
	require.Len(t, rows, 4, "two activities, one activity, one empty day")

	assert.Equal(t, "Paris", rows[0].TripName)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, "Louvre", rows[0].Name)
	assert.Equal(t, domain.ClockOf(9, 0), rows[0].Start)
	assert.Equal(t, domain.ClockOf(11, 0), rows[0].End, "category default duration")
	assert.Equal(t, 120, rows[0].Duration)
	assert.Equal(t, "Hotel A", rows[0].Lodging)

	assert.Equal(t, 2, rows[1].Position)
	assert.Equal(t, "Lunch", rows[1].Name)

	assert.Equal(t, "Orsay", rows[2].Name)
	assert.True(t, rows[2].IsFixedTime)
	assert.Equal(t, domain.ClockOf(15, 30), rows[2].End)
	assert.Equal(t, "Hotel A / Hotel B", rows[2].Lodging, "overlapping stays are all listed")

	assert.Equal(t, 0, rows[3].Position)
	assert.Empty(t, rows[3].Name)
	assert.True(t, rows[3].Date.Equal(date(6, 3)))
	assert.False(t, rows[3].Start.IsScheduled())
	assert.Empty(t, rows[3].Lodging, "departure day")
}

func TestExport_UnknownTrip(t *testing.T) {
	f := newFixture(t)
	exp := service.NewExportService(f.trips, f.store, f.lr, nil)

	_, err := exp.Export(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
