package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/itinerary/internal/category"
	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/timeline"
)

// compile-time check: Table must satisfy timeline.DurationDefaults.
var _ timeline.DurationDefaults = category.Table(nil)

func TestDefaultDuration(t *testing.T) {
	tbl := category.Default()

	assert.Equal(t, 120, tbl.DefaultDuration("museum"))
	assert.Equal(t, 120, tbl.DefaultDuration("  Museum "))
	assert.Equal(t, 30, tbl.DefaultDuration("Check In"))
	assert.Equal(t, 30, tbl.DefaultDuration("check_in"))
	assert.Zero(t, tbl.DefaultDuration("zeppelin"))
	assert.Zero(t, tbl.DefaultDuration(""))
}

func TestDefaultDuration_FeedsRecalculate(t *testing.T) {
	acts := []domain.Activity{
		{Name: "Louvre", Category: "museum", Time: domain.ClockOf(9, 0)},
		{Name: "Lunch"},
	}

	got := timeline.Recalculate(acts, category.Default())

	assert.Equal(t, "11:00 AM", got[1].Time.String())
}
