package timeline_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/timeline"
)

func TestDetectConflicts_BackToBackIsNotAConflict(t *testing.T) {
	a := act("9:00 AM", 60, false)
	b := act("10:00 AM", 60, false)

	c := timeline.DetectConflicts([]domain.Activity{a, b}, nil)

	assert.Zero(t, c.Len())
	assert.Empty(t, c.Pairs)
	assert.False(t, c.Has(a.ID))
}

func TestDetectConflicts_Overlap(t *testing.T) {
	a := act("9:00 AM", 90, false)
	b := act("10:00 AM", 60, false)

	c := timeline.DetectConflicts([]domain.Activity{a, b}, nil)

	assert.True(t, c.Has(a.ID))
	assert.True(t, c.Has(b.ID))
	assert.Equal(t, []timeline.Pair{{First: a.ID, Second: b.ID}}, c.Pairs)
}

func TestDetectConflicts_UnscheduledNeverConflicts(t *testing.T) {
	a := act("9:00 AM", 120, false)
	b := act("", 60, false)

	c := timeline.DetectConflicts([]domain.Activity{a, b}, nil)

	assert.False(t, c.Has(b.ID))
	assert.Zero(t, c.Len())
}

func TestDetectConflicts_InputOrderDoesNotMatterForMembership(t *testing.T) {
	late := act("2:00 PM", 60, true)
	early := act("1:30 PM", 60, true)

	c := timeline.DetectConflicts([]domain.Activity{late, early}, nil)

	require.Len(t, c.Pairs, 1)
	assert.Equal(t, timeline.Pair{First: early.ID, Second: late.ID}, c.Pairs[0], "earlier start first")
}

func TestDetectConflicts_TiesKeepInputOrder(t *testing.T) {
	a := act("9:00 AM", 30, true)
	b := act("9:00 AM", 30, true)

	first := timeline.DetectConflicts([]domain.Activity{a, b}, nil)
	second := timeline.DetectConflicts([]domain.Activity{b, a}, nil)

	assert.Equal(t, []uuid.UUID{a.ID, b.ID}, first.IDs())
	assert.Equal(t, []uuid.UUID{b.ID, a.ID}, second.IDs())
}

func TestDetectConflicts_LongActivityOverlapsSeveral(t *testing.T) {
	long := act("9:00 AM", 240, true)
	x := act("10:00 AM", 30, false)
	y := act("11:00 AM", 30, false)
	z := act("1:00 PM", 30, false)

	c := timeline.DetectConflicts([]domain.Activity{long, x, y, z}, nil)

	assert.True(t, c.Has(long.ID))
	assert.True(t, c.Has(x.ID))
	assert.True(t, c.Has(y.ID))
	assert.False(t, c.Has(z.ID), "starts exactly when the long one ends")
	assert.Len(t, c.Pairs, 2)
}

func TestDetectConflicts_DefaultDurationFromCategory(t *testing.T) {
	a := act("9:00 AM", 0, false)
	a.Category = "tour"
	b := act("11:00 AM", 30, false)

	withDefault := timeline.DetectConflicts([]domain.Activity{a, b}, fixedDefaults{"tour": 180})
	withFallback := timeline.DetectConflicts([]domain.Activity{a, b}, nil)

	assert.True(t, withDefault.Has(b.ID))
	assert.False(t, withFallback.Has(b.ID))
}
