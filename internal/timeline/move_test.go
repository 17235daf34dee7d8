package timeline_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary/internal/domain"
	"github.com/pkordes/itinerary/internal/timeline"
)

func dayWith(activities ...domain.Activity) domain.Day {
	return domain.Day{ID: uuid.New(), Activities: activities}
}

func TestResolveMove_KeepsFreeTime(t *testing.T) {
	moving := act("2:00 PM", 60, false)
	source := dayWith(moving)
	target := dayWith(act("9:00 AM", 60, false), act("4:00 PM", 60, false))

	m, err := timeline.ResolveMove(moving, source, target)

	require.NoError(t, err)
	assert.Equal(t, at("2:00 PM"), m.Time)
	assert.Equal(t, 1, m.Index)
}

func TestResolveMove_SameTimeFallsBackToUnscheduled(t *testing.T) {
	moving := act("2:00 PM", 60, false)
	source := dayWith(moving)
	target := dayWith(act("9:00 AM", 60, false), act("2:00 PM", 60, false))

	m, err := timeline.ResolveMove(moving, source, target)

	require.NoError(t, err)
	assert.Equal(t, domain.Unscheduled, m.Time)
	assert.Equal(t, 2, m.Index, "inserted at the end")
}

func TestResolveMove_UnscheduledGoesToEnd(t *testing.T) {
	moving := act("", 30, false)
	source := dayWith(moving)
	target := dayWith(act("9:00 AM", 60, false), act("11:00 AM", 60, false))

	m, err := timeline.ResolveMove(moving, source, target)

	require.NoError(t, err)
	assert.Equal(t, domain.Unscheduled, m.Time)
	assert.Equal(t, 2, m.Index)
}

func TestResolveMove_LatestGoesToEnd(t *testing.T) {
	moving := act("9:00 PM", 60, true)
	source := dayWith(moving)
	target := dayWith(act("9:00 AM", 60, false))

	m, err := timeline.ResolveMove(moving, source, target)

	require.NoError(t, err)
	assert.Equal(t, at("9:00 PM"), m.Time)
	assert.Equal(t, 1, m.Index)
}

func TestResolveMove_EmptyTarget(t *testing.T) {
	moving := act("8:00 AM", 60, false)

	m, err := timeline.ResolveMove(moving, dayWith(moving), dayWith())

	require.NoError(t, err)
	assert.Equal(t, 0, m.Index)
}

func TestResolveMove_ContractViolations(t *testing.T) {
	moving := act("8:00 AM", 60, false)
	source := dayWith(moving)

	_, err := timeline.ResolveMove(moving, source, domain.Day{})
	assert.ErrorIs(t, err, timeline.ErrNoTargetDay)

	_, err = timeline.ResolveMove(moving, source, source)
	assert.ErrorIs(t, err, timeline.ErrSameDay)

	_, err = timeline.ResolveMove(moving, dayWith(), dayWith())
	assert.ErrorIs(t, err, timeline.ErrNotInSource)
}

func TestInsertionIndex_BeforeUnscheduled(t *testing.T) {
	list := []domain.Activity{act("9:00 AM", 60, false), act("", 30, false)}

	assert.Equal(t, 1, timeline.InsertionIndex(list, at("10:00 AM")))
	assert.Equal(t, 2, timeline.InsertionIndex(list, domain.Unscheduled))
	assert.Equal(t, 1, timeline.InsertionIndex(list, at("9:00 AM")), "equal time goes after")
}

// ---- list edits ------------------------------------------------------------

func TestInsertAndRemove(t *testing.T) {
	a, b, c := act("9:00 AM", 30, false), act("", 30, false), act("", 30, false)

	list := timeline.Insert([]domain.Activity{a, c}, 1, b)
	assert.Equal(t, ids([]domain.Activity{a, b, c}), ids(list))

	list = timeline.Insert(list, 99, act("", 10, false))
	assert.Len(t, list, 4)

	rest, removed, ok := timeline.Remove(list, b.ID)
	require.True(t, ok)
	assert.Equal(t, b.ID, removed.ID)
	assert.Len(t, rest, 3)

	_, _, ok = timeline.Remove(rest, b.ID)
	assert.False(t, ok)
}

func TestReorder(t *testing.T) {
	a, b, c := act("", 30, false), act("", 30, false), act("", 30, false)

	got, ok := timeline.Reorder([]domain.Activity{a, b, c}, a.ID, 2)

	require.True(t, ok)
	assert.Equal(t, ids([]domain.Activity{b, c, a}), ids(got))
}

func TestDrag_PinsSnappedTimeAndReorders(t *testing.T) {
	a := act("9:00 AM", 60, false)
	b := act("10:00 AM", 60, false)
	c := act("11:00 AM", 60, false)
	g := timeline.Grid{}

	// 8:07 AM snaps to 8:00 AM (480).
	got, ok := timeline.Drag([]domain.Activity{a, b, c}, c.ID, 487, g)

	require.True(t, ok)
	assert.Equal(t, ids([]domain.Activity{c, a, b}), ids(got))
	assert.Equal(t, at("8:00 AM"), got[0].Time)
	assert.True(t, got[0].IsFixedTime)
}

func TestDrag_UnknownID(t *testing.T) {
	list := []domain.Activity{act("9:00 AM", 60, false)}

	got, ok := timeline.Drag(list, uuid.New(), 100, timeline.Grid{})

	assert.False(t, ok)
	assert.Equal(t, ids(list), ids(got))
}
