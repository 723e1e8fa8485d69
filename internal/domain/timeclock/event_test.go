package timeclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 3, 9, hour, min, 0, 0, time.UTC)
}

func dayAt(hour, min int) *AttendanceDay {
	in := ts(hour, min)
	return &AttendanceDay{
		ID:         "day-1",
		EmployeeID: "emp-1",
		Date:       DateOnly(in),
		ClockIn:    &in,
	}
}

func TestApply_ClockIn_CreatesDay(t *testing.T) {
	ev := TimeEvent{EmployeeID: "emp-1", Type: EventClockIn, OccurredAt: ts(9, 0)}

	next, err := Apply(nil, ev)

	require.NoError(t, err)
	assert.Equal(t, "emp-1", next.EmployeeID)
	assert.Equal(t, DateOnly(ts(9, 0)), next.Date)
	require.NotNil(t, next.ClockIn)
	assert.Equal(t, ts(9, 0), *next.ClockIn)
	assert.Equal(t, StatusClockedIn, next.Status())
}

func TestApply_ClockIn_Twice(t *testing.T) {
	day := dayAt(9, 0)

	_, err := Apply(day, TimeEvent{Type: EventClockIn, OccurredAt: ts(10, 0)})

	assert.ErrorIs(t, err, ErrAlreadyClockedIn)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApply_ClockOut_Success(t *testing.T) {
	day := dayAt(9, 0)

	next, err := Apply(day, TimeEvent{Type: EventClockOut, OccurredAt: ts(17, 0)})

	require.NoError(t, err)
	require.NotNil(t, next.ClockOut)
	assert.Equal(t, ts(17, 0), *next.ClockOut)
	assert.Equal(t, StatusClockedOut, next.Status())
}

func TestApply_ClockOut_WithoutClockIn(t *testing.T) {
	_, err := Apply(nil, TimeEvent{Type: EventClockOut, OccurredAt: ts(17, 0)})

	assert.ErrorIs(t, err, ErrNotClockedIn)
}

func TestApply_ClockOut_NotAfterClockIn(t *testing.T) {
	day := dayAt(9, 0)

	_, err := Apply(day, TimeEvent{Type: EventClockOut, OccurredAt: ts(9, 0)})

	assert.ErrorIs(t, err, ErrEventNotMonotonic)
}

func TestApply_ClockOut_WhileOnBreak(t *testing.T) {
	day := dayAt(9, 0)
	onBreak, err := Apply(day, TimeEvent{Type: EventBreakStart, BreakType: "lunch", OccurredAt: ts(12, 0)})
	require.NoError(t, err)
	assert.Equal(t, StatusOnBreak, onBreak.Status())

	// Clocking out over an open break is rejected, not auto-closed.
	_, err = Apply(&onBreak, TimeEvent{Type: EventClockOut, OccurredAt: ts(12, 30)})
	assert.ErrorIs(t, err, ErrOnBreak)

	// Ending the break first unblocks the clock-out.
	closed, err := Apply(&onBreak, TimeEvent{Type: EventBreakEnd, OccurredAt: ts(12, 30)})
	require.NoError(t, err)

	done, err := Apply(&closed, TimeEvent{Type: EventClockOut, OccurredAt: ts(17, 0)})
	require.NoError(t, err)
	assert.Equal(t, StatusClockedOut, done.Status())
}

func TestApply_BreakStart_Preconditions(t *testing.T) {
	t.Run("not clocked in", func(t *testing.T) {
		_, err := Apply(nil, TimeEvent{Type: EventBreakStart, BreakType: "lunch", OccurredAt: ts(12, 0)})
		assert.ErrorIs(t, err, ErrNotClockedIn)
	})

	t.Run("already on break", func(t *testing.T) {
		day := dayAt(9, 0)
		onBreak, err := Apply(day, TimeEvent{Type: EventBreakStart, BreakType: "lunch", OccurredAt: ts(12, 0)})
		require.NoError(t, err)

		_, err = Apply(&onBreak, TimeEvent{Type: EventBreakStart, BreakType: "rest", OccurredAt: ts(12, 10)})
		assert.ErrorIs(t, err, ErrAlreadyOnBreak)
	})

	t.Run("day clocked out", func(t *testing.T) {
		day := dayAt(9, 0)
		done, err := Apply(day, TimeEvent{Type: EventClockOut, OccurredAt: ts(17, 0)})
		require.NoError(t, err)

		_, err = Apply(&done, TimeEvent{Type: EventBreakStart, BreakType: "lunch", OccurredAt: ts(17, 30)})
		assert.ErrorIs(t, err, ErrDayLocked)
	})
}

func TestApply_BreakEnd_Twice(t *testing.T) {
	day := dayAt(9, 0)
	onBreak, err := Apply(day, TimeEvent{Type: EventBreakStart, BreakType: "personal", OccurredAt: ts(12, 0)})
	require.NoError(t, err)

	closed, err := Apply(&onBreak, TimeEvent{Type: EventBreakEnd, OccurredAt: ts(12, 15)})
	require.NoError(t, err)
	assert.Equal(t, StatusClockedIn, closed.Status())

	_, err = Apply(&closed, TimeEvent{Type: EventBreakEnd, OccurredAt: ts(12, 20)})
	assert.ErrorIs(t, err, ErrNoOpenBreak)
}

func TestApply_MultipleBreaks(t *testing.T) {
	day := dayAt(9, 0)

	events := []TimeEvent{
		{Type: EventBreakStart, BreakType: "rest", OccurredAt: ts(10, 30)},
		{Type: EventBreakEnd, OccurredAt: ts(10, 45)},
		{Type: EventBreakStart, BreakType: "lunch", OccurredAt: ts(12, 0)},
		{Type: EventBreakEnd, OccurredAt: ts(13, 0)},
	}
	cur := *day
	for _, ev := range events {
		next, err := Apply(&cur, ev)
		require.NoError(t, err)
		cur = next
	}

	require.Len(t, cur.Breaks, 2)
	assert.Equal(t, "rest", cur.Breaks[0].BreakType)
	assert.Equal(t, "lunch", cur.Breaks[1].BreakType)
	assert.Nil(t, cur.OpenBreak())
}

func TestApply_RejectsNonMonotonicEvent(t *testing.T) {
	day := dayAt(9, 0)
	onBreak, err := Apply(day, TimeEvent{Type: EventBreakStart, BreakType: "lunch", OccurredAt: ts(12, 0)})
	require.NoError(t, err)

	_, err = Apply(&onBreak, TimeEvent{Type: EventBreakEnd, OccurredAt: ts(11, 0)})
	assert.ErrorIs(t, err, ErrEventNotMonotonic)
}

func TestApply_UnknownEventType(t *testing.T) {
	day := dayAt(9, 0)

	_, err := Apply(day, TimeEvent{Type: EventType("nap"), OccurredAt: ts(10, 0)})

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	day := dayAt(9, 0)
	onBreak, err := Apply(day, TimeEvent{Type: EventBreakStart, BreakType: "lunch", OccurredAt: ts(12, 0)})
	require.NoError(t, err)

	_, err = Apply(&onBreak, TimeEvent{Type: EventBreakEnd, OccurredAt: ts(12, 30)})
	require.NoError(t, err)

	// The break on the input day is still open.
	require.NotNil(t, onBreak.OpenBreak())
	assert.Nil(t, day.OpenBreak())
	assert.Empty(t, day.Breaks)
}

func TestStatus_Derivation(t *testing.T) {
	var nilDay *AttendanceDay
	assert.Equal(t, StatusNotClockedIn, nilDay.Status())
	assert.Equal(t, StatusNotClockedIn, (&AttendanceDay{}).Status())

	day := dayAt(9, 0)
	assert.Equal(t, StatusClockedIn, day.Status())

	onBreak, err := Apply(day, TimeEvent{Type: EventBreakStart, BreakType: "lunch", OccurredAt: ts(12, 0)})
	require.NoError(t, err)
	assert.Equal(t, StatusOnBreak, onBreak.Status())

	closed, err := Apply(&onBreak, TimeEvent{Type: EventBreakEnd, OccurredAt: ts(13, 0)})
	require.NoError(t, err)
	assert.Equal(t, StatusClockedIn, closed.Status())

	done, err := Apply(&closed, TimeEvent{Type: EventClockOut, OccurredAt: ts(17, 0)})
	require.NoError(t, err)
	assert.Equal(t, StatusClockedOut, done.Status())
}

func TestDateOnly(t *testing.T) {
	at := time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), DateOnly(at))
}
