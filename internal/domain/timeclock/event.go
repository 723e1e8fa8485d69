package timeclock

import (
	"fmt"
	"time"
)

type EventType string

const (
	EventClockIn    EventType = "clock_in"
	EventClockOut   EventType = "clock_out"
	EventBreakStart EventType = "break_start"
	EventBreakEnd   EventType = "break_end"
)

// TimeEvent is one state-changing action in the append-only attendance
// journal. Location and Notes are stored as metadata and never interpreted.
type TimeEvent struct {
	ID             string
	EmployeeID     string
	Type           EventType
	OccurredAt     time.Time
	BreakType      string // break_start only
	Location       *string
	Notes          *string
	IdempotencyKey *string
}

// Apply validates ev against the current day and returns the updated day.
// day is nil when no record exists yet for the date; only clock-in may
// create one. Apply never persists anything.
func Apply(day *AttendanceDay, ev TimeEvent) (AttendanceDay, error) {
	if day != nil && ev.OccurredAt.Before(lastEventTime(day)) {
		return AttendanceDay{}, ErrEventNotMonotonic
	}

	switch ev.Type {
	case EventClockIn:
		if day != nil && day.ClockIn != nil {
			return AttendanceDay{}, ErrAlreadyClockedIn
		}
		next := AttendanceDay{
			EmployeeID: ev.EmployeeID,
			Date:       DateOnly(ev.OccurredAt),
		}
		if day != nil {
			next = day.clone()
		}
		in := ev.OccurredAt
		next.ClockIn = &in
		return next, nil

	case EventBreakStart:
		switch {
		case day == nil || day.ClockIn == nil:
			return AttendanceDay{}, ErrNotClockedIn
		case day.ClockOut != nil:
			return AttendanceDay{}, ErrDayLocked
		case day.OpenBreak() != nil:
			return AttendanceDay{}, ErrAlreadyOnBreak
		}
		next := day.clone()
		next.Breaks = append(next.Breaks, BreakInterval{
			BreakType: ev.BreakType,
			Start:     ev.OccurredAt,
		})
		return next, nil

	case EventBreakEnd:
		if day != nil && day.ClockOut != nil {
			return AttendanceDay{}, ErrDayLocked
		}
		if day.OpenBreak() == nil {
			return AttendanceDay{}, ErrNoOpenBreak
		}
		next := day.clone()
		end := ev.OccurredAt
		next.Breaks[len(next.Breaks)-1].End = &end
		return next, nil

	case EventClockOut:
		switch {
		case day == nil || day.ClockIn == nil:
			return AttendanceDay{}, ErrNotClockedIn
		case day.ClockOut != nil:
			return AttendanceDay{}, ErrDayLocked
		case day.OpenBreak() != nil:
			return AttendanceDay{}, ErrOnBreak
		}
		if !ev.OccurredAt.After(*day.ClockIn) {
			return AttendanceDay{}, ErrEventNotMonotonic
		}
		next := day.clone()
		out := ev.OccurredAt
		next.ClockOut = &out
		return next, nil
	}

	return AttendanceDay{}, fmt.Errorf("%w: unknown event type %q", ErrInvalidTransition, ev.Type)
}

// lastEventTime returns the timestamp of the most recent recorded action on
// the day, used to enforce monotonic event ordering.
func lastEventTime(d *AttendanceDay) time.Time {
	var last time.Time
	if d.ClockIn != nil {
		last = *d.ClockIn
	}
	for _, b := range d.Breaks {
		if b.Start.After(last) {
			last = b.Start
		}
		if b.End != nil && b.End.After(last) {
			last = *b.End
		}
	}
	if d.ClockOut != nil && d.ClockOut.After(last) {
		last = *d.ClockOut
	}
	return last
}
