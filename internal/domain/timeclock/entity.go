package timeclock

import (
	"time"
)

// Status of an AttendanceDay. Always derived from the stored timestamps,
// never persisted, so it cannot disagree with them.
type Status string

const (
	StatusNotClockedIn Status = "NOT_CLOCKED_IN"
	StatusClockedIn    Status = "CLOCKED_IN"
	StatusOnBreak      Status = "ON_BREAK"
	StatusClockedOut   Status = "CLOCKED_OUT"
)

// AttendanceDay is the per-employee, per-date record of clock and break
// activity. At most one exists per (employee, date); it is created by the
// first clock-in and frozen once ClockOut is set.
type AttendanceDay struct {
	ID         string
	EmployeeID string
	Date       time.Time // calendar date at midnight UTC, immutable
	ClockIn    *time.Time
	ClockOut   *time.Time
	Breaks     []BreakInterval
	Version    int64 // optimistic concurrency token, owned by the store
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BreakInterval is one pause within a clocked-in period. End is nil while
// the break is still open; at most one interval per day may be open.
type BreakInterval struct {
	BreakType string
	Start     time.Time
	End       *time.Time
}

// Status derives the current state from the day's fields.
func (d *AttendanceDay) Status() Status {
	switch {
	case d == nil || d.ClockIn == nil:
		return StatusNotClockedIn
	case d.ClockOut != nil:
		return StatusClockedOut
	case d.OpenBreak() != nil:
		return StatusOnBreak
	default:
		return StatusClockedIn
	}
}

// OpenBreak returns the break interval that has not been ended yet, or nil.
func (d *AttendanceDay) OpenBreak() *BreakInterval {
	if d == nil {
		return nil
	}
	for i := range d.Breaks {
		if d.Breaks[i].End == nil {
			return &d.Breaks[i]
		}
	}
	return nil
}

// DateOnly strips the time component, keeping the wall-clock calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (d *AttendanceDay) clone() AttendanceDay {
	next := *d
	next.Breaks = make([]BreakInterval, len(d.Breaks))
	copy(next.Breaks, d.Breaks)
	return next
}
