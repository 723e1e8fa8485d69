package timeclock

import (
	"context"
	"time"
)

// DayRepository is the attendance record store: durable keyed storage of
// AttendanceDay by (employeeID, date) plus the append-only event journal.
// Mutations are conditional so that concurrent writers for the same key
// resolve to exactly one winner.
type DayRepository interface {
	// GetByEmployeeAndDate returns the day for the date, or (nil, nil)
	// when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*AttendanceDay, error)

	// GetRange returns all days in [start, end], oldest first. Dates
	// without a record are simply absent.
	GetRange(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceDay, error)

	// CreateDay inserts a new day and appends its originating event in one
	// transaction. Fails with ErrAlreadyClockedIn when a day already
	// exists for (employeeID, date).
	CreateDay(ctx context.Context, day AttendanceDay, ev TimeEvent) (AttendanceDay, error)

	// UpdateDay writes the day conditionally on its Version and appends
	// the event. Fails with ErrVersionConflict when another writer got
	// there first.
	UpdateDay(ctx context.Context, day AttendanceDay, ev TimeEvent) (AttendanceDay, error)

	// GetByEventKey returns the day an already-applied event with this
	// idempotency key produced, or (nil, nil) when the key is unseen.
	GetByEventKey(ctx context.Context, employeeID, key string) (*AttendanceDay, error)
}
