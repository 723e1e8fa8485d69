package timeclock

import (
	"context"
)

// TimeclockService is the façade the presentation layer talks to. Caller
// identity comes from the request context (JWT claims); every mutating
// operation requires the caller to resolve to an employee record.
type TimeclockService interface {
	// ClockIn opens the caller's attendance day
	ClockIn(ctx context.Context, req ClockInRequest) (DayResponse, error)

	// ClockOut closes the day; fails while a break is open
	ClockOut(ctx context.Context, req ClockOutRequest) (DayResponse, error)

	// StartBreak opens a break interval
	StartBreak(ctx context.Context, req BreakStartRequest) (DayResponse, error)

	// EndBreak closes the open break interval
	EndBreak(ctx context.Context, req BreakEndRequest) (DayResponse, error)

	// GetToday reports the current day's state and derived summary
	GetToday(ctx context.Context) (TodayResponse, error)

	// GetHistory returns one entry per calendar date in range, oldest first
	GetHistory(ctx context.Context, filter HistoryFilter) (HistoryResponse, error)

	// GetWeeklySummary rolls up the Monday-start week containing weekStart
	GetWeeklySummary(ctx context.Context, weekStart string) (WeeklySummaryResponse, error)
}
