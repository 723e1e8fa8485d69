package timeclock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwork-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwork-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/clockwork-hr/timeclock-backend-go/internal/domain/user"
	"github.com/clockwork-hr/timeclock-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type TimeclockServiceImpl struct {
	timeclock.DayRepository
	employee.EmployeeRepository
}

func NewTimeclockService(
	dayRepo timeclock.DayRepository,
	employeeRepo employee.EmployeeRepository,
) timeclock.TimeclockService {
	return &TimeclockServiceImpl{
		DayRepository:      dayRepo,
		EmployeeRepository: employeeRepo,
	}
}

// storeRetries bounds the backoff retry on transient store failures. Only
// reads are retried; a failed conditional write is surfaced to the caller.
const storeRetries = 2

// ClockIn implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) ClockIn(ctx context.Context, req timeclock.ClockInRequest) (timeclock.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.DayResponse{}, err
	}
	return s.applyEvent(ctx, timeclock.TimeEvent{
		Type:           timeclock.EventClockIn,
		Location:       req.Location,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
	})
}

// ClockOut implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) ClockOut(ctx context.Context, req timeclock.ClockOutRequest) (timeclock.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.DayResponse{}, err
	}
	return s.applyEvent(ctx, timeclock.TimeEvent{
		Type:           timeclock.EventClockOut,
		Location:       req.Location,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
	})
}

// StartBreak implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) StartBreak(ctx context.Context, req timeclock.BreakStartRequest) (timeclock.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.DayResponse{}, err
	}
	return s.applyEvent(ctx, timeclock.TimeEvent{
		Type:           timeclock.EventBreakStart,
		BreakType:      req.BreakType,
		Location:       req.Location,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
	})
}

// EndBreak implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) EndBreak(ctx context.Context, req timeclock.BreakEndRequest) (timeclock.DayResponse, error) {
	if err := req.Validate(); err != nil {
		return timeclock.DayResponse{}, err
	}
	return s.applyEvent(ctx, timeclock.TimeEvent{
		Type:           timeclock.EventBreakEnd,
		Notes:          req.Notes,
		IdempotencyKey: req.IdempotencyKey,
	})
}

// applyEvent runs the shared mutation path: resolve the caller, replay
// idempotency keys, validate the transition in memory, then persist
// conditionally. A version conflict means another writer changed the day
// between read and write; the event is re-validated against fresh state so
// the caller gets the correct domain error rather than a stale success.
func (s *TimeclockServiceImpl) applyEvent(ctx context.Context, ev timeclock.TimeEvent) (timeclock.DayResponse, error) {
	emp, err := s.resolveEmployee(ctx, user.PermissionAttendanceTrack)
	if err != nil {
		return timeclock.DayResponse{}, err
	}

	now := time.Now().UTC()
	ev.ID = uuid.Must(uuid.NewV7()).String()
	ev.EmployeeID = emp.ID
	ev.OccurredAt = now

	if ev.IdempotencyKey != nil {
		replayed, err := s.DayRepository.GetByEventKey(ctx, emp.ID, *ev.IdempotencyKey)
		if err != nil {
			return timeclock.DayResponse{}, fmt.Errorf("failed to look up idempotency key: %w", err)
		}
		if replayed != nil {
			return mapDayToResponse(replayed, now), nil
		}
	}

	date := timeclock.DateOnly(now)
	for attempt := 0; attempt <= storeRetries; attempt++ {
		cur, err := s.getDay(ctx, emp.ID, date)
		if err != nil {
			return timeclock.DayResponse{}, err
		}

		// Preconditions are checked before any persistence attempt.
		next, err := timeclock.Apply(cur, ev)
		if err != nil {
			return timeclock.DayResponse{}, err
		}

		var saved timeclock.AttendanceDay
		if cur == nil {
			saved, err = s.DayRepository.CreateDay(ctx, next, ev)
		} else {
			saved, err = s.DayRepository.UpdateDay(ctx, next, ev)
		}
		if errors.Is(err, timeclock.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return timeclock.DayResponse{}, err
		}
		return mapDayToResponse(&saved, now), nil
	}

	return timeclock.DayResponse{}, timeclock.ErrVersionConflict
}

// GetToday implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) GetToday(ctx context.Context) (timeclock.TodayResponse, error) {
	emp, err := s.resolveEmployee(ctx, user.PermissionAttendanceViewOwn)
	if err != nil {
		return timeclock.TodayResponse{}, err
	}

	now := time.Now().UTC()
	date := timeclock.DateOnly(now)

	day, err := s.getDay(ctx, emp.ID, date)
	if err != nil {
		return timeclock.TodayResponse{}, err
	}

	resp := timeclock.TodayResponse{
		Date:   date.Format(dateLayout),
		Status: string(day.Status()),
	}
	if day != nil {
		mapped := mapDayToResponse(day, now)
		resp.HasRecord = true
		resp.Day = &mapped
	}
	return resp, nil
}

// GetHistory implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) GetHistory(ctx context.Context, filter timeclock.HistoryFilter) (timeclock.HistoryResponse, error) {
	if err := filter.Validate(); err != nil {
		return timeclock.HistoryResponse{}, err
	}

	emp, err := s.resolveEmployee(ctx, user.PermissionAttendanceViewOwn)
	if err != nil {
		return timeclock.HistoryResponse{}, err
	}

	start, _ := validator.IsValidDate(filter.StartDate)
	end, _ := validator.IsValidDate(filter.EndDate)
	now := time.Now().UTC()

	days, err := s.getRange(ctx, emp.ID, start, end)
	if err != nil {
		return timeclock.HistoryResponse{}, err
	}

	byDate := make(map[string]*timeclock.AttendanceDay, len(days))
	for i := range days {
		byDate[days[i].Date.Format(dateLayout)] = &days[i]
	}

	resp := timeclock.HistoryResponse{
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
	}
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		key := date.Format(dateLayout)
		entry := timeclock.HistoryEntry{Date: key}
		if day, ok := byDate[key]; ok {
			mapped := mapDayToResponse(day, now)
			entry.HasRecord = true
			entry.Day = &mapped
		}
		resp.Entries = append(resp.Entries, entry)
	}
	return resp, nil
}

// GetWeeklySummary implements timeclock.TimeclockService.
func (s *TimeclockServiceImpl) GetWeeklySummary(ctx context.Context, weekStart string) (timeclock.WeeklySummaryResponse, error) {
	anchor, ok := validator.IsValidDate(weekStart)
	if !ok {
		return timeclock.WeeklySummaryResponse{}, validator.ValidationErrors{{
			Field:   "week_start",
			Message: "week_start must be a valid date in YYYY-MM-DD format",
		}}
	}

	emp, err := s.resolveEmployee(ctx, user.PermissionAttendanceViewOwn)
	if err != nil {
		return timeclock.WeeklySummaryResponse{}, err
	}

	monday := WeekStart(anchor)
	days, err := s.getRange(ctx, emp.ID, monday, monday.AddDate(0, 0, 6))
	if err != nil {
		return timeclock.WeeklySummaryResponse{}, err
	}

	return WeeklySummary(days, monday, time.Now().UTC()), nil
}

// resolveEmployee gates the caller's role and resolves them through the
// employee directory. A user without an employee record gets
// employee.ErrEmployeeRecordMissing, which is distinct from the role gate.
func (s *TimeclockServiceImpl) resolveEmployee(ctx context.Context, perm user.Permission) (employee.Employee, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return employee.Employee{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	roleStr, ok := claims["role"].(string)
	if !ok || !user.HasPermission(user.Role(roleStr), perm) {
		return employee.Employee{}, timeclock.ErrRoleNotPermitted
	}

	emp, err := s.EmployeeRepository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeRecordMissing) {
			return employee.Employee{}, employee.ErrEmployeeRecordMissing
		}
		return employee.Employee{}, fmt.Errorf("failed to resolve employee record: %w", err)
	}
	return emp, nil
}

// getDay reads a single day with a bounded backoff retry on transient
// store failures.
func (s *TimeclockServiceImpl) getDay(ctx context.Context, employeeID string, date time.Time) (*timeclock.AttendanceDay, error) {
	var day *timeclock.AttendanceDay
	err := withStoreRetry(ctx, func() error {
		var err error
		day, err = s.DayRepository.GetByEmployeeAndDate(ctx, employeeID, date)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance day: %w", err)
	}
	return day, nil
}

func (s *TimeclockServiceImpl) getRange(ctx context.Context, employeeID string, start, end time.Time) ([]timeclock.AttendanceDay, error) {
	var days []timeclock.AttendanceDay
	err := withStoreRetry(ctx, func() error {
		var err error
		days, err = s.DayRepository.GetRange(ctx, employeeID, start, end)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance range: %w", err)
	}
	return days, nil
}

func withStoreRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt <= storeRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			}
		}
		err = fn()
		if !errors.Is(err, timeclock.ErrStoreUnavailable) {
			return err
		}
	}
	return err
}

// mapDayToResponse converts an AttendanceDay to DayResponse, deriving the
// status and the aggregated totals.
func mapDayToResponse(day *timeclock.AttendanceDay, now time.Time) timeclock.DayResponse {
	breaks := make([]timeclock.BreakResponse, 0, len(day.Breaks))
	for _, b := range day.Breaks {
		breaks = append(breaks, timeclock.BreakResponse{
			BreakType: b.BreakType,
			StartTime: b.Start.Format(time.RFC3339),
			EndTime:   timePtrToRFC3339(b.End),
		})
	}

	netSecs, anomaly := NetSeconds(day, now)
	return timeclock.DayResponse{
		ID:           day.ID,
		EmployeeID:   day.EmployeeID,
		Date:         day.Date.Format(dateLayout),
		Status:       string(day.Status()),
		ClockInTime:  timePtrToRFC3339(day.ClockIn),
		ClockOutTime: timePtrToRFC3339(day.ClockOut),
		Breaks:       breaks,
		TotalHours:   HoursForDisplay(WorkedSeconds(day, now)),
		BreakHours:   HoursForDisplay(BreakSeconds(day, now)),
		NetHours:     HoursForDisplay(netSecs),
		Anomaly:      anomaly,
	}
}
