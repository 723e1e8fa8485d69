package timeclock

import (
	"github.com/clockwork-hr/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// TIMECLOCK DTOs
// ========================================

var allowedBreakTypes = []string{"lunch", "personal", "rest"}

type ClockInRequest struct {
	Location       *string `json:"location,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	IdempotencyKey *string `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	return validateMetadata(r.Location, r.Notes)
}

type ClockOutRequest struct {
	Location       *string `json:"location,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	IdempotencyKey *string `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	return validateMetadata(r.Location, r.Notes)
}

type BreakStartRequest struct {
	BreakType      string  `json:"break_type"`
	Location       *string `json:"location,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	IdempotencyKey *string `json:"-"`
}

func (r *BreakStartRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BreakType) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_type",
			Message: "break_type is required",
		})
	} else if !validator.IsInSlice(r.BreakType, allowedBreakTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "break_type",
			Message: "break_type must be one of: lunch, personal, rest",
		})
	}

	if err := validateMetadata(r.Location, r.Notes); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BreakEndRequest struct {
	Notes          *string `json:"notes,omitempty"`
	IdempotencyKey *string `json:"-"`
}

func (r *BreakEndRequest) Validate() error {
	return validateMetadata(nil, r.Notes)
}

func validateMetadata(location, notes *string) error {
	var errs validator.ValidationErrors

	if location != nil && len(*location) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must not exceed 255 characters",
		})
	}
	if notes != nil && len(*notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type HistoryFilter struct {
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date in YYYY-MM-DD format",
		})
	}
	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		} else if end.Sub(start).Hours() > 24*92 {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "date range must not exceed 92 days",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BreakResponse struct {
	BreakType string  `json:"break_type"`
	StartTime string  `json:"start_time"`         // RFC3339
	EndTime   *string `json:"end_time,omitempty"` // nil while open
}

type DayResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	Date         string          `json:"date"`
	Status       string          `json:"status"`
	ClockInTime  *string         `json:"clock_in_time,omitempty"`
	ClockOutTime *string         `json:"clock_out_time,omitempty"`
	Breaks       []BreakResponse `json:"breaks"`
	TotalHours   float64         `json:"total_hours"`
	BreakHours   float64         `json:"break_hours"`
	NetHours     float64         `json:"net_hours"`
	Anomaly      bool            `json:"anomaly,omitempty"`
}

// TodayResponse reports the current day. HasRecord is false when the
// employee has not clocked in yet; that is a normal state, not an error.
type TodayResponse struct {
	Date      string       `json:"date"`
	Status    string       `json:"status"`
	HasRecord bool         `json:"has_record"`
	Day       *DayResponse `json:"day,omitempty"`
}

// HistoryEntry is one calendar date in a history range. Dates without an
// attendance record keep HasRecord false rather than carrying zero values.
type HistoryEntry struct {
	Date      string       `json:"date"`
	HasRecord bool         `json:"has_record"`
	Day       *DayResponse `json:"day,omitempty"`
}

type HistoryResponse struct {
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Entries   []HistoryEntry `json:"entries"`
}

type WeeklyDaySummary struct {
	Date         string   `json:"date"`
	HasRecord    bool     `json:"has_record"`
	ClockInTime  *string  `json:"clock_in_time,omitempty"`
	ClockOutTime *string  `json:"clock_out_time,omitempty"`
	TotalHours   *float64 `json:"total_hours,omitempty"`
}

type WeeklySummaryResponse struct {
	WeekStart string             `json:"week_start"`
	Days      []WeeklyDaySummary `json:"days"` // always 7, Monday first
}
