package response

import (
	"errors"
	"net/http"

	"github.com/clockwork-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwork-hr/timeclock-backend-go/internal/domain/timeclock"
	"github.com/clockwork-hr/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee directory errors. Both are expected states for some user
	// classes and need messages specific enough to act on.
	case errors.Is(err, employee.ErrEmployeeRecordMissing):
		Forbidden(w, "No employee record is linked to your account. Please contact HR.")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, timeclock.ErrRoleNotPermitted):
		Forbidden(w, "Your role does not support attendance tracking")

	// Timeclock domain errors. Every transition precondition failure
	// wraps ErrInvalidTransition and carries its own message.
	case errors.Is(err, timeclock.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, timeclock.ErrVersionConflict):
		Conflict(w, "Attendance record was modified concurrently, please retry")
	case errors.Is(err, timeclock.ErrDayNotFound):
		NotFound(w, "Attendance day not found")
	case errors.Is(err, timeclock.ErrStoreUnavailable):
		ServiceUnavailable(w, "Attendance store is temporarily unavailable, please retry")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
