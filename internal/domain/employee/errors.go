package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrEmployeeRecordMissing means the authenticated user has no employee
	// record at all. Expected for some user classes; callers should render
	// an actionable "contact HR" message, not a generic failure.
	ErrEmployeeRecordMissing = errors.New("no employee record associated with this user")
)
