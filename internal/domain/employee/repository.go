package employee

import "context"

// EmployeeRepository is the read-only view of the employee directory.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByUserID resolves a user to their employee record; returns
	// ErrEmployeeRecordMissing when the user has none.
	GetByUserID(ctx context.Context, userID string) (Employee, error)
}
