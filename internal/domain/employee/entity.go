package employee

import (
	"time"
)

// Employee is the directory record attendance tracking resolves callers
// against. The directory itself (hiring, profiles, org structure) is owned
// elsewhere; this service only reads it.
type Employee struct {
	ID           string
	UserID       *string
	EmployeeCode string
	FullName     string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
