package user

type Permission string

const (
	// Attendance tracking
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceTrack   Permission = "attendance.track"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceTrack,
		PermissionAttendanceViewAll,
	},
	RoleManager: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceTrack,
		PermissionAttendanceViewAll,
	},
	RoleEmployee: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceTrack,
	},
	RolePending: {
		// Pending role has no permissions
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
