package user

type Permission string

const (
	// Attendance
	PermissionAttendanceView   Permission = "attendance.view"
	PermissionAttendanceRecord Permission = "attendance.record"
	PermissionAttendanceManage Permission = "attendance.manage"

	// Staff roster
	PermissionStaffView   Permission = "staff.view"
	PermissionStaffManage Permission = "staff.manage"

	// Calendar
	PermissionCalendarView   Permission = "calendar.view"
	PermissionCalendarManage Permission = "calendar.manage"

	// Clients and billing
	PermissionClientManage Permission = "client.manage"
	PermissionBillManage   Permission = "bill.manage"

	// Ledger
	PermissionLedgerManage Permission = "ledger.manage"

	// Reminders and notifications
	PermissionReminderManage Permission = "reminder.manage"

	// Reports
	PermissionReportsExport Permission = "reports.export"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionAttendanceView,
		PermissionAttendanceRecord,
		PermissionAttendanceManage,
		PermissionStaffView,
		PermissionStaffManage,
		PermissionCalendarView,
		PermissionCalendarManage,
		PermissionClientManage,
		PermissionBillManage,
		PermissionLedgerManage,
		PermissionReminderManage,
		PermissionReportsExport,
		PermissionUserManage,
	},
	RoleStaff: {
		PermissionAttendanceView,
		PermissionAttendanceRecord,
		PermissionStaffView,
		PermissionCalendarView,
		PermissionCalendarManage,
		PermissionReminderManage,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
