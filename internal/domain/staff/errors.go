package staff

import "errors"

var (
	ErrStaffNotFound      = errors.New("staff member not found")
	ErrStaffHasAttendance = errors.New("staff member still has attendance records")
)
