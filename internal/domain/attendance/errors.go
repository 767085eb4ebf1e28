package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidPeriod      = errors.New("period end is before period start")
	ErrPeriodTooLong      = errors.New("period must not exceed 366 days")
	ErrUnknownStaff       = errors.New("staff member does not exist")
)
