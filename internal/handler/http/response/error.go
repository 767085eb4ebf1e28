package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/bill"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/client"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/reminder"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
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
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrSessionMissing):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already registered")
	case errors.Is(err, user.ErrInvalidRole), errors.Is(err, user.ErrWrongPassword):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrAdminAccessRequired), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Staff and attendance
	case errors.Is(err, staff.ErrStaffNotFound), errors.Is(err, attendance.ErrUnknownStaff):
		NotFound(w, "Staff member not found")
	case errors.Is(err, staff.ErrStaffHasAttendance):
		Conflict(w, "Staff member still has attendance records")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidPeriod), errors.Is(err, attendance.ErrPeriodTooLong):
		ValidationError(w, map[string]string{"period": err.Error()})

	// Calendar, ledger, clients and bills
	case errors.Is(err, calendar.ErrEventNotFound):
		NotFound(w, "Event not found")
	case errors.Is(err, ledger.ErrTransactionNotFound):
		NotFound(w, "Transaction not found")
	case errors.Is(err, client.ErrClientNotFound):
		NotFound(w, "Client not found")
	case errors.Is(err, bill.ErrBillNotFound):
		NotFound(w, "Bill not found")
	case errors.Is(err, bill.ErrBillAlreadySent):
		Conflict(w, "Bill has already been sent")
	case errors.Is(err, bill.ErrDueBeforeBillDate):
		ValidationError(w, map[string]string{"due_date": err.Error()})

	// Reminders and notifications
	case errors.Is(err, reminder.ErrReminderNotFound):
		NotFound(w, "Reminder not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Reports
	case errors.Is(err, report.ErrUnsupportedFormat):
		ValidationError(w, map[string]string{"format": err.Error()})
	case errors.Is(err, report.ErrArchivedReportNotFound):
		NotFound(w, "Archived report not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
