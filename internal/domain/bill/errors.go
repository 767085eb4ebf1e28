package bill

import "errors"

var (
	ErrBillNotFound      = errors.New("bill not found")
	ErrBillAlreadySent   = errors.New("bill has already been sent")
	ErrDueBeforeBillDate = errors.New("due date must not be before bill date")
)
