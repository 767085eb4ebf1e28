package staff

import "time"

// StaffMember is one person on the roster.
type StaffMember struct {
	ID         string
	Name       string
	Department string
	Position   string
	Email      *string
	Phone      *string
	// JoinedOn is the first day the member could attend. Nil means "always".
	JoinedOn  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
