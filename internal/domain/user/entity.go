package user

import "time"

type Role string

const (
	RoleAdmin Role = "admin" // Back-office owner - full access
	RoleStaff Role = "staff" // Front desk / team member
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	StaffID      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
