package user

import (
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	StaffID   *string `json:"staff_id,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// CreateUserRequest represents request to create a new login
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Password string  `json:"password" validate:"required"`
	Role     string  `json:"role" validate:"required,oneof=admin staff"`
	StaffID  *string `json:"staff_id,omitempty" validate:"omitempty,uuid"`
}

func (r *CreateUserRequest) Validate() error {
	errs := validator.StructErrors(r)

	if r.Password != "" && len(r.Password) < 8 {
		errs.Add("password", ErrInvalidPasswordLength.Error())
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      string(u.Role),
		StaffID:   u.StaffID,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

func (r *ChangePasswordRequest) Validate() error {
	errs := validator.StructErrors(r)

	if r.NewPassword != "" && len(r.NewPassword) < 8 {
		errs.Add("new_password", ErrInvalidPasswordLength.Error())
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
