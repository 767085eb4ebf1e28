package auth

import "github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	}
	if r.Password == "" {
		errs.Add("password", "password is required")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SessionResponse is the explicit session object handed to clients after login.
type SessionResponse struct {
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	Role     string  `json:"role"`
	StaffID  *string `json:"staff_id,omitempty"`
}

type TokenResponse struct {
	AccessToken          string          `json:"access_token"`
	AccessTokenExpiresIn int64           `json:"access_token_expires_in"`
	Session              SessionResponse `json:"session"`
}
