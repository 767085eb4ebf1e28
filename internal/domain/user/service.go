package user

import "context"

type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error

	// EnsureAdmin creates the admin login when username is not taken yet.
	EnsureAdmin(ctx context.Context, username, password string) error
}
