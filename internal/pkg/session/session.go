// Package session carries the authenticated caller through a request context.
package session

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/user"
)

var ErrInvalidClaims = errors.New("token claims do not describe a session")

type Session struct {
	UserID   string
	Username string
	Role     user.Role
	StaffID  *string
}

// Can reports whether the session's role grants permission.
func (s Session) Can(permission user.Permission) bool {
	return user.HasPermission(s.Role, permission)
}

// FromClaims builds a session from access token claims.
func FromClaims(claims map[string]interface{}) (Session, error) {
	userID, _ := claims["user_id"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || !user.Role(role).IsValid() {
		return Session{}, ErrInvalidClaims
	}

	s := Session{UserID: userID, Username: username, Role: user.Role(role)}
	if staffID, ok := claims["staff_id"].(string); ok && staffID != "" {
		s.StaffID = &staffID
	}
	return s, nil
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
