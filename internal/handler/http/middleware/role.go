package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/session"
)

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrSessionMissing)
			return
		}

		if s.Role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := session.FromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrSessionMissing)
				return
			}

			if !s.Can(permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, s.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
