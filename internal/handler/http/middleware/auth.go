package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/session"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired must run after jwtauth.Verifier. It rejects anything but a live access
// token and stores the caller's session in the request context.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			s, err := session.FromClaims(claims)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		}
		return http.HandlerFunc(hfn)
	}
}
