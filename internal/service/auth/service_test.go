package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	user.UserRepository
	users []user.User
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func newTestService(t *testing.T) (auth.AuthService, jwt.Service) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	staffID := "staff-7"
	repo := &fakeUserRepo{users: []user.User{
		{ID: "u-1", Username: "owner", PasswordHash: string(hash), Role: user.RoleAdmin},
		{ID: "u-2", Username: "desk", PasswordHash: string(hash), Role: user.RoleStaff, StaffID: &staffID},
	}}
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h")
	return NewAuthService(repo, jwtService), jwtService
}

func TestLogin(t *testing.T) {
	svc, jwtService := newTestService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Username: " Desk ", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "u-2", resp.Session.UserID)
	assert.Equal(t, "staff", resp.Session.Role)
	require.NotNil(t, resp.Session.StaffID)
	assert.Equal(t, "staff-7", *resp.Session.StaffID)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	s, err := session.FromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, user.RoleStaff, s.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Username: "owner", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Username: "nobody", Password: "correct horse"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), auth.LoginRequest{Username: "", Password: ""})
	assert.Error(t, err)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, jwtService := newTestService(t)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Username: "owner", Password: "correct horse"})
	require.NoError(t, err)
	assert.False(t, jwtService.IsTokenRevoked(resp.AccessToken))

	require.NoError(t, svc.Logout(context.Background(), resp.AccessToken))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))

	assert.ErrorIs(t, svc.Logout(context.Background(), "not-a-token"), auth.ErrInvalidToken)
}

func TestSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Session(context.Background())
	assert.ErrorIs(t, err, auth.ErrSessionMissing)

	ctx := session.WithSession(context.Background(), session.Session{UserID: "u-1", Username: "owner", Role: user.RoleAdmin})
	resp, err := svc.Session(ctx)
	require.NoError(t, err)
	assert.Equal(t, "owner", resp.Username)
	assert.Equal(t, "admin", resp.Role)
}
