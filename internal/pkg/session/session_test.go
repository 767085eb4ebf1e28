package session

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromClaims(t *testing.T) {
	s, err := FromClaims(map[string]interface{}{
		"user_id":  "u1",
		"username": "asha",
		"role":     "admin",
		"staff_id": "s1",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, user.RoleAdmin, s.Role)
	require.NotNil(t, s.StaffID)
	assert.Equal(t, "s1", *s.StaffID)
	assert.True(t, s.Can(user.PermissionLedgerManage))

	s, err = FromClaims(map[string]interface{}{"user_id": "u2", "role": "staff", "staff_id": nil})
	require.NoError(t, err)
	assert.Nil(t, s.StaffID)
	assert.False(t, s.Can(user.PermissionLedgerManage))

	_, err = FromClaims(map[string]interface{}{"user_id": "u3", "role": "owner"})
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), Session{UserID: "u1", Role: user.RoleStaff})
	s, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", s.UserID)
}
