package user

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	u.ID = "user-" + u.Username
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	u := f.users[userID]
	u.PasswordHash = passwordHash
	f.users[userID] = u
	return nil
}

type fakeStaffRepo struct {
	staff.StaffRepository
}

func (fakeStaffRepo) GetByID(ctx context.Context, id string) (staff.StaffMember, error) {
	if id == "3f0c1c1e-8d7e-4a4c-9a4e-0d6a8f1b2c3d" {
		return staff.StaffMember{ID: id}, nil
	}
	return staff.StaffMember{}, staff.ErrStaffNotFound
}

func newTestService() (*UserServiceImpl, *fakeUserRepo) {
	repo := &fakeUserRepo{users: map[string]user.User{}}
	svc := NewUserService(repo, fakeStaffRepo{}).(*UserServiceImpl)
	svc.cost = bcrypt.MinCost
	return svc, repo
}

func TestCreateHashesPassword(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Create(context.Background(), user.CreateUserRequest{Username: " Front.Desk ", Password: "s3cretpass", Role: "staff"})
	require.NoError(t, err)
	assert.Equal(t, "front.desk", resp.Username)
	assert.Equal(t, "staff", resp.Role)

	stored := repo.users[resp.ID]
	assert.NotEqual(t, "s3cretpass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cretpass")))

	_, err = svc.Create(context.Background(), user.CreateUserRequest{Username: "front.desk", Password: "anotherpass", Role: "admin"})
	assert.ErrorIs(t, err, user.ErrUsernameExists)
}

func TestCreateChecksLinkedStaff(t *testing.T) {
	svc, _ := newTestService()
	missing := "9b2e8c44-1f3a-4d5b-8c6d-7e8f9a0b1c2d"
	linked := "3f0c1c1e-8d7e-4a4c-9a4e-0d6a8f1b2c3d"

	_, err := svc.Create(context.Background(), user.CreateUserRequest{Username: "asha", Password: "password1", Role: "staff", StaffID: &missing})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)

	resp, err := svc.Create(context.Background(), user.CreateUserRequest{Username: "asha", Password: "password1", Role: "staff", StaffID: &linked})
	require.NoError(t, err)
	assert.Equal(t, &linked, resp.StaffID)
}

func TestChangePassword(t *testing.T) {
	svc, repo := newTestService()
	resp, err := svc.Create(context.Background(), user.CreateUserRequest{Username: "owner", Password: "password1", Role: "admin"})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), resp.ID, user.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "password2"})
	assert.ErrorIs(t, err, user.ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(context.Background(), resp.ID, user.ChangePasswordRequest{CurrentPassword: "password1", NewPassword: "password2"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[resp.ID].PasswordHash), []byte("password2")))
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, repo := newTestService()

	require.NoError(t, svc.EnsureAdmin(context.Background(), "Admin", "bootstrap-pass"))
	require.NoError(t, svc.EnsureAdmin(context.Background(), "admin", "other-pass"))
	require.Len(t, repo.users, 1)

	u, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("bootstrap-pass")))

	require.NoError(t, svc.EnsureAdmin(context.Background(), "", ""))
	assert.Len(t, repo.users, 1)
}
