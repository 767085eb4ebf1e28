package staff

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/staff"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	members    map[string]staff.StaffMember
	attendance map[string]bool
	deleted    []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{members: map[string]staff.StaffMember{}, attendance: map[string]bool{}}
}

func (f *fakeRepo) Create(ctx context.Context, m staff.StaffMember) (staff.StaffMember, error) {
	m.ID = "staff-1"
	f.members[m.ID] = m
	return m, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (staff.StaffMember, error) {
	m, ok := f.members[id]
	if !ok {
		return staff.StaffMember{}, staff.ErrStaffNotFound
	}
	return m, nil
}

func (f *fakeRepo) List(ctx context.Context, filter staff.StaffFilter) ([]staff.StaffMember, error) {
	var out []staff.StaffMember
	for _, m := range f.members {
		if filter.Department == "" || m.Department == filter.Department {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, m staff.StaffMember) (staff.StaffMember, error) {
	f.members[m.ID] = m
	return m, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.members, id)
	return nil
}

func (f *fakeRepo) HasAttendance(ctx context.Context, id string) (bool, error) {
	return f.attendance[id], nil
}

func strp(s string) *string { return &s }

func TestCreateTrimsAndParsesJoinDate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewStaffService(repo)

	resp, err := svc.Create(context.Background(), staff.CreateStaffRequest{
		Name:       "  Asha Rao ",
		Department: "Studio",
		Email:      strp(" "),
		JoinedOn:   strp("2024-03-04"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", resp.Name)
	assert.Nil(t, resp.Email)
	require.NotNil(t, resp.JoinedOn)
	assert.Equal(t, "2024-03-04", *resp.JoinedOn)
}

func TestUpdateBlankEmailClearsIt(t *testing.T) {
	repo := newFakeRepo()
	svc := NewStaffService(repo)
	created, err := svc.Create(context.Background(), staff.CreateStaffRequest{Name: "Ravi", Email: strp("ravi@example.com"), JoinedOn: strp("")})
	require.NoError(t, err)
	require.NotNil(t, created.Email)
	assert.Nil(t, created.JoinedOn)

	resp, err := svc.Update(context.Background(), created.ID, staff.UpdateStaffRequest{Email: strp(" ")})
	require.NoError(t, err)
	assert.Nil(t, resp.Email)
}

func TestCreateRequiresName(t *testing.T) {
	svc := NewStaffService(newFakeRepo())

	_, err := svc.Create(context.Background(), staff.CreateStaffRequest{Name: "   "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("name"))
}

func TestUpdateClearsJoinDate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewStaffService(repo)
	created, err := svc.Create(context.Background(), staff.CreateStaffRequest{Name: "Ravi", JoinedOn: strp("2024-01-01")})
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), created.ID, staff.UpdateStaffRequest{Position: strp("Editor"), JoinedOn: strp("")})
	require.NoError(t, err)
	assert.Equal(t, "Editor", resp.Position)
	assert.Nil(t, resp.JoinedOn)

	_, err = svc.Update(context.Background(), "missing", staff.UpdateStaffRequest{})
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
}

func TestDeleteRefusedWhileReferenced(t *testing.T) {
	repo := newFakeRepo()
	repo.members["a"] = staff.StaffMember{ID: "a", Name: "Asha"}
	repo.members["b"] = staff.StaffMember{ID: "b", Name: "Ravi"}
	repo.attendance["a"] = true
	svc := NewStaffService(repo)

	assert.ErrorIs(t, svc.Delete(context.Background(), "a"), staff.ErrStaffHasAttendance)
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.Delete(context.Background(), "b"))
	assert.Equal(t, []string{"b"}, repo.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), "zzz"), staff.ErrStaffNotFound)
}
