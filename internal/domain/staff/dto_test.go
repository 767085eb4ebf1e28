package staff

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStaffRequestValidate(t *testing.T) {
	bad := "2024-02-30"
	req := CreateStaffRequest{Name: "   ", JoinedOn: &bad}
	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	fields := errs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "joined_on")

	good := "2024-02-29"
	req = CreateStaffRequest{Name: "Asha", Department: "Studio", JoinedOn: &good}
	assert.NoError(t, req.Validate())
}

func TestStaffRequestsTreatBlankOptionalFieldsAsEmpty(t *testing.T) {
	blank, empty := " ", ""
	create := CreateStaffRequest{Name: "Asha", Email: &blank, Phone: &blank, JoinedOn: &empty}
	require.NoError(t, create.Validate())
	assert.Equal(t, "", *create.Email)

	update := UpdateStaffRequest{Email: &blank, JoinedOn: &blank}
	require.NoError(t, update.Validate())

	wrong := "not-an-email"
	create = CreateStaffRequest{Name: "Asha", Email: &wrong}
	var errs validator.ValidationErrors
	require.ErrorAs(t, create.Validate(), &errs)
	assert.Equal(t, "email must be a valid email address", errs.ToMap()["email"])
}

func TestUpdateStaffRequestRejectsBlankName(t *testing.T) {
	blank := ""
	req := UpdateStaffRequest{Name: &blank}
	assert.Error(t, req.Validate())
}

func TestToResponse(t *testing.T) {
	joined := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	resp := ToResponse(StaffMember{ID: "s1", Name: "Asha", JoinedOn: &joined})
	require.NotNil(t, resp.JoinedOn)
	assert.Equal(t, "2024-03-04", *resp.JoinedOn)
}
