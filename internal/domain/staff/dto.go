package staff

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
)

type StaffFilter struct {
	Search     string
	Department string
}

type CreateStaffRequest struct {
	Name       string  `json:"name" validate:"required,max=255"`
	Department string  `json:"department" validate:"max=100"`
	Position   string  `json:"position" validate:"max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	JoinedOn   *string `json:"joined_on,omitempty"`
}

func (r *CreateStaffRequest) Validate() error {
	trimOptional(&r.Email, &r.Phone, &r.JoinedOn)

	errs := validator.StructErrors(r)
	if validator.IsEmpty(r.Name) && !errs.Has("name") {
		errs.Add("name", "name is required")
	}
	if r.JoinedOn != nil && *r.JoinedOn != "" {
		if _, ok := validator.IsValidDate(*r.JoinedOn); !ok {
			errs.Add("joined_on", "joined_on must be in YYYY-MM-DD format")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStaffRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Position   *string `json:"position,omitempty" validate:"omitempty,max=100"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	JoinedOn   *string `json:"joined_on,omitempty"`
}

func (r *UpdateStaffRequest) Validate() error {
	trimOptional(&r.Email, &r.Phone, &r.JoinedOn)

	errs := validator.StructErrors(r)
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name cannot be empty")
	}
	if r.JoinedOn != nil && *r.JoinedOn != "" {
		if _, ok := validator.IsValidDate(*r.JoinedOn); !ok {
			errs.Add("joined_on", "joined_on must be in YYYY-MM-DD format")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// trimOptional trims optional fields in place so a blank value validates as empty.
func trimOptional(fields ...**string) {
	for _, f := range fields {
		if *f == nil {
			continue
		}
		v := strings.TrimSpace(**f)
		*f = &v
	}
}

type StaffResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	JoinedOn   *string `json:"joined_on,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func ToResponse(m StaffMember) StaffResponse {
	resp := StaffResponse{
		ID:         m.ID,
		Name:       m.Name,
		Department: m.Department,
		Position:   m.Position,
		Email:      m.Email,
		Phone:      m.Phone,
		CreatedAt:  m.CreatedAt.Format(time.RFC3339),
	}
	if m.JoinedOn != nil {
		joined := m.JoinedOn.Format("2006-01-02")
		resp.JoinedOn = &joined
	}
	return resp
}
