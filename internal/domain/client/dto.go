package client

import (
	"time"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
)

const nameRequired = "Client name is required."

type CreateClientRequest struct {
	Name        string `json:"name" validate:"max=255"`
	ClientName  string `json:"client_name" validate:"max=255"`
	CompanyName string `json:"company_name" validate:"max=255"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
	Location    string `json:"location" validate:"max=255"`
}

func (r *CreateClientRequest) Validate() error {
	errs := validator.StructErrors(r)
	if validator.IsEmpty(r.Name) {
		errs.Add("name", nameRequired)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateClientRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=255"`
	ClientName  *string `json:"client_name,omitempty" validate:"omitempty,max=255"`
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,max=255"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=30"`
	Location    *string `json:"location,omitempty" validate:"omitempty,max=255"`
}

func (r *UpdateClientRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", nameRequired)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClientResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ClientName  string `json:"client_name"`
	CompanyName string `json:"company_name"`
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
	CreatedAt   string `json:"created_at"`
}

func ToResponse(c Client) ClientResponse {
	return ClientResponse{
		ID:          c.ID,
		Name:        c.Name,
		ClientName:  c.ClientName,
		CompanyName: c.CompanyName,
		PhoneNumber: c.PhoneNumber,
		Location:    c.Location,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}
