package client

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/client"
)

type ClientServiceImpl struct {
	client.ClientRepository
}

func NewClientService(repo client.ClientRepository) client.ClientService {
	return &ClientServiceImpl{ClientRepository: repo}
}

// Create implements client.ClientService.
func (s *ClientServiceImpl) Create(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	created, err := s.ClientRepository.Create(ctx, client.Client{
		Name:        strings.TrimSpace(req.Name),
		ClientName:  strings.TrimSpace(req.ClientName),
		CompanyName: strings.TrimSpace(req.CompanyName),
		PhoneNumber: strings.TrimSpace(req.PhoneNumber),
		Location:    strings.TrimSpace(req.Location),
	})
	if err != nil {
		slog.Error("Failed to create client", "error", err)
		return client.ClientResponse{}, fmt.Errorf("failed to create client: %w", err)
	}
	return client.ToResponse(created), nil
}

// GetByID implements client.ClientService.
func (s *ClientServiceImpl) GetByID(ctx context.Context, id string) (client.ClientResponse, error) {
	c, err := s.ClientRepository.GetByID(ctx, id)
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.ToResponse(c), nil
}

// List implements client.ClientService.
func (s *ClientServiceImpl) List(ctx context.Context, search string) ([]client.ClientResponse, error) {
	clients, err := s.ClientRepository.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	resp := make([]client.ClientResponse, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, client.ToResponse(c))
	}
	return resp, nil
}

// Update implements client.ClientService.
func (s *ClientServiceImpl) Update(ctx context.Context, id string, req client.UpdateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	c, err := s.ClientRepository.GetByID(ctx, id)
	if err != nil {
		return client.ClientResponse{}, err
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.ClientName != nil {
		c.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.CompanyName != nil {
		c.CompanyName = strings.TrimSpace(*req.CompanyName)
	}
	if req.PhoneNumber != nil {
		c.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Location != nil {
		c.Location = strings.TrimSpace(*req.Location)
	}

	updated, err := s.ClientRepository.Update(ctx, c)
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.ToResponse(updated), nil
}

// Delete implements client.ClientService.
func (s *ClientServiceImpl) Delete(ctx context.Context, id string) error {
	return s.ClientRepository.Delete(ctx, id)
}
