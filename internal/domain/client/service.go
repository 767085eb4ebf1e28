package client

import "context"

type ClientService interface {
	Create(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	GetByID(ctx context.Context, id string) (ClientResponse, error)
	List(ctx context.Context, search string) ([]ClientResponse, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error)
	Delete(ctx context.Context, id string) error
}
