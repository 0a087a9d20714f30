package services

import (
	"context"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
	"github.com/transferpro/transferpro_backend/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClientByID retrieves a specific client by its ID.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves a paginated list of clients, optionally filtered
	// by a free-text search over name, surname and phone.
	ListClients(ctx context.Context, search string, limit, offset int) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient registers a new client.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)

	// UpdateClient updates the mutable fields of a client.
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, updaterUserID string) (*domain.Client, error)
}

// ClientLifecycleSvc defines operations for managing client lifecycle
type ClientLifecycleSvc interface {
	// DeactivateClient marks a client inactive. Inactive clients cannot
	// appear on new transactions.
	DeactivateClient(ctx context.Context, clientID string, requestingUserID string) error
}

// ClientSvcFacade combines all client-related service interfaces
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
	ClientLifecycleSvc
}
