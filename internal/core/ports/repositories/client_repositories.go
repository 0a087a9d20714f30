package repositories

import (
	"context"

	"github.com/transferpro/transferpro_backend/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by its ID.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves a page of clients, optionally filtered by a
	// case-insensitive search over name, surname and phone.
	ListClients(ctx context.Context, search string, limit, offset int) ([]domain.Client, error)

	// CountClientTransfers returns how many transfers a client has sent.
	// Used to decide the first-transfer fee exemption.
	CountClientTransfers(ctx context.Context, clientID string) (int64, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's mutable fields, including Active.
	UpdateClient(ctx context.Context, client domain.Client) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
