package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	"github.com/transferpro/transferpro_backend/internal/models"
	"github.com/transferpro/transferpro_backend/internal/utils/mapping"
)

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

const clientColumns = `client_id, name, surname, phone, email, address, id_type, id_number, country_id, active, created_at, created_by, last_updated_at, last_updated_by`

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.Surname,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.IDType,
		&m.IDNumber,
		&m.CountryID,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)

	query := `
		INSERT INTO clients (client_id, name, surname, phone, email, address, id_type, id_number, country_id, active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.Name,
		m.Surname,
		m.Phone,
		m.Email,
		m.Address,
		m.IDType,
		m.IDNumber,
		m.CountryID,
		m.Active,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save client %s: %w", m.ClientID, err)
	}
	return nil
}

// UpdateClient updates an existing client's mutable fields, including Active.
func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := mapping.ToModelClient(client)

	query := `
		UPDATE clients
		SET name = $2, surname = $3, phone = $4, email = $5, address = $6,
			id_type = $7, id_number = $8, country_id = $9, active = $10,
			last_updated_at = $11, last_updated_by = $12
		WHERE client_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ClientID,
		m.Name,
		m.Surname,
		m.Phone,
		m.Email,
		m.Address,
		m.IDType,
		m.IDNumber,
		m.CountryID,
		m.Active,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", m.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`

	m, err := scanClient(r.Pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client by id %s: %w", clientID, err)
	}

	d := mapping.ToDomainClient(m)
	return &d, nil
}

// ListClients retrieves a page of clients, optionally filtered by a
// case-insensitive search over name, surname and phone.
func (r *PgxClientRepository) ListClients(ctx context.Context, search string, limit, offset int) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients`
	args := []any{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR surname ILIKE $1 OR phone ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += fmt.Sprintf(` ORDER BY surname, name LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Client, error) {
		return scanClient(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan clients: %w", err)
	}

	return mapping.ToDomainClientSlice(ms), nil
}

// CountClientTransfers returns how many transfers a client has sent.
func (r *PgxClientRepository) CountClientTransfers(ctx context.Context, clientID string) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE sender_client_id = $1 AND kind = 'TRANSFER';`

	var count int64
	if err := r.Pool.QueryRow(ctx, query, clientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transfers for client %s: %w", clientID, err)
	}
	return count, nil
}
