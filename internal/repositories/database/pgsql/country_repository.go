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

type PgxCountryRepository struct {
	BaseRepository
}

// newPgxCountryRepository creates a new repository for country data.
func newPgxCountryRepository(pool *pgxpool.Pool) portsrepo.CountryRepositoryFacade {
	return &PgxCountryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CountryRepositoryFacade = (*PgxCountryRepository)(nil)

const countryColumns = `country_id, name, iso_code, currency_id, active, created_at, created_by, last_updated_at, last_updated_by`

func scanCountry(row pgx.Row) (models.Country, error) {
	var m models.Country
	err := row.Scan(
		&m.CountryID,
		&m.Name,
		&m.ISOCode,
		&m.CurrencyID,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCountry inserts a new country.
func (r *PgxCountryRepository) SaveCountry(ctx context.Context, country domain.Country) error {
	m := mapping.ToModelCountry(country)

	query := `
		INSERT INTO countries (country_id, name, iso_code, currency_id, active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CountryID,
		m.Name,
		m.ISOCode,
		m.CurrencyID,
		m.Active,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save country %s: %w", m.Name, err)
	}
	return nil
}

// UpdateCountry updates an existing country's mutable fields, including Active.
func (r *PgxCountryRepository) UpdateCountry(ctx context.Context, country domain.Country) error {
	m := mapping.ToModelCountry(country)

	query := `
		UPDATE countries
		SET name = $2, iso_code = $3, currency_id = $4, active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE country_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CountryID,
		m.Name,
		m.ISOCode,
		m.CurrencyID,
		m.Active,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update country %s: %w", m.CountryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCountryByID retrieves a country by its ID.
func (r *PgxCountryRepository) FindCountryByID(ctx context.Context, countryID string) (*domain.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE country_id = $1;`

	m, err := scanCountry(r.Pool.QueryRow(ctx, query, countryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find country by id %s: %w", countryID, err)
	}

	d := mapping.ToDomainCountry(m)
	return &d, nil
}

// ListCountries retrieves countries; onlyActive filters out deactivated ones.
func (r *PgxCountryRepository) ListCountries(ctx context.Context, onlyActive bool) ([]domain.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries`
	if onlyActive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Country, error) {
		return scanCountry(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan countries: %w", err)
	}

	return mapping.ToDomainCountrySlice(ms), nil
}
