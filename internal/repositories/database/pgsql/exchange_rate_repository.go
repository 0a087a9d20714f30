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

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, source_currency_id, target_currency_id, rate, date_effective, active, created_at, created_by, last_updated_at, last_updated_by`

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.SourceCurrencyID,
		&m.TargetCurrencyID,
		&m.Rate,
		&m.DateEffective,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExchangeRate inserts a rate record. Saving over an existing directed
// pair supersedes its rate in place; no history is kept.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)

	query := `
		INSERT INTO exchange_rates (exchange_rate_id, source_currency_id, target_currency_id, rate, date_effective, active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (source_currency_id, target_currency_id) DO UPDATE SET
			rate = EXCLUDED.rate,
			date_effective = EXCLUDED.date_effective,
			active = EXCLUDED.active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID,
		m.SourceCurrencyID,
		m.TargetCurrencyID,
		m.Rate,
		m.DateEffective,
		m.Active,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save exchange rate %s->%s: %w", m.SourceCurrencyID, m.TargetCurrencyID, err)
	}
	return nil
}

// UpdateExchangeRate updates an existing rate record's mutable fields, including Active.
func (r *PgxExchangeRateRepository) UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)

	query := `
		UPDATE exchange_rates
		SET rate = $2, date_effective = $3, active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE exchange_rate_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID,
		m.Rate,
		m.DateEffective,
		m.Active,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update exchange rate %s: %w", m.ExchangeRateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindExchangeRateByID retrieves a rate record by its ID.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1;`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate by id %s: %w", rateID, err)
	}

	d := mapping.ToDomainExchangeRate(m)
	return &d, nil
}

// FindExchangeRateByPair retrieves the record stored for the exact directed pair.
func (r *PgxExchangeRateRepository) FindExchangeRateByPair(ctx context.Context, sourceCurrencyID, targetCurrencyID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE source_currency_id = $1 AND target_currency_id = $2;`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, sourceCurrencyID, targetCurrencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s->%s: %w", sourceCurrencyID, targetCurrencyID, err)
	}

	d := mapping.ToDomainExchangeRate(m)
	return &d, nil
}

// ListExchangeRates retrieves rate records; onlyActive filters out deactivated ones.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, onlyActive bool) ([]domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates`
	if onlyActive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY date_effective DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	return mapping.ToDomainExchangeRateSlice(ms), nil
}
