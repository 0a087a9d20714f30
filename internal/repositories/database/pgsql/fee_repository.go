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

type PgxFeeRepository struct {
	BaseRepository
}

// newPgxFeeRepository creates a new repository for fee rules, tiers and settings.
func newPgxFeeRepository(pool *pgxpool.Pool) portsrepo.FeeRepositoryFacade {
	return &PgxFeeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.FeeRepositoryFacade = (*PgxFeeRepository)(nil)

const feeRuleColumns = `fee_rule_id, name, kind, value, active, created_at, created_by, last_updated_at, last_updated_by`

func scanFeeRule(row pgx.Row) (models.FeeRule, error) {
	var m models.FeeRule
	err := row.Scan(
		&m.FeeRuleID,
		&m.Name,
		&m.Kind,
		&m.Value,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveFeeRule persists a new rule together with its tiers in one DB transaction.
func (r *PgxFeeRepository) SaveFeeRule(ctx context.Context, rule domain.FeeRule) error {
	m := mapping.ToModelFeeRule(rule)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	ruleQuery := `
		INSERT INTO fee_rules (fee_rule_id, name, kind, value, active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, ruleQuery,
		m.FeeRuleID,
		m.Name,
		m.Kind,
		m.Value,
		m.Active,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save fee rule %s: %w", m.FeeRuleID, err)
	}

	if err := r.insertTiers(ctx, tx, rule); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateFeeRule updates a rule and replaces its tier set atomically.
func (r *PgxFeeRepository) UpdateFeeRule(ctx context.Context, rule domain.FeeRule) error {
	m := mapping.ToModelFeeRule(rule)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	ruleQuery := `
		UPDATE fee_rules
		SET name = $2, kind = $3, value = $4, active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE fee_rule_id = $1;
	`
	tag, err := tx.Exec(ctx, ruleQuery,
		m.FeeRuleID,
		m.Name,
		m.Kind,
		m.Value,
		m.Active,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update fee rule %s: %w", m.FeeRuleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM fee_tiers WHERE fee_rule_id = $1;`, m.FeeRuleID); err != nil {
		return fmt.Errorf("failed to clear tiers for fee rule %s: %w", m.FeeRuleID, err)
	}
	if err := r.insertTiers(ctx, tx, rule); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxFeeRepository) insertTiers(ctx context.Context, tx pgx.Tx, rule domain.FeeRule) error {
	tierQuery := `
		INSERT INTO fee_tiers (fee_tier_id, fee_rule_id, amount_min, amount_max, no_max, fee, kind)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, tier := range rule.Tiers {
		mt := mapping.ToModelFeeTier(tier, rule.FeeRuleID)
		_, err := tx.Exec(ctx, tierQuery,
			mt.FeeTierID,
			mt.FeeRuleID,
			mt.AmountMin,
			mt.AmountMax,
			mt.NoMax,
			mt.Fee,
			mt.Kind,
		)
		if err != nil {
			return fmt.Errorf("failed to save tier %s of fee rule %s: %w", mt.FeeTierID, rule.FeeRuleID, err)
		}
	}
	return nil
}

// DeleteFeeRule removes a rule and its tiers.
func (r *PgxFeeRepository) DeleteFeeRule(ctx context.Context, ruleID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM fee_tiers WHERE fee_rule_id = $1;`, ruleID); err != nil {
		return fmt.Errorf("failed to delete tiers of fee rule %s: %w", ruleID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM fee_rules WHERE fee_rule_id = $1;`, ruleID)
	if err != nil {
		return fmt.Errorf("failed to delete fee rule %s: %w", ruleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// FindFeeRuleByID retrieves a rule with its tiers loaded.
func (r *PgxFeeRepository) FindFeeRuleByID(ctx context.Context, ruleID string) (*domain.FeeRule, error) {
	query := `SELECT ` + feeRuleColumns + ` FROM fee_rules WHERE fee_rule_id = $1;`

	m, err := scanFeeRule(r.Pool.QueryRow(ctx, query, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee rule by id %s: %w", ruleID, err)
	}

	tiers, err := r.loadTiers(ctx, []string{ruleID})
	if err != nil {
		return nil, err
	}

	d := mapping.ToDomainFeeRule(m, tiers[ruleID])
	return &d, nil
}

// ListFeeRules retrieves rules with tiers; onlyActive filters out deactivated ones.
func (r *PgxFeeRepository) ListFeeRules(ctx context.Context, onlyActive bool) ([]domain.FeeRule, error) {
	query := `SELECT ` + feeRuleColumns + ` FROM fee_rules`
	if onlyActive {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee rules: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FeeRule, error) {
		return scanFeeRule(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan fee rules: %w", err)
	}

	ruleIDs := make([]string, len(ms))
	for i, m := range ms {
		ruleIDs[i] = m.FeeRuleID
	}
	tiers, err := r.loadTiers(ctx, ruleIDs)
	if err != nil {
		return nil, err
	}

	ds := make([]domain.FeeRule, len(ms))
	for i, m := range ms {
		ds[i] = mapping.ToDomainFeeRule(m, tiers[m.FeeRuleID])
	}
	return ds, nil
}

// loadTiers fetches the tier rows of the given rules, keyed by rule ID and
// ordered by amount_min within each rule.
func (r *PgxFeeRepository) loadTiers(ctx context.Context, ruleIDs []string) (map[string][]models.FeeTier, error) {
	if len(ruleIDs) == 0 {
		return map[string][]models.FeeTier{}, nil
	}

	query := `
		SELECT fee_tier_id, fee_rule_id, amount_min, amount_max, no_max, fee, kind
		FROM fee_tiers
		WHERE fee_rule_id = ANY($1)
		ORDER BY fee_rule_id, amount_min;
	`
	rows, err := r.Pool.Query(ctx, query, ruleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee tiers: %w", err)
	}
	defer rows.Close()

	byRule := make(map[string][]models.FeeTier)
	for rows.Next() {
		var m models.FeeTier
		err := rows.Scan(
			&m.FeeTierID,
			&m.FeeRuleID,
			&m.AmountMin,
			&m.AmountMax,
			&m.NoMax,
			&m.Fee,
			&m.Kind,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee tier: %w", err)
		}
		byRule[m.FeeRuleID] = append(byRule[m.FeeRuleID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read fee tiers: %w", err)
	}
	return byRule, nil
}

// GetFeeSettings returns the singleton settings row.
func (r *PgxFeeRepository) GetFeeSettings(ctx context.Context) (*domain.FeeSettings, error) {
	query := `
		SELECT fees_enabled, fee_minimum, fee_maximum, exempt_first_transfer, active_rule_id, default_fee_percent,
			created_at, created_by, last_updated_at, last_updated_by
		FROM fee_settings
		WHERE id = 1;
	`
	var m models.FeeSettings
	err := r.Pool.QueryRow(ctx, query).Scan(
		&m.FeesEnabled,
		&m.FeeMinimum,
		&m.FeeMaximum,
		&m.ExemptFirstTransfer,
		&m.ActiveRuleID,
		&m.DefaultFeePercent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load fee settings: %w", err)
	}

	d := mapping.ToDomainFeeSettings(m)
	return &d, nil
}

// UpdateFeeSettings overwrites the singleton settings row.
func (r *PgxFeeRepository) UpdateFeeSettings(ctx context.Context, settings domain.FeeSettings) error {
	m := mapping.ToModelFeeSettings(settings)

	query := `
		UPDATE fee_settings
		SET fees_enabled = $1, fee_minimum = $2, fee_maximum = $3, exempt_first_transfer = $4,
			active_rule_id = $5, default_fee_percent = $6, last_updated_at = $7, last_updated_by = $8
		WHERE id = 1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.FeesEnabled,
		m.FeeMinimum,
		m.FeeMaximum,
		m.ExemptFirstTransfer,
		m.ActiveRuleID,
		m.DefaultFeePercent,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update fee settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
