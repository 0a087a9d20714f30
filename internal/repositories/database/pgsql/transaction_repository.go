package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/transferpro/transferpro_backend/internal/apperrors"
	"github.com/transferpro/transferpro_backend/internal/core/domain"
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	"github.com/transferpro/transferpro_backend/internal/models"
	"github.com/transferpro/transferpro_backend/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the transaction ledger.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, numero, kind, status,
	sender_client_id, beneficiary_client_id, send_country_id, receive_country_id, send_currency_id, receive_currency_id,
	amount_sent, exchange_rate_applied, amount_received, fee,
	validated_at, withdrawn_at, withdrawal_code, source_transfer_numero,
	agent_id, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Numero,
		&m.Kind,
		&m.Status,
		&m.SenderClientID,
		&m.BeneficiaryClientID,
		&m.SendCountryID,
		&m.ReceiveCountryID,
		&m.SendCurrencyID,
		&m.ReceiveCurrencyID,
		&m.AmountSent,
		&m.ExchangeRateApplied,
		&m.AmountReceived,
		&m.Fee,
		&m.ValidatedAt,
		&m.WithdrawnAt,
		&m.WithdrawalCode,
		&m.SourceTransferNumero,
		&m.AgentID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// numeroPrefix returns the reference prefix for a transaction kind.
func numeroPrefix(kind domain.TransactionKind) string {
	if kind == domain.Withdrawal {
		return "WDR"
	}
	return "TRF"
}

// SaveTransaction persists a freshly priced transaction and assigns its
// numero from a per-kind, per-year counter. The counter bump and the insert
// share one DB transaction so no reference is ever skipped or duplicated.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	prefix := numeroPrefix(txn.Kind)
	year := time.Now().UTC().Year()

	seqQuery := `
		INSERT INTO transaction_sequences (prefix, year, counter)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, year) DO UPDATE SET counter = transaction_sequences.counter + 1
		RETURNING counter;
	`
	var counter int64
	if err := tx.QueryRow(ctx, seqQuery, prefix, year).Scan(&counter); err != nil {
		return nil, fmt.Errorf("failed to allocate numero for %s: %w", prefix, err)
	}

	txn.Numero = fmt.Sprintf("%s-%d-%04d", prefix, year, counter)
	m := mapping.ToModelTransaction(txn)

	insertQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.TransactionID,
		m.Numero,
		m.Kind,
		m.Status,
		m.SenderClientID,
		m.BeneficiaryClientID,
		m.SendCountryID,
		m.ReceiveCountryID,
		m.SendCurrencyID,
		m.ReceiveCurrencyID,
		m.AmountSent,
		m.ExchangeRateApplied,
		m.AmountReceived,
		m.Fee,
		m.ValidatedAt,
		m.WithdrawnAt,
		m.WithdrawalCode,
		m.SourceTransferNumero,
		m.AgentID,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction %s: %w", txn.Numero, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	stored := mapping.ToDomainTransaction(m)
	return &stored, nil
}

// UpdateTransactionStatus applies a lifecycle transition atomically: the row
// is updated only while its current status still equals expected. A guarded
// update that matches no row surfaces as ErrNotFound.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, txn domain.Transaction, expected domain.TransactionStatus) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET status = $2, validated_at = $3, withdrawn_at = $4, withdrawal_code = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1 AND status = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.Status,
		m.ValidatedAt,
		m.WithdrawnAt,
		m.WithdrawalCode,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(expected),
	)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by id %s: %w", transactionID, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindTransactionByNumero retrieves a transaction by its human-readable reference.
func (r *PgxTransactionRepository) FindTransactionByNumero(ctx context.Context, numero string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE numero = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, numero))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by numero %s: %w", numero, err)
	}

	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListTransactions retrieves transactions matching the filter, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := []any{}

	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		query += fmt.Sprintf(` AND kind = $%d`, len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(` AND numero ILIKE $%d`, len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(` OFFSET $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	return mapping.ToDomainTransactionSlice(ms), nil
}

// GetStatistics computes the dashboard rollup in a single pass over the ledger.
// Cancelled transactions count towards totals but not towards amounts.
func (r *PgxTransactionRepository) GetStatistics(ctx context.Context) (*domain.TransactionStatistics, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE kind = 'TRANSFER'),
			COUNT(*) FILTER (WHERE kind = 'WITHDRAWAL'),
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE created_at >= date_trunc('day', now())),
			COALESCE(SUM(amount_sent) FILTER (WHERE status <> 'CANCELLED'), 0),
			COALESCE(SUM(amount_received) FILTER (WHERE status <> 'CANCELLED'), 0),
			COALESCE(SUM(fee) FILTER (WHERE status <> 'CANCELLED'), 0)
		FROM transactions;
	`
	var stats domain.TransactionStatistics
	err := r.Pool.QueryRow(ctx, query).Scan(
		&stats.TotalTransactions,
		&stats.TotalTransfers,
		&stats.TotalWithdrawals,
		&stats.PendingCount,
		&stats.TodayCount,
		&stats.TotalAmountSent,
		&stats.TotalAmountNet,
		&stats.TotalFees,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute transaction statistics: %w", err)
	}
	return &stats, nil
}
