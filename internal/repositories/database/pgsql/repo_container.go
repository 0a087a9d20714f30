package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full set of pgx-backed repositories over
// one shared connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		CountryRepo:      newPgxCountryRepository(dbPool),
		ClientRepo:       newPgxClientRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		FeeRepo:          newPgxFeeRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
