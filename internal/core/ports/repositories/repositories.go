package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CurrencyRepo     CurrencyRepositoryFacade
	CountryRepo      CountryRepositoryFacade
	ClientRepo       ClientRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	FeeRepo          FeeRepositoryFacade
	TransactionRepo  TransactionRepositoryFacade
	UserRepo         UserRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
}
