package services

import (
	portsrepo "github.com/transferpro/transferpro_backend/internal/core/ports/repositories"
	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
	"github.com/transferpro/transferpro_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, dispatcher portssvc.NotificationDispatcher, liveRates portssvc.LiveRateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Notification service first: most other services publish through it.
	notificationService := NewNotificationService(repos.NotificationRepo, dispatcher)
	container.Notification = notificationService

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Country = NewCountryService(repos.CountryRepo, repos.CurrencyRepo)
	container.Client = NewClientService(repos.ClientRepo, repos.CountryRepo, notificationService)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo, liveRates)
	container.Fee = NewFeeService(repos.FeeRepo)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.ClientRepo,
		repos.CountryRepo,
		repos.ExchangeRateRepo,
		repos.FeeRepo,
		notificationService,
	)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	return container
}

// Compile-time checks that the implementations satisfy their facades.
var (
	_ portssvc.CurrencySvcFacade     = (*CurrencyService)(nil)
	_ portssvc.CountrySvcFacade      = (*CountryService)(nil)
	_ portssvc.ClientSvcFacade       = (*ClientService)(nil)
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ portssvc.FeeSvcFacade          = (*FeeService)(nil)
	_ portssvc.TransactionSvcFacade  = (*TransactionService)(nil)
	_ portssvc.UserSvcFacade         = (*UserService)(nil)
	_ portssvc.NotificationSvcFacade = (*NotificationService)(nil)
)
