package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/transferpro/transferpro_backend/internal/core/services"
	"github.com/transferpro/transferpro_backend/internal/handlers"
	"github.com/transferpro/transferpro_backend/internal/middleware"
	"github.com/transferpro/transferpro_backend/internal/notifier"
	"github.com/transferpro/transferpro_backend/internal/platform/config"
	"github.com/transferpro/transferpro_backend/internal/rateclient"
	"github.com/transferpro/transferpro_backend/internal/repositories/database/pgsql"
	"github.com/transferpro/transferpro_backend/internal/utils"
	"github.com/transferpro/transferpro_backend/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	portssvc "github.com/transferpro/transferpro_backend/internal/core/ports/services"
)

// @title TransferPro Backend API
// @version 1.0
// @description Back-office API for money transfers and withdrawals.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	var dispatcher portssvc.NotificationDispatcher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaDispatcher := notifier.NewKafkaDispatcher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer kafkaDispatcher.Close()
		dispatcher = kafkaDispatcher
		logger.Info("Kafka notification dispatcher enabled", slog.String("topic", cfg.KafkaTopic))
	} else {
		logger.Warn("No Kafka brokers configured, notifications stay in-app only.")
	}

	var liveRates portssvc.LiveRateProvider
	if cfg.RateAPIBaseURL != "" {
		liveRates = rateclient.New(cfg.RateAPIBaseURL, cfg.RateAPIKey, cfg.RateCacheTTL)
		logger.Info("Live rate provider enabled", slog.String("base_url", cfg.RateAPIBaseURL))
	} else {
		logger.Warn("No rate API configured, rate suggestions are disabled.")
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, dispatcher, liveRates)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations before the server
// starts serving traffic. It uses a temporary database/sql connection via
// the pgx stdlib driver so migrate can manage its own transaction state.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
