package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/Yoast/visitor_currency_app/internal/handlers"
	"github.com/Yoast/visitor_currency_app/internal/middleware"
	"github.com/Yoast/visitor_currency_app/internal/models"
	"github.com/Yoast/visitor_currency_app/internal/repositories/database/pgsql"
	"github.com/Yoast/visitor_currency_app/internal/repositories/webapi"
	"github.com/Yoast/visitor_currency_app/pkg/config"
	"github.com/Yoast/visitor_currency_app/pkg/database"

	"github.com/Yoast/visitor_currency_app/internal/core/services"
	portssvc "github.com/Yoast/visitor_currency_app/internal/core/ports/services"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Visitor Currency API
// @version 1.0
// @description Resolves the display currency for anonymous web visitors.

// @host localhost:8080
// @BasePath /api/v1
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
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories, external clients and services.
	repos := pgsql.NewRepositoryProvider(dbPool)
	geoClient := webapi.NewGeolocationClient(cfg.GeoProviderBaseURL, cfg.HTTPClientTimeout)
	vatClient := webapi.NewVATRateClient(cfg.VATProviderURL, cfg.HTTPClientTimeout)

	vatService := services.NewVATService(repos.VATRuleRepo, vatClient)

	ipToCountry, err := services.NewIPToCountryLookup(repos.IPCountryCacheRepo, geoClient, cfg.GeoCacheTTL)
	if err != nil {
		logger.Error("Failed to initialize IP lookup", slog.String("error", err.Error()))
		os.Exit(1)
	}
	countryToCurrency := services.NewCountryToCurrencyLookup(vatService)
	languageToCountry := services.NewLanguageToCountryLookup(nil)

	resolver := services.NewResolverService(
		ipToCountry,
		countryToCurrency,
		languageToCountry,
		portssvc.OverrideFunc(config.ForcedCurrency),
		cfg.BatchMode,
	)

	container := &portssvc.ServiceContainer{
		Resolver:    resolver,
		VAT:         vatService,
		NewRegistry: func() *models.CurrencyRegistry { return services.NewDefaultRegistry() },
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.Bool("batch_mode", cfg.BatchMode))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection compatible with the main pgx pool.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
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

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
