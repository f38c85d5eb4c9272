package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oakpos/cashdesk/internal/adapters/database/pgsql"
	portssvc "github.com/oakpos/cashdesk/internal/core/ports/services"
	"github.com/oakpos/cashdesk/internal/core/services"
	"github.com/oakpos/cashdesk/internal/handlers"
	"github.com/oakpos/cashdesk/internal/middleware"
	"github.com/oakpos/cashdesk/pkg/config"
	"github.com/oakpos/cashdesk/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	container := buildServices(dbPool, cfg)
	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires the repositories and services. One lock registry is
// shared by the session and transfer services so mutations on the same
// session serialize across both.
func buildServices(dbPool *pgxpool.Pool, cfg *config.Config) *portssvc.ServiceContainer {
	drawerRepo := pgsql.NewPgxDrawerRepository(dbPool)
	sessionRepo := pgsql.NewPgxSessionRepository(dbPool)
	adjustmentRepo := pgsql.NewPgxAdjustmentRepository(dbPool)
	interStoreRepo := pgsql.NewPgxInterStoreTransferRepository(dbPool)
	journalRepo := pgsql.NewPgxJournalRepository(dbPool)
	employeeRepo := pgsql.NewPgxEmployeeRepository(dbPool)
	ledgerRepo := pgsql.NewPgxLedgerRepository(dbPool)
	methodRepo := pgsql.NewPgxPaymentMethodRepository(dbPool)
	storeRepo := pgsql.NewPgxStoreSessionRepository(dbPool)

	locks := services.NewKeyedMutex()

	authSvc := services.NewAuthService(employeeRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)
	balanceSvc := services.NewBalanceService(sessionRepo, ledgerRepo, methodRepo)
	drawerSvc := services.NewDrawerService(drawerRepo)
	journalSvc := services.NewJournalService(journalRepo)
	sessionSvc := services.NewSessionService(
		drawerRepo, sessionRepo, journalRepo, employeeRepo, storeRepo,
		balanceSvc, authSvc, locks,
		cfg.DefaultDiscrepancyThreshold, cfg.OpeningBalanceTolerance,
	)
	transferSvc := services.NewTransferService(
		drawerRepo, sessionRepo, adjustmentRepo, interStoreRepo, storeRepo,
		balanceSvc, locks,
	)

	return &portssvc.ServiceContainer{
		Auth:     authSvc,
		Drawer:   drawerSvc,
		Session:  sessionSvc,
		Transfer: transferSvc,
		Journal:  journalSvc,
		Balance:  balanceSvc,
	}
}

// runMigrations applies all pending up migrations over a standard sql.DB
// connection using the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
