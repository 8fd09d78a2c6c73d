// internal/app.go
package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "debo/internal/api"
	"debo/internal/api/handler"
	"debo/internal/config"
	"debo/internal/identity"
	"debo/internal/repository"
	"debo/internal/repository/postgres"
	"debo/internal/service"
	"debo/internal/util"
	"debo/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository        repository.UserRepository
	ReferenceRepository   repository.ReferenceRepository
	CurrencyRepository    repository.CurrencyRepository
	AccountRepository     repository.AccountRepository
	TransactionRepository repository.TransactionRepository

	// Services
	SessionService service.SessionService
	LedgerService  service.LedgerService
	BalanceService service.BalanceService

	// Outbound identity collaborator
	IdentityProvider identity.Provider

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.ReferenceRepository = postgres.NewReferenceRepository(app.DB)
	app.CurrencyRepository = postgres.NewCurrencyRepository(app.DB)
	app.AccountRepository = postgres.NewAccountRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	app.SessionService = service.NewSessionService(
		app.DB,
		app.UserRepository,
		rand.Reader,
		app.Config.Session.TokenLength,
		app.Config.Session.TokenLifetime,
		app.Logger,
	)
	app.LedgerService = service.NewLedgerService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.ReferenceRepository,
		app.CurrencyRepository,
		app.AccountRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.BalanceService = service.NewBalanceService(
		app.DB,
		app.AccountRepository,
		app.TransactionRepository,
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize identity provider, HTTP handlers and router
	app.IdentityProvider = identity.NewGoogleProvider(app.Config.OAuth)
	authHandler := handler.NewAuthHandler(app.SessionService, app.IdentityProvider, app.Logger)
	ledgerHandler := handler.NewLedgerHandler(app.LedgerService, app.BalanceService, app.Logger)
	app.HTTPHandler = router.NewRouter(authHandler, ledgerHandler, app.SessionService, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
