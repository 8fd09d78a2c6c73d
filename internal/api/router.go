// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"debo/internal/api/handler"
	"debo/internal/service"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(
	authHandler *handler.AuthHandler,
	ledgerHandler *handler.LedgerHandler,
	sessions service.SessionService,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Login flow runs before a session exists
	r.Get("/login", authHandler.Login)
	r.Get("/redirect", authHandler.Redirect)

	// Everything else requires a live session token
	r.Group(func(r chi.Router) {
		r.Use(handler.Authenticator(sessions, logger))

		r.Get("/logout", authHandler.Logout)

		r.Get("/currency_types", ledgerHandler.CurrencyTypes)
		r.Get("/account_types", ledgerHandler.AccountTypes)

		r.Post("/currencies", ledgerHandler.CreateCurrency)
		r.Get("/currencies", ledgerHandler.ListCurrencies)
		r.Get("/currency/{code}", ledgerHandler.GetCurrency)
		r.Patch("/currency/{code}", ledgerHandler.PatchCurrency)
		r.Delete("/currency/{code}", ledgerHandler.DeleteCurrency)

		r.Post("/accounts", ledgerHandler.CreateAccount)
		r.Get("/accounts", ledgerHandler.ListAccounts)
		r.Get("/account/{name}", ledgerHandler.GetAccount)
		r.Patch("/account/{name}", ledgerHandler.PatchAccount)
		r.Delete("/account/{name}", ledgerHandler.DeleteAccount)

		r.Post("/transactions", ledgerHandler.CreateTransaction)
		r.Get("/transactions", ledgerHandler.ListTransactions)
		r.Get("/transaction/{id}", ledgerHandler.GetTransaction)
		r.Patch("/transaction/{id}", ledgerHandler.PatchTransaction)
		r.Delete("/transaction/{id}", ledgerHandler.DeleteTransaction)

		r.Get("/balance/{name}", ledgerHandler.Balance)
		r.Get("/balances", ledgerHandler.Balances)
	})

	return r
}
