// internal/api/handler/ledger.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"debo/internal/domain"
	"debo/internal/service"
	"debo/internal/util"
)

// LedgerHandler handles HTTP requests for currencies, accounts,
// transactions and balances.
type LedgerHandler struct {
	ledger   service.LedgerService
	balances service.BalanceService
	logger   *slog.Logger
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledger service.LedgerService, balances service.BalanceService, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledger:   ledger,
		balances: balances,
		logger:   logger,
	}
}

func (h *LedgerHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, h.logger, util.E(util.KindInvalidFormat, "", "", "Malformed request body."))
		return false
	}
	return true
}

// CurrencyTypes lists the seeded currency types.
// GET /currency_types
func (h *LedgerHandler) CurrencyTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.ledger.CurrencyTypes(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types)
}

// AccountTypes lists the seeded account types.
// GET /account_types
func (h *LedgerHandler) AccountTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.ledger.AccountTypes(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types)
}

// CreateCurrency handles currency creation.
// POST /currencies
func (h *LedgerHandler) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	var in domain.CurrencyInput
	if !h.decode(w, r, &in) {
		return
	}
	currency, err := h.ledger.CreateCurrency(r.Context(), in, UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, currency)
}

// ListCurrencies lists the caller's currencies, optionally by type.
// GET /currencies?type=...
func (h *LedgerHandler) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	f := domain.CurrencyFilter{Type: r.URL.Query().Get("type")}
	currencies, err := h.ledger.ListCurrencies(r.Context(), f, UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, currencies)
}

// GetCurrency fetches a single currency by code.
// GET /currency/{code}
func (h *LedgerHandler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	currency, err := h.ledger.GetCurrency(r.Context(), chi.URLParam(r, "code"), UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, currency)
}

// PatchCurrency applies a partial update to a currency.
// PATCH /currency/{code}
func (h *LedgerHandler) PatchCurrency(w http.ResponseWriter, r *http.Request) {
	var p domain.CurrencyPatch
	if !h.decode(w, r, &p) {
		return
	}
	currency, err := h.ledger.PatchCurrency(r.Context(), chi.URLParam(r, "code"), p, UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, currency)
}

// DeleteCurrency removes a currency.
// DELETE /currency/{code}
func (h *LedgerHandler) DeleteCurrency(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeleteCurrency(r.Context(), chi.URLParam(r, "code"), UserID(r.Context())); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, "")
}

// CreateAccount handles account creation.
// POST /accounts
func (h *LedgerHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var in domain.AccountInput
	if !h.decode(w, r, &in) {
		return
	}
	account, err := h.ledger.CreateAccount(r.Context(), in, UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, account)
}

// ListAccounts lists the caller's accounts, optionally by type.
// GET /accounts?type=...
func (h *LedgerHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	f := domain.AccountFilter{Type: r.URL.Query().Get("type")}
	accounts, err := h.ledger.ListAccounts(r.Context(), f, UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, accounts)
}

// GetAccount fetches a single account by name.
// GET /account/{name}
func (h *LedgerHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.ledger.GetAccount(r.Context(), chi.URLParam(r, "name"), UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, account)
}

// PatchAccount applies a partial update to an account.
// PATCH /account/{name}
func (h *LedgerHandler) PatchAccount(w http.ResponseWriter, r *http.Request) {
	var p domain.AccountPatch
	if !h.decode(w, r, &p) {
		return
	}
	account, err := h.ledger.PatchAccount(r.Context(), chi.URLParam(r, "name"), p, UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, account)
}

// DeleteAccount removes an account.
// DELETE /account/{name}
func (h *LedgerHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeleteAccount(r.Context(), chi.URLParam(r, "name"), UserID(r.Context())); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, "")
}

// CreateTransaction handles transaction creation.
// POST /transactions
func (h *LedgerHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in domain.TransactionInput
	if !h.decode(w, r, &in) {
		return
	}
	transaction, err := h.ledger.CreateTransaction(r.Context(), in, UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, transaction)
}

// parseTxFilter builds a TxFilter from query parameters.
func parseTxFilter(r *http.Request) (domain.TxFilter, error) {
	q := r.URL.Query()
	f := domain.TxFilter{
		Currency:   q.Get("currency"),
		Debit:      q.Get("debit"),
		Credit:     q.Get("credit"),
		Account:    q.Get("account"),
		CommentHas: q.Get("commentHas"),
	}
	if v := q.Get("minDate"); v != "" {
		t, ok := domain.ParseDate(v)
		if !ok {
			return f, util.Ef(util.KindInvalidDate, "transaction", "minDate", "Unrecognized date %q.", v)
		}
		f.MinDate = &t
	}
	if v := q.Get("maxDate"); v != "" {
		t, ok := domain.ParseDate(v)
		if !ok {
			return f, util.Ef(util.KindInvalidDate, "transaction", "maxDate", "Unrecognized date %q.", v)
		}
		f.MaxDate = &t
	}
	if v := q.Get("minAmount"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, util.Ef(util.KindInvalidFormat, "transaction", "minAmount", "Invalid amount %q.", v)
		}
		f.MinAmount = &d
	}
	if v := q.Get("maxAmount"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return f, util.Ef(util.KindInvalidFormat, "transaction", "maxAmount", "Invalid amount %q.", v)
		}
		f.MaxAmount = &d
	}
	return f, nil
}

// ListTransactions lists the caller's transactions matching the filter.
// GET /transactions?minDate=...&maxAmount=...&currency=...&account=...
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := parseTxFilter(r)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	transactions, err := h.ledger.ListTransactions(r.Context(), f, UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, transactions)
}

// GetTransaction fetches a single transaction by id.
// GET /transaction/{id}
func (h *LedgerHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.ledger.GetTransaction(r.Context(), chi.URLParam(r, "id"), UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, transaction)
}

// PatchTransaction applies a partial update to a transaction.
// PATCH /transaction/{id}
func (h *LedgerHandler) PatchTransaction(w http.ResponseWriter, r *http.Request) {
	var p domain.TransactionPatch
	if !h.decode(w, r, &p) {
		return
	}
	transaction, err := h.ledger.PatchTransaction(r.Context(), chi.URLParam(r, "id"), p, UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, transaction)
}

// DeleteTransaction removes a transaction.
// DELETE /transaction/{id}
func (h *LedgerHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.ledger.DeleteTransaction(r.Context(), chi.URLParam(r, "id"), UserID(r.Context())); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, "")
}

// Balance returns the signed balance of one account.
// GET /balance/{name}
func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.balances.Balance(r.Context(), chi.URLParam(r, "name"), UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, balance)
}

// Balances returns the signed balance of every account the caller owns.
// GET /balances
func (h *LedgerHandler) Balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.balances.Balances(r.Context(), UserID(r.Context()))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, balances)
}
