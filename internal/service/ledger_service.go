// internal/service/ledger_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"debo/internal/domain"
	"debo/internal/repository"
	"debo/internal/util"
	"debo/pkg/db"
)

// LedgerService is the gatekeeper between caller-supplied partial structs
// and the repositories: it validates every invariant and resolves
// human-readable references to internal ids before any write is issued.
type LedgerService interface {
	CurrencyTypes(ctx context.Context) ([]domain.CurrencyType, error)
	AccountTypes(ctx context.Context) ([]domain.AccountType, error)

	CreateCurrency(ctx context.Context, in domain.CurrencyInput, userID int64) (*domain.Currency, error)
	GetCurrency(ctx context.Context, code string, userID int64) (*domain.Currency, error)
	ListCurrencies(ctx context.Context, f domain.CurrencyFilter, userID int64) ([]domain.Currency, error)
	PatchCurrency(ctx context.Context, code string, p domain.CurrencyPatch, userID int64) (*domain.Currency, error)
	DeleteCurrency(ctx context.Context, code string, userID int64) error

	CreateAccount(ctx context.Context, in domain.AccountInput, userID int64) (*domain.Account, error)
	GetAccount(ctx context.Context, name string, userID int64) (*domain.Account, error)
	ListAccounts(ctx context.Context, f domain.AccountFilter, userID int64) ([]domain.Account, error)
	PatchAccount(ctx context.Context, name string, p domain.AccountPatch, userID int64) (*domain.Account, error)
	DeleteAccount(ctx context.Context, name string, userID int64) error

	CreateTransaction(ctx context.Context, in domain.TransactionInput, userID int64) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string, userID int64) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, f domain.TxFilter, userID int64) ([]domain.Transaction, error)
	PatchTransaction(ctx context.Context, id string, p domain.TransactionPatch, userID int64) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string, userID int64) error
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	dbBeginner    db.DBTxBeginner
	dbExecutor    repository.DBExecutor
	referenceRepo repository.ReferenceRepository
	currencyRepo  repository.CurrencyRepository
	accountRepo   repository.AccountRepository
	txRepo        repository.TransactionRepository
	beginTx       db.BeginTxFunc
	commitTx      db.CommitTxFunc
	rollbackTx    db.RollbackTxFunc
	logger        *slog.Logger
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	referenceRepo repository.ReferenceRepository,
	currencyRepo repository.CurrencyRepository,
	accountRepo repository.AccountRepository,
	txRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) LedgerService {
	return &ledgerService{
		dbBeginner:    dbBeginner,
		dbExecutor:    dbExecutor,
		referenceRepo: referenceRepo,
		currencyRepo:  currencyRepo,
		accountRepo:   accountRepo,
		txRepo:        txRepo,
		beginTx:       beginTx,
		commitTx:      commitTx,
		rollbackTx:    rollbackTx,
		logger:        logger,
	}
}

func parseDate(s string) (time.Time, error) {
	t, ok := domain.ParseDate(s)
	if !ok {
		return time.Time{}, util.Ef(util.KindInvalidDate, "transaction", "date", "Unrecognized date %q.", s)
	}
	return t, nil
}

// validCurrencyCode reports whether code is exactly three letters.
func validCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z') {
			return false
		}
	}
	return true
}

func (s *ledgerService) CurrencyTypes(ctx context.Context) ([]domain.CurrencyType, error) {
	return s.referenceRepo.CurrencyTypes(ctx, s.dbExecutor)
}

func (s *ledgerService) AccountTypes(ctx context.Context) ([]domain.AccountType, error) {
	return s.referenceRepo.AccountTypes(ctx, s.dbExecutor)
}

// resolveCurrencyTypeID resolves a currency type name with a case-sensitive
// exact match against the seeded set.
func (s *ledgerService) resolveCurrencyTypeID(ctx context.Context, q repository.DBExecutor, name string) (int, error) {
	types, err := s.referenceRepo.CurrencyTypes(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve currency type: %w", err)
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		if t.Name == name {
			return t.ID, nil
		}
		names = append(names, t.Name)
	}
	return 0, util.Ef(util.KindUnknownType, "currency", "type",
		"Currency type not found. Valid types: %s.", strings.Join(names, ", "))
}

// resolveAccountTypeID resolves an account type name with a case-sensitive
// exact match against the seeded set.
func (s *ledgerService) resolveAccountTypeID(ctx context.Context, q repository.DBExecutor, name string) (int, error) {
	types, err := s.referenceRepo.AccountTypes(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve account type: %w", err)
	}
	names := make([]string, 0, len(types))
	for _, t := range types {
		if t.Name == name {
			return t.ID, nil
		}
		names = append(names, t.Name)
	}
	return 0, util.Ef(util.KindUnknownType, "account", "type",
		"Account type not found. Valid types: %s.", strings.Join(names, ", "))
}

// resolveCurrencyID resolves a currency code to its row id for the user.
func (s *ledgerService) resolveCurrencyID(ctx context.Context, q repository.DBExecutor, userID int64, code string) (int64, error) {
	c, err := s.currencyRepo.GetByCode(ctx, q, userID, code)
	if err != nil {
		if util.IsKind(err, util.KindNotFound) {
			return 0, util.E(util.KindUnknownReference, "transaction", "currency", "Currency code not found.")
		}
		return 0, fmt.Errorf("failed to resolve currency %q: %w", code, err)
	}
	return c.ID, nil
}

// resolveAccountID resolves an account name to its row id for the user.
func (s *ledgerService) resolveAccountID(ctx context.Context, q repository.DBExecutor, userID int64, field, name string) (int64, error) {
	a, err := s.accountRepo.GetByName(ctx, q, userID, name)
	if err != nil {
		if util.IsKind(err, util.KindNotFound) {
			return 0, util.Ef(util.KindUnknownReference, "transaction", field, "Account %q not found.", name)
		}
		return 0, fmt.Errorf("failed to resolve account %q: %w", name, err)
	}
	return a.ID, nil
}

func (s *ledgerService) CreateCurrency(ctx context.Context, in domain.CurrencyInput, userID int64) (*domain.Currency, error) {
	switch {
	case in.Code == "":
		return nil, util.E(util.KindMissingField, "currency", "code", "Please specify the code field.")
	case in.Name == "":
		return nil, util.E(util.KindMissingField, "currency", "name", "Please specify the name field.")
	case in.Type == "":
		return nil, util.E(util.KindMissingField, "currency", "type", "Please specify the type field.")
	}
	if !validCurrencyCode(in.Code) {
		return nil, util.E(util.KindInvalidFormat, "currency", "code", "Currency code must be exactly three letters.")
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create currency: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create currency: transaction controller does not implement DBExecutor")
	}

	typeID, err := s.resolveCurrencyTypeID(ctx, txExecutor, in.Type)
	if err != nil {
		return nil, err
	}

	// Pre-check keeps the common case friendly; a concurrent create still
	// surfaces as Duplicate through the unique-constraint translation.
	if _, err := s.currencyRepo.GetByCode(ctx, txExecutor, userID, in.Code); err == nil {
		return nil, util.Ef(util.KindDuplicate, "currency", "code", "Currency %q already exists.", in.Code)
	} else if !util.IsKind(err, util.KindNotFound) {
		return nil, fmt.Errorf("create currency: failed to check for duplicate: %w", err)
	}

	if err := s.currencyRepo.Create(ctx, txExecutor, userID, in.Code, in.Name, typeID); err != nil {
		return nil, err
	}
	created, err := s.currencyRepo.GetByCode(ctx, txExecutor, userID, in.Code)
	if err != nil {
		return nil, fmt.Errorf("create currency: failed to re-read created row: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create currency: failed to commit transaction: %w", err)
	}

	s.logger.Info("currency created", "user_id", userID, "code", created.Code)
	return created, nil
}

func (s *ledgerService) GetCurrency(ctx context.Context, code string, userID int64) (*domain.Currency, error) {
	if !validCurrencyCode(code) {
		return nil, util.E(util.KindInvalidFormat, "currency", "code", "Currency code must be exactly three letters.")
	}
	return s.currencyRepo.GetByCode(ctx, s.dbExecutor, userID, code)
}

func (s *ledgerService) ListCurrencies(ctx context.Context, f domain.CurrencyFilter, userID int64) ([]domain.Currency, error) {
	return s.currencyRepo.List(ctx, s.dbExecutor, userID, f)
}

func (s *ledgerService) PatchCurrency(ctx context.Context, code string, p domain.CurrencyPatch, userID int64) (*domain.Currency, error) {
	p = p.Normalized()
	if p.Empty() {
		return nil, util.E(util.KindEmptyPatch, "currency", "", "Please specify at least one field to patch.")
	}
	if p.Code.Valid() && !validCurrencyCode(p.Code.Value) {
		return nil, util.E(util.KindInvalidFormat, "currency", "code", "Currency code must be exactly three letters.")
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("patch currency: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("patch currency: transaction controller does not implement DBExecutor")
	}

	update := repository.CurrencyUpdate{Code: p.Code, Name: p.Name}
	if p.Type.Valid() {
		typeID, err := s.resolveCurrencyTypeID(ctx, txExecutor, p.Type.Value)
		if err != nil {
			return nil, err
		}
		update.TypeID = domain.Some(typeID)
	}

	newCode, err := s.currencyRepo.Update(ctx, txExecutor, userID, code, update)
	if err != nil {
		if util.IsKind(err, util.KindNotFound) {
			return nil, util.E(util.KindNotFound, "currency", "code", "Currency code not found.")
		}
		return nil, err
	}
	updated, err := s.currencyRepo.GetByCode(ctx, txExecutor, userID, newCode)
	if err != nil {
		return nil, fmt.Errorf("patch currency: failed to re-read updated row: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("patch currency: failed to commit transaction: %w", err)
	}
	return updated, nil
}

func (s *ledgerService) DeleteCurrency(ctx context.Context, code string, userID int64) error {
	if !validCurrencyCode(code) {
		return util.E(util.KindInvalidFormat, "currency", "code", "Currency code must be exactly three letters.")
	}
	return s.currencyRepo.Delete(ctx, s.dbExecutor, userID, code)
}

func (s *ledgerService) CreateAccount(ctx context.Context, in domain.AccountInput, userID int64) (*domain.Account, error) {
	switch {
	case in.Type == "":
		return nil, util.E(util.KindMissingField, "account", "type", "Please specify the type field.")
	case in.Name == "":
		return nil, util.E(util.KindMissingField, "account", "name", "Please specify the name field.")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, util.E(util.KindInvalidFormat, "account", "name", "Account name must not be blank.")
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create account: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create account: transaction controller does not implement DBExecutor")
	}

	typeID, err := s.resolveAccountTypeID(ctx, txExecutor, in.Type)
	if err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.GetByName(ctx, txExecutor, userID, in.Name); err == nil {
		return nil, util.Ef(util.KindDuplicate, "account", "name", "Account %q already exists.", in.Name)
	} else if !util.IsKind(err, util.KindNotFound) {
		return nil, fmt.Errorf("create account: failed to check for duplicate: %w", err)
	}

	if err := s.accountRepo.Create(ctx, txExecutor, userID, in.Name, typeID); err != nil {
		return nil, err
	}
	created, err := s.accountRepo.GetByName(ctx, txExecutor, userID, in.Name)
	if err != nil {
		return nil, fmt.Errorf("create account: failed to re-read created row: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create account: failed to commit transaction: %w", err)
	}

	s.logger.Info("account created", "user_id", userID, "name", created.Name)
	return created, nil
}

func (s *ledgerService) GetAccount(ctx context.Context, name string, userID int64) (*domain.Account, error) {
	if name == "" {
		return nil, util.E(util.KindInvalidFormat, "account", "name", "Account name must not be blank.")
	}
	return s.accountRepo.GetByName(ctx, s.dbExecutor, userID, name)
}

func (s *ledgerService) ListAccounts(ctx context.Context, f domain.AccountFilter, userID int64) ([]domain.Account, error) {
	return s.accountRepo.List(ctx, s.dbExecutor, userID, f)
}

func (s *ledgerService) PatchAccount(ctx context.Context, name string, p domain.AccountPatch, userID int64) (*domain.Account, error) {
	p = p.Normalized()
	if p.Empty() {
		return nil, util.E(util.KindEmptyPatch, "account", "", "Please specify at least one field to patch.")
	}
	if p.Name.Valid() && strings.TrimSpace(p.Name.Value) == "" {
		return nil, util.E(util.KindInvalidFormat, "account", "name", "Account name must not be blank.")
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("patch account: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("patch account: transaction controller does not implement DBExecutor")
	}

	update := repository.AccountUpdate{Name: p.Name}
	if p.Type.Valid() {
		typeID, err := s.resolveAccountTypeID(ctx, txExecutor, p.Type.Value)
		if err != nil {
			return nil, err
		}
		update.TypeID = domain.Some(typeID)
	}

	newName, err := s.accountRepo.Update(ctx, txExecutor, userID, name, update)
	if err != nil {
		if util.IsKind(err, util.KindNotFound) {
			return nil, util.E(util.KindNotFound, "account", "name", "Account name not found.")
		}
		return nil, err
	}
	updated, err := s.accountRepo.GetByName(ctx, txExecutor, userID, newName)
	if err != nil {
		return nil, fmt.Errorf("patch account: failed to re-read updated row: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("patch account: failed to commit transaction: %w", err)
	}
	return updated, nil
}

func (s *ledgerService) DeleteAccount(ctx context.Context, name string, userID int64) error {
	if name == "" {
		return util.E(util.KindInvalidFormat, "account", "name", "Account name must not be blank.")
	}
	return s.accountRepo.Delete(ctx, s.dbExecutor, userID, name)
}

func (s *ledgerService) CreateTransaction(ctx context.Context, in domain.TransactionInput, userID int64) (*domain.Transaction, error) {
	switch {
	case in.Amount == nil:
		return nil, util.E(util.KindMissingField, "transaction", "amount", "Please specify the amount field.")
	case in.Currency == "":
		return nil, util.E(util.KindMissingField, "transaction", "currency", "Please specify the currency field.")
	case in.Debit == "":
		return nil, util.E(util.KindMissingField, "transaction", "debit", "Please specify the debit field.")
	case in.Credit == "":
		return nil, util.E(util.KindMissingField, "transaction", "credit", "Please specify the credit field.")
	}
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.E(util.KindInvalidAmount, "transaction", "amount", "Amount must be positive.")
	}
	if in.Debit == in.Credit {
		return nil, util.E(util.KindSameAccount, "transaction", "", "Debit and credit accounts must differ.")
	}
	var date *time.Time
	if in.Date != "" {
		parsed, err := parseDate(in.Date)
		if err != nil {
			return nil, err
		}
		date = &parsed
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create transaction: transaction controller does not implement DBExecutor")
	}

	// Every reference must resolve before the insert is issued.
	currencyID, err := s.resolveCurrencyID(ctx, txExecutor, userID, in.Currency)
	if err != nil {
		return nil, err
	}
	debitID, err := s.resolveAccountID(ctx, txExecutor, userID, "debit", in.Debit)
	if err != nil {
		return nil, err
	}
	creditID, err := s.resolveAccountID(ctx, txExecutor, userID, "credit", in.Credit)
	if err != nil {
		return nil, err
	}

	id, err := s.txRepo.Create(ctx, txExecutor, userID, repository.NewTransaction{
		Date:       date,
		Amount:     *in.Amount,
		CurrencyID: currencyID,
		DebitID:    debitID,
		CreditID:   creditID,
		Comment:    in.Comment,
	})
	if err != nil {
		return nil, err
	}
	created, err := s.txRepo.GetByID(ctx, txExecutor, userID, id)
	if err != nil {
		return nil, fmt.Errorf("create transaction: failed to re-read created row: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create transaction: failed to commit transaction: %w", err)
	}

	s.logger.Info("transaction created", "user_id", userID, "id", created.ID, "amount", created.Amount)
	return created, nil
}

// parseTransactionID validates the id format before any store access.
func parseTransactionID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 0 {
		return 0, util.E(util.KindInvalidFormat, "transaction", "id", "Invalid transaction id.")
	}
	return n, nil
}

func (s *ledgerService) GetTransaction(ctx context.Context, id string, userID int64) (*domain.Transaction, error) {
	n, err := parseTransactionID(id)
	if err != nil {
		return nil, err
	}
	return s.txRepo.GetByID(ctx, s.dbExecutor, userID, n)
}

func (s *ledgerService) ListTransactions(ctx context.Context, f domain.TxFilter, userID int64) ([]domain.Transaction, error) {
	return s.txRepo.List(ctx, s.dbExecutor, userID, f)
}

func (s *ledgerService) PatchTransaction(ctx context.Context, id string, p domain.TransactionPatch, userID int64) (*domain.Transaction, error) {
	n, err := parseTransactionID(id)
	if err != nil {
		return nil, err
	}
	p = p.Normalized()
	if p.Empty() {
		return nil, util.E(util.KindEmptyPatch, "transaction", "", "Please specify at least one field to patch.")
	}
	if p.Amount.Valid() && p.Amount.Value.LessThanOrEqual(decimal.Zero) {
		return nil, util.E(util.KindInvalidAmount, "transaction", "amount", "Amount must be positive.")
	}

	update := repository.TransactionUpdate{Amount: p.Amount, Comment: p.Comment}
	if p.Date.Valid() {
		parsed, err := parseDate(p.Date.Value)
		if err != nil {
			return nil, err
		}
		update.Date = domain.Some(parsed)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("patch transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("patch transaction: transaction controller does not implement DBExecutor")
	}

	existing, err := s.txRepo.GetByID(ctx, txExecutor, userID, n)
	if err != nil {
		return nil, err
	}

	// The debit/credit distinctness invariant holds over the merged row,
	// not just over the supplied fields.
	debitName, creditName := existing.Debit, existing.Credit
	if p.Debit.Valid() {
		debitName = p.Debit.Value
	}
	if p.Credit.Valid() {
		creditName = p.Credit.Value
	}
	if debitName == creditName {
		return nil, util.E(util.KindSameAccount, "transaction", "", "Debit and credit accounts must differ.")
	}

	if p.Currency.Valid() {
		currencyID, err := s.resolveCurrencyID(ctx, txExecutor, userID, p.Currency.Value)
		if err != nil {
			return nil, err
		}
		update.CurrencyID = domain.Some(currencyID)
	}
	if p.Debit.Valid() {
		debitID, err := s.resolveAccountID(ctx, txExecutor, userID, "debit", p.Debit.Value)
		if err != nil {
			return nil, err
		}
		update.DebitID = domain.Some(debitID)
	}
	if p.Credit.Valid() {
		creditID, err := s.resolveAccountID(ctx, txExecutor, userID, "credit", p.Credit.Value)
		if err != nil {
			return nil, err
		}
		update.CreditID = domain.Some(creditID)
	}

	if err := s.txRepo.Update(ctx, txExecutor, userID, n, update); err != nil {
		return nil, err
	}
	updated, err := s.txRepo.GetByID(ctx, txExecutor, userID, n)
	if err != nil {
		return nil, fmt.Errorf("patch transaction: failed to re-read updated row: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("patch transaction: failed to commit transaction: %w", err)
	}
	return updated, nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, id string, userID int64) error {
	n, err := parseTransactionID(id)
	if err != nil {
		return err
	}
	return s.txRepo.Delete(ctx, s.dbExecutor, userID, n)
}
