// internal/service/balance_service.go
package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"debo/internal/domain"
	"debo/internal/repository"
	"debo/internal/util"
)

// BalanceService derives signed account balances from transaction history
// under the debit/credit normal-balance convention.
type BalanceService interface {
	// Balance returns the account together with its signed balance.
	Balance(ctx context.Context, accountName string, userID int64) (*domain.AccountBalance, error)
	// Balances returns the balance of every account owned by the user.
	Balances(ctx context.Context, userID int64) ([]domain.AccountBalance, error)
}

// balanceService implements the BalanceService interface.
type balanceService struct {
	dbExecutor  repository.DBExecutor
	accountRepo repository.AccountRepository
	txRepo      repository.TransactionRepository
}

// NewBalanceService creates a new instance of BalanceService.
func NewBalanceService(
	dbExecutor repository.DBExecutor,
	accountRepo repository.AccountRepository,
	txRepo repository.TransactionRepository,
) BalanceService {
	return &balanceService{
		dbExecutor:  dbExecutor,
		accountRepo: accountRepo,
		txRepo:      txRepo,
	}
}

type balanceSide int

const (
	debitSide balanceSide = iota
	creditSide
)

// normalSide maps an account type name to the side increases are recorded
// on. The mapping must stay in lockstep with the seeded account types.
func normalSide(accountType string) (balanceSide, error) {
	switch accountType {
	case "asset", "expense":
		return debitSide, nil
	case "liability", "equity", "income":
		return creditSide, nil
	}
	return 0, util.Ef(util.KindInvalidAccountType, "account", "type",
		"No balance convention for account type %q.", accountType)
}

// balanceOf sums the signed balance of an already-fetched account.
func (s *balanceService) balanceOf(ctx context.Context, account *domain.Account, userID int64) (*domain.AccountBalance, error) {
	side, err := normalSide(account.Type)
	if err != nil {
		return nil, err
	}

	transactions, err := s.txRepo.List(ctx, s.dbExecutor, userID, domain.TxFilter{Account: account.Name})
	if err != nil {
		return nil, fmt.Errorf("balance: failed to fetch transactions for %q: %w", account.Name, err)
	}

	total := decimal.Zero
	for _, t := range transactions {
		onDebitLeg := t.Debit == account.Name
		if (onDebitLeg && side == debitSide) || (!onDebitLeg && side == creditSide) {
			total = total.Add(t.Amount)
		} else {
			total = total.Sub(t.Amount)
		}
	}

	return &domain.AccountBalance{Account: *account, Balance: total}, nil
}

func (s *balanceService) Balance(ctx context.Context, accountName string, userID int64) (*domain.AccountBalance, error) {
	account, err := s.accountRepo.GetByName(ctx, s.dbExecutor, userID, accountName)
	if err != nil {
		return nil, err
	}
	return s.balanceOf(ctx, account, userID)
}

func (s *balanceService) Balances(ctx context.Context, userID int64) ([]domain.AccountBalance, error) {
	accounts, err := s.accountRepo.List(ctx, s.dbExecutor, userID, domain.AccountFilter{})
	if err != nil {
		return nil, err
	}
	balances := make([]domain.AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		b, err := s.balanceOf(ctx, &a, userID)
		if err != nil {
			return nil, err
		}
		balances = append(balances, *b)
	}
	return balances, nil
}
