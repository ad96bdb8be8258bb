package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for accounts
type AccountReader interface {
	FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
	FindAccountByNumber(ctx context.Context, tenantID, accountNumber string) (*domain.Account, error)
	ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error)
	// HasLineHistory reports whether any journal line, in any status, references the account.
	HasLineHistory(ctx context.Context, tenantID, accountID string) (bool, error)
	HasChildren(ctx context.Context, tenantID, accountID string) (bool, error)
}

// AccountWriter defines write operations for account metadata. None of them touch the balance.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeleteAccount(ctx context.Context, tenantID, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

// AccountTx is the balance-mutating part of a unit of work.
type AccountTx interface {
	// LockAccounts locks the given accounts for the rest of the unit of work,
	// in ascending id order. Missing ids are absent from the result.
	LockAccounts(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error)
	// ApplyBalanceChanges adds each delta to the locked account's balance.
	ApplyBalanceChanges(ctx context.Context, changes map[string]decimal.Decimal, actorID string, at time.Time) error
}
