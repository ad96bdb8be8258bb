package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether the account type normally carries a debit balance.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Account represents a ledger account in a tenant's chart of accounts.
type Account struct {
	AccountID       string      `json:"accountID"`
	TenantID        string      `json:"tenantID"`
	AccountNumber   string      `json:"accountNumber"` // unique per tenant, immutable
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	AccountType     AccountType `json:"accountType"` // immutable
	ParentAccountID string      `json:"parentAccountID"`
	IsActive        bool        `json:"isActive"`
	AuditFields
	// Balance is the raw sum of debit minus credit over every posted line
	// referencing the account. Only the posting path writes it.
	Balance decimal.Decimal `json:"balance"`
}

// AccountFilter narrows ListAccounts. Zero values mean "any".
type AccountFilter struct {
	AccountType     AccountType
	IsActive        *bool
	ParentAccountID string
	Limit           int
	Offset          int
}
