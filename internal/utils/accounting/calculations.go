package accounting

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Balances are stored raw as debit minus credit. The functions here apply the
// presentation sign convention and are only used by report code.

// SplitBalance places a raw balance in the debit column when positive and in
// the credit column, negated, when negative.
func SplitBalance(raw decimal.Decimal) (debit, credit decimal.Decimal) {
	if raw.IsPositive() {
		return raw, decimal.Zero
	}
	return decimal.Zero, raw.Neg()
}

// NormalBalance returns the balance in the account type's natural direction:
// debit minus credit for ASSET and EXPENSE, credit minus debit otherwise.
func NormalBalance(accountType domain.AccountType, raw decimal.Decimal) decimal.Decimal {
	if accountType.IsDebitNormal() {
		return raw
	}
	return raw.Neg()
}

// Sum adds the given amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
