package accounting_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitBalance(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantDebit  string
		wantCredit string
	}{
		{name: "positive goes to debit", raw: "500.00", wantDebit: "500", wantCredit: "0"},
		{name: "negative goes to credit", raw: "-500.00", wantDebit: "0", wantCredit: "500"},
		{name: "zero", raw: "0", wantDebit: "0", wantCredit: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debit, credit := accounting.SplitBalance(decimal.RequireFromString(tt.raw))
			assert.True(t, debit.Equal(decimal.RequireFromString(tt.wantDebit)), "debit %s", debit)
			assert.True(t, credit.Equal(decimal.RequireFromString(tt.wantCredit)), "credit %s", credit)
		})
	}
}

func TestNormalBalance(t *testing.T) {
	raw := decimal.RequireFromString("-500")

	assert.True(t, accounting.NormalBalance(domain.Revenue, raw).Equal(decimal.NewFromInt(500)))
	assert.True(t, accounting.NormalBalance(domain.Liability, raw).Equal(decimal.NewFromInt(500)))
	assert.True(t, accounting.NormalBalance(domain.Equity, raw).Equal(decimal.NewFromInt(500)))
	assert.True(t, accounting.NormalBalance(domain.Asset, raw).Equal(decimal.NewFromInt(-500)))
	assert.True(t, accounting.NormalBalance(domain.Expense, raw).Equal(decimal.NewFromInt(-500)))
}

func TestSum(t *testing.T) {
	assert.True(t, accounting.Sum().IsZero())
	assert.True(t, accounting.Sum(decimal.NewFromFloat(0.1), decimal.NewFromFloat(0.2)).Equal(decimal.RequireFromString("0.3")))
}
