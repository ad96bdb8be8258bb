package services_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

func TestPostEntry_CashSale(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	cash := l.account(t, "1000", "Cash", domain.Asset)
	sales := l.account(t, "4000", "Sales", domain.Revenue)

	posted := l.post(t, "2024-01-15", dr(cash.AccountID, "500.00"), cr(sales.AccountID, "500.00"))
	assert.Equal(t, domain.Posted, posted.Status)
	assert.Equal(t, testActor, posted.PostedBy)
	require.NotNil(t, posted.PostedAt)
	assert.Equal(t, testNow, *posted.PostedAt)

	assert.True(t, l.balance(t, cash.AccountID).Equal(dec("500.00")))
	assert.True(t, l.balance(t, sales.AccountID).Equal(dec("-500.00")), "balances are stored as debit minus credit")

	report, err := l.Reporting.IncomeStatement(ctx, testTenant, date("2024-01-01"), date("2024-01-31"))
	require.NoError(t, err)
	assert.True(t, report.TotalRevenue.Equal(dec("500.00")))

	l.audit.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(f domain.AuditFact) bool {
		return f.Action == domain.AuditPost && f.EntityID == posted.EntryID
	}))
	l.notifier.AssertCalled(t, "Notify", mock.Anything, mock.MatchedBy(func(e domain.LedgerEvent) bool {
		return e.Name == domain.EventEntryPosted && e.EntryID == posted.EntryID && e.Amount.Equal(dec("500"))
	}))
}

func TestPostEntry_UnbalancedLeavesBalancesUntouched(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	cash := l.account(t, "1000", "Cash", domain.Asset)
	sales := l.account(t, "4000", "Sales", domain.Revenue)
	l.post(t, "2024-01-10", dr(cash.AccountID, "20.00"), cr(sales.AccountID, "20.00"))

	d := l.draft(t, "2024-01-15", dr(cash.AccountID, "500.00"), cr(sales.AccountID, "400.00"))
	_, err := l.Posting.PostEntry(ctx, testTenant, d.EntryID, testActor)

	var unbalanced *apperrors.UnbalancedEntryError
	require.True(t, errors.As(err, &unbalanced))
	assert.True(t, unbalanced.Debit.Equal(dec("500.00")))
	assert.True(t, unbalanced.Credit.Equal(dec("400.00")))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.True(t, l.balance(t, cash.AccountID).Equal(dec("20.00")))
	assert.True(t, l.balance(t, sales.AccountID).Equal(dec("-20.00")))

	stored, err := l.Journal.GetEntry(ctx, testTenant, d.EntryID)
	require.NoError(t, err)
	assert.Equal(t, domain.Draft, stored.Status)
}

func TestPostEntry_UnknownEntry(t *testing.T) {
	l := newLedger(t)
	_, err := l.Posting.PostEntry(context.Background(), testTenant, "missing", testActor)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// randomLines returns lines over accounts whose debits and credits sum to the same
// total, in cents, plus the expected balance change per account.
func randomLines(rng *rand.Rand, accounts []string) ([]dto.LineRequest, map[string]decimal.Decimal) {
	changes := map[string]decimal.Decimal{}
	var lines []dto.LineRequest
	total := int64(0)
	for i := 0; i < 1+rng.Intn(4); i++ {
		cents := int64(1 + rng.Intn(100000))
		total += cents
		acc := accounts[rng.Intn(len(accounts))]
		amt := decimal.New(cents, -2)
		lines = append(lines, dto.LineRequest{AccountID: acc, Debit: amt})
		changes[acc] = changes[acc].Add(amt)
	}
	remaining := total
	if total >= 2 && rng.Intn(2) == 0 {
		part := 1 + rng.Int63n(total-1)
		acc := accounts[rng.Intn(len(accounts))]
		lines = append(lines, dto.LineRequest{AccountID: acc, Credit: decimal.New(part, -2)})
		changes[acc] = changes[acc].Sub(decimal.New(part, -2))
		remaining -= part
	}
	acc := accounts[rng.Intn(len(accounts))]
	lines = append(lines, dto.LineRequest{AccountID: acc, Credit: decimal.New(remaining, -2)})
	changes[acc] = changes[acc].Sub(decimal.New(remaining, -2))
	return lines, changes
}

func TestPostEntry_BalanceInvariant(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	var ids []string
	for i, typ := range []domain.AccountType{domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense} {
		ids = append(ids, l.account(t, fmt.Sprintf("%d000", i+1), string(typ), typ).AccountID)
	}
	snapshot := func() map[string]decimal.Decimal {
		out := map[string]decimal.Decimal{}
		for _, id := range ids {
			out[id] = l.balance(t, id)
		}
		return out
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 60; i++ {
		lines, changes := randomLines(rng, ids)
		before := snapshot()

		if i%3 == 0 {
			// Knock one line off by a cent.
			lines[0].Debit = lines[0].Debit.Add(decimal.New(1, -2))
			d := l.draft(t, "2024-02-01", lines...)
			_, err := l.Posting.PostEntry(ctx, testTenant, d.EntryID, testActor)
			require.ErrorIs(t, err, apperrors.ErrUnbalancedEntry, "iteration %d", i)
			after := snapshot()
			for _, id := range ids {
				assert.True(t, before[id].Equal(after[id]), "iteration %d account %s changed", i, id)
			}
			continue
		}

		l.post(t, "2024-02-01", lines...)
		after := snapshot()
		for _, id := range ids {
			want := before[id].Add(changes[id])
			assert.True(t, want.Equal(after[id]), "iteration %d account %s: want %s got %s", i, id, want, after[id])
		}
	}

	tb, err := l.Reporting.TrialBalance(ctx, testTenant, date("2024-12-31"))
	require.NoError(t, err)
	assert.True(t, tb.TotalDebit.Equal(tb.TotalCredit))
}

func TestPostEntry_ConcurrentPostingsOnSameAccounts(t *testing.T) {
	l := newLedger(t)
	cash := l.account(t, "1000", "Cash", domain.Asset)
	sales := l.account(t, "4000", "Sales", domain.Revenue)
	fees := l.account(t, "5000", "Fees", domain.Expense)

	const n = 30
	drafts := make([]*domain.JournalEntry, n)
	for i := range drafts {
		if i%2 == 0 {
			drafts[i] = l.draft(t, "2024-01-15", dr(cash.AccountID, "1.25"), cr(sales.AccountID, "1.25"))
		} else {
			drafts[i] = l.draft(t, "2024-01-15", dr(fees.AccountID, "0.25"), cr(cash.AccountID, "0.25"))
		}
	}

	var wg conc.WaitGroup
	for _, d := range drafts {
		wg.Go(func() {
			_, err := l.Posting.PostEntry(context.Background(), testTenant, d.EntryID, testActor)
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	assert.True(t, l.balance(t, cash.AccountID).Equal(dec("15.00")), l.balance(t, cash.AccountID).String()) // 15*1.25 - 15*0.25
	assert.True(t, l.balance(t, sales.AccountID).Equal(dec("-18.75")))
	assert.True(t, l.balance(t, fees.AccountID).Equal(dec("3.75")))
}

func TestPostEntry_RetriesConcurrencyErrors(t *testing.T) {
	ctx := context.Background()
	contention := fmt.Errorf("%w: serialization failure", apperrors.ErrConcurrency)

	t.Run("succeeds after transient failures", func(t *testing.T) {
		var runner *countingTxRunner
		l := newLedgerWithRunner(t, func(inner portsrepo.TxRunner) portsrepo.TxRunner {
			runner = &countingTxRunner{inner: inner, failures: 2, err: contention}
			return runner
		})
		cash := l.account(t, "1000", "Cash", domain.Asset)
		sales := l.account(t, "4000", "Sales", domain.Revenue)
		d := l.draft(t, "2024-01-15", dr(cash.AccountID, "5"), cr(sales.AccountID, "5"))

		_, err := l.Posting.PostEntry(ctx, testTenant, d.EntryID, testActor)
		require.NoError(t, err)
		assert.Equal(t, int32(3), runner.attempts.Load())
		assert.True(t, l.balance(t, cash.AccountID).Equal(dec("5")))
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		var runner *countingTxRunner
		l := newLedgerWithRunner(t, func(inner portsrepo.TxRunner) portsrepo.TxRunner {
			runner = &countingTxRunner{inner: inner, failures: 100, err: contention}
			return runner
		})
		cash := l.account(t, "1000", "Cash", domain.Asset)
		sales := l.account(t, "4000", "Sales", domain.Revenue)
		d := l.draft(t, "2024-01-15", dr(cash.AccountID, "5"), cr(sales.AccountID, "5"))

		_, err := l.Posting.PostEntry(ctx, testTenant, d.EntryID, testActor)
		assert.ErrorIs(t, err, apperrors.ErrConcurrency)
		assert.Equal(t, int32(fastRetry().MaxRetries+1), runner.attempts.Load())
		assert.True(t, l.balance(t, cash.AccountID).IsZero())
	})

	t.Run("validation errors are not retried", func(t *testing.T) {
		var runner *countingTxRunner
		l := newLedgerWithRunner(t, func(inner portsrepo.TxRunner) portsrepo.TxRunner {
			runner = &countingTxRunner{inner: inner}
			return runner
		})
		cash := l.account(t, "1000", "Cash", domain.Asset)
		sales := l.account(t, "4000", "Sales", domain.Revenue)
		d := l.draft(t, "2024-01-15", dr(cash.AccountID, "5"), cr(sales.AccountID, "4"))

		_, err := l.Posting.PostEntry(ctx, testTenant, d.EntryID, testActor)
		assert.ErrorIs(t, err, apperrors.ErrUnbalancedEntry)
		assert.Equal(t, int32(1), runner.attempts.Load())
	})
}

func TestPostEntry_SinkFailuresDoNotRollBack(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	cash := l.account(t, "1000", "Cash", domain.Asset)
	sales := l.account(t, "4000", "Sales", domain.Revenue)
	d := l.draft(t, "2024-01-15", dr(cash.AccountID, "7"), cr(sales.AccountID, "7"))

	l.audit.ExpectedCalls, l.audit.Calls = nil, nil
	l.audit.On("Record", mock.Anything, mock.Anything).Return(errors.New("audit store down"))
	l.notifier.ExpectedCalls, l.notifier.Calls = nil, nil
	l.notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("posthog down"))

	posted, err := l.Posting.PostEntry(ctx, testTenant, d.EntryID, testActor)
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, posted.Status)
	assert.True(t, l.balance(t, cash.AccountID).Equal(dec("7")))
	l.audit.AssertNumberOfCalls(t, "Record", 1)
	l.notifier.AssertNumberOfCalls(t, "Notify", 1)
}
