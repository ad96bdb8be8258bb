package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

func TestReverseEntry_DataEntryError(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	cash := l.account(t, "1000", "Cash", domain.Asset)
	sales := l.account(t, "4000", "Sales", domain.Revenue)
	original := l.post(t, "2024-01-15", dr(cash.AccountID, "500.00"), cr(sales.AccountID, "500.00"))

	reversal, err := l.Reversal.ReverseEntry(ctx, testTenant, original.EntryID, dto.ReverseEntryRequest{Reason: "data entry error"}, testActor)
	require.NoError(t, err)

	assert.Equal(t, domain.Posted, reversal.Status)
	assert.Equal(t, original.EntryID, reversal.OriginalEntryID)
	assert.Equal(t, original.EntryNumber+1, reversal.EntryNumber)
	assert.Equal(t, "Reversal of #1: test entry", reversal.Description)
	assert.Equal(t, domain.DateOnly(testNow), reversal.EntryDate)
	require.Len(t, reversal.Lines, 2)
	assert.Equal(t, cash.AccountID, reversal.Lines[0].AccountID)
	assert.True(t, reversal.Lines[0].Credit.Equal(dec("500.00")))
	assert.True(t, reversal.Lines[0].Debit.IsZero())
	assert.Equal(t, sales.AccountID, reversal.Lines[1].AccountID)
	assert.True(t, reversal.Lines[1].Debit.Equal(dec("500.00")))

	stored, err := l.Journal.GetEntry(ctx, testTenant, original.EntryID)
	require.NoError(t, err)
	assert.Equal(t, domain.Reversed, stored.Status)
	assert.Equal(t, reversal.EntryID, stored.ReversedBy)
	assert.Equal(t, "data entry error", stored.ReversalReason)
	require.NotNil(t, stored.ReversedAt)

	assert.True(t, l.balance(t, cash.AccountID).IsZero())
	assert.True(t, l.balance(t, sales.AccountID).IsZero())

	l.notifier.AssertCalled(t, "Notify", mock.Anything, mock.MatchedBy(func(e domain.LedgerEvent) bool {
		return e.Name == domain.EventEntryReversed && e.EntryID == reversal.EntryID
	}))
	l.audit.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(f domain.AuditFact) bool {
		return f.Action == domain.AuditReverse && f.EntityID == original.EntryID
	}))
}

func TestReverseEntry_RoundTripRestoresBalances(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	cash := l.account(t, "1000", "Cash", domain.Asset)
	bank := l.account(t, "1010", "Bank", domain.Asset)
	rent := l.account(t, "5000", "Rent", domain.Expense)
	loan := l.account(t, "2500", "Loan", domain.Liability)
	l.post(t, "2024-01-01", dr(cash.AccountID, "1000"), cr(loan.AccountID, "1000"))

	before := map[string]string{}
	for _, id := range []string{cash.AccountID, bank.AccountID, rent.AccountID, loan.AccountID} {
		before[id] = l.balance(t, id).String()
	}

	e := l.post(t, "2024-01-05",
		dr(rent.AccountID, "300.10"),
		dr(bank.AccountID, "99.90"),
		cr(cash.AccountID, "250.00"),
		cr(loan.AccountID, "150.00"),
	)
	_, err := l.Reversal.ReverseEntry(ctx, testTenant, e.EntryID, dto.ReverseEntryRequest{Reason: "duplicate"}, testActor)
	require.NoError(t, err)

	for id, want := range before {
		assert.True(t, dec(want).Equal(l.balance(t, id)), "account %s", id)
	}
}

func TestReverseEntry_Rules(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	cash := l.account(t, "1000", "Cash", domain.Asset)
	sales := l.account(t, "4000", "Sales", domain.Revenue)

	t.Run("draft cannot be reversed", func(t *testing.T) {
		d := l.draft(t, "2024-01-15", dr(cash.AccountID, "1"), cr(sales.AccountID, "1"))
		_, err := l.Reversal.ReverseEntry(ctx, testTenant, d.EntryID, dto.ReverseEntryRequest{Reason: "x"}, testActor)
		assert.ErrorIs(t, err, apperrors.ErrEntryNotPosted)
	})

	t.Run("reason is required", func(t *testing.T) {
		e := l.post(t, "2024-01-15", dr(cash.AccountID, "1"), cr(sales.AccountID, "1"))
		_, err := l.Reversal.ReverseEntry(ctx, testTenant, e.EntryID, dto.ReverseEntryRequest{Reason: "  "}, testActor)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("at most one reversal", func(t *testing.T) {
		e := l.post(t, "2024-01-15", dr(cash.AccountID, "1"), cr(sales.AccountID, "1"))
		rev, err := l.Reversal.ReverseEntry(ctx, testTenant, e.EntryID, dto.ReverseEntryRequest{Reason: "x"}, testActor)
		require.NoError(t, err)
		_, err = l.Reversal.ReverseEntry(ctx, testTenant, e.EntryID, dto.ReverseEntryRequest{Reason: "again"}, testActor)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyReversed)

		// The reversal itself is an ordinary posted entry.
		revrev, err := l.Reversal.ReverseEntry(ctx, testTenant, rev.EntryID, dto.ReverseEntryRequest{Reason: "undo"}, testActor)
		require.NoError(t, err)
		assert.Equal(t, rev.EntryID, revrev.OriginalEntryID)
	})

	t.Run("date before original", func(t *testing.T) {
		e := l.post(t, "2024-03-10", dr(cash.AccountID, "1"), cr(sales.AccountID, "1"))
		early := date("2024-03-09")
		_, err := l.Reversal.ReverseEntry(ctx, testTenant, e.EntryID, dto.ReverseEntryRequest{Reason: "x", Date: &early}, testActor)
		assert.ErrorIs(t, err, apperrors.ErrInvalidReversalDate)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		stored, err := l.Journal.GetEntry(ctx, testTenant, e.EntryID)
		require.NoError(t, err)
		assert.Equal(t, domain.Posted, stored.Status)
	})

	t.Run("explicit date", func(t *testing.T) {
		e := l.post(t, "2024-03-10", dr(cash.AccountID, "1"), cr(sales.AccountID, "1"))
		on := date("2024-03-12").Add(15 * time.Hour)
		rev, err := l.Reversal.ReverseEntry(ctx, testTenant, e.EntryID, dto.ReverseEntryRequest{Reason: "x", Date: &on}, testActor)
		require.NoError(t, err)
		assert.Equal(t, date("2024-03-12"), rev.EntryDate)
	})

	t.Run("original dated after today keeps its date", func(t *testing.T) {
		e := l.post(t, "2024-12-31", dr(cash.AccountID, "1"), cr(sales.AccountID, "1"))
		rev, err := l.Reversal.ReverseEntry(ctx, testTenant, e.EntryID, dto.ReverseEntryRequest{Reason: "x"}, testActor)
		require.NoError(t, err)
		assert.Equal(t, date("2024-12-31"), rev.EntryDate)
	})
}

func TestReverseEntry_InactiveAccountBlocksUntilReactivated(t *testing.T) {
	ctx := context.Background()
	l := newLedger(t)
	cash := l.account(t, "1000", "Cash", domain.Asset)
	sales := l.account(t, "4000", "Sales", domain.Revenue)
	original := l.post(t, "2024-01-15", dr(cash.AccountID, "80"), cr(sales.AccountID, "80"))
	require.NoError(t, l.Account.DeactivateAccount(ctx, testTenant, sales.AccountID, testActor))

	_, err := l.Reversal.ReverseEntry(ctx, testTenant, original.EntryID, dto.ReverseEntryRequest{Reason: "wrong customer"}, testActor)
	assert.ErrorIs(t, err, apperrors.ErrAccountInactive)

	stored, err := l.Journal.GetEntry(ctx, testTenant, original.EntryID)
	require.NoError(t, err)
	assert.Equal(t, domain.Posted, stored.Status)
	assert.Empty(t, stored.ReversedBy)
	assert.True(t, l.balance(t, sales.AccountID).Equal(dec("-80")))

	require.NoError(t, l.Account.ActivateAccount(ctx, testTenant, sales.AccountID, testActor))
	reversal, err := l.Reversal.ReverseEntry(ctx, testTenant, original.EntryID, dto.ReverseEntryRequest{Reason: "wrong customer"}, testActor)
	require.NoError(t, err)
	assert.Equal(t, original.EntryID, reversal.OriginalEntryID)
	assert.True(t, l.balance(t, sales.AccountID).IsZero())
}
