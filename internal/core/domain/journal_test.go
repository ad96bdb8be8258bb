package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debitLine(account, amount string) domain.JournalLine {
	return domain.JournalLine{AccountID: account, Debit: dec(amount)}
}

func creditLine(account, amount string) domain.JournalLine {
	return domain.JournalLine{AccountID: account, Credit: dec(amount)}
}

func TestEntryStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.EntryStatus
		to      domain.EntryStatus
		wantErr error
	}{
		{name: "draft to posted", from: domain.Draft, to: domain.Posted},
		{name: "draft to cancelled", from: domain.Draft, to: domain.Cancelled},
		{name: "posted to reversed", from: domain.Posted, to: domain.Reversed},
		{name: "posted cannot be posted again", from: domain.Posted, to: domain.Posted, wantErr: apperrors.ErrEntryNotDraft},
		{name: "posted cannot be cancelled", from: domain.Posted, to: domain.Cancelled, wantErr: apperrors.ErrEntryNotDraft},
		{name: "cancelled cannot be posted", from: domain.Cancelled, to: domain.Posted, wantErr: apperrors.ErrEntryNotDraft},
		{name: "reversed cannot be posted", from: domain.Reversed, to: domain.Posted, wantErr: apperrors.ErrEntryNotDraft},
		{name: "draft cannot be reversed", from: domain.Draft, to: domain.Reversed, wantErr: apperrors.ErrEntryNotPosted},
		{name: "cancelled cannot be reversed", from: domain.Cancelled, to: domain.Reversed, wantErr: apperrors.ErrEntryNotPosted},
		{name: "reversed cannot be reversed again", from: domain.Reversed, to: domain.Reversed, wantErr: apperrors.ErrAlreadyReversed},
		{name: "nothing returns to draft", from: domain.Posted, to: domain.Draft, wantErr: apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.TransitionTo(tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestEntryStatus_StateConflictKind(t *testing.T) {
	_, err := domain.Posted.TransitionTo(domain.Cancelled)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
}

func TestJournalLine_Validate(t *testing.T) {
	tests := []struct {
		name    string
		line    domain.JournalLine
		wantErr bool
	}{
		{name: "debit only", line: debitLine("a", "10.00")},
		{name: "credit only", line: creditLine("a", "0.01")},
		{name: "trailing zeros beyond scale are fine", line: debitLine("a", "10.000")},
		{name: "both set", line: domain.JournalLine{AccountID: "a", Debit: dec("1"), Credit: dec("1")}, wantErr: true},
		{name: "neither set", line: domain.JournalLine{AccountID: "a"}, wantErr: true},
		{name: "negative debit", line: debitLine("a", "-5"), wantErr: true},
		{name: "negative credit with debit", line: domain.JournalLine{AccountID: "a", Debit: dec("5"), Credit: dec("-5")}, wantErr: true},
		{name: "too many decimals", line: debitLine("a", "1.005"), wantErr: true},
		{name: "missing account", line: debitLine("", "1"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.Validate(domain.DefaultCurrencyScale)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrInvalidLineShape)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateLines_TooFew(t *testing.T) {
	err := domain.ValidateLines([]domain.JournalLine{debitLine("a", "1")}, domain.DefaultCurrencyScale)
	assert.ErrorIs(t, err, apperrors.ErrTooFewLines)
}

func TestJournalEntry_Post(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	t.Run("balanced draft is posted", func(t *testing.T) {
		e := &domain.JournalEntry{Status: domain.Draft, Lines: []domain.JournalLine{
			debitLine("cash", "500.00"),
			creditLine("sales", "500.00"),
		}}
		require.NoError(t, e.Post(domain.DefaultCurrencyScale, "actor-1", now))
		assert.Equal(t, domain.Posted, e.Status)
		assert.Equal(t, "actor-1", e.PostedBy)
		require.NotNil(t, e.PostedAt)
		assert.True(t, e.PostedAt.Equal(now))
		assert.True(t, e.TotalDebit.Equal(dec("500")))
		assert.True(t, e.TotalCredit.Equal(dec("500")))
	})

	t.Run("unbalanced draft carries totals", func(t *testing.T) {
		e := &domain.JournalEntry{Status: domain.Draft, Lines: []domain.JournalLine{
			debitLine("cash", "500.00"),
			creditLine("sales", "400.00"),
		}}
		err := e.Post(domain.DefaultCurrencyScale, "actor-1", now)
		var unbalanced *apperrors.UnbalancedEntryError
		require.True(t, errors.As(err, &unbalanced))
		assert.True(t, unbalanced.Debit.Equal(dec("500.00")))
		assert.True(t, unbalanced.Credit.Equal(dec("400.00")))
		assert.ErrorIs(t, err, apperrors.ErrUnbalancedEntry)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, domain.Draft, e.Status)
		assert.Nil(t, e.PostedAt)
	})

	t.Run("posting twice fails as not draft", func(t *testing.T) {
		e := &domain.JournalEntry{Status: domain.Draft, Lines: []domain.JournalLine{
			debitLine("cash", "1"),
			creditLine("sales", "1"),
		}}
		require.NoError(t, e.Post(domain.DefaultCurrencyScale, "a", now))
		assert.ErrorIs(t, e.Post(domain.DefaultCurrencyScale, "a", now), apperrors.ErrEntryNotDraft)
	})
}

func TestJournalEntry_MarkReversed(t *testing.T) {
	now := time.Now().UTC()
	e := &domain.JournalEntry{Status: domain.Posted}

	require.NoError(t, e.MarkReversed("rev-1", "data entry error", "actor", now))
	assert.Equal(t, domain.Reversed, e.Status)
	assert.Equal(t, "rev-1", e.ReversedBy)
	assert.Equal(t, "data entry error", e.ReversalReason)

	assert.ErrorIs(t, e.MarkReversed("rev-2", "again", "actor", now), apperrors.ErrAlreadyReversed)

	draft := &domain.JournalEntry{Status: domain.Draft}
	assert.ErrorIs(t, draft.MarkReversed("rev-3", "x", "actor", now), apperrors.ErrEntryNotPosted)
}

func TestJournalEntry_BalanceChangesAndAccounts(t *testing.T) {
	e := &domain.JournalEntry{Lines: []domain.JournalLine{
		debitLine("b", "10"),
		debitLine("a", "5"),
		creditLine("b", "3"),
		creditLine("c", "12"),
	}}

	assert.Equal(t, []string{"a", "b", "c"}, e.AccountIDs())

	changes := e.BalanceChanges()
	assert.True(t, changes["a"].Equal(dec("5")))
	assert.True(t, changes["b"].Equal(dec("7")))
	assert.True(t, changes["c"].Equal(dec("-12")))
}

func TestJournalLine_Mirrored(t *testing.T) {
	l := domain.JournalLine{LineID: "l1", EntryID: "e1", LineNo: 2, AccountID: "cash", Debit: dec("500"), CostCenterID: "cc", ProjectID: "p"}
	m := l.Mirrored()

	assert.Empty(t, m.LineID)
	assert.Empty(t, m.EntryID)
	assert.Equal(t, 2, m.LineNo)
	assert.Equal(t, "cash", m.AccountID)
	assert.True(t, m.Debit.IsZero())
	assert.True(t, m.Credit.Equal(dec("500")))
	assert.Equal(t, "cc", m.CostCenterID)
	assert.Equal(t, "p", m.ProjectID)
	assert.True(t, l.SignedAmount().Add(m.SignedAmount()).IsZero())
}
