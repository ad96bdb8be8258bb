package domain

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// JournalLine is one debit or credit against an account.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	EntryID      string          `json:"entryID"`
	LineNo       int             `json:"lineNo"`
	AccountID    string          `json:"accountID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenterID string          `json:"costCenterID,omitempty"`
	ProjectID    string          `json:"projectID,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// SignedAmount is the raw effect of the line on its account balance.
func (l JournalLine) SignedAmount() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// Mirrored swaps debit and credit, keeping the account and dimension tags.
func (l JournalLine) Mirrored() JournalLine {
	return JournalLine{
		LineNo:       l.LineNo,
		AccountID:    l.AccountID,
		Debit:        l.Credit,
		Credit:       l.Debit,
		CostCenterID: l.CostCenterID,
		ProjectID:    l.ProjectID,
		Description:  l.Description,
	}
}

// Validate checks the line shape: exactly one of debit or credit is positive,
// neither is negative, and neither has more fractional digits than scale.
func (l JournalLine) Validate(scale int32) error {
	if l.AccountID == "" {
		return fmt.Errorf("%w: account is required", apperrors.ErrInvalidLineShape)
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("%w: amounts must not be negative", apperrors.ErrInvalidLineShape)
	}
	if l.Debit.IsZero() == l.Credit.IsZero() {
		return fmt.Errorf("%w: exactly one of debit or credit must be set", apperrors.ErrInvalidLineShape)
	}
	for _, amt := range []decimal.Decimal{l.Debit, l.Credit} {
		if !amt.Equal(amt.Round(scale)) {
			return fmt.Errorf("%w: amount %s has more than %d decimal places", apperrors.ErrInvalidLineShape, amt.String(), scale)
		}
	}
	return nil
}

// ValidateLines checks the line count and the shape of every line.
func ValidateLines(lines []JournalLine, scale int32) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: got %d", apperrors.ErrTooFewLines, len(lines))
	}
	for i, l := range lines {
		if err := l.Validate(scale); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}
