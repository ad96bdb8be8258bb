package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error kinds. Callers branch on these with errors.Is; every specific error
// below matches exactly one kind.
var (
	ErrNotFound    = errors.New("resource not found")
	ErrValidation  = errors.New("validation failed")
	ErrConflict    = errors.New("state conflict")
	ErrConcurrency = errors.New("concurrent modification, retry the operation")
	ErrIntegrity   = errors.New("ledger integrity violation")
)

// Validation kind.
var (
	ErrUnbalancedEntry        = newKindError(ErrValidation, "journal entry does not balance")
	ErrTooFewLines            = newKindError(ErrValidation, "journal entry must have at least two lines")
	ErrInvalidLineShape       = newKindError(ErrValidation, "invalid journal line")
	ErrDuplicateAccountNumber = newKindError(ErrValidation, "account number already exists")
	ErrParentNotFound         = newKindError(ErrValidation, "parent account not found")
	ErrParentCycle            = newKindError(ErrValidation, "account hierarchy would contain a cycle")
	ErrInvalidReversalDate    = newKindError(ErrValidation, "reversal date is before the original entry date")
)

// State-conflict kind.
var (
	ErrEntryNotDraft     = newKindError(ErrConflict, "journal entry is not a draft")
	ErrEntryNotPosted    = newKindError(ErrConflict, "journal entry is not posted")
	ErrAlreadyReversed   = newKindError(ErrConflict, "journal entry has already been reversed")
	ErrAccountInactive   = newKindError(ErrConflict, "account is inactive")
	ErrAccountHasHistory = newKindError(ErrConflict, "account has journal history or child accounts")
)

// kindError is a sentinel that also reports itself as its kind.
type kindError struct {
	msg  string
	kind error
}

func newKindError(kind error, msg string) error {
	return &kindError{msg: msg, kind: kind}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.kind }

// UnbalancedEntryError carries the totals of an entry rejected at posting.
type UnbalancedEntryError struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("%s: debit %s, credit %s", ErrUnbalancedEntry.Error(), e.Debit.String(), e.Credit.String())
}

func (e *UnbalancedEntryError) Is(target error) bool {
	return target == ErrUnbalancedEntry || target == ErrValidation
}

// IntegrityError is raised when a report re-verification fails.
type IntegrityError struct {
	Report string
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s in %s: %s", ErrIntegrity.Error(), e.Report, e.Detail)
}

func (e *IntegrityError) Is(target error) bool { return target == ErrIntegrity }

// NewNotFoundError returns an ErrNotFound carrying a description of what was missing.
func NewNotFoundError(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}
