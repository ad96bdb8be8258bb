package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft     EntryStatus = "DRAFT"
	Posted    EntryStatus = "POSTED"
	Cancelled EntryStatus = "CANCELLED"
	Reversed  EntryStatus = "REVERSED"
)

// entryTransitions is the complete set of legal status changes.
var entryTransitions = map[EntryStatus][]EntryStatus{
	Draft:  {Posted, Cancelled},
	Posted: {Reversed},
}

// IsValid reports whether s is a known status.
func (s EntryStatus) IsValid() bool {
	switch s {
	case Draft, Posted, Cancelled, Reversed:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	for _, allowed := range entryTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo returns next if the move is legal, otherwise the state-conflict
// error that describes why it is not.
func (s EntryStatus) TransitionTo(next EntryStatus) (EntryStatus, error) {
	if s.CanTransitionTo(next) {
		return next, nil
	}
	switch next {
	case Posted, Cancelled:
		return s, fmt.Errorf("%w: status is %s", apperrors.ErrEntryNotDraft, s)
	case Reversed:
		if s == Reversed {
			return s, apperrors.ErrAlreadyReversed
		}
		return s, fmt.Errorf("%w: status is %s", apperrors.ErrEntryNotPosted, s)
	}
	return s, fmt.Errorf("%w: cannot move entry from %s to %s", apperrors.ErrValidation, s, next)
}

// IsReportable reports whether entries in this status count towards reports and balances.
func (s EntryStatus) IsReportable() bool {
	return s == Posted || s == Reversed
}

// JournalEntry is a dated set of debit and credit lines.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`
	TenantID    string        `json:"tenantID"`
	EntryNumber int64         `json:"entryNumber"` // gapless per tenant, assigned at draft creation
	EntryDate   time.Time     `json:"entryDate"`
	Description string        `json:"description"`
	Reference   string        `json:"reference"`
	Status      EntryStatus   `json:"status"`
	Lines       []JournalLine `json:"lines"`

	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`

	PostedBy string     `json:"postedBy,omitempty"`
	PostedAt *time.Time `json:"postedAt,omitempty"`

	// ReversedBy is the id of the entry that cancels this one.
	ReversedBy     string     `json:"reversedBy,omitempty"`
	ReversedAt     *time.Time `json:"reversedAt,omitempty"`
	ReversalReason string     `json:"reversalReason,omitempty"`
	// OriginalEntryID is set on a reversal entry and points at the entry it cancels.
	OriginalEntryID string `json:"originalEntryID,omitempty"`

	AuditFields
}

// RecomputeTotals derives TotalDebit and TotalCredit from the lines.
func (e *JournalEntry) RecomputeTotals() {
	debit, credit := decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	e.TotalDebit = debit
	e.TotalCredit = credit
}

// CheckPostable verifies the entry may move to POSTED: it must be a draft whose
// lines are well formed and balance exactly.
func (e *JournalEntry) CheckPostable(scale int32) error {
	if _, err := e.Status.TransitionTo(Posted); err != nil {
		return err
	}
	if err := ValidateLines(e.Lines, scale); err != nil {
		return err
	}
	e.RecomputeTotals()
	if !e.TotalDebit.Round(scale).Equal(e.TotalCredit.Round(scale)) {
		return &apperrors.UnbalancedEntryError{Debit: e.TotalDebit, Credit: e.TotalCredit}
	}
	return nil
}

// Post moves a balanced draft to POSTED and stamps the posting actor.
func (e *JournalEntry) Post(scale int32, actorID string, at time.Time) error {
	if err := e.CheckPostable(scale); err != nil {
		return err
	}
	e.Status = Posted
	e.PostedBy = actorID
	e.PostedAt = &at
	e.LastUpdatedAt = at
	e.LastUpdatedBy = actorID
	return nil
}

// Cancel abandons a draft.
func (e *JournalEntry) Cancel(actorID string, at time.Time) error {
	next, err := e.Status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}
	e.Status = next
	e.LastUpdatedAt = at
	e.LastUpdatedBy = actorID
	return nil
}

// MarkReversed links a posted entry to the entry that reverses it.
func (e *JournalEntry) MarkReversed(reversalID, reason, actorID string, at time.Time) error {
	if e.ReversedBy != "" {
		return apperrors.ErrAlreadyReversed
	}
	next, err := e.Status.TransitionTo(Reversed)
	if err != nil {
		return err
	}
	e.Status = next
	e.ReversedBy = reversalID
	e.ReversedAt = &at
	e.ReversalReason = reason
	e.LastUpdatedAt = at
	e.LastUpdatedBy = actorID
	return nil
}

// AccountIDs returns the distinct accounts referenced by the lines in ascending order.
func (e *JournalEntry) AccountIDs() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	ids := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	sort.Strings(ids)
	return ids
}

// BalanceChanges sums debit minus credit per account.
func (e *JournalEntry) BalanceChanges() map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal)
	for _, l := range e.Lines {
		changes[l.AccountID] = changes[l.AccountID].Add(l.SignedAmount())
	}
	return changes
}

// EntrySortField selects the ordering of ListEntries.
type EntrySortField string

const (
	SortByDate        EntrySortField = "date"
	SortByEntryNumber EntrySortField = "entryNumber"
	SortByAmount      EntrySortField = "amount"
)

// IsValid reports whether f is a supported sort field.
func (f EntrySortField) IsValid() bool {
	return f == SortByDate || f == SortByEntryNumber || f == SortByAmount
}

// EntryFilter narrows ListEntries. Zero values mean "any".
type EntryFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	AccountID string
	Status    EntryStatus
	MinAmount *decimal.Decimal // compared against TotalDebit
	MaxAmount *decimal.Decimal
	Query     string // case-insensitive match on description or reference
	SortBy    EntrySortField
	SortDesc  bool
	Limit     int
	Offset    int
}
