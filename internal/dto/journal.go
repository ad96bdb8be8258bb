package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineRequest is one debit or credit line of a draft.
type LineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Debit        decimal.Decimal `json:"debit" binding:"money"`
	Credit       decimal.Decimal `json:"credit" binding:"money"`
	CostCenterID string          `json:"costCenterID"`
	ProjectID    string          `json:"projectID"`
	Description  string          `json:"description"`
}

// CreateDraftRequest defines the data needed to create a draft journal entry.
// Body dates are accepted as YYYY-MM-DD or RFC3339.
type CreateDraftRequest struct {
	Date        time.Time     `json:"date" binding:"required"`
	Description string        `json:"description" binding:"max=1000"`
	Reference   string        `json:"reference" binding:"max=255"`
	Lines       []LineRequest `json:"lines" binding:"required,dive"`
}

// UpdateDraftRequest patches a draft. Nil fields are left unchanged; a non-nil
// Lines replaces every line of the draft.
type UpdateDraftRequest struct {
	Date        *time.Time    `json:"date"`
	Description *string       `json:"description" binding:"omitempty,max=1000"`
	Reference   *string       `json:"reference" binding:"omitempty,max=255"`
	Lines       []LineRequest `json:"lines" binding:"omitempty,dive"`
}

// ReverseEntryRequest asks for a mirror entry cancelling a posted one.
type ReverseEntryRequest struct {
	Reason string     `json:"reason" binding:"required,max=1000"`
	Date   *time.Time `json:"date"` // defaults to today, never before the original date
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	FromDate  *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	ToDate    *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	AccountID string     `form:"account_id"`
	Status    string     `form:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED REVERSED"`
	MinAmount string     `form:"min_amount"`
	MaxAmount string     `form:"max_amount"`
	Query     string     `form:"q"`
	SortBy    string     `form:"sort,default=date" binding:"omitempty,oneof=date entryNumber amount"`
	Order     string     `form:"order,default=desc" binding:"omitempty,oneof=asc desc"`
	Limit     int        `form:"limit,default=20" binding:"min=0,max=200"`
	NextToken *string    `form:"nextToken"`
}

// LineResponse defines the data returned for a journal line.
type LineResponse struct {
	LineID       string          `json:"lineID"`
	LineNo       int             `json:"lineNo"`
	AccountID    string          `json:"accountID"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenterID string          `json:"costCenterID,omitempty"`
	ProjectID    string          `json:"projectID,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID         string             `json:"entryID"`
	EntryNumber     int64              `json:"entryNumber"`
	Date            time.Time          `json:"date"`
	Description     string             `json:"description"`
	Reference       string             `json:"reference"`
	Status          domain.EntryStatus `json:"status"`
	TotalDebit      decimal.Decimal    `json:"totalDebit"`
	TotalCredit     decimal.Decimal    `json:"totalCredit"`
	Lines           []LineResponse     `json:"lines"`
	PostedBy        string             `json:"postedBy,omitempty"`
	PostedAt        *time.Time         `json:"postedAt,omitempty"`
	ReversedBy      string             `json:"reversedBy,omitempty"`
	ReversedAt      *time.Time         `json:"reversedAt,omitempty"`
	ReversalReason  string             `json:"reversalReason,omitempty"`
	OriginalEntryID string             `json:"originalEntryID,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	CreatedBy       string             `json:"createdBy"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy   string             `json:"lastUpdatedBy"`
}

// ListEntriesResponse wraps a page of entries and the token of the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToDomainLines converts request lines into numbered domain lines.
func ToDomainLines(reqs []LineRequest) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqs))
	for i, r := range reqs {
		lines[i] = domain.JournalLine{
			LineNo:       i + 1,
			AccountID:    r.AccountID,
			Debit:        r.Debit,
			Credit:       r.Credit,
			CostCenterID: r.CostCenterID,
			ProjectID:    r.ProjectID,
			Description:  r.Description,
		}
	}
	return lines
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	lines := make([]LineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = LineResponse{
			LineID:       l.LineID,
			LineNo:       l.LineNo,
			AccountID:    l.AccountID,
			Debit:        l.Debit,
			Credit:       l.Credit,
			CostCenterID: l.CostCenterID,
			ProjectID:    l.ProjectID,
			Description:  l.Description,
		}
	}
	return EntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		Date:            e.EntryDate,
		Description:     e.Description,
		Reference:       e.Reference,
		Status:          e.Status,
		TotalDebit:      e.TotalDebit,
		TotalCredit:     e.TotalCredit,
		Lines:           lines,
		PostedBy:        e.PostedBy,
		PostedAt:        e.PostedAt,
		ReversedBy:      e.ReversedBy,
		ReversedAt:      e.ReversedAt,
		ReversalReason:  e.ReversalReason,
		OriginalEntryID: e.OriginalEntryID,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
		LastUpdatedAt:   e.LastUpdatedAt,
		LastUpdatedBy:   e.LastUpdatedBy,
	}
}

// ToEntryResponses converts a slice of domain.JournalEntry to []EntryResponse.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}
