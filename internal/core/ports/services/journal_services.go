package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	GetEntry(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines the draft lifecycle of journal entries
type JournalWriterSvc interface {
	// CreateDraft stores a new draft and assigns its entry number. Balance is not required yet.
	CreateDraft(ctx context.Context, tenantID string, req dto.CreateDraftRequest, actorID string) (*domain.JournalEntry, error)
	UpdateDraft(ctx context.Context, tenantID string, entryID string, req dto.UpdateDraftRequest, actorID string) (*domain.JournalEntry, error)
	CancelDraft(ctx context.Context, tenantID string, entryID string, actorID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// PostingSvc is the only writer of account balances.
type PostingSvc interface {
	PostEntry(ctx context.Context, tenantID string, entryID string, actorID string) (*domain.JournalEntry, error)
}

// ReversalSvc cancels posted entries with mirror entries.
type ReversalSvc interface {
	// ReverseEntry posts the mirror of a posted entry and marks the original REVERSED.
	// It returns the new reversal entry.
	ReverseEntry(ctx context.Context, tenantID string, entryID string, req dto.ReverseEntryRequest, actorID string) (*domain.JournalEntry, error)
}
