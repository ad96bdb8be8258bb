package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalReader defines read operations for journal entries. Entries are returned with their lines.
type JournalReader interface {
	FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, tenantID string, filter domain.EntryFilter) ([]domain.JournalEntry, bool, error)
}

// JournalRepositoryFacade combines all journal-related repository operations
type JournalRepositoryFacade interface {
	JournalReader
}

// JournalTx is the entry-mutating part of a unit of work.
type JournalTx interface {
	// LockEntry loads an entry with its lines and locks it for the rest of the unit of work.
	LockEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error)
	// NextEntryNumber reserves the next number of the tenant's sequence. The
	// reservation is rolled back with the unit of work.
	NextEntryNumber(ctx context.Context, tenantID string) (int64, error)
	InsertEntry(ctx context.Context, entry domain.JournalEntry) error
	// UpdateDraft rewrites the header and replaces the lines of a draft.
	UpdateDraft(ctx context.Context, entry domain.JournalEntry) error
	// UpdateEntryStatus persists the status together with the posting and reversal stamps.
	UpdateEntryStatus(ctx context.Context, entry domain.JournalEntry) error
}
