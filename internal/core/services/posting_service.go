package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// LedgerWriterDeps are the collaborators shared by the posting and reversal engines.
type LedgerWriterDeps struct {
	TxRunner portsrepo.TxRunner
	Scale    int32
	Retry    RetryPolicy
	// Notifier receives posted and reversed events. Optional.
	Notifier portssvc.Notifier
}

type postingService struct {
	BaseService
	deps LedgerWriterDeps
}

var _ portssvc.PostingSvc = (*postingService)(nil)

// NewPostingService creates the posting engine, the only writer of account balances.
func NewPostingService(deps LedgerWriterDeps, opts ...ServiceOption) *postingService {
	return &postingService{
		BaseService: newBaseService(opts),
		deps:        deps,
	}
}

// PostEntry moves a balanced draft to POSTED and applies its lines to the account balances.
func (s *postingService) PostEntry(ctx context.Context, tenantID string, entryID string, actorID string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.deps.Retry.run(ctx, func(ctx context.Context) error {
		return s.deps.TxRunner.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
			entry, err := tx.LockEntry(ctx, tenantID, entryID)
			if err != nil {
				return err
			}
			if err := postInTx(ctx, tx, entry, s.deps.Scale, actorID, s.Now()); err != nil {
				return err
			}
			posted = entry
			return nil
		})
	})
	if err != nil {
		if isExpectedError(err) {
			s.LogInfo(ctx, "Entry was not posted", slog.String("entry_id", entryID), slog.String("reason", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Entry posted",
		slog.String("entry_id", posted.EntryID),
		slog.Int64("entry_number", posted.EntryNumber),
		slog.String("amount", posted.TotalDebit.String()))
	s.deps.afterCommit(ctx, &s.BaseService, domain.AuditFact{
		Action:     domain.AuditPost,
		EntityType: domain.EntityJournalEntry,
		EntityID:   posted.EntryID,
		TenantID:   tenantID,
		ActorID:    actorID,
		Details: map[string]any{
			"entryNumber": posted.EntryNumber,
			"totalDebit":  posted.TotalDebit.String(),
		},
	}, domain.EventEntryPosted, posted)
	return posted, nil
}

// postInTx runs the posting rules on an entry already locked by tx. Account
// locks are taken in ascending id order after the entry lock.
func postInTx(ctx context.Context, tx portsrepo.LedgerTx, entry *domain.JournalEntry, scale int32, actorID string, now time.Time) error {
	if err := entry.CheckPostable(scale); err != nil {
		return fmt.Errorf("entry #%d: %w", entry.EntryNumber, err)
	}

	ids := entry.AccountIDs()
	accounts, err := tx.LockAccounts(ctx, entry.TenantID, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok || acc.TenantID != entry.TenantID {
			return apperrors.NewNotFoundError("account " + id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountInactive, acc.AccountNumber)
		}
	}

	if err := entry.Post(scale, actorID, now); err != nil {
		return err
	}
	if err := tx.ApplyBalanceChanges(ctx, entry.BalanceChanges(), actorID, now); err != nil {
		return err
	}
	return tx.UpdateEntryStatus(ctx, *entry)
}

// afterCommit invalidates cached reports, then hands off audit and notification.
func (d LedgerWriterDeps) afterCommit(ctx context.Context, base *BaseService, fact domain.AuditFact, eventName string, entry *domain.JournalEntry) {
	base.InvalidateReports(fact.TenantID)
	base.RecordAudit(ctx, fact)
	notifyEvent(ctx, d.Notifier, domain.LedgerEvent{
		Name:        eventName,
		TenantID:    fact.TenantID,
		ActorID:     fact.ActorID,
		EntryID:     entry.EntryID,
		EntryNumber: entry.EntryNumber,
		Amount:      entry.TotalDebit,
		OccurredAt:  base.Now(),
	})
}
