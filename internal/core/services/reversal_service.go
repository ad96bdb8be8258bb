package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

type reversalService struct {
	BaseService
	deps LedgerWriterDeps
}

var _ portssvc.ReversalSvc = (*reversalService)(nil)

// NewReversalService creates the reversal engine.
func NewReversalService(deps LedgerWriterDeps, opts ...ServiceOption) *reversalService {
	return &reversalService{
		BaseService: newBaseService(opts),
		deps:        deps,
	}
}

// ReverseEntry posts a mirror of a posted entry and marks the original REVERSED,
// all in one unit of work. It returns the reversal entry.
func (s *reversalService) ReverseEntry(ctx context.Context, tenantID string, entryID string, req dto.ReverseEntryRequest, actorID string) (*domain.JournalEntry, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	var reversal, original *domain.JournalEntry
	err := s.deps.Retry.run(ctx, func(ctx context.Context) error {
		return s.deps.TxRunner.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
			orig, err := tx.LockEntry(ctx, tenantID, entryID)
			if err != nil {
				return err
			}
			if orig.ReversedBy != "" || orig.Status == domain.Reversed {
				return fmt.Errorf("%w: entry #%d", apperrors.ErrAlreadyReversed, orig.EntryNumber)
			}
			if orig.Status != domain.Posted {
				return fmt.Errorf("%w: entry #%d is %s", apperrors.ErrEntryNotPosted, orig.EntryNumber, orig.Status)
			}

			now := s.Now()
			date, err := reversalDate(orig.EntryDate, req.Date, now)
			if err != nil {
				return err
			}

			number, err := tx.NextEntryNumber(ctx, tenantID)
			if err != nil {
				return err
			}
			rev := buildReversal(orig, number, date, actorID, now)
			if err := tx.InsertEntry(ctx, rev); err != nil {
				return err
			}
			if err := postInTx(ctx, tx, &rev, s.deps.Scale, actorID, now); err != nil {
				return err
			}

			if err := orig.MarkReversed(rev.EntryID, reason, actorID, now); err != nil {
				return err
			}
			if err := tx.UpdateEntryStatus(ctx, *orig); err != nil {
				return err
			}
			reversal, original = &rev, orig
			return nil
		})
	})
	if err != nil {
		if isExpectedError(err) {
			s.LogInfo(ctx, "Entry was not reversed", slog.String("entry_id", entryID), slog.String("reason", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to reverse entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Entry reversed",
		slog.String("entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.Int64("reversal_entry_number", reversal.EntryNumber))
	s.deps.afterCommit(ctx, &s.BaseService, domain.AuditFact{
		Action:     domain.AuditReverse,
		EntityType: domain.EntityJournalEntry,
		EntityID:   original.EntryID,
		TenantID:   tenantID,
		ActorID:    actorID,
		Details: map[string]any{
			"reversalEntryID":     reversal.EntryID,
			"reversalEntryNumber": reversal.EntryNumber,
			"reason":              reason,
		},
	}, domain.EventEntryReversed, reversal)
	return reversal, nil
}

// reversalDate defaults to today, never earlier than the original date.
func reversalDate(original time.Time, requested *time.Time, now time.Time) (time.Time, error) {
	original = domain.DateOnly(original)
	if requested != nil && !requested.IsZero() {
		date := domain.DateOnly(*requested)
		if date.Before(original) {
			return time.Time{}, fmt.Errorf("%w: %s is before %s", apperrors.ErrInvalidReversalDate,
				date.Format(time.DateOnly), original.Format(time.DateOnly))
		}
		return date, nil
	}
	today := domain.DateOnly(now)
	if today.Before(original) {
		return original, nil
	}
	return today, nil
}

// buildReversal creates the mirror draft of orig.
func buildReversal(orig *domain.JournalEntry, number int64, date time.Time, actorID string, now time.Time) domain.JournalEntry {
	rev := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		TenantID:        orig.TenantID,
		EntryNumber:     number,
		EntryDate:       date,
		Description:     fmt.Sprintf("Reversal of #%d: %s", orig.EntryNumber, orig.Description),
		Reference:       orig.Reference,
		Status:          domain.Draft,
		OriginalEntryID: orig.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	rev.Lines = make([]domain.JournalLine, len(orig.Lines))
	for i, l := range orig.Lines {
		m := l.Mirrored()
		m.LineID = uuid.NewString()
		m.EntryID = rev.EntryID
		rev.Lines[i] = m
	}
	rev.RecomputeTotals()
	return rev
}
