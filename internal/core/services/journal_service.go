package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
)

const (
	defaultEntryPageSize = 20
	maxEntryPageSize     = 200
)

// journalService manages journal entries while they are drafts.
type journalService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalRepositoryFacade
	txRunner    portsrepo.TxRunner
	scale       int32
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	accountRepo portsrepo.AccountReader,
	journalRepo portsrepo.JournalRepositoryFacade,
	txRunner portsrepo.TxRunner,
	scale int32,
	opts ...ServiceOption,
) *journalService {
	return &journalService{
		BaseService: newBaseService(opts),
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		txRunner:    txRunner,
		scale:       scale,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateDraft validates the line shapes and accounts, then stores the draft and
// reserves its entry number in one unit of work.
func (s *journalService) CreateDraft(ctx context.Context, tenantID string, req dto.CreateDraftRequest, actorID string) (*domain.JournalEntry, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	lines := dto.ToDomainLines(req.Lines)
	if err := domain.ValidateLines(lines, s.scale); err != nil {
		return nil, err
	}
	if err := s.checkLineAccounts(ctx, tenantID, lines); err != nil {
		return nil, err
	}

	now := s.Now()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		TenantID:    tenantID,
		EntryDate:   domain.DateOnly(req.Date),
		Description: strings.TrimSpace(req.Description),
		Reference:   strings.TrimSpace(req.Reference),
		Status:      domain.Draft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
	entry.Lines = stampLines(entry.EntryID, lines)
	entry.RecomputeTotals()

	err := s.txRunner.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		number, err := tx.NextEntryNumber(ctx, tenantID)
		if err != nil {
			return err
		}
		entry.EntryNumber = number
		return tx.InsertEntry(ctx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create draft entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Draft entry created", slog.String("entry_id", entry.EntryID), slog.Int64("entry_number", entry.EntryNumber))
	s.RecordAudit(ctx, domain.AuditFact{
		Action:     domain.AuditCreate,
		EntityType: domain.EntityJournalEntry,
		EntityID:   entry.EntryID,
		TenantID:   tenantID,
		ActorID:    actorID,
		Details: map[string]any{
			"entryNumber": entry.EntryNumber,
			"lineCount":   len(entry.Lines),
		},
	})
	return &entry, nil
}

// UpdateDraft patches a draft under its row lock.
func (s *journalService) UpdateDraft(ctx context.Context, tenantID string, entryID string, req dto.UpdateDraftRequest, actorID string) (*domain.JournalEntry, error) {
	var newLines []domain.JournalLine
	if req.Lines != nil {
		newLines = dto.ToDomainLines(req.Lines)
		if err := domain.ValidateLines(newLines, s.scale); err != nil {
			return nil, err
		}
		if err := s.checkLineAccounts(ctx, tenantID, newLines); err != nil {
			return nil, err
		}
	}
	if req.Date != nil && req.Date.IsZero() {
		return nil, fmt.Errorf("%w: entry date cannot be empty", apperrors.ErrValidation)
	}

	var updated *domain.JournalEntry
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		entry, err := tx.LockEntry(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return fmt.Errorf("%w: entry #%d is %s", apperrors.ErrEntryNotDraft, entry.EntryNumber, entry.Status)
		}

		if req.Date != nil {
			entry.EntryDate = domain.DateOnly(*req.Date)
		}
		if req.Description != nil {
			entry.Description = strings.TrimSpace(*req.Description)
		}
		if req.Reference != nil {
			entry.Reference = strings.TrimSpace(*req.Reference)
		}
		if newLines != nil {
			entry.Lines = stampLines(entry.EntryID, newLines)
		}
		entry.RecomputeTotals()
		entry.LastUpdatedAt = s.Now()
		entry.LastUpdatedBy = actorID

		if err := tx.UpdateDraft(ctx, *entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		if !isExpectedError(err) {
			s.LogError(ctx, err, "Failed to update draft entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.RecordAudit(ctx, domain.AuditFact{
		Action:     domain.AuditUpdate,
		EntityType: domain.EntityJournalEntry,
		EntityID:   entryID,
		TenantID:   tenantID,
		ActorID:    actorID,
		Details:    map[string]any{"linesReplaced": newLines != nil},
	})
	return updated, nil
}

// CancelDraft moves a draft to CANCELLED. Cancelled entries never affect balances.
func (s *journalService) CancelDraft(ctx context.Context, tenantID string, entryID string, actorID string) (*domain.JournalEntry, error) {
	var cancelled *domain.JournalEntry
	err := s.txRunner.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		entry, err := tx.LockEntry(ctx, tenantID, entryID)
		if err != nil {
			return err
		}
		if err := entry.Cancel(actorID, s.Now()); err != nil {
			return fmt.Errorf("entry #%d: %w", entry.EntryNumber, err)
		}
		if err := tx.UpdateEntryStatus(ctx, *entry); err != nil {
			return err
		}
		cancelled = entry
		return nil
	})
	if err != nil {
		if !isExpectedError(err) {
			s.LogError(ctx, err, "Failed to cancel draft entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Draft entry cancelled", slog.String("entry_id", entryID))
	s.RecordAudit(ctx, domain.AuditFact{
		Action:     domain.AuditCancel,
		EntityType: domain.EntityJournalEntry,
		EntityID:   entryID,
		TenantID:   tenantID,
		ActorID:    actorID,
	})
	return cancelled, nil
}

func (s *journalService) GetEntry(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries returns one page of entries and the token of the following page, if any.
func (s *journalService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	filter := domain.EntryFilter{
		FromDate:  params.FromDate,
		ToDate:    params.ToDate,
		AccountID: params.AccountID,
		Status:    domain.EntryStatus(params.Status),
		Query:     strings.TrimSpace(params.Query),
		SortBy:    domain.EntrySortField(params.SortBy),
		SortDesc:  params.Order != "asc",
		Limit:     params.Limit,
	}
	if filter.SortBy == "" {
		filter.SortBy = domain.SortByDate
	}
	if !filter.SortBy.IsValid() {
		return nil, fmt.Errorf("%w: unsupported sort field %q", apperrors.ErrValidation, params.SortBy)
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultEntryPageSize
	}
	if filter.Limit > maxEntryPageSize {
		filter.Limit = maxEntryPageSize
	}

	var err error
	if filter.MinAmount, err = parseAmountParam("min_amount", params.MinAmount); err != nil {
		return nil, err
	}
	if filter.MaxAmount, err = parseAmountParam("max_amount", params.MaxAmount); err != nil {
		return nil, err
	}

	sortKey := fmt.Sprintf("%s:%t", filter.SortBy, filter.SortDesc)
	if params.NextToken != nil && *params.NextToken != "" {
		offset, err := pagination.DecodeOffsetToken(*params.NextToken, sortKey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.Offset = offset
	}

	entries, hasMore, err := s.journalRepo.ListEntries(ctx, tenantID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{Entries: dto.ToEntryResponses(entries)}
	if hasMore {
		token := pagination.EncodeOffsetToken(sortKey, filter.Offset+len(entries))
		resp.NextToken = &token
	}
	return resp, nil
}

// checkLineAccounts requires every referenced account to exist in the tenant and be active.
func (s *journalService) checkLineAccounts(ctx context.Context, tenantID string, lines []domain.JournalLine) error {
	ids := (&domain.JournalEntry{Lines: lines}).AccountIDs()
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load line accounts")
		return err
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok {
			return apperrors.NewNotFoundError("account " + id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountInactive, acc.AccountNumber)
		}
	}
	return nil
}

// stampLines gives every line a fresh id and links it to the entry.
func stampLines(entryID string, lines []domain.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		l.LineID = uuid.NewString()
		l.EntryID = entryID
		out[i] = l
	}
	return out
}

func parseAmountParam(name, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a decimal number", apperrors.ErrValidation, name)
	}
	return &amount, nil
}

// isExpectedError reports whether err is a caller-facing outcome that needs no error log.
func isExpectedError(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrConflict)
}
