package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

const entryColumns = `entry_id, tenant_id, entry_number, entry_date, description, reference, status,
	total_debit, total_credit, posted_by, posted_at, reversed_by, reversed_at, reversal_reason,
	original_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_no, account_id, debit, credit, cost_center_id, project_id, description`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row rowScanner) (domain.JournalEntry, error) {
	var e domain.JournalEntry
	var postedBy, reversedBy, reversalReason, originalID *string
	err := row.Scan(
		&e.EntryID,
		&e.TenantID,
		&e.EntryNumber,
		&e.EntryDate,
		&e.Description,
		&e.Reference,
		&e.Status,
		&e.TotalDebit,
		&e.TotalCredit,
		&postedBy,
		&e.PostedAt,
		&reversedBy,
		&e.ReversedAt,
		&reversalReason,
		&originalID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	e.PostedBy = derefString(postedBy)
	e.ReversedBy = derefString(reversedBy)
	e.ReversalReason = derefString(reversalReason)
	e.OriginalEntryID = derefString(originalID)
	e.EntryDate = domain.DateOnly(e.EntryDate)
	return e, err
}

func scanLine(row rowScanner) (domain.JournalLine, error) {
	var l domain.JournalLine
	var costCenter, project, description *string
	err := row.Scan(
		&l.LineID,
		&l.EntryID,
		&l.LineNo,
		&l.AccountID,
		&l.Debit,
		&l.Credit,
		&costCenter,
		&project,
		&description,
	)
	l.CostCenterID = derefString(costCenter)
	l.ProjectID = derefString(project)
	l.Description = derefString(description)
	return l, err
}

// findEntry loads one entry with its lines. A non-empty lockClause such as
// "FOR UPDATE" is appended to the header query.
func findEntry(ctx context.Context, q querier, tenantID, entryID, lockClause string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE tenant_id = $1 AND entry_id = $2 ` + lockClause
	entry, err := scanEntry(q.QueryRow(ctx, query, tenantID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry " + entryID)
		}
		return nil, mapPgError(err, "failed to find journal entry "+entryID)
	}
	lines, err := loadLines(ctx, q, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entryID]
	return &entry, nil
}

// loadLines returns the lines of the given entries keyed by entry id, in line order.
func loadLines(ctx context.Context, q querier, entryIDs []string) (map[string][]domain.JournalLine, error) {
	out := make(map[string][]domain.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_no;`
	rows, err := q.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to query journal lines")
	}
	defer rows.Close()
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		out[l.EntryID] = append(out[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return out, nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return findEntry(ctx, r.Pool, tenantID, entryID, "")
}

// ListEntries returns one page of matching entries and whether more follow.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, tenantID string, filter domain.EntryFilter) ([]domain.JournalEntry, bool, error) {
	where := []string{"e.tenant_id = $1"}
	args := []any{tenantID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, strings.ReplaceAll(cond, "$?", fmt.Sprintf("$%d", len(args))))
	}
	if filter.Status != "" {
		add("e.status = $?", filter.Status)
	}
	if filter.FromDate != nil {
		add("e.entry_date >= $?", domain.DateOnly(*filter.FromDate))
	}
	if filter.ToDate != nil {
		add("e.entry_date <= $?", domain.DateOnly(*filter.ToDate))
	}
	if filter.MinAmount != nil {
		add("e.total_debit >= $?", *filter.MinAmount)
	}
	if filter.MaxAmount != nil {
		add("e.total_debit <= $?", *filter.MaxAmount)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		add("(e.description ILIKE $? OR e.reference ILIKE $?)", "%"+escapeLike(q)+"%")
	}
	if filter.AccountID != "" {
		add("EXISTS (SELECT 1 FROM journal_lines l WHERE l.entry_id = e.entry_id AND l.account_id = $?)", filter.AccountID)
	}

	dir := "ASC"
	if filter.SortDesc {
		dir = "DESC"
	}
	var order string
	switch filter.SortBy {
	case domain.SortByAmount:
		order = fmt.Sprintf("e.total_debit %s, e.entry_number %s", dir, dir)
	case domain.SortByEntryNumber:
		order = "e.entry_number " + dir
	default:
		order = fmt.Sprintf("e.entry_date %s, e.entry_number %s", dir, dir)
	}

	query := `SELECT ` + prefixColumns("e.", entryColumns) + ` FROM journal_entries e WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY ` + order
	limit := filter.Limit
	if limit > 0 {
		limit++ // one extra row tells whether another page exists
	}
	query += limitOffset(&args, limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, false, mapPgError(err, "failed to list journal entries")
	}
	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, false, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("error iterating journal entry rows: %w", err)
	}

	hasMore := filter.Limit > 0 && len(entries) > filter.Limit
	if hasMore {
		entries = entries[:filter.Limit]
	}

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	lines, err := loadLines(ctx, r.Pool, ids)
	if err != nil {
		return nil, false, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].EntryID]
	}
	return entries, hasMore, nil
}

func prefixColumns(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = prefix + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
