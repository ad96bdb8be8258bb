package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// reportableStatuses restricts reporting reads to posted history.
const reportableStatuses = `('POSTED', 'REVERSED')`

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) *reportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// AccountActivity sums debits and credits per account over posted entries in [from, to].
func (r *reportingRepository) AccountActivity(ctx context.Context, tenantID string, from *time.Time, to time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT
			a.account_id,
			a.account_number,
			a.name,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.tenant_id = $1
			AND e.status IN ` + reportableStatuses + `
			AND e.entry_date <= $2
			AND ($3::date IS NULL OR e.entry_date >= $3::date)
		GROUP BY a.account_id, a.account_number, a.name, a.account_type
		ORDER BY a.account_number
	`
	var fromArg *time.Time
	if from != nil {
		f := domain.DateOnly(*from)
		fromArg = &f
	}

	rows, err := r.Pool.Query(ctx, query, tenantID, domain.DateOnly(to), fromArg)
	if err != nil {
		return nil, mapPgError(err, "error querying account activity")
	}
	defer rows.Close()

	result := []domain.AccountActivity{}
	for rows.Next() {
		var a domain.AccountActivity
		if err := rows.Scan(
			&a.AccountID,
			&a.AccountNumber,
			&a.AccountName,
			&a.AccountType,
			&a.Debit,
			&a.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning account activity row: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}
	return result, nil
}

// PostedLines returns lines of posted entries ordered by date, entry number and line number.
func (r *reportingRepository) PostedLines(ctx context.Context, tenantID string, filter domain.PostedLineFilter) ([]domain.PostedLine, error) {
	query := `
		SELECT
			e.entry_id,
			e.entry_number,
			e.entry_date,
			l.line_no,
			a.account_id,
			a.account_number,
			a.name,
			a.account_type,
			l.debit,
			l.credit,
			COALESCE(l.cost_center_id, ''),
			COALESCE(l.project_id, ''),
			COALESCE(l.description, '')
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.tenant_id = $1
			AND e.status IN ` + reportableStatuses + `
			AND e.entry_date <= $2
			AND ($3::date IS NULL OR e.entry_date >= $3::date)
			AND ($4 = '' OR l.account_id = $4)
		ORDER BY e.entry_date, e.entry_number, l.line_no
	`
	var fromArg *time.Time
	if filter.From != nil {
		f := domain.DateOnly(*filter.From)
		fromArg = &f
	}

	rows, err := r.Pool.Query(ctx, query, tenantID, domain.DateOnly(filter.To), fromArg, filter.AccountID)
	if err != nil {
		return nil, mapPgError(err, "error querying posted lines")
	}
	defer rows.Close()

	result := []domain.PostedLine{}
	for rows.Next() {
		var l domain.PostedLine
		if err := rows.Scan(
			&l.EntryID,
			&l.EntryNumber,
			&l.EntryDate,
			&l.LineNo,
			&l.AccountID,
			&l.AccountNumber,
			&l.AccountName,
			&l.AccountType,
			&l.Debit,
			&l.Credit,
			&l.CostCenterID,
			&l.ProjectID,
			&l.Description,
		); err != nil {
			return nil, fmt.Errorf("error scanning posted line row: %w", err)
		}
		l.EntryDate = domain.DateOnly(l.EntryDate)
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted line rows: %w", err)
	}
	return result, nil
}
