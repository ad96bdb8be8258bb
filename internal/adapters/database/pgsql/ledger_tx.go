package pgsql

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// DefaultLockTimeout bounds how long a unit of work waits for a row lock.
const DefaultLockTimeout = 2 * time.Second

// PgxTxRunner runs units of work in READ COMMITTED transactions. Rows are
// serialized with SELECT ... FOR UPDATE and the tenant sequence row lock.
type PgxTxRunner struct {
	BaseRepository
	lockTimeout time.Duration
}

var _ portsrepo.TxRunner = (*PgxTxRunner)(nil)

func newPgxTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *PgxTxRunner {
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &PgxTxRunner{BaseRepository: BaseRepository{Pool: pool}, lockTimeout: lockTimeout}
}

// RunInTx implements TxRunner.
func (r *PgxTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if the transaction is committed successfully
	defer r.Rollback(ctx, tx) //nolint:errcheck

	ms := strconv.FormatInt(r.lockTimeout.Milliseconds(), 10)
	if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true);`, ms); err != nil {
		return mapPgError(err, "failed to set lock timeout")
	}

	if err := fn(ctx, &pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// pgxLedgerTx implements LedgerTx over one pgx transaction.
type pgxLedgerTx struct {
	tx pgx.Tx
}

var _ portsrepo.LedgerTx = (*pgxLedgerTx)(nil)

func (t *pgxLedgerTx) LockEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	return findEntry(ctx, t.tx, tenantID, entryID, "FOR UPDATE")
}

// NextEntryNumber increments the tenant's sequence row. The row stays locked
// until commit, so concurrent creators queue behind each other and a rolled
// back reservation is reused.
func (t *pgxLedgerTx) NextEntryNumber(ctx context.Context, tenantID string) (int64, error) {
	query := `
		INSERT INTO entry_sequences (tenant_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (tenant_id) DO UPDATE SET last_number = entry_sequences.last_number + 1
		RETURNING last_number;
	`
	var n int64
	if err := t.tx.QueryRow(ctx, query, tenantID).Scan(&n); err != nil {
		return 0, mapPgError(err, "failed to reserve entry number")
	}
	return n, nil
}

func (t *pgxLedgerTx) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := t.tx.Exec(ctx, query,
		entry.EntryID,
		entry.TenantID,
		entry.EntryNumber,
		domain.DateOnly(entry.EntryDate),
		entry.Description,
		entry.Reference,
		entry.Status,
		entry.TotalDebit,
		entry.TotalCredit,
		nullString(entry.PostedBy),
		entry.PostedAt,
		nullString(entry.ReversedBy),
		entry.ReversedAt,
		nullString(entry.ReversalReason),
		nullString(entry.OriginalEntryID),
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to insert journal entry "+entry.EntryID)
	}
	return t.insertLines(ctx, entry)
}

func (t *pgxLedgerTx) insertLines(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, l := range entry.Lines {
		batch.Queue(query,
			l.LineID,
			entry.EntryID,
			l.LineNo,
			l.AccountID,
			l.Debit,
			l.Credit,
			nullString(l.CostCenterID),
			nullString(l.ProjectID),
			nullString(l.Description),
		)
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := t.tx.SendBatch(ctx, batch).Close(); err != nil {
		if _, ok := isPgCode(err, pgForeignKeyViolation); ok {
			return apperrors.NewNotFoundError("account referenced by entry " + entry.EntryID)
		}
		return mapPgError(err, "failed to insert lines of journal entry "+entry.EntryID)
	}
	return nil
}

// UpdateDraft rewrites the header and replaces every line. The status guard
// keeps a posted entry from being edited even if the caller skipped LockEntry.
func (t *pgxLedgerTx) UpdateDraft(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET entry_date = $3, description = $4, reference = $5, total_debit = $6, total_credit = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE tenant_id = $1 AND entry_id = $2 AND status = 'DRAFT';
	`
	ct, err := t.tx.Exec(ctx, query,
		entry.TenantID,
		entry.EntryID,
		domain.DateOnly(entry.EntryDate),
		entry.Description,
		entry.Reference,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update draft "+entry.EntryID)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrEntryNotDraft, entry.EntryID)
	}
	if _, err := t.tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return mapPgError(err, "failed to replace lines of draft "+entry.EntryID)
	}
	return t.insertLines(ctx, entry)
}

func (t *pgxLedgerTx) UpdateEntryStatus(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET status = $3, total_debit = $4, total_credit = $5, posted_by = $6, posted_at = $7,
		    reversed_by = $8, reversed_at = $9, reversal_reason = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE tenant_id = $1 AND entry_id = $2;
	`
	ct, err := t.tx.Exec(ctx, query,
		entry.TenantID,
		entry.EntryID,
		entry.Status,
		entry.TotalDebit,
		entry.TotalCredit,
		nullString(entry.PostedBy),
		entry.PostedAt,
		nullString(entry.ReversedBy),
		entry.ReversedAt,
		nullString(entry.ReversalReason),
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to update status of journal entry "+entry.EntryID)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal entry " + entry.EntryID)
	}
	return nil
}

// LockAccounts retrieves accounts and locks the rows for update in ascending id order.
func (t *pgxLedgerTx) LockAccounts(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE tenant_id = $1 AND account_id = ANY($2)
		ORDER BY account_id
		FOR UPDATE;
	`
	rows, err := t.tx.Query(ctx, query, tenantID, ids)
	if err != nil {
		return nil, mapPgError(err, "failed to lock accounts")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, mapPgError(err, "failed to lock accounts")
	}
	out := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		out[acc.AccountID] = acc
	}
	return out, nil
}

// ApplyBalanceChanges updates balances for multiple accounts in one batch.
func (t *pgxLedgerTx) ApplyBalanceChanges(ctx context.Context, changes map[string]decimal.Decimal, actorID string, at time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	ids := make([]string, 0, len(changes))
	for id, delta := range changes {
		if !delta.IsZero() {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(query, id, changes[id], at, actorID)
	}
	br := t.tx.SendBatch(ctx, batch)
	var batchErr error
	for _, id := range ids {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = mapPgError(err, "failed to update balance for account "+id)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = apperrors.NewNotFoundError("account " + id + " during balance update")
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = mapPgError(err, "failed to close balance update batch")
	}
	return batchErr
}
