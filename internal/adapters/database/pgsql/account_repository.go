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

const accountColumns = `account_id, tenant_id, account_number, name, description, account_type,
	parent_account_id, is_active, balance, created_at, created_by, last_updated_at, last_updated_by`

// accountTenantNumberKey is the unique constraint on (tenant_id, account_number).
const accountTenantNumberKey = "accounts_tenant_id_account_number_key"

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row rowScanner) (domain.Account, error) {
	var acc domain.Account
	var parentID *string
	err := row.Scan(
		&acc.AccountID,
		&acc.TenantID,
		&acc.AccountNumber,
		&acc.Name,
		&acc.Description,
		&acc.AccountType,
		&parentID,
		&acc.IsActive,
		&acc.Balance,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	acc.ParentAccountID = derefString(parentID)
	return acc, err
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.TenantID,
		account.AccountNumber,
		account.Name,
		account.Description,
		account.AccountType,
		nullString(account.ParentAccountID),
		account.IsActive,
		account.Balance,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if pgErr, ok := isPgCode(err, pgUniqueViolation); ok && pgErr.ConstraintName == accountTenantNumberKey {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccountNumber, account.AccountNumber)
		}
		if _, ok := isPgCode(err, pgForeignKeyViolation); ok {
			return fmt.Errorf("%w: %s", apperrors.ErrParentNotFound, account.ParentAccountID)
		}
		return mapPgError(err, "failed to save account "+account.AccountID)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accountID)
		}
		return nil, mapPgError(err, "failed to find account by ID "+accountID)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts. Unknown ids are absent from the result.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, tenantID, accountIDs)
	if err != nil {
		return nil, mapPgError(err, "failed to query accounts by IDs")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		out[acc.AccountID] = acc
	}
	return out, nil
}

// FindAccountByNumber retrieves an account by its tenant-unique number.
func (r *PgxAccountRepository) FindAccountByNumber(ctx context.Context, tenantID, accountNumber string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE tenant_id = $1 AND account_number = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, tenantID, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account number " + accountNumber)
		}
		return nil, mapPgError(err, "failed to find account by number "+accountNumber)
	}
	return &acc, nil
}

// ListAccounts returns the tenant's accounts ordered by account number.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.AccountType != "" {
		add("account_type = $%d", filter.AccountType)
	}
	if filter.IsActive != nil {
		add("is_active = $%d", *filter.IsActive)
	}
	if filter.ParentAccountID != "" {
		add("parent_account_id = $%d", filter.ParentAccountID)
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + strings.Join(where, " AND ") + ` ORDER BY account_number`
	query += limitOffset(&args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "failed to list accounts")
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// HasLineHistory reports whether any journal line references the account.
func (r *PgxAccountRepository) HasLineHistory(ctx context.Context, tenantID, accountID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM journal_lines l
			JOIN journal_entries e ON e.entry_id = l.entry_id
			WHERE e.tenant_id = $1 AND l.account_id = $2
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&exists); err != nil {
		return false, mapPgError(err, "failed to check line history of account "+accountID)
	}
	return exists, nil
}

// HasChildren reports whether any account names accountID as its parent.
func (r *PgxAccountRepository) HasChildren(ctx context.Context, tenantID, accountID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE tenant_id = $1 AND parent_account_id = $2);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, tenantID, accountID).Scan(&exists); err != nil {
		return false, mapPgError(err, "failed to check children of account "+accountID)
	}
	return exists, nil
}

// UpdateAccount rewrites account metadata. Number, type and balance are never touched.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, description = $4, parent_account_id = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE tenant_id = $1 AND account_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query,
		account.TenantID,
		account.AccountID,
		account.Name,
		account.Description,
		nullString(account.ParentAccountID),
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if _, ok := isPgCode(err, pgForeignKeyViolation); ok {
			return fmt.Errorf("%w: %s", apperrors.ErrParentNotFound, account.ParentAccountID)
		}
		return mapPgError(err, "failed to update account "+account.AccountID)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + account.AccountID)
	}
	return nil
}

// DeleteAccount removes an account without history. Foreign keys from journal
// lines and child accounts reject the delete otherwise.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE tenant_id = $1 AND account_id = $2;`, tenantID, accountID)
	if err != nil {
		if _, ok := isPgCode(err, pgForeignKeyViolation); ok {
			return fmt.Errorf("%w: %s", apperrors.ErrAccountHasHistory, accountID)
		}
		return mapPgError(err, "failed to delete account "+accountID)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + accountID)
	}
	return nil
}

// limitOffset appends LIMIT/OFFSET placeholders. A zero limit means no limit.
func limitOffset(args *[]any, limit, offset int) string {
	var b strings.Builder
	if limit > 0 {
		*args = append(*args, limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(*args))
	}
	if offset > 0 {
		*args = append(*args, offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(*args))
	}
	return b.String()
}
