// Package memory is an in-process storage adapter with the same transactional
// semantics as the Postgres adapter: row locks held for the unit of work and
// all-or-nothing commits. It backs tests and STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// DefaultLockTimeout bounds the wait for a row lock.
const DefaultLockTimeout = 2 * time.Second

// Store keeps every tenant's ledger in maps guarded by one RWMutex. The mutex
// is only held for map access; row locks order concurrent units of work.
type Store struct {
	mu        sync.RWMutex
	accounts  map[string]domain.Account
	entries   map[string]domain.JournalEntry
	sequences map[string]int64

	locks       *rowLocks
	lockTimeout time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithLockTimeout sets how long a unit of work waits for a row lock.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		accounts:    make(map[string]domain.Account),
		entries:     make(map[string]domain.JournalEntry),
		sequences:   make(map[string]int64),
		locks:       newRowLocks(),
		lockTimeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ portsrepo.AccountRepositoryFacade = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade = (*Store)(nil)
	_ portsrepo.ReportingRepository     = (*Store)(nil)
	_ portsrepo.TxRunner                = (*Store)(nil)
)

// Repositories exposes the store through every repository port.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   s,
		JournalRepo:   s,
		ReportingRepo: s,
		TxRunner:      s,
	}
}

// --- accounts ---

func (s *Store) FindAccountByID(_ context.Context, tenantID, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[accountID]
	if !ok || acc.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return &acc, nil
}

func (s *Store) FindAccountsByIDs(_ context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := s.accounts[id]; ok && acc.TenantID == tenantID {
			out[id] = acc
		}
	}
	return out, nil
}

func (s *Store) FindAccountByNumber(_ context.Context, tenantID, accountNumber string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.TenantID == tenantID && acc.AccountNumber == accountNumber {
			return &acc, nil
		}
	}
	return nil, apperrors.NewNotFoundError("account number " + accountNumber)
}

func (s *Store) ListAccounts(_ context.Context, tenantID string, filter domain.AccountFilter) ([]domain.Account, error) {
	s.mu.RLock()
	var out []domain.Account
	for _, acc := range s.accounts {
		if acc.TenantID != tenantID {
			continue
		}
		if filter.AccountType != "" && acc.AccountType != filter.AccountType {
			continue
		}
		if filter.IsActive != nil && acc.IsActive != *filter.IsActive {
			continue
		}
		if filter.ParentAccountID != "" && acc.ParentAccountID != filter.ParentAccountID {
			continue
		}
		out = append(out, acc)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return page(out, filter.Offset, filter.Limit), nil
}

func (s *Store) HasLineHistory(_ context.Context, tenantID, accountID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasLineHistoryLocked(tenantID, accountID), nil
}

func (s *Store) hasLineHistoryLocked(tenantID, accountID string) bool {
	for _, e := range s.entries {
		if e.TenantID != tenantID {
			continue
		}
		for _, l := range e.Lines {
			if l.AccountID == accountID {
				return true
			}
		}
	}
	return false
}

func (s *Store) HasChildren(_ context.Context, tenantID, accountID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acc := range s.accounts {
		if acc.TenantID == tenantID && acc.ParentAccountID == accountID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.AccountID]; ok {
		return fmt.Errorf("%w: account id %s", apperrors.ErrConflict, account.AccountID)
	}
	for _, acc := range s.accounts {
		if acc.TenantID == account.TenantID && acc.AccountNumber == account.AccountNumber {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccountNumber, account.AccountNumber)
		}
	}
	s.accounts[account.AccountID] = account
	return nil
}

// UpdateAccount rewrites metadata under the account's row lock. Balance,
// number and type are kept from the stored row.
func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) error {
	key := accountLockKey(account.TenantID, account.AccountID)
	if err := s.locks.acquire(ctx, key, s.lockTimeout); err != nil {
		return err
	}
	defer s.locks.release(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.accounts[account.AccountID]
	if !ok || stored.TenantID != account.TenantID {
		return apperrors.NewNotFoundError("account " + account.AccountID)
	}
	stored.Name = account.Name
	stored.Description = account.Description
	stored.ParentAccountID = account.ParentAccountID
	stored.IsActive = account.IsActive
	stored.LastUpdatedAt = account.LastUpdatedAt
	stored.LastUpdatedBy = account.LastUpdatedBy
	s.accounts[account.AccountID] = stored
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, tenantID, accountID string) error {
	key := accountLockKey(tenantID, accountID)
	if err := s.locks.acquire(ctx, key, s.lockTimeout); err != nil {
		return err
	}
	defer s.locks.release(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[accountID]
	if !ok || acc.TenantID != tenantID {
		return apperrors.NewNotFoundError("account " + accountID)
	}
	if s.hasLineHistoryLocked(tenantID, accountID) {
		return fmt.Errorf("%w: %s", apperrors.ErrAccountHasHistory, acc.AccountNumber)
	}
	delete(s.accounts, accountID)
	return nil
}

// --- journal entries ---

func (s *Store) FindEntryByID(_ context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[entryID]
	if !ok || e.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("journal entry " + entryID)
	}
	c := copyEntry(e)
	return &c, nil
}

func (s *Store) ListEntries(_ context.Context, tenantID string, filter domain.EntryFilter) ([]domain.JournalEntry, bool, error) {
	query := strings.ToLower(filter.Query)

	s.mu.RLock()
	var out []domain.JournalEntry
	for _, e := range s.entries {
		if e.TenantID != tenantID || !matchesEntry(e, filter, query) {
			continue
		}
		out = append(out, copyEntry(e))
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if filter.SortDesc {
			a, b = b, a
		}
		switch filter.SortBy {
		case domain.SortByAmount:
			if c := a.TotalDebit.Cmp(b.TotalDebit); c != 0 {
				return c < 0
			}
		case domain.SortByEntryNumber:
		default:
			if !a.EntryDate.Equal(b.EntryDate) {
				return a.EntryDate.Before(b.EntryDate)
			}
		}
		return a.EntryNumber < b.EntryNumber
	})

	hasMore := filter.Limit > 0 && len(out) > max(filter.Offset, 0)+filter.Limit
	return page(out, filter.Offset, filter.Limit), hasMore, nil
}

func matchesEntry(e domain.JournalEntry, f domain.EntryFilter, query string) bool {
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.FromDate != nil && e.EntryDate.Before(domain.DateOnly(*f.FromDate)) {
		return false
	}
	if f.ToDate != nil && e.EntryDate.After(domain.DateOnly(*f.ToDate)) {
		return false
	}
	if f.MinAmount != nil && e.TotalDebit.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && e.TotalDebit.GreaterThan(*f.MaxAmount) {
		return false
	}
	if query != "" &&
		!strings.Contains(strings.ToLower(e.Description), query) &&
		!strings.Contains(strings.ToLower(e.Reference), query) {
		return false
	}
	if f.AccountID != "" {
		for _, l := range e.Lines {
			if l.AccountID == f.AccountID {
				return true
			}
		}
		return false
	}
	return true
}

func page[T any](items []T, offset, limit int) []T {
	offset = max(offset, 0)
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

func copyEntry(e domain.JournalEntry) domain.JournalEntry {
	c := e
	c.Lines = append([]domain.JournalLine(nil), e.Lines...)
	if e.PostedAt != nil {
		t := *e.PostedAt
		c.PostedAt = &t
	}
	if e.ReversedAt != nil {
		t := *e.ReversedAt
		c.ReversedAt = &t
	}
	return c
}
