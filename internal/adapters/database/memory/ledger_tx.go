package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

type balanceStamp struct {
	actorID string
	at      time.Time
}

// memTx stages writes until commit and holds its row locks until RunInTx returns.
type memTx struct {
	store *Store
	held  []string
	owned map[string]struct{}

	deltas    map[string]decimal.Decimal
	stamps    map[string]balanceStamp
	entries   map[string]domain.JournalEntry
	sequences map[string]int64
}

var _ portsrepo.LedgerTx = (*memTx)(nil)

// RunInTx implements TxRunner. Staged writes are published under the store
// mutex in one step, so readers never see half a unit of work.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx := &memTx{
		store:     s,
		owned:     make(map[string]struct{}),
		deltas:    make(map[string]decimal.Decimal),
		stamps:    make(map[string]balanceStamp),
		entries:   make(map[string]domain.JournalEntry),
		sequences: make(map[string]int64),
	}
	defer tx.releaseAll()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (tx *memTx) lock(ctx context.Context, key string) error {
	if _, ok := tx.owned[key]; ok {
		return nil
	}
	if err := tx.store.locks.acquire(ctx, key, tx.store.lockTimeout); err != nil {
		return err
	}
	tx.owned[key] = struct{}{}
	tx.held = append(tx.held, key)
	return nil
}

func (tx *memTx) releaseAll() {
	for i := len(tx.held) - 1; i >= 0; i-- {
		tx.store.locks.release(tx.held[i])
	}
	tx.held = nil
}

func (tx *memTx) commit() {
	s := tx.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, delta := range tx.deltas {
		acc := s.accounts[id]
		acc.Balance = acc.Balance.Add(delta)
		if st, ok := tx.stamps[id]; ok {
			acc.LastUpdatedAt = st.at
			acc.LastUpdatedBy = st.actorID
		}
		s.accounts[id] = acc
	}
	for id, e := range tx.entries {
		s.entries[id] = e
	}
	for tenantID, n := range tx.sequences {
		s.sequences[tenantID] = n
	}
}

func (tx *memTx) LockEntry(ctx context.Context, tenantID, entryID string) (*domain.JournalEntry, error) {
	if err := tx.lock(ctx, entryLockKey(tenantID, entryID)); err != nil {
		return nil, err
	}
	e, ok := tx.entries[entryID]
	if !ok {
		tx.store.mu.RLock()
		e, ok = tx.store.entries[entryID]
		tx.store.mu.RUnlock()
	}
	if !ok || e.TenantID != tenantID {
		return nil, apperrors.NewNotFoundError("journal entry " + entryID)
	}
	c := copyEntry(e)
	return &c, nil
}

func (tx *memTx) NextEntryNumber(ctx context.Context, tenantID string) (int64, error) {
	if err := tx.lock(ctx, sequenceLockKey(tenantID)); err != nil {
		return 0, err
	}
	current, ok := tx.sequences[tenantID]
	if !ok {
		tx.store.mu.RLock()
		current = tx.store.sequences[tenantID]
		tx.store.mu.RUnlock()
	}
	tx.sequences[tenantID] = current + 1
	return current + 1, nil
}

func (tx *memTx) InsertEntry(_ context.Context, entry domain.JournalEntry) error {
	if _, ok := tx.entries[entry.EntryID]; ok {
		return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrConflict, entry.EntryID)
	}
	tx.store.mu.RLock()
	_, exists := tx.store.entries[entry.EntryID]
	tx.store.mu.RUnlock()
	if exists {
		return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrConflict, entry.EntryID)
	}
	tx.entries[entry.EntryID] = copyEntry(entry)
	return nil
}

func (tx *memTx) UpdateDraft(ctx context.Context, entry domain.JournalEntry) error {
	return tx.stageEntryUpdate(entry)
}

func (tx *memTx) UpdateEntryStatus(ctx context.Context, entry domain.JournalEntry) error {
	return tx.stageEntryUpdate(entry)
}

// stageEntryUpdate requires the entry to be locked by this unit of work or inserted by it.
func (tx *memTx) stageEntryUpdate(entry domain.JournalEntry) error {
	if _, staged := tx.entries[entry.EntryID]; !staged {
		if _, ok := tx.owned[entryLockKey(entry.TenantID, entry.EntryID)]; !ok {
			return fmt.Errorf("journal entry %s is not locked by this transaction", entry.EntryID)
		}
	}
	tx.entries[entry.EntryID] = copyEntry(entry)
	return nil
}

func (tx *memTx) LockAccounts(ctx context.Context, tenantID string, accountIDs []string) (map[string]domain.Account, error) {
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)
	for _, id := range ids {
		if err := tx.lock(ctx, accountLockKey(tenantID, id)); err != nil {
			return nil, err
		}
	}

	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()
	out := make(map[string]domain.Account, len(ids))
	for _, id := range ids {
		acc, ok := tx.store.accounts[id]
		if !ok || acc.TenantID != tenantID {
			continue
		}
		if delta, ok := tx.deltas[id]; ok {
			acc.Balance = acc.Balance.Add(delta)
		}
		out[id] = acc
	}
	return out, nil
}

func (tx *memTx) ApplyBalanceChanges(_ context.Context, changes map[string]decimal.Decimal, actorID string, at time.Time) error {
	tx.store.mu.RLock()
	defer tx.store.mu.RUnlock()
	for id := range changes {
		acc, ok := tx.store.accounts[id]
		if !ok {
			return apperrors.NewNotFoundError("account " + id)
		}
		if _, locked := tx.owned[accountLockKey(acc.TenantID, id)]; !locked {
			return fmt.Errorf("account %s is not locked by this transaction", id)
		}
	}
	for id, delta := range changes {
		tx.deltas[id] = tx.deltas[id].Add(delta)
		tx.stamps[id] = balanceStamp{actorID: actorID, at: at}
	}
	return nil
}
