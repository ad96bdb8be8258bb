package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// rowLocks is an arena of exclusive row locks keyed by table and id. A lock is
// a one-slot channel so acquisition can be abandoned on context cancellation.
type rowLocks struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func newRowLocks() *rowLocks {
	return &rowLocks{locks: make(map[string]chan struct{})}
}

func (r *rowLocks) slot(key string) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch, ok := r.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		r.locks[key] = ch
	}
	return ch
}

// acquire blocks until key is free, timeout passes or ctx is done. A timeout
// is reported as ErrConcurrency, like a Postgres lock_timeout.
func (r *rowLocks) acquire(ctx context.Context, key string, timeout time.Duration) error {
	ch := r.slot(key)
	select {
	case ch <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("%w: lock wait timeout on %s", apperrors.ErrConcurrency, key)
	}
}

func (r *rowLocks) release(key string) {
	<-r.slot(key)
}

func entryLockKey(tenantID, entryID string) string {
	return "entry:" + tenantID + ":" + entryID
}

func sequenceLockKey(tenantID string) string {
	return "sequence:" + tenantID
}

func accountLockKey(tenantID, accountID string) string {
	return "account:" + tenantID + ":" + accountID
}
