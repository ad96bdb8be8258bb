package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AuditSink receives audit facts after ledger operations commit.
// A failing Record never undoes the operation.
type AuditSink interface {
	Record(ctx context.Context, fact domain.AuditFact) error
}

// AuditSinkFunc adapts a plain function to AuditSink.
type AuditSinkFunc func(ctx context.Context, fact domain.AuditFact) error

// Record implements AuditSink.
func (f AuditSinkFunc) Record(ctx context.Context, fact domain.AuditFact) error {
	return f(ctx, fact)
}

// Notifier receives posting and reversal events. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, event domain.LedgerEvent) error
}
