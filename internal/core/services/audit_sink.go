package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// LoggingAuditSink writes audit facts as structured log records on a dedicated logger.
type LoggingAuditSink struct {
	logger *slog.Logger
}

// NewLoggingAuditSink creates an audit sink backed by logger.
func NewLoggingAuditSink(logger *slog.Logger) *LoggingAuditSink {
	return &LoggingAuditSink{logger: logger.With(slog.String("component", "audit"))}
}

var _ portssvc.AuditSink = (*LoggingAuditSink)(nil)

// Record implements AuditSink.
func (s *LoggingAuditSink) Record(ctx context.Context, fact domain.AuditFact) error {
	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit",
		slog.String("action", string(fact.Action)),
		slog.String("entity_type", fact.EntityType),
		slog.String("entity_id", fact.EntityID),
		slog.String("tenant_id", fact.TenantID),
		slog.String("actor_id", fact.ActorID),
		slog.Any("details", fact.Details),
		slog.Time("occurred_at", fact.OccurredAt),
	)
	return nil
}

// notifyEvent hands an event to the notifier. Failures are logged and dropped.
func notifyEvent(ctx context.Context, notifier portssvc.Notifier, event domain.LedgerEvent) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to send ledger notification",
			slog.String("error", err.Error()),
			slog.String("event", event.Name),
			slog.String("entry_id", event.EntryID))
	}
}
