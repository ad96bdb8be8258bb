package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Audit       portssvc.AuditSink
	ReportCache portssvc.ReportCacheInvalidator
	Clock       func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock reading in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// RecordAudit hands a fact to the audit sink. Failures are logged and dropped.
func (s *BaseService) RecordAudit(ctx context.Context, fact domain.AuditFact) {
	if s.Audit == nil {
		return
	}
	if fact.OccurredAt.IsZero() {
		fact.OccurredAt = s.Now()
	}
	if err := s.Audit.Record(ctx, fact); err != nil {
		s.GetLogger(ctx).Warn("Failed to record audit fact",
			slog.String("error", err.Error()),
			slog.String("action", string(fact.Action)),
			slog.String("entity_type", fact.EntityType),
			slog.String("entity_id", fact.EntityID))
	}
}

// InvalidateReports drops cached reports of the tenant, if a cache is configured.
func (s *BaseService) InvalidateReports(tenantID string) {
	if s.ReportCache != nil {
		s.ReportCache.InvalidateTenant(tenantID)
	}
}

// ServiceOption configures the shared parts of a service.
type ServiceOption func(*BaseService)

// WithAuditSink sets the sink receiving audit facts after each committed operation.
func WithAuditSink(sink portssvc.AuditSink) ServiceOption {
	return func(b *BaseService) {
		b.Audit = sink
	}
}

// WithReportCache sets the cache invalidated after writes that change report output.
func WithReportCache(cache portssvc.ReportCacheInvalidator) ServiceOption {
	return func(b *BaseService) {
		b.ReportCache = cache
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

func newBaseService(opts []ServiceOption) BaseService {
	var b BaseService
	for _, opt := range opts {
		opt(&b)
	}
	return b
}
