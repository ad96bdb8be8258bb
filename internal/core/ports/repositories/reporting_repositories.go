package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingRepository reads posted history. Only entries in POSTED or REVERSED
// status are visible through it.
type ReportingRepository interface {
	// AccountActivity sums debits and credits per account over entries dated
	// within [from, to]. A nil from means from the beginning.
	AccountActivity(ctx context.Context, tenantID string, from *time.Time, to time.Time) ([]domain.AccountActivity, error)
	// PostedLines returns matching lines ordered by entry date, entry number and line number.
	PostedLines(ctx context.Context, tenantID string, filter domain.PostedLineFilter) ([]domain.PostedLine, error)
}
