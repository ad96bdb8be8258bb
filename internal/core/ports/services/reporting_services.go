package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingSvc defines operations for generating financial reports.
// Reports read posted history only and never write.
type ReportingSvc interface {
	// TrialBalance generates a trial balance report as of a specific date
	TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error)

	// IncomeStatement generates an income statement for an inclusive date range
	IncomeStatement(ctx context.Context, tenantID string, start, end time.Time) (*domain.IncomeStatement, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheet, error)

	// CashFlowStatement classifies cash movement within an inclusive date range
	CashFlowStatement(ctx context.Context, tenantID string, start, end time.Time) (*domain.CashFlowStatement, error)

	// AccountLedger lists the posted lines of one account with a running balance
	AccountLedger(ctx context.Context, tenantID string, accountID string, from *time.Time, to time.Time) (*domain.AccountLedger, error)
}

// ReportCacheInvalidator drops cached reports of a tenant.
type ReportCacheInvalidator interface {
	InvalidateTenant(tenantID string)
}
