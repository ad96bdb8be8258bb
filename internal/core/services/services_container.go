package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

// Sinks are the outbound collaborators notified after ledger operations commit.
// Nil members are skipped.
type Sinks struct {
	Audit    portssvc.AuditSink
	Notifier portssvc.Notifier
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, sinks Sinks) (*portssvc.ServiceContainer, error) {
	scale := cfg.CurrencyScale

	// Reports sit behind the LRU cache; every writer invalidates it after commit.
	reporting := NewReportingService(
		repos.ReportingRepo,
		repos.AccountRepo,
		WithCashFlowPolicy(NewCashFlowPolicy(cfg.CashFlowCashAccounts, cfg.CashFlowInvestingPrefixes, cfg.CashFlowFinancingPrefixes)),
	)
	cachedReporting, err := NewCachedReportingService(reporting, cfg.ReportCacheSize)
	if err != nil {
		return nil, err
	}

	opts := []ServiceOption{
		WithAuditSink(sinks.Audit),
		WithReportCache(cachedReporting),
	}

	retry := DefaultRetryPolicy()
	retry.MaxRetries = cfg.PostingMaxRetries
	if cfg.PostingTxTimeout > 0 {
		retry.AttemptTimeout = cfg.PostingTxTimeout
	}
	writerDeps := LedgerWriterDeps{
		TxRunner: repos.TxRunner,
		Scale:    scale,
		Retry:    retry,
		Notifier: sinks.Notifier,
	}

	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo, opts...),
		Journal:   NewJournalService(repos.AccountRepo, repos.JournalRepo, repos.TxRunner, scale, opts...),
		Posting:   NewPostingService(writerDeps, opts...),
		Reversal:  NewReversalService(writerDeps, opts...),
		Reporting: cachedReporting,
	}, nil
}
