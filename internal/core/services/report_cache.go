package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// DefaultReportCacheSize is the number of reports kept when no size is configured.
const DefaultReportCacheSize = 512

// CachedReportingService memoizes reports per tenant. Every committed posting or
// reversal bumps the tenant generation, which is part of the key, so stale
// reports are never served. Returned reports are shared and must not be modified.
type CachedReportingService struct {
	inner portssvc.ReportingSvc
	cache *lru.Cache[string, any]

	mu          sync.Mutex
	generations map[string]uint64
}

var (
	_ portssvc.ReportingSvc           = (*CachedReportingService)(nil)
	_ portssvc.ReportCacheInvalidator = (*CachedReportingService)(nil)
)

// NewCachedReportingService wraps inner with an LRU cache holding up to size reports.
func NewCachedReportingService(inner portssvc.ReportingSvc, size int) (*CachedReportingService, error) {
	if size <= 0 {
		size = DefaultReportCacheSize
	}
	cache, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create report cache: %w", err)
	}
	return &CachedReportingService{
		inner:       inner,
		cache:       cache,
		generations: make(map[string]uint64),
	}, nil
}

// InvalidateTenant drops every cached report of the tenant.
func (c *CachedReportingService) InvalidateTenant(tenantID string) {
	c.mu.Lock()
	c.generations[tenantID]++
	c.mu.Unlock()
}

func (c *CachedReportingService) key(tenantID, report string, params ...string) string {
	c.mu.Lock()
	gen := c.generations[tenantID]
	c.mu.Unlock()
	return strings.Join(append([]string{tenantID, strconv.FormatUint(gen, 10), report}, params...), "|")
}

// cachedReport returns the cached value under key or loads and stores it. Errors are not cached.
func cachedReport[T any](c *CachedReportingService, key string, load func() (*T, error)) (*T, error) {
	if v, ok := c.cache.Get(key); ok {
		if report, ok := v.(*T); ok {
			return report, nil
		}
	}
	report, err := load()
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, report)
	return report, nil
}

func dateKey(t time.Time) string {
	return domain.DateOnly(t).Format(time.DateOnly)
}

func (c *CachedReportingService) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	return cachedReport(c, c.key(tenantID, "trial-balance", dateKey(asOf)), func() (*domain.TrialBalanceReport, error) {
		return c.inner.TrialBalance(ctx, tenantID, asOf)
	})
}

func (c *CachedReportingService) IncomeStatement(ctx context.Context, tenantID string, start, end time.Time) (*domain.IncomeStatement, error) {
	return cachedReport(c, c.key(tenantID, "income-statement", dateKey(start), dateKey(end)), func() (*domain.IncomeStatement, error) {
		return c.inner.IncomeStatement(ctx, tenantID, start, end)
	})
}

func (c *CachedReportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheet, error) {
	return cachedReport(c, c.key(tenantID, "balance-sheet", dateKey(asOf)), func() (*domain.BalanceSheet, error) {
		return c.inner.BalanceSheet(ctx, tenantID, asOf)
	})
}

func (c *CachedReportingService) CashFlowStatement(ctx context.Context, tenantID string, start, end time.Time) (*domain.CashFlowStatement, error) {
	return cachedReport(c, c.key(tenantID, "cash-flow", dateKey(start), dateKey(end)), func() (*domain.CashFlowStatement, error) {
		return c.inner.CashFlowStatement(ctx, tenantID, start, end)
	})
}

func (c *CachedReportingService) AccountLedger(ctx context.Context, tenantID string, accountID string, from *time.Time, to time.Time) (*domain.AccountLedger, error) {
	fromKey := "-"
	if from != nil {
		fromKey = dateKey(*from)
	}
	return cachedReport(c, c.key(tenantID, "account-ledger", accountID, fromKey, dateKey(to)), func() (*domain.AccountLedger, error) {
		return c.inner.AccountLedger(ctx, tenantID, accountID, from, to)
	})
}
