package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

const currentEarningsName = "Current earnings"

// reportingService implements the ReportingSvc interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	cashFlow      CashFlowPolicy
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithCashFlowPolicy sets the cash accounts and classification rules of the cash flow statement.
func WithCashFlowPolicy(policy CashFlowPolicy) ReportingServiceOption {
	return func(s *reportingService) {
		s.cashFlow = policy
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader, options ...ReportingServiceOption) *reportingService {
	svc := &reportingService{
		reportingRepo: repo,
		accountRepo:   accountRepo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// TrialBalance lists every account with a non-zero balance as of asOf and
// verifies that the debit and credit columns agree.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	asOf = domain.DateOnly(asOf)
	activity, err := s.reportingRepo.AccountActivity(ctx, tenantID, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		TenantID:    tenantID,
		AsOf:        asOf,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, a := range sortActivity(activity) {
		net := a.Net()
		if net.IsZero() {
			continue
		}
		debit, credit := accounting.SplitBalance(net)
		report.Rows = append(report.Rows, domain.TrialBalanceRow{
			AccountID:     a.AccountID,
			AccountNumber: a.AccountNumber,
			AccountName:   a.AccountName,
			AccountType:   a.AccountType,
			Debit:         debit,
			Credit:        credit,
		})
		report.TotalDebit = report.TotalDebit.Add(debit)
		report.TotalCredit = report.TotalCredit.Add(credit)
	}

	if !report.TotalDebit.Equal(report.TotalCredit) {
		err := &apperrors.IntegrityError{
			Report: "trial balance",
			Detail: fmt.Sprintf("total debit %s does not equal total credit %s", report.TotalDebit, report.TotalCredit),
		}
		s.LogError(ctx, err, "Trial balance does not balance",
			slog.String("asOf", asOf.Format(time.DateOnly)),
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
		return nil, err
	}

	s.LogDebug(ctx, "Trial balance report generated",
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// IncomeStatement reports revenue and expense activity within [start, end].
func (s *reportingService) IncomeStatement(ctx context.Context, tenantID string, start, end time.Time) (*domain.IncomeStatement, error) {
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}
	activity, err := s.reportingRepo.AccountActivity(ctx, tenantID, &start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve income statement data",
			slog.String("from", start.Format(time.DateOnly)),
			slog.String("to", end.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	sections := buildSections(activity, domain.Revenue, domain.Expense)
	if err := s.rollUp(ctx, tenantID, sections); err != nil {
		return nil, err
	}
	report := &domain.IncomeStatement{
		TenantID:     tenantID,
		StartDate:    start,
		EndDate:      end,
		Revenue:      sections[domain.Revenue],
		Expenses:     sections[domain.Expense],
		TotalRevenue: sections[domain.Revenue].Total,
		TotalExpense: sections[domain.Expense].Total,
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpense)

	s.LogDebug(ctx, "Income statement generated",
		slog.String("from", start.Format(time.DateOnly)),
		slog.String("to", end.Format(time.DateOnly)),
		slog.String("net_income", report.NetIncome.String()))
	return report, nil
}

// BalanceSheet reports assets, liabilities and equity as of asOf. Cumulative
// revenue minus expense is shown as a current earnings line within equity.
func (s *reportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheet, error) {
	asOf = domain.DateOnly(asOf)
	activity, err := s.reportingRepo.AccountActivity(ctx, tenantID, nil, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data",
			slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	sections := buildSections(activity, domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense)
	if err := s.rollUp(ctx, tenantID, sections); err != nil {
		return nil, err
	}
	earnings := sections[domain.Revenue].Total.Sub(sections[domain.Expense].Total)

	equity := sections[domain.Equity]
	if !earnings.IsZero() {
		equity.Lines = append(equity.Lines, domain.ReportLine{AccountName: currentEarningsName, Amount: earnings})
		equity.Total = equity.Total.Add(earnings)
	}

	report := &domain.BalanceSheet{
		TenantID:         tenantID,
		AsOf:             asOf,
		Assets:           sections[domain.Asset],
		Liabilities:      sections[domain.Liability],
		Equity:           equity,
		CurrentEarnings:  earnings,
		TotalAssets:      sections[domain.Asset].Total,
		TotalLiabilities: sections[domain.Liability].Total,
		TotalEquity:      equity.Total,
	}
	report.BalanceCheck = report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity))

	if !report.BalanceCheck {
		s.LogError(ctx, &apperrors.IntegrityError{Report: "balance sheet", Detail: "assets do not equal liabilities plus equity"},
			"Balance sheet does not balance",
			slog.String("asOf", asOf.Format(time.DateOnly)),
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities", report.TotalLiabilities.String()),
			slog.String("total_equity", report.TotalEquity.String()))
	}
	return report, nil
}

// CashFlowStatement attributes the cash movement within [start, end] to
// operating, investing and financing activity through the counterpart lines
// of every entry touching a cash account.
func (s *reportingService) CashFlowStatement(ctx context.Context, tenantID string, start, end time.Time) (*domain.CashFlowStatement, error) {
	if len(s.cashFlow.CashAccountNumbers) == 0 {
		return nil, fmt.Errorf("%w: no cash accounts are configured", apperrors.ErrValidation)
	}
	start, end, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}

	var (
		opening, closing decimal.Decimal
		lines            []domain.PostedLine
	)
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		activity, err := s.reportingRepo.AccountActivity(ctx, tenantID, nil, start.AddDate(0, 0, -1))
		opening = s.cashBalance(activity)
		return err
	})
	p.Go(func(ctx context.Context) error {
		activity, err := s.reportingRepo.AccountActivity(ctx, tenantID, nil, end)
		closing = s.cashBalance(activity)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		lines, err = s.reportingRepo.PostedLines(ctx, tenantID, domain.PostedLineFilter{From: &start, To: end})
		return err
	})
	if err := p.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to retrieve cash flow data",
			slog.String("from", start.Format(time.DateOnly)),
			slog.String("to", end.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve cash flow data: %w", err)
	}

	byEntry := groupByEntry(lines)
	buckets := map[domain.CashFlowActivity]map[string]*domain.CashFlowItem{
		domain.OperatingActivity: {},
		domain.InvestingActivity: {},
		domain.FinancingActivity: {},
	}
	netChange := decimal.Zero
	for _, entryLines := range byEntry {
		touchesCash := false
		for _, l := range entryLines {
			if s.cashFlow.IsCash(l.AccountNumber) {
				touchesCash = true
				netChange = netChange.Add(l.Debit.Sub(l.Credit))
			}
		}
		if !touchesCash {
			continue
		}
		for _, l := range entryLines {
			if s.cashFlow.IsCash(l.AccountNumber) {
				continue
			}
			bucket := buckets[s.cashFlow.Classify(l)]
			item, ok := bucket[l.AccountID]
			if !ok {
				item = &domain.CashFlowItem{AccountID: l.AccountID, AccountNumber: l.AccountNumber, AccountName: l.AccountName}
				bucket[l.AccountID] = item
			}
			item.Amount = item.Amount.Add(l.Credit.Sub(l.Debit))
		}
	}

	report := &domain.CashFlowStatement{
		TenantID:    tenantID,
		StartDate:   start,
		EndDate:     end,
		Operating:   cashFlowSection(domain.OperatingActivity, buckets[domain.OperatingActivity]),
		Investing:   cashFlowSection(domain.InvestingActivity, buckets[domain.InvestingActivity]),
		Financing:   cashFlowSection(domain.FinancingActivity, buckets[domain.FinancingActivity]),
		NetChange:   netChange,
		OpeningCash: opening,
		ClosingCash: closing,
	}

	bucketTotal := accounting.Sum(report.Operating.Total, report.Investing.Total, report.Financing.Total)
	var integrityErr error
	switch {
	case !bucketTotal.Equal(netChange):
		integrityErr = &apperrors.IntegrityError{
			Report: "cash flow statement",
			Detail: fmt.Sprintf("activity total %s does not equal net change %s", bucketTotal, netChange),
		}
	case !closing.Sub(opening).Equal(netChange):
		integrityErr = &apperrors.IntegrityError{
			Report: "cash flow statement",
			Detail: fmt.Sprintf("closing %s minus opening %s does not equal net change %s", closing, opening, netChange),
		}
	}
	if integrityErr != nil {
		s.LogError(ctx, integrityErr, "Cash flow statement failed verification",
			slog.String("from", start.Format(time.DateOnly)),
			slog.String("to", end.Format(time.DateOnly)))
		return nil, integrityErr
	}
	return report, nil
}

// AccountLedger lists the posted lines of one account up to `to`. Lines dated
// before `from` are folded into the opening balance. Balances are raw debit
// minus credit, like Account.Balance.
func (s *reportingService) AccountLedger(ctx context.Context, tenantID string, accountID string, from *time.Time, to time.Time) (*domain.AccountLedger, error) {
	to = domain.DateOnly(to)
	if from != nil {
		f := domain.DateOnly(*from)
		if f.After(to) {
			return nil, fmt.Errorf("%w: from date is after to date", apperrors.ErrValidation)
		}
		from = &f
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load ledger account", slog.String("account_id", accountID))
		}
		return nil, err
	}

	lines, err := s.reportingRepo.PostedLines(ctx, tenantID, domain.PostedLineFilter{To: to, AccountID: accountID})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve account ledger lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve account ledger: %w", err)
	}

	ledger := &domain.AccountLedger{
		Account:        *account,
		FromDate:       from,
		ToDate:         to,
		OpeningBalance: decimal.Zero,
		Lines:          []domain.AccountLedgerLine{},
	}
	running := decimal.Zero
	for _, l := range lines {
		running = running.Add(l.Debit.Sub(l.Credit))
		if from != nil && l.EntryDate.Before(*from) {
			ledger.OpeningBalance = running
			continue
		}
		ledger.Lines = append(ledger.Lines, domain.AccountLedgerLine{PostedLine: l, RunningBalance: running})
	}
	ledger.ClosingBalance = running
	return ledger, nil
}

func (s *reportingService) cashBalance(activity []domain.AccountActivity) decimal.Decimal {
	total := decimal.Zero
	for _, a := range activity {
		if s.cashFlow.IsCash(a.AccountNumber) {
			total = total.Add(a.Net())
		}
	}
	return total
}

func normalizeRange(start, end time.Time) (time.Time, time.Time, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if start.After(end) {
		return start, end, fmt.Errorf("%w: start date %s is after end date %s", apperrors.ErrValidation,
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return start, end, nil
}

func sortActivity(activity []domain.AccountActivity) []domain.AccountActivity {
	sorted := make([]domain.AccountActivity, len(activity))
	copy(sorted, activity)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AccountNumber < sorted[j].AccountNumber
	})
	return sorted
}

// buildSections groups non-zero balances by account type, each in its normal direction.
func buildSections(activity []domain.AccountActivity, types ...domain.AccountType) map[domain.AccountType]domain.ReportSection {
	sections := make(map[domain.AccountType]domain.ReportSection, len(types))
	for _, t := range types {
		sections[t] = domain.ReportSection{AccountType: t, Lines: []domain.ReportLine{}, Total: decimal.Zero}
	}
	for _, a := range sortActivity(activity) {
		section, ok := sections[a.AccountType]
		if !ok {
			continue
		}
		amount := accounting.NormalBalance(a.AccountType, a.Net())
		if amount.IsZero() {
			continue
		}
		section.Lines = append(section.Lines, domain.ReportLine{
			AccountID:     a.AccountID,
			AccountNumber: a.AccountNumber,
			AccountName:   a.AccountName,
			Amount:        amount,
		})
		section.Total = section.Total.Add(amount)
		sections[a.AccountType] = section
	}
	return sections
}

// rollUp fills the parent subtotals of every section from the tenant's account tree.
func (s *reportingService) rollUp(ctx context.Context, tenantID string, sections map[domain.AccountType]domain.ReportSection) error {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID, domain.AccountFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to load account tree for report roll-up")
		return fmt.Errorf("failed to load account tree: %w", err)
	}
	byID := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.AccountID] = a
	}
	for t, section := range sections {
		section.Rollups = rollUpLines(section.Lines, byID)
		sections[t] = section
	}
	return nil
}

// rollUpLines adds every line to its own subtotal and to each ancestor's.
// Only accounts with at least one descendant line get a rollup.
func rollUpLines(lines []domain.ReportLine, accounts map[string]domain.Account) []domain.ReportLine {
	subtotals := make(map[string]decimal.Decimal)
	parents := make(map[string]bool)
	for _, line := range lines {
		if line.AccountID == "" {
			continue
		}
		subtotals[line.AccountID] = subtotals[line.AccountID].Add(line.Amount)
		parentID := accounts[line.AccountID].ParentAccountID
		// The hierarchy is acyclic; the depth bound only guards corrupt data.
		for depth := 0; parentID != "" && depth < len(accounts); depth++ {
			subtotals[parentID] = subtotals[parentID].Add(line.Amount)
			parents[parentID] = true
			parentID = accounts[parentID].ParentAccountID
		}
	}
	if len(parents) == 0 {
		return nil
	}

	rollups := make([]domain.ReportLine, 0, len(parents))
	for id := range parents {
		acc := accounts[id]
		rollups = append(rollups, domain.ReportLine{
			AccountID:     id,
			AccountNumber: acc.AccountNumber,
			AccountName:   acc.Name,
			Amount:        subtotals[id],
		})
	}
	sort.Slice(rollups, func(i, j int) bool { return rollups[i].AccountNumber < rollups[j].AccountNumber })
	return rollups
}

// groupByEntry splits ordered posted lines into per-entry groups, keeping entry order.
func groupByEntry(lines []domain.PostedLine) [][]domain.PostedLine {
	var groups [][]domain.PostedLine
	index := make(map[string]int)
	for _, l := range lines {
		i, ok := index[l.EntryID]
		if !ok {
			i = len(groups)
			index[l.EntryID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], l)
	}
	return groups
}

func cashFlowSection(activity domain.CashFlowActivity, items map[string]*domain.CashFlowItem) domain.CashFlowSection {
	section := domain.CashFlowSection{Activity: activity, Items: []domain.CashFlowItem{}, Total: decimal.Zero}
	for _, item := range items {
		if item.Amount.IsZero() {
			continue
		}
		section.Items = append(section.Items, *item)
		section.Total = section.Total.Add(item.Amount)
	}
	sort.Slice(section.Items, func(i, j int) bool {
		return section.Items[i].AccountNumber < section.Items[j].AccountNumber
	})
	return section
}
