package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountActivity is the posted debit and credit total of one account within a date window.
type AccountActivity struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// Net returns debit minus credit.
func (a AccountActivity) Net() decimal.Decimal {
	return a.Debit.Sub(a.Credit)
}

// PostedLine is a line of a posted or reversed entry, joined with its entry and account.
type PostedLine struct {
	EntryID       string          `json:"entryID"`
	EntryNumber   int64           `json:"entryNumber"`
	EntryDate     time.Time       `json:"entryDate"`
	LineNo        int             `json:"lineNo"`
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	CostCenterID  string          `json:"costCenterID,omitempty"`
	ProjectID     string          `json:"projectID,omitempty"`
	Description   string          `json:"description,omitempty"`
}

// PostedLineFilter narrows the posted line read. From is optional, To is inclusive.
type PostedLineFilter struct {
	From      *time.Time
	To        time.Time
	AccountID string
}

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every account with a non-zero balance as of a date.
type TrialBalanceReport struct {
	TenantID    string            `json:"tenantID"`
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// ReportLine represents an account with its amount in a statement section.
type ReportLine struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Amount        decimal.Decimal `json:"amount"`
}

// ReportSection groups the lines of one account type.
type ReportSection struct {
	AccountType AccountType     `json:"accountType"`
	Lines       []ReportLine    `json:"lines"`
	Total       decimal.Decimal `json:"total"`
	// Rollups holds one subtotal per parent account: its own amount plus the
	// amounts of all its descendants in this section.
	Rollups []ReportLine `json:"rollups,omitempty"`
}

// IncomeStatement summarises revenue and expense activity within a date range.
type IncomeStatement struct {
	TenantID     string          `json:"tenantID"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	Revenue      ReportSection   `json:"revenue"`
	Expenses     ReportSection   `json:"expenses"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetIncome    decimal.Decimal `json:"netIncome"`
}

// BalanceSheet reports asset, liability and equity balances as of a date.
type BalanceSheet struct {
	TenantID    string        `json:"tenantID"`
	AsOf        time.Time     `json:"asOf"`
	Assets      ReportSection `json:"assets"`
	Liabilities ReportSection `json:"liabilities"`
	Equity      ReportSection `json:"equity"`
	// CurrentEarnings is cumulative revenue minus expense up to AsOf. It is
	// included in TotalEquity since the ledger has no closing entries.
	CurrentEarnings  decimal.Decimal `json:"currentEarnings"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	BalanceCheck     bool            `json:"balanceCheck"`
}

// CashFlowActivity is a cash flow statement bucket.
type CashFlowActivity string

const (
	OperatingActivity CashFlowActivity = "OPERATING"
	InvestingActivity CashFlowActivity = "INVESTING"
	FinancingActivity CashFlowActivity = "FINANCING"
)

// CashFlowItem is the cash effect attributed to one counterpart account.
type CashFlowItem struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	AccountName   string          `json:"accountName"`
	Amount        decimal.Decimal `json:"amount"`
}

// CashFlowSection is one bucket of the cash flow statement.
type CashFlowSection struct {
	Activity CashFlowActivity `json:"activity"`
	Items    []CashFlowItem   `json:"items"`
	Total    decimal.Decimal  `json:"total"`
}

// CashFlowStatement classifies cash movement within a date range.
type CashFlowStatement struct {
	TenantID    string          `json:"tenantID"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	Operating   CashFlowSection `json:"operating"`
	Investing   CashFlowSection `json:"investing"`
	Financing   CashFlowSection `json:"financing"`
	NetChange   decimal.Decimal `json:"netChange"`
	OpeningCash decimal.Decimal `json:"openingCash"`
	ClosingCash decimal.Decimal `json:"closingCash"`
}

// AccountLedgerLine is a posted line with the account balance after it.
type AccountLedgerLine struct {
	PostedLine
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountLedger is the statement of a single account over a date range.
type AccountLedger struct {
	Account        Account             `json:"account"`
	FromDate       *time.Time          `json:"fromDate,omitempty"`
	ToDate         time.Time           `json:"toDate"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	Lines          []AccountLedgerLine `json:"lines"`
	ClosingBalance decimal.Decimal     `json:"closingBalance"`
}
