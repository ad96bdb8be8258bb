package services

import (
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CashFlowRule maps counterpart lines to a cash flow bucket. Every criterion
// that is set must match; a rule without criteria never matches.
type CashFlowRule struct {
	AccountNumberPrefix string
	AccountType         domain.AccountType
	ProjectID           string
	Activity            domain.CashFlowActivity
}

func (r CashFlowRule) matches(line domain.PostedLine) bool {
	if r.AccountNumberPrefix == "" && r.AccountType == "" && r.ProjectID == "" {
		return false
	}
	if r.AccountNumberPrefix != "" && !strings.HasPrefix(line.AccountNumber, r.AccountNumberPrefix) {
		return false
	}
	if r.AccountType != "" && r.AccountType != line.AccountType {
		return false
	}
	if r.ProjectID != "" && r.ProjectID != line.ProjectID {
		return false
	}
	return true
}

// CashFlowPolicy decides which accounts hold cash and how counterpart lines
// are classified. Rules are tried in order; the first match wins.
type CashFlowPolicy struct {
	CashAccountNumbers []string
	Rules              []CashFlowRule
}

// NewCashFlowPolicy builds a policy from cash account numbers and the account
// number prefixes of investing and financing counterparts. Investing prefixes
// are tried first. Equity accounts fall back to financing.
func NewCashFlowPolicy(cashAccountNumbers, investingPrefixes, financingPrefixes []string) CashFlowPolicy {
	p := CashFlowPolicy{CashAccountNumbers: trimAll(cashAccountNumbers)}
	for _, prefix := range trimAll(investingPrefixes) {
		p.Rules = append(p.Rules, CashFlowRule{AccountNumberPrefix: prefix, Activity: domain.InvestingActivity})
	}
	for _, prefix := range trimAll(financingPrefixes) {
		p.Rules = append(p.Rules, CashFlowRule{AccountNumberPrefix: prefix, Activity: domain.FinancingActivity})
	}
	return p
}

// IsCash reports whether the account number is one of the cash accounts.
func (p CashFlowPolicy) IsCash(accountNumber string) bool {
	for _, n := range p.CashAccountNumbers {
		if n == accountNumber {
			return true
		}
	}
	return false
}

// Classify returns the bucket of a counterpart line.
func (p CashFlowPolicy) Classify(line domain.PostedLine) domain.CashFlowActivity {
	for _, r := range p.Rules {
		if r.matches(line) {
			return r.Activity
		}
	}
	if line.AccountType == domain.Equity {
		return domain.FinancingActivity
	}
	return domain.OperatingActivity
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
