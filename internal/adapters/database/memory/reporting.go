package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func inWindow(date time.Time, from *time.Time, to time.Time) bool {
	if date.After(domain.DateOnly(to)) {
		return false
	}
	return from == nil || !date.Before(domain.DateOnly(*from))
}

// AccountActivity implements ReportingRepository.
func (s *Store) AccountActivity(_ context.Context, tenantID string, from *time.Time, to time.Time) ([]domain.AccountActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byAccount := make(map[string]*domain.AccountActivity)
	for _, e := range s.entries {
		if e.TenantID != tenantID || !e.Status.IsReportable() || !inWindow(e.EntryDate, from, to) {
			continue
		}
		for _, l := range e.Lines {
			a, ok := byAccount[l.AccountID]
			if !ok {
				acc := s.accounts[l.AccountID]
				a = &domain.AccountActivity{
					AccountID:     l.AccountID,
					AccountNumber: acc.AccountNumber,
					AccountName:   acc.Name,
					AccountType:   acc.AccountType,
				}
				byAccount[l.AccountID] = a
			}
			a.Debit = a.Debit.Add(l.Debit)
			a.Credit = a.Credit.Add(l.Credit)
		}
	}

	out := make([]domain.AccountActivity, 0, len(byAccount))
	for _, a := range byAccount {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out, nil
}

// PostedLines implements ReportingRepository.
func (s *Store) PostedLines(_ context.Context, tenantID string, filter domain.PostedLineFilter) ([]domain.PostedLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.PostedLine
	for _, e := range s.entries {
		if e.TenantID != tenantID || !e.Status.IsReportable() || !inWindow(e.EntryDate, filter.From, filter.To) {
			continue
		}
		for _, l := range e.Lines {
			if filter.AccountID != "" && l.AccountID != filter.AccountID {
				continue
			}
			acc := s.accounts[l.AccountID]
			out = append(out, domain.PostedLine{
				EntryID:       e.EntryID,
				EntryNumber:   e.EntryNumber,
				EntryDate:     e.EntryDate,
				LineNo:        l.LineNo,
				AccountID:     l.AccountID,
				AccountNumber: acc.AccountNumber,
				AccountName:   acc.Name,
				AccountType:   acc.AccountType,
				Debit:         l.Debit,
				Credit:        l.Credit,
				CostCenterID:  l.CostCenterID,
				ProjectID:     l.ProjectID,
				Description:   l.Description,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		if a.EntryNumber != b.EntryNumber {
			return a.EntryNumber < b.EntryNumber
		}
		return a.LineNo < b.LineNo
	})
	return out, nil
}
