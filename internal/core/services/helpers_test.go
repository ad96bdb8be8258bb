package services_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/adapters/database/memory"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

const (
	testTenant = "tenant-1"
	testActor  = "actor-1"
)

var testNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

// --- Mock AuditSink ---
type MockAuditSink struct {
	mock.Mock
}

var _ portssvc.AuditSink = (*MockAuditSink)(nil)

func (m *MockAuditSink) Record(ctx context.Context, fact domain.AuditFact) error {
	args := m.Called(ctx, fact)
	return args.Error(0)
}

// --- Mock Notifier ---
type MockNotifier struct {
	mock.Mock
}

var _ portssvc.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(ctx context.Context, event domain.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// countingTxRunner fails the first `failures` attempts with err, then delegates.
type countingTxRunner struct {
	inner    portsrepo.TxRunner
	failures int32
	err      error
	attempts atomic.Int32
}

func (r *countingTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	n := r.attempts.Add(1)
	if n <= r.failures {
		return r.err
	}
	return r.inner.RunInTx(ctx, fn)
}

// ledger wires every service over a fresh memory store.
type ledger struct {
	store    *memory.Store
	audit    *MockAuditSink
	notifier *MockNotifier

	Account   portssvc.AccountSvcFacade
	Journal   portssvc.JournalSvcFacade
	Posting   portssvc.PostingSvc
	Reversal  portssvc.ReversalSvc
	Reporting portssvc.ReportingSvc
}

func fastRetry() services.RetryPolicy {
	return services.RetryPolicy{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		AttemptTimeout:  5 * time.Second,
	}
}

func newLedger(t *testing.T) *ledger {
	t.Helper()
	return newLedgerWithRunner(t, nil)
}

// newLedgerWithRunner wraps the store's TxRunner for posting and reversal when wrap is set.
func newLedgerWithRunner(t *testing.T, wrap func(portsrepo.TxRunner) portsrepo.TxRunner) *ledger {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()

	audit := new(MockAuditSink)
	audit.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Maybe()

	reporting := services.NewReportingService(repos.ReportingRepo, repos.AccountRepo,
		services.WithCashFlowPolicy(services.NewCashFlowPolicy([]string{"1000"}, []string{"15"}, []string{"25"})))
	opts := []services.ServiceOption{services.WithAuditSink(audit), services.WithClock(testClock)}

	runner := repos.TxRunner
	if wrap != nil {
		runner = wrap(runner)
	}
	deps := services.LedgerWriterDeps{
		TxRunner: runner,
		Scale:    domain.DefaultCurrencyScale,
		Retry:    fastRetry(),
		Notifier: notifier,
	}

	return &ledger{
		store:     store,
		audit:     audit,
		notifier:  notifier,
		Account:   services.NewAccountService(repos.AccountRepo, opts...),
		Journal:   services.NewJournalService(repos.AccountRepo, repos.JournalRepo, repos.TxRunner, domain.DefaultCurrencyScale, opts...),
		Posting:   services.NewPostingService(deps, opts...),
		Reversal:  services.NewReversalService(deps, opts...),
		Reporting: reporting,
	}
}

func (l *ledger) account(t *testing.T, number, name string, typ domain.AccountType) *domain.Account {
	t.Helper()
	acc, err := l.Account.CreateAccount(context.Background(), testTenant, dto.CreateAccountRequest{
		AccountNumber: number,
		Name:          name,
		AccountType:   typ,
	}, testActor)
	require.NoError(t, err)
	return acc
}

func (l *ledger) draft(t *testing.T, day string, lines ...dto.LineRequest) *domain.JournalEntry {
	t.Helper()
	entry, err := l.Journal.CreateDraft(context.Background(), testTenant, dto.CreateDraftRequest{
		Date:        date(day),
		Description: "test entry",
		Lines:       lines,
	}, testActor)
	require.NoError(t, err)
	return entry
}

func (l *ledger) post(t *testing.T, day string, lines ...dto.LineRequest) *domain.JournalEntry {
	t.Helper()
	d := l.draft(t, day, lines...)
	posted, err := l.Posting.PostEntry(context.Background(), testTenant, d.EntryID, testActor)
	require.NoError(t, err)
	return posted
}

func (l *ledger) balance(t *testing.T, accountID string) decimal.Decimal {
	t.Helper()
	acc, err := l.Account.GetAccountByID(context.Background(), testTenant, accountID)
	require.NoError(t, err)
	return acc.Balance
}

func dr(accountID, amount string) dto.LineRequest {
	return dto.LineRequest{AccountID: accountID, Debit: dec(amount)}
}

func cr(accountID, amount string) dto.LineRequest {
	return dto.LineRequest{AccountID: accountID, Credit: dec(amount)}
}
