package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/handlers"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntry(ctx context.Context, tenantID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}
func (m *MockJournalService) CreateDraft(ctx context.Context, tenantID string, req dto.CreateDraftRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) UpdateDraft(ctx context.Context, tenantID string, entryID string, req dto.UpdateDraftRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) CancelDraft(ctx context.Context, tenantID string, entryID string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock PostingService ---
type MockPostingService struct {
	mock.Mock
}

func (m *MockPostingService) PostEntry(ctx context.Context, tenantID string, entryID string, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.PostingSvc = (*MockPostingService)(nil)

// --- Mock ReversalService ---
type MockReversalService struct {
	mock.Mock
}

func (m *MockReversalService) ReverseEntry(ctx context.Context, tenantID string, entryID string, req dto.ReverseEntryRequest, actorID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.ReversalSvc = (*MockReversalService)(nil)

type JournalHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	journal   *MockJournalService
	posting   *MockPostingService
	reversal  *MockReversalService
	jwtSecret string
	tenantID  string
	actorID   string
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.tenantID = uuid.NewString()
	suite.actorID = uuid.NewString()
	suite.journal = new(MockJournalService)
	suite.posting = new(MockPostingService)
	suite.reversal = new(MockReversalService)
	suite.router = newTestRouter(suite.jwtSecret, &portssvc.ServiceContainer{
		Journal:  suite.journal,
		Posting:  suite.posting,
		Reversal: suite.reversal,
	})
}

func (suite *JournalHandlerTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	url := fmt.Sprintf("/api/v1/tenants/%s%s", suite.tenantID, path)
	req, _ := http.NewRequest(method, url, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+generateTestToken(suite.jwtSecret, suite.actorID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *JournalHandlerTestSuite) TestCreateDraft_Success() {
	entry := &domain.JournalEntry{EntryID: "e1", EntryNumber: 7, Status: domain.Draft}
	suite.journal.On("CreateDraft", mock.Anything, suite.tenantID,
		mock.MatchedBy(func(r dto.CreateDraftRequest) bool {
			return len(r.Lines) == 2 && r.Lines[0].Debit.Equal(decimal.RequireFromString("500.00")) &&
				r.Date.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
		}),
		suite.actorID,
	).Return(entry, nil).Once()

	body := `{"date":"2024-01-15","description":"Cash sale","lines":[
		{"accountID":"cash","debit":"500.00"},
		{"accountID":"sales","credit":"500.00"}]}`
	w := suite.do(http.MethodPost, "/entries", body)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(7), resp.EntryNumber)
	suite.Equal(domain.Draft, resp.Status)
	suite.journal.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateDraft_NegativeAmountRejectedAtBinding() {
	body := `{"date":"2024-01-15T00:00:00Z","lines":[
		{"accountID":"cash","debit":"-5"},
		{"accountID":"sales","credit":"5"}]}`
	w := suite.do(http.MethodPost, "/entries", body)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journal.AssertNotCalled(suite.T(), "CreateDraft")
}

func (suite *JournalHandlerTestSuite) TestPostEntry_Unbalanced() {
	suite.posting.On("PostEntry", mock.Anything, suite.tenantID, "e1", suite.actorID).
		Return(nil, fmt.Errorf("entry #1: %w", &apperrors.UnbalancedEntryError{
			Debit:  decimal.RequireFromString("500.00"),
			Credit: decimal.RequireFromString("400.00"),
		})).Once()

	w := suite.do(http.MethodPost, "/entries/e1/post", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	var body handlers.ErrorResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("500", body.Debit)
	suite.Equal("400", body.Credit)
}

func (suite *JournalHandlerTestSuite) TestPostEntry_StatusMapping() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "already posted", err: apperrors.ErrEntryNotDraft, status: http.StatusConflict},
		{name: "inactive account", err: apperrors.ErrAccountInactive, status: http.StatusConflict},
		{name: "unknown entry", err: apperrors.NewNotFoundError("journal entry e1"), status: http.StatusNotFound},
		{name: "retries exhausted", err: apperrors.ErrConcurrency, status: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.posting.On("PostEntry", mock.Anything, suite.tenantID, "e1", suite.actorID).Return(nil, tt.err).Once()
			w := suite.do(http.MethodPost, "/entries/e1/post", "")
			suite.Equal(tt.status, w.Code)
		})
	}
}

func (suite *JournalHandlerTestSuite) TestReverseEntry() {
	reversal := &domain.JournalEntry{EntryID: "r1", OriginalEntryID: "e1", Status: domain.Posted}
	suite.reversal.On("ReverseEntry", mock.Anything, suite.tenantID, "e1",
		mock.MatchedBy(func(r dto.ReverseEntryRequest) bool { return r.Reason == "duplicate" && r.Date == nil }),
		suite.actorID,
	).Return(reversal, nil).Once()

	w := suite.do(http.MethodPost, "/entries/e1/reverse", `{"reason":"duplicate"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.EntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("e1", resp.OriginalEntryID)

	w = suite.do(http.MethodPost, "/entries/e1/reverse", `{}`)
	suite.Equal(http.StatusBadRequest, w.Code, "reason is required")
	suite.reversal.AssertNumberOfCalls(suite.T(), "ReverseEntry", 1)
}

func (suite *JournalHandlerTestSuite) TestListEntries_BindsQuery() {
	suite.journal.On("ListEntries", mock.Anything, suite.tenantID,
		mock.MatchedBy(func(p dto.ListEntriesParams) bool {
			return p.Status == "POSTED" && p.SortBy == "amount" && p.Order == "asc" && p.Limit == 5 &&
				p.FromDate != nil && p.FromDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		}),
	).Return(&dto.ListEntriesResponse{Entries: []dto.EntryResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, "/entries?status=POSTED&sort=amount&order=asc&limit=5&from=2024-01-01", "")
	suite.Equal(http.StatusOK, w.Code)
	suite.journal.AssertExpectations(suite.T())

	w = suite.do(http.MethodGet, "/entries?status=OPEN", "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestCancelDraft_NotDraft() {
	suite.journal.On("CancelDraft", mock.Anything, suite.tenantID, "e1", suite.actorID).
		Return(nil, apperrors.ErrEntryNotDraft).Once()
	w := suite.do(http.MethodPost, "/entries/e1/cancel", "")
	suite.Equal(http.StatusConflict, w.Code)
}

func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
