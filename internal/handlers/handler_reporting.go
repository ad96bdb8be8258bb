package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
	now              func() time.Time
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		now:              time.Now,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/cash-flow", h.getCashFlowStatement)
		reportingGroup.GET("/accounts/:id/ledger", h.getAccountLedger)
	}
}

func (h *reportingHandler) asOfOrToday(asOf *time.Time) time.Time {
	if asOf != nil {
		return *asOf
	}
	return h.now().UTC()
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Lists every account with a non-zero balance as of a date. Fails with 500 if debits and credits disagree.
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param as_of query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid date format. Use YYYY-MM-DD", err)
		return
	}
	asOf := h.asOfOrToday(params.AsOf)

	report, err := h.reportingService.TrialBalance(c.Request.Context(), c.Param("tenant_id"), asOf)
	if err != nil {
		respondError(c, err, "Failed to generate trial balance report")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Trial balance report generated",
		slog.String("as_of", asOf.Format(time.DateOnly)),
		slog.Int("row_count", len(report.Rows)))
	c.JSON(http.StatusOK, report)
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Revenue, expenses and net income within an inclusive date range
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.IncomeStatement
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid date range. Use from and to as YYYY-MM-DD", err)
		return
	}
	report, err := h.reportingService.IncomeStatement(c.Request.Context(), c.Param("tenant_id"), params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to generate income statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Generate balance sheet
// @Description Assets, liabilities and equity as of a date, with current earnings inside equity
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param as_of query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.BalanceSheet
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid date format. Use YYYY-MM-DD", err)
		return
	}
	report, err := h.reportingService.BalanceSheet(c.Request.Context(), c.Param("tenant_id"), h.asOfOrToday(params.AsOf))
	if err != nil {
		respondError(c, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getCashFlowStatement godoc
// @Summary Generate cash flow statement
// @Description Cash movement within an inclusive date range split into operating, investing and financing activity
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.CashFlowStatement
// @Failure 400 {object} ErrorResponse "Invalid input or no cash accounts configured"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/cash-flow [get]
func (h *reportingHandler) getCashFlowStatement(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	var params dto.DateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid date range. Use from and to as YYYY-MM-DD", err)
		return
	}
	report, err := h.reportingService.CashFlowStatement(c.Request.Context(), c.Param("tenant_id"), params.From, params.To)
	if err != nil {
		respondError(c, err, "Failed to generate cash flow statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getAccountLedger godoc
// @Summary Account ledger
// @Description Posted lines of one account with a running raw balance
// @Tags reports
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param id path string true "Account ID"
// @Param from query string false "First date (YYYY-MM-DD); earlier lines fold into the opening balance"
// @Param to query string false "Last date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.AccountLedger
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/reports/accounts/{id}/ledger [get]
func (h *reportingHandler) getAccountLedger(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	var params dto.AccountLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid date format. Use YYYY-MM-DD", err)
		return
	}
	report, err := h.reportingService.AccountLedger(c.Request.Context(), c.Param("tenant_id"), c.Param("id"), params.From, h.asOfOrToday(params.To))
	if err != nil {
		respondError(c, err, "Failed to generate account ledger")
		return
	}
	c.JSON(http.StatusOK, report)
}
