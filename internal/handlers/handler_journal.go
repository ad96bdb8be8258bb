package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService  portssvc.JournalSvcFacade
	postingService  portssvc.PostingSvc
	reversalService portssvc.ReversalSvc
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade, ps portssvc.PostingSvc, rs portssvc.ReversalSvc) *journalHandler {
	return &journalHandler{
		journalService:  js,
		postingService:  ps,
		reversalService: rs,
	}
}

// registerEntryRoutes registers the draft lifecycle, posting and reversal routes.
func registerEntryRoutes(rg *gin.RouterGroup, js portssvc.JournalSvcFacade, ps portssvc.PostingSvc, rs portssvc.ReversalSvc) {
	h := newJournalHandler(js, ps, rs)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createDraft)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PATCH("/:entry_id", h.updateDraft)
		entries.POST("/:entry_id/cancel", h.cancelDraft)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}
}

// createDraft godoc
// @Summary Create a draft journal entry
// @Description Stores a draft and assigns the next gapless entry number of the tenant. The draft need not balance yet.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry body dto.CreateDraftRequest true "Draft header and lines"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid lines"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Unknown account"
// @Failure 409 {object} ErrorResponse "Inactive account"
// @Failure 500 {object} ErrorResponse "Failed to create draft"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries [post]
func (h *journalHandler) createDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateDraft(c.Request.Context(), c.Param("tenant_id"), req, actorID)
	if err != nil {
		respondError(c, err, "Failed to create draft")
		return
	}

	logger.Info("Draft created", slog.String("entry_id", entry.EntryID), slog.Int64("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("tenant_id"), c.Param("entry_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Filters by date range, account, status, amount and text; pages with an opaque token
// @Tags entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   from query string false "First entry date (YYYY-MM-DD)"
// @Param   to query string false "Last entry date (YYYY-MM-DD)"
// @Param   account_id query string false "Only entries with a line on this account"
// @Param   status query string false "Entry status" Enums(DRAFT, POSTED, CANCELLED, REVERSED)
// @Param   min_amount query string false "Minimum total debit"
// @Param   max_amount query string false "Maximum total debit"
// @Param   q query string false "Text in description or reference"
// @Param   sort query string false "Sort field" Enums(date, entryNumber, amount) default(date)
// @Param   order query string false "Sort order" Enums(asc, desc) default(desc)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list entries"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), c.Param("tenant_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateDraft godoc
// @Summary Edit a draft
// @Description Patches header fields; a lines array replaces every line. Only drafts can be edited.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Param   entry body dto.UpdateDraftRequest true "Fields to change"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid lines"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry is not a draft"
// @Failure 500 {object} ErrorResponse "Failed to update draft"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id} [patch]
func (h *journalHandler) updateDraft(c *gin.Context) {
	var req dto.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	entry, err := h.journalService.UpdateDraft(c.Request.Context(), c.Param("tenant_id"), c.Param("entry_id"), req, actorID)
	if err != nil {
		respondError(c, err, "Failed to update draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// cancelDraft godoc
// @Summary Cancel a draft
// @Description The entry keeps its number so the sequence stays gapless
// @Tags entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry is not a draft"
// @Failure 500 {object} ErrorResponse "Failed to cancel draft"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id}/cancel [post]
func (h *journalHandler) cancelDraft(c *gin.Context) {
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	entry, err := h.journalService.CancelDraft(c.Request.Context(), c.Param("tenant_id"), c.Param("entry_id"), actorID)
	if err != nil {
		respondError(c, err, "Failed to cancel draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft
// @Description Verifies the draft balances and applies every line to its account balance atomically
// @Tags entries
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Unbalanced or malformed entry"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Entry or account not found"
// @Failure 409 {object} ErrorResponse "Entry is not a draft or an account is inactive"
// @Failure 503 {object} ErrorResponse "Concurrent modification, retry"
// @Failure 500 {object} ErrorResponse "Failed to post entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := requireActor(c)
	if !ok {
		return
	}
	entry, err := h.postingService.PostEntry(c.Request.Context(), c.Param("tenant_id"), c.Param("entry_id"), actorID)
	if err != nil {
		respondError(c, err, "Failed to post entry")
		return
	}
	logger.Info("Entry posted", slog.String("entry_id", entry.EntryID), slog.Int64("entry_number", entry.EntryNumber))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted entry
// @Description Posts a mirror entry and marks the original REVERSED. Returns the new reversal entry.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   tenant_id path string true "Tenant ID"
// @Param   entry_id path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reason and optional date"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Missing reason or date before the original"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry not posted or already reversed"
// @Failure 503 {object} ErrorResponse "Concurrent modification, retry"
// @Failure 500 {object} ErrorResponse "Failed to reverse entry"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	reversal, err := h.reversalService.ReverseEntry(c.Request.Context(), c.Param("tenant_id"), c.Param("entry_id"), req, actorID)
	if err != nil {
		respondError(c, err, "Failed to reverse entry")
		return
	}
	logger.Info("Entry reversed",
		slog.String("original_entry_id", reversal.OriginalEntryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}
