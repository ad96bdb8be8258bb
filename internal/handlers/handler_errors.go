package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	// Debit and Credit are set when an entry was rejected as unbalanced.
	Debit  string `json:"debit,omitempty"`
	Credit string `json:"credit,omitempty"`
}

// statusForError maps an error kind to its HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrConcurrency):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body for err. Internal failures are logged
// and answered with publicMsg instead of the error text.
func respondError(c *gin.Context, err error, publicMsg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	body := ErrorResponse{Error: err.Error()}

	var unbalanced *apperrors.UnbalancedEntryError
	if errors.As(err, &unbalanced) {
		body.Debit = unbalanced.Debit.String()
		body.Credit = unbalanced.Credit.String()
	}

	switch status {
	case http.StatusInternalServerError:
		logger.Error(publicMsg, slog.String("error", err.Error()))
		if errors.Is(err, apperrors.ErrIntegrity) {
			body.Error = err.Error()
		} else {
			body.Error = publicMsg
		}
	case http.StatusServiceUnavailable:
		logger.Warn("Concurrent modification, asking client to retry", slog.String("error", err.Error()))
		c.Header("Retry-After", "1")
	default:
		logger.Warn(publicMsg, slog.String("error", err.Error()))
	}
	c.JSON(status, body)
}

// badRequest answers 400 for malformed input that never reached a service.
func badRequest(c *gin.Context, msg string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg + ": " + err.Error()})
}

// requireActor returns the authenticated actor id or answers 401.
func requireActor(c *gin.Context) (string, bool) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return actorID, true
}
