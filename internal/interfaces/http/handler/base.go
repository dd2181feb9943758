// Package handler holds the gin handlers of the invoicing API. Handlers read
// from a state snapshot and route every change through state.Store.Update.
package handler

import (
	"errors"
	"net/http"

	"github.com/erp/invoicing/internal/application/state"
	"github.com/erp/invoicing/internal/infrastructure/logger"
	"github.com/erp/invoicing/internal/interfaces/http/dto"
	"github.com/erp/invoicing/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessList sends a whole collection with its size in meta
func (h *BaseHandler) SuccessList(c *gin.Context, data any, total int) {
	c.JSON(http.StatusOK, dto.NewListResponse(data, total))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// fail sends an error response with the status registered for code
func (h *BaseHandler) fail(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.fail(c, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.fail(c, dto.ErrCodeNotFound, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		middleware.GetRequestID(c),
		details,
	))
}

// HandleError converts transport errors to HTTP responses. Anything it does
// not recognize is reported as a 500 without leaking the message.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.fail(c, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		return
	}

	h.fail(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindJSON decodes and validates the request body into obj. It writes the
// error response itself and reports whether the handler may continue.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	if details := middleware.ValidationDetails(err); details != nil {
		h.ValidationError(c, details)
		return false
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.HandleError(c, err)
		return false
	}
	h.fail(c, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
	return false
}

// bindIDs decodes the {ids} body of the bulk endpoints
func (h *BaseHandler) bindIDs(c *gin.Context) ([]string, bool) {
	var req dto.IDsRequest
	if !h.BindJSON(c, &req) {
		return nil, false
	}
	return req.IDs, true
}

// includeDeleted reads the include_deleted list flag
func (h *BaseHandler) includeDeleted(c *gin.Context) (bool, bool) {
	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query: "+err.Error())
		return false, false
	}
	return q.IncludeDeleted, true
}

// mutate runs op against the latest state while holding the store lock and
// commits the delta it returns.
func mutate[T any](c *gin.Context, store *state.Store, op func(state.State) (T, state.Delta)) T {
	ctx := c.Request.Context()
	var (
		out     T
		changed []string
	)
	store.Update(ctx, func(st state.State) state.Delta {
		result, d := op(st)
		out, changed = result, d.Changed()
		return d
	})
	if len(changed) > 0 {
		logger.L(ctx).Debug("State committed", zap.Strings("changed", changed))
	}
	return out
}

// respondMatched writes the records a bulk operation touched, or 404 when
// no id matched.
func respondMatched[T any](h *BaseHandler, c *gin.Context, records []T, entity string) {
	if records == nil {
		h.NotFound(c, "No matching "+entity+" found")
		return
	}
	h.Success(c, records)
}

// orEmpty keeps "nothing matched" a JSON array instead of null
func orEmpty[T any](records []T) []T {
	if records == nil {
		return []T{}
	}
	return records
}
