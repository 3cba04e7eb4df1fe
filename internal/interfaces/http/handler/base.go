package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainexport "github.com/resale/backend/internal/domain/export"
	"github.com/resale/backend/internal/domain/listing"
	"github.com/resale/backend/internal/domain/pricing"
	"github.com/resale/backend/internal/domain/session"
	"github.com/resale/backend/internal/domain/shared"
	"github.com/resale/backend/internal/infrastructure/ebay"
	"github.com/resale/backend/internal/interfaces/http/dto"
)

// RequestIDKey is the gin context key the request-id middleware sets
const RequestIDKey = "request_id"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return ""
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// ErrorWithCode sends an error response, deriving status code from error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// draftID binds and parses the :id path parameter, writing the 400 itself
// when the id is malformed.
func (h *BaseHandler) draftID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "invalid draft id")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "invalid draft id")
		return uuid.Nil, false
	}
	return id, true
}

// HandleError maps service errors to HTTP responses. Draft lookups map to
// 404, validation sentinels to 400, marketplace transport failures to 502.
// Anything unrecognized is masked as an internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, ebay.ErrNoPolicies):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, err.Error())
	case errors.Is(err, session.ErrTooManyImages),
		errors.Is(err, listing.ErrMissingRecord),
		errors.Is(err, listing.ErrMissingImages),
		errors.Is(err, listing.ErrMissingPrice),
		errors.Is(err, listing.ErrInvalidConditionScore),
		errors.Is(err, domainexport.ErrUnknownPlatform),
		errors.Is(err, domainexport.ErrMissingPrice),
		errors.Is(err, pricing.ErrEmptyQuery):
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, err.Error())
	case errors.Is(err, ebay.ErrUnavailable):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamUnavailable, err.Error())
	default:
		h.InternalError(c, "An unexpected error occurred")
	}
}
