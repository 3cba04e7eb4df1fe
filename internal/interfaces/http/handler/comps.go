package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resale/backend/internal/domain/pricing"
	"github.com/resale/backend/internal/interfaces/http/dto"
)

// CompsAnalyzer computes price intelligence for a search query.
type CompsAnalyzer interface {
	Analyze(ctx context.Context, query string) (pricing.Intelligence, error)
}

// CompsRequest is a comparable-sales analysis request.
type CompsRequest struct {
	Query string `json:"query" binding:"required"`
}

// CompsHandler handles price intelligence HTTP requests
type CompsHandler struct {
	BaseHandler
	analyzer CompsAnalyzer
	logger   *zap.Logger
}

// NewCompsHandler creates a new comps handler
func NewCompsHandler(analyzer CompsAnalyzer, logger *zap.Logger) *CompsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompsHandler{analyzer: analyzer, logger: logger}
}

// RegisterRoutes registers comps routes
func (h *CompsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/comps", h.Analyze)
}

// Analyze computes price intelligence for a search query
// POST /api/v1/comps
func (h *CompsHandler) Analyze(c *gin.Context) {
	var req CompsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	report, err := h.analyzer.Analyze(c.Request.Context(), req.Query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
