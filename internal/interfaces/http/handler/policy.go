package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resale/backend/internal/infrastructure/ebay"
)

// PolicyProvider loads the seller's business policies.
type PolicyProvider interface {
	FetchPolicies(ctx context.Context) (*ebay.SellerPolicies, error)
}

// PolicyHandler handles seller policy HTTP requests
type PolicyHandler struct {
	BaseHandler
	provider PolicyProvider
	logger   *zap.Logger
}

// NewPolicyHandler creates a new policy handler
func NewPolicyHandler(provider PolicyProvider, logger *zap.Logger) *PolicyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PolicyHandler{provider: provider, logger: logger}
}

// RegisterRoutes registers policy routes
func (h *PolicyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/policies", h.List)
}

// List returns the seller's business policies
// GET /api/v1/policies
func (h *PolicyHandler) List(c *gin.Context) {
	policies, err := h.provider.FetchPolicies(c.Request.Context())
	if err != nil {
		h.logger.Warn("policy fetch failed", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, policies)
}
