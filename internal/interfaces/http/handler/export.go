package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appexport "github.com/resale/backend/internal/application/export"
	"github.com/resale/backend/internal/interfaces/http/dto"
)

// Exporter renders peer platform export payloads for a draft.
type Exporter interface {
	Export(ctx context.Context, req appexport.Request) (*appexport.Result, error)
	Platforms() []string
}

// ExportRequest selects the platforms and pricing for a draft export.
type ExportRequest struct {
	// Price is the chosen listing price the formatters adjust per platform
	Price decimal.Decimal `json:"price"`
	// PhotoURLs are hosted photo URLs carried into the payloads
	PhotoURLs []string `json:"photo_urls"`
	// Platforms selects which platforms to render; empty means all
	Platforms []string `json:"platforms"`
}

// ExportHandler handles peer platform export HTTP requests
type ExportHandler struct {
	BaseHandler
	drafts   DraftService
	exporter Exporter
	logger   *zap.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(drafts DraftService, exporter Exporter, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{drafts: drafts, exporter: exporter, logger: logger}
}

// RegisterRoutes registers export routes
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/drafts/:id/export", h.Export)
	rg.GET("/platforms", h.Platforms)
}

// Export renders the selected platform payloads for a draft
// POST /api/v1/drafts/:id/export
func (h *ExportHandler) Export(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	draft, err := h.drafts.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.exporter.Export(c.Request.Context(), appexport.Request{
		Draft:     draft,
		Price:     req.Price,
		PhotoURLs: req.PhotoURLs,
		Platforms: req.Platforms,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("draft exported",
		zap.String("draft_id", id.String()),
		zap.Int("platforms", len(result.Exports)))
	h.Success(c, result)
}

// Platforms lists the platform keys available for export
// GET /api/v1/platforms
func (h *ExportHandler) Platforms(c *gin.Context) {
	h.Success(c, gin.H{"platforms": h.exporter.Platforms()})
}
