package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resale/backend/internal/domain/listing"
	"github.com/resale/backend/internal/domain/session"
	"github.com/resale/backend/internal/interfaces/http/dto"
)

// DraftService manages draft listing sessions.
type DraftService interface {
	Create(ctx context.Context, record listing.GarmentRecord, imagePaths []string) (*session.Draft, error)
	Get(ctx context.Context, id uuid.UUID) (*session.Draft, error)
	ReplaceImages(ctx context.Context, id uuid.UUID, imagePaths []string) (*session.Draft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateDraftRequest is the intake payload: an analyzed garment record plus
// the staged image files belonging to it.
type CreateDraftRequest struct {
	Record     listing.GarmentRecord `json:"record" binding:"required"`
	ImagePaths []string              `json:"image_paths"`
}

// ReplaceImagesRequest swaps a draft's staged image batch.
type ReplaceImagesRequest struct {
	ImagePaths []string `json:"image_paths" binding:"required"`
}

// DraftHandler handles draft session HTTP requests
type DraftHandler struct {
	BaseHandler
	drafts DraftService
	logger *zap.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(drafts DraftService, logger *zap.Logger) *DraftHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftHandler{drafts: drafts, logger: logger}
}

// RegisterRoutes registers draft routes
func (h *DraftHandler) RegisterRoutes(rg *gin.RouterGroup) {
	drafts := rg.Group("/drafts")
	{
		drafts.POST("", h.Create)
		drafts.GET("/:id", h.Get)
		drafts.PUT("/:id/images", h.ReplaceImages)
		drafts.DELETE("/:id", h.Delete)
	}
}

// Create opens a draft session around an analyzed record
// POST /api/v1/drafts
func (h *DraftHandler) Create(c *gin.Context) {
	var req CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	draft, err := h.drafts.Create(c.Request.Context(), req.Record, req.ImagePaths)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, draft)
}

// Get returns a draft by id
// GET /api/v1/drafts/:id
func (h *DraftHandler) Get(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	draft, err := h.drafts.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, draft)
}

// ReplaceImages swaps the draft's staged image batch
// PUT /api/v1/drafts/:id/images
func (h *DraftHandler) ReplaceImages(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req ReplaceImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	draft, err := h.drafts.ReplaceImages(c.Request.Context(), id, req.ImagePaths)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, draft)
}

// Delete removes a draft and its staged files
// DELETE /api/v1/drafts/:id
func (h *DraftHandler) Delete(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	if err := h.drafts.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
