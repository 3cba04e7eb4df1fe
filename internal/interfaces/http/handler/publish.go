package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/resale/backend/internal/application/publish"
	"github.com/resale/backend/internal/domain/listing"
	"github.com/resale/backend/internal/infrastructure/ebay"
	"github.com/resale/backend/internal/infrastructure/logger"
	"github.com/resale/backend/internal/interfaces/http/dto"
)

// Publisher runs the listing pipeline for a draft.
type Publisher interface {
	Publish(ctx context.Context, req publish.Request) (*publish.Result, error)
}

// PublishRequest carries the publish-time choices for one draft.
type PublishRequest struct {
	// Overrides are caller corrections merged into the record before listing
	Overrides *listing.Overrides `json:"overrides"`
	// Price is the chosen start price
	Price decimal.Decimal `json:"price"`
	// ListingType is FixedPriceItem or Chinese; empty picks the default
	ListingType string `json:"listing_type"`
	// BuyItNowPrice is honored on auction listings only
	BuyItNowPrice decimal.Decimal `json:"buy_it_now_price"`
	// BestOffer enables offer negotiation on fixed-price listings
	BestOffer bool `json:"best_offer"`
}

// PublishHandler handles listing publication HTTP requests
type PublishHandler struct {
	BaseHandler
	drafts    DraftService
	publisher Publisher
	logger    *zap.Logger
}

// NewPublishHandler creates a new publish handler
func NewPublishHandler(drafts DraftService, publisher Publisher, logger *zap.Logger) *PublishHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublishHandler{drafts: drafts, publisher: publisher, logger: logger}
}

// RegisterRoutes registers publish routes
func (h *PublishHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/drafts/:id/publish", h.Publish)
}

// Publish lists a draft on the marketplace
// POST /api/v1/drafts/:id/publish
//
// A marketplace rejection comes back as 422 with the assembled result in the
// data field and the verbatim rejection reason in the error. Transport
// failures come back as 502 and are safe to retry.
func (h *PublishHandler) Publish(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, err.Error())
		return
	}

	draft, err := h.drafts.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	// the request-scoped logger already carries request_id and draft_id
	log := logger.FromContext(c.Request.Context())

	result, err := h.publisher.Publish(c.Request.Context(), publish.Request{
		Draft:         draft,
		Overrides:     req.Overrides,
		Price:         req.Price,
		ListingType:   req.ListingType,
		BuyItNowPrice: req.BuyItNowPrice,
		BestOffer:     req.BestOffer,
	})
	if err != nil {
		if errors.Is(err, ebay.ErrUnavailable) {
			log.Warn("marketplace unavailable", zap.Error(err))
		}
		h.HandleError(c, err)
		return
	}

	if !result.Success {
		log.Info("listing rejected", zap.String("reason", result.Error))
		c.JSON(http.StatusUnprocessableEntity, dto.Response{
			Success: false,
			Data:    result,
			Error: &dto.ErrorInfo{
				Code:      dto.ErrCodeListingRejected,
				Message:   result.Error,
				RequestID: getRequestID(c),
			},
		})
		return
	}

	log.Info("listing published", zap.String("item_id", result.ItemID))
	h.Success(c, result)
}
