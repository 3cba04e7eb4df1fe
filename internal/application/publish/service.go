// Package publish runs the listing pipeline: merge overrides, derive item
// specifics, resolve the category, upload photos and submit the marketplace
// envelope. Advisory lookups degrade to local defaults; rejection and
// transport failures are kept apart so the caller knows what is retryable.
package publish

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/resale/backend/internal/domain/listing"
	"github.com/resale/backend/internal/domain/session"
	"github.com/resale/backend/internal/infrastructure/ebay"
)

// CategorySuggester asks the marketplace for a category id. An empty id with
// a nil error means no suggestion.
type CategorySuggester interface {
	SuggestCategory(ctx context.Context, query string) (string, error)
}

// PolicyFetcher loads the seller's business policies.
type PolicyFetcher interface {
	FetchPolicies(ctx context.Context) (*ebay.SellerPolicies, error)
}

// ListingSubmitter submits the assembled listing envelope.
type ListingSubmitter interface {
	SubmitListing(ctx context.Context, item ebay.Item) (*ebay.ListingResult, error)
}

// PhotoUploader prepares and uploads a staged image batch, returning the
// hosted URLs of the photos that made it.
type PhotoUploader interface {
	UploadAll(ctx context.Context, imagePaths []string) ([]string, error)
}

// ServiceConfig holds the listing defaults applied to every publish.
type ServiceConfig struct {
	Currency        string
	Country         string
	ListingDuration string
	// DefaultListingType is used when the request does not pick a format
	DefaultListingType string
	PostalCode         string
	// DispatchDays is the handling time promised in the listing
	DispatchDays int
	// AdvisoryTimeout bounds the category suggestion and policy fetch;
	// both degrade to defaults when the timeout passes
	AdvisoryTimeout time.Duration
}

// DefaultServiceConfig returns the default configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Currency:           "USD",
		Country:            "US",
		ListingDuration:    "GTC",
		DefaultListingType: "FixedPriceItem",
		DispatchDays:       3,
		AdvisoryTimeout:    10 * time.Second,
	}
}

// Request is one publish attempt over a draft.
type Request struct {
	Draft     *session.Draft
	Overrides *listing.Overrides
	// Price is the chosen start price
	Price decimal.Decimal
	// ListingType picks the envelope: FixedPriceItem or Chinese (auction)
	ListingType string
	// BuyItNowPrice is optional and only honored on auction listings
	BuyItNowPrice decimal.Decimal
	// BestOffer enables offer negotiation on fixed-price listings
	BestOffer bool
}

// Result is the structured outcome of a publish. Rejections land here with
// Success false and the marketplace's verbatim reason; transport failures
// are returned as errors instead so the caller can retry.
type Result struct {
	Success    bool     `json:"success"`
	ItemID     string   `json:"item_id,omitempty"`
	ListingURL string   `json:"listing_url,omitempty"`
	CategoryID string   `json:"category_id"`
	PhotoURLs  []string `json:"photo_urls"`
	Warnings   []string `json:"warnings,omitempty"`
	// ZeroPhotos flags a listing that went out without any photos because
	// every upload failed
	ZeroPhotos bool   `json:"zero_photos,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Service is the publish pipeline.
type Service struct {
	suggester  CategorySuggester
	policies   PolicyFetcher
	submitter  ListingSubmitter
	uploader   PhotoUploader
	categories *listing.CategoryTable
	logger     *zap.Logger
	config     ServiceConfig
}

// NewService creates a publish service.
func NewService(
	suggester CategorySuggester,
	policies PolicyFetcher,
	submitter ListingSubmitter,
	uploader PhotoUploader,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		suggester:  suggester,
		policies:   policies,
		submitter:  submitter,
		uploader:   uploader,
		categories: listing.DefaultCategoryTable(),
		logger:     logger,
		config:     DefaultServiceConfig(),
	}
}

// SetConfig sets the service configuration
func (s *Service) SetConfig(config ServiceConfig) {
	if config.Currency == "" {
		config.Currency = "USD"
	}
	if config.Country == "" {
		config.Country = "US"
	}
	if config.ListingDuration == "" {
		config.ListingDuration = "GTC"
	}
	if config.DefaultListingType == "" {
		config.DefaultListingType = "FixedPriceItem"
	}
	if config.DispatchDays <= 0 {
		config.DispatchDays = 3
	}
	if config.AdvisoryTimeout <= 0 {
		config.AdvisoryTimeout = 10 * time.Second
	}
	s.config = config
}

// Publish runs the full pipeline for one draft. Validation failures and
// transport failures come back as errors; a marketplace rejection comes back
// as a Result with Success false and the verbatim reason.
func (s *Service) Publish(ctx context.Context, req Request) (*Result, error) {
	if req.Draft == nil {
		return nil, listing.ErrMissingRecord
	}
	record := req.Overrides.Apply(req.Draft.Record)
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if len(req.Draft.ImagePaths) == 0 {
		return nil, listing.ErrMissingImages
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return nil, listing.ErrMissingPrice
	}

	listingType := req.ListingType
	if listingType == "" {
		listingType = s.config.DefaultListingType
	}

	title := listing.TruncateTitle(record.Title)
	specifics := listing.DeriveSpecifics(record)

	categoryID, policies := s.advisoryLookups(ctx, title, record.Category)

	photoURLs, err := s.uploader.UploadAll(ctx, req.Draft.ImagePaths)
	if err != nil {
		return nil, err
	}

	result := &Result{
		CategoryID: categoryID,
		PhotoURLs:  photoURLs,
	}
	if len(photoURLs) == 0 {
		result.ZeroPhotos = true
		result.Warnings = append(result.Warnings, "all photo uploads failed; listing submitted without photos")
		s.logger.Warn("publishing with zero photos",
			zap.String("draft_id", req.Draft.ID.String()))
	}

	item := s.buildItem(record, req, title, listingType, categoryID, specifics, photoURLs, policies)

	submitted, err := s.submitter.SubmitListing(ctx, item)
	if err != nil {
		if errors.Is(err, ebay.ErrListingRejected) {
			result.Error = err.Error()
			return result, nil
		}
		return nil, err
	}

	result.Success = true
	result.ItemID = submitted.ItemID
	result.ListingURL = submitted.ListingURL
	result.Warnings = append(result.Warnings, submitted.Warnings...)
	return result, nil
}

// advisoryLookups runs the category suggestion and policy fetch concurrently
// under the advisory timeout. Either one failing degrades to the local
// fallback instead of failing the publish.
func (s *Service) advisoryLookups(ctx context.Context, title, categoryPath string) (string, *ebay.SellerPolicies) {
	actx, cancel := context.WithTimeout(ctx, s.config.AdvisoryTimeout)
	defer cancel()

	var (
		wg         sync.WaitGroup
		suggested  string
		suggestErr error
		policies   *ebay.SellerPolicies
		policyErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if s.suggester == nil {
			return
		}
		suggested, suggestErr = s.suggester.SuggestCategory(actx, title)
	}()
	go func() {
		defer wg.Done()
		if s.policies == nil {
			return
		}
		policies, policyErr = s.policies.FetchPolicies(actx)
	}()
	wg.Wait()

	if suggestErr != nil {
		s.logger.Warn("category suggestion failed, using local table", zap.Error(suggestErr))
		suggested = ""
	}
	if policyErr != nil {
		s.logger.Warn("policy fetch failed, submitting without seller profiles", zap.Error(policyErr))
		policies = nil
	}

	categoryID := suggested
	if categoryID == "" {
		categoryID = s.categories.Resolve(categoryPath)
	}
	return categoryID, policies
}

// buildItem assembles the listing envelope body.
func (s *Service) buildItem(
	record listing.GarmentRecord,
	req Request,
	title, listingType, categoryID string,
	specifics []listing.Specific,
	photoURLs []string,
	policies *ebay.SellerPolicies,
) ebay.Item {
	weight := listing.ShippingWeightFor(record.Category)

	item := ebay.Item{
		Title:                  title,
		Description:            ebay.CDATA{Text: listing.BuildDescriptionHTML(record)},
		PrimaryCategory:        ebay.PrimaryCategory{CategoryID: categoryID},
		CategoryMappingAllowed: true,
		StartPrice: ebay.Amount{
			CurrencyID: s.config.Currency,
			Value:      req.Price.StringFixed(2),
		},
		ConditionID:          listing.ConditionID(record.ConditionScore),
		ConditionDescription: record.ConditionNotes,
		Country:              s.config.Country,
		Currency:             s.config.Currency,
		DispatchTimeMax:      s.config.DispatchDays,
		ListingDuration:      s.config.ListingDuration,
		ListingType:          listingType,
		PostalCode:           s.config.PostalCode,
		Quantity:             1,
		SKU:                  req.Draft.ID.String(),
		ItemSpecifics:        buildItemSpecifics(specifics),
		ShippingPackageDetails: &ebay.ShippingPackageDetails{
			WeightMajor: weight.PoundsMajor,
			WeightMinor: weight.OuncesMinor,
		},
	}

	if listingType == "FixedPriceItem" {
		if req.BestOffer {
			item.BestOfferDetails = &ebay.BestOfferDetails{BestOfferEnabled: true}
		}
	} else if req.BuyItNowPrice.GreaterThan(decimal.Zero) {
		item.BuyItNowPrice = &ebay.Amount{
			CurrencyID: s.config.Currency,
			Value:      req.BuyItNowPrice.StringFixed(2),
		}
	}

	if len(photoURLs) > 0 {
		item.PictureDetails = &ebay.PictureDetails{PictureURL: photoURLs}
	}

	if policies != nil {
		profiles := &ebay.SellerProfiles{}
		if policies.FulfillmentPolicyID != "" {
			profiles.SellerShippingProfile = &ebay.ProfileRef{ProfileID: policies.FulfillmentPolicyID}
		}
		if policies.ReturnPolicyID != "" {
			profiles.SellerReturnProfile = &ebay.ProfileRef{ReturnID: policies.ReturnPolicyID}
		}
		if policies.PaymentPolicyID != "" {
			profiles.SellerPaymentProfile = &ebay.ProfileRef{PaymentID: policies.PaymentPolicyID}
		}
		if profiles.SellerShippingProfile != nil || profiles.SellerReturnProfile != nil || profiles.SellerPaymentProfile != nil {
			item.SellerProfiles = profiles
		}
	}

	return item
}

// buildItemSpecifics folds the ordered pairs into NameValueList entries.
// Repeated names merge into one entry with multiple values, order preserved.
func buildItemSpecifics(specifics []listing.Specific) *ebay.ItemSpecifics {
	if len(specifics) == 0 {
		return nil
	}

	index := make(map[string]int, len(specifics))
	lists := make([]ebay.NameValueList, 0, len(specifics))
	for _, sp := range specifics {
		if i, ok := index[sp.Name]; ok {
			lists[i].Values = append(lists[i].Values, sp.Value)
			continue
		}
		index[sp.Name] = len(lists)
		lists = append(lists, ebay.NameValueList{Name: sp.Name, Values: []string{sp.Value}})
	}
	return &ebay.ItemSpecifics{NameValueList: lists}
}
