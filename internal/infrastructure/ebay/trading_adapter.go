package ebay

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"
)

// maxResponseSize is the maximum allowed response size from the Trading API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Errors for Trading API calls
var (
	// ErrUnavailable indicates a transport-level failure; these are retryable
	ErrUnavailable = errors.New("ebay: api unavailable")
	// ErrInvalidResponse indicates a response that could not be decoded
	ErrInvalidResponse = errors.New("ebay: invalid api response")
	// ErrListingRejected indicates the marketplace refused the listing
	ErrListingRejected = errors.New("ebay: listing rejected")
	// ErrPictureRejected indicates the marketplace refused the picture upload
	ErrPictureRejected = errors.New("ebay: picture upload rejected")
)

// SubmissionStatus tracks a listing submission through its lifecycle.
type SubmissionStatus string

const (
	// StatusBuilding means the request envelope is being assembled.
	StatusBuilding SubmissionStatus = "building"
	// StatusSubmitted means the request is in flight.
	StatusSubmitted SubmissionStatus = "submitted"
	// StatusAccepted means the marketplace accepted the listing cleanly.
	StatusAccepted SubmissionStatus = "accepted"
	// StatusAcceptedWithWarnings means the listing is live but the response
	// carried warnings worth surfacing.
	StatusAcceptedWithWarnings SubmissionStatus = "accepted_with_warnings"
	// StatusRejected means the marketplace refused the listing.
	StatusRejected SubmissionStatus = "rejected"
)

// ListingResult is the outcome of a successful submission.
type ListingResult struct {
	Status     SubmissionStatus
	ItemID     string
	ListingURL string
	Warnings   []string
	StartTime  string
	EndTime    string
}

// TradingAdapter talks to the marketplace Trading API: listing submission,
// category suggestion and site-hosted picture upload.
type TradingAdapter struct {
	config     *Config
	httpClient *http.Client
}

// NewTradingAdapter creates a Trading API adapter with the given configuration.
func NewTradingAdapter(config *Config) (*TradingAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &TradingAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// ---------------------------------------------------------------------------
// Listing Submission
// ---------------------------------------------------------------------------

// SubmitListing submits the item. Fixed-price items go through
// AddFixedPriceItem, auction-style items through AddItem. A rejection comes
// back as ErrListingRejected with every error message from the response
// joined on newlines.
func (a *TradingAdapter) SubmitListing(ctx context.Context, item Item) (*ListingResult, error) {
	callName := "AddItem"
	var payload any = &AddItemRequest{
		Xmlns:                tradingNamespace,
		RequesterCredentials: RequesterCredentials{EBayAuthToken: a.config.AuthToken},
		ErrorLanguage:        "en_US",
		WarningLevel:         "High",
		Item:                 item,
	}
	if item.ListingType == "FixedPriceItem" {
		callName = "AddFixedPriceItem"
		payload = &AddFixedPriceItemRequest{
			Xmlns:                tradingNamespace,
			RequesterCredentials: RequesterCredentials{EBayAuthToken: a.config.AuthToken},
			ErrorLanguage:        "en_US",
			WarningLevel:         "High",
			Item:                 item,
		}
	}

	body, err := marshalRequest(payload)
	if err != nil {
		return nil, err
	}

	respBody, err := a.doTradingCall(ctx, callName, "text/xml", body)
	if err != nil {
		return nil, err
	}

	var resp ListingResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	switch resp.Ack {
	case "Success", "Warning":
		result := &ListingResult{
			Status:     StatusAccepted,
			ItemID:     resp.ItemID,
			ListingURL: a.listingURL(resp.ItemID),
			Warnings:   collectMessages(resp.Errors, "Warning"),
			StartTime:  resp.StartTime,
			EndTime:    resp.EndTime,
		}
		if len(result.Warnings) > 0 {
			result.Status = StatusAcceptedWithWarnings
		}
		return result, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrListingRejected, joinMessages(resp.Errors))
	}
}

// listingURL builds the public item URL from the marketplace item id.
func (a *TradingAdapter) listingURL(itemID string) string {
	if itemID == "" {
		return ""
	}
	if a.config.IsSandbox {
		return "https://sandbox.ebay.com/itm/" + itemID
	}
	return "https://www.ebay.com/itm/" + itemID
}

// ---------------------------------------------------------------------------
// Category Suggestion
// ---------------------------------------------------------------------------

// SuggestCategory asks the marketplace for the best category for a free-text
// query. An empty id with a nil error means the marketplace had no
// suggestion; callers fall back to the local category table.
func (a *TradingAdapter) SuggestCategory(ctx context.Context, query string) (string, error) {
	req := &GetSuggestedCategoriesRequest{
		Xmlns:                tradingNamespace,
		RequesterCredentials: RequesterCredentials{EBayAuthToken: a.config.AuthToken},
		Query:                query,
	}
	body, err := marshalRequest(req)
	if err != nil {
		return "", err
	}

	respBody, err := a.doTradingCall(ctx, "GetSuggestedCategories", "text/xml", body)
	if err != nil {
		return "", err
	}

	var resp GetSuggestedCategoriesResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.Ack != "Success" && resp.Ack != "Warning" {
		return "", fmt.Errorf("%w: %s", ErrInvalidResponse, joinMessages(resp.Errors))
	}

	suggestions := resp.SuggestedCategoryArray.SuggestedCategory
	if len(suggestions) == 0 {
		return "", nil
	}

	best := suggestions[0]
	for _, s := range suggestions[1:] {
		if s.PercentItemFound > best.PercentItemFound {
			best = s
		}
	}
	return best.Category.CategoryID, nil
}

// ---------------------------------------------------------------------------
// Picture Upload
// ---------------------------------------------------------------------------

// UploadPicture uploads one prepared photo and returns its site-hosted URL.
// The request is multipart: an XML payload part followed by the image bytes.
func (a *TradingAdapter) UploadPicture(ctx context.Context, name string, image []byte) (string, error) {
	req := &UploadSiteHostedPicturesRequest{
		Xmlns:                tradingNamespace,
		RequesterCredentials: RequesterCredentials{EBayAuthToken: a.config.AuthToken},
		PictureName:          name,
	}
	xmlPart, err := marshalRequest(req)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	xmlHeader := textproto.MIMEHeader{}
	xmlHeader.Set("Content-Disposition", `form-data; name="XML Payload"`)
	xmlHeader.Set("Content-Type", "text/xml; charset=utf-8")
	pw, err := mw.CreatePart(xmlHeader)
	if err != nil {
		return "", fmt.Errorf("ebay: build multipart: %w", err)
	}
	if _, err := pw.Write(xmlPart); err != nil {
		return "", fmt.Errorf("ebay: build multipart: %w", err)
	}

	imgHeader := textproto.MIMEHeader{}
	imgHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, name))
	imgHeader.Set("Content-Type", "image/jpeg")
	iw, err := mw.CreatePart(imgHeader)
	if err != nil {
		return "", fmt.Errorf("ebay: build multipart: %w", err)
	}
	if _, err := iw.Write(image); err != nil {
		return "", fmt.Errorf("ebay: build multipart: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("ebay: build multipart: %w", err)
	}

	respBody, err := a.doTradingCall(ctx, "UploadSiteHostedPictures", mw.FormDataContentType(), buf.Bytes())
	if err != nil {
		return "", err
	}

	var resp UploadSiteHostedPicturesResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.Ack != "Success" && resp.Ack != "Warning" {
		return "", fmt.Errorf("%w: %s", ErrPictureRejected, joinMessages(resp.Errors))
	}
	if resp.SiteHostedPictureDetails.FullURL == "" {
		return "", fmt.Errorf("%w: response missing picture url", ErrInvalidResponse)
	}
	return resp.SiteHostedPictureDetails.FullURL, nil
}

// ---------------------------------------------------------------------------
// Internal Helpers
// ---------------------------------------------------------------------------

// doTradingCall performs one Trading API request with the standard headers.
func (a *TradingAdapter) doTradingCall(ctx context.Context, callName, contentType string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.TradingAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ebay: failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-EBAY-API-COMPATIBILITY-LEVEL", a.config.CompatibilityLevel)
	req.Header.Set("X-EBAY-API-DEV-NAME", a.config.DevID)
	req.Header.Set("X-EBAY-API-APP-NAME", a.config.AppID)
	req.Header.Set("X-EBAY-API-CERT-NAME", a.config.CertID)
	req.Header.Set("X-EBAY-API-SITEID", a.config.SiteID)
	req.Header.Set("X-EBAY-API-CALL-NAME", callName)
	if a.config.OAuthToken != "" {
		req.Header.Set("X-EBAY-API-IAF-TOKEN", a.config.OAuthToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("ebay: failed to read response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrInvalidResponse, resp.StatusCode)
	}
	return respBody, nil
}

// marshalRequest serializes an envelope with the XML declaration prepended.
func marshalRequest(payload any) ([]byte, error) {
	body, err := xml.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("ebay: failed to encode request: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// collectMessages gathers the long messages with the given severity.
func collectMessages(errs []TradingError, severity string) []string {
	var out []string
	for _, e := range errs {
		if e.SeverityCode != severity {
			continue
		}
		msg := e.LongMessage
		if msg == "" {
			msg = e.ShortMessage
		}
		if msg != "" {
			out = append(out, msg)
		}
	}
	return out
}

// joinMessages flattens every response error into one newline-joined string.
func joinMessages(errs []TradingError) string {
	var msgs []string
	for _, e := range errs {
		msg := e.LongMessage
		if msg == "" {
			msg = e.ShortMessage
		}
		if msg != "" {
			msgs = append(msgs, msg)
		}
	}
	if len(msgs) == 0 {
		return "no error details provided"
	}
	return strings.Join(msgs, "\n")
}
