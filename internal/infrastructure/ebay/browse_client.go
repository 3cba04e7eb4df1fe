package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/resale/backend/internal/domain/pricing"
)

// clothingCategoryID scopes comparable searches to the clothing subtree.
const clothingCategoryID = "11450"

// BrowseClient fetches comparable listings from the marketplace REST search
// surfaces: active listings from buy/browse, completed sales from
// marketplace insights.
type BrowseClient struct {
	config     *Config
	httpClient *http.Client
}

// NewBrowseClient creates a browse API client with the given configuration.
func NewBrowseClient(config *Config) (*BrowseClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &BrowseClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

type moneyJSON struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type itemSummaryJSON struct {
	Title      string    `json:"title"`
	Price      moneyJSON `json:"price"`
	ItemWebURL string    `json:"itemWebUrl"`
}

type browseSearchResponse struct {
	Total         int               `json:"total"`
	ItemSummaries []itemSummaryJSON `json:"itemSummaries"`
}

type itemSaleJSON struct {
	Title            string    `json:"title"`
	LastSoldPrice    moneyJSON `json:"lastSoldPrice"`
	LastSoldDate     string    `json:"lastSoldDate"`
	ItemCreationDate string    `json:"itemCreationDate"`
	Condition        string    `json:"condition"`
	ItemWebURL       string    `json:"itemWebUrl"`
}

type insightsSearchResponse struct {
	Total     int            `json:"total"`
	ItemSales []itemSaleJSON `json:"itemSales"`
}

// SearchActive returns up to limit currently listed comparables for a query.
func (c *BrowseClient) SearchActive(ctx context.Context, query string, limit int) ([]pricing.ActiveComp, error) {
	if query == "" {
		return nil, pricing.ErrEmptyQuery
	}
	limit = clampLimit(limit)

	endpoint := fmt.Sprintf("%s/buy/browse/v1/item_summary/search?q=%s&category_ids=%s&limit=%d",
		c.config.BrowseAPIURL, url.QueryEscape(query), clothingCategoryID, limit)

	body, err := c.doGet(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp browseSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	comps := make([]pricing.ActiveComp, 0, len(resp.ItemSummaries))
	for _, item := range resp.ItemSummaries {
		price, ok := parsePrice(item.Price.Value)
		if !ok {
			continue
		}
		comps = append(comps, pricing.ActiveComp{
			Title: item.Title,
			Price: price,
			URL:   item.ItemWebURL,
		})
	}
	return comps, nil
}

// SearchSold returns up to limit completed comparable sales for a query.
func (c *BrowseClient) SearchSold(ctx context.Context, query string, limit int) ([]pricing.SoldComp, error) {
	if query == "" {
		return nil, pricing.ErrEmptyQuery
	}
	limit = clampLimit(limit)

	endpoint := fmt.Sprintf("%s/buy/marketplace_insights/v1_beta/item_sales/search?q=%s&category_ids=%s&limit=%d",
		c.config.BrowseAPIURL, url.QueryEscape(query), clothingCategoryID, limit)

	body, err := c.doGet(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp insightsSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	comps := make([]pricing.SoldComp, 0, len(resp.ItemSales))
	for _, sale := range resp.ItemSales {
		price, ok := parsePrice(sale.LastSoldPrice.Value)
		if !ok {
			continue
		}
		comp := pricing.SoldComp{
			Title:     sale.Title,
			Price:     price,
			Condition: sale.Condition,
			URL:       sale.ItemWebURL,
		}
		if t, err := time.Parse(time.RFC3339, sale.LastSoldDate); err == nil {
			comp.SoldDate = t
			comp.DaysToSell = daysBetween(sale.ItemCreationDate, t)
		}
		comps = append(comps, comp)
	}
	return comps, nil
}

// doGet performs one authorized GET against a REST search endpoint.
func (c *BrowseClient) doGet(ctx context.Context, endpoint string) ([]byte, error) {
	if c.config.OAuthToken == "" {
		return nil, ErrMissingOAuthToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("ebay: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.OAuthToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", c.config.MarketplaceID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("ebay: failed to read response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrInvalidResponse, resp.StatusCode)
	}
	return body, nil
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > pricing.MaxCompsPerQuery {
		return pricing.MaxCompsPerQuery
	}
	return limit
}

// parsePrice decodes a REST money value. Comparables with a missing or
// malformed price are excluded from the pools; a fabricated zero would pull
// every tier down.
func parsePrice(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// daysBetween computes whole days from the listing date to the sale date,
// returning 0 when the listing date is absent, malformed, or after the sale.
func daysBetween(createdRaw string, sold time.Time) int {
	created, err := time.Parse(time.RFC3339, createdRaw)
	if err != nil || sold.Before(created) {
		return 0
	}
	return int(sold.Sub(created).Hours() / 24)
}
