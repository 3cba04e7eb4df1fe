package ebay

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resale/backend/internal/domain/pricing"
)

func browseClient(t *testing.T, srvURL string) *BrowseClient {
	t.Helper()
	c := NewConfig("a", "d", "c", "t")
	c.OAuthToken = "oauth-token"
	c.BrowseAPIURL = srvURL
	client, err := NewBrowseClient(c)
	require.NoError(t, err)
	return client
}

func TestSearchActive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buy/browse/v1/item_summary/search", r.URL.Path)
		assert.Equal(t, "pendleton cardigan", r.URL.Query().Get("q"))
		assert.Equal(t, clothingCategoryID, r.URL.Query().Get("category_ids"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "EBAY_US", r.Header.Get("X-EBAY-C-MARKETPLACE-ID"))

		io.WriteString(w, `{"total":2,"itemSummaries":[
  {"title":"Pendleton Cardigan L","price":{"value":"45.00","currency":"USD"},"itemWebUrl":"https://www.ebay.com/itm/1"},
  {"title":"Pendleton Cardigan M","price":{"value":"38.50","currency":"USD"},"itemWebUrl":"https://www.ebay.com/itm/2"}
]}`)
	}))
	defer srv.Close()

	comps, err := browseClient(t, srv.URL).SearchActive(context.Background(), "pendleton cardigan", 0)
	require.NoError(t, err)
	require.Len(t, comps, 2)
	assert.Equal(t, "45", comps[0].Price.String())
	assert.Equal(t, "38.5", comps[1].Price.String())
}

func TestSearchSold(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buy/marketplace_insights/v1_beta/item_sales/search", r.URL.Path)
		io.WriteString(w, `{"total":1,"itemSales":[
  {"title":"Pendleton Cardigan L","lastSoldPrice":{"value":"42.00"},"lastSoldDate":"2026-08-20T14:00:00Z","itemCreationDate":"2026-08-08T14:00:00Z","condition":"Pre-owned","itemWebUrl":"https://www.ebay.com/itm/3"}
]}`)
	}))
	defer srv.Close()

	comps, err := browseClient(t, srv.URL).SearchSold(context.Background(), "pendleton cardigan", 50)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, "42", comps[0].Price.String())
	assert.Equal(t, "Pre-owned", comps[0].Condition)
	assert.Equal(t, 2026, comps[0].SoldDate.Year())
	assert.Equal(t, 12, comps[0].DaysToSell)
}

func TestSearchSold_SkipsPricelessComps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"total":3,"itemSales":[
  {"title":"No price","lastSoldPrice":{},"lastSoldDate":"2026-08-20T14:00:00Z"},
  {"title":"Bad price","lastSoldPrice":{"value":"n/a"},"lastSoldDate":"2026-08-20T14:00:00Z"},
  {"title":"Good","lastSoldPrice":{"value":"45.00"},"lastSoldDate":"2026-08-20T14:00:00Z"}
]}`)
	}))
	defer srv.Close()

	comps, err := browseClient(t, srv.URL).SearchSold(context.Background(), "wool cardigan", 50)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, "Good", comps[0].Title)
	assert.Equal(t, "45", comps[0].Price.String())
}

func TestSearchActive_SkipsPricelessComps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"total":2,"itemSummaries":[
  {"title":"No price","price":{},"itemWebUrl":"https://www.ebay.com/itm/9"},
  {"title":"Good","price":{"value":"30.00"},"itemWebUrl":"https://www.ebay.com/itm/10"}
]}`)
	}))
	defer srv.Close()

	comps, err := browseClient(t, srv.URL).SearchActive(context.Background(), "wool cardigan", 50)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, "Good", comps[0].Title)
}

func TestDaysBetween(t *testing.T) {
	sold, err := time.Parse(time.RFC3339, "2026-08-20T14:00:00Z")
	require.NoError(t, err)

	assert.Equal(t, 12, daysBetween("2026-08-08T14:00:00Z", sold))
	assert.Equal(t, 0, daysBetween("", sold))
	assert.Equal(t, 0, daysBetween("not-a-date", sold))
	assert.Equal(t, 0, daysBetween("2026-09-01T00:00:00Z", sold))
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := browseClient(t, "http://unused")
	_, err := client.SearchActive(context.Background(), "", 10)
	assert.ErrorIs(t, err, pricing.ErrEmptyQuery)
	_, err = client.SearchSold(context.Background(), "", 10)
	assert.ErrorIs(t, err, pricing.ErrEmptyQuery)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, pricing.MaxCompsPerQuery, clampLimit(0))
	assert.Equal(t, pricing.MaxCompsPerQuery, clampLimit(120))
	assert.Equal(t, 10, clampLimit(10))
}
