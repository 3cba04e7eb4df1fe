// Package pricing computes price tier recommendations from marketplace
// comparable sales. All monetary math goes through decimal values so tier
// boundaries never drift with float rounding.
package pricing

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyQuery indicates a comps lookup with no search keywords
	ErrEmptyQuery = errors.New("pricing: search query is required")
)

// MaxCompsPerQuery caps how many sold and active comparables a single
// analysis considers. Both pools are capped independently.
const MaxCompsPerQuery = 50

// SoldComp is one completed comparable sale.
type SoldComp struct {
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	SoldDate  time.Time       `json:"sold_date"`
	Condition string          `json:"condition"`
	URL       string          `json:"url"`
	// DaysToSell is days between listing and sale, 0 when unknown
	DaysToSell int `json:"days_to_sell"`
}

// ActiveComp is one currently listed comparable.
type ActiveComp struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	URL   string          `json:"url"`
}

// PriceRange is the observed low and high of the sold pool.
type PriceRange struct {
	Low  decimal.Decimal `json:"low"`
	High decimal.Decimal `json:"high"`
}

// Tiers holds the three recommended price points. QuickSell targets a fast
// sale, Market matches the average sold price, Premium prices at the top of
// the observed range.
type Tiers struct {
	QuickSell decimal.Decimal `json:"quick_sell"`
	Market    decimal.Decimal `json:"market"`
	Premium   decimal.Decimal `json:"premium"`
}

// Intelligence is the full pricing analysis for one query.
type Intelligence struct {
	Query           string          `json:"query"`
	SoldCount       int             `json:"sold_count"`
	ActiveCount     int             `json:"active_count"`
	SellThroughRate float64         `json:"sell_through_rate"`
	AvgSoldPrice    decimal.Decimal `json:"avg_sold_price"`
	Range           PriceRange      `json:"price_range"`
	AvgDaysToSell   float64         `json:"avg_days_to_sell"`
	Tiers           Tiers           `json:"tiers"`
	// HasData is false when no sold comparables were found; tiers and
	// averages are zero in that case rather than fabricated.
	HasData bool `json:"has_data"`
}

// Compute derives the pricing analysis from the raw comparable pools. The
// function is pure and deterministic: it sorts a private copy of the sold
// pool and never mutates its inputs.
func Compute(query string, sold []SoldComp, active []ActiveComp) Intelligence {
	out := Intelligence{
		Query:       query,
		SoldCount:   len(sold),
		ActiveCount: len(active),
	}

	if len(sold)+len(active) > 0 {
		out.SellThroughRate = float64(len(sold)) / float64(len(sold)+len(active))
	}

	if len(sold) == 0 {
		return out
	}
	out.HasData = true

	prices := make([]decimal.Decimal, len(sold))
	sum := decimal.Zero
	daysSum := 0
	daysN := 0
	for i, c := range sold {
		prices[i] = c.Price
		sum = sum.Add(c.Price)
		if c.DaysToSell > 0 {
			daysSum += c.DaysToSell
			daysN++
		}
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].LessThan(prices[j]) })

	n := len(prices)
	out.AvgSoldPrice = sum.Div(decimal.NewFromInt(int64(n))).Round(2)
	out.Range = PriceRange{Low: prices[0], High: prices[n-1]}
	if daysN > 0 {
		out.AvgDaysToSell = float64(daysSum) / float64(daysN)
	}

	out.Tiers = Tiers{
		QuickSell: prices[clampIndex(n*25/100, n)],
		Market:    out.AvgSoldPrice,
		Premium:   prices[clampIndex(n*85/100, n)],
	}
	return out
}

// clampIndex keeps a percentile index inside the slice bounds.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
