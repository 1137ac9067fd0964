package extract

import (
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ysugihara/inventory-scraper/internal/siteconfig"
)

const auctionURLPattern = "auctions.yahoo.co.jp"

// structuredDataStrategy reads the machine-readable JSON payload the auction
// site embeds in its pages. The payload is a higher-confidence source than any
// visual selector, so this strategy runs first for the auction family. Any
// parse or path-traversal failure yields "no result", never an error.
type structuredDataStrategy struct {
	logger *slog.Logger
}

func newStructuredDataStrategy() *structuredDataStrategy {
	return &structuredDataStrategy{
		logger: slog.Default().With("component", "extract", "strategy", "structured-data"),
	}
}

func (s *structuredDataStrategy) Name() string { return "structured-data" }

func (s *structuredDataStrategy) Applies(url string) bool {
	return strings.Contains(strings.ToLower(url), auctionURLPattern)
}

func (s *structuredDataStrategy) Extract(doc *goquery.Document, _ string, _ *siteconfig.SiteConfig) (int, bool) {
	payload := doc.Find("script#__NEXT_DATA__").First().Text()
	if payload == "" {
		return 0, false
	}

	var root map[string]any
	if err := json.Unmarshal([]byte(payload), &root); err != nil {
		s.logger.Debug("structured data payload is not valid JSON", "error", err)
		return 0, false
	}

	item, ok := walkPath(root, "props", "pageProps", "initialState", "item", "detail", "item")
	if !ok {
		return 0, false
	}

	// Tax-inclusive fields first; they are what the buyer actually pays.
	for _, field := range []string{"taxinPrice", "taxinStartPrice", "price", "initPrice"} {
		if price, ok := numericField(item, field); ok && price > 0 {
			return price, true
		}
	}

	// No field yielded a usable value; a base price plus tax rate is the last
	// thing the payload can offer.
	basePrice, hasBase := numericField(item, "price")
	if taxRate, hasRate := floatField(item, "taxRate"); hasRate && hasBase && taxRate > 0 && basePrice > 0 {
		withTax := int(math.Round(float64(basePrice) * (1 + taxRate/100)))
		if withTax > 0 {
			return withTax, true
		}
	}

	return 0, false
}

func walkPath(root map[string]any, path ...string) (map[string]any, bool) {
	current := root
	for _, key := range path {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// numericField coerces a JSON field to a whole-yen integer. The payload is
// inconsistent about types: prices appear as numbers and as strings.
func numericField(m map[string]any, key string) (int, bool) {
	f, ok := floatField(m, key)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func floatField(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
