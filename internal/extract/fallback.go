package extract

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ysugihara/inventory-scraper/internal/siteconfig"
)

// ID-anchored selectors are the most reliable thing left on a page where
// discrimination failed, so they are probed before the generic class sweep.
var (
	fallbackIDSelectors = []string{
		"#itemPrice",
		"[id*='itemPrice']",
		"[id*='price']",
		"#price",
	}
	fallbackClassSelectors = []string{
		"[class*='price']",
		"[class*='Price']",
		".price",
		"#price",
	}
)

// maxPriceStrategy is the last resort when no configured selector yielded
// anything: sweep fixed price-ish selectors and return the maximum surviving
// value. On undiscriminated pages the largest price-like number is more often
// the real listing price than the scattered smaller shipping and point
// fragments.
type maxPriceStrategy struct {
	logger *slog.Logger
}

func newMaxPriceStrategy() *maxPriceStrategy {
	return &maxPriceStrategy{
		logger: slog.Default().With("component", "extract", "strategy", "max-price"),
	}
}

func (s *maxPriceStrategy) Name() string { return "max-price" }

func (s *maxPriceStrategy) Applies(string) bool { return true }

func (s *maxPriceStrategy) Extract(doc *goquery.Document, _ string, _ *siteconfig.SiteConfig) (int, bool) {
	idCandidates := collectCandidates(doc, fallbackIDSelectors, func(_ string, _ *goquery.Selection, text string) bool {
		return !containsAny(strings.ToLower(text), promoDenylistRelaxed)
	})
	if price, ok := maxPrice(idCandidates); ok {
		s.logger.Debug("max price from id selectors", "price", price)
		return price, true
	}

	classCandidates := collectCandidates(doc, fallbackClassSelectors, func(_ string, sel *goquery.Selection, text string) bool {
		if containsAny(strings.ToLower(text), promoDenylistRelaxed) {
			return false
		}
		return !containsAny(strings.ToLower(sel.Parent().Text()), promoDenylistRelaxed)
	})
	if price, ok := maxPrice(classCandidates); ok {
		s.logger.Debug("max price from class selectors", "price", price)
		return price, true
	}

	return 0, false
}

func maxPrice(candidates []Candidate) (int, bool) {
	best := 0
	for _, c := range candidates {
		if c.Price > best {
			best = c.Price
		}
	}
	return best, best > 0
}
