package extract

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ysugihara/inventory-scraper/internal/siteconfig"
)

const shopURLPattern = "/shops/product/"

// shopLabelStrategy extracts the main price on shop-style product pages,
// where the real price sits next to a shipping-inclusive label and the page
// is littered with storefront cross-sell prices. Three passes, cheapest
// signal first:
//
//  1. parent of each 送料込み label, yen-glyph price only
//  2. siblings of the primary heading's grandparent container
//  3. 4-level ancestor walk from each label, yen-glyph then bare digits
type shopLabelStrategy struct {
	logger *slog.Logger
}

func newShopLabelStrategy() *shopLabelStrategy {
	return &shopLabelStrategy{
		logger: slog.Default().With("component", "extract", "strategy", "shop-label"),
	}
}

func (s *shopLabelStrategy) Name() string { return "shop-label" }

func (s *shopLabelStrategy) Applies(url string) bool {
	return strings.Contains(strings.ToLower(url), shopURLPattern)
}

func (s *shopLabelStrategy) Extract(doc *goquery.Document, _ string, cfg *siteconfig.SiteConfig) (int, bool) {
	labels := elementsWithOwnText(doc, shippingIncludedMarker)

	// Pass 1: the label's immediate parent usually holds "¥4,800 送料込み".
	for _, label := range labels {
		parent := label.Parent()
		if parent.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(parent.Text())
		if containsAny(strings.ToLower(text), shopSectionKeywords) {
			continue
		}
		if price, ok := ParseYenPrice(text); ok && price > 0 {
			s.logger.Debug("price from shipping label parent", "price", price)
			return price, true
		}
		// Only candidates without a yen price get the exclusion check; a
		// glyph-prefixed hit next to the label is trusted as-is.
		if isExcluded(parent, cfg.PriceExcludeSelectors) {
			continue
		}
	}

	// Pass 2: product-info container near the primary heading.
	if price, ok := s.extractNearHeading(doc, cfg); ok {
		return price, true
	}

	// Pass 3: ancestor walk from each label, widening level by level.
	for _, label := range labels {
		price, found := 0, false
		ancestorScan(label, 4, func(_ int, ancestor *goquery.Selection) bool {
			text := strings.TrimSpace(ancestor.Text())
			if text == "" {
				return true
			}
			if containsAny(strings.ToLower(text), shopSectionKeywords) {
				return true
			}
			if isExcluded(ancestor, cfg.PriceExcludeSelectors) {
				return true
			}
			if p, ok := ParseYenPrice(text); ok && p > 0 {
				price, found = p, true
				return false
			}
			if p, ok := ParsePrice(text); ok && p > 0 {
				price, found = p, true
				return false
			}
			return true
		})
		if found {
			s.logger.Debug("price from shipping label ancestor walk", "price", price)
			return price, true
		}
	}

	return 0, false
}

func (s *shopLabelStrategy) extractNearHeading(doc *goquery.Document, cfg *siteconfig.SiteConfig) (int, bool) {
	heading := doc.Find("h1").First()
	if heading.Length() == 0 {
		return 0, false
	}

	container := heading.Parent().Parent()
	if container.Length() == 0 {
		return 0, false
	}

	price, found := 0, false
	container.Children().EachWithBreak(func(_ int, child *goquery.Selection) bool {
		text := strings.TrimSpace(child.Text())
		if text == "" {
			return true
		}
		if containsAny(strings.ToLower(text), shopSectionKeywords) {
			return true
		}
		if isExcluded(child, cfg.PriceExcludeSelectors) {
			return true
		}
		if p, ok := ParseYenPrice(text); ok && p > 0 {
			price, found = p, true
			return false
		}
		return true
	})

	if found {
		s.logger.Debug("price from heading proximity", "price", price)
	}
	return price, found
}
