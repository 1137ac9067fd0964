package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ysugihara/inventory-scraper/internal/models"
	"github.com/ysugihara/inventory-scraper/internal/siteconfig"
)

// ClassifyStock derives the tri-state availability from the snapshot. The
// default for a reachable page is in-stock. Selectors are probed in order,
// reading the first matching element each: an out-of-stock keyword is
// authoritative and returns immediately, an in-stock keyword keeps the
// default and scanning continues, since a later selector can still flip the
// page to sold out. Invalid selectors and empty matches are skipped. The
// classification is a pure function of the snapshot.
func ClassifyStock(doc *goquery.Document, cfg *siteconfig.SiteConfig) models.StockStatus {
	status := models.StockInStock

	for _, selector := range cfg.StockSelectors {
		matcher, ok := compileSelector(selector)
		if !ok {
			continue
		}
		el := doc.FindMatcher(matcher).First()
		if el.Length() == 0 {
			continue
		}

		text := strings.ToLower(el.Text())
		if text == "" {
			continue
		}
		if keywordMatch(text, cfg.OutOfStockKeywords) {
			return models.StockOutOfStock
		}
		if keywordMatch(text, cfg.InStockKeywords) {
			status = models.StockInStock
		}
	}

	return status
}

func keywordMatch(textLower string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(textLower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
