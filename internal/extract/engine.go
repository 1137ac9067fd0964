package extract

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/ysugihara/inventory-scraper/internal/models"
	"github.com/ysugihara/inventory-scraper/internal/siteconfig"
)

// PriceStrategy is one extraction approach for a site family. Strategies run
// in a fixed priority order; the first one that applies to the URL and yields
// a positive price short-circuits the rest. The orchestrator never branches
// on site identity directly.
type PriceStrategy interface {
	Name() string
	Applies(url string) bool
	Extract(doc *goquery.Document, url string, cfg *siteconfig.SiteConfig) (int, bool)
}

// Engine derives a single price and a stock classification from a rendered
// page snapshot plus its site configuration. It holds no per-page state and
// is safe to reuse across every URL of a run.
type Engine struct {
	strategies []PriceStrategy
	reporter   DebugReporter
	logger     *slog.Logger
}

// NewEngine assembles the strategy chain in priority order: structured data,
// shop label proximity, configured selectors, max-value last resort.
func NewEngine(th Thresholds) *Engine {
	return &Engine{
		strategies: []PriceStrategy{
			newStructuredDataStrategy(),
			newShopLabelStrategy(),
			newGenericSelectorStrategy(th),
			newMaxPriceStrategy(),
		},
		logger: slog.Default().With("component", "extract"),
	}
}

// SetDebugReporter installs the diagnostic dump invoked when no price is
// found. The reporter is observational only and never influences the result.
func (e *Engine) SetDebugReporter(r DebugReporter) {
	e.reporter = r
}

// ExtractPrice runs the strategy chain. Returns the sentinel
// models.PriceNotFound when every strategy comes up empty.
func (e *Engine) ExtractPrice(doc *goquery.Document, url string, cfg *siteconfig.SiteConfig) int {
	for _, strategy := range e.strategies {
		if !strategy.Applies(url) {
			continue
		}
		if price, ok := strategy.Extract(doc, url, cfg); ok && price > 0 {
			e.logger.Info("price extracted", "strategy", strategy.Name(), "site", cfg.Name, "price", price)
			return price
		}
	}

	e.logger.Warn("no price found", "site", cfg.Name, "url", truncate(url, 80))
	if e.reporter != nil {
		e.reporter.ReportNoPrice(doc, url)
	}
	return models.PriceNotFound
}

// Extract composes price extraction and stock classification for one snapshot.
func (e *Engine) Extract(doc *goquery.Document, url string, cfg *siteconfig.SiteConfig) (int, models.StockStatus) {
	price := e.ExtractPrice(doc, url, cfg)
	stock := ClassifyStock(doc, cfg)
	return price, stock
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
