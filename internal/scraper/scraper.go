package scraper

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
	"github.com/ysugihara/inventory-scraper/internal/browser"
	"github.com/ysugihara/inventory-scraper/internal/extract"
	"github.com/ysugihara/inventory-scraper/internal/metrics"
	"github.com/ysugihara/inventory-scraper/internal/models"
	"github.com/ysugihara/inventory-scraper/internal/ratelimit"
	"github.com/ysugihara/inventory-scraper/internal/siteconfig"
)

// ErrSnapshotFailed marks a page whose DOM could not be serialized after a
// successful navigation.
var ErrSnapshotFailed = errors.New("scraper: page snapshot failed")

// SiteScraper drives one URL at a time through the page lifecycle:
// navigate → jittered wait → snapshot → extract. Every failure mode collapses
// into a valid Result; the batch never aborts because one URL misbehaved.
type SiteScraper struct {
	browser      *browser.Browser
	registry     *siteconfig.Registry
	engine       *extract.Engine
	defaultDelay ratelimit.Delayer
	auctionDelay ratelimit.Delayer
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewSiteScraper wires the scraper with production wait ranges: 3–7s after a
// generic page load, 5–10s for the auction family whose pages hydrate price
// data from script after load.
func NewSiteScraper(b *browser.Browser, registry *siteconfig.Registry, engine *extract.Engine, m *metrics.Metrics) *SiteScraper {
	return &SiteScraper{
		browser:      b,
		registry:     registry,
		engine:       engine,
		defaultDelay: ratelimit.NewJitterDelay(3*time.Second, 7*time.Second),
		auctionDelay: ratelimit.NewJitterDelay(5*time.Second, 10*time.Second),
		metrics:      m,
		logger:       slog.Default().With("component", "scraper"),
	}
}

// SetDelays overrides the post-navigation waits; tests use ratelimit.NoDelay.
func (s *SiteScraper) SetDelays(def, auction ratelimit.Delayer) {
	s.defaultDelay = def
	s.auctionDelay = auction
}

// Scrape processes a single URL and always returns a usable Result.
func (s *SiteScraper) Scrape(ctx context.Context, url string) models.Result {
	start := time.Now()
	result, outcome := s.scrape(ctx, url)
	s.metrics.ObservePage(outcome, time.Since(start))
	s.logger.Info("page done",
		"url", truncate(url, 80),
		"price", result.Price,
		"stock", result.Stock.String(),
		"outcome", outcome,
	)
	return result
}

func (s *SiteScraper) scrape(ctx context.Context, url string) (models.Result, string) {
	cfg := s.registry.Resolve(url)

	page, err := s.browser.NewPage()
	if err != nil {
		s.logger.Error("failed to open page", "error", err)
		return models.NewResult(models.PriceNotFound, models.StockUnknown), "nav_failed"
	}
	defer page.Close()

	// Navigation-level failure means no DOM exists; content-based
	// classification would be classifying the previous page.
	if err := s.browser.Navigate(page, url); err != nil {
		return models.NewResult(models.PriceNotFound, models.StockUnknown), "nav_failed"
	}

	if err := s.delayFor(ctx, url); err != nil {
		return models.NewResult(models.PriceNotFound, models.StockUnknown), "nav_failed"
	}

	doc, err := s.snapshot(page)
	if err != nil {
		return s.classifyLoadedFailure(page, url, err)
	}

	title := doc.Find("title").Text()
	body := doc.Find("body").Text()
	if isNotFoundPage(currentURL(page, url), title, body) {
		s.logger.Warn("page classified as not found", "url", truncate(url, 80), "title", truncate(title, 60))
		return models.NewResult(models.PriceUnavailable, models.StockOutOfStock), "not_found"
	}

	price, stock := s.engine.Extract(doc, url, cfg)
	outcome := "ok"
	if price == models.PriceNotFound {
		outcome = "no_price"
	}
	return models.NewResult(price, stock), outcome
}

func (s *SiteScraper) delayFor(ctx context.Context, url string) error {
	if strings.Contains(strings.ToLower(url), "auctions.yahoo.co.jp") {
		return s.auctionDelay.Delay(ctx)
	}
	return s.defaultDelay.Delay(ctx)
}

func (s *SiteScraper) snapshot(page playwright.Page) (*goquery.Document, error) {
	html, err := page.Content()
	if err != nil {
		return nil, errors.Join(ErrSnapshotFailed, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.Join(ErrSnapshotFailed, err)
	}
	return doc, nil
}

// classifyLoadedFailure handles errors raised after a successful navigation.
// The page exists, so a not-found check is legitimate: first the error string
// itself, then whatever the driver can still report about the loaded page.
func (s *SiteScraper) classifyLoadedFailure(page playwright.Page, url string, err error) (models.Result, string) {
	s.logger.Error("post-load failure", "url", truncate(url, 80), "error", err)

	if errorIndicates404(err) {
		return models.NewResult(models.PriceUnavailable, models.StockOutOfStock), "not_found"
	}

	title, titleErr := page.Title()
	if titleErr == nil && isNotFoundPage(currentURL(page, url), title, "") {
		return models.NewResult(models.PriceUnavailable, models.StockOutOfStock), "not_found"
	}

	return models.NewResult(models.PriceNotFound, models.StockUnknown), "no_price"
}

func currentURL(page playwright.Page, fallback string) string {
	if u := page.URL(); u != "" {
		return u
	}
	return fallback
}

// ScrapeBatch processes URLs strictly sequentially and returns exactly one
// row per input URL, order-preserving. Cancellation marks the remaining URLs
// with the extraction-failed sentinel instead of dropping them.
func (s *SiteScraper) ScrapeBatch(ctx context.Context, urls []string) []models.Row {
	rows := make([]models.Row, 0, len(urls))

	for i, url := range urls {
		select {
		case <-ctx.Done():
			s.logger.Warn("batch cancelled", "remaining", len(urls)-i)
			for _, rest := range urls[i:] {
				rows = append(rows, models.NewRow(rest, models.NewResult(models.PriceNotFound, models.StockUnknown)))
			}
			return rows
		default:
		}

		s.logger.Info("processing url", "index", i+1, "total", len(urls))
		result := s.Scrape(ctx, url)
		rows = append(rows, models.NewRow(url, result))
	}

	return rows
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
