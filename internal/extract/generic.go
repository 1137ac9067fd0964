package extract

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ysugihara/inventory-scraper/internal/siteconfig"
)

// Caps on how many marker hits the auction fallback inspects. Auction pages
// repeat the yen glyph hundreds of times; scanning everything buys nothing.
const (
	currentMarkerScanLimit = 30
	yenMarkerScanLimit     = 50
)

// auctionPriceFloor screens out shipping and point fragments when the page
// offers no current-price marker at all.
const auctionPriceFloor = 1000

// genericSelectorStrategy is the configured-selector extraction path: collect
// candidates from the site's price selectors with exclusion and promo-keyword
// filtering, then pick by selector order. For the auction family it carries a
// cascading fallback keyed on the 現在 (current price) marker.
type genericSelectorStrategy struct {
	thresholds Thresholds
	logger     *slog.Logger
}

func newGenericSelectorStrategy(th Thresholds) *genericSelectorStrategy {
	return &genericSelectorStrategy{
		thresholds: th,
		logger:     slog.Default().With("component", "extract", "strategy", "generic-selector"),
	}
}

func (s *genericSelectorStrategy) Name() string { return "generic-selector" }

func (s *genericSelectorStrategy) Applies(string) bool { return true }

func (s *genericSelectorStrategy) Extract(doc *goquery.Document, url string, cfg *siteconfig.SiteConfig) (int, bool) {
	candidates := s.collectConfigured(doc, cfg)
	isAuction := strings.Contains(strings.ToLower(url), auctionURLPattern)

	if len(candidates) == 0 && isAuction {
		candidates = s.auctionFallback(doc, cfg)
	}
	if len(candidates) == 0 {
		return 0, false
	}

	if isAuction {
		return s.selectAuction(candidates)
	}

	// Selector-order priority: collectConfigured preserves the configured
	// order, so the first candidate is the highest-priority hit.
	return candidates[0].Price, true
}

// collectConfigured runs the site's price selectors through the candidate
// collector with the exclusion filter and promo denylists applied. ID-based
// selectors get the relaxed denylist and skip the parent-text check: an
// ID-anchored element is unlikely to sit inside unrelated promotional text.
func (s *genericSelectorStrategy) collectConfigured(doc *goquery.Document, cfg *siteconfig.SiteConfig) []Candidate {
	return collectCandidates(doc, cfg.PriceSelectors, func(selector string, sel *goquery.Selection, text string) bool {
		if isExcluded(sel, cfg.PriceExcludeSelectors) {
			return false
		}

		idSelector := isIDSelector(selector)
		denylist := promoDenylist
		if idSelector {
			denylist = promoDenylistRelaxed
		}
		if containsAny(strings.ToLower(text), denylist) {
			return false
		}
		if !idSelector {
			parentText := strings.ToLower(sel.Parent().Text())
			if containsAny(parentText, promoDenylist) {
				return false
			}
		}
		return true
	})
}

// auctionFallback is the cascading search for the auction family when the
// configured selectors produced nothing. Each stage is cheaper-signal than
// the next; the first stage to yield candidates wins.
func (s *genericSelectorStrategy) auctionFallback(doc *goquery.Document, cfg *siteconfig.SiteConfig) []Candidate {
	if candidates := s.retryWithCurrentMarker(doc, cfg); len(candidates) > 0 {
		s.logger.Debug("auction fallback: configured selectors with current marker", "count", len(candidates))
		return candidates
	}
	if c, ok := s.searchCurrentMarkerElements(doc); ok {
		s.logger.Debug("auction fallback: direct current-marker search", "price", c.Price)
		return []Candidate{c}
	}
	if c, ok := s.searchYenAncestorsWithMarker(doc); ok {
		s.logger.Debug("auction fallback: yen-element ancestor walk", "price", c.Price)
		return []Candidate{c}
	}
	if c, ok := s.smallestParentPrice(doc); ok {
		s.logger.Debug("auction fallback: smallest parent-level price", "price", c.Price)
		return []Candidate{c}
	}
	return nil
}

// retryWithCurrentMarker re-runs the configured selectors but only accepts
// elements whose own or parent text carries the current-price marker.
func (s *genericSelectorStrategy) retryWithCurrentMarker(doc *goquery.Document, cfg *siteconfig.SiteConfig) []Candidate {
	return collectCandidates(doc, cfg.PriceSelectors, func(_ string, sel *goquery.Selection, text string) bool {
		if strings.Contains(text, currentPriceMarker) {
			return true
		}
		return strings.Contains(sel.Parent().Text(), currentPriceMarker)
	})
}

// searchCurrentMarkerElements scans elements containing the current-price
// marker directly and resolves the pool through best-candidate selection.
func (s *genericSelectorStrategy) searchCurrentMarkerElements(doc *goquery.Document) (Candidate, bool) {
	var pool []Candidate
	for i, el := range elementsWithOwnText(doc, currentPriceMarker) {
		if i >= currentMarkerScanLimit {
			break
		}
		text := strings.TrimSpace(el.Text())
		if !strings.Contains(text, currentPriceMarker) {
			continue
		}
		if price, ok := ParsePrice(text); ok && price > 0 {
			pool = append(pool, Candidate{
				Price:      price,
				Text:       text,
				Selector:   "current-marker-element",
				Provenance: ProvenanceElement,
			})
		}
	}
	return selectBest(pool, s.thresholds)
}

// searchYenAncestorsWithMarker starts from elements containing the yen unit
// word and walks parent, grandparent and great-grandparent looking for the
// current-price marker, collecting one candidate per level that carries it.
func (s *genericSelectorStrategy) searchYenAncestorsWithMarker(doc *goquery.Document) (Candidate, bool) {
	var pool []Candidate
	for i, el := range elementsWithOwnText(doc, yenUnitMarker) {
		if i >= yenMarkerScanLimit {
			break
		}
		ancestorScan(el, 3, func(level int, ancestor *goquery.Selection) bool {
			text := strings.TrimSpace(ancestor.Text())
			if text == "" || !strings.Contains(text, currentPriceMarker) {
				return true
			}
			if price, ok := ParsePrice(text); ok && price > 0 {
				pool = append(pool, Candidate{
					Price:      price,
					Text:       text,
					Selector:   "yen-element-ancestor",
					Provenance: provenanceForLevel(level),
				})
			}
			return true
		})
	}
	return selectBest(pool, s.thresholds)
}

// smallestParentPrice is the last auction resort with no marker present:
// collect parent-level prices at or above the auction floor and take the
// smallest, since the live price is usually the lowest real number on the page.
func (s *genericSelectorStrategy) smallestParentPrice(doc *goquery.Document) (Candidate, bool) {
	var pool []Candidate
	for i, el := range elementsWithOwnText(doc, yenUnitMarker) {
		if i >= yenMarkerScanLimit {
			break
		}
		parent := el.Parent()
		if parent.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(parent.Text())
		if text == "" || containsAny(text, relatedSectionKeywords) {
			continue
		}
		if price, ok := ParsePrice(text); ok && price >= auctionPriceFloor {
			pool = append(pool, Candidate{
				Price:      price,
				Text:       text,
				Selector:   "yen-element-parent",
				Provenance: ProvenanceParent,
			})
		}
	}
	if len(pool) == 0 {
		return Candidate{}, false
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Price < pool[j].Price })
	return pool[0], true
}

// selectAuction picks from configured-selector candidates on an auction page:
// prefer candidates whose text carries the current-price marker, then drop
// related-product sections and take the smallest remaining price.
func (s *genericSelectorStrategy) selectAuction(candidates []Candidate) (int, bool) {
	for _, c := range candidates {
		if strings.Contains(c.Text, currentPriceMarker) {
			return c.Price, true
		}
	}

	filtered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !containsAny(strings.ToLower(c.Text), relatedSectionKeywords) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return candidates[0].Price, true
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Price < filtered[j].Price })
	return filtered[0].Price, true
}
