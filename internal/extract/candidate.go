package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Provenance records which DOM location a candidate price was read from.
type Provenance string

const (
	ProvenanceElement          Provenance = "element"
	ProvenanceParent           Provenance = "parent"
	ProvenanceGrandparent      Provenance = "grandparent"
	ProvenanceGreatGrandparent Provenance = "great-grandparent"
	ProvenanceStructuredData   Provenance = "structured-data"
)

func provenanceForLevel(level int) Provenance {
	switch level {
	case 1:
		return ProvenanceParent
	case 2:
		return ProvenanceGrandparent
	default:
		return ProvenanceGreatGrandparent
	}
}

// Candidate is a provisional price reading from one DOM location. Candidate
// lists are rebuilt fresh for every page; nothing survives across URLs.
type Candidate struct {
	Price      int
	Text       string
	Selector   string
	Provenance Provenance
}

// collectCandidates queries each selector in order and parses every matching
// element's trimmed text into a price candidate. Invalid selectors and
// unparseable elements are skipped; a single bad selector never aborts the
// batch. The filter, when non-nil, can veto an element before parsing.
func collectCandidates(doc *goquery.Document, selectors []string, filter func(selector string, sel *goquery.Selection, text string) bool) []Candidate {
	var candidates []Candidate

	for _, selector := range selectors {
		matcher, ok := compileSelector(selector)
		if !ok {
			continue
		}

		doc.FindMatcher(matcher).Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if text == "" {
				return
			}
			if filter != nil && !filter(selector, sel, text) {
				return
			}
			if price, ok := ParsePrice(text); ok && price > 0 {
				candidates = append(candidates, Candidate{
					Price:      price,
					Text:       text,
					Selector:   selector,
					Provenance: ProvenanceElement,
				})
			}
		})
	}

	return candidates
}
