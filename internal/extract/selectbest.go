package extract

import (
	"sort"
	"strings"
)

// Thresholds bound what the best-candidate selection considers a believable
// listing price. The defaults are tuned to the yen secondary market: prices
// between 1000 and 10000 are the typical band, anything under 100 is noise
// (shipping fragments, point amounts).
type Thresholds struct {
	MinPrice      int
	ReasonableMin int
	ReasonableMax int
}

// DefaultThresholds preserves the tuned production values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinPrice:      100,
		ReasonableMin: 1000,
		ReasonableMax: 10000,
	}
}

// selectBest picks exactly one candidate from a pool, or none.
//
// On auction-style pages the current, lower price is the live price; larger
// numbers tend to be starting bids, buy-now ceilings, or unrelated listings.
// Hence: dedup by price, drop related-product sections (unless that empties
// the pool), narrow to priority-marked candidates when any exist, then take
// the smallest price inside the reasonable range, falling back to the
// smallest at or above MinPrice.
func selectBest(candidates []Candidate, th Thresholds) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	seen := make(map[int]struct{}, len(candidates))
	unique := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.Price]; dup {
			continue
		}
		seen[c.Price] = struct{}{}
		unique = append(unique, c)
	}

	pool := make([]Candidate, 0, len(unique))
	for _, c := range unique {
		if !containsAny(strings.ToLower(c.Text), relatedSectionKeywords) {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		pool = unique
	}

	var prioritized []Candidate
	for _, c := range pool {
		if containsAny(c.Text, priorityKeywords) {
			prioritized = append(prioritized, c)
		}
	}
	if len(prioritized) > 0 {
		pool = prioritized
	}

	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Price < pool[j].Price })

	for _, c := range pool {
		if c.Price >= th.ReasonableMin && c.Price <= th.ReasonableMax {
			return c, true
		}
	}
	if pool[0].Price >= th.MinPrice {
		return pool[0], true
	}
	return Candidate{}, false
}
