package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidatesFromPrices(prices ...int) []Candidate {
	out := make([]Candidate, 0, len(prices))
	for _, p := range prices {
		out = append(out, Candidate{Price: p, Text: ""})
	}
	return out
}

func TestSelectBestPrefersReasonableRange(t *testing.T) {
	// The smallest in-range price beats both a large outlier and noise below it.
	best, ok := selectBest(candidatesFromPrices(50000, 3000, 200), DefaultThresholds())
	assert.True(t, ok)
	assert.Equal(t, 3000, best.Price)
}

func TestSelectBestFallsBackToSmallestAboveFloor(t *testing.T) {
	// Nothing inside the range: take the smallest price at or above MinPrice.
	best, ok := selectBest(candidatesFromPrices(45000, 120000), DefaultThresholds())
	assert.True(t, ok)
	assert.Equal(t, 45000, best.Price)
}

func TestSelectBestRejectsAllBelowFloor(t *testing.T) {
	_, ok := selectBest(candidatesFromPrices(50, 80), DefaultThresholds())
	assert.False(t, ok)
}

func TestSelectBestEmptyPool(t *testing.T) {
	_, ok := selectBest(nil, DefaultThresholds())
	assert.False(t, ok)
}

func TestSelectBestDeduplicatesByPrice(t *testing.T) {
	best, ok := selectBest(candidatesFromPrices(3000, 3000, 3000, 5000), DefaultThresholds())
	assert.True(t, ok)
	assert.Equal(t, 3000, best.Price)
}

func TestSelectBestDropsRelatedSections(t *testing.T) {
	pool := []Candidate{
		{Price: 1200, Text: "この商品も注目されています 1,200円"},
		{Price: 3500, Text: "3,500円"},
	}
	best, ok := selectBest(pool, DefaultThresholds())
	assert.True(t, ok)
	assert.Equal(t, 3500, best.Price)
}

func TestSelectBestRestoresPoolWhenAllRelated(t *testing.T) {
	// Filtering must never turn a non-empty pool into silence.
	pool := []Candidate{
		{Price: 3000, Text: "おすすめ 3,000円"},
	}
	best, ok := selectBest(pool, DefaultThresholds())
	assert.True(t, ok)
	assert.Equal(t, 3000, best.Price)
}

func TestSelectBestPriorityOverridesRange(t *testing.T) {
	// A priority-marked candidate wins even when a plain candidate sits
	// inside the reasonable range.
	pool := []Candidate{
		{Price: 3000, Text: "3,000円"},
		{Price: 15000, Text: "即決 15,000円"},
	}
	best, ok := selectBest(pool, DefaultThresholds())
	assert.True(t, ok)
	assert.Equal(t, 15000, best.Price)
}

func TestSelectBestPpriorityPicksSmallestInRange(t *testing.T) {
	pool := []Candidate{
		{Price: 9000, Text: "即決 9,000円"},
		{Price: 4500, Text: "送料 4,500円"},
		{Price: 2000, Text: "2,000円"},
	}
	best, ok := selectBest(pool, DefaultThresholds())
	assert.True(t, ok)
	assert.Equal(t, 4500, best.Price)
}
