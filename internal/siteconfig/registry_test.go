package siteconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolveKnownSites(t *testing.T) {
	r := NewRegistry(FallbackConfigs(), nil)

	tests := []struct {
		url      string
		expected string
	}{
		{"https://page.auctions.yahoo.co.jp/jp/auction/x123", "Yahoo!オークション"},
		{"https://jp.mercari.com/item/m12345", "メルカリ"},
		{"https://www.amazon.co.jp/dp/B000000000", "Amazon"},
		{"https://store.shopping.yahoo.co.jp/shop/item.html", "Yahoo!ショッピング"},
		{"https://unknown-shop.example.com/item/1", "default"},
	}

	for _, tt := range tests {
		cfg := r.Resolve(tt.url)
		require.NotNil(t, cfg)
		assert.Equal(t, tt.expected, cfg.Name, tt.url)
	}
}

func TestRegistryResolveIsCaseInsensitive(t *testing.T) {
	r := NewRegistry(FallbackConfigs(), nil)
	cfg := r.Resolve("HTTPS://JP.MERCARI.COM/ITEM/M1")
	assert.Equal(t, "メルカリ", cfg.Name)
}

func TestRegistryFirstMatchWins(t *testing.T) {
	r := NewRegistry([]*SiteConfig{
		{Name: "first", URLPatterns: []string{"example.jp"}},
		{Name: "second", URLPatterns: []string{"shop.example.jp"}},
	}, nil)

	cfg := r.Resolve("https://shop.example.jp/item/1")
	assert.Equal(t, "first", cfg.Name)
}

func TestRegistryMergeReplacesByName(t *testing.T) {
	r := NewRegistry(FallbackConfigs(), nil)
	before := r.Len()

	// Warm the cache so the merge has stale state to purge.
	assert.Equal(t, "メルカリ", r.Resolve("https://jp.mercari.com/item/m1").Name)

	r.Merge([]*SiteConfig{
		{
			Name:           "メルカリ",
			URLPatterns:    []string{"mercari.com", "mercari.jp"},
			PriceSelectors: []string{".updated-price"},
		},
		{
			Name:           "新しいサイト",
			URLPatterns:    []string{"newshop.jp"},
			PriceSelectors: []string{".price"},
		},
	}, nil)

	assert.Equal(t, before+1, r.Len())

	cfg := r.Resolve("https://jp.mercari.com/item/m1")
	assert.Equal(t, "メルカリ", cfg.Name)
	assert.Equal(t, []string{".updated-price"}, cfg.PriceSelectors)

	assert.Equal(t, "新しいサイト", r.Resolve("https://newshop.jp/item/9").Name)
}

func TestRegistryDefaultFallback(t *testing.T) {
	custom := &SiteConfig{Name: "custom-default", URLPatterns: []string{""}}
	r := NewRegistry(nil, custom)

	assert.Equal(t, "custom-default", r.Resolve("https://anything.example.com/").Name)
}

func TestRegistryRepeatedResolveIsStable(t *testing.T) {
	r := NewRegistry(FallbackConfigs(), nil)
	url := "https://page.auctions.yahoo.co.jp/jp/auction/x9"

	first := r.Resolve(url)
	for i := 0; i < 3; i++ {
		assert.Same(t, first, r.Resolve(url))
	}
}
