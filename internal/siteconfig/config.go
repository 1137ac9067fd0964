package siteconfig

// SiteConfig is the declarative per-site-family extraction configuration.
// Instances are loaded once per scraping run and treated as read-only
// afterwards; they are safe to share across page extractions.
type SiteConfig struct {
	Name                  string   `validate:"required"`
	URLPatterns           []string `validate:"min=1,dive,required"`
	PriceSelectors        []string
	PriceExcludeSelectors []string
	StockSelectors        []string
	InStockKeywords       []string
	OutOfStockKeywords    []string
}

// DefaultConfig is the generic fallback applied when no site family matches.
// It mirrors the defaults the supplier-master sheet ships with.
func DefaultConfig() *SiteConfig {
	return &SiteConfig{
		Name:        "default",
		URLPatterns: []string{""},
		PriceSelectors: []string{
			"[class*='price']",
			"[class*='Price']",
			"[id*='price']",
			"[id*='Price']",
			".price",
			"#price",
		},
		StockSelectors: []string{
			"[class*='stock']",
			"[class*='Stock']",
			"[id*='stock']",
			"[id*='Stock']",
			".stock",
			"#stock",
		},
		InStockKeywords:    []string{"在庫あり", "在庫", "available", "stock"},
		OutOfStockKeywords: []string{"売り切れ", "在庫なし", "out of stock", "sold out"},
	}
}

// FallbackConfigs is the static site table used when the remote configuration
// sheet cannot be loaded. Remote rows win on name collision.
func FallbackConfigs() []*SiteConfig {
	return []*SiteConfig{
		{
			Name:        "Yahoo!オークション",
			URLPatterns: []string{"auctions.yahoo.co.jp", "page.auctions.yahoo.co.jp"},
			PriceSelectors: []string{
				".Price__value",
				"[class*='Price__value']",
				"[class*='price']",
			},
			PriceExcludeSelectors: []string{
				"[class*='Recommend']",
				"[class*='related']",
			},
			StockSelectors:     []string{"[class*='ClosedHeader']", "[class*='status']"},
			InStockKeywords:    []string{"入札", "残り"},
			OutOfStockKeywords: []string{"オークションは終了しています", "終了", "売り切れ"},
		},
		{
			Name:        "メルカリ",
			URLPatterns: []string{"mercari.com", "mercari.jp", "jp.mercari.com"},
			PriceSelectors: []string{
				"[data-testid='price']",
				".item-price",
				".merPrice",
			},
			PriceExcludeSelectors: []string{
				"[class*='recommend']",
				"[data-testid='recommendation']",
			},
			StockSelectors:     []string{"[data-testid='status']", ".item-status", ".sold-out"},
			InStockKeywords:    []string{"購入手続きへ"},
			OutOfStockKeywords: []string{"売り切れ", "取引中", "sold"},
		},
		{
			Name:        "Amazon",
			URLPatterns: []string{"amazon.co.jp", "amazon.com"},
			PriceSelectors: []string{
				"#priceblock_ourprice",
				"#priceblock_dealprice",
				".a-price-whole",
				"#price",
				".a-price .a-offscreen",
			},
			StockSelectors:     []string{"#availability span", "#availability", "#outOfStock", ".a-color-state"},
			InStockKeywords:    []string{"在庫あり", "残り", "in stock", "only"},
			OutOfStockKeywords: []string{"売り切れ", "在庫切れ", "out of stock", "unavailable"},
		},
		{
			Name:        "Yahoo!ショッピング",
			URLPatterns: []string{"shopping.yahoo.co.jp", "store.shopping.yahoo.co.jp"},
			PriceSelectors: []string{
				".elPriceNumber",
				".Price__value",
				"[data-testid='price']",
			},
			StockSelectors:     []string{".elStockStatus", "[data-testid='stock-status']", ".StockStatus"},
			InStockKeywords:    []string{"在庫あり", "あり"},
			OutOfStockKeywords: []string{"売り切れ", "在庫なし", "なし"},
		},
	}
}
