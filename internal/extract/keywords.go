package extract

// Fixed keyword sets tuned against the supported marketplaces. These are
// matched by case-insensitive containment against candidate text.
var (
	// relatedSectionKeywords mark cross-sell and recommendation blocks whose
	// prices belong to other listings.
	relatedSectionKeywords = []string{
		"この商品も注目されています",
		"おすすめ",
		"関連商品",
		"この商品も",
		"注目されています",
		"おすすめ商品",
	}

	// priorityKeywords co-occur with the live listing price far more reliably
	// than generic price-looking numbers: buy-it-now, tax-inclusive, shipping
	// and bidding-action phrases.
	priorityKeywords = []string{
		"即決",
		"（税0円）",
		"税0円",
		"送料",
		"配送方法",
		"入札する",
		"今すぐ落札",
	}

	// promoDenylist disqualifies cashback, point-system and itemized-fee text
	// around a candidate. ID-targeted selectors use the relaxed variant:
	// point-multiplier banners ("倍") don't disqualify an ID-anchored price.
	promoDenylist        = []string{"楽天カード", "ポイント利用", "special", "offer", "送料別", "内訳", "倍"}
	promoDenylistRelaxed = []string{"楽天カード", "ポイント利用", "special", "offer", "送料別", "内訳"}

	// shopSectionKeywords mark storefront cross-sell sections on shop-style
	// product pages.
	shopSectionKeywords = []string{
		"このショップの商品",
		"おすすめ",
		"ランキング",
		"この商品を見ている人に",
		"shopsゲーム",
		"人気の商品",
	}
)

// Marker phrases used by the label-proximity and auction fallback strategies.
const (
	shippingIncludedMarker = "送料込み"
	currentPriceMarker     = "現在"
	yenUnitMarker          = "円"
)
