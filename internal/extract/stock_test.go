package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ysugihara/inventory-scraper/internal/models"
	"github.com/ysugihara/inventory-scraper/internal/siteconfig"
)

func TestClassifyStock(t *testing.T) {
	cfg := siteconfig.DefaultConfig()

	tests := []struct {
		name     string
		html     string
		expected models.StockStatus
	}{
		{
			name:     "In stock keyword",
			html:     `<div class="stock">在庫あり</div>`,
			expected: models.StockInStock,
		},
		{
			name:     "Sold out keyword",
			html:     `<div class="stock">売り切れ</div>`,
			expected: models.StockOutOfStock,
		},
		{
			name:     "English sold out",
			html:     `<div class="stock-label">Out of Stock</div>`,
			expected: models.StockOutOfStock,
		},
		{
			name:     "No stock element defaults to in stock",
			html:     `<div class="title">商品ページ</div>`,
			expected: models.StockInStock,
		},
		{
			name:     "Stock element with unrelated text",
			html:     `<div class="stock">発送まで2日</div>`,
			expected: models.StockInStock,
		},
		{
			name: "Later selector flips to sold out",
			html: `<div class="stock">在庫あり</div>
			       <div id="stock-note">売り切れのためご購入いただけません</div>`,
			expected: models.StockOutOfStock,
		},
		{
			name:     "Sold out wins when both keywords present",
			html:     `<div class="stock">売り切れ（再入荷で在庫ありになります）</div>`,
			expected: models.StockOutOfStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.html)
			assert.Equal(t, tt.expected, ClassifyStock(doc, cfg))
		})
	}
}

func TestClassifyStockIsDeterministic(t *testing.T) {
	doc := parseDoc(t, `<div class="stock">売り切れ</div>`)
	cfg := siteconfig.DefaultConfig()

	first := ClassifyStock(doc, cfg)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ClassifyStock(doc, cfg))
	}
}
