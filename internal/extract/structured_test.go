package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

const auctionTestURL = "https://page.auctions.yahoo.co.jp/jp/auction/x1234567890"

func nextDataHTML(itemJSON string) string {
	return fmt.Sprintf(`<html><body>
		<script id="__NEXT_DATA__" type="application/json">
		{"props":{"pageProps":{"initialState":{"item":{"detail":{"item":%s}}}}}}
		</script>
		</body></html>`, itemJSON)
}

func TestStructuredDataStrategyApplies(t *testing.T) {
	s := newStructuredDataStrategy()
	assert.True(t, s.Applies(auctionTestURL))
	assert.False(t, s.Applies("https://jp.mercari.com/item/m123"))
}

func TestStructuredDataExtract(t *testing.T) {
	s := newStructuredDataStrategy()

	tests := []struct {
		name     string
		itemJSON string
		expected int
		ok       bool
	}{
		{
			name:     "Tax inclusive price",
			itemJSON: `{"taxinPrice": 3000, "price": 2728}`,
			expected: 3000,
			ok:       true,
		},
		{
			name:     "Tax inclusive start price",
			itemJSON: `{"taxinStartPrice": 1100}`,
			expected: 1100,
			ok:       true,
		},
		{
			name:     "Raw price wins over tax computation",
			itemJSON: `{"price": 1000, "taxRate": 10}`,
			expected: 1000,
			ok:       true,
		},
		{
			name:     "Raw price without tax rate",
			itemJSON: `{"price": 2500}`,
			expected: 2500,
			ok:       true,
		},
		{
			name:     "Tax rate alone computes nothing",
			itemJSON: `{"price": "n/a", "taxRate": 10}`,
			expected: 0,
			ok:       false,
		},
		{
			name:     "String typed price",
			itemJSON: `{"price": "2500"}`,
			expected: 2500,
			ok:       true,
		},
		{
			name:     "Start price as last resort",
			itemJSON: `{"initPrice": 800}`,
			expected: 800,
			ok:       true,
		},
		{
			name:     "Zero prices ignored",
			itemJSON: `{"taxinPrice": 0, "price": 0}`,
			expected: 0,
			ok:       false,
		},
		{
			name:     "No price fields",
			itemJSON: `{"title": "商品名"}`,
			expected: 0,
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, nextDataHTML(tt.itemJSON))
			price, ok := s.Extract(doc, auctionTestURL, nil)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, price)
		})
	}
}

func TestStructuredDataExtractMalformedPayload(t *testing.T) {
	s := newStructuredDataStrategy()

	doc := parseDoc(t, `<script id="__NEXT_DATA__">{not valid json</script>`)
	_, ok := s.Extract(doc, auctionTestURL, nil)
	assert.False(t, ok)

	doc = parseDoc(t, `<div>no structured data here</div>`)
	_, ok = s.Extract(doc, auctionTestURL, nil)
	assert.False(t, ok)

	doc = parseDoc(t, `<script id="__NEXT_DATA__">{"props":{}}</script>`)
	_, ok = s.Extract(doc, auctionTestURL, nil)
	assert.False(t, ok)
}
