package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
		ok       bool
	}{
		{name: "Plain digits", text: "4800", expected: 4800, ok: true},
		{name: "Thousands separator", text: "1,234,500", expected: 1234500, ok: true},
		{name: "Yen glyph prefix", text: "¥4,800", expected: 4800, ok: true},
		{name: "Fullwidth yen glyph", text: "￥9,800", expected: 9800, ok: true},
		{name: "Yen unit suffix", text: "3,000円", expected: 3000, ok: true},
		{name: "Price inside sentence", text: "現在 2,500円（税込）", expected: 2500, ok: true},
		{name: "First digit run wins", text: "1,000円 ～ 5,000円", expected: 1000, ok: true},
		{name: "No digits", text: "売り切れました", expected: 0, ok: false},
		{name: "Empty string", text: "", expected: 0, ok: false},
		{name: "Whitespace only", text: "   ", expected: 0, ok: false},
		{name: "Digit run overflowing int", text: "99999999999999999999999", expected: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := ParsePrice(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, price)
		})
	}
}

func TestParseYenPrice(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
		ok       bool
	}{
		{name: "Halfwidth glyph", text: "¥4,580 送料込み", expected: 4580, ok: true},
		{name: "Fullwidth glyph", text: "￥12,000", expected: 12000, ok: true},
		{name: "Glyph with space", text: "¥ 2,500", expected: 2500, ok: true},
		{name: "Bare digits rejected", text: "4800円", expected: 0, ok: false},
		{name: "No glyph at all", text: "ポイント5倍", expected: 0, ok: false},
		{name: "Empty string", text: "", expected: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok := ParseYenPrice(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, price)
		})
	}
}
