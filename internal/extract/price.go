package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	digitRunPattern = regexp.MustCompile(`[0-9]+`)
	yenPricePattern = regexp.MustCompile(`[¥￥]\s*([0-9,]+)`)
)

// ParsePrice extracts the first run of digits from text, after stripping
// thousands separators, and returns it as a whole-yen integer. The second
// return value is false when the text carries no digits at all. It never
// panics on malformed input.
func ParsePrice(text string) (int, bool) {
	if text == "" {
		return 0, false
	}

	cleaned := strings.ReplaceAll(text, ",", "")
	match := digitRunPattern.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	price, err := strconv.Atoi(match)
	if err != nil {
		// A digit run too long for int; treat as absent rather than failing.
		return 0, false
	}
	return price, true
}

// ParseYenPrice extracts a price only when a currency glyph (¥ or ￥)
// immediately precedes the digit run. Glyph-prefixed numbers are a much
// stronger signal than bare digits, so callers try this variant first on
// pages cluttered with point and shipping amounts.
func ParseYenPrice(text string) (int, bool) {
	if text == "" {
		return 0, false
	}

	match := yenPricePattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}

	price, err := strconv.Atoi(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return price, true
}
