package scraper

import (
	"regexp"
	"strings"
)

// Not-found signals, checked in order of cheapness and reliability: the URL
// the site redirected to, then the page title, then body text. Any match
// short-circuits.
var (
	notFoundURLMarkers = []string{
		"/404",
		"/error",
		"notfound",
	}
	notFoundTitleMarkers = []string{
		"404",
		"not found",
		"ページが見つかりません",
		"お探しのページ",
		"エラー",
	}
	notFoundBodyMarkers = []string{
		"ページが見つかりません",
		"お探しのページは見つかりません",
		"この商品は削除されました",
		"page not found",
		"お探しの商品が見つかりません",
	}

	httpErrorStatusPattern = regexp.MustCompile(`\b([4-5]\d{2})\b`)
)

// isNotFoundPage classifies whether a successfully loaded page is actually a
// not-found/error page. A product page that answers not-found is unavailable
// by definition, which the result model encodes as zero price + out of stock.
func isNotFoundPage(url, title, body string) bool {
	urlLower := strings.ToLower(url)
	for _, marker := range notFoundURLMarkers {
		if strings.Contains(urlLower, marker) {
			return true
		}
	}

	titleLower := strings.ToLower(title)
	for _, marker := range notFoundTitleMarkers {
		if strings.Contains(titleLower, strings.ToLower(marker)) {
			return true
		}
	}

	bodyLower := strings.ToLower(body)
	for _, marker := range notFoundBodyMarkers {
		if strings.Contains(bodyLower, strings.ToLower(marker)) {
			return true
		}
	}

	return false
}

// errorIndicates404 digs an HTTP status code out of a driver error message.
// The driver does not surface response status directly, so the message text
// is the only place the code appears.
func errorIndicates404(err error) bool {
	if err == nil {
		return false
	}
	match := httpErrorStatusPattern.FindStringSubmatch(err.Error())
	return match != nil && match[1] == "404"
}
