package extract

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DebugReporter receives the page snapshot when extraction found no price.
// Implementations must treat the snapshot as read-only.
type DebugReporter interface {
	ReportNoPrice(doc *goquery.Document, url string)
}

var debugPriceSelectors = []string{
	"[class*='price']",
	"[id*='price']",
	"[class*='Price']",
	"[id*='Price']",
	".price",
	"#price",
	"span[class*='price']",
	"div[class*='price']",
}

const debugDumpLimit = 10

// LogReporter dumps every price-like element it can find to the log, so a
// failed page can be diagnosed after the run without re-visiting it. Enabled
// only by the debug flag; costs a full extra DOM sweep per failed page.
type LogReporter struct {
	logger *slog.Logger
}

func NewLogReporter() *LogReporter {
	return &LogReporter{
		logger: slog.Default().With("component", "extract", "debug", true),
	}
}

func (r *LogReporter) ReportNoPrice(doc *goquery.Document, url string) {
	r.logger.Warn("dumping price-like elements", "url", truncate(url, 80))

	dumped := 0
	for _, selector := range debugPriceSelectors {
		matcher, ok := compileSelector(selector)
		if !ok {
			continue
		}
		doc.FindMatcher(matcher).Each(func(_ int, sel *goquery.Selection) {
			if dumped >= debugDumpLimit {
				return
			}
			text := strings.TrimSpace(sel.Text())
			if text == "" {
				return
			}
			class, _ := sel.Attr("class")
			id, _ := sel.Attr("id")
			price, found := ParsePrice(text)
			r.logger.Warn("price-like element",
				"selector", selector,
				"tag", goquery.NodeName(sel),
				"class", truncate(class, 50),
				"id", id,
				"text", truncate(text, 200),
				"parsed", price,
				"parsedOK", found,
			)
			dumped++
		})
		if dumped >= debugDumpLimit {
			break
		}
	}

	if dumped == 0 {
		r.logger.Warn("no price-like elements at all", "title", doc.Find("title").Text())
		for i, el := range elementsWithOwnText(doc, yenUnitMarker) {
			if i >= 5 {
				break
			}
			r.logger.Warn("yen-bearing element",
				"tag", goquery.NodeName(el),
				"text", truncate(strings.TrimSpace(el.Text()), 100),
			)
		}
	}
}
