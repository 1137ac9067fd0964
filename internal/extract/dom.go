package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// compileSelector compiles a CSS selector, returning ok=false for selectors
// cascadia cannot parse. Sheet-supplied selectors are user input; a bad one
// must never abort a collection pass.
func compileSelector(selector string) (cascadia.Selector, bool) {
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, false
	}
	return matcher, true
}

// ownText returns the text carried directly by the element's own text nodes,
// excluding descendant elements. This mirrors matching on an element's
// immediate text content rather than its whole subtree.
func ownText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range sel.Nodes {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.TextNode {
				sb.WriteString(child.Data)
			}
		}
	}
	return sb.String()
}

// elementsWithOwnText returns every element whose direct text contains marker.
func elementsWithOwnText(doc *goquery.Document, marker string) []*goquery.Selection {
	var found []*goquery.Selection
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if strings.Contains(ownText(sel), marker) {
			found = append(found, sel)
		}
	})
	return found
}

// ancestorScan walks up from sel through at most depth ancestor levels,
// invoking visit with each ancestor (nearest first). Returning false stops
// the scan early.
func ancestorScan(sel *goquery.Selection, depth int, visit func(level int, ancestor *goquery.Selection) bool) {
	current := sel
	for level := 1; level <= depth; level++ {
		current = current.Parent()
		if current.Length() == 0 {
			return
		}
		if !visit(level, current) {
			return
		}
	}
}

// containsAny reports whether text contains any of the given keywords.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// attrContainsPattern extracts the substring pattern from an
// attribute-contains selector like "[class*='promo']" for the given attribute.
// Returns "" when the selector is not of that form.
func attrContainsPattern(selector, attr string) string {
	marker := "[" + attr + "*="
	idx := strings.Index(selector, marker)
	if idx < 0 {
		return ""
	}
	rest := selector[idx+len(marker):]

	var quote byte
	if len(rest) > 0 && (rest[0] == '\'' || rest[0] == '"') {
		quote = rest[0]
		rest = rest[1:]
	}

	var end int
	if quote != 0 {
		end = strings.IndexByte(rest, quote)
	} else {
		end = strings.IndexByte(rest, ']')
	}
	if end <= 0 {
		return ""
	}
	return rest[:end]
}

// isIDSelector reports whether the selector targets elements by ID. ID-based
// selectors are treated as higher confidence by the keyword filters.
func isIDSelector(selector string) bool {
	return strings.HasPrefix(selector, "#") ||
		strings.Contains(selector, "[id=") ||
		strings.Contains(selector, "[id*=")
}
