package extract

import (
	"github.com/PuerkitoBio/goquery"
)

// Ancestor context further than this contributes noise, and full-chain scans
// are expensive on large listing pages.
const excludeAncestorDepth = 5

// isExcluded reports whether the element falls inside an excluded page region.
// An element is excluded when it matches an exclusion selector directly, when
// any ancestor within excludeAncestorDepth levels matches, or when its own or
// an ancestor's class/id attribute textually contains the pattern of an
// attribute-contains exclusion selector. The last check covers sites whose
// generated class names defeat literal CSS matching.
func isExcluded(sel *goquery.Selection, excludeSelectors []string) bool {
	for _, exclude := range excludeSelectors {
		classPattern := attrContainsPattern(exclude, "class")
		idPattern := attrContainsPattern(exclude, "id")

		matcher, compiled := compileSelector(exclude)
		if compiled && sel.IsMatcher(matcher) {
			return true
		}
		if attrMatches(sel, classPattern, idPattern) {
			return true
		}

		excluded := false
		ancestorScan(sel, excludeAncestorDepth, func(_ int, ancestor *goquery.Selection) bool {
			if compiled && ancestor.IsMatcher(matcher) {
				excluded = true
				return false
			}
			if attrMatches(ancestor, classPattern, idPattern) {
				excluded = true
				return false
			}
			return true
		})
		if excluded {
			return true
		}
	}
	return false
}

func attrMatches(sel *goquery.Selection, classPattern, idPattern string) bool {
	if classPattern != "" {
		if class, ok := sel.Attr("class"); ok && containsAny(class, []string{classPattern}) {
			return true
		}
	}
	if idPattern != "" {
		if id, ok := sel.Attr("id"); ok && containsAny(id, []string{idPattern}) {
			return true
		}
	}
	return false
}
