package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExcludedDirectMatch(t *testing.T) {
	doc := parseDoc(t, `<div class="related-item"><span id="target">1,200円</span></div>`)
	target := doc.Find(".related-item")

	assert.True(t, isExcluded(target, []string{"[class*='related']"}))
}

func TestIsExcludedAncestorMatch(t *testing.T) {
	doc := parseDoc(t, `
		<div class="Recommend_list">
			<div><span id="target">1,200円</span></div>
		</div>`)
	target := doc.Find("#target")

	assert.True(t, isExcluded(target, []string{"[class*='Recommend']"}))
}

func TestIsExcludedAttrPatternOnGeneratedClass(t *testing.T) {
	// Hash-suffixed class names still carry the pattern as a substring.
	doc := parseDoc(t, `<div class="sc-Recommend__a8f3"><span id="target">1,200円</span></div>`)
	target := doc.Find("#target")

	assert.True(t, isExcluded(target, []string{"[class*='Recommend']"}))
}

func TestIsExcludedRespectsAncestorDepth(t *testing.T) {
	doc := parseDoc(t, `
		<div class="Recommend_list">
			<div><div><div><div><div>
				<span id="target">1,200円</span>
			</div></div></div></div></div>
		</div>`)
	target := doc.Find("#target")

	// Six levels up is out of scan range.
	assert.False(t, isExcluded(target, []string{".Recommend_list"}))
}

func TestIsExcludedCleanElement(t *testing.T) {
	doc := parseDoc(t, `<div class="main-price"><span id="target">4,800円</span></div>`)
	target := doc.Find("#target")

	assert.False(t, isExcluded(target, []string{"[class*='Recommend']", "[class*='related']"}))
}

func TestIsExcludedInvalidSelectorSkipped(t *testing.T) {
	doc := parseDoc(t, `<span id="target">4,800円</span>`)
	target := doc.Find("#target")

	assert.False(t, isExcluded(target, []string{"[[[broken"}))
}
