package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionFullPage(t *testing.T) {
	e := newTestExtractor()
	html := `<html>
		<head><meta name="description" content="Black leather loafers with gold-tone hardware."></head>
		<body>
			<div><h3>Highlights</h3><ul><li>gold-tone hardware</li><li>slip-on style</li></ul></div>
			<div><h3>Composition</h3><ul><li>Leather 100%</li></ul></div>
		</body></html>`

	desc := e.Description(newDoc(t, html), "Gucci", "Horsebit loafers")
	assert.Equal(t,
		"Black leather loafers with gold-tone hardware.\n"+
			"Highlights: gold-tone hardware; slip-on style\n"+
			"Composition: Leather 100%",
		desc)
}

func TestDescriptionSiblingFallback(t *testing.T) {
	e := newTestExtractor()
	// No <ul> after the heading, so sibling elements supply the items
	html := `<html><body>
		<section>
			<span>Composition</span>
			<div>Outer: Leather 100%</div>
			<div>Lining: Silk 100%</div>
		</section>
	</body></html>`

	desc := e.Description(newDoc(t, html), "Prada", "tote")
	assert.Equal(t, "Composition: Outer: Leather 100%; Lining: Silk 100%", desc)
}

func TestDescriptionGeneratedFallback(t *testing.T) {
	e := newTestExtractor()
	desc := e.Description(newDoc(t, `<html><body><p>bare page</p></body></html>`), "Gucci", "Horsebit loafers")
	assert.Equal(t, "Gucci Horsebit loafers from Farfetch.", desc)
}

func TestMaterial(t *testing.T) {
	e := newTestExtractor()

	html := `<html><body>
		<div><h3>Composition</h3><ul><li>Cotton 80%</li><li>Elastane 20%</li></ul></div>
	</body></html>`
	assert.Equal(t, "Cotton 80%; Elastane 20%", e.Material(newDoc(t, html)))

	assert.Equal(t, "", e.Material(newDoc(t, `<html><body></body></html>`)))
}
