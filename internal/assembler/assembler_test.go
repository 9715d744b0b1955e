package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topcare/listingworker/internal/extractor"
	"topcare/listingworker/internal/fetcher"
	"topcare/listingworker/internal/listing"
	errs "topcare/listingworker/pkg/errors"
)

const productPage = `<html>
<head>
	<meta property="og:title" content="Gucci Horsebit loafers | Farfetch">
	<meta property="product:price:amount" content="830.00">
	<meta name="description" content="Black leather loafers with gold-tone hardware.">
	<meta property="og:image" content="//cdn-images.farfetch-contents.com/1.jpg">
	<meta property="og:image" content="/img/2.jpg">
	<meta property="og:image" content="//cdn-images.farfetch-contents.com/1.jpg">
</head>
<body>
	<h1>Gucci Horsebit loafers</h1>
	<div><h3>Highlights</h3><ul><li>gold-tone hardware</li><li>slip-on style</li></ul></div>
	<div><h3>Composition</h3><ul><li>Leather 100%</li></ul></div>
</body>
</html>`

func newTestAssembler() *Assembler {
	return New(extractor.New("https://www.farfetch.com", "Farfetch", "farfetch"))
}

func TestAssembleFullPage(t *testing.T) {
	a := newTestAssembler()

	draft, err := a.Assemble(&fetcher.Page{
		Body:     productPage,
		FinalURL: "https://www.farfetch.com/item-1.aspx",
	})
	require.NoError(t, err)
	require.NotNil(t, draft)

	assert.Equal(t, "Gucci Horsebit loafers", draft.Title)
	assert.Equal(t, "Gucci", draft.Brand)
	assert.Equal(t, 830.00, draft.Price)
	assert.Equal(t, listing.CategoryFootwear, draft.Category)
	assert.Equal(t, listing.ShippingStandard, draft.ShippingOption)
	assert.Equal(t, listing.ConditionLikeNew, draft.Condition)
	assert.Equal(t, listing.GenderWomen, draft.Gender)
	assert.Equal(t, 1, draft.Quantity)
	assert.True(t, draft.Listed)
	assert.False(t, draft.Sold)
	assert.Nil(t, draft.Size)
	assert.Nil(t, draft.ShippingFee)
	assert.Nil(t, draft.Location)

	// Tags: brand + product words, then designer-brand marketing tags
	assert.Equal(t, []string{"gucci", "horsebit", "loafers", "designer", "luxury", "premium"}, draft.Tags)

	// Images: absolute, de-duplicated, encounter order
	assert.Equal(t, []string{
		"https://cdn-images.farfetch-contents.com/1.jpg",
		"https://www.farfetch.com/img/2.jpg",
	}, draft.Images)

	require.NotNil(t, draft.Material)
	assert.Equal(t, "Leather 100%", *draft.Material)

	assert.Contains(t, draft.Description, "Black leather loafers with gold-tone hardware.")
	assert.Contains(t, draft.Description, "Highlights: gold-tone hardware; slip-on style")
	assert.Contains(t, draft.Description, "Composition: Leather 100%")

	assert.NoError(t, draft.Validate())
}

func TestAssembleDraftInvariants(t *testing.T) {
	a := newTestAssembler()

	draft, err := a.Assemble(&fetcher.Page{Body: productPage, FinalURL: "https://www.farfetch.com/item-1.aspx"})
	require.NoError(t, err)

	assert.Greater(t, draft.Price, 0.0)
	assert.True(t, draft.Category.Valid())

	seen := map[string]struct{}{}
	for _, tag := range draft.Tags {
		assert.NotEmpty(t, tag)
		_, dup := seen[tag]
		assert.False(t, dup, "duplicate tag %q", tag)
		seen[tag] = struct{}{}
	}

	for _, img := range draft.Images {
		assert.True(t, strings.HasPrefix(img, "https://"), "image URL %q should be absolute", img)
	}
}

func TestAssembleMissingPrice(t *testing.T) {
	a := newTestAssembler()
	page := &fetcher.Page{
		Body:     `<html><head><meta property="og:title" content="Gucci loafers | Farfetch"></head><body>Sold out</body></html>`,
		FinalURL: "https://www.farfetch.com/item-2.aspx",
	}

	draft, err := a.Assemble(page)
	assert.Nil(t, draft, "no partial draft without a price")
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypePriceUnresolved), "got %v", err)
}

func TestAssembleGeneratedDescription(t *testing.T) {
	a := newTestAssembler()
	page := &fetcher.Page{
		Body:     `<html><head><meta property="og:title" content="Prada tote | Farfetch"><meta property="product:price:amount" content="1500"></head><body></body></html>`,
		FinalURL: "https://www.farfetch.com/item-3.aspx",
	}

	draft, err := a.Assemble(page)
	require.NoError(t, err)
	assert.Equal(t, "Prada tote from Farfetch.", draft.Description)
	assert.Nil(t, draft.Material)
}
