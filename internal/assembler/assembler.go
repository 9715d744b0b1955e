// Package assembler turns one fetched product page into a canonical listing
// draft. It is a pure transform with no I/O; a page whose price cannot be
// resolved yields no draft at all.
package assembler

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"topcare/listingworker/internal/extractor"
	"topcare/listingworker/internal/fetcher"
	"topcare/listingworker/internal/listing"
	"topcare/listingworker/logger"
	errs "topcare/listingworker/pkg/errors"
)

// Assembler composes the field extractors over a fetched page
type Assembler struct {
	ex  *extractor.Extractor
	log *logger.Logger
}

// New creates an assembler using the given extractor
func New(ex *extractor.Extractor) *Assembler {
	return &Assembler{
		ex:  ex,
		log: logger.ForAssembler(),
	}
}

// Assemble builds a fully populated draft from one fetched page. Source URLs
// are pre-filtered to near-new women's items, so condition and gender stay
// fixed defaults.
func (a *Assembler) Assemble(page *fetcher.Page) (*listing.Draft, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.Body))
	if err != nil {
		return nil, errs.NewParse(page.FinalURL, "failed to parse product page", err)
	}

	brand, product := a.ex.TitleBrand(doc)

	price, ok := a.ex.Price(doc, page.Body)
	if !ok {
		return nil, errs.NewPriceUnresolved(page.FinalURL)
	}

	images := a.ex.Images(doc)
	description := a.ex.Description(doc, brand, product)
	category := extractor.GuessCategoryFromText(page.Body)

	tags := listing.NormalizeTags(append([]string{brand}, strings.Fields(product)...))
	tags = listing.AddSpecialBrandTags(brand, tags)

	var material *string
	if m := a.ex.Material(doc); m != "" {
		material = &m
	}

	draft := &listing.Draft{
		Title:          brand + " " + product,
		Description:    description,
		Price:          price,
		Category:       category,
		ShippingOption: listing.ShippingStandard,
		Brand:          brand,
		Condition:      listing.ConditionLikeNew,
		Material:       material,
		Tags:           tags,
		Gender:         listing.GenderWomen,
		Images:         images,
		Quantity:       1,
		Listed:         true,
		Sold:           false,
	}

	a.log.Debug().
		Str("url", page.FinalURL).
		Str("brand", brand).
		Float64("price", price).
		Str("category", string(category)).
		Int("images", len(images)).
		Msg("Assembled listing draft")

	return draft, nil
}
