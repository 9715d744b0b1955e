// Package extractor derives listing fields from a parsed product page. Each
// extractor is a pure function over the document and independent of the
// others; the assembler composes them.
package extractor

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"topcare/listingworker/helpers"
)

// Extractor holds the origin-site parameters the field heuristics depend on
type Extractor struct {
	// Origin is the scheme+host of the origin site, e.g. https://www.farfetch.com
	Origin string
	// SiteName is the display name stripped from title suffixes, e.g. Farfetch
	SiteName string
	// CDNHint is a hostname fragment identifying the site's image CDN
	CDNHint string
}

// New creates an extractor for the given origin site
func New(origin, siteName, cdnHint string) *Extractor {
	return &Extractor{
		Origin:   strings.TrimRight(origin, "/"),
		SiteName: siteName,
		CDNHint:  strings.ToLower(cdnHint),
	}
}

// TitleBrand reads the page title (og:title, then <title>, then the first
// <h1>, else "Untitled"), strips site suffixes, and splits it into brand
// (first word) and product name (the rest). A single-word title is both.
func (e *Extractor) TitleBrand(doc *goquery.Document) (brand, product string) {
	raw := ""
	if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(v) != "" {
		raw = strings.TrimSpace(v)
	} else if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		raw = t
	} else if h := strings.TrimSpace(doc.Find("h1").First().Text()); h != "" {
		raw = h
	} else {
		raw = "Untitled"
	}

	main, _ := helpers.GetSplitPart(raw, "|", 0)
	main = strings.TrimSpace(main)
	main = strings.TrimSpace(strings.Split(main, "- "+e.SiteName)[0])

	words := strings.Fields(main)
	if len(words) > 1 {
		return words[0], strings.Join(words[1:], " ")
	}
	return main, main
}

var (
	currencyPriceRe = regexp.MustCompile(`[$€£¥]\s*[\d,]+(?:\.\d+)?`)
	nonNumericRe    = regexp.MustCompile(`[^\d.]`)
)

// Price resolves the product price, trying the price meta tag, then JSON-LD
// offers, then a currency-symbol scan of the raw HTML. Only prices > 0 count.
func (e *Extractor) Price(doc *goquery.Document, rawHTML string) (float64, bool) {
	if v, ok := doc.Find(`meta[property="product:price:amount"]`).Attr("content"); ok {
		if p, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && p > 0 {
			return p, true
		}
	}

	if p, ok := priceFromJSONLD(doc); ok {
		return p, true
	}

	return priceFromText(rawHTML)
}

func priceFromJSONLD(doc *goquery.Document) (float64, bool) {
	var found float64
	var ok bool

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		switch offers := data["offers"].(type) {
		case map[string]interface{}:
			if p, valid := numericPrice(offers["price"]); valid {
				found, ok = p, true
				return false
			}
		case []interface{}:
			if len(offers) > 0 {
				if first, isMap := offers[0].(map[string]interface{}); isMap {
					if p, valid := numericPrice(first["price"]); valid {
						found, ok = p, true
						return false
					}
				}
			}
		}
		return true
	})

	return found, ok
}

// numericPrice accepts the price shapes seen in the wild: JSON numbers and
// numeric strings.
func numericPrice(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if n > 0 {
			return n, true
		}
	case string:
		if p, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil && p > 0 {
			return p, true
		}
	}
	return 0, false
}

func priceFromText(rawHTML string) (float64, bool) {
	m := currencyPriceRe.FindString(rawHTML)
	if m == "" {
		return 0, false
	}
	numeric := nonNumericRe.ReplaceAllString(m, "")
	p, err := strconv.ParseFloat(numeric, 64)
	if err != nil || p <= 0 {
		return 0, false
	}
	return p, true
}

// Images collects og:image URLs, falling back to <img> tags served from the
// site's CDN. URLs are made absolute against the origin and de-duplicated in
// encounter order.
func (e *Extractor) Images(doc *goquery.Document) []string {
	var urls []string
	seen := make(map[string]struct{})

	add := func(src string) {
		src = strings.TrimSpace(src)
		if src == "" {
			return
		}
		abs := helpers.AbsoluteURL(src, e.Origin)
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		urls = append(urls, abs)
	}

	doc.Find(`meta[property="og:image"]`).Each(func(_ int, s *goquery.Selection) {
		if content, ok := s.Attr("content"); ok {
			add(content)
		}
	})
	if len(urls) > 0 {
		return urls
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if src == "" {
			src, _ = s.Attr("data-src")
		}
		if src != "" && strings.Contains(strings.ToLower(src), e.CDNHint) {
			add(src)
		}
	})

	return urls
}
