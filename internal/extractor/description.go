package extractor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// siblingScanLimit bounds the fallback scan when a heading has no list after it
const siblingScanLimit = 10

// Description concatenates the meta description with "Highlights: " and
// "Composition: " bullet lines, one part per line. When all parts are empty
// a generated sentence takes their place.
func (e *Extractor) Description(doc *goquery.Document, brand, product string) string {
	var parts []string

	if content, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if v := strings.TrimSpace(content); v != "" {
			parts = append(parts, v)
		}
	}

	if highlights := itemsAfterHeading(doc, "Highlights"); len(highlights) > 0 {
		parts = append(parts, "Highlights: "+strings.Join(highlights, "; "))
	}

	if composition := itemsAfterHeading(doc, "Composition"); len(composition) > 0 {
		parts = append(parts, "Composition: "+strings.Join(composition, "; "))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%s %s from %s.", brand, product, e.SiteName)
	}
	return strings.Join(parts, "\n")
}

// Material joins the Composition bullet items, empty when the page has none
func (e *Extractor) Material(doc *goquery.Document) string {
	return strings.Join(itemsAfterHeading(doc, "Composition"), "; ")
}

// itemsAfterHeading collects the bullet items following a heading whose text
// contains the given string: the nearest following <ul>'s <li> items, or up
// to siblingScanLimit sibling elements' text when no list follows.
func itemsAfterHeading(doc *goquery.Document, heading string) []string {
	sel := findHeading(doc, heading)
	if sel == nil {
		return nil
	}

	ul := sel.NextAllFiltered("ul").First()
	if ul.Length() == 0 {
		ul = sel.Parent().NextAllFiltered("ul").First()
	}
	if ul.Length() > 0 {
		var items []string
		ul.Find("li").Each(func(_ int, li *goquery.Selection) {
			if t := strings.TrimSpace(li.Text()); t != "" {
				items = append(items, t)
			}
		})
		return items
	}

	var items []string
	sibs := sel.NextAll()
	for i := 0; i < sibs.Length() && i < siblingScanLimit; i++ {
		if t := strings.TrimSpace(sibs.Eq(i).Text()); t != "" {
			items = append(items, t)
		}
	}
	return items
}

// findHeading returns the deepest element whose direct text contains heading,
// case-insensitively, in document order.
func findHeading(doc *goquery.Document, heading string) *goquery.Selection {
	needle := strings.ToLower(heading)
	var found *goquery.Selection

	doc.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(ownText(s)), needle) {
			found = s
			return false
		}
		return true
	})

	return found
}

// ownText concatenates the direct text-node children of a selection,
// excluding descendant elements' text.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	for _, node := range s.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return b.String()
}
