package extractor

import (
	"strings"

	"topcare/listingworker/internal/listing"
)

// categoryKeywords is checked in order; the first group with a match wins.
// Ordering resolves keywords that could plausibly appear in several groups'
// contexts.
var categoryKeywords = []struct {
	category listing.Category
	keywords []string
}{
	{listing.CategoryBottoms, []string{"jeans", "trousers", "pants", "shorts", "skirt"}},
	{listing.CategoryFootwear, []string{"sneakers", "boots", "sandals", "pumps", "heels", "loafers"}},
	{listing.CategoryOuterwear, []string{"jacket", "coat", "bomber", "cardigan", "cape", "blazer", "parka", "puffer"}},
	{listing.CategoryAccessories, []string{"bag", "belt", "wallet", "scarf", "hat", "cap", "accessories"}},
}

// GuessCategoryFromText matches the page text against the ordered keyword
// groups, defaulting to Tops when nothing matches.
func GuessCategoryFromText(text string) listing.Category {
	t := strings.ToLower(text)
	for _, group := range categoryKeywords {
		for _, k := range group.keywords {
			if strings.Contains(t, k) {
				return group.category
			}
		}
	}
	return listing.CategoryTops
}
