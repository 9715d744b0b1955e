package listing

import "strings"

// conditionAliases maps free-text condition strings to the fixed vocabulary
var conditionAliases = map[string]Condition{
	"brand new": ConditionBrandNew,
	"new":       ConditionBrandNew,
	"like new":  ConditionLikeNew,
	"good":      ConditionGood,
	"fair":      ConditionFair,
	"poor":      ConditionPoor,
}

// genderAliases maps free-text gender strings to the fixed vocabulary
var genderAliases = map[string]Gender{
	"men":    GenderMen,
	"male":   GenderMen,
	"women":  GenderWomen,
	"female": GenderWomen,
	"unisex": GenderUnisex,
	"uni":    GenderUnisex,
	"all":    GenderUnisex,
}

// SpecialBrands maps designer brand names to marketing tags appended to
// a listing's tag set.
var SpecialBrands = map[string][]string{
	"Vivienne Westwood": {"designer", "luxury", "vintage"},
	"Chanel":            {"designer", "luxury", "premium"},
	"Gucci":             {"designer", "luxury", "premium"},
	"Prada":             {"designer", "luxury"},
	"Louis Vuitton":     {"designer", "luxury", "premium"},
}

// NormalizeTags strips whitespace, lowercases, and drops empty and duplicate
// entries while preserving first-seen order.
func NormalizeTags(tags []string) []string {
	norm := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		v := strings.ToLower(strings.TrimSpace(t))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		norm = append(norm, v)
	}
	return norm
}

// AddSpecialBrandTags appends the marketing tags for a known designer brand,
// normalized and de-duplicated against the existing set. Unknown brands are
// a no-op.
func AddSpecialBrandTags(brand string, tags []string) []string {
	out := NormalizeTags(tags)
	if brand == "" {
		return out
	}
	extra := SpecialBrands[brand]
	for _, t := range extra {
		v := strings.ToLower(strings.TrimSpace(t))
		if v == "" {
			continue
		}
		dup := false
		for _, existing := range out {
			if existing == v {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

// NormalizeCondition canonicalizes a free-text condition string
func NormalizeCondition(raw string) (Condition, bool) {
	c, ok := conditionAliases[strings.ToLower(strings.TrimSpace(raw))]
	return c, ok
}

// NormalizeGender canonicalizes a free-text gender string
func NormalizeGender(raw string) (Gender, bool) {
	g, ok := genderAliases[strings.ToLower(strings.TrimSpace(raw))]
	return g, ok
}
