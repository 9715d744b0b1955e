package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTags(t *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "trims lowers and dedupes preserving order",
			input:    []string{"  Foo ", "foo", "Bar", ""},
			expected: []string{"foo", "bar"},
		},
		{
			name:     "empty input",
			input:    nil,
			expected: []string{},
		},
		{
			name:     "whitespace-only entries dropped",
			input:    []string{"   ", "\t", "shoes"},
			expected: []string{"shoes"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeTags(tc.input))
		})
	}
}

func TestAddSpecialBrandTags(t *testing.T) {
	// Known designer brand appends its marketing tags
	tags := AddSpecialBrandTags("Gucci", []string{"gucci", "shoes"})
	assert.Equal(t, []string{"gucci", "shoes", "designer", "luxury", "premium"}, tags)

	// Already-present tags are not duplicated
	tags = AddSpecialBrandTags("Prada", []string{"designer", "prada"})
	assert.Equal(t, []string{"designer", "prada", "luxury"}, tags)

	// Unknown brand is a no-op beyond normalization
	tags = AddSpecialBrandTags("Uniqlo", []string{"Uniqlo", "basics"})
	assert.Equal(t, []string{"uniqlo", "basics"}, tags)

	// Missing brand is a no-op
	tags = AddSpecialBrandTags("", []string{"a", "b"})
	assert.Equal(t, []string{"a", "b"}, tags)
}

func TestNormalizeCondition(t *testing.T) {
	c, ok := NormalizeCondition("new")
	assert.True(t, ok)
	assert.Equal(t, ConditionBrandNew, c)

	c, ok = NormalizeCondition(" Like New ")
	assert.True(t, ok)
	assert.Equal(t, ConditionLikeNew, c)

	_, ok = NormalizeCondition("worn once")
	assert.False(t, ok)
}

func TestNormalizeGender(t *testing.T) {
	g, ok := NormalizeGender("female")
	assert.True(t, ok)
	assert.Equal(t, GenderWomen, g)

	g, ok = NormalizeGender("ALL")
	assert.True(t, ok)
	assert.Equal(t, GenderUnisex, g)

	_, ok = NormalizeGender("kids")
	assert.False(t, ok)
}

func TestDraftValidate(t *testing.T) {
	draft := &Draft{
		Title:          "Gucci loafers",
		Description:    "desc",
		Price:          129.99,
		Category:       CategoryFootwear,
		ShippingOption: ShippingStandard,
		Condition:      ConditionLikeNew,
		Gender:         GenderWomen,
		Quantity:       1,
		Listed:         true,
	}
	assert.NoError(t, draft.Validate())

	bad := *draft
	bad.Price = 0
	assert.Error(t, bad.Validate())

	bad = *draft
	bad.Category = "Shirts"
	assert.Error(t, bad.Validate())

	bad = *draft
	bad.Title = ""
	assert.Error(t, bad.Validate())
}
