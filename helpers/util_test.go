package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSplitPart(t *testing.T) {
	part, err := GetSplitPart("Gucci loafers | Farfetch", "|", 0)
	assert.NoError(t, err)
	assert.Equal(t, "Gucci loafers ", part)

	part, err = GetSplitPart("a,b,c", ",", 2)
	assert.NoError(t, err)
	assert.Equal(t, "c", part)

	_, err = GetSplitPart("a,b", ",", 5)
	assert.Error(t, err)
}

func TestAbsoluteURL(t *testing.T) {
	origin := "https://www.farfetch.com"

	testCases := []struct {
		input    string
		expected string
	}{
		{"//cdn-images.farfetch-contents.com/a.jpg", "https://cdn-images.farfetch-contents.com/a.jpg"},
		{"/img/b.jpg", "https://www.farfetch.com/img/b.jpg"},
		{"https://cdn.example.com/c.jpg", "https://cdn.example.com/c.jpg"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, AbsoluteURL(tc.input, origin), tc.input)
	}
}
