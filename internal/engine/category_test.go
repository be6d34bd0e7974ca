// internal/engine/category_test.go
package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]string{
		"Bonded":        "Bonded",
		"bonded":        "Bonded",
		"  Provisions ": "Provisions",
		"deck/engine":   "Deck/Engine",
		"DECK ENGINE":   "Deck/Engine",
		"misc":          "Miscellaneous",
	}
	for input, want := range cases {
		got, err := NormalizeCategory(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := NormalizeCategory("Cargo")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestNormalizeCategoriesDedupes(t *testing.T) {
	got, err := NormalizeCategories([]string{"bonded", "Provisions", "BONDED"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bonded", "Provisions"}, got)
}

func TestNormalizeCategoriesEmpty(t *testing.T) {
	_, err := NormalizeCategories(nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCategoryTagShapes(t *testing.T) {
	var tags []CategoryTag
	payload := `["Bonded", {"name": "Provisions"}]`
	require.NoError(t, json.Unmarshal([]byte(payload), &tags))

	got, err := NormalizeCategories(TagsToStrings(tags))
	require.NoError(t, err)
	assert.Equal(t, []string{"Bonded", "Provisions"}, got)
}
