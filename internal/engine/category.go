// internal/engine/category.go
package engine

import (
	"encoding/json"
	"strings"

	"github.com/omsmarine/vims-backend/internal/models"
)

// Category tags arrive from clients in sloppy shapes: bare strings, objects
// with a name field, mixed casing and stray whitespace. Everything is folded
// onto models.CanonicalCategories here, at the boundary, so the rest of the
// system only ever sees canonical strings.

var categoryAliases = map[string]string{
	"bonded":        models.CategoryBonded,
	"provisions":    models.CategoryProvisions,
	"provision":     models.CategoryProvisions,
	"deck/engine":   models.CategoryDeckEngine,
	"deck engine":   models.CategoryDeckEngine,
	"deck":          models.CategoryDeckEngine,
	"engine":        models.CategoryDeckEngine,
	"miscellaneous": models.CategoryMiscellaneous,
	"misc":          models.CategoryMiscellaneous,
}

// NormalizeCategory maps one free-form tag onto its canonical name.
func NormalizeCategory(tag string) (string, error) {
	key := strings.ToLower(strings.Join(strings.Fields(tag), " "))
	if canonical, ok := categoryAliases[key]; ok {
		return canonical, nil
	}
	return "", newValidationError("categories", "unknown category "+strings.TrimSpace(tag))
}

// NormalizeCategories canonicalizes a list of tags, dropping duplicates while
// preserving first-seen order. At least one category must survive.
func NormalizeCategories(tags []string) ([]string, error) {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		canonical, err := NormalizeCategory(tag)
		if err != nil {
			return nil, err
		}
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	if len(out) == 0 {
		return nil, newValidationError("categories", "at least one category is required")
	}
	return out, nil
}

// CategoryTag accepts either a JSON string ("Bonded") or an object with a
// name field ({"name":"Bonded"}), the two shapes clients actually send.
type CategoryTag string

func (t *CategoryTag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = CategoryTag(s)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = CategoryTag(obj.Name)
	return nil
}

// TagsToStrings flattens boundary-shaped tags for normalization.
func TagsToStrings(tags []CategoryTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
