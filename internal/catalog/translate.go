package catalog

import "github.com/pkg/errors"

// Korean category labels accepted on the wire. The set is fixed by design,
// not user-extensible.
const (
	LabelFruits     = "과일"
	LabelVegetables = "채소"
	LabelGrains     = "곡식"
)

// Canonical category names used for storage lookup.
const (
	CategoryFruits     = "fruits"
	CategoryVegetables = "vegetables"
	CategoryGrains     = "grains"
)

// CategoryNames lists every canonical category, used for seeding.
var CategoryNames = []string{CategoryFruits, CategoryVegetables, CategoryGrains}

// CanonicalCategoryName translates a Korean category label to the canonical
// name used for storage lookup. Unrecognized labels fail with
// ErrInvalidLabel carrying the offending label.
func CanonicalCategoryName(label string) (string, error) {
	switch label {
	case LabelFruits:
		return CategoryFruits, nil
	case LabelVegetables:
		return CategoryVegetables, nil
	case LabelGrains:
		return CategoryGrains, nil
	default:
		return "", errors.Wrapf(ErrInvalidLabel, "label %q", label)
	}
}
