package catalog

import "github.com/pkg/errors"

var (
	// ErrInvalidLabel reports a category label outside the closed label set.
	ErrInvalidLabel = errors.New("invalid category label")

	// ErrCategoryNotFound reports a canonical category name with no stored row.
	ErrCategoryNotFound = errors.New("category not found")
)
