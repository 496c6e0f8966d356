package catalog

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalCategoryName(t *testing.T) {
	cases := []struct {
		label string
		want  string
	}{
		{LabelFruits, "fruits"},
		{LabelVegetables, "vegetables"},
		{LabelGrains, "grains"},
	}
	for _, tc := range cases {
		got, err := CanonicalCategoryName(tc.label)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestCanonicalCategoryNameDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		got, err := CanonicalCategoryName(LabelFruits)
		require.NoError(t, err)
		assert.Equal(t, CategoryFruits, got)
	}
}

func TestCanonicalCategoryNameRejectsUnknownLabels(t *testing.T) {
	for _, label := range []string{"", "fruits", "과일즙", "meat", "FRUITS"} {
		got, err := CanonicalCategoryName(label)
		assert.Empty(t, got)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidLabel), "label %q", label)
		if label != "" {
			assert.Contains(t, err.Error(), label)
		}
	}
}
