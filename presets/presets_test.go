package presets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/bgcode/presets"
)

func TestGetPrinterThumbnailSizes__KnownSlug(t *testing.T) {
	sizes, err := presets.GetPrinterThumbnailSizes("prusa-mk4")
	require.NoError(t, err)
	require.Len(t, sizes, 2)

	// Rows keep file order: the icon first, then the large preview.
	assert.EqualValues(t, 16, sizes[0].Width)
	assert.EqualValues(t, 16, sizes[0].Height)
	assert.EqualValues(t, 220, sizes[1].Width)
	assert.EqualValues(t, 124, sizes[1].Height)

	for _, size := range sizes {
		assert.Equal(t, "prusa-mk4", size.Slug)
		assert.NotEmpty(t, size.Printer)
	}
}

func TestGetPrinterThumbnailSizes__UnknownSlug(t *testing.T) {
	_, err := presets.GetPrinterThumbnailSizes("etch-a-sketch")
	assert.ErrorContains(t, err, "etch-a-sketch")
}

func TestSlugs(t *testing.T) {
	slugs := presets.Slugs()
	assert.Contains(t, slugs, "prusa-mk4")
	assert.Contains(t, slugs, "prusa-xl")

	// Every advertised slug must resolve.
	for _, slug := range slugs {
		sizes, err := presets.GetPrinterThumbnailSizes(slug)
		assert.NoErrorf(t, err, "slug %q doesn't resolve", slug)
		assert.NotEmptyf(t, sizes, "slug %q has no sizes", slug)
	}
}
