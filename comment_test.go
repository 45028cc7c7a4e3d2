package bgcode_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/bgcode"
)

func TestThumbnailComments__Empty(t *testing.T) {
	assert.Equal(t, "", bgcode.ThumbnailComments(nil))
	assert.Equal(t, "G28\n", bgcode.PrependThumbnailComments("G28\n", nil))
}

func TestThumbnailComments__Format(t *testing.T) {
	// 120 bytes encodes to 160 base64 characters, forcing a line wrap.
	imageData := make([]byte, 120)
	for i := range imageData {
		imageData[i] = byte(i)
	}
	thumbnails := []bgcode.Thumbnail{
		{Width: 16, Height: 16, Format: bgcode.ThumbnailPNG, Data: imageData},
	}

	comments := bgcode.ThumbnailComments(thumbnails)
	lines := strings.Split(strings.TrimRight(comments, "\n"), "\n")

	encoded := base64.StdEncoding.EncodeToString(imageData)
	require.Len(t, encoded, 160)

	require.Len(t, lines, 6)
	assert.Equal(t, "; thumbnail begin 16x16 160", lines[0])
	assert.Equal(t, "; "+encoded[:78], lines[1])
	assert.Equal(t, "; "+encoded[78:156], lines[2])
	assert.Equal(t, "; "+encoded[156:], lines[3])
	assert.Equal(t, "; thumbnail end", lines[4])
	assert.Equal(t, ";", lines[5])

	// Every line must be a comment so no G-code consumer chokes on it.
	for i, line := range lines {
		assert.Truef(t, strings.HasPrefix(line, ";"), "line %d isn't a comment", i)
	}
}

func TestPrependThumbnailComments(t *testing.T) {
	thumbnails := []bgcode.Thumbnail{
		{Width: 16, Height: 16, Format: bgcode.ThumbnailPNG, Data: []byte{1, 2, 3}},
	}

	result := bgcode.PrependThumbnailComments("G28\n", thumbnails)
	assert.True(
		t, strings.HasPrefix(result, "; thumbnail begin 16x16 4\n"),
		"comments must come before the G-code")
	assert.True(t, strings.HasSuffix(result, ";\nG28\n"))
}
