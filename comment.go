package bgcode

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// thumbnailCommentLineLength is the maximum number of base64 characters per
// comment line. Matches what slicers emit.
const thumbnailCommentLineLength = 78

// ThumbnailComments renders thumbnails as the comment convention plain-text
// G-code consumers understand:
//
//	; thumbnail begin WxH <base64_char_count>
//	; <base64 data, up to 78 chars per line>
//	; thumbnail end
//
// one section per thumbnail. Returns "" for an empty list. This is the
// fallback for targets that read ASCII G-code and therefore never see the
// container's Thumbnail blocks.
func ThumbnailComments(thumbnails []Thumbnail) string {
	if len(thumbnails) == 0 {
		return ""
	}

	out := strings.Builder{}
	for _, thumbnail := range thumbnails {
		encoded := base64.StdEncoding.EncodeToString(thumbnail.Data)
		fmt.Fprintf(
			&out,
			"; thumbnail begin %dx%d %d\n",
			thumbnail.Width, thumbnail.Height, len(encoded))

		for start := 0; start < len(encoded); start += thumbnailCommentLineLength {
			end := start + thumbnailCommentLineLength
			if end > len(encoded) {
				end = len(encoded)
			}
			fmt.Fprintf(&out, "; %s\n", encoded[start:end])
		}
		out.WriteString("; thumbnail end\n;\n")
	}
	return out.String()
}

// PrependThumbnailComments returns `gcode` with [ThumbnailComments] for the
// given thumbnails inserted at the front, where slicers put them.
func PrependThumbnailComments(gcode string, thumbnails []Thumbnail) string {
	return ThumbnailComments(thumbnails) + gcode
}
