// Package presets maps printer models to the thumbnail sizes their firmware
// actually displays. A container can embed any sizes it likes, but a screen
// that wants a 16x16 icon will only ever show a 16x16 icon; encoding the
// right sizes up front is the difference between a preview and a blank tile.
package presets

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"
)

// ThumbnailSize is one thumbnail a printer model expects to find in a
// container.
type ThumbnailSize struct {
	Printer string `csv:"printer"`
	Slug    string `csv:"slug"`
	Width   uint16 `csv:"width"`
	Height  uint16 `csv:"height"`
	Notes   string `csv:"notes"`
}

//go:embed thumbnail-presets.csv
var thumbnailPresetsRawCSV string
var thumbnailPresets map[string][]ThumbnailSize

// GetPrinterThumbnailSizes returns the thumbnail sizes a printer model
// expects, in the order they should be embedded.
func GetPrinterThumbnailSizes(slug string) ([]ThumbnailSize, error) {
	sizes, ok := thumbnailPresets[slug]
	if ok {
		return sizes, nil
	}

	err := fmt.Errorf("no thumbnail preset exists for printer slug %q", slug)
	return nil, err
}

// Slugs returns every known printer slug, in no particular order.
func Slugs() []string {
	slugs := make([]string, 0, len(thumbnailPresets))
	for slug := range thumbnailPresets {
		slugs = append(slugs, slug)
	}
	return slugs
}

func init() {
	reader := strings.NewReader(thumbnailPresetsRawCSV)
	csvReader := csv.NewReader(reader)
	csvReader.Comma = '|'

	decoder, err := csvutil.NewDecoder(csvReader)
	if err != nil {
		panic(fmt.Errorf("failed to create CSV decoder: %w", err))
	}

	thumbnailPresets = make(map[string][]ThumbnailSize)

	rowCount := 0
	for {
		var row ThumbnailSize
		if err = decoder.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			panic(fmt.Errorf("failed to decode row %d: %w", rowCount+1, err))
		}
		rowCount++
		thumbnailPresets[row.Slug] = append(thumbnailPresets[row.Slug], row)
	}
}
