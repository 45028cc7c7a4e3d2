package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dargueta/bgcode"
	"github.com/dargueta/bgcode/imaging/raster"
	"github.com/dargueta/bgcode/presets"
)

func packContainer(context *cli.Context) error {
	if context.NArg() != 2 {
		return fmt.Errorf("expected 2 arguments, got %d", context.NArg())
	}

	gcode, err := os.ReadFile(context.Args().Get(0))
	if err != nil {
		return fmt.Errorf("failed to read G-code file: %w", err)
	}

	thumbnails, err := buildThumbnails(
		context.String("printer"),
		context.StringSlice("thumbnail"),
		context.String("pattern"),
	)
	if err != nil {
		return err
	}

	options := bgcode.EncodeOptions{
		CompressGCode: context.Bool("compress-gcode"),
	}
	if producer := context.String("producer"); producer != "" {
		options.FileMetadata = []bgcode.MetadataEntry{
			{Key: "Producer", Value: producer},
		}
	}

	data, err := bgcode.EncodeWithOptions(string(gcode), thumbnails, options)
	if err != nil {
		return err
	}

	outputPath := context.Args().Get(1)
	if err = os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write container: %w", err)
	}

	fmt.Printf(
		"packed %d bytes of G-code and %d thumbnail(s) into %s (%d bytes)\n",
		len(gcode), len(thumbnails), outputPath, len(data))
	return nil
}

// buildThumbnails renders one thumbnail per requested size. Sizes come from
// the printer preset, explicit WxH specs, or both; duplicates aren't filtered
// because the order and multiplicity are the caller's call.
func buildThumbnails(
	printerSlug string, sizeSpecs []string, pattern string,
) ([]bgcode.Thumbnail, error) {
	var render func(width, height int) []byte
	switch pattern {
	case "chevrons":
		render = raster.RenderChevrons
	case "tower":
		render = raster.RenderSlabTower
	default:
		return nil, fmt.Errorf(
			"unknown thumbnail pattern %q, expected \"chevrons\" or \"tower\"",
			pattern)
	}

	type size struct {
		width  uint16
		height uint16
	}
	var sizes []size

	if printerSlug != "" {
		presetSizes, err := presets.GetPrinterThumbnailSizes(printerSlug)
		if err != nil {
			return nil, err
		}
		for _, preset := range presetSizes {
			sizes = append(sizes, size{preset.Width, preset.Height})
		}
	}

	for _, spec := range sizeSpecs {
		width, height, err := parseSizeSpec(spec)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size{width, height})
	}

	thumbnails := make([]bgcode.Thumbnail, 0, len(sizes))
	for _, s := range sizes {
		thumbnails = append(thumbnails, bgcode.Thumbnail{
			Width:  s.width,
			Height: s.height,
			Format: bgcode.ThumbnailPNG,
			Data:   render(int(s.width), int(s.height)),
		})
	}
	return thumbnails, nil
}

func parseSizeSpec(spec string) (uint16, uint16, error) {
	parts := strings.SplitN(spec, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid thumbnail size %q, expected WxH", spec)
	}

	width, errW := strconv.ParseUint(parts[0], 10, 16)
	height, errH := strconv.ParseUint(parts[1], 10, 16)
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("invalid thumbnail size %q, expected WxH", spec)
	}
	return uint16(width), uint16(height), nil
}
