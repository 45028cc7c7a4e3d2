package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/dargueta/bgcode"
)

func unpackContainer(context *cli.Context) error {
	if context.NArg() < 1 || context.NArg() > 2 {
		return fmt.Errorf("expected 1 or 2 arguments, got %d", context.NArg())
	}

	data, err := os.ReadFile(context.Args().Get(0))
	if err != nil {
		return fmt.Errorf("failed to read container: %w", err)
	}

	gcode, err := bgcode.Decode(data)
	if err != nil {
		return err
	}

	if outputPath := context.Args().Get(1); outputPath != "" {
		if err = os.WriteFile(outputPath, []byte(gcode), 0o644); err != nil {
			return fmt.Errorf("failed to write G-code file: %w", err)
		}
	} else {
		fmt.Print(gcode)
	}

	if thumbnailDir := context.String("thumbnails"); thumbnailDir != "" {
		return dumpThumbnails(data, thumbnailDir)
	}
	return nil
}

func dumpThumbnails(data []byte, directory string) error {
	thumbnails, err := bgcode.ExtractThumbnails(data)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(directory, 0o755); err != nil {
		return fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	for i, thumbnail := range thumbnails {
		name := fmt.Sprintf(
			"thumbnail-%d-%dx%d.%s",
			i, thumbnail.Width, thumbnail.Height, thumbnailExtension(thumbnail.Format))
		path := filepath.Join(directory, name)

		if err = os.WriteFile(path, thumbnail.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", path, len(thumbnail.Data))
	}
	return nil
}

func thumbnailExtension(format bgcode.ThumbnailFormat) string {
	switch format {
	case bgcode.ThumbnailPNG:
		return "png"
	case bgcode.ThumbnailJPG:
		return "jpg"
	case bgcode.ThumbnailQOI:
		return "qoi"
	}
	return "bin"
}
