package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/urfave/cli/v2"

	"github.com/dargueta/bgcode"
)

// blockRow is one line of inspect output.
type blockRow struct {
	Index            int    `csv:"index"`
	Offset           int    `csv:"offset"`
	Type             string `csv:"type"`
	Compression      uint16 `csv:"compression"`
	UncompressedSize uint32 `csv:"uncompressed_size"`
	StoredSize       uint32 `csv:"stored_size"`
	Checksum         string `csv:"crc32"`
}

func inspectContainer(context *cli.Context) error {
	if context.NArg() != 1 {
		return fmt.Errorf("expected 1 argument, got %d", context.NArg())
	}

	data, err := os.ReadFile(context.Args().Get(0))
	if err != nil {
		return fmt.Errorf("failed to read container: %w", err)
	}

	header, err := bgcode.ParseFileHeader(data)
	if err != nil {
		return err
	}

	blocks, err := bgcode.ScanBlocks(data)
	if err != nil {
		return err
	}

	rows := make([]blockRow, len(blocks))
	for i, block := range blocks {
		rows[i] = blockRow{
			Index:            i,
			Offset:           block.Offset,
			Type:             block.Type.String(),
			Compression:      uint16(block.Compression),
			UncompressedSize: block.UncompressedSize,
			StoredSize:       block.StoredSize,
			Checksum:         fmt.Sprintf("%08x", block.Checksum),
		}
	}

	if context.Bool("csv") {
		return writeBlockRowsCSV(rows)
	}

	fmt.Printf(
		"container version %d, checksum type %d, %d blocks, all checksums valid\n",
		header.Version, header.Checksum, len(blocks))
	for _, row := range rows {
		fmt.Printf(
			"%3d  offset %-8d %-16s comp=%d  size=%d/%d  crc32=%s\n",
			row.Index, row.Offset, row.Type, row.Compression,
			row.StoredSize, row.UncompressedSize, row.Checksum)
	}
	return nil
}

func writeBlockRowsCSV(rows []blockRow) error {
	csvWriter := csv.NewWriter(os.Stdout)
	encoder := csvutil.NewEncoder(csvWriter)

	for _, row := range rows {
		if err := encoder.Encode(row); err != nil {
			return fmt.Errorf("failed to encode CSV row: %w", err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
