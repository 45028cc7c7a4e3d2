package bgcode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/noxer/bytewriter"
)

// Thumbnail is one preview image to embed in a container. Data must be a
// complete image file (e.g. an entire PNG, signature through trailer), not
// bare pixels; the block stores it verbatim.
type Thumbnail struct {
	Width  uint16
	Height uint16
	Format ThumbnailFormat
	Data   []byte
}

// MetadataEntry is one `key=value` line in a metadata block. Entries are
// written in slice order so that encoding the same input twice produces
// byte-identical containers.
type MetadataEntry struct {
	Key   string
	Value string
}

// EncodeOptions adjusts how [EncodeWithOptions] assembles a container. The
// zero value is a sensible default: a single uncompressed G-code block and
// empty metadata blocks.
type EncodeOptions struct {
	// CompressGCode stores the G-code payload deflate-compressed. This is an
	// explicit opt-in: several firmware decoders handle only uncompressed
	// G-code blocks and report a compressed one as a corrupt file, even though
	// the container itself validates fine. Leave this off unless the consumer
	// is known to decompress.
	CompressGCode bool

	// GCodeBlockSize, when positive, splits the G-code payload across multiple
	// blocks of at most this many (uncompressed) bytes. Zero writes a single
	// block regardless of size.
	GCodeBlockSize int

	FileMetadata    []MetadataEntry
	PrinterMetadata []MetadataEntry
	PrintMetadata   []MetadataEntry
	SlicerMetadata  []MetadataEntry
}

// Encode assembles a complete container holding `gcode` and the given
// thumbnails, with default options. The thumbnail list may be empty, in which
// case no Thumbnail blocks are written at all.
func Encode(gcode string, thumbnails []Thumbnail) ([]byte, error) {
	return EncodeWithOptions(gcode, thumbnails, EncodeOptions{})
}

// EncodeWithOptions is like [Encode] but with explicit options. It functions
// identically to [EncodeTo] except it returns the container in a new byte
// slice instead of writing to an [io.Writer].
func EncodeWithOptions(
	gcode string, thumbnails []Thumbnail, options EncodeOptions,
) ([]byte, error) {
	buffer := bytes.Buffer{}
	_, err := EncodeTo(&buffer, gcode, thumbnails, options)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// EncodeTo assembles a complete container and writes it to `w`. Blocks are
// emitted in the order the format requires: FileMetadata, PrinterMetadata,
// any Thumbnail blocks, PrintMetadata, SlicerMetadata, and the G-code blocks
// last. Consumers locate the two blocks preceding the G-code region by
// scanning backward from the end of the file, so nothing may follow G-code.
//
// The returned int64 gives the number of bytes written. Output is fully
// deterministic: the same inputs always produce byte-identical containers.
func EncodeTo(
	w io.Writer, gcode string, thumbnails []Thumbnail, options EncodeOptions,
) (int64, error) {
	header := FileHeader{Version: FormatVersion, Checksum: ChecksumCRC32}
	totalWritten, err := header.WriteTo(w)
	if err != nil {
		return totalWritten, err
	}

	writeBlock := func(block *Block) error {
		n, blockErr := block.WriteTo(w)
		totalWritten += n
		return blockErr
	}

	err = writeBlock(metadataBlock(BlockFileMetadata, options.FileMetadata))
	if err != nil {
		return totalWritten, err
	}
	err = writeBlock(metadataBlock(BlockPrinterMetadata, options.PrinterMetadata))
	if err != nil {
		return totalWritten, err
	}

	for _, thumbnail := range thumbnails {
		if err = writeBlock(thumbnailBlock(thumbnail)); err != nil {
			return totalWritten, err
		}
	}

	err = writeBlock(metadataBlock(BlockPrintMetadata, options.PrintMetadata))
	if err != nil {
		return totalWritten, err
	}
	err = writeBlock(metadataBlock(BlockSlicerMetadata, options.SlicerMetadata))
	if err != nil {
		return totalWritten, err
	}

	for _, payload := range splitGCodePayload([]byte(gcode), options.GCodeBlockSize) {
		if err = writeBlock(gcodeBlock(payload, options.CompressGCode)); err != nil {
			return totalWritten, err
		}
	}
	return totalWritten, nil
}

// splitGCodePayload cuts the payload into chunks of at most `blockSize` bytes,
// in order. There is always at least one chunk, so even empty G-code yields a
// (zero-length) block and the result decodes instead of failing with
// [ErrNoGCodeBlocks].
func splitGCodePayload(payload []byte, blockSize int) [][]byte {
	if blockSize <= 0 || len(payload) <= blockSize {
		return [][]byte{payload}
	}

	chunks := make([][]byte, 0, (len(payload)+blockSize-1)/blockSize)
	for start := 0; start < len(payload); start += blockSize {
		end := start + blockSize
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, payload[start:end])
	}
	return chunks
}

// metadataBlock builds one uncompressed metadata block of the given type.
// Metadata blocks are never compressed; their payloads are tiny and several
// consumers read them with plain buffer scans.
func metadataBlock(blockType BlockType, entries []MetadataEntry) *Block {
	payload := bytes.Buffer{}
	for _, entry := range entries {
		fmt.Fprintf(&payload, "%s=%s\n", entry.Key, entry.Value)
	}

	return &Block{
		Type:        blockType,
		Compression: CompressionNone,
		Params:      encodingParams(EncodingINI),
		Payload:     payload.Bytes(),
	}
}

// thumbnailBlock builds one Thumbnail block. The image bytes are stored
// uncompressed; the image format has already compressed the pixel data
// internally and deflating it again buys nothing.
func thumbnailBlock(thumbnail Thumbnail) *Block {
	params := make([]byte, BlockThumbnail.ParamsSize())
	writer := bytewriter.New(params)
	binary.Write(writer, binary.LittleEndian, uint16(thumbnail.Format))
	binary.Write(writer, binary.LittleEndian, thumbnail.Width)
	binary.Write(writer, binary.LittleEndian, thumbnail.Height)

	return &Block{
		Type:        BlockThumbnail,
		Compression: CompressionNone,
		Params:      params,
		Payload:     thumbnail.Data,
	}
}

func gcodeBlock(payload []byte, compress bool) *Block {
	compression := CompressionNone
	if compress {
		compression = CompressionDeflate
	}
	return &Block{
		Type:        BlockGCode,
		Compression: compression,
		Params:      encodingParams(EncodingRawText),
		Payload:     payload,
	}
}

func encodingParams(encoding Encoding) []byte {
	params := make([]byte, 2)
	binary.LittleEndian.PutUint16(params, uint16(encoding))
	return params
}
