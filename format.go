package bgcode

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MagicString is the four-byte tag every container starts with.
const MagicString = "GCDE"

// FormatVersion is the container format version this library reads and writes.
const FormatVersion uint32 = 1

// FileHeaderSize is the fixed size of the file header: magic (4 bytes),
// version (uint32) and checksum type (uint16).
const FileHeaderSize = 10

// ChecksumType identifies the algorithm protecting every block in a container.
type ChecksumType uint16

const (
	// ChecksumNone is defined by the format but not written by this library.
	ChecksumNone ChecksumType = 0
	// ChecksumCRC32 protects each block with a CRC-32 (IEEE polynomial) over
	// its header, params and stored payload.
	ChecksumCRC32 ChecksumType = 1
)

// BlockType identifies the semantic role of a block within a container.
type BlockType uint16

const (
	BlockFileMetadata    BlockType = 0
	BlockGCode           BlockType = 1
	BlockSlicerMetadata  BlockType = 2
	BlockPrinterMetadata BlockType = 3
	BlockPrintMetadata   BlockType = 4
	BlockThumbnail       BlockType = 5
)

var blockTypeNames = map[BlockType]string{
	BlockFileMetadata:    "FileMetadata",
	BlockGCode:           "GCode",
	BlockSlicerMetadata:  "SlicerMetadata",
	BlockPrinterMetadata: "PrinterMetadata",
	BlockPrintMetadata:   "PrintMetadata",
	BlockThumbnail:       "Thumbnail",
}

func (t BlockType) String() string {
	name, ok := blockTypeNames[t]
	if ok {
		return name
	}
	return fmt.Sprintf("BlockType(%d)", uint16(t))
}

// ParamsSize gives the size of a block's params field in bytes. Thumbnail
// blocks carry six bytes of params (format, width, height); every other block
// type carries a two-byte encoding selector. This is fixed by the format and
// depends only on the block type.
func (t BlockType) ParamsSize() int {
	if t == BlockThumbnail {
		return 6
	}
	return 2
}

// Compression identifies how a block's payload is stored.
type Compression uint16

const (
	// CompressionNone stores the payload byte-for-byte.
	CompressionNone Compression = 0
	// CompressionDeflate stores the payload as zlib-wrapped DEFLATE.
	CompressionDeflate Compression = 1
	// CompressionHeatshrink11 and CompressionHeatshrink12 are defined by the
	// format but deliberately not implemented; both are rejected on decode
	// rather than guessed at.
	CompressionHeatshrink11 Compression = 2
	CompressionHeatshrink12 Compression = 3
)

// Encoding identifies how a block's logical payload is to be interpreted. The
// metadata block types and the GCode block type share the numeric value 0 for
// their respective plain-text encodings.
type Encoding uint16

const (
	// EncodingINI is `key=value` lines, one per entry, UTF-8, no escaping.
	// Used by all four metadata block types.
	EncodingINI Encoding = 0

	// EncodingRawText is plain UTF-8 G-code text.
	EncodingRawText Encoding = 0
	// EncodingMeatPack and EncodingMeatPackComments are byte-packing schemes
	// for G-code. Recognized but unsupported; rejected on decode.
	EncodingMeatPack         Encoding = 1
	EncodingMeatPackComments Encoding = 2
)

// ThumbnailFormat identifies the image file format embedded in a Thumbnail
// block's payload.
type ThumbnailFormat uint16

const (
	ThumbnailPNG ThumbnailFormat = 0
	ThumbnailJPG ThumbnailFormat = 1
	ThumbnailQOI ThumbnailFormat = 2
)

// FileHeader is the fixed ten-byte header at the start of every container.
type FileHeader struct {
	Version  uint32
	Checksum ChecksumType
}

// WriteTo serializes the header, including the magic bytes, to `w`.
func (h *FileHeader) WriteTo(w io.Writer) (int64, error) {
	buffer := make([]byte, FileHeaderSize)
	copy(buffer, MagicString)
	binary.LittleEndian.PutUint32(buffer[4:], h.Version)
	binary.LittleEndian.PutUint16(buffer[8:], uint16(h.Checksum))

	n, err := w.Write(buffer)
	return int64(n), err
}

// ParseFileHeader validates the magic bytes and reads the version and checksum
// type from the front of `data`.
func ParseFileHeader(data []byte) (FileHeader, error) {
	if len(data) < FileHeaderSize {
		return FileHeader{}, ErrMalformedHeader.WithMessage(
			fmt.Sprintf(
				"data is %d bytes, need at least %d", len(data), FileHeaderSize))
	}
	if string(data[:4]) != MagicString {
		return FileHeader{}, ErrMalformedHeader.WithMessage(
			fmt.Sprintf("bad magic bytes %q, expected %q", data[:4], MagicString))
	}

	header := FileHeader{
		Version:  binary.LittleEndian.Uint32(data[4:]),
		Checksum: ChecksumType(binary.LittleEndian.Uint16(data[8:])),
	}
	if header.Checksum != ChecksumCRC32 {
		return FileHeader{}, ErrUnsupportedChecksum.WithMessage(
			fmt.Sprintf("checksum type %d", header.Checksum))
	}
	return header, nil
}
