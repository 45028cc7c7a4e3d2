// Package testing holds helpers for building well-formed and deliberately
// broken containers in tests.
package testing

import (
	"encoding/binary"
	"hash/crc32"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/dargueta/bgcode"
)

// BuildContainer encodes a container and fails the test on any error.
func BuildContainer(
	t *testing.T,
	gcode string,
	thumbnails []bgcode.Thumbnail,
	options bgcode.EncodeOptions,
) []byte {
	t.Helper()

	data, err := bgcode.EncodeWithOptions(gcode, thumbnails, options)
	require.NoError(t, err, "failed to encode test container")
	require.NotEmpty(t, data, "encoded test container is empty")
	return data
}

// FlipByte returns a copy of `data` with the byte at `offset` bitwise
// inverted. The original slice is left alone.
func FlipByte(data []byte, offset int) []byte {
	corrupted := make([]byte, len(data))
	copy(corrupted, data)
	corrupted[offset] ^= 0xFF
	return corrupted
}

// ContainerStream wraps container bytes in a fixed-size ReadWriteSeeker for
// exercising the stream-based writer paths.
func ContainerStream(data []byte) io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(data)
}

// CraftFileHeader builds a ten-byte file header with no validation, so tests
// can produce headers the encoder refuses to write.
func CraftFileHeader(magic string, version uint32, checksumType uint16) []byte {
	header := make([]byte, 10)
	copy(header, magic)
	binary.LittleEndian.PutUint32(header[4:], version)
	binary.LittleEndian.PutUint16(header[8:], checksumType)
	return header
}

// CraftBlock serializes a block with no validation whatsoever: any type or
// compression value goes, the payload is stored as given, and the size
// fields are derived from the payload length. The checksum is computed
// correctly (over header + params + payload) unless the test corrupts it
// afterwards. `twoSizeFields` controls whether a compressed_size field is
// written, which decoders infer from the compression value.
func CraftBlock(
	blockType uint16,
	compression uint16,
	params []byte,
	payload []byte,
	twoSizeFields bool,
) []byte {
	headerSize := 8
	if twoSizeFields {
		headerSize = 12
	}

	block := make([]byte, 0, headerSize+len(params)+len(payload)+4)
	block = binary.LittleEndian.AppendUint16(block, blockType)
	block = binary.LittleEndian.AppendUint16(block, compression)
	block = binary.LittleEndian.AppendUint32(block, uint32(len(payload)))
	if twoSizeFields {
		block = binary.LittleEndian.AppendUint32(block, uint32(len(payload)))
	}
	block = append(block, params...)
	block = append(block, payload...)
	return binary.LittleEndian.AppendUint32(block, crc32.ChecksumIEEE(block))
}

// CraftContainer concatenates a default valid file header with hand-crafted
// blocks.
func CraftContainer(blocks ...[]byte) []byte {
	data := CraftFileHeader(bgcode.MagicString, bgcode.FormatVersion, 1)
	for _, block := range blocks {
		data = append(data, block...)
	}
	return data
}
