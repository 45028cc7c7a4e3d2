package bgcode_test

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dargueta/bgcode"
	bgcodetest "github.com/dargueta/bgcode/testing"
)

func TestDecode__RoundTrip(t *testing.T) {
	testTexts := []struct {
		Name  string
		GCode string
	}{
		{"single_command", "G28\n"},
		{"multi_line", "G28\nG1 X10 Y20 E0.5\nM104 S210\n"},
		{"no_trailing_newline", "G28"},
		{"non_ascii_comment", "M104 S210 ; heat to 210°C\n"},
		{"large", strings.Repeat("G1 X10.123 Y20.456 E0.789\n", 5000)},
	}

	for _, test := range testTexts {
		t.Run(
			test.Name,
			func(t *testing.T) {
				data := bgcodetest.BuildContainer(
					t, test.GCode, someThumbnails(), bgcode.EncodeOptions{})

				text, err := bgcode.Decode(data)
				require.NoError(t, err, "round trip failed")
				assert.Equal(t, test.GCode, text, "text not preserved exactly")
			},
		)
	}
}

// Decode returns only text; thumbnails are checked for byte-identity by
// re-parsing the container's Thumbnail blocks.
func TestDecode__ThumbnailsPreservedByteIdentical(t *testing.T) {
	original := someThumbnails()
	data := bgcodetest.BuildContainer(t, "G28\n", original, bgcode.EncodeOptions{})

	extracted, err := bgcode.ExtractThumbnails(data)
	require.NoError(t, err)
	require.Len(t, extracted, len(original), "wrong number of thumbnails")

	for i, thumbnail := range extracted {
		assert.Equal(t, original[i].Width, thumbnail.Width)
		assert.Equal(t, original[i].Height, thumbnail.Height)
		assert.Equal(t, original[i].Format, thumbnail.Format)
		assert.Equal(
			t, original[i].Data, thumbnail.Data,
			"thumbnail %d bytes are not identical", i)
	}
}

func TestDecode__EmptyGCode(t *testing.T) {
	data := bgcodetest.BuildContainer(t, "", nil, bgcode.EncodeOptions{})

	// The G-code block exists with a zero-length payload; this must decode to
	// "" rather than failing with ErrNoGCodeBlocks.
	text, err := bgcode.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestDecode__TamperDetection(t *testing.T) {
	data := bgcodetest.BuildContainer(t, "G28\nG1 X10\n", nil, bgcode.EncodeOptions{})

	// Flipping any single byte after the file header must make decoding fail;
	// bytes inside a block's span trip the checksum, and bytes in a trailing
	// checksum mismatch the recomputed value.
	for offset := bgcode.FileHeaderSize; offset < len(data); offset++ {
		corrupted := bgcodetest.FlipByte(data, offset)

		_, err := bgcode.Decode(corrupted)
		assert.Errorf(t, err, "flipping byte %d went undetected", offset)
	}
}

func TestDecode__ChecksumErrorNamesOffset(t *testing.T) {
	data := bgcodetest.BuildContainer(t, "G28\n", nil, bgcode.EncodeOptions{})

	blocks, err := bgcode.ScanBlocks(data)
	require.NoError(t, err)

	// Corrupt a payload byte of the last block (the G-code block).
	gcodeBlock := blocks[len(blocks)-1]
	require.Equal(t, bgcode.BlockGCode, gcodeBlock.Type)
	corrupted := bgcodetest.FlipByte(data, gcodeBlock.Offset+10)

	_, decodeErr := bgcode.Decode(corrupted)
	require.ErrorIs(t, decodeErr, bgcode.ErrChecksumMismatch)
	assert.Contains(t, decodeErr.Error(), "GCode", "error must name the block type")
	assert.Contains(
		t, decodeErr.Error(),
		"offset "+strconv.Itoa(gcodeBlock.Offset),
		"error must name the failing block's offset")
}

func TestDecode__BadMagic(t *testing.T) {
	data := bgcodetest.BuildContainer(t, "G28\n", nil, bgcode.EncodeOptions{})
	data[0] = 'X'

	_, err := bgcode.Decode(data)
	assert.ErrorIs(t, err, bgcode.ErrMalformedHeader)
}

func TestDecode__ShortBuffer(t *testing.T) {
	for _, size := range []int{0, 1, 4, 9} {
		_, err := bgcode.Decode(make([]byte, size))
		assert.ErrorIsf(
			t, err, bgcode.ErrMalformedHeader,
			"%d-byte buffer must fail as a malformed header", size)
	}
}

func TestDecode__UnsupportedChecksumType(t *testing.T) {
	data := bgcodetest.CraftFileHeader(bgcode.MagicString, bgcode.FormatVersion, 7)

	_, err := bgcode.Decode(data)
	assert.ErrorIs(t, err, bgcode.ErrUnsupportedChecksum)
}

func TestDecode__Truncation(t *testing.T) {
	data := bgcodetest.BuildContainer(t, "G28\nG1 X10\n", nil, bgcode.EncodeOptions{})

	// Every proper prefix must fail cleanly: short header prefixes as
	// malformed, anything else as truncation. Never an out-of-bounds panic.
	// A cut landing exactly between two blocks is indistinguishable from a
	// complete container, but this file ends with its G-code block, so such a
	// prefix still fails -- with ErrNoGCodeBlocks.
	for cut := 0; cut < len(data); cut++ {
		_, err := bgcode.Decode(data[:cut])
		require.Errorf(t, err, "truncation to %d bytes went undetected", cut)

		if cut < bgcode.FileHeaderSize {
			assert.ErrorIs(t, err, bgcode.ErrMalformedHeader)
		} else if !errors.Is(err, bgcode.ErrNoGCodeBlocks) {
			assert.ErrorIsf(
				t, err, bgcode.ErrTruncatedBlock,
				"truncation to %d bytes reported the wrong error", cut)
		}
	}
}

func TestDecode__UnsupportedCompressionValues(t *testing.T) {
	for _, compression := range []uint16{2, 3} {
		block := bgcodetest.CraftBlock(
			uint16(bgcode.BlockGCode), compression, []byte{0, 0}, []byte("G28\n"), true)
		data := bgcodetest.CraftContainer(block)

		_, err := bgcode.Decode(data)
		assert.ErrorIsf(
			t, err, bgcode.ErrUnsupportedCompression,
			"compression value %d must never silently decode", compression)
	}
}

func TestDecode__UnsupportedGCodeEncoding(t *testing.T) {
	// MeatPack encodings are recognized but must be rejected explicitly.
	for _, encoding := range []byte{1, 2} {
		block := bgcodetest.CraftBlock(
			uint16(bgcode.BlockGCode),
			uint16(bgcode.CompressionNone),
			[]byte{encoding, 0},
			[]byte{0xFB, 0xFC, 0xFD},
			false)
		data := bgcodetest.CraftContainer(block)

		_, err := bgcode.Decode(data)
		require.ErrorIsf(
			t, err, bgcode.ErrUnsupportedEncoding,
			"encoding value %d must never silently decode", encoding)
		assert.Contains(t, err.Error(), "offset 10")
	}
}

func TestDecode__NoGCodeBlocks(t *testing.T) {
	// A well-formed container holding only metadata blocks.
	data := bgcodetest.CraftContainer(
		bgcodetest.CraftBlock(
			uint16(bgcode.BlockFileMetadata),
			uint16(bgcode.CompressionNone),
			[]byte{0, 0},
			[]byte("Producer=test\n"),
			false),
		bgcodetest.CraftBlock(
			uint16(bgcode.BlockPrinterMetadata),
			uint16(bgcode.CompressionNone),
			[]byte{0, 0},
			nil,
			false),
	)

	_, err := bgcode.Decode(data)
	assert.ErrorIs(t, err, bgcode.ErrNoGCodeBlocks)
}

// The decoder must not assume the encoder's block ordering; only the encoder
// enforces it.
func TestDecode__OrderIndependent(t *testing.T) {
	data := bgcodetest.CraftContainer(
		bgcodetest.CraftBlock(
			uint16(bgcode.BlockGCode),
			uint16(bgcode.CompressionNone),
			[]byte{0, 0},
			[]byte("G28\n"),
			false),
		bgcodetest.CraftBlock(
			uint16(bgcode.BlockPrintMetadata),
			uint16(bgcode.CompressionNone),
			[]byte{0, 0},
			[]byte("generator=test\n"),
			false),
		bgcodetest.CraftBlock(
			uint16(bgcode.BlockGCode),
			uint16(bgcode.CompressionNone),
			[]byte{0, 0},
			[]byte("G1 X10\n"),
			false),
	)

	text, err := bgcode.Decode(data)
	require.NoError(t, err, "decoder must tolerate nonstandard block order")
	assert.Equal(t, "G28\nG1 X10\n", text)
}

func TestScanBlocks__Inventory(t *testing.T) {
	data := bgcodetest.BuildContainer(
		t, "G28\n", someThumbnails(), bgcode.EncodeOptions{})

	blocks, err := bgcode.ScanBlocks(data)
	require.NoError(t, err)
	require.Len(t, blocks, 7)

	// Offsets must tile the buffer exactly: first block right after the file
	// header, each next block where the previous one ended.
	expectedOffset := bgcode.FileHeaderSize
	for i, block := range blocks {
		assert.Equalf(t, expectedOffset, block.Offset, "block %d offset is wrong", i)
		// header + params + payload + checksum
		headerSize := 8
		if block.Compression != bgcode.CompressionNone {
			headerSize = 12
		}
		expectedOffset += headerSize + len(block.Params) + int(block.StoredSize) + 4
	}
	assert.Equal(t, len(data), expectedOffset, "blocks don't cover the whole buffer")
}
