package bgcode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/noxer/bytewriter"

	"github.com/dargueta/bgcode/utilities/compression"
)

// Block is one self-describing, checksum-protected record in a container. The
// payload here is the block's logical content; whether it gets deflated on the
// way to disk is controlled by the Compression field.
type Block struct {
	Type        BlockType
	Compression Compression
	// Params is the block's fixed-size metadata. It is always stored
	// uncompressed, regardless of the block's compression setting. Its length
	// must equal Type.ParamsSize().
	Params []byte
	// Payload is the block's logical (uncompressed) content.
	Payload []byte
}

// blockHeaderSize gives the size of a block header for a compression setting:
// type and compression (uint16 each) plus the uncompressed size (uint32), and
// for compressed payloads a second uint32 giving the stored size.
func blockHeaderSize(comp Compression) int {
	if comp == CompressionNone {
		return 8
	}
	return 12
}

// WriteTo serializes the block to `w`, compressing the payload first if the
// block's compression is [CompressionDeflate]. Identical inputs always produce
// byte-identical output; nothing time- or randomness-dependent is written.
func (b *Block) WriteTo(w io.Writer) (int64, error) {
	if len(b.Params) != b.Type.ParamsSize() {
		return 0, ErrInvalidParams.WithMessage(
			fmt.Sprintf(
				"%s block params must be %d bytes, got %d",
				b.Type, b.Type.ParamsSize(), len(b.Params)))
	}

	var storedPayload []byte
	switch b.Compression {
	case CompressionNone:
		storedPayload = b.Payload
	case CompressionDeflate:
		deflated, err := compression.DeflateToBytes(b.Payload)
		if err != nil {
			return 0, ErrUnsupportedCompression.Wrap(err)
		}
		storedPayload = deflated
	default:
		return 0, ErrUnsupportedCompression.WithMessage(
			fmt.Sprintf("can't write a block with compression type %d",
				b.Compression))
	}

	headerBuffer := make([]byte, blockHeaderSize(b.Compression))
	headerWriter := bytewriter.New(headerBuffer)
	binary.Write(headerWriter, binary.LittleEndian, uint16(b.Type))
	binary.Write(headerWriter, binary.LittleEndian, uint16(b.Compression))
	binary.Write(headerWriter, binary.LittleEndian, uint32(len(b.Payload)))
	if b.Compression != CompressionNone {
		binary.Write(headerWriter, binary.LittleEndian, uint32(len(storedPayload)))
	}

	// The checksum runs over the bytes as they appear in the file: block
	// header, then params, then the stored payload.
	crc := crc32.NewIEEE()
	crc.Write(headerBuffer)
	crc.Write(b.Params)
	crc.Write(storedPayload)

	checksumBuffer := make([]byte, 4)
	binary.LittleEndian.PutUint32(checksumBuffer, crc.Sum32())

	totalWritten := int64(0)
	for _, chunk := range [][]byte{headerBuffer, b.Params, storedPayload, checksumBuffer} {
		n, err := w.Write(chunk)
		totalWritten += int64(n)
		if err != nil {
			return totalWritten, err
		}
	}
	return totalWritten, nil
}

// MarshalBinary serializes the block into a new byte slice. It functions
// identically to [Block.WriteTo] otherwise.
func (b *Block) MarshalBinary() ([]byte, error) {
	buffer := bytes.Buffer{}
	buffer.Grow(blockHeaderSize(b.Compression) + len(b.Params) + len(b.Payload) + 4)
	_, err := b.WriteTo(&buffer)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// RawBlock is one block as it appears in a container: stored (possibly still
// compressed) payload plus the bookkeeping needed to report precise failures.
type RawBlock struct {
	Type        BlockType
	Compression Compression
	// Offset is the position of the block's first header byte within the
	// container.
	Offset int
	// UncompressedSize is the declared size of the logical payload.
	UncompressedSize uint32
	// StoredSize is the number of payload bytes physically present in the
	// container. Equal to UncompressedSize when the block isn't compressed.
	StoredSize uint32
	Params     []byte
	// StoredPayload is the payload exactly as stored, still compressed if the
	// block's compression says so.
	StoredPayload []byte
	Checksum      uint32
}

// Payload returns the block's logical payload, inflating the stored bytes
// when the block is deflate-compressed.
func (rb *RawBlock) Payload() ([]byte, error) {
	switch rb.Compression {
	case CompressionNone:
		return rb.StoredPayload, nil
	case CompressionDeflate:
		inflated, err := compression.InflateToBytes(rb.StoredPayload)
		if err != nil {
			return nil, ErrTruncatedBlock.WithMessage(
				fmt.Sprintf(
					"inflating %s block at offset %d: %s",
					rb.Type, rb.Offset, err.Error()))
		}
		return inflated, nil
	}
	// ParseBlock rejects anything else, so this is only reachable with a
	// hand-built RawBlock.
	return nil, ErrUnsupportedCompression.WithMessage(
		fmt.Sprintf("compression type %d", rb.Compression))
}

// ParseBlock reads and checksum-validates one block starting at `offset` in
// `data`, returning the block and the offset of the byte immediately after it.
// The checksum is recomputed over the exact header + params + payload span
// consumed; any mismatch, unknown compression value, or declared size running
// past the end of the buffer is a hard failure.
func ParseBlock(data []byte, offset int) (*RawBlock, int, error) {
	if offset+8 > len(data) {
		return nil, 0, ErrTruncatedBlock.WithMessage(
			fmt.Sprintf("block header at offset %d runs past end of data", offset))
	}

	blockType := BlockType(binary.LittleEndian.Uint16(data[offset:]))
	comp := Compression(binary.LittleEndian.Uint16(data[offset+2:]))
	uncompressedSize := binary.LittleEndian.Uint32(data[offset+4:])

	var storedSize uint32
	switch comp {
	case CompressionNone:
		storedSize = uncompressedSize
	case CompressionDeflate:
		if offset+12 > len(data) {
			return nil, 0, ErrTruncatedBlock.WithMessage(
				fmt.Sprintf(
					"block header at offset %d runs past end of data", offset))
		}
		storedSize = binary.LittleEndian.Uint32(data[offset+8:])
	default:
		// This includes both Heatshrink variants. We refuse to skip over a
		// block we can't fully interpret; its size fields may not mean what
		// we'd assume.
		return nil, 0, ErrUnsupportedCompression.WithMessage(
			fmt.Sprintf("compression type %d at offset %d", comp, offset))
	}

	headerSize := blockHeaderSize(comp)
	paramsStart := offset + headerSize
	payloadStart := paramsStart + blockType.ParamsSize()
	payloadEnd := payloadStart + int(storedSize)

	if payloadEnd+4 > len(data) {
		return nil, 0, ErrTruncatedBlock.WithMessage(
			fmt.Sprintf(
				"%s block at offset %d declares %d payload bytes but only %d"+
					" bytes remain",
				blockType, offset, storedSize, len(data)-payloadStart))
	}

	storedChecksum := binary.LittleEndian.Uint32(data[payloadEnd:])
	computedChecksum := crc32.ChecksumIEEE(data[offset:payloadEnd])
	if computedChecksum != storedChecksum {
		return nil, 0, ErrChecksumMismatch.WithMessage(
			fmt.Sprintf(
				"%s block at offset %d: computed %#010x, stored %#010x",
				blockType, offset, computedChecksum, storedChecksum))
	}

	block := &RawBlock{
		Type:             blockType,
		Compression:      comp,
		Offset:           offset,
		UncompressedSize: uncompressedSize,
		StoredSize:       storedSize,
		Params:           data[paramsStart:payloadStart],
		StoredPayload:    data[payloadStart:payloadEnd],
		Checksum:         storedChecksum,
	}
	return block, payloadEnd + 4, nil
}
