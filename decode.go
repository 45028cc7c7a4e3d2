package bgcode

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Decode walks every block in `data`, validates every checksum, and returns
// the concatenated text of all G-code blocks in file order.
//
// Non-G-code blocks are walked over, not trusted blindly: their checksums are
// verified even though their contents are discarded. The decoder makes no
// assumption about block order; enforcing the ordering rules is the encoder's
// job. Any structural failure (bad magic, truncation, a checksum mismatch, an
// unsupported compression or encoding value, or a container with no G-code
// blocks at all) aborts the whole decode. There is deliberately no
// best-effort mode; corrupt input must never silently yield truncated G-code.
func Decode(data []byte) (string, error) {
	if _, err := ParseFileHeader(data); err != nil {
		return "", err
	}

	parts := strings.Builder{}
	foundGCode := false

	offset := FileHeaderSize
	for offset < len(data) {
		block, next, err := ParseBlock(data, offset)
		if err != nil {
			return "", err
		}

		if block.Type == BlockGCode {
			text, err := gcodeBlockText(block)
			if err != nil {
				return "", err
			}
			parts.WriteString(text)
			foundGCode = true
		}
		offset = next
	}

	if !foundGCode {
		return "", ErrNoGCodeBlocks
	}
	return parts.String(), nil
}

// gcodeBlockText extracts the text of one G-code block, inflating it if
// necessary and rejecting any payload encoding other than raw text.
func gcodeBlockText(block *RawBlock) (string, error) {
	encoding := Encoding(binary.LittleEndian.Uint16(block.Params))
	if encoding != EncodingRawText {
		return "", ErrUnsupportedEncoding.WithMessage(
			fmt.Sprintf(
				"G-code block at offset %d uses encoding %d",
				block.Offset, encoding))
	}

	payload, err := block.Payload()
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// ScanBlocks parses and checksum-validates every block in `data`, returning
// them in file order without interpreting any payloads. This is the
// inventory behind thumbnail extraction and the CLI's inspect command.
func ScanBlocks(data []byte) ([]*RawBlock, error) {
	if _, err := ParseFileHeader(data); err != nil {
		return nil, err
	}

	var blocks []*RawBlock
	offset := FileHeaderSize
	for offset < len(data) {
		block, next, err := ParseBlock(data, offset)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
		offset = next
	}
	return blocks, nil
}

// ExtractThumbnails returns every embedded thumbnail in `data`, in file
// order, with the image bytes exactly as stored. The result is empty (not an
// error) for a valid container with no Thumbnail blocks.
func ExtractThumbnails(data []byte) ([]Thumbnail, error) {
	blocks, err := ScanBlocks(data)
	if err != nil {
		return nil, err
	}

	var thumbnails []Thumbnail
	for _, block := range blocks {
		if block.Type != BlockThumbnail {
			continue
		}

		payload, err := block.Payload()
		if err != nil {
			return nil, err
		}
		thumbnails = append(thumbnails, Thumbnail{
			Format: ThumbnailFormat(binary.LittleEndian.Uint16(block.Params)),
			Width:  binary.LittleEndian.Uint16(block.Params[2:]),
			Height: binary.LittleEndian.Uint16(block.Params[4:]),
			Data:   payload,
		})
	}
	return thumbnails, nil
}
