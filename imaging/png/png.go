// Package png builds minimal truecolor PNG files from raw pixels.
//
// The output is a valid single-frame PNG with exactly three chunks: IHDR,
// one IDAT, and IEND. Pixels are 8-bit RGB, no alpha, no interlacing, and
// every scanline uses filter type 0 (None). That is all an embedded preview
// image needs, and it keeps the encoder at a fraction of the weight of a
// general-purpose image library.
//
// Per the PNG specification, chunk lengths and CRCs are big-endian and each
// chunk's CRC-32 covers its tag and data. This is unrelated to the container
// format's block checksums; the two protocols merely share an algorithm.
package png

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"

	"github.com/noxer/bytewriter"
)

// Pixel is one RGB pixel. Channel values outside 0-255 are masked to their
// low eight bits when encoded, not rejected; callers are trusted drawing
// code, not untrusted input.
type Pixel struct {
	R int
	G int
	B int
}

var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Encode builds a complete PNG file from a row-major pixel grid. The pixels
// slice must hold exactly width*height entries.
func Encode(width, height int, pixels []Pixel) []byte {
	// IHDR: dimensions, bit depth 8, color type 2 (truecolor), compression 0,
	// filter method 0, interlace 0.
	ihdr := make([]byte, 13)
	writer := bytewriter.New(ihdr)
	binary.Write(writer, binary.BigEndian, uint32(width))
	binary.Write(writer, binary.BigEndian, uint32(height))
	writer.Write([]byte{8, 2, 0, 0, 0})

	// Each scanline is a filter-type byte (0 = None) followed by RGB triples.
	raw := make([]byte, 0, height*(1+width*3))
	for y := 0; y < height; y++ {
		raw = append(raw, 0)
		for x := 0; x < width; x++ {
			pixel := pixels[y*width+x]
			raw = append(raw, byte(pixel.R), byte(pixel.G), byte(pixel.B))
		}
	}

	output := bytes.Buffer{}
	output.Write(signature)
	writeChunk(&output, "IHDR", ihdr)
	writeChunk(&output, "IDAT", deflatePixelData(raw))
	writeChunk(&output, "IEND", nil)
	return output.Bytes()
}

// deflatePixelData zlib-compresses the filtered scanlines for an IDAT chunk.
// This is the PNG format's own use of zlib, inside its own chunk framing; it
// intentionally does not go through the container codec's payload wrappers.
func deflatePixelData(raw []byte) []byte {
	buffer := bytes.Buffer{}
	zlibWriter, err := zlib.NewWriterLevel(&buffer, 6)
	if err != nil {
		// Only reachable with an invalid level constant.
		panic(err)
	}
	zlibWriter.Write(raw)
	zlibWriter.Close()
	return buffer.Bytes()
}

// writeChunk emits one chunk: big-endian length, four-byte tag, data, and a
// CRC-32 over tag + data.
func writeChunk(output *bytes.Buffer, tag string, data []byte) {
	binary.Write(output, binary.BigEndian, uint32(len(data)))
	output.WriteString(tag)
	output.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(tag))
	crc.Write(data)
	binary.Write(output, binary.BigEndian, crc.Sum32())
}
