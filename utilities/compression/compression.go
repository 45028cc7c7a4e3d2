package compression

import (
	"bytes"
	"compress/zlib"
	"io"
)

// PayloadCompressionLevel is the DEFLATE level used for block payloads. The
// payloads are small enough that we won't notice much of a speed difference
// between this and the maximum level.
const PayloadCompressionLevel = 6

// countingWriter wraps an io.Writer and counts the bytes passing through it.
type countingWriter struct {
	output       io.Writer
	bytesWritten int64
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.output.Write(p)
	w.bytesWritten += int64(n)
	return n, err
}

// DeflatePayload compresses everything from the input into a zlib-wrapped
// DEFLATE stream on the output.
//
// The returned int64 gives the number of bytes written to the output stream,
// including the zlib header and trailer. If an error occurred, the value is
// undefined and should not be used.
func DeflatePayload(input io.Reader, output io.Writer) (int64, error) {
	counter := countingWriter{output: output}

	zlibWriter, err := zlib.NewWriterLevel(&counter, PayloadCompressionLevel)
	if err != nil {
		return 0, err
	}

	if _, err = io.Copy(zlibWriter, input); err != nil {
		zlibWriter.Close()
		return counter.bytesWritten, err
	}

	// Close flushes the final DEFLATE block and the Adler-32 trailer, so its
	// error can't be ignored the way a plain resource-release could be.
	if err = zlibWriter.Close(); err != nil {
		return counter.bytesWritten, err
	}
	return counter.bytesWritten, nil
}

// InflatePayload decompresses a zlib-wrapped DEFLATE stream from the input to
// the output.
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// decompressed size of the payload). If an error occurred, the value is
// undefined and should not be used.
func InflatePayload(input io.Reader, output io.Writer) (int64, error) {
	zlibReader, err := zlib.NewReader(input)
	if err != nil {
		return 0, err
	}
	defer zlibReader.Close()
	return io.Copy(output, zlibReader)
}

// DeflateToBytes is a convenience function wrapping [DeflatePayload]. It
// functions identically, except it takes and returns byte slices instead of
// streams.
func DeflateToBytes(data []byte) ([]byte, error) {
	buffer := bytes.Buffer{}
	_, err := DeflatePayload(bytes.NewReader(data), &buffer)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// InflateToBytes is a convenience function wrapping [InflatePayload]. It
// functions identically, except it takes and returns byte slices instead of
// streams.
func InflateToBytes(data []byte) ([]byte, error) {
	buffer := bytes.Buffer{}
	_, err := InflatePayload(bytes.NewReader(data), &buffer)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
