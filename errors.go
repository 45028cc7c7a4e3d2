package bgcode

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// CodecError is the error type returned by every operation in this library.
// All decode failures are terminal: a structurally invalid container cannot be
// partially trusted, so there is no retry-with-fallback behavior anywhere.
type CodecError interface {
	error
	WithMessage(message string) CodecError
	Wrap(err error) CodecError
}

type baseCodecError string

const rootError = baseCodecError("")

// ErrMalformedHeader indicates the buffer is shorter than a file header or
// the magic bytes don't match.
var ErrMalformedHeader = rootError.WithMessage("Malformed file header")

// ErrUnsupportedChecksum indicates the file header selects a checksum
// algorithm this library doesn't implement.
var ErrUnsupportedChecksum = rootError.WithMessage("Unsupported checksum type")

// ErrTruncatedBlock indicates a block's declared sizes extend past the end of
// the buffer.
var ErrTruncatedBlock = rootError.WithMessage("Truncated block")

// ErrChecksumMismatch indicates a block's stored CRC-32 doesn't match the
// value computed over its header, params and payload. The message names the
// block type, its offset, and both values.
var ErrChecksumMismatch = rootError.WithMessage("Block checksum mismatch")

// ErrUnsupportedCompression indicates a block uses a compression scheme this
// library doesn't implement, such as either Heatshrink variant.
var ErrUnsupportedCompression = rootError.WithMessage("Unsupported compression type")

// ErrUnsupportedEncoding indicates a G-code block uses a payload encoding
// this library doesn't implement, such as either MeatPack variant.
var ErrUnsupportedEncoding = rootError.WithMessage("Unsupported payload encoding")

// ErrNoGCodeBlocks indicates a well-formed container contained no G-code
// blocks at all.
var ErrNoGCodeBlocks = rootError.WithMessage("No G-code blocks found")

// ErrInvalidParams indicates a caller tried to write a block whose params
// size doesn't match its block type. This is the encode path's only failure
// mode beyond I/O errors; everything else it writes is well-formed by
// construction.
var ErrInvalidParams = rootError.WithMessage("Block params have the wrong size")

func (e baseCodecError) Error() string {
	return string(e)
}

func (e baseCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       message,
		originalError: e,
	}
}

func (e baseCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

// -----------------------------------------------------------------------------

type customCodecError struct {
	message       string
	originalError error
}

// Error implements the `error` object interface. When called, it returns a
// string describing the error.
func (e customCodecError) Error() string {
	return e.message
}

func (e customCodecError) WithMessage(message string) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customCodecError) Wrap(err error) CodecError {
	return customCodecError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: multierror.Append(e, err),
	}
}

func (e customCodecError) Unwrap() error {
	return e.originalError
}
