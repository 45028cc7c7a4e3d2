// Package compression implements the DEFLATE wrapping used for container
// block payloads.
//
// The container format stores compressed payloads as zlib-wrapped DEFLATE
// (RFC 1950: a two-byte header, typically 78 9C, and a trailing Adler-32),
// not as a raw DEFLATE stream. This matters for interoperability: the
// reference decoder initializes its inflater in zlib mode and rejects raw
// DEFLATE outright. Anything this package writes must therefore go through
// [DeflatePayload] or [DeflateToBytes] rather than compress/flate directly.
//
// The embedded-thumbnail image encoder also compresses with zlib, but inside
// its own chunk framing with its own per-chunk checksums. That is a separate
// protocol which happens to share the compression algorithm; it deliberately
// does not call into this package's wrappers, and this package knows nothing
// about image files.

package compression
