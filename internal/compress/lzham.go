package compress

import "errors"

// LZHAM in the source is gated on a native optional dependency; no portable
// decoder exists in this ecosystem's retrieved dependency surface. Per the
// open question this leaves, both directions fail with CompressionFailure
// rather than mis-decoding or fabricating a codec.
var errNoLZHAMBackend = errors.New("no LZHAM backend available in this build")

func lzhamDecompress([]byte) ([]byte, error) {
	return nil, errNoLZHAMBackend
}

func lzhamCompress([]byte) ([]byte, error) {
	return nil, errNoLZHAMBackend
}
