package compress

import "github.com/scwmake/supercellswf/errs"

// Decompress strips any outer envelope, detects the compression method, and
// returns the plain bytes. Detection never fails; only an actual
// decompression failure on a recognised non-NONE method returns an error.
func Decompress(raw []byte) (method Method, plain []byte, outer *OuterHeader, err error) {
	rest, outer := StripOuter(raw)
	method = Detect(rest)

	switch method {
	case NONE:
		return NONE, rest, outer, nil
	case LZMA:
		plain, err = lzmaDecompress(rest)
	case ZSTD:
		plain, err = zstdDecompress(rest)
	case LZHAM:
		plain, err = lzhamDecompress(rest)
	}
	if err != nil {
		return method, nil, outer, &errs.CompressionFailure{Method: method.String(), Cause: err}
	}
	return method, plain, outer, nil
}

// Compress wraps plain in the envelope for method. For a given method, the
// result classifies back as that method under Detect and Decompress
// recovers plain byte-for-byte (the envelope-inverse law), except for
// LZHAM, which this build cannot produce either.
func Compress(method Method, plain []byte) ([]byte, error) {
	switch method {
	case NONE:
		return plain, nil
	case LZMA:
		out, err := lzmaCompress(plain)
		if err != nil {
			return nil, &errs.CompressionFailure{Method: method.String(), Cause: err}
		}
		return out, nil
	case ZSTD:
		out, err := zstdCompress(plain)
		if err != nil {
			return nil, &errs.CompressionFailure{Method: method.String(), Cause: err}
		}
		return out, nil
	case LZHAM:
		_, err := lzhamCompress(plain)
		return nil, &errs.CompressionFailure{Method: method.String(), Cause: err}
	default:
		return plain, nil
	}
}
