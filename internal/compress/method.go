// Package compress implements the whole-file compression envelope: an
// optional Supercell-specific outer wrapper, and the four compression
// methods a .sc payload may be wrapped in (none, LZMA, LZHAM, Zstandard).
//
// Detection is total and never fails: an unrecognised stream classifies as
// Method NONE with its bytes unchanged, because the tag reader downstream
// will surface a malformed header on its own terms.
package compress

import "encoding/binary"

// Method is one of the whole-file compression envelopes a .sc payload may
// be wrapped in.
type Method int

const (
	NONE Method = iota
	LZMA
	LZHAM
	ZSTD
)

func (m Method) String() string {
	switch m {
	case NONE:
		return "none"
	case LZMA:
		return "lzma"
	case LZHAM:
		return "lzham"
	case ZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

const zstdMagic = 0xFD2FB528

// lzmaPropsByte is the only properties byte lzmaCompress ever emits: lc=3,
// lp=0, pb=2, the LZMA SDK default. A valid properties byte can legally be
// anything below 225, which an ordinary NONE payload's leading bytes land
// on often enough by chance that the full range is useless for detection;
// keying off the exact byte this package writes is the only thing that
// actually discriminates LZMA from an uncompressed stream that happens to
// start with a small number.
const lzmaPropsByte = 0x5D

// Detect classifies data (with any outer envelope already stripped) by
// inspecting its leading bytes, in the order: "SCLZ" magic, Zstd frame
// magic, LZMA properties-byte heuristic, else NONE.
func Detect(data []byte) Method {
	if len(data) >= 4 && string(data[:4]) == "SCLZ" {
		return LZHAM
	}
	if len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == zstdMagic {
		return ZSTD
	}
	if looksLikeLZMA(data) {
		return LZMA
	}
	return NONE
}

func looksLikeLZMA(data []byte) bool {
	if len(data) < lzmaHeaderSize {
		return false
	}
	if data[0] != lzmaPropsByte {
		return false
	}
	dictSize := binary.LittleEndian.Uint32(data[1:5])
	if dictSize == 0 || dictSize > 1<<30 {
		return false
	}
	// A nonzero uncompressed size has to leave at least one byte of
	// compressed payload behind the header.
	uncompressedSize := binary.LittleEndian.Uint32(data[5:9])
	if uncompressedSize > 0 && len(data) <= lzmaHeaderSize {
		return false
	}
	return true
}
