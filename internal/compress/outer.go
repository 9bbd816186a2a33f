package compress

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// outerMagic is the leading two bytes of the optional Supercell container
// envelope, "SC" followed by a 4-byte version.
var outerMagic = [2]byte{'S', 'C'}

const outerHeaderSize = 2 + 4 + 16 // magic + version + metadata hash

// OuterHeader is the optional outer envelope that may further prefix the
// compression envelope: a 6-byte magic (outerMagic + version) and a
// 16-byte metadata hash of the inner (compression-envelope) payload.
type OuterHeader struct {
	Version uint32
	Hash    [16]byte
}

// StripOuter removes the outer envelope from data if present, returning the
// remaining bytes and the parsed header. If no outer envelope is present,
// it returns data unchanged and a nil header.
func StripOuter(data []byte) ([]byte, *OuterHeader) {
	if len(data) < outerHeaderSize || data[0] != outerMagic[0] || data[1] != outerMagic[1] {
		return data, nil
	}
	hdr := &OuterHeader{
		Version: binary.LittleEndian.Uint32(data[2:6]),
	}
	copy(hdr.Hash[:], data[6:22])
	return data[outerHeaderSize:], hdr
}

// VerifyOuterHash recomputes the metadata hash of payload (the truncated
// BLAKE2b-256 identity scheme used throughout this stack for content
// fingerprints, see rbxl/rbxlx's shared-string hashing) and reports whether
// it matches hdr. A mismatch is metadata-only; callers treat it as a
// warning, not a load failure.
func VerifyOuterHash(hdr *OuterHeader, payload []byte) bool {
	sum := blake2b.Sum256(payload)
	var got [16]byte
	copy(got[:], sum[:16])
	return got == hdr.Hash
}
