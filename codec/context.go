package codec

import (
	"encoding/binary"

	"github.com/scwmake/supercellswf/errs"
)

// decodeCounts are the header-declared per-kind resource totals the
// dispatcher enforces against the tag stream.
type decodeCounts struct {
	shapes, movieClips, textFields int
}

// peekResourceID reads the leading little-endian u16 every shape,
// movie-clip, text-field, and modifier tag payload begins with. The id
// stays in place in the stored payload, so a save reproduces the record
// byte-for-byte without this package needing to understand anything else
// about its internal layout.
func peekResourceID(payload []byte) (uint16, error) {
	if len(payload) < 2 {
		return 0, &errs.Truncated{Offset: 0, Need: 2, Have: len(payload)}
	}
	return binary.LittleEndian.Uint16(payload[:2]), nil
}
