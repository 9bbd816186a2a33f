package codec

// Tag ids. The tag set is closed: anything not named here is skipped by the
// dispatcher rather than rejected, for forward compatibility.
const (
	tagEnd = 0

	tagLowresMarker    = 23
	tagExternalTexture = 26
	tagUncommonMarker  = 30
	tagPostfix         = 32

	tagMatrix      = 8
	tagMatrixAlias = 36
	tagColor       = 9

	tagModifierBlockBegin = 37
	tagBankBegin          = 42
)

var textureTagIDs = []byte{1, 16, 19, 24, 27, 28, 29, 34}
var shapeTagIDs = []byte{2, 18}
var movieClipTagIDs = []byte{3, 10, 12, 14, 35}
var textFieldTagIDs = []byte{7, 15, 20, 21, 25, 33, 43, 44}
var modifierTagIDs = []byte{38, 39, 40}

func contains(ids []byte, id byte) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func isTextureTag(id byte) bool    { return contains(textureTagIDs, id) }
func isShapeTag(id byte) bool      { return contains(shapeTagIDs, id) }
func isMovieClipTag(id byte) bool  { return contains(movieClipTagIDs, id) }
func isTextFieldTag(id byte) bool  { return contains(textFieldTagIDs, id) }
func isModifierTag(id byte) bool   { return contains(modifierTagIDs, id) }
func isMatrixTag(id byte) bool     { return id == tagMatrix || id == tagMatrixAlias }
