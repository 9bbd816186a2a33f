package supercellswf

// Resource is implemented by the four record kinds a Document's resource
// table can hold. Shape, movie-clip, text-field, and modifier record bodies
// are treated as opaque tag payloads; each Resource keeps only its id, the
// tag id it was read with (several ids alias the same kind), and its raw
// payload, so a save re-emits bit-identical bytes under the same tag id.
//
// This is a tagged-union in Go's native idiom: a closed interface with one
// implementation per variant, rather than a heterogeneous map keyed by id
// across four kinds with runtime type dispatch.
type Resource interface {
	ResourceID() uint16
	TagID() byte
	Payload() []byte
}

type opaqueRecord struct {
	ID       uint16
	RawTagID byte
	Data     []byte
}

func (r *opaqueRecord) ResourceID() uint16 { return r.ID }
func (r *opaqueRecord) TagID() byte        { return r.RawTagID }
func (r *opaqueRecord) Payload() []byte    { return r.Data }

// Shape is a vector-shape resource (tag ids 2, 18).
type Shape struct{ opaqueRecord }

// MovieClip is an animated-clip resource (tag ids 3, 10, 12, 14, 35). Its
// frames bind to transform-bank entries and to other resources by integer
// index, never by reference, so there is no cycle for this package to
// worry about.
type MovieClip struct{ opaqueRecord }

// TextField is a text-field resource (tag ids 7, 15, 20, 21, 25, 33, 43, 44).
type TextField struct{ opaqueRecord }

// MovieClipModifier is a modifier resource (tag ids 38, 39, 40), counted
// against the count introduced by the modifier-block-begin tag (37) rather
// than a header field.
type MovieClipModifier struct{ opaqueRecord }

// NewShape, NewMovieClip, NewTextField, and NewMovieClipModifier construct
// a resource of the given kind with the given id, tag id, and raw payload.

func NewShape(id uint16, tagID byte, data []byte) *Shape {
	return &Shape{opaqueRecord{ID: id, RawTagID: tagID, Data: data}}
}

func NewMovieClip(id uint16, tagID byte, data []byte) *MovieClip {
	return &MovieClip{opaqueRecord{ID: id, RawTagID: tagID, Data: data}}
}

func NewTextField(id uint16, tagID byte, data []byte) *TextField {
	return &TextField{opaqueRecord{ID: id, RawTagID: tagID, Data: data}}
}

func NewMovieClipModifier(id uint16, tagID byte, data []byte) *MovieClipModifier {
	return &MovieClipModifier{opaqueRecord{ID: id, RawTagID: tagID, Data: data}}
}
