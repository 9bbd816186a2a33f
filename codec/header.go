package codec

import (
	swf "github.com/scwmake/supercellswf"
	"github.com/scwmake/supercellswf/internal/buffer"
)

// reservedHeaderBytes is the width of the unused header field, skipped on
// read and zero-filled on write.
const reservedHeaderBytes = 5

// header is the fixed-width front of a main .sc file, before the tag
// stream begins.
type header struct {
	shapeCount, movieClipCount, textureCount, textFieldCount int
	// matrixCount and colorCount describe the primary bank. They are read
	// but not otherwise used: the primary bank grows from the matrix and
	// color tags actually present, and these counts are not enforced
	// against the tag stream the way the shape/movie-clip/text-field
	// counts are.
	matrixCount, colorCount int
}

func readU16Int(buf *buffer.Buffer) (int, error) {
	v, err := buf.ReadU16()
	return int(v), err
}

// decodeHeader reads the fixed header fields and the exports table that
// follows them.
func decodeHeader(buf *buffer.Buffer) (header, map[uint16][]string, error) {
	var h header
	var err error

	if h.shapeCount, err = readU16Int(buf); err != nil {
		return h, nil, err
	}
	if h.movieClipCount, err = readU16Int(buf); err != nil {
		return h, nil, err
	}
	if h.textureCount, err = readU16Int(buf); err != nil {
		return h, nil, err
	}
	if h.textFieldCount, err = readU16Int(buf); err != nil {
		return h, nil, err
	}
	if h.matrixCount, err = readU16Int(buf); err != nil {
		return h, nil, err
	}
	if h.colorCount, err = readU16Int(buf); err != nil {
		return h, nil, err
	}
	if _, err = buf.ReadBytes(reservedHeaderBytes); err != nil {
		return h, nil, err
	}

	exports, err := decodeExports(buf)
	if err != nil {
		return h, nil, err
	}
	return h, exports, nil
}

// encodeHeader writes the fixed header fields and the exports table for
// doc.
func encodeHeader(buf *buffer.Buffer, doc *swf.Document) {
	buf.WriteU16(uint16(len(shapesInOrder(doc))))
	buf.WriteU16(uint16(len(movieClipsInOrder(doc))))
	buf.WriteU16(uint16(len(doc.Textures)))
	buf.WriteU16(uint16(len(textFieldsInOrder(doc))))

	var matrixCount, colorCount int
	if len(doc.Banks) > 0 {
		matrixCount = len(doc.Banks[0].Matrices)
		colorCount = len(doc.Banks[0].Colors)
	}
	buf.WriteU16(uint16(matrixCount))
	buf.WriteU16(uint16(colorCount))
	buf.Fill(reservedHeaderBytes)

	encodeExports(buf, doc)
}

func decodeExports(buf *buffer.Buffer) (map[uint16][]string, error) {
	count, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	ids := make([]uint16, count)
	for i := range ids {
		id, err := buf.ReadU16()
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	exports := make(map[uint16][]string)
	for _, id := range ids {
		name, err := buf.ReadASCII()
		if err != nil {
			return nil, err
		}
		exports[id] = append(exports[id], name)
	}
	return exports, nil
}

func encodeExports(buf *buffer.Buffer, doc *swf.Document) {
	var ids []uint16
	var names []string
	for _, id := range sortedExportIDs(doc) {
		for _, name := range doc.Exports[id] {
			ids = append(ids, id)
			names = append(names, name)
		}
	}

	buf.WriteU16(uint16(len(ids)))
	for _, id := range ids {
		buf.WriteU16(id)
	}
	for _, name := range names {
		buf.WriteASCII(name)
	}
}
