package supercellswf

import "github.com/scwmake/supercellswf/internal/compress"

// Compression identifies the whole-file compression envelope a Document was
// read from, or should be written with.
type Compression = compress.Method

// The recognised compression envelopes.
const (
	NONE  = compress.NONE
	LZMA  = compress.LZMA
	LZHAM = compress.LZHAM
	ZSTD  = compress.ZSTD
)

const (
	// DefaultHighresPostfix is the filename suffix used to select the
	// high-resolution external texture companion when one hasn't been
	// customised by tag 32.
	DefaultHighresPostfix = "_highres"
	// DefaultLowresPostfix is the low-resolution counterpart.
	DefaultLowresPostfix = "_lowres"
)

// Document is the root aggregate of a SupercellSWF file: its compression
// envelope, texture set, transform banks, and resources (shapes, movie
// clips, text fields, and movie-clip modifiers), plus the export name
// table. A Document fully owns its textures, banks, and resources; none of
// it is shared across documents.
type Document struct {
	Compression Compression

	HasExternalTexture  bool
	UseLowresTexture    bool
	UseUncommonTexture  bool
	HighresPostfix      string
	LowresPostfix       string

	Textures  []*Texture
	Banks     []*TransformBank
	Resources map[uint16]Resource

	// Exports maps a resource id to its export names, in declaration
	// order. Every id present here must also be present in Resources.
	Exports map[uint16][]string
}

// NewDocument returns an empty Document with default postfixes and no
// compression.
func NewDocument() *Document {
	return &Document{
		Compression:    NONE,
		HighresPostfix: DefaultHighresPostfix,
		LowresPostfix:  DefaultLowresPostfix,
		Resources:      make(map[uint16]Resource),
		Exports:        make(map[uint16][]string),
	}
}

// PrimaryBank returns the document's primary (index 0) transform bank,
// creating it if the document has none yet. The primary bank's matrix and
// color counts are the ones embedded in the file header.
func (d *Document) PrimaryBank() *TransformBank {
	if len(d.Banks) == 0 {
		d.Banks = append(d.Banks, &TransformBank{})
	}
	return d.Banks[0]
}
