package supercellswf

import "github.com/scwmake/supercellswf/internal/pixel"

// Filter is an OpenGL-style texture filter setting.
type Filter int

const (
	Linear Filter = iota
	Nearest
	LinearMipmapNearest
)

// Texture is one sprite-sheet bitmap: its OpenGL-style pixel format and
// filter settings, its memory layout, and its pixel data.
type Texture struct {
	PixelFormat byte // index into the eleven recognised pixel formats, see internal/pixel

	MagFilter Filter
	MinFilter Filter

	// Linear selects row-major pixel storage; false selects the 32x32
	// block layout.
	Linear bool

	// Downscaling permits the texture to be mipmapped.
	Downscaling bool

	// Width and Height are the texture's pixel extent. They stay
	// populated even when Pixels is nil, so a texture tag with its
	// pixel payload split into an external file can still be framed
	// correctly in the main file.
	Width, Height int

	// Pixels is nil when the document flags the texture as externally
	// stored and the current file doesn't provide it.
	Pixels *pixel.Matrix
}

// textureTagRow is one row of the tag-id-to-filter-settings table from
// which the texture tag id is chosen on save and interpreted on load. Tag
// 34 leaves linear and downscaling unconstrained ("(any)" in the format
// table): a NEAREST/NEAREST texture doesn't encode either bit, so on load
// they come back as their zero values (32x32 block layout, no mipmapping), and on
// save any texture with that filter pair collapses onto tag 34 regardless
// of its own linear/downscaling settings.
type textureTagRow struct {
	id                        byte
	mag, min                  Filter
	linear, downscaling       bool
	anyLinear, anyDownscaling bool
}

// textureTags is the closed table mapping a texture tag id to its filter,
// layout, and downscaling bits. It is the single source of truth in both
// directions: on load the table decides what a tag id means, and on save
// the writer picks the minimal id whose row matches (tag 1 if none match).
var textureTags = []textureTagRow{
	{id: 1, mag: Linear, min: Nearest, linear: true, downscaling: true},
	{id: 16, mag: Linear, min: LinearMipmapNearest, linear: true, downscaling: true},
	{id: 19, mag: Linear, min: LinearMipmapNearest, linear: true, downscaling: false},
	{id: 24, mag: Linear, min: Nearest, linear: true, downscaling: false},
	{id: 27, mag: Linear, min: Nearest, linear: false, downscaling: false},
	{id: 28, mag: Linear, min: Nearest, linear: false, downscaling: true},
	{id: 29, mag: Linear, min: LinearMipmapNearest, linear: false, downscaling: true},
	{id: 34, mag: Nearest, min: Nearest, anyLinear: true, anyDownscaling: true},
}

// IsTextureTag reports whether id names a texture tag.
func IsTextureTag(id byte) bool {
	_, ok := textureRowByID(id)
	return ok
}

func textureRowByID(id byte) (textureTagRow, bool) {
	for _, row := range textureTags {
		if row.id == id {
			return row, true
		}
	}
	return textureTagRow{}, false
}

// ApplyTagID sets the texture's filter, layout, and downscaling fields from
// the row for the given tag id. id must be a texture tag id.
func (t *Texture) ApplyTagID(id byte) {
	row, ok := textureRowByID(id)
	if !ok {
		return
	}
	t.MagFilter = row.mag
	t.MinFilter = row.min
	if !row.anyLinear {
		t.Linear = row.linear
	}
	if !row.anyDownscaling {
		t.Downscaling = row.downscaling
	}
}

// TagID returns the minimal tag id whose row matches the texture's current
// filter, layout, and downscaling settings, falling back to tag 1 when no
// row matches.
func (t *Texture) TagID() byte {
	for _, row := range textureTags {
		if row.mag != t.MagFilter || row.min != t.MinFilter {
			continue
		}
		if !row.anyLinear && row.linear != t.Linear {
			continue
		}
		if !row.anyDownscaling && row.downscaling != t.Downscaling {
			continue
		}
		return row.id
	}
	return 1
}
