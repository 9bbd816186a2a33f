package pixel

import "github.com/scwmake/supercellswf/errs"

// Buffer is the opaque pixel-data accessor the codec reads from and writes
// to. The codec makes no assumption about a Buffer's in-memory layout;
// Matrix below is the only implementation the codec itself needs, but a
// caller may supply its own (e.g. backed by a real image library) wherever
// a Buffer is accepted.
type Buffer interface {
	Get(x, y int) []byte
	Set(x, y int, channels []byte)
	Resize(factor float64) Buffer
	Clone() Buffer
	Channels() int
	HasAlpha() bool
}

// Matrix is a row-major, 8-bit-per-channel pixel buffer. It is always
// addressed by image coordinate regardless of the wire layout (linear or
// block) it was decoded from or will be encoded to, which is what gives
// invariant 6 (block layout read/write address the same pixel at the same
// (x,y)) for free.
type Matrix struct {
	Width, Height int
	Kind          ChannelKind
	Data          []byte // len == Width*Height*Kind.Channels()
}

// NewMatrix allocates a zeroed matrix of the given size and channel kind.
func NewMatrix(width, height int, kind ChannelKind) *Matrix {
	return &Matrix{
		Width:  width,
		Height: height,
		Kind:   kind,
		Data:   make([]byte, width*height*kind.Channels()),
	}
}

func (m *Matrix) index(x, y int) int {
	return (y*m.Width + x) * m.Kind.Channels()
}

func (m *Matrix) Get(x, y int) []byte {
	i := m.index(x, y)
	return m.Data[i : i+m.Kind.Channels()]
}

func (m *Matrix) Set(x, y int, channels []byte) {
	copy(m.Get(x, y), channels)
}

func (m *Matrix) Channels() int { return m.Kind.Channels() }
func (m *Matrix) HasAlpha() bool { return m.Kind.HasAlpha() }

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() Buffer {
	out := &Matrix{Width: m.Width, Height: m.Height, Kind: m.Kind}
	out.Data = append([]byte(nil), m.Data...)
	return out
}

// Resize returns a new matrix scaled by factor using nearest-neighbour
// sampling, used to produce the downscaled lowres companion texture.
func (m *Matrix) Resize(factor float64) Buffer {
	newWidth := int(round(float64(m.Width) * factor))
	newHeight := int(round(float64(m.Height) * factor))
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}
	out := NewMatrix(newWidth, newHeight, m.Kind)
	for y := 0; y < newHeight; y++ {
		sy := int(float64(y) / factor)
		if sy >= m.Height {
			sy = m.Height - 1
		}
		for x := 0; x < newWidth; x++ {
			sx := int(float64(x) / factor)
			if sx >= m.Width {
				sx = m.Width - 1
			}
			out.Set(x, y, m.Get(sx, sy))
		}
	}
	return out
}

// Encode packs buf into the wire payload for the given format index and
// layout. If the format disagrees with buf's channel count, the format is
// silently rewritten to the default for buf's channel kind, mirroring the
// source's surprising write-time auto-correction (see the design notes on
// this behaviour).
func Encode(format byte, linear bool, width, height int, buf Buffer) (payload []byte, usedFormat byte, err error) {
	usedFormat = format
	if !Valid(format) || Kind(format).Channels() != buf.Channels() {
		usedFormat = DefaultFormat(kindForChannels(buf.Channels()))
	}

	bpp := BytesPerPixel(usedFormat)
	payload = make([]byte, 0, width*height*bpp)
	hasAlpha := buf.HasAlpha()

	var packErr error
	Walk(width, height, linear, func(x, y int) {
		if packErr != nil {
			return
		}
		channels := buf.Get(x, y)
		if hasAlpha && channels[len(channels)-1] == 0 {
			zero := make([]byte, len(channels))
			channels = zero
		}
		packed, e := Pack(usedFormat, channels)
		if e != nil {
			packErr = e
			return
		}
		payload = append(payload, packed...)
	})
	if packErr != nil {
		return nil, usedFormat, packErr
	}
	return payload, usedFormat, nil
}

// Decode unpacks a wire payload of the given format, layout, and extent
// into a new Matrix.
func Decode(format byte, linear bool, width, height int, payload []byte) (*Matrix, error) {
	if !Valid(format) {
		return nil, &errs.UnknownPixelFormat{Index: format}
	}
	bpp := BytesPerPixel(format)
	m := NewMatrix(width, height, Kind(format))

	pos := 0
	var decodeErr error
	Walk(width, height, linear, func(x, y int) {
		if decodeErr != nil {
			return
		}
		if pos+bpp > len(payload) {
			decodeErr = &errs.Truncated{Offset: pos, Need: bpp, Have: len(payload) - pos}
			return
		}
		channels, e := Unpack(format, payload[pos:pos+bpp])
		if e != nil {
			decodeErr = e
			return
		}
		pos += bpp
		m.Set(x, y, channels)
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return m, nil
}

func kindForChannels(channels int) ChannelKind {
	switch channels {
	case 4:
		return RGBA
	case 3:
		return RGB
	case 2:
		return GreyAlpha
	default:
		return Grey
	}
}
