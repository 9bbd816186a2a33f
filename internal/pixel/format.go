// Package pixel implements the eleven SupercellSWF pixel formats (six
// distinct packings) and the
// linear / 32x32-block memory layouts used to frame a texture's payload.
//
// The format table below replaces what the source keeps as a string-keyed
// map of read/write closures with a closed enumeration and an exhaustive
// switch, per the redesign note against global dynamic dispatch on pixel
// format.
package pixel

import (
	"math"

	"github.com/scwmake/supercellswf/errs"
)

// ChannelKind is the channel layout a pixel format unpacks to in memory.
type ChannelKind int

const (
	RGBA ChannelKind = iota
	RGB
	GreyAlpha
	Grey
)

// Channels returns the number of 8-bit channels a kind unpacks to.
func (k ChannelKind) Channels() int {
	switch k {
	case RGBA:
		return 4
	case RGB:
		return 3
	case GreyAlpha:
		return 2
	case Grey:
		return 1
	default:
		return 0
	}
}

// HasAlpha reports whether the last channel of the kind is an alpha
// channel.
func (k ChannelKind) HasAlpha() bool {
	return k == RGBA || k == GreyAlpha
}

// packing identifies how a pixel's channels are packed into wire bytes.
// Several format indices share the same packing but stand for distinct
// OpenGL internal formats.
type packing int

const (
	packRGBA8 packing = iota
	packRGBA4
	packRGBA5551
	packRGB565
	packGreyAlpha8
	packGrey8
)

func (p packing) bytesPerPixel() int {
	switch p {
	case packRGBA8:
		return 4
	case packRGBA4, packRGBA5551, packRGB565, packGreyAlpha8:
		return 2
	case packGrey8:
		return 1
	default:
		return 0
	}
}

type formatInfo struct {
	kind    ChannelKind
	packing packing
}

var formatTable = map[byte]formatInfo{
	0:  {RGBA, packRGBA8},
	1:  {RGBA, packRGBA8},
	2:  {RGBA, packRGBA4},
	3:  {RGBA, packRGBA5551},
	4:  {RGB, packRGB565},
	5:  {RGBA, packRGBA8},
	6:  {GreyAlpha, packGreyAlpha8},
	7:  {RGBA, packRGBA8},
	8:  {RGBA, packRGBA8},
	9:  {RGBA, packRGBA4},
	10: {Grey, packGrey8},
}

// Valid reports whether index names a recognised pixel format.
func Valid(index byte) bool {
	_, ok := formatTable[index]
	return ok
}

// Kind returns the channel kind a format index unpacks to. index must be
// Valid.
func Kind(index byte) ChannelKind {
	return formatTable[index].kind
}

// BytesPerPixel returns the wire size of one pixel in the given format.
// index must be Valid.
func BytesPerPixel(index byte) int {
	return formatTable[index].packing.bytesPerPixel()
}

// DefaultFormat returns the canonical format index for a channel kind, used
// when a write-time pixel format disagrees with the image's channel count
// and must be auto-corrected. This mirrors a surprising behaviour of the
// source: it silently rewrites the format rather than failing.
func DefaultFormat(kind ChannelKind) byte {
	switch kind {
	case RGBA:
		return 0
	case RGB:
		return 4
	case GreyAlpha:
		return 6
	case Grey:
		return 10
	default:
		return 0
	}
}

func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func scaleDown(v byte, max int) int {
	return round(float64(v) * float64(max) / 255)
}

func scaleUp(v int, max int) byte {
	return byte(round(float64(v) * 255 / float64(max)))
}

// Pack encodes one pixel's 8-bit channels (length Kind(index).Channels())
// into the wire bytes for the given format index.
func Pack(index byte, channels []byte) ([]byte, error) {
	info, ok := formatTable[index]
	if !ok {
		return nil, &errs.UnknownPixelFormat{Index: index}
	}
	switch info.packing {
	case packRGBA8:
		return []byte{channels[0], channels[1], channels[2], channels[3]}, nil
	case packRGBA4:
		r := scaleDown(channels[0], 15)
		g := scaleDown(channels[1], 15)
		bch := scaleDown(channels[2], 15)
		a := scaleDown(channels[3], 15)
		v := uint16(r<<12 | g<<8 | bch<<4 | a)
		return []byte{byte(v), byte(v >> 8)}, nil
	case packRGBA5551:
		r := scaleDown(channels[0], 31)
		g := scaleDown(channels[1], 31)
		bch := scaleDown(channels[2], 31)
		a := scaleDown(channels[3], 1)
		v := uint16(r<<11 | g<<6 | bch<<1 | a)
		return []byte{byte(v), byte(v >> 8)}, nil
	case packRGB565:
		r := scaleDown(channels[0], 31)
		g := scaleDown(channels[1], 63)
		bch := scaleDown(channels[2], 31)
		v := uint16(r<<11 | g<<5 | bch)
		return []byte{byte(v), byte(v >> 8)}, nil
	case packGreyAlpha8:
		return []byte{channels[0], channels[1]}, nil
	case packGrey8:
		return []byte{channels[0]}, nil
	default:
		return nil, &errs.UnknownPixelFormat{Index: index}
	}
}

// Unpack decodes the wire bytes for one pixel of the given format index
// into 8-bit channels.
func Unpack(index byte, data []byte) ([]byte, error) {
	info, ok := formatTable[index]
	if !ok {
		return nil, &errs.UnknownPixelFormat{Index: index}
	}
	switch info.packing {
	case packRGBA8:
		return []byte{data[0], data[1], data[2], data[3]}, nil
	case packRGBA4:
		v := uint16(data[0]) | uint16(data[1])<<8
		return []byte{
			scaleUp(int(v>>12)&0xF, 15),
			scaleUp(int(v>>8)&0xF, 15),
			scaleUp(int(v>>4)&0xF, 15),
			scaleUp(int(v)&0xF, 15),
		}, nil
	case packRGBA5551:
		v := uint16(data[0]) | uint16(data[1])<<8
		return []byte{
			scaleUp(int(v>>11)&0x1F, 31),
			scaleUp(int(v>>6)&0x1F, 31),
			scaleUp(int(v>>1)&0x1F, 31),
			scaleUp(int(v)&0x1, 1),
		}, nil
	case packRGB565:
		v := uint16(data[0]) | uint16(data[1])<<8
		return []byte{
			scaleUp(int(v>>11)&0x1F, 31),
			scaleUp(int(v>>5)&0x3F, 63),
			scaleUp(int(v)&0x1F, 31),
		}, nil
	case packGreyAlpha8:
		return []byte{data[0], data[1]}, nil
	case packGrey8:
		return []byte{data[0]}, nil
	default:
		return nil, &errs.UnknownPixelFormat{Index: index}
	}
}
