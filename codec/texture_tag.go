package codec

import (
	swf "github.com/scwmake/supercellswf"
	"github.com/scwmake/supercellswf/internal/buffer"
	"github.com/scwmake/supercellswf/internal/pixel"
)

// decodeTextureTag parses one texture tag's payload: a pixel-format index,
// width, height, and, unless withPixels is false (the document flags the
// texture as externally stored and this file doesn't carry pixel data),
// the packed pixel payload.
func decodeTextureTag(id byte, payload []byte, withPixels bool) (*swf.Texture, error) {
	buf := buffer.Wrap(payload)

	format, err := buf.ReadU8()
	if err != nil {
		return nil, err
	}
	width, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}
	height, err := buf.ReadU16()
	if err != nil {
		return nil, err
	}

	tex := &swf.Texture{PixelFormat: format, Width: int(width), Height: int(height)}
	tex.ApplyTagID(id)

	if withPixels {
		rest, err := buf.ReadBytes(buf.Remaining())
		if err != nil {
			return nil, err
		}
		matrix, err := pixel.Decode(format, tex.Linear, int(width), int(height), rest)
		if err != nil {
			return nil, err
		}
		tex.Pixels = matrix
	}
	return tex, nil
}

// encodeTextureTag frames a texture tag: id, then the payload described in
// decodeTextureTag. withPixels omits the payload (for the main file when the
// document carries an external texture) and, when false, leaves the pixel
// format on the wire unchanged from tex.PixelFormat since there is no
// pixel buffer to auto-correct against.
func encodeTextureTag(tex *swf.Texture, withPixels bool) (id byte, payload []byte, err error) {
	buf := buffer.New()
	format := tex.PixelFormat

	if withPixels && tex.Pixels != nil {
		encoded, usedFormat, encErr := pixel.Encode(tex.PixelFormat, tex.Linear, tex.Width, tex.Height, tex.Pixels)
		if encErr != nil {
			return 0, nil, encErr
		}
		format = usedFormat
		buf.WriteU8(format)
		buf.WriteU16(uint16(tex.Width))
		buf.WriteU16(uint16(tex.Height))
		buf.WriteBytes(encoded)
	} else {
		buf.WriteU8(format)
		buf.WriteU16(uint16(tex.Width))
		buf.WriteU16(uint16(tex.Height))
	}

	return tex.TagID(), buf.Bytes(), nil
}
