package codec

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	swf "github.com/scwmake/supercellswf"
	"github.com/scwmake/supercellswf/errs"
	"github.com/scwmake/supercellswf/internal/buffer"
	"github.com/scwmake/supercellswf/progress"
)

// decodeBody runs the tag dispatch loop over buf, starting right after the
// header, until the terminator tag. It populates doc's textures, resources,
// transform banks, and flags in place. counts are the header-declared
// per-kind totals the loop enforces; exceeding one is fatal. doc.Textures
// must already be sized to the header's texture count and doc.Banks must
// already hold the primary bank.
//
// Unknown tag ids are tolerated (logged at debug and recorded as a
// warning); every other structural problem aborts the load.
func decodeBody(buf *buffer.Buffer, doc *swf.Document, counts decodeCounts, sink progress.Sink) (errs.Errors, error) {
	var warnings errs.Errors

	shapesSeen, movieClipsSeen, textFieldsSeen := 0, 0, 0
	textureIndex := 0
	withPixels := true

	modifierOpen := false
	modifierExpected, modifierSeen := 0, 0

	bank := doc.PrimaryBank()

	for {
		id, length, err := buf.ReadTagHeader()
		if err != nil {
			return warnings, err
		}
		payload, err := buf.ReadBytes(int(length))
		if err != nil {
			return warnings, err
		}

		switch {
		case id == tagEnd:
			return warnings, nil

		case id == tagLowresMarker:
			doc.UseLowresTexture = true

		case id == tagExternalTexture:
			doc.HasExternalTexture = true
			withPixels = false

		case id == tagUncommonMarker:
			doc.UseUncommonTexture = true

		case id == tagPostfix:
			pbuf := buffer.Wrap(payload)
			highres, err := pbuf.ReadASCII()
			if err != nil {
				return warnings, err
			}
			lowres, err := pbuf.ReadASCII()
			if err != nil {
				return warnings, err
			}
			if highres != "" && lowres != "" {
				doc.HighresPostfix = highres
				doc.LowresPostfix = lowres
			}

		case isTextureTag(id):
			if textureIndex >= len(doc.Textures) {
				return warnings, &errs.CountOverflow{Kind: errs.KindTexture, Declared: len(doc.Textures)}
			}
			tex, err := decodeTextureTag(id, payload, withPixels)
			if err != nil {
				return warnings, err
			}
			doc.Textures[textureIndex] = tex
			if len(doc.Textures) > 0 {
				sink.Report(progress.TextureLoad, progress.TexturePayload{
					Percent: 100 * float64(textureIndex+1) / float64(len(doc.Textures)),
					Index:   textureIndex,
				})
			}
			textureIndex++

		case isShapeTag(id):
			if shapesSeen >= counts.shapes {
				return warnings, &errs.CountOverflow{Kind: errs.KindShape, Declared: counts.shapes}
			}
			rid, err := peekResourceID(payload)
			if err != nil {
				return warnings, err
			}
			doc.Resources[rid] = swf.NewShape(rid, id, payload)
			shapesSeen++

		case isMovieClipTag(id):
			if movieClipsSeen >= counts.movieClips {
				return warnings, &errs.CountOverflow{Kind: errs.KindMovieClip, Declared: counts.movieClips}
			}
			rid, err := peekResourceID(payload)
			if err != nil {
				return warnings, err
			}
			doc.Resources[rid] = swf.NewMovieClip(rid, id, payload)
			movieClipsSeen++

		case isTextFieldTag(id):
			if textFieldsSeen >= counts.textFields {
				return warnings, &errs.CountOverflow{Kind: errs.KindTextField, Declared: counts.textFields}
			}
			rid, err := peekResourceID(payload)
			if err != nil {
				return warnings, err
			}
			doc.Resources[rid] = swf.NewTextField(rid, id, payload)
			textFieldsSeen++

		case isMatrixTag(id):
			mbuf := buffer.Wrap(payload)
			m, err := decodeMatrix(mbuf)
			if err != nil {
				return warnings, err
			}
			bank.Matrices = append(bank.Matrices, m)

		case id == tagColor:
			cbuf := buffer.Wrap(payload)
			c, err := decodeColor(cbuf)
			if err != nil {
				return warnings, err
			}
			bank.Colors = append(bank.Colors, c)

		case id == tagModifierBlockBegin:
			mbuf := buffer.Wrap(payload)
			count, err := mbuf.ReadU16()
			if err != nil {
				return warnings, err
			}
			modifierExpected = int(count)
			modifierSeen = 0
			modifierOpen = true

		case isModifierTag(id):
			if !modifierOpen || modifierSeen >= modifierExpected {
				return warnings, &errs.CountOverflow{Kind: errs.KindModifier, Declared: modifierExpected}
			}
			rid, err := peekResourceID(payload)
			if err != nil {
				return warnings, err
			}
			doc.Resources[rid] = swf.NewMovieClipModifier(rid, id, payload)
			modifierSeen++

		case id == tagBankBegin:
			nbuf := buffer.Wrap(payload)
			name, err := nbuf.ReadASCII()
			if err != nil {
				return warnings, err
			}
			newBank := &swf.TransformBank{Name: name}
			doc.Banks = append(doc.Banks, newBank)
			bank = newBank

		default:
			log.WithField("tag", id).Debug("skipping unknown tag")
			warnings = warnings.Append(errs.New(fmt.Sprintf("unknown tag %d skipped (%d bytes)", id, length)))
		}
	}
}

func decodeMatrix(buf *buffer.Buffer) (swf.Matrix2x3, error) {
	var m swf.Matrix2x3
	var err error
	if m.A, err = buf.ReadF32(); err != nil {
		return m, err
	}
	if m.B, err = buf.ReadF32(); err != nil {
		return m, err
	}
	if m.C, err = buf.ReadF32(); err != nil {
		return m, err
	}
	if m.D, err = buf.ReadF32(); err != nil {
		return m, err
	}
	if m.TX, err = buf.ReadF32(); err != nil {
		return m, err
	}
	if m.TY, err = buf.ReadF32(); err != nil {
		return m, err
	}
	return m, nil
}

func encodeMatrix(buf *buffer.Buffer, m swf.Matrix2x3) {
	buf.WriteF32(m.A)
	buf.WriteF32(m.B)
	buf.WriteF32(m.C)
	buf.WriteF32(m.D)
	buf.WriteF32(m.TX)
	buf.WriteF32(m.TY)
}

func decodeColor(buf *buffer.Buffer) (swf.ColorTransform, error) {
	var c swf.ColorTransform
	var err error
	if c.RedMul, err = buf.ReadU8(); err != nil {
		return c, err
	}
	if c.GreenMul, err = buf.ReadU8(); err != nil {
		return c, err
	}
	if c.BlueMul, err = buf.ReadU8(); err != nil {
		return c, err
	}
	if c.AlphaMul, err = buf.ReadU8(); err != nil {
		return c, err
	}
	if c.RedAdd, err = buf.ReadU8(); err != nil {
		return c, err
	}
	if c.GreenAdd, err = buf.ReadU8(); err != nil {
		return c, err
	}
	if c.BlueAdd, err = buf.ReadU8(); err != nil {
		return c, err
	}
	return c, nil
}

func encodeColor(buf *buffer.Buffer, c swf.ColorTransform) {
	buf.WriteU8(c.RedMul)
	buf.WriteU8(c.GreenMul)
	buf.WriteU8(c.BlueMul)
	buf.WriteU8(c.AlphaMul)
	buf.WriteU8(c.RedAdd)
	buf.WriteU8(c.GreenAdd)
	buf.WriteU8(c.BlueAdd)
}
