// Package codec implements the tag-stream reader/writer and the container
// orchestrator for a SupercellSWF document: header and trailer framing,
// tag dispatch, emit order, and external-texture file resolution. The data
// model it reads into and writes out of lives in the parent package.
package codec

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"

	swf "github.com/scwmake/supercellswf"
	"github.com/scwmake/supercellswf/errs"
	"github.com/scwmake/supercellswf/internal/buffer"
	"github.com/scwmake/supercellswf/internal/compress"
	"github.com/scwmake/supercellswf/internal/pixel"
	"github.com/scwmake/supercellswf/progress"
)

// Load decodes raw into a Document: strips any outer envelope, detects and
// reverses the compression method, reads the header, and dispatches the
// tag stream. raw must be a complete in-memory file image; there is no
// partial or streaming decode. When doc.HasExternalTexture ends up true,
// every texture's Pixels is nil until the caller resolves the companion
// file (see LoadFile).
func Load(raw []byte, sink progress.Sink) (*swf.Document, errs.Errors, error) {
	if sink == nil {
		sink = progress.NoOp{}
	}
	sink.Report(progress.Loading, nil)

	method, plain, outer, err := compress.Decompress(raw)
	if err != nil {
		return nil, nil, err
	}

	var warnings errs.Errors
	if outer != nil && !compress.VerifyOuterHash(outer, plain) {
		warnings = warnings.Append(errs.New("outer envelope metadata hash mismatch"))
		log.Warn("outer envelope metadata hash mismatch")
	}

	buf := buffer.Wrap(plain)
	h, exports, err := decodeHeader(buf)
	if err != nil {
		return nil, warnings, err
	}

	doc := swf.NewDocument()
	doc.Compression = method
	doc.Exports = exports
	doc.Textures = make([]*swf.Texture, h.textureCount)
	doc.Banks = []*swf.TransformBank{{}}

	counts := decodeCounts{shapes: h.shapeCount, movieClips: h.movieClipCount, textFields: h.textFieldCount}
	bodyWarnings, err := decodeBody(buf, doc, counts, sink)
	warnings = append(warnings, bodyWarnings...)
	if err != nil {
		return nil, warnings, err
	}

	sink.Report(progress.LoadingFinish, nil)
	log.WithField("textures", len(doc.Textures)).WithField("resources", len(doc.Resources)).
		Infof("loaded document (%d bytes decompressed)", len(plain))
	return doc, warnings, nil
}

// Save encodes doc into its compressed file image, in the fixed emit order
// the format requires: header, optional marker tags, textures, the
// modifier block, shapes, text fields, each transform bank's matrices and
// colors, movie clips, and the terminator tag. When doc.HasExternalTexture
// is set, texture tags in the returned bytes omit their pixel payload; the
// caller is responsible for writing the companion file (see SaveFile).
func Save(doc *swf.Document, sink progress.Sink) ([]byte, error) {
	if sink == nil {
		sink = progress.NoOp{}
	}
	sink.Report(progress.Saving, nil)

	buf := buffer.New()
	encodeHeader(buf, doc)
	emitOptionalTags(buf, doc)

	withPixels := !doc.HasExternalTexture
	sink.Report(progress.TextureSave, nil)
	for i, tex := range doc.Textures {
		id, payload, err := encodeTextureTag(tex, withPixels)
		if err != nil {
			return nil, err
		}
		buf.SaveTag(id, payload)
		if len(doc.Textures) > 0 {
			sink.Report(progress.TextureSave, progress.TexturePayload{
				Percent: 100 * float64(i+1) / float64(len(doc.Textures)),
				Index:   i,
			})
		}
	}

	if modifiers := modifiersInOrder(doc); len(modifiers) > 0 {
		countBuf := buffer.New()
		countBuf.WriteU16(uint16(len(modifiers)))
		buf.SaveTag(tagModifierBlockBegin, countBuf.Bytes())
		for _, m := range modifiers {
			buf.SaveTag(m.TagID(), m.Payload())
		}
	}

	sink.Report(progress.ResourcesSave, nil)
	for _, s := range shapesInOrder(doc) {
		buf.SaveTag(s.TagID(), s.Payload())
	}
	for _, tf := range textFieldsInOrder(doc) {
		buf.SaveTag(tf.TagID(), tf.Payload())
	}

	for i, bank := range doc.Banks {
		if i > 0 {
			nameBuf := buffer.New()
			nameBuf.WriteASCII(bank.Name)
			buf.SaveTag(tagBankBegin, nameBuf.Bytes())
		}
		for _, m := range bank.Matrices {
			mbuf := buffer.New()
			encodeMatrix(mbuf, m)
			buf.SaveTag(tagMatrix, mbuf.Bytes())
		}
		for _, c := range bank.Colors {
			cbuf := buffer.New()
			encodeColor(cbuf, c)
			buf.SaveTag(tagColor, cbuf.Bytes())
		}
	}

	for _, mc := range movieClipsInOrder(doc) {
		buf.SaveTag(mc.TagID(), mc.Payload())
	}

	buf.SaveTag(tagEnd, nil)
	sink.Report(progress.SavingFinish, nil)

	out, err := compress.Compress(doc.Compression, buf.Bytes())
	if err != nil {
		return nil, err
	}
	log.Infof("saved document (%d bytes decompressed, %d bytes written)", buf.Len(), len(out))
	return out, nil
}

func emitOptionalTags(buf *buffer.Buffer, doc *swf.Document) {
	if doc.UseUncommonTexture && (doc.HighresPostfix != swf.DefaultHighresPostfix || doc.LowresPostfix != swf.DefaultLowresPostfix) {
		pbuf := buffer.New()
		pbuf.WriteASCII(doc.HighresPostfix)
		pbuf.WriteASCII(doc.LowresPostfix)
		buf.SaveTag(tagPostfix, pbuf.Bytes())
	}
	if doc.UseLowresTexture {
		buf.SaveTag(tagLowresMarker, nil)
	}
	if doc.UseUncommonTexture {
		buf.SaveTag(tagUncommonMarker, nil)
	}
	if doc.HasExternalTexture {
		buf.SaveTag(tagExternalTexture, nil)
	}
}

// decodeExternalTextures reads a texture-only companion tag stream
// (already decompressed) and fills pixel data into doc.Textures in order.
// Non-texture tags are tolerated and skipped, mirroring the main
// dispatcher's forward-compatibility stance.
func decodeExternalTextures(plain []byte, doc *swf.Document) error {
	buf := buffer.Wrap(plain)
	index := 0
	for {
		id, length, err := buf.ReadTagHeader()
		if err != nil {
			return err
		}
		payload, err := buf.ReadBytes(int(length))
		if err != nil {
			return err
		}
		if id == tagEnd {
			return nil
		}
		if !isTextureTag(id) {
			continue
		}
		if index >= len(doc.Textures) {
			return &errs.CountOverflow{Kind: errs.KindTexture, Declared: len(doc.Textures)}
		}
		tex, err := decodeTextureTag(id, payload, true)
		if err != nil {
			return err
		}
		if doc.Textures[index] == nil {
			doc.Textures[index] = tex
		} else {
			doc.Textures[index].Pixels = tex.Pixels
			doc.Textures[index].PixelFormat = tex.PixelFormat
			doc.Textures[index].Width = tex.Width
			doc.Textures[index].Height = tex.Height
		}
		index++
	}
}

// encodeExternalTextures builds a texture-only tag stream for every
// texture in doc, scaled by factor (1.0 for the common/highres companion,
// 0.5 for the lowres one).
func encodeExternalTextures(doc *swf.Document, factor float64) ([]byte, error) {
	buf := buffer.New()
	for _, tex := range doc.Textures {
		t := tex
		if factor != 1 && tex.Pixels != nil {
			resized, ok := tex.Pixels.Resize(factor).(*pixel.Matrix)
			if !ok {
				return nil, errs.New("resize did not return a *pixel.Matrix")
			}
			scaled := *tex
			scaled.Pixels = resized
			scaled.Width = resized.Width
			scaled.Height = resized.Height
			t = &scaled
		}
		id, payload, err := encodeTextureTag(t, true)
		if err != nil {
			return nil, err
		}
		buf.SaveTag(id, payload)
	}
	buf.SaveTag(tagEnd, nil)
	return buf.Bytes(), nil
}

// resolveExternalTexturePath picks the companion texture file to load,
// preferring the highres file over the lowres one when use_uncommon_texture
// is set, per the precedence law in spec.
func resolveExternalTexturePath(store Store, mainPath string, doc *swf.Document) (string, error) {
	base := strings.TrimSuffix(mainPath, ".sc")
	var candidates []string
	if doc.UseUncommonTexture {
		candidates = []string{base + doc.HighresPostfix + "_tex.sc", base + doc.LowresPostfix + "_tex.sc"}
	} else {
		candidates = []string{base + "_tex.sc"}
	}
	for _, c := range candidates {
		if store.Exists(c) {
			return c, nil
		}
	}
	return "", &errs.MissingExternalTexture{Candidates: candidates}
}

// LoadFile loads the main file named name from store and, if it flags an
// external texture, resolves and merges in the companion file's pixel
// data.
func LoadFile(store Store, name string, sink progress.Sink) (*swf.Document, errs.Errors, error) {
	raw, err := readAll(store, name)
	if err != nil {
		return nil, nil, err
	}
	doc, warnings, err := Load(raw, sink)
	if err != nil {
		return nil, warnings, err
	}
	if !doc.HasExternalTexture {
		return doc, warnings, nil
	}

	texPath, err := resolveExternalTexturePath(store, name, doc)
	if err != nil {
		return doc, warnings, err
	}
	texRaw, err := readAll(store, texPath)
	if err != nil {
		return doc, warnings, err
	}
	_, texPlain, _, err := compress.Decompress(texRaw)
	if err != nil {
		return doc, warnings, err
	}
	if err := decodeExternalTextures(texPlain, doc); err != nil {
		return doc, warnings, err
	}
	return doc, warnings, nil
}

// SaveFile saves doc as the main file named name on store and, if doc
// flags an external texture, writes the companion file(s): a single
// `<base>_tex.sc`, or a highres/lowres pair (the lowres one downscaled by
// 0.5) when use_uncommon_texture is set.
func SaveFile(store Store, name string, doc *swf.Document, sink progress.Sink) error {
	mainBytes, err := Save(doc, sink)
	if err != nil {
		return err
	}
	if err := writeAll(store, name, mainBytes); err != nil {
		return err
	}
	if !doc.HasExternalTexture {
		return nil
	}

	base := strings.TrimSuffix(name, ".sc")
	if doc.UseUncommonTexture {
		highres, err := encodeExternalTextures(doc, 1.0)
		if err != nil {
			return err
		}
		highresOut, err := compress.Compress(doc.Compression, highres)
		if err != nil {
			return err
		}
		if err := writeAll(store, base+doc.HighresPostfix+"_tex.sc", highresOut); err != nil {
			return err
		}

		lowres, err := encodeExternalTextures(doc, 0.5)
		if err != nil {
			return err
		}
		lowresOut, err := compress.Compress(doc.Compression, lowres)
		if err != nil {
			return err
		}
		return writeAll(store, base+doc.LowresPostfix+"_tex.sc", lowresOut)
	}

	plain, err := encodeExternalTextures(doc, 1.0)
	if err != nil {
		return err
	}
	out, err := compress.Compress(doc.Compression, plain)
	if err != nil {
		return err
	}
	return writeAll(store, base+"_tex.sc", out)
}

func readAll(store Store, name string) ([]byte, error) {
	r, err := store.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func writeAll(store Store, name string, data []byte) error {
	w, err := store.Create(name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
