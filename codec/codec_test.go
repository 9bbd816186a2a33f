package codec

import (
	"bytes"
	"io"
	"os"
	"reflect"
	"testing"

	swf "github.com/scwmake/supercellswf"
	"github.com/scwmake/supercellswf/errs"
	"github.com/scwmake/supercellswf/internal/pixel"
	"github.com/scwmake/supercellswf/progress"
)

func newRGBA2x2(linear bool) *swf.Texture {
	m := pixel.NewMatrix(2, 2, pixel.RGBA)
	m.Set(0, 0, []byte{255, 0, 0, 255})
	m.Set(1, 0, []byte{0, 255, 0, 255})
	m.Set(0, 1, []byte{0, 0, 255, 255})
	m.Set(1, 1, []byte{10, 20, 30, 0}) // zero alpha: must read back all-zero
	return &swf.Texture{
		PixelFormat: 0,
		MagFilter:   swf.Linear,
		MinFilter:   swf.Nearest,
		Linear:      linear,
		Downscaling: true,
		Width:       2,
		Height:      2,
		Pixels:      m,
	}
}

func TestEmptyDocumentByteLayout(t *testing.T) {
	doc := swf.NewDocument()
	out, err := Save(doc, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := []byte{
		0, 0, // shape_count
		0, 0, // movie_clip_count
		0, 0, // texture_count
		0, 0, // text_field_count
		0, 0, // matrix_count
		0, 0, // color_count
		0, 0, 0, 0, 0, // reserved
		0, 0, // exports count
		0, 0, 0, 0, 0, // terminator tag
	}
	if !bytes.Equal(out, want) {
		t.Fatalf("empty document layout mismatch:\n got %v\nwant %v", out, want)
	}
}

func TestTextureTagByteLength(t *testing.T) {
	doc := swf.NewDocument()
	doc.Textures = []*swf.Texture{newRGBA2x2(true)}
	out, err := Save(doc, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	// header (19 bytes) + tag header (5 bytes) + payload (21 bytes) + terminator (5 bytes)
	const headerLen = 19
	tagID := out[headerLen]
	if tagID != 1 {
		t.Fatalf("expected tag id 1 for LINEAR/NEAREST/linear/downscaling, got %d", tagID)
	}
	payloadLen := int32(out[headerLen+1]) | int32(out[headerLen+2])<<8 | int32(out[headerLen+3])<<16 | int32(out[headerLen+4])<<24
	if payloadLen != 21 {
		t.Fatalf("expected payload length 21 (1+2+2+16), got %d", payloadLen)
	}
}

func TestLinearAndBlockProduceSamePayloadForSmallImage(t *testing.T) {
	docLinear := swf.NewDocument()
	docLinear.Textures = []*swf.Texture{newRGBA2x2(true)}
	linearOut, err := Save(docLinear, nil)
	if err != nil {
		t.Fatal(err)
	}

	docBlock := swf.NewDocument()
	docBlock.Textures = []*swf.Texture{newRGBA2x2(false)}
	blockOut, err := Save(docBlock, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Only the tag id differs (1 vs 28); the pixel payload is identical
	// because a 2x2 image has exactly one (truncated) 32x32 block.
	const headerLen = 19
	if !bytes.Equal(linearOut[headerLen+5:], blockOut[headerLen+5:]) {
		t.Fatalf("expected identical payload bytes for small linear/block images")
	}
}

// withZeroAlphaCleared returns copies of textures in which every pixel with
// a zero alpha channel has all its channels set to zero, which is how Save
// writes such pixels.
func withZeroAlphaCleared(textures []*swf.Texture) []*swf.Texture {
	out := make([]*swf.Texture, len(textures))
	for i, tex := range textures {
		c := *tex
		if tex.Pixels != nil {
			m := tex.Pixels.Clone().(*pixel.Matrix)
			if m.HasAlpha() {
				for y := 0; y < m.Height; y++ {
					for x := 0; x < m.Width; x++ {
						if px := m.Get(x, y); px[len(px)-1] == 0 {
							m.Set(x, y, make([]byte, len(px)))
						}
					}
				}
			}
			c.Pixels = m
		}
		out[i] = &c
	}
	return out
}

func roundTrip(t *testing.T, doc *swf.Document) *swf.Document {
	t.Helper()
	raw, err := Save(doc, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, warnings, err := Load(raw, nil)
	if err != nil {
		t.Fatalf("Load: %v (warnings: %v)", err, warnings)
	}
	return got
}

func TestRoundTripAcrossCompressionMethods(t *testing.T) {
	for _, method := range []swf.Compression{swf.NONE, swf.ZSTD, swf.LZMA} {
		method := method
		t.Run(method.String(), func(t *testing.T) {
			doc := swf.NewDocument()
			doc.Compression = method
			doc.Textures = []*swf.Texture{newRGBA2x2(true), newRGBA2x2(false)}
			doc.Resources[1] = swf.NewShape(1, 2, []byte{1, 0, 9, 9, 9})
			doc.Resources[2] = swf.NewMovieClip(2, 3, []byte{2, 0, 7, 7})
			doc.Exports[1] = []string{"hero"}
			bank := doc.PrimaryBank()
			bank.Matrices = append(bank.Matrices, swf.Matrix2x3{A: 1, D: 1})
			bank.Colors = append(bank.Colors, swf.ColorTransform{RedMul: 255, GreenMul: 255, BlueMul: 255, AlphaMul: 255})

			got := roundTrip(t, doc)
			if got.Compression != method {
				t.Fatalf("compression: got %v want %v", got.Compression, method)
			}
			wantTextures := withZeroAlphaCleared(doc.Textures)
			if !reflect.DeepEqual(wantTextures, got.Textures) {
				t.Fatalf("textures mismatch:\n got %+v\nwant %+v", got.Textures, wantTextures)
			}
			if !reflect.DeepEqual(doc.Resources, got.Resources) {
				t.Fatalf("resources mismatch:\n got %+v\nwant %+v", got.Resources, doc.Resources)
			}
			if !reflect.DeepEqual(doc.Exports, got.Exports) {
				t.Fatalf("exports mismatch:\n got %+v\nwant %+v", got.Exports, doc.Exports)
			}
			if !reflect.DeepEqual(doc.Banks, got.Banks) {
				t.Fatalf("banks mismatch:\n got %+v\nwant %+v", got.Banks, doc.Banks)
			}
		})
	}
}

func TestLZHAMFailsClosed(t *testing.T) {
	doc := swf.NewDocument()
	doc.Compression = swf.LZHAM
	if _, err := Save(doc, nil); err == nil {
		t.Fatal("expected Save to fail for LZHAM")
	} else if !errs.As(err, new(*errs.CompressionFailure)) {
		t.Fatalf("expected *errs.CompressionFailure, got %T: %v", err, err)
	}
}

func TestZeroAlphaWritesAllZeroChannels(t *testing.T) {
	doc := swf.NewDocument()
	doc.Textures = []*swf.Texture{newRGBA2x2(true)}
	got := roundTrip(t, doc)
	px := got.Textures[0].Pixels.Get(1, 1)
	for _, c := range px {
		if c != 0 {
			t.Fatalf("expected zero-alpha pixel to read back all-zero, got %v", px)
		}
	}
}

func TestShapeCountOverflow(t *testing.T) {
	buf := encodeMainWithHeaderOverride(t, 1, 0, 0, 0)
	buf = append(buf, tagBytes(2, []byte{1, 0})...)
	buf = append(buf, tagBytes(2, []byte{2, 0})...) // second shape: declared count is 1
	buf = append(buf, tagBytes(tagEnd, nil)...)

	_, _, err := Load(buf, nil)
	var overflow *errs.CountOverflow
	if !errs.As(err, &overflow) {
		t.Fatalf("expected *errs.CountOverflow, got %T: %v", err, err)
	}
	if overflow.Kind != errs.KindShape {
		t.Fatalf("expected shape overflow, got %v", overflow.Kind)
	}
}

func TestUnknownTagIsSkippedWithoutAffectingOtherContent(t *testing.T) {
	buf := encodeMainWithHeaderOverride(t, 1, 0, 0, 0)
	buf = append(buf, tagBytes(99, []byte{1, 2, 3, 4})...) // unrecognised id
	buf = append(buf, tagBytes(2, []byte{1, 0, 0xAA})...)
	buf = append(buf, tagBytes(tagEnd, nil)...)

	doc, warnings, err := Load(buf, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected exactly one warning for the unknown tag, got %d: %v", len(warnings), warnings)
	}
	shape, ok := doc.Resources[1].(*swf.Shape)
	if !ok {
		t.Fatalf("expected shape with id 1 to survive the unknown tag, got %+v", doc.Resources)
	}
	if !bytes.Equal(shape.Payload(), []byte{1, 0, 0xAA}) {
		t.Fatalf("shape payload corrupted: %v", shape.Payload())
	}
}

// encodeMainWithHeaderOverride builds a minimal header declaring the given
// counts, for hand-crafted tag-stream tests that don't go through Save.
func encodeMainWithHeaderOverride(t *testing.T, shapes, movieClips, textures, textFields int) []byte {
	t.Helper()
	var out []byte
	put16 := func(v int) {
		out = append(out, byte(v), byte(v>>8))
	}
	put16(shapes)
	put16(movieClips)
	put16(textures)
	put16(textFields)
	put16(0) // matrix count
	put16(0) // color count
	out = append(out, make([]byte, reservedHeaderBytes)...)
	put16(0) // export count
	return out
}

func tagBytes(id byte, payload []byte) []byte {
	out := []byte{id, byte(len(payload)), byte(len(payload) >> 8), byte(len(payload) >> 16), byte(len(payload) >> 24)}
	return append(out, payload...)
}

// memStore is an in-memory Store for exercising external-texture file
// resolution without touching the filesystem.
type memStore struct {
	files map[string][]byte
}

func newMemStore() *memStore { return &memStore{files: map[string][]byte{}} }

func (m *memStore) Open(name string) (io.ReadCloser, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStore) Exists(name string) bool {
	_, ok := m.files[name]
	return ok
}

type memWriter struct {
	store *memStore
	name  string
	buf   bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }
func (w *memWriter) Close() error {
	w.store.files[w.name] = w.buf.Bytes()
	return nil
}

func (m *memStore) Create(name string) (io.WriteCloser, error) {
	return &memWriter{store: m, name: name}, nil
}

func TestExternalTextureSplitWrite(t *testing.T) {
	store := newMemStore()
	doc := swf.NewDocument()
	doc.HasExternalTexture = true
	doc.Textures = []*swf.Texture{newRGBA2x2(true)}

	if err := SaveFile(store, "foo.sc", doc, nil); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if !store.Exists("foo_tex.sc") {
		t.Fatalf("expected companion file foo_tex.sc to be written")
	}

	got, _, err := LoadFile(store, "foo.sc", nil)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Textures[0].Pixels == nil {
		t.Fatal("expected pixel data merged back in from the companion file")
	}
	if !reflect.DeepEqual(got.Textures[0].Pixels, withZeroAlphaCleared(doc.Textures)[0].Pixels) {
		t.Fatalf("pixel mismatch after external round trip")
	}
}

func TestExternalTexturePrefersHighresOverLowres(t *testing.T) {
	store := newMemStore()
	doc := swf.NewDocument()
	doc.HasExternalTexture = true
	doc.UseUncommonTexture = true
	doc.Textures = []*swf.Texture{newRGBA2x2(true)}

	if err := SaveFile(store, "foo.sc", doc, nil); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if !store.Exists("foo_highres_tex.sc") || !store.Exists("foo_lowres_tex.sc") {
		t.Fatalf("expected both highres and lowres companions to be written")
	}

	got, _, err := LoadFile(store, "foo.sc", nil)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	// The highres file carries full-size pixels; a lowres-only load would
	// see a 1x1 image (round(2*0.5)).
	if got.Textures[0].Pixels.Width != 2 || got.Textures[0].Pixels.Height != 2 {
		t.Fatalf("expected highres (2x2) pixels, got %dx%d", got.Textures[0].Pixels.Width, got.Textures[0].Pixels.Height)
	}
}

func TestMissingExternalTextureFails(t *testing.T) {
	store := newMemStore()
	doc := swf.NewDocument()
	doc.HasExternalTexture = true
	doc.Textures = []*swf.Texture{newRGBA2x2(true)}
	if err := SaveFile(store, "foo.sc", doc, nil); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	delete(store.files, "foo_tex.sc")

	_, _, err := LoadFile(store, "foo.sc", nil)
	var missing *errs.MissingExternalTexture
	if !errs.As(err, &missing) {
		t.Fatalf("expected *errs.MissingExternalTexture, got %T: %v", err, err)
	}
}

func TestPostfixCustomizationRoundTrips(t *testing.T) {
	store := newMemStore()
	doc := swf.NewDocument()
	doc.HasExternalTexture = true
	doc.UseUncommonTexture = true
	doc.HighresPostfix = "_hd"
	doc.LowresPostfix = "_sd"
	doc.Textures = []*swf.Texture{newRGBA2x2(true)}

	if err := SaveFile(store, "foo.sc", doc, nil); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if !store.Exists("foo_hd_tex.sc") || !store.Exists("foo_sd_tex.sc") {
		t.Fatalf("expected custom-postfix companions, got %v", store.files)
	}

	got, _, err := LoadFile(store, "foo.sc", nil)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.HighresPostfix != "_hd" || got.LowresPostfix != "_sd" {
		t.Fatalf("postfixes not preserved: %q %q", got.HighresPostfix, got.LowresPostfix)
	}
}

func TestTwoTransformBanksEmitOrder(t *testing.T) {
	doc := swf.NewDocument()
	primary := doc.PrimaryBank()
	primary.Matrices = []swf.Matrix2x3{{A: 1, D: 1}, {A: 2, D: 2}, {A: 3, D: 3}}
	primary.Colors = []swf.ColorTransform{{RedMul: 255, GreenMul: 255, BlueMul: 255, AlphaMul: 255}}
	doc.Banks = append(doc.Banks, &swf.TransformBank{
		Name:     "secondary",
		Matrices: []swf.Matrix2x3{{A: 9, D: 9}},
	})

	got := roundTrip(t, doc)
	if len(got.Banks) != 2 {
		t.Fatalf("expected 2 banks, got %d", len(got.Banks))
	}
	if !reflect.DeepEqual(got.Banks[0], doc.Banks[0]) {
		t.Fatalf("primary bank mismatch: %+v vs %+v", got.Banks[0], doc.Banks[0])
	}
	if got.Banks[1].Name != "secondary" || !reflect.DeepEqual(got.Banks[1].Matrices, doc.Banks[1].Matrices) {
		t.Fatalf("secondary bank mismatch: %+v", got.Banks[1])
	}
}

func TestProgressSinkReceivesLoadAndSaveMilestones(t *testing.T) {
	var states []progress.State
	sink := sinkFunc(func(s progress.State, _ any) { states = append(states, s) })

	doc := swf.NewDocument()
	doc.Textures = []*swf.Texture{newRGBA2x2(true)}
	raw, err := Save(doc, sink)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(raw, sink); err != nil {
		t.Fatal(err)
	}

	want := map[progress.State]bool{
		progress.Saving: true, progress.SavingFinish: true,
		progress.Loading: true, progress.LoadingFinish: true,
	}
	for state := range want {
		found := false
		for _, s := range states {
			if s == state {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected state %v to be reported, got %v", state, states)
		}
	}
}

type sinkFunc func(progress.State, any)

func (f sinkFunc) Report(s progress.State, payload any) { f(s, payload) }
