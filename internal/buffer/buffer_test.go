package buffer

import (
	"reflect"
	"testing"

	"github.com/scwmake/supercellswf/errs"
)

func TestScalarRoundTrip(t *testing.T) {
	w := New()
	w.WriteU8(0xAB)
	w.WriteI16(-1234)
	w.WriteU32(0xDEADBEEF)
	w.WriteF32(3.5)
	w.WriteASCII("hello")
	w.WriteASCII("")

	r := Wrap(w.Bytes())

	if v, err := r.ReadU8(); err != nil || v != 0xAB {
		t.Fatalf("ReadU8 = %d, %v", v, err)
	}
	if v, err := r.ReadI16(); err != nil || v != -1234 {
		t.Fatalf("ReadI16 = %d, %v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 0xDEADBEEF {
		t.Fatalf("ReadU32 = %d, %v", v, err)
	}
	if v, err := r.ReadF32(); err != nil || v != 3.5 {
		t.Fatalf("ReadF32 = %v, %v", v, err)
	}
	if s, err := r.ReadASCII(); err != nil || s != "hello" {
		t.Fatalf("ReadASCII = %q, %v", s, err)
	}
	if s, err := r.ReadASCII(); err != nil || s != "" {
		t.Fatalf("ReadASCII (empty) = %q, %v", s, err)
	}
}

func TestReadPastEndIsTruncated(t *testing.T) {
	r := Wrap([]byte{1, 2})
	if _, err := r.ReadU32(); err == nil {
		t.Fatal("expected an error")
	} else if _, ok := err.(*errs.Truncated); !ok {
		t.Fatalf("expected *errs.Truncated, got %T", err)
	}
}

func TestTagFraming(t *testing.T) {
	w := New()
	w.SaveTag(7, []byte("payload"))
	w.SaveTag(0, nil)

	r := Wrap(w.Bytes())
	id, length, err := r.ReadTagHeader()
	if err != nil || id != 7 || length != 7 {
		t.Fatalf("ReadTagHeader = %d, %d, %v", id, length, err)
	}
	payload, err := r.ReadBytes(int(length))
	if err != nil || string(payload) != "payload" {
		t.Fatalf("ReadBytes = %q, %v", payload, err)
	}

	id, length, err = r.ReadTagHeader()
	if err != nil || id != 0 || length != 0 {
		t.Fatalf("terminator ReadTagHeader = %d, %d, %v", id, length, err)
	}
}

func TestNegativeLength(t *testing.T) {
	w := New()
	w.WriteU8(5)
	w.WriteI32(-1)

	r := Wrap(w.Bytes())
	if _, _, err := r.ReadTagHeader(); err == nil {
		t.Fatal("expected an error")
	} else if nl, ok := err.(*errs.NegativeLength); !ok {
		t.Fatalf("expected *errs.NegativeLength, got %T", err)
	} else if nl.TagID != 5 || nl.Length != -1 {
		t.Fatalf("unexpected fields: %+v", nl)
	}
}

func TestFillAndSkip(t *testing.T) {
	w := New()
	w.Fill(5)
	w.WriteU8(9)

	if !reflect.DeepEqual(w.Bytes(), []byte{0, 0, 0, 0, 0, 9}) {
		t.Fatalf("unexpected bytes: %v", w.Bytes())
	}

	r := Wrap(w.Bytes())
	if err := r.Skip(5); err != nil {
		t.Fatalf("Skip: %v", err)
	}
	if v, err := r.ReadU8(); err != nil || v != 9 {
		t.Fatalf("ReadU8 after Skip = %d, %v", v, err)
	}
}
