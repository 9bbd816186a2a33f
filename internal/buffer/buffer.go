// Package buffer implements the cursor-based byte buffer shared by every
// tag record: a growable byte vector with a read position and a write
// position pinned to the vector's tail, little-endian scalar access,
// length-prefixed ASCII strings, and tag framing.
//
// The split-cursor shape here (one vector, read position tracked separately
// from the append point) doesn't match a stream-oriented reader/writer pair,
// so this buffer rolls its own little-endian encoding with the standard
// library's encoding/binary over the in-memory slice, the same way the
// teacher package hand-rolls readNumber/writeNumber over an in-memory []byte.
package buffer

import (
	"encoding/binary"
	"math"

	"github.com/scwmake/supercellswf/errs"
)

// absentLength is the ASCII length-prefix byte that marks an absent or
// empty string.
const absentLength = 0xFF

// Buffer is a cursor over a growable byte vector.
type Buffer struct {
	data []byte
	pos  int
}

// New returns an empty Buffer ready for writing.
func New() *Buffer {
	return &Buffer{}
}

// Wrap returns a Buffer over data, positioned at the start, ready for
// reading.
func Wrap(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns the full backing vector.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the number of bytes in the backing vector.
func (b *Buffer) Len() int { return len(b.data) }

// Pos returns the current read position.
func (b *Buffer) Pos() int { return b.pos }

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int { return len(b.data) - b.pos }

func (b *Buffer) need(n int) error {
	if b.pos+n > len(b.data) {
		return &errs.Truncated{Offset: b.pos, Need: n, Have: len(b.data) - b.pos}
	}
	return nil
}

// ReadBytes reads and returns the next n bytes, advancing the read cursor.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if err := b.need(n); err != nil {
		return nil, err
	}
	out := b.data[b.pos : b.pos+n]
	b.pos += n
	return out, nil
}

// Skip advances the read cursor by n bytes without returning them.
func (b *Buffer) Skip(n int) error {
	_, err := b.ReadBytes(n)
	return err
}

// WriteBytes appends p to the buffer.
func (b *Buffer) WriteBytes(p []byte) {
	b.data = append(b.data, p...)
}

// Fill appends n zero bytes to the buffer.
func (b *Buffer) Fill(n int) {
	b.data = append(b.data, make([]byte, n)...)
}

func (b *Buffer) ReadU8() (uint8, error) {
	v, err := b.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func (b *Buffer) ReadI8() (int8, error) {
	v, err := b.ReadU8()
	return int8(v), err
}

func (b *Buffer) WriteU8(v uint8) { b.WriteBytes([]byte{v}) }
func (b *Buffer) WriteI8(v int8)  { b.WriteU8(uint8(v)) }

func (b *Buffer) ReadU16() (uint16, error) {
	v, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(v), nil
}

func (b *Buffer) ReadI16() (int16, error) {
	v, err := b.ReadU16()
	return int16(v), err
}

func (b *Buffer) WriteU16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	b.WriteBytes(buf[:])
}

func (b *Buffer) WriteI16(v int16) { b.WriteU16(uint16(v)) }

func (b *Buffer) ReadU32() (uint32, error) {
	v, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(v), nil
}

func (b *Buffer) ReadI32() (int32, error) {
	v, err := b.ReadU32()
	return int32(v), err
}

func (b *Buffer) WriteU32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	b.WriteBytes(buf[:])
}

func (b *Buffer) WriteI32(v int32) { b.WriteU32(uint32(v)) }

func (b *Buffer) ReadU64() (uint64, error) {
	v, err := b.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(v), nil
}

func (b *Buffer) WriteU64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	b.WriteBytes(buf[:])
}

func (b *Buffer) ReadF32() (float32, error) {
	v, err := b.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (b *Buffer) WriteF32(v float32) {
	b.WriteU32(math.Float32bits(v))
}

// ReadASCII reads a 1-byte length prefix N followed by N bytes. N == 0xFF
// denotes the empty/absent string.
func (b *Buffer) ReadASCII() (string, error) {
	n, err := b.ReadU8()
	if err != nil {
		return "", err
	}
	if n == absentLength {
		return "", nil
	}
	s, err := b.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(s), nil
}

// WriteASCII emits a 1-byte length prefix followed by s. An empty string is
// emitted as the 0xFF absent marker.
func (b *Buffer) WriteASCII(s string) {
	if s == "" {
		b.WriteU8(absentLength)
		return
	}
	b.WriteU8(uint8(len(s)))
	b.WriteBytes([]byte(s))
}

// SaveTag emits a tag header (id, payload length) followed by payload.
func (b *Buffer) SaveTag(id byte, payload []byte) {
	b.WriteU8(id)
	b.WriteI32(int32(len(payload)))
	b.WriteBytes(payload)
}

// ReadTagHeader reads a tag header: a 1-byte id and a 4-byte signed
// little-endian payload length.
func (b *Buffer) ReadTagHeader() (id byte, length int32, err error) {
	id, err = b.ReadU8()
	if err != nil {
		return 0, 0, err
	}
	length, err = b.ReadI32()
	if err != nil {
		return 0, 0, err
	}
	if length < 0 {
		return id, length, &errs.NegativeLength{TagID: id, Length: length}
	}
	return id, length, nil
}
