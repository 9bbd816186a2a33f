package compress

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// lzmaHeaderSize is the 9-byte header this package writes around a classic
// LZMA1 stream embedded in a .sc payload: 1 properties byte, a 4-byte
// little-endian dictionary size, and a 4-byte little-endian uncompressed
// size.
const lzmaHeaderSize = 9

// classicHeaderSize is the 13-byte header github.com/ulikunitz/xz/lzma's
// Reader and Writer read and write for the standalone .lzma file format:
// the same properties-and-dictionary-size prefix as lzmaHeaderSize,
// followed by an 8-byte little-endian uncompressed size instead of a
// 4-byte one. This package pads to that header going in and trims it going
// out, rather than bypassing it, since ReaderConfig/WriterConfig parse and
// emit it directly and expose no raw, header-less stream mode.
const classicHeaderSize = 13

const defaultDictCap = 1 << 20 // 1 MiB, ample for sprite-sheet sized payloads

func lzmaDecompress(data []byte) ([]byte, error) {
	if len(data) < lzmaHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	dictCap := int(binary.LittleEndian.Uint32(data[1:5]))
	uncompressedSize := binary.LittleEndian.Uint32(data[5:9])

	classic := make([]byte, classicHeaderSize)
	copy(classic[:5], data[:5])
	binary.LittleEndian.PutUint64(classic[5:13], uint64(uncompressedSize))

	cfg := lzma.ReaderConfig{DictCap: dictCap}
	r, err := cfg.NewReader(io.MultiReader(bytes.NewReader(classic), bytes.NewReader(data[lzmaHeaderSize:])))
	if err != nil {
		return nil, err
	}
	out := make([]byte, uncompressedSize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}

func lzmaCompress(plain []byte) ([]byte, error) {
	props, err := lzma.PropertiesForCode(lzmaPropsByte)
	if err != nil {
		return nil, err
	}

	var classic bytes.Buffer
	cfg := lzma.WriterConfig{
		Properties: &props,
		DictCap:    defaultDictCap,
		Size:       int64(len(plain)),
	}
	w, err := cfg.NewWriter(&classic)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(plain); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	body := classic.Bytes()
	if len(body) < classicHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}

	out := make([]byte, lzmaHeaderSize, lzmaHeaderSize+len(body)-classicHeaderSize)
	copy(out[:5], body[:5])
	binary.LittleEndian.PutUint32(out[5:9], uint32(len(plain)))
	return append(out, body[classicHeaderSize:]...), nil
}
