package compress

import "github.com/klauspost/compress/zstd"

func zstdDecompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

func zstdCompress(plain []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	out := enc.EncodeAll(plain, nil)
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return out, nil
}
