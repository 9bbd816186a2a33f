package codec

import (
	"io"
	"os"
	"path/filepath"
)

// Store resolves a filename to an openable or creatable companion file.
// LoadFile and SaveFile use it to read and write external-texture files
// alongside the main one, without the core codec ever importing "os"
// directly.
type Store interface {
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
	Exists(name string) bool
}

// OSStore resolves names relative to Dir on the local filesystem.
type OSStore struct {
	Dir string
}

func (s OSStore) path(name string) string {
	if s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}

func (s OSStore) Open(name string) (io.ReadCloser, error) { return os.Open(s.path(name)) }

func (s OSStore) Create(name string) (io.WriteCloser, error) { return os.Create(s.path(name)) }

func (s OSStore) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}
