package mocks

import (
	"os"

	"github.com/user/vkvideobench/pkg/ports"
)

// FileSystem is a mock implementation of ports.FileSystem backed by an
// in-memory map.
type FileSystem struct {
	Files map[string][]byte

	// Recorded calls for verification
	WriteFileCalls []string
}

// NewFileSystem creates an empty in-memory filesystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{Files: map[string][]byte{}}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	m.WriteFileCalls = append(m.WriteFileCalls, path)
	m.Files[path] = data
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	_, ok := m.Files[path]
	return ok, nil
}

func (m *FileSystem) FileSize(path string) (int64, error) {
	data, ok := m.Files[path]
	if !ok {
		return 0, os.ErrNotExist
	}
	return int64(len(data)), nil
}

func (m *FileSystem) Remove(path string) error {
	delete(m.Files, path)
	return nil
}

var _ ports.FileSystem = (*FileSystem)(nil)
