package ports

import (
	"io"
	"os"
)

// FileSystem abstracts the file operations the builder performs so tests can
// inject write failures
type FileSystem interface {
	// CreateTemp creates a new file in dir, creating dir as needed
	CreateTemp(dir, pattern string) (File, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
	MkdirAll(path string, perm os.FileMode) error
	ReadFile(filename string) ([]byte, error)
}

// File is the writable handle returned by FileSystem.CreateTemp
type File interface {
	io.Writer
	io.Closer
	Name() string
}

// RealFileSystem implements FileSystem using actual OS operations
type RealFileSystem struct{}

// NewRealFileSystem creates a new real file system implementation
func NewRealFileSystem() FileSystem {
	return &RealFileSystem{}
}

// CreateTemp creates a uniquely named file in dir. The file gets the mode a
// regular output file would have, since it is renamed into place.
func (fs *RealFileSystem) CreateTemp(dir, pattern string) (File, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, err
	}
	// #nosec G302 - generated decks are meant to be shared
	if err := f.Chmod(0644); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, err
	}
	return f, nil
}

// Rename moves oldpath to newpath, replacing newpath if it exists
func (fs *RealFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Remove removes a file
func (fs *RealFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// MkdirAll creates a directory and all parent directories
func (fs *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// ReadFile reads the entire file content
func (fs *RealFileSystem) ReadFile(filename string) ([]byte, error) {
	// #nosec G304 - content paths come from the user's own flags and config
	return os.ReadFile(filename)
}
