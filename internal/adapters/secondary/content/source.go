// Package content loads slide content tables from the built-in deck or from
// YAML, TOML and Markdown files.
package content

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fredcamaral/deckgen/internal/domain/entities"
	"github.com/fredcamaral/deckgen/internal/domain/ports"
)

// ErrUnsupportedContent is returned for content files with an unknown extension
var ErrUnsupportedContent = errors.New("unsupported content format")

type decodeFunc func(data []byte) (*entities.DeckSpec, error)

// FileSource reads a content table from disk
type FileSource struct {
	path   string
	format string
	fs     ports.FileSystem
	decode decodeFunc
}

// FromFile returns a source for path, choosing the decoder by file extension
func FromFile(path string) (*FileSource, error) {
	return FromFileWithFS(path, ports.NewRealFileSystem())
}

// FromFileWithFS is FromFile with an injected file system
func FromFileWithFS(path string, fs ports.FileSystem) (*FileSource, error) {
	src := &FileSource{path: path, fs: fs}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		src.format, src.decode = "yaml", decodeYAML
	case ".toml":
		src.format, src.decode = "toml", decodeTOML
	case ".md", ".markdown":
		src.format, src.decode = "markdown", NewMarkdownDecoder().Decode
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContent, path)
	}

	return src, nil
}

// Resolve returns the built-in deck for an empty path and a FileSource otherwise
func Resolve(path string) (ports.ContentSource, error) {
	if path == "" {
		return Embedded(), nil
	}
	return FromFile(path)
}

// Load reads and decodes the file
func (s *FileSource) Load(ctx context.Context) (*entities.DeckSpec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", s.path, err)
	}

	spec, err := s.decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s content %s: %w", s.format, s.path, err)
	}

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content %s: %w", s.path, err)
	}

	return spec, nil
}

// Path returns the content file path
func (s *FileSource) Path() string {
	return s.path
}

// Format returns the decoder name (yaml, toml or markdown)
func (s *FileSource) Format() string {
	return s.format
}

// Ensure FileSource implements ports.ContentSource
var _ ports.ContentSource = (*FileSource)(nil)
