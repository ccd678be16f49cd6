package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/hubastard/learngl/engine/gfx/shader"
)

//go:embed shaders
var builtin embed.FS

// FileSource reads shader sources from disk, relative to Root.
// Absolute identifiers are read as is.
type FileSource struct {
	Root string
}

func (s FileSource) ReadText(id string) (string, error) {
	p := id
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.Root, filepath.FromSlash(id))
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", loadErr(id, err)
	}
	return string(b), nil
}

// FSSource reads shader sources from a file system, typically embedded.
type FSSource struct {
	FS fs.FS
}

func (s FSSource) ReadText(id string) (string, error) {
	b, err := fs.ReadFile(s.FS, path.Clean(id))
	if err != nil {
		return "", loadErr(id, err)
	}
	return string(b), nil
}

// Builtin serves the tutorial shaders compiled into the binary.
func Builtin() FSSource {
	sub, err := fs.Sub(builtin, "shaders")
	if err != nil {
		panic(err)
	}
	return FSSource{FS: sub}
}

// InlineSource maps identifiers to literal shader text.
type InlineSource map[string]string

func (s InlineSource) ReadText(id string) (string, error) {
	text, ok := s[id]
	if !ok {
		return "", fmt.Errorf("load shader %q: %w", id, shader.ErrNotFound)
	}
	return text, nil
}

func loadErr(id string, err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
		return fmt.Errorf("load shader %q: %w: %w", id, shader.ErrNotFound, err)
	}
	return fmt.Errorf("load shader %q: %w", id, err)
}
