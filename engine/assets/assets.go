// Package assets holds the files the GL backend ships with and reads the
// ones users bring: fonts from disk and PNG dumps for debugging.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed shaders
var shaders embed.FS

// Shader returns the embedded GLSL source as a null-terminated string for
// OpenGL.
func Shader(name string) (string, error) {
	b, err := shaders.ReadFile("shaders/" + name)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	// Ensure null termination for gl.Str
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}

// FontDir is searched for fonts given by bare name.
const FontDir = "assets/fonts"

// ReadFont returns the bytes of a TrueType/OpenType file. A path that does
// not exist as given is retried under FontDir.
func ReadFont(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !filepath.IsAbs(path) {
		b, err = os.ReadFile(filepath.Join(FontDir, path))
	}
	if err != nil {
		return nil, fmt.Errorf("read font %q: %w", path, err)
	}
	return b, nil
}

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png %q: %w", path, err)
	}
	return f.Close()
}
