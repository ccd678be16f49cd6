// Package config loads the tutorial program settings from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/hubastard/learngl/engine/colors"
	"github.com/hubastard/learngl/engine/core"
	"github.com/hubastard/learngl/engine/logging"
)

// ShaderPair names a program and its vertex and fragment source ids.
type ShaderPair struct {
	Name     string `toml:"name"`
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
}

type Window struct {
	Title      string       `toml:"title"`
	Width      int          `toml:"width"`
	Height     int          `toml:"height"`
	VSync      bool         `toml:"vsync"`
	GLMajor    int          `toml:"gl_major"`
	GLMinor    int          `toml:"gl_minor"`
	Samples    int          `toml:"samples"`
	Wireframe  bool         `toml:"wireframe"`
	ClearColor colors.Color `toml:"clear_color"`
}

// File is the on-disk configuration.
type File struct {
	Window Window         `toml:"window"`
	Log    logging.Config `toml:"log"`

	// ShaderDir holds the sources; empty means the built-in shaders.
	ShaderDir string       `toml:"shader_dir"`
	Shaders   []ShaderPair `toml:"shaders"`
	Current   string       `toml:"current"`
	Texture   string       `toml:"texture"`
	Animate   bool         `toml:"animate"`
	Strict    bool         `toml:"strict"`
}

// Default is the stock tutorial setup: six programs drawing the textured quad.
func Default() File {
	return File{
		Window: Window{
			Title:      "OpenGL Test",
			Width:      800,
			Height:     600,
			VSync:      true,
			GLMajor:    3,
			GLMinor:    3,
			Samples:    4,
			ClearColor: colors.Teal,
		},
		Log: logging.Config{Level: "info"},
		Shaders: []ShaderPair{
			{Name: "shader1", Vertex: "shader1.vert", Fragment: "shader1.frag"},
			{Name: "rainbow", Vertex: "rainbow_v.vert", Fragment: "rainbow_v.frag"},
			{Name: "inverted", Vertex: "inverted_shader.vert", Fragment: "shader1.frag"},
			{Name: "xoffset", Vertex: "xoffset_shader.vert", Fragment: "shader1.frag"},
			{Name: "cvertices", Vertex: "cvertices.vert", Fragment: "rainbow_v.frag"},
			{Name: "texture", Vertex: "texture.vert", Fragment: "texture.frag"},
		},
		Current: "texture",
		Texture: "assets/grass.png",
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (File, error) {
	f := Default()
	// A configured [[shaders]] list replaces the defaults rather than extending them.
	f.Shaders = nil
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return File{}, fmt.Errorf("parse config at %d:%d: %w", row, col, err)
		}
		return File{}, fmt.Errorf("parse config: %w", err)
	}
	if len(f.Shaders) == 0 {
		f.Shaders = Default().Shaders
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) Validate() error {
	if f.Window.Width <= 0 || f.Window.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d", f.Window.Width, f.Window.Height)
	}
	if len(f.Shaders) == 0 {
		return errors.New("config: no shaders")
	}
	seen := make(map[string]bool, len(f.Shaders))
	for i, s := range f.Shaders {
		if s.Name == "" || s.Vertex == "" || s.Fragment == "" {
			return fmt.Errorf("config: shaders[%d]: name, vertex and fragment are required", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("config: duplicate shader %q", s.Name)
		}
		seen[s.Name] = true
	}
	if !seen[f.Current] {
		return fmt.Errorf("config: current shader %q is not defined", f.Current)
	}
	return nil
}

// Index returns the position of the named pair, or -1.
func (f File) Index(name string) int {
	for i, s := range f.Shaders {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Engine converts the window section to the engine run config.
func (f File) Engine() core.Config {
	return core.Config{
		Title:      f.Window.Title,
		Width:      f.Window.Width,
		Height:     f.Window.Height,
		VSync:      f.Window.VSync,
		ClearColor: f.Window.ClearColor,
		GLMajor:    f.Window.GLMajor,
		GLMinor:    f.Window.GLMinor,
		Samples:    f.Window.Samples,
		Wireframe:  f.Window.Wireframe,
		Texture:    f.Texture,
	}
}
