package main

import (
	"go.uber.org/zap"

	"github.com/hubastard/learngl/engine/assets"
	"github.com/hubastard/learngl/engine/config"
	"github.com/hubastard/learngl/engine/gfx/shader"
)

type program struct {
	pair config.ShaderPair
	prog *shader.Program // nil when the sources could not be read
	err  error
}

func (p program) usable() bool { return p.prog != nil && p.prog.Usable() }

func sourceFor(f config.File) shader.SourceProvider {
	if f.ShaderDir != "" {
		return assets.FileSource{Root: f.ShaderDir}
	}
	return assets.Builtin()
}

// buildPrograms builds every configured pair. Failures are kept in the
// result so the caller decides whether they are fatal.
func buildPrograms(dev shader.Device, src shader.SourceProvider, f config.File, log *zap.Logger) []program {
	opts := []shader.Option{shader.WithLogger(log)}
	if f.Strict {
		opts = append(opts, shader.WithStrict())
	}
	out := make([]program, 0, len(f.Shaders))
	for _, pair := range f.Shaders {
		p, err := shader.New(dev, src, pair.Vertex, pair.Fragment, opts...)
		out = append(out, program{pair: pair, prog: p, err: err})
	}
	return out
}
