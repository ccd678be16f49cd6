// Package shader builds GPU shader programs from vertex and fragment
// sources and pushes uniform values into them.
package shader

import (
	"errors"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Program is a linked vertex+fragment program on a Device.
type Program struct {
	dev    Device
	id     uint32
	usable bool
	err    error
	log    *zap.Logger
}

type options struct {
	log    *zap.Logger
	strict bool
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger that receives build diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithStrict makes New delete the program and return nil when a stage fails
// to compile or the program fails to link.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

// New reads the two sources, compiles both stages and links them.
//
// A source that cannot be read aborts before any device object is created.
// Compile and link failures are logged with the full device log; by default
// the program is still returned, flagged unusable, together with an error
// that matches ErrUnusable and wraps every *CompileError / *LinkError.
func New(dev Device, src SourceProvider, vertexID, fragmentID string, opts ...Option) (*Program, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	vsText, err := readStage(src, StageVertex, vertexID)
	if err != nil {
		o.log.Error("read shader source", zap.Stringer("stage", StageVertex), zap.String("source", vertexID), zap.Error(err))
		return nil, err
	}
	fsText, err := readStage(src, StageFragment, fragmentID)
	if err != nil {
		o.log.Error("read shader source", zap.Stringer("stage", StageFragment), zap.String("source", fragmentID), zap.Error(err))
		return nil, err
	}

	var errs []error
	vs, verr := compileStage(dev, StageVertex, vsText)
	if verr != nil {
		o.log.Error("shader compilation failed", zap.Stringer("stage", StageVertex), zap.String("source", vertexID), zap.String("log", verr.Log))
		errs = append(errs, verr)
	}
	fs, ferr := compileStage(dev, StageFragment, fsText)
	if ferr != nil {
		o.log.Error("shader compilation failed", zap.Stringer("stage", StageFragment), zap.String("source", fragmentID), zap.String("log", ferr.Log))
		errs = append(errs, ferr)
	}

	id := dev.CreateProgram()
	dev.AttachShader(id, vs)
	dev.AttachShader(id, fs)
	dev.LinkProgram(id)
	if !dev.LinkStatus(id) {
		lerr := &LinkError{Log: trimLog(dev.ProgramInfoLog(id))}
		o.log.Error("program linking failed", zap.Uint32("program", id), zap.String("vertex", vertexID), zap.String("fragment", fragmentID), zap.String("log", lerr.Log))
		errs = append(errs, lerr)
	}

	// Stages are flagged for deletion; the driver frees them once detached.
	dev.DeleteShader(vs)
	dev.DeleteShader(fs)

	p := &Program{dev: dev, id: id, log: o.log}
	if len(errs) == 0 {
		p.usable = true
		o.log.Info("shader program built", zap.Uint32("program", id), zap.String("vertex", vertexID), zap.String("fragment", fragmentID))
		return p, nil
	}

	p.err = errors.Join(append([]error{ErrUnusable}, errs...)...)
	if o.strict {
		dev.DeleteProgram(id)
		return nil, p.err
	}
	return p, p.err
}

func readStage(src SourceProvider, stage Stage, id string) (string, error) {
	text, err := src.ReadText(id)
	if err != nil {
		return "", &SourceUnavailableError{Stage: stage, ID: id, Err: err}
	}
	return text, nil
}

func compileStage(dev Device, stage Stage, text string) (uint32, *CompileError) {
	sh := dev.CreateShader(stage)
	dev.ShaderSource(sh, text)
	dev.CompileShader(sh)
	if !dev.CompileStatus(sh) {
		return sh, &CompileError{Stage: stage, Log: trimLog(dev.ShaderInfoLog(sh))}
	}
	return sh, nil
}

// trimLog drops the NUL terminator some drivers leave in the log buffer.
func trimLog(s string) string {
	return strings.TrimRight(s, "\x00")
}

// ID returns the device handle. It is 0 after Delete.
func (p *Program) ID() uint32 { return p.id }

// Usable reports whether both stages compiled and the program linked.
func (p *Program) Usable() bool { return p.usable }

// Err returns the build diagnostics, or nil for a usable program.
func (p *Program) Err() error { return p.err }

// Use makes p the active program for subsequent draws.
func (p *Program) Use() { p.dev.UseProgram(p.id) }

// Delete releases the program handle. p must not be used afterwards.
func (p *Program) Delete() {
	if p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
	p.usable = false
}

// Uniform setters resolve the location by name on every call and submit to
// the active program. Names the program does not expose are ignored.

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.dev.Uniform1i(p.location(name), i)
}

func (p *Program) SetInt(name string, v int32) {
	p.dev.Uniform1i(p.location(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	p.dev.Uniform1f(p.location(name), v)
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	p.dev.Uniform4f(p.location(name), v[0], v[1], v[2], v[3])
}

func (p *Program) SetVec4f(name string, x, y, z, w float32) {
	p.dev.Uniform4f(p.location(name), x, y, z, w)
}

func (p *Program) location(name string) int32 {
	loc := p.dev.GetUniformLocation(p.id, name)
	if loc < 0 {
		p.log.Debug("uniform not found", zap.Uint32("program", p.id), zap.String("name", name))
	}
	return loc
}
