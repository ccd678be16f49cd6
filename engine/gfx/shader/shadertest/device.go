// Package shadertest provides an in-memory shader.Device.
//
// The fake compiler understands just enough GLSL to be useful in tests and
// headless checks: it rejects sources that are empty, contain an #error
// directive or have unbalanced braces, and it records the in/out/uniform
// declarations of each stage. The fake linker requires every fragment input
// to be produced by a vertex output of the same name.
package shadertest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/hubastard/learngl/engine/gfx/shader"
)

var declRe = regexp.MustCompile(`^\s*(?:layout\s*\([^)]*\)\s*)?(?:flat\s+|smooth\s+)?(in|out|uniform)\s+\w+\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)

type stageObj struct {
	stage    shader.Stage
	src      string
	compiled bool
	log      string
	deleted  bool
	ins      []string
	outs     []string
	uniforms []string
}

type programObj struct {
	attached []uint32
	linked   bool
	log      string
	deleted  bool
	uniforms []string
	values   map[int32]any
}

// Device implements shader.Device without a graphics context.
type Device struct {
	next     uint32
	stages   map[uint32]*stageObj
	programs map[uint32]*programObj
	active   uint32
	last     uint32
}

var _ shader.Device = (*Device)(nil)

func New() *Device {
	return &Device{
		stages:   map[uint32]*stageObj{},
		programs: map[uint32]*programObj{},
	}
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

func (d *Device) CreateShader(stage shader.Stage) uint32 {
	h := d.handle()
	d.stages[h] = &stageObj{stage: stage}
	return h
}

func (d *Device) ShaderSource(sh uint32, src string) {
	if s, ok := d.stages[sh]; ok {
		s.src = src
	}
}

func (d *Device) CompileShader(sh uint32) {
	s, ok := d.stages[sh]
	if !ok {
		return
	}
	s.ins, s.outs, s.uniforms = nil, nil, nil
	s.compiled, s.log = compile(s)
}

func compile(s *stageObj) (bool, string) {
	if strings.TrimSpace(s.src) == "" {
		return false, "0:1(1): error: empty shader source"
	}
	depth := 0
	for i, line := range strings.Split(s.src, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#error") {
			return false, fmt.Sprintf("0:%d(1): error: %s", i+1, trimmed)
		}
		if m := declRe.FindStringSubmatch(line); m != nil {
			switch m[1] {
			case "in":
				s.ins = append(s.ins, m[2])
			case "out":
				s.outs = append(s.outs, m[2])
			case "uniform":
				s.uniforms = append(s.uniforms, m[2])
			}
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			return false, fmt.Sprintf("0:%d(1): error: syntax error, unexpected '}'", i+1)
		}
	}
	if depth != 0 {
		return false, "0:1(1): error: syntax error, unexpected end of file"
	}
	return true, ""
}

func (d *Device) CompileStatus(sh uint32) bool {
	s, ok := d.stages[sh]
	return ok && s.compiled
}

func (d *Device) ShaderInfoLog(sh uint32) string {
	if s, ok := d.stages[sh]; ok {
		return s.log
	}
	return ""
}

func (d *Device) DeleteShader(sh uint32) {
	if s, ok := d.stages[sh]; ok {
		s.deleted = true
	}
}

func (d *Device) CreateProgram() uint32 {
	h := d.handle()
	d.programs[h] = &programObj{values: map[int32]any{}}
	d.last = h
	return h
}

func (d *Device) AttachShader(prog, sh uint32) {
	if p, ok := d.programs[prog]; ok {
		p.attached = append(p.attached, sh)
	}
}

func (d *Device) LinkProgram(prog uint32) {
	p, ok := d.programs[prog]
	if !ok {
		return
	}
	p.uniforms = nil
	p.values = map[int32]any{}
	p.linked, p.log = d.link(p)
}

func (d *Device) link(p *programObj) (bool, string) {
	var vs, fs *stageObj
	for _, h := range p.attached {
		s, ok := d.stages[h]
		if !ok {
			return false, fmt.Sprintf("error: invalid shader object %d attached", h)
		}
		if !s.compiled {
			return false, fmt.Sprintf("error: %s shader %d is not compiled", s.stage, h)
		}
		switch s.stage {
		case shader.StageVertex:
			vs = s
		case shader.StageFragment:
			fs = s
		}
	}
	if vs == nil || fs == nil {
		return false, "error: program requires a vertex and a fragment shader"
	}
	var missing []string
	for _, in := range fs.ins {
		if !slices.Contains(vs.outs, in) {
			missing = append(missing, fmt.Sprintf("error: fragment shader input `%s' has no matching vertex shader output", in))
		}
	}
	if len(missing) > 0 {
		return false, strings.Join(missing, "\n")
	}
	for _, u := range append(append([]string(nil), vs.uniforms...), fs.uniforms...) {
		if !slices.Contains(p.uniforms, u) {
			p.uniforms = append(p.uniforms, u)
		}
	}
	return true, ""
}

func (d *Device) LinkStatus(prog uint32) bool {
	p, ok := d.programs[prog]
	return ok && p.linked
}

func (d *Device) ProgramInfoLog(prog uint32) string {
	if p, ok := d.programs[prog]; ok {
		return p.log
	}
	return ""
}

func (d *Device) DeleteProgram(prog uint32) {
	if p, ok := d.programs[prog]; ok {
		p.deleted = true
	}
	if d.active == prog {
		d.active = 0
	}
}

func (d *Device) UseProgram(prog uint32) { d.active = prog }

func (d *Device) GetUniformLocation(prog uint32, name string) int32 {
	p, ok := d.programs[prog]
	if !ok || !p.linked {
		return -1
	}
	for i, u := range p.uniforms {
		if u == name {
			return int32(i)
		}
	}
	return -1
}

// set stores v at loc in the active program, as glUniform* does.
func (d *Device) set(loc int32, v any) {
	if loc < 0 {
		return
	}
	p, ok := d.programs[d.active]
	if !ok || !p.linked || p.deleted || int(loc) >= len(p.uniforms) {
		return
	}
	p.values[loc] = v
}

func (d *Device) Uniform1i(loc int32, v int32)            { d.set(loc, v) }
func (d *Device) Uniform1f(loc int32, v float32)          { d.set(loc, v) }
func (d *Device) Uniform4f(loc int32, x, y, z, w float32) { d.set(loc, [4]float32{x, y, z, w}) }

// Introspection

// Active returns the program last passed to UseProgram.
func (d *Device) Active() uint32 { return d.active }

// Uniform returns the value last stored in the named uniform of prog.
// Values are int32, float32 or [4]float32.
func (d *Device) Uniform(prog uint32, name string) (any, bool) {
	p, ok := d.programs[prog]
	if !ok {
		return nil, false
	}
	for i, u := range p.uniforms {
		if u == name {
			v, set := p.values[int32(i)]
			return v, set
		}
	}
	return nil, false
}

// LastProgram returns the handle of the most recently created program, or 0.
func (d *Device) LastProgram() uint32 { return d.last }

// Objects returns the number of shader and program objects ever created.
func (d *Device) Objects() int { return len(d.stages) + len(d.programs) }

// LiveShaders returns the number of stage objects not yet deleted.
func (d *Device) LiveShaders() int {
	n := 0
	for _, s := range d.stages {
		if !s.deleted {
			n++
		}
	}
	return n
}

// ProgramDeleted reports whether DeleteProgram was called for prog.
func (d *Device) ProgramDeleted(prog uint32) bool {
	p, ok := d.programs[prog]
	return ok && p.deleted
}
