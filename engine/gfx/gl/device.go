package glbackend

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/learngl/engine/gfx/shader"
)

// Device implements shader.Device on the current OpenGL context.
type Device struct{}

var _ shader.Device = Device{}

func (Device) CreateShader(stage shader.Stage) uint32 {
	switch stage {
	case shader.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		return gl.CreateShader(gl.VERTEX_SHADER)
	}
}

func (Device) ShaderSource(sh uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
}

func (Device) CompileShader(sh uint32) { gl.CompileShader(sh) }

func (Device) CompileStatus(sh uint32) bool {
	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ShaderInfoLog(sh uint32) string {
	var logLen int32
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Device) DeleteShader(sh uint32) { gl.DeleteShader(sh) }

func (Device) CreateProgram() uint32 { return gl.CreateProgram() }

func (Device) AttachShader(prog, sh uint32) { gl.AttachShader(prog, sh) }

func (Device) LinkProgram(prog uint32) { gl.LinkProgram(prog) }

func (Device) LinkStatus(prog uint32) bool {
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (Device) ProgramInfoLog(prog uint32) string {
	var logLen int32
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
	if logLen <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (Device) DeleteProgram(prog uint32) { gl.DeleteProgram(prog) }

func (Device) UseProgram(prog uint32) { gl.UseProgram(prog) }

func (Device) GetUniformLocation(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func (Device) Uniform1i(loc int32, v int32)            { gl.Uniform1i(loc, v) }
func (Device) Uniform1f(loc int32, v float32)          { gl.Uniform1f(loc, v) }
func (Device) Uniform4f(loc int32, x, y, z, w float32) { gl.Uniform4f(loc, x, y, z, w) }
