package shader

// Stage identifies a programmable pipeline stage.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Device is the subset of the graphics API a Program needs.
// Calls are synchronous and must happen on the thread owning the context.
//
// GetUniformLocation returns -1 for names the linked program does not expose;
// Uniform* calls at location -1 must be ignored.
type Device interface {
	CreateShader(stage Stage) uint32
	ShaderSource(sh uint32, src string)
	CompileShader(sh uint32)
	CompileStatus(sh uint32) bool
	ShaderInfoLog(sh uint32) string
	DeleteShader(sh uint32)

	CreateProgram() uint32
	AttachShader(prog, sh uint32)
	LinkProgram(prog uint32)
	LinkStatus(prog uint32) bool
	ProgramInfoLog(prog uint32) string
	DeleteProgram(prog uint32)
	UseProgram(prog uint32)

	GetUniformLocation(prog uint32, name string) int32
	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform4f(loc int32, x, y, z, w float32)
}

// SourceProvider resolves a shader source identifier to its text.
// A missing identifier should be reported with an error matching ErrNotFound.
type SourceProvider interface {
	ReadText(id string) (string, error)
}
