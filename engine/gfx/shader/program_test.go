package shader_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/hubastard/learngl/engine/assets"
	"github.com/hubastard/learngl/engine/gfx/shader"
	"github.com/hubastard/learngl/engine/gfx/shader/shadertest"
)

const quadVert = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColour;
out vec3 vertexColour;
uniform float xOffset;
void main() {
    gl_Position = vec4(aPos.x + xOffset, aPos.y, aPos.z, 1.0);
    vertexColour = aColour;
}
`

const quadFrag = `#version 330 core
in vec3 vertexColour;
out vec4 FragColor;
uniform vec4 tint;
uniform bool useTint;
uniform int mode;
void main() {
    FragColor = useTint ? tint : vec4(vertexColour, 1.0);
}
`

const brokenVert = `#version 330 core
layout (location = 0) in vec3 aPos;
void main() {
    gl_Position = vec4(aPos, 1.0);
`

const orphanFrag = `#version 330 core
in vec2 texCoord;
out vec4 FragColor;
void main() {
    FragColor = vec4(texCoord, 0.0, 1.0);
}
`

func sources() assets.InlineSource {
	return assets.InlineSource{
		"quad.vert":   quadVert,
		"quad.frag":   quadFrag,
		"broken.vert": brokenVert,
		"broken.frag": "#version 330 core\n#error missing main\n",
		"orphan.frag": orphanFrag,
	}
}

func TestNewBuildsUsableProgram(t *testing.T) {
	dev := shadertest.New()
	p, err := shader.New(dev, sources(), "quad.vert", "quad.frag")
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.True(t, p.Usable())
	assert.NoError(t, p.Err())
	assert.NotZero(t, p.ID())
	assert.Zero(t, dev.LiveShaders(), "stage objects must be released after linking")

	p.Use()
	assert.Equal(t, p.ID(), dev.Active())
	p.SetBool("useTint", true)
	p.SetInt("mode", 2)
	p.SetFloat("xOffset", 0.2)
	p.SetVec4("tint", mgl32.Vec4{0, 0.5, 1, 1})

	v, ok := dev.Uniform(p.ID(), "useTint")
	require.True(t, ok)
	assert.Equal(t, int32(1), v)
	v, _ = dev.Uniform(p.ID(), "mode")
	assert.Equal(t, int32(2), v)
	v, _ = dev.Uniform(p.ID(), "tint")
	assert.Equal(t, [4]float32{0, 0.5, 1, 1}, v)

	p.SetBool("useTint", false)
	v, _ = dev.Uniform(p.ID(), "useTint")
	assert.Equal(t, int32(0), v)
}

func TestSetFloatRoundTrip(t *testing.T) {
	dev := shadertest.New()
	p, err := shader.New(dev, sources(), "quad.vert", "quad.frag")
	require.NoError(t, err)

	p.Use()
	p.SetFloat("xOffset", 3.5)
	v, ok := dev.Uniform(p.ID(), "xOffset")
	require.True(t, ok)
	assert.Equal(t, float32(3.5), v)
}

func TestUseIsIdempotent(t *testing.T) {
	dev := shadertest.New()
	p, err := shader.New(dev, sources(), "quad.vert", "quad.frag")
	require.NoError(t, err)

	p.Use()
	p.Use()
	assert.Equal(t, p.ID(), dev.Active())
	p.SetVec4f("tint", 1, 2, 3, 4)
	v, _ := dev.Uniform(p.ID(), "tint")
	assert.Equal(t, [4]float32{1, 2, 3, 4}, v)
}

func TestUnknownUniformIsIgnored(t *testing.T) {
	dev := shadertest.New()
	p, err := shader.New(dev, sources(), "quad.vert", "quad.frag")
	require.NoError(t, err)

	p.Use()
	p.SetFloat("xOffset", 1.25)
	p.SetFloat("doesNotExist", 9)
	p.SetInt("alsoMissing", 9)
	p.SetBool("nope", true)
	p.SetVec4("nothing", mgl32.Vec4{9, 9, 9, 9})

	v, _ := dev.Uniform(p.ID(), "xOffset")
	assert.Equal(t, float32(1.25), v)
	_, ok := dev.Uniform(p.ID(), "mode")
	assert.False(t, ok, "untouched uniform must stay unset")
}

func TestUniformsFollowActiveProgram(t *testing.T) {
	dev := shadertest.New()
	a, err := shader.New(dev, sources(), "quad.vert", "quad.frag")
	require.NoError(t, err)
	b, err := shader.New(dev, sources(), "quad.vert", "quad.frag")
	require.NoError(t, err)
	require.NotEqual(t, a.ID(), b.ID())

	a.Use()
	a.SetFloat("xOffset", 1)
	b.Use()
	b.SetFloat("xOffset", 2)

	va, _ := dev.Uniform(a.ID(), "xOffset")
	vb, _ := dev.Uniform(b.ID(), "xOffset")
	assert.Equal(t, float32(1), va)
	assert.Equal(t, float32(2), vb)
}

func TestCompileFailureReportsStage(t *testing.T) {
	tests := []struct {
		name     string
		vert     string
		frag     string
		stage    shader.Stage
		contains string
	}{
		{"vertex", "broken.vert", "quad.frag", shader.StageVertex, "unexpected end of file"},
		{"fragment", "quad.vert", "broken.frag", shader.StageFragment, "#error missing main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := shadertest.New()
			p, err := shader.New(dev, sources(), tt.vert, tt.frag)
			require.Error(t, err)
			require.NotNil(t, p)

			assert.ErrorIs(t, err, shader.ErrUnusable)
			var cerr *shader.CompileError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.stage, cerr.Stage)
			assert.NotEmpty(t, cerr.Log)
			assert.Contains(t, cerr.Log, tt.contains)

			assert.False(t, p.Usable())
			assert.Equal(t, err, p.Err())
			assert.Zero(t, dev.LiveShaders())
		})
	}
}

func TestLinkFailure(t *testing.T) {
	dev := shadertest.New()
	p, err := shader.New(dev, sources(), "quad.vert", "orphan.frag")
	require.Error(t, err)

	var lerr *shader.LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Log, "texCoord")
	var cerr *shader.CompileError
	assert.False(t, errors.As(err, &cerr))

	assert.False(t, p.Usable())
	assert.Zero(t, dev.LiveShaders())

	// Setters on an unlinked program are no-ops.
	p.Use()
	p.SetFloat("xOffset", 1)
	_, ok := dev.Uniform(p.ID(), "xOffset")
	assert.False(t, ok)
}

func TestStrictDeletesProgram(t *testing.T) {
	dev := shadertest.New()
	p, err := shader.New(dev, sources(), "quad.vert", "orphan.frag", shader.WithStrict())
	require.Error(t, err)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, shader.ErrUnusable)
	require.NotZero(t, dev.LastProgram())
	assert.True(t, dev.ProgramDeleted(dev.LastProgram()))
}

// logDevice appends the trailing newline and NUL terminator real drivers
// leave in info logs.
type logDevice struct{ *shadertest.Device }

func (d logDevice) ShaderInfoLog(sh uint32) string {
	return d.Device.ShaderInfoLog(sh) + "\n\x00"
}

func (d logDevice) ProgramInfoLog(prog uint32) string {
	return d.Device.ProgramInfoLog(prog) + "\n\x00"
}

func TestLogsDropOnlyNulTerminator(t *testing.T) {
	dev := logDevice{shadertest.New()}
	_, err := shader.New(dev, sources(), "broken.vert", "quad.frag")
	require.Error(t, err)

	var cerr *shader.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "0:1(1): error: syntax error, unexpected end of file\n", cerr.Log)

	var lerr *shader.LinkError
	require.ErrorAs(t, err, &lerr)
	assert.NotContains(t, lerr.Log, "\x00")
	assert.True(t, strings.HasSuffix(lerr.Log, "\n"))
}

func TestMissingSource(t *testing.T) {
	tests := []struct {
		name  string
		vert  string
		frag  string
		stage shader.Stage
		id    string
	}{
		{"vertex", "missing.vert", "quad.frag", shader.StageVertex, "missing.vert"},
		{"fragment", "quad.vert", "missing.frag", shader.StageFragment, "missing.frag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := shadertest.New()
			p, err := shader.New(dev, sources(), tt.vert, tt.frag)
			assert.Nil(t, p)

			var serr *shader.SourceUnavailableError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.stage, serr.Stage)
			assert.Equal(t, tt.id, serr.ID)
			assert.ErrorIs(t, err, shader.ErrNotFound)
			assert.Zero(t, dev.Objects(), "no device objects may be created")
		})
	}
}

func TestDiagnosticsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dev := shadertest.New()

	_, err := shader.New(dev, sources(), "broken.vert", "quad.frag", shader.WithLogger(zap.New(core)))
	require.Error(t, err)

	entries := logs.FilterMessage("shader compilation failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "vertex", fields["stage"])
	assert.Equal(t, "broken.vert", fields["source"])
	assert.Contains(t, fields["log"], "unexpected end of file")
	assert.Equal(t, 1, logs.FilterMessage("program linking failed").Len())
}

func TestDelete(t *testing.T) {
	dev := shadertest.New()
	p, err := shader.New(dev, sources(), "quad.vert", "quad.frag")
	require.NoError(t, err)
	id := p.ID()

	p.Delete()
	assert.True(t, dev.ProgramDeleted(id))
	assert.Zero(t, p.ID())
	assert.False(t, p.Usable())
	p.Delete()
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "vertex", shader.StageVertex.String())
	assert.Equal(t, "fragment", shader.StageFragment.String())
	assert.Equal(t, "unknown", shader.Stage(7).String())
}
