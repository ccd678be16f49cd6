package glbackend

import (
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"go.uber.org/zap"

	"github.com/hubastard/learngl/engine/assets"
	"github.com/hubastard/learngl/engine/core"
)

// RendererGL owns the quad geometry and its texture.
type RendererGL struct {
	win     core.Window
	cfg     core.Config
	log     *zap.Logger
	vao     uint32
	vbo     uint32
	ebo     uint32
	texture uint32
}

// quad: position (xyz), colour (rgb), texture coords (uv)
var quadVertices = []float32{
	0.5, 0.5, 0.0, 1.0, 0.65, 0.95, 1.0, 1.0, // top right
	0.5, -0.5, 0.0, 0.9, 0.9, 0.9, 1.0, 0.0, // bottom right
	-0.5, -0.5, 0.0, 0.9, 0.8, 1.0, 0.0, 0.0, // bottom left
	-0.5, 0.5, 0.0, 1.0, 1.0, 0.8, 0.0, 1.0, // top left
}

var quadIndices = []uint32{
	0, 1, 3,
	1, 2, 3,
}

func NewRendererGL(win core.Window, cfg core.Config, log *zap.Logger) (*RendererGL, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &RendererGL{win: win, cfg: cfg, log: log}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)

	gl.BindVertexArray(r.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, gl.Ptr(quadIndices), gl.STATIC_DRAW)

	// layout(location = 0) in vec3 aPos;
	// layout(location = 1) in vec3 aColour;
	// layout(location = 2) in vec2 aTexCoord;
	const stride = 8 * 4 // bytes
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(2)

	// The element buffer binding is VAO state and stays bound.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if r.cfg.Samples > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}

	if r.cfg.Texture != "" {
		r.loadTexture(r.cfg.Texture)
	}
	return nil
}

// loadTexture uploads path as the quad texture. Failures are logged and the
// quad is drawn untextured.
func (r *RendererGL) loadTexture(path string) {
	img, err := assets.LoadImage(path)
	if err != nil {
		r.log.Error("failed to load texture", zap.String("path", path), zap.Error(err))
		return
	}

	gl.GenTextures(1, &r.texture)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	// RGB rows are not 4-byte aligned for odd widths.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB, int32(img.Width), int32(img.Height), 0, gl.RGB, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	r.log.Info("texture loaded", zap.String("path", path), zap.Int("width", img.Width), zap.Int("height", img.Height))
}

func (r *RendererGL) Shutdown() {
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (r *RendererGL) SetWireframe(on bool) {
	if on {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

// DrawQuad draws the quad with whatever program is active.
func (r *RendererGL) DrawQuad() {
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}
