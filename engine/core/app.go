package core

import (
	"time"

	"go.uber.org/zap"
)

// App defines the tutorial program hooks.
type App interface {
	OnStart(e *Engine) error           // called once after window/renderer init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	Log      *zap.Logger
	start    time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	SetShouldClose(v bool)
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	Destroy()
}

// Renderer draws the textured quad; shader programs are activated by the app.
type Renderer interface {
	Init() error
	Resize(w, h int)
	Clear(r, g, b, a float32)
	SetWireframe(on bool)
	DrawQuad()
	Shutdown()
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
}

func (EventKey) isEvent() {}

// Keys the tutorial binds.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyW
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// Digit returns n for Key1..Key9 and 0 otherwise.
func (k Key) Digit() int {
	if k >= Key1 && k <= Key9 {
		return int(k-Key1) + 1
	}
	return 0
}

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	ClearColor [4]float32 // RGBA

	GLMajor   int
	GLMinor   int
	Samples   int // MSAA samples; 0 disables multisampling
	Wireframe bool
	Texture   string // image file bound while drawing the quad; empty for none
}
