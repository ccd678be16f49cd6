package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/hubastard/learngl/engine/colors"
	"github.com/hubastard/learngl/engine/config"
	"github.com/hubastard/learngl/engine/core"
	"github.com/hubastard/learngl/engine/gfx/shader"
)

var baseColour = colors.Color{1.0, 0.5, 0.2, 1.0}

type quadApp struct {
	file      config.File
	dev       shader.Device
	programs  []program
	current   int
	wireframe bool
	animate   bool
}

func (a *quadApp) OnStart(e *core.Engine) error {
	a.programs = buildPrograms(a.dev, sourceFor(a.file), a.file, e.Log)
	a.wireframe = a.file.Window.Wireframe
	a.animate = a.file.Animate

	a.current = a.file.Index(a.file.Current)
	cur := a.programs[a.current]
	if cur.prog == nil {
		return fmt.Errorf("shader %q: %w", cur.pair.Name, cur.err)
	}
	if !cur.usable() {
		e.Log.Warn("current shader is unusable, drawing anyway", zap.String("shader", cur.pair.Name))
	}
	a.updateTitle(e)
	return nil
}

func (a *quadApp) OnUpdate(e *core.Engine, dt float64) {
	if e.Input.WasPressed(core.KeyEscape) {
		e.Window.SetShouldClose(true)
	}
	if e.Input.WasPressed(core.KeyW) {
		a.wireframe = !a.wireframe
		e.Renderer.SetWireframe(a.wireframe)
	}
	if e.Input.WasPressed(core.KeySpace) {
		a.animate = !a.animate
		e.Log.Info("animation toggled", zap.Bool("animate", a.animate))
	}
	for k := core.Key1; k <= core.Key9; k++ {
		if e.Input.WasPressed(k) {
			a.switchTo(e, k.Digit()-1)
		}
	}
}

func (a *quadApp) switchTo(e *core.Engine, i int) {
	if i < 0 || i >= len(a.programs) || i == a.current {
		return
	}
	if !a.programs[i].usable() {
		e.Log.Warn("shader is unusable", zap.String("shader", a.programs[i].pair.Name), zap.Error(a.programs[i].err))
		return
	}
	a.current = i
	a.updateTitle(e)
	e.Log.Info("switched shader", zap.String("shader", a.programs[i].pair.Name))
}

func (a *quadApp) updateTitle(e *core.Engine) {
	e.Window.SetTitle(fmt.Sprintf("%s [%s]", a.file.Window.Title, a.programs[a.current].pair.Name))
}

func (a *quadApp) OnRender(e *core.Engine, alpha float64) {
	p := a.programs[a.current].prog
	p.Use()
	a.setUniforms(p, e.Uptime().Seconds())
	e.Renderer.DrawQuad()
}

// setUniforms feeds the uniforms the tutorial shaders read. Programs that do
// not declare one simply ignore it.
func (a *quadApp) setUniforms(p *shader.Program, t float64) {
	colour := baseColour
	var offset float32
	if a.animate {
		colour = colors.Azure.Pulse(float32(math.Sin(t*2) + 0.5))
		offset = float32(0.2 * math.Cos(t*2))
	}
	p.SetVec4("vertexColour", mgl32.Vec4(colour))
	p.SetFloat("xOffset", offset)
	p.SetInt("ourTexture", 0)
	p.SetBool("tinted", a.animate)
}

func (a *quadApp) OnEvent(e *core.Engine, ev core.Event) {}

func (a *quadApp) OnShutdown(e *core.Engine) {
	for _, p := range a.programs {
		if p.prog != nil {
			p.prog.Delete()
		}
	}
}
