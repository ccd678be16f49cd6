package core

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, log *zap.Logger, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if log == nil {
		log = zap.NewNop()
	}

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	// window owns the context; renderer shuts down first
	defer win.Destroy()

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)
	rend.SetWireframe(cfg.Wireframe)

	eng := &Engine{Window: win, Renderer: rend, Input: NewInput(), Log: log, start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		app.OnEvent(eng, ev)
		switch ev.(type) {
		case EventCloseRequested:
			win.SetShouldClose(true)
		case EventResize:
			fw, fh := win.FramebufferSize()
			if fw < 1 || fh < 1 {
				return
			}
			rend.Resize(fw, fh)
		}
	})

	if err := app.OnStart(eng); err != nil {
		return err
	}
	log.Info("engine start", zap.String("title", cfg.Title), zap.Int("width", w), zap.Int("height", h))

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		clear   = cfg.ClearColor
		maxStep = 10 // prevent spiral of death
		frames  int
	)

	for !win.ShouldClose() {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now
		accum += frame

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			app.OnUpdate(eng, float64(tick)/float64(time.Second))
			accum -= tick
			steps++
		}
		if steps == maxStep {
			accum = 0
		}
		alpha := float64(accum) / float64(tick)

		rend.Clear(clear[0], clear[1], clear[2], clear[3])
		app.OnRender(eng, alpha)

		win.SwapBuffers()
		frames++
	}

	app.OnShutdown(eng)
	log.Info("engine exit", zap.Int("frames", frames), zap.Duration("uptime", eng.Uptime()))
	return nil
}
