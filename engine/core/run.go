package core

import (
	"log/slog"
	"runtime"
	"time"
)

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{Window: win, Renderer: rend, Input: NewInputCollector(), start: time.Now()}
	win.SetEventCallback(func(ev Event) { dispatch(eng, app, ev) })

	app.OnStart(eng)
	eng.Layers.attach(eng)

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	const maxSteps = 10 // prevent spiral of death
	var (
		accum time.Duration
		prev  = time.Now()
		clear = cfg.ClearColor
		dt    = tick.Seconds()
	)
	for !win.ShouldClose() {
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		// Platform emits through the callback.
		win.PollEvents()

		for steps := 0; accum >= tick && steps < maxSteps; steps++ {
			app.OnUpdate(eng, dt)
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			accum -= tick
		}
		if accum > tick {
			accum = tick
		}
		alpha := float64(accum) / float64(tick)

		rend.Clear(clear[0], clear[1], clear[2], clear[3])
		app.OnRender(eng, alpha)
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })
		win.SwapBuffers()
	}

	eng.Layers.detachAll()
	app.OnShutdown(eng)
	slog.Debug("core: exit", "uptime", eng.Uptime())
	return nil
}

// dispatch feeds input first, then the app, then layers from the top until
// one handles the event.
func dispatch(eng *Engine, app App, ev Event) {
	eng.Input.Handle(ev)
	switch e := ev.(type) {
	case EventResize:
		if e.W > 0 && e.H > 0 {
			eng.Renderer.Resize(e.W, e.H)
		}
	case EventCloseRequested:
		eng.Window.RequestClose()
	}
	app.OnEvent(eng, ev)
	eng.Layers.ForEachReverse(func(l Layer) bool { return l.OnEvent(eng, ev) })
}
