package main

import (
	"time"

	"github.com/hubastard/iui/cmd/internal/widgets"
	"github.com/hubastard/iui/engine/core"
	"github.com/hubastard/iui/engine/gfx/renderer2d"
	"github.com/hubastard/iui/engine/profiler"
	"github.com/hubastard/iui/engine/ui"
)

// LayerUI owns the ui frame: it feeds input, declares the gallery and the
// debug panel, and flushes the batch to GL.
type LayerUI struct {
	ctx     *ui.Context
	r2d     *renderer2d.Renderer2D
	gallery *widgets.Gallery
	debug   *LayerDebug
	last    time.Time
}

func (l *LayerUI) OnAttach(e *core.Engine) { l.last = time.Now() }
func (l *LayerUI) OnDetach(e *core.Engine) {}

func (l *LayerUI) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerUI) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("LayerUI.OnRender")()

	now := time.Now()
	dt := float32(now.Sub(l.last).Seconds())
	l.last = now

	w, h := e.Window.FramebufferSize()
	s := l.ctx.Config().Scale
	view := ui.Rect{W: float32(w) / s, H: float32(h) / s}

	e.Input.Flush(l.ctx.Input())
	l.r2d.BeginFrame()
	l.ctx.BeginFrame(dt)
	l.gallery.Draw(l.ctx, view, dt)
	l.debug.Draw(l.ctx, view)
	l.ctx.EndFrame()
	l.r2d.EndFrame()

	l.debug.record(dt, l.ctx.Stats(), l.r2d.Stats())
	if l.gallery.Quit {
		e.Window.RequestClose()
	}
}

func (l *LayerUI) OnEvent(e *core.Engine, ev core.Event) bool { return false }
