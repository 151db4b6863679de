package main

import (
	"log/slog"
	"runtime"

	"github.com/hubastard/iui/cmd/internal/widgets"
	"github.com/hubastard/iui/engine/core"
	"github.com/hubastard/iui/engine/gfx/renderer2d"
	"github.com/hubastard/iui/engine/profiler"
	"github.com/hubastard/iui/engine/scratch"
	"github.com/hubastard/iui/engine/ui"
)

// LayerDebug shows frame, batcher and GPU statistics in a window. P toggles
// it, Ctrl+P opens the profile in speedscope, Ctrl+Q quits.
type LayerDebug struct {
	visible   bool
	gpu       string
	glVersion string

	frameMs float32
	ui      ui.Stats
	gfx     renderer2d.Statistics
	mem     runtime.MemStats
	frames  int

	buf *scratch.Buffer
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	l.visible = true
	l.buf = scratch.New(1024)
}

func (l *LayerDebug) OnDetach(e *core.Engine)                {}
func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64)    {}
func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return false
	}
	switch {
	case k.Key == core.KeyP && k.Mods&core.ModCtrl != 0:
		if path, err := profiler.Open(); err != nil {
			slog.Warn("debug: profile", "err", err)
		} else if path != "" {
			slog.Info("debug: speedscope dump", "path", path)
		}
		return true
	case k.Key == core.KeyP:
		l.visible = !l.visible
		return true
	case k.Key == core.KeyQ && k.Mods&core.ModCtrl != 0:
		e.Window.RequestClose()
		return true
	}
	return false
}

// record keeps the counters of the frame that just ended; Draw shows them
// on the next one.
func (l *LayerDebug) record(dt float32, st ui.Stats, gfx renderer2d.Statistics) {
	l.frameMs = dt * 1000
	l.ui, l.gfx = st, gfx
	if l.frames%30 == 0 {
		runtime.ReadMemStats(&l.mem)
	}
	l.frames++
}

func (l *LayerDebug) Draw(ctx *ui.Context, view ui.Rect) {
	if !l.visible {
		return
	}
	const w = 280
	if !ctx.BeginWindow("Stats", view.W-w-8, view.H/2, w, 360, ui.WindowResizable) {
		return
	}
	b := l.buf
	b.Reset()
	fps := float32(0)
	if l.frameMs > 0 {
		fps = 1000 / l.frameMs
	}
	line := func(s string) { widgets.Label(ctx, s, widgets.Text) }
	head := func(s string) { widgets.Label(ctx, s, widgets.Focus) }

	head("Frame")
	line(b.Printf("  #%u  %.2f ms (%.0f fps)", l.ui.Frame, l.frameMs, fps))
	head("UI")
	line(b.Printf("  commands %d  flushes %d", l.ui.Batch.Commands, l.ui.Batch.Flushes))
	line(b.Printf("  clips %d  dropped %d", l.ui.Batch.ClipChanges, l.ui.Batch.Dropped))
	line(b.Printf("  text cache %d  hit %u  miss %u", l.ui.CacheSize, l.ui.CacheHits, l.ui.CacheMiss))
	head("Renderer")
	line(b.Printf("  draw calls %d  clip changes %d", l.gfx.DrawCalls, l.gfx.ClipChanges))
	line(b.Printf("  vertices %d  triangles %d", l.gfx.Vertices, l.gfx.Triangles))
	line(b.Printf("  %s", l.gpu))
	line(b.Printf("  GL %s", l.glVersion))
	head("Memory")
	line(b.Printf("  heap %.2f MB  gc %d", float64(l.mem.HeapAlloc)/(1<<20), l.mem.NumGC))
	line(b.Printf("  goroutines %d", runtime.NumGoroutine()))
	ctx.EndWindow()
}
