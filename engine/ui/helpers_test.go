package ui

import (
	"io"
	"log/slog"
	"testing"

	"github.com/hubastard/iui/engine/colors"
)

// recorder implements only the required backend methods.
type recorder struct {
	calls []string
	clips []ClipRect
	rects []Rect
}

func (r *recorder) FillRoundedRect(rc Rect, radius float32, c colors.RGBA) {
	r.calls = append(r.calls, "rect")
	r.rects = append(r.rects, rc)
}

func (r *recorder) SetClip(c ClipRect) {
	r.calls = append(r.calls, "clip")
	r.clips = append(r.clips, c)
}

func (r *recorder) reset() {
	r.calls, r.clips, r.rects = nil, nil, nil
}

// fullRecorder adds every optional capability. Text measures 8 units per byte.
type fullRecorder struct {
	recorder
	texts []string
}

func (r *fullRecorder) DrawText(x, y float32, s string, c colors.RGBA) {
	r.calls = append(r.calls, "text")
	r.texts = append(r.texts, s)
}

func (r *fullRecorder) MeasureText(s string) float32 { return float32(8 * len(s)) }

func (r *fullRecorder) DrawLine(x0, y0, x1, y1, width float32, c colors.RGBA) {
	r.calls = append(r.calls, "line")
}

func (r *fullRecorder) DrawCircle(cx, cy, radius float32, c colors.RGBA) {
	r.calls = append(r.calls, "circle")
}

func (r *fullRecorder) DrawArc(cx, cy, radius, start, end, width float32, c colors.RGBA) {
	r.calls = append(r.calls, "arc")
}

func quietConfig() Config {
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return cfg
}

func newTestContext(t *testing.T, r Renderer) *Context {
	t.Helper()
	return newTestContextWith(t, quietConfig(), r)
}

func newTestContextWith(t *testing.T, cfg Config, r Renderer) *Context {
	t.Helper()
	ctx, err := New(cfg, r)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return ctx
}

// frame runs fn between BeginFrame and EndFrame.
func frame(ctx *Context, fn func()) {
	ctx.BeginFrame(1.0 / 60)
	fn()
	ctx.EndFrame()
}

func approx(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-3
}
