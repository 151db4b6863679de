package ui

import (
	"slices"
	"testing"
)

func TestBatchReissuesClipOnlyOnChange(t *testing.T) {
	rec := &recorder{}
	ctx := newTestContext(t, rec)
	frame(ctx, func() {
		ctx.DrawRect(Rect{W: 10, H: 10}, 0, 0)
		ctx.DrawRect(Rect{X: 20, W: 10, H: 10}, 0, 0)
		ctx.PushClip(Rect{W: 100, H: 100})
		ctx.DrawRect(Rect{W: 10, H: 10}, 0, 0)
		ctx.DrawRect(Rect{X: 30, W: 10, H: 10}, 0, 0)
		ctx.PopClip()
		ctx.DrawRect(Rect{W: 10, H: 10}, 0, 0)
	})

	want := []string{"clip", "rect", "rect", "clip", "rect", "rect", "clip", "rect"}
	if !slices.Equal(rec.calls, want) {
		t.Errorf("calls:\n got %v\nwant %v", rec.calls, want)
	}
	if rec.clips[0] != FullClip || rec.clips[1] != (ClipRect{W: 100, H: 100}) {
		t.Errorf("clips: got %+v", rec.clips)
	}
	if st := ctx.Stats().Batch; st.ClipChanges != 3 || st.Commands != 5 || st.Flushes != 1 {
		t.Errorf("stats: got %+v", st)
	}
}

func TestBatchPassThrough(t *testing.T) {
	rec := &recorder{}
	cfg := quietConfig()
	cfg.Batching = false
	ctx := newTestContextWith(t, cfg, rec)

	ctx.BeginFrame(0)
	ctx.DrawRect(Rect{W: 10, H: 10}, 0, 0)
	if len(rec.rects) != 1 {
		t.Errorf("pass-through: %d rects issued before flush, want 1", len(rec.rects))
	}
	ctx.SetBatching(true)
	ctx.DrawRect(Rect{W: 10, H: 10}, 0, 0)
	if len(rec.rects) != 1 {
		t.Errorf("batched draw issued early")
	}
	ctx.SetBatching(false)
	if len(rec.rects) != 2 {
		t.Errorf("disabling did not flush: %d rects", len(rec.rects))
	}
	ctx.EndFrame()
}

func TestBatchFlushesWhenFull(t *testing.T) {
	rec := &recorder{}
	cfg := quietConfig()
	cfg.MaxCommands = 4
	ctx := newTestContextWith(t, cfg, rec)

	ctx.BeginFrame(0)
	for i := 0; i < 5; i++ {
		ctx.DrawRect(Rect{X: float32(i), W: 1, H: 1}, 0, 0)
	}
	if len(rec.rects) != 4 {
		t.Errorf("issued before frame end: got %d, want 4", len(rec.rects))
	}
	ctx.EndFrame()
	if len(rec.rects) != 5 {
		t.Errorf("issued after frame end: got %d, want 5", len(rec.rects))
	}
	for i, r := range rec.rects {
		if r.X != float32(i) {
			t.Errorf("order: rect %d at x=%v", i, r.X)
		}
	}
}

func TestBatchReplaysInEmissionOrder(t *testing.T) {
	rec := &recorder{}
	ctx := newTestContext(t, rec)
	in := ctx.Input()
	marker := func(name string, x float32) {
		ctx.BeginWindow(name, x, 0, 100, 100, 0)
		ctx.DrawRect(Rect{X: x + 10, Y: 40, W: 1, H: 1}, 0, 0)
		ctx.EndWindow()
	}
	both := func() {
		marker("back", 0)
		marker("front", 50)
	}
	frame(ctx, both)

	// Raising "back" changes its z but not where its commands go.
	in.MoveTo(5, 50)
	in.Press(MouseLeft)
	frame(ctx, both)
	in.Release(MouseLeft)
	rec.reset()
	frame(ctx, both)

	var markers []float32
	for _, r := range rec.rects {
		if r.W == 1 {
			markers = append(markers, r.X)
		}
	}
	if !slices.Equal(markers, []float32{10, 60}) {
		t.Errorf("marker order: got %v, want declaration order", markers)
	}
}

func TestBatchedMatchesPassThrough(t *testing.T) {
	scene := func(ctx *Context) {
		ctx.BeginWindow("b", 50, 0, 100, 100, 0)
		ctx.DrawRect(Rect{X: 60, Y: 40, W: 1, H: 1}, 0, 0)
		if ctx.PushLayer(Rect{X: 60, Y: 40, W: 50, H: 50}) {
			ctx.DrawRect(Rect{X: 60, Y: 40, W: 2, H: 2}, 0, 0)
			ctx.PopLayer()
		}
		ctx.EndWindow()
		ctx.BeginWindow("a", 0, 0, 100, 100, 0)
		ctx.DrawRect(Rect{X: 10, Y: 40, W: 1, H: 1}, 0, 0)
		ctx.EndWindow()
		ctx.BeginModal("m", Rect{X: 20, Y: 20, W: 40, H: 40})
		ctx.DrawRect(Rect{X: 30, Y: 30, W: 3, H: 3}, 0, 0)
		ctx.EndModal()
	}
	run := func(batching bool, capacity int) *recorder {
		rec := &recorder{}
		cfg := quietConfig()
		cfg.Batching = batching
		cfg.MaxCommands = capacity
		ctx := newTestContextWith(t, cfg, rec)
		// Bring "b" to the front so z and declaration order disagree.
		frame(ctx, func() { scene(ctx) })
		ctx.BringToFront("b")
		rec.reset()
		frame(ctx, func() { scene(ctx) })
		return rec
	}

	want := run(false, MaxCommands)
	tests := []struct {
		name     string
		capacity int
	}{
		{"roomy buffer", MaxCommands},
		{"flushes mid frame", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(true, tt.capacity)
			if !slices.Equal(got.calls, want.calls) || !slices.Equal(got.rects, want.rects) || !slices.Equal(got.clips, want.clips) {
				t.Errorf("batched:\n got %v %v\nwant %v %v", got.calls, got.rects, want.calls, want.rects)
			}
		})
	}
}

func TestOptionalCapabilities(t *testing.T) {
	rec := &recorder{}
	ctx := newTestContext(t, rec)
	for _, c := range []Capability{CapText, CapMeasure, CapLine, CapCircle, CapArc} {
		if ctx.Supports(c) {
			t.Errorf("bare renderer supports %v", c)
		}
	}
	frame(ctx, func() {
		if ctx.DrawText(0, 0, "hi", 0) || ctx.DrawLine(0, 0, 1, 1, 1, 0) ||
			ctx.DrawCircle(5, 5, 2, 0) || ctx.DrawArc(5, 5, 2, 0, 1, 1, 0) {
			t.Error("optional draw reported success without the capability")
		}
	})
	if len(rec.calls) != 0 {
		t.Errorf("backend called: %v", rec.calls)
	}

	full := &fullRecorder{}
	ctx = newTestContext(t, full)
	if !ctx.Supports(CapText | CapMeasure | CapLine | CapCircle | CapArc) {
		t.Error("full renderer capabilities not detected")
	}
	frame(ctx, func() {
		ctx.DrawText(0, 0, "hi", 0)
		ctx.DrawLine(0, 0, 10, 10, 1, 0)
		ctx.DrawCircle(5, 5, 2, 0)
		ctx.DrawArc(5, 5, 2, 0, 1, 1, 0)
	})
	want := []string{"clip", "text", "line", "circle", "arc"}
	if !slices.Equal(full.calls, want) {
		t.Errorf("calls: got %v, want %v", full.calls, want)
	}
}

func TestClippedOutCommandsDropped(t *testing.T) {
	rec := &recorder{}
	ctx := newTestContext(t, rec)
	frame(ctx, func() {
		ctx.PushClip(Rect{W: 50, H: 50})
		ctx.DrawRect(Rect{X: 100, Y: 100, W: 10, H: 10}, 0, 0)
		ctx.PushClip(Rect{X: 200, W: 10, H: 10})
		ctx.DrawRect(Rect{W: 10, H: 10}, 0, 0)
		ctx.PopClip()
		ctx.PopClip()
		if got := ctx.Stats().Batch.Dropped; got != 2 {
			t.Errorf("dropped: got %d, want 2", got)
		}
	})
	if len(rec.rects) != 0 {
		t.Errorf("issued %d clipped rects", len(rec.rects))
	}
}

func TestScaleAppliesAtBoundary(t *testing.T) {
	rec := &recorder{}
	cfg := quietConfig()
	cfg.Scale = 2
	ctx := newTestContextWith(t, cfg, rec)
	frame(ctx, func() {
		ctx.PushClip(Rect{X: 5, Y: 5, W: 50, H: 50})
		ctx.DrawRect(Rect{X: 10, Y: 10, W: 5, H: 5}, 0, 0)
		ctx.PopClip()
	})
	if rec.rects[0] != (Rect{X: 20, Y: 20, W: 10, H: 10}) {
		t.Errorf("rect: got %+v", rec.rects[0])
	}
	if rec.clips[0] != (ClipRect{X: 10, Y: 10, W: 100, H: 100}) {
		t.Errorf("clip: got %+v", rec.clips[0])
	}
}

func TestDirtyTrackingSkipsCleanCommands(t *testing.T) {
	for _, batching := range []bool{true, false} {
		rec := &recorder{}
		cfg := quietConfig()
		cfg.Batching = batching
		ctx := newTestContextWith(t, cfg, rec)
		ctx.EnableDirty(true)
		draw := func() {
			ctx.MarkDirty(Rect{X: 0, Y: 0, W: 20, H: 20})
			ctx.DrawRect(Rect{X: 5, Y: 5, W: 5, H: 5}, 0, 0)
			ctx.DrawRect(Rect{X: 100, Y: 100, W: 5, H: 5}, 0, 0)
		}

		frame(ctx, draw)
		if len(rec.rects) != 2 {
			t.Errorf("batching=%v first frame: got %d rects, want 2", batching, len(rec.rects))
		}

		rec.reset()
		frame(ctx, draw)
		if len(rec.rects) != 1 || rec.rects[0].X != 5 {
			t.Errorf("batching=%v rects: got %+v", batching, rec.rects)
		}
		if got := ctx.Stats().Batch.Skipped; got != 1 {
			t.Errorf("batching=%v skipped: got %d, want 1", batching, got)
		}
	}
}

func TestSortByZ(t *testing.T) {
	ctx := newTestContext(t, &recorder{})
	names := []string{"c", "a", "b"}
	ctx.SortByZ(names)
	if !slices.Equal(names, []string{"c", "a", "b"}) {
		t.Errorf("unknown windows reordered: %v", names)
	}
	frame(ctx, func() {
		for _, n := range []string{"a", "b", "c"} {
			ctx.BeginWindow(n, 0, 0, 10, 10, 0)
			ctx.EndWindow()
		}
	})
	ctx.BringToFront("a")
	ctx.SortByZ(names)
	if !slices.Equal(names, []string{"b", "c", "a"}) {
		t.Errorf("back to front: got %v, want [b c a]", names)
	}
}
