package ui

import "testing"

// inWindow runs fn inside a frame and a window whose content area is
// {4, 28, 420, 400}.
func inWindow(t *testing.T, ctx *Context, fn func()) {
	t.Helper()
	frame(ctx, func() {
		if !ctx.BeginWindow("layout", 0, 0, 428, 432, 0) {
			t.Fatal("window did not open")
		}
		fn()
		ctx.EndWindow()
	})
}

func TestBoxRowDistributes(t *testing.T) {
	ctx := newTestContext(t, &recorder{})
	inWindow(t, ctx, func() {
		if !ctx.BoxBegin(DirRow, []Size{Fixed(100), Grow(1), Grow(1)}, BoxStyle{Size: 30}) {
			t.Fatal("box did not open")
		}
		want := []Rect{
			{X: 4, Y: 28, W: 100, H: 30},
			{X: 104, Y: 28, W: 160, H: 30},
			{X: 264, Y: 28, W: 160, H: 30},
		}
		for i, w := range want {
			if got := ctx.Next(0); got != w {
				t.Errorf("child %d: got %+v, want %+v", i, got, w)
			}
		}
		if got := ctx.Next(0); !got.Empty() {
			t.Errorf("extra child: got %+v, want empty", got)
		}
		ctx.BoxEnd()

		// The box used one flow row of its own height.
		if got := ctx.Next(10); got.Y != 28+30+4 {
			t.Errorf("after box: y = %v, want %v", got.Y, 28+30+4)
		}
	})
}

func TestBoxCrossAlign(t *testing.T) {
	tests := []struct {
		align Align
		want  Rect
	}{
		{AlignStretch, Rect{X: 4, Y: 28, W: 100, H: 400}},
		{AlignStart, Rect{X: 4, Y: 28, W: 100, H: 100}},
		{AlignCenter, Rect{X: 4, Y: 178, W: 100, H: 100}},
		{AlignEnd, Rect{X: 4, Y: 328, W: 100, H: 100}},
	}
	for _, tt := range tests {
		ctx := newTestContext(t, &recorder{})
		inWindow(t, ctx, func() {
			ctx.BoxBegin(DirRow, []Size{Fixed(100), Grow(1)}, BoxStyle{Align: tt.align, Size: 400})
			if got := ctx.Next(0); got != tt.want {
				t.Errorf("align %d: got %+v, want %+v", tt.align, got, tt.want)
			}
			ctx.Next(0)
			ctx.BoxEnd()
		})
	}
}

func TestBoxColumnFillsRemainingHeight(t *testing.T) {
	ctx := newTestContext(t, &recorder{})
	inWindow(t, ctx, func() {
		ctx.Next(20) // y 28..48, next row at 52
		ctx.BoxBegin(DirColumn, []Size{Fixed(50), Grow(1)}, BoxStyle{Gap: 6})
		a := ctx.Next(0)
		b := ctx.Next(0)
		ctx.BoxEnd()

		if a != (Rect{X: 4, Y: 52, W: 420, H: 50}) {
			t.Errorf("first: got %+v", a)
		}
		// 428 - 52 = 376 tall box: 376 - 50 - 6 = 320 left.
		if b != (Rect{X: 4, Y: 108, W: 420, H: 320}) {
			t.Errorf("second: got %+v", b)
		}
	})
}

func TestNestedBoxes(t *testing.T) {
	ctx := newTestContext(t, &recorder{})
	inWindow(t, ctx, func() {
		ctx.BoxBegin(DirRow, []Size{Grow(1), Grow(1)}, BoxStyle{Size: 100})
		left := ctx.Next(0)
		if !ctx.BoxBegin(DirColumn, []Size{Grow(1), Grow(1)}, BoxStyle{}) {
			t.Fatal("inner box did not open")
		}
		top := ctx.Next(0)
		bottom := ctx.Next(0)
		ctx.BoxEnd()
		ctx.BoxEnd()

		if left != (Rect{X: 4, Y: 28, W: 210, H: 100}) {
			t.Errorf("left: got %+v", left)
		}
		// The inner column took the outer row's second slot.
		if top != (Rect{X: 214, Y: 28, W: 210, H: 50}) || bottom != (Rect{X: 214, Y: 78, W: 210, H: 50}) {
			t.Errorf("inner: top %+v bottom %+v", top, bottom)
		}
		if ctx.BoxDepth() != 0 {
			t.Errorf("depth: got %d", ctx.BoxDepth())
		}
	})
}

func TestBoxRejects(t *testing.T) {
	cfg := quietConfig()
	cfg.BoxStackSize = 2
	cfg.MaxBoxChildren = 3
	ctx := newTestContextWith(t, cfg, &recorder{})

	frame(ctx, func() {
		if ctx.BoxBegin(DirRow, []Size{Grow(1)}, BoxStyle{}) {
			t.Error("box opened outside a window")
		}
		ctx.BeginWindow("w", 0, 0, 300, 300, 0)
		if ctx.BoxBegin(DirRow, nil, BoxStyle{}) {
			t.Error("empty box opened")
		}
		if ctx.BoxBegin(DirRow, make([]Size, 4), BoxStyle{}) {
			t.Error("box over the child limit opened")
		}
		ctx.BoxBegin(DirRow, make([]Size, 3), BoxStyle{})
		ctx.BoxBegin(DirColumn, make([]Size, 3), BoxStyle{})
		if ctx.BoxBegin(DirRow, make([]Size, 1), BoxStyle{}) {
			t.Error("box past stack capacity opened")
		}
		if ctx.BoxDepth() != 2 {
			t.Errorf("depth: got %d, want 2", ctx.BoxDepth())
		}
		ctx.BoxEnd()
		ctx.BoxEnd()
		ctx.BoxEnd()
		ctx.EndWindow()
	})
}

func TestBoxBeginFailureKeepsSlot(t *testing.T) {
	ctx := newTestContext(t, &recorder{})
	inWindow(t, ctx, func() {
		if !ctx.BoxBegin(DirRow, []Size{Fixed(0), Grow(1)}, BoxStyle{}) {
			t.Fatal("outer box did not open")
		}
		if ctx.BoxBegin(DirColumn, []Size{Grow(1)}, BoxStyle{}) {
			t.Fatal("box opened in a zero-width slot")
		}
		if ctx.BoxDepth() != 1 {
			t.Errorf("depth: got %d, want 1", ctx.BoxDepth())
		}
		if got := ctx.Next(0); got.W != 0 || got.X != 4 {
			t.Errorf("first slot consumed by the failed box: got %+v", got)
		}
		if got := ctx.Next(0); got.W != 420 {
			t.Errorf("second slot: got %+v, want width 420", got)
		}
		ctx.BoxEnd()
	})

	// A window with no content width: the flow cursor stays put.
	frame(ctx, func() {
		if !ctx.BeginWindow("thin", 0, 0, 2*ctx.Config().Padding, 200, 0) {
			t.Fatal("window did not open")
		}
		top := ctx.ContentRect().Y
		if ctx.BoxBegin(DirRow, []Size{Grow(1)}, BoxStyle{}) {
			t.Error("box opened with no width")
		}
		if got := ctx.Next(0); got.Y != top {
			t.Errorf("flow cursor advanced: next row at y=%v, want %v", got.Y, top)
		}
		ctx.EndWindow()
	})
}

func TestRowAndGrid(t *testing.T) {
	ctx := newTestContext(t, &recorder{})
	inWindow(t, ctx, func() {
		ctx.Row(2, 20)
		a, b, c := ctx.Next(0), ctx.Next(0), ctx.Next(0)
		// Padding 4 between cells: (420 - 4) / 2 = 208.
		if a != (Rect{X: 4, Y: 28, W: 208, H: 20}) || b != (Rect{X: 216, Y: 28, W: 208, H: 20}) {
			t.Errorf("first row: %+v %+v", a, b)
		}
		if c != (Rect{X: 4, Y: 52, W: 208, H: 20}) {
			t.Errorf("wrapped cell: got %+v", c)
		}

		ctx.Flow()
		if got := ctx.Next(10); got != (Rect{X: 4, Y: 76, W: 420, H: 10}) {
			t.Errorf("flow after row: got %+v", got)
		}

		ctx.Grid(3, 30)
		var cells []Rect
		for i := 0; i < 7; i++ {
			cells = append(cells, ctx.Next(0))
		}
		for i, r := range cells {
			col, row := i%3, i/3
			if !approx(r.X, cells[col].X) || !approx(r.Y, 90+float32(row)*34) {
				t.Errorf("cell %d: got %+v", i, r)
			}
		}
	})
}

func TestRowRatio(t *testing.T) {
	ctx := newTestContext(t, &recorder{})
	inWindow(t, ctx, func() {
		if ctx.RowRatio(0) {
			t.Error("row with no weights accepted")
		}
		ctx.RowRatio(0, 1, 3)
		a, b := ctx.Next(0), ctx.Next(0)
		if !approx(a.W, 104) || !approx(b.W, 312) || !approx(b.X, 112) {
			t.Errorf("got %+v %+v", a, b)
		}
		if a.H != ctx.cfg.rowHeight() {
			t.Errorf("default height: got %v", a.H)
		}
	})
}

func TestSpacerAndContentRect(t *testing.T) {
	ctx := newTestContext(t, &recorder{})
	if got := ctx.ContentRect(); got != (Rect{}) {
		t.Errorf("outside window: got %+v", got)
	}
	inWindow(t, ctx, func() {
		if got := ctx.ContentRect(); got != (Rect{X: 4, Y: 28, W: 420, H: 400}) {
			t.Errorf("content: got %+v", got)
		}
		ctx.Spacer(16)
		if got := ctx.Next(0); got.Y != 28+16+4 {
			t.Errorf("after spacer: y = %v", got.Y)
		}
	})
}
