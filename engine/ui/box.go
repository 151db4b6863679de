package ui

// boxEntry is one open box container. Its resolved child sizes live in the
// box stack's arena at the entry's depth.
type boxEntry struct {
	dir    Direction
	align  Align
	gap    float32
	rect   Rect
	n      int
	next   int
	cursor float32 // main-axis offset of the next child
	min    float32 // minimum main extent the children need
}

type boxStack struct {
	items  []boxEntry
	arena  []float32
	stride int
}

func newBoxStack(depth, children int) boxStack {
	return boxStack{
		items:  make([]boxEntry, 0, depth),
		arena:  make([]float32, depth*children),
		stride: children,
	}
}

func (s *boxStack) depth() int { return len(s.items) }
func (s *boxStack) full() bool { return len(s.items) == cap(s.items) }

func (s *boxStack) top() *boxEntry {
	return &s.items[len(s.items)-1]
}

func (s *boxStack) sizes(level int) []float32 {
	return s.arena[level*s.stride : (level+1)*s.stride]
}

func (s *boxStack) truncate(depth int) {
	if depth >= 0 && depth < len(s.items) {
		s.items = s.items[:depth]
	}
}

// BoxBegin opens a box that distributes its main axis among len(sizes)
// children. The box itself takes the next slot of the enclosing layout.
// Every successful BoxBegin needs a BoxEnd inside the same window.
func (ctx *Context) BoxBegin(dir Direction, sizes []Size, style BoxStyle) bool {
	if ctx == nil || !ctx.scopeOpen() {
		return false
	}
	n := len(sizes)
	if n == 0 || n > ctx.cfg.MaxBoxChildren {
		ctx.log.Debug("ui: box child count out of range", "children", n)
		return false
	}
	if ctx.boxes.full() {
		ctx.log.Debug("ui: box stack full", "depth", ctx.boxes.depth())
		return false
	}

	h := style.Size
	if h <= 0 {
		if dir == DirRow {
			h = ctx.cfg.rowHeight()
		} else {
			h = max(minExtent(style.Gap, sizes), ctx.lay.area.Bottom()-ctx.lay.y)
			if h <= 0 {
				h = ctx.cfg.rowHeight() * float32(n)
			}
		}
	}
	// A slot too small for a box is handed back untouched.
	l := &ctx.lay
	y, col, maxY := l.y, l.col, l.maxY
	inBox := ctx.boxes.depth() > l.boxFloor
	var parent boxEntry
	if inBox {
		parent = *ctx.boxes.top()
	}
	rect := ctx.Next(h)
	if rect.Empty() {
		l.y, l.col, l.maxY = y, col, maxY
		if inBox {
			*ctx.boxes.top() = parent
		}
		return false
	}

	level := ctx.boxes.depth()
	out := ctx.boxes.sizes(level)[:n]
	extent := rect.W
	if dir == DirColumn {
		extent = rect.H
	}
	minMain := Solve(extent, style.Gap, sizes, out)
	ctx.boxes.items = append(ctx.boxes.items, boxEntry{
		dir:   dir,
		align: style.Align,
		gap:   style.Gap,
		rect:  rect,
		n:     n,
		min:   minMain,
	})
	return true
}

// boxNext returns the innermost box's next child rect, or an empty rect
// once all declared children were handed out.
func (ctx *Context) boxNext() Rect {
	level := ctx.boxes.depth() - 1
	b := ctx.boxes.top()
	if b.next >= b.n {
		ctx.log.Debug("ui: box overflow", "children", b.n)
		return Rect{}
	}
	main := ctx.boxes.sizes(level)[b.next]

	cross := b.rect.H
	if b.dir == DirColumn {
		cross = b.rect.W
	}
	size, off := cross, float32(0)
	if b.align != AlignStretch {
		size = min(main, cross)
		switch b.align {
		case AlignCenter:
			off = (cross - size) * 0.5
		case AlignEnd:
			off = cross - size
		}
	}

	var r Rect
	if b.dir == DirRow {
		r = Rect{X: b.rect.X + b.cursor, Y: b.rect.Y + off, W: main, H: size}
	} else {
		r = Rect{X: b.rect.X + off, Y: b.rect.Y + b.cursor, W: size, H: main}
	}
	b.cursor += main + b.gap
	b.next++
	return r
}

// BoxEnd closes the innermost box and reports its minimum extent to the
// window so auto-sized windows can grow on the next frame.
func (ctx *Context) BoxEnd() {
	if ctx == nil || ctx.boxes.depth() <= ctx.lay.boxFloor {
		return
	}
	b := ctx.boxes.items[ctx.boxes.depth()-1]
	ctx.boxes.items = ctx.boxes.items[:ctx.boxes.depth()-1]
	switch b.dir {
	case DirRow:
		ctx.requireWidth(b.rect.X + b.min)
	case DirColumn:
		ctx.lay.maxY = max(ctx.lay.maxY, b.rect.Y+b.min)
	}
}

// BoxDepth is the number of open boxes.
func (ctx *Context) BoxDepth() int {
	if ctx == nil {
		return 0
	}
	return ctx.boxes.depth()
}
