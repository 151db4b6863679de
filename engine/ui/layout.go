package ui

// ===== Layout props =====

type Direction uint8

const (
	DirRow Direction = iota
	DirColumn
)

// Align places a box child on the cross axis. Anything but Stretch shrinks
// the child to its own main-axis size, since immediate-mode widgets never
// declare a cross size up front.
type Align uint8

const (
	AlignStretch Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

type BoxStyle struct {
	Gap   float32
	Align Align
	// Size is the box's extent in the enclosing flow (its height in a
	// window). Zero picks a row height for rows and the remaining content
	// height for columns. Ignored when the box sits in a parent box slot.
	Size float32
}

// ===== Cursor =====

type layoutMode uint8

const (
	modeFlow layoutMode = iota
	modeRow
)

// cursor walks a content area top to bottom. Scroll regions and modals swap
// in their own cursor and restore the outer one when they close.
type cursor struct {
	area     Rect
	x, y     float32
	width    float32
	maxY     float32
	boxFloor int // boxes below this depth belong to an outer scope

	mode  layoutMode
	cols  int
	col   int
	rowH  float32
	cells [maxSolveChildren]float32
	cellX [maxSolveChildren]float32
}

func newCursor(area Rect, boxFloor int) cursor {
	return cursor{area: area, x: area.X, y: area.Y, width: area.W, maxY: area.Y, boxFloor: boxFloor}
}

func (ctx *Context) scopeOpen() bool {
	return ctx.win != nil || ctx.modal.rendering
}

// Next hands out the rectangle for the next widget: a slot of the innermost
// box, a cell of the current row/grid, or a full-width row of height h
// (h <= 0 picks the default row height).
func (ctx *Context) Next(h float32) Rect {
	if ctx == nil || !ctx.scopeOpen() {
		return Rect{}
	}
	if ctx.boxes.depth() > ctx.lay.boxFloor {
		return ctx.boxNext()
	}
	l := &ctx.lay
	sp := ctx.cfg.Padding
	var r Rect
	switch l.mode {
	case modeRow:
		if l.col >= l.cols {
			l.y += l.rowH + sp
			l.col = 0
		}
		r = Rect{X: l.x + l.cellX[l.col], Y: l.y, W: l.cells[l.col], H: l.rowH}
		l.col++
	default:
		if h <= 0 {
			h = ctx.cfg.rowHeight()
		}
		r = Rect{X: l.x, Y: l.y, W: l.width, H: h}
		l.y += h + sp
	}
	l.maxY = max(l.maxY, r.Bottom())
	return r
}

// Spacer skips h units of vertical space.
func (ctx *Context) Spacer(h float32) {
	ctx.Next(h)
}

// ContentRect is the area the current scope lays out into.
func (ctx *Context) ContentRect() Rect {
	if ctx == nil || !ctx.scopeOpen() {
		return Rect{}
	}
	return ctx.lay.area
}

// ===== Legacy row / grid =====

// Row splits the content width into cols equal cells of the given height.
// Cells are handed out left to right by Next; once cols cells are used the
// row repeats one row height lower.
func (ctx *Context) Row(cols int, height float32) bool {
	return ctx.row(cols, height, nil)
}

// RowRatio is Row with cells proportional to weights.
func (ctx *Context) RowRatio(height float32, weights ...float32) bool {
	return ctx.row(len(weights), height, weights)
}

// Grid lays out cells row-major, cols per row, each cellHeight tall.
func (ctx *Context) Grid(cols int, cellHeight float32) bool {
	return ctx.row(cols, cellHeight, nil)
}

// Flow ends any row/grid and returns to one widget per row.
func (ctx *Context) Flow() {
	if ctx == nil {
		return
	}
	ctx.closeRow()
}

func (ctx *Context) row(cols int, height float32, weights []float32) bool {
	if ctx == nil || !ctx.scopeOpen() || cols <= 0 || cols > ctx.cfg.MaxBoxChildren {
		return false
	}
	ctx.closeRow()
	var sizes [maxSolveChildren]Size
	for i := 0; i < cols; i++ {
		w := float32(1)
		if weights != nil {
			w = weights[i]
		}
		sizes[i] = Grow(w)
	}
	l := &ctx.lay
	sp := ctx.cfg.Padding
	Solve(l.width, sp, sizes[:cols], l.cells[:cols])
	var x float32
	for i := 0; i < cols; i++ {
		l.cellX[i] = x
		x += l.cells[i] + sp
	}
	if height <= 0 {
		height = ctx.cfg.rowHeight()
	}
	l.mode, l.cols, l.col, l.rowH = modeRow, cols, 0, height
	return true
}

func (ctx *Context) closeRow() {
	l := &ctx.lay
	if l.mode != modeRow {
		return
	}
	if l.col > 0 {
		l.y += l.rowH + ctx.cfg.Padding
	}
	l.mode, l.cols, l.col = modeFlow, 0, 0
}

// requireWidth records that content reaches right, for auto-width windows.
func (ctx *Context) requireWidth(right float32) {
	if ctx.win == nil || ctx.modal.rendering {
		return
	}
	ctx.contentW = max(ctx.contentW, right-ctx.winContent.X)
}
