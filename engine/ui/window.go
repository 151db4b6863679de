package ui

import (
	"cmp"
	"slices"

	"github.com/hubastard/iui/engine/colors"
)

type WindowFlags uint8

const (
	WindowResizable WindowFlags = 1 << iota
	WindowAutoWidth             // grow to content width, one frame late
	WindowAutoHeight            // grow to content height, one frame late
	WindowPinned                // no move, no resize
	WindowNoTitle
)

type window struct {
	id        ID
	name      string
	rect      Rect
	minW      float32
	minH      float32
	flags     WindowFlags
	z         int
	lastFrame uint64
	mark      scopeMark
}

// Window is a read-only view of a window's persistent state.
type Window struct {
	ID    ID
	Name  string
	Rect  Rect
	MinW  float32
	MinH  float32
	Flags WindowFlags
	Z     int
}

func (w *window) snapshot() Window {
	return Window{ID: w.id, Name: w.name, Rect: w.rect, MinW: w.minW, MinH: w.minH, Flags: w.flags, Z: w.z}
}

func (ctx *Context) findWindow(id ID) *window {
	for i := range ctx.windows {
		if ctx.windows[i].id == id {
			return &ctx.windows[i]
		}
	}
	return nil
}

// lookupWindow returns the window called name, creating it on first use.
// It returns nil when the table is full.
func (ctx *Context) lookupWindow(name string, r Rect) *window {
	id := HashID(name)
	if w := ctx.findWindow(id); w != nil {
		return w
	}
	if len(ctx.windows) == cap(ctx.windows) {
		return nil
	}
	ctx.windows = append(ctx.windows, window{id: id, name: name, rect: r, z: len(ctx.windows) + 1})
	return &ctx.windows[len(ctx.windows)-1]
}

// bringToFront gives w the highest z and packs the others into 1..n-1,
// keeping their relative order.
func (ctx *Context) bringToFront(w *window) {
	top := len(ctx.windows)
	if w.z == top {
		return
	}
	for i := range ctx.windows {
		o := &ctx.windows[i]
		if o.z > w.z {
			o.z--
		}
	}
	w.z = top
	ctx.MarkDirty(w.rect)
}

// pickHover returns the topmost window that was on screen last frame and
// contains the pointer.
func (ctx *Context) pickHover() ID {
	var best *window
	for i := range ctx.windows {
		w := &ctx.windows[i]
		if w.lastFrame+1 != ctx.frame || !w.rect.Contains(ctx.in.MouseX, ctx.in.MouseY) {
			continue
		}
		if best == nil || w.z > best.z {
			best = w
		}
	}
	if best == nil {
		return 0
	}
	return best.id
}

func (ctx *Context) titleHeight(flags WindowFlags) float32 {
	if flags&WindowNoTitle != 0 {
		return 0
	}
	return ctx.cfg.TitleHeight
}

// BeginWindow opens the named window. x, y, w, h only matter the first time
// the name is seen; afterwards the window keeps its own position and size.
// It returns false when the window cannot open this frame, in which case
// EndWindow must not be called.
func (ctx *Context) BeginWindow(name string, x, y, w, h float32, flags WindowFlags) bool {
	if ctx == nil || !ctx.inFrame {
		return false
	}
	if ctx.win != nil {
		ctx.log.Debug("ui: window already open", "open", ctx.win.name, "name", name)
		return false
	}
	if name == "" || !(w > 0) || !(h > 0) || ctx.modal.rendering {
		return false
	}
	// The content clip is pushed after the chrome is drawn; check for room
	// first so a failure leaves nothing behind.
	if ctx.clip.full() {
		ctx.log.Warn("ui: clip stack full, window not opened", "name", name)
		return false
	}
	win := ctx.lookupWindow(name, Rect{X: x, Y: y, W: w, H: h})
	if win == nil {
		ctx.log.Warn("ui: window table full", "name", name, "max", cap(ctx.windows))
		return false
	}
	win.flags = flags
	win.lastFrame = ctx.frame

	before := win.rect
	if flags&WindowAutoWidth != 0 {
		win.rect.W = max(win.rect.W, win.minW)
	}
	if flags&WindowAutoHeight != 0 {
		win.rect.H = max(win.rect.H, win.minH)
	}
	ctx.dragWindow(win)
	if win.rect != before {
		ctx.MarkDirty(before)
		ctx.MarkDirty(win.rect)
	}

	ctx.win = win
	win.mark = ctx.mark()
	ctx.drawChrome(win)

	pad := ctx.cfg.Padding
	titleH := ctx.titleHeight(flags)
	content := Rect{
		X: win.rect.X + pad,
		Y: win.rect.Y + titleH + pad,
		W: max(0, win.rect.W-2*pad),
		H: max(0, win.rect.H-titleH-2*pad),
	}
	ctx.clip.push(content)
	ctx.winContent = content
	ctx.lay = newCursor(content, ctx.boxes.depth())
	ctx.contentW = 0
	return true
}

// dragWindow starts, continues or ignores a move/resize of win.
func (ctx *Context) dragWindow(win *window) {
	if win.flags&WindowPinned != 0 {
		if ctx.moving == win.id || ctx.resizing == win.id {
			ctx.moving, ctx.resizing = 0, 0
		}
		return
	}
	in := &ctx.in
	mx, my := in.MouseX, in.MouseY
	if in.Pressed&MouseLeft != 0 && ctx.hoverWin == win.id && !ctx.modal.active && !ctx.layerBlocked() && ctx.active == 0 {
		handle := ctx.cfg.ResizeHandle
		grip := Rect{X: win.rect.Right() - handle, Y: win.rect.Bottom() - handle, W: handle, H: handle}
		title := Rect{X: win.rect.X, Y: win.rect.Y, W: win.rect.W, H: ctx.titleHeight(win.flags)}
		switch {
		case win.flags&WindowResizable != 0 && grip.Contains(mx, my):
			ctx.bringToFront(win)
			ctx.resizing = win.id
			ctx.dragOffX, ctx.dragOffY = win.rect.Right()-mx, win.rect.Bottom()-my
		case title.Contains(mx, my):
			ctx.bringToFront(win)
			ctx.moving = win.id
			ctx.dragOffX, ctx.dragOffY = mx-win.rect.X, my-win.rect.Y
		default:
			ctx.bringToFront(win)
		}
	}
	if in.Down&MouseLeft == 0 {
		return
	}
	switch {
	case ctx.moving == win.id:
		win.rect.X, win.rect.Y = mx-ctx.dragOffX, my-ctx.dragOffY
	case ctx.resizing == win.id:
		minW := 2*ctx.cfg.Padding + ctx.cfg.ResizeHandle
		minH := ctx.titleHeight(win.flags) + minW
		win.rect.W = max(minW, mx+ctx.dragOffX-win.rect.X)
		win.rect.H = max(minH, my+ctx.dragOffY-win.rect.Y)
	}
}

func (ctx *Context) drawChrome(win *window) {
	st := &ctx.cfg.Style
	ctx.DrawRect(win.rect, st.Radius, st.WindowBg)
	if titleH := ctx.titleHeight(win.flags); titleH > 0 {
		title := Rect{X: win.rect.X, Y: win.rect.Y, W: win.rect.W, H: titleH}
		ctx.DrawRect(title, st.Radius, st.TitleBg)
		if ctx.be.text != nil {
			// Straight to emit: the title must not count as content width.
			pad := ctx.cfg.Padding
			ctx.emit(Command{
				Kind:  CmdText,
				X:     title.X + pad,
				Y:     title.Y + (titleH-ctx.cfg.FontHeight)*0.5,
				W:     ctx.TextWidth(win.name),
				H:     ctx.cfg.FontHeight,
				Text:  win.name,
				Color: st.TitleText,
			})
		}
	}
	if win.flags&WindowResizable != 0 && win.flags&WindowPinned == 0 {
		handle := ctx.cfg.ResizeHandle
		grip := Rect{X: win.rect.Right() - handle, Y: win.rect.Bottom() - handle, W: handle, H: handle}
		c := st.Grip
		if ctx.resizing == win.id {
			c = colors.White.Pack()
		}
		ctx.DrawRect(grip, 0, c)
	}
}

// EndWindow closes the open window. Calling it with no window open does
// nothing, so a second call in the same frame is harmless.
func (ctx *Context) EndWindow() {
	if ctx == nil || ctx.win == nil {
		return
	}
	if ctx.modal.rendering {
		ctx.log.Warn("ui: modal still rendering at window end", "modal", ctx.modal.id)
		ctx.EndModal()
	}
	ctx.closeRow()

	win := ctx.win
	pad := ctx.cfg.Padding
	if win.flags&WindowAutoHeight != 0 {
		win.minH = ctx.titleHeight(win.flags) + 2*pad + (ctx.lay.maxY - ctx.winContent.Y)
	}
	if win.flags&WindowAutoWidth != 0 {
		win.minW = ctx.contentW + 2*pad
	}

	want := win.mark
	want.clip++ // the content clip
	ctx.checkBalance("window", win.name, want)
	ctx.clip.truncate(win.mark.clip)

	ctx.win = nil
	ctx.winContent = Rect{}
	ctx.lay = cursor{}
}

// WindowRect is the open window's outer rectangle.
func (ctx *Context) WindowRect() Rect {
	if ctx == nil || ctx.win == nil {
		return Rect{}
	}
	return ctx.win.rect
}

// LookupWindow returns the persistent state of the window with id.
func (ctx *Context) LookupWindow(id ID) (Window, bool) {
	if ctx == nil {
		return Window{}, false
	}
	if w := ctx.findWindow(id); w != nil {
		return w.snapshot(), true
	}
	return Window{}, false
}

func (ctx *Context) WindowByName(name string) (Window, bool) {
	return ctx.LookupWindow(HashID(name))
}

// BringToFront raises a known window. It reports false for unknown names.
func (ctx *Context) BringToFront(name string) bool {
	if ctx == nil {
		return false
	}
	w := ctx.findWindow(HashID(name))
	if w == nil {
		return false
	}
	ctx.bringToFront(w)
	return true
}

// SortByZ orders window names back to front. Commands draw in the order
// they are issued, so declaring windows in this order paints the front
// window last. Names not seen yet sort first, keeping their order.
func (ctx *Context) SortByZ(names []string) {
	if ctx == nil {
		return
	}
	slices.SortStableFunc(names, func(a, b string) int {
		return cmp.Compare(ctx.windowZ(a), ctx.windowZ(b))
	})
}

func (ctx *Context) windowZ(name string) int {
	if w := ctx.findWindow(HashID(name)); w != nil {
		return w.z
	}
	return 0
}

// HoveredWindow is the id of the window under the pointer, or 0.
func (ctx *Context) HoveredWindow() ID {
	if ctx == nil {
		return 0
	}
	return ctx.hoverWin
}
