package ui

import "github.com/hubastard/iui/engine/profiler"

const (
	hoverSpeed = 8 // progress units per second
	pressSpeed = 12
	blinkRate  = 1.06 // seconds per caret cycle
)

// animState carries the few interpolants the core advances per frame.
type animState struct {
	hot      ID
	hotSeen  bool
	hover    float32
	pressed  ID
	press    float32
	blink    float32
	caretVis bool
}

func (a *animState) advance(dt float32) {
	if dt < 0 {
		dt = 0
	}
	if a.hot != 0 {
		a.hover = min(1, a.hover+dt*hoverSpeed)
	}
	if a.pressed != 0 {
		a.press = min(1, a.press+dt*pressSpeed)
	}
	a.blink += dt
	for a.blink >= blinkRate {
		a.blink -= blinkRate
	}
	a.caretVis = a.blink < blinkRate*0.5
}

// settle drops the hover target when no widget claimed it this frame.
func (a *animState) settle(active ID) {
	if !a.hotSeen {
		a.hot, a.hover = 0, 0
	}
	a.hotSeen = false
	if active != a.pressed {
		a.pressed, a.press = active, 0
	}
}

// BeginFrame starts a frame. dt is the time since the previous frame in
// seconds. The host fills Input before calling it.
func (ctx *Context) BeginFrame(dt float32) {
	if ctx == nil {
		return
	}
	if ctx.inFrame {
		ctx.log.Warn("ui: BeginFrame without EndFrame", "frame", ctx.frame)
		ctx.EndFrame()
	}
	ctx.frame++
	ctx.inFrame = true
	ctx.endProfile = profiler.Start("ui.Frame")

	ctx.anim.advance(dt)
	if ctx.modal.active {
		ctx.modal.age++
	}
	ctx.layers.swap()
	ctx.focus.count = 0
	ctx.batch.beginFrame()
	ctx.contentW = 0

	// A drag that started on an earlier frame keeps its owner until every
	// button is up and no release is pending.
	if ctx.in.idle() {
		ctx.active = 0
		ctx.dragging = false
		ctx.modal.clickInside = false
	}
	ctx.hoverWin = ctx.pickHover()
}

// EndFrame closes the frame: it repairs anything left open, runs focus
// navigation, flushes drawing and ages the caches.
func (ctx *Context) EndFrame() {
	if ctx == nil || !ctx.inFrame {
		return
	}
	if ctx.win != nil {
		ctx.log.Warn("ui: window not closed", "name", ctx.win.name)
		ctx.EndWindow()
	}
	if ctx.modal.rendering {
		ctx.log.Warn("ui: modal not ended", "modal", ctx.modal.id)
		ctx.EndModal()
	}
	ctx.checkBalance("frame", "", scopeMark{})

	if ctx.in.Down&MouseLeft == 0 {
		ctx.moving, ctx.resizing = 0, 0
		if ctx.in.Released&MouseLeft != 0 {
			ctx.active, ctx.dragging = 0, false
		}
	}
	ctx.anim.settle(ctx.active)
	ctx.navigateFocus()

	ctx.prevMouseX, ctx.prevMouseY = ctx.in.MouseX, ctx.in.MouseY
	ctx.Flush()
	ctx.text.decay()
	ctx.dirty.endFrame()
	ctx.in.ClearEdges()

	ctx.inFrame = false
	if ctx.endProfile != nil {
		ctx.endProfile()
		ctx.endProfile = nil
	}
}

// InFrame reports whether BeginFrame was called without a matching EndFrame.
func (ctx *Context) InFrame() bool {
	return ctx != nil && ctx.inFrame
}

// CaretVisible is the blink phase for text carets.
func (ctx *Context) CaretVisible() bool {
	return ctx != nil && ctx.anim.caretVis
}

// ===== Focus =====

type focusState struct {
	index int // -1: nothing focused
	count int // focusables registered this frame
}

// Focusable registers the next focusable widget in call order and reports
// whether it holds keyboard focus.
func (ctx *Context) Focusable() bool {
	if ctx == nil {
		return false
	}
	i := ctx.focus.count
	ctx.focus.count++
	return i == ctx.focus.index
}

// Focused is the index of the focused widget, or -1.
func (ctx *Context) Focused() int {
	if ctx == nil {
		return -1
	}
	return ctx.focus.index
}

// SetFocus moves focus to the i-th focusable; a negative i clears it.
func (ctx *Context) SetFocus(i int) {
	if ctx == nil {
		return
	}
	ctx.focus.index = max(-1, i)
}

// navigateFocus cycles focus over this frame's focusables on Tab and
// Shift+Tab. Focus that points past the last focusable is dropped.
func (ctx *Context) navigateFocus() {
	f := &ctx.focus
	if f.count == 0 {
		f.index = -1
		return
	}
	if f.index >= f.count {
		f.index = -1
	}
	if ctx.in.Key != KeyTab {
		return
	}
	if ctx.in.Mods&ModShift != 0 {
		if f.index <= 0 {
			f.index = f.count - 1
		} else {
			f.index--
		}
		return
	}
	f.index = (f.index + 1) % f.count
}
