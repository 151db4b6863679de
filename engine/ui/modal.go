package ui

// modalState walks closed -> active+rendering -> active -> closed. While
// active and not rendering, the modal blocks input to everything else.
type modalState struct {
	active      bool
	rendering   bool
	id          ID
	age         int // BeginFrames since it opened
	clickInside bool
	rect        Rect
	mark        scopeMark
}

// BeginModal opens or re-enters the modal called name covering r and
// directs layout and drawing into it until EndModal. Opening a different
// modal closes the active one first. It returns false while another modal
// body is still rendering or the clip stack is full.
func (ctx *Context) BeginModal(name string, r Rect) bool {
	if ctx == nil || !ctx.inFrame || r.Empty() {
		return false
	}
	if ctx.modal.rendering {
		ctx.log.Debug("ui: modal already rendering", "modal", ctx.modal.id)
		return false
	}
	if ctx.clip.full() {
		ctx.log.Warn("ui: clip stack full, modal not opened", "name", name)
		return false
	}
	id := HashID(name)
	if ctx.modal.active && ctx.modal.id != id {
		ctx.log.Debug("ui: closing stale modal", "stale", ctx.modal.id, "name", name)
		ctx.CloseModal()
	}
	m := &ctx.modal
	if !m.active {
		*m = modalState{active: true, id: id}
		ctx.MarkDirty(r)
	}
	m.rect = r
	m.rendering = true
	m.mark = ctx.mark()
	ctx.clip.push(r)

	ctx.modalSaved = ctx.lay
	ctx.lay = newCursor(r.Inset(ctx.cfg.Padding), ctx.boxes.depth())

	if ctx.in.Down&MouseLeft != 0 && r.Contains(ctx.in.MouseX, ctx.in.MouseY) {
		m.clickInside = true
	}
	return true
}

// EndModal ends the modal body. The modal stays active, blocking input,
// until CloseModal or another modal replaces it.
func (ctx *Context) EndModal() {
	if ctx == nil || !ctx.modal.rendering {
		return
	}
	ctx.closeRow()
	m := &ctx.modal
	want := m.mark
	want.clip++
	m.rendering = false
	ctx.checkBalance("modal", "", want)
	ctx.clip.truncate(m.mark.clip)
	ctx.lay = ctx.modalSaved
}

// CloseModal closes the active modal, ending its body first if needed.
func (ctx *Context) CloseModal() {
	if ctx == nil || !ctx.modal.active {
		return
	}
	if ctx.modal.rendering {
		ctx.EndModal()
	}
	ctx.MarkDirty(ctx.modal.rect)
	ctx.modal = modalState{}
}

func (ctx *Context) ModalActive() bool {
	return ctx != nil && ctx.modal.active
}

// ModalShouldClose reports a click outside the active modal: the left
// button was released this frame outside its rect, no press landed inside,
// and the modal is at least one frame old so the click that opened it does
// not count.
func (ctx *Context) ModalShouldClose() bool {
	if ctx == nil {
		return false
	}
	m := &ctx.modal
	return m.active &&
		!m.rendering &&
		m.age > 0 &&
		!m.clickInside &&
		ctx.in.Released&MouseLeft != 0 &&
		!m.rect.Contains(ctx.in.MouseX, ctx.in.MouseY)
}

// ===== Input layers =====

type layerRegion struct {
	rect  Rect
	depth int
}

// layerState double-buffers overlay regions: regions pushed this frame
// block input next frame, after the swap in BeginFrame.
type layerState struct {
	cur, prev []layerRegion
	depth     int
}

func newLayerState(capacity int) layerState {
	return layerState{
		cur:  make([]layerRegion, 0, capacity),
		prev: make([]layerRegion, 0, capacity),
	}
}

func (l *layerState) swap() {
	l.prev, l.cur = l.cur, l.prev[:0]
	l.depth = 0
}

// PushLayer registers r as an overlay: from the next frame on, widgets on
// lower layers under r ignore the pointer. Drawing is not reordered, so
// popup content should be declared after what it covers.
func (ctx *Context) PushLayer(r Rect) bool {
	if ctx == nil || !ctx.inFrame {
		return false
	}
	l := &ctx.layers
	if l.depth >= ctx.cfg.MaxLayers || len(l.cur) == cap(l.cur) {
		ctx.log.Debug("ui: layer capacity reached", "depth", l.depth)
		return false
	}
	l.depth++
	l.cur = append(l.cur, layerRegion{rect: r, depth: l.depth})
	return true
}

func (ctx *Context) PopLayer() {
	if ctx == nil {
		return
	}
	floor := 0
	if ctx.win != nil {
		floor = ctx.win.mark.layer
	}
	if ctx.layers.depth > floor {
		ctx.layers.depth--
	}
}

func (ctx *Context) LayerDepth() int {
	if ctx == nil {
		return 0
	}
	return ctx.layers.depth
}

// layerBlocked reports whether last frame's overlay regions above the
// current depth cover the pointer.
func (ctx *Context) layerBlocked() bool {
	mx, my := ctx.in.MouseX, ctx.in.MouseY
	for _, reg := range ctx.layers.prev {
		if reg.depth > ctx.layers.depth && reg.rect.Contains(mx, my) {
			return true
		}
	}
	return false
}

// inputBlocked reports whether widgets in the current scope must ignore
// the pointer.
func (ctx *Context) inputBlocked() bool {
	if ctx.modal.active && !ctx.modal.rendering {
		return true
	}
	if ctx.moving != 0 || ctx.resizing != 0 {
		return true
	}
	if ctx.layerBlocked() {
		return true
	}
	return !ctx.modal.rendering && ctx.win != nil && ctx.hoverWin != ctx.win.id
}

// keysBlocked reports whether keyboard activation must be ignored: an open
// modal owns the keyboard while its body is not being declared.
func (ctx *Context) keysBlocked() bool {
	return ctx.modal.active && !ctx.modal.rendering
}
