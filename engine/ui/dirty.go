package ui

// dirtyTracker aggregates changed regions. Once it would overflow it gives
// up and reports full redraw until tracking is switched off and on again.
// The first frame after enabling is always a full redraw: nothing drawn
// before it can be kept.
type dirtyTracker struct {
	rects   []Rect
	enabled bool
	full    bool
	fresh   bool
}

func newDirtyTracker(capacity int) dirtyTracker {
	return dirtyTracker{rects: make([]Rect, 0, capacity)}
}

func (d *dirtyTracker) enable(on bool) {
	d.enabled = on
	d.full = false
	d.fresh = on
	d.rects = d.rects[:0]
}

func (d *dirtyTracker) mark(r Rect) {
	if !d.enabled || d.full || r.Empty() {
		return
	}
	// A merge can grow r into rects it did not touch before; rescan until
	// nothing intersects.
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(d.rects); i++ {
			if d.rects[i].Intersects(r) {
				r = r.Union(d.rects[i])
				last := len(d.rects) - 1
				d.rects[i] = d.rects[last]
				d.rects = d.rects[:last]
				merged = true
				break
			}
		}
	}
	if len(d.rects) == cap(d.rects) {
		d.full = true
		d.rects = d.rects[:0]
		return
	}
	d.rects = append(d.rects, r)
}

// isDirty is true for everything while tracking is off or degraded.
func (d *dirtyTracker) isDirty(r Rect) bool {
	if !d.enabled || d.full || d.fresh {
		return true
	}
	for i := range d.rects {
		if d.rects[i].Intersects(r) {
			return true
		}
	}
	return false
}

// endFrame forgets the regions that were just redrawn.
func (d *dirtyTracker) endFrame() {
	d.rects = d.rects[:0]
	d.fresh = false
}

// EnableDirty switches partial-redraw tracking. Both directions clear the
// tracked set and any full-redraw degradation; the frame that is running
// or starts next redraws everything.
func (ctx *Context) EnableDirty(on bool) {
	if ctx == nil {
		return
	}
	ctx.dirty.enable(on)
}

func (ctx *Context) MarkDirty(r Rect) {
	if ctx == nil {
		return
	}
	ctx.dirty.mark(r)
	if ctx.dirty.full {
		ctx.log.Debug("ui: dirty set overflow, full redraw")
	}
}

func (ctx *Context) IsDirty(r Rect) bool {
	if ctx == nil {
		return true
	}
	return ctx.dirty.isDirty(r)
}

// DirtyRegions returns the tracked set. The slice is reused; copy it to keep it.
func (ctx *Context) DirtyRegions() []Rect {
	if ctx == nil {
		return nil
	}
	return ctx.dirty.rects
}

func (ctx *Context) FullRedraw() bool {
	if ctx == nil {
		return true
	}
	d := &ctx.dirty
	return !d.enabled || d.full || d.fresh
}
