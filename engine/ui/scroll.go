package ui

import "math"

const scrollBarWidth = 4

type scrollEntry struct {
	rect      Rect
	offset    *float32
	saved     cursor
	clipDepth int
}

// BeginScroll opens a vertical scroll region of height h in the current
// layout. offset is owned by the caller and persists between frames; it is
// clamped to the content measured this frame and moved by the wheel while
// the pointer is over the region. Every successful BeginScroll needs an
// EndScroll.
func (ctx *Context) BeginScroll(h float32, offset *float32) bool {
	if ctx == nil || offset == nil || !ctx.scopeOpen() {
		return false
	}
	if len(ctx.scrolls) == cap(ctx.scrolls) || ctx.clip.full() {
		ctx.log.Debug("ui: scroll region rejected", "depth", len(ctx.scrolls))
		return false
	}
	r := ctx.Next(h)
	if r.Empty() {
		return false
	}
	if *offset < 0 || math.IsNaN(float64(*offset)) {
		*offset = 0
	}
	ctx.scrolls = append(ctx.scrolls, scrollEntry{
		rect:      r,
		offset:    offset,
		saved:     ctx.lay,
		clipDepth: ctx.clip.depth(),
	})
	ctx.clip.push(r)
	area := Rect{X: r.X, Y: r.Y - *offset, W: max(0, r.W-scrollBarWidth), H: r.H}
	ctx.lay = newCursor(area, ctx.boxes.depth())
	return true
}

// EndScroll closes the innermost scroll region. Inner regions close first,
// so they get the wheel before the regions around them.
func (ctx *Context) EndScroll() {
	if ctx == nil || len(ctx.scrolls) == 0 {
		return
	}
	ctx.closeRow()
	s := &ctx.scrolls[len(ctx.scrolls)-1]
	top := s.rect.Y - *s.offset
	contentH := ctx.lay.maxY - top
	maxOff := max(0, contentH-s.rect.H)

	mx, my := ctx.in.MouseX, ctx.in.MouseY
	if ctx.in.ScrollY != 0 && s.rect.Contains(mx, my) && ctx.clip.top().Contains(mx, my) && !ctx.inputBlocked() {
		*s.offset -= ctx.in.ScrollY * ctx.cfg.rowHeight()
		ctx.in.ScrollY = 0
		ctx.MarkDirty(s.rect)
	}
	*s.offset = clampf(*s.offset, 0, maxOff)

	if maxOff > 0 {
		visible := s.rect.H / contentH
		bar := Rect{
			X: s.rect.Right() - scrollBarWidth,
			Y: s.rect.Y + s.rect.H*(*s.offset/contentH),
			W: scrollBarWidth,
			H: max(scrollBarWidth, s.rect.H*visible),
		}
		ctx.DrawRect(bar, scrollBarWidth*0.5, ctx.cfg.Style.Grip)
	}

	ctx.boxes.truncate(ctx.lay.boxFloor)
	ctx.lay = s.saved
	ctx.clip.truncate(s.clipDepth)
	ctx.scrolls = ctx.scrolls[:len(ctx.scrolls)-1]
}
