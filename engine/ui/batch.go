package ui

import "github.com/hubastard/iui/engine/colors"

type CommandKind uint8

const (
	CmdRect CommandKind = iota
	CmdText
	CmdLine
	CmdCircle
	CmdArc
)

func (k CommandKind) String() string {
	switch k {
	case CmdRect:
		return "rect"
	case CmdText:
		return "text"
	case CmdLine:
		return "line"
	case CmdCircle:
		return "circle"
	case CmdArc:
		return "arc"
	default:
		return "unknown"
	}
}

// Command is one recorded primitive. Kind selects which fields are live:
//
//	rect:   X, Y, W, H, Radius
//	text:   X, Y, Text (W, H hold the measured bounds)
//	line:   X, Y -> X2, Y2, Width
//	circle: X, Y (center), Radius
//	arc:    X, Y (center), Radius, Start, End, Width
type Command struct {
	Kind  CommandKind
	Clip  ClipRect
	Color colors.RGBA

	X, Y, W, H float32
	X2, Y2     float32
	Radius     float32
	Start, End float32
	Width      float32
	Text       string
}

// Bounds is the area the command can touch, used for culling and dirty tests.
func (c *Command) Bounds() Rect {
	switch c.Kind {
	case CmdLine:
		hw := max(c.Width, 1) * 0.5
		x0, x1 := min(c.X, c.X2), max(c.X, c.X2)
		y0, y1 := min(c.Y, c.Y2), max(c.Y, c.Y2)
		return Rect{X: x0 - hw, Y: y0 - hw, W: x1 - x0 + 2*hw, H: y1 - y0 + 2*hw}
	case CmdCircle, CmdArc:
		r := c.Radius + c.Width*0.5
		return Rect{X: c.X - r, Y: c.Y - r, W: 2 * r, H: 2 * r}
	default:
		return Rect{X: c.X, Y: c.Y, W: c.W, H: c.H}
	}
}

// BatchStats counts backend traffic for the current frame.
type BatchStats struct {
	Commands    int // issued to the backend
	ClipChanges int
	Flushes     int
	Skipped     int // outside the dirty set
	Dropped     int // unsupported capability or fully clipped
}

type batcher struct {
	enabled   bool
	cmds      []Command
	lastClip  ClipRect
	clipValid bool
	stats     BatchStats
}

func newBatcher(capacity int, enabled bool) batcher {
	return batcher{enabled: enabled, cmds: make([]Command, 0, capacity)}
}

// beginFrame forgets the backend clip: backends may reset state between frames.
func (b *batcher) beginFrame() {
	b.cmds = b.cmds[:0]
	b.clipValid = false
	b.stats = BatchStats{}
}

// SetBatching switches between buffered and pass-through drawing. Turning
// batching off flushes what is buffered.
func (ctx *Context) SetBatching(on bool) {
	if ctx == nil || ctx.batch.enabled == on {
		return
	}
	if !on {
		ctx.Flush()
	}
	ctx.batch.enabled = on
}

func (ctx *Context) Batching() bool {
	return ctx != nil && ctx.batch.enabled
}

// Flush replays buffered commands in emission order and re-issues the clip
// only when it changes.
func (ctx *Context) Flush() {
	if ctx == nil {
		return
	}
	b := &ctx.batch
	if len(b.cmds) == 0 {
		return
	}
	for i := range b.cmds {
		ctx.issue(&b.cmds[i])
	}
	clear(b.cmds)
	b.cmds = b.cmds[:0]
	b.stats.Flushes++
}

// issue hands one command to the backend.
func (ctx *Context) issue(c *Command) {
	b := &ctx.batch
	if !b.clipValid || c.Clip != b.lastClip {
		ctx.be.r.SetClip(c.Clip)
		b.lastClip = c.Clip
		b.clipValid = true
		b.stats.ClipChanges++
	}
	s := ctx.cfg.Scale
	switch c.Kind {
	case CmdRect:
		ctx.be.r.FillRoundedRect(Rect{X: c.X * s, Y: c.Y * s, W: c.W * s, H: c.H * s}, c.Radius*s, c.Color)
	case CmdText:
		ctx.be.text.DrawText(c.X*s, c.Y*s, c.Text, c.Color)
	case CmdLine:
		ctx.be.line.DrawLine(c.X*s, c.Y*s, c.X2*s, c.Y2*s, c.Width*s, c.Color)
	case CmdCircle:
		ctx.be.circle.DrawCircle(c.X*s, c.Y*s, c.Radius*s, c.Color)
	case CmdArc:
		ctx.be.arc.DrawArc(c.X*s, c.Y*s, c.Radius*s, c.Start, c.End, c.Width*s, c.Color)
	}
	b.stats.Commands++
}

// emit stamps the current clip on c and either buffers it or sends it
// straight through. Commands outside the dirty set are skipped here, so
// both paths draw the same thing.
func (ctx *Context) emit(c Command) {
	clip := ctx.clip.top()
	if clip.Empty() || !c.Bounds().Intersects(clip) {
		ctx.batch.stats.Dropped++
		return
	}
	b := &ctx.batch
	if !ctx.dirty.isDirty(c.Bounds()) {
		b.stats.Skipped++
		return
	}
	c.Clip = ToClipRect(clip, ctx.cfg.Scale)
	if !b.enabled {
		ctx.issue(&c)
		return
	}
	if len(b.cmds) == cap(b.cmds) {
		ctx.Flush()
	}
	b.cmds = append(b.cmds, c)
}

// Supports reports whether the backend implements an optional capability.
func (ctx *Context) Supports(c Capability) bool {
	return ctx != nil && ctx.be.caps&c == c
}

// ===== Drawing entry points =====

func (ctx *Context) DrawRect(r Rect, radius float32, c colors.RGBA) {
	if ctx == nil || r.Empty() {
		return
	}
	ctx.emit(Command{Kind: CmdRect, X: r.X, Y: r.Y, W: r.W, H: r.H, Radius: radius, Color: c})
}

// DrawText draws s with its top-left at (x, y). It returns false when the
// backend has no text capability; callers fall back on their own.
func (ctx *Context) DrawText(x, y float32, s string, c colors.RGBA) bool {
	if ctx == nil || ctx.be.text == nil {
		return false
	}
	if s == "" {
		return true
	}
	w := ctx.TextWidth(s)
	ctx.requireWidth(x + w)
	ctx.emit(Command{Kind: CmdText, X: x, Y: y, W: w, H: ctx.cfg.FontHeight, Text: s, Color: c})
	return true
}

func (ctx *Context) DrawLine(x0, y0, x1, y1, width float32, c colors.RGBA) bool {
	if ctx == nil || ctx.be.line == nil {
		return false
	}
	ctx.emit(Command{Kind: CmdLine, X: x0, Y: y0, X2: x1, Y2: y1, Width: width, Color: c})
	return true
}

func (ctx *Context) DrawCircle(cx, cy, radius float32, c colors.RGBA) bool {
	if ctx == nil || ctx.be.circle == nil {
		return false
	}
	if radius > 0 {
		ctx.emit(Command{Kind: CmdCircle, X: cx, Y: cy, Radius: radius, Color: c})
	}
	return true
}

func (ctx *Context) DrawArc(cx, cy, radius, start, end, width float32, c colors.RGBA) bool {
	if ctx == nil || ctx.be.arc == nil {
		return false
	}
	if radius > 0 {
		ctx.emit(Command{Kind: CmdArc, X: cx, Y: cy, Radius: radius, Start: start, End: end, Width: width, Color: c})
	}
	return true
}
