package ui

// clipStack is a bounded stack of already-intersected rectangles.
// len(items) is the depth, cap(items) the capacity.
type clipStack struct {
	items []Rect
}

func newClipStack(capacity int) clipStack {
	return clipStack{items: make([]Rect, 0, capacity)}
}

func (s *clipStack) depth() int { return len(s.items) }

func (s *clipStack) full() bool { return len(s.items) == cap(s.items) }

func (s *clipStack) top() Rect {
	if len(s.items) == 0 {
		return fullPlane
	}
	return s.items[len(s.items)-1]
}

// push stores r intersected with the current top. It fails without touching
// the stack when at capacity.
func (s *clipStack) push(r Rect) bool {
	if s.full() {
		return false
	}
	s.items = append(s.items, r.Intersect(s.top()))
	return true
}

func (s *clipStack) pop() {
	if len(s.items) > 0 {
		s.items = s.items[:len(s.items)-1]
	}
}

func (s *clipStack) truncate(depth int) {
	if depth >= 0 && depth < len(s.items) {
		s.items = s.items[:depth]
	}
}

// PushClip narrows the clip to r. It returns false, leaving the stack as it
// was, when the stack is full.
func (ctx *Context) PushClip(r Rect) bool {
	if ctx == nil {
		return false
	}
	if !ctx.clip.push(r) {
		ctx.log.Debug("ui: clip stack full", "depth", ctx.clip.depth())
		return false
	}
	return true
}

// PopClip restores the previous clip. Pops that would remove a clip owned
// by the open window, modal or scroll region are ignored.
func (ctx *Context) PopClip() {
	if ctx == nil {
		return
	}
	if ctx.clip.depth() <= ctx.clipFloor() {
		ctx.log.Debug("ui: clip pop below scope", "depth", ctx.clip.depth())
		return
	}
	ctx.clip.pop()
}

// Clip returns the current clip in logical units.
func (ctx *Context) Clip() Rect {
	if ctx == nil {
		return fullPlane
	}
	return ctx.clip.top()
}

func (ctx *Context) ClipDepth() int {
	if ctx == nil {
		return 0
	}
	return ctx.clip.depth()
}

// clipFloor is the lowest depth PopClip may reach: clips pushed by the open
// window, modal or scroll region belong to their scope.
func (ctx *Context) clipFloor() int {
	floor := 0
	if ctx.win != nil {
		floor = ctx.win.mark.clip + 1
	}
	if ctx.modal.rendering {
		floor = max(floor, ctx.modal.mark.clip+1)
	}
	if n := len(ctx.scrolls); n > 0 {
		floor = max(floor, ctx.scrolls[n-1].clipDepth+1)
	}
	return floor
}
