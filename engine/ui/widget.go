package ui

type State uint8

const (
	StateDefault State = iota
	StateHovered
	StatePressed
	StateFocused
	StateDisabled
	StateDragged
)

func (s State) String() string {
	switch s {
	case StateDefault:
		return "default"
	case StateHovered:
		return "hovered"
	case StatePressed:
		return "pressed"
	case StateFocused:
		return "focused"
	case StateDisabled:
		return "disabled"
	case StateDragged:
		return "dragged"
	default:
		return "unknown"
	}
}

// dragThreshold is how far the pointer must travel from the press point
// before a held widget counts as dragged.
const dragThreshold = 2

// WidgetState classifies r against the pointer. It only ever returns
// Default, Hovered, Pressed or Disabled; Interact layers focus, capture and
// dragging on top.
func (ctx *Context) WidgetState(r Rect, disabled bool) State {
	if ctx == nil {
		return StateDefault
	}
	if disabled {
		return StateDisabled
	}
	if ctx.inputBlocked() {
		return StateDefault
	}
	mx, my := ctx.in.MouseX, ctx.in.MouseY
	if !r.Contains(mx, my) || !ctx.clip.top().Contains(mx, my) {
		return StateDefault
	}
	if ctx.in.Down&MouseLeft != 0 {
		if ctx.modal.rendering {
			ctx.modal.clickInside = true
		}
		return StatePressed
	}
	return StateHovered
}

type InteractOptions struct {
	Disabled  bool
	Focusable bool // joins Tab navigation; Enter/Space click when focused
	Draggable bool
}

type Interaction struct {
	State   State
	Clicked bool
	Hovered bool
	Focused bool
	// Pointer motion since last frame while dragged.
	DragDX, DragDY float32
}

// Interact runs the full widget state machine for id over r: press capture,
// click on release over the widget, dragging and keyboard focus.
func (ctx *Context) Interact(id ID, r Rect, opts InteractOptions) Interaction {
	var it Interaction
	if ctx == nil {
		return it
	}
	if opts.Focusable && !opts.Disabled {
		it.Focused = ctx.Focusable()
	}
	base := ctx.WidgetState(r, opts.Disabled)
	it.State = base
	if base == StateDisabled {
		if ctx.active == id {
			ctx.active = 0
		}
		return it
	}

	in := &ctx.in
	mx, my := in.MouseX, in.MouseY
	it.Hovered = base == StateHovered || base == StatePressed
	if it.Hovered {
		ctx.hover(id, r)
	}

	if it.Hovered && in.Pressed&MouseLeft != 0 && ctx.active == 0 {
		ctx.active = id
		ctx.pressX, ctx.pressY = mx, my
		ctx.dragging = false
		ctx.MarkDirty(r)
	}

	switch {
	case ctx.active == id:
		if in.Down&MouseLeft != 0 {
			it.State = StatePressed
			if opts.Draggable {
				if !ctx.dragging && (abs(mx-ctx.pressX) > dragThreshold || abs(my-ctx.pressY) > dragThreshold) {
					ctx.dragging = true
				}
				if ctx.dragging {
					it.State = StateDragged
					it.DragDX, it.DragDY = mx-ctx.prevMouseX, my-ctx.prevMouseY
				}
			}
		}
		if in.Released&MouseLeft != 0 && it.Hovered && !ctx.dragging {
			it.Clicked = true
			ctx.MarkDirty(r)
		}
	case base == StatePressed:
		// Held over us, but the press belongs to someone else.
		it.State = StateHovered
	}

	if it.Focused {
		if (in.Key == KeyEnter || in.Key == KeySpace) && !ctx.keysBlocked() {
			it.Clicked = true
		}
		if it.State == StateDefault {
			it.State = StateFocused
		}
	}
	return it
}

// hover makes id the hover animation target.
func (ctx *Context) hover(id ID, r Rect) {
	a := &ctx.anim
	if a.hot != id {
		a.hot, a.hover = id, 0
		ctx.MarkDirty(r)
	}
	a.hotSeen = true
}

// HoverProgress is id's hover animation in [0..1]; 0 when not hovered.
func (ctx *Context) HoverProgress(id ID) float32 {
	if ctx == nil || ctx.anim.hot != id {
		return 0
	}
	return ctx.anim.hover
}

// PressProgress is id's press animation in [0..1]; 0 when not held.
func (ctx *Context) PressProgress(id ID) float32 {
	if ctx == nil || ctx.anim.pressed != id {
		return 0
	}
	return ctx.anim.press
}

// Active is the id of the widget holding the pointer, or 0.
func (ctx *Context) Active() ID {
	if ctx == nil {
		return 0
	}
	return ctx.active
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
