// Package widgets is the small skin the demos share: labels, buttons,
// checkboxes, sliders, a spinner and a confirm dialog, all drawn through
// ui.Context so they run unchanged on the GL and terminal backends.
package widgets

import (
	"math"

	"github.com/hubastard/iui/engine/colors"
	"github.com/hubastard/iui/engine/text"
	"github.com/hubastard/iui/engine/ui"
)

var (
	Text     = colors.Color{0.92, 0.94, 0.96, 1}.Pack()
	Muted    = colors.Color{0.55, 0.60, 0.66, 1}.Pack()
	Idle     = colors.Color{0.20, 0.24, 0.30, 1}
	Hot      = colors.Color{0.28, 0.36, 0.46, 1}
	Accent   = colors.Color{0.30, 0.56, 0.90, 1}
	Disabled = colors.Color{0.14, 0.15, 0.17, 1}
	Focus    = colors.Color{0.95, 0.75, 0.25, 1}.Pack()
)

const radius = 3

// Label draws s wrapped to the current column width, one layout row per
// line.
func Label(ctx *ui.Context, s string, c colors.RGBA) {
	width := ctx.ContentRect().W
	for _, line := range text.Wrap(s, width, ctx.TextWidth) {
		r := ctx.Next(ctx.Config().FontHeight)
		ctx.DrawText(r.X, r.Y, line, c)
	}
}

// Button is a focusable push button; it reports a click by pointer, Enter
// or Space.
func Button(ctx *ui.Context, label string) bool {
	return button(ctx, label, false)
}

// DisabledButton draws a button that never clicks.
func DisabledButton(ctx *ui.Context, label string) {
	button(ctx, label, true)
}

func button(ctx *ui.Context, label string, disabled bool) bool {
	r := ctx.Next(0)
	id := ctx.ID(label)
	it := ctx.Interact(id, r, ui.InteractOptions{Disabled: disabled, Focusable: true})
	ctx.DrawRect(r, radius, fill(ctx, id, it.State))
	if it.Focused {
		outline(ctx, r, Focus)
	}
	tw := ctx.TextWidth(label)
	tc := Text
	if disabled {
		tc = Muted
	}
	ctx.DrawText(r.X+(r.W-tw)/2, r.Y+(r.H-ctx.Config().FontHeight)/2, label, tc)
	return it.Clicked
}

// Checkbox toggles *v on click and reports whether it changed.
func Checkbox(ctx *ui.Context, label string, v *bool) bool {
	r := ctx.Next(0)
	id := ctx.ID(label)
	it := ctx.Interact(id, r, ui.InteractOptions{Focusable: true})
	if it.Clicked {
		*v = !*v
	}
	box := ui.Rect{X: r.X, Y: r.Y, W: r.H, H: r.H}
	ctx.DrawRect(box, radius, fill(ctx, id, it.State))
	if *v {
		ctx.DrawRect(box.Inset(r.H/4), radius, Accent.Pack())
	}
	if it.Focused {
		outline(ctx, box, Focus)
	}
	pad := ctx.Config().Padding
	ctx.DrawText(box.Right()+pad, r.Y+(r.H-ctx.Config().FontHeight)/2, label, Text)
	return it.Clicked
}

// Slider drags *v across [lo, hi]. Left and Right step by a tenth of the
// range while it has focus. It reports whether *v changed.
func Slider(ctx *ui.Context, label string, v *float32, lo, hi float32) bool {
	if hi <= lo {
		return false
	}
	r := ctx.Next(0)
	id := ctx.ID(label)
	it := ctx.Interact(id, r, ui.InteractOptions{Focusable: true, Draggable: true})
	old := *v
	switch {
	case it.State == ui.StatePressed || it.State == ui.StateDragged:
		t := (ctx.Input().MouseX - r.X) / r.W
		*v = lo + clamp01(t)*(hi-lo)
	case it.Focused && ctx.Input().Key == ui.KeyLeft:
		*v -= (hi - lo) / 10
	case it.Focused && ctx.Input().Key == ui.KeyRight:
		*v += (hi - lo) / 10
	}
	*v = min(max(*v, lo), hi)

	ctx.DrawRect(r, radius, fill(ctx, id, it.State))
	knob := r
	knob.W = max(r.H/2, 4)
	knob.X = r.X + (r.W-knob.W)*(*v-lo)/(hi-lo)
	ctx.DrawRect(knob, radius, Accent.Pack())
	if it.Focused {
		outline(ctx, r, Focus)
	}
	tw := ctx.TextWidth(label)
	ctx.DrawText(r.X+(r.W-tw)/2, r.Y+(r.H-ctx.Config().FontHeight)/2, label, Text)
	return *v != old
}

// Spinner draws a busy indicator at phase t (radians). Backends without arcs
// get a sweeping bar instead.
func Spinner(ctx *ui.Context, t float32) {
	r := ctx.Next(0)
	if ctx.Supports(ui.CapArc) {
		rad := r.H / 2
		ctx.DrawArc(r.X+rad, r.Y+rad, rad-1, t, t+4.2, 2, Accent.Pack())
		return
	}
	ctx.DrawRect(r, 0, Idle.Pack())
	bar := r
	bar.W = r.W / 4
	bar.X = r.X + (r.W-bar.W)*frac(t/6.2832)
	ctx.DrawRect(bar, 0, Accent.Pack())
}

// fill mixes the state color with the hover and press animations.
func fill(ctx *ui.Context, id ui.ID, s ui.State) colors.RGBA {
	switch s {
	case ui.StateDisabled:
		return Disabled.Pack()
	case ui.StatePressed, ui.StateDragged:
		return Accent.Scale(0.8 + 0.2*ctx.PressProgress(id)).Pack()
	}
	return lerp(Idle, Hot, ctx.HoverProgress(id)).Pack()
}

// outline frames r with lines, or with four thin rects when the backend
// cannot draw lines.
func outline(ctx *ui.Context, r ui.Rect, c colors.RGBA) {
	if ctx.Supports(ui.CapLine) {
		x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()
		ctx.DrawLine(x0, y0, x1, y0, 1, c)
		ctx.DrawLine(x1, y0, x1, y1, 1, c)
		ctx.DrawLine(x1, y1, x0, y1, 1, c)
		ctx.DrawLine(x0, y1, x0, y0, 1, c)
		return
	}
	ctx.DrawRect(ui.Rect{X: r.X, Y: r.Y, W: r.W, H: 1}, 0, c)
	ctx.DrawRect(ui.Rect{X: r.X, Y: r.Bottom() - 1, W: r.W, H: 1}, 0, c)
	ctx.DrawRect(ui.Rect{X: r.X, Y: r.Y, W: 1, H: r.H}, 0, c)
	ctx.DrawRect(ui.Rect{X: r.Right() - 1, Y: r.Y, W: 1, H: r.H}, 0, c)
}

func lerp(a, b colors.Color, t float32) colors.Color {
	for i := range a {
		a[i] += (b[i] - a[i]) * t
	}
	return a
}

func clamp01(v float32) float32 { return min(max(v, 0), 1) }

func frac(v float32) float32 { return v - float32(math.Floor(float64(v))) }
