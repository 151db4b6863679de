package ui

import "github.com/hubastard/iui/engine/colors"

// ===== Backend capabilities =====

// Renderer is the required part of a backend. Everything the core draws
// degrades to rectangles, so a backend that only fills rects and honours the
// clip is complete.
type Renderer interface {
	FillRoundedRect(r Rect, radius float32, c colors.RGBA)
	SetClip(c ClipRect)
}

// Optional capabilities. A backend opts in by implementing the interface on
// the same value passed to New.

type TextDrawer interface {
	// DrawText draws s with its top-left corner at (x, y).
	DrawText(x, y float32, s string, c colors.RGBA)
}

type TextMeasurer interface {
	// MeasureText is the width of s in backend pixels.
	MeasureText(s string) float32
}

type LineDrawer interface {
	DrawLine(x0, y0, x1, y1, width float32, c colors.RGBA)
}

type CircleDrawer interface {
	DrawCircle(cx, cy, radius float32, c colors.RGBA)
}

type ArcDrawer interface {
	// DrawArc strokes the arc from start to end (radians, clockwise in Y-down space).
	DrawArc(cx, cy, radius, start, end, width float32, c colors.RGBA)
}

// Capability is a bit set of optional backend features.
type Capability uint8

const (
	CapText Capability = 1 << iota
	CapMeasure
	CapLine
	CapCircle
	CapArc
)

func (c Capability) String() string {
	switch c {
	case CapText:
		return "text"
	case CapMeasure:
		return "measure"
	case CapLine:
		return "line"
	case CapCircle:
		return "circle"
	case CapArc:
		return "arc"
	default:
		return "capabilities"
	}
}

// backend holds one implementation per capability. Missing optional ones
// stay nil and are reported through caps.
type backend struct {
	r       Renderer
	text    TextDrawer
	measure TextMeasurer
	line    LineDrawer
	circle  CircleDrawer
	arc     ArcDrawer
	caps    Capability
}

func newBackend(r Renderer) backend {
	b := backend{r: r}
	if v, ok := r.(TextDrawer); ok {
		b.text = v
		b.caps |= CapText
	}
	if v, ok := r.(TextMeasurer); ok {
		b.measure = v
		b.caps |= CapMeasure
	}
	if v, ok := r.(LineDrawer); ok {
		b.line = v
		b.caps |= CapLine
	}
	if v, ok := r.(CircleDrawer); ok {
		b.circle = v
		b.caps |= CapCircle
	}
	if v, ok := r.(ArcDrawer); ok {
		b.arc = v
		b.caps |= CapArc
	}
	return b
}
