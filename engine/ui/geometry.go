package ui

import "math"

// Rect is an axis-aligned rectangle in logical (pre-scale) units.
type Rect struct {
	X, Y, W, H float32
}

// planeLimit bounds the "unrestricted" clip. Exactly representable in float32.
const planeLimit = 1 << 24

var fullPlane = Rect{X: -planeLimit, Y: -planeLimit, W: 2 * planeLimit, H: 2 * planeLimit}

func (r Rect) Right() float32  { return r.X + r.W }
func (r Rect) Bottom() float32 { return r.Y + r.H }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o. A non-positive overlap
// collapses to the zero Rect.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.Right(), o.Right())
	y1 := min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// Union returns the bounding box of r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.Right(), o.Right())
	y1 := max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset shrinks r by d on every side, never below zero size.
func (r Rect) Inset(d float32) Rect {
	r.X += d
	r.Y += d
	r.W = max(0, r.W-2*d)
	r.H = max(0, r.H-2*d)
	return r
}

// ClipRect is the clip rectangle as it crosses into a backend: integer
// pixels clamped to the unsigned 16-bit range on each axis.
type ClipRect struct {
	X, Y, W, H uint16
}

// FullClip is the wire form of the unrestricted plane.
var FullClip = ClipRect{X: 0, Y: 0, W: math.MaxUint16, H: math.MaxUint16}

// ToClipRect scales r and clamps it to the wire range.
func ToClipRect(r Rect, scale float32) ClipRect {
	if r.Empty() {
		return ClipRect{}
	}
	x0 := clampU16(math.Floor(float64(r.X * scale)))
	y0 := clampU16(math.Floor(float64(r.Y * scale)))
	x1 := clampU16(math.Ceil(float64(r.Right() * scale)))
	y1 := clampU16(math.Ceil(float64(r.Bottom() * scale)))
	return ClipRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Rect converts back to logical units.
func (c ClipRect) Rect(scale float32) Rect {
	if scale <= 0 {
		scale = 1
	}
	return Rect{X: float32(c.X) / scale, Y: float32(c.Y) / scale, W: float32(c.W) / scale, H: float32(c.H) / scale}
}

func clampU16(v float64) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
