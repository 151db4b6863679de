// Package term renders a ui.Context into a terminal through tcell. One cell
// is half a font height wide and one font height tall, the same estimate the
// core uses when a backend cannot measure text.
package term

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/hubastard/iui/engine/colors"
	"github.com/hubastard/iui/engine/ui"
	"github.com/mattn/go-runewidth"
)

// Backend implements ui.Renderer and every optional capability on a cell
// grid. Colors with alpha blend against the background already in the cell.
type Backend struct {
	screen tcell.Screen
	cellW  float32
	cellH  float32
	cols   int
	rows   int
	bg     []colors.RGBA // per cell, for blending and text backgrounds
	clip   ui.ClipRect

	Background colors.RGBA
	input      inputState
}

// New wraps an initialised screen. fontHeight must match ui.Config.FontHeight
// with ui.Config.Scale left at 1.
func New(screen tcell.Screen, fontHeight float32) (*Backend, error) {
	if screen == nil {
		return nil, fmt.Errorf("term: nil screen")
	}
	if fontHeight <= 0 {
		return nil, fmt.Errorf("term: font height %v: %w", fontHeight, ui.ErrFontHeight)
	}
	b := &Backend{
		screen:     screen,
		cellW:      fontHeight / 2,
		cellH:      fontHeight,
		clip:       ui.FullClip,
		Background: colors.Hex(0x000000ff),
	}
	b.input.cellW, b.input.cellH = b.cellW, b.cellH
	b.Resize()
	return b, nil
}

// Open creates and initialises the terminal screen with mouse reporting on.
func Open(fontHeight float32) (*Backend, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: new screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("term: init: %w", err)
	}
	s.EnableMouse()
	s.HideCursor()
	b, err := New(s, fontHeight)
	if err != nil {
		s.Fini()
		return nil, err
	}
	return b, nil
}

func (b *Backend) Screen() tcell.Screen { return b.screen }

// Close restores the terminal.
func (b *Backend) Close() { b.screen.Fini() }

// Resize picks up the current terminal size. Call it on tcell.EventResize.
func (b *Backend) Resize() {
	b.cols, b.rows = b.screen.Size()
	n := b.cols * b.rows
	if cap(b.bg) < n {
		b.bg = make([]colors.RGBA, n)
	}
	b.bg = b.bg[:n]
}

// Size is the terminal size in UI units.
func (b *Backend) Size() (w, h float32) {
	return float32(b.cols) * b.cellW, float32(b.rows) * b.cellH
}

// Cells is the terminal size in cells.
func (b *Backend) Cells() (cols, rows int) { return b.cols, b.rows }

// Begin clears the grid to the background color.
func (b *Backend) Begin() {
	b.clip = ui.FullClip
	st := b.style(b.Background, b.Background)
	for y := 0; y < b.rows; y++ {
		for x := 0; x < b.cols; x++ {
			b.bg[y*b.cols+x] = b.Background
			b.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

// Present shows the frame.
func (b *Backend) Present() { b.screen.Show() }

// ===== ui.Renderer =====

func (b *Backend) SetClip(c ui.ClipRect) { b.clip = c }

func (b *Backend) FillRoundedRect(r ui.Rect, radius float32, c colors.RGBA) {
	if c.A() == 0 {
		return
	}
	x0, y0, x1, y1 := b.cellSpan(r.X, r.Y, r.Right(), r.Bottom())
	// Corners are dropped once the radius covers a whole cell.
	round := radius >= b.cellW && radius >= b.cellH && x1-x0 > 2 && y1-y0 > 1
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if round && (x == x0 || x == x1-1) && (y == y0 || y == y1-1) {
				continue
			}
			b.paint(x, y, c)
		}
	}
}

// ===== optional capabilities =====

func (b *Backend) DrawText(x, y float32, s string, c colors.RGBA) {
	row := int(math.Round(float64(y / b.cellH)))
	for line := range strings.Lines(s) {
		col := int(math.Round(float64(x / b.cellW)))
		for _, r := range strings.TrimSuffix(line, "\n") {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			if b.visible(col, row) && (w == 1 || b.visible(col+1, row)) {
				i := row*b.cols + col
				b.screen.SetContent(col, row, r, nil, b.style(blend(b.bg[i], c), b.bg[i]))
			}
			col += w
		}
		row++
	}
}

// MeasureText returns the widest line in UI units.
func (b *Backend) MeasureText(s string) float32 {
	widest := 0
	for line := range strings.Lines(s) {
		widest = max(widest, runewidth.StringWidth(strings.TrimSuffix(line, "\n")))
	}
	return float32(widest) * b.cellW
}

// DrawLine steps along the segment at half-cell intervals. Lines are one
// cell thick whatever the width.
func (b *Backend) DrawLine(x0, y0, x1, y1, _ float32, c colors.RGBA) {
	dx, dy := x1-x0, y1-y0
	step := min(b.cellW, b.cellH) / 2
	n := int(math.Ceil(math.Hypot(float64(dx), float64(dy)) / float64(step)))
	lastX, lastY := -1, -1
	for i := 0; i <= n; i++ {
		t := float32(0)
		if n > 0 {
			t = float32(i) / float32(n)
		}
		cx, cy := b.cellAt(x0+dx*t, y0+dy*t)
		if cx == lastX && cy == lastY {
			continue
		}
		lastX, lastY = cx, cy
		b.paint(cx, cy, c)
	}
}

func (b *Backend) DrawCircle(cx, cy, radius float32, c colors.RGBA) {
	x0, y0, x1, y1 := b.cellSpan(cx-radius, cy-radius, cx+radius, cy+radius)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, py := b.center(x, y)
			if hypot(px-cx, py-cy) <= radius {
				b.paint(x, y, c)
			}
		}
	}
}

// DrawArc paints the cells whose centres lie within half a cell (or half the
// stroke width, whichever is larger) of the arc.
func (b *Backend) DrawArc(cx, cy, radius, start, end, width float32, c colors.RGBA) {
	sweep := float64(end - start)
	if sweep == 0 {
		return
	}
	if sweep < 0 {
		start, sweep = end, -sweep
	}
	band := max(width, b.cellH) / 2
	x0, y0, x1, y1 := b.cellSpan(cx-radius-band, cy-radius-band, cx+radius+band, cy+radius+band)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, py := b.center(x, y)
			d := hypot(px-cx, py-cy)
			if d < radius-band || d > radius+band {
				continue
			}
			a := math.Atan2(float64(py-cy), float64(px-cx)) - float64(start)
			a = math.Mod(a, 2*math.Pi)
			if a < 0 {
				a += 2 * math.Pi
			}
			if sweep >= 2*math.Pi || a <= sweep {
				b.paint(x, y, c)
			}
		}
	}
}

// ===== cells =====

// cellSpan returns the half-open cell range whose centres fall inside the
// rectangle.
func (b *Backend) cellSpan(l, t, r, bot float32) (x0, y0, x1, y1 int) {
	x0 = int(math.Ceil(float64(l/b.cellW - 0.5)))
	y0 = int(math.Ceil(float64(t/b.cellH - 0.5)))
	x1 = int(math.Ceil(float64(r/b.cellW - 0.5)))
	y1 = int(math.Ceil(float64(bot/b.cellH - 0.5)))
	return max(x0, 0), max(y0, 0), min(x1, b.cols), min(y1, b.rows)
}

func (b *Backend) cellAt(x, y float32) (int, int) {
	return int(math.Floor(float64(x / b.cellW))), int(math.Floor(float64(y / b.cellH)))
}

func (b *Backend) center(x, y int) (float32, float32) {
	return (float32(x) + 0.5) * b.cellW, (float32(y) + 0.5) * b.cellH
}

// visible reports whether the cell is on screen and its centre is inside the
// clip.
func (b *Backend) visible(x, y int) bool {
	if x < 0 || y < 0 || x >= b.cols || y >= b.rows {
		return false
	}
	px, py := b.center(x, y)
	c := b.clip
	return px >= float32(c.X) && py >= float32(c.Y) &&
		px < float32(c.X)+float32(c.W) && py < float32(c.Y)+float32(c.H)
}

func (b *Backend) paint(x, y int, c colors.RGBA) {
	if !b.visible(x, y) {
		return
	}
	i := y*b.cols + x
	b.bg[i] = blend(b.bg[i], c)
	b.screen.SetContent(x, y, ' ', nil, b.style(b.bg[i], b.bg[i]))
}

func (b *Backend) style(fg, bg colors.RGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
}

func tcellColor(c colors.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R()), int32(c.G()), int32(c.B()))
}

// blend composites src over dst; the result is opaque.
func blend(dst, src colors.RGBA) colors.RGBA {
	a := uint32(src.A())
	if a == 255 {
		return src | 0xff
	}
	mix := func(d, s uint8) uint32 {
		return (uint32(s)*a + uint32(d)*(255-a) + 127) / 255
	}
	return colors.RGBA(mix(dst.R(), src.R())<<24 | mix(dst.G(), src.G())<<16 | mix(dst.B(), src.B())<<8 | 0xff)
}

func hypot(x, y float32) float32 { return float32(math.Hypot(float64(x), float64(y))) }

var (
	_ ui.TextDrawer   = (*Backend)(nil)
	_ ui.TextMeasurer = (*Backend)(nil)
	_ ui.LineDrawer   = (*Backend)(nil)
	_ ui.CircleDrawer = (*Backend)(nil)
	_ ui.ArcDrawer    = (*Backend)(nil)
)
