package widgets

import (
	"github.com/hubastard/iui/engine/scratch"
	"github.com/hubastard/iui/engine/ui"
)

// Gallery is the demo scene: a widget window, a scrolling list, a box
// layout and a quit confirmation. It holds all the state the widgets edit.
type Gallery struct {
	Checked  bool
	Volume   float32
	Scroll   float32
	Clicks   int
	Quit     bool // set once the user confirmed quitting
	confirm  bool
	spin     float32
	selected int

	buf   *scratch.Buffer
	order [2]string
}

func NewGallery() *Gallery {
	return &Gallery{
		Volume:   0.5,
		selected: -1,
		buf:      scratch.New(512),
		order:    [2]string{"Widgets", "List"},
	}
}

// Draw declares the whole gallery for one frame. view is the viewport in
// UI units; dt advances the spinner.
func (g *Gallery) Draw(ctx *ui.Context, view ui.Rect, dt float32) {
	g.buf.Reset()
	g.spin += dt * 4

	col := min(view.W/2-12, 360)
	// Declared back to front so the raised window paints last.
	ctx.SortByZ(g.order[:])
	for _, name := range g.order {
		switch name {
		case "Widgets":
			g.widgets(ctx, view, col)
		case "List":
			g.list(ctx, view, col)
		}
	}

	if Confirm(ctx, "quit", "Really quit?", view, &g.confirm) == Yes {
		g.Quit = true
	}
}

func (g *Gallery) widgets(ctx *ui.Context, view ui.Rect, col float32) {
	if ctx.BeginWindow("Widgets", 8, 8, col, min(view.H-16, 420), ui.WindowResizable) {
		Label(ctx, "Immediate-mode widgets. Tab cycles focus, Enter or Space clicks.", Muted)
		if Button(ctx, "Click me") {
			g.Clicks++
		}
		Label(ctx, g.buf.Printf("clicked %d times", g.Clicks), Text)
		Checkbox(ctx, "Enable the thing", &g.Checked)
		Label(ctx, g.buf.Printf("volume %.2f", g.Volume), Muted)
		Slider(ctx, "volume", &g.Volume, 0, 1)
		if !g.Checked {
			DisabledButton(ctx, "Needs the thing")
		} else if Button(ctx, "Thing enabled") {
			g.Clicks += 10
		}
		Spinner(ctx, g.spin)

		ctx.BoxBegin(ui.DirRow, []ui.Size{ui.Fixed(80), ui.Grow(1), ui.Grow(2)}, ui.BoxStyle{Gap: 4})
		Button(ctx, "fixed")
		Button(ctx, "grow 1")
		Button(ctx, "grow 2")
		ctx.BoxEnd()

		if Button(ctx, "Quit") {
			g.confirm = true
		}
		ctx.EndWindow()
	}
}

func (g *Gallery) list(ctx *ui.Context, view ui.Rect, col float32) {
	if ctx.BeginWindow("List", col+16, 8, col, min(view.H-16, 300), ui.WindowResizable) {
		Label(ctx, g.buf.Printf("selected: %d", g.selected), Text)
		if ctx.BeginScroll(ctx.ContentRect().H-2*ctx.Config().FontHeight, &g.Scroll) {
			for i := range 40 {
				mark := g.buf.Mark()
				g.buf.S("row ").I(i)
				if i == g.selected {
					g.buf.S("  <")
				}
				if Button(ctx, g.buf.ViewFrom(mark)) {
					g.selected = i
				}
			}
			ctx.EndScroll()
		}
		ctx.EndWindow()
	}
}
