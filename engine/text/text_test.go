package text

import (
	"image/color"
	"slices"
	"testing"
)

func TestBasicFaceMetrics(t *testing.T) {
	f := Basic()
	if f.Ascent != 11 || f.Descent != 2 || f.LineHeight != 13 {
		t.Errorf("metrics: ascent %v descent %v line %v", f.Ascent, f.Descent, f.LineHeight)
	}
	tests := []struct {
		s    string
		want float32
	}{
		{"", 0},
		{"abc", 21},
		{"ab\nabcd\nx", 28},
		{"a\n", 7},
	}
	for _, tt := range tests {
		if got := f.MeasureText(tt.s); got != tt.want {
			t.Errorf("MeasureText(%q): got %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestGoFonts(t *testing.T) {
	f, err := GoRegular(16)
	if err != nil {
		t.Fatalf("GoRegular: %v", err)
	}
	defer f.Close()
	if f.Ascent <= 0 || f.LineHeight < f.Ascent {
		t.Errorf("metrics: %+v", f)
	}
	if w, ww := f.MeasureText("i"), f.MeasureText("W"); !(w > 0 && ww > w) {
		t.Errorf("proportional widths: i=%v W=%v", w, ww)
	}

	m, err := GoMono(16)
	if err != nil {
		t.Fatalf("GoMono: %v", err)
	}
	if m.MeasureText("iiii") != m.MeasureText("WWWW") {
		t.Error("mono face is not monospaced")
	}
	if _, err := Open([]byte("not a font"), 12); err == nil {
		t.Error("garbage parsed as a font")
	}
}

func TestBuildAtlas(t *testing.T) {
	a, err := BuildAtlas(Basic(), ASCII())
	if err != nil {
		t.Fatalf("BuildAtlas: %v", err)
	}
	if a.Size != 256 {
		t.Errorf("size: got %d, want 256", a.Size)
	}
	g, ok := a.Glyphs['A']
	if !ok {
		t.Fatal("no glyph for A")
	}
	if g.Advance != 7 || g.W != 6 || g.H != 13 || g.BearingY != 11 {
		t.Errorf("glyph A: %+v", g)
	}

	wx, wy := int(a.WhiteU*float32(a.Size)), int(a.WhiteV*float32(a.Size))
	if got := a.Image.RGBAAt(wx, wy); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("white texel: got %v", got)
	}

	// Some pixel of the glyph must be covered.
	x0, y0 := int(g.U0*float32(a.Size)), int(g.V0*float32(a.Size))
	covered := false
	for y := y0; y < y0+g.H; y++ {
		for x := x0; x < x0+g.W; x++ {
			if a.Image.RGBAAt(x, y).A > 0 {
				covered = true
			}
		}
	}
	if !covered {
		t.Error("glyph A was not rasterised")
	}
}

func TestAtlasLayout(t *testing.T) {
	a, err := BuildAtlas(Basic(), ASCII())
	if err != nil {
		t.Fatal(err)
	}
	var quads []Quad
	a.Layout(10, 20, "ab\nc", func(q Quad) { quads = append(quads, q) })
	if len(quads) != 3 {
		t.Fatalf("got %d quads, want 3", len(quads))
	}
	want := [][2]float32{{10, 20}, {17, 20}, {10, 33}}
	for i, w := range want {
		if quads[i].X != w[0] || quads[i].Y != w[1] {
			t.Errorf("quad %d at (%v, %v), want (%v, %v)", i, quads[i].X, quads[i].Y, w[0], w[1])
		}
	}
	if quads[0].U0 == quads[1].U0 {
		t.Error("different glyphs share UVs")
	}

	n := 0
	a.Layout(0, 0, "a世b", func(Quad) { n++ })
	if n != 2 {
		t.Errorf("missing rune: got %d quads, want 2", n)
	}
}

func TestWrap(t *testing.T) {
	// Seven units per byte, like the 7x13 face.
	width := func(s string) float32 { return float32(7 * len(s)) }
	tests := []struct {
		name string
		s    string
		max  float32
		want []string
	}{
		{"fits", "hello world", 100, []string{"hello world"}},
		{"breaks", "hello world again", 84, []string{"hello world", "again"}},
		{"long word", "a verylongword b", 35, []string{"a", "verylongword", "b"}},
		{"newlines", "one\n\ntwo", 100, []string{"one", "", "two"}},
		{"spaces only", "     ", 14, []string{""}},
		{"no limit", "x y z", 0, []string{"x y z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.s, tt.max, width)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
