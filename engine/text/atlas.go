package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type Glyph struct {
	Advance  float32
	BearingX float32 // dot to left edge
	BearingY float32 // baseline to top edge
	W, H     int
	U0, V0   float32
	U1, V1   float32
}

// Atlas is a white-on-transparent glyph sheet for one Face. A solid white
// block sits at the origin so untextured shapes can sample it and share the
// glyphs' draw call.
type Atlas struct {
	Face   *Face
	Glyphs map[rune]Glyph
	Image  *image.RGBA
	Size   int
	// WhiteU, WhiteV sample the solid block.
	WhiteU, WhiteV float32
}

const (
	atlasPadding = 2
	atlasStart   = 256
	atlasMax     = 4096
	whiteBlock   = 4
)

// ASCII is the printable range 32..126.
func ASCII() []rune {
	rs := make([]rune, 0, 95)
	for r := rune(32); r <= 126; r++ {
		rs = append(rs, r)
	}
	return rs
}

// BuildAtlas rasterises runes from f into a square sheet, doubling its size
// from 256 until everything fits.
func BuildAtlas(f *Face, runes []rune) (*Atlas, error) {
	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	face := f.Font()
	measured := make([]meas, 0, len(runes))
	for _, r := range runes {
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		measured = append(measured, meas{
			r:   r,
			w:   (b.Max.X - b.Min.X).Ceil(),
			h:   (b.Max.Y - b.Min.Y).Ceil(),
			adv: fixedToF(adv),
			bx:  float32(b.Min.X.Floor()),
			by:  float32(-b.Min.Y.Floor()),
		})
	}

	size := atlasStart
	var pos map[rune]image.Point
	for {
		pos = make(map[rune]image.Point, len(measured))
		x, y, rowH := whiteBlock+2*atlasPadding, atlasPadding, whiteBlock
		fits := true
		for _, g := range measured {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if x+g.w+atlasPadding > size {
				x = atlasPadding
				y += rowH + atlasPadding
				rowH = 0
			}
			if x+g.w+atlasPadding > size || y+g.h+atlasPadding > size {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + atlasPadding
			rowH = max(rowH, g.h)
		}
		if fits {
			break
		}
		size *= 2
		if size > atlasMax {
			return nil, fmt.Errorf("font atlas too large (>%d)", atlasMax)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, image.Rect(atlasPadding, atlasPadding, atlasPadding+whiteBlock, atlasPadding+whiteBlock),
		image.White, image.Point{}, draw.Src)

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(color.White), Face: face}
	glyphs := make(map[rune]Glyph, len(measured))
	inv := 1 / float32(size)
	for _, g := range measured {
		gl := Glyph{Advance: g.adv, BearingX: g.bx, BearingY: g.by, W: g.w, H: g.h}
		if p, ok := pos[g.r]; ok {
			d.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			d.DrawString(string(g.r))
			gl.U0, gl.V0 = float32(p.X)*inv, float32(p.Y)*inv
			gl.U1, gl.V1 = float32(p.X+g.w)*inv, float32(p.Y+g.h)*inv
		}
		glyphs[g.r] = gl
	}

	center := float32(atlasPadding) + whiteBlock/2
	return &Atlas{
		Face:   f,
		Glyphs: glyphs,
		Image:  dst,
		Size:   size,
		WhiteU: center * inv,
		WhiteV: center * inv,
	}, nil
}

// Quad places one glyph: a pixel rect and its atlas UVs.
type Quad struct {
	X, Y, W, H     float32
	U0, V0, U1, V1 float32
}

// Layout walks s from the top-left corner (x, y), breaking lines at '\n',
// and calls fn for every glyph with pixels. Runes missing from the atlas
// advance by a space.
func (a *Atlas) Layout(x, y float32, s string, fn func(Quad)) {
	penX := x
	baseY := y + a.Face.Ascent
	prev := rune(-1)
	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += a.Face.LineHeight
			prev = -1
			continue
		}
		g, ok := a.Glyphs[r]
		if !ok {
			penX += a.Glyphs[' '].Advance
			prev = r
			continue
		}
		if prev >= 0 {
			penX += a.Face.Kern(prev, r)
		}
		if g.W > 0 && g.H > 0 && g.U1 > 0 {
			fn(Quad{
				X: penX + g.BearingX, Y: baseY - g.BearingY,
				W: float32(g.W), H: float32(g.H),
				U0: g.U0, V0: g.V0, U1: g.U1, V1: g.V1,
			})
		}
		penX += g.Advance
		prev = r
	}
}
