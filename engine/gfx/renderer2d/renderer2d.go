// Package renderer2d turns UI draw calls into textured triangles. Every
// vertex samples one glyph atlas, so a batch only breaks when the clip
// changes or the buffers fill.
package renderer2d

import (
	"errors"
	"image"
	"math"

	"github.com/hubastard/iui/engine/colors"
	"github.com/hubastard/iui/engine/text"
	"github.com/hubastard/iui/engine/ui"
)

// VertexStride is the floats per vertex: pos2 + color4 + uv2.
const VertexStride = 8

const (
	minVertices = 1024
	minSegments = 6
	maxSegments = 64
)

var ErrNoAtlas = errors.New("renderer2d: atlas is nil")

// Submitter is the GPU side: it owns the atlas texture and draws batches.
type Submitter interface {
	UploadAtlas(img *image.RGBA) error
	Draw(b Batch)
}

// Batch is one draw call. The slices are reused after Draw returns.
type Batch struct {
	Vertices []float32
	Indices  []uint32
	Clip     ui.ClipRect
}

// Statistics counts what one frame submitted.
type Statistics struct {
	DrawCalls   int
	Vertices    int
	Triangles   int
	ClipChanges int
}

type Renderer2D struct {
	sub   Submitter
	atlas *text.Atlas

	verts    []float32
	inds     []uint32
	maxVerts int
	clip     ui.ClipRect
	stats    Statistics
}

// New uploads the atlas and sizes the buffers for maxVertices vertices per
// batch.
func New(sub Submitter, atlas *text.Atlas, maxVertices int) (*Renderer2D, error) {
	if atlas == nil {
		return nil, ErrNoAtlas
	}
	maxVertices = max(maxVertices, minVertices)
	if err := sub.UploadAtlas(atlas.Image); err != nil {
		return nil, err
	}
	return &Renderer2D{
		sub:      sub,
		atlas:    atlas,
		verts:    make([]float32, 0, maxVertices*VertexStride),
		inds:     make([]uint32, 0, maxVertices*3),
		maxVerts: maxVertices,
		clip:     ui.FullClip,
	}, nil
}

func (rd *Renderer2D) BeginFrame() {
	rd.stats = Statistics{}
	rd.resetBatch()
	rd.clip = ui.FullClip
}

func (rd *Renderer2D) EndFrame() { rd.flush() }

func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// ----- ui backend -----

func (rd *Renderer2D) SetClip(c ui.ClipRect) {
	if c == rd.clip {
		return
	}
	rd.flush()
	rd.clip = c
	rd.stats.ClipChanges++
}

func (rd *Renderer2D) FillRoundedRect(r ui.Rect, radius float32, c colors.RGBA) {
	if r.Empty() {
		return
	}
	col := c.Color()
	radius = min(radius, r.W/2, r.H/2)
	if radius < 1 {
		rd.quad(r.X, r.Y, r.W, r.H, col, rd.atlas.WhiteU, rd.atlas.WhiteV, rd.atlas.WhiteU, rd.atlas.WhiteV)
		return
	}
	k := segments(radius, math.Pi/2) + 1
	corners := [4][3]float32{
		{r.Right() - radius, r.Y + radius, -math.Pi / 2},
		{r.Right() - radius, r.Bottom() - radius, 0},
		{r.X + radius, r.Bottom() - radius, math.Pi / 2},
		{r.X + radius, r.Y + radius, math.Pi},
	}
	n := 4 * k
	rd.ensure(n+1, 3*n)
	base := rd.solid(r.X+r.W/2, r.Y+r.H/2, col)
	for _, cr := range corners {
		for i := 0; i < k; i++ {
			a := float64(cr[2]) + math.Pi/2*float64(i)/float64(k-1)
			rd.solid(cr[0]+radius*float32(math.Cos(a)), cr[1]+radius*float32(math.Sin(a)), col)
		}
	}
	rd.fan(base, n)
}

func (rd *Renderer2D) DrawText(x, y float32, s string, c colors.RGBA) {
	col := c.Color()
	rd.atlas.Layout(x, y, s, func(q text.Quad) {
		rd.quad(q.X, q.Y, q.W, q.H, col, q.U0, q.V0, q.U1, q.V1)
	})
}

func (rd *Renderer2D) MeasureText(s string) float32 { return rd.atlas.Face.MeasureText(s) }

func (rd *Renderer2D) DrawLine(x0, y0, x1, y1, width float32, c colors.RGBA) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 || width <= 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	col := c.Color()
	rd.ensure(4, 6)
	v := rd.solid(x0+nx, y0+ny, col)
	rd.solid(x1+nx, y1+ny, col)
	rd.solid(x0-nx, y0-ny, col)
	rd.solid(x1-nx, y1-ny, col)
	rd.inds = append(rd.inds, v, v+2, v+1, v+1, v+2, v+3)
	rd.stats.Triangles += 2
}

func (rd *Renderer2D) DrawCircle(cx, cy, radius float32, c colors.RGBA) {
	if radius <= 0 {
		return
	}
	col := c.Color()
	n := segments(radius, 2*math.Pi)
	rd.ensure(n+1, 3*n)
	base := rd.solid(cx, cy, col)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		rd.solid(cx+radius*float32(math.Cos(a)), cy+radius*float32(math.Sin(a)), col)
	}
	rd.fan(base, n)
}

func (rd *Renderer2D) DrawArc(cx, cy, radius, start, end, width float32, c colors.RGBA) {
	sweep := end - start
	if radius <= 0 || width <= 0 || sweep == 0 {
		return
	}
	col := c.Color()
	n := segments(radius, math.Abs(float64(sweep)))
	inner, outer := max(radius-width/2, 0), radius+width/2
	rd.ensure(2*(n+1), 6*n)
	for i := 0; i <= n; i++ {
		a := float64(start) + float64(sweep)*float64(i)/float64(n)
		cos, sin := float32(math.Cos(a)), float32(math.Sin(a))
		v := rd.solid(cx+inner*cos, cy+inner*sin, col)
		rd.solid(cx+outer*cos, cy+outer*sin, col)
		if i > 0 {
			p := v - 2
			rd.inds = append(rd.inds, p, v, p+1, p+1, v, v+1)
		}
	}
	rd.stats.Triangles += 2 * n
}

// ----- internals -----

// segments picks a tessellation for an arc of the given radius and sweep.
func segments(radius float32, sweep float64) int {
	n := int(math.Ceil(float64(radius) * sweep / 4))
	return min(max(n, minSegments), maxSegments)
}

// ensure flushes when nv vertices or ni indices would not fit.
func (rd *Renderer2D) ensure(nv, ni int) {
	if len(rd.verts)/VertexStride+nv > rd.maxVerts || len(rd.inds)+ni > cap(rd.inds) {
		rd.flush()
	}
}

func (rd *Renderer2D) vertex(x, y float32, c colors.Color, u, v float32) uint32 {
	i := uint32(len(rd.verts) / VertexStride)
	rd.verts = append(rd.verts, x, y, c[0], c[1], c[2], c[3], u, v)
	rd.stats.Vertices++
	return i
}

func (rd *Renderer2D) solid(x, y float32, c colors.Color) uint32 {
	return rd.vertex(x, y, c, rd.atlas.WhiteU, rd.atlas.WhiteV)
}

// fan closes n perimeter vertices following base into triangles around it.
func (rd *Renderer2D) fan(base uint32, n int) {
	for i := 0; i < n; i++ {
		a := base + 1 + uint32(i)
		b := base + 1 + uint32((i+1)%n)
		rd.inds = append(rd.inds, base, a, b)
	}
	rd.stats.Triangles += n
}

func (rd *Renderer2D) quad(x, y, w, h float32, c colors.Color, u0, v0, u1, v1 float32) {
	rd.ensure(4, 6)
	v := rd.vertex(x, y, c, u0, v0)
	rd.vertex(x+w, y, c, u1, v0)
	rd.vertex(x, y+h, c, u0, v1)
	rd.vertex(x+w, y+h, c, u1, v1)
	rd.inds = append(rd.inds, v, v+2, v+1, v+1, v+2, v+3)
	rd.stats.Triangles += 2
}

func (rd *Renderer2D) flush() {
	if len(rd.inds) == 0 {
		return
	}
	rd.sub.Draw(Batch{Vertices: rd.verts, Indices: rd.inds, Clip: rd.clip})
	rd.stats.DrawCalls++
	rd.resetBatch()
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.inds = rd.inds[:0]
}
