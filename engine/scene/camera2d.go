package scene

// PixelCamera is an orthographic projection over a framebuffer with the origin
// at the top-left corner and Y growing downward, the space UI commands use.
type PixelCamera struct {
	Width, Height float32
	Near, Far     float32
	vp            [16]float32
	dirty         bool
}

func NewPixelCamera(width, height int) *PixelCamera {
	c := &PixelCamera{Near: -1, Far: 1}
	c.SetViewport(width, height)
	return c
}

func (c *PixelCamera) SetViewport(w, h int) {
	c.Width, c.Height = float32(max(w, 1)), float32(max(h, 1))
	c.dirty = true
}

// VP is the column-major view-projection matrix.
func (c *PixelCamera) VP() [16]float32 {
	if c.dirty {
		c.vp = ortho(0, c.Width, c.Height, 0, c.Near, c.Far)
		c.dirty = false
	}
	return c.vp
}

// Project maps a pixel position to normalized device coordinates.
func (c *PixelCamera) Project(x, y float32) (float32, float32) {
	m := c.VP()
	v := mulVec(m, [4]float32{x, y, 0, 1})
	return v[0], v[1]
}

// ---- column-major, GLSL-style ----

func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

func mulVec(m [16]float32, v [4]float32) [4]float32 {
	var out [4]float32
	for i := 0; i < 4; i++ {
		out[i] = m[i]*v[0] + m[i+4]*v[1] + m[i+8]*v[2] + m[i+12]*v[3]
	}
	return out
}
