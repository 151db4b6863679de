package colors

import (
	"fmt"
	"strconv"
	"strings"
)

type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Scale multiplies the RGB channels, leaving alpha untouched.
func (c Color) Scale(f float32) Color {
	for i := 0; i < 3; i++ {
		c[i] = clamp01(c[i] * f)
	}
	return c
}

// Pack converts to 0xRRGGBBAA.
func (c Color) Pack() RGBA {
	return RGBA(uint32(to8(c[0]))<<24 | uint32(to8(c[1]))<<16 | uint32(to8(c[2]))<<8 | uint32(to8(c[3])))
}

// RGBA is a packed 0xRRGGBBAA color, the form draw commands carry.
type RGBA uint32

func Hex(v uint32) RGBA { return RGBA(v) }

func (p RGBA) R() uint8 { return uint8(p >> 24) }
func (p RGBA) G() uint8 { return uint8(p >> 16) }
func (p RGBA) B() uint8 { return uint8(p >> 8) }
func (p RGBA) A() uint8 { return uint8(p) }

// Color unpacks to floats in [0..1].
func (p RGBA) Color() Color {
	return Color{
		float32(p.R()) / 255,
		float32(p.G()) / 255,
		float32(p.B()) / 255,
		float32(p.A()) / 255,
	}
}

// MarshalText writes "#rrggbbaa", so config files carry readable colors.
func (p RGBA) MarshalText() ([]byte, error) {
	const digits = "0123456789abcdef"
	b := make([]byte, 9)
	b[0] = '#'
	for i := 0; i < 8; i++ {
		b[8-i] = digits[(p>>(4*i))&0xf]
	}
	return b, nil
}

// UnmarshalText accepts "#rrggbb" (opaque) or "#rrggbbaa".
func (p *RGBA) UnmarshalText(b []byte) error {
	s := strings.TrimPrefix(string(b), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("colors: bad hex color %q", b)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("colors: bad hex color %q: %w", b, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	*p = RGBA(v)
	return nil
}

func to8(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
