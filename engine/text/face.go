package text

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Face is a font.Face with its pixel metrics. It satisfies ui.TextMeasurer.
type Face struct {
	face font.Face

	SizePx     float32
	Ascent     float32 // baseline to top of the tallest glyph
	Descent    float32 // baseline to bottom, positive
	LineHeight float32
}

func NewFace(f font.Face, sizePx float32) *Face {
	m := f.Metrics()
	return &Face{
		face:       f,
		SizePx:     sizePx,
		Ascent:     float32(m.Ascent.Round()),
		Descent:    float32(m.Descent.Round()),
		LineHeight: float32(m.Height.Round()),
	}
}

// Open parses TrueType/OpenType data at sizePx pixels (72 DPI).
func Open(ttf []byte, sizePx float32) (*Face, error) {
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	f, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return NewFace(f, sizePx), nil
}

func LoadTTF(path string, sizePx float32) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return Open(data, sizePx)
}

// GoRegular and GoMono use the Go fonts bundled with x/image.
func GoRegular(sizePx float32) (*Face, error) { return Open(goregular.TTF, sizePx) }
func GoMono(sizePx float32) (*Face, error)    { return Open(gomono.TTF, sizePx) }

// Basic is the fixed 7x13 bitmap face. It needs no parsing and never fails.
func Basic() *Face { return NewFace(basicfont.Face7x13, 13) }

func (f *Face) Font() font.Face { return f.face }

// MeasureText is the advance width of the widest line of s, kerning included.
func (f *Face) MeasureText(s string) float32 {
	var widest fixed.Int26_6
	for {
		line, rest, more := strings.Cut(s, "\n")
		if w := font.MeasureString(f.face, line); w > widest {
			widest = w
		}
		if !more {
			break
		}
		s = rest
	}
	return fixedToF(widest)
}

// Kern is the adjustment between a and b in pixels.
func (f *Face) Kern(a, b rune) float32 { return fixedToF(f.face.Kern(a, b)) }

func (f *Face) Close() error {
	if f == nil || f.face == nil {
		return nil
	}
	return f.face.Close()
}

func fixedToF(v fixed.Int26_6) float32 { return float32(v) / 64 }
