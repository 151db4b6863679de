package ui

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hubastard/iui/engine/colors"
)

// Default capacities. Every table in a Context is sized from these once and
// never grows.
const (
	ClipStackSize   = 16
	BoxStackSize    = 8
	MaxBoxChildren  = 16
	MaxWindows      = 32
	MaxLayers       = 8
	ScrollStackSize = 4
	TextCacheSize   = 256
	TextCacheProbe  = 8
	TextCacheDecay  = 4
	MaxCommands     = 4096
	MaxDirtyRects   = 32

	// maxSolveChildren is the hard ceiling for a single box; the solver keeps
	// its freeze flags on the stack.
	maxSolveChildren = 64
)

var (
	ErrNilRenderer = errors.New("ui: renderer is nil")
	ErrFontHeight  = errors.New("ui: font height must be positive")
	ErrCapacity    = errors.New("ui: invalid capacity")
)

// Style holds the few colors the core itself paints (window chrome).
type Style struct {
	WindowBg  colors.RGBA `toml:"window_bg" yaml:"window_bg"`
	TitleBg   colors.RGBA `toml:"title_bg" yaml:"title_bg"`
	TitleText colors.RGBA `toml:"title_text" yaml:"title_text"`
	Grip      colors.RGBA `toml:"grip" yaml:"grip"`
	Radius    float32     `toml:"radius" yaml:"radius"`
}

func DefaultStyle() Style {
	return Style{
		WindowBg:  colors.DarkGray.WithAlpha(0.95).Pack(),
		TitleBg:   colors.Color{0.18, 0.22, 0.28, 1}.Pack(),
		TitleText: colors.White.Pack(),
		Grip:      colors.Gray.Pack(),
		Radius:    4,
	}
}

type Config struct {
	FontHeight float32 `toml:"font_height" yaml:"font_height"`
	// Scale maps logical units to backend pixels.
	Scale        float32 `toml:"scale" yaml:"scale"`
	Padding      float32 `toml:"padding" yaml:"padding"`
	TitleHeight  float32 `toml:"title_height" yaml:"title_height"`
	ResizeHandle float32 `toml:"resize_handle" yaml:"resize_handle"`

	MaxWindows      int `toml:"max_windows" yaml:"max_windows"`
	ClipStackSize   int `toml:"clip_stack_size" yaml:"clip_stack_size"`
	BoxStackSize    int `toml:"box_stack_size" yaml:"box_stack_size"`
	MaxBoxChildren  int `toml:"max_box_children" yaml:"max_box_children"`
	MaxLayers       int `toml:"max_layers" yaml:"max_layers"`
	ScrollStackSize int `toml:"scroll_stack_size" yaml:"scroll_stack_size"`
	TextCacheSize   int `toml:"text_cache_size" yaml:"text_cache_size"`
	TextCacheProbe  int `toml:"text_cache_probe" yaml:"text_cache_probe"`
	TextCacheDecay  int `toml:"text_cache_decay" yaml:"text_cache_decay"`
	MaxCommands     int `toml:"max_commands" yaml:"max_commands"`
	MaxDirtyRects   int `toml:"max_dirty_rects" yaml:"max_dirty_rects"`

	// Batching selects the initial draw mode; SetBatching changes it later.
	Batching bool `toml:"batching" yaml:"batching"`
	// Debug turns stack-balance repairs into panics.
	Debug bool  `toml:"debug" yaml:"debug"`
	Style Style `toml:"style" yaml:"style"`

	Logger *slog.Logger `toml:"-" yaml:"-"`
}

// DefaultConfig is a complete, valid configuration.
func DefaultConfig() Config {
	return Config{
		FontHeight: 16,
		Batching:   true,
		Style:      DefaultStyle(),
	}.WithDefaults()
}

// WithDefaults fills every zero capacity and spacing. FontHeight is left
// alone: a missing font height is an error, not something to guess.
func (c Config) WithDefaults() Config {
	setInt := func(v *int, d int) {
		if *v == 0 {
			*v = d
		}
	}
	setInt(&c.MaxWindows, MaxWindows)
	setInt(&c.ClipStackSize, ClipStackSize)
	setInt(&c.BoxStackSize, BoxStackSize)
	setInt(&c.MaxBoxChildren, MaxBoxChildren)
	setInt(&c.MaxLayers, MaxLayers)
	setInt(&c.ScrollStackSize, ScrollStackSize)
	setInt(&c.TextCacheSize, TextCacheSize)
	setInt(&c.TextCacheProbe, TextCacheProbe)
	setInt(&c.TextCacheDecay, TextCacheDecay)
	setInt(&c.MaxCommands, MaxCommands)
	setInt(&c.MaxDirtyRects, MaxDirtyRects)
	if c.Scale == 0 {
		c.Scale = 1
	}
	if c.Padding == 0 {
		c.Padding = 4
	}
	if c.TitleHeight == 0 && c.FontHeight > 0 {
		c.TitleHeight = c.FontHeight + 2*c.Padding
	}
	if c.ResizeHandle == 0 {
		c.ResizeHandle = 12
	}
	if c.Style == (Style{}) {
		c.Style = DefaultStyle()
	}
	return c
}

func (c Config) validate() error {
	if !(c.FontHeight > 0) {
		return ErrFontHeight
	}
	if !(c.Scale > 0) {
		return fmt.Errorf("%w: scale %v", ErrCapacity, c.Scale)
	}
	for _, v := range []struct {
		name string
		n    int
	}{
		{"max_windows", c.MaxWindows},
		{"clip_stack_size", c.ClipStackSize},
		{"box_stack_size", c.BoxStackSize},
		{"max_box_children", c.MaxBoxChildren},
		{"max_layers", c.MaxLayers},
		{"scroll_stack_size", c.ScrollStackSize},
		{"text_cache_size", c.TextCacheSize},
		{"text_cache_probe", c.TextCacheProbe},
		{"max_commands", c.MaxCommands},
		{"max_dirty_rects", c.MaxDirtyRects},
	} {
		if v.n <= 0 {
			return fmt.Errorf("%w: %s = %d", ErrCapacity, v.name, v.n)
		}
	}
	if c.MaxBoxChildren > maxSolveChildren {
		return fmt.Errorf("%w: max_box_children %d exceeds %d", ErrCapacity, c.MaxBoxChildren, maxSolveChildren)
	}
	if c.TextCacheDecay < 0 {
		return fmt.Errorf("%w: text_cache_decay %d", ErrCapacity, c.TextCacheDecay)
	}
	return nil
}

// Validate reports whether c (after defaults) can build a Context.
func (c Config) Validate() error { return c.WithDefaults().validate() }

// rowHeight is the default height of a flow row.
func (c *Config) rowHeight() float32 { return c.FontHeight + 2*c.Padding }
