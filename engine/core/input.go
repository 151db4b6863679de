package core

import "github.com/hubastard/iui/engine/ui"

// InputCollector folds platform events into a ui.Input between frames. Call
// Flush once per frame, right before ui.Context.BeginFrame.
type InputCollector struct {
	state ui.Input
	keys  map[Key]bool
	scale float32
}

func NewInputCollector() *InputCollector {
	return &InputCollector{keys: map[Key]bool{}, scale: 1}
}

// SetScale sets the pixels per UI unit (ui.Config.Scale); pointer positions
// are divided by it.
func (c *InputCollector) SetScale(s float32) {
	if s > 0 {
		c.scale = s
	}
}

func (c *InputCollector) Handle(ev Event) {
	in := &c.state
	switch e := ev.(type) {
	case EventMouseMove:
		in.MoveTo(float32(e.X)/c.scale, float32(e.Y)/c.scale)
	case EventMouseButton:
		in.Mods = uiMods(e.Mods)
		b := uiButton(e.Button)
		if e.Down {
			in.Press(b)
		} else {
			in.Release(b)
		}
	case EventKey:
		c.keys[e.Key] = e.Down
		in.Mods = uiMods(e.Mods)
		if k := uiKey(e.Key); e.Down && k != ui.KeyNone {
			in.SetKey(k, in.Mods)
		}
	case EventChar:
		in.SetChar(e.Rune)
	case EventScroll:
		in.AddScroll(float32(e.Xoff), float32(e.Yoff))
	}
}

// Flush copies the collected state into dst and starts a new frame's edges.
func (c *InputCollector) Flush(dst *ui.Input) {
	*dst = c.state
	c.state.ClearEdges()
}

func (c *InputCollector) IsKeyDown(k Key) bool { return c.keys[k] }

func (c *InputCollector) Mouse() (float32, float32) { return c.state.MouseX, c.state.MouseY }

func uiButton(b MouseButton) ui.Button {
	switch b {
	case MouseRight:
		return ui.MouseRight
	case MouseMiddle:
		return ui.MouseMiddle
	}
	return ui.MouseLeft
}

func uiMods(m Mod) ui.Mod {
	var out ui.Mod
	if m&ModShift != 0 {
		out |= ui.ModShift
	}
	if m&ModCtrl != 0 {
		out |= ui.ModCtrl
	}
	if m&ModAlt != 0 {
		out |= ui.ModAlt
	}
	if m&ModSuper != 0 {
		out |= ui.ModSuper
	}
	return out
}

var uiKeys = [...]ui.Key{
	KeyEscape:    ui.KeyEscape,
	KeySpace:     ui.KeySpace,
	KeyEnter:     ui.KeyEnter,
	KeyTab:       ui.KeyTab,
	KeyBackspace: ui.KeyBackspace,
	KeyDelete:    ui.KeyDelete,
	KeyLeft:      ui.KeyLeft,
	KeyRight:     ui.KeyRight,
	KeyUp:        ui.KeyUp,
	KeyDown:      ui.KeyDown,
	KeyHome:      ui.KeyHome,
	KeyEnd:       ui.KeyEnd,
	KeyPageUp:    ui.KeyPageUp,
	KeyPageDown:  ui.KeyPageDown,
}

func uiKey(k Key) ui.Key {
	if k < 0 || int(k) >= len(uiKeys) {
		return ui.KeyNone
	}
	return uiKeys[k]
}
