package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/hubastard/iui/engine/ui"
)

// inputState folds tcell events into a ui.Input between frames. tcell
// reports the held button mask on every mouse event, so presses and
// releases are derived from the previous mask.
type inputState struct {
	state   ui.Input
	buttons tcell.ButtonMask
	cellW   float32
	cellH   float32
}

const buttonMask = tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle

var tcellButtons = [...]struct {
	mask tcell.ButtonMask
	b    ui.Button
}{
	{tcell.ButtonPrimary, ui.MouseLeft},
	{tcell.ButtonSecondary, ui.MouseRight},
	{tcell.ButtonMiddle, ui.MouseMiddle},
}

var tcellKeys = map[tcell.Key]ui.Key{
	tcell.KeyTab:        ui.KeyTab,
	tcell.KeyBacktab:    ui.KeyTab,
	tcell.KeyEnter:      ui.KeyEnter,
	tcell.KeyEscape:     ui.KeyEscape,
	tcell.KeyBackspace:  ui.KeyBackspace,
	tcell.KeyBackspace2: ui.KeyBackspace,
	tcell.KeyDelete:     ui.KeyDelete,
	tcell.KeyLeft:       ui.KeyLeft,
	tcell.KeyRight:      ui.KeyRight,
	tcell.KeyUp:         ui.KeyUp,
	tcell.KeyDown:       ui.KeyDown,
	tcell.KeyHome:       ui.KeyHome,
	tcell.KeyEnd:        ui.KeyEnd,
	tcell.KeyPgUp:       ui.KeyPageUp,
	tcell.KeyPgDn:       ui.KeyPageDown,
}

// HandleEvent folds ev into the pending input. Resize events resize the
// grid. It reports whether the event was understood.
func (b *Backend) HandleEvent(ev tcell.Event) bool {
	in := &b.input
	switch ev := ev.(type) {
	case *tcell.EventResize:
		b.screen.Sync()
		b.Resize()
		return true
	case *tcell.EventMouse:
		in.mouse(ev)
		return true
	case *tcell.EventKey:
		return in.key(ev)
	}
	return false
}

// FlushInput copies the collected input into dst and starts a new frame's
// edges. Call it right before ui.Context.BeginFrame.
func (b *Backend) FlushInput(dst *ui.Input) {
	*dst = b.input.state
	b.input.state.ClearEdges()
}

func (s *inputState) mouse(ev *tcell.EventMouse) {
	in := &s.state
	x, y := ev.Position()
	// Cell centres, so a click lands inside whatever covers the cell.
	in.MoveTo((float32(x)+0.5)*s.cellW, (float32(y)+0.5)*s.cellH)
	in.Mods = uiMods(ev.Modifiers())

	held := ev.Buttons() & buttonMask
	for _, tb := range tcellButtons {
		switch was, is := s.buttons&tb.mask != 0, held&tb.mask != 0; {
		case is && !was:
			in.Press(tb.b)
		case was && !is:
			in.Release(tb.b)
		}
	}
	s.buttons = held

	wheel := ev.Buttons()
	if wheel&tcell.WheelUp != 0 {
		in.AddScroll(0, 1)
	}
	if wheel&tcell.WheelDown != 0 {
		in.AddScroll(0, -1)
	}
	if wheel&tcell.WheelLeft != 0 {
		in.AddScroll(1, 0)
	}
	if wheel&tcell.WheelRight != 0 {
		in.AddScroll(-1, 0)
	}
}

func (s *inputState) key(ev *tcell.EventKey) bool {
	in := &s.state
	mods := uiMods(ev.Modifiers())
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r == ' ' {
			in.SetKey(ui.KeySpace, mods)
		}
		in.SetChar(r)
		return true
	}
	k, ok := tcellKeys[ev.Key()]
	if !ok {
		return false
	}
	if ev.Key() == tcell.KeyBacktab {
		mods |= ui.ModShift
	}
	in.SetKey(k, mods)
	return true
}

func uiMods(m tcell.ModMask) ui.Mod {
	var out ui.Mod
	if m&tcell.ModShift != 0 {
		out |= ui.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= ui.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= ui.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= ui.ModSuper
	}
	return out
}
