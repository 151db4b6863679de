package ui

// Button is a pointer button bit mask.
type Button uint8

const (
	MouseLeft Button = 1 << iota
	MouseRight
	MouseMiddle
)

type Key uint16

const (
	KeyNone Key = iota
	KeyTab
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Input is the per-frame input snapshot. The host writes it before
// BeginFrame; the core only reads it (and clears the one-shot edges at
// EndFrame).
type Input struct {
	MouseX, MouseY float32

	// Pressed and Released are edges for this frame; Down is the held mask.
	Pressed, Released, Down Button

	// At most one key and one character per frame.
	Key  Key
	Char rune
	Mods Mod

	ScrollX, ScrollY float32
}

func (in *Input) MoveTo(x, y float32) {
	in.MouseX, in.MouseY = x, y
}

func (in *Input) Press(b Button) {
	in.Pressed |= b
	in.Down |= b
}

func (in *Input) Release(b Button) {
	in.Released |= b
	in.Down &^= b
}

// SetKey records k unless a key already arrived this frame.
func (in *Input) SetKey(k Key, mods Mod) {
	if in.Key != KeyNone {
		return
	}
	in.Key = k
	in.Mods = mods
}

// SetChar records r unless a character already arrived this frame.
func (in *Input) SetChar(r rune) {
	if in.Char != 0 {
		return
	}
	in.Char = r
}

func (in *Input) AddScroll(dx, dy float32) {
	in.ScrollX += dx
	in.ScrollY += dy
}

// ClearEdges drops everything that is only valid for one frame. EndFrame
// calls it; hosts that buffer input between frames use it too.
func (in *Input) ClearEdges() {
	in.Pressed = 0
	in.Released = 0
	in.Key = KeyNone
	in.Char = 0
	in.ScrollX = 0
	in.ScrollY = 0
}

// idle reports whether no button is held and none was just released.
func (in *Input) idle() bool {
	return in.Down == 0 && in.Released == 0
}
