package core

import (
	"errors"
	"slices"
	"testing"

	"github.com/hubastard/iui/engine/ui"
)

type fakeWindow struct {
	frames  int // frames left before ShouldClose
	closed  bool
	onEv    func(Event)
	pending [][]Event // events delivered by successive PollEvents
	swaps   int
}

func (w *fakeWindow) PollEvents() {
	if len(w.pending) == 0 {
		return
	}
	evs := w.pending[0]
	w.pending = w.pending[1:]
	for _, ev := range evs {
		w.onEv(ev)
	}
}
func (w *fakeWindow) SwapBuffers()                    { w.swaps++; w.frames-- }
func (w *fakeWindow) ShouldClose() bool               { return w.closed || w.frames <= 0 }
func (w *fakeWindow) RequestClose()                   { w.closed = true }
func (w *fakeWindow) FramebufferSize() (int, int)     { return 640, 480 }
func (w *fakeWindow) SetTitle(string)                 {}
func (w *fakeWindow) SetEventCallback(cb func(Event)) { w.onEv = cb }

type fakeRenderer struct {
	sizes    [][2]int
	clears   int
	shutdown bool
}

func (r *fakeRenderer) Resize(w, h int)          { r.sizes = append(r.sizes, [2]int{w, h}) }
func (r *fakeRenderer) Clear(_, _, _, _ float32) { r.clears++ }
func (r *fakeRenderer) Shutdown()                { r.shutdown = true }

type trace struct{ log []string }

func (t *trace) add(s string) { t.log = append(t.log, s) }

type testApp struct {
	*trace
	layers []Layer
}

func (a *testApp) OnStart(e *Engine) {
	a.add("start")
	for _, l := range a.layers {
		e.Layers.Push(l)
	}
}
func (a *testApp) OnUpdate(*Engine, float64) {}
func (a *testApp) OnRender(*Engine, float64) { a.add("render") }
func (a *testApp) OnEvent(_ *Engine, ev Event) {
	if _, ok := ev.(EventKey); ok {
		a.add("app key")
	}
}
func (a *testApp) OnShutdown(*Engine) { a.add("shutdown") }

type testLayer struct {
	*trace
	name   string
	handle bool
}

func (l *testLayer) OnAttach(*Engine)          { l.add(l.name + " attach") }
func (l *testLayer) OnDetach(*Engine)          { l.add(l.name + " detach") }
func (l *testLayer) OnUpdate(*Engine, float64) {}
func (l *testLayer) OnRender(*Engine, float64) { l.add(l.name + " render") }
func (l *testLayer) OnEvent(_ *Engine, ev Event) bool {
	if _, ok := ev.(EventKey); ok {
		l.add(l.name + " key")
		return l.handle
	}
	return false
}

func TestRun(t *testing.T) {
	tr := &trace{}
	app := &testApp{trace: tr, layers: []Layer{
		&testLayer{trace: tr, name: "bottom"},
		&testLayer{trace: tr, name: "top", handle: true},
	}}
	win := &fakeWindow{frames: 2, pending: [][]Event{
		{EventKey{Key: KeyP, Down: true}, EventResize{W: 800, H: 600}, EventResize{}},
	}}
	rend := &fakeRenderer{}

	err := Run(app, Config{},
		func(Config) (Window, error) { return win, nil },
		func(Window, Config) (Renderer, error) { return rend, nil })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		"start", "bottom attach", "top attach",
		"app key", "top key", // the top layer handles the key
		"render", "bottom render", "top render",
		"render", "bottom render", "top render",
		"top detach", "bottom detach", "shutdown",
	}
	if !slices.Equal(tr.log, want) {
		t.Errorf("trace:\n got %q\nwant %q", tr.log, want)
	}
	if !slices.Equal(rend.sizes, [][2]int{{640, 480}, {800, 600}}) {
		t.Errorf("resizes: %v", rend.sizes)
	}
	if rend.clears != 2 || win.swaps != 2 || !rend.shutdown {
		t.Errorf("clears %d swaps %d shutdown %v", rend.clears, win.swaps, rend.shutdown)
	}
}

func TestRunErrors(t *testing.T) {
	boom := errors.New("boom")
	err := Run(&testApp{trace: &trace{}}, Config{},
		func(Config) (Window, error) { return nil, boom },
		func(Window, Config) (Renderer, error) { return &fakeRenderer{}, nil })
	if !errors.Is(err, boom) {
		t.Errorf("window error: got %v", err)
	}
	err = Run(&testApp{trace: &trace{}}, Config{},
		func(Config) (Window, error) { return &fakeWindow{}, nil },
		func(Window, Config) (Renderer, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Errorf("renderer error: got %v", err)
	}
}

func TestCloseRequest(t *testing.T) {
	win := &fakeWindow{frames: 100, pending: [][]Event{{EventCloseRequested{}}}}
	tr := &trace{}
	err := Run(&testApp{trace: tr}, Config{},
		func(Config) (Window, error) { return win, nil },
		func(Window, Config) (Renderer, error) { return &fakeRenderer{}, nil })
	if err != nil {
		t.Fatal(err)
	}
	if win.swaps != 1 {
		t.Errorf("frames after close request: got %d, want 1", win.swaps)
	}
}

func TestLayerStack(t *testing.T) {
	var ls LayerStack
	if _, ok := ls.Pop(); ok {
		t.Error("pop from empty stack")
	}
	tr := &trace{}
	a := &testLayer{trace: tr, name: "a"}
	b := &testLayer{trace: tr, name: "b"}
	ls.Push(a)
	ls.Push(b)
	var order []Layer
	ls.ForEachReverse(func(l Layer) bool { order = append(order, l); return false })
	if len(order) != 2 || order[0] != b {
		t.Errorf("reverse order: %v", order)
	}
	if l, _ := ls.Pop(); l != b || ls.Len() != 1 {
		t.Errorf("pop: got %v, len %d", l, ls.Len())
	}
	if len(tr.log) != 0 {
		t.Errorf("detached stack called layers: %q", tr.log)
	}

	// Once attached, pushes and pops reach the layers directly.
	ls.attach(&Engine{})
	c := &testLayer{trace: tr, name: "c"}
	ls.Push(c)
	ls.Pop()
	ls.detachAll()
	want := []string{"a attach", "c attach", "c detach", "a detach"}
	if !slices.Equal(tr.log, want) {
		t.Errorf("trace:\n got %q\nwant %q", tr.log, want)
	}
	if ls.Len() != 0 {
		t.Errorf("len after detachAll: %d", ls.Len())
	}
}

func TestInputCollector(t *testing.T) {
	c := NewInputCollector()
	c.SetScale(2)
	c.SetScale(0) // ignored
	var in ui.Input

	c.Handle(EventMouseMove{X: 100, Y: 40})
	c.Handle(EventMouseButton{Button: MouseLeft, Down: true, Mods: ModShift})
	c.Handle(EventKey{Key: KeyTab, Down: true, Mods: ModShift})
	c.Handle(EventKey{Key: KeyEnter, Down: true})
	c.Handle(EventKey{Key: KeyP, Down: true, Mods: ModCtrl})
	c.Handle(EventChar{Rune: 'x'})
	c.Handle(EventScroll{Yoff: -1})
	c.Handle(EventScroll{Yoff: -2})
	c.Flush(&in)

	if in.MouseX != 50 || in.MouseY != 20 {
		t.Errorf("pointer: (%v, %v), want (50, 20)", in.MouseX, in.MouseY)
	}
	if in.Pressed != ui.MouseLeft || in.Down != ui.MouseLeft {
		t.Errorf("buttons: pressed %v down %v", in.Pressed, in.Down)
	}
	if in.Key != ui.KeyTab || in.Char != 'x' || in.ScrollY != -3 {
		t.Errorf("key %v char %q scroll %v", in.Key, in.Char, in.ScrollY)
	}
	if in.Mods != ui.ModCtrl {
		t.Errorf("mods follow the latest event: got %v", in.Mods)
	}
	if !c.IsKeyDown(KeyP) {
		t.Error("P not tracked as held")
	}

	// Next frame: edges are gone, held state remains.
	c.Handle(EventMouseButton{Button: MouseLeft})
	c.Flush(&in)
	if in.Pressed != 0 || in.Released != ui.MouseLeft || in.Down != 0 || in.Key != ui.KeyNone {
		t.Errorf("second frame: %+v", in)
	}
	if in.MouseX != 50 {
		t.Error("pointer position lost between frames")
	}
}
