package core

// Layer is one slice of the frame: the sandbox stacks the UI under a debug
// overlay. Layers render bottom to top and see events top to bottom.
type Layer interface {
	OnAttach(e *Engine)
	OnDetach(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	OnEvent(e *Engine, ev Event) bool // true stops propagation
}

// LayerStack orders the layers. Before the loop starts, pushes only queue;
// once Run has attached the stack, Push and Pop attach and detach on the spot.
type LayerStack struct {
	list []Layer
	eng  *Engine
}

func (ls *LayerStack) Push(l Layer) {
	ls.list = append(ls.list, l)
	if ls.eng != nil {
		l.OnAttach(ls.eng)
	}
}

func (ls *LayerStack) Pop() (Layer, bool) {
	n := len(ls.list)
	if n == 0 {
		return nil, false
	}
	l := ls.list[n-1]
	ls.list[n-1] = nil
	ls.list = ls.list[:n-1]
	if ls.eng != nil {
		l.OnDetach(ls.eng)
	}
	return l, true
}

func (ls *LayerStack) Len() int { return len(ls.list) }

// attach hands the queued layers the engine, bottom first.
func (ls *LayerStack) attach(e *Engine) {
	ls.eng = e
	for _, l := range ls.list {
		l.OnAttach(e)
	}
}

// detachAll pops every layer, top first.
func (ls *LayerStack) detachAll() {
	for _, ok := ls.Pop(); ok; _, ok = ls.Pop() {
	}
	ls.eng = nil
}

func (ls *LayerStack) ForEach(f func(Layer)) {
	for _, l := range ls.list {
		f(l)
	}
}

// ForEachReverse walks from the top until f returns true.
func (ls *LayerStack) ForEachReverse(f func(Layer) bool) {
	for i := len(ls.list) - 1; i >= 0; i-- {
		if f(ls.list[i]) {
			return
		}
	}
}
