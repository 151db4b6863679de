package ui

import (
	"fmt"
	"log/slog"
	"unsafe"
)

// Context owns every piece of UI state. Create one with New and pass it to
// every call; nothing in the package is global. A nil *Context is a no-op
// receiver on every exported method.
type Context struct {
	cfg Config
	be  backend
	log *slog.Logger

	in         Input
	frame      uint64
	inFrame    bool
	endProfile func()

	// windows never grows past MaxWindows, so pointers into it stay valid.
	windows    []window
	win        *window
	winContent Rect
	hoverWin   ID
	moving     ID
	resizing   ID
	dragOffX   float32
	dragOffY   float32

	clip     clipStack
	boxes    boxStack
	lay      cursor
	contentW float32
	scrolls  []scrollEntry

	modal      modalState
	modalSaved cursor
	layers     layerState

	focus      focusState
	active     ID
	dragging   bool
	pressX     float32
	pressY     float32
	prevMouseX float32
	prevMouseY float32
	anim       animState

	text  textCache
	batch batcher
	dirty dirtyTracker
}

// New validates cfg and allocates every table the Context will ever use.
func New(cfg Config, r Renderer) (*Context, error) {
	if r == nil {
		return nil, ErrNilRenderer
	}
	cfg = cfg.WithDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("ui: new context: %w", err)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	ctx := &Context{
		cfg:     cfg,
		be:      newBackend(r),
		log:     log,
		windows: make([]window, 0, cfg.MaxWindows),
		clip:    newClipStack(cfg.ClipStackSize),
		boxes:   newBoxStack(cfg.BoxStackSize, cfg.MaxBoxChildren),
		scrolls: make([]scrollEntry, 0, cfg.ScrollStackSize),
		layers:  newLayerState(cfg.MaxLayers),
		focus:   focusState{index: -1},
		text:    newTextCache(cfg.TextCacheSize, cfg.TextCacheProbe, cfg.TextCacheDecay),
		batch:   newBatcher(cfg.MaxCommands, cfg.Batching),
		dirty:   newDirtyTracker(cfg.MaxDirtyRects),
	}
	log.Debug("ui: context ready",
		"capabilities", ctx.be.caps,
		"windows", cfg.MaxWindows,
		"bytes", MinMemory(cfg),
	)
	return ctx, nil
}

// MinMemory is the number of bytes the tables of a Context built from cfg
// occupy. It returns 0 for a configuration New would reject.
func MinMemory(cfg Config) int {
	cfg = cfg.WithDefaults()
	if cfg.validate() != nil {
		return 0
	}
	n := int(unsafe.Sizeof(Context{}))
	n += cfg.MaxWindows * int(unsafe.Sizeof(window{}))
	n += cfg.ClipStackSize * int(unsafe.Sizeof(Rect{}))
	n += cfg.BoxStackSize * int(unsafe.Sizeof(boxEntry{}))
	n += cfg.BoxStackSize * cfg.MaxBoxChildren * int(unsafe.Sizeof(float32(0)))
	n += cfg.ScrollStackSize * int(unsafe.Sizeof(scrollEntry{}))
	n += 2 * cfg.MaxLayers * int(unsafe.Sizeof(layerRegion{}))
	n += pow2(cfg.TextCacheSize) * int(unsafe.Sizeof(textEntry{}))
	n += cfg.MaxCommands * int(unsafe.Sizeof(Command{}))
	n += cfg.MaxDirtyRects * int(unsafe.Sizeof(Rect{}))
	return n
}

// Input is the snapshot the host fills before BeginFrame. Edges (presses,
// releases, key, char, scroll) are cleared by EndFrame.
func (ctx *Context) Input() *Input {
	if ctx == nil {
		return nil
	}
	return &ctx.in
}

func (ctx *Context) Config() Config {
	if ctx == nil {
		return Config{}
	}
	return ctx.cfg
}

// Frame counts BeginFrame calls.
func (ctx *Context) Frame() uint64 {
	if ctx == nil {
		return 0
	}
	return ctx.frame
}

// Stats is a snapshot of per-frame counters.
type Stats struct {
	Frame      uint64
	Batch      BatchStats
	CacheHits  uint64
	CacheMiss  uint64
	CacheSize  int
	Windows    int
	DirtyRects int
	FullRedraw bool
}

func (ctx *Context) Stats() Stats {
	if ctx == nil {
		return Stats{}
	}
	return Stats{
		Frame:      ctx.frame,
		Batch:      ctx.batch.stats,
		CacheHits:  ctx.text.hits,
		CacheMiss:  ctx.text.misses,
		CacheSize:  ctx.text.len(),
		Windows:    len(ctx.windows),
		DirtyRects: len(ctx.dirty.rects),
		FullRedraw: ctx.FullRedraw(),
	}
}

// ===== Balance checks =====

// scopeMark records stack depths a scope must return to when it closes.
type scopeMark struct {
	clip, box, scroll, layer int
}

func (ctx *Context) mark() scopeMark {
	return scopeMark{
		clip:   ctx.clip.depth(),
		box:    ctx.boxes.depth(),
		scroll: len(ctx.scrolls),
		layer:  ctx.layers.depth,
	}
}

// checkBalance compares the stacks against want. In Debug mode a mismatch
// panics; otherwise it is logged and the stacks are cut back to want.
func (ctx *Context) checkBalance(scope, name string, want scopeMark) {
	got := ctx.mark()
	if got == want {
		return
	}
	if ctx.cfg.Debug {
		panic(fmt.Sprintf("ui: unbalanced %s %q: clip %d/%d box %d/%d scroll %d/%d layer %d/%d",
			scope, name, got.clip, want.clip, got.box, want.box, got.scroll, want.scroll, got.layer, want.layer))
	}
	ctx.log.Warn("ui: unbalanced stacks repaired",
		"scope", scope,
		"name", name,
		"clip", got.clip, "want_clip", want.clip,
		"box", got.box, "want_box", want.box,
		"scroll", got.scroll, "want_scroll", want.scroll,
		"layer", got.layer, "want_layer", want.layer,
	)
	if got.scroll > want.scroll {
		// The outermost leaked scroll saved the cursor the scope started with.
		ctx.lay = ctx.scrolls[want.scroll].saved
		ctx.scrolls = ctx.scrolls[:want.scroll]
	}
	ctx.clip.truncate(want.clip)
	ctx.boxes.truncate(want.box)
	if got.layer > want.layer {
		ctx.layers.depth = want.layer
	}
}
