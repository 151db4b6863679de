package ui

import (
	"unsafe"

	"github.com/mattn/go-runewidth"
)

// textEntry keys a measured width on both the content hash and the address
// of the string's bytes.
type textEntry struct {
	hash  uint32
	ptr   uintptr
	width float32
	hits  uint8 // saturating
	used  bool
}

// textCache is an open-addressing table with a bounded linear probe.
// Slots are only ever overwritten, never emptied, so an empty slot inside
// the probe window ends the search.
//
// Identity is the string's backing storage. A buffer rewritten in place at
// the same address with content that hashes equal will be served a stale
// width; callers that reuse buffers must not rely on the cache for them.
type textCache struct {
	slots    []textEntry
	mask     uint32
	probe    int
	decayN   int
	decayPos uint32

	hits, misses uint64
}

func newTextCache(size, probe, decay int) textCache {
	n := pow2(size)
	if probe > n {
		probe = n
	}
	return textCache{
		slots:  make([]textEntry, n),
		mask:   uint32(n - 1),
		probe:  probe,
		decayN: decay,
	}
}

func pow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func identity(s string) uintptr {
	if len(s) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(unsafe.StringData(s)))
}

func (c *textCache) lookup(s string) (float32, bool) {
	h, p := hashString(s), identity(s)
	for n := 0; n < c.probe; n++ {
		e := &c.slots[(h+uint32(n))&c.mask]
		if !e.used {
			break
		}
		if e.hash == h && e.ptr == p {
			if e.hits < 255 {
				e.hits++
			}
			c.hits++
			return e.width, true
		}
	}
	c.misses++
	return 0, false
}

// insert stores w for s. A matching entry only takes the new width and
// keeps its hits; otherwise the first empty slot in the probe window is
// used, or the least-hit entry there is evicted.
func (c *textCache) insert(s string, w float32) {
	h, p := hashString(s), identity(s)
	victim := -1
	var lowest uint8
	for n := 0; n < c.probe; n++ {
		idx := int((h + uint32(n)) & c.mask)
		e := &c.slots[idx]
		if e.used && e.hash == h && e.ptr == p {
			e.width = w
			return
		}
		if !e.used {
			victim = idx
			break
		}
		if victim < 0 || e.hits < lowest {
			victim, lowest = idx, e.hits
		}
	}
	c.slots[victim] = textEntry{hash: h, ptr: p, width: w, used: true}
}

// decay ages a few entries per call, cycling through the table, so stale
// strings become cheap to evict without a full sweep.
func (c *textCache) decay() {
	for n := 0; n < c.decayN; n++ {
		e := &c.slots[c.decayPos]
		if e.used && e.hits > 0 {
			e.hits--
		}
		c.decayPos = (c.decayPos + 1) & c.mask
	}
}

func (c *textCache) len() int {
	n := 0
	for i := range c.slots {
		if c.slots[i].used {
			n++
		}
	}
	return n
}

func (c *textCache) reset() {
	clear(c.slots)
	c.hits, c.misses, c.decayPos = 0, 0, 0
}

// TextWidth measures s through the cache. Misses go to the backend's
// measurer, or to a monospace estimate when the backend cannot measure.
func (ctx *Context) TextWidth(s string) float32 {
	if ctx == nil || s == "" {
		return 0
	}
	if w, ok := ctx.text.lookup(s); ok {
		return w
	}
	var w float32
	if ctx.be.measure != nil {
		w = ctx.be.measure.MeasureText(s) / ctx.cfg.Scale
	} else {
		w = float32(runewidth.StringWidth(s)) * ctx.cfg.FontHeight * 0.5
	}
	ctx.text.insert(s, w)
	return w
}

// ResetTextCache drops every cached width, e.g. after a font change.
func (ctx *Context) ResetTextCache() {
	if ctx == nil {
		return
	}
	ctx.text.reset()
}
