//go:build profile

// Package profiler records nested timing scopes into a ring buffer and writes
// them as a speedscope evented profile. Build with -tags profile to enable it.
package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

var ErrEmpty = errors.New("profiler: no events recorded")

// Init allocates room for capacity open/close events. Older events are
// overwritten once the ring is full.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	ring.init(capacity)
}

func Enabled() bool { return ring.ready.Load() }

// Start opens a scope and returns the func that closes it.
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	id := intern(name)
	start := time.Now().UnixNano()
	ring.push(event{at: start, frame: id, open: true})
	return func() {
		end := max(time.Now().UnixNano(), start)
		ring.push(event{at: end, frame: id})
	}
}

// Dump writes the recorded events to path.
func Dump(path string) error {
	evs := ring.snapshot()
	if len(evs) == 0 {
		return ErrEmpty
	}
	return writeSpeedscope(evs, path)
}

// Open dumps to the temp dir and launches the speedscope viewer on it.
func Open() (string, error) {
	path := filepath.Join(os.TempDir(), "iui.speedscope.json")
	if err := Dump(path); err != nil {
		return "", err
	}
	cmd := exec.Command("speedscope", path)
	hideConsole(cmd)
	if err := cmd.Start(); err != nil {
		slog.Warn("profiler: launching speedscope", "err", err)
	}
	return path, nil
}

// ----- event ring -----

type event struct {
	at    int64
	frame int
	open  bool
}

type eventRing struct {
	ready atomic.Bool
	size  uint64
	write atomic.Uint64
	evs   []event
}

var ring eventRing

func (r *eventRing) init(capacity int) {
	r.ready.Store(false)
	r.size = uint64(capacity)
	r.evs = make([]event, r.size)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e event) {
	i := r.write.Add(1) - 1
	r.evs[i%r.size] = e
}

// snapshot returns the surviving events in write order.
func (r *eventRing) snapshot() []event {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.size {
		start = n - r.size
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.size])
	}
	return out
}

// ----- scope names -----

var (
	namesMu sync.Mutex
	names   []string
	nameIDs = map[string]int{}
)

func intern(name string) int {
	namesMu.Lock()
	defer namesMu.Unlock()
	if id, ok := nameIDs[name]; ok {
		return id
	}
	id := len(names)
	nameIDs[name] = id
	names = append(names, name)
	return id
}

// ----- speedscope -----

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // microseconds since the first event
	Frame int    `json:"frame"`
}

// speedscopeEvents converts the ring to balanced O/C pairs. Closes without a
// matching open (their open was overwritten) are dropped and scopes still
// open at the end are closed at the last timestamp.
func speedscopeEvents(evs []event) (out []ssEvent, end int64) {
	base := evs[0].at
	out = make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64)
	last := int64(0)
	for _, e := range evs {
		at := max((e.at-base)/1000, last)
		if e.open {
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.frame})
			stack = append(stack, e.frame)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.frame {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.frame})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	return out, last
}

func writeSpeedscope(evs []event, path string) error {
	namesMu.Lock()
	frames := make([]ssFrame, len(names))
	for i, n := range names {
		frames[i] = ssFrame{Name: n}
	}
	namesMu.Unlock()

	out, end := speedscopeEvents(evs)
	if len(out) == 0 {
		return ErrEmpty
	}
	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "iui",
			Unit:     "microseconds",
			EndValue: end,
			Events:   out,
		}},
		Exporter: "iui-profiler",
		Name:     "iui capture",
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("profiler: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("profiler: %w", err)
	}
	return os.Rename(tmp, path)
}
