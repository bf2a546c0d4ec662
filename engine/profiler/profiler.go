// Package profiler records nested timing scopes into a ring buffer and
// writes them as an evented speedscope profile.
package profiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"
)

// ErrNoEvents is returned by Write when nothing has been recorded.
var ErrNoEvents = errors.New("profiler: no events to dump")

// Profiler is safe for concurrent use, though scopes are expected to nest
// on a single goroutine (the render thread).
type Profiler struct {
	now func() time.Time

	mu     sync.Mutex
	ring   []evEntry
	write  uint64
	frames []string
	index  map[string]int
}

type Option func(*Profiler)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(p *Profiler) { p.now = now } }

// New returns a profiler keeping the last capacity scope events.
func New(capacity int, opts ...Option) *Profiler {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	p := &Profiler{now: time.Now, ring: make([]evEntry, capacity), index: map[string]int{}}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Start begins a scope and returns an end func to be deferred. A nil
// Profiler records nothing.
func (p *Profiler) Start(name string) func() {
	if p == nil {
		return func() {}
	}
	p.mu.Lock()
	fid := p.intern(name)
	start := p.now().UnixNano()
	p.push(evEntry{AtNS: start, FrameID: fid, Open: true})
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		end := p.now().UnixNano()
		if end < start {
			end = start
		}
		p.push(evEntry{AtNS: end, FrameID: fid, Open: false})
	}
}

// Len is the number of events currently held.
func (p *Profiler) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(min(p.write, uint64(len(p.ring))))
}

// WriteFile dumps the held events to path, replacing it atomically.
func (p *Profiler) WriteFile(path string) error {
	p.mu.Lock()
	evs := p.snapshot()
	names := append([]string(nil), p.frames...)
	p.mu.Unlock()

	if len(evs) == 0 {
		return ErrNoEvents
	}
	doc, err := speedscope(evs, names)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("profiler: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// MemStats is a small runtime snapshot for on-screen stats.
type MemStats struct {
	Alloc      uint64
	Mallocs    uint64
	Goroutines int
}

func ReadMemStats() MemStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemStats{Alloc: m.Alloc, Mallocs: m.Mallocs, Goroutines: runtime.NumGoroutine()}
}

// ---------- event ring ----------

type evEntry struct {
	AtNS    int64
	FrameID int
	Open    bool
}

func (p *Profiler) push(e evEntry) {
	p.ring[p.write%uint64(len(p.ring))] = e
	p.write++
}

// snapshot preserves write order.
func (p *Profiler) snapshot() []evEntry {
	n := p.write
	if n == 0 {
		return nil
	}
	c := uint64(len(p.ring))
	start := uint64(0)
	if n > c {
		start = n - c
	}
	out := make([]evEntry, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, p.ring[k%c])
	}
	return out
}

func (p *Profiler) intern(name string) int {
	if id, ok := p.index[name]; ok {
		return id
	}
	id := len(p.frames)
	p.index[name] = id
	p.frames = append(p.frames, name)
	return id
}

// ---------- speedscope ----------

type ssFile struct {
	Schema             string      `json:"$schema"`
	Shared             ssShared    `json:"shared"`
	Profiles           []ssProfile `json:"profiles"`
	ActiveProfileIndex int         `json:"activeProfileIndex"`
	Exporter           string      `json:"exporter,omitempty"`
	Name               string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"` // "evented"
	Name       string    `json:"name"`
	Unit       string    `json:"unit"` // "microseconds"
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"`  // "O" or "C"
	At    int64  `json:"at"`    // µs since first event
	Frame int    `json:"frame"` // frame index
}

func speedscope(evs []evEntry, names []string) (ssFile, error) {
	fs := make([]ssFrame, len(names))
	for i, n := range names {
		fs[i] = ssFrame{Name: n}
	}

	base := evs[0].AtNS
	var endUS int64
	lastUS := int64(-1)
	out := make([]ssEvent, 0, len(evs)+16)
	stack := make([]int, 0, 64)

	for _, e := range evs {
		atUS := (e.AtNS - base) / 1000
		if atUS < lastUS {
			atUS = lastUS // keep µs monotonic
		}
		if e.Open {
			out = append(out, ssEvent{Type: "O", At: atUS, Frame: e.FrameID})
			stack = append(stack, e.FrameID)
		} else {
			// closes whose open fell out of the ring are dropped
			if len(stack) == 0 || stack[len(stack)-1] != e.FrameID {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: atUS, Frame: e.FrameID})
		}
		lastUS = atUS
		endUS = max(endUS, atUS)
	}

	// speedscope wants balanced events
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: lastUS, Frame: stack[i]})
	}
	if len(out) == 0 {
		return ssFile{}, ErrNoEvents
	}

	return ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: fs},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "gl2d",
			Unit:     "microseconds",
			EndValue: endUS,
			Events:   out,
		}},
		Exporter: "gl2d-profiler",
		Name:     "gl2d capture",
	}, nil
}
