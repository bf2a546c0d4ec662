package main

import (
	"fmt"
	"time"

	"github.com/hubastard/gl2d/engine/gfx/renderer2d"
	"github.com/hubastard/gl2d/engine/profiler"
)

// frameStats turns per-frame counters into a window title once a second.
type frameStats struct {
	title   string
	elapsed float64
	frames  int
	batch   renderer2d.Statistics

	// mem is swapped in tests.
	mem func() profiler.MemStats
}

func newFrameStats(title string) *frameStats {
	return &frameStats{title: title, mem: profiler.ReadMemStats}
}

// tick advances the clock by dt seconds and reports a new title when a
// full second has passed. up is the engine uptime shown at the end.
func (fs *frameStats) tick(dt float64, up time.Duration) (string, bool) {
	fs.elapsed += dt
	if fs.elapsed < 1 {
		return "", false
	}
	fps := float64(fs.frames) / fs.elapsed
	fs.elapsed, fs.frames = 0, 0

	m := fs.mem()
	return fmt.Sprintf("%s | %.0f fps | %d quads, %d draws, %d textures | %.1f MB | up %s",
		fs.title, fps, fs.batch.QuadCount, fs.batch.DrawCalls, fs.batch.TextureCount,
		float64(m.Alloc)/(1<<20), up.Truncate(time.Second)), true
}
