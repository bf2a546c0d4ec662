package core

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/hubastard/gl2d/engine/gfx"
	applog "github.com/hubastard/gl2d/engine/log"
	"github.com/hubastard/gl2d/engine/vmath"
)

// maxSteps caps fixed updates per frame so a long stall cannot spiral.
const maxSteps = 10

// Clock returns the current time. Run uses time.Now; tests substitute a
// stepping clock.
type Clock func() time.Time

type runOptions struct {
	clock Clock
	log   *slog.Logger
}

type RunOption func(*runOptions)

func WithClock(c Clock) RunOption { return func(o *runOptions) { o.clock = c } }

func WithLogger(l *slog.Logger) RunOption { return func(o *runOptions) { o.log = l } }

// Run creates the window and graphics context, then executes the main loop
// until the window is asked to close.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newBackend func() gfx.Backend, opts ...RunOption) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	o := runOptions{clock: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		o.log = applog.WithComponent("engine")
	}

	win, err := newWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Destroy()

	ctx, err := gfx.NewContext(newBackend(), gfx.WithLogger(o.log.With(slog.String("component", "gfx"))))
	if err != nil {
		return err
	}
	defer ctx.Close()

	ctx.SetClearColor(cfg.ClearColor)
	resize := func(w, h int) bool {
		if w < 1 || h < 1 {
			return false
		}
		ctx.SetViewport(vmath.Rect{W: int32(w), H: int32(h)})
		return true
	}
	resize(win.FramebufferSize())

	eng := &Engine{Window: win, Context: ctx, Input: NewInput(), Log: o.log, clock: o.clock}
	eng.start = eng.clock()
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		if r, ok := ev.(EventResize); ok && !resize(r.W, r.H) {
			return
		}
		app.OnEvent(eng, ev)
	})

	if err := app.OnStart(eng); err != nil {
		// let the app release what it created before failing
		app.OnShutdown(eng)
		return fmt.Errorf("start: %w", err)
	}
	o.log.Info("engine started", slog.String("title", cfg.Title), slog.Int("width", cfg.Width), slog.Int("height", cfg.Height))

	rate := cfg.TickRate
	if rate <= 0 {
		rate = 60
	}
	tick := time.Second / time.Duration(rate)
	dt := tick.Seconds()

	var (
		accum time.Duration
		prev  = o.clock()
	)
	for !win.ShouldClose() {
		now := o.clock()
		accum += now.Sub(prev)
		prev = now

		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxSteps {
			app.OnUpdate(eng, dt)
			accum -= tick
			steps++
		}
		if steps == maxSteps && accum >= tick {
			o.log.Debug("dropping update backlog", slog.Duration("behind", accum))
			accum = 0
		}
		alpha := float64(accum) / float64(tick)

		ctx.Clear()
		app.OnRender(eng, alpha)
		win.SwapBuffers()
		eng.frames++
	}

	app.OnShutdown(eng)
	o.log.Info("engine exit", slog.Uint64("frames", eng.frames), slog.Duration("uptime", eng.Uptime()))
	return nil
}
