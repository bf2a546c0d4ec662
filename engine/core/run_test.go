package core_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/gl2d/engine/colors"
	"github.com/hubastard/gl2d/engine/core"
	"github.com/hubastard/gl2d/engine/gfx"
	"github.com/hubastard/gl2d/engine/gfx/gfxtest"
)

type fakeWindow struct {
	w, h      int
	maxFrames int
	frames    int
	polls     int
	closed    bool
	destroyed bool
	cb        func(core.Event)

	// pending events are delivered on the given poll (1-based)
	pending map[int][]core.Event
}

func (f *fakeWindow) PollEvents() {
	f.polls++
	for _, ev := range f.pending[f.polls] {
		f.cb(ev)
	}
}
func (f *fakeWindow) SwapBuffers()                         { f.frames++ }
func (f *fakeWindow) ShouldClose() bool                    { return f.closed || f.frames >= f.maxFrames }
func (f *fakeWindow) RequestClose()                        { f.closed = true }
func (f *fakeWindow) FramebufferSize() (int, int)          { return f.w, f.h }
func (f *fakeWindow) SetTitle(string)                      {}
func (f *fakeWindow) SetEventCallback(cb func(core.Event)) { f.cb = cb }
func (f *fakeWindow) Destroy()                             { f.destroyed = true }

type recordingApp struct {
	startErr error
	started  bool
	updates  int
	renders  int
	dts      []float64
	events   []core.Event
	shutdown bool
	onUpdate func(e *core.Engine)
}

func (a *recordingApp) OnStart(*core.Engine) error {
	a.started = true
	return a.startErr
}

func (a *recordingApp) OnUpdate(e *core.Engine, dt float64) {
	a.updates++
	a.dts = append(a.dts, dt)
	if a.onUpdate != nil {
		a.onUpdate(e)
	}
}
func (a *recordingApp) OnRender(*core.Engine, float64)        { a.renders++ }
func (a *recordingApp) OnEvent(_ *core.Engine, ev core.Event) { a.events = append(a.events, ev) }
func (a *recordingApp) OnShutdown(*core.Engine)               { a.shutdown = true }

// steppingClock advances by step on every call.
func steppingClock(step time.Duration) core.Clock {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func run(t *testing.T, app core.App, win *fakeWindow, be *gfxtest.Backend, cfg core.Config) error {
	t.Helper()
	return core.Run(app, cfg,
		func(core.Config) (core.Window, error) { return win, nil },
		func() gfx.Backend { return be },
		core.WithClock(steppingClock(time.Second/60)),
		core.WithLogger(quiet()))
}

func TestRunFixedStepLoop(t *testing.T) {
	win := &fakeWindow{w: 800, h: 600, maxFrames: 5}
	be := gfxtest.New()
	app := &recordingApp{}

	require.NoError(t, run(t, app, win, be, core.Config{Title: "t", ClearColor: colors.Goodie}))

	assert.True(t, app.started)
	assert.True(t, app.shutdown)
	assert.True(t, win.destroyed)
	assert.Equal(t, 5, app.renders)
	assert.Equal(t, 5, app.updates)
	for _, dt := range app.dts {
		assert.InDelta(t, 1.0/60, dt, 1e-9)
	}
	assert.Equal(t, 5, be.Clears)
	assert.Equal(t, [4]int32{0, 0, 800, 600}, be.ViewportRect)
	assert.Equal(t, colors.Goodie.Vec4(), be.ClearRGBA)
}

func TestRunResizeAndInput(t *testing.T) {
	win := &fakeWindow{w: 800, h: 600, maxFrames: 3, pending: map[int][]core.Event{
		1: {
			core.EventResize{W: 1024, H: 768},
			core.EventResize{W: 0, H: 0},
			core.EventKey{Key: core.KeyEscape, Down: true},
		},
	}}
	be := gfxtest.New()
	app := &recordingApp{onUpdate: func(e *core.Engine) {
		if e.Input.IsKeyDown(core.KeyEscape) {
			e.Quit()
		}
	}}

	require.NoError(t, run(t, app, win, be, core.Config{}))

	assert.Equal(t, [4]int32{0, 0, 1024, 768}, be.ViewportRect, "zero-size resize is ignored")
	assert.Equal(t, 1, win.frames, "escape closes after the first frame")
	require.Len(t, app.events, 2)
	assert.Equal(t, core.EventResize{W: 1024, H: 768}, app.events[0])
}

func TestRunUptimeFollowsClock(t *testing.T) {
	const step = time.Second / 60
	win := &fakeWindow{w: 8, h: 8, maxFrames: 3}
	var uptimes []time.Duration
	app := &recordingApp{onUpdate: func(e *core.Engine) {
		uptimes = append(uptimes, e.Uptime())
	}}

	require.NoError(t, run(t, app, win, gfxtest.New(), core.Config{}))

	// start, first frame time and the first frame's update each read the clock once
	require.NotEmpty(t, uptimes)
	assert.Equal(t, 3*step, uptimes[0])
	for i := 1; i < len(uptimes); i++ {
		assert.Greater(t, uptimes[i], uptimes[i-1])
	}
	assert.Less(t, uptimes[len(uptimes)-1], time.Second)
}

func TestRunStartFailure(t *testing.T) {
	win := &fakeWindow{w: 1, h: 1, maxFrames: 10}
	be := gfxtest.New()
	boom := errors.New("boom")
	app := &recordingApp{startErr: boom}

	err := run(t, app, win, be, core.Config{})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, app.renders)
	assert.True(t, app.shutdown)
	assert.True(t, win.destroyed)
}

func TestRunContextFailure(t *testing.T) {
	win := &fakeWindow{w: 1, h: 1, maxFrames: 10}
	be := gfxtest.New()
	be.InitErr = errors.New("no loader")
	app := &recordingApp{}

	err := run(t, app, win, be, core.Config{})
	assert.ErrorIs(t, err, be.InitErr)
	assert.False(t, app.started)
	assert.True(t, win.destroyed)
}

func TestRunWindowFailure(t *testing.T) {
	err := core.Run(&recordingApp{}, core.Config{},
		func(core.Config) (core.Window, error) { return nil, errors.New("no display") },
		func() gfx.Backend { return gfxtest.New() })
	assert.EqualError(t, err, "create window: no display")
}

func TestInput(t *testing.T) {
	in := core.NewInput()
	in.Handle(core.EventKey{Key: core.KeyA, Down: true})
	in.Handle(core.EventMouseMove{X: 3, Y: 4})
	in.Handle(core.EventScroll{Yoff: 1})
	in.Handle(core.EventScroll{Yoff: 0.5})

	assert.True(t, in.IsKeyDown(core.KeyA))
	x, y := in.Mouse()
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)
	assert.Equal(t, 1.5, in.TakeScroll())
	assert.Zero(t, in.TakeScroll())

	in.Reset()
	assert.False(t, in.IsKeyDown(core.KeyA))

	in.Handle(core.EventKey{Key: core.KeyW, Down: true})
	in.Handle(core.EventFocus{Focused: true})
	assert.True(t, in.IsKeyDown(core.KeyW))
	in.Handle(core.EventFocus{Focused: false})
	assert.False(t, in.IsKeyDown(core.KeyW), "losing focus releases held keys")
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "page_up", core.KeyPageUp.String())
	assert.Equal(t, "unknown", core.Key(99).String())
}
