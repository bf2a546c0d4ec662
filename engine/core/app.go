package core

import (
	"log/slog"
	"time"

	"github.com/hubastard/gl2d/engine/colors"
	"github.com/hubastard/gl2d/engine/gfx"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine) error           // called once after window/context init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before the context closes, also after a failed OnStart
}

// Engine exposes core services to the App.
type Engine struct {
	Window  Window
	Context *gfx.Context
	Input   *Input
	Log     *slog.Logger

	clock  Clock
	start  time.Time
	frames uint64
}

// Uptime is the time since Run started the engine, measured on the loop's
// clock. Engines not created by Run report 0.
func (e *Engine) Uptime() time.Duration {
	if e.clock == nil {
		return 0
	}
	return e.clock().Sub(e.start)
}

// Frames is the number of frames presented so far.
func (e *Engine) Frames() uint64 { return e.frames }

// Quit asks the window to close after the current frame.
func (e *Engine) Quit() { e.Window.RequestClose() }

// Window abstraction. The window owns the native graphics context.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
	Destroy()
}

// Event model.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

// EventFocus reports the window gaining or losing input focus.
type EventFocus struct{ Focused bool }

func (EventFocus) isEvent() {}

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyComma
	KeyPeriod
)

var keyNames = [...]string{
	KeyUnknown:  "unknown",
	KeyEscape:   "escape",
	KeySpace:    "space",
	KeyW:        "w",
	KeyA:        "a",
	KeyS:        "s",
	KeyD:        "d",
	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyComma:    "comma",
	KeyPeriod:   "period",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return keyNames[KeyUnknown]
	}
	return keyNames[k]
}

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	Resizable  bool
	ClearColor colors.Color

	// TickRate is the fixed update rate in Hz; 0 means 60.
	TickRate int
}
