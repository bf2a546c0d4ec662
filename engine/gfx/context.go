package gfx

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/hubastard/gl2d/engine/colors"
	applog "github.com/hubastard/gl2d/engine/log"
	"github.com/hubastard/gl2d/engine/vmath"
)

// Context marks an initialized backend and owns its fixed global state.
// Only one Context may be active per native graphics context, and it must be
// used from the OS thread that made that context current.
type Context struct {
	b    Backend
	log  *slog.Logger
	info DeviceInfo
	live map[string]int
}

type Option func(*Context)

// WithLogger routes diagnostics to l instead of the "gfx" component logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) { c.log = l }
}

// NewContext loads the backend entry points and applies the fixed render
// state: clockwise front faces, back-face culling and depth testing.
func NewContext(b Backend, opts ...Option) (*Context, error) {
	c := &Context{b: b, live: make(map[string]int)}
	for _, o := range opts {
		o(c)
	}
	if c.log == nil {
		c.log = applog.WithComponent("gfx")
	}
	if b == nil {
		return nil, ErrNotInitialized
	}
	if err := b.Init(); err != nil {
		c.log.Error("backend init failed", slog.Any("err", err))
		return nil, fmt.Errorf("gfx: init backend: %w", err)
	}

	b.FrontFace(Clockwise)
	b.CullBackFaces(true)
	b.DepthTest(true)

	c.info = b.Info()
	c.log.Info("context created",
		slog.String("vendor", c.info.Vendor),
		slog.String("renderer", c.info.Renderer),
		slog.String("version", c.info.Version))
	return c, nil
}

// Backend exposes the underlying device for calls gfx does not wrap.
func (c *Context) Backend() Backend { return c.b }

func (c *Context) Info() DeviceInfo { return c.info }

func (c *Context) Logger() *slog.Logger { return c.log }

// Clear clears the color and depth buffers.
func (c *Context) Clear() { c.b.Clear(true, true) }

func (c *Context) SetViewport(r vmath.Rect) { c.b.Viewport(r.X, r.Y, r.W, r.H) }

func (c *Context) SetClearColor(col colors.Color) {
	v := col.Vec4()
	c.b.ClearColor(v[0], v[1], v[2], v[3])
}

func (c *Context) SetDepthTest(enabled bool) { c.b.DepthTest(enabled) }
func (c *Context) SetBlend(enabled bool)     { c.b.Blend(enabled) }

// DrawIndexed draws count uint32 indices from the bound index buffer as triangles.
func (c *Context) DrawIndexed(count int) { c.b.DrawElements(Triangles, int32(count)) }

// DrawArrays draws count vertices starting at first as triangles.
func (c *Context) DrawArrays(first, count int) {
	c.b.DrawArrays(Triangles, int32(first), int32(count))
}

// LiveHandles returns the number of created, not yet destroyed handles.
func (c *Context) LiveHandles() int {
	n := 0
	for _, v := range c.live {
		n += v
	}
	return n
}

// Close reports handles that were never destroyed. Their backend objects are
// leaked until the native context goes away.
func (c *Context) Close() {
	if c.LiveHandles() == 0 {
		return
	}
	kinds := make([]string, 0, len(c.live))
	for k, v := range c.live {
		if v > 0 {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		c.log.Warn("leaked handles", slog.String("kind", k), slog.Int("count", c.live[k]))
	}
}

func (c *Context) track(kind string)   { c.live[kind]++ }
func (c *Context) untrack(kind string) { c.live[kind]-- }

// handle is the lifecycle shared by every resource wrapper.
type handle struct {
	ctx  *Context
	id   uint32
	kind string
}

func newHandle(ctx *Context, kind string, id uint32) handle {
	ctx.track(kind)
	return handle{ctx: ctx, id: id, kind: kind}
}

// ID returns the backend object id, or 0 once destroyed.
func (h *handle) ID() uint32 { return h.id }

func (h *handle) alive() error {
	if h == nil || h.ctx == nil {
		return ErrDestroyed
	}
	return nil
}

func (h *handle) release() {
	h.ctx.untrack(h.kind)
	h.ctx = nil
	h.id = 0
}

func checkContext(ctx *Context) error {
	if ctx == nil || ctx.b == nil {
		return ErrNotInitialized
	}
	return nil
}
