package main

import (
	"embed"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"github.com/hubastard/gl2d/engine/assets"
	"github.com/hubastard/gl2d/engine/colors"
	"github.com/hubastard/gl2d/engine/config"
	"github.com/hubastard/gl2d/engine/core"
	"github.com/hubastard/gl2d/engine/gfx"
	"github.com/hubastard/gl2d/engine/gfx/renderer2d"
	"github.com/hubastard/gl2d/engine/profiler"
	"github.com/hubastard/gl2d/engine/scene"
	"github.com/hubastard/gl2d/engine/vmath"
)

//go:embed shaders
var shaderFS embed.FS

// Quad vertex: pos3 + color3 + uv2.
var quadVertices = []float32{
	// positions     // colors     // texture coords
	0.0, 1.0, 0.0, 1.0, 1.0, 1.0, 1.0, 1.0, // top right
	0.0, 0.0, 0.0, 1.0, 1.0, 1.0, 1.0, 0.0, // bottom right
	-1.0, 0.0, 0.0, 1.0, 1.0, 1.0, 0.0, 0.0, // bottom left
	-1.0, 1.0, 0.0, 1.0, 1.0, 1.0, 0.0, 1.0, // top left
}

var quadIndices = []uint32{
	0, 1, 3, // first triangle
	1, 2, 3, // second triangle
}

// Sandbox draws the textured quad driven by the keyboard, plus a row of
// palette swatches through the batch renderer.
type Sandbox struct {
	cfg  config.Config
	prof *profiler.Profiler

	cam   *scene.Camera
	ctrl  *scene.Controller
	trans scene.Transform

	shader *gfx.Shader
	tex    *gfx.Texture
	vao    *gfx.VertexArray
	vbo    *gfx.VertexBuffer
	ibo    *gfx.IndexBuffer

	r2d   *renderer2d.Renderer2D
	stats *frameStats
	spin  float32
}

func NewSandbox(cfg config.Config, prof *profiler.Profiler) *Sandbox {
	return &Sandbox{cfg: cfg, prof: prof, trans: scene.NewTransform()}
}

func (s *Sandbox) OnStart(e *core.Engine) error {
	ctx := e.Context

	// Camera spans [-1,1] vertically; width follows the framebuffer aspect.
	s.cam = scene.NewOrthoCamera(vmath.CenteredRectF(2, 2), -1, 1)
	s.cam.SetViewportPixels(e.Window.FramebufferSize())
	s.ctrl = scene.NewController(&s.trans, s.cam)

	vs, fs, err := s.quadShaderSources()
	if err != nil {
		return err
	}
	if s.shader, err = gfx.NewShader(ctx, vs, fs); err != nil {
		return err
	}
	if err = s.shader.SetInt("texture1", 0); err != nil {
		return err
	}

	if s.vao, err = gfx.NewVertexArray(ctx); err != nil {
		return err
	}
	if s.vbo, err = gfx.NewVertexBuffer(ctx, quadVertices, gfx.StaticDraw); err != nil {
		return err
	}
	if err = s.vao.AddVertexBuffer(s.vbo, gfx.Float32Layout(3, 3, 2)); err != nil {
		return err
	}
	if s.ibo, err = gfx.NewIndexBuffer(ctx, quadIndices, gfx.StaticDraw); err != nil {
		return err
	}
	if err = s.vao.SetIndexBuffer(s.ibo); err != nil {
		return err
	}

	if s.tex, err = s.loadTexture(ctx, e.Log); err != nil {
		return err
	}

	if s.cfg.Render.Swatches {
		bvs, bfs, err := embeddedPair("shaders/batch.vert", "shaders/batch.frag")
		if err != nil {
			return err
		}
		if s.r2d, err = renderer2d.New(ctx, bvs, bfs, s.cfg.Render.MaxQuads); err != nil {
			return err
		}
	}

	s.stats = newFrameStats(s.cfg.Window.Title)
	return nil
}

func (s *Sandbox) quadShaderSources() (string, string, error) {
	a := s.cfg.Assets
	if a.VertexShader != "" {
		return assets.LoadShaderPair(a.VertexShader, a.FragmentShader)
	}
	return embeddedPair("shaders/quad.vert", "shaders/quad.frag")
}

func embeddedPair(vp, fp string) (string, string, error) {
	vs, err := shaderFS.ReadFile(vp)
	if err != nil {
		return "", "", err
	}
	fs, err := shaderFS.ReadFile(fp)
	if err != nil {
		return "", "", err
	}
	return string(vs), string(fs), nil
}

// loadTexture uses the configured image, falling back to a checkerboard
// when none is set or it cannot be loaded.
func (s *Sandbox) loadTexture(ctx *gfx.Context, log *slog.Logger) (*gfx.Texture, error) {
	if path := s.cfg.Assets.Texture; path != "" {
		tex, err := gfx.NewTextureFromFile(ctx, path, gfx.TextureOptions{})
		if err == nil {
			return tex, nil
		}
		log.Warn("texture unavailable, using checkerboard", slog.String("path", path), slog.Any("err", err))
	}
	return gfx.NewTexture(ctx, checkerboard(64, 8), gfx.TextureOptions{
		Sampler: gfx.SamplerParams{Mag: gfx.FilterNearest},
	})
}

// checkerboard is an opaque size×size image of cell×cell squares.
func checkerboard(size, cell int) assets.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	light := color.RGBA{R: 230, G: 230, B: 230, A: 255}
	dark := color.RGBA{R: 40, G: 40, B: 48, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	return assets.FromImage(img)
}

func (s *Sandbox) OnUpdate(e *core.Engine, dt float64) {
	defer s.prof.Start("update")()

	if z := e.Input.TakeScroll(); z != 0 {
		s.cam.SetZoom(s.cam.Zoom * (1 + float32(z)*0.1))
	}
	s.ctrl.Update(e.Input, float32(dt))
	s.spin += 45 * float32(dt)

	if title, ok := s.stats.tick(dt, e.Uptime()); ok {
		e.Window.SetTitle(title)
	}
}

func (s *Sandbox) OnRender(e *core.Engine, alpha float64) {
	defer s.prof.Start("render")()

	vp, err := s.cam.ViewProjection()
	if err != nil {
		e.Log.Error("camera", slog.Any("err", err))
		return
	}
	if err := s.drawQuad(e.Context, vp); err != nil {
		e.Log.Error("draw quad", slog.Any("err", err))
	}
	if s.r2d != nil {
		s.drawSwatches(vp)
		if err := s.r2d.EndScene(); err != nil {
			e.Log.Error("draw swatches", slog.Any("err", err))
		}
		s.stats.batch = s.r2d.Stats()
	}
	s.stats.frames++
}

func (s *Sandbox) drawQuad(ctx *gfx.Context, vp vmath.Mat4) error {
	defer s.prof.Start("render.quad")()

	if err := s.tex.BindTo(0); err != nil {
		return err
	}
	if err := s.shader.SetMat4("uVP", vp); err != nil {
		return err
	}
	if err := s.shader.SetMat4("transform", s.trans.Matrix()); err != nil {
		return err
	}
	if err := s.vao.Bind(); err != nil {
		return err
	}
	ctx.DrawIndexed(s.vao.IndexCount())
	return nil
}

// drawSwatches lays the palette out along the bottom edge and a spinning
// corner of the texture top right. The caller ends the scene.
func (s *Sandbox) drawSwatches(vp vmath.Mat4) {
	defer s.prof.Start("render.swatches")()

	s.r2d.BeginScene(vp)
	pal := colors.Palette()
	const size = 0.1
	x0 := -float32(len(pal)) * size * 0.5
	for i, c := range pal {
		t := scene.NewTransform()
		t.Position = vmath.V2(x0+(float32(i)+0.5)*size, -0.9)
		t.Scale = vmath.V2(size*0.9, size*0.9)
		s.r2d.DrawQuad(t, c)
	}

	t := scene.NewTransform()
	t.Position = vmath.V2(0.75, 0.75)
	t.Rotation = s.spin
	t.Scale = vmath.V2(0.3, 0.3)
	s.r2d.DrawSubTexQuad(t, renderer2d.FromGrid(s.tex, 0, 0, int(s.tex.Size().X)/2, int(s.tex.Size().Y)/2), colors.White.WithAlpha(200))
}

func (s *Sandbox) OnEvent(e *core.Engine, ev core.Event) {
	switch v := ev.(type) {
	case core.EventKey:
		if v.Down && v.Key == core.KeyEscape {
			e.Quit()
		}
	case core.EventResize:
		s.cam.SetViewportPixels(v.W, v.H)
	case core.EventCloseRequested:
		e.Log.Debug("close requested")
	}
}

// OnShutdown destroys every handle the sandbox created.
func (s *Sandbox) OnShutdown(e *core.Engine) {
	var errs []error
	destroy := func(name string, d interface{ Destroy() error }) {
		if err := d.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if s.r2d != nil {
		destroy("renderer2d", s.r2d)
	}
	for _, h := range []struct {
		name string
		d    interface{ Destroy() error }
		ok   bool
	}{
		{"vertex array", s.vao, s.vao != nil},
		{"vertex buffer", s.vbo, s.vbo != nil},
		{"index buffer", s.ibo, s.ibo != nil},
		{"shader", s.shader, s.shader != nil},
		{"texture", s.tex, s.tex != nil},
	} {
		if h.ok {
			destroy(h.name, h.d)
		}
	}
	if err := errors.Join(errs...); err != nil {
		e.Log.Error("shutdown", slog.Any("err", err))
	}
}
