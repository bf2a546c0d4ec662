// Package gfxtest provides an in-memory gfx.Backend for tests that run
// without a GPU or window.
package gfxtest

import (
	"errors"
	"fmt"

	"github.com/hubastard/gl2d/engine/gfx"
)

// Texture is what the fake remembers about an uploaded texture.
type Texture struct {
	Width, Height int32
	Format        gfx.PixelFormat
	Pix           []byte
	Sampler       gfx.SamplerParams
	Mipmaps       bool
}

// Buffer is what the fake remembers about buffer storage.
type Buffer struct {
	Target gfx.BufferTarget
	Size   int
	Usage  gfx.BufferUsage
	Data   any
}

// Draw is one recorded draw call.
type Draw struct {
	Mode        gfx.Primitive
	First       int32
	Count       int32
	Indexed     bool
	Program     uint32
	VertexArray uint32
	Textures    map[uint32]uint32 // unit -> texture id at draw time
	DepthTest   bool
	Blend       bool
}

// Backend is a recording fake. Set the exported failure knobs before use.
type Backend struct {
	InitErr     error
	CompileLogs map[gfx.ShaderStage]string // stage -> failing log
	LinkLog     string                     // non-empty fails every link
	FailAlloc   bool                       // Create* return 0
	Missing     map[string]bool            // uniform names with location -1
	DeviceInfo  gfx.DeviceInfo

	Initialized bool
	Calls       []string

	FrontFaceWinding gfx.Winding
	Culling          bool
	Depth            bool
	Blending         bool
	ViewportRect     [4]int32
	ClearRGBA        [4]float32
	Clears           int

	Program     uint32
	VertexArray uint32
	Unit        uint32
	Bound       map[gfx.BufferTarget]uint32
	Units       map[uint32]uint32
	Uniforms    map[string]any // "<program>/<name>" -> last value
	Attribs     map[uint32][]gfx.VertexAttrib
	Textures    map[uint32]*Texture
	Buffers     map[uint32]*Buffer
	Draws       []Draw

	nextID   uint32
	live     map[uint32]string
	locNames map[int32]string
	nextLoc  int32
}

// New returns a fake with initialized maps.
func New() *Backend {
	return &Backend{
		CompileLogs: map[gfx.ShaderStage]string{},
		Missing:     map[string]bool{},
		DeviceInfo:  gfx.DeviceInfo{Vendor: "gfxtest", Renderer: "fake", Version: "3.3"},
		Bound:       map[gfx.BufferTarget]uint32{},
		Units:       map[uint32]uint32{},
		Uniforms:    map[string]any{},
		Attribs:     map[uint32][]gfx.VertexAttrib{},
		Textures:    map[uint32]*Texture{},
		Buffers:     map[uint32]*Buffer{},
		live:        map[uint32]string{},
		locNames:    map[int32]string{},
	}
}

var _ gfx.Backend = (*Backend)(nil)

func (b *Backend) record(format string, args ...any) {
	b.Calls = append(b.Calls, fmt.Sprintf(format, args...))
}

func (b *Backend) alloc(kind string) uint32 {
	if b.FailAlloc {
		return 0
	}
	b.nextID++
	b.live[b.nextID] = kind
	return b.nextID
}

func (b *Backend) free(kind string, id uint32) {
	if b.live[id] != kind {
		panic(fmt.Sprintf("gfxtest: delete %s %d: not a live %s (have %q)", kind, id, kind, b.live[id]))
	}
	delete(b.live, id)
}

// Live returns the number of live objects of kind ("shader", "program",
// "texture", "vertex_array", "buffer"), or all kinds when kind is "".
func (b *Backend) Live(kind string) int {
	n := 0
	for _, k := range b.live {
		if kind == "" || k == kind {
			n++
		}
	}
	return n
}

// IsLive reports whether id is a live object.
func (b *Backend) IsLive(id uint32) bool {
	_, ok := b.live[id]
	return ok
}

// Uniform returns the last value uploaded to name on program.
func (b *Backend) Uniform(program uint32, name string) (any, bool) {
	v, ok := b.Uniforms[fmt.Sprintf("%d/%s", program, name)]
	return v, ok
}

func (b *Backend) Init() error {
	b.record("Init")
	if b.InitErr != nil {
		return b.InitErr
	}
	b.Initialized = true
	return nil
}

func (b *Backend) Info() gfx.DeviceInfo { return b.DeviceInfo }

func (b *Backend) FrontFace(w gfx.Winding) {
	b.record("FrontFace(%d)", w)
	b.FrontFaceWinding = w
}

func (b *Backend) CullBackFaces(enabled bool) {
	b.record("CullBackFaces(%t)", enabled)
	b.Culling = enabled
}

func (b *Backend) DepthTest(enabled bool) {
	b.record("DepthTest(%t)", enabled)
	b.Depth = enabled
}

func (b *Backend) Blend(enabled bool) {
	b.record("Blend(%t)", enabled)
	b.Blending = enabled
}

func (b *Backend) Viewport(x, y, w, h int32) {
	b.record("Viewport(%d,%d,%d,%d)", x, y, w, h)
	b.ViewportRect = [4]int32{x, y, w, h}
}

func (b *Backend) ClearColor(r, g, bl, a float32) {
	b.record("ClearColor")
	b.ClearRGBA = [4]float32{r, g, bl, a}
}

func (b *Backend) Clear(color, depth bool) {
	b.record("Clear(%t,%t)", color, depth)
	b.Clears++
}

func (b *Backend) snapshotDraw(mode gfx.Primitive, first, count int32, indexed bool) Draw {
	units := make(map[uint32]uint32, len(b.Units))
	for k, v := range b.Units {
		units[k] = v
	}
	return Draw{
		Mode: mode, First: first, Count: count, Indexed: indexed,
		Program: b.Program, VertexArray: b.VertexArray, Textures: units,
		DepthTest: b.Depth, Blend: b.Blending,
	}
}

func (b *Backend) DrawElements(mode gfx.Primitive, count int32) {
	b.record("DrawElements(%d)", count)
	b.Draws = append(b.Draws, b.snapshotDraw(mode, 0, count, true))
}

func (b *Backend) DrawArrays(mode gfx.Primitive, first, count int32) {
	b.record("DrawArrays(%d,%d)", first, count)
	b.Draws = append(b.Draws, b.snapshotDraw(mode, first, count, false))
}

func (b *Backend) CompileShader(stage gfx.ShaderStage, src string) (uint32, error) {
	b.record("CompileShader(%s)", stage)
	if log, ok := b.CompileLogs[stage]; ok {
		return 0, errors.New(log)
	}
	return b.alloc("shader"), nil
}

func (b *Backend) DeleteShader(id uint32) {
	b.record("DeleteShader(%d)", id)
	b.free("shader", id)
}

func (b *Backend) LinkProgram(shaders ...uint32) (uint32, error) {
	b.record("LinkProgram")
	for _, s := range shaders {
		if b.live[s] != "shader" {
			return 0, fmt.Errorf("shader %d not live", s)
		}
	}
	if b.LinkLog != "" {
		return 0, errors.New(b.LinkLog)
	}
	return b.alloc("program"), nil
}

func (b *Backend) DeleteProgram(id uint32) {
	b.record("DeleteProgram(%d)", id)
	b.free("program", id)
	if b.Program == id {
		b.Program = 0
	}
}

func (b *Backend) UseProgram(id uint32) {
	b.record("UseProgram(%d)", id)
	b.Program = id
}

func (b *Backend) UniformLocation(program uint32, name string) int32 {
	b.record("UniformLocation(%s)", name)
	if b.Missing[name] {
		return -1
	}
	loc := b.nextLoc
	b.nextLoc++
	b.locNames[loc] = fmt.Sprintf("%d/%s", program, name)
	return loc
}

func (b *Backend) setUniform(loc int32, v any) {
	if loc < 0 {
		return
	}
	b.Uniforms[b.locNames[loc]] = v
}

func (b *Backend) Uniform1i(loc int32, v int32)   { b.setUniform(loc, v) }
func (b *Backend) Uniform1f(loc int32, v float32) { b.setUniform(loc, v) }

func (b *Backend) Uniform1iv(loc int32, v []int32) {
	b.setUniform(loc, append([]int32(nil), v...))
}

func (b *Backend) Uniform2f(loc int32, x, y float32) { b.setUniform(loc, [2]float32{x, y}) }

func (b *Backend) Uniform4f(loc int32, x, y, z, w float32) {
	b.setUniform(loc, [4]float32{x, y, z, w})
}

func (b *Backend) UniformMatrix4(loc int32, m *[16]float32) { b.setUniform(loc, *m) }

func (b *Backend) CreateTexture() uint32 {
	b.record("CreateTexture")
	id := b.alloc("texture")
	if id != 0 {
		b.Textures[id] = &Texture{}
	}
	return id
}

func (b *Backend) DeleteTexture(id uint32) {
	b.record("DeleteTexture(%d)", id)
	b.free("texture", id)
	delete(b.Textures, id)
	for u, t := range b.Units {
		if t == id {
			delete(b.Units, u)
		}
	}
}

func (b *Backend) BindTexture(unit, id uint32) {
	b.record("BindTexture(%d,%d)", unit, id)
	b.Unit = unit
	b.Units[unit] = id
}

func (b *Backend) current() *Texture {
	t := b.Textures[b.Units[b.Unit]]
	if t == nil {
		panic("gfxtest: no texture bound on active unit")
	}
	return t
}

func (b *Backend) TexImage2D(width, height int32, format gfx.PixelFormat, pix []byte) {
	b.record("TexImage2D(%d,%d)", width, height)
	t := b.current()
	t.Width, t.Height, t.Format = width, height, format
	t.Pix = append([]byte(nil), pix...)
}

func (b *Backend) TexParameters(p gfx.SamplerParams) {
	b.record("TexParameters")
	b.current().Sampler = p
}

func (b *Backend) GenerateMipmap() {
	b.record("GenerateMipmap")
	b.current().Mipmaps = true
}

func (b *Backend) CreateVertexArray() uint32 {
	b.record("CreateVertexArray")
	return b.alloc("vertex_array")
}

func (b *Backend) DeleteVertexArray(id uint32) {
	b.record("DeleteVertexArray(%d)", id)
	b.free("vertex_array", id)
	delete(b.Attribs, id)
	if b.VertexArray == id {
		b.VertexArray = 0
	}
}

func (b *Backend) BindVertexArray(id uint32) {
	b.record("BindVertexArray(%d)", id)
	b.VertexArray = id
}

func (b *Backend) VertexAttribPointer(a gfx.VertexAttrib, stride int32) {
	b.record("VertexAttribPointer(%d)", a.Location)
	if b.VertexArray == 0 {
		panic("gfxtest: attribute set without a bound vertex array")
	}
	if b.Bound[gfx.ArrayBuffer] == 0 {
		panic("gfxtest: attribute set without a bound array buffer")
	}
	b.Attribs[b.VertexArray] = append(b.Attribs[b.VertexArray], a)
}

func (b *Backend) CreateBuffer() uint32 {
	b.record("CreateBuffer")
	id := b.alloc("buffer")
	if id != 0 {
		b.Buffers[id] = &Buffer{}
	}
	return id
}

func (b *Backend) DeleteBuffer(id uint32) {
	b.record("DeleteBuffer(%d)", id)
	b.free("buffer", id)
	delete(b.Buffers, id)
	for t, bound := range b.Bound {
		if bound == id {
			delete(b.Bound, t)
		}
	}
}

func (b *Backend) BindBuffer(target gfx.BufferTarget, id uint32) {
	b.record("BindBuffer(%d,%d)", target, id)
	b.Bound[target] = id
}

func (b *Backend) BufferData(target gfx.BufferTarget, size int, data any, usage gfx.BufferUsage) {
	b.record("BufferData(%d,%d)", target, size)
	buf := b.Buffers[b.Bound[target]]
	if buf == nil {
		panic("gfxtest: BufferData without a bound buffer")
	}
	buf.Target, buf.Size, buf.Usage = target, size, usage
	switch d := data.(type) {
	case []float32:
		buf.Data = append([]float32(nil), d...)
	case []uint32:
		buf.Data = append([]uint32(nil), d...)
	default:
		panic(fmt.Sprintf("gfxtest: unsupported buffer data %T", data))
	}
}
