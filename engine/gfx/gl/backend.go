package glbackend

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/gl2d/engine/gfx"
)

// Backend implements gfx.Backend on OpenGL 3.3 core. It must be used on the
// thread that owns the current GL context.
type Backend struct {
	activeUnit uint32
}

func New() *Backend { return &Backend{} }

var _ gfx.Backend = (*Backend)(nil)

// Init loads GL function pointers. A context must be current.
func (b *Backend) Init() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("load gl functions: %w", err)
	}
	b.activeUnit = 0
	return nil
}

func (b *Backend) Info() gfx.DeviceInfo {
	return gfx.DeviceInfo{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
}

func (b *Backend) FrontFace(w gfx.Winding) {
	if w == gfx.Clockwise {
		gl.FrontFace(gl.CW)
	} else {
		gl.FrontFace(gl.CCW)
	}
}

func (b *Backend) CullBackFaces(enabled bool) {
	gl.CullFace(gl.BACK)
	toggle(gl.CULL_FACE, enabled)
}

func (b *Backend) DepthTest(enabled bool) { toggle(gl.DEPTH_TEST, enabled) }

func (b *Backend) Blend(enabled bool) {
	if enabled {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	}
	toggle(gl.BLEND, enabled)
}

func toggle(cap uint32, on bool) {
	if on {
		gl.Enable(cap)
	} else {
		gl.Disable(cap)
	}
}

func (b *Backend) Viewport(x, y, w, h int32)      { gl.Viewport(x, y, w, h) }
func (b *Backend) ClearColor(r, g, bl, a float32) { gl.ClearColor(r, g, bl, a) }

func (b *Backend) Clear(color, depth bool) {
	var mask uint32
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

func (b *Backend) DrawElements(mode gfx.Primitive, count int32) {
	gl.DrawElements(primitive(mode), count, gl.UNSIGNED_INT, nil)
}

func (b *Backend) DrawArrays(mode gfx.Primitive, first, count int32) {
	gl.DrawArrays(primitive(mode), first, count)
}

func primitive(p gfx.Primitive) uint32 {
	switch p {
	case gfx.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case gfx.Lines:
		return gl.LINES
	case gfx.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

// --- Shaders ---

func (b *Backend) CompileShader(stage gfx.ShaderStage, src string) (uint32, error) {
	typ := uint32(gl.VERTEX_SHADER)
	if stage == gfx.FragmentStage {
		typ = gl.FRAGMENT_SHADER
	}
	sh := gl.CreateShader(typ)
	if sh == 0 {
		return 0, nil
	}
	csrc, free := gl.Strs(terminate(src))
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, errors.New(strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}

func (b *Backend) DeleteShader(id uint32) { gl.DeleteShader(id) }

func (b *Backend) LinkProgram(shaders ...uint32) (uint32, error) {
	prog := gl.CreateProgram()
	if prog == 0 {
		return 0, nil
	}
	for _, s := range shaders {
		gl.AttachShader(prog, s)
	}
	gl.LinkProgram(prog)
	for _, s := range shaders {
		gl.DetachShader(prog, s)
	}

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, errors.New(strings.TrimRight(log, "\x00"))
	}
	return prog, nil
}

func (b *Backend) DeleteProgram(id uint32) { gl.DeleteProgram(id) }
func (b *Backend) UseProgram(id uint32)    { gl.UseProgram(id) }

func (b *Backend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(terminate(name)))
}

func (b *Backend) Uniform1i(loc int32, v int32)      { gl.Uniform1i(loc, v) }
func (b *Backend) Uniform1f(loc int32, v float32)    { gl.Uniform1f(loc, v) }
func (b *Backend) Uniform2f(loc int32, x, y float32) { gl.Uniform2f(loc, x, y) }

func (b *Backend) Uniform1iv(loc int32, v []int32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1iv(loc, int32(len(v)), &v[0])
}

func (b *Backend) Uniform4f(loc int32, x, y, z, w float32) { gl.Uniform4f(loc, x, y, z, w) }

func (b *Backend) UniformMatrix4(loc int32, m *[16]float32) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// --- Textures ---

func (b *Backend) CreateTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (b *Backend) DeleteTexture(id uint32) { gl.DeleteTextures(1, &id) }

func (b *Backend) BindTexture(unit, id uint32) {
	if unit != b.activeUnit {
		gl.ActiveTexture(gl.TEXTURE0 + unit)
		b.activeUnit = unit
	}
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (b *Backend) TexImage2D(width, height int32, format gfx.PixelFormat, pix []byte) {
	internal, fmtGL := int32(gl.RGBA8), uint32(gl.RGBA)
	if format == gfx.FormatRGB8 {
		internal, fmtGL = gl.RGB8, gl.RGB
	}
	// Rows are tightly packed; RGB rows are not 4-byte aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	var ptr unsafe.Pointer
	if len(pix) > 0 {
		ptr = gl.Ptr(pix)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, width, height, 0, fmtGL, gl.UNSIGNED_BYTE, ptr)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
}

func (b *Backend) TexParameters(p gfx.SamplerParams) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap(p.WrapS))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap(p.WrapT))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(p.Min))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(p.Mag))
}

func (b *Backend) GenerateMipmap() { gl.GenerateMipmap(gl.TEXTURE_2D) }

func wrap(w gfx.Wrap) int32 {
	switch w {
	case gfx.WrapClamp:
		return gl.CLAMP_TO_EDGE
	case gfx.WrapMirror:
		return gl.MIRRORED_REPEAT
	default:
		return gl.REPEAT
	}
}

func filter(f gfx.Filter) int32 {
	switch f {
	case gfx.FilterNearest:
		return gl.NEAREST
	case gfx.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	case gfx.FilterNearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	default:
		return gl.LINEAR
	}
}

// --- Vertex arrays and buffers ---

func (b *Backend) CreateVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (b *Backend) DeleteVertexArray(id uint32) { gl.DeleteVertexArrays(1, &id) }
func (b *Backend) BindVertexArray(id uint32)   { gl.BindVertexArray(id) }

func (b *Backend) VertexAttribPointer(a gfx.VertexAttrib, stride int32) {
	typ := uint32(gl.FLOAT)
	if a.Type == gfx.AttribUint8 {
		typ = gl.UNSIGNED_BYTE
	}
	gl.EnableVertexAttribArray(a.Location)
	gl.VertexAttribPointerWithOffset(a.Location, a.Size, typ, a.Normalized, stride, uintptr(a.Offset))
}

func (b *Backend) CreateBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (b *Backend) DeleteBuffer(id uint32) { gl.DeleteBuffers(1, &id) }

func (b *Backend) BindBuffer(target gfx.BufferTarget, id uint32) {
	gl.BindBuffer(bufferTarget(target), id)
}

func (b *Backend) BufferData(target gfx.BufferTarget, size int, data any, usage gfx.BufferUsage) {
	var ptr unsafe.Pointer
	if data != nil {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(bufferTarget(target), size, ptr, bufferUsage(usage))
}

func bufferTarget(t gfx.BufferTarget) uint32 {
	if t == gfx.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u gfx.BufferUsage) uint32 {
	switch u {
	case gfx.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case gfx.StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

// terminate appends the NUL that gl.Str/gl.Strs require.
func terminate(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
