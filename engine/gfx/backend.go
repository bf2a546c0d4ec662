// Package gfx wraps an OpenGL-style device behind explicit handles.
//
// A Context is created once per OS thread that owns the native graphics
// context and is passed to every resource constructor. Handles (Shader,
// Texture, VertexArray, VertexBuffer, IndexBuffer) each own exactly one
// backend object and must be destroyed explicitly; nothing is reclaimed by the
// garbage collector. None of the types here are safe for concurrent use.
package gfx

// Backend is the slice of the native graphics API used by gfx. The OpenGL
// implementation lives in engine/gfx/gl; gfxtest provides a recording fake.
//
// Object ids are backend-native; 0 is never a valid id. CompileShader and
// LinkProgram release their own objects on failure and return the driver's
// info log as the error text.
type Backend interface {
	// Init loads function pointers for the current native context.
	Init() error
	Info() DeviceInfo

	FrontFace(w Winding)
	CullBackFaces(enabled bool)
	DepthTest(enabled bool)
	Blend(enabled bool)
	Viewport(x, y, w, h int32)
	ClearColor(r, g, b, a float32)
	Clear(color, depth bool)
	DrawElements(mode Primitive, count int32)
	DrawArrays(mode Primitive, first, count int32)

	CompileShader(stage ShaderStage, src string) (uint32, error)
	DeleteShader(id uint32)
	LinkProgram(shaders ...uint32) (uint32, error)
	DeleteProgram(id uint32)
	UseProgram(id uint32)
	UniformLocation(program uint32, name string) int32
	Uniform1i(loc int32, v int32)
	Uniform1iv(loc int32, v []int32)
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, x, y float32)
	Uniform4f(loc int32, x, y, z, w float32)
	UniformMatrix4(loc int32, m *[16]float32)

	CreateTexture() uint32
	DeleteTexture(id uint32)
	BindTexture(unit, id uint32)
	TexImage2D(width, height int32, format PixelFormat, pix []byte)
	TexParameters(p SamplerParams)
	GenerateMipmap()

	CreateVertexArray() uint32
	DeleteVertexArray(id uint32)
	BindVertexArray(id uint32)
	VertexAttribPointer(a VertexAttrib, stride int32)

	CreateBuffer() uint32
	DeleteBuffer(id uint32)
	BindBuffer(target BufferTarget, id uint32)
	// BufferData uploads size bytes from data, a []float32 or []uint32.
	BufferData(target BufferTarget, size int, data any, usage BufferUsage)
}

// DeviceInfo identifies the driver behind a backend.
type DeviceInfo struct {
	Vendor   string
	Renderer string
	Version  string
}

type Winding int

const (
	Clockwise Winding = iota
	CounterClockwise
)

type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
	Lines
	Points
)

type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
	StreamDraw
)

type PixelFormat int

const (
	FormatRGB8 PixelFormat = iota
	FormatRGBA8
)

type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
	WrapMirror
)

// Filter selects texture sampling. FilterDefault resolves to
// linear-mipmap-linear for minification (linear without mipmaps) and linear
// for magnification.
type Filter int

const (
	FilterDefault Filter = iota
	FilterNearest
	FilterLinear
	FilterLinearMipmapLinear
	FilterNearestMipmapNearest
)

// SamplerParams is applied to the texture bound on the active unit.
type SamplerParams struct {
	WrapS, WrapT Wrap
	Min, Mag     Filter
}

type AttribType int

const (
	AttribFloat32 AttribType = iota
	AttribUint8
)

// VertexAttrib describes one attribute within an interleaved vertex.
type VertexAttrib struct {
	Location   uint32
	Size       int32 // components: 1..4
	Type       AttribType
	Normalized bool
	Offset     int // bytes from start of vertex
}

// VertexLayout is the interleaved layout of one vertex buffer.
type VertexLayout struct {
	Stride     int32 // bytes
	Attributes []VertexAttrib
}

// Float32Layout builds a tightly packed float32 layout from component counts,
// assigning locations 0..n-1 in order.
func Float32Layout(sizes ...int32) VertexLayout {
	var l VertexLayout
	offset := 0
	for i, s := range sizes {
		l.Attributes = append(l.Attributes, VertexAttrib{
			Location: uint32(i),
			Size:     s,
			Type:     AttribFloat32,
			Offset:   offset,
		})
		offset += int(s) * 4
	}
	l.Stride = int32(offset)
	return l
}
