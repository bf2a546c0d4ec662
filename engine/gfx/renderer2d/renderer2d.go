// Package renderer2d batches coloured and textured quads into as few draw
// calls as the texture slots and quad capacity allow.
package renderer2d

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hubastard/gl2d/engine/assets"
	"github.com/hubastard/gl2d/engine/colors"
	"github.com/hubastard/gl2d/engine/gfx"
	"github.com/hubastard/gl2d/engine/scene"
	"github.com/hubastard/gl2d/engine/vmath"
)

// Max textures per batch (common GL limit is 16)
const maxTexSlots = gfx.MaxTextureSlots

// Vertex: pos2 + color4 + uv2 + texIndex1 => 9 floats
const vStride = 9
const vertsPerQuad = 4
const indsPerQuad = 6

// DefaultMaxQuads is used when New is given a non-positive capacity.
const DefaultMaxQuads = 10000

// Uniform names the batch shader must declare.
const (
	UniformViewProjection = "uVP"
	UniformTextures       = "uTextures"
)

var quadVertexLayout = gfx.VertexLayout{
	Stride: vStride * 4,
	Attributes: []gfx.VertexAttrib{
		{Location: 0, Size: 2, Type: gfx.AttribFloat32, Offset: 0},     // pos
		{Location: 1, Size: 4, Type: gfx.AttribFloat32, Offset: 2 * 4}, // color
		{Location: 2, Size: 2, Type: gfx.AttribFloat32, Offset: 6 * 4}, // uv
		{Location: 3, Size: 1, Type: gfx.AttribFloat32, Offset: 8 * 4}, // texIndex
	},
}

// Unit quad corners (BL, BR, TL, TR), y up.
var quadCorners = [vertsPerQuad]vmath.Vec2{
	{X: -0.5, Y: -0.5},
	{X: 0.5, Y: -0.5},
	{X: -0.5, Y: 0.5},
	{X: 0.5, Y: 0.5},
}

// Clockwise when y points up, matching the context's front face.
var quadIndices = [indsPerQuad]uint32{0, 2, 1, 1, 2, 3}

// Statistics captures the counts generated during a renderer frame.
type Statistics struct {
	DrawCalls    int
	QuadCount    int
	TextureCount int // most slots used by a single batch
}

// TotalVertexCount reports vertices submitted this frame.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted this frame.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

type Renderer2D struct {
	ctx    *gfx.Context
	shader *gfx.Shader
	white  *gfx.Texture // 1x1 white (slot 0)
	vao    *gfx.VertexArray
	vbo    *gfx.VertexBuffer
	ibo    *gfx.IndexBuffer

	texArr [maxTexSlots]*gfx.Texture
	texCnt int

	verts     []float32
	quadCount int
	maxQuads  int

	vp      vmath.Mat4
	inScene bool
	stats   Statistics
	err     error
}

// New compiles the batch shader and allocates buffers for maxQuads quads.
func New(ctx *gfx.Context, vertSrc, fragSrc string, maxQuads int) (_ *Renderer2D, err error) {
	if maxQuads <= 0 {
		maxQuads = DefaultMaxQuads
	}
	rd := &Renderer2D{
		ctx:      ctx,
		maxQuads: maxQuads,
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*vStride),
	}
	defer func() {
		if err != nil {
			rd.Destroy()
		}
	}()

	if rd.shader, err = gfx.NewShader(ctx, vertSrc, fragSrc); err != nil {
		return nil, err
	}
	slots := make([]int32, maxTexSlots)
	for i := range slots {
		slots[i] = int32(i)
	}
	if err = rd.shader.SetIntArray(UniformTextures, slots); err != nil {
		return nil, err
	}

	// build 1x1 white texture
	rd.white, err = gfx.NewTexture(ctx, whiteImage(), gfx.TextureOptions{
		Sampler:   gfx.SamplerParams{WrapS: gfx.WrapClamp, WrapT: gfx.WrapClamp, Min: gfx.FilterNearest, Mag: gfx.FilterNearest},
		NoMipmaps: true,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer2d: white texture: %w", err)
	}

	// One vertex array sized for the biggest batch; indices never change.
	if rd.vao, err = gfx.NewVertexArray(ctx); err != nil {
		return nil, err
	}
	if rd.vbo, err = gfx.NewVertexBuffer(ctx, make([]float32, maxQuads*vertsPerQuad*vStride), gfx.DynamicDraw); err != nil {
		return nil, err
	}
	if err = rd.vao.AddVertexBuffer(rd.vbo, quadVertexLayout); err != nil {
		return nil, err
	}
	if rd.ibo, err = gfx.NewIndexBuffer(ctx, batchIndices(maxQuads), gfx.StaticDraw); err != nil {
		return nil, err
	}
	if err = rd.vao.SetIndexBuffer(rd.ibo); err != nil {
		return nil, err
	}

	rd.resetBatch()
	return rd, nil
}

func whiteImage() assets.Image {
	return assets.Image{Width: 1, Height: 1, Channels: 4, Pix: []byte{255, 255, 255, 255}}
}

func batchIndices(maxQuads int) []uint32 {
	inds := make([]uint32, 0, maxQuads*indsPerQuad)
	for q := 0; q < maxQuads; q++ {
		base := uint32(q * vertsPerQuad)
		for _, i := range quadIndices {
			inds = append(inds, base+i)
		}
	}
	return inds
}

// BeginScene starts a frame drawn with the given view-projection. Depth
// testing is off and blending on until EndScene.
func (rd *Renderer2D) BeginScene(vp vmath.Mat4) {
	rd.vp = vp
	rd.stats = Statistics{TextureCount: 1}
	rd.err = nil
	rd.inScene = true
	rd.resetBatch()
	rd.ctx.SetDepthTest(false)
	rd.ctx.SetBlend(true)
}

// EndScene flushes pending quads, restores depth testing and returns the
// first error hit while drawing the frame.
func (rd *Renderer2D) EndScene() error {
	if !rd.inScene {
		return errors.New("renderer2d: EndScene without BeginScene")
	}
	rd.flush()
	rd.inScene = false
	rd.ctx.SetBlend(false)
	rd.ctx.SetDepthTest(true)
	return rd.err
}

// Stats returns the current frame statistics snapshot.
func (rd *Renderer2D) Stats() Statistics { return rd.stats }

// DrawQuad draws a solid unit quad placed by t (uses white texture in slot 0).
func (rd *Renderer2D) DrawQuad(t scene.Transform, color colors.Color) {
	rd.ensureQuadCapacity()
	rd.drawQuadInternal(t.Matrix(), color, 0, fullUV)
}

// DrawTexturedQuad draws tex over a unit quad placed by t, multiplied by tint.
func (rd *Renderer2D) DrawTexturedQuad(t scene.Transform, tex *gfx.Texture, tint colors.Color) {
	rd.DrawSubTexQuad(t, SubTexture2D{Texture: tex, UV: fullUV}, tint)
}

// DrawSubTexQuad draws a region of an atlas over a unit quad placed by t.
func (rd *Renderer2D) DrawSubTexQuad(t scene.Transform, sub SubTexture2D, tint colors.Color) {
	if sub.Texture == nil || sub.Texture.ID() == 0 {
		rd.fail(fmt.Errorf("renderer2d: draw textured quad: %w", gfx.ErrDestroyed))
		return
	}
	rd.ensureQuadCapacity()
	slot := rd.texSlot(sub.Texture)
	rd.drawQuadInternal(t.Matrix(), tint, slot, sub.UV)
}

// Destroy releases every GPU object the renderer owns.
func (rd *Renderer2D) Destroy() error {
	var errs []error
	if rd.shader != nil {
		errs = append(errs, rd.shader.Destroy())
		rd.shader = nil
	}
	if rd.white != nil {
		errs = append(errs, rd.white.Destroy())
		rd.white = nil
	}
	if rd.vao != nil {
		errs = append(errs, rd.vao.Destroy())
		rd.vao = nil
	}
	if rd.vbo != nil {
		errs = append(errs, rd.vbo.Destroy())
		rd.vbo = nil
	}
	if rd.ibo != nil {
		errs = append(errs, rd.ibo.Destroy())
		rd.ibo = nil
	}
	return errors.Join(errs...)
}

// --- internals ---

func (rd *Renderer2D) texSlot(t *gfx.Texture) float32 {
	// already in array?
	for i := 0; i < rd.texCnt; i++ {
		if rd.texArr[i] == t {
			return float32(i)
		}
	}
	// need a new slot
	if rd.texCnt >= maxTexSlots {
		// flush and reset texture bindings
		rd.flush()
	}
	rd.texArr[rd.texCnt] = t
	rd.texCnt++
	rd.stats.TextureCount = max(rd.stats.TextureCount, rd.texCnt)
	return float32(rd.texCnt - 1)
}

func (rd *Renderer2D) drawQuadInternal(m vmath.Mat4, color colors.Color, texIndex float32, uv UVRect) {
	c := color.Vec4()
	uvs := uv.corners()
	for i, p := range quadCorners {
		wp := m.TransformVector(p)
		rd.verts = append(rd.verts,
			wp.X, wp.Y,
			c[0], c[1], c[2], c[3],
			uvs[i].X, uvs[i].Y,
			texIndex,
		)
	}
	rd.quadCount++
	rd.stats.QuadCount++
}

func (rd *Renderer2D) flush() {
	if rd.quadCount == 0 {
		return
	}
	defer rd.resetBatch()

	if err := rd.vbo.Update(rd.verts); err != nil {
		rd.fail(err)
		return
	}
	if err := rd.shader.SetMat4(UniformViewProjection, rd.vp); err != nil {
		rd.fail(err)
		return
	}
	for i := 0; i < rd.texCnt; i++ {
		if err := rd.texArr[i].BindTo(uint32(i)); err != nil {
			rd.fail(fmt.Errorf("renderer2d: bind slot %d: %w", i, err))
			return
		}
	}
	if err := rd.vao.Bind(); err != nil {
		rd.fail(err)
		return
	}
	rd.ctx.DrawIndexed(rd.quadCount * indsPerQuad)
	rd.stats.DrawCalls++
}

func (rd *Renderer2D) fail(err error) {
	if rd.err == nil {
		rd.err = err
		rd.ctx.Logger().Error("renderer2d draw failed", slog.Any("err", err))
	}
}

func (rd *Renderer2D) resetBatch() {
	rd.verts = rd.verts[:0]
	rd.quadCount = 0
	clear(rd.texArr[:])
	rd.texArr[0] = rd.white
	rd.texCnt = 1
}

func (rd *Renderer2D) ensureQuadCapacity() {
	if rd.quadCount >= rd.maxQuads {
		rd.flush()
	}
}
