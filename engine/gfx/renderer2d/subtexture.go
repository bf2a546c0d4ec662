package renderer2d

import (
	"github.com/hubastard/gl2d/engine/gfx"
	"github.com/hubastard/gl2d/engine/vmath"
)

// UVRect is a texture-space rectangle. (U0,V0) is the bottom-left corner;
// images are flipped on load so v grows upwards.
type UVRect struct {
	U0, V0 float32
	U1, V1 float32
}

var fullUV = UVRect{U0: 0, V0: 0, U1: 1, V1: 1}

// corners returns UVs in quadCorners order (BL, BR, TL, TR).
func (r UVRect) corners() [vertsPerQuad]vmath.Vec2 {
	return [vertsPerQuad]vmath.Vec2{
		{X: r.U0, Y: r.V0},
		{X: r.U1, Y: r.V0},
		{X: r.U0, Y: r.V1},
		{X: r.U1, Y: r.V1},
	}
}

// SubTexture2D describes a UV sub-rect of a full texture.
type SubTexture2D struct {
	Texture *gfx.Texture
	UV      UVRect
}

// FromPixels builds a subtexture from a pixel rect measured from the top-left
// of the atlas image, as image editors show it.
func FromPixels(tex *gfx.Texture, x, y, w, h int) SubTexture2D {
	size := tex.Size()
	aw, ah := size.X, size.Y
	return SubTexture2D{Texture: tex, UV: UVRect{
		U0: float32(x) / aw,
		V0: 1 - float32(y+h)/ah,
		U1: float32(x+w) / aw,
		V1: 1 - float32(y)/ah,
	}}
}

// FromGrid builds a subtexture from tile grid coordinates (cx,cy) of cell size (cw,ch).
func FromGrid(tex *gfx.Texture, cx, cy, cw, ch int) SubTexture2D {
	return FromPixels(tex, cx*cw, cy*ch, cw, ch)
}
