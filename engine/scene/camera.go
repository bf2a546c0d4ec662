package scene

import (
	"errors"
	"fmt"

	"github.com/hubastard/gl2d/engine/vmath"
)

// ErrPerspectiveUnsupported is returned for cameras with a Perspective
// projection, which is not implemented.
var ErrPerspectiveUnsupported = errors.New("scene: perspective projection is not supported")

// Projection is either Orthographic or Perspective.
type Projection interface{ isProjection() }

// Orthographic looks at Bounds in draw space; Near/Far bound eye-space depth.
type Orthographic struct {
	Bounds    vmath.RectF
	Near, Far float32
}

func (Orthographic) isProjection() {}

// Perspective is accepted as a value but cannot be turned into a matrix.
type Perspective struct {
	FOV       float32 // degrees, vertical
	Aspect    float32
	Near, Far float32
}

func (Perspective) isProjection() {}

// MinZoom is the smallest zoom factor a camera applies.
const MinZoom = 0.05

// Camera is a position plus a projection. Zoom scales orthographic bounds
// around their center; 0 and 1 both mean no zoom, and other values below
// MinZoom are clamped to it.
type Camera struct {
	Position   vmath.Vec2
	Projection Projection
	Zoom       float32
}

// NewOrthoCamera returns a camera at the origin looking at bounds.
func NewOrthoCamera(bounds vmath.RectF, near, far float32) *Camera {
	return &Camera{
		Projection: Orthographic{Bounds: bounds, Near: near, Far: far},
		Zoom:       1,
	}
}

// NewPixelCamera returns an orthographic camera whose bounds are w×h units
// centered on the origin, with near/far at -1/1.
func NewPixelCamera(w, h int) *Camera {
	return NewOrthoCamera(vmath.CenteredRectF(float32(w), float32(h)), -1, 1)
}

func (c *Camera) Move(dx, dy float32) { c.Position = c.Position.Add(vmath.V2(dx, dy)) }

func (c *Camera) SetZoom(z float32) { c.Zoom = max(z, MinZoom) }

// SetViewportPixels keeps the vertical extent of orthographic bounds and
// sets the horizontal extent from the w/h aspect ratio.
func (c *Camera) SetViewportPixels(w, h int) {
	o, ok := c.Projection.(Orthographic)
	if !ok || w <= 0 || h <= 0 {
		return
	}
	cx := o.Bounds.X + o.Bounds.W*0.5
	height := o.Bounds.H
	width := height * vmath.Rect{W: int32(w), H: int32(h)}.Aspect()
	o.Bounds = vmath.RectF{X: cx - width*0.5, Y: o.Bounds.Y, W: width, H: height}
	c.Projection = o
}

// View translates the world by the negated camera position.
func (c *Camera) View() vmath.Mat4 {
	return vmath.Translation(c.Position.Neg())
}

// ProjectionMatrix builds the projection. Perspective cameras return
// ErrPerspectiveUnsupported.
func (c *Camera) ProjectionMatrix() (vmath.Mat4, error) {
	switch p := c.Projection.(type) {
	case Orthographic:
		b := p.Bounds
		if z := c.Zoom; z != 0 && z != 1 {
			z = max(z, MinZoom)
			cx, cy := b.X+b.W*0.5, b.Y+b.H*0.5
			w, h := b.W/z, b.H/z
			b = vmath.RectF{X: cx - w*0.5, Y: cy - h*0.5, W: w, H: h}
		}
		return vmath.OrthoRect(b, p.Near, p.Far), nil
	case Perspective:
		return vmath.Mat4{}, ErrPerspectiveUnsupported
	case nil:
		return vmath.Mat4{}, errors.New("scene: camera has no projection")
	default:
		return vmath.Mat4{}, fmt.Errorf("scene: unknown projection %T", p)
	}
}

// MustProjection is ProjectionMatrix that panics on error.
func (c *Camera) MustProjection() vmath.Mat4 {
	m, err := c.ProjectionMatrix()
	if err != nil {
		panic(err)
	}
	return m
}

// ViewProjection returns projection × view.
func (c *Camera) ViewProjection() (vmath.Mat4, error) {
	proj, err := c.ProjectionMatrix()
	if err != nil {
		return vmath.Mat4{}, err
	}
	return proj.Mul(c.View()), nil
}
