package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubastard/gl2d/engine/core"
	"github.com/hubastard/gl2d/engine/vmath"
)

func TestTransformMatrix(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, vmath.Identity(), tr.Matrix())

	tr.Position = vmath.V2(5, 3)
	assert.Equal(t, vmath.V2(5, 3), tr.Matrix().TransformVector(vmath.V2(0, 0)))

	tr = NewTransform()
	tr.Scale = vmath.V2(2, 2)
	assert.Equal(t, vmath.V2(2, 2), tr.Matrix().TransformVector(vmath.V2(1, 1)))

	tr = Transform{Position: vmath.V2(1, 0), Rotation: 90, Scale: vmath.V2(3, 1)}
	got := tr.Matrix().TransformVector(vmath.V2(1, 0))
	assert.True(t, got.ApproxEqual(vmath.V2(1, 3), 1e-5), "got %v", got)
}

func TestCameraViewIsNegatedPosition(t *testing.T) {
	c := NewPixelCamera(800, 600)
	c.Position = vmath.V2(10, -4)
	assert.Equal(t, vmath.V2(0, 0), c.View().TransformVector(vmath.V2(10, -4)))
	assert.Equal(t, vmath.Translation(vmath.V2(-10, 4)), c.View())
}

func TestCameraOrthographicProjection(t *testing.T) {
	c := NewOrthoCamera(vmath.RectF{X: 0, Y: 0, W: 800, H: 600}, -1, 1)
	p, err := c.ProjectionMatrix()
	require.NoError(t, err)
	assert.Equal(t, vmath.Ortho(0, 800, 0, 600, -1, 1), p)
	assert.Equal(t, p, c.MustProjection())

	vp, err := c.ViewProjection()
	require.NoError(t, err)
	corner := vp.MulPoint3(vmath.Vec3{X: 800, Y: 600, Z: 0})
	assert.InDelta(t, 1, corner.X, 1e-6)
	assert.InDelta(t, 1, corner.Y, 1e-6)

	// moving the camera right shifts the world left
	c.Move(400, 300)
	vp, err = c.ViewProjection()
	require.NoError(t, err)
	center := vp.MulPoint3(vmath.Vec3{X: 800, Y: 600})
	assert.InDelta(t, 0, center.X, 1e-6)
	assert.InDelta(t, 0, center.Y, 1e-6)
}

func TestCameraZoom(t *testing.T) {
	c := NewPixelCamera(200, 100)
	c.SetZoom(2)
	p := c.MustProjection()
	assert.True(t, vmath.Ortho(-50, 50, -25, 25, -1, 1).ApproxEqual(p, 1e-6))

	c.SetZoom(0)
	assert.Equal(t, float32(0.05), c.Zoom)
	clamped := c.MustProjection()

	// a zoom written straight to the field is clamped the same way
	c.Zoom = -3
	assert.Equal(t, clamped, c.MustProjection())
	c.Zoom = 0.01
	assert.Equal(t, clamped, c.MustProjection())
	assert.Greater(t, clamped.At(0, 0), float32(0), "bounds are never flipped")
}

func TestCameraSetViewportPixels(t *testing.T) {
	c := NewOrthoCamera(vmath.CenteredRectF(2, 2), -1, 1)
	c.SetViewportPixels(800, 400)
	o := c.Projection.(Orthographic)
	assert.Equal(t, vmath.RectF{X: -2, Y: -1, W: 4, H: 2}, o.Bounds)

	c.SetViewportPixels(0, 0)
	assert.Equal(t, o, c.Projection)
}

func TestCameraPerspectiveIsRejected(t *testing.T) {
	c := &Camera{Projection: Perspective{FOV: 60, Aspect: 4.0 / 3, Near: 0.1, Far: 100}}

	_, err := c.ProjectionMatrix()
	assert.ErrorIs(t, err, ErrPerspectiveUnsupported)
	_, err = c.ViewProjection()
	assert.ErrorIs(t, err, ErrPerspectiveUnsupported)
	assert.PanicsWithError(t, ErrPerspectiveUnsupported.Error(), func() { c.MustProjection() })

	c.SetViewportPixels(10, 10) // no-op for perspective
	assert.IsType(t, Perspective{}, c.Projection)

	_, err = (&Camera{}).ProjectionMatrix()
	assert.Error(t, err)
}

func TestControllerMovesTransformAndCamera(t *testing.T) {
	in := core.NewInput()
	tr := NewTransform()
	cam := NewPixelCamera(10, 10)
	cc := NewController(&tr, cam)

	in.Handle(core.EventKey{Key: core.KeyRight, Down: true})
	in.Handle(core.EventKey{Key: core.KeyUp, Down: true})
	in.Handle(core.EventKey{Key: core.KeyPageUp, Down: true})
	in.Handle(core.EventKey{Key: core.KeyComma, Down: true})
	in.Handle(core.EventKey{Key: core.KeyW, Down: true})
	cc.Update(in, 1)

	assert.Equal(t, vmath.V2(0.5, 0.5), tr.Position)
	assert.Equal(t, vmath.V2(1.5, 1.5), tr.Scale)
	assert.Equal(t, float32(90), tr.Rotation)
	assert.Equal(t, vmath.V2(0, 0.5), cam.Position)

	in.Handle(core.EventKey{Key: core.KeyPageUp, Down: false})
	in.Handle(core.EventKey{Key: core.KeyPageDown, Down: true})
	cc.Update(in, 10)
	assert.Equal(t, vmath.V2(cc.MinScale, cc.MinScale), tr.Scale, "scale is clamped")
}
