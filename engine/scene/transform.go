package scene

import "github.com/hubastard/gl2d/engine/vmath"

// Transform places an object in 2D. Rotation is in degrees.
type Transform struct {
	Position vmath.Vec2
	Rotation float32
	Scale    vmath.Vec2
}

// NewTransform returns an identity transform (unit scale).
func NewTransform() Transform {
	return Transform{Scale: vmath.V2(1, 1)}
}

// Matrix composes translate × rotate × scale: points are scaled, then
// rotated, then moved.
func (t Transform) Matrix() vmath.Mat4 {
	return vmath.Identity().
		Translate(t.Position).
		Rotate(t.Rotation).
		Scale(t.Scale)
}
