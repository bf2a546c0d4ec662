package vmath

import "math"

// Vec2 is a 2D float vector. All operations return new values.
type Vec2 struct {
	X, Y float32
}

func V2(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{v.X / o.X, v.Y / o.Y} }

func (v Vec2) AddScalar(s float32) Vec2 { return Vec2{v.X + s, v.Y + s} }
func (v Vec2) SubScalar(s float32) Vec2 { return Vec2{v.X - s, v.Y - s} }
func (v Vec2) Scale(s float32) Vec2     { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) DivScalar(s float32) Vec2 { return Vec2{v.X / s, v.Y / s} }

// Pow raises each component to p.
func (v Vec2) Pow(p float32) Vec2 {
	return Vec2{
		float32(math.Pow(float64(v.X), float64(p))),
		float32(math.Pow(float64(v.Y), float64(p))),
	}
}

func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) LenSqr() float32 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Len() float32 { return float32(math.Sqrt(float64(v.LenSqr()))) }

// Normalize returns v scaled to unit length. A zero vector yields NaN components.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	return Vec2{v.X / l, v.Y / l}
}

// Rotate rotates v counter-clockwise by deg degrees.
func (v Vec2) Rotate(deg float32) Vec2 {
	s, c := math.Sincos(float64(Radians(deg)))
	sin, cos := float32(s), float32(c)
	return Vec2{
		v.X*cos - v.Y*sin,
		v.X*sin + v.Y*cos,
	}
}

func (v Vec2) Equal(o Vec2) bool { return v.X == o.X && v.Y == o.Y }

func (v Vec2) ApproxEqual(o Vec2, eps float32) bool {
	return absf(v.X-o.X) <= eps && absf(v.Y-o.Y) <= eps
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 { return deg * (math.Pi / 180) }

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
