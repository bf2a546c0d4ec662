package vmath

import "math"

// Mat4 is a 4x4 float matrix stored column-major (GLSL-style): the element at
// row r, column c lives at index c*4+r. It can be uploaded as-is with
// transpose=false.
//
// Points are column vectors and builders post-multiply: m.Translate(v) is
// m × T(v). A chain Identity().Translate(p).Rotate(a).Scale(s) therefore
// scales a point first, then rotates it, then translates it.
type Mat4 [16]float32

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation builds a translation by v in the XY plane.
func Translation(v Vec2) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, 0, 1,
	}
}

// Scaling builds a scale by v in the XY plane; Z is left untouched.
func Scaling(v Vec2) Mat4 {
	return Mat4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Rotation builds a counter-clockwise rotation of deg degrees about +Z.
func Rotation(deg float32) Mat4 {
	s64, c64 := math.Sincos(float64(Radians(deg)))
	s, c := float32(s64), float32(c64)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho builds an OpenGL-style orthographic projection. The visible volume is
// x in [l,r], y in [b,t] and eye-space z in [-n,-f]; it maps to the [-1,1] cube.
func Ortho(l, r, b, t, n, f float32) Mat4 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

// OrthoRect is Ortho over the bounds of r.
func OrthoRect(r RectF, n, f float32) Mat4 {
	return Ortho(r.Left(), r.Right(), r.Bottom(), r.Top(), n, f)
}

// At returns the element at row, col.
func (m Mat4) At(row, col int) float32 { return m[col*4+row] }

// Set assigns the element at row, col.
func (m *Mat4) Set(row, col int, v float32) { m[col*4+row] = v }

func (m Mat4) Add(o Mat4) Mat4 {
	var out Mat4
	for i := range m {
		out[i] = m[i] + o[i]
	}
	return out
}

func (m Mat4) Sub(o Mat4) Mat4 {
	var out Mat4
	for i := range m {
		out[i] = m[i] - o[i]
	}
	return out
}

// Mul returns the matrix product m × o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c*4+r] = m[0*4+r]*o[c*4+0] +
				m[1*4+r]*o[c*4+1] +
				m[2*4+r]*o[c*4+2] +
				m[3*4+r]*o[c*4+3]
		}
	}
	return out
}

// Translate returns m × Translation(v).
func (m Mat4) Translate(v Vec2) Mat4 { return m.Mul(Translation(v)) }

// Scale returns m × Scaling(v).
func (m Mat4) Scale(v Vec2) Mat4 { return m.Mul(Scaling(v)) }

// Rotate returns m × Rotation(deg).
func (m Mat4) Rotate(deg float32) Mat4 { return m.Mul(Rotation(deg)) }

// Transpose swaps rows and columns.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[r*4+c] = m[c*4+r]
		}
	}
	return out
}

// MulVec4 returns m × v.
func (m Mat4) MulVec4(v [4]float32) [4]float32 {
	var out [4]float32
	for r := 0; r < 4; r++ {
		out[r] = m[0*4+r]*v[0] + m[1*4+r]*v[1] + m[2*4+r]*v[2] + m[3*4+r]*v[3]
	}
	return out
}

// TransformVector applies m to the homogeneous point (x, y, 1, 1) and returns
// the resulting x and y. There is no perspective divide.
func (m Mat4) TransformVector(v Vec2) Vec2 {
	out := m.MulVec4([4]float32{v.X, v.Y, 1, 1})
	return Vec2{out[0], out[1]}
}

// MulPoint3 applies m to (x, y, z, 1), dividing by w when it is not 0 or 1.
func (m Mat4) MulPoint3(p Vec3) Vec3 {
	out := m.MulVec4([4]float32{p.X, p.Y, p.Z, 1})
	if w := out[3]; w != 0 && w != 1 {
		return Vec3{out[0] / w, out[1] / w, out[2] / w}
	}
	return Vec3{out[0], out[1], out[2]}
}

// ApproxEqual reports whether every element differs by at most eps.
func (m Mat4) ApproxEqual(o Mat4, eps float32) bool {
	for i := range m {
		if absf(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// Vec3 is only used to probe clip-space mappings.
type Vec3 struct {
	X, Y, Z float32
}
