package vmath

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randVec2(r *rand.Rand) Vec2 {
	return Vec2{X: r.Float32()*200 - 100, Y: r.Float32()*200 - 100}
}

func TestVec2Arithmetic(t *testing.T) {
	a, b := V2(3, -4), V2(2, 8)

	assert.Equal(t, V2(5, 4), a.Add(b))
	assert.Equal(t, V2(1, -12), a.Sub(b))
	assert.Equal(t, V2(6, -32), a.Mul(b))
	assert.Equal(t, V2(1.5, -0.5), a.Div(b))
	assert.Equal(t, V2(4, -3), a.AddScalar(1))
	assert.Equal(t, V2(2, -5), a.SubScalar(1))
	assert.Equal(t, V2(6, -8), a.Scale(2))
	assert.Equal(t, V2(1.5, -2), a.DivScalar(2))
	assert.Equal(t, V2(9, 16), a.Pow(2))
	assert.Equal(t, V2(-3, 4), a.Neg())
	assert.Equal(t, float32(-26), a.Dot(b))
	assert.Equal(t, float32(25), a.LenSqr())
	assert.Equal(t, float32(5), a.Len())
	assert.True(t, a.Equal(V2(3, -4)))
	assert.False(t, a.Equal(b))
}

func TestVec2Normalize(t *testing.T) {
	n := V2(3, -4).Normalize()
	assert.True(t, n.ApproxEqual(V2(0.6, -0.8), 1e-6))
	assert.InDelta(t, 1, n.Len(), 1e-6)

	z := Vec2{}.Normalize()
	assert.True(t, math.IsNaN(float64(z.X)))
	assert.True(t, math.IsNaN(float64(z.Y)))
}

func TestVec2DivByZeroFollowsIEEE(t *testing.T) {
	v := V2(1, -1).DivScalar(0)
	assert.True(t, math.IsInf(float64(v.X), 1))
	assert.True(t, math.IsInf(float64(v.Y), -1))
}

func TestVec2Rotate(t *testing.T) {
	for _, tc := range []struct {
		in   Vec2
		deg  float32
		want Vec2
	}{
		{V2(1, 0), 90, V2(0, 1)},
		{V2(1, 0), 180, V2(-1, 0)},
		{V2(0, 1), 90, V2(-1, 0)},
		{V2(2, 3), 0, V2(2, 3)},
		{V2(1, 0), -90, V2(0, -1)},
	} {
		got := tc.in.Rotate(tc.deg)
		assert.Truef(t, got.ApproxEqual(tc.want, 1e-6), "rotate %v by %v: got %v want %v", tc.in, tc.deg, got, tc.want)
	}
}

func TestVec2RotateRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		v := randVec2(r)
		deg := r.Float32()*720 - 360
		back := v.Rotate(deg).Rotate(-deg)
		require.Truef(t, back.ApproxEqual(v, 1e-3), "iteration %d: %v -> %v", i, v, back)
	}
}

func TestVec2MagnitudeSquaredIsDot(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		v := randVec2(r)
		l := v.Len()
		dot := v.Dot(v)
		require.InDelta(t, dot, l*l, 1e-5*float64(max(1, dot)))
	}
}
