package vmath

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randMat4(r *rand.Rand) Mat4 {
	var m Mat4
	for i := range m {
		m[i] = r.Float32()*4 - 2
	}
	return m
}

func TestConstructorsFillEveryEntry(t *testing.T) {
	// Every constructor must produce the same matrix regardless of what was
	// in memory before; compare against mathgl, which builds them from scratch.
	assert.Equal(t, Mat4(mgl32.Ident4()), Identity())
	assert.Equal(t, Mat4(mgl32.Translate3D(5, -3, 0)), Translation(V2(5, -3)))
	assert.Equal(t, Mat4(mgl32.Scale3D(2, 0.5, 1)), Scaling(V2(2, 0.5)))
	assert.True(t, Mat4(mgl32.HomogRotate3DZ(mgl32.DegToRad(30))).ApproxEqual(Rotation(30), 1e-6))
	assert.True(t, Mat4(mgl32.Ortho(-4, 4, -3, 3, 0.1, 100)).ApproxEqual(Ortho(-4, 4, -3, 3, 0.1, 100), 1e-6))
}

func TestMulMatchesMathgl(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 100; i++ {
		a, b := randMat4(r), randMat4(r)
		want := Mat4(mgl32.Mat4(a).Mul4(mgl32.Mat4(b)))
		require.Truef(t, want.ApproxEqual(a.Mul(b), 1e-5), "iteration %d", i)
	}
}

func TestMulIdentity(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	for i := 0; i < 100; i++ {
		m := randMat4(r)
		require.Equal(t, m, Identity().Mul(m))
		require.Equal(t, m, m.Mul(Identity()))
	}
}

func TestMulAssociative(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 10))
	for i := 0; i < 100; i++ {
		a, b, c := randMat4(r), randMat4(r), randMat4(r)
		left := a.Mul(b).Mul(c)
		right := a.Mul(b.Mul(c))
		require.Truef(t, left.ApproxEqual(right, 1e-3), "iteration %d:\n%v\n%v", i, left, right)
	}
}

func TestAddSub(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 12))
	a, b := randMat4(r), randMat4(r)
	sum := a.Add(b)
	for i := range sum {
		assert.Equal(t, a[i]+b[i], sum[i])
	}
	assert.True(t, sum.Sub(b).ApproxEqual(a, 1e-6))
}

func TestTranslateScenario(t *testing.T) {
	m := Identity().Translate(V2(5, 3))
	assert.Equal(t, V2(5, 3), m.TransformVector(V2(0, 0)))
}

func TestScaleScenario(t *testing.T) {
	m := Identity().Scale(V2(2, 2))
	assert.Equal(t, V2(2, 2), m.TransformVector(V2(1, 1)))
}

func TestRotateTransformsLikeVec2Rotate(t *testing.T) {
	m := Identity().Rotate(90)
	got := m.TransformVector(V2(1, 0))
	assert.True(t, got.ApproxEqual(V2(1, 0).Rotate(90), 1e-6), "got %v", got)
}

func TestPostMultiplyOrder(t *testing.T) {
	// translate(rotate(scale(p)))
	m := Identity().Translate(V2(10, 0)).Rotate(90).Scale(V2(2, 2))
	got := m.TransformVector(V2(1, 0))
	assert.True(t, got.ApproxEqual(V2(10, 2), 1e-5), "got %v", got)
}

func TestOrthoMapsBoxCornersToClipCube(t *testing.T) {
	for _, tc := range []struct {
		l, r, b, t, n, f float32
	}{
		{-1, 1, -1, 1, -1, 1},
		{0, 800, 0, 600, 0.1, 100},
		{-400, 400, -300, 300, -1, 1},
		{10, 20, -5, 5, 1, 3},
	} {
		p := Ortho(tc.l, tc.r, tc.b, tc.t, tc.n, tc.f)
		lo := p.MulPoint3(Vec3{tc.l, tc.b, -tc.n})
		hi := p.MulPoint3(Vec3{tc.r, tc.t, -tc.f})
		assert.InDelta(t, -1, lo.X, 1e-5)
		assert.InDelta(t, -1, lo.Y, 1e-5)
		assert.InDelta(t, -1, lo.Z, 1e-5)
		assert.InDelta(t, 1, hi.X, 1e-5)
		assert.InDelta(t, 1, hi.Y, 1e-5)
		assert.InDelta(t, 1, hi.Z, 1e-5)
	}
}

func TestOrthoRect(t *testing.T) {
	bounds := CenteredRectF(8, 6)
	assert.Equal(t, Ortho(-4, 4, -3, 3, -1, 1), OrthoRect(bounds, -1, 1))
}

func TestAtSetTranspose(t *testing.T) {
	m := Translation(V2(7, 9))
	assert.Equal(t, float32(7), m.At(0, 3))
	assert.Equal(t, float32(9), m.At(1, 3))

	m.Set(2, 3, 4)
	assert.Equal(t, float32(4), m[14])

	tr := m.Transpose()
	assert.Equal(t, float32(7), tr.At(3, 0))
	assert.Equal(t, m, tr.Transpose())
}
