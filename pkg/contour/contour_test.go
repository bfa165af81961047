package contour

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemicircleUpperHalfPlane(t *testing.T) {
	pts := Semicircle(-5.0, 0.2, 21, DefaultP)
	require.Len(t, pts, 21)

	r0 := (0.2 + -5.0) / 2
	r := (0.2 - -5.0) / 2
	for _, w := range pts {
		assert.Greater(t, imag(w), 0.0)
		dist := absComplex(w - complex(r0, 0))
		assert.InDelta(t, r, dist, 1e-9)
	}
}

func TestSimpsonExactOnLowDegreePolynomials(t *testing.T) {
	xs := toComplex([]float64{0, 0.5, 1.3, 2.0, 3.1})

	ones := constValues(len(xs), 1)
	assert.InDelta(t, 3.1, real(IntegrateSimpson(ones, xs)), 1e-9)

	linear := make([]complex128, len(xs))
	for i, x := range xs {
		linear[i] = x
	}
	want := (3.1*3.1 - 0*0) / 2
	assert.InDelta(t, want, real(IntegrateSimpson(linear, xs)), 1e-9)

	quad := make([]complex128, len(xs))
	for i, x := range xs {
		quad[i] = x * x
	}
	wantQuad := (3.1*3.1*3.1 - 0) / 3
	assert.InDelta(t, wantQuad, real(IntegrateSimpson(quad, xs)), 1e-9)
}

func TestSimpsonEvenCountClosingStencil(t *testing.T) {
	xs := toComplex([]float64{0, 0.7, 1.6, 2.5})

	ones := constValues(len(xs), 1)
	assert.InDelta(t, 2.5, real(IntegrateSimpson(ones, xs)), 1e-9)

	linear := make([]complex128, len(xs))
	for i, x := range xs {
		linear[i] = x
	}
	want := (2.5*2.5 - 0) / 2
	assert.InDelta(t, want, real(IntegrateSimpson(linear, xs)), 1e-9)

	quad := make([]complex128, len(xs))
	for i, x := range xs {
		quad[i] = x * x
	}
	wantQuad := (2.5*2.5*2.5 - 0) / 3
	assert.InDelta(t, wantQuad, real(IntegrateSimpson(quad, xs)), 1e-8)
}

func toComplex(xs []float64) []complex128 {
	out := make([]complex128, len(xs))
	for i, x := range xs {
		out[i] = complex(x, 0)
	}
	return out
}

func constValues(n int, v complex128) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func absComplex(z complex128) float64 {
	r, i := real(z), imag(z)
	return math.Sqrt(r*r + i*i)
}
