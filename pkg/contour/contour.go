// Package contour builds the complex-energy quadrature path used by the
// Green's-function contour integral and the composite Simpson integrator
// that consumes it.
package contour

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/integrate/quad"
)

// DefaultP is the logarithmic-packing parameter used by Semicircle unless
// the caller overrides it, exposed so callers can override it.
const DefaultP = 13.0

// Semicircle returns n complex abscissae approximating a semicircular
// contour in the upper half-plane whose diameter spans [wh, emax] on the
// real axis. Gauss-Legendre nodes of order n on [-1,1] are mapped through a
// logarithmic phase packing (parameterized by p) that concentrates points
// near the real axis, where the Green's function varies most rapidly.
func Semicircle(wh, emax float64, n int, p float64) []complex128 {
	r0 := (emax + wh) / 2
	r := (emax - wh) / 2

	x := make([]float64, n)
	w := make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)

	l := -math.Log(1 + p*math.Pi)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		y := (l/2)*x[k] - l/2
		phi := (math.Exp(y) - 1) / p
		out[k] = complex(r0, 0) + complex(r, 0)*cmplx.Exp(complex(0, phi))
	}
	return out
}

// IntegrateSimpson integrates a function sampled as (xs[k], values[k])
// pairs using composite Simpson's rule generalized to unequal, possibly
// complex spacing: each consecutive triplet of points is fit with the
// unique quadratic through them and integrated exactly over its span. The
// three-point formula's coefficients come from the consecutive differences
// xs[k+1]-xs[k], so it remains exact for degree-2 polynomials regardless of
// spacing. When len(xs) is even, the body covers all but the last point and
// an asymmetric three-point closing stencil (fit through the last three
// points, but integrated only over the final sub-interval) covers the
// remainder.
func IntegrateSimpson(values, xs []complex128) complex128 {
	n := len(values)
	if n != len(xs) {
		panic("contour: values and xs must have equal length")
	}
	switch n {
	case 0, 1:
		return 0
	case 2:
		return (xs[1] - xs[0]) / 2 * (values[0] + values[1])
	}

	bodyLen := n
	if n%2 == 0 {
		bodyLen = n - 1
	}

	var total complex128
	for i := 0; i+2 < bodyLen; i += 2 {
		h0 := xs[i+1] - xs[i]
		h1 := xs[i+2] - xs[i+1]
		total += simpsonTriplet(h0, h1, values[i], values[i+1], values[i+2])
	}

	if n%2 == 0 {
		h0 := xs[n-2] - xs[n-3]
		h1 := xs[n-1] - xs[n-2]
		total += closingStencil(h0, h1, values[n-3], values[n-2], values[n-1])
	}
	return total
}

// simpsonTriplet integrates the quadratic through (f0, f1, f2) over the
// full span [x0, x2], given the steps h0 = x1-x0 and h1 = x2-x1.
func simpsonTriplet(h0, h1, f0, f1, f2 complex128) complex128 {
	return (h0 + h1) / 6 * ((2 - h1/h0) * f0 + (h0+h1)*(h0+h1)/(h0*h1) * f1 + (2 - h0/h1) * f2)
}

// closingStencil integrates the quadratic through (f0, f1, f2) over only
// the final sub-interval [x1, x2], given h0 = x1-x0 and h1 = x2-x1. The
// weights are the exact Lagrange-quadrature coefficients for that partial
// span; see DESIGN.md for the derivation.
func closingStencil(h0, h1, f0, f1, f2 complex128) complex128 {
	w0 := -h1 * h1 * h1 / (6 * h0 * (h0 + h1))
	w1 := h1*h1/(6*h0) + h1/2
	w2 := h1*h1/(3*(h0+h1)) + h0*h1/(2*(h0+h1))
	return w0*f0 + w1*f1 + w2*f2
}
