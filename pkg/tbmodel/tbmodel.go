// Package tbmodel holds the data model exchanged between the magnetic-exchange
// engine and its external collaborators: the tight-binding operator, the atom
// catalog, the host lattice, and the exchange records the solver produces.
package tbmodel

import "wannierx/pkg/spinblock"

// LatticeVector is an integer Bravais-lattice translation R = (I, J, K)·(a1, a2, a3).
type LatticeVector struct {
	I, J, K int
}

// KPoint is a fractional reciprocal-space point with components in [-1/2, 1/2).
type KPoint struct {
	X, Y, Z float64
}

// Dot returns the fractional dot product k·R.
func (k KPoint) Dot(r LatticeVector) float64 {
	return k.X*float64(r.I) + k.Y*float64(r.J) + k.Z*float64(r.K)
}

// TBOperator is the Fourier series defining H(k): an ordered list of
// (R_i, H_i) pairs sharing one layout and dimension.
type TBOperator struct {
	R      []LatticeVector
	H      []*spinblock.Matrix
	Layout spinblock.Layout
}

// Dim returns the per-spin orbital count N, or -1 if the operator is empty.
func (tb TBOperator) Dim() int {
	if len(tb.H) == 0 {
		return -1
	}
	return tb.H[0].N()
}

// OrbitalRange is a half-open [Start, End) index range into the up-spin
// sub-basis. Its size is End-Start.
type OrbitalRange struct {
	Start, End int
}

// Len returns the number of orbitals covered by the range.
func (r OrbitalRange) Len() int {
	return r.End - r.Start
}

// Atom is a lattice site: a symbol, a Cartesian position, and the orbital
// range it occupies in the up-spin sub-basis. Up is nil when the atom's
// orbital metadata is missing; pairs involving such an atom are skipped by
// CalcExchanges rather than erroring.
type Atom struct {
	Symbol   string
	Position [3]float64
	Up       *OrbitalRange
}

// Cell is the 3x3 real-space lattice matrix; rows are the lattice vectors
// a1, a2, a3 in Cartesian coordinates.
type Cell struct {
	A [3][3]float64
}

// Translate returns pos displaced by r expressed through the cell's lattice
// vectors: pos + r.I*a1 + r.J*a2 + r.K*a3.
func (c Cell) Translate(pos [3]float64, r LatticeVector) [3]float64 {
	var out [3]float64
	for d := 0; d < 3; d++ {
		out[d] = pos[d] +
			float64(r.I)*c.A[0][d] +
			float64(r.J)*c.A[1][d] +
			float64(r.K)*c.A[2][d]
	}
	return out
}
