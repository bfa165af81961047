// Package eigen provides EigenWorkspace, reusable scratch for repeated
// Hermitian diagonalization of complex SpinBlockMatrix values.
//
// gonum's mat package exposes EigenSym for real symmetric matrices only; it
// has no complex-Hermitian counterpart. A Hermitian H = A + iB (A real
// symmetric, B real antisymmetric) is diagonalized here by embedding it in
// the real symmetric matrix M = [[A, -B], [B, A]] and running mat.EigenSym
// on M. M commutes with the global complex structure J = [[0,-I],[I,0]], so
// its 2K-dimensional spectrum is exactly each eigenvalue of H repeated
// twice; taking every other eigenvector after an ascending sort and
// recombining its top and bottom halves as real and imaginary parts
// reconstructs an eigenvector of H, correct up to the same overall-phase
// ambiguity any eigenvector decomposition has.
package eigen

import (
	"wannierx/pkg/spinblock"

	"gonum.org/v1/gonum/mat"
)

// Workspace holds the scratch needed to repeatedly diagonalize
// SpinBlockMatrix values of a fixed layout and per-spin dimension N. It is
// not safe to share across goroutines — each worker should own its own
// Workspace.
type Workspace struct {
	layout spinblock.Layout
	n      int
	k      int // dimension of the Hermitian block being diagonalized: n for Collinear, 2n for NonCollinear
	embed  []float64
	eig    mat.EigenSym
	vecs   mat.Dense
}

// New allocates a Workspace for the given layout and per-spin dimension N.
func New(layout spinblock.Layout, n int) *Workspace {
	k := n
	if layout == spinblock.NonCollinear {
		k = 2 * n
	}
	return &Workspace{
		layout: layout,
		n:      n,
		k:      k,
		embed:  make([]float64, (2*k)*(2*k)),
	}
}

// EigenInto diagonalizes the Hermitian matrix currently stored in vecs and
// overwrites vecs in place with its eigenvectors, writing the eigenvalues
// into vals (a MagneticVector of length 2N). For Collinear layout, the
// up-up and down-down N×N blocks are diagonalized independently into
// vals[0:N] and vals[N:2N]; for NonCollinear, a single 2N Hermitian
// decomposition fills vals[0:2N], globally ascending.
func (w *Workspace) EigenInto(vals spinblock.MagneticVector, vecs *spinblock.Matrix) error {
	if vecs.Layout() != w.layout {
		return &spinblock.LayoutMismatchError{Op: "EigenInto"}
	}
	if vecs.N() != w.n || len(vals) != 2*w.n {
		return &spinblock.ShapeMismatchError{Op: "EigenInto", Detail: "dimension mismatch"}
	}
	if w.layout == spinblock.Collinear {
		if err := w.diagonalizeBlock(vals[0:w.n], vecs.Block(spinblock.UU)); err != nil {
			return err
		}
		return w.diagonalizeBlock(vals[w.n:2*w.n], vecs.Block(spinblock.DD))
	}
	return w.diagonalizeBlock(vals, vecs.Full())
}

func (w *Workspace) diagonalizeBlock(valsOut []float64, block spinblock.BlockView) error {
	k := w.k
	dim := 2 * k
	if len(w.embed) != dim*dim {
		w.embed = make([]float64, dim*dim)
	}
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			v := block.At(i, j)
			a, b := real(v), imag(v)
			w.embed[i*dim+j] = a
			w.embed[i*dim+(k+j)] = -b
			w.embed[(k+i)*dim+j] = b
			w.embed[(k+i)*dim+(k+j)] = a
		}
	}
	sym := mat.NewSymDense(dim, w.embed)

	if ok := w.eig.Factorize(sym, true); !ok {
		return &LapackError{Info: -1}
	}
	w.eig.VectorsTo(&w.vecs)
	eigVals := w.eig.Values(nil)

	for m := 0; m < k; m++ {
		idx := 2 * m
		valsOut[m] = eigVals[idx]
		for i := 0; i < k; i++ {
			top := w.vecs.At(i, idx)
			bot := w.vecs.At(k+i, idx)
			block.Set(i, m, complex(top, bot))
		}
	}
	return nil
}
