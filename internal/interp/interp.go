// Package interp Fourier-interpolates a real-space tight-binding operator
// onto a k-grid and diagonalizes each k-point's Hamiltonian, the first stage
// of the exchange pipeline.
package interp

import (
	"math"
	"math/cmplx"
	"runtime"
	"sync"

	"wannierx/pkg/eigen"
	"wannierx/pkg/spinblock"
	"wannierx/pkg/tbmodel"
)

// KData holds the per-k eigendata produced by BuildKEigens along with the
// accumulated on-site exchange splitting, ready for the Green's-function
// stage.
type KData struct {
	Layout  spinblock.Layout
	N       int
	KPoints []tbmodel.KPoint
	Hk      []*spinblock.Matrix
	EigVals []spinblock.MagneticVector
	EigVecs []*spinblock.Matrix
	Phases  []complex128
	Delta   *spinblock.Delta
}

// HKInto Fourier-sums the real-space operator at k into out:
//
//	out = (1/|R|) * sum_i exp(i*2*pi*k.R_i) * H_i
//
// out is cleared first. Averaging by the number of lattice vectors rather
// than a unit-cell volume assumes tb.R is already a Wigner-Seitz set whose
// weight is exactly its cardinality.
func HKInto(out *spinblock.Matrix, tb tbmodel.TBOperator, k tbmodel.KPoint) error {
	out.Zero()
	nr := len(tb.R)
	if nr == 0 {
		return nil
	}
	weight := 1 / float64(nr)
	for i, r := range tb.R {
		phase := cmplx.Exp(complex(0, 2*math.Pi*k.Dot(r))) * complex(weight, 0)
		if err := spinblock.ScaleAddInto(out, tb.H[i], phase); err != nil {
			return err
		}
	}
	return nil
}

// BuildKEigens interpolates and diagonalizes the Hamiltonian at every point
// in kpoints, accumulating the on-site exchange splitting Δ = (⟨H_up⟩ −
// ⟨H_down⟩)/|kpoints| along the way. R selects the translation phase
// exp(i*2*pi*k.R) recorded per-k for later use by the Green's-function
// assembler.
//
// Work is statically partitioned into runtime.NumCPU() contiguous k-index
// chunks, one goroutine per chunk, each owning its own eigen.Workspace and
// partial Δ accumulator; partials are summed in worker-index order after
// every goroutine finishes, so the result does not depend on scheduling.
func BuildKEigens(tb tbmodel.TBOperator, kpoints []tbmodel.KPoint, r tbmodel.LatticeVector) (*KData, error) {
	n := tb.Dim()
	nk := len(kpoints)

	kd := &KData{
		Layout:  tb.Layout,
		N:       n,
		KPoints: kpoints,
		Hk:      make([]*spinblock.Matrix, nk),
		EigVals: make([]spinblock.MagneticVector, nk),
		EigVecs: make([]*spinblock.Matrix, nk),
		Phases:  make([]complex128, nk),
	}
	for k := 0; k < nk; k++ {
		kd.Hk[k] = spinblock.New(tb.Layout, n)
		kd.EigVals[k] = spinblock.NewMagneticVector(n)
		kd.EigVecs[k] = spinblock.New(tb.Layout, n)
		kd.Phases[k] = cmplx.Exp(complex(0, 2*math.Pi*kpoints[k].Dot(r)))
	}
	if nk == 0 {
		kd.Delta = spinblock.FromOnsiteBlocks(spinblock.New(tb.Layout, n))
		return kd, nil
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > nk {
		numWorkers = nk
	}
	chunk := (nk + numWorkers - 1) / numWorkers

	partials := make([]*spinblock.Matrix, numWorkers)
	errs := make([]error, numWorkers)

	var wg sync.WaitGroup
	sem := make(chan struct{}, numWorkers)

	for worker := 0; worker < numWorkers; worker++ {
		lo := worker * chunk
		hi := lo + chunk
		if hi > nk {
			hi = nk
		}
		if lo >= hi {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(worker, lo, hi int) {
			defer wg.Done()
			defer func() { <-sem }()

			ws := eigen.New(tb.Layout, n)
			partial := spinblock.New(tb.Layout, n)

			for k := lo; k < hi; k++ {
				if err := HKInto(kd.EigVecs[k], tb, kpoints[k]); err != nil {
					errs[worker] = err
					return
				}
				if err := spinblock.CopyInto(kd.Hk[k], kd.EigVecs[k]); err != nil {
					errs[worker] = err
					return
				}
				if err := spinblock.ScaleAddInto(partial, kd.Hk[k], 1); err != nil {
					errs[worker] = err
					return
				}
				if err := ws.EigenInto(kd.EigVals[k], kd.EigVecs[k]); err != nil {
					errs[worker] = err
					return
				}
			}
			partials[worker] = partial
		}(worker, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	total := spinblock.New(tb.Layout, n)
	for _, p := range partials {
		if p == nil {
			continue
		}
		if err := spinblock.ScaleAddInto(total, p, 1); err != nil {
			return nil, err
		}
	}

	delta := spinblock.FromOnsiteBlocks(total)
	delta.Scale(complex(1/float64(nk), 0))
	kd.Delta = delta

	return kd, nil
}
