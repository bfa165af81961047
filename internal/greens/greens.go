// Package greens assembles the per-k, per-ω one-particle Green's function
// from interpolated tight-binding eigendata and averages it over the
// k-grid, the second stage of the exchange pipeline.
package greens

import (
	"math/cmplx"
	"runtime"
	"sync"

	"wannierx/internal/interp"
	"wannierx/pkg/spinblock"
)

// Scratch holds the per-thread working matrices IntegrateGkInto needs. Each
// worker in AssembleAll owns its own; it is not safe to share across
// goroutines.
type Scratch struct {
	diag    *spinblock.Matrix
	vScaled *spinblock.Matrix
	vAdj    *spinblock.Matrix
	prod    *spinblock.Matrix
}

// NewScratch allocates a Scratch for the given layout and per-spin
// dimension N.
func NewScratch(layout spinblock.Layout, n int) *Scratch {
	return &Scratch{
		diag:    spinblock.New(layout, n),
		vScaled: spinblock.New(layout, n),
		vAdj:    spinblock.New(layout, n),
		prod:    spinblock.New(layout, n),
	}
}

// IntegrateGkInto computes G(ω) = (1/|kpoints|) * sum_k V_k · diag(1/(μ+ω−E_k)) · V_k†,
// writing the result into gout. The up-up block is accumulated with a
// forward translation phase (phases[k]), the down-down block with its
// conjugate (the backward phase), and, for NonCollinear data, the
// off-diagonal spin blocks are accumulated unphased.
func IntegrateGkInto(gout *spinblock.Matrix, omega complex128, mu float64, kd *interp.KData, scratch *Scratch) error {
	gout.Zero()
	n := kd.N
	nk := len(kd.KPoints)
	if nk == 0 {
		return nil
	}

	for k := 0; k < nk; k++ {
		scratch.diag.Zero()
		fillEnergyDiag(scratch.diag, kd.Layout, n, kd.EigVals[k], omega, mu)

		if err := spinblock.Multiply(scratch.vScaled, kd.EigVecs[k], scratch.diag); err != nil {
			return err
		}
		if err := spinblock.AdjointInto(scratch.vAdj, kd.EigVecs[k]); err != nil {
			return err
		}
		if err := spinblock.Multiply(scratch.prod, scratch.vScaled, scratch.vAdj); err != nil {
			return err
		}

		accumulateBlock(gout.Block(spinblock.UU), scratch.prod.Block(spinblock.UU), kd.Phases[k])
		accumulateBlock(gout.Block(spinblock.DD), scratch.prod.Block(spinblock.DD), cmplx.Conj(kd.Phases[k]))
		if kd.Layout == spinblock.NonCollinear {
			accumulateBlock(gout.Block(spinblock.UD), scratch.prod.Block(spinblock.UD), 1)
			accumulateBlock(gout.Block(spinblock.DU), scratch.prod.Block(spinblock.DU), 1)
		}
	}

	invNk := complex(1/float64(nk), 0)
	scaleBlock(gout.Block(spinblock.UU), invNk)
	scaleBlock(gout.Block(spinblock.DD), invNk)
	if kd.Layout == spinblock.NonCollinear {
		scaleBlock(gout.Block(spinblock.UD), invNk)
		scaleBlock(gout.Block(spinblock.DU), invNk)
	}
	return nil
}

func fillEnergyDiag(diag *spinblock.Matrix, layout spinblock.Layout, n int, eigvals spinblock.MagneticVector, omega complex128, mu float64) {
	muC := complex(mu, 0)
	if layout == spinblock.Collinear {
		up := diag.Block(spinblock.UU)
		down := diag.Block(spinblock.DD)
		for i := 0; i < n; i++ {
			up.Set(i, i, 1/(muC+omega-complex(eigvals[i], 0)))
			down.Set(i, i, 1/(muC+omega-complex(eigvals[n+i], 0)))
		}
		return
	}
	full := diag.Full()
	for i := 0; i < 2*n; i++ {
		full.Set(i, i, 1/(muC+omega-complex(eigvals[i], 0)))
	}
}

func accumulateBlock(dst, src spinblock.BlockView, scale complex128) {
	rows, cols := dst.Rows(), dst.Cols()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst.Set(i, j, dst.At(i, j)+scale*src.At(i, j))
		}
	}
}

func scaleBlock(dst spinblock.BlockView, scale complex128) {
	rows, cols := dst.Rows(), dst.Cols()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst.Set(i, j, dst.At(i, j)*scale)
		}
	}
}

// AssembleAll dispatches one IntegrateGkInto per ω in omegaGrid in
// parallel, one goroutine per contiguous ω-chunk. Each goroutine writes
// only to its own slots of the returned slice, so unlike BuildKEigens no
// reduction step is needed.
func AssembleAll(omegaGrid []complex128, kd *interp.KData, mu float64) ([]*spinblock.Matrix, error) {
	nw := len(omegaGrid)
	out := make([]*spinblock.Matrix, nw)
	for i := range out {
		out[i] = spinblock.New(kd.Layout, kd.N)
	}
	if nw == 0 {
		return out, nil
	}

	numWorkers := runtime.NumCPU()
	if numWorkers > nw {
		numWorkers = nw
	}
	chunk := (nw + numWorkers - 1) / numWorkers

	errs := make([]error, numWorkers)
	var wg sync.WaitGroup
	sem := make(chan struct{}, numWorkers)

	for worker := 0; worker < numWorkers; worker++ {
		lo := worker * chunk
		hi := lo + chunk
		if hi > nw {
			hi = nw
		}
		if lo >= hi {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(worker, lo, hi int) {
			defer wg.Done()
			defer func() { <-sem }()

			scratch := NewScratch(kd.Layout, kd.N)
			for i := lo; i < hi; i++ {
				if err := IntegrateGkInto(out[i], omegaGrid[i], mu, kd, scratch); err != nil {
					errs[worker] = err
					return
				}
			}
		}(worker, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
