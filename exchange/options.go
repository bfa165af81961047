// Package exchange is the public entry point to the magnetic-exchange
// engine: it wires TBInterpolator, the contour grid, GreensAssembler and the
// Lichtenstein kernel into one call, CalcExchanges.
package exchange

import "wannierx/pkg/tbmodel"

// Options configures CalcExchanges.
type Options struct {
	// NK is the k-grid subdivision (nx, ny, nz).
	NK [3]int
	// R is the lattice displacement applied to the second atom of every
	// pair, and the translation phase threaded through TBInterpolator.
	R tbmodel.LatticeVector
	// OmegaH is the lower bound of the contour's real-axis diameter.
	OmegaH float64
	// NOmegaH is the default contour order, overridden by CalcExchanges'
	// order parameter when that argument is positive.
	NOmegaH int
	// EMax is the upper bound of the contour's real-axis diameter.
	EMax float64
	// SiteDiagonal restricts the exchange kernel to diagonal orbital pairs
	// (t[i,i]); off-diagonal entries of every record's J are left zero.
	SiteDiagonal bool
	// GammaCentered threads through to kgrid.UniformShiftedGrid (see
	// DESIGN.md for why this field exists).
	GammaCentered bool
}

// DefaultOptions returns the documented defaults: a 10x10x10 k-grid, zero
// lattice displacement, and a contour spanning [-30, 0.001] with 100 nodes.
func DefaultOptions() Options {
	return Options{
		NK:            [3]int{10, 10, 10},
		R:             tbmodel.LatticeVector{},
		OmegaH:        -30.0,
		NOmegaH:       100,
		EMax:          0.001,
		SiteDiagonal:  false,
		GammaCentered: false,
	}
}
