// Package kgrid generates uniform shifted k-point grids in fractional
// reciprocal coordinates.
package kgrid

import "wannierx/pkg/tbmodel"

// UniformShiftedGrid returns a flat, lexicographically ordered (x fastest)
// list of nx*ny*nz fractional k-points:
//
//	k = ((i, j, l) + 1/2) / (nx, ny, nz) - 1/2
//
// When gammaCentered is true, a half-cell correction
// shift = 0.5*((n+1) mod 2)/n is added per axis. The shift is nonzero only
// for even n, where it moves the grid onto the Gamma point; odd-n axes
// already contain Gamma without it. All returned components lie in
// [-1/2, 1/2).
func UniformShiftedGrid(nx, ny, nz int, gammaCentered bool) []tbmodel.KPoint {
	shiftX := axisShift(nx, gammaCentered)
	shiftY := axisShift(ny, gammaCentered)
	shiftZ := axisShift(nz, gammaCentered)

	out := make([]tbmodel.KPoint, 0, nx*ny*nz)
	for l := 0; l < nz; l++ {
		z := (float64(l)+0.5)/float64(nz) - 0.5 + shiftZ
		for j := 0; j < ny; j++ {
			y := (float64(j)+0.5)/float64(ny) - 0.5 + shiftY
			for i := 0; i < nx; i++ {
				x := (float64(i)+0.5)/float64(nx) - 0.5 + shiftX
				out = append(out, tbmodel.KPoint{X: wrap(x), Y: wrap(y), Z: wrap(z)})
			}
		}
	}
	return out
}

func axisShift(n int, gammaCentered bool) float64 {
	if !gammaCentered || n == 0 {
		return 0
	}
	return 0.5 * float64((n+1)%2) / float64(n)
}

// wrap folds a coordinate into [-1/2, 1/2) in case the shift correction
// pushed it to the boundary.
func wrap(x float64) float64 {
	for x >= 0.5 {
		x -= 1
	}
	for x < -0.5 {
		x += 1
	}
	return x
}
