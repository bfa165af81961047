package exchange

import (
	"gonum.org/v1/gonum/mat"

	"wannierx/pkg/spinblock"
	"wannierx/pkg/tbmodel"
)

// jOmega evaluates the Lichtenstein kernel at one contour energy:
//
//	t[i,j] = s_i * s_j * Δ_i[i,i] * G_fwd[i,j] * Δ_j[j,j] * G_bwd[j,i]
//
// where s_i = -sign(Re tr Δ_i), the forward propagator is atom i's up-spin
// view into atom j's orbitals, and the backward propagator is atom j's
// down-spin view into atom i's orbitals. When siteDiagonal is true, only
// the diagonal entries (i==j) are filled; the rest of the returned matrix
// stays zero.
func jOmega(upI, upJ tbmodel.OrbitalRange, delta *spinblock.Delta, g *spinblock.Matrix, siteDiagonal bool) *mat.CDense {
	ni, nj := upI.Len(), upJ.Len()
	out := mat.NewCDense(ni, nj, nil)

	deltaI := delta.Diag(upI.Start, upI.End)
	deltaJ := delta.Diag(upJ.Start, upJ.End)
	sI := complex(-sign(real(delta.Trace(upI.Start, upI.End))), 0)
	sJ := complex(-sign(real(delta.Trace(upJ.Start, upJ.End))), 0)

	fwd := g.AtomView(upI.Start, upI.End, upJ.Start, upJ.End, spinblock.Up)
	bwd := g.AtomView(upJ.Start, upJ.End, upI.Start, upI.End, spinblock.Down)

	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			if siteDiagonal && i != j {
				continue
			}
			out.Set(i, j, sI*sJ*deltaI[i]*fwd.At(i, j)*deltaJ[j]*bwd.At(j, i))
		}
	}
	return out
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
