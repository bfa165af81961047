package interp

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wannierx/pkg/spinblock"
	"wannierx/pkg/tbmodel"
)

// singleBandChain builds a 1-orbital collinear nearest-neighbor chain:
// H(R=0) = diag(0, 0), H(R=+1) = H(R=-1) = diag(-1, -1) (spin-independent
// hopping, no splitting).
func singleBandChain() tbmodel.TBOperator {
	h0 := spinblock.New(spinblock.Collinear, 1)
	hp := spinblock.New(spinblock.Collinear, 1)
	hm := spinblock.New(spinblock.Collinear, 1)
	hp.Block(spinblock.UU).Set(0, 0, -1)
	hp.Block(spinblock.DD).Set(0, 0, -1)
	hm.Block(spinblock.UU).Set(0, 0, -1)
	hm.Block(spinblock.DD).Set(0, 0, -1)

	return tbmodel.TBOperator{
		R:      []tbmodel.LatticeVector{{0, 0, 0}, {1, 0, 0}, {-1, 0, 0}},
		H:      []*spinblock.Matrix{h0, hp, hm},
		Layout: spinblock.Collinear,
	}
}

func TestHKIntoAtGammaSumsHoppings(t *testing.T) {
	tb := singleBandChain()
	out := spinblock.New(spinblock.Collinear, 1)
	require.NoError(t, HKInto(out, tb, tbmodel.KPoint{}))

	// At k=0 every phase is 1: out = (0 + -1 + -1)/3 = -2/3.
	got := out.Block(spinblock.UU).At(0, 0)
	assert.InDelta(t, -2.0/3.0, real(got), 1e-12)
	assert.InDelta(t, 0, imag(got), 1e-12)
}

func TestHKIntoHermitianUnderKNegation(t *testing.T) {
	tb := singleBandChain()
	k := tbmodel.KPoint{X: 0.17, Y: -0.05, Z: 0.33}

	hk := spinblock.New(spinblock.Collinear, 1)
	hmk := spinblock.New(spinblock.Collinear, 1)
	require.NoError(t, HKInto(hk, tb, k))
	require.NoError(t, HKInto(hmk, tb, tbmodel.KPoint{X: -k.X, Y: -k.Y, Z: -k.Z}))

	got := hk.Block(spinblock.UU).At(0, 0)
	gotNeg := hmk.Block(spinblock.UU).At(0, 0)
	assert.InDelta(t, real(got), real(gotNeg), 1e-12)
	assert.InDelta(t, -imag(got), imag(gotNeg), 1e-12)
}

// TestHKIntoIsHermitianForConjugateSymmetricOperator builds a 2-orbital
// NonCollinear operator with H(-R) = H(R)^dagger (R=0 Hermitian on its own,
// R=+1 and R=-1 mutual adjoints) and checks H_k is numerically Hermitian at
// a generic k.
func TestHKIntoIsHermitianForConjugateSymmetricOperator(t *testing.T) {
	n := 2
	h0 := spinblock.New(spinblock.NonCollinear, n)
	full0 := h0.Full()
	full0.Set(0, 0, 0.3)
	full0.Set(1, 1, -0.1)
	full0.Set(0, 1, complex(0, 0.2))
	full0.Set(1, 0, complex(0, -0.2))
	full0.Set(2, 2, 0.05)
	full0.Set(3, 3, -0.05)

	hp := spinblock.New(spinblock.NonCollinear, n)
	fullP := hp.Full()
	fullP.Set(0, 2, complex(0.4, 0.1))
	fullP.Set(1, 3, complex(-0.2, 0.3))
	fullP.Set(2, 1, complex(0.15, -0.05))

	hm := spinblock.New(spinblock.NonCollinear, n)
	require.NoError(t, spinblock.AdjointInto(hm, hp))

	tb := tbmodel.TBOperator{
		R:      []tbmodel.LatticeVector{{0, 0, 0}, {1, 0, 0}, {-1, 0, 0}},
		H:      []*spinblock.Matrix{h0, hp, hm},
		Layout: spinblock.NonCollinear,
	}

	out := spinblock.New(spinblock.NonCollinear, n)
	require.NoError(t, HKInto(out, tb, tbmodel.KPoint{X: 0.23, Y: 0.41, Z: -0.07}))

	dim := 2 * n
	full := out.Full()
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			assert.InDelta(t, real(full.At(i, j)), real(full.At(j, i)), 1e-12)
			assert.InDelta(t, imag(full.At(i, j)), -imag(full.At(j, i)), 1e-12)
		}
	}
}

func TestBuildKEigensProducesEigenvaluesAndPhases(t *testing.T) {
	tb := singleBandChain()
	kpoints := []tbmodel.KPoint{
		{X: 0, Y: 0, Z: 0},
		{X: 0.25, Y: 0, Z: 0},
		{X: -0.25, Y: 0, Z: 0},
		{X: 0.5, Y: 0, Z: 0},
	}
	kd, err := BuildKEigens(tb, kpoints, tbmodel.LatticeVector{I: 1, J: 0, K: 0})
	require.NoError(t, err)
	require.Len(t, kd.EigVals, len(kpoints))

	for k, kp := range kpoints {
		wantPhase := cmplx.Exp(complex(0, 2*math.Pi*kp.X))
		gotPhase := kd.Phases[k]
		assert.InDelta(t, real(wantPhase), real(gotPhase), 1e-9)
		assert.InDelta(t, imag(wantPhase), imag(gotPhase), 1e-9)
	}

	// up and down hoppings are identical, so Delta is zero.
	assert.InDelta(t, 0, real(kd.Delta.At(0, 0)), 1e-9)
}
