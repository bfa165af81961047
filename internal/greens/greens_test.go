package greens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wannierx/internal/interp"
	"wannierx/pkg/spinblock"
	"wannierx/pkg/tbmodel"
)

func TestIntegrateGkIntoSingleKZeroHamiltonian(t *testing.T) {
	h0 := spinblock.New(spinblock.Collinear, 1)
	tb := tbmodel.TBOperator{
		R:      []tbmodel.LatticeVector{{0, 0, 0}},
		H:      []*spinblock.Matrix{h0},
		Layout: spinblock.Collinear,
	}
	kpoints := []tbmodel.KPoint{{X: 0, Y: 0, Z: 0}}
	kd, err := interp.BuildKEigens(tb, kpoints, tbmodel.LatticeVector{})
	require.NoError(t, err)

	gout := spinblock.New(spinblock.Collinear, 1)
	scratch := NewScratch(spinblock.Collinear, 1)
	mu := 0.0
	omega := complex(2.0, 0.5)
	require.NoError(t, IntegrateGkInto(gout, omega, mu, kd, scratch))

	// Single k, zero Hamiltonian, unit eigenvector: G = 1/(mu+omega-0).
	want := 1 / (complex(mu, 0) + omega)
	got := gout.Block(spinblock.UU).At(0, 0)
	assert.InDelta(t, real(want), real(got), 1e-9)
	assert.InDelta(t, imag(want), imag(got), 1e-9)
}

func TestAssembleAllProducesOnePerOmega(t *testing.T) {
	h0 := spinblock.New(spinblock.Collinear, 1)
	h0.Block(spinblock.UU).Set(0, 0, -1)
	h0.Block(spinblock.DD).Set(0, 0, 1)
	tb := tbmodel.TBOperator{
		R:      []tbmodel.LatticeVector{{0, 0, 0}},
		H:      []*spinblock.Matrix{h0},
		Layout: spinblock.Collinear,
	}
	kpoints := []tbmodel.KPoint{{X: 0, Y: 0, Z: 0}, {X: 0.3, Y: 0, Z: 0}}
	kd, err := interp.BuildKEigens(tb, kpoints, tbmodel.LatticeVector{})
	require.NoError(t, err)

	omegaGrid := []complex128{complex(1, 0.1), complex(2, 0.1), complex(3, 0.1)}
	gs, err := AssembleAll(omegaGrid, kd, 0.0)
	require.NoError(t, err)
	require.Len(t, gs, len(omegaGrid))
	for _, g := range gs {
		require.NotNil(t, g)
		assert.Equal(t, spinblock.Collinear, g.Layout())
	}
}
