package exchange

import (
	"log"
	"math"

	"gonum.org/v1/gonum/mat"

	"wannierx/internal/greens"
	"wannierx/internal/interp"
	"wannierx/pkg/contour"
	"wannierx/pkg/kgrid"
	"wannierx/pkg/spinblock"
	"wannierx/pkg/tbmodel"
)

// meVPerHartree converts the intermediate Hartree-based contour integral
// into meV, with the sign convention that makes J>0 ferromagnetic.
const meVPerHartree = -1000.0 / (4 * math.Pi)

// numericalWarningRatio is the |Im|/|Re| threshold past which a contour
// integral's real part is small enough, relative to its imaginary part, to
// log a NumericalWarning diagnostic. This never aborts the calculation —
// it is a logged hint that the contour or k-grid may need refining for that
// pair.
const numericalWarningRatio = 1e6

// CalcExchanges is the sole public entry point: given a tight-binding
// operator, an atom catalog, the host cell, a chemical potential, a contour
// order override, and Options, it returns one ExchangeRecord per ordered
// atom pair that declares orbital ranges.
//
// order overrides opts.NOmegaH when positive; see DESIGN.md for why the
// entry point carries both a contour-order argument and an Options field for
// the same knob. Atoms lacking orbital metadata are silently excluded from
// every pair rather than causing an error.
func CalcExchanges(tb tbmodel.TBOperator, atoms []tbmodel.Atom, cell tbmodel.Cell, mu float64, order int, opts Options) ([]tbmodel.ExchangeRecord, error) {
	records := seedRecords(atoms, cell, opts)
	if len(records) == 0 {
		return records, nil
	}

	kpoints := kgrid.UniformShiftedGrid(opts.NK[0], opts.NK[1], opts.NK[2], opts.GammaCentered)
	kd, err := interp.BuildKEigens(tb, kpoints, opts.R)
	if err != nil {
		return nil, err
	}

	n := opts.NOmegaH
	if order > 0 {
		n = order
	}
	omegaGrid := contour.Semicircle(opts.OmegaH, opts.EMax, n, contour.DefaultP)

	gs, err := greens.AssembleAll(omegaGrid, kd, mu)
	if err != nil {
		return nil, err
	}

	for idx := range records {
		if err := fillRecordJ(&records[idx], atoms, kd.Delta, gs, omegaGrid, opts.SiteDiagonal); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// fillRecordJ evaluates jOmega at every contour energy, integrates each
// orbital-pair entry's series over the contour with IntegrateSimpson, and
// writes the imaginary part (scaled into meV) into rec.J.
func fillRecordJ(rec *tbmodel.ExchangeRecord, atoms []tbmodel.Atom, delta *spinblock.Delta, gs []*spinblock.Matrix, omegaGrid []complex128, siteDiagonal bool) error {
	upI := atoms[rec.AtomI].Up
	upJ := atoms[rec.AtomJ].Up
	ni, nj := rec.J.Dims()
	n := len(omegaGrid)

	series := make([]*mat.CDense, n)
	for w := 0; w < n; w++ {
		series[w] = jOmega(*upI, *upJ, delta, gs[w], siteDiagonal)
	}

	vals := make([]complex128, n)
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			if siteDiagonal && i != j {
				continue
			}
			for w := 0; w < n; w++ {
				vals[w] = series[w].At(i, j)
			}
			integral := contour.IntegrateSimpson(vals, omegaGrid)
			if re := math.Abs(real(integral)); re > 0 && math.Abs(imag(integral)) > numericalWarningRatio*re {
				log.Printf("exchange: NumericalWarning: pair %d->%d orbital (%d,%d): |Im| dominates |Re| by >%.0e",
					rec.AtomI, rec.AtomJ, i, j, numericalWarningRatio)
			}
			rec.J.Set(i, j, meVPerHartree*imag(integral))
		}
	}
	return nil
}

func seedRecords(atoms []tbmodel.Atom, cell tbmodel.Cell, opts Options) []tbmodel.ExchangeRecord {
	var out []tbmodel.ExchangeRecord
	for a := range atoms {
		if atoms[a].Up == nil {
			continue
		}
		for b := range atoms {
			if atoms[b].Up == nil {
				continue
			}
			ni, nj := atoms[a].Up.Len(), atoms[b].Up.Len()
			out = append(out, tbmodel.ExchangeRecord{
				AtomI:   a,
				AtomJ:   b,
				SymbolI: atoms[a].Symbol,
				SymbolJ: atoms[b].Symbol,
				PosI:    atoms[a].Position,
				PosJ:    cell.Translate(atoms[b].Position, opts.R),
				R:       opts.R,
				J:       mat.NewDense(ni, nj, nil),
			})
		}
	}
	return out
}
