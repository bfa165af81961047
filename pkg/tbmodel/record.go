package tbmodel

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"

	"wannierx/internal/version"
)

// ExchangeRecord is one inter-site magnetic exchange coupling: the two
// atoms, the lattice displacement between them, and the real-valued J
// matrix over their orbital subspaces.
type ExchangeRecord struct {
	AtomI, AtomJ int
	SymbolI      string
	SymbolJ      string
	PosI, PosJ   [3]float64
	R            LatticeVector
	J            *mat.Dense
}

// Distance returns the Euclidean distance between the two atoms after R
// has been applied to PosJ.
func (r ExchangeRecord) Distance() float64 {
	var sum float64
	for d := 0; d < 3; d++ {
		diff := r.PosJ[d] - r.PosI[d]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// SumJ returns the sum of all entries of the J matrix.
func (r ExchangeRecord) SumJ() float64 {
	if r.J == nil {
		return 0
	}
	return mat.Sum(r.J)
}

// FormatRecords writes a version-stamped header followed by one line per
// record: atom symbols, positions, pair distance, and the sum of J, as
// plain tabular text.
func FormatRecords(w io.Writer, records []ExchangeRecord) error {
	if _, err := fmt.Fprintf(w, "# wannierx %s (%s)\n", version.Version, version.GitCommit); err != nil {
		return err
	}
	for _, r := range records {
		_, err := fmt.Fprintf(w, "%s(%d) -- %s(%d)  R=(%d,%d,%d)  posI=(%.4f,%.4f,%.4f)  posJ=(%.4f,%.4f,%.4f)  d=%8.4f  sumJ=%+10.5f meV\n",
			r.SymbolI, r.AtomI, r.SymbolJ, r.AtomJ,
			r.R.I, r.R.J, r.R.K,
			r.PosI[0], r.PosI[1], r.PosI[2],
			r.PosJ[0], r.PosJ[1], r.PosJ[2],
			r.Distance(), r.SumJ())
		if err != nil {
			return err
		}
	}
	return nil
}
