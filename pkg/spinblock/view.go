package spinblock

import "gonum.org/v1/gonum/blas/cblas128"

// BlockView is a read/write window into a Matrix's storage, addressed by
// local (row, col) indices relative to the window's own origin. It never
// copies: a rectangle into a parent buffer, not a new allocation.
type BlockView interface {
	Rows() int
	Cols() int
	At(i, j int) complex128
	Set(i, j int, v complex128)
}

// View is the contiguous-stride BlockView implementation, directly
// convertible to a cblas128.General for BLAS calls.
type View struct {
	m                  *Matrix
	rowOff, colOff     int
	rows, cols         int
}

func (v *View) Rows() int { return v.rows }
func (v *View) Cols() int { return v.cols }

func (v *View) At(i, j int) complex128 {
	return v.m.data[(v.rowOff+i)*v.m.cols+(v.colOff+j)]
}

func (v *View) Set(i, j int, val complex128) {
	v.m.data[(v.rowOff+i)*v.m.cols+(v.colOff+j)] = val
}

// General returns the cblas128 view of the same window, for use with
// cblas128.Gemm and friends.
func (v *View) General() cblas128.General {
	return cblas128.General{
		Rows:   v.rows,
		Cols:   v.cols,
		Stride: v.m.cols,
		Data:   v.m.data[v.rowOff*v.m.cols+v.colOff:],
	}
}

// zeroView is the all-zero BlockView returned for spin-off-diagonal blocks
// of a Collinear matrix, where no storage exists because the block is
// implicitly zero.
type zeroView struct{ rows, cols int }

func (z zeroView) Rows() int                   { return z.rows }
func (z zeroView) Cols() int                   { return z.cols }
func (z zeroView) At(i, j int) complex128      { return 0 }
func (z zeroView) Set(i, j int, v complex128)  {}

// quadView composes up to four BlockViews into the full 2×2 spin block
// addressed by SpinSel All. It is read/write but, unlike View, is not
// BLAS-contiguous and cannot back a Gemm call directly.
type quadView struct {
	uu, ud, du, dd BlockView
	nRowsA, nColsB int // size of the UU quadrant, used to route indices
}

func (q *quadView) Rows() int { return q.uu.Rows() + q.du.Rows() }
func (q *quadView) Cols() int { return q.uu.Cols() + q.ud.Cols() }

func (q *quadView) quadrant(i, j int) (BlockView, int, int) {
	switch {
	case i < q.nRowsA && j < q.nColsB:
		return q.uu, i, j
	case i < q.nRowsA:
		return q.ud, i, j - q.nColsB
	case j < q.nColsB:
		return q.du, i - q.nRowsA, j
	default:
		return q.dd, i - q.nRowsA, j - q.nColsB
	}
}

func (q *quadView) At(i, j int) complex128 {
	block, li, lj := q.quadrant(i, j)
	return block.At(li, lj)
}

func (q *quadView) Set(i, j int, v complex128) {
	block, li, lj := q.quadrant(i, j)
	block.Set(li, lj, v)
}

// Block returns the whole-matrix view of the given spin selector — the
// AtomView analogue over the full orbital range [0, N).
func (m *Matrix) Block(sel SpinSel) BlockView {
	return m.AtomView(0, m.n, 0, m.n, sel)
}

// Full returns the view over the matrix's entire storage buffer: N×2N for
// Collinear (the two independent blocks packed side by side, not one
// linear-algebra object) or 2N×2N for NonCollinear (the full spinor
// matrix).
func (m *Matrix) Full() *View {
	return &View{m, 0, 0, m.rows, m.cols}
}

// AtomView returns a view over the orbital rows [aStart, aEnd) and columns
// [bStart, bEnd), restricted to the requested spin block. For a Collinear
// matrix, UD and DU are always the zero view, regardless of range.
func (m *Matrix) AtomView(aStart, aEnd, bStart, bEnd int, sel SpinSel) BlockView {
	rows := aEnd - aStart
	cols := bEnd - bStart
	n := m.n
	if m.layout == Collinear {
		switch sel {
		case UU:
			return &View{m, aStart, bStart, rows, cols}
		case DD:
			return &View{m, aStart, n + bStart, rows, cols}
		case UD, DU:
			return zeroView{rows, cols}
		default: // All
			return &quadView{
				uu:     &View{m, aStart, bStart, rows, cols},
				ud:     zeroView{rows, cols},
				du:     zeroView{rows, cols},
				dd:     &View{m, aStart, n + bStart, rows, cols},
				nRowsA: rows,
				nColsB: cols,
			}
		}
	}
	// NonCollinear
	switch sel {
	case UU:
		return &View{m, aStart, bStart, rows, cols}
	case DD:
		return &View{m, n + aStart, n + bStart, rows, cols}
	case UD:
		return &View{m, aStart, n + bStart, rows, cols}
	case DU:
		return &View{m, n + aStart, bStart, rows, cols}
	default: // All
		return &quadView{
			uu:     &View{m, aStart, bStart, rows, cols},
			ud:     &View{m, aStart, n + bStart, rows, cols},
			du:     &View{m, n + aStart, bStart, rows, cols},
			dd:     &View{m, n + aStart, n + bStart, rows, cols},
			nRowsA: rows,
			nColsB: cols,
		}
	}
}

// Up returns the up-up block over the full orbital range.
func (m *Matrix) Up() BlockView { return m.Block(UU) }

// Down returns the down-down block over the full orbital range.
func (m *Matrix) Down() BlockView { return m.Block(DD) }

// UpDown returns the up-down block over the full orbital range (always zero
// for Collinear).
func (m *Matrix) UpDown() BlockView { return m.Block(UD) }

// DownUp returns the down-up block over the full orbital range (always zero
// for Collinear).
func (m *Matrix) DownUp() BlockView { return m.Block(DU) }
