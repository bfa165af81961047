package spinblock

import (
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
)

func checkConformable(op string, ms ...*Matrix) error {
	for i := 1; i < len(ms); i++ {
		if ms[i].layout != ms[0].layout {
			return &LayoutMismatchError{Op: op}
		}
		if ms[i].n != ms[0].n {
			return &ShapeMismatchError{Op: op, Detail: "dimension mismatch"}
		}
	}
	return nil
}

func binaryOp(op string, c, a, b *Matrix, f func(x, y complex128) complex128) error {
	if err := checkConformable(op, a, b, c); err != nil {
		return err
	}
	for i := range a.data {
		c.data[i] = f(a.data[i], b.data[i])
	}
	return nil
}

// Add computes c = a + b elementwise. a, b, and c must share a layout and
// dimension.
func Add(c, a, b *Matrix) error {
	return binaryOp("Add", c, a, b, func(x, y complex128) complex128 { return x + y })
}

// Sub computes c = a - b elementwise.
func Sub(c, a, b *Matrix) error {
	return binaryOp("Sub", c, a, b, func(x, y complex128) complex128 { return x - y })
}

// Div computes c = a / b elementwise.
func Div(c, a, b *Matrix) error {
	return binaryOp("Div", c, a, b, func(x, y complex128) complex128 { return x / y })
}

// CopyInto copies src's entries into dst elementwise over the full storage
// buffer. dst and src must share a layout and dimension.
func CopyInto(dst, src *Matrix) error {
	if err := checkConformable("CopyInto", dst, src); err != nil {
		return err
	}
	copy(dst.data, src.data)
	return nil
}

// ScaleAddInto computes out += s*in elementwise over the full storage
// buffer. Safe across layouts: entries implicitly zero under a layout's
// convention (Collinear's off-diagonal spin blocks) stay zero since s*0=0.
func ScaleAddInto(out, in *Matrix, s complex128) error {
	if err := checkConformable("ScaleAddInto", out, in); err != nil {
		return err
	}
	for i := range in.data {
		out.data[i] += s * in.data[i]
	}
	return nil
}

// Multiply computes c = a * b as a spin-aware matrix product: for
// Collinear matrices, the up and down N×N blocks are multiplied
// independently; for NonCollinear, a single dense 2N×2N GEMM is performed.
// Mixed-layout operands fail with LayoutMismatchError.
func Multiply(c, a, b *Matrix) error {
	if err := checkConformable("Multiply", a, b, c); err != nil {
		return err
	}
	if a.layout == Collinear {
		gemmFull(a.Block(UU).(*View), b.Block(UU).(*View), c.Block(UU).(*View))
		gemmFull(a.Block(DD).(*View), b.Block(DD).(*View), c.Block(DD).(*View))
		return nil
	}
	gemmFull(a.Full(), b.Full(), c.Full())
	return nil
}

func gemmFull(a, b, c *View) {
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, a.General(), b.General(), 0, c.General())
}

// AdjointInto computes out = in^dagger (conjugate transpose), preserving
// block semantics: for Collinear matrices the up and down blocks are
// transposed independently in place within their own columns; for
// NonCollinear, the whole 2N×2N buffer is conjugate-transposed.
func AdjointInto(out, in *Matrix) error {
	if out.layout != in.layout {
		return &LayoutMismatchError{Op: "AdjointInto"}
	}
	if out.n != in.n {
		return &ShapeMismatchError{Op: "AdjointInto", Detail: "dimension mismatch"}
	}
	n := in.n
	if in.layout == Collinear {
		for _, colOff := range [2]int{0, n} {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					out.data[j*out.cols+colOff+i] = cmplx.Conj(in.data[i*in.cols+colOff+j])
				}
			}
		}
		return nil
	}
	dim := 2 * n
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			out.data[j*out.cols+i] = cmplx.Conj(in.data[i*in.cols+j])
		}
	}
	return nil
}
