// Package spinblock implements SpinBlockMatrix: a dense complex matrix type
// with two physical layouts (Collinear, NonCollinear) over a shared
// atom-indexed view API.
//
// Storage is row-major with a stride equal to the column count, matching the
// leading-dimension convention gonum's blas/cblas128 package expects for its
// General type — a View's underlying slice and stride are handed to
// cblas128.Gemm directly, with no copy or transpose. This is the opposite of
// BLAS/LAPACK's traditional Fortran column-major convention; gonum's Go
// ports (lapack/gonum, blas/cblas128) are written against row-major Go
// slices internally and document this choice, so no conversion layer is
// needed at the boundary. The convention is documented once, here.
package spinblock
