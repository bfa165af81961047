package eigen

import "fmt"

// LapackError reports a failure of the underlying Hermitian eigensolver.
// gonum's EigenSym.Factorize only reports success or failure, not a LAPACK
// info code, so Workspace sets Info to -1 on every failure.
type LapackError struct {
	Info int
}

func (e *LapackError) Error() string {
	return fmt.Sprintf("eigen: Hermitian eigensolver failed (info=%d)", e.Info)
}
