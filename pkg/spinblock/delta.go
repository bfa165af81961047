package spinblock

// Delta is the on-site exchange splitting Δ = H_up − H_down: a plain N×N
// complex matrix in orbital space, with no spin structure of its own (the
// spin index has already been collapsed by the subtraction). Only its
// diagonal entries are physically meaningful to the exchange kernel, but it
// is carried as a full matrix because TBInterpolator accumulates it as one.
type Delta struct {
	n    int
	data []complex128
}

// NewDelta allocates a zero N×N Delta.
func NewDelta(n int) *Delta {
	return &Delta{n: n, data: make([]complex128, n*n)}
}

// N returns the orbital dimension.
func (d *Delta) N() int { return d.n }

// At returns entry (i, j).
func (d *Delta) At(i, j int) complex128 { return d.data[i*d.n+j] }

// Set assigns entry (i, j).
func (d *Delta) Set(i, j int, v complex128) { d.data[i*d.n+j] = v }

// AddAt accumulates v into entry (i, j).
func (d *Delta) AddAt(i, j int, v complex128) { d.data[i*d.n+j] += v }

// Scale multiplies every entry by s in place.
func (d *Delta) Scale(s complex128) {
	for i := range d.data {
		d.data[i] *= s
	}
}

// AddFrom accumulates other into d elementwise; both must share N.
func (d *Delta) AddFrom(other *Delta) {
	for i := range d.data {
		d.data[i] += other.data[i]
	}
}

// Diag returns a copy of the diagonal entries over the half-open range
// [start, end).
func (d *Delta) Diag(start, end int) []complex128 {
	out := make([]complex128, end-start)
	for i := start; i < end; i++ {
		out[i-start] = d.At(i, i)
	}
	return out
}

// Trace returns the sum of diagonal entries over [start, end).
func (d *Delta) Trace(start, end int) complex128 {
	var s complex128
	for i := start; i < end; i++ {
		s += d.At(i, i)
	}
	return s
}

// FromOnsiteBlocks builds Δ = up − down from a SpinBlockMatrix's UU and DD
// blocks (the accumulated H_k sum over the k-grid).
func FromOnsiteBlocks(m *Matrix) *Delta {
	n := m.N()
	d := NewDelta(n)
	up := m.Block(UU)
	down := m.Block(DD)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d.Set(i, j, up.At(i, j)-down.At(i, j))
		}
	}
	return d
}
