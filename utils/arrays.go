package utils

// Array5D is a flat, contiguous 5D array dimensioned (block, variable, k, j, i),
// the storage layout used for all cell-centered state in a MeshBlockPack.
type Array5D struct {
	Nmb, Nvar, N3, N2, N1 int
	D                     []float64
}

func NewArray5D(nmb, nvar, n3, n2, n1 int) (a Array5D) {
	a = Array5D{
		Nmb: nmb, Nvar: nvar, N3: n3, N2: n2, N1: n1,
		D: make([]float64, nmb*nvar*n3*n2*n1),
	}
	return
}

// Index flattens (m,n,k,j,i) to the backing slice position
func (a Array5D) Index(m, n, k, j, i int) int {
	return i + a.N1*(j+a.N2*(k+a.N3*(n+a.Nvar*m)))
}

func (a Array5D) At(m, n, k, j, i int) float64 {
	return a.D[a.Index(m, n, k, j, i)]
}

func (a Array5D) Set(m, n, k, j, i int, v float64) {
	a.D[a.Index(m, n, k, j, i)] = v
}

// Block returns the backing slice for block m, variable n, shared storage
func (a Array5D) Block(m, n int) []float64 {
	sz := a.N3 * a.N2 * a.N1
	off := sz * (n + a.Nvar*m)
	return a.D[off : off+sz]
}

func (a Array5D) Zero() {
	for i := range a.D {
		a.D[i] = 0
	}
}

func (a Array5D) Fill(v float64) {
	for i := range a.D {
		a.D[i] = v
	}
}

func (a Array5D) Copy() (b Array5D) {
	b = NewArray5D(a.Nmb, a.Nvar, a.N3, a.N2, a.N1)
	copy(b.D, a.D)
	return
}
