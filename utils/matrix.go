package utils

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is a thin wrapper over gonum's Dense that exposes the raw backing
// slice for use inside solver kernels, where At/Set call overhead matters.
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{M: m}
	return
}

func (m Matrix) Dims() (r, c int)        { return m.M.Dims() }
func (m Matrix) At(i, j int) float64     { return m.M.At(i, j) }
func (m Matrix) Set(i, j int, v float64) { m.M.Set(i, j, v) }

// Data returns the raw row-major backing slice
func (m Matrix) Data() []float64 {
	return m.M.RawMatrix().Data
}

// Row returns the backing slice of row i, shared with the matrix
func (m Matrix) Row(i int) []float64 {
	return m.M.RawRowView(i)
}

func (m Matrix) CopyFrom(A Matrix) Matrix {
	copy(m.Data(), A.Data())
	return m
}

func (m Matrix) Scale(a float64) Matrix {
	d := m.Data()
	for i := range d {
		d[i] *= a
	}
	return m
}

func (m Matrix) Max() (mx float64) {
	return mat.Max(m.M)
}

func (m Matrix) Min() (mn float64) {
	return mat.Min(m.M)
}
