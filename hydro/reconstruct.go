package hydro

import (
	"github.com/notargets/gomhd/utils"
)

// Reconstruction kernels estimate left/right states at cell interfaces along
// one pencil. The X1 variants fill wl(n,i+1) and wr(n,i) for i in [il,iu];
// the X2/X3 variants fill wlP1 with the left state at the NEXT interface
// (j+1 or k+1) and wr with the right state at the current one, which is what
// the sliding-window sweep in DivFlux consumes.

func DonorCellX1(a utils.Array5D, m, k, j, il, iu int, wl, wr utils.Matrix) {
	nvar := a.Nvar
	for n := 0; n < nvar; n++ {
		q := row(a, m, n, k, j)
		wln, wrn := wl.Row(n), wr.Row(n)
		for i := il; i <= iu; i++ {
			wln[i+1] = q[i]
			wrn[i] = q[i]
		}
	}
}

func DonorCellX2(a utils.Array5D, m, k, j, il, iu int, wlP1, wr utils.Matrix) {
	nvar := a.Nvar
	for n := 0; n < nvar; n++ {
		q := row(a, m, n, k, j)
		wln, wrn := wlP1.Row(n), wr.Row(n)
		for i := il; i <= iu; i++ {
			wln[i] = q[i]
			wrn[i] = q[i]
		}
	}
}

func DonorCellX3(a utils.Array5D, m, k, j, il, iu int, wlP1, wr utils.Matrix) {
	DonorCellX2(a, m, k, j, il, iu, wlP1, wr)
}

// PiecewiseLinearX1 uses the monotonized van Leer slope
func PiecewiseLinearX1(a utils.Array5D, m, k, j, il, iu int, wl, wr utils.Matrix) {
	nvar := a.Nvar
	for n := 0; n < nvar; n++ {
		q := row(a, m, n, k, j)
		wln, wrn := wl.Row(n), wr.Row(n)
		for i := il; i <= iu; i++ {
			dql := q[i] - q[i-1]
			dqr := q[i+1] - q[i]
			dqm := mcSlope(dql, dqr)
			wln[i+1] = q[i] + 0.5*dqm
			wrn[i] = q[i] - 0.5*dqm
		}
	}
}

func PiecewiseLinearX2(a utils.Array5D, m, k, j, il, iu int, wlP1, wr utils.Matrix) {
	nvar := a.Nvar
	for n := 0; n < nvar; n++ {
		qm1 := row(a, m, n, k, j-1)
		q := row(a, m, n, k, j)
		qp1 := row(a, m, n, k, j+1)
		wln, wrn := wlP1.Row(n), wr.Row(n)
		for i := il; i <= iu; i++ {
			dqm := mcSlope(q[i]-qm1[i], qp1[i]-q[i])
			wln[i] = q[i] + 0.5*dqm
			wrn[i] = q[i] - 0.5*dqm
		}
	}
}

func PiecewiseLinearX3(a utils.Array5D, m, k, j, il, iu int, wlP1, wr utils.Matrix) {
	nvar := a.Nvar
	for n := 0; n < nvar; n++ {
		qm1 := row(a, m, n, k-1, j)
		q := row(a, m, n, k, j)
		qp1 := row(a, m, n, k+1, j)
		wln, wrn := wlP1.Row(n), wr.Row(n)
		for i := il; i <= iu; i++ {
			dqm := mcSlope(q[i]-qm1[i], qp1[i]-q[i])
			wln[i] = q[i] + 0.5*dqm
			wrn[i] = q[i] - 0.5*dqm
		}
	}
}

// mcSlope is the monotonized central limiter: zero at extrema, else the
// harmonic-mean slope, which keeps reconstructed states bounded by the
// neighboring cell averages.
func mcSlope(dql, dqr float64) float64 {
	dq2 := dql * dqr
	if dq2 <= 0 {
		return 0
	}
	return 2.0 * dq2 / (dql + dqr)
}

// PiecewiseParabolicX1 is fourth-order interface interpolation with the
// classic monotonicity constraints; the stencil reaches two cells past the
// loop index, so it needs Ng >= 3.
func PiecewiseParabolicX1(a utils.Array5D, m, k, j, il, iu int, wl, wr utils.Matrix) {
	nvar := a.Nvar
	for n := 0; n < nvar; n++ {
		q := row(a, m, n, k, j)
		wln, wrn := wl.Row(n), wr.Row(n)
		for i := il; i <= iu; i++ {
			qlv, qrv := ppmFaces(q[i-2], q[i-1], q[i], q[i+1], q[i+2])
			wln[i+1] = qrv
			wrn[i] = qlv
		}
	}
}

func PiecewiseParabolicX2(a utils.Array5D, m, k, j, il, iu int, wlP1, wr utils.Matrix) {
	nvar := a.Nvar
	for n := 0; n < nvar; n++ {
		qm2 := row(a, m, n, k, j-2)
		qm1 := row(a, m, n, k, j-1)
		q := row(a, m, n, k, j)
		qp1 := row(a, m, n, k, j+1)
		qp2 := row(a, m, n, k, j+2)
		wln, wrn := wlP1.Row(n), wr.Row(n)
		for i := il; i <= iu; i++ {
			qlv, qrv := ppmFaces(qm2[i], qm1[i], q[i], qp1[i], qp2[i])
			wln[i] = qrv
			wrn[i] = qlv
		}
	}
}

func PiecewiseParabolicX3(a utils.Array5D, m, k, j, il, iu int, wlP1, wr utils.Matrix) {
	nvar := a.Nvar
	for n := 0; n < nvar; n++ {
		qm2 := row(a, m, n, k-2, j)
		qm1 := row(a, m, n, k-1, j)
		q := row(a, m, n, k, j)
		qp1 := row(a, m, n, k+1, j)
		qp2 := row(a, m, n, k+2, j)
		wln, wrn := wlP1.Row(n), wr.Row(n)
		for i := il; i <= iu; i++ {
			qlv, qrv := ppmFaces(qm2[i], qm1[i], q[i], qp1[i], qp2[i])
			wln[i] = qrv
			wrn[i] = qlv
		}
	}
}

// ppmFaces returns the limited left/right face values of the center cell
func ppmFaces(qm2, qm1, q0, qp1, qp2 float64) (qlv, qrv float64) {
	qlv = (7.0*(qm1+q0) - (qm2 + qp1)) / 12.0
	qrv = (7.0*(q0+qp1) - (qm1 + qp2)) / 12.0

	dqfm := q0 - qlv
	dqfp := qrv - q0
	if dqfm*dqfp <= 0 { // local extremum, flatten the parabola
		qlv = q0
		qrv = q0
		return
	}
	if dqfm*dqfm >= 4.0*dqfp*dqfp {
		qlv = q0 - 2.0*dqfp
	}
	if dqfp*dqfp >= 4.0*dqfm*dqfm {
		qrv = q0 + 2.0*dqfm
	}
	return
}

// row returns the i-pencil of (m,n,k,j), shared storage
func row(a utils.Array5D, m, n, k, j int) []float64 {
	off := a.Index(m, n, k, j, 0)
	return a.D[off : off+a.N1]
}
