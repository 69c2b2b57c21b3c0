package hydro

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gomhd/bvals"
	"github.com/notargets/gomhd/mesh"
	"github.com/notargets/gomhd/utils"
)

func singleRankHydro(t *testing.T, rc mesh.RegionCells, nb1, nb2, nb3 int,
	eos EOSData, recon ReconstructionMethod, rsolver RiemannSolver) *Hydro {
	m0, err := mesh.NewMesh(rc, nb1, nb2, nb3, 1, true)
	require.NoError(t, err)
	fab := bvals.NewFabric(1, 0)
	h, err := New(m0.NewPack(0), fab.Topo(0), eos, recon, rsolver, 2)
	require.NoError(t, err)
	return h
}

// setUniform writes one primitive state into every cell, ghosts included, so
// no exchange is needed before differencing
func setUniform(h *Hydro, d, vx, vy, vz, p float64) {
	vals := []float64{d, vx, vy, vz, p}
	for m := 0; m < h.W0.Nmb; m++ {
		for n := 0; n < h.NHydro; n++ {
			b := h.W0.Block(m, n)
			for i := range b {
				b[i] = vals[n]
			}
		}
	}
}

func TestUniformStateZeroDivergence(t *testing.T) {
	// a uniform state must produce identically zero flux divergence for
	// every reconstruction/solver combination, not just a small one
	rc := mesh.NewRegionCells(8, 6, 4, 3, 1./8., 1./6., 1./4.)
	eos := NewAdiabaticEOS(5. / 3.)
	for _, recon := range []ReconstructionMethod{RECON_DonorCell, RECON_PiecewiseLinear, RECON_PiecewiseParabolic} {
		for _, rsolver := range []RiemannSolver{RSOLVER_Advect, RSOLVER_LLF, RSOLVER_HLLC, RSOLVER_Roe} {
			h := singleRankHydro(t, rc, 1, 1, 1, eos, recon, rsolver)
			setUniform(h, 1.3, 0.4, -0.2, 0.1, 0.9)
			h.DivFlux()
			indcs := rc
			for n := 0; n < h.NHydro; n++ {
				for k := indcs.Ks; k <= indcs.Ke; k++ {
					for j := indcs.Js; j <= indcs.Je; j++ {
						for i := indcs.Is; i <= indcs.Ie; i++ {
							assert.Equal(t, 0., h.DivF.At(0, n, k, j, i),
								"%s/%s n=%d k=%d j=%d i=%d", recon.Print(), rsolver.Print(), n, k, j, i)
						}
					}
				}
			}
		}
	}
}

func TestLinearProfileDerivative(t *testing.T) {
	// donor cell + pure advection on a linear density ramp gives the one
	// sided difference of the exact flux
	rc := mesh.NewRegionCells(16, 1, 1, 2, 1./16., 1., 1.)
	eos := NewAdiabaticEOS(5. / 3.)
	h := singleRankHydro(t, rc, 1, 1, 1, eos, RECON_DonorCell, RSOLVER_Advect)

	pp := hPack(h)
	for i := 0; i < rc.Ncells1(); i++ {
		x1, _, _ := pp.Mesh.CellCenter(0, i, 0, 0)
		h.W0.Set(0, IDN, 0, 0, i, 1.0+0.1*x1)
		h.W0.Set(0, IVX, 0, 0, i, 1.0)
		h.W0.Set(0, IPR, 0, 0, i, 1.0)
	}
	h.DivFlux()
	for i := rc.Is; i <= rc.Ie; i++ {
		// d(rho*v)/dx = 0.1 with v = 1
		assert.InDelta(t, 0.1, h.DivF.At(0, IDN, 0, 0, i), 1.e-10)
		for n := 1; n < h.NHydro; n++ {
			assert.Equal(t, 0., h.DivF.At(0, n, 0, 0, i))
		}
	}
}

func TestSweepOrderSymmetry(t *testing.T) {
	// a state symmetric under x1<->x2 swap must produce a bitwise symmetric
	// flux divergence; the sliding window accumulates both faces of a cell in
	// one statement so the summation order is identical in every direction
	rc := mesh.NewRegionCells(8, 8, 1, 2, 1./8., 1./8., 1.)
	eos := NewAdiabaticEOS(5. / 3.)
	h := singleRankHydro(t, rc, 1, 1, 1, eos, RECON_PiecewiseLinear, RSOLVER_LLF)

	g := func(c int) float64 { return 1.0 + 0.3*math.Sin(float64(c)) }
	for j := 0; j < rc.Ncells2(); j++ {
		for i := 0; i < rc.Ncells1(); i++ {
			// build every value from the single commutative product g(i)*g(j)
			// so the inputs at (j,i) and (i,j) are bitwise equal even when the
			// compiler contracts multiply-add chains into fused instructions
			gg := g(i) * g(j)
			s := 0.3 + 0.1*gg
			h.W0.Set(0, IDN, 0, j, i, 1.0+0.25*gg)
			h.W0.Set(0, IVX, 0, j, i, s)
			h.W0.Set(0, IVY, 0, j, i, s)
			h.W0.Set(0, IVZ, 0, j, i, 0.0)
			h.W0.Set(0, IPR, 0, j, i, 0.9+0.05*gg)
		}
	}
	for j := 0; j < rc.Ncells2(); j++ {
		for i := 0; i < rc.Ncells1(); i++ {
			assert.Equal(t, h.W0.At(0, IDN, 0, j, i), h.W0.At(0, IDN, 0, i, j),
				"input asymmetric at j=%d i=%d", j, i)
		}
	}
	h.DivFlux()
	for j := rc.Js; j <= rc.Je; j++ {
		for i := rc.Is; i <= rc.Ie; i++ {
			assert.Equal(t, h.DivF.At(0, IDN, 0, j, i), h.DivF.At(0, IDN, 0, i, j),
				"density j=%d i=%d", j, i)
			assert.Equal(t, h.DivF.At(0, IM1, 0, j, i), h.DivF.At(0, IM2, 0, i, j),
				"momentum j=%d i=%d", j, i)
		}
	}
}

func TestSolverConsistency(t *testing.T) {
	// equal left and right states must reproduce the exact physical flux
	var (
		eos           = NewAdiabaticEOS(1.4)
		d, vx, vy, vz = 1.7, 0.5, -0.3, 0.2
		p             = 2.1
		n             = 6
		il, iu        = 1, 4
	)
	e := p/(eos.Gamma-1.) + 0.5*d*(vx*vx+vy*vy+vz*vz)
	want := []float64{d * vx, d*vx*vx + p, d * vx * vy, d * vx * vz, (e + p) * vx}

	mkState := func() utils.Matrix {
		ws := utils.NewMatrix(5, n)
		for i := 0; i < n; i++ {
			ws.Set(IDN, i, d)
			ws.Set(IVX, i, vx)
			ws.Set(IVY, i, vy)
			ws.Set(IVZ, i, vz)
			ws.Set(IPR, i, p)
		}
		return ws
	}
	type solver func(EOSData, int, int, int, utils.Matrix, utils.Matrix, utils.Matrix)
	for name, fn := range map[string]solver{"llf": LLF, "hllc": HLLC, "roe": Roe} {
		wl, wr := mkState(), mkState()
		flx := utils.NewMatrix(5, n)
		fn(eos, il, iu, IVX, wl, wr, flx)
		for i := il; i <= iu; i++ {
			for v := 0; v < 5; v++ {
				assert.InDelta(t, want[v], flx.At(v, i), 1.e-14, "%s v=%d i=%d", name, v, i)
			}
		}
	}

	// advect carries only the density row
	wl, wr := mkState(), mkState()
	flx := utils.NewMatrix(5, n)
	Advect(eos, il, iu, IVX, wl, wr, flx)
	for i := il; i <= iu; i++ {
		assert.InDelta(t, d*vx, flx.At(IDN, i), 1.e-14)
		for v := 1; v < 5; v++ {
			assert.Equal(t, 0., flx.At(v, i))
		}
	}
}

func TestEOSRoundTrip(t *testing.T) {
	for _, eos := range []EOSData{NewAdiabaticEOS(5. / 3.), NewIsothermalEOS(0.7)} {
		nvar := eos.NVars()
		w := utils.NewArray5D(2, nvar, 1, 1, 8)
		for m := 0; m < 2; m++ {
			for i := 0; i < 8; i++ {
				w.Set(m, IDN, 0, 0, i, 1.0+0.1*float64(i+m))
				w.Set(m, IVX, 0, 0, i, 0.3*float64(i-4))
				w.Set(m, IVY, 0, 0, i, -0.2*float64(i))
				w.Set(m, IVZ, 0, 0, i, 0.05*float64(m+i))
				if eos.IsIdeal {
					w.Set(m, IPR, 0, 0, i, 0.5+0.05*float64(i))
				}
			}
		}
		u := utils.NewArray5D(2, nvar, 1, 1, 8)
		w2 := utils.NewArray5D(2, nvar, 1, 1, 8)
		eos.PrimToCons(w, u)
		eos.ConsToPrim(u, w2)
		for i := range w.D {
			assert.InDelta(t, w.D[i], w2.D[i], 1.e-13)
		}
	}
}

func TestEOSFloors(t *testing.T) {
	eos := NewAdiabaticEOS(5. / 3.)
	u := utils.NewArray5D(1, 5, 1, 1, 2)
	w := utils.NewArray5D(1, 5, 1, 1, 2)
	// negative density and internal energy must come out floored
	u.Set(0, IDN, 0, 0, 0, -1.)
	u.Set(0, IEN, 0, 0, 0, -1.)
	eos.ConsToPrim(u, w)
	assert.Equal(t, eos.DensityFloor, w.At(0, IDN, 0, 0, 0))
	assert.Equal(t, eos.PressureFloor, w.At(0, IPR, 0, 0, 0))
	// the conserved state is repaired too
	assert.Equal(t, eos.DensityFloor, u.At(0, IDN, 0, 0, 0))
	assert.True(t, u.At(0, IEN, 0, 0, 0) > 0.)
}

func TestNewDt(t *testing.T) {
	rc := mesh.NewRegionCells(8, 8, 1, 2, 1./8., 1./8., 1.)
	eos := NewAdiabaticEOS(5. / 3.)
	h := singleRankHydro(t, rc, 1, 1, 1, eos, RECON_PiecewiseLinear, RSOLVER_LLF)
	setUniform(h, 1.0, 0.5, -0.25, 0.0, 0.6)
	cs := math.Sqrt(eos.Gamma * 0.6 / 1.0)
	want := 0.3 * math.Min(rc.Dx1/(0.5+cs), rc.Dx2/(0.25+cs))
	assert.InDelta(t, want, h.NewDt(0.3), 1.e-14)
}

func TestStrategies(t *testing.T) {
	assert.Equal(t, RECON_PiecewiseLinear, NewReconstructionMethod("plm"))
	assert.Equal(t, RECON_DonorCell, NewReconstructionMethod("dc"))
	assert.Equal(t, 2, RECON_PiecewiseParabolic.GhostDepth())
	assert.Panics(t, func() { NewReconstructionMethod("weno5") })

	assert.Equal(t, RSOLVER_HLLC, NewRiemannSolver("hllc"))
	assert.Equal(t, RSOLVER_Roe, NewRiemannSolver("roe"))
	assert.Panics(t, func() { NewRiemannSolver("exact") })
}

func TestConfigurationValidation(t *testing.T) {
	// ppm needs a deeper ghost frame than the minimum exchange width
	rc := mesh.NewRegionCells(8, 1, 1, 2, 1./8., 1., 1.)
	m0, err := mesh.NewMesh(rc, 1, 1, 1, 1, true)
	require.NoError(t, err)
	fab := bvals.NewFabric(1, 0)
	_, err = New(m0.NewPack(0), fab.Topo(0), NewAdiabaticEOS(5./3.),
		RECON_PiecewiseParabolic, RSOLVER_LLF, 1)
	assert.Error(t, err)

	// contact-resolving solvers have no isothermal form
	_, err = New(m0.NewPack(0), fab.Topo(0), NewIsothermalEOS(1.),
		RECON_DonorCell, RSOLVER_HLLC, 1)
	assert.Error(t, err)
	_, err = New(m0.NewPack(0), fab.Topo(0), NewIsothermalEOS(1.),
		RECON_DonorCell, RSOLVER_Roe, 1)
	assert.Error(t, err)

	// isothermal advection is fine
	h, err := New(m0.NewPack(0), fab.Topo(0), NewIsothermalEOS(1.),
		RECON_DonorCell, RSOLVER_LLF, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, h.NHydro)
}

// hPack reaches the pack backing a Hydro for test geometry lookups
func hPack(h *Hydro) *mesh.MeshBlockPack { return h.pack }
