// Package hydro advances the compressible Euler equations on a MeshBlockPack
// with a finite-volume Godunov scheme: reconstruct interface states, solve
// the Riemann problem at every face, difference the fluxes.
package hydro

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/notargets/gomhd/bvals"
	"github.com/notargets/gomhd/mesh"
	"github.com/notargets/gomhd/tasks"
	"github.com/notargets/gomhd/utils"
)

type Hydro struct {
	pack *mesh.MeshBlockPack

	NHydro int
	PEOS   EOSData

	ReconMethod ReconstructionMethod
	RSolver     RiemannSolver

	// U0 conserved, W0 primitive, both over interior+ghost cells; U1 is the
	// integrator register holding the step-start state; DivF is owned and
	// overwritten by DivFlux within each stage.
	U0, U1, W0, DivF utils.Array5D

	BVals *bvals.BoundaryValues

	ParallelDegree int
}

// New builds the hydro module for a pack, allocating state arrays and the
// boundary buffers. procLimit caps goroutine fan-out (0 = NumCPU).
func New(pp *mesh.MeshBlockPack, topo *bvals.Topology, eos EOSData,
	recon ReconstructionMethod, rsolver RiemannSolver, procLimit int) (h *Hydro, err error) {
	var (
		indcs = pp.Mesh.Indcs
	)
	if indcs.Ng < recon.GhostDepth()+1 || indcs.Ng < 2 {
		err = fmt.Errorf("%s reconstruction needs at least %d ghost cells, mesh has %d",
			recon.Print(), maxInt(recon.GhostDepth()+1, 2), indcs.Ng)
		return
	}
	if !eos.IsIdeal && (rsolver == RSOLVER_HLLC || rsolver == RSOLVER_Roe) {
		err = fmt.Errorf("%s solver requires an ideal-gas EOS", rsolver.Print())
		return
	}
	h = &Hydro{
		pack:        pp,
		NHydro:      eos.NVars(),
		PEOS:        eos,
		ReconMethod: recon,
		RSolver:     rsolver,
	}
	if procLimit != 0 {
		h.ParallelDegree = procLimit
	} else {
		h.ParallelDegree = runtime.NumCPU()
	}
	n1, n2, n3 := indcs.Ncells1(), indcs.Ncells2(), indcs.Ncells3()
	h.U0 = utils.NewArray5D(pp.Nmb, h.NHydro, n3, n2, n1)
	h.U1 = utils.NewArray5D(pp.Nmb, h.NHydro, n3, n2, n1)
	h.W0 = utils.NewArray5D(pp.Nmb, h.NHydro, n3, n2, n1)
	h.DivF = utils.NewArray5D(pp.Nmb, h.NHydro, n3, n2, n1)

	h.BVals = bvals.NewBoundaryValues(pp, topo, procLimit)
	h.BVals.AllocateBuffers(h.NHydro)
	return
}

// CopyU0 snapshots U0 into U1 at the start of a step
func (h *Hydro) CopyU0() tasks.TaskStatus {
	copy(h.U1.D, h.U0.D)
	return tasks.Complete
}

// Update applies one integrator stage over the interior cells:
//
//	U0 = gam0*U0 + gam1*U1 - betaDt*DivF
func (h *Hydro) Update(gam0, gam1, betaDt float64) tasks.TaskStatus {
	var (
		indcs = h.pack.Mesh.Indcs
		wg    = sync.WaitGroup{}
	)
	nmn := h.pack.Nmb * h.NHydro
	pm := utils.NewPartitionMap(h.ParallelDegree, nmn)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			idxMin, idxMax := pm.GetBucketRange(np)
			for idx := idxMin; idx < idxMax; idx++ {
				m := idx / h.NHydro
				n := idx - m*h.NHydro
				u0 := h.U0.Block(m, n)
				u1 := h.U1.Block(m, n)
				df := h.DivF.Block(m, n)
				for k := indcs.Ks; k <= indcs.Ke; k++ {
					for j := indcs.Js; j <= indcs.Je; j++ {
						base := indcs.Ncells1() * (j + indcs.Ncells2()*k)
						for i := indcs.Is; i <= indcs.Ie; i++ {
							u0[base+i] = gam0*u0[base+i] + gam1*u1[base+i] - betaDt*df[base+i]
						}
					}
				}
			}
		}(np)
	}
	wg.Wait()
	return tasks.Complete
}

// ConsToPrim refreshes W0 from U0 over all cells including ghosts
func (h *Hydro) ConsToPrim() tasks.TaskStatus {
	h.PEOS.ConsToPrim(h.U0, h.W0)
	return tasks.Complete
}

// NewDt returns the CFL-stable timestep over this pack's interior cells
// from the fastest signal speed per direction.
func (h *Hydro) NewDt(cfl float64) (dt float64) {
	var (
		indcs = h.pack.Mesh.Indcs
		eos   = h.PEOS
		w0    = h.W0
	)
	dt = math.MaxFloat64
	for m := 0; m < h.pack.Nmb; m++ {
		for k := indcs.Ks; k <= indcs.Ke; k++ {
			for j := indcs.Js; j <= indcs.Je; j++ {
				wd := row(w0, m, IDN, k, j)
				wvx := row(w0, m, IVX, k, j)
				wvy := row(w0, m, IVY, k, j)
				wvz := row(w0, m, IVZ, k, j)
				var wp []float64
				if eos.IsIdeal {
					wp = row(w0, m, IPR, k, j)
				}
				for i := indcs.Is; i <= indcs.Ie; i++ {
					var p float64
					if eos.IsIdeal {
						p = wp[i]
					} else {
						p = eos.IsoCs * eos.IsoCs * wd[i]
					}
					cs := eos.SoundSpeed(p, wd[i])
					dt = math.Min(dt, indcs.Dx1/(math.Abs(wvx[i])+cs))
					if indcs.MultiD2() {
						dt = math.Min(dt, indcs.Dx2/(math.Abs(wvy[i])+cs))
					}
					if indcs.MultiD3() {
						dt = math.Min(dt, indcs.Dx3/(math.Abs(wvz[i])+cs))
					}
				}
			}
		}
	}
	dt *= cfl
	return
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
