// Package driver runs the simulation time loop: each RK stage is a short
// pipeline of tasks (flux divergence, conservative update, ghost exchange,
// variable inversion) polled until complete, with the exchange stages
// reporting Incomplete while transfers are in flight.
package driver

import (
	"fmt"

	"github.com/notargets/gomhd/bvals"
	"github.com/notargets/gomhd/hydro"
	"github.com/notargets/gomhd/mesh"
	"github.com/notargets/gomhd/tasks"
)

// rk2 (Heun) stage coefficients for U0 = gam0*U0 + gam1*U1 - beta*dt*DivF
var (
	rk2Gam0 = [2]float64{0.0, 0.5}
	rk2Gam1 = [2]float64{1.0, 0.5}
	rk2Beta = [2]float64{1.0, 0.5}
)

type Driver struct {
	Topo  *bvals.Topology
	Pack  *mesh.MeshBlockPack
	Hydro *hydro.Hydro

	CFL       float64
	FinalTime float64
	MaxSteps  int

	Time         float64
	Step         int
	LogFrequency int
	Verbose      bool

	// StepHook, when set, runs after every completed step on the calling
	// rank. Used for plotting.
	StepHook func(d *Driver)
}

func NewDriver(pp *mesh.MeshBlockPack, topo *bvals.Topology, h *hydro.Hydro,
	cfl, finalTime float64, maxSteps int) (d *Driver) {
	d = &Driver{
		Topo:  topo,
		Pack:  pp,
		Hydro: h,
		CFL:   cfl, FinalTime: finalTime, MaxSteps: maxSteps,
		LogFrequency: 50,
	}
	return
}

// Initialize fills the conserved state from the primitive problem data and
// runs one full exchange so ghost zones are consistent before step 0.
func (d *Driver) Initialize() {
	h := d.Hydro
	h.PEOS.PrimToCons(h.W0, h.U0)
	d.exchange(0)
	h.ConsToPrim()
}

// exchange runs one complete ghost-zone cycle for U0 under the given key
func (d *Driver) exchange(key int) {
	h := d.Hydro
	h.BVals.InitRecvBuffers(key)
	h.BVals.SendBuffers(h.U0, key)
	for h.BVals.RecvBuffers(h.U0) == tasks.Incomplete {
	}
	d.ApplyPhysicalBCs(h.U0)
}

// Execute advances to FinalTime or MaxSteps. All ranks must call it
// concurrently; the timestep reduction doubles as the inter-rank barrier.
func (d *Driver) Execute() {
	h := d.Hydro
	for d.Time < d.FinalTime && d.Step < d.MaxSteps {
		dt := d.Topo.AllReduceMin(h.NewDt(d.CFL))
		if d.Time+dt > d.FinalTime {
			dt = d.FinalTime - d.Time
		}

		h.CopyU0()
		for stage := 0; stage < 2; stage++ {
			// key is unique per (field, stage) pair concurrently in flight
			key := stage
			tl := &tasks.TaskList{}
			tl.AddTask("DivFlux", h.DivFlux)
			tl.AddTask("Update", func() tasks.TaskStatus {
				return h.Update(rk2Gam0[stage], rk2Gam1[stage], rk2Beta[stage]*dt)
			})
			tl.AddTask("InitRecv", func() tasks.TaskStatus {
				return h.BVals.InitRecvBuffers(key)
			})
			tl.AddTask("SendU", func() tasks.TaskStatus {
				return h.BVals.SendBuffers(h.U0, key)
			})
			tl.AddTask("RecvU", func() tasks.TaskStatus {
				return h.BVals.RecvBuffers(h.U0)
			})
			tl.AddTask("PhysBCs", func() tasks.TaskStatus {
				return d.ApplyPhysicalBCs(h.U0)
			})
			tl.AddTask("ConsToPrim", h.ConsToPrim)
			for !tl.DoAvailable() {
			}
		}

		d.Time += dt
		d.Step++
		if d.Verbose && d.Step%d.LogFrequency == 0 {
			fmt.Printf("rank %d: step = %6d, Time = %10.6f, dt = %10.3e\n",
				d.Topo.Rank, d.Step, d.Time, dt)
		}
		if d.StepHook != nil {
			d.StepHook(d)
		}
	}
}
