package driver

import (
	"github.com/notargets/gomhd/tasks"
	"github.com/notargets/gomhd/utils"
)

// ApplyPhysicalBCs fills the ghost zones of every direction the exchange
// skipped (neighbor sentinel -1) with zero-gradient outflow data, copying the
// nearest interior cell. The ghost regions covered are exactly the receive
// ranges of the exchange buffers, so faces, edges and corners are all handled.
func (d *Driver) ApplyPhysicalBCs(a utils.Array5D) tasks.TaskStatus {
	var (
		pp     = d.Pack
		indcs  = pp.Mesh.Indcs
		nnghbr = indcs.NNghbr()
		bv     = d.Hydro.BVals
	)
	clamp := func(c, lo, hi int) int {
		if c < lo {
			return lo
		}
		if c > hi {
			return hi
		}
		return c
	}
	for m := 0; m < pp.Nmb; m++ {
		for n := 0; n < nnghbr; n++ {
			if pp.Nghbr[n][m].GID >= 0 {
				continue
			}
			bnds := bv.RecvBuf[n].Index.Exec
			il, iu := bnds[0], bnds[1]
			jl, ju := bnds[2], bnds[3]
			kl, ku := bnds[4], bnds[5]
			for v := 0; v < a.Nvar; v++ {
				for k := kl; k <= ku; k++ {
					ks := clamp(k, indcs.Ks, indcs.Ke)
					for j := jl; j <= ju; j++ {
						js := clamp(j, indcs.Js, indcs.Je)
						for i := il; i <= iu; i++ {
							a.Set(m, v, k, j, i, a.At(m, v, ks, js, clamp(i, indcs.Is, indcs.Ie)))
						}
					}
				}
			}
		}
	}
	return tasks.Complete
}
