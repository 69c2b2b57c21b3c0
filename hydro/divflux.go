package hydro

import (
	"sync"

	"github.com/notargets/gomhd/tasks"
	"github.com/notargets/gomhd/utils"
)

// DivFlux accumulates the divergence of the interface fluxes of W0 into
// DivF, sweeping x1, then x2 (if 2D), then x3 (if 3D). Each sweep fully
// completes before the next starts; the x1 sweep overwrites DivF, the later
// sweeps add to it. Within the x2/x3 sweeps a sliding window retains the
// previous plane's flux so each interface is reconstructed once, and so the
// accumulation order of the two faces of every cell is identical in all
// directions; the summation order is part of the round-off contract, not a
// detail to "optimize".
func (h *Hydro) DivFlux() tasks.TaskStatus {
	var (
		indcs   = h.pack.Mesh.Indcs
		is, ie  = indcs.Is, indcs.Ie
		js, je  = indcs.Js, indcs.Je
		ks, ke  = indcs.Ks, indcs.Ke
		ncells1 = indcs.Ncells1()
		nhydro  = h.NHydro
		nmb     = h.pack.Nmb
		recon   = h.ReconMethod
		rsolver = h.RSolver
		eos     = h.PEOS
		w0      = h.W0
		divf    = h.DivF
		wg      = sync.WaitGroup{}
	)

	//------------------------------------------------------------------------
	// i-direction

	nkj := (ke - ks + 1) * (je - js + 1)
	nj := je - js + 1
	dx1 := indcs.Dx1
	pm := utils.NewPartitionMap(h.ParallelDegree, nmb*nkj)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			wl := utils.NewMatrix(nhydro, ncells1)
			wr := utils.NewMatrix(nhydro, ncells1)
			uflux := utils.NewMatrix(nhydro, ncells1)
			idxMin, idxMax := pm.GetBucketRange(np)
			for idx := idxMin; idx < idxMax; idx++ {
				m := idx / nkj
				kj := idx - m*nkj
				k := kj/nj + ks
				j := kj%nj + js

				// reconstruction gives qR[i] and qL[i+1]
				switch recon {
				case RECON_DonorCell:
					DonorCellX1(w0, m, k, j, is-1, ie+1, wl, wr)
				case RECON_PiecewiseLinear:
					PiecewiseLinearX1(w0, m, k, j, is-1, ie+1, wl, wr)
				case RECON_PiecewiseParabolic:
					PiecewiseParabolicX1(w0, m, k, j, is-1, ie+1, wl, wr)
				default:
				}

				// fluxes over [is,ie+1]
				switch rsolver {
				case RSOLVER_Advect:
					Advect(eos, is, ie+1, IVX, wl, wr, uflux)
				case RSOLVER_LLF:
					LLF(eos, is, ie+1, IVX, wl, wr, uflux)
				case RSOLVER_HLLC:
					HLLC(eos, is, ie+1, IVX, wl, wr, uflux)
				case RSOLVER_Roe:
					Roe(eos, is, ie+1, IVX, wl, wr, uflux)
				default:
				}

				// dF/dx1
				for n := 0; n < nhydro; n++ {
					fn := uflux.Row(n)
					df := row(divf, m, n, k, j)
					for i := is; i <= ie; i++ {
						df[i] = (fn[i+1] - fn[i]) / dx1
					}
				}
			}
		}(np)
	}
	wg.Wait()
	if !indcs.MultiD2() {
		return tasks.Complete
	}

	//------------------------------------------------------------------------
	// j-direction

	dx2 := indcs.Dx2
	nk := ke - ks + 1
	pm = utils.NewPartitionMap(h.ParallelDegree, nmb*nk)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			wlFlx := utils.NewMatrix(nhydro, ncells1)
			wr := utils.NewMatrix(nhydro, ncells1)
			wlJp1 := utils.NewMatrix(nhydro, ncells1)
			ufluxJm1 := utils.NewMatrix(nhydro, ncells1)
			idxMin, idxMax := pm.GetBucketRange(np)
			for idx := idxMin; idx < idxMax; idx++ {
				m := idx / nk
				k := idx - m*nk + ks

				for j := js - 1; j <= je+1; j++ {
					// take Wl from the previous j (not on the first pass)
					if j > js-1 {
						wlFlx.CopyFrom(wlJp1)
					}

					// reconstruction gives qR[j] and qL[j+1]
					switch recon {
					case RECON_DonorCell:
						DonorCellX2(w0, m, k, j, is, ie, wlJp1, wr)
					case RECON_PiecewiseLinear:
						PiecewiseLinearX2(w0, m, k, j, is, ie, wlJp1, wr)
					case RECON_PiecewiseParabolic:
						PiecewiseParabolicX2(w0, m, k, j, is, ie, wlJp1, wr)
					default:
					}

					// fluxes at interface j, written over the wl scratch
					if j > js-1 {
						switch rsolver {
						case RSOLVER_Advect:
							Advect(eos, is, ie, IVY, wlFlx, wr, wlFlx)
						case RSOLVER_LLF:
							LLF(eos, is, ie, IVY, wlFlx, wr, wlFlx)
						case RSOLVER_HLLC:
							HLLC(eos, is, ie, IVY, wlFlx, wr, wlFlx)
						case RSOLVER_Roe:
							Roe(eos, is, ie, IVY, wlFlx, wr, wlFlx)
						default:
						}
					}

					// add dF/dx2; both faces summed together so round-off
					// accumulates in the same order as the other directions
					if j > js {
						for n := 0; n < nhydro; n++ {
							fn := wlFlx.Row(n)
							fm := ufluxJm1.Row(n)
							df := row(divf, m, n, k, j-1)
							for i := is; i <= ie; i++ {
								df[i] += (fn[i] - fm[i]) / dx2
							}
						}
					}

					// roll the window forward
					if j > js-1 && j < je+1 {
						ufluxJm1.CopyFrom(wlFlx)
					}
				}
			}
		}(np)
	}
	wg.Wait()
	if !indcs.MultiD3() {
		return tasks.Complete
	}

	//------------------------------------------------------------------------
	// k-direction. Note order of k,j loops switched

	dx3 := indcs.Dx3
	pm = utils.NewPartitionMap(h.ParallelDegree, nmb*nj)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			wlFlx := utils.NewMatrix(nhydro, ncells1)
			wr := utils.NewMatrix(nhydro, ncells1)
			wlKp1 := utils.NewMatrix(nhydro, ncells1)
			ufluxKm1 := utils.NewMatrix(nhydro, ncells1)
			idxMin, idxMax := pm.GetBucketRange(np)
			for idx := idxMin; idx < idxMax; idx++ {
				m := idx / nj
				j := idx - m*nj + js

				for k := ks - 1; k <= ke+1; k++ {
					if k > ks-1 {
						wlFlx.CopyFrom(wlKp1)
					}

					switch recon {
					case RECON_DonorCell:
						DonorCellX3(w0, m, k, j, is, ie, wlKp1, wr)
					case RECON_PiecewiseLinear:
						PiecewiseLinearX3(w0, m, k, j, is, ie, wlKp1, wr)
					case RECON_PiecewiseParabolic:
						PiecewiseParabolicX3(w0, m, k, j, is, ie, wlKp1, wr)
					default:
					}

					if k > ks-1 {
						switch rsolver {
						case RSOLVER_Advect:
							Advect(eos, is, ie, IVZ, wlFlx, wr, wlFlx)
						case RSOLVER_LLF:
							LLF(eos, is, ie, IVZ, wlFlx, wr, wlFlx)
						case RSOLVER_HLLC:
							HLLC(eos, is, ie, IVZ, wlFlx, wr, wlFlx)
						case RSOLVER_Roe:
							Roe(eos, is, ie, IVZ, wlFlx, wr, wlFlx)
						default:
						}
					}

					if k > ks {
						for n := 0; n < nhydro; n++ {
							fn := wlFlx.Row(n)
							fm := ufluxKm1.Row(n)
							df := row(divf, m, n, k-1, j)
							for i := is; i <= ie; i++ {
								df[i] += (fn[i] - fm[i]) / dx3
							}
						}
					}

					if k > ks-1 && k < ke+1 {
						ufluxKm1.CopyFrom(wlFlx)
					}
				}
			}
		}(np)
	}
	wg.Wait()
	return tasks.Complete
}
