package bvals

import (
	"github.com/notargets/gomhd/utils"
)

type BoundaryCommStatus int

const (
	BoundaryWaiting BoundaryCommStatus = iota
	BoundaryReceived
)

// BoundaryBuffer holds the exchange state for one neighbor direction across
// all blocks in the pack: the 6 loop bounds (il,iu,jl,ju,kl,ku) in a dual
// host/exec view, the flat data store, per-block completion status, and the
// per-block transfer request slots reused every cycle.
type BoundaryBuffer struct {
	Index *utils.DualView[int]
	Data  []float64
	Reqs  []Request
	Stat  []BoundaryCommStatus

	Nmb, Nvar, Ncell int
}

// InitIndices fixes the cell range covered by this buffer and allocates the
// data store to (nmb, nvar, cells). Called exactly once per direction at
// pack construction; re-calling with different bounds after allocation is
// undefined. Bounds live in the host view until Sync.
func (b *BoundaryBuffer) InitIndices(nmb, nvar, il, iu, jl, ju, kl, ku int) {
	h := b.Index.Host
	h[0], h[1] = il, iu
	h[2], h[3] = jl, ju
	h[4], h[5] = kl, ku
	b.Index.Modify()
	b.Nmb, b.Nvar = nmb, nvar
	b.Ncell = (iu - il + 1) * (ju - jl + 1) * (ku - kl + 1)
	b.Data = make([]float64, nmb*nvar*b.Ncell)
}

// Slab returns the contiguous segment holding all variables of block m,
// the unit sent in one message.
func (b *BoundaryBuffer) Slab(m int) []float64 {
	sz := b.Nvar * b.Ncell
	return b.Data[m*sz : (m+1)*sz]
}

// seg returns the cell segment of (block m, variable v)
func (b *BoundaryBuffer) seg(m, v int) []float64 {
	off := b.Ncell * (v + b.Nvar*m)
	return b.Data[off : off+b.Ncell]
}

// AllocateBuffers builds the send/recv BoundaryBuffer array for nvar
// cell-centered variables.
//
// NOTE: order of array elements is crucial and cannot be changed. It must
// match the direction order of the neighbor table.
func (bv *BoundaryValues) AllocateBuffers(nvar int) {
	var (
		indcs  = bv.pack.Mesh.Indcs
		ng     = indcs.Ng
		is, ie = indcs.Is, indcs.Ie
		js, je = indcs.Js, indcs.Je
		ks, ke = indcs.Ks, indcs.Ke
		ng1    = ng - 1
		nmb    = bv.pack.Nmb
		nnghbr = indcs.NNghbr()
	)
	bv.SendBuf = make([]BoundaryBuffer, nnghbr)
	bv.RecvBuf = make([]BoundaryBuffer, nnghbr)
	for n := 0; n < nnghbr; n++ {
		// 6 values of index array store loop bounds: il, iu, jl, ju, kl, ku
		bv.SendBuf[n].Index = utils.NewDualView[int](6)
		bv.RecvBuf[n].Index = utils.NewDualView[int](6)
		bv.SendBuf[n].Stat = make([]BoundaryCommStatus, nmb)
		bv.RecvBuf[n].Stat = make([]BoundaryCommStatus, nmb)
		bv.SendBuf[n].Reqs = make([]Request, nmb)
		bv.RecvBuf[n].Reqs = make([]Request, nmb)
	}

	// initialize buffers for x1 faces
	bv.SendBuf[0].InitIndices(nmb, nvar, is, is+ng1, js, je, ks, ke)
	bv.SendBuf[1].InitIndices(nmb, nvar, ie-ng1, ie, js, je, ks, ke)

	bv.RecvBuf[0].InitIndices(nmb, nvar, is-ng, is-1, js, je, ks, ke)
	bv.RecvBuf[1].InitIndices(nmb, nvar, ie+1, ie+ng, js, je, ks, ke)

	// add more buffers in 2D
	if nnghbr > 2 {
		// initialize buffers for x2 faces
		bv.SendBuf[2].InitIndices(nmb, nvar, is, ie, js, js+ng1, ks, ke)
		bv.SendBuf[3].InitIndices(nmb, nvar, is, ie, je-ng1, je, ks, ke)

		bv.RecvBuf[2].InitIndices(nmb, nvar, is, ie, js-ng, js-1, ks, ke)
		bv.RecvBuf[3].InitIndices(nmb, nvar, is, ie, je+1, je+ng, ks, ke)

		// initialize buffers for x1x2 edges
		bv.SendBuf[4].InitIndices(nmb, nvar, is, is+ng1, js, js+ng1, ks, ke)
		bv.SendBuf[5].InitIndices(nmb, nvar, ie-ng1, ie, js, js+ng1, ks, ke)
		bv.SendBuf[6].InitIndices(nmb, nvar, is, is+ng1, je-ng1, je, ks, ke)
		bv.SendBuf[7].InitIndices(nmb, nvar, ie-ng1, ie, je-ng1, je, ks, ke)

		bv.RecvBuf[4].InitIndices(nmb, nvar, is-ng, is-1, js-ng, js-1, ks, ke)
		bv.RecvBuf[5].InitIndices(nmb, nvar, ie+1, ie+ng, js-ng, js-1, ks, ke)
		bv.RecvBuf[6].InitIndices(nmb, nvar, is-ng, is-1, je+1, je+ng, ks, ke)
		bv.RecvBuf[7].InitIndices(nmb, nvar, ie+1, ie+ng, je+1, je+ng, ks, ke)

		// add more buffers in 3D
		if nnghbr > 8 {
			// initialize buffers for x3 faces
			bv.SendBuf[8].InitIndices(nmb, nvar, is, ie, js, je, ks, ks+ng1)
			bv.SendBuf[9].InitIndices(nmb, nvar, is, ie, js, je, ke-ng1, ke)

			bv.RecvBuf[8].InitIndices(nmb, nvar, is, ie, js, je, ks-ng, ks-1)
			bv.RecvBuf[9].InitIndices(nmb, nvar, is, ie, js, je, ke+1, ke+ng)

			// initialize buffers for x3x1 edges
			bv.SendBuf[10].InitIndices(nmb, nvar, is, is+ng1, js, je, ks, ks+ng1)
			bv.SendBuf[11].InitIndices(nmb, nvar, ie-ng1, ie, js, je, ks, ks+ng1)
			bv.SendBuf[12].InitIndices(nmb, nvar, is, is+ng1, js, je, ke-ng1, ke)
			bv.SendBuf[13].InitIndices(nmb, nvar, ie-ng1, ie, js, je, ke-ng1, ke)

			bv.RecvBuf[10].InitIndices(nmb, nvar, is-ng, is-1, js, je, ks-ng, ks-1)
			bv.RecvBuf[11].InitIndices(nmb, nvar, ie+1, ie+ng, js, je, ks-ng, ks-1)
			bv.RecvBuf[12].InitIndices(nmb, nvar, is-ng, is-1, js, je, ke+1, ke+ng)
			bv.RecvBuf[13].InitIndices(nmb, nvar, ie+1, ie+ng, js, je, ke+1, ke+ng)

			// initialize buffers for x2x3 edges
			bv.SendBuf[14].InitIndices(nmb, nvar, is, ie, js, js+ng1, ks, ks+ng1)
			bv.SendBuf[15].InitIndices(nmb, nvar, is, ie, je-ng1, je, ks, ks+ng1)
			bv.SendBuf[16].InitIndices(nmb, nvar, is, ie, js, js+ng1, ke-ng1, ke)
			bv.SendBuf[17].InitIndices(nmb, nvar, is, ie, je-ng1, je, ke-ng1, ke)

			bv.RecvBuf[14].InitIndices(nmb, nvar, is, ie, js-ng, js-1, ks-ng, ks-1)
			bv.RecvBuf[15].InitIndices(nmb, nvar, is, ie, je+1, je+ng, ks-ng, ks-1)
			bv.RecvBuf[16].InitIndices(nmb, nvar, is, ie, js-ng, js-1, ke+1, ke+ng)
			bv.RecvBuf[17].InitIndices(nmb, nvar, is, ie, je+1, je+ng, ke+1, ke+ng)

			// initialize buffers for corners
			bv.SendBuf[18].InitIndices(nmb, nvar, is, is+ng1, js, js+ng1, ks, ks+ng1)
			bv.SendBuf[19].InitIndices(nmb, nvar, ie-ng1, ie, js, js+ng1, ks, ks+ng1)
			bv.SendBuf[20].InitIndices(nmb, nvar, is, is+ng1, je-ng1, je, ks, ks+ng1)
			bv.SendBuf[21].InitIndices(nmb, nvar, ie-ng1, ie, je-ng1, je, ks, ks+ng1)
			bv.SendBuf[22].InitIndices(nmb, nvar, is, is+ng1, js, js+ng1, ke-ng1, ke)
			bv.SendBuf[23].InitIndices(nmb, nvar, ie-ng1, ie, js, js+ng1, ke-ng1, ke)
			bv.SendBuf[24].InitIndices(nmb, nvar, is, is+ng1, je-ng1, je, ke-ng1, ke)
			bv.SendBuf[25].InitIndices(nmb, nvar, ie-ng1, ie, je-ng1, je, ke-ng1, ke)

			bv.RecvBuf[18].InitIndices(nmb, nvar, is-ng, is-1, js-ng, js-1, ks-ng, ks-1)
			bv.RecvBuf[19].InitIndices(nmb, nvar, ie+1, ie+ng, js-ng, js-1, ks-ng, ks-1)
			bv.RecvBuf[20].InitIndices(nmb, nvar, is-ng, is-1, je+1, je+ng, ks-ng, ks-1)
			bv.RecvBuf[21].InitIndices(nmb, nvar, ie+1, ie+ng, je+1, je+ng, ks-ng, ks-1)
			bv.RecvBuf[22].InitIndices(nmb, nvar, is-ng, is-1, js-ng, js-1, ke+1, ke+ng)
			bv.RecvBuf[23].InitIndices(nmb, nvar, ie+1, ie+ng, js-ng, js-1, ke+1, ke+ng)
			bv.RecvBuf[24].InitIndices(nmb, nvar, is-ng, is-1, je+1, je+ng, ke+1, ke+ng)
			bv.RecvBuf[25].InitIndices(nmb, nvar, ie+1, ie+ng, je+1, je+ng, ke+1, ke+ng)
		}
	}

	// mark host index views modified, then sync to the exec views
	for n := 0; n < nnghbr; n++ {
		bv.SendBuf[n].Index.Sync()
		bv.RecvBuf[n].Index.Sync()
	}
}
