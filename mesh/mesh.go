package mesh

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

// Mesh is the global decomposition of the domain into a uniform grid of
// Nmbx1 x Nmbx2 x Nmbx3 identically-sized MeshBlocks. Blocks are numbered by
// global ID (GID) in x1-fastest order and distributed over ranks in
// contiguous slabs. Periodic axes wrap neighbor lookups; non-periodic block
// faces on the domain edge become physical boundaries (GID -1).
type Mesh struct {
	Indcs               RegionCells
	Nmbx1, Nmbx2, Nmbx3 int
	NmbTotal            int
	NRanks              int
	GidsList            []int // starting GID owned by each rank
	RankList            []int // owning rank of each GID
	Px1, Px2, Px3       bool  // periodic in each dimension
}

func NewMesh(indcs RegionCells, nmbx1, nmbx2, nmbx3, nranks int, periodic bool) (m *Mesh, err error) {
	if nmbx1 < 1 || nmbx2 < 1 || nmbx3 < 1 {
		err = fmt.Errorf("invalid block counts [%d,%d,%d]", nmbx1, nmbx2, nmbx3)
		return
	}
	if !indcs.MultiD2() && nmbx2 > 1 || !indcs.MultiD3() && nmbx3 > 1 {
		err = fmt.Errorf("block grid extends into unused dimension")
		return
	}
	nmb := nmbx1 * nmbx2 * nmbx3
	if nranks < 1 || nranks > nmb {
		err = fmt.Errorf("need 1..%d ranks, have %d", nmb, nranks)
		return
	}
	m = &Mesh{
		Indcs: indcs,
		Nmbx1: nmbx1, Nmbx2: nmbx2, Nmbx3: nmbx3,
		NmbTotal: nmb,
		NRanks:   nranks,
		GidsList: make([]int, nranks),
		RankList: make([]int, nmb),
		Px1:      periodic, Px2: periodic, Px3: periodic,
	}
	// contiguous slabs of GIDs per rank, remainder spread over low ranks
	nper := nmb / nranks
	rem := nmb % nranks
	gid := 0
	for r := 0; r < nranks; r++ {
		m.GidsList[r] = gid
		cnt := nper
		if r < rem {
			cnt++
		}
		for i := 0; i < cnt; i++ {
			m.RankList[gid] = r
			gid++
		}
	}
	return
}

// BlockLoc returns the (bx1,bx2,bx3) grid location of a GID
func (m *Mesh) BlockLoc(gid int) (bx1, bx2, bx3 int) {
	bx1 = gid % m.Nmbx1
	bx2 = (gid / m.Nmbx1) % m.Nmbx2
	bx3 = gid / (m.Nmbx1 * m.Nmbx2)
	return
}

// BlockGid returns the GID at grid location (bx1,bx2,bx3), wrapping periodic
// axes, or -1 when the location falls outside a non-periodic boundary.
func (m *Mesh) BlockGid(bx1, bx2, bx3 int) int {
	var ok bool
	if bx1, ok = wrap(bx1, m.Nmbx1, m.Px1); !ok {
		return -1
	}
	if bx2, ok = wrap(bx2, m.Nmbx2, m.Px2); !ok {
		return -1
	}
	if bx3, ok = wrap(bx3, m.Nmbx3, m.Px3); !ok {
		return -1
	}
	return bx1 + m.Nmbx1*(bx2+m.Nmbx2*bx3)
}

func wrap(b, n int, periodic bool) (int, bool) {
	if b >= 0 && b < n {
		return b, true
	}
	if !periodic {
		return 0, false
	}
	return ((b % n) + n) % n, true
}

// SizeX1 returns the physical domain extent in x1; the domain spans
// [0,SizeX1]x[0,SizeX2]x[0,SizeX3].
func (m *Mesh) SizeX1() float64 { return float64(m.Nmbx1*m.Indcs.Nx1) * m.Indcs.Dx1 }
func (m *Mesh) SizeX2() float64 { return float64(m.Nmbx2*m.Indcs.Nx2) * m.Indcs.Dx2 }
func (m *Mesh) SizeX3() float64 { return float64(m.Nmbx3*m.Indcs.Nx3) * m.Indcs.Dx3 }

// CellCenter returns the physical position of cell (i,j,k) of block gid.
// Ghost cell indices extrapolate past the block edge, which is what the
// periodic problem generators want.
func (m *Mesh) CellCenter(gid, i, j, k int) (x1, x2, x3 float64) {
	var (
		indcs         = m.Indcs
		bx1, bx2, bx3 = m.BlockLoc(gid)
	)
	x1 = (float64(bx1*indcs.Nx1) + float64(i-indcs.Is) + 0.5) * indcs.Dx1
	x2 = (float64(bx2*indcs.Nx2) + float64(j-indcs.Js) + 0.5) * indcs.Dx2
	x3 = (float64(bx3*indcs.Nx3) + float64(k-indcs.Ks) + 0.5) * indcs.Dx3
	return
}

// NmbThisRank returns the number of blocks owned by a rank
func (m *Mesh) NmbThisRank(rank int) int {
	if rank == m.NRanks-1 {
		return m.NmbTotal - m.GidsList[rank]
	}
	return m.GidsList[rank+1] - m.GidsList[rank]
}

// CommMatrix builds the block-to-block adjacency matrix weighted by the
// number of cells exchanged across each connection per variable. Used to
// report per-rank communication volume before a run.
func (m *Mesh) CommMatrix() *sparse.DOK {
	var (
		indcs  = m.Indcs
		nnghbr = indcs.NNghbr()
	)
	dok := sparse.NewDOK(m.NmbTotal, m.NmbTotal)
	for gid := 0; gid < m.NmbTotal; gid++ {
		bx1, bx2, bx3 := m.BlockLoc(gid)
		for n := 0; n < nnghbr; n++ {
			o1, o2, o3 := DirOffsets(n)
			tgt := m.BlockGid(bx1+o1, bx2+o2, bx3+o3)
			if tgt < 0 {
				continue
			}
			dok.Set(gid, tgt, dok.At(gid, tgt)+float64(exchangeCells(indcs, o1, o2, o3)))
		}
	}
	return dok
}

// RemoteCommVolume sums CommMatrix entries that cross a rank boundary
func (m *Mesh) RemoteCommVolume() (cells int) {
	dok := m.CommMatrix()
	dok.DoNonZero(func(i, j int, v float64) {
		if m.RankList[i] != m.RankList[j] {
			cells += int(v)
		}
	})
	return
}

func exchangeCells(indcs RegionCells, o1, o2, o3 int) int {
	n := 1
	if o1 != 0 {
		n *= indcs.Ng
	} else {
		n *= indcs.Nx1
	}
	if indcs.MultiD2() {
		if o2 != 0 {
			n *= indcs.Ng
		} else {
			n *= indcs.Nx2
		}
	}
	if indcs.MultiD3() {
		if o3 != 0 {
			n *= indcs.Ng
		} else {
			n *= indcs.Nx3
		}
	}
	return n
}
