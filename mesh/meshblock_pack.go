package mesh

// MeshBlockPack is the collection of MeshBlocks owned by one rank, processed
// together so kernel dispatch is amortized over all of them. Gids..Gide are
// the contiguous global IDs in the pack. Nghbr is the per-direction,
// per-block neighbor table, fixed in the direction order of dirOffsets;
// it is built once here and read-only during exchange.
type MeshBlockPack struct {
	Mesh       *Mesh
	Gids, Gide int
	Nmb        int
	Nghbr      [][]NeighborBlock // [nnghbr][nmb]
}

// NewPack builds the MeshBlockPack for one rank, including its neighbor table
func (m *Mesh) NewPack(rank int) (pp *MeshBlockPack) {
	var (
		gids   = m.GidsList[rank]
		nmb    = m.NmbThisRank(rank)
		nnghbr = m.Indcs.NNghbr()
	)
	pp = &MeshBlockPack{
		Mesh: m,
		Gids: gids,
		Gide: gids + nmb - 1,
		Nmb:  nmb,
	}
	pp.Nghbr = make([][]NeighborBlock, nnghbr)
	for n := 0; n < nnghbr; n++ {
		pp.Nghbr[n] = make([]NeighborBlock, nmb)
		o1, o2, o3 := DirOffsets(n)
		for mm := 0; mm < nmb; mm++ {
			bx1, bx2, bx3 := m.BlockLoc(gids + mm)
			tgt := m.BlockGid(bx1+o1, bx2+o2, bx3+o3)
			if tgt < 0 {
				pp.Nghbr[n][mm] = NeighborBlock{GID: -1, Rank: -1, DestN: -1}
				continue
			}
			pp.Nghbr[n][mm] = NeighborBlock{
				GID:   tgt,
				Rank:  m.RankList[tgt],
				DestN: OppositeDir(n),
			}
		}
	}
	return
}

// NumberOfMeshBlockCells returns interior cells per block
func (pp *MeshBlockPack) NumberOfMeshBlockCells() int {
	indcs := pp.Mesh.Indcs
	return indcs.Nx1 * indcs.Nx2 * indcs.Nx3
}
