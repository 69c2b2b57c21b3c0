package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirections(t *testing.T) {
	// every direction has an opposite, and it is an involution
	for n := 0; n < 26; n++ {
		o1, o2, o3 := DirOffsets(n)
		nn := OppositeDir(n)
		p1, p2, p3 := DirOffsets(nn)
		assert.Equal(t, [3]int{-o1, -o2, -o3}, [3]int{p1, p2, p3})
		assert.Equal(t, n, OppositeDir(nn))
		assert.NotEqual(t, n, nn)
	}
	// faces come first so 1D and 2D runs can truncate the table
	assert.Equal(t, [3]int{-1, 0, 0}, func() [3]int { a, b, c := DirOffsets(0); return [3]int{a, b, c} }())
	assert.Equal(t, [3]int{+1, 0, 0}, func() [3]int { a, b, c := DirOffsets(1); return [3]int{a, b, c} }())
}

func TestRegionCells(t *testing.T) {
	rc := NewRegionCells(16, 8, 1, 2, 1./16., 1./8., 1.)
	assert.Equal(t, 2, rc.Is)
	assert.Equal(t, 17, rc.Ie)
	assert.Equal(t, 2, rc.Js)
	assert.Equal(t, 9, rc.Je)
	assert.Equal(t, 0, rc.Ks)
	assert.Equal(t, 0, rc.Ke)
	assert.Equal(t, 20, rc.Ncells1())
	assert.Equal(t, 12, rc.Ncells2())
	assert.Equal(t, 1, rc.Ncells3())
	assert.True(t, rc.MultiD2())
	assert.False(t, rc.MultiD3())
	assert.Equal(t, 8, rc.NNghbr())

	rc1 := NewRegionCells(16, 1, 1, 2, 1./16., 1., 1.)
	assert.Equal(t, 2, rc1.NNghbr())
	rc3 := NewRegionCells(8, 8, 8, 2, 1., 1., 1.)
	assert.Equal(t, 26, rc3.NNghbr())
}

func TestMeshGids(t *testing.T) {
	rc := NewRegionCells(8, 1, 1, 2, 1./32., 1., 1.)
	m, err := NewMesh(rc, 4, 1, 1, 3, true)
	require.NoError(t, err)
	// 4 blocks over 3 ranks: remainder block lands on rank 0
	assert.Equal(t, []int{0, 2, 3}, m.GidsList)
	assert.Equal(t, []int{0, 0, 1, 2}, m.RankList)
	assert.Equal(t, 2, m.NmbThisRank(0))
	assert.Equal(t, 1, m.NmbThisRank(1))
	assert.Equal(t, 1, m.NmbThisRank(2))

	// periodic wrap in x1
	assert.Equal(t, 3, m.BlockGid(-1, 0, 0))
	assert.Equal(t, 0, m.BlockGid(4, 0, 0))

	// non-periodic edges become physical boundaries
	mn, err := NewMesh(rc, 4, 1, 1, 1, false)
	require.NoError(t, err)
	assert.Equal(t, -1, mn.BlockGid(-1, 0, 0))
	assert.Equal(t, -1, mn.BlockGid(4, 0, 0))

	// block grids cannot extend into unused dimensions
	_, err = NewMesh(rc, 2, 2, 1, 1, true)
	assert.Error(t, err)
	// nor can there be more ranks than blocks
	_, err = NewMesh(rc, 4, 1, 1, 5, true)
	assert.Error(t, err)
}

func TestCellCenter(t *testing.T) {
	rc := NewRegionCells(8, 1, 1, 2, 1./16., 1., 1.)
	m, err := NewMesh(rc, 2, 1, 1, 1, true)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, m.SizeX1(), 1.e-15)
	// first interior cell of block 0 is half a cell in
	x1, _, _ := m.CellCenter(0, rc.Is, 0, 0)
	assert.InDelta(t, 0.5/16., x1, 1.e-15)
	// first interior cell of block 1 starts at the domain midpoint
	x1, _, _ = m.CellCenter(1, rc.Is, 0, 0)
	assert.InDelta(t, 0.5+0.5/16., x1, 1.e-15)
	// ghost cells extrapolate past the block edge
	x1, _, _ = m.CellCenter(0, rc.Is-1, 0, 0)
	assert.InDelta(t, -0.5/16., x1, 1.e-15)
}

func TestNeighborTable(t *testing.T) {
	rc := NewRegionCells(8, 8, 1, 2, 1./16., 1./16., 1.)
	m, err := NewMesh(rc, 2, 2, 1, 2, true)
	require.NoError(t, err)

	pp := m.NewPack(0) // owns GIDs 0,1
	assert.Equal(t, 0, pp.Gids)
	assert.Equal(t, 1, pp.Gide)
	assert.Equal(t, 2, pp.Nmb)
	assert.Equal(t, 64, pp.NumberOfMeshBlockCells())

	// block 0 at (0,0): -x1 wraps to block 1, owned by this rank
	nb := pp.Nghbr[0][0]
	assert.Equal(t, 1, nb.GID)
	assert.Equal(t, 0, nb.Rank)
	assert.Equal(t, 1, nb.DestN) // lands in the +x1 buffer over there

	// +x2 of block 0 is block 2, owned by rank 1
	nb = pp.Nghbr[3][0]
	assert.Equal(t, 2, nb.GID)
	assert.Equal(t, 1, nb.Rank)
	assert.Equal(t, 2, nb.DestN)

	// with periodic wrap every direction has a neighbor
	for n := 0; n < rc.NNghbr(); n++ {
		for mm := 0; mm < pp.Nmb; mm++ {
			assert.True(t, pp.Nghbr[n][mm].GID >= 0)
		}
	}

	// non-periodic: corner block loses its outward directions
	mn, err := NewMesh(rc, 2, 2, 1, 1, false)
	require.NoError(t, err)
	pn := mn.NewPack(0)
	assert.Equal(t, -1, pn.Nghbr[0][0].GID) // -x1 off the domain
	assert.Equal(t, -1, pn.Nghbr[2][0].GID) // -x2 off the domain
	assert.Equal(t, 1, pn.Nghbr[1][0].GID)  // +x1 in the interior
}

func TestCommMatrix(t *testing.T) {
	rc := NewRegionCells(8, 8, 1, 2, 1./16., 1./16., 1.)
	m, err := NewMesh(rc, 2, 2, 1, 2, true)
	require.NoError(t, err)

	dok := m.CommMatrix()
	r, c := dok.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 4, c)
	// exchange volume is symmetric for same-size blocks
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, dok.At(i, j), dok.At(j, i))
		}
	}
	// ranks own {0,1} and {2,3}; every cross pair exchanges cells
	assert.True(t, m.RemoteCommVolume() > 0)

	// a single rank exchanges nothing remotely
	m1, err := NewMesh(rc, 2, 2, 1, 1, true)
	require.NoError(t, err)
	assert.Equal(t, 0, m1.RemoteCommVolume())
}
