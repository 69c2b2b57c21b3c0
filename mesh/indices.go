package mesh

// RegionCells describes the cell index space of every MeshBlock at a given
// resolution: interior bounds [Is,Ie]x[Js,Je]x[Ks,Ke], ghost zone width Ng,
// and physical cell widths. It is built once and shared read-only by all
// blocks, so none of the fields may be mutated after construction.
type RegionCells struct {
	Ng            int // number of ghost cells on each side of active dims
	Nx1, Nx2, Nx3 int // interior cells per dimension (1 in unused dims)
	Is, Ie        int
	Js, Je        int
	Ks, Ke        int
	Dx1, Dx2, Dx3 float64
}

func NewRegionCells(nx1, nx2, nx3, ng int, dx1, dx2, dx3 float64) (rc RegionCells) {
	rc = RegionCells{
		Ng:  ng,
		Nx1: nx1, Nx2: nx2, Nx3: nx3,
		Dx1: dx1, Dx2: dx2, Dx3: dx3,
	}
	rc.Is = ng
	rc.Ie = ng + nx1 - 1
	if nx2 > 1 {
		rc.Js, rc.Je = ng, ng+nx2-1
	} else {
		rc.Js, rc.Je = 0, 0
	}
	if nx3 > 1 {
		rc.Ks, rc.Ke = ng, ng+nx3-1
	} else {
		rc.Ks, rc.Ke = 0, 0
	}
	return
}

// Ncells1 returns the total cell count including ghosts in x1; similarly for
// Ncells2/Ncells3, which collapse to 1 in unused dimensions.
func (rc RegionCells) Ncells1() int { return rc.Nx1 + 2*rc.Ng }

func (rc RegionCells) Ncells2() int {
	if rc.Nx2 > 1 {
		return rc.Nx2 + 2*rc.Ng
	}
	return 1
}

func (rc RegionCells) Ncells3() int {
	if rc.Nx3 > 1 {
		return rc.Nx3 + 2*rc.Ng
	}
	return 1
}

func (rc RegionCells) MultiD2() bool { return rc.Nx2 > 1 }
func (rc RegionCells) MultiD3() bool { return rc.Nx3 > 1 }

// NNghbr returns the number of neighbor directions a block has: 2 faces in
// 1D, plus x2 faces and x1x2 edges in 2D (8), plus x3 faces, x3x1 and x2x3
// edges, and corners in 3D (26).
func (rc RegionCells) NNghbr() int {
	switch {
	case rc.MultiD3():
		return 26
	case rc.MultiD2():
		return 8
	default:
		return 2
	}
}
