package mesh

// NeighborBlock identifies the block on the far side of one of the (up to 26)
// neighbor directions. GID == -1 marks a physical boundary with no exchange.
// DestN is the buffer index this block's data lands in on the receiving side,
// which for same-level neighbors is always the mirror-image direction.
type NeighborBlock struct {
	GID   int
	Rank  int
	DestN int
}

// dirOffsets fixes the ordering of the neighbor directions. Buffer allocation
// in bvals and neighbor-table construction here both index off this table, so
// the order must never change: x1 faces, x2 faces, x1x2 edges, x3 faces,
// x3x1 edges, x2x3 edges, corners.
var dirOffsets = [26][3]int{
	{-1, 0, 0}, {+1, 0, 0}, // x1 faces
	{0, -1, 0}, {0, +1, 0}, // x2 faces
	{-1, -1, 0}, {+1, -1, 0}, {-1, +1, 0}, {+1, +1, 0}, // x1x2 edges
	{0, 0, -1}, {0, 0, +1}, // x3 faces
	{-1, 0, -1}, {+1, 0, -1}, {-1, 0, +1}, {+1, 0, +1}, // x3x1 edges
	{0, -1, -1}, {0, +1, -1}, {0, -1, +1}, {0, +1, +1}, // x2x3 edges
	{-1, -1, -1}, {+1, -1, -1}, {-1, +1, -1}, {+1, +1, -1}, // corners
	{-1, -1, +1}, {+1, -1, +1}, {-1, +1, +1}, {+1, +1, +1},
}

// DirOffsets returns the (ox1,ox2,ox3) offset of direction n
func DirOffsets(n int) (ox1, ox2, ox3 int) {
	return dirOffsets[n][0], dirOffsets[n][1], dirOffsets[n][2]
}

// OppositeDir returns the direction index of the reversed offset, i.e. the
// receiving side's buffer index for data sent in direction n.
func OppositeDir(n int) int {
	var (
		o = dirOffsets[n]
	)
	for i := range dirOffsets {
		if dirOffsets[i][0] == -o[0] && dirOffsets[i][1] == -o[1] && dirOffsets[i][2] == -o[2] {
			return i
		}
	}
	panic("no opposite direction, offset table is corrupt")
}
