package types

import (
	"fmt"
	"math"
)

/*
EdgeKey packs the two packed vertex indices of a cell edge into one comparable
value. The lower index always sits in the low 32 bits, so [4,0] and [0,4] give
the same key.
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (ek EdgeKey) {
	for _, vert := range verts {
		if vert < 0 || vert > math.MaxUint32 {
			panic(fmt.Errorf("unable to pack vertices %d and %d into an edge key",
				verts[0], verts[1]))
		}
	}
	lo, hi := verts[0], verts[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	return EdgeKey(uint64(lo) | uint64(hi)<<32)
}

// Vertices returns the edge's vertices, lowest first
func (ek EdgeKey) Vertices() (verts [2]int) {
	return [2]int{int(ek & math.MaxUint32), int(ek >> 32)}
}

func (ek EdgeKey) String() string {
	v := ek.Vertices()
	return fmt.Sprintf("[%d,%d]", v[0], v[1])
}
