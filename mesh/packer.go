package mesh

import (
	"github.com/notargets/femesh/readers"
	"github.com/notargets/femesh/types"
)

// Packer renumbers report node ids into a dense, zero based index space in
// the order ids are first seen. Only ids passed to Index are ever packed, so
// nodes no element uses never reach the output. A Packer belongs to a single
// conversion.
type Packer struct {
	coordinates   *readers.Table[types.Vec3]
	displacements *readers.Table[types.Vec3]

	index        map[int]int // node id -> packed position
	nodeIDs      []int       // packed position -> node id
	packedCoords []types.Vec3
	packedDisps  []types.Vec3
}

func NewPacker(coordinates, displacements *readers.Table[types.Vec3]) *Packer {
	return &Packer{
		coordinates:   coordinates,
		displacements: displacements,
		index:         make(map[int]int),
		nodeIDs:       []int{},
		packedCoords:  []types.Vec3{},
		packedDisps:   []types.Vec3{},
	}
}

// Index returns the packed position of nodeID, assigning the next free one on
// first use. The node must have both a coordinate and a displacement; if not,
// a *MissingReferenceError is returned and nothing is assigned.
func (p *Packer) Index(nodeID int) (pos int, err error) {
	var ok bool
	if pos, ok = p.index[nodeID]; ok {
		return
	}
	var coord, disp types.Vec3
	if coord, ok = p.coordinates.Get(nodeID); !ok {
		return -1, &MissingReferenceError{Table: readers.CoordinatesReport, ID: nodeID, ElementID: -1}
	}
	if disp, ok = p.displacements.Get(nodeID); !ok {
		return -1, &MissingReferenceError{Table: readers.DisplacementsReport, ID: nodeID, ElementID: -1}
	}
	pos = len(p.packedCoords)
	p.index[nodeID] = pos
	p.nodeIDs = append(p.nodeIDs, nodeID)
	p.packedCoords = append(p.packedCoords, coord)
	p.packedDisps = append(p.packedDisps, disp)
	return
}

// Len is the number of packed nodes
func (p *Packer) Len() int { return len(p.packedCoords) }

// NodeIDs maps packed positions back to report node ids
func (p *Packer) NodeIDs() []int { return p.nodeIDs }

func (p *Packer) Coordinates() []types.Vec3 { return p.packedCoords }

func (p *Packer) Displacements() []types.Vec3 { return p.packedDisps }
