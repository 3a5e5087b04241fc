package mesh

import (
	"fmt"

	"github.com/notargets/femesh/readers"
	"github.com/notargets/femesh/types"
)

// ElementKind is one of the two face element types found in a report
type ElementKind uint8

const (
	Quad ElementKind = iota
	Triangle
)

func (k ElementKind) String() string {
	switch k {
	case Quad:
		return "Quad"
	case Triangle:
		return "Triangle"
	default:
		return fmt.Sprintf("ElementKind(%d)", uint8(k))
	}
}

// Tag is the type label of the kind's block in the output document. The
// labels name the quadratic elements (8 node quad, 6 node triangle) that
// viewers interpolate the block as.
func (k ElementKind) Tag() string {
	switch k {
	case Quad:
		return "P8"
	case Triangle:
		return "P6"
	}
	panic(fmt.Errorf("no tag for element kind %v", k))
}

// RecordNodes is the number of node ids in one connectivity record
func (k ElementKind) RecordNodes() int {
	switch k {
	case Quad:
		return readers.QuadNodes
	case Triangle:
		return readers.TriangleNodes
	}
	panic(fmt.Errorf("no node count for element kind %v", k))
}

// Corners is the number of corner nodes, the node count of a linear cell
func (k ElementKind) Corners() int { return k.RecordNodes() / 2 }

/*
Document is the packed mesh handed to a viewer. Field order is alphabetical,
and so is the order of ElementBlock's fields, which keeps the encoded keys in
sorted order.

	Coordinates[i] and Displacements[i] describe the same node
	Elements[0] is the quad block, Elements[1] the triangle block
	each Cells entry indexes Coordinates
*/
type Document struct {
	Coordinates   []types.Vec3   `json:"coordinates"`
	Displacements []types.Vec3   `json:"displacements"`
	Elements      []ElementBlock `json:"elements"`
	Palette       []types.RGB    `json:"palette"`
}

// ElementBlock holds the cells of one element kind with one stress per cell
type ElementBlock struct {
	Cells    [][]int   `json:"cells"`
	Stresses []float64 `json:"stresses"`
	Type     string    `json:"type"`
}

// Block returns the document's block for kind, or nil
func (d *Document) Block(kind ElementKind) *ElementBlock {
	tag := kind.Tag()
	for i := range d.Elements {
		if d.Elements[i].Type == tag {
			return &d.Elements[i]
		}
	}
	return nil
}
