package mesh

import (
	"errors"

	"github.com/notargets/femesh/readers"
)

// Block is one element kind assembled against a Packer. ElementIDs, Cells
// and Stresses are index aligned and follow the connectivity scan order.
type Block struct {
	Kind       ElementKind
	ElementIDs []int
	Cells      [][]int
	Stresses   []float64
}

// Assemble packs every element of connectivity, in scan order. Each cell
// keeps the node order of its record. With midside false a cell holds the
// corner nodes only; with midside true it holds every node of the record.
func Assemble(kind ElementKind, connectivity *readers.Table[[]int], stresses *readers.Table[float64],
	p *Packer, midside bool) (blk *Block, err error) {
	var (
		n    = connectivity.Len()
		step = 2
	)
	if midside {
		step = 1
	}
	blk = &Block{
		Kind:       kind,
		ElementIDs: make([]int, 0, n),
		Cells:      make([][]int, 0, n),
		Stresses:   make([]float64, 0, n),
	}
	err = connectivity.Each(func(elementID int, nodes []int) (err error) {
		stress, ok := stresses.Get(elementID)
		if !ok {
			return &MissingReferenceError{
				Table: readers.StressesReport, ID: elementID, Kind: kind, ElementID: elementID,
			}
		}
		cell := make([]int, 0, len(nodes)/step)
		for i := 0; i < len(nodes); i += step {
			var pos int
			if pos, err = p.Index(nodes[i]); err != nil {
				var mre *MissingReferenceError
				if errors.As(err, &mre) {
					mre.Kind, mre.ElementID = kind, elementID
				}
				return
			}
			cell = append(cell, pos)
		}
		blk.ElementIDs = append(blk.ElementIDs, elementID)
		blk.Cells = append(blk.Cells, cell)
		blk.Stresses = append(blk.Stresses, stress)
		return
	})
	if err != nil {
		return nil, err
	}
	return
}

// ElementBlock is the document form of the block
func (b *Block) ElementBlock() ElementBlock {
	return ElementBlock{
		Cells:    b.Cells,
		Stresses: b.Stresses,
		Type:     b.Kind.Tag(),
	}
}
