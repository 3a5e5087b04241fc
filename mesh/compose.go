package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/notargets/femesh/palette"
	"github.com/notargets/femesh/readers"
)

// AssemblyOrder is the order element kinds are packed in. It decides which
// node receives which packed index, so changing it changes the output of
// every conversion.
var AssemblyOrder = [...]ElementKind{Quad, Triangle}

/*
Convert extracts the six reports in src and packs them into a Document.

Quads are assembled first, then triangles, and vertices are numbered in the
order their cells reach them. Any element whose stress is missing, or any
cell node without a coordinate or displacement, fails the whole conversion
with an error wrapping ErrMissingReference and no Document.
*/
func Convert(src readers.Sources, opts ...Option) (doc *Document, err error) {
	var (
		o    = gatherOptions(opts...)
		recs = readers.ReadAll(src)
	)
	o.log.Debug("extracted report records",
		zap.Int("coordinates", recs.Coordinates.Len()),
		zap.Int("displacements", recs.Displacements.Len()),
		zap.Int("stresses", recs.Stresses.Len()),
		zap.Int("quads", recs.Quads.Len()),
		zap.Int("triangles", recs.Triangles.Len()),
		zap.Int("paletteStops", len(recs.Palette)),
	)
	return Compose(recs, opts...)
}

// Compose packs already extracted records; Convert is Compose over ReadAll
func Compose(recs *readers.Records, opts ...Option) (doc *Document, err error) {
	var (
		o      = gatherOptions(opts...)
		packer = NewPacker(recs.Coordinates, recs.Displacements)
		conn   = map[ElementKind]*readers.Table[[]int]{
			Quad:     recs.Quads,
			Triangle: recs.Triangles,
		}
	)
	doc = &Document{Elements: make([]ElementBlock, 0, len(AssemblyOrder))}
	for _, kind := range AssemblyOrder {
		var blk *Block
		if blk, err = Assemble(kind, conn[kind], recs.Stresses, packer, o.midside); err != nil {
			return nil, fmt.Errorf("assembling %s elements: %w", kind, err)
		}
		o.log.Debug("assembled element block",
			zap.Stringer("kind", kind),
			zap.Int("cells", len(blk.Cells)),
			zap.Int("packedVertices", packer.Len()),
		)
		doc.Elements = append(doc.Elements, blk.ElementBlock())
	}
	doc.Coordinates = packer.Coordinates()
	doc.Displacements = packer.Displacements()
	doc.Palette = palette.Build(recs.Palette)
	if unused := recs.Coordinates.Len() - packer.Len(); unused > 0 {
		o.log.Debug("pruned unreferenced nodes", zap.Int("count", unused))
	}
	return
}
