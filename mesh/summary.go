package mesh

import (
	"fmt"
	"io"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/notargets/femesh/types"
)

// Summary holds the ranges a viewer needs to scale a Document for display
// together with some connectivity statistics
type Summary struct {
	Vertices, Quads, Triangles, PaletteStops int

	PositionBounds     [2]types.Vec3 // [min, max] per axis
	DisplacementBounds [2]types.Vec3
	MaxDisplacement    float64 // largest displacement magnitude

	StressMin, StressMax, StressMean float64

	Valence                []int // number of cells using each packed vertex
	MinValence, MaxValence int
	Orphans                int // packed vertices used by no cell

	Edges, BoundaryEdges int // distinct cell edges, and those bordering one cell only
}

// Summarize measures doc. It fails if a cell indexes past the packed arrays.
func Summarize(doc *Document) (s *Summary, err error) {
	s = &Summary{
		Vertices:     len(doc.Coordinates),
		PaletteStops: len(doc.Palette),
	}
	if blk := doc.Block(Quad); blk != nil {
		s.Quads = len(blk.Cells)
	}
	if blk := doc.Block(Triangle); blk != nil {
		s.Triangles = len(blk.Cells)
	}
	s.PositionBounds = bounds(doc.Coordinates)
	s.DisplacementBounds = bounds(doc.Displacements)
	for _, d := range doc.Displacements {
		s.MaxDisplacement = math.Max(s.MaxDisplacement, r3.Norm(r3.Vec{X: d[0], Y: d[1], Z: d[2]}))
	}

	var stresses []float64
	for _, blk := range doc.Elements {
		stresses = append(stresses, blk.Stresses...)
	}
	if len(stresses) != 0 {
		s.StressMin, s.StressMax = floats.Min(stresses), floats.Max(stresses)
		s.StressMean = stat.Mean(stresses, nil)
	}

	if s.Valence, err = valence(doc); err != nil {
		return nil, err
	}
	for i, v := range s.Valence {
		if i == 0 || v < s.MinValence {
			s.MinValence = v
		}
		if v > s.MaxValence {
			s.MaxValence = v
		}
		if v == 0 {
			s.Orphans++
		}
	}
	s.Edges, s.BoundaryEdges = edges(doc)
	return
}

func bounds(vs []types.Vec3) (b [2]types.Vec3) {
	if len(vs) == 0 {
		return
	}
	axis := make([]float64, len(vs))
	for dim := 0; dim < 3; dim++ {
		for i, v := range vs {
			axis[i] = v[dim]
		}
		b[0][dim], b[1][dim] = floats.Min(axis), floats.Max(axis)
	}
	return
}

// valence assembles the cell to vertex incidence matrix, then sums it down its
// columns: CToV^T * 1. A cell listing the same vertex twice counts once.
func valence(doc *Document) (val []int, err error) {
	var (
		Nv = len(doc.Coordinates)
		Nc int
	)
	val = make([]int, Nv)
	for _, blk := range doc.Elements {
		Nc += len(blk.Cells)
	}
	if Nv == 0 || Nc == 0 {
		return
	}
	CToV := sparse.NewDOK(Nc, Nv)
	var k int
	for _, blk := range doc.Elements {
		for i, cell := range blk.Cells {
			for _, v := range cell {
				if v < 0 || v >= Nv {
					return nil, fmt.Errorf("%s cell %d indexes vertex %d, have %d vertices",
						blk.Type, i, v, Nv)
				}
				CToV.Set(k, v, 1)
			}
			k++
		}
	}
	ones := make([]float64, Nc)
	floats.AddConst(1, ones)
	var sum mat.VecDense
	sum.MulVec(CToV.ToCSR().T(), mat.NewVecDense(Nc, ones))
	for i := range val {
		val[i] = int(math.Round(sum.AtVec(i)))
	}
	return
}

// edges walks each cell's node ring. Edges collapsed onto one vertex are
// skipped, cell indices must already be in range.
func edges(doc *Document) (total, boundary int) {
	uses := make(map[types.EdgeKey]int)
	for _, blk := range doc.Elements {
		for _, cell := range blk.Cells {
			for i, v := range cell {
				w := cell[(i+1)%len(cell)]
				if v != w {
					uses[types.NewEdgeKey([2]int{v, w})]++
				}
			}
		}
	}
	for _, n := range uses {
		if n == 1 {
			boundary++
		}
	}
	return len(uses), boundary
}

func (s *Summary) Print(w io.Writer) {
	fmt.Fprintf(w, "[%d]\t\t\t\t= Vertices\n", s.Vertices)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Quads (P8)\n", s.Quads)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Triangles (P6)\n", s.Triangles)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Palette stops\n", s.PaletteStops)
	fmt.Fprintf(w, "%v - %v\t= Position bounds\n", s.PositionBounds[0], s.PositionBounds[1])
	fmt.Fprintf(w, "%v - %v\t= Displacement bounds\n", s.DisplacementBounds[0], s.DisplacementBounds[1])
	fmt.Fprintf(w, "%12.5g\t\t\t= Max displacement\n", s.MaxDisplacement)
	fmt.Fprintf(w, "%12.5g %12.5g %12.5g\t= Stress min, max, mean\n", s.StressMin, s.StressMax, s.StressMean)
	fmt.Fprintf(w, "[%d, %d]\t\t\t\t= Vertex valence min, max\n", s.MinValence, s.MaxValence)
	fmt.Fprintf(w, "[%d]\t\t\t\t= Orphan vertices\n", s.Orphans)
	fmt.Fprintf(w, "[%d, %d]\t\t\t\t= Edges, boundary edges\n", s.Edges, s.BoundaryEdges)
}
