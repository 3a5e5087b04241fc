package mesh

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/femesh/readers"
	"github.com/notargets/femesh/types"
)

// The worked example: one triangle over three nodes, no quads
func exampleSources() readers.Sources {
	return readers.Sources{
		Coordinates: `
   I 1 X 0.0 Y 0.0 Z 0.0
   I 2 X 1.0 Y 0.0 Z 0.0
   I 3 X 0.0 Y 1.0 Z 0.0
`,
		Displacements: `
 | 1 | 0.0 0.0 0.0 |
 | 2 | 0.0 0.0 0.0 |
 | 3 | 0.0 0.0 0.0 |
`,
		Stresses:  ` | 10 | 5.5 |`,
		Triangles: ` I 10 AT 0 0 N 1 -1 2 -1 3 -1`,
		Quads:     ``,
		Palette:   `palette hls 0 0 100`,
	}
}

/*
mixedSources describes two quads and two triangles sharing corners. Node n
sits at (n, 2n, 3n) and is displaced by (-n, 0, n), so any packed entry can be
traced back to its report id. Nodes 5-7 only appear as midside nodes, node 50
is used by no element at all.
*/
func mixedSources() readers.Sources {
	var coords, disps strings.Builder
	for _, n := range []int{50, 1, 2, 3, 4, 5, 6, 7, 8, 9} {
		fmt.Fprintf(&coords, " I %d X %d.0 Y %d.0 Z %d.0\n", n, n, 2*n, 3*n)
		fmt.Fprintf(&disps, " | %d | %d.0 0.0 %d.0 |\n", n, -n, n)
	}
	return readers.Sources{
		Coordinates:   "  NODE  X  Y  Z\n" + coords.String(),
		Displacements: disps.String(),
		Stresses: `
 | 10 | -3.0 |
 | 11 | 4.0 |
 | 30 | 1.5 |
 | 31 | 2.5 |
 | 99 | 7.0 |
`,
		Quads: `
 I 30 AT 1 1 N 4 -5 3 -6 2 -7 1 -8
 I 31 AT 1 1 N 3 -6 9 -5 8 -7 2 -8
`,
		Triangles: `
 I 10 AT 0 0 N 1 -5 2 -6 9 -7
 I 11 AT 0 0 N 8 -5 9 -6 2 -7
`,
		Palette: `
palette hls 0 50 100
palette hls 240 50 100
`,
	}
}

func TestConvertExample(t *testing.T) {
	doc, err := Convert(exampleSources())
	require.NoError(t, err)

	assert.Equal(t, []types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, doc.Coordinates)
	assert.Equal(t, []types.Vec3{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}, doc.Displacements)
	require.Len(t, doc.Elements, 2)

	quads := doc.Elements[0]
	assert.Equal(t, "P8", quads.Type)
	assert.Empty(t, quads.Cells)
	assert.Empty(t, quads.Stresses)

	tris := doc.Elements[1]
	assert.Equal(t, "P6", tris.Type)
	assert.Equal(t, [][]int{{0, 1, 2}}, tris.Cells)
	assert.Equal(t, []float64{5.5}, tris.Stresses)

	assert.Equal(t, []types.RGB{{0, 0, 0}}, doc.Palette)

	b, err := Encode(doc, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, `{"coordinates":[[0,0,0],[1,0,0],[0,1,0]],`+
		`"displacements":[[0,0,0],[0,0,0],[0,0,0]],`+
		`"elements":[{"cells":[],"stresses":[],"type":"P8"},{"cells":[[0,1,2]],"stresses":[5.5],"type":"P6"}],`+
		`"palette":[[0,0,0]]}`, string(b))
}

func TestConvertMissingReference(t *testing.T) {
	t.Run("Coordinate", func(t *testing.T) {
		src := exampleSources()
		src.Triangles = ` I 10 AT 0 0 N 1 -1 99 -1 3 -1`
		src.Displacements += " | 99 | 0 0 0 |\n"
		doc, err := Convert(src)
		require.Error(t, err)
		assert.Nil(t, doc)
		assert.True(t, errors.Is(err, ErrMissingReference))
		var mre *MissingReferenceError
		require.True(t, errors.As(err, &mre))
		assert.Equal(t, readers.CoordinatesReport, mre.Table)
		assert.Equal(t, 99, mre.ID)
		assert.Equal(t, Triangle, mre.Kind)
		assert.Equal(t, 10, mre.ElementID)
		assert.Contains(t, err.Error(), "Triangle element 10 refers to id 99")
	})
	t.Run("Displacement", func(t *testing.T) {
		src := exampleSources()
		src.Displacements = " | 1 | 0 0 0 |\n | 3 | 0 0 0 |\n"
		doc, err := Convert(src)
		assert.Nil(t, doc)
		var mre *MissingReferenceError
		require.True(t, errors.As(err, &mre))
		assert.Equal(t, readers.DisplacementsReport, mre.Table)
		assert.Equal(t, 2, mre.ID)
	})
	t.Run("Stress", func(t *testing.T) {
		src := mixedSources()
		src.Stresses = strings.Replace(src.Stresses, "| 31 | 2.5 |", "", 1)
		doc, err := Convert(src)
		assert.Nil(t, doc)
		var mre *MissingReferenceError
		require.True(t, errors.As(err, &mre))
		assert.Equal(t, readers.StressesReport, mre.Table)
		assert.Equal(t, Quad, mre.Kind)
		assert.Equal(t, 31, mre.ElementID)
	})
	t.Run("MidsideOnlyWhenEmitted", func(t *testing.T) {
		src := exampleSources()
		src.Triangles = ` I 10 AT 0 0 N 1 -77 2 -77 3 -77`
		_, err := Convert(src)
		assert.NoError(t, err, "corner cells never look midside nodes up")
		_, err = Convert(src, WithMidsideNodes(true))
		assert.True(t, errors.Is(err, ErrMissingReference))
	})
}

// cornerIDs returns the corner node ids of every row of conn, in scan order
func cornerIDs(conn *readers.Table[[]int], midside bool) (rows [][]int) {
	_ = conn.Each(func(_ int, nodes []int) error {
		var row []int
		for i, n := range nodes {
			if midside || i%2 == 0 {
				row = append(row, n)
			}
		}
		rows = append(rows, row)
		return nil
	})
	return
}

func TestConvertProperties(t *testing.T) {
	for _, midside := range []bool{false, true} {
		t.Run(fmt.Sprintf("midside=%v", midside), func(t *testing.T) {
			src := mixedSources()
			recs := readers.ReadAll(src)
			doc, err := Convert(src, WithMidsideNodes(midside))
			require.NoError(t, err)

			blocks := map[ElementKind][][]int{
				Quad:     cornerIDs(recs.Quads, midside),
				Triangle: cornerIDs(recs.Triangles, midside),
			}
			distinct := make(map[int]bool)
			for _, rows := range blocks {
				for _, row := range rows {
					for _, n := range row {
						distinct[n] = true
					}
				}
			}
			// Every referenced node packed exactly once, nothing else
			assert.Len(t, doc.Coordinates, len(distinct))
			assert.Len(t, doc.Displacements, len(distinct))
			seen := make(map[float64]bool)
			for i, c := range doc.Coordinates {
				id := c[0]
				assert.False(t, seen[id], "node %v packed twice", id)
				seen[id] = true
				assert.True(t, distinct[int(id)])
				// Coordinates and displacements describe the same node
				assert.Equal(t, types.Vec3{-id, 0, id}, doc.Displacements[i])
			}
			assert.False(t, seen[50], "unreferenced node must be pruned")

			for _, kind := range AssemblyOrder {
				blk := doc.Block(kind)
				require.NotNil(t, blk)
				ids := recs.Quads.IDs()
				if kind == Triangle {
					ids = recs.Triangles.IDs()
				}
				require.Len(t, blk.Cells, len(ids))
				require.Len(t, blk.Stresses, len(ids))
				for i, cell := range blk.Cells {
					// Stresses follow the cells' source elements
					stress, _ := recs.Stresses.Get(ids[i])
					assert.Equal(t, stress, blk.Stresses[i])
					// Node order inside a cell is the record order
					var got []int
					for _, v := range cell {
						got = append(got, int(doc.Coordinates[v][0]))
					}
					assert.Equal(t, blocks[kind][i], got)
				}
			}
		})
	}
}

func TestConvertPackingOrder(t *testing.T) {
	doc, err := Convert(mixedSources())
	require.NoError(t, err)
	// quads first: 4 3 2 1 | 3 9 8 2, then triangles add nothing new
	var ids []float64
	for _, c := range doc.Coordinates {
		ids = append(ids, c[0])
	}
	assert.Equal(t, []float64{4, 3, 2, 1, 9, 8}, ids)
	assert.Equal(t, [][]int{{0, 1, 2, 3}, {1, 4, 5, 2}}, doc.Elements[0].Cells)
	assert.Equal(t, []float64{1.5, 2.5}, doc.Elements[0].Stresses)
	assert.Equal(t, [][]int{{3, 2, 4}, {5, 4, 2}}, doc.Elements[1].Cells)
	assert.Equal(t, []float64{-3, 4}, doc.Elements[1].Stresses)

	doc, err = Convert(mixedSources(), WithMidsideNodes(true))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, doc.Elements[0].Cells[0])
	assert.Len(t, doc.Elements[1].Cells[0], 6)
	assert.Len(t, doc.Coordinates, 9)
}

func TestConvertPalette(t *testing.T) {
	doc, err := Convert(mixedSources())
	require.NoError(t, err)
	require.Len(t, doc.Palette, 2)
	// source order is red, blue
	assert.InDeltaSlice(t, []float64{0, 0, 1}, doc.Palette[0][:], 1.e-9)
	assert.InDeltaSlice(t, []float64{1, 0, 0}, doc.Palette[1][:], 1.e-9)
}

func TestConvertEmpty(t *testing.T) {
	doc, err := Convert(readers.Sources{})
	require.NoError(t, err)
	b, err := Encode(doc, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, `{"coordinates":[],"displacements":[],"elements":[`+
		`{"cells":[],"stresses":[],"type":"P8"},{"cells":[],"stresses":[],"type":"P6"}],"palette":[]}`,
		string(b))
}

func TestEncodeDeterministic(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		d1, err := Convert(mixedSources())
		require.NoError(t, err)
		d2, err := Convert(mixedSources())
		require.NoError(t, err)
		b1, err := Encode(d1, f)
		require.NoError(t, err)
		b2, err := Encode(d2, f)
		require.NoError(t, err)
		assert.Equal(t, b1, b2, "format %v", f)
	}

	doc, err := Convert(exampleSources())
	require.NoError(t, err)
	b, err := Encode(doc, FormatYAML)
	require.NoError(t, err)
	y := string(b)
	assert.True(t, strings.HasPrefix(y, "coordinates:"))
	assert.Contains(t, y, "type: P6")
	assert.Less(t, strings.Index(y, "displacements:"), strings.Index(y, "elements:"))
	assert.Less(t, strings.Index(y, "elements:"), strings.Index(y, "palette:"))

	_, err = Encode(doc, Format(9))
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"json": FormatJSON, "JSON": FormatJSON, "": FormatJSON,
		"yaml": FormatYAML, " yml ": FormatYAML,
	} {
		f, err := ParseFormat(name)
		assert.NoError(t, err)
		assert.Equal(t, want, f, name)
	}
	_, err := ParseFormat("xml")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	assert.Equal(t, "yaml", FormatYAML.String())
}

func TestPacker(t *testing.T) {
	recs := readers.ReadAll(mixedSources())
	disps := readers.NewTable[types.Vec3]()
	_ = recs.Displacements.Each(func(id int, d types.Vec3) error {
		if id != 7 {
			disps.Put(id, d)
		}
		return nil
	})
	p := NewPacker(recs.Coordinates, disps)
	assert.Equal(t, 0, p.Len())

	pos, err := p.Index(9)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
	pos, err = p.Index(3)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	pos, err = p.Index(9)
	require.NoError(t, err)
	assert.Equal(t, 0, pos, "Index is idempotent")

	_, err = p.Index(7)
	assert.True(t, errors.Is(err, ErrMissingReference))
	_, err = p.Index(1234)
	assert.True(t, errors.Is(err, ErrMissingReference))
	assert.Equal(t, 2, p.Len(), "failed lookups assign nothing")

	assert.Equal(t, []int{9, 3}, p.NodeIDs())
	assert.Equal(t, []types.Vec3{{9, 18, 27}, {3, 6, 9}}, p.Coordinates())
	assert.Equal(t, []types.Vec3{{-9, 0, 9}, {-3, 0, 3}}, p.Displacements())
}

func TestAssembleKeepsWinding(t *testing.T) {
	recs := readers.ReadAll(readers.Sources{
		Coordinates:   "I 1 X 1 Y 0 Z 0\nI 2 X 2 Y 0 Z 0\nI 3 X 3 Y 0 Z 0",
		Displacements: "| 1 | 0 0 0 |\n| 2 | 0 0 0 |\n| 3 | 0 0 0 |",
		Stresses:      "| 1 | 1.0 |\n| 2 | 2.0 |",
		Triangles:     "I 1 AT 0 0 N 3 -9 1 -9 2 -9\nI 2 AT 0 0 N 2 -9 3 -9 1 -9",
	})
	p := NewPacker(recs.Coordinates, recs.Displacements)
	blk, err := Assemble(Triangle, recs.Triangles, recs.Stresses, p, false)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2}, {2, 0, 1}}, blk.Cells)
	assert.Equal(t, []int{1, 2}, blk.ElementIDs)
	assert.Equal(t, []int{3, 1, 2}, p.NodeIDs())
	assert.Equal(t, "P6", blk.ElementBlock().Type)
}

func TestElementKind(t *testing.T) {
	assert.Equal(t, "P8", Quad.Tag())
	assert.Equal(t, "P6", Triangle.Tag())
	assert.Equal(t, 4, Quad.Corners())
	assert.Equal(t, 3, Triangle.Corners())
	assert.Equal(t, 8, Quad.RecordNodes())
	assert.Equal(t, 6, Triangle.RecordNodes())
	assert.Equal(t, "ElementKind(5)", ElementKind(5).String())
	assert.Panics(t, func() { ElementKind(5).Tag() })
	assert.Nil(t, (&Document{}).Block(Quad))
}

func TestConvertLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	_, err := Convert(mixedSources(), WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("extracted report records").Len())
	assert.Equal(t, 2, logs.FilterMessage("assembled element block").Len())
	pruned := logs.FilterMessage("pruned unreferenced nodes").All()
	require.Len(t, pruned, 1)
	assert.Equal(t, int64(4), pruned[0].ContextMap()["count"])

	_, err = Convert(mixedSources(), WithLogger(nil))
	assert.NoError(t, err)
}

func TestSummarize(t *testing.T) {
	doc, err := Convert(mixedSources())
	require.NoError(t, err)
	s, err := Summarize(doc)
	require.NoError(t, err)

	assert.Equal(t, 6, s.Vertices)
	assert.Equal(t, 2, s.Quads)
	assert.Equal(t, 2, s.Triangles)
	assert.Equal(t, 2, s.PaletteStops)
	assert.Equal(t, [2]types.Vec3{{1, 2, 3}, {9, 18, 27}}, s.PositionBounds)
	assert.Equal(t, [2]types.Vec3{{-9, 0, 1}, {-1, 0, 9}}, s.DisplacementBounds)
	assert.InDelta(t, 9*math.Sqrt2, s.MaxDisplacement, 1.e-12)
	assert.Equal(t, -3., s.StressMin)
	assert.Equal(t, 4., s.StressMax)
	assert.InDelta(t, 1.25, s.StressMean, 1.e-12)
	// packed order is nodes 4 3 2 1 9 8
	assert.Equal(t, []int{1, 2, 4, 2, 3, 2}, s.Valence)
	assert.Equal(t, 1, s.MinValence)
	assert.Equal(t, 4, s.MaxValence)
	assert.Equal(t, 0, s.Orphans)
	assert.Equal(t, 9, s.Edges)
	assert.Equal(t, 4, s.BoundaryEdges)

	var out strings.Builder
	s.Print(&out)
	assert.Contains(t, out.String(), "= Vertices")
	assert.Contains(t, out.String(), "= Orphan vertices")
}

func TestSummarizeDegenerate(t *testing.T) {
	doc, err := Convert(readers.Sources{})
	require.NoError(t, err)
	s, err := Summarize(doc)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Vertices)
	assert.Empty(t, s.Valence)

	doc = &Document{
		Coordinates:   []types.Vec3{{0, 0, 0}, {1, 1, 1}},
		Displacements: []types.Vec3{{0, 0, 0}, {0, 0, 0}},
		Elements: []ElementBlock{
			{Type: "P6", Cells: [][]int{{0, 0, 0}}, Stresses: []float64{1}},
		},
	}
	s, err = Summarize(doc)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, s.Valence)
	assert.Equal(t, 1, s.Orphans)
	assert.Equal(t, 0, s.Edges, "a collapsed cell has no edges")

	doc.Elements[0].Cells[0][2] = 5
	_, err = Summarize(doc)
	assert.Error(t, err)
}
