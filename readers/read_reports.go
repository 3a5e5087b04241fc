package readers

import (
	"errors"
	"fmt"

	"github.com/notargets/femesh/types"
)

// Names under which the six report blobs are supplied
const (
	CoordinatesReport   = "coordinates"
	DisplacementsReport = "displacements"
	TrianglesReport     = "triangles"
	QuadsReport         = "quads"
	StressesReport      = "stresses"
	PaletteReport       = "palette"
)

var ReportNames = []string{
	CoordinatesReport, DisplacementsReport, TrianglesReport,
	QuadsReport, StressesReport, PaletteReport,
}

var ErrMissingSource = errors.New("missing report source")

// Sources holds the raw text of the six reports of one analysis export
type Sources struct {
	Coordinates   string
	Displacements string
	Triangles     string
	Quads         string
	Stresses      string
	Palette       string
}

// SourcesFromMap picks the six reports out of blobs by name. Every name in
// ReportNames must be present, though any of them may be empty.
func SourcesFromMap(blobs map[string]string) (src Sources, err error) {
	for _, name := range ReportNames {
		text, ok := blobs[name]
		if !ok {
			err = fmt.Errorf("%w: %q", ErrMissingSource, name)
			return
		}
		*src.field(name) = text
	}
	return
}

// Set stores text under the named report
func (s *Sources) Set(name, text string) (err error) {
	f := s.field(name)
	if f == nil {
		return fmt.Errorf("unknown report name %q", name)
	}
	*f = text
	return
}

func (s *Sources) field(name string) *string {
	switch name {
	case CoordinatesReport:
		return &s.Coordinates
	case DisplacementsReport:
		return &s.Displacements
	case TrianglesReport:
		return &s.Triangles
	case QuadsReport:
		return &s.Quads
	case StressesReport:
		return &s.Stresses
	case PaletteReport:
		return &s.Palette
	}
	return nil
}

// Records is everything extracted from one set of Sources
type Records struct {
	Coordinates   *Table[types.Vec3]
	Displacements *Table[types.Vec3]
	Stresses      *Table[float64]
	Triangles     *Table[[]int]
	Quads         *Table[[]int]
	Palette       []types.HLSStop
}

func ReadAll(src Sources) *Records {
	return &Records{
		Coordinates:   ReadCoordinates(src.Coordinates),
		Displacements: ReadDisplacements(src.Displacements),
		Stresses:      ReadStresses(src.Stresses),
		Triangles:     ReadTriangles(src.Triangles),
		Quads:         ReadQuads(src.Quads),
		Palette:       ReadPalette(src.Palette),
	}
}
