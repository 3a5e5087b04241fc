package InputParameters

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/mitchellh/go-homedir"

	"github.com/notargets/femesh/readers"
)

// ReportFiles is a conversion job read from a YAML file. Report paths that
// are relative are taken relative to Directory.
type ReportFiles struct {
	Title         string `json:"Title"`
	Directory     string `json:"Directory"`
	Coordinates   string `json:"Coordinates"`
	Displacements string `json:"Displacements"`
	Triangles     string `json:"Triangles"`
	Quads         string `json:"Quads"`
	Stresses      string `json:"Stresses"`
	Palette       string `json:"Palette"`
	Output        string `json:"Output"`
	Format        string `json:"Format"`
	Midside       bool   `json:"Midside"`
}

const ExampleFile = `
########################################
Title: "Bracket, load case 3"
Directory: ~/runs/bracket
Coordinates: data/coordinates.dat
Displacements: data/displacements.dat
Triangles: data/triangles.dat
Quads: data/quadrangles.dat
Stresses: data/stresses.dat
Palette: data/pale.dat
Output: mesh.json
Format: json # or yaml
Midside: false # true keeps all 6 / 8 nodes of each element
########################################
`

func (rf *ReportFiles) Parse(data []byte) error {
	return yaml.Unmarshal(data, rf)
}

func (rf *ReportFiles) Print(w io.Writer) {
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", rf.Title)
	fmt.Fprintf(w, "[%s]\t\t= Directory\n", rf.Directory)
	for _, name := range readers.ReportNames {
		fmt.Fprintf(w, "[%s]\t\t= %s\n", *rf.field(name), name)
	}
	fmt.Fprintf(w, "[%s]\t\t= Output\n", rf.Output)
	fmt.Fprintf(w, "[%s]\t\t\t= Format\n", rf.Format)
	fmt.Fprintf(w, "[%v]\t\t\t= Midside nodes\n", rf.Midside)
}

// SetReport replaces the path of the named report when path is not empty
func (rf *ReportFiles) SetReport(name, path string) (err error) {
	f := rf.field(name)
	if f == nil {
		return fmt.Errorf("unknown report name %q", name)
	}
	if path != "" {
		*f = path
	}
	return
}

// Paths resolves the six report paths, keyed by report name. Every report
// must be named.
func (rf *ReportFiles) Paths() (paths map[string]string, err error) {
	var dir string
	if dir, err = homedir.Expand(rf.Directory); err != nil {
		return nil, fmt.Errorf("expanding directory %q: %w", rf.Directory, err)
	}
	paths = make(map[string]string, len(readers.ReportNames))
	for _, name := range readers.ReportNames {
		p := *rf.field(name)
		if p == "" {
			return nil, fmt.Errorf("%w: no file given for the %s report", readers.ErrMissingSource, name)
		}
		if p, err = homedir.Expand(p); err != nil {
			return nil, fmt.Errorf("expanding %s path %q: %w", name, p, err)
		}
		if !filepath.IsAbs(p) && dir != "" {
			p = filepath.Join(dir, p)
		}
		paths[name] = p
	}
	return
}

func (rf *ReportFiles) field(name string) *string {
	switch name {
	case readers.CoordinatesReport:
		return &rf.Coordinates
	case readers.DisplacementsReport:
		return &rf.Displacements
	case readers.TrianglesReport:
		return &rf.Triangles
	case readers.QuadsReport:
		return &rf.Quads
	case readers.StressesReport:
		return &rf.Stresses
	case readers.PaletteReport:
		return &rf.Palette
	}
	return nil
}
