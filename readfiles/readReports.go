package readfiles

import (
	"fmt"
	"os"

	"github.com/notargets/femesh/readers"
)

// ReadReports loads the report files in paths, keyed by report name, into a
// Sources. Every name in readers.ReportNames must have a path.
func ReadReports(paths map[string]string) (src readers.Sources, err error) {
	for _, name := range readers.ReportNames {
		fileName, ok := paths[name]
		if !ok || fileName == "" {
			err = fmt.Errorf("%w: no file given for the %s report", readers.ErrMissingSource, name)
			return
		}
		var data []byte
		if data, err = os.ReadFile(fileName); err != nil {
			err = fmt.Errorf("reading %s report: %w", name, err)
			return
		}
		if err = src.Set(name, string(data)); err != nil {
			return
		}
	}
	return
}
