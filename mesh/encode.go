package mesh

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
)

// Format selects the encoding of a Document
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

func ParseFormat(name string) (f Format, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Encode renders doc with sorted keys and no insignificant whitespace, so
// equal documents always encode to the same bytes.
func Encode(doc *Document, f Format) (b []byte, err error) {
	if b, err = json.Marshal(doc); err != nil {
		return nil, fmt.Errorf("encoding mesh document: %w", err)
	}
	switch f {
	case FormatJSON:
		return
	case FormatYAML:
		if b, err = yaml.JSONToYAML(b); err != nil {
			return nil, fmt.Errorf("encoding mesh document: %w", err)
		}
		return
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, f)
}
