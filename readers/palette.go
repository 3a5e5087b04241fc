package readers

import (
	"github.com/notargets/femesh/types"
)

var (
	// palette hls <skip> <h> <l> <s>, components as fractions. The leading
	// field carries no meaning that we know of and is dropped.
	paletteFractionPattern = pattern{
		word("palette"), word("hls"),
		float(false), float(true), float(true), float(true),
	}
	// palette hls <h> <l> <s>, hue in degrees, lightness and saturation in percent
	paletteDegreePattern = pattern{
		word("palette"), word("hls"),
		number(true), number(true), number(true),
	}
)

// ReadPalette extracts the colour ramp stops in the order they appear. The
// four field variant is preferred when both could match.
func ReadPalette(text string) (stops []types.HLSStop) {
	stops = []types.HLSStop{}
	scan(text, func(which int, caps []string) {
		units := types.Fractions
		if which == 1 {
			units = types.Degrees
		}
		stops = append(stops, types.HLSStop{
			H:     atof(caps[0]),
			L:     atof(caps[1]),
			S:     atof(caps[2]),
			Units: units,
		})
	}, paletteFractionPattern, paletteDegreePattern)
	return
}
