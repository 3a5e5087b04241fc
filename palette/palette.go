// Package palette turns the hue/lightness/saturation colour ramp of an
// analysis report into the RGB stops a viewer samples stress colours from.
package palette

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/notargets/femesh/types"
)

// Normalize returns the stop's hue, lightness and saturation as fractions in
// [0,1], whatever convention the report used.
func Normalize(stop types.HLSStop) (h, l, s float64) {
	h, l, s = stop.H, stop.L, stop.S
	if stop.Units == types.Degrees {
		h /= 360
		l /= 100
		s /= 100
	}
	return
}

// ToRGB converts one stop with the standard HLS to RGB transform
func ToRGB(stop types.HLSStop) types.RGB {
	h, l, s := Normalize(stop)
	c := colorful.Hsl(360*h, s, l).Clamped()
	return types.RGB{c.R, c.G, c.B}
}

// Build converts every stop and returns them in the reverse of the order
// given. Stops are passed through one for one.
func Build(stops []types.HLSStop) (rgb []types.RGB) {
	rgb = make([]types.RGB, len(stops))
	for i, stop := range stops {
		rgb[len(stops)-1-i] = ToRGB(stop)
	}
	return
}
