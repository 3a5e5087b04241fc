package types

import "fmt"

// Vec3 is a nodal coordinate or displacement, stored as [x, y, z] so that it
// serializes as a three element array.
type Vec3 [3]float64

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}

// RGB is a palette colour with every component in [0,1]
type RGB [3]float64

// HLSUnits records the convention a palette stop was written in
type HLSUnits uint8

const (
	Degrees   HLSUnits = iota // hue in degrees, lightness and saturation in percent
	Fractions                 // all three components already in [0,1]
)

func (u HLSUnits) String() string {
	switch u {
	case Degrees:
		return "Degrees"
	case Fractions:
		return "Fractions"
	default:
		return fmt.Sprintf("HLSUnits(%d)", uint8(u))
	}
}

// HLSStop is one hue/lightness/saturation entry of a report colour ramp
type HLSStop struct {
	H, L, S float64
	Units   HLSUnits
}
