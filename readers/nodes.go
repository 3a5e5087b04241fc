package readers

import (
	"github.com/notargets/femesh/types"
)

var (
	// I <id> X <x> Y <y> Z <z>
	coordinatePattern = pattern{
		word("I"), number(true),
		word("X"), float(true),
		word("Y"), float(true),
		word("Z"), float(true),
	}
	// | <id> | <dx> <dy> <dz> |
	displacementPattern = pattern{
		word("|"), number(true), word("|"),
		float(true), float(true), float(true),
		word("|"),
	}
)

// ReadCoordinates extracts nodal coordinates keyed by node id
func ReadCoordinates(text string) (coords *Table[types.Vec3]) {
	coords = NewTable[types.Vec3]()
	scan(text, func(_ int, caps []string) {
		coords.Put(atoi(caps[0]), toVec3(caps[1:]))
	}, coordinatePattern)
	return
}

// ReadDisplacements extracts nodal displacement vectors keyed by node id
func ReadDisplacements(text string) (disps *Table[types.Vec3]) {
	disps = NewTable[types.Vec3]()
	scan(text, func(_ int, caps []string) {
		disps.Put(atoi(caps[0]), toVec3(caps[1:]))
	}, displacementPattern)
	return
}

func toVec3(toks []string) (v types.Vec3) {
	for i := range v {
		v[i] = atof(toks[i])
	}
	return
}
