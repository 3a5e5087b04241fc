package readers

var (
	// | <id> | <value> |
	stressPattern = pattern{
		word("|"), number(true), word("|"), float(true), word("|"),
	}
	// I <id> AT <a> <b> N <n1> -<m1> <n2> -<m2> <n3> -<m3>
	// The two AT fields are not part of the connectivity.
	trianglePattern = pattern{
		word("I"), number(true),
		word("AT"), number(false), number(false),
		word("N"),
		number(true), negated(),
		number(true), negated(),
		number(true), negated(),
	}
	// I <id> AT <a> <b> N <n1> -<m1> <n2> -<m2> <n3> -<m3> <n4> -<m4>
	quadPattern = append(append(pattern{}, trianglePattern...),
		number(true), negated(),
	)
)

const (
	TriangleNodes = 6 // three corner / midside pairs
	QuadNodes     = 8 // four corner / midside pairs
)

// ReadStresses extracts the scalar stress of each element keyed by element id
func ReadStresses(text string) (stresses *Table[float64]) {
	stresses = NewTable[float64]()
	scan(text, func(_ int, caps []string) {
		stresses.Put(atoi(caps[0]), atof(caps[1]))
	}, stressPattern)
	return
}

// ReadTriangles extracts triangle connectivity keyed by element id. Each row
// holds TriangleNodes node ids alternating corner, midside, in record order.
func ReadTriangles(text string) *Table[[]int] {
	return readConnectivity(text, trianglePattern)
}

// ReadQuads extracts quadrilateral connectivity keyed by element id. Each row
// holds QuadNodes node ids alternating corner, midside, in record order.
func ReadQuads(text string) *Table[[]int] {
	return readConnectivity(text, quadPattern)
}

func readConnectivity(text string, p pattern) (conn *Table[[]int]) {
	conn = NewTable[[]int]()
	scan(text, func(_ int, caps []string) {
		conn.Put(atoi(caps[0]), atoiAll(caps[1:]))
	}, p)
	return
}
