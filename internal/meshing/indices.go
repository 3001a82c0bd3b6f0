package meshing

// Each quad is drawn as the two triangles 0,1,2 and 0,2,3 of its own four
// vertices.
var quadFan = [6]uint32{0, 1, 2, 0, 2, 3}

// AppendQuadIndices appends indices for quadCount consecutive quads whose
// first vertex is baseVertex.
func AppendQuadIndices(dst []uint32, quadCount int, baseVertex uint32) []uint32 {
	dst = growIndices(dst, quadCount)
	for q := range quadCount {
		dst = appendQuad(dst, baseVertex+uint32(q)*4)
	}
	return dst
}

// AppendSortedQuadIndices appends indices drawing quads in the given order.
// order holds quad numbers relative to baseVertex.
func AppendSortedQuadIndices(dst []uint32, order []int, baseVertex uint32) []uint32 {
	dst = growIndices(dst, len(order))
	for _, q := range order {
		dst = appendQuad(dst, baseVertex+uint32(q)*4)
	}
	return dst
}

func appendQuad(dst []uint32, first uint32) []uint32 {
	for _, i := range quadFan {
		dst = append(dst, first+i)
	}
	return dst
}

func growIndices(dst []uint32, quads int) []uint32 {
	if need := len(dst) + quads*6; need > cap(dst) {
		grown := make([]uint32, len(dst), need)
		copy(grown, dst)
		return grown
	}
	return dst
}
