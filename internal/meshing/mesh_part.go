package meshing

import "github.com/samber/lo"

// VertexRange locates one facing's vertices inside a merged buffer.
type VertexRange struct {
	Start int
	Count int
}

// MeshPart is the finished geometry of one render pass of one section.
// It is immutable; ownership passes to the caller.
type MeshPart struct {
	pass      *RenderPass
	vertices  []byte
	ranges    [FacingCount]VertexRange
	present   [FacingCount]bool
	indices   []uint32
	sortState SortState
}

func (m *MeshPart) Pass() *RenderPass { return m.pass }

// Vertices returns the merged vertex bytes.
func (m *MeshPart) Vertices() []byte { return m.vertices }

// Range returns the vertices of facing f. ok is false when the facing
// contributed nothing.
func (m *MeshPart) Range(f Facing) (r VertexRange, ok bool) {
	return m.ranges[f], m.present[f]
}

// Facings lists the facings present, in buffer order.
func (m *MeshPart) Facings() []Facing {
	return lo.Filter(FacingOrder[:], func(f Facing, _ int) bool { return m.present[f] })
}

// VertexCount returns the total number of vertices across all facings.
func (m *MeshPart) VertexCount() int {
	return lo.SumBy(m.Facings(), func(f Facing) int { return m.ranges[f].Count })
}

// Indices returns the index buffer of a sorted pass, nil otherwise.
func (m *MeshPart) Indices() []uint32 { return m.indices }

// SortState returns the sort metadata of a sorted pass, nil otherwise.
func (m *MeshPart) SortState() SortState { return m.sortState }
