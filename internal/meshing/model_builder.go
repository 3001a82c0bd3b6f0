package meshing

import "sectionmesh/internal/vertexformat"

// ModelBuilder routes the geometry of one render pass into per-facing
// buckets. In a sorted pass every facing maps to FacingUnassigned.
type ModelBuilder struct {
	pass        *RenderPass
	splitBySide bool
	buckets     [FacingCount]*MeshBufferBuilder
	info        *SectionInfo
}

func newModelBuilder(pass *RenderPass, format *vertexformat.Format, initialBytes int, analyzers AnalyzerFactory) *ModelBuilder {
	mb := &ModelBuilder{pass: pass, splitBySide: !pass.Sorted}
	for f := range mb.buckets {
		var analyzer QuadAnalyzer
		if pass.Sorted && Facing(f) == FacingUnassigned && analyzers != nil {
			analyzer = analyzers(format)
		}
		mb.buckets[f] = NewMeshBufferBuilder(format, initialBytes, analyzer)
	}
	return mb
}

func (mb *ModelBuilder) Pass() *RenderPass { return mb.pass }

// VertexBuffer returns the bucket that receives quads facing f.
func (mb *ModelBuilder) VertexBuffer(f Facing) *MeshBufferBuilder {
	if !mb.splitBySide {
		f = FacingUnassigned
	}
	return mb.buckets[f]
}

// AddSprite records a sprite used by the geometry being emitted.
func (mb *ModelBuilder) AddSprite(name string) {
	mb.info.AddSprite(name)
}

// IsEmpty reports whether no bucket holds vertices.
func (mb *ModelBuilder) IsEmpty() bool {
	for _, b := range mb.buckets {
		if !b.IsEmpty() {
			return false
		}
	}
	return true
}

func (mb *ModelBuilder) begin(info *SectionInfo) {
	mb.info = info
	for _, b := range mb.buckets {
		b.Begin()
	}
}

func (mb *ModelBuilder) destroy() {
	for _, b := range mb.buckets {
		b.Destroy()
	}
	mb.info = nil
}
