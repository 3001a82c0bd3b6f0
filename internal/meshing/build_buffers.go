package meshing

import (
	"fmt"

	"sectionmesh/internal/profiling"
	"sectionmesh/internal/vertexformat"
	"sectionmesh/internal/world"
)

// BuildBuffers is the scratch state one worker uses to mesh one section
// at a time. It is reused across builds and never shared between
// goroutines.
type BuildBuffers struct {
	format   *vertexformat.Format
	passes   []*RenderPass
	builders map[*RenderPass]*ModelBuilder
	info     *SectionInfo

	begun     bool
	destroyed bool
}

// NewBuildBuffers allocates one ModelBuilder per pass. analyzers may be nil,
// in which case sorted passes carry no sort state.
func NewBuildBuffers(format *vertexformat.Format, passes []*RenderPass, initialBytes int, analyzers AnalyzerFactory) *BuildBuffers {
	b := &BuildBuffers{
		format:   format,
		passes:   passes,
		builders: make(map[*RenderPass]*ModelBuilder, len(passes)),
	}
	for _, p := range passes {
		b.builders[p] = newModelBuilder(p, format, initialBytes, analyzers)
	}
	return b
}

func (b *BuildBuffers) Format() *vertexformat.Format { return b.format }

func (b *BuildBuffers) Passes() []*RenderPass { return b.passes }

// Begin resets every bucket for a new section build.
func (b *BuildBuffers) Begin(pos world.SectionPos) {
	b.checkAlive()
	b.info = newSectionInfo(pos)
	for _, mb := range b.builders {
		mb.begin(b.info)
	}
	b.begun = true
}

// Get returns the builder of a pass.
func (b *BuildBuffers) Get(pass *RenderPass) *ModelBuilder {
	b.checkBegun()
	mb, ok := b.builders[pass]
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrUnknownPass, pass))
	}
	return mb
}

// ForMaterial returns the builder of the material's pass.
func (b *BuildBuffers) ForMaterial(m Material) *ModelBuilder {
	return b.Get(m.Pass)
}

// Bucket returns the buffer receiving quads of pass facing f.
func (b *BuildBuffers) Bucket(pass *RenderPass, f Facing) *MeshBufferBuilder {
	return b.Get(pass).VertexBuffer(f)
}

// Info returns the record of the current build.
func (b *BuildBuffers) Info() *SectionInfo {
	b.checkBegun()
	return b.info
}

// CreateMesh merges the buckets of pass into a MeshPart. It returns nil
// when the pass holds no vertices.
func (b *BuildBuffers) CreateMesh(pass *RenderPass) *MeshPart {
	defer profiling.Track("meshing.CreateMesh")()

	mb := b.Get(pass)
	facings := FacingOrder[:]
	if pass.Sorted {
		facings = []Facing{FacingUnassigned}
	}

	total := 0
	for _, f := range facings {
		total += len(mb.buckets[f].Bytes())
	}
	if total == 0 {
		return nil
	}

	part := &MeshPart{pass: pass, vertices: make([]byte, 0, total)}
	vertex := 0
	for _, f := range facings {
		bucket := mb.buckets[f]
		if bucket.IsEmpty() {
			continue
		}
		part.vertices = append(part.vertices, bucket.Bytes()...)
		part.ranges[f] = VertexRange{Start: vertex, Count: bucket.Count()}
		part.present[f] = true
		vertex += bucket.Count()
	}

	if pass.Sorted {
		bucket := mb.buckets[FacingUnassigned]
		if bucket.Count()%4 != 0 {
			panic(fmt.Errorf("%w: sorted pass %v holds %d vertices, not whole quads",
				ErrMisalignedVertices, pass, bucket.Count()))
		}
		part.sortState = bucket.SortState()
		var order []int
		if part.sortState != nil {
			order = part.sortState.QuadOrder()
		}
		if order != nil {
			part.indices = AppendSortedQuadIndices(nil, order, 0)
		} else {
			part.indices = AppendQuadIndices(nil, bucket.Count()/4, 0)
		}
	}

	b.info.markPass(pass)
	return part
}

// Destroy releases all storage. The buffers cannot be used afterwards.
func (b *BuildBuffers) Destroy() {
	if b.destroyed {
		return
	}
	for _, mb := range b.builders {
		mb.destroy()
	}
	b.info = nil
	b.begun = false
	b.destroyed = true
}

func (b *BuildBuffers) checkAlive() {
	if b.destroyed {
		panic(ErrDestroyed)
	}
}

func (b *BuildBuffers) checkBegun() {
	b.checkAlive()
	if !b.begun {
		panic(ErrNotBegun)
	}
}
