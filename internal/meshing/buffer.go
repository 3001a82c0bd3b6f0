package meshing

import (
	"errors"
	"fmt"

	"sectionmesh/internal/vertexformat"
)

var (
	ErrNotBegun           = errors.New("meshing: buffers used before Begin")
	ErrDestroyed          = errors.New("meshing: buffers used after Destroy")
	ErrUnknownPass        = errors.New("meshing: unknown render pass")
	ErrMisalignedVertices = errors.New("meshing: byte count is not a whole number of vertices")
)

// SortState is the opaque ordering metadata a sorted pass carries to the
// renderer. It is produced by a QuadAnalyzer.
type SortState interface {
	// QuadOrder returns the draw order of the quads, or nil for submission order.
	QuadOrder() []int
}

// QuadAnalyzer observes every vertex pushed into a sorted bucket so it can
// report a SortState once the build is finished.
type QuadAnalyzer interface {
	Capture(vertex []byte)
	SortState() SortState
	Clear()
}

// AnalyzerFactory creates an analyzer for vertices of the given format.
type AnalyzerFactory func(format *vertexformat.Format) QuadAnalyzer

// MeshBufferBuilder accumulates the vertices of one pass and facing. Its
// storage grows by doubling and is kept across Begin calls.
type MeshBufferBuilder struct {
	format   *vertexformat.Format
	stride   int
	data     []byte
	count    int
	analyzer QuadAnalyzer
}

// NewMeshBufferBuilder returns a builder with initialBytes of capacity. The
// analyzer may be nil.
func NewMeshBufferBuilder(format *vertexformat.Format, initialBytes int, analyzer QuadAnalyzer) *MeshBufferBuilder {
	return &MeshBufferBuilder{
		format:   format,
		stride:   format.Stride(),
		data:     make([]byte, 0, initialBytes),
		analyzer: analyzer,
	}
}

// Begin discards the previous contents without releasing storage.
func (b *MeshBufferBuilder) Begin() {
	b.data = b.data[:0]
	b.count = 0
	if b.analyzer != nil {
		b.analyzer.Clear()
	}
}

// Push appends whole vertices.
func (b *MeshBufferBuilder) Push(vertices []byte) {
	if len(vertices)%b.stride != 0 {
		panic(fmt.Errorf("%w: %d bytes with stride %d", ErrMisalignedVertices, len(vertices), b.stride))
	}
	if need := len(b.data) + len(vertices); need > cap(b.data) {
		b.grow(need)
	}
	b.data = append(b.data, vertices...)
	n := len(vertices) / b.stride
	b.count += n

	if b.analyzer != nil {
		for i := range n {
			b.analyzer.Capture(vertices[i*b.stride : (i+1)*b.stride])
		}
	}
}

func (b *MeshBufferBuilder) grow(need int) {
	newCap := max(cap(b.data)*2, b.stride)
	for newCap < need {
		newCap *= 2
	}
	grown := make([]byte, len(b.data), newCap)
	copy(grown, b.data)
	b.data = grown
}

// Count returns the number of vertices pushed since Begin.
func (b *MeshBufferBuilder) Count() int { return b.count }

func (b *MeshBufferBuilder) IsEmpty() bool { return b.count == 0 }

// Bytes returns the pushed vertices. The slice is overwritten after Begin.
func (b *MeshBufferBuilder) Bytes() []byte { return b.data }

// Capacity returns the current storage size in bytes.
func (b *MeshBufferBuilder) Capacity() int { return cap(b.data) }

// SortState returns the analyzer's state, or nil for an unsorted bucket.
func (b *MeshBufferBuilder) SortState() SortState {
	if b.analyzer == nil {
		return nil
	}
	return b.analyzer.SortState()
}

// Destroy releases the storage.
func (b *MeshBufferBuilder) Destroy() {
	b.data = nil
	b.count = 0
	b.analyzer = nil
}
