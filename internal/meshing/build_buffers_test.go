package meshing

import (
	"errors"
	"slices"
	"testing"

	"sectionmesh/internal/vertexformat"
	"sectionmesh/internal/world"
)

var stride = vertexformat.ChunkFormat.Stride()

func newTestBuffers(analyzers AnalyzerFactory) *BuildBuffers {
	return NewBuildBuffers(vertexformat.ChunkFormat, DefaultPasses, 64, analyzers)
}

func vertices(n int, tag byte) []byte {
	out := make([]byte, n*stride)
	for i := range out {
		out[i] = tag
	}
	return out
}

func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v", want)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("panic %v, want %v", r, want)
		}
	}()
	fn()
}

func TestCreateMeshRoundTrip(t *testing.T) {
	b := newTestBuffers(nil)
	b.Begin(world.SectionPos{})
	b.Bucket(PassSolid, FacingNorth).Push(vertices(4, 1))
	b.Bucket(PassSolid, FacingUp).Push(vertices(8, 2))
	b.Bucket(PassSolid, FacingUnassigned).Push(vertices(3, 3))

	part := b.CreateMesh(PassSolid)
	if part == nil {
		t.Fatal("expected a mesh part")
	}
	if part.VertexCount() != 15 {
		t.Fatalf("vertex count = %d, want 15", part.VertexCount())
	}
	if len(part.Vertices()) != 15*stride {
		t.Fatalf("buffer length = %d, want %d", len(part.Vertices()), 15*stride)
	}
	if part.Indices() != nil || part.SortState() != nil {
		t.Fatal("unsorted pass must not carry indices or sort state")
	}

	want := map[Facing]VertexRange{
		FacingUp:         {Start: 0, Count: 8},
		FacingNorth:      {Start: 8, Count: 4},
		FacingUnassigned: {Start: 12, Count: 3},
	}
	for _, f := range FacingOrder {
		r, ok := part.Range(f)
		w, present := want[f]
		if ok != present || r != w {
			t.Fatalf("facing %v: range %v/%v, want %v/%v", f, r, ok, w, present)
		}
	}
	if got := part.Facings(); !slices.Equal(got, []Facing{FacingUp, FacingNorth, FacingUnassigned}) {
		t.Fatalf("facings = %v", got)
	}
	if part.Vertices()[0] != 2 || part.Vertices()[8*stride] != 1 || part.Vertices()[12*stride] != 3 {
		t.Fatal("buckets were not merged in facing order")
	}
}

func TestCreateMeshSortedPass(t *testing.T) {
	b := newTestBuffers(nil)
	b.Begin(world.SectionPos{})
	b.Bucket(PassTranslucent, FacingUp).Push(vertices(4, 1))
	b.Bucket(PassTranslucent, FacingWest).Push(vertices(8, 2))

	part := b.CreateMesh(PassTranslucent)
	if got := part.Facings(); !slices.Equal(got, []Facing{FacingUnassigned}) {
		t.Fatalf("sorted pass facings = %v, want only unassigned", got)
	}
	idx := part.Indices()
	if len(idx) != 3*6 {
		t.Fatalf("index count = %d, want 18", len(idx))
	}
	for q := range 3 {
		base := uint32(q * 4)
		want := []uint32{base, base + 1, base + 2, base, base + 2, base + 3}
		if !slices.Equal(idx[q*6:q*6+6], want) {
			t.Fatalf("quad %d indices %v, want %v", q, idx[q*6:q*6+6], want)
		}
	}
}

func TestCreateMeshEmptyPass(t *testing.T) {
	b := newTestBuffers(nil)
	b.Begin(world.SectionPos{})
	b.Bucket(PassSolid, FacingDown).Push(vertices(4, 1))
	for _, p := range []*RenderPass{PassCutout, PassTranslucent} {
		if part := b.CreateMesh(p); part != nil {
			t.Fatalf("pass %v: expected nil part", p)
		}
	}
	if got := b.Info().Passes(); !slices.Equal(got, []*RenderPass(nil)) {
		t.Fatalf("no pass should be marked yet, got %v", got)
	}
	b.CreateMesh(PassSolid)
	if got := b.Info().Passes(); !slices.Equal(got, []*RenderPass{PassSolid}) {
		t.Fatalf("passes = %v, want [solid]", got)
	}
}

func TestBeginResetsBuckets(t *testing.T) {
	b := newTestBuffers(nil)
	b.Begin(world.SectionPos{})
	bucket := b.Bucket(PassSolid, FacingEast)
	bucket.Push(vertices(16, 1))
	capacity := bucket.Capacity()
	first := b.Info()

	b.Begin(world.SectionPos{Y: 1})
	if !bucket.IsEmpty() || len(bucket.Bytes()) != 0 {
		t.Fatal("Begin should empty every bucket")
	}
	if bucket.Capacity() != capacity {
		t.Fatalf("capacity shrank from %d to %d", capacity, bucket.Capacity())
	}
	if b.CreateMesh(PassSolid) != nil {
		t.Fatal("expected nil part after Begin")
	}
	if b.Info() == first || b.Info().Position() != (world.SectionPos{Y: 1}) {
		t.Fatal("Begin should start a fresh section info")
	}
}

func TestBucketGrowsByDoubling(t *testing.T) {
	bucket := NewMeshBufferBuilder(vertexformat.ChunkFormat, 64, nil)
	bucket.Push(vertices(3, 0))
	if bucket.Capacity() != 128 {
		t.Fatalf("capacity = %d, want 128", bucket.Capacity())
	}
	bucket.Push(vertices(10, 0))
	if bucket.Capacity() != 512 {
		t.Fatalf("capacity = %d, want 512", bucket.Capacity())
	}
	if bucket.Count() != 13 {
		t.Fatalf("count = %d, want 13", bucket.Count())
	}
}

func TestContractViolations(t *testing.T) {
	b := newTestBuffers(nil)
	expectPanic(t, ErrNotBegun, func() { b.Get(PassSolid) })
	expectPanic(t, ErrNotBegun, func() { b.CreateMesh(PassSolid) })

	b.Begin(world.SectionPos{})
	expectPanic(t, ErrUnknownPass, func() { b.Get(&RenderPass{Name: "solid"}) })
	expectPanic(t, ErrMisalignedVertices, func() { b.Bucket(PassSolid, FacingUp).Push(make([]byte, stride+1)) })

	b.Bucket(PassTranslucent, FacingUp).Push(vertices(3, 0))
	expectPanic(t, ErrMisalignedVertices, func() { b.CreateMesh(PassTranslucent) })

	b.Destroy()
	b.Destroy()
	expectPanic(t, ErrDestroyed, func() { b.Begin(world.SectionPos{}) })
	expectPanic(t, ErrDestroyed, func() { b.Get(PassSolid) })
}

type reverseState struct{ quads int }

func (s reverseState) QuadOrder() []int {
	order := make([]int, s.quads)
	for i := range order {
		order[i] = s.quads - 1 - i
	}
	return order
}

type countingAnalyzer struct {
	vertices int
	cleared  int
}

func (a *countingAnalyzer) Capture([]byte) { a.vertices++ }

func (a *countingAnalyzer) SortState() SortState { return reverseState{quads: a.vertices / 4} }

func (a *countingAnalyzer) Clear() {
	a.vertices = 0
	a.cleared++
}

func TestSortedPassUsesAnalyzer(t *testing.T) {
	var created []*countingAnalyzer
	b := newTestBuffers(func(*vertexformat.Format) QuadAnalyzer {
		a := &countingAnalyzer{}
		created = append(created, a)
		return a
	})
	if len(created) != 1 {
		t.Fatalf("expected one analyzer for the sorted bucket, got %d", len(created))
	}

	b.Begin(world.SectionPos{})
	b.Bucket(PassTranslucent, FacingSouth).Push(vertices(8, 0))
	b.Bucket(PassSolid, FacingSouth).Push(vertices(4, 0))
	if created[0].vertices != 8 {
		t.Fatalf("analyzer saw %d vertices, want 8", created[0].vertices)
	}

	part := b.CreateMesh(PassTranslucent)
	if _, ok := part.SortState().(reverseState); !ok {
		t.Fatalf("unexpected sort state %T", part.SortState())
	}
	want := []uint32{4, 5, 6, 4, 6, 7, 0, 1, 2, 0, 2, 3}
	if !slices.Equal(part.Indices(), want) {
		t.Fatalf("indices = %v, want %v", part.Indices(), want)
	}

	b.Begin(world.SectionPos{})
	if created[0].cleared != 2 || created[0].vertices != 0 {
		t.Fatal("Begin should clear the analyzer")
	}
}

func TestAppendQuadIndices(t *testing.T) {
	idx := AppendQuadIndices(nil, 1, 0)
	idx = AppendQuadIndices(idx, 2, 4)
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7, 8, 9, 10, 8, 10, 11}
	if !slices.Equal(idx, want) {
		t.Fatalf("indices = %v, want %v", idx, want)
	}
	if got := AppendSortedQuadIndices(nil, []int{1, 0}, 8); !slices.Equal(got, []uint32{12, 13, 14, 12, 14, 15, 8, 9, 10, 8, 10, 11}) {
		t.Fatalf("sorted indices = %v", got)
	}
}

func BenchmarkCreateMesh(b *testing.B) {
	bufs := newTestBuffers(nil)
	data := vertices(64, 1)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bufs.Begin(world.SectionPos{})
		for _, f := range FacingOrder {
			bufs.Bucket(PassSolid, f).Push(data)
		}
		_ = bufs.CreateMesh(PassSolid)
	}
}
