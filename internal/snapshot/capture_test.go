package snapshot

import (
	"testing"

	"sectionmesh/internal/world"
)

func newTestWorld(opts ...world.Option) (*world.World, *world.Chunk) {
	w := world.NewEmpty(opts...)
	return w, w.GetChunk(0, 0, true)
}

func TestCaptureAirSection(t *testing.T) {
	w, c := newTestWorld()
	sec := c.EnsureSection(2)
	s := NewCapturer(Options{}).Capture(w, c, sec, world.SectionPos{Y: 2})

	if s.BlockData() != nil {
		t.Fatal("expected nil block data for an air-only section")
	}
	if s.BlockEntities() != nil || s.BlockEntityRenderData() != nil {
		t.Fatal("expected no block entities for an air-only section")
	}
	if s.BiomeData() == nil {
		t.Fatal("biome data must never be nil")
	}
	if s.LightArray(world.LightBlock) == nil || s.LightArray(world.LightSky) == nil {
		t.Fatal("expected both light layers in a sky dimension")
	}
	if s.BlockState(3, 3, 3) != world.BlockTypeAir {
		t.Fatal("nil block data should read as air")
	}
}

func TestCaptureNilSection(t *testing.T) {
	w := world.NewEmpty()
	pos := world.SectionPos{X: 5, Y: 1, Z: -2}
	s := NewCapturer(Options{}).Capture(w, nil, nil, pos)

	if s.Position() != pos {
		t.Fatalf("position %v, want %v", s.Position(), pos)
	}
	if s.BlockData() != nil || s.BlockEntities() != nil {
		t.Fatal("expected empty snapshot for a missing section")
	}
	if s.Biome(0, 0, 0) != world.BiomePlains {
		t.Fatalf("expected default biome, got %v", s.Biome(0, 0, 0).Name)
	}
	if s.AuxLightManager() != nil {
		t.Fatal("expected no aux light without a chunk")
	}
}

func TestCaptureIsIsolatedFromLiveWorld(t *testing.T) {
	w, c := newTestWorld()
	c.SetBlock(1, 2, 3, world.BlockTypeStone)
	c.SetBlock(4, 5, 6, world.BlockTypeChest)
	pos := world.SectionPos{}
	w.Light().SetLight(world.LightBlock, world.BlockPos{X: 1, Y: 2, Z: 3}, 9)

	s := NewCapturer(Options{}).Capture(w, c, c.Section(0), pos)

	c.SetBlock(1, 2, 3, world.BlockTypeDirt)
	c.SetBlock(4, 5, 6, world.BlockTypeAir)
	c.Section(0).SetBiome(0, 0, 0, world.BiomeDesert)
	w.Light().SetLight(world.LightBlock, world.BlockPos{X: 1, Y: 2, Z: 3}, 2)

	if got := s.BlockState(1, 2, 3); got != world.BlockTypeStone {
		t.Fatalf("snapshot block changed to %v", got)
	}
	if got := s.BlockState(4, 5, 6); got != world.BlockTypeChest {
		t.Fatalf("snapshot chest changed to %v", got)
	}
	if _, ok := s.BlockEntity(world.LocalBlockIndex(4, 5, 6)); !ok {
		t.Fatal("snapshot lost its block entity")
	}
	if s.Biome(0, 0, 0) != world.BiomePlains {
		t.Fatal("snapshot biome changed")
	}
	if got := s.Light(world.LightBlock, 1, 2, 3); got != 9 {
		t.Fatalf("snapshot light = %d, want 9", got)
	}
}

func TestCaptureBlockEntityWithoutRenderData(t *testing.T) {
	w, c := newTestWorld()
	c.SetBlock(0, 0, 0, world.BlockTypeStone)
	c.SetBlock(2, 1, 2, world.BlockTypeChest)

	s := NewCapturer(Options{RenderData: true}).Capture(w, c, c.Section(0), world.SectionPos{})

	if len(s.BlockEntities()) != 1 {
		t.Fatalf("expected 1 block entity, got %d", len(s.BlockEntities()))
	}
	if s.BlockEntityRenderData() != nil {
		t.Fatal("expected nil render data when no entity has a payload")
	}
}

func TestCaptureRenderDataToggle(t *testing.T) {
	w, c := newTestWorld()
	c.SetBlock(7, 7, 7, world.BlockTypeSign)
	pos := world.BlockPos{X: 7, Y: 7, Z: 7}
	be := c.BlockEntityTable().Get(pos).(*world.BasicBlockEntity)
	be.Payload = "hello"

	on := NewCapturer(Options{RenderData: true}).Capture(w, c, c.Section(0), world.SectionPos{})
	if got := on.BlockEntityRenderData()[pos.LocalIndex()]; got != "hello" {
		t.Fatalf("render data = %v, want hello", got)
	}

	off := NewCapturer(Options{}).Capture(w, c, c.Section(0), world.SectionPos{})
	if off.BlockEntityRenderData() != nil {
		t.Fatal("render data must be nil when unsupported")
	}
	if len(off.BlockEntities()) != 1 {
		t.Fatal("block entities are copied regardless of render data support")
	}
}

func TestCaptureOnlyEntitiesInsideSection(t *testing.T) {
	w, c := newTestWorld()
	c.SetBlock(1, 1, 1, world.BlockTypeChest)
	c.SetBlock(1, 17, 1, world.BlockTypeChest)

	s := NewCapturer(Options{}).Capture(w, c, c.Section(1), world.SectionPos{Y: 1})
	if len(s.BlockEntities()) != 1 {
		t.Fatalf("expected 1 entity in section 1, got %d", len(s.BlockEntities()))
	}
	if _, ok := s.BlockEntity(world.LocalBlockIndex(1, 1, 1)); !ok {
		t.Fatal("expected entity keyed by its section-local index")
	}
}

// mutatingEntity places another block entity when asked for its payload.
type mutatingEntity struct {
	pos   world.BlockPos
	chunk *world.Chunk
}

func (m *mutatingEntity) Pos() world.BlockPos { return m.pos }
func (m *mutatingEntity) Type() world.BlockType { return world.BlockTypeChest }
func (m *mutatingEntity) RenderData() any {
	m.chunk.SetBlock(9, 9, 9, world.BlockTypeChest)
	return "mutated"
}

func TestCaptureToleratesReentrantRenderData(t *testing.T) {
	w, c := newTestWorld()
	c.SetBlock(0, 0, 0, world.BlockTypeStone)
	c.BlockEntityTable().Put(&mutatingEntity{pos: world.BlockPos{X: 3}, chunk: c})

	s := NewCapturer(Options{RenderData: true}).Capture(w, c, c.Section(0), world.SectionPos{})

	if len(s.BlockEntities()) != 1 {
		t.Fatalf("snapshot should hold 1 entity, got %d", len(s.BlockEntities()))
	}
	if c.BlockEntities().Len() != 2 {
		t.Fatalf("live chunk should hold 2 entities, got %d", c.BlockEntities().Len())
	}
	if got := s.BlockEntityRenderData()[world.LocalBlockIndex(3, 0, 0)]; got != "mutated" {
		t.Fatalf("render data = %v, want mutated", got)
	}
}

// mapChunk exposes a block-entity index without the fast path.
type mapChunk struct {
	entities world.BlockEntityMap
	aux      *world.AuxLightManager
}

func (m mapChunk) BlockEntities() world.BlockEntityIndex { return m.entities }
func (m mapChunk) AuxLightManager() *world.AuxLightManager { return m.aux }

func TestCaptureGenericIndex(t *testing.T) {
	w, c := newTestWorld()
	c.SetBlock(0, 0, 0, world.BlockTypeStone)
	pos := world.BlockPos{X: 5, Y: 6, Z: 7}
	outside := world.BlockPos{X: 40, Y: 6, Z: 7}
	mc := mapChunk{
		entities: world.BlockEntityMap{
			pos:     world.NewBasicBlockEntity(pos, world.BlockTypeChest),
			outside: world.NewBasicBlockEntity(outside, world.BlockTypeChest),
		},
		aux: world.NewAuxLightManager(),
	}

	s := NewCapturer(Options{}).Capture(w, mc, c.Section(0), world.SectionPos{})
	if len(s.BlockEntities()) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(s.BlockEntities()))
	}
	if _, ok := s.BlockEntity(pos.LocalIndex()); !ok {
		t.Fatal("missing entity copied through the generic path")
	}
	if s.AuxLightManager() != mc.aux {
		t.Fatal("aux light manager must be shared, not copied")
	}
}

func TestCaptureDefaultLight(t *testing.T) {
	w, c := newTestWorld()
	a := NewCapturer(Options{}).Capture(w, c, nil, world.SectionPos{Y: 3})
	b := NewCapturer(Options{}).Capture(w, c, nil, world.SectionPos{Y: 4})

	if a.LightArray(world.LightSky) != b.LightArray(world.LightSky) {
		t.Fatal("uncomputed sky light should share the default layer")
	}
	if a.Light(world.LightSky, 0, 0, 0) != 15 || a.Light(world.LightBlock, 0, 0, 0) != 0 {
		t.Fatal("unexpected default light levels")
	}

	w.Light().SetLight(world.LightSky, world.BlockPos{Y: 48}, 4)
	s := NewCapturer(Options{}).Capture(w, c, nil, world.SectionPos{Y: 3})
	if s.LightArray(world.LightSky) == w.LightLayer(world.LightSky, world.SectionPos{Y: 3}) {
		t.Fatal("computed light must be copied")
	}
	if s.Light(world.LightSky, 0, 0, 0) != 4 {
		t.Fatalf("copied sky light = %d, want 4", s.Light(world.LightSky, 0, 0, 0))
	}
}

func TestCaptureWithoutSky(t *testing.T) {
	w, c := newTestWorld(world.WithoutSky())
	s := NewCapturer(Options{}).Capture(w, c, nil, world.SectionPos{})
	if s.LightArray(world.LightSky) != nil {
		t.Fatal("expected nil sky light without a sky")
	}
	if s.LightArray(world.LightBlock) == nil {
		t.Fatal("block light must always be present")
	}
	if s.Light(world.LightSky, 1, 1, 1) != 0 {
		t.Fatal("missing layer should read as zero")
	}
}

func TestCaptureDebugWorld(t *testing.T) {
	w, c := newTestWorld(world.WithDebug())
	c.SetBlock(0, 50, 0, world.BlockTypeStone)
	c.SetBlock(0, 70, 0, world.BlockTypeStone)
	c.SetBlock(0, 10, 0, world.BlockTypeStone)
	capt := NewCapturer(Options{})

	floor := capt.Capture(w, c, c.Section(3), world.SectionPos{Y: 3})
	if got := floor.BlockState(8, debugBarrierY, 8); got != world.BlockTypeBarrier {
		t.Fatalf("expected barrier floor, got %v", got)
	}
	if got := floor.BlockState(0, 50-48, 0); got != world.BlockTypeAir {
		t.Fatalf("debug states must replace live blocks, got %v", got)
	}

	grid := capt.Capture(w, c, c.Section(4), world.SectionPos{Y: 4})
	if got := grid.BlockState(1, debugShowcaseY, 1); got != world.DebugBlockAt(1, 1) {
		t.Fatalf("showcase block = %v, want %v", got, world.DebugBlockAt(1, 1))
	}

	other := capt.Capture(w, c, c.Section(0), world.SectionPos{})
	if other.BlockData() != emptyStates {
		t.Fatal("other debug sections should share the empty container")
	}
}

func TestCaptureCustomDebugStates(t *testing.T) {
	w, c := newTestWorld(world.WithDebug())
	c.SetBlock(0, 0, 0, world.BlockTypeStone)
	custom := world.NewPalettedContainer(world.SectionSize, world.BlockTypeGlass)
	capt := NewCapturer(Options{DebugStates: func(world.SectionPos) world.ReadableContainer[world.BlockType] {
		return custom
	}})
	if got := capt.Capture(w, c, c.Section(0), world.SectionPos{}).BlockState(5, 5, 5); got != world.BlockTypeGlass {
		t.Fatalf("expected custom debug states, got %v", got)
	}
}

func TestLastUsedTimestamp(t *testing.T) {
	s := NewCapturer(Options{}).Capture(world.NewEmpty(), nil, nil, world.SectionPos{})
	if s.LastUsedTimestamp() != 1<<63-1 {
		t.Fatalf("expected max timestamp before first use, got %d", s.LastUsedTimestamp())
	}
	s.SetLastUsedTimestamp(42)
	if s.LastUsedTimestamp() != 42 {
		t.Fatal("timestamp not stored")
	}
}

func BenchmarkCapture(b *testing.B) {
	w, c := newTestWorld()
	world.NewGenerator(7).PopulateChunk(c)
	world.LightChunk(w, c)
	capt := NewCapturer(Options{RenderData: true})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		capt.Capture(w, c, c.Section(2), world.SectionPos{Y: 2})
	}
}

func TestCaptureModelData(t *testing.T) {
	w, c := newTestWorld()
	c.SetBlock(2, 3, 4, world.BlockTypeGlass)
	c.SetBlock(2, 20, 4, world.BlockTypeGlass)
	w.ModelData().Set(world.BlockPos{X: 2, Y: 3, Z: 4}, "connected")
	w.ModelData().Set(world.BlockPos{X: 2, Y: 20, Z: 4}, "other section")
	w.ModelData().Set(world.BlockPos{X: 5, Y: 40, Z: 5}, "air section")

	capt := NewCapturer(Options{})
	s := capt.Capture(w, c, c.Section(0), world.SectionPos{})
	want := world.LocalBlockIndex(2, 3, 4)
	if md := s.ModelData(); len(md) != 1 || md[want] != "connected" {
		t.Fatalf("model data = %v", md)
	}

	w.ModelData().Set(world.BlockPos{X: 2, Y: 3, Z: 4}, "changed")
	if s.ModelData()[want] != "connected" {
		t.Fatal("snapshot model data must not follow the live world")
	}

	air := capt.Capture(w, c, c.EnsureSection(2), world.SectionPos{Y: 2})
	if air.ModelData() != nil {
		t.Fatal("air-only sections carry no model data")
	}

	c.SetBlock(9, 9, 9, world.BlockTypeStone)
	w.ModelData().Set(world.BlockPos{X: 2, Y: 3, Z: 4}, nil)
	if s := capt.Capture(w, c, c.Section(0), world.SectionPos{}); s.ModelData() != nil {
		t.Fatalf("expected nil model data once cleared, got %v", s.ModelData())
	}
}
