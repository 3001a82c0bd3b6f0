package snapshot

import (
	"math"
	"sync/atomic"

	"sectionmesh/internal/world"
)

// Shared read-only defaults. They are built once and never written.
var (
	defaultSkyLight   = world.NewDataLayer(15)
	defaultBlockLight = world.NewDataLayer(0)
	emptyStates       = world.ReadableContainer[world.BlockType](world.NewPalettedContainer(world.SectionSize, world.BlockTypeAir))
	defaultBiomes     = world.ReadableContainer[*world.Biome](world.NewPalettedContainer(world.BiomeSize, world.BiomePlains))
)

// Section is an immutable copy of one world section taken on the goroutine
// that owns the world. Everything except the last-used timestamp is fixed
// at construction, so a Section can be read from any goroutine without
// locking.
type Section struct {
	pos world.SectionPos

	blockData world.ReadableContainer[world.BlockType]
	biomeData world.ReadableContainer[*world.Biome]

	lightArrays [world.LightLayerCount]*world.DataLayer

	blockEntities map[int]world.BlockEntity
	renderData    map[int]any
	modelData     map[int]any

	auxLight *world.AuxLightManager

	lastUsed atomic.Int64
}

// Position returns the section coordinate the snapshot was taken at.
func (s *Section) Position() world.SectionPos { return s.pos }

// BlockData returns the copied block states, or nil when the section held
// only air. A nil container reads as air everywhere.
func (s *Section) BlockData() world.ReadableContainer[world.BlockType] { return s.blockData }

// BiomeData returns the copied biome volume. It is never nil.
func (s *Section) BiomeData() world.ReadableContainer[*world.Biome] { return s.biomeData }

// LightArray returns the light of one layer. Sky light is nil in
// dimensions without a sky.
func (s *Section) LightArray(layer world.LightLayer) *world.DataLayer {
	return s.lightArrays[layer]
}

// BlockEntities returns the captured block entities keyed by local index,
// or nil when the section has none. The map must not be modified.
func (s *Section) BlockEntities() map[int]world.BlockEntity { return s.blockEntities }

// BlockEntityRenderData returns render payloads keyed by local index, or
// nil when none were produced. The map must not be modified.
func (s *Section) BlockEntityRenderData() map[int]any { return s.renderData }

// ModelData returns model payloads keyed by local index, or nil when the
// section has none. The map must not be modified.
func (s *Section) ModelData() map[int]any { return s.modelData }

// AuxLightManager returns the chunk's custom light store. It is shared
// with the live chunk, not copied.
func (s *Section) AuxLightManager() *world.AuxLightManager { return s.auxLight }

// LastUsedTimestamp returns the eviction timestamp, math.MaxInt64 until set.
func (s *Section) LastUsedTimestamp() int64 { return s.lastUsed.Load() }

// SetLastUsedTimestamp records when the snapshot was last handed out.
func (s *Section) SetLastUsedTimestamp(ts int64) { s.lastUsed.Store(ts) }

// BlockState returns the block at section-local coordinates, air when the
// section holds no block data.
func (s *Section) BlockState(x, y, z int) world.BlockType {
	if s.blockData == nil {
		return world.BlockTypeAir
	}
	return s.blockData.Get(x, y, z)
}

// Biome returns the biome at section-local block coordinates.
func (s *Section) Biome(x, y, z int) *world.Biome {
	return s.biomeData.Get(x>>2, y>>2, z>>2)
}

// Light returns the level of one layer at section-local coordinates. A
// missing layer reads as zero.
func (s *Section) Light(layer world.LightLayer, x, y, z int) uint8 {
	d := s.lightArrays[layer]
	if d == nil {
		return 0
	}
	return d.Get(x, y, z)
}

// BlockEntity returns the block entity at a local index, if any.
func (s *Section) BlockEntity(index int) (world.BlockEntity, bool) {
	be, ok := s.blockEntities[index]
	return be, ok
}

func newSection(pos world.SectionPos) *Section {
	s := &Section{pos: pos}
	s.lastUsed.Store(math.MaxInt64)
	return s
}
