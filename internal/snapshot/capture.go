package snapshot

import (
	"sectionmesh/internal/profiling"
	"sectionmesh/internal/world"
)

// Level is the world-wide state a capture reads.
type Level interface {
	IsDebug() bool
	HasSkyLight() bool
	// LightLayer returns the computed light of a section or nil when it
	// has not been computed yet.
	LightLayer(layer world.LightLayer, pos world.SectionPos) *world.DataLayer
	ModelData() *world.ModelDataManager
}

// Chunk is the per-column state a capture reads.
type Chunk interface {
	BlockEntities() world.BlockEntityIndex
	AuxLightManager() *world.AuxLightManager
}

// entryLister is implemented by block-entity indexes that can hand out
// their backing slice.
type entryLister interface {
	Entries() []world.BlockEntityEntry
}

// DebugStates synthesizes the block states of a debug-world section.
type DebugStates func(pos world.SectionPos) world.ReadableContainer[world.BlockType]

// Options configures a Capturer.
type Options struct {
	// RenderData enables the block-entity render payload pass. It mirrors a
	// host capability detected once at startup.
	RenderData bool
	// DebugStates replaces copied block states in debug worlds. Nil selects
	// DefaultDebugStates.
	DebugStates DebugStates
}

// Capturer copies live sections into Sections.
type Capturer struct {
	opts Options
}

func NewCapturer(opts Options) *Capturer {
	if opts.DebugStates == nil {
		opts.DebugStates = DefaultDebugStates
	}
	return &Capturer{opts: opts}
}

// Capture copies section (which may be nil) of chunk into an immutable
// Section. It must run on the goroutine that owns the world and never
// fails; data that is not available degrades to nil or default fields.
func (c *Capturer) Capture(level Level, chunk Chunk, section *world.Section, pos world.SectionPos) *Section {
	defer profiling.Track("snapshot.Capture")()

	s := newSection(pos)
	s.biomeData = defaultBiomes

	if section != nil {
		if !section.HasOnlyAir() {
			if level.IsDebug() {
				s.blockData = c.opts.DebugStates(pos)
			} else {
				s.blockData = section.States().Clone()
			}
			if chunk != nil {
				s.blockEntities = copyBlockEntities(chunk.BlockEntities(), pos)
			}
			if md := level.ModelData(); md != nil {
				s.modelData = md.SnapshotSection(pos)
			}
			if s.blockEntities != nil && c.opts.RenderData {
				s.renderData = copyRenderData(s.blockEntities)
			}
		}
		s.biomeData = section.Biomes().Clone()
	}

	s.lightArrays[world.LightBlock] = copyLightArray(level, world.LightBlock, pos)
	if level.HasSkyLight() {
		s.lightArrays[world.LightSky] = copyLightArray(level, world.LightSky, pos)
	}

	if chunk != nil {
		s.auxLight = chunk.AuxLightManager()
	}
	return s
}

// copyLightArray copies one light layer, substituting the shared default
// when the engine has not computed it yet.
func copyLightArray(level Level, layer world.LightLayer, pos world.SectionPos) *world.DataLayer {
	if d := level.LightLayer(layer, pos); d != nil {
		return d.Copy()
	}
	if layer == world.LightSky {
		return defaultSkyLight
	}
	return defaultBlockLight
}

type indexedEntity struct {
	index  int
	entity world.BlockEntity
}

func copyBlockEntities(index world.BlockEntityIndex, pos world.SectionPos) map[int]world.BlockEntity {
	if index == nil || index.Len() == 0 {
		return nil
	}

	var found []indexedEntity
	if fast, ok := index.(entryLister); ok {
		for _, e := range fast.Entries() {
			if pos.Contains(e.Pos) {
				found = append(found, indexedEntity{e.Pos.LocalIndex(), e.Entity})
			}
		}
	} else {
		index.Range(func(p world.BlockPos, be world.BlockEntity) bool {
			if pos.Contains(p) {
				found = append(found, indexedEntity{p.LocalIndex(), be})
			}
			return true
		})
	}
	if len(found) == 0 {
		return nil
	}

	out := make(map[int]world.BlockEntity, len(found))
	for _, f := range found {
		out[f.index] = f.entity
	}
	return out
}

type indexedData struct {
	index int
	data  any
}

// copyRenderData runs after every block entity has been copied: asking an
// entity for its payload may mutate the live chunk, so it only ever
// iterates the private copy.
func copyRenderData(entities map[int]world.BlockEntity) map[int]any {
	var found []indexedData
	for i, be := range entities {
		p, ok := be.(world.RenderDataProvider)
		if !ok {
			continue
		}
		if data := p.RenderData(); data != nil {
			found = append(found, indexedData{i, data})
		}
	}
	if len(found) == 0 {
		return nil
	}

	out := make(map[int]any, len(found))
	for _, f := range found {
		out[f.index] = f.data
	}
	return out
}
