package world

// World is the authoritative, mutable block state. It is owned by one
// goroutine; other goroutines only ever see snapshots copied from it.
type World struct {
	*ChunkStore
	light     *LightEngine
	modelData *ModelDataManager
	debug     bool
	hasSky    bool
}

// Option configures a World.
type Option func(*World)

// WithDebug marks the world as a debug world whose sections are synthesized.
func WithDebug() Option { return func(w *World) { w.debug = true } }

// WithoutSky creates a dimension with no sky light.
func WithoutSky() Option { return func(w *World) { w.hasSky = false } }

// NewEmpty creates a world with no chunks loaded.
func NewEmpty(opts ...Option) *World {
	w := &World{
		ChunkStore: NewChunkStore(),
		light:      NewLightEngine(),
		modelData:  NewModelDataManager(),
		hasSky:     true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// IsDebug reports whether this is a debug world.
func (w *World) IsDebug() bool { return w.debug }

// HasSkyLight reports whether the dimension has a sky light channel.
func (w *World) HasSkyLight() bool { return w.hasSky }

// ModelData returns the per-block model payload store.
func (w *World) ModelData() *ModelDataManager { return w.modelData }

// Light returns the light engine.
func (w *World) Light() *LightEngine { return w.light }

// LightLayer returns the computed light of a section or nil when it has not
// been computed yet.
func (w *World) LightLayer(layer LightLayer, pos SectionPos) *DataLayer {
	if layer == LightSky && !w.hasSky {
		return nil
	}
	return w.light.DataLayer(layer, pos)
}

// Chunk returns a loaded chunk or nil.
func (w *World) Chunk(pos ChunkPos) *Chunk {
	return w.GetChunk(pos.X, pos.Z, false)
}

// EvictFarChunks unloads distant columns and their light.
func (w *World) EvictFarChunks(cx, cz, radius int) int {
	removed := w.ChunkStore.EvictFarChunks(cx, cz, radius)
	for _, pos := range removed {
		for sy := range NumSections {
			sp := SectionPos{X: pos.X, Y: sy, Z: pos.Z}
			w.light.Forget(sp)
			w.modelData.Forget(sp)
		}
	}
	return len(removed)
}
