package world

import (
	"sync"
)

// ChunkStore manages the storage and retrieval of chunk columns.
type ChunkStore struct {
	chunks map[ChunkPos]*Chunk
	mu     sync.RWMutex
}

// NewChunkStore creates a new chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkPos]*Chunk),
	}
}

// GetChunk returns the chunk at the specified chunk coordinates.
// If the chunk doesn't exist and create is true, an empty one is created.
func (cs *ChunkStore) GetChunk(chunkX, chunkZ int, create bool) *Chunk {
	pos := ChunkPos{X: chunkX, Z: chunkZ}
	cs.mu.RLock()
	chunk, exists := cs.chunks[pos]
	cs.mu.RUnlock()
	if !exists && create {
		cs.mu.Lock()
		// Double-check locking: another goroutine might have created it while we were waiting for the lock
		if existing, ok := cs.chunks[pos]; ok {
			cs.mu.Unlock()
			return existing
		}
		chunk = NewChunk(chunkX, chunkZ)
		cs.chunks[pos] = chunk
		cs.mu.Unlock()
	}
	return chunk
}

// GetChunkFromBlockCoords returns the chunk containing the block at the specified world coordinates.
func (cs *ChunkStore) GetChunkFromBlockCoords(x, z int, create bool) *Chunk {
	return cs.GetChunk(floorDiv(x, SectionSize), floorDiv(z, SectionSize), create)
}

// Get returns the block type at the specified world coordinates.
func (cs *ChunkStore) Get(x, y, z int) BlockType {
	chunk := cs.GetChunkFromBlockCoords(x, z, false)
	if chunk == nil {
		return BlockTypeAir
	}
	return chunk.GetBlock(mod(x, SectionSize), y, mod(z, SectionSize))
}

// IsAir checks if the block at the specified world coordinates is air.
func (cs *ChunkStore) IsAir(x, y, z int) bool {
	return cs.Get(x, y, z) == BlockTypeAir
}

// Set sets the block type at the specified world coordinates.
func (cs *ChunkStore) Set(x, y, z int, val BlockType) {
	if y < 0 || y >= ChunkHeight {
		return
	}
	chunk := cs.GetChunkFromBlockCoords(x, z, true)

	localX := mod(x, SectionSize)
	localZ := mod(z, SectionSize)
	chunk.SetBlock(localX, y, localZ, val)

	// Sections sharing a face with the block need their meshes rebuilt too.
	sy := y / SectionSize
	switch y % SectionSize {
	case 0:
		chunk.MarkDirty(sy - 1)
	case SectionSize - 1:
		chunk.MarkDirty(sy + 1)
	}
	if localX == 0 {
		if nb := cs.GetChunkFromBlockCoords(x-1, z, false); nb != nil {
			nb.MarkDirty(sy)
		}
	} else if localX == SectionSize-1 {
		if nb := cs.GetChunkFromBlockCoords(x+1, z, false); nb != nil {
			nb.MarkDirty(sy)
		}
	}
	if localZ == 0 {
		if nb := cs.GetChunkFromBlockCoords(x, z-1, false); nb != nil {
			nb.MarkDirty(sy)
		}
	} else if localZ == SectionSize-1 {
		if nb := cs.GetChunkFromBlockCoords(x, z+1, false); nb != nil {
			nb.MarkDirty(sy)
		}
	}
}

// AllChunks returns every loaded chunk.
func (cs *ChunkStore) AllChunks() []*Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	chunks := make([]*Chunk, 0, len(cs.chunks))
	for _, chunk := range cs.chunks {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// EvictFarChunks removes chunks outside the given radius from the store.
// Returns the removed positions.
func (cs *ChunkStore) EvictFarChunks(cx, cz, radius int) []ChunkPos {
	var removed []ChunkPos
	cs.mu.Lock()
	for pos := range cs.chunks {
		dx := pos.X - cx
		dz := pos.Z - cz
		if dx*dx+dz*dz > radius*radius {
			delete(cs.chunks, pos)
			removed = append(removed, pos)
		}
	}
	cs.mu.Unlock()
	return removed
}

// HasChunk checks if a chunk exists without creating it.
func (cs *ChunkStore) HasChunk(pos ChunkPos) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[pos]
	cs.mu.RUnlock()
	return exists
}

// AddChunk adds a pre-generated chunk to the store.
func (cs *ChunkStore) AddChunk(chunk *Chunk) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	pos := chunk.Pos()
	if _, ok := cs.chunks[pos]; !ok {
		cs.chunks[pos] = chunk
	}
}
