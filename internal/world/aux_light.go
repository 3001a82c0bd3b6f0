package world

import "sync"

// AuxLightManager holds custom light emitted by individual blocks of one
// chunk. It is owned by the chunk and read by snapshots by reference.
type AuxLightManager struct {
	mu     sync.RWMutex
	levels map[BlockPos]uint8
}

func NewAuxLightManager() *AuxLightManager {
	return &AuxLightManager{levels: make(map[BlockPos]uint8)}
}

// LightAt returns the custom light level at pos, zero when none is set.
func (m *AuxLightManager) LightAt(pos BlockPos) uint8 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.levels[pos]
}

// SetLightAt sets or, for level zero, clears the custom light at pos.
func (m *AuxLightManager) SetLightAt(pos BlockPos, level uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if level == 0 {
		delete(m.levels, pos)
		return
	}
	m.levels[pos] = level & 15
}
