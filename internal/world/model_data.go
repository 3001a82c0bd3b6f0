package world

import "sync"

// ModelDataManager holds per-block model payloads that block models read
// while meshing, such as connected-texture state.
type ModelDataManager struct {
	mu   sync.RWMutex
	data map[SectionPos]map[int]any
}

func NewModelDataManager() *ModelDataManager {
	return &ModelDataManager{data: make(map[SectionPos]map[int]any)}
}

// Get returns the payload at pos, nil when none is set.
func (m *ModelDataManager) Get(pos BlockPos) any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[pos.Section()][pos.LocalIndex()]
}

// Set stores the payload at pos. A nil payload clears it.
func (m *ModelDataManager) Set(pos BlockPos, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sec := pos.Section()
	if data == nil {
		delete(m.data[sec], pos.LocalIndex())
		if len(m.data[sec]) == 0 {
			delete(m.data, sec)
		}
		return
	}
	if m.data[sec] == nil {
		m.data[sec] = make(map[int]any)
	}
	m.data[sec][pos.LocalIndex()] = data
}

// SnapshotSection copies the payloads of one section keyed by local block
// index. It returns nil when the section has none.
func (m *ModelDataManager) SnapshotSection(pos SectionPos) map[int]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	src := m.data[pos]
	if len(src) == 0 {
		return nil
	}
	out := make(map[int]any, len(src))
	for i, d := range src {
		out[i] = d
	}
	return out
}

// Forget drops every payload of a section.
func (m *ModelDataManager) Forget(pos SectionPos) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, pos)
}
