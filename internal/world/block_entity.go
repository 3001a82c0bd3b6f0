package world

// BlockEntity is extra per-block state attached to a placed block.
type BlockEntity interface {
	Pos() BlockPos
	Type() BlockType
}

// RenderDataProvider is implemented by block entities that expose an opaque
// payload for the renderer. Calling RenderData may touch the owning chunk.
type RenderDataProvider interface {
	RenderData() any
}

// BasicBlockEntity is a block entity with an optional static render payload.
type BasicBlockEntity struct {
	pos     BlockPos
	typ     BlockType
	Payload any
}

func NewBasicBlockEntity(pos BlockPos, typ BlockType) *BasicBlockEntity {
	return &BasicBlockEntity{pos: pos, typ: typ}
}

func (b *BasicBlockEntity) Pos() BlockPos { return b.pos }
func (b *BasicBlockEntity) Type() BlockType { return b.typ }
func (b *BasicBlockEntity) RenderData() any { return b.Payload }

// BlockEntityEntry pairs a position with its block entity.
type BlockEntityEntry struct {
	Pos    BlockPos
	Entity BlockEntity
}

// BlockEntityIndex enumerates the block entities of a chunk.
type BlockEntityIndex interface {
	Range(fn func(BlockPos, BlockEntity) bool)
	Len() int
}

// BlockEntityTable is a dense block-entity index. Entries exposes the
// backing slice so callers can iterate without a callback per entity.
type BlockEntityTable struct {
	entries []BlockEntityEntry
	slots   map[BlockPos]int
}

func NewBlockEntityTable() *BlockEntityTable {
	return &BlockEntityTable{slots: make(map[BlockPos]int)}
}

// Entries returns the live backing slice. Do not retain it across mutations.
func (t *BlockEntityTable) Entries() []BlockEntityEntry { return t.entries }

func (t *BlockEntityTable) Len() int { return len(t.entries) }

func (t *BlockEntityTable) Range(fn func(BlockPos, BlockEntity) bool) {
	for _, e := range t.entries {
		if !fn(e.Pos, e.Entity) {
			return
		}
	}
}

// Get returns the entity at pos, or nil.
func (t *BlockEntityTable) Get(pos BlockPos) BlockEntity {
	if i, ok := t.slots[pos]; ok {
		return t.entries[i].Entity
	}
	return nil
}

// Put inserts or replaces the entity at its position.
func (t *BlockEntityTable) Put(be BlockEntity) {
	pos := be.Pos()
	if i, ok := t.slots[pos]; ok {
		t.entries[i].Entity = be
		return
	}
	t.slots[pos] = len(t.entries)
	t.entries = append(t.entries, BlockEntityEntry{Pos: pos, Entity: be})
}

// Remove deletes the entity at pos by swapping the last entry into its slot.
func (t *BlockEntityTable) Remove(pos BlockPos) {
	i, ok := t.slots[pos]
	if !ok {
		return
	}
	last := len(t.entries) - 1
	if i != last {
		t.entries[i] = t.entries[last]
		t.slots[t.entries[i].Pos] = i
	}
	t.entries[last] = BlockEntityEntry{}
	t.entries = t.entries[:last]
	delete(t.slots, pos)
}

// BlockEntityMap is a plain map index without a fast iteration path.
type BlockEntityMap map[BlockPos]BlockEntity

func (m BlockEntityMap) Len() int { return len(m) }

func (m BlockEntityMap) Range(fn func(BlockPos, BlockEntity) bool) {
	for pos, be := range m {
		if !fn(pos, be) {
			return
		}
	}
}
