package world

// Section represents a 16x16x16 sub-volume of a chunk
type Section struct {
	states *PalettedContainer[BlockType]
	biomes *PalettedContainer[*Biome]
	nonAir int
}

// NewSection creates an air-only section with a uniform biome.
func NewSection(biome *Biome) *Section {
	return &Section{
		states: NewPalettedContainer(SectionSize, BlockTypeAir),
		biomes: NewPalettedContainer(BiomeSize, biome),
	}
}

// HasOnlyAir reports whether no block has been placed in the section.
func (s *Section) HasOnlyAir() bool { return s.nonAir == 0 }

// States returns the live block-state container.
func (s *Section) States() *PalettedContainer[BlockType] { return s.states }

// Biomes returns the live biome container.
func (s *Section) Biomes() *PalettedContainer[*Biome] { return s.biomes }

// GetBlock returns the block at section-local coordinates.
func (s *Section) GetBlock(x, y, z int) BlockType {
	return s.states.Get(x, y, z)
}

// SetBlock stores a block at section-local coordinates and returns the old one.
func (s *Section) SetBlock(x, y, z int, bt BlockType) BlockType {
	old := s.states.Set(x, y, z, bt)
	if old == BlockTypeAir && bt != BlockTypeAir {
		s.nonAir++
	} else if old != BlockTypeAir && bt == BlockTypeAir {
		s.nonAir--
	}
	return old
}

// SetBiome sets the biome of the 4x4x4 cell containing the local block.
func (s *Section) SetBiome(x, y, z int, b *Biome) {
	s.biomes.Set(x/4, y/4, z/4, b)
}

// Chunk represents a 16x256x16 column of sections
type Chunk struct {
	X, Z     int
	sections [NumSections]*Section
	biome    *Biome

	blockEntities *BlockEntityTable
	auxLight      *AuxLightManager

	// dirty has one bit per section that changed since its last mesh build
	dirty uint32
}

// NewChunk creates a new chunk at the specified chunk coordinates
func NewChunk(x, z int) *Chunk {
	return &Chunk{
		X:             x,
		Z:             z,
		biome:         BiomePlains,
		blockEntities: NewBlockEntityTable(),
		auxLight:      NewAuxLightManager(),
	}
}

// Pos returns the chunk's column coordinate.
func (c *Chunk) Pos() ChunkPos { return ChunkPos{X: c.X, Z: c.Z} }

// SetDefaultBiome sets the biome used for sections created after the call.
func (c *Chunk) SetDefaultBiome(b *Biome) { c.biome = b }

// Section returns the section at index sy, or nil when it was never created.
func (c *Chunk) Section(sy int) *Section {
	if sy < 0 || sy >= NumSections {
		return nil
	}
	return c.sections[sy]
}

// EnsureSection returns the section at sy, creating an air-only one if needed.
func (c *Chunk) EnsureSection(sy int) *Section {
	sec := c.sections[sy]
	if sec == nil {
		sec = NewSection(c.biome)
		c.sections[sy] = sec
	}
	return sec
}

// GetBlock returns the block type at the specified local coordinates
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	if x < 0 || x >= SectionSize || y < 0 || y >= ChunkHeight || z < 0 || z >= SectionSize {
		return BlockTypeAir
	}
	sec := c.sections[y/SectionSize]
	if sec == nil {
		return BlockTypeAir
	}
	return sec.GetBlock(x, y%SectionSize, z)
}

// SetBlock sets the block type at the specified local coordinates. Block
// entities are created and removed to follow the block type.
func (c *Chunk) SetBlock(x, y, z int, bt BlockType) {
	if x < 0 || x >= SectionSize || y < 0 || y >= ChunkHeight || z < 0 || z >= SectionSize {
		return
	}
	sy := y / SectionSize
	sec := c.sections[sy]
	if sec == nil {
		if bt == BlockTypeAir {
			return
		}
		sec = c.EnsureSection(sy)
	}

	old := sec.SetBlock(x, y%SectionSize, z, bt)
	if old == bt {
		return
	}
	c.dirty |= 1 << sy

	pos := BlockPos{X: c.X*SectionSize + x, Y: y, Z: c.Z*SectionSize + z}
	if old.HasBlockEntity() {
		c.blockEntities.Remove(pos)
	}
	if bt.HasBlockEntity() {
		c.blockEntities.Put(NewBasicBlockEntity(pos, bt))
	}
}

// IsAir checks if the block at the specified local coordinates is air
func (c *Chunk) IsAir(x, y, z int) bool {
	return c.GetBlock(x, y, z) == BlockTypeAir
}

// BlockEntities returns the chunk's block-entity index.
func (c *Chunk) BlockEntities() BlockEntityIndex { return c.blockEntities }

// BlockEntityTable returns the concrete table, for placing custom entities.
func (c *Chunk) BlockEntityTable() *BlockEntityTable { return c.blockEntities }

// AuxLightManager returns the chunk's custom light store.
func (c *Chunk) AuxLightManager() *AuxLightManager { return c.auxLight }

// IsDirty returns whether section sy changed since it was last marked clean
func (c *Chunk) IsDirty(sy int) bool {
	return c.dirty&(1<<sy) != 0
}

// MarkDirty flags section sy for a rebuild.
func (c *Chunk) MarkDirty(sy int) {
	if sy >= 0 && sy < NumSections {
		c.dirty |= 1 << sy
	}
}

// SetClean marks section sy as rebuilt
func (c *Chunk) SetClean(sy int) {
	c.dirty &^= 1 << sy
}
