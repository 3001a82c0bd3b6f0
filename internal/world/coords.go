package world

import "github.com/go-gl/mathgl/mgl32"

const (
	// Section dimensions
	SectionSize   = 16
	SectionVolume = SectionSize * SectionSize * SectionSize

	// Chunk columns are NumSections sections tall starting at Y=0.
	NumSections = 16
	ChunkHeight = NumSections * SectionSize

	// Biomes are stored at quarter resolution.
	BiomeSize = 4
)

// BlockPos is a world-absolute block coordinate.
type BlockPos struct {
	X, Y, Z int
}

// Section returns the section containing the block.
func (p BlockPos) Section() SectionPos {
	return SectionPos{X: floorDiv(p.X, SectionSize), Y: floorDiv(p.Y, SectionSize), Z: floorDiv(p.Z, SectionSize)}
}

// LocalIndex returns the 0..4095 index of the block inside its section.
func (p BlockPos) LocalIndex() int {
	return LocalBlockIndex(p.X&15, p.Y&15, p.Z&15)
}

// LocalBlockIndex packs section-local coordinates as y<<8 | z<<4 | x.
func LocalBlockIndex(x, y, z int) int {
	return y<<8 | z<<4 | x
}

// UnpackLocalIndex is the inverse of LocalBlockIndex.
func UnpackLocalIndex(i int) (x, y, z int) {
	return i & 15, i >> 8 & 15, i >> 4 & 15
}

// SectionPos identifies a 16x16x16 section of the world.
type SectionPos struct {
	X, Y, Z int
}

// MinBlock is the lowest corner block of the section.
func (s SectionPos) MinBlock() BlockPos {
	return BlockPos{X: s.X * SectionSize, Y: s.Y * SectionSize, Z: s.Z * SectionSize}
}

// MaxBlock is the highest corner block of the section, inclusive.
func (s SectionPos) MaxBlock() BlockPos {
	m := s.MinBlock()
	return BlockPos{X: m.X + SectionSize - 1, Y: m.Y + SectionSize - 1, Z: m.Z + SectionSize - 1}
}

// Contains reports whether p lies inside the section's bounding box.
func (s SectionPos) Contains(p BlockPos) bool {
	lo, hi := s.MinBlock(), s.MaxBlock()
	return p.X >= lo.X && p.X <= hi.X &&
		p.Y >= lo.Y && p.Y <= hi.Y &&
		p.Z >= lo.Z && p.Z <= hi.Z
}

// Origin returns the world-space position of the section's min corner.
func (s SectionPos) Origin() mgl32.Vec3 {
	m := s.MinBlock()
	return mgl32.Vec3{float32(m.X), float32(m.Y), float32(m.Z)}
}

// Chunk returns the column the section belongs to.
func (s SectionPos) Chunk() ChunkPos {
	return ChunkPos{X: s.X, Z: s.Z}
}

// ChunkPos identifies a chunk column.
type ChunkPos struct {
	X, Z int
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
