package world

import (
	"math"
)

// TerrainGenerator fills freshly created chunk columns.
type TerrainGenerator interface {
	HeightAt(worldX, worldZ int) int
	PopulateChunk(c *Chunk)
}

// Generator handles terrain generation logic.
type Generator struct {
	seed        int64
	scale       float64
	baseHeight  int
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
	seaLevel    int
}

// NewGenerator creates a new generator with default settings.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:        seed,
		scale:       1.0 / 64.0,
		baseHeight:  40,
		amp:         32,
		octaves:     4,
		persistence: 0.5,
		lacunarity:  2.0,
		seaLevel:    48,
	}
}

// HeightAt computes world surface height (block Y) at world X,Z.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	x := float64(worldX) * g.scale
	z := float64(worldZ) * g.scale
	n := octaveNoise2D(x, z, g.seed, g.octaves, g.persistence, g.lacunarity)
	height := float64(g.baseHeight) + (n-0.5)*2*g.amp
	return min(max(int(math.Floor(height)), 0), ChunkHeight-1)
}

// PopulateChunk fills a chunk column using the noise heightmap. Columns
// below sea level are flooded, and a sparse lattice of glass pillars and
// chests gives every render pass and block entities something to show.
func (g *Generator) PopulateChunk(c *Chunk) {
	c.SetDefaultBiome(BiomeAt(c.X*SectionSize+8, c.Z*SectionSize+8, g.seed))
	for lx := range SectionSize {
		for lz := range SectionSize {
			worldX := c.X*SectionSize + lx
			worldZ := c.Z*SectionSize + lz
			biome := BiomeAt(worldX, worldZ, g.seed)
			height := g.HeightAt(worldX, worldZ)

			for y := 0; y < height; y++ {
				switch {
				case y == 0:
					c.SetBlock(lx, y, lz, BlockTypeBedrock)
				case y < height-3:
					c.SetBlock(lx, y, lz, BlockTypeStone)
				default:
					c.SetBlock(lx, y, lz, biome.FillerBlock)
				}
			}
			c.SetBlock(lx, height, lz, biome.TopBlock)

			for y := height + 1; y <= g.seaLevel; y++ {
				c.SetBlock(lx, y, lz, BlockTypeWater)
			}

			if height > g.seaLevel && hash2(int64(worldX), int64(worldZ), g.seed)%97 == 0 {
				c.SetBlock(lx, height+1, lz, BlockTypeGlass)
				c.SetBlock(lx, height+2, lz, BlockTypeGlass)
			} else if height > g.seaLevel && hash2(int64(worldX), int64(worldZ), g.seed+1)%211 == 0 {
				c.SetBlock(lx, height+1, lz, BlockTypeChest)
			}
		}
	}
	for sy := range NumSections {
		if sec := c.Section(sy); sec != nil {
			for lx := 0; lx < SectionSize; lx += BiomeSize {
				for lz := 0; lz < SectionSize; lz += BiomeSize {
					b := BiomeAt(c.X*SectionSize+lx, c.Z*SectionSize+lz, g.seed)
					for ly := 0; ly < SectionSize; ly += BiomeSize {
						sec.SetBiome(lx, ly, lz, b)
					}
				}
			}
		}
	}
}

// LightChunk computes simple column sky light for a populated chunk: full
// light above the highest non-air block of each column, none below.
func LightChunk(w *World, c *Chunk) {
	if !w.HasSkyLight() {
		return
	}
	var layers [NumSections]*DataLayer
	for sy := range layers {
		layers[sy] = NewDataLayer(0)
	}
	for lx := range SectionSize {
		for lz := range SectionSize {
			top := ChunkHeight - 1
			for top >= 0 && c.IsAir(lx, top, lz) {
				top--
			}
			for y := top + 1; y < ChunkHeight; y++ {
				layers[y/SectionSize].Set(lx, y%SectionSize, lz, 15)
			}
		}
	}
	for sy, d := range layers {
		w.Light().SetDataLayer(LightSky, SectionPos{X: c.X, Y: sy, Z: c.Z}, d)
	}
}

// DebugBlockAt returns the block shown at a column of the debug world's
// showcase plane: every block type laid out on a grid with one block of
// spacing, air elsewhere.
func DebugBlockAt(x, z int) BlockType {
	if x <= 0 || z <= 0 || x%2 == 0 || z%2 == 0 {
		return BlockTypeAir
	}
	x /= 2
	z /= 2
	all := BlockTypes()[1:]
	width := int(math.Ceil(math.Sqrt(float64(len(all)))))
	if x > width || z > width {
		return BlockTypeAir
	}
	i := x*width + z
	if i < len(all) {
		return all[i]
	}
	return BlockTypeAir
}
