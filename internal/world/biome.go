package world

// Biome defines the properties of a terrain type. Biomes are compared by
// pointer; use the package level values.
type Biome struct {
	ID          int
	Name        string
	Temperature float32
	TopBlock    BlockType
	FillerBlock BlockType
	// GrassColor tints top faces of grass in this biome.
	GrassColor [3]uint8
}

var (
	BiomePlains = &Biome{
		ID:          1,
		Name:        "Plains",
		Temperature: 0.8,
		TopBlock:    BlockTypeGrass,
		FillerBlock: BlockTypeDirt,
		GrassColor:  [3]uint8{145, 189, 89},
	}
	BiomeForest = &Biome{
		ID:          4,
		Name:        "Forest",
		Temperature: 0.7,
		TopBlock:    BlockTypeGrass,
		FillerBlock: BlockTypeDirt,
		GrassColor:  [3]uint8{121, 192, 90},
	}
	BiomeDesert = &Biome{
		ID:          2,
		Name:        "Desert",
		Temperature: 2.0,
		TopBlock:    BlockTypeSand,
		FillerBlock: BlockTypeSand,
		GrassColor:  [3]uint8{191, 183, 85},
	}
	BiomeOcean = &Biome{
		ID:          0,
		Name:        "Ocean",
		Temperature: 0.5,
		TopBlock:    BlockTypeSand,
		FillerBlock: BlockTypeDirt,
		GrassColor:  [3]uint8{142, 185, 113},
	}
)

var Biomes = []*Biome{BiomeOcean, BiomePlains, BiomeDesert, BiomeForest}

// BiomeAt returns a deterministic biome for a world column.
func BiomeAt(x, z int, seed int64) *Biome {
	const scale = 1.0 / 400.0
	val := octaveNoise2D(float64(x)*scale, float64(z)*scale, seed, 2, 0.5, 2.0)

	switch {
	case val < 0.35:
		return BiomeOcean
	case val < 0.5:
		return BiomePlains
	case val < 0.65:
		return BiomeForest
	default:
		return BiomeDesert
	}
}
