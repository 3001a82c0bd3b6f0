package world

type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeStone
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeBedrock
	BlockTypeSand
	BlockTypeLog
	BlockTypeLeaves
	BlockTypeGlass
	BlockTypeWater
	BlockTypeChest
	BlockTypeSign
	BlockTypeBarrier

	blockTypeCount
)

// RenderLayer is the draw classification a block's geometry falls into.
type RenderLayer uint8

const (
	LayerInvisible RenderLayer = iota
	LayerSolid
	LayerCutout
	LayerTranslucent
)

type blockProps struct {
	name  string
	layer RenderLayer
	// entity marks blocks that carry a block entity
	entity bool
	color  [4]uint8
}

var blockTable = [blockTypeCount]blockProps{
	BlockTypeAir:     {name: "air", layer: LayerInvisible},
	BlockTypeStone:   {name: "stone", layer: LayerSolid, color: [4]uint8{125, 125, 125, 255}},
	BlockTypeGrass:   {name: "grass_block", layer: LayerSolid, color: [4]uint8{95, 159, 53, 255}},
	BlockTypeDirt:    {name: "dirt", layer: LayerSolid, color: [4]uint8{134, 96, 67, 255}},
	BlockTypeBedrock: {name: "bedrock", layer: LayerSolid, color: [4]uint8{60, 60, 60, 255}},
	BlockTypeSand:    {name: "sand", layer: LayerSolid, color: [4]uint8{219, 207, 163, 255}},
	BlockTypeLog:     {name: "oak_log", layer: LayerSolid, color: [4]uint8{109, 85, 50, 255}},
	BlockTypeLeaves:  {name: "oak_leaves", layer: LayerCutout, color: [4]uint8{60, 120, 40, 255}},
	BlockTypeGlass:   {name: "glass", layer: LayerTranslucent, color: [4]uint8{200, 220, 255, 96}},
	BlockTypeWater:   {name: "water", layer: LayerTranslucent, color: [4]uint8{63, 118, 228, 160}},
	BlockTypeChest:   {name: "chest", layer: LayerCutout, entity: true, color: [4]uint8{160, 110, 40, 255}},
	BlockTypeSign:    {name: "oak_sign", layer: LayerCutout, entity: true, color: [4]uint8{180, 140, 80, 255}},
	BlockTypeBarrier: {name: "barrier", layer: LayerInvisible},
}

func (b BlockType) props() blockProps {
	if int(b) >= len(blockTable) {
		return blockTable[BlockTypeAir]
	}
	return blockTable[b]
}

// Name returns the registry name of the block.
func (b BlockType) Name() string { return b.props().name }

func (b BlockType) String() string { return b.Name() }

// Layer returns the render layer geometry of this block belongs to.
func (b BlockType) Layer() RenderLayer { return b.props().layer }

// HasBlockEntity reports whether placing the block creates a block entity.
func (b BlockType) HasBlockEntity() bool { return b.props().entity }

// Color returns the flat RGBA tint used when meshing this block.
func (b BlockType) Color() [4]uint8 { return b.props().color }

// IsOpaque reports whether the block fully hides faces behind it.
func (b BlockType) IsOpaque() bool { return b.props().layer == LayerSolid }

// BlockTypes returns every registered block type in id order, air included.
func BlockTypes() []BlockType {
	out := make([]BlockType, blockTypeCount)
	for i := range out {
		out[i] = BlockType(i)
	}
	return out
}
