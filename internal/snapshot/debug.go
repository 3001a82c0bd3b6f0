package snapshot

import "sectionmesh/internal/world"

const (
	debugBarrierSection  = 3
	debugBarrierY        = 12
	debugShowcaseSection = 4
	debugShowcaseY       = 6
)

// DefaultDebugStates reproduces the debug world layout: a barrier floor in
// section Y 3 and the block showcase grid in section Y 4. Every other
// section is air and shares one empty container.
func DefaultDebugStates(pos world.SectionPos) world.ReadableContainer[world.BlockType] {
	switch pos.Y {
	case debugBarrierSection:
		c := world.NewPalettedContainer(world.SectionSize, world.BlockTypeAir)
		for z := range world.SectionSize {
			for x := range world.SectionSize {
				c.Set(x, debugBarrierY, z, world.BlockTypeBarrier)
			}
		}
		return c
	case debugShowcaseSection:
		c := world.NewPalettedContainer(world.SectionSize, world.BlockTypeAir)
		origin := pos.MinBlock()
		for z := range world.SectionSize {
			for x := range world.SectionSize {
				c.Set(x, debugShowcaseY, z, world.DebugBlockAt(origin.X+x, origin.Z+z))
			}
		}
		return c
	default:
		return emptyStates
	}
}
