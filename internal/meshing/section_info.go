package meshing

import (
	"slices"

	"github.com/samber/lo"

	"sectionmesh/internal/world"
)

// SectionInfo records what a section build produced besides vertices: the
// sprites its quads sample, the block entities drawn separately and the
// passes that hold geometry. BuildBuffers starts a fresh record on every
// Begin, so a finished record can be handed to another goroutine.
type SectionInfo struct {
	pos           world.SectionPos
	sprites       map[string]struct{}
	blockEntities []int
	passes        []*RenderPass
}

func newSectionInfo(pos world.SectionPos) *SectionInfo {
	return &SectionInfo{pos: pos, sprites: make(map[string]struct{})}
}

func (i *SectionInfo) Position() world.SectionPos { return i.pos }

// AddSprite records a sprite sampled by emitted geometry.
func (i *SectionInfo) AddSprite(name string) { i.sprites[name] = struct{}{} }

// AddBlockEntity records the local index of a block entity to render.
func (i *SectionInfo) AddBlockEntity(index int) {
	i.blockEntities = append(i.blockEntities, index)
}

func (i *SectionInfo) markPass(p *RenderPass) {
	if !slices.Contains(i.passes, p) {
		i.passes = append(i.passes, p)
	}
}

// Sprites returns the recorded sprite names in lexical order.
func (i *SectionInfo) Sprites() []string {
	names := lo.Keys(i.sprites)
	slices.Sort(names)
	return names
}

func (i *SectionInfo) BlockEntities() []int { return i.blockEntities }

// Passes returns the passes a mesh was created for, in creation order.
func (i *SectionInfo) Passes() []*RenderPass { return i.passes }

// IsEmpty reports whether the build produced nothing to draw.
func (i *SectionInfo) IsEmpty() bool {
	return len(i.passes) == 0 && len(i.blockEntities) == 0
}
