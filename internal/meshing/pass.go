package meshing

import "sectionmesh/internal/world"

// RenderPass groups geometry that is drawn with the same pipeline state.
// Passes are compared by identity.
type RenderPass struct {
	Name string
	// Sorted passes are drawn back to front, so all their quads share one
	// bucket and carry an index buffer.
	Sorted bool
}

func (p *RenderPass) String() string { return p.Name }

var (
	PassSolid       = &RenderPass{Name: "solid"}
	PassCutout      = &RenderPass{Name: "cutout"}
	PassTranslucent = &RenderPass{Name: "translucent", Sorted: true}
)

// DefaultPasses lists the passes a BuildBuffers is created with.
var DefaultPasses = []*RenderPass{PassSolid, PassCutout, PassTranslucent}

// Material selects the pass geometry is emitted into.
type Material struct {
	Pass *RenderPass
	// Mipped is false for geometry that samples sprites without mipmaps.
	Mipped bool
}

var (
	MaterialSolid       = Material{Pass: PassSolid, Mipped: true}
	MaterialCutout      = Material{Pass: PassCutout}
	MaterialTranslucent = Material{Pass: PassTranslucent, Mipped: true}
)

// MaterialFor returns the material a block renders with. The second result
// is false for invisible blocks.
func MaterialFor(bt world.BlockType) (Material, bool) {
	switch bt.Layer() {
	case world.LayerSolid:
		return MaterialSolid, true
	case world.LayerCutout:
		return MaterialCutout, true
	case world.LayerTranslucent:
		return MaterialTranslucent, true
	}
	return Material{}, false
}
