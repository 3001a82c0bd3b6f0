package meshing

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/samber/lo"

	"sectionmesh/internal/profiling"
	"sectionmesh/internal/snapshot"
	"sectionmesh/internal/vertexformat"
	"sectionmesh/internal/world"
)

const sectionSize = world.SectionSize

// GreedyRenderer meshes a section snapshot, merging coplanar faces that
// share a block type and light level into larger quads. Each quad is four
// vertices; translucent blocks go to the sorted pass.
type GreedyRenderer struct {
	// Outside returns the block at section-local coordinates beyond the
	// section bounds. Nil treats everything outside as air.
	Outside func(x, y, z int) world.BlockType

	writer *vertexformat.Writer
	mask   [sectionSize * sectionSize]uint32
}

// NewGreedyRenderer returns a renderer writing vertices of the given format,
// which must hold position, color, texture, light and normal elements in
// that order.
func NewGreedyRenderer(format *vertexformat.Format) *GreedyRenderer {
	return &GreedyRenderer{writer: vertexformat.NewWriter(format)}
}

// Render emits the geometry of s into bufs, which must have been begun.
func (r *GreedyRenderer) Render(s *snapshot.Section, bufs *BuildBuffers) {
	defer profiling.Track("meshing.GreedyRender")()

	info := bufs.Info()
	indices := lo.Keys(s.BlockEntities())
	slices.Sort(indices)
	for _, i := range indices {
		info.AddBlockEntity(i)
	}

	if s.BlockData() == nil {
		return
	}
	for _, f := range FacingOrder[:FacingUnassigned] {
		r.renderFacing(s, bufs, f)
	}
}

// Plane axes per facing: d is the axis along the normal, u and v span the
// face so that u x v points along +d.
func axes(f Facing) (d, u, v int, positive bool) {
	switch f {
	case FacingEast, FacingWest:
		return 0, 1, 2, f == FacingEast
	case FacingUp, FacingDown:
		return 1, 2, 0, f == FacingUp
	default:
		return 2, 0, 1, f == FacingSouth
	}
}

func (r *GreedyRenderer) blockAt(s *snapshot.Section, p [3]int) world.BlockType {
	if p[0] < 0 || p[0] >= sectionSize || p[1] < 0 || p[1] >= sectionSize || p[2] < 0 || p[2] >= sectionSize {
		if r.Outside == nil {
			return world.BlockTypeAir
		}
		return r.Outside(p[0], p[1], p[2])
	}
	return s.BlockState(p[0], p[1], p[2])
}

func faceVisible(bt, neighbor world.BlockType) bool {
	if neighbor == world.BlockTypeAir {
		return true
	}
	return !neighbor.IsOpaque() && neighbor != bt
}

// lightAt packs the block and sky light a face receives from the cell in
// front of it, or from the block itself when that cell is outside. Custom
// light of the block or the cell in front raises the block channel.
func lightAt(s *snapshot.Section, own, front [3]int) uint32 {
	p := front
	if p[0] < 0 || p[0] >= sectionSize || p[1] < 0 || p[1] >= sectionSize || p[2] < 0 || p[2] >= sectionSize {
		p = own
	}
	bl := s.Light(world.LightBlock, p[0], p[1], p[2])
	sl := s.Light(world.LightSky, p[0], p[1], p[2])
	if aux := s.AuxLightManager(); aux != nil {
		origin := s.Position().MinBlock()
		for _, c := range [2][3]int{own, front} {
			bl = max(bl, aux.LightAt(world.BlockPos{X: origin.X + c[0], Y: origin.Y + c[1], Z: origin.Z + c[2]}))
		}
	}
	return uint32(bl)<<4 | uint32(sl)
}

func (r *GreedyRenderer) renderFacing(s *snapshot.Section, bufs *BuildBuffers, f Facing) {
	d, u, v, positive := axes(f)
	dx, dy, dz := f.Offset()
	step := [3]int{dx, dy, dz}

	for layer := range sectionSize {
		clear(r.mask[:])
		for j := range sectionSize {
			for i := range sectionSize {
				var p [3]int
				p[d], p[u], p[v] = layer, i, j
				bt := s.BlockState(p[0], p[1], p[2])
				if _, ok := MaterialFor(bt); !ok {
					continue
				}
				front := [3]int{p[0] + step[0], p[1] + step[1], p[2] + step[2]}
				if !faceVisible(bt, r.blockAt(s, front)) {
					continue
				}
				r.mask[j*sectionSize+i] = uint32(bt) | lightAt(s, p, front)<<16
			}
		}

		for j := range sectionSize {
			for i := 0; i < sectionSize; {
				key := r.mask[j*sectionSize+i]
				if key == 0 {
					i++
					continue
				}
				w := 1
				for i+w < sectionSize && r.mask[j*sectionSize+i+w] == key {
					w++
				}
				h := 1
			grow:
				for j+h < sectionSize {
					for k := range w {
						if r.mask[(j+h)*sectionSize+i+k] != key {
							break grow
						}
					}
					h++
				}
				for jj := j; jj < j+h; jj++ {
					for k := range w {
						r.mask[jj*sectionSize+i+k] = 0
					}
				}

				plane := layer
				if positive {
					plane++
				}
				r.emitQuad(s, bufs, f, quad{
					d: d, u: u, v: v, positive: positive,
					plane: plane, u0: i, v0: j, u1: i + w, v1: j + h,
					block: world.BlockType(key & 0xffff),
					light: key >> 16,
				})
				i += w
			}
		}
	}
}

type quad struct {
	d, u, v        int
	positive       bool
	plane          int
	u0, v0, u1, v1 int
	block          world.BlockType
	light          uint32
}

func (q quad) corner(cu, cv int) mgl32.Vec3 {
	var p mgl32.Vec3
	p[q.d] = float32(q.plane)
	p[q.u] = float32(cu)
	p[q.v] = float32(cv)
	return p
}

func (r *GreedyRenderer) emitQuad(s *snapshot.Section, bufs *BuildBuffers, f Facing, q quad) {
	mat, _ := MaterialFor(q.block)
	mb := bufs.ForMaterial(mat)
	mb.AddSprite(q.block.Name())

	// Counter-clockwise seen from the side the face points to.
	corners := [4][2]int{{q.u0, q.v0}, {q.u1, q.v0}, {q.u1, q.v1}, {q.u0, q.v1}}
	if !q.positive {
		corners[1], corners[3] = corners[3], corners[1]
	}

	color := q.block.Color()
	if q.block == world.BlockTypeGrass && f == FacingUp {
		var p [3]int
		p[q.d], p[q.u], p[q.v] = q.plane-1, q.u0, q.v0
		tint := s.Biome(p[0], p[1], p[2]).GrassColor
		color = [4]uint8{tint[0], tint[1], tint[2], color[3]}
	}

	n := f.Normal().Mul(127)
	normal := []int8{int8(n[0]), int8(n[1]), int8(n[2])}
	blockLight, skyLight := int16(q.light>>4&0xf), int16(q.light&0xf)

	w := r.writer
	w.Begin(4)
	for _, c := range corners {
		pos := q.corner(c[0], c[1])
		w.Floats(pos[0], pos[1], pos[2]).
			UBytes(color[:]...).
			Floats(float32(c[0]-q.u0), float32(c[1]-q.v0)).
			Shorts(blockLight, skyLight).
			Bytes8(normal...)
	}
	mb.VertexBuffer(f).Push(w.Bytes())
}
