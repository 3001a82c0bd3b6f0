package meshing

import "github.com/go-gl/mathgl/mgl32"

// Facing classifies quads by the direction they face, so a renderer can
// skip whole ranges that point away from the camera.
type Facing uint8

const (
	FacingUp Facing = iota
	FacingDown
	FacingEast
	FacingWest
	FacingSouth
	FacingNorth
	// FacingUnassigned holds quads with no single facing, and every quad of
	// a sorted pass.
	FacingUnassigned

	FacingCount = int(FacingUnassigned) + 1
)

// FacingOrder is the order facings are laid out in a merged vertex buffer.
var FacingOrder = [FacingCount]Facing{
	FacingUp, FacingDown, FacingEast, FacingWest, FacingSouth, FacingNorth, FacingUnassigned,
}

var facingNames = [FacingCount]string{"up", "down", "east", "west", "south", "north", "unassigned"}

func (f Facing) String() string {
	if int(f) < FacingCount {
		return facingNames[f]
	}
	return "invalid"
}

// Offset returns the unit step towards the neighbour this facing looks at.
// FacingUnassigned has no direction.
func (f Facing) Offset() (dx, dy, dz int) {
	switch f {
	case FacingUp:
		return 0, 1, 0
	case FacingDown:
		return 0, -1, 0
	case FacingEast:
		return 1, 0, 0
	case FacingWest:
		return -1, 0, 0
	case FacingSouth:
		return 0, 0, 1
	case FacingNorth:
		return 0, 0, -1
	}
	return 0, 0, 0
}

// Normal returns the outward unit normal of the facing.
func (f Facing) Normal() mgl32.Vec3 {
	dx, dy, dz := f.Offset()
	return mgl32.Vec3{float32(dx), float32(dy), float32(dz)}
}
