package sorting

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// SortType is how much work keeping a section's quads in order needs.
type SortType uint8

const (
	// SortNone needs no ordering: at most one quad.
	SortNone SortType = iota
	// SortStatic has one order valid from every viewpoint: all quads share
	// a normal.
	SortStatic
	// SortDynamic must be re-sorted when the camera moves.
	SortDynamic
)

func (t SortType) String() string {
	switch t {
	case SortNone:
		return "none"
	case SortStatic:
		return "static"
	case SortDynamic:
		return "dynamic"
	}
	return "unknown"
}

// State is the sort metadata of one translucent mesh.
type State struct {
	typ       SortType
	centroids []mgl32.Vec3
	normals   []mgl32.Vec3
	order     []int
}

func newState(centroids, normals []mgl32.Vec3, camera mgl32.Vec3) *State {
	s := &State{
		typ:       classify(normals),
		centroids: slices.Clone(centroids),
		normals:   slices.Clone(normals),
	}
	switch s.typ {
	case SortStatic:
		s.order = s.staticOrder()
	case SortDynamic:
		s.order = s.Resort(camera)
	}
	return s
}

func classify(normals []mgl32.Vec3) SortType {
	if len(normals) <= 1 {
		return SortNone
	}
	for _, n := range normals[1:] {
		if !n.ApproxEqual(normals[0]) {
			return SortDynamic
		}
	}
	return SortStatic
}

func (s *State) Type() SortType { return s.typ }

func (s *State) QuadCount() int { return len(s.centroids) }

func (s *State) Centroids() []mgl32.Vec3 { return s.centroids }

func (s *State) Normals() []mgl32.Vec3 { return s.normals }

// QuadOrder returns the quads in draw order, nil for SortNone.
func (s *State) QuadOrder() []int { return s.order }

// staticOrder draws quads furthest along the shared normal's back side
// first, which is back to front for any viewer the faces are visible to.
func (s *State) staticOrder() []int {
	n := s.normals[0]
	order := identity(len(s.centroids))
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(n.Dot(s.centroids[a]), n.Dot(s.centroids[b]))
	})
	return order
}

// Resort orders quads back to front as seen from camera.
func (s *State) Resort(camera mgl32.Vec3) []int {
	dist := make([]float32, len(s.centroids))
	for i, c := range s.centroids {
		d := c.Sub(camera)
		dist[i] = d.Dot(d)
	}
	order := identity(len(s.centroids))
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(dist[b], dist[a])
	})
	return order
}

func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
