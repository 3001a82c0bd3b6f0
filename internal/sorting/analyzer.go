// Package sorting derives the draw order of translucent quads.
package sorting

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"sectionmesh/internal/meshing"
	"sectionmesh/internal/vertexformat"
)

// Analyzer records the centroid and normal of every quad pushed into a
// sorted bucket.
type Analyzer struct {
	posOffset int
	camera    mgl32.Vec3

	pending   [4]mgl32.Vec3
	n         int
	centroids []mgl32.Vec3
	normals   []mgl32.Vec3
}

// NewAnalyzer returns an analyzer for vertices of format. camera is the
// viewer position in the section's local coordinates, used for the
// initial order of dynamic states.
func NewAnalyzer(format *vertexformat.Format, camera mgl32.Vec3) *Analyzer {
	i := format.IndexOf(vertexformat.UsagePosition)
	if i < 0 {
		panic(fmt.Errorf("sorting: format %q has no position", format.Name()))
	}
	if e := format.Element(i); e.Type != vertexformat.TypeFloat || e.Count != 3 {
		panic(fmt.Errorf("sorting: format %q position is not float3", format.Name()))
	}
	return &Analyzer{posOffset: format.Offset(i), camera: camera}
}

// Factory returns a meshing.AnalyzerFactory creating analyzers that see
// the camera at the given section-local position.
func Factory(camera mgl32.Vec3) meshing.AnalyzerFactory {
	return func(format *vertexformat.Format) meshing.QuadAnalyzer {
		return NewAnalyzer(format, camera)
	}
}

// Capture records one vertex. Every fourth vertex completes a quad.
func (a *Analyzer) Capture(vertex []byte) {
	p := vertex[a.posOffset:]
	a.pending[a.n] = mgl32.Vec3{
		math.Float32frombits(binary.LittleEndian.Uint32(p[0:])),
		math.Float32frombits(binary.LittleEndian.Uint32(p[4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(p[8:])),
	}
	a.n++
	if a.n < 4 {
		return
	}
	a.n = 0

	q := a.pending
	centroid := q[0].Add(q[1]).Add(q[2]).Add(q[3]).Mul(0.25)
	normal := q[1].Sub(q[0]).Cross(q[2].Sub(q[0]))
	if normal.Len() > 0 {
		normal = normal.Normalize()
	}
	a.centroids = append(a.centroids, centroid)
	a.normals = append(a.normals, normal)
}

// SortState classifies the captured quads.
func (a *Analyzer) SortState() meshing.SortState {
	return newState(a.centroids, a.normals, a.camera)
}

// Clear forgets all captured quads.
func (a *Analyzer) Clear() {
	a.n = 0
	a.centroids = a.centroids[:0]
	a.normals = a.normals[:0]
}
