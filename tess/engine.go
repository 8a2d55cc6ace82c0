// Package tess turns flattened contours into filled shapes and
// extrudes them into closed triangle meshes.
package tess

import (
	"github.com/paulhankin/svgstl/mesh"
	"github.com/paulhankin/svgstl/paths"
	"go.uber.org/zap"
)

// A Shape is a filled region: an outer contour, counter-clockwise,
// minus any number of clockwise holes.
type Shape struct {
	Outer paths.Path
	Holes []paths.Path
}

// Profile controls extrusion. The shape is extruded from z=0 to
// z=Depth. With a bevel, the outline is expanded by BevelSize through
// the straight part and chamfered back to the original outline over
// BevelThickness above and below it.
type Profile struct {
	Depth          float64
	BevelEnabled   bool
	BevelThickness float64
	BevelSize      float64
	BevelSegments  int
}

// Engine is the geometry backend used to build solids.
type Engine interface {
	// ToShapes groups the contours of one drawing path into shapes.
	ToShapes(cs []paths.Contour) []Shape
	// Triangulate fills a shape. It returns the shape's vertices, the
	// outer contour first, then each hole, then any points added where
	// contours cross, and counter-clockwise triangles indexing them.
	Triangulate(s Shape) ([]paths.Vec2, [][3]int, error)
	// Extrude builds a closed mesh with flat normals.
	Extrude(shapes []Shape, p Profile) (*mesh.Mesh, error)
}

// Tessellator is the default Engine. It triangulates with libtess2.
type Tessellator struct {
	Log *zap.Logger
}

// New returns a Tessellator that doesn't log.
func New() *Tessellator {
	return &Tessellator{Log: zap.NewNop()}
}

func (t *Tessellator) log() *zap.Logger {
	if t.Log == nil {
		return zap.NewNop()
	}
	return t.Log
}

var _ Engine = (*Tessellator)(nil)
