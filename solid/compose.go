// Package solid assembles extruded drawings into printable solids:
// scaled, centered and optionally standing on a base plate.
package solid

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulhankin/svgstl/mesh"
	"github.com/paulhankin/svgstl/tess"
	"go.uber.org/zap"
)

// CylinderSegments is the number of sides of a circular base plate.
const CylinderSegments = 64

// Options describes the solid to build. Lengths are in millimeters.
type Options struct {
	// TypeSize is the size of the drawing's larger side.
	TypeSize float64
	// TypeDepth is the extrusion depth. Negative depths are extruded
	// by their magnitude, without a bevel.
	TypeDepth float64
	// Inverted skips mirroring the drawing.
	Inverted bool
	// Bevel flares the sides of the drawing out towards the base
	// plate. It only applies with a base plate and a positive depth.
	Bevel bool

	BasePlate    bool
	CircularBase bool
	BaseDepth    float64
	BaseBuffer   float64
}

// A Composer builds solids from shapes using a geometry engine.
type Composer struct {
	Engine tess.Engine
	Log    *zap.Logger
}

// NewComposer returns a Composer using the default geometry engine.
func NewComposer(log *zap.Logger) *Composer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Composer{Engine: &tess.Tessellator{Log: log}, Log: log}
}

func (c *Composer) log() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

func finite(fs ...float64) bool {
	for _, f := range fs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Compose extrudes the shapes and places them in a scene. The drawing
// is mirrored (so that it reads correctly when used as a stamp) unless
// Inverted is set, scaled so its larger side is TypeSize, centered on
// the origin and turned half way round the z axis. With a base plate,
// the plate comes first in the scene and the drawing sits on top of it.
func (c *Composer) Compose(shapes []tess.Shape, o Options) (*mesh.Scene, error) {
	depth := o.TypeDepth
	m, err := c.Engine.Extrude(shapes, tess.Profile{Depth: math.Abs(depth)})
	if err != nil {
		return nil, fmt.Errorf("failed to extrude drawing: %w", err)
	}
	size := m.Bounds().Size()
	maxExtent := math.Max(size.X(), size.Y())
	if len(m.Positions) == 0 || !(maxExtent > 0) || !finite(maxExtent) {
		return nil, &DegenerateGeometryError{Step: "extrude"}
	}
	c.log().Debug("extruded drawing",
		zap.Int("triangles", m.TriangleCount()),
		zap.Float64("width", size.X()),
		zap.Float64("height", size.Y()))

	if o.Bevel && o.BasePlate && depth >= 0 {
		m, err = c.Engine.Extrude(shapes, tess.Profile{
			Depth:          0,
			BevelEnabled:   true,
			BevelThickness: depth,
			BevelSize:      depth * maxExtent / o.TypeSize,
			BevelSegments:  1,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to extrude beveled drawing: %w", err)
		}
	}

	if !o.Inverted {
		m.Apply(mgl64.Scale3D(-1, 1, 1))
	}
	s := o.TypeSize / maxExtent
	b := m.Apply(mgl64.Scale3D(s, s, 1))
	if !b.Finite() || !(b.Size().X() > 0 || b.Size().Y() > 0) {
		return nil, &DegenerateGeometryError{Step: "scale"}
	}
	sz := b.Size()
	m.Apply(mgl64.Translate3D(-(math.Abs(sz.X()/2) + b.Min.X()), -(math.Abs(sz.Y()/2) + b.Min.Y()), 0))
	b = m.Apply(mgl64.HomogRotate3DZ(math.Pi))
	sphere := m.BoundingSphere()
	if !b.Finite() || !finite(sphere.Radius) {
		return nil, &DegenerateGeometryError{Step: "center"}
	}

	scene := &mesh.Scene{}
	if !o.BasePlate {
		scene.Add("emblem", m, mgl64.Ident4())
		return scene, nil
	}

	m.Apply(mgl64.Translate3D(0, 0, o.BaseDepth))
	var base *mesh.Mesh
	if o.CircularBase {
		r := sphere.Radius + o.BaseBuffer
		base = mesh.Cylinder(r, o.BaseDepth, CylinderSegments)
		base.Apply(mgl64.HomogRotate3DX(math.Pi / 2))
	} else {
		sz := b.Size()
		side := math.Max(sz.X(), sz.Y()) + o.BaseBuffer
		base = mesh.Box(side, side, o.BaseDepth)
	}
	base.Apply(mgl64.Translate3D(0, 0, o.BaseDepth/2))
	c.log().Debug("added base plate",
		zap.Bool("circular", o.CircularBase),
		zap.Stringer("bounds", boundsString(base.Bounds())))

	scene.Add("base", base, mgl64.Ident4())
	scene.Add("emblem", m, mgl64.Ident4())
	return scene, nil
}

type boundsString mesh.Bounds3

func (b boundsString) String() string {
	return fmt.Sprintf("[%.3f %.3f %.3f]-[%.3f %.3f %.3f]",
		b.Min.X(), b.Min.Y(), b.Min.Z(), b.Max.X(), b.Max.Y(), b.Max.Z())
}
