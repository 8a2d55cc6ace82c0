package tess

import (
	"math"

	"github.com/paulhankin/svgstl/paths"
)

// collinearTolerance is the distance, relative to the size of a
// contour, below which points are treated as lying on a straight line.
const collinearTolerance = 1e-9

// ToShapes groups contours into solids and holes. A contour is a solid
// if it winds clockwise on the page (negative area with y up), or
// counter-clockwise if its WindingCW flag is set; the rest are holes.
// A single contour is always solid, and if nothing is solid the
// winding is taken to be the wrong way round and every contour is
// solid. Each hole belongs to the smallest solid that contains it.
// Contours with fewer than three points enclose nothing and are
// dropped.
func (t *Tessellator) ToShapes(cs []paths.Contour) []Shape {
	var usable []paths.Contour
	for _, c := range cs {
		c.V = append([]paths.Vec2(nil), c.V...)
		s := c.Bounds().Size()
		c.Simplify(collinearTolerance * math.Max(s[0], s[1]))
		if len(c.V) >= 3 {
			usable = append(usable, c)
		}
	}
	if len(usable) == 0 {
		return nil
	}
	if len(usable) == 1 {
		return []Shape{newShape(usable[0].Path)}
	}

	type solid struct {
		shape Shape
		area  float64
	}
	var solids []*solid
	var holes []paths.Path
	// owner is the solid a hole follows in drawing order.
	var owner []int
	for _, c := range usable {
		a := c.Area()
		if (a < 0) != c.WindingCW {
			solids = append(solids, &solid{shape: newShape(c.Path), area: math.Abs(a)})
		} else {
			holes = append(holes, c.Path)
			owner = append(owner, len(solids)-1)
		}
	}
	if len(solids) == 0 {
		t.log().Debug("no solid contours, treating all as solid")
		shapes := make([]Shape, len(usable))
		for i, c := range usable {
			shapes[i] = newShape(c.Path)
		}
		return shapes
	}

	for i, h := range holes {
		best := -1
		for j, s := range solids {
			if !s.shape.Outer.Contains(h.V[0]) {
				continue
			}
			if best < 0 || s.area < solids[best].area {
				best = j
			}
		}
		if best < 0 {
			best = owner[i]
			if best < 0 {
				best = 0
			}
		}
		s := &solids[best].shape
		s.Holes = append(s.Holes, orient(h, false))
	}
	shapes := make([]Shape, len(solids))
	for i, s := range solids {
		shapes[i] = s.shape
	}
	return shapes
}

func newShape(outer paths.Path) Shape {
	return Shape{Outer: orient(outer, true)}
}

// orient returns p wound counter-clockwise if ccw is set, and
// clockwise otherwise.
func orient(p paths.Path, ccw bool) paths.Path {
	if (p.Area() > 0) != ccw {
		return p.Reversed()
	}
	return p
}

// normalized returns s with its contours wound the way Shape requires.
func normalized(s Shape) Shape {
	r := Shape{Outer: orient(s.Outer, true)}
	for _, h := range s.Holes {
		r.Holes = append(r.Holes, orient(h, false))
	}
	return r
}
