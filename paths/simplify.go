package paths

import (
	"math"
)

// vec2linedist returns the distance from v to the segment s-e.
func vec2linedist(v, s, e Vec2) float64 {
	d := vec2SubVec2(e, s)
	l2 := d[0]*d[0] + d[1]*d[1]
	if l2 == 0 {
		return vec2dist(v, s)
	}
	t := ((v[0]-s[0])*d[0] + (v[1]-s[1])*d[1]) / l2
	t = math.Max(0, math.Min(1, t))
	return vec2dist(v, vec2AddVec2(s, vec2Scale(d, t)))
}

// simplifyPath removes points from an open polyline, with the guarantee
// that all removed points are within tol of the new polyline.
func simplifyPath(v []Vec2, tol float64) []Vec2 {
	if len(v) < 3 {
		return append([]Vec2{}, v...)
	}
	worst := 0
	worstD := 0.0
	for i := 1; i < len(v)-1; i++ {
		d := vec2linedist(v[i], v[0], v[len(v)-1])
		if d > worstD {
			worst = i
			worstD = d
		}
	}
	if worstD <= tol {
		return []Vec2{v[0], v[len(v)-1]}
	}
	if worst <= 0 || worst >= len(v)-1 {
		panic("simply the worst")
	}
	lefts := simplifyPath(v[:worst+1], tol)
	rights := simplifyPath(v[worst:], tol)
	return append(lefts, rights[1:]...)
}

// Simplify removes points from the contour that are within tol of the
// outline through the remaining points. Contours are filled as closed
// polygons, so the edge from the last point back to the first is part
// of the outline.
func (c *Contour) Simplify(tol float64) {
	if len(c.V) < 4 {
		return
	}
	// Split the ring at the point farthest from the first.
	far, farD := 0, 0.0
	for i, v := range c.V {
		if d := vec2dist(v, c.V[0]); d > farD {
			far, farD = i, d
		}
	}
	if far == 0 {
		return
	}
	lefts := simplifyPath(c.V[:far+1], tol)
	ring := append(append([]Vec2{}, c.V[far:]...), c.V[0])
	rights := simplifyPath(ring, tol)
	c.V = append(lefts, rights[1:len(rights)-1]...)
}
