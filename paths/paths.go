// Package paths reads 2d drawings out of SVG documents and turns them
// into flattened contours made of line segments.
package paths

import "math"

// Vec2 is a 2-dimensional vector.
type Vec2 [2]float64

// A Path is a contiguous series of line segments, from the
// first point in the V slice to the last.
type Path struct {
	V []Vec2
}

// Bounds describes an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec2
}

// Size returns the width and height of the bounds.
func (b Bounds) Size() Vec2 {
	return Vec2{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1]}
}

// Paths is a set of paths, along with a view bounds.
type Paths struct {
	Bounds Bounds
	P      []Path
}

// TightenBounds adjusts the bounds to exactly contain the paths.
// If there are no paths, the bounds are set to zero.
func (ps *Paths) TightenBounds() {
	inf := math.Inf(1)
	min := Vec2{inf, inf}
	max := Vec2{-inf, -inf}
	i := 0
	for _, p := range ps.P {
		for _, v := range p.V {
			i++
			min[0] = math.Min(min[0], v[0])
			min[1] = math.Min(min[1], v[1])
			max[0] = math.Max(max[0], v[0])
			max[1] = math.Max(max[1], v[1])
		}
	}
	if i == 0 {
		ps.Bounds = Bounds{}
		return
	}
	ps.Bounds = Bounds{
		Min: min,
		Max: max,
	}
}

// Bounds returns the bounding box of the path's points.
func (p Path) Bounds() Bounds {
	ps := Paths{P: []Path{p}}
	ps.TightenBounds()
	return ps.Bounds
}

// Area returns the signed area of the polygon formed by the path,
// treating it as implicitly closed. Counter-clockwise polygons (with
// y pointing up) have positive area.
func (p Path) Area() float64 {
	n := len(p.V)
	a := 0.0
	for i := 0; i < n; i++ {
		v0 := p.V[i]
		v1 := p.V[(i+1)%n]
		a += v0[0]*v1[1] - v1[0]*v0[1]
	}
	return a / 2
}

// Contains reports whether v lies inside the polygon formed by the
// path, using the even-odd rule.
func (p Path) Contains(v Vec2) bool {
	in := false
	n := len(p.V)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.V[i], p.V[j]
		if (a[1] > v[1]) != (b[1] > v[1]) &&
			v[0] < (b[0]-a[0])*(v[1]-a[1])/(b[1]-a[1])+a[0] {
			in = !in
		}
	}
	return in
}

// Reversed returns a copy of the path with its points in reverse order.
func (p Path) Reversed() Path {
	r := make([]Vec2, len(p.V))
	for i, v := range p.V {
		r[len(r)-1-i] = v
	}
	return Path{V: r}
}

func vec2AddVec2(a, b Vec2) Vec2 {
	return Vec2{a[0] + b[0], a[1] + b[1]}
}

func vec2SubVec2(a, b Vec2) Vec2 {
	return Vec2{a[0] - b[0], a[1] - b[1]}
}

func vec2Scale(a Vec2, s float64) Vec2 {
	return Vec2{a[0] * s, a[1] * s}
}

func vec2dist(v0, v1 Vec2) float64 {
	dx := v0[0] - v1[0]
	dy := v0[1] - v1[1]
	return math.Sqrt(dx*dx + dy*dy)
}
