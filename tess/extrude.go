package tess

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulhankin/svgstl/mesh"
	"github.com/paulhankin/svgstl/paths"
)

// A layer is one ring of the extrusion profile: every contour, pushed
// outwards by offset, at height z.
type layer struct {
	z, offset float64
}

func (p Profile) layers() []layer {
	if !p.BevelEnabled {
		return dedupLayers([]layer{{0, 0}, {p.Depth, 0}})
	}
	segs := p.BevelSegments
	if segs < 1 {
		segs = 1
	}
	bevel := func(b int) (float64, float64) {
		a := float64(b) / float64(segs) * math.Pi / 2
		return p.BevelThickness * math.Cos(a), p.BevelSize * math.Sin(a)
	}
	var ls []layer
	for b := 0; b < segs; b++ {
		z, off := bevel(b)
		ls = append(ls, layer{-z, off})
	}
	ls = append(ls, layer{0, p.BevelSize}, layer{p.Depth, p.BevelSize})
	for b := segs - 1; b >= 0; b-- {
		z, off := bevel(b)
		ls = append(ls, layer{p.Depth + z, off})
	}
	return dedupLayers(ls)
}

func dedupLayers(ls []layer) []layer {
	out := ls[:1]
	for _, l := range ls[1:] {
		if l != out[len(out)-1] {
			out = append(out, l)
		}
	}
	return out
}

// miters returns, for each point of the closed ring v, the amount to
// move it by to push every edge one unit to its right. Sharp corners
// are limited to a move of sqrt(2).
func miters(v []paths.Vec2) []paths.Vec2 {
	n := len(v)
	normal := func(i int) paths.Vec2 {
		a, b := v[i], v[(i+1)%n]
		dx, dy := b[0]-a[0], b[1]-a[1]
		l := math.Hypot(dx, dy)
		if l == 0 {
			return paths.Vec2{}
		}
		return paths.Vec2{dy / l, -dx / l}
	}
	r := make([]paths.Vec2, n)
	for i := range v {
		n0, n1 := normal((i+n-1)%n), normal(i)
		m := paths.Vec2{n0[0] + n1[0], n0[1] + n1[1]}
		ml := math.Hypot(m[0], m[1])
		if ml < 1e-12 {
			r[i] = n0
			continue
		}
		m = paths.Vec2{m[0] / ml, m[1] / ml}
		s := 1 / (m[0]*n0[0] + m[1]*n0[1])
		if s*s > 2 || s < 0 {
			s = math.Sqrt2
		}
		r[i] = paths.Vec2{m[0] * s, m[1] * s}
	}
	return r
}

func addFace(m *mesh.Mesh, a, b, c mgl64.Vec3) {
	n := mesh.FaceNormal(a, b, c)
	m.Positions = append(m.Positions, a, b, c)
	m.Normals = append(m.Normals, n, n, n)
}

// Extrude builds a closed, flat-shaded mesh from the shapes: a bottom
// cap facing -z, side walls between each pair of profile layers, and a
// top cap facing +z.
func (t *Tessellator) Extrude(shapes []Shape, p Profile) (*mesh.Mesh, error) {
	m := &mesh.Mesh{}
	ls := p.layers()
	for si, s := range shapes {
		s = normalized(s)
		vs, tris, err := t.Triangulate(s)
		if errors.Is(err, ErrDegenerateShape) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to triangulate shape %d: %w", si, err)
		}
		rings := []paths.Path{s.Outer}
		for _, h := range s.Holes {
			if len(h.V) >= 3 {
				rings = append(rings, h)
			}
		}
		var dirs []paths.Vec2
		for _, r := range rings {
			dirs = append(dirs, miters(r.V)...)
		}
		// Points where contours cross don't move.
		for len(dirs) < len(vs) {
			dirs = append(dirs, paths.Vec2{})
		}

		pts := make([][]mgl64.Vec3, len(ls))
		for k, l := range ls {
			pts[k] = make([]mgl64.Vec3, len(vs))
			for j, v := range vs {
				pts[k][j] = mgl64.Vec3{v[0] + dirs[j][0]*l.offset, v[1] + dirs[j][1]*l.offset, l.z}
			}
		}

		bottom, top := pts[0], pts[len(pts)-1]
		for _, tr := range tris {
			addFace(m, bottom[tr[0]], bottom[tr[2]], bottom[tr[1]])
			addFace(m, top[tr[0]], top[tr[1]], top[tr[2]])
		}
		for k := 0; k+1 < len(ls); k++ {
			base := 0
			for _, r := range rings {
				n := len(r.V)
				for i := 0; i < n; i++ {
					j := (i + 1) % n
					a0, b0 := pts[k][base+i], pts[k][base+j]
					a1, b1 := pts[k+1][base+i], pts[k+1][base+j]
					addFace(m, a0, b0, b1)
					addFace(m, a0, b1, a1)
				}
				base += n
			}
		}
	}
	return m, nil
}
