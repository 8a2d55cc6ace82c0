package tess

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/go-libtess2"
	"github.com/paulhankin/svgstl/paths"
	"go.uber.org/zap"
)

// ErrDegenerateShape is returned when a shape encloses no area.
var ErrDegenerateShape = errors.New("shape encloses no area")

// cross returns twice the signed area of the triangle a, b, c.
func cross(a, b, c paths.Vec2) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

type vkey [2]float32

// Triangulate fills the shape using libtess2. The holes of a shape lie
// inside its outer contour, so the odd winding rule gives the filled
// region whichever way the contours wind.
//
// libtess2 works in float32. Its output vertices are mapped back onto
// the shape's own points, so that caps share exact coordinates with the
// walls built from the same contours.
func (t *Tessellator) Triangulate(s Shape) ([]paths.Vec2, [][3]int, error) {
	s = normalized(s)
	if len(s.Outer.V) < 3 {
		return nil, nil, ErrDegenerateShape
	}
	rings := []paths.Path{s.Outer}
	for _, h := range s.Holes {
		if len(h.V) >= 3 {
			rings = append(rings, h)
		}
	}

	// Coordinates are taken relative to the middle of the shape to keep
	// as much float32 precision as possible.
	bnd := s.Outer.Bounds()
	ox, oy := (bnd.Min[0]+bnd.Max[0])/2, (bnd.Min[1]+bnd.Max[1])/2
	var vs []paths.Vec2
	index := map[vkey]int{}
	contours := make([]libtess2.Contour, 0, len(rings))
	for _, r := range rings {
		c := make(libtess2.Contour, len(r.V))
		for i, v := range r.V {
			k := vkey{float32(v[0] - ox), float32(v[1] - oy)}
			c[i] = libtess2.Vertex{X: k[0], Y: k[1]}
			if _, ok := index[k]; !ok {
				index[k] = len(vs)
			}
			vs = append(vs, v)
		}
		contours = append(contours, c)
	}

	elems, tvs, err := libtess2.Tesselate(contours, libtess2.WindingRuleOdd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to tessellate: %w", err)
	}

	// Points libtess2 adds where contours cross go after the rings.
	remap := make([]int, len(tvs))
	for i, v := range tvs {
		if j, ok := index[vkey{v.X, v.Y}]; ok {
			remap[i] = j
			continue
		}
		p := paths.Vec2{float64(v.X) + ox, float64(v.Y) + oy}
		t.log().Debug("contours cross", zap.Float64("x", p[0]), zap.Float64("y", p[1]))
		remap[i] = len(vs)
		vs = append(vs, p)
	}

	var tris [][3]int
	area := 0.0
	for i := 0; i+2 < len(elems); i += 3 {
		a, b, c := elems[i], elems[i+1], elems[i+2]
		if a < 0 || b < 0 || c < 0 {
			continue
		}
		tr := [3]int{remap[a], remap[b], remap[c]}
		area += cross(vs[tr[0]], vs[tr[1]], vs[tr[2]])
		tris = append(tris, tr)
	}
	if len(tris) == 0 || area == 0 {
		return nil, nil, ErrDegenerateShape
	}
	// All triangles wind the same way; make it counter-clockwise.
	if area < 0 {
		for i := range tris {
			tris[i][1], tris[i][2] = tris[i][2], tris[i][1]
		}
	}
	return vs, splitSlivers(vs, tris), nil
}

func dist2(a, b paths.Vec2) float64 {
	dx, dy := b[0]-a[0], b[1]-a[1]
	return dx*dx + dy*dy
}

// longestFirst rotates t so that its longest edge runs from t[0] to t[1].
func longestFirst(vs []paths.Vec2, t [3]int) [3]int {
	for k := 0; k < 2; k++ {
		e := dist2(vs[t[0]], vs[t[1]])
		if e >= dist2(vs[t[1]], vs[t[2]]) && e >= dist2(vs[t[2]], vs[t[0]]) {
			break
		}
		t = [3]int{t[1], t[2], t[0]}
	}
	return t
}

// splitSlivers removes zero-area triangles, which libtess2 emits where
// points of different contours line up. A sliver's third point lies on
// its longest edge, so the sliver and the triangle across that edge are
// replaced by two triangles meeting at that point. Every edge the pair
// had on its outside is kept.
func splitSlivers(vs []paths.Vec2, tris [][3]int) [][3]int {
	for pass := 0; pass < len(tris); pass++ {
		changed := false
		for i := range tris {
			t := tris[i]
			if cross(vs[t[0]], vs[t[1]], vs[t[2]]) != 0 {
				continue
			}
			t = longestFirst(vs, t)
			p, q, m := t[0], t[1], t[2]
			j, d := -1, -1
			for k, u := range tris {
				for e := 0; e < 3; e++ {
					if u[e] == q && u[(e+1)%3] == p {
						j, d = k, u[(e+2)%3]
					}
				}
			}
			if j < 0 {
				continue
			}
			tris[i] = [3]int{q, m, d}
			tris[j] = [3]int{m, p, d}
			changed = true
		}
		if !changed {
			break
		}
	}
	return tris
}
