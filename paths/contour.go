package paths

import "math"

// Number of line segments used to flatten each curve. Arcs get twice
// as many.
const (
	CurveSegments = 12
	ArcSegments   = 2 * CurveSegments
)

// A Contour is one flattened subpath. Points are not repeated: a
// subpath that returns to its first point has the duplicate dropped
// and is marked Closed.
type Contour struct {
	Path
	Closed bool

	// WindingCW selects the fill convention used to tell solid contours
	// from holes. It is copied from configuration, not derived from the
	// geometry.
	WindingCW bool
}

type contourBuilder struct {
	windingCW bool
	out       []Contour
	cur       *Contour
}

func (cb *contourBuilder) add(v Vec2) {
	p := &cb.cur.V
	if n := len(*p); n > 0 && (*p)[n-1] == v {
		return
	}
	*p = append(*p, v)
}

func (cb *contourBuilder) flush() {
	c := cb.cur
	cb.cur = nil
	if c == nil || len(c.V) == 0 {
		return
	}
	if n := len(c.V); n > 1 && c.V[0] == c.V[n-1] {
		c.V = c.V[:n-1]
		c.Closed = true
	}
	cb.out = append(cb.out, *c)
}

// BuildContours flattens drawing commands into contours, one for each
// subpath.
func BuildContours(cmds []Command, windingCW bool) []Contour {
	cb := &contourBuilder{windingCW: windingCW}
	var pos Vec2
	for _, c := range cmds {
		if c.Kind == MoveTo {
			cb.flush()
			cb.cur = &Contour{WindingCW: cb.windingCW}
		} else if cb.cur == nil {
			cb.cur = &Contour{WindingCW: cb.windingCW}
			cb.add(pos)
		}
		switch c.Kind {
		case MoveTo:
			cb.add(c.P[0])
		case LineTo:
			cb.add(c.P[0])
		case QuadTo:
			for i := 1; i < CurveSegments; i++ {
				cb.add(quadPoint(pos, c.P[0], c.P[1], float64(i)/CurveSegments))
			}
			cb.add(c.P[1])
		case CubicTo:
			for i := 1; i < CurveSegments; i++ {
				cb.add(cubicPoint(pos, c.P[0], c.P[1], c.P[2], float64(i)/CurveSegments))
			}
			cb.add(c.P[2])
		case ArcTo:
			for i := 1; i < ArcSegments; i++ {
				a := c.Start + c.Sweep*float64(i)/ArcSegments
				cb.add(Vec2{c.Center[0] + c.Radius*math.Cos(a), c.Center[1] + c.Radius*math.Sin(a)})
			}
			cb.add(c.P[0])
		case Close:
			cb.cur.Closed = true
		}
		pos = c.End()
	}
	cb.flush()
	return cb.out
}

func quadPoint(p0, p1, p2 Vec2, t float64) Vec2 {
	s := 1 - t
	return Vec2{
		s*s*p0[0] + 2*s*t*p1[0] + t*t*p2[0],
		s*s*p0[1] + 2*s*t*p1[1] + t*t*p2[1],
	}
}

func cubicPoint(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	s := 1 - t
	a, b, c, d := s*s*s, 3*s*s*t, 3*s*t*t, t*t*t
	return Vec2{
		a*p0[0] + b*p1[0] + c*p2[0] + d*p3[0],
		a*p0[1] + b*p1[1] + c*p2[1] + d*p3[1],
	}
}
