package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box returns an indexed box centered on the origin, with sides of the
// given sizes along x, y and z. Each face has its own four vertices so
// that normals are flat.
func Box(width, height, depth float64) *Mesh {
	m := &Mesh{}
	m.boxFace(2, 1, 0, -1, -1, depth, height, width)
	m.boxFace(2, 1, 0, 1, -1, depth, height, -width)
	m.boxFace(0, 2, 1, 1, 1, width, depth, height)
	m.boxFace(0, 2, 1, 1, -1, width, depth, -height)
	m.boxFace(0, 1, 2, 1, -1, width, height, depth)
	m.boxFace(0, 1, 2, -1, -1, width, height, -depth)
	return m
}

// boxFace adds one face of a box, spanning axes u and v, lying at
// depth/2 along axis w and facing the sign of depth.
func (m *Mesh) boxFace(u, v, w int, udir, vdir, width, height, depth float64) {
	start := len(m.Positions)
	var normal mgl64.Vec3
	if depth > 0 {
		normal[w] = 1
	} else {
		normal[w] = -1
	}
	for iy := 0; iy < 2; iy++ {
		for ix := 0; ix < 2; ix++ {
			var p mgl64.Vec3
			p[u] = (float64(ix)*width - width/2) * udir
			p[v] = (float64(iy)*height - height/2) * vdir
			p[w] = depth / 2
			m.Positions = append(m.Positions, p)
			m.Normals = append(m.Normals, normal)
		}
	}
	a, b, c, d := start, start+2, start+3, start+1
	m.Indices = append(m.Indices, a, b, d, b, c, d)
}

// Cylinder returns an indexed closed cylinder centered on the origin
// with its axis along y. The side is divided into the given number of
// segments and both ends are capped.
func Cylinder(radius, height float64, segments int) *Mesh {
	m := &Mesh{}
	half := height / 2

	circle := unitCircle(segments)

	// Side: two rings of segments+1 vertices, the seam duplicated.
	ring := segments + 1
	for _, y := range []float64{half, -half} {
		for _, sc := range circle {
			m.Positions = append(m.Positions, mgl64.Vec3{radius * sc[0], y, radius * sc[1]})
			m.Normals = append(m.Normals, mgl64.Vec3{sc[0], 0, sc[1]})
		}
	}
	for x := 0; x < segments; x++ {
		a, b, c, d := x, ring+x, ring+x+1, x+1
		m.Indices = append(m.Indices, a, b, d, b, c, d)
	}

	m.cylinderCap(radius, half, circle, true)
	m.cylinderCap(radius, half, circle, false)
	return m
}

// unitCircle returns the sine and cosine of segments+1 angles evenly
// spaced around the circle. The last repeats the first exactly.
func unitCircle(segments int) [][2]float64 {
	sc := make([][2]float64, segments+1)
	for x := 0; x < segments; x++ {
		sin, cos := math.Sincos(float64(x) / float64(segments) * 2 * math.Pi)
		sc[x] = [2]float64{sin, cos}
	}
	sc[segments] = sc[0]
	return sc
}

func (m *Mesh) cylinderCap(radius, half float64, circle [][2]float64, top bool) {
	segments := len(circle) - 1
	sign := -1.0
	if top {
		sign = 1
	}
	normal := mgl64.Vec3{0, sign, 0}
	centers := len(m.Positions)
	for x := 0; x < segments; x++ {
		m.Positions = append(m.Positions, mgl64.Vec3{0, half * sign, 0})
		m.Normals = append(m.Normals, normal)
	}
	rim := len(m.Positions)
	for _, sc := range circle {
		m.Positions = append(m.Positions, mgl64.Vec3{radius * sc[0], half * sign, radius * sc[1]})
		m.Normals = append(m.Normals, normal)
	}
	for x := 0; x < segments; x++ {
		c, i := centers+x, rim+x
		if top {
			m.Indices = append(m.Indices, i, i+1, c)
		} else {
			m.Indices = append(m.Indices, i+1, i, c)
		}
	}
}
