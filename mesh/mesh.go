// Package mesh holds triangle meshes and the scenes built from them.
package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// A Mesh is a triangle mesh. If Indices is nil, every three consecutive
// positions form a triangle; otherwise every three consecutive indices
// do. Normals, if present, are per vertex and parallel to Positions.
type Mesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	Indices   []int
}

// Bounds3 is an axis-aligned bounding box.
type Bounds3 struct {
	Min, Max mgl64.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds3) Size() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the middle of the box.
func (b Bounds3) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Finite reports whether the box has finite coordinates.
func (b Bounds3) Finite() bool {
	for i := 0; i < 3; i++ {
		for _, f := range []float64{b.Min[i], b.Max[i]} {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	}
	return true
}

// A Sphere is a center and radius.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	if m.Indices != nil {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 3
}

// Triangle returns the vertex indices of the i'th triangle.
func (m *Mesh) Triangle(i int) [3]int {
	if m.Indices != nil {
		return [3]int{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
	}
	return [3]int{3 * i, 3*i + 1, 3*i + 2}
}

// Bounds returns the bounding box of the mesh's positions. A mesh with
// no positions has an empty box at the origin.
func (m *Mesh) Bounds() Bounds3 {
	if len(m.Positions) == 0 {
		return Bounds3{}
	}
	inf := math.Inf(1)
	b := Bounds3{Min: mgl64.Vec3{inf, inf, inf}, Max: mgl64.Vec3{-inf, -inf, -inf}}
	for _, p := range m.Positions {
		for i := 0; i < 3; i++ {
			b.Min[i] = math.Min(b.Min[i], p[i])
			b.Max[i] = math.Max(b.Max[i], p[i])
		}
	}
	return b
}

// BoundingSphere returns a sphere around the center of the bounding box
// that contains every position.
func (m *Mesh) BoundingSphere() Sphere {
	c := m.Bounds().Center()
	r := 0.0
	for _, p := range m.Positions {
		r = math.Max(r, p.Sub(c).Len())
	}
	return Sphere{Center: c, Radius: r}
}

// NormalMatrix returns the matrix that transforms normals for the
// affine transform t: the inverse transpose of its upper 3x3.
func NormalMatrix(t mgl64.Mat4) mgl64.Mat3 {
	return t.Mat3().Inv().Transpose()
}

// TransformNormal maps n through the normal matrix nm and renormalizes
// it. Zero normals stay zero.
func TransformNormal(nm mgl64.Mat3, n mgl64.Vec3) mgl64.Vec3 {
	r := nm.Mul3x1(n)
	if l := r.Len(); l > 0 {
		return r.Mul(1 / l)
	}
	return mgl64.Vec3{}
}

// Apply transforms the mesh in place and returns its new bounds.
// Positions go through t and normals through its normal matrix. A
// transform that mirrors (negative determinant) would turn the mesh
// inside out, so triangle winding is reversed to keep faces pointing
// outwards.
func (m *Mesh) Apply(t mgl64.Mat4) Bounds3 {
	for i, p := range m.Positions {
		m.Positions[i] = mgl64.TransformCoordinate(p, t)
	}
	if m.Normals != nil {
		nm := NormalMatrix(t)
		for i, n := range m.Normals {
			m.Normals[i] = TransformNormal(nm, n)
		}
	}
	if t.Mat3().Det() < 0 {
		m.flipWinding()
	}
	return m.Bounds()
}

func (m *Mesh) flipWinding() {
	if m.Indices != nil {
		for i := 0; i+2 < len(m.Indices); i += 3 {
			m.Indices[i+1], m.Indices[i+2] = m.Indices[i+2], m.Indices[i+1]
		}
		return
	}
	for i := 0; i+2 < len(m.Positions); i += 3 {
		m.Positions[i+1], m.Positions[i+2] = m.Positions[i+2], m.Positions[i+1]
		if m.Normals != nil {
			m.Normals[i+1], m.Normals[i+2] = m.Normals[i+2], m.Normals[i+1]
		}
	}
}

// FaceNormal returns the unit normal of the triangle a, b, c, following
// the right-hand rule. Degenerate triangles have a zero normal.
func FaceNormal(a, b, c mgl64.Vec3) mgl64.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > 0 {
		return n.Mul(1 / l)
	}
	return mgl64.Vec3{}
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{Positions: append([]mgl64.Vec3(nil), m.Positions...)}
	if m.Normals != nil {
		c.Normals = append([]mgl64.Vec3(nil), m.Normals...)
	}
	if m.Indices != nil {
		c.Indices = append([]int(nil), m.Indices...)
	}
	return c
}
