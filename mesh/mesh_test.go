package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle() *Mesh {
	return &Mesh{
		Positions: []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   []mgl64.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
	}
}

func faceNormalOf(m *Mesh, i int) mgl64.Vec3 {
	t := m.Triangle(i)
	return FaceNormal(m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]])
}

func TestApplyTranslateScale(t *testing.T) {
	m := triangle()
	b := m.Apply(mgl64.Translate3D(1, 2, 3).Mul4(mgl64.Scale3D(2, 2, 2)))
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, b.Min)
	assert.Equal(t, mgl64.Vec3{3, 4, 3}, b.Max)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, m.Normals[0])
}

func TestApplyMirrorKeepsWinding(t *testing.T) {
	m := triangle()
	require.InDelta(t, 1.0, faceNormalOf(m, 0).Z(), 1e-12)

	m.Apply(mgl64.Scale3D(-1, 1, 1))

	// Mirroring in x leaves the z normal alone, and the triangle must
	// still face it.
	assert.InDelta(t, 1.0, m.Normals[0].Z(), 1e-12)
	assert.InDelta(t, 1.0, faceNormalOf(m, 0).Z(), 1e-12)
}

func TestApplyMirrorIndexed(t *testing.T) {
	m := Box(1, 2, 3)
	m.Apply(mgl64.Scale3D(-1, 1, 1))
	for i := 0; i < m.TriangleCount(); i++ {
		fn := faceNormalOf(m, i)
		vn := m.Normals[m.Triangle(i)[0]]
		assert.InDelta(t, 1.0, fn.Dot(vn), 1e-9, "triangle %d", i)
	}
}

func TestApplyNonUniformScaleNormals(t *testing.T) {
	// A 45 degree slope stretched in x has a steeper normal.
	n := mgl64.Vec3{1, 1, 0}.Normalize()
	m := &Mesh{
		Positions: []mgl64.Vec3{{0, 0, 0}, {1, -1, 0}, {0, 0, 1}},
		Normals:   []mgl64.Vec3{n, n, n},
	}
	m.Apply(mgl64.Scale3D(2, 1, 1))
	want := FaceNormal(m.Positions[0], m.Positions[1], m.Positions[2])
	assert.InDelta(t, 1.0, math.Abs(m.Normals[0].Dot(want)), 1e-12)
	assert.InDelta(t, 1.0, m.Normals[0].Len(), 1e-12)
}

func TestBoundingSphere(t *testing.T) {
	m := Box(2, 2, 2)
	s := m.BoundingSphere()
	assert.InDelta(t, 0, s.Center.Len(), 1e-12)
	assert.InDelta(t, math.Sqrt(3), s.Radius, 1e-12)
}

func TestBox(t *testing.T) {
	m := Box(2, 4, 6)
	require.Equal(t, 12, m.TriangleCount())
	assert.Len(t, m.Positions, 24)
	b := m.Bounds()
	assert.Equal(t, mgl64.Vec3{-1, -2, -3}, b.Min)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, b.Max)

	// Every face points away from the center.
	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		fn := faceNormalOf(m, i)
		c := m.Positions[tri[0]].Add(m.Positions[tri[1]]).Add(m.Positions[tri[2]]).Mul(1.0 / 3)
		assert.Greater(t, fn.Dot(c), 0.0, "triangle %d", i)
		assert.InDelta(t, 1.0, fn.Dot(m.Normals[tri[0]]), 1e-12, "triangle %d", i)
	}
}

func TestCylinder(t *testing.T) {
	const segs = 64
	m := Cylinder(3, 2, segs)
	assert.Equal(t, 4*segs, m.TriangleCount())
	b := m.Bounds()
	assert.InDelta(t, -1, b.Min.Y(), 1e-12)
	assert.InDelta(t, 1, b.Max.Y(), 1e-12)
	assert.InDelta(t, 3, b.Max.X(), 1e-12)
	assert.InDelta(t, 3, b.Max.Z(), 1e-12)

	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		fn := faceNormalOf(m, i)
		c := m.Positions[tri[0]].Add(m.Positions[tri[1]]).Add(m.Positions[tri[2]]).Mul(1.0 / 3)
		assert.Greater(t, fn.Dot(c), 0.0, "triangle %d", i)
	}
}

func TestSceneFacets(t *testing.T) {
	s := &Scene{}
	s.Add("a", triangle(), mgl64.Translate3D(0, 0, 5))
	s.Add("b", &Mesh{Positions: triangle().Positions}, mgl64.Ident4())
	require.Equal(t, 2, s.TriangleCount())

	var fs []Facet
	require.NoError(t, s.Facets(func(f Facet) error {
		fs = append(fs, f)
		return nil
	}))
	require.Len(t, fs, 2)
	assert.Equal(t, mgl64.Vec3{1, 0, 5}, fs[0].V[1])
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, fs[0].Normal)
	assert.Equal(t, mgl64.Vec3{}, fs[1].Normal)
}

// openEdges returns the directed edges of m, by position, that aren't
// matched by exactly one edge running the other way.
func openEdges(m *Mesh) [][2]mgl64.Vec3 {
	count := map[[2]mgl64.Vec3]int{}
	for i := 0; i < m.TriangleCount(); i++ {
		t := m.Triangle(i)
		for k := 0; k < 3; k++ {
			count[[2]mgl64.Vec3{m.Positions[t[k]], m.Positions[t[(k+1)%3]]}]++
		}
	}
	var open [][2]mgl64.Vec3
	for e, n := range count {
		if n != 1 || count[[2]mgl64.Vec3{e[1], e[0]}] != 1 {
			open = append(open, e)
		}
	}
	return open
}

func TestPrimitivesAreClosed(t *testing.T) {
	for _, segs := range []int{3, 7, 64} {
		assert.Empty(t, openEdges(Cylinder(2.5, 1, segs)), "cylinder with %d segments", segs)
	}
	assert.Empty(t, openEdges(Box(1, 2, 3)))
	assert.Empty(t, openEdges(Box(65, 65, 5)))
}

func TestCylinderSeamIsWelded(t *testing.T) {
	const segs = 64
	m := Cylinder(3, 2, segs)
	ring := segs + 1
	// Side rings, then each cap's centers followed by its rim.
	for _, start := range []int{0, ring, 2*ring + segs, 3*ring + 2*segs} {
		assert.Equal(t, m.Positions[start], m.Positions[start+segs], "ring at %d", start)
	}
}
