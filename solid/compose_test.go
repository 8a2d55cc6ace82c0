package solid

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/paulhankin/svgstl/mesh"
	"github.com/paulhankin/svgstl/paths"
	"github.com/paulhankin/svgstl/tess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine extrudes every drawing to a copy of the same mesh and
// records the profiles it was asked for.
type stubEngine struct {
	m        *mesh.Mesh
	profiles []tess.Profile
}

func (s *stubEngine) ToShapes([]paths.Contour) []tess.Shape { return nil }

func (s *stubEngine) Triangulate(tess.Shape) ([]paths.Vec2, [][3]int, error) {
	return nil, nil, nil
}

func (s *stubEngine) Extrude(_ []tess.Shape, p tess.Profile) (*mesh.Mesh, error) {
	s.profiles = append(s.profiles, p)
	if s.m == nil {
		return &mesh.Mesh{}, nil
	}
	return s.m.Clone(), nil
}

// slab is a 20x10x2 box away from the origin.
func slab() *mesh.Mesh {
	m := mesh.Box(20, 10, 2)
	m.Apply(mgl64.Translate3D(120, 10, 1))
	return m
}

func defaultOptions() Options {
	return Options{
		TypeSize:   60,
		TypeDepth:  2,
		BaseDepth:  5,
		BaseBuffer: 5,
	}
}

func volume(m *mesh.Mesh) float64 {
	v := 0.0
	for i := 0; i < m.TriangleCount(); i++ {
		t := m.Triangle(i)
		a, b, c := m.Positions[t[0]], m.Positions[t[1]], m.Positions[t[2]]
		v += a.Dot(b.Cross(c)) / 6
	}
	return v
}

func TestComposeScalesAndCenters(t *testing.T) {
	for _, inverted := range []bool{false, true} {
		o := defaultOptions()
		o.Inverted = inverted
		c := &Composer{Engine: &stubEngine{m: slab()}}
		scene, err := c.Compose(nil, o)
		require.NoError(t, err)
		require.Len(t, scene.Objects, 1)
		assert.Equal(t, "emblem", scene.Objects[0].Name)

		b := scene.Objects[0].Mesh.Bounds()
		assert.InDelta(t, 60, b.Size().X(), 1e-9)
		assert.InDelta(t, 30, b.Size().Y(), 1e-9)
		assert.InDelta(t, 0, b.Center().X(), 1e-9)
		assert.InDelta(t, 0, b.Center().Y(), 1e-9)
		assert.InDelta(t, 0, b.Min.Z(), 1e-9)
		assert.InDelta(t, 2, b.Max.Z(), 1e-9)
	}
}

func TestComposeBevelProfile(t *testing.T) {
	o := defaultOptions()
	o.TypeDepth = 3
	o.Bevel = true
	o.BasePlate = true
	e := &stubEngine{m: slab()}
	_, err := (&Composer{Engine: e}).Compose(nil, o)
	require.NoError(t, err)
	require.Len(t, e.profiles, 2)
	assert.Equal(t, tess.Profile{Depth: 3}, e.profiles[0])
	assert.Equal(t, tess.Profile{
		BevelEnabled:   true,
		BevelThickness: 3,
		BevelSize:      1,
		BevelSegments:  1,
	}, e.profiles[1])
}

func TestComposeBevelNeedsBaseAndPositiveDepth(t *testing.T) {
	cases := []struct {
		desc      string
		depth     float64
		basePlate bool
	}{
		{"no base plate", 3, false},
		{"negative depth", -3, true},
	}
	for _, tc := range cases {
		o := defaultOptions()
		o.TypeDepth = tc.depth
		o.Bevel = true
		o.BasePlate = tc.basePlate
		e := &stubEngine{m: slab()}
		_, err := (&Composer{Engine: e}).Compose(nil, o)
		require.NoError(t, err, tc.desc)
		require.Len(t, e.profiles, 1, tc.desc)
		assert.Equal(t, tess.Profile{Depth: 3}, e.profiles[0], tc.desc)
	}
}

func TestComposeRectangularBase(t *testing.T) {
	o := defaultOptions()
	o.BasePlate = true
	scene, err := (&Composer{Engine: &stubEngine{m: slab()}}).Compose(nil, o)
	require.NoError(t, err)
	require.Len(t, scene.Objects, 2)
	assert.Equal(t, "base", scene.Objects[0].Name)
	assert.Equal(t, "emblem", scene.Objects[1].Name)

	base := scene.Objects[0].Mesh.Bounds()
	assert.InDelta(t, -32.5, base.Min.X(), 1e-9)
	assert.InDelta(t, 32.5, base.Max.X(), 1e-9)
	assert.InDelta(t, -32.5, base.Min.Y(), 1e-9)
	assert.InDelta(t, 32.5, base.Max.Y(), 1e-9)
	assert.InDelta(t, 0, base.Min.Z(), 1e-9)
	assert.InDelta(t, 5, base.Max.Z(), 1e-9)

	emblem := scene.Objects[1].Mesh.Bounds()
	assert.InDelta(t, 5, emblem.Min.Z(), 1e-9)
	assert.InDelta(t, 7, emblem.Max.Z(), 1e-9)
}

func TestComposeCircularBase(t *testing.T) {
	o := defaultOptions()
	o.BasePlate = true
	o.CircularBase = true
	scene, err := (&Composer{Engine: &stubEngine{m: slab()}}).Compose(nil, o)
	require.NoError(t, err)
	require.Len(t, scene.Objects, 2)

	r := math.Sqrt(30*30+15*15+1*1) + 5
	base := scene.Objects[0].Mesh.Bounds()
	assert.InDelta(t, r, base.Max.X(), 1e-9)
	assert.InDelta(t, r, base.Max.Y(), 1e-9)
	assert.InDelta(t, 0, base.Min.Z(), 1e-9)
	assert.InDelta(t, 5, base.Max.Z(), 1e-9)
	assert.Equal(t, 4*CylinderSegments, scene.Objects[0].Mesh.TriangleCount())
}

func TestComposeDegenerate(t *testing.T) {
	flat := &mesh.Mesh{Positions: []mgl64.Vec3{{1, 1, 0}, {1, 1, 1}, {1, 1, 2}}}
	for _, m := range []*mesh.Mesh{nil, flat} {
		_, err := (&Composer{Engine: &stubEngine{m: m}}).Compose(nil, defaultOptions())
		var dge *DegenerateGeometryError
		require.ErrorAs(t, err, &dge)
		assert.Equal(t, "extrude", dge.Step)
	}
}

func TestComposeKeepsSolidsOutwardFacing(t *testing.T) {
	square := paths.Path{V: []paths.Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	for _, inverted := range []bool{false, true} {
		o := defaultOptions()
		o.TypeDepth = 3
		o.Inverted = inverted
		o.BasePlate = true
		scene, err := NewComposer(nil).Compose([]tess.Shape{{Outer: square}}, o)
		require.NoError(t, err)
		require.Len(t, scene.Objects, 2)
		assert.InDelta(t, 65*65*5, volume(scene.Objects[0].Mesh), 1e-6)
		assert.InDelta(t, 60*60*3, volume(scene.Objects[1].Mesh), 1e-6)
	}
}
