package mesh

import "github.com/go-gl/mathgl/mgl64"

// An Object places a mesh in a scene.
type Object struct {
	Name  string
	Mesh  *Mesh
	World mgl64.Mat4
}

// A Scene is an ordered list of objects.
type Scene struct {
	Objects []*Object
}

// Add appends a mesh to the scene at the given world transform and
// returns its object.
func (s *Scene) Add(name string, m *Mesh, world mgl64.Mat4) *Object {
	o := &Object{Name: name, Mesh: m, World: world}
	s.Objects = append(s.Objects, o)
	return o
}

// TriangleCount returns the number of triangles in all objects.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, o := range s.Objects {
		n += o.Mesh.TriangleCount()
	}
	return n
}

// Facet is a triangle in world space.
type Facet struct {
	Normal mgl64.Vec3
	V      [3]mgl64.Vec3
}

// Facets calls fn with every triangle of the scene in world space, in
// object order. The facet normal is the first vertex's normal mapped
// through the world transform, or zero if the mesh has no normals. It
// stops at the first error fn returns.
func (s *Scene) Facets(fn func(Facet) error) error {
	for _, o := range s.Objects {
		m := o.Mesh
		nm := NormalMatrix(o.World)
		for i := 0; i < m.TriangleCount(); i++ {
			tri := m.Triangle(i)
			var f Facet
			for j, k := range tri {
				f.V[j] = mgl64.TransformCoordinate(m.Positions[k], o.World)
			}
			if m.Normals != nil {
				f.Normal = TransformNormal(nm, m.Normals[tri[0]])
			}
			if err := fn(f); err != nil {
				return err
			}
		}
	}
	return nil
}
