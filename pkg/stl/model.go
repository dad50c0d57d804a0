package stl

import (
	"github.com/philipparndt/trix3d/pkg/geometry"
)

// Model is a named triangle soup, the unit read from and written to STL files
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a model holding the given triangles
func NewModel(name string, triangles ...geometry.Triangle) *Model {
	return &Model{Name: name, Triangles: triangles}
}

// AddTriangle appends triangles
func (m *Model) AddTriangle(triangles ...geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangles...)
}

func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox returns the extent of all vertices. An empty model has an
// empty box.
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, t := range m.Triangles {
		for _, v := range [3]geometry.Vector3{t.V1, t.V2, t.V3} {
			bbox.Extend(v)
		}
	}
	return bbox
}

func (m *Model) SurfaceArea() (area float64) {
	for _, t := range m.Triangles {
		area += t.Area()
	}
	return area
}

// DegenerateCount counts facets whose area is at most eps. Marching cubes
// output and hand-written STL files both tend to contain a few.
func (m *Model) DegenerateCount(eps float64) (n int) {
	for _, t := range m.Triangles {
		if t.IsDegenerate(eps) {
			n++
		}
	}
	return n
}
