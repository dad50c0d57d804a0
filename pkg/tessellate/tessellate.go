// Package tessellate converts scene entities into triangle meshes. Solids are
// meshed with marching cubes over their signed distance functions; planes
// become a single triangle. Points and lines have no surface.
package tessellate

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
	"github.com/philipparndt/trix3d/pkg/stl"
)

// DefaultCells is the marching cubes resolution along a solid's longest axis.
const DefaultCells = 64

// Part is the mesh of one entity.
type Part struct {
	Entity    scene.Entity
	Triangles []geometry.Triangle
}

// Solid returns the signed distance function of a sphere, cylinder or box,
// placed in scene coordinates. Cylinders stand on their base along +Y.
func Solid(e scene.Entity) (sdf.SDF3, error) {
	switch s := e.Shape.(type) {
	case scene.Sphere:
		solid, err := sdf.Sphere3D(s.Radius)
		if err != nil {
			return nil, fmt.Errorf("sphere %s: %w", e.ID, err)
		}
		return sdf.Transform3D(solid, sdf.Translate3d(vec(s.Position))), nil
	case scene.Cylinder:
		solid, err := sdf.Cylinder3D(s.Height, s.Radius, 0)
		if err != nil {
			return nil, fmt.Errorf("cylinder %s: %w", e.ID, err)
		}
		// sdfx cylinders are centered on Z.
		center := s.Position.Add(geometry.NewVector3(0, s.Height/2, 0))
		m := sdf.Translate3d(vec(center)).Mul(sdf.RotateX(-math.Pi / 2))
		return sdf.Transform3D(solid, m), nil
	case scene.Box:
		solid, err := sdf.Box3D(vec(s.Size), 0)
		if err != nil {
			return nil, fmt.Errorf("box %s: %w", e.ID, err)
		}
		return sdf.Transform3D(solid, sdf.Translate3d(vec(s.Position))), nil
	default:
		return nil, fmt.Errorf("%s %s is not a solid", e.Kind(), e.ID)
	}
}

// Entity meshes one entity. Points and lines yield no triangles.
func Entity(snap scene.Snapshot, e scene.Entity, cells int) ([]geometry.Triangle, error) {
	switch e.Kind() {
	case scene.KindPoint, scene.KindLine:
		return nil, nil
	case scene.KindPlane:
		tri, err := snap.PlaneTriangle(e.ID)
		if err != nil {
			return nil, err
		}
		return []geometry.Triangle{tri}, nil
	}

	solid, err := Solid(e)
	if err != nil {
		return nil, err
	}
	if cells <= 0 {
		cells = DefaultCells
	}

	triangles := render.ToTriangles(solid, render.NewMarchingCubesUniform(cells))
	result := make([]geometry.Triangle, 0, len(triangles))
	for _, tri := range triangles {
		n := tri.Normal()
		result = append(result, geometry.NewTriangle(
			geometry.NewVector3(n.X, n.Y, n.Z),
			point(tri[0]), point(tri[1]), point(tri[2]),
		))
	}
	return result, nil
}

// Scene meshes every entity that has a surface, in scene order. Solids with
// non-positive dimensions have no volume to mesh; they are logged and left out.
func Scene(snap scene.Snapshot, cells int) ([]Part, error) {
	var parts []Part
	for e := range snap.All() {
		triangles, err := Entity(snap, e, cells)
		if err != nil {
			if e.Kind().IsSolid() {
				slog.Warn("tessellate: skipping solid", "entity", e.ID, "error", err)
				continue
			}
			return nil, err
		}
		if len(triangles) > 0 {
			parts = append(parts, Part{Entity: e, Triangles: triangles})
		}
	}
	return parts, nil
}

// Model joins parts into a single STL model.
func Model(name string, parts []Part) *stl.Model {
	model := stl.NewModel(name)
	for _, p := range parts {
		model.AddTriangle(p.Triangles...)
	}
	return model
}

func vec(v geometry.Vector3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func point(v v3.Vec) geometry.Vector3 {
	return geometry.NewVector3(v.X, v.Y, v.Z)
}
