package tessellate

import (
	"math"
	"testing"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
)

func meshBounds(t *testing.T, triangles []geometry.Triangle) geometry.BoundingBox {
	t.Helper()
	if len(triangles) == 0 {
		t.Fatal("expected triangles")
	}
	bbox := geometry.NewBoundingBox()
	for _, tri := range triangles {
		for _, v := range tri.Vertices() {
			bbox.Extend(v)
		}
	}
	return bbox
}

func near(a, b geometry.Vector3, tol float64) bool {
	d := a.Sub(b)
	return math.Abs(d.X) <= tol && math.Abs(d.Y) <= tol && math.Abs(d.Z) <= tol
}

func TestBoxMesh(t *testing.T) {
	e := scene.Entity{ID: "box-1", Shape: scene.Box{
		Position: geometry.NewVector3(10, 0, 0),
		Size:     geometry.NewVector3(2, 3, 4),
	}}
	triangles, err := Entity(scene.Snapshot{}, e, 24)
	if err != nil {
		t.Fatalf("Entity failed: %v", err)
	}

	bbox := meshBounds(t, triangles)
	tol := 4.0 / 24 * 1.5
	if !near(bbox.Min, geometry.NewVector3(9, -1.5, -2), tol) || !near(bbox.Max, geometry.NewVector3(11, 1.5, 2), tol) {
		t.Errorf("Box bounds failed: got %v..%v", bbox.Min, bbox.Max)
	}
}

func TestCylinderStandsOnBase(t *testing.T) {
	e := scene.Entity{ID: "cylinder-1", Shape: scene.Cylinder{
		Position: geometry.NewVector3(0, 1, 0),
		Radius:   0.5,
		Height:   2,
	}}
	triangles, err := Entity(scene.Snapshot{}, e, 32)
	if err != nil {
		t.Fatalf("Entity failed: %v", err)
	}

	bbox := meshBounds(t, triangles)
	tol := 2.0 / 32 * 1.5
	if !near(bbox.Min, geometry.NewVector3(-0.5, 1, -0.5), tol) || !near(bbox.Max, geometry.NewVector3(0.5, 3, 0.5), tol) {
		t.Errorf("Cylinder bounds failed: got %v..%v", bbox.Min, bbox.Max)
	}
}

func TestSphereMeshArea(t *testing.T) {
	e := scene.Entity{ID: "sphere-1", Shape: scene.Sphere{Radius: 1}}
	triangles, err := Entity(scene.Snapshot{}, e, 40)
	if err != nil {
		t.Fatalf("Entity failed: %v", err)
	}

	area := 0.0
	for _, tri := range triangles {
		area += tri.Area()
	}
	expected := 4 * math.Pi
	if math.Abs(area-expected)/expected > 0.1 {
		t.Errorf("Sphere area failed: expected ~%v, got %v", expected, area)
	}
}

func TestInvalidSolid(t *testing.T) {
	e := scene.Entity{ID: "sphere-1", Shape: scene.Sphere{Radius: 0}}
	if _, err := Entity(scene.Snapshot{}, e, 8); err == nil {
		t.Error("expected error for zero radius")
	}
}

func TestSceneSkipsPointsAndLines(t *testing.T) {
	store := scene.NewStore(scene.WithIDGenerator(&scene.SequenceGenerator{}))
	var ids []scene.ID
	for _, p := range []geometry.Vector3{{X: 0}, {X: 1}, {Y: 1}} {
		id, err := store.Add(scene.Point{Position: p})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		ids = append(ids, id)
	}
	if _, err := store.Add(scene.Line{StartPointID: ids[0], EndPointID: ids[1]}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := store.Add(scene.Plane{PointIDs: [3]scene.ID{ids[0], ids[1], ids[2]}}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	parts, err := Scene(store.Snapshot(), 8)
	if err != nil {
		t.Fatalf("Scene failed: %v", err)
	}
	if len(parts) != 1 || parts[0].Entity.Kind() != scene.KindPlane {
		t.Fatalf("Scene failed: expected one plane part, got %d parts", len(parts))
	}

	model := Model("scene", parts)
	if model.TriangleCount() != 1 || math.Abs(model.SurfaceArea()-0.5) > 1e-10 {
		t.Errorf("Model failed: %d triangles, area %v", model.TriangleCount(), model.SurfaceArea())
	}
}

func TestSceneSkipsSolidsWithoutVolume(t *testing.T) {
	snap := scene.NewSnapshot([]scene.Entity{
		{ID: "sphere-1", Shape: scene.Sphere{Radius: 1}},
		{ID: "box-1", Shape: scene.Box{Size: geometry.NewVector3(-1, 2, 3)}},
	})
	if err := scene.Errors(scene.Validate(snap)); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	parts, err := Scene(snap, 16)
	if err != nil {
		t.Fatalf("Scene failed: %v", err)
	}
	if len(parts) != 1 || parts[0].Entity.ID != "sphere-1" {
		t.Fatalf("Scene failed: expected only the sphere, got %d parts", len(parts))
	}
	if len(parts[0].Triangles) == 0 {
		t.Error("Scene failed: sphere has no triangles")
	}
}
