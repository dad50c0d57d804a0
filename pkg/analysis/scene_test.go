package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
	"github.com/philipparndt/trix3d/pkg/stl"
)

func buildScene(t *testing.T) scene.Snapshot {
	t.Helper()
	store := scene.NewStore(scene.WithIDGenerator(&scene.SequenceGenerator{}))
	add := func(shape scene.Shape) scene.ID {
		id, err := store.Add(shape)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		return id
	}

	o := add(scene.Point{Position: geometry.NewVector3(0, 0, 0)})
	x := add(scene.Point{Position: geometry.NewVector3(3, 0, 0)})
	y := add(scene.Point{Position: geometry.NewVector3(0, 4, 0)})
	add(scene.Line{StartPointID: o, EndPointID: x})
	add(scene.Line{StartPointID: o, EndPointID: y})
	add(scene.Line{StartPointID: x, EndPointID: y})
	add(scene.Plane{PointIDs: [3]scene.ID{o, x, y}})
	add(scene.Box{Position: geometry.NewVector3(10, 0, 0), Size: geometry.NewVector3(2, 3, 4)})
	return store.Snapshot()
}

func TestAnalyzeScene(t *testing.T) {
	result := AnalyzeScene(buildScene(t))

	if result.Total != 8 {
		t.Errorf("Total failed: expected 8, got %d", result.Total)
	}
	if result.Counts[scene.KindLine] != 3 {
		t.Errorf("Line count failed: expected 3, got %d", result.Counts[scene.KindLine])
	}
	if math.Abs(result.MinLineLength-3.0) > 1e-10 {
		t.Errorf("MinLineLength failed: expected 3, got %v", result.MinLineLength)
	}
	if math.Abs(result.MaxLineLength-5.0) > 1e-10 {
		t.Errorf("MaxLineLength failed: expected 5, got %v", result.MaxLineLength)
	}
	if math.Abs(result.AvgLineLength-4.0) > 1e-10 {
		t.Errorf("AvgLineLength failed: expected 4, got %v", result.AvgLineLength)
	}
	if math.Abs(result.PlaneArea-6.0) > 1e-10 {
		t.Errorf("PlaneArea failed: expected 6, got %v", result.PlaneArea)
	}
	if math.Abs(result.SolidVolume-24.0) > 1e-10 {
		t.Errorf("SolidVolume failed: expected 24, got %v", result.SolidVolume)
	}
}

func TestFindLines(t *testing.T) {
	result := AnalyzeScene(buildScene(t))

	longest := FindLongestLines(result, 1)
	if len(longest) != 1 || math.Abs(longest[0].Length-5.0) > 1e-10 {
		t.Errorf("FindLongestLines failed: got %v", longest)
	}
	shortest := FindShortestLines(result, 10)
	if len(shortest) != 3 || math.Abs(shortest[0].Length-3.0) > 1e-10 {
		t.Errorf("FindShortestLines failed: got %v", shortest)
	}
	between := FindLinesByLength(result, 3.5, 4.5)
	if len(between) != 1 || between[0].Name != "Line 2" {
		t.Errorf("FindLinesByLength failed: got %v", between)
	}
}

func TestFindPlanes(t *testing.T) {
	result := AnalyzeScene(buildScene(t))
	if planes := FindLargestPlanes(result, 5); len(planes) != 1 || planes[0].Name != "Plane 1" {
		t.Errorf("FindLargestPlanes failed: got %v", planes)
	}
	if planes := FindSmallestPlanes(result, 0); len(planes) != 0 {
		t.Errorf("FindSmallestPlanes with count 0 failed: got %v", planes)
	}
}

func TestFindNearestPoint(t *testing.T) {
	snap := buildScene(t)
	e, d, ok := FindNearestPoint(snap, geometry.NewVector3(2.9, 0.1, 0))
	if !ok {
		t.Fatal("FindNearestPoint found nothing")
	}
	if e.Name != "Point 2" {
		t.Errorf("FindNearestPoint failed: expected Point 2, got %s", e.Name)
	}
	if math.Abs(d-math.Sqrt(0.02)) > 1e-10 {
		t.Errorf("FindNearestPoint distance failed: got %v", d)
	}

	if _, _, ok := FindNearestPoint(scene.Snapshot{}, geometry.Vector3{}); ok {
		t.Error("FindNearestPoint on empty scene should find nothing")
	}
}

func TestAnalyzeMesh(t *testing.T) {
	model := stl.NewModel("tri", geometry.TriangleFromPoints(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(3, 0, 0),
		geometry.NewVector3(0, 4, 0),
	))
	model.AddTriangle(geometry.TriangleFromPoints(
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(1, 1, 1),
		geometry.NewVector3(2, 2, 2),
	))

	result := AnalyzeMesh(model)
	if result.TriangleCount != 2 || result.Degenerate != 1 {
		t.Errorf("TriangleCount failed: expected 2 with 1 degenerate, got %d/%d", result.TriangleCount, result.Degenerate)
	}
	if math.Abs(result.SurfaceArea-6.0) > 1e-10 {
		t.Errorf("SurfaceArea failed: expected 6, got %v", result.SurfaceArea)
	}
	if math.Abs(result.MinEdgeLength-math.Sqrt(3)) > 1e-10 || result.MaxEdgeLength != 5 {
		t.Errorf("Edge lengths failed: got %v..%v", result.MinEdgeLength, result.MaxEdgeLength)
	}
}

func TestFormatVector(t *testing.T) {
	if s := FormatVector(geometry.NewVector3(1, 2.5, -3)); s != "(1.000000, 2.500000, -3.000000)" {
		t.Errorf("FormatVector failed: got %s", s)
	}
	if s := FormatMeasurement(2, ""); s != "2.000000 units" {
		t.Errorf("FormatMeasurement failed: got %s", s)
	}
}
