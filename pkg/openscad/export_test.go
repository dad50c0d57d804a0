package openscad

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
)

func testScene(t *testing.T) scene.Snapshot {
	t.Helper()
	store := scene.NewStore(
		scene.WithIDGenerator(&scene.SequenceGenerator{}),
		scene.WithColorGenerator(&scene.PaletteColors{Palette: []string{"#ff0000"}}),
	)
	add := func(shape scene.Shape) scene.ID {
		id, err := store.Add(shape)
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		return id
	}

	a := add(scene.Point{Position: geometry.NewVector3(0, 0, 0)})
	b := add(scene.Point{Position: geometry.NewVector3(1, 0, 0)})
	c := add(scene.Point{Position: geometry.NewVector3(0, 0, 1)})
	add(scene.Line{StartPointID: a, EndPointID: b})
	add(scene.Plane{PointIDs: [3]scene.ID{a, b, c}})
	add(scene.Sphere{Position: geometry.NewVector3(1, 2, 3), Radius: 1.5})
	add(scene.Cylinder{Position: geometry.NewVector3(0, 0, 0), Radius: 0.5, Height: 2})
	add(scene.Box{Position: geometry.NewVector3(-1, 0, 0), Size: geometry.NewVector3(1, 2, 3)})
	return store.Snapshot()
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, testScene(t), 32); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	out := buf.String()

	expected := []string{
		"// 8 entities",
		`// point "Point 1"`,
		`// line "Line 1"`,
		`color("#ff0000") polyhedron(points = [[0, 0, 0], [1, 0, 0], [0, 0, 1]], faces = [[0, 1, 2]]);`,
		`translate([1, 2, 3]) sphere(r = 1.5, $fn = 32);`,
		`translate([0, 0, 0]) rotate([-90, 0, 0]) cylinder(h = 2, r = 0.5, $fn = 32);`,
		`translate([-1, 0, 0]) cube([1, 2, 3], center = true);`,
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Errorf("Export output missing %q\n%s", want, out)
		}
	}
}

func TestExportDefaultFragments(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, testScene(t), 0); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(buf.String(), "$fn = 64") {
		t.Errorf("Expected default fragments in output:\n%s", buf.String())
	}
}

func TestExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, scene.Snapshot{}, 0); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if buf.String() != "// 0 entities\n" {
		t.Errorf("Unexpected output for empty scene: %q", buf.String())
	}
}

func TestRendererNotInstalled(t *testing.T) {
	r := NewRenderer(t.TempDir())
	r.binary = "openscad-does-not-exist"

	if r.Available() {
		t.Fatal("Expected renderer to be unavailable")
	}
	err := r.RenderToSTL(context.Background(), "model.scad", "model.stl")
	if !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Expected ErrNotInstalled, got %v", err)
	}
	err = r.RenderScene(context.Background(), testScene(t), "model.stl")
	if !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Expected ErrNotInstalled from RenderScene, got %v", err)
	}
}
