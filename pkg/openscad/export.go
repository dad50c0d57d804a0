// Package openscad writes scenes as OpenSCAD source and renders that source
// through the openscad binary.
package openscad

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
)

// DefaultFragments is the $fn used for spheres and cylinders.
const DefaultFragments = 64

// Export writes the solids and planes of a snapshot as OpenSCAD statements,
// one per entity in scene order. Points and lines have no volume and are
// written as comments only.
func Export(w io.Writer, snap scene.Snapshot, fragments int) error {
	if fragments <= 0 {
		fragments = DefaultFragments
	}

	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "// %d entities\n", snap.Len())

	for e := range snap.All() {
		stmt, err := statement(snap, e, fragments)
		if err != nil {
			return err
		}
		if stmt == "" {
			fmt.Fprintf(out, "// %s %q\n", e.Kind(), e.Name)
			continue
		}
		fmt.Fprintf(out, "\n// %s\n", e.Name)
		if e.Color != "" {
			fmt.Fprintf(out, "color(%q) ", e.Color)
		}
		fmt.Fprintln(out, stmt)
	}

	return out.Flush()
}

// Save writes the snapshot to a .scad file.
func Save(filename string, snap scene.Snapshot) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := Export(file, snap, DefaultFragments); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func statement(snap scene.Snapshot, e scene.Entity, fragments int) (string, error) {
	switch s := e.Shape.(type) {
	case scene.Sphere:
		return fmt.Sprintf("translate(%s) sphere(r = %s, $fn = %d);",
			vector(s.Position), number(s.Radius), fragments), nil
	case scene.Cylinder:
		// OpenSCAD cylinders grow along +Z; tip them onto +Y.
		return fmt.Sprintf("translate(%s) rotate([-90, 0, 0]) cylinder(h = %s, r = %s, $fn = %d);",
			vector(s.Position), number(s.Height), number(s.Radius), fragments), nil
	case scene.Box:
		return fmt.Sprintf("translate(%s) cube(%s, center = true);",
			vector(s.Position), vector(s.Size)), nil
	case scene.Plane:
		tri, err := snap.PlaneTriangle(e.ID)
		if err != nil {
			return "", fmt.Errorf("plane %s: %w", e.ID, err)
		}
		return fmt.Sprintf("polyhedron(points = [%s, %s, %s], faces = [[0, 1, 2]]);",
			vector(tri.V1), vector(tri.V2), vector(tri.V3)), nil
	default:
		return "", nil
	}
}

func vector(v geometry.Vector3) string {
	parts := make([]string, 0, 3)
	for _, c := range v.Array() {
		parts = append(parts, number(c))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
