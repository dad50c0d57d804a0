package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/philipparndt/trix3d/pkg/analysis"
	"github.com/philipparndt/trix3d/pkg/scene"
	"github.com/philipparndt/trix3d/pkg/stl"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a project or STL file",
	Long: `Show entity counts, bounding box, solid volume, plane area and line statistics
of a project. STL files report their triangle mesh instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]
	stat, err := os.Stat(filename)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(filename), ".stl") {
		model, err := stl.Parse(filename)
		if err != nil {
			return fmt.Errorf("parsing STL file: %w", err)
		}
		printMeshInfo(cmd.OutOrStdout(), filename, stat.Size(), model)
		return nil
	}

	snap, err := loadScene(filename)
	if err != nil {
		return err
	}
	printSceneInfo(cmd.OutOrStdout(), filename, stat.Size(), snap)
	return nil
}

func printSceneInfo(w io.Writer, filename string, size int64, snap scene.Snapshot) {
	result := analysis.AnalyzeScene(snap)

	fmt.Fprintln(w, "Project Information")
	fmt.Fprintln(w, "===================")
	fmt.Fprintf(w, "File: %s (%s)\n\n", filename, humanize.Bytes(uint64(size)))

	fmt.Fprintf(w, "Entities: %s\n", humanize.Comma(int64(result.Total)))
	for _, kind := range scene.Kinds {
		if n := result.Counts[kind]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", kind.Title()+"s:", n)
		}
	}
	fmt.Fprintln(w)

	if !result.BoundingBox.IsEmpty() {
		dims := result.BoundingBox.Size()
		fmt.Fprintln(w, "Bounding Box:")
		fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
		fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
		fmt.Fprintf(w, "  Center: %s\n", analysis.FormatVector(result.BoundingBox.Center()))
		fmt.Fprintf(w, "  Size: %.6f x %.6f x %.6f units\n\n", dims.X, dims.Y, dims.Z)
	}

	fmt.Fprintf(w, "Solid Volume: %.6f cubic units\n", result.SolidVolume)
	fmt.Fprintf(w, "Plane Area: %.6f square units\n", result.PlaneArea)
	if len(result.Lines) > 0 {
		fmt.Fprintln(w, "\nLine Lengths:")
		fmt.Fprintf(w, "  Minimum: %.6f units\n", result.MinLineLength)
		fmt.Fprintf(w, "  Maximum: %.6f units\n", result.MaxLineLength)
		fmt.Fprintf(w, "  Average: %.6f units\n", result.AvgLineLength)
	}
}

func printMeshInfo(w io.Writer, filename string, size int64, model *stl.Model) {
	result := analysis.AnalyzeMesh(model)

	fmt.Fprintln(w, "STL File Information")
	fmt.Fprintln(w, "====================")
	if model.Name != "" {
		fmt.Fprintf(w, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(w, "File: %s (%s)\n\n", filename, humanize.Bytes(uint64(size)))

	fmt.Fprintln(w, "Model Statistics:")
	fmt.Fprintf(w, "  Triangles: %s\n", humanize.Comma(int64(result.TriangleCount)))
	fmt.Fprintf(w, "  Surface Area: %.6f square units\n", result.SurfaceArea)
	if result.Degenerate > 0 {
		fmt.Fprintf(w, "  Degenerate: %s\n", humanize.Comma(int64(result.Degenerate)))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(w, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(w, "  Size: %.6f x %.6f x %.6f units\n\n", result.Dimensions.X, result.Dimensions.Y, result.Dimensions.Z)

	fmt.Fprintln(w, "Edge Lengths:")
	fmt.Fprintf(w, "  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Fprintf(w, "  Maximum: %.6f units\n", result.MaxEdgeLength)
}
