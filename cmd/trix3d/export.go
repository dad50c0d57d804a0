package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/philipparndt/trix3d/pkg/gltfexport"
	"github.com/philipparndt/trix3d/pkg/openscad"
	"github.com/philipparndt/trix3d/pkg/stl"
	"github.com/philipparndt/trix3d/pkg/tessellate"
)

var (
	exportOutput   string
	exportCells    int
	exportASCII    bool
	exportOpenSCAD bool
)

var exportCmd = &cobra.Command{
	Use:   "export [stl|gltf|scad] [file]",
	Short: "Export the planes and solids of a project",
	Long: `Export a project for other tools. Points and lines have no surface and are
skipped. STL and glTF output is meshed with marching cubes; --cells sets the
resolution along each solid's longest axis. With --openscad, STL is rendered by
the openscad binary instead. A .glb output name writes binary glTF.`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"stl", "gltf", "scad"},
	RunE:      runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: input name with the format's extension)")
	exportCmd.Flags().IntVar(&exportCells, "cells", 0, "Marching cubes cells (default from settings)")
	exportCmd.Flags().BoolVar(&exportASCII, "ascii", false, "Write ASCII instead of binary STL")
	exportCmd.Flags().BoolVar(&exportOpenSCAD, "openscad", false, "Render STL with OpenSCAD")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, input := strings.ToLower(args[0]), args[1]
	snap, err := loadScene(input)
	if err != nil {
		return err
	}

	output := exportOutput
	if output == "" {
		ext := "." + format
		if format == "gltf" {
			ext = ".glb"
		}
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ext
	}
	cells := exportCells
	if cells <= 0 {
		cells = cfg.TessellationCells
	}

	switch format {
	case "scad":
		err = openscad.Save(output, snap)
	case "stl":
		if exportOpenSCAD {
			renderer := openscad.NewRenderer(filepath.Dir(output))
			err = renderer.RenderScene(cmd.Context(), snap, output)
			break
		}
		var parts []tessellate.Part
		if parts, err = tessellate.Scene(snap, cells); err == nil {
			name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			err = stl.Save(output, tessellate.Model(name, parts), exportASCII)
		}
	case "gltf":
		var parts []tessellate.Part
		if parts, err = tessellate.Scene(snap, cells); err == nil {
			err = gltfexport.Save(output, parts)
		}
	default:
		return fmt.Errorf("unknown export format %q (expected stl, gltf or scad)", args[0])
	}
	if err != nil {
		return err
	}

	stat, err := os.Stat(output)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", output, humanize.Bytes(uint64(stat.Size())))
	return nil
}
