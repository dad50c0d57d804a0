package main

import (
	"fmt"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/trix3d/pkg/tessellate"
	"github.com/philipparndt/trix3d/pkg/viewer"
)

var (
	renderOutput string
	renderWidth  int
	renderHeight int
	renderYaw    float64
	renderPitch  float64
	renderLabels bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a project to a PNG image",
	Long: `Render a project with the software rasterizer used by the GUI. The camera
frames the whole scene; --yaw and --pitch orbit it, in degrees.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default: input name with .png)")
	renderCmd.Flags().IntVar(&renderWidth, "width", 1024, "Image width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", 768, "Image height in pixels")
	renderCmd.Flags().Float64Var(&renderYaw, "yaw", 30, "Camera yaw in degrees")
	renderCmd.Flags().Float64Var(&renderPitch, "pitch", 22.5, "Camera pitch in degrees")
	renderCmd.Flags().BoolVar(&renderLabels, "labels", false, "Draw entity names")
}

func runRender(cmd *cobra.Command, args []string) error {
	input := args[0]
	if renderWidth < 1 || renderHeight < 1 {
		return fmt.Errorf("invalid image size %dx%d", renderWidth, renderHeight)
	}
	snap, err := loadScene(input)
	if err != nil {
		return err
	}
	parts, err := tessellate.Scene(snap, cfg.TessellationCells)
	if err != nil {
		return err
	}

	cam := viewer.NewCamera(snap.Bounds())
	cam.Yaw = renderYaw * math.Pi / 180
	cam.Pitch = 0
	cam.Rotate(0, renderPitch*math.Pi/180)

	s := viewer.Scene{Snapshot: snap, Parts: parts}
	frame := viewer.NewFrame(renderWidth, renderHeight)
	viewer.Draw(frame, cam, s)
	if renderLabels {
		face, err := viewer.LabelFace(14)
		if err != nil {
			return err
		}
		labels := viewer.Labels(cam, s, float64(renderWidth), float64(renderHeight))
		viewer.DrawLabels(frame, labels, face, color.White)
	}

	output := renderOutput
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".png"
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, frame.Image); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", output, renderWidth, renderHeight)
	return nil
}
