package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/trix3d/internal/measurement"
)

// measureAliases are the short mode names accepted on the command line.
var measureAliases = map[string]measurement.Mode{
	"distance":   measurement.ModeDistance,
	"angle":      measurement.ModeAngle,
	"area":       measurement.ModePolygon,
	"plane-area": measurement.ModePlaneArea,
	"volume":     measurement.ModeVolume,
}

var measureCmd = &cobra.Command{
	Use:   "measure [distance|angle|area|plane-area|volume] [file] [id-or-name...]",
	Short: "Measure entities of a project",
	Long: `Run a calculator measurement over the given entities, referenced by id or name.

  distance     two points
  angle        two lines
  area         three or more points forming a polygon (four points also give
               the tetrahedron volume)
  plane-area   one plane
  volume       one sphere, cylinder or box`,
	Args:      cobra.MinimumNArgs(3),
	ValidArgs: []string{"distance", "angle", "area", "plane-area", "volume"},
	RunE:      runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)
}

func parseMeasureMode(s string) (measurement.Mode, error) {
	if mode, ok := measureAliases[s]; ok {
		return mode, nil
	}
	return measurement.ParseMode(s)
}

func runMeasure(cmd *cobra.Command, args []string) error {
	mode, err := parseMeasureMode(args[0])
	if err != nil {
		return err
	}
	snap, err := loadScene(args[1])
	if err != nil {
		return err
	}
	ids, err := resolveRefs(snap, args[2:])
	if err != nil {
		return err
	}

	session := measurement.NewSession()
	session.Begin(mode)
	for _, id := range ids {
		if err := session.AddInput(snap, id); err != nil {
			return err
		}
	}

	result := session.ResultString()
	if result == "" {
		return fmt.Errorf("%s: %s", mode.Label(), mode.Instructions())
	}
	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}
