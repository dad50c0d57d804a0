package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/trix3d/pkg/analysis"
)

var (
	planesCount    int
	planesLargest  bool
	planesSmallest bool
)

var planesCmd = &cobra.Command{
	Use:   "planes [file]",
	Short: "Analyze plane entities",
	Long:  "Display information about planes including area, perimeter, and corner positions.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlanes,
}

func init() {
	rootCmd.AddCommand(planesCmd)

	planesCmd.Flags().IntVarP(&planesCount, "count", "n", 10, "Number of planes to display")
	planesCmd.Flags().BoolVarP(&planesLargest, "largest", "l", false, "Show largest planes by area")
	planesCmd.Flags().BoolVarP(&planesSmallest, "smallest", "s", false, "Show smallest planes by area")
	planesCmd.MarkFlagsMutuallyExclusive("largest", "smallest")
}

func runPlanes(cmd *cobra.Command, args []string) error {
	snap, err := loadScene(args[0])
	if err != nil {
		return err
	}
	result := analysis.AnalyzeScene(snap)
	w := cmd.OutOrStdout()

	planes := result.Planes
	title := fmt.Sprintf("First %d Planes", min(planesCount, len(planes)))
	switch {
	case planesLargest:
		planes = analysis.FindLargestPlanes(result, planesCount)
		title = fmt.Sprintf("Top %d Largest Planes", len(planes))
	case planesSmallest:
		planes = analysis.FindSmallestPlanes(result, planesCount)
		title = fmt.Sprintf("Top %d Smallest Planes", len(planes))
	default:
		planes = planes[:min(planesCount, len(planes))]
	}

	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "====================")
	fmt.Fprintf(w, "Total planes: %d\n", len(result.Planes))
	fmt.Fprintf(w, "Total plane area: %.6f square units\n\n", result.PlaneArea)

	for _, plane := range planes {
		tri := plane.Triangle
		fmt.Fprintf(w, "%s (%s):\n", plane.Name, plane.ID)
		fmt.Fprintf(w, "  Area: %.6f square units\n", plane.Area)
		fmt.Fprintf(w, "  Perimeter: %.6f units\n", tri.Perimeter())
		fmt.Fprintf(w, "  Normal: %s\n", analysis.FormatVector(tri.Normal))
		fmt.Fprintf(w, "  Corners: %s, %s, %s\n\n",
			analysis.FormatVector(tri.V1),
			analysis.FormatVector(tri.V2),
			analysis.FormatVector(tri.V3))
	}
	return nil
}
