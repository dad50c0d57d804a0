package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/trix3d/pkg/analysis"
)

var (
	linesCount     int
	linesLongest   bool
	linesShortest  bool
	linesMinLength float64
	linesMaxLength float64
)

var linesCmd = &cobra.Command{
	Use:   "lines [file]",
	Short: "List and measure line entities",
	Long:  "Find and measure lines, including longest, shortest, or lines within a specific length range.",
	Args:  cobra.ExactArgs(1),
	RunE:  runLines,
}

func init() {
	rootCmd.AddCommand(linesCmd)

	linesCmd.Flags().IntVarP(&linesCount, "count", "n", 10, "Number of lines to display")
	linesCmd.Flags().BoolVarP(&linesLongest, "longest", "l", false, "Show longest lines")
	linesCmd.Flags().BoolVarP(&linesShortest, "shortest", "s", false, "Show shortest lines")
	linesCmd.Flags().Float64Var(&linesMinLength, "min", 0.0, "Minimum line length filter")
	linesCmd.Flags().Float64Var(&linesMaxLength, "max", 0.0, "Maximum line length filter")
	linesCmd.MarkFlagsMutuallyExclusive("longest", "shortest")
}

func runLines(cmd *cobra.Command, args []string) error {
	snap, err := loadScene(args[0])
	if err != nil {
		return err
	}
	result := analysis.AnalyzeScene(snap)
	w := cmd.OutOrStdout()

	var lines []analysis.LineInfo
	var title string

	switch {
	case linesLongest:
		lines = analysis.FindLongestLines(result, linesCount)
		title = fmt.Sprintf("Top %d Longest Lines", len(lines))
	case linesShortest:
		lines = analysis.FindShortestLines(result, linesCount)
		title = fmt.Sprintf("Top %d Shortest Lines", len(lines))
	case linesMaxLength > 0:
		lines = analysis.FindLinesByLength(result, linesMinLength, linesMaxLength)
		title = fmt.Sprintf("Lines between %.6f and %.6f units (found %d)", linesMinLength, linesMaxLength, len(lines))
		lines = lines[:min(linesCount, len(lines))]
	default:
		lines = result.Lines
		title = fmt.Sprintf("All Lines (showing first %d of %d)", min(linesCount, len(lines)), len(lines))
		lines = lines[:min(linesCount, len(lines))]
	}

	fmt.Fprintln(w, title)
	fmt.Fprintln(w, "====================")
	fmt.Fprintf(w, "Total lines in project: %d\n", len(result.Lines))
	fmt.Fprintf(w, "Min line length: %.6f units\n", result.MinLineLength)
	fmt.Fprintf(w, "Max line length: %.6f units\n", result.MaxLineLength)
	fmt.Fprintf(w, "Avg line length: %.6f units\n\n", result.AvgLineLength)

	if len(lines) == 0 {
		fmt.Fprintln(w, "No lines found matching the criteria.")
		return nil
	}

	fmt.Fprintf(w, "%-16s %-35s %-35s %-15s\n", "Name", "Start", "End", "Length")
	fmt.Fprintln(w, "-----------------------------------------------------------------------------------------------------------")
	for _, line := range lines {
		fmt.Fprintf(w, "%-16s %-35s %-35s %-15.6f\n",
			line.Name,
			analysis.FormatVector(line.Start),
			analysis.FormatVector(line.End),
			line.Length)
	}
	return nil
}
