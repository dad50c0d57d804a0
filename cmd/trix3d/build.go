package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/philipparndt/trix3d/internal/script"
	"github.com/philipparndt/trix3d/pkg/history"
	"github.com/philipparndt/trix3d/pkg/project"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build [script]",
	Short: "Build a project from a construction script",
	Long: `Evaluate a Lisp construction script and save the resulting scene.

Builtins return the new entity id so later calls can refer to it:

  (def a (point 0 0 0))
  (def b (point 3 4 0))
  (line a b)
  (sphere 0 2 0 1.5)
  (cylinder 2 0 0 0.5 2)
  (rename (box 0 0 0 1 2 3) "crate")`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "Project file to write (default: script name with "+project.Extension+")")
}

func runBuild(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	h := history.New()
	res, err := script.Run(string(source), h)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if h.Snapshot().IsEmpty() {
		return fmt.Errorf("%s: script created no entities", args[0])
	}

	output := buildOutput
	if output == "" {
		output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + project.Extension
	}
	if err := project.Save(output, h.Snapshot()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %d entities, wrote %s\n", len(res.Created), output)
	return nil
}
