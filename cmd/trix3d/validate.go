package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/trix3d/pkg/project"
	"github.com/philipparndt/trix3d/pkg/scene"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a project for broken references and invalid values",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	entities, err := project.Load(args[0])
	if err != nil {
		return err
	}
	findings := scene.Validate(scene.NewSnapshot(entities))
	w := cmd.OutOrStdout()

	errCount := 0
	for _, f := range findings {
		fmt.Fprintln(w, f.Error())
		if f.Severity == scene.SeverityError {
			errCount++
		}
	}

	if errCount > 0 {
		return fmt.Errorf("%d error(s), %d warning(s)", errCount, len(findings)-errCount)
	}
	fmt.Fprintf(w, "%s: %d entities, %d warning(s)\n", args[0], len(entities), len(findings))
	return nil
}
