package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/philipparndt/trix3d/internal/app"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Print project information whenever the file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]
	editor := app.New(cfg)
	defer editor.Close()

	if err := editor.OpenProject(filename); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	report := func() {
		var size int64
		if stat, err := os.Stat(filename); err == nil {
			size = stat.Size()
		}
		printSceneInfo(w, filename, size, editor.Snapshot())
	}
	report()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	err := editor.Watch(ctx, func(err error) {
		fmt.Fprintln(w)
		if err != nil {
			fmt.Fprintf(w, "Reload failed: %v\n", err)
			return
		}
		report()
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nWatching %s for changes (Ctrl+C to stop)\n", filename)
	<-ctx.Done()
	return nil
}
