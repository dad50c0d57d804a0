package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/trix3d/internal/config"
	"github.com/philipparndt/trix3d/internal/logging"
	"github.com/philipparndt/trix3d/version"
)

var (
	configPath string
	logLevel   string
	logFile    string

	cfg       = config.Default()
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "trix3d",
	Short: "Inspect, measure and export 3D construction projects",
	Long: `trix3d works with .trix3d construction projects: scenes of points, lines,
planes, spheres, cylinders and boxes. It reports dimensions, measures distances,
angles, areas and volumes, builds scenes from scripts and exports them as STL,
glTF or OpenSCAD.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to a rotating file instead of stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = c

	level := cfg.Level()
	if logLevel != "" {
		if level, err = logging.ParseLevel(logLevel); err != nil {
			return err
		}
	}
	file := cfg.LogFile
	if logFile != "" {
		file = logFile
	}

	logCloser, err = logging.Setup(logging.Options{Level: level, File: file})
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
