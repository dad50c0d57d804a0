package openscad

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/philipparndt/trix3d/pkg/scene"
)

// ErrNotInstalled is returned when the openscad binary cannot be found.
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

// Renderer runs the openscad binary inside a working directory
type Renderer struct {
	workDir string
	binary  string
}

// NewRenderer creates a renderer for the given working directory
func NewRenderer(workDir string) *Renderer {
	return &Renderer{
		workDir: workDir,
		binary:  "openscad",
	}
}

// Available reports whether the openscad binary is on the PATH
func (r *Renderer) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// RenderToSTL renders an OpenSCAD file to STL format
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	if !filepath.IsAbs(scadFile) {
		scadFile = filepath.Join(r.workDir, scadFile)
	}
	if !r.Available() {
		return ErrNotInstalled
	}

	cmd := exec.CommandContext(ctx, r.binary, "-o", outputFile, scadFile)
	cmd.Dir = r.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("openscad: render", "input", scadFile, "output", outputFile)
	if err := cmd.Run(); err != nil {
		var msg strings.Builder
		fmt.Fprintf(&msg, "failed to render %s: %v", scadFile, err)
		if stderr.Len() > 0 {
			msg.WriteString("\nstderr: ")
			msg.WriteString(stderr.String())
		}
		if stdout.Len() > 0 {
			msg.WriteString("\nstdout: ")
			msg.WriteString(stdout.String())
		}
		return errors.New(msg.String())
	}

	return nil
}

// RenderScene writes the snapshot to a temporary .scad file and renders it
// to outputFile. The temporary file is removed afterwards.
func (r *Renderer) RenderScene(ctx context.Context, snap scene.Snapshot, outputFile string) error {
	tmp, err := os.CreateTemp(r.workDir, "trix3d-*.scad")
	if err != nil {
		return fmt.Errorf("failed to create temporary scad file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Export(tmp, snap, DefaultFragments); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return r.RenderToSTL(ctx, tmp.Name(), outputFile)
}
