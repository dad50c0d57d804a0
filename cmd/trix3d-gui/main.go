package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/trix3d/internal/app"
	"github.com/philipparndt/trix3d/internal/config"
	"github.com/philipparndt/trix3d/internal/logging"
	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/gltfexport"
	"github.com/philipparndt/trix3d/pkg/project"
	"github.com/philipparndt/trix3d/pkg/scene"
	"github.com/philipparndt/trix3d/pkg/stl"
	"github.com/philipparndt/trix3d/pkg/tessellate"
	"github.com/philipparndt/trix3d/pkg/viewer"
	"github.com/philipparndt/trix3d/version"
)

// GUI is the editor window: scene view in the middle, entity list on the
// left, properties and calculator on the right.
type GUI struct {
	window fyne.Window
	editor *app.App
	meshes *meshCache

	view       *viewer.SceneView
	list       *entityList
	properties *propertiesPanel
	calculator *calculatorPanel
	tools      *widget.RadioGroup
	status     *widget.Label

	undo, redo *widget.Button

	stopWatch context.CancelFunc
}

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	closer, err := logging.Setup(logging.Options{Level: cfg.Level(), File: cfg.LogFile})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()
	slog.Info("starting", "version", version.GetFullVersion())

	a := fyneapp.NewWithID("com.github.philipparndt.trix3d")
	w := a.NewWindow("trix3d")

	g := newGUI(w, app.New(cfg), cfg.TessellationCells)
	defer g.close()
	w.SetContent(g.layout())
	w.SetMainMenu(g.menu())

	if len(os.Args) > 1 {
		g.open(os.Args[1])
	} else {
		g.refresh()
	}

	w.Resize(fyne.NewSize(1400, 900))
	w.ShowAndRun()
}

func newGUI(w fyne.Window, editor *app.App, cells int) *GUI {
	g := &GUI{
		window: w,
		editor: editor,
		meshes: newMeshCache(cells),
		view:   viewer.NewSceneView(),
		status: widget.NewLabel(""),
	}
	g.list = newEntityList(g)
	g.properties = newPropertiesPanel(g)
	g.calculator = newCalculatorPanel(g)

	g.view.OnPick = func(id scene.ID) {
		if _, err := g.editor.Pick(id); err != nil {
			g.showError(err)
		}
		g.refresh()
	}
	g.view.OnEmpty = func(origin, dir geometry.Vector3) {
		if _, err := g.editor.Click(origin, dir); err != nil {
			g.showError(err)
		}
		g.refresh()
	}

	names := make([]string, len(app.Tools))
	for i, t := range app.Tools {
		names[i] = t.String()
	}
	g.tools = widget.NewRadioGroup(names, nil)
	g.tools.Horizontal = true
	g.tools.Required = true
	g.tools.SetSelected(g.editor.Tool().String())
	g.tools.OnChanged = func(s string) {
		if t, err := app.ParseTool(s); err == nil {
			g.editor.SetTool(t)
			g.refresh()
		}
	}
	return g
}

func (g *GUI) layout() fyne.CanvasObject {
	g.undo = widget.NewButtonWithIcon("", theme.ContentUndoIcon(), func() {
		g.editor.Undo()
		g.refresh()
	})
	g.redo = widget.NewButtonWithIcon("", theme.ContentRedoIcon(), func() {
		g.editor.Redo()
		g.refresh()
	})
	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.FolderOpenIcon(), g.showOpenDialog),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), g.save),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), g.deleteSelected),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomFitIcon(), g.view.FitView),
		widget.NewToolbarAction(theme.VisibilityIcon(), func() {
			g.editor.ToggleLabels()
			g.refresh()
		}),
		widget.NewToolbarAction(theme.GridIcon(), func() {
			g.editor.ToggleCalculator()
			g.refresh()
		}),
	)

	planes := widget.NewSelect([]string{string(app.PlaneXZ), string(app.PlaneXY), string(app.PlaneYZ)}, func(s string) {
		if p, err := app.ParseConstructionPlane(s); err == nil {
			g.editor.SetConstructionPlane(p)
		}
	})
	planes.SetSelected(string(g.editor.ConstructionPlane()))

	top := container.NewHBox(toolbar, g.undo, g.redo, g.tools, widget.NewLabel("Plane:"), planes)
	right := container.NewVBox(g.properties.container, widget.NewSeparator(), g.calculator.container)

	split := container.NewHSplit(g.list.widget, container.NewHSplit(g.view, container.NewVScroll(right)))
	split.Offset = 0.18
	return container.NewBorder(top, g.status, nil, nil, split)
}

func (g *GUI) menu() *fyne.MainMenu {
	return fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Open...", g.showOpenDialog),
			fyne.NewMenuItem("Save", g.save),
			fyne.NewMenuItem("Save As...", g.showSaveDialog),
			fyne.NewMenuItemSeparator(),
			fyne.NewMenuItem("Export STL...", func() { g.showExportDialog(".stl") }),
			fyne.NewMenuItem("Export glTF...", func() { g.showExportDialog(".glb") }),
		),
	)
}

// refresh pushes editor state into every widget. It must run on the main
// goroutine.
func (g *GUI) refresh() {
	snap := g.editor.Snapshot()
	highlighted := append(g.editor.PendingPoints(), g.editor.MeasurementInputs()...)

	g.view.SetScene(viewer.Scene{
		Snapshot:    snap,
		Parts:       g.meshes.parts(snap),
		Selected:    g.editor.Selected(),
		Highlighted: highlighted,
	}, g.editor.ShowLabels())
	g.list.update(snap, g.editor.Selected())
	g.properties.show(g.editor.Selected())
	g.calculator.update()
	g.syncTool()

	if g.editor.CanUndo() {
		g.undo.Enable()
	} else {
		g.undo.Disable()
	}
	if g.editor.CanRedo() {
		g.redo.Enable()
	} else {
		g.redo.Disable()
	}

	path := g.editor.Path()
	if path == "" {
		path = "unsaved"
	}
	g.status.SetText(fmt.Sprintf("%s | %d entities | tool: %s", path, snap.Len(), g.editor.Tool()))
}

// syncTool shows the editor's tool without triggering a tool change, which
// would close the calculator.
func (g *GUI) syncTool() {
	tool := g.editor.Tool().String()
	if g.tools.Selected == tool {
		return
	}
	onChanged := g.tools.OnChanged
	g.tools.OnChanged = nil
	g.tools.SetSelected(tool)
	g.tools.OnChanged = onChanged
}

func (g *GUI) showError(err error) {
	slog.Warn("gui: action failed", "error", err)
	dialog.ShowError(err, g.window)
}

func (g *GUI) deleteSelected() {
	if _, err := g.editor.DeleteSelected(); err != nil {
		g.showError(err)
	}
	g.refresh()
}

func (g *GUI) projectFilter() storage.FileFilter {
	return storage.NewExtensionFileFilter([]string{project.Extension})
}

func (g *GUI) showOpenDialog() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			g.showError(err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		g.open(reader.URI().Path())
	}, g.window)
	d.SetFilter(g.projectFilter())
	d.Show()
}

// open loads a project, frames it and starts watching it for outside edits.
func (g *GUI) open(path string) {
	if err := g.editor.OpenProject(path); err != nil {
		g.showError(err)
		return
	}
	g.watch()
	g.refresh()
	g.view.FitView()
	g.window.SetTitle("trix3d - " + filepath.Base(path))
}

func (g *GUI) watch() {
	if g.stopWatch != nil {
		g.stopWatch()
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.stopWatch = cancel

	err := g.editor.Watch(ctx, func(err error) {
		fyne.Do(func() {
			if err != nil {
				g.status.SetText("Reload failed: " + err.Error())
				return
			}
			g.refresh()
		})
	})
	if err != nil {
		slog.Warn("gui: cannot watch project", "error", err)
	}
}

func (g *GUI) save() {
	if g.editor.Path() == "" {
		g.showSaveDialog()
		return
	}
	g.saveAs(g.editor.Path())
}

func (g *GUI) saveAs(path string) {
	if !strings.HasSuffix(path, project.Extension) {
		path += project.Extension
	}
	first := g.editor.Path() != path
	if err := g.editor.SaveProject(path); err != nil {
		g.showError(err)
		return
	}
	if first {
		g.watch()
	}
	g.window.SetTitle("trix3d - " + filepath.Base(path))
	g.refresh()
}

func (g *GUI) showSaveDialog() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			g.showError(err)
			return
		}
		if writer == nil {
			return
		}
		writer.Close()
		g.saveAs(writer.URI().Path())
	}, g.window)
	d.SetFileName(project.DefaultFileName)
	d.SetFilter(g.projectFilter())
	d.Show()
}

func (g *GUI) showExportDialog(ext string) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			g.showError(err)
			return
		}
		if writer == nil {
			return
		}
		writer.Close()
		if err := g.export(writer.URI().Path()); err != nil {
			g.showError(err)
		}
	}, g.window)
	d.SetFileName("scene" + ext)
	d.Show()
}

// export writes the tessellated scene as STL or, for .gltf and .glb, glTF.
func (g *GUI) export(path string) error {
	snap := g.editor.Snapshot()
	if snap.IsEmpty() {
		return app.ErrEmptyScene
	}
	parts := g.meshes.parts(snap)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return gltfexport.Save(path, parts)
	default:
		return stl.Save(path, tessellate.Model("scene", parts), false)
	}
}

func (g *GUI) close() {
	if g.stopWatch != nil {
		g.stopWatch()
	}
	g.editor.Close()
}
