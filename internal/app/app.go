// Package app is the editor facade shared by the command line and the GUI.
// It owns the history, the construction and measurement sessions and the
// view settings, and serializes access to them.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/philipparndt/trix3d/internal/config"
	"github.com/philipparndt/trix3d/internal/construction"
	"github.com/philipparndt/trix3d/internal/measurement"
	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/history"
	"github.com/philipparndt/trix3d/pkg/scene"
)

// ErrEmptyScene is returned when saving a scene without entities.
var ErrEmptyScene = errors.New("scene is empty")

// App is the editor state. All methods are safe for concurrent use.
type App struct {
	mu           sync.Mutex
	history      *history.Manager
	construction *construction.Session
	measurement  *measurement.Session
	View         ViewSettings
	Defaults     SolidDefaults
	FileWatch    FileWatchState
	cfg          config.Config
}

// New creates an editor with an empty scene configured from cfg.
func New(cfg config.Config, opts ...scene.Option) *App {
	h := history.New(opts...)
	plane, err := ParseConstructionPlane(cfg.ConstructionPlane)
	if err != nil {
		slog.Warn("app: using default construction plane", "error", err)
	}
	size := cfg.DefaultBoxSize
	return &App{
		history:      h,
		construction: construction.NewSession(h),
		measurement:  measurement.NewSession(),
		View: ViewSettings{
			tool:              ToolSelect,
			constructionPlane: plane,
			showLabels:        cfg.ShowLabels,
		},
		Defaults: SolidDefaults{
			SphereRadius:   cfg.DefaultSphereRadius,
			CylinderRadius: cfg.DefaultCylinder.Radius,
			CylinderHeight: cfg.DefaultCylinder.Height,
			BoxSize:        geometry.NewVector3(size[0], size[1], size[2]),
		},
		cfg: cfg,
	}
}

// OnChange registers fn to run after every scene change. fn runs with the
// editor lock held and must not call back into the App.
func (a *App) OnChange(fn func(scene.Snapshot)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history.OnChange(fn)
}

// Snapshot returns the current scene.
func (a *App) Snapshot() scene.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Snapshot()
}

// Get looks up an entity in the current scene.
func (a *App) Get(id scene.ID) (scene.Entity, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Get(id)
}

// Selected returns the selected entity, or "" when nothing is selected.
func (a *App) Selected() scene.ID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Selected()
}

// Select selects id. Unknown ids clear the selection.
func (a *App) Select(id scene.ID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history.Select(id)
}

// Tool returns the active tool.
func (a *App) Tool() Tool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.View.tool
}

// SetTool switches tools. Buffered picks, calculator inputs and the selection
// are discarded and the calculator closes.
func (a *App) SetTool(t Tool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.setTool(t)
	a.View.calculatorOpen = false
	a.measurement.Reset()
}

func (a *App) setTool(t Tool) {
	a.View.tool = t
	a.construction.Begin(t.construction())
	a.history.Select("")
}

// ConstructionPlane returns the plane clicks are projected onto.
func (a *App) ConstructionPlane() ConstructionPlane {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.View.constructionPlane
}

// SetConstructionPlane changes the plane clicks are projected onto.
func (a *App) SetConstructionPlane(p ConstructionPlane) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.View.constructionPlane = p
}

// ShowLabels reports whether entity names are drawn in the view.
func (a *App) ShowLabels() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.View.showLabels
}

// ToggleLabels shows or hides entity names.
func (a *App) ToggleLabels() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.View.showLabels = !a.View.showLabels
}

// CalculatorOpen reports whether picks feed the calculator.
func (a *App) CalculatorOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.View.calculatorOpen
}

// ToggleCalculator opens the calculator, switching to the select tool, or
// closes it and forgets the measurement.
func (a *App) ToggleCalculator() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.View.calculatorOpen {
		a.View.calculatorOpen = false
		a.measurement.Reset()
		return
	}
	a.setTool(ToolSelect)
	a.View.calculatorOpen = true
}

// MeasurementMode returns the calculator mode.
func (a *App) MeasurementMode() measurement.Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.measurement.Mode()
}

// SetMeasurementMode starts a new measurement.
func (a *App) SetMeasurementMode(mode measurement.Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.measurement.Begin(mode)
}

// ClearMeasurement drops inputs and result but keeps the mode.
func (a *App) ClearMeasurement() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.measurement.Clear()
}

// MeasurementInputs returns the entities picked for the calculator.
func (a *App) MeasurementInputs() []scene.ID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.measurement.Inputs()
}

// ResultString returns the formatted calculator result, or "".
func (a *App) ResultString() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.measurement.ResultString()
}

// PendingPoints returns the points buffered for the line or plane tool.
func (a *App) PendingPoints() []scene.ID {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.construction.Pending()
}

// Pick routes a clicked entity. With the calculator open, entities the mode
// accepts become measurement inputs and every other pick is ignored. With the
// line or plane tool, points are buffered for construction. Anything else is
// selected.
// created is set when the pick completed a line or plane.
func (a *App) Pick(id scene.ID) (created scene.ID, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.history.Get(id)
	if !ok {
		return "", fmt.Errorf("pick %s: %w", id, scene.ErrNotFound)
	}

	if a.View.calculatorOpen {
		if !a.measurement.Accepts(e.Kind()) {
			return "", nil
		}
		return "", a.measurement.AddInput(a.history.Snapshot(), id)
	}
	if a.construction.Tool() != construction.ToolNone && e.Kind() == scene.KindPoint {
		created, _, err := a.construction.AddPoint(id)
		return created, err
	}
	a.history.Select(id)
	return "", nil
}

// ClickEmpty handles a click on empty space with the select tool: the
// selection and any buffered picks are dropped.
func (a *App) ClickEmpty() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history.Select("")
	a.construction.Clear()
}

// Click casts a ray onto the construction plane and places a point or solid
// there when such a tool is active. Other tools behave like ClickEmpty.
func (a *App) Click(origin, dir geometry.Vector3) (scene.ID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, isSolid := a.View.tool.solid()
	if a.View.tool != ToolPoint && !isSolid {
		a.history.Select("")
		a.construction.Clear()
		return "", nil
	}
	pos, ok := a.View.constructionPlane.Intersect(origin, dir)
	if !ok {
		return "", nil
	}
	return a.place(a.View.tool, pos)
}

// PlacePoint adds a point at pos.
func (a *App) PlacePoint(pos geometry.Vector3) (scene.ID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Add(scene.Point{Position: pos})
}

// PlaceSolid adds a sphere, cylinder or box with default dimensions at pos.
func (a *App) PlaceSolid(kind scene.Kind, pos geometry.Vector3) (scene.ID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch kind {
	case scene.KindSphere:
		return a.place(ToolSphere, pos)
	case scene.KindCylinder:
		return a.place(ToolCylinder, pos)
	case scene.KindBox:
		return a.place(ToolBox, pos)
	}
	return "", fmt.Errorf("place %s: %w", kind, scene.ErrKindMismatch)
}

func (a *App) place(t Tool, pos geometry.Vector3) (scene.ID, error) {
	d := a.Defaults
	switch t {
	case ToolPoint:
		return a.history.Add(scene.Point{Position: pos})
	case ToolSphere:
		return a.history.Add(scene.Sphere{Position: pos, Radius: d.SphereRadius})
	case ToolCylinder:
		return a.history.Add(scene.Cylinder{Position: pos, Radius: d.CylinderRadius, Height: d.CylinderHeight})
	case ToolBox:
		return a.history.Add(scene.Box{Position: pos, Size: d.BoxSize})
	}
	return "", fmt.Errorf("tool %s places nothing", t)
}

// Update edits an entity's properties.
func (a *App) Update(id scene.ID, patch scene.Patch) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Update(id, patch)
}

// Remove deletes an entity and its dependents.
func (a *App) Remove(id scene.ID) ([]scene.ID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	removed, err := a.history.Remove(id)
	if err != nil {
		return nil, err
	}
	a.resetSessions()
	return removed, nil
}

// DeleteSelected removes the selected entity, if any.
func (a *App) DeleteSelected() ([]scene.ID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.history.Selected()
	if id == "" {
		return nil, nil
	}
	removed, err := a.history.Remove(id)
	if err != nil {
		return nil, err
	}
	a.resetSessions()
	return removed, nil
}

// Undo restores the previous scene. It reports false when there is nothing to undo.
func (a *App) Undo() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.history.Undo() {
		return false
	}
	a.resetSessions()
	return true
}

// Redo reapplies an undone change. It reports false when there is nothing to redo.
func (a *App) Redo() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.history.Redo() {
		return false
	}
	a.resetSessions()
	return true
}

// CanUndo reports whether Undo would change the scene.
func (a *App) CanUndo() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.CanUndo()
}

// CanRedo reports whether Redo would change the scene.
func (a *App) CanRedo() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.CanRedo()
}

// resetSessions drops buffered ids that may no longer exist.
func (a *App) resetSessions() {
	a.construction.Clear()
	a.measurement.Clear()
}
