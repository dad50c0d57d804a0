package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/trix3d/internal/app"
	"github.com/philipparndt/trix3d/internal/config"
	"github.com/philipparndt/trix3d/internal/measurement"
	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
)

func newApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.Default()
	cfg.WatchDebounceMS = 10
	a := app.New(cfg,
		scene.WithIDGenerator(&scene.SequenceGenerator{}),
		scene.WithColorGenerator(&scene.PaletteColors{}),
	)
	t.Cleanup(func() { a.Close() })
	return a
}

func placePoint(t *testing.T, a *app.App, x, y, z float64) scene.ID {
	t.Helper()
	id, err := a.PlacePoint(geometry.NewVector3(x, y, z))
	require.NoError(t, err)
	return id
}

func TestNew(t *testing.T) {
	a := newApp(t)
	assert.Equal(t, app.ToolSelect, a.Tool())
	assert.Equal(t, app.PlaneXZ, a.ConstructionPlane())
	assert.True(t, a.ShowLabels())
	assert.False(t, a.CalculatorOpen())
	assert.True(t, a.Snapshot().IsEmpty())
}

func TestSetTool(t *testing.T) {
	a := newApp(t)
	p := placePoint(t, a, 0, 0, 0)
	a.Select(p)
	a.ToggleCalculator()
	a.SetMeasurementMode(measurement.ModeDistance)

	a.SetTool(app.ToolLine)
	assert.Equal(t, app.ToolLine, a.Tool())
	assert.Empty(t, a.Selected())
	assert.False(t, a.CalculatorOpen())
	assert.Equal(t, measurement.ModeNone, a.MeasurementMode())
}

func TestPickConstructsLine(t *testing.T) {
	a := newApp(t)
	p1 := placePoint(t, a, 0, 0, 0)
	p2 := placePoint(t, a, 3, 4, 0)
	a.SetTool(app.ToolLine)

	created, err := a.Pick(p1)
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Equal(t, []scene.ID{p1}, a.PendingPoints())

	created, err = a.Pick(p2)
	require.NoError(t, err)
	require.NotEmpty(t, created)
	e, ok := a.Get(created)
	require.True(t, ok)
	assert.Equal(t, scene.Line{StartPointID: p1, EndPointID: p2}, e.Shape)
	assert.Empty(t, a.PendingPoints())
}

func TestPickSelects(t *testing.T) {
	a := newApp(t)
	id, err := a.PlaceSolid(scene.KindSphere, geometry.Vector3{})
	require.NoError(t, err)

	_, err = a.Pick(id)
	require.NoError(t, err)
	assert.Equal(t, id, a.Selected())

	a.ClickEmpty()
	assert.Empty(t, a.Selected())

	_, err = a.Pick("missing")
	assert.ErrorIs(t, err, scene.ErrNotFound)
}

func TestCalculator(t *testing.T) {
	a := newApp(t)
	p1 := placePoint(t, a, 0, 0, 0)
	p2 := placePoint(t, a, 3, 4, 0)
	sphere, err := a.PlaceSolid(scene.KindSphere, geometry.Vector3{})
	require.NoError(t, err)

	a.SetTool(app.ToolPoint)
	a.ToggleCalculator()
	assert.True(t, a.CalculatorOpen())
	assert.Equal(t, app.ToolSelect, a.Tool())

	a.SetMeasurementMode(measurement.ModeDistance)
	_, err = a.Pick(p1)
	require.NoError(t, err)
	_, err = a.Pick(p2)
	require.NoError(t, err)
	assert.Equal(t, "Distance: 5.000", a.ResultString())
	assert.Equal(t, []scene.ID{p1, p2}, a.MeasurementInputs())

	_, err = a.Pick(sphere)
	require.NoError(t, err)
	assert.Equal(t, scene.ID(""), a.Selected(), "an open calculator ignores entities its mode does not take")
	assert.Equal(t, []scene.ID{p1, p2}, a.MeasurementInputs())
	assert.Equal(t, "Distance: 5.000", a.ResultString())

	a.ClearMeasurement()
	assert.Empty(t, a.ResultString())
	assert.Equal(t, measurement.ModeDistance, a.MeasurementMode())

	a.ToggleCalculator()
	assert.False(t, a.CalculatorOpen())
	assert.Equal(t, measurement.ModeNone, a.MeasurementMode())
}

func TestPlaceSolidDefaults(t *testing.T) {
	a := newApp(t)
	pos := geometry.NewVector3(1, 0, 2)

	id, err := a.PlaceSolid(scene.KindCylinder, pos)
	require.NoError(t, err)
	e, _ := a.Get(id)
	assert.Equal(t, scene.Cylinder{Position: pos, Radius: 0.5, Height: 2}, e.Shape)

	id, err = a.PlaceSolid(scene.KindBox, pos)
	require.NoError(t, err)
	e, _ = a.Get(id)
	assert.Equal(t, scene.Box{Position: pos, Size: geometry.NewVector3(1, 1, 1)}, e.Shape)

	_, err = a.PlaceSolid(scene.KindLine, pos)
	assert.ErrorIs(t, err, scene.ErrKindMismatch)
}

func TestClick(t *testing.T) {
	a := newApp(t)
	down := geometry.NewVector3(0, -1, 0)

	id, err := a.Click(geometry.NewVector3(2, 10, 3), down)
	require.NoError(t, err)
	assert.Empty(t, id, "select tool places nothing")

	a.SetTool(app.ToolSphere)
	id, err = a.Click(geometry.NewVector3(2, 10, 3), down)
	require.NoError(t, err)
	e, ok := a.Get(id)
	require.True(t, ok)
	assert.Equal(t, scene.Sphere{Position: geometry.NewVector3(2, 0, 3), Radius: 1}, e.Shape)

	id, err = a.Click(geometry.NewVector3(0, 10, 0), geometry.NewVector3(1, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, id, "parallel ray misses the plane")
}

func TestUndoResetsSessions(t *testing.T) {
	a := newApp(t)
	p1 := placePoint(t, a, 0, 0, 0)
	placePoint(t, a, 1, 0, 0)
	a.SetTool(app.ToolPlane)
	_, err := a.Pick(p1)
	require.NoError(t, err)

	assert.True(t, a.Undo())
	assert.Empty(t, a.PendingPoints())
	assert.True(t, a.CanRedo())
	assert.True(t, a.Redo())
	assert.False(t, a.Redo())
}

func TestDeleteSelected(t *testing.T) {
	a := newApp(t)
	p1 := placePoint(t, a, 0, 0, 0)
	p2 := placePoint(t, a, 1, 0, 0)
	a.SetTool(app.ToolLine)
	_, err := a.Pick(p1)
	require.NoError(t, err)
	line, err := a.Pick(p2)
	require.NoError(t, err)

	a.SetTool(app.ToolSelect)
	removed, err := a.DeleteSelected()
	require.NoError(t, err)
	assert.Empty(t, removed)

	a.Select(p1)
	removed, err = a.DeleteSelected()
	require.NoError(t, err)
	assert.Equal(t, []scene.ID{p1, line}, removed)
	assert.Empty(t, a.Selected())
}

func TestSaveAndOpenProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.trix3d")

	a := newApp(t)
	assert.ErrorIs(t, a.SaveProject(path), app.ErrEmptyScene)

	placePoint(t, a, 1, 2, 3)
	_, err := a.PlaceSolid(scene.KindBox, geometry.Vector3{})
	require.NoError(t, err)
	require.NoError(t, a.SaveProject(path))
	assert.Equal(t, path, a.Path())

	b := newApp(t)
	require.NoError(t, b.OpenProject(path))
	assert.Equal(t, a.Snapshot(), b.Snapshot())
	assert.False(t, b.CanUndo())

	changed, err := b.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
	changed, err = b.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, b.Snapshot().IsEmpty())
}

func TestOpenProjectKeepsSceneOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.trix3d")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": "x"}`), 0644))

	a := newApp(t)
	placePoint(t, a, 0, 0, 0)
	err := a.OpenProject(path)
	require.Error(t, err)
	assert.Equal(t, 1, a.Snapshot().Len())
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.trix3d")
	a := newApp(t)
	assert.Error(t, a.Watch(context.Background(), nil))

	placePoint(t, a, 0, 0, 0)
	require.NoError(t, a.SaveProject(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloaded := make(chan error, 4)
	require.NoError(t, a.Watch(ctx, func(err error) { reloaded <- err }))

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
	select {
	case err := <-reloaded:
		require.NoError(t, err)
		assert.True(t, a.Snapshot().IsEmpty())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestParse(t *testing.T) {
	tool, err := app.ParseTool("cylinder")
	require.NoError(t, err)
	assert.Equal(t, app.ToolCylinder, tool)
	_, err = app.ParseTool("lasso")
	assert.Error(t, err)

	plane, err := app.ParseConstructionPlane("yz")
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(1, 0, 0), plane.Normal())
	_, err = app.ParseConstructionPlane("zz")
	assert.Error(t, err)
}

func TestIntersect(t *testing.T) {
	p, ok := app.PlaneXY.Intersect(geometry.NewVector3(1, 2, 5), geometry.NewVector3(0, 0, -2))
	require.True(t, ok)
	assert.Equal(t, geometry.NewVector3(1, 2, 0), p)

	_, ok = app.PlaneXY.Intersect(geometry.NewVector3(1, 2, 5), geometry.NewVector3(0, 0, 1))
	assert.False(t, ok, "ray points away")
}
