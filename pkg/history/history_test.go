package history_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/history"
	"github.com/philipparndt/trix3d/pkg/scene"
)

func newManager() *history.Manager {
	return history.New(
		scene.WithIDGenerator(&scene.SequenceGenerator{}),
		scene.WithColorGenerator(&scene.PaletteColors{}),
	)
}

func addPoint(t *testing.T, m *history.Manager, x, y, z float64) scene.ID {
	t.Helper()
	id, err := m.Add(scene.Point{Position: geometry.NewVector3(x, y, z)})
	require.NoError(t, err)
	return id
}

func TestUndoRedoIsInverse(t *testing.T) {
	m := newManager()
	addPoint(t, m, 0, 0, 0)
	before := m.Snapshot()

	id := addPoint(t, m, 1, 0, 0)
	after := m.Snapshot()
	require.Equal(t, 2, m.PastLen())

	require.True(t, m.Undo())
	assert.Equal(t, before, m.Snapshot())
	assert.Equal(t, 1, m.FutureLen())
	_, ok := m.Get(id)
	assert.False(t, ok)

	require.True(t, m.Redo())
	assert.Equal(t, after, m.Snapshot())
	assert.False(t, m.CanRedo())
}

func TestUndoRedoInverseLaw(t *testing.T) {
	m := newManager()
	snaps := []scene.Snapshot{m.Snapshot()}
	record := func(err error) {
		t.Helper()
		require.NoError(t, err)
		snaps = append(snaps, m.Snapshot())
	}

	p1 := addPoint(t, m, 0, 0, 0)
	snaps = append(snaps, m.Snapshot())
	p2 := addPoint(t, m, 1, 0, 0)
	snaps = append(snaps, m.Snapshot())
	p3 := addPoint(t, m, 0, 1, 0)
	snaps = append(snaps, m.Snapshot())
	_, err := m.Add(scene.Line{StartPointID: p1, EndPointID: p2})
	record(err)
	_, err = m.Add(scene.Plane{PointIDs: [3]scene.ID{p1, p2, p3}})
	record(err)
	sphere, err := m.Add(scene.Sphere{Radius: 1})
	record(err)
	_, err = m.Update(p2, scene.Patch{}.WithPosition(geometry.NewVector3(2, 0, 0)).WithName("Far"))
	record(err)
	_, err = m.Update(sphere, scene.Patch{}.WithRadius(3))
	record(err)
	held := snaps[len(snaps)-1]
	frozen := append([]scene.Entity(nil), held.Entities()...)
	_, err = m.Remove(p1)
	record(err)
	_, err = m.Update(p3, scene.Patch{}.WithColor("#123456"))
	record(err)

	n := len(snaps) - 1
	require.Equal(t, n, m.PastLen())

	for k := 1; k <= n; k++ {
		for i := 1; i <= k; i++ {
			require.True(t, m.Undo(), "k=%d undo %d", k, i)
			snap := m.Snapshot()
			assert.Equal(t, snaps[n-i], snap, "k=%d undo %d", k, i)
			assert.NoError(t, scene.Errors(scene.Validate(snap)), "k=%d undo %d", k, i)
		}
		for i := 1; i <= k; i++ {
			require.True(t, m.Redo(), "k=%d redo %d", k, i)
			assert.NoError(t, scene.Errors(scene.Validate(m.Snapshot())), "k=%d redo %d", k, i)
		}
		assert.Equal(t, snaps[n], m.Snapshot(), "k=%d", k)
		assert.False(t, m.CanRedo())
	}

	assert.Equal(t, frozen, held.Entities(), "held snapshot is not mutated")
}

func TestUndoRedoOnEmptyStacks(t *testing.T) {
	m := newManager()
	assert.False(t, m.Undo())
	assert.False(t, m.Redo())
	assert.True(t, m.Snapshot().IsEmpty())
}

func TestCommitClearsFuture(t *testing.T) {
	m := newManager()
	addPoint(t, m, 0, 0, 0)
	addPoint(t, m, 1, 0, 0)
	require.True(t, m.Undo())
	require.True(t, m.CanRedo())

	addPoint(t, m, 2, 0, 0)
	assert.False(t, m.CanRedo())
	assert.Equal(t, 2, m.PastLen())
}

func TestNoOpUpdateRecordsNothing(t *testing.T) {
	m := newManager()
	id := addPoint(t, m, 1, 2, 3)
	require.Equal(t, 1, m.PastLen())

	changed, err := m.Update(id, scene.Patch{}.WithPosition(geometry.NewVector3(1, 2, 3)))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, m.PastLen())

	changed, err = m.Update(id, scene.Patch{}.WithName("Origin"))
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 2, m.PastLen())
}

func TestFailedOperationsRecordNothing(t *testing.T) {
	m := newManager()
	a := addPoint(t, m, 0, 0, 0)

	_, err := m.Add(scene.Line{StartPointID: a, EndPointID: "ghost"})
	assert.ErrorIs(t, err, scene.ErrDanglingReference)
	_, err = m.Remove("ghost")
	assert.ErrorIs(t, err, scene.ErrNotFound)
	_, err = m.Update("ghost", scene.Patch{}.WithName("x"))
	assert.ErrorIs(t, err, scene.ErrNotFound)

	assert.Equal(t, 1, m.PastLen())
}

func TestRemoveCascadeIsUndoable(t *testing.T) {
	m := newManager()
	p1 := addPoint(t, m, 0, 0, 0)
	p2 := addPoint(t, m, 1, 0, 0)
	p3 := addPoint(t, m, 0, 1, 0)
	line, err := m.Add(scene.Line{StartPointID: p1, EndPointID: p2})
	require.NoError(t, err)
	_, err = m.Add(scene.Plane{PointIDs: [3]scene.ID{p1, p2, p3}})
	require.NoError(t, err)
	sphere, err := m.Add(scene.Sphere{Radius: 1})
	require.NoError(t, err)
	full := m.Snapshot()

	m.Select(line)
	removed, err := m.Remove(p1)
	require.NoError(t, err)
	assert.Len(t, removed, 3)
	assert.Equal(t, scene.ID(""), m.Selected(), "selection of a cascaded line is cleared")
	assert.Equal(t, 3, m.Snapshot().Len())
	_, ok := m.Get(sphere)
	assert.True(t, ok)

	require.True(t, m.Undo())
	assert.Equal(t, full, m.Snapshot())
}

func TestRemoveKeepsUnrelatedSelection(t *testing.T) {
	m := newManager()
	a := addPoint(t, m, 0, 0, 0)
	b := addPoint(t, m, 1, 0, 0)
	m.Select(b)

	_, err := m.Remove(a)
	require.NoError(t, err)
	assert.Equal(t, b, m.Selected())
}

func TestUndoClearsSelection(t *testing.T) {
	m := newManager()
	a := addPoint(t, m, 0, 0, 0)
	addPoint(t, m, 1, 0, 0)
	m.Select(a)

	require.True(t, m.Undo())
	assert.Equal(t, scene.ID(""), m.Selected())
}

func TestSelectUnknownClears(t *testing.T) {
	m := newManager()
	a := addPoint(t, m, 0, 0, 0)
	m.Select(a)
	m.Select("ghost")
	assert.Equal(t, scene.ID(""), m.Selected())
}

func TestLoadProject(t *testing.T) {
	entities := []scene.Entity{
		{ID: "a", Name: "A", Color: "#ff0000", Shape: scene.Point{}},
		{ID: "b", Name: "B", Color: "#00ff00", Shape: scene.Point{Position: geometry.NewVector3(1, 0, 0)}},
		{ID: "l", Name: "L", Color: "#0000ff", Shape: scene.Line{StartPointID: "a", EndPointID: "b"}},
	}

	t.Run("resets history", func(t *testing.T) {
		m := newManager()
		addPoint(t, m, 5, 5, 5)
		addPoint(t, m, 6, 6, 6)
		require.True(t, m.Undo())

		require.NoError(t, m.LoadProject(entities))
		assert.Equal(t, 3, m.Snapshot().Len())
		assert.False(t, m.CanUndo())
		assert.False(t, m.CanRedo())
		assert.False(t, m.Undo())
	})
	t.Run("rejects dangling references as a whole", func(t *testing.T) {
		m := newManager()
		addPoint(t, m, 5, 5, 5)
		before := m.Snapshot()

		err := m.LoadProject(entities[1:])
		assert.ErrorIs(t, err, history.ErrMalformedProject)
		assert.ErrorIs(t, err, scene.ErrDanglingReference)
		assert.Equal(t, before, m.Snapshot())
		assert.True(t, m.CanUndo())
	})
	t.Run("later adds keep numbering by kind", func(t *testing.T) {
		m := newManager()
		require.NoError(t, m.LoadProject(entities))
		id := addPoint(t, m, 2, 0, 0)
		e, _ := m.Get(id)
		assert.Equal(t, "Point 3", e.Name)
	})
}

func TestOnChange(t *testing.T) {
	m := newManager()
	var sizes []int
	m.OnChange(func(s scene.Snapshot) { sizes = append(sizes, s.Len()) })

	addPoint(t, m, 0, 0, 0)
	addPoint(t, m, 1, 0, 0)
	m.Undo()
	m.Redo()
	assert.Equal(t, []int{1, 2, 1, 2}, sizes)
}
