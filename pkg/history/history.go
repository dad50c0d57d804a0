// Package history records scene snapshots around every mutation so that
// changes can be undone and redone.
package history

import (
	"fmt"
	"log/slog"

	"github.com/ErikKalkoken/go-set"

	"github.com/philipparndt/trix3d/pkg/scene"
)

// ErrMalformedProject is returned when a loaded entity list fails validation.
var ErrMalformedProject = scene.ErrMalformedProject

// Manager wraps a scene.Store with a linear undo/redo history and the
// current selection. Past is ordered oldest first, future nearest first.
// Manager is not safe for concurrent use.
type Manager struct {
	store     *scene.Store
	past      []scene.Snapshot
	future    []scene.Snapshot
	selected  scene.ID
	listeners []func(scene.Snapshot)
}

// New creates a manager over an empty store.
func New(opts ...scene.Option) *Manager {
	return &Manager{store: scene.NewStore(opts...)}
}

// Snapshot returns the present scene.
func (m *Manager) Snapshot() scene.Snapshot {
	return m.store.Snapshot()
}

// Get returns an entity of the present scene.
func (m *Manager) Get(id scene.ID) (scene.Entity, bool) {
	return m.store.Get(id)
}

// OnChange registers fn to be called with the new present after every
// commit, undo, redo or load.
func (m *Manager) OnChange(fn func(scene.Snapshot)) {
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify() {
	snap := m.store.Snapshot()
	for _, fn := range m.listeners {
		fn(snap)
	}
}

// commit records before as the undo point for the change already applied to the store.
func (m *Manager) commit(op string, before scene.Snapshot) {
	m.past = append(m.past, before)
	m.future = nil
	slog.Debug("history: commit", "op", op, "past", len(m.past))
	m.notify()
}

// Add creates an entity and records the change.
func (m *Manager) Add(shape scene.Shape) (scene.ID, error) {
	before := m.store.Snapshot()
	id, err := m.store.Add(shape)
	if err != nil {
		return "", err
	}
	m.commit("add", before)
	return id, nil
}

// Update merges a patch into an entity. A patch that changes nothing
// leaves the history untouched and reports false.
func (m *Manager) Update(id scene.ID, patch scene.Patch) (bool, error) {
	before := m.store.Snapshot()
	changed, err := m.store.Update(id, patch)
	if err != nil || !changed {
		return false, err
	}
	m.commit("update", before)
	return true, nil
}

// Remove deletes an entity together with its dependent lines and planes.
// The selection is cleared when it pointed at any removed entity.
func (m *Manager) Remove(id scene.ID) ([]scene.ID, error) {
	before := m.store.Snapshot()
	removed, err := m.store.Remove(id)
	if err != nil {
		return nil, err
	}
	if set.Of(removed...).Contains(m.selected) {
		m.selected = ""
	}
	m.commit("remove", before)
	return removed, nil
}

// Undo restores the previous snapshot. It reports false when there is
// nothing to undo.
func (m *Manager) Undo() bool {
	if len(m.past) == 0 {
		return false
	}
	prev := m.past[len(m.past)-1]
	m.past = m.past[:len(m.past)-1]
	m.future = append([]scene.Snapshot{m.store.Snapshot()}, m.future...)
	m.store.Replace(prev)
	m.selected = ""
	slog.Debug("history: undo", "past", len(m.past), "future", len(m.future))
	m.notify()
	return true
}

// Redo reapplies the most recently undone snapshot. It reports false when
// there is nothing to redo.
func (m *Manager) Redo() bool {
	if len(m.future) == 0 {
		return false
	}
	next := m.future[0]
	m.future = m.future[1:]
	m.past = append(m.past, m.store.Snapshot())
	m.store.Replace(next)
	m.selected = ""
	slog.Debug("history: redo", "past", len(m.past), "future", len(m.future))
	m.notify()
	return true
}

// LoadProject replaces the scene with entities and clears the history.
// Loading is not undoable. Entities that break referential integrity are
// rejected as a whole with ErrMalformedProject.
func (m *Manager) LoadProject(entities []scene.Entity) error {
	snap := scene.NewSnapshot(entities)
	if err := scene.Errors(scene.Validate(snap)); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedProject, err)
	}
	m.store.Replace(snap)
	m.past = nil
	m.future = nil
	m.selected = ""
	slog.Debug("history: loaded project", "entities", snap.Len())
	m.notify()
	return nil
}

// Selected returns the selected entity id, or "" when nothing is selected.
func (m *Manager) Selected() scene.ID {
	return m.selected
}

// Select marks an entity as selected. Unknown ids clear the selection.
func (m *Manager) Select(id scene.ID) {
	if _, ok := m.store.Get(id); !ok {
		id = ""
	}
	m.selected = id
}

// CanUndo reports whether Undo would change the scene.
func (m *Manager) CanUndo() bool { return len(m.past) > 0 }

// CanRedo reports whether Redo would change the scene.
func (m *Manager) CanRedo() bool { return len(m.future) > 0 }

// PastLen returns the number of undo steps.
func (m *Manager) PastLen() int { return len(m.past) }

// FutureLen returns the number of redo steps.
func (m *Manager) FutureLen() int { return len(m.future) }
