package scene

import (
	"fmt"
	"log/slog"
)

// Store owns the current snapshot and applies mutations to it. Every mutation
// publishes a new snapshot; previously returned snapshots never change.
// Store is not safe for concurrent use.
type Store struct {
	snap   Snapshot
	ids    IDGenerator
	colors ColorGenerator
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default uuid based generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

// WithColorGenerator replaces the default random colors.
func WithColorGenerator(g ColorGenerator) Option {
	return func(s *Store) { s.colors = g }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{ids: UUIDGenerator{}, colors: RandomColors{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current scene.
func (s *Store) Snapshot() Snapshot {
	return s.snap
}

// Get returns the entity with the given id.
func (s *Store) Get(id ID) (Entity, bool) {
	return s.snap.Get(id)
}

// Replace swaps the whole scene. Callers are responsible for integrity.
func (s *Store) Replace(snap Snapshot) {
	s.snap = snap
}

// Add inserts a new entity built from shape and returns its id. Referenced
// point ids must resolve to points in the current scene.
func (s *Store) Add(shape Shape) (ID, error) {
	if shape == nil {
		return "", fmt.Errorf("add: missing shape: %w", ErrInvalidValue)
	}
	if err := s.checkReferences(Entity{Shape: shape}); err != nil {
		return "", fmt.Errorf("add %s: %w", shape.Kind(), err)
	}

	kind := shape.Kind()
	id := s.ids.NextID(kind)
	for s.snap.index(id) >= 0 {
		id = s.ids.NextID(kind)
	}
	e := Entity{
		ID:    id,
		Name:  fmt.Sprintf("%s %d", kind.Title(), s.snap.CountKind(kind)+1),
		Color: s.colors.NextColor(),
		Shape: shape,
	}
	s.snap = s.snap.with(e)
	slog.Debug("scene: added entity", "id", e.ID, "kind", kind)
	return e.ID, nil
}

// Update merges patch into the entity. It reports false when the merged
// entity equals the current one, in which case nothing is published.
func (s *Store) Update(id ID, patch Patch) (bool, error) {
	i := s.snap.index(id)
	if i < 0 {
		return false, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	current := s.snap.entities[i]
	updated, err := patch.apply(current)
	if err != nil {
		return false, fmt.Errorf("update %s: %w", id, err)
	}
	if updated == current {
		return false, nil
	}
	if err := s.checkReferences(updated); err != nil {
		return false, fmt.Errorf("update %s: %w", id, err)
	}
	s.snap = s.snap.replaced(i, updated)
	return true, nil
}

// Remove deletes the entity and every line or plane that references it.
// It returns the removed ids, the requested one first.
func (s *Store) Remove(id ID) ([]ID, error) {
	if s.snap.index(id) < 0 {
		return nil, fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	removed := []ID{id}
	s.snap = s.snap.without(func(e Entity) bool {
		if e.ID == id {
			return true
		}
		if e.Refers(id) {
			removed = append(removed, e.ID)
			return true
		}
		return false
	})
	if len(removed) > 1 {
		slog.Debug("scene: cascaded removal", "id", id, "dependents", removed[1:])
	}
	return removed, nil
}

func (s *Store) checkReferences(e Entity) error {
	for _, ref := range e.References() {
		if _, err := s.snap.PointPosition(ref); err != nil {
			return err
		}
	}
	return nil
}
