package main

import (
	"fmt"

	"github.com/philipparndt/trix3d/pkg/history"
	"github.com/philipparndt/trix3d/pkg/project"
	"github.com/philipparndt/trix3d/pkg/scene"
)

// loadScene reads and validates a project file.
func loadScene(path string) (scene.Snapshot, error) {
	entities, err := project.Load(path)
	if err != nil {
		return scene.Snapshot{}, err
	}
	h := history.New()
	if err := h.LoadProject(entities); err != nil {
		return scene.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return h.Snapshot(), nil
}

// resolveRefs maps entity ids or names to ids. Ids win over names.
func resolveRefs(snap scene.Snapshot, refs []string) ([]scene.ID, error) {
	ids := make([]scene.ID, 0, len(refs))
	for _, ref := range refs {
		if _, ok := snap.Get(scene.ID(ref)); ok {
			ids = append(ids, scene.ID(ref))
			continue
		}
		e, ok := snap.FindByName(ref)
		if !ok {
			return nil, fmt.Errorf("no entity with id or name %q", ref)
		}
		ids = append(ids, e.ID)
	}
	return ids, nil
}
