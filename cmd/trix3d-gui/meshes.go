package main

import (
	"log/slog"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
	"github.com/philipparndt/trix3d/pkg/tessellate"
)

// meshCache keeps solid meshes between refreshes. A solid is tessellated
// again only when its entity changed. Planes follow their points and are
// rebuilt every time.
type meshCache struct {
	cells  int
	solids map[scene.ID]cachedMesh
}

type cachedMesh struct {
	entity    scene.Entity
	triangles []geometry.Triangle
}

func newMeshCache(cells int) *meshCache {
	if cells <= 0 {
		cells = tessellate.DefaultCells
	}
	return &meshCache{cells: cells, solids: make(map[scene.ID]cachedMesh)}
}

// parts returns the meshes of all planes and solids in scene order.
// Entities that fail to tessellate are logged and left out.
func (c *meshCache) parts(snap scene.Snapshot) []tessellate.Part {
	var parts []tessellate.Part
	seen := make(map[scene.ID]bool)

	for e := range snap.All() {
		kind := e.Kind()
		if kind != scene.KindPlane && !kind.IsSolid() {
			continue
		}
		seen[e.ID] = true

		if cached, ok := c.solids[e.ID]; ok && cached.entity == e {
			parts = append(parts, tessellate.Part{Entity: e, Triangles: cached.triangles})
			continue
		}
		triangles, err := tessellate.Entity(snap, e, c.cells)
		if err != nil {
			slog.Warn("gui: cannot tessellate", "entity", e.ID, "error", err)
			continue
		}
		if kind.IsSolid() {
			c.solids[e.ID] = cachedMesh{entity: e, triangles: triangles}
		}
		parts = append(parts, tessellate.Part{Entity: e, Triangles: triangles})
	}

	for id := range c.solids {
		if !seen[id] {
			delete(c.solids, id)
		}
	}
	return parts
}
