package scene

import (
	"fmt"
	"iter"

	"github.com/philipparndt/trix3d/pkg/geometry"
)

// Snapshot is an immutable, ordered view of the scene. Entities keep their
// insertion order. The zero value is an empty scene.
type Snapshot struct {
	entities []Entity
}

// NewSnapshot copies entities into a snapshot.
func NewSnapshot(entities []Entity) Snapshot {
	if len(entities) == 0 {
		return Snapshot{}
	}
	return Snapshot{entities: append([]Entity(nil), entities...)}
}

// Len returns the number of entities.
func (s Snapshot) Len() int {
	return len(s.entities)
}

// IsEmpty reports whether the scene has no entities.
func (s Snapshot) IsEmpty() bool {
	return len(s.entities) == 0
}

// At returns the i-th entity.
func (s Snapshot) At(i int) Entity {
	return s.entities[i]
}

// All iterates the entities in order.
func (s Snapshot) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range s.entities {
			if !yield(e) {
				return
			}
		}
	}
}

// Entities returns a copy of the entity list.
func (s Snapshot) Entities() []Entity {
	return append([]Entity(nil), s.entities...)
}

func (s Snapshot) index(id ID) int {
	for i, e := range s.entities {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the entity with the given id.
func (s Snapshot) Get(id ID) (Entity, bool) {
	if i := s.index(id); i >= 0 {
		return s.entities[i], true
	}
	return Entity{}, false
}

// FindByName returns the first entity with the given name.
func (s Snapshot) FindByName(name string) (Entity, bool) {
	for _, e := range s.entities {
		if e.Name == name {
			return e, true
		}
	}
	return Entity{}, false
}

// OfKind returns the entities of one kind in order.
func (s Snapshot) OfKind(kind Kind) []Entity {
	var result []Entity
	for _, e := range s.entities {
		if e.Kind() == kind {
			result = append(result, e)
		}
	}
	return result
}

// CountKind returns the number of entities of one kind.
func (s Snapshot) CountKind(kind Kind) int {
	n := 0
	for _, e := range s.entities {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

// Dependents returns the ids of lines and planes that reference the point id.
func (s Snapshot) Dependents(id ID) []ID {
	var result []ID
	for _, e := range s.entities {
		if e.Refers(id) {
			result = append(result, e.ID)
		}
	}
	return result
}

// PointPosition resolves a point id to its position.
func (s Snapshot) PointPosition(id ID) (geometry.Vector3, error) {
	e, ok := s.Get(id)
	if !ok {
		return geometry.Vector3{}, fmt.Errorf("point %s: %w", id, ErrDanglingReference)
	}
	p, ok := e.Shape.(Point)
	if !ok {
		return geometry.Vector3{}, fmt.Errorf("%s is a %s, not a point: %w", id, e.Kind(), ErrDanglingReference)
	}
	return p.Position, nil
}

// Points resolves point ids to positions in the given order.
func (s Snapshot) Points(ids ...ID) ([]geometry.Vector3, error) {
	result := make([]geometry.Vector3, 0, len(ids))
	for _, id := range ids {
		p, err := s.PointPosition(id)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

// LineSegment returns the endpoints of a line entity.
func (s Snapshot) LineSegment(id ID) (start, end geometry.Vector3, err error) {
	e, ok := s.Get(id)
	if !ok {
		return start, end, fmt.Errorf("line %s: %w", id, ErrNotFound)
	}
	l, ok := e.Shape.(Line)
	if !ok {
		return start, end, fmt.Errorf("%s is a %s, not a line", id, e.Kind())
	}
	pts, err := s.Points(l.StartPointID, l.EndPointID)
	if err != nil {
		return start, end, err
	}
	return pts[0], pts[1], nil
}

// PlaneTriangle returns the triangle spanned by a plane entity.
func (s Snapshot) PlaneTriangle(id ID) (geometry.Triangle, error) {
	e, ok := s.Get(id)
	if !ok {
		return geometry.Triangle{}, fmt.Errorf("plane %s: %w", id, ErrNotFound)
	}
	pl, ok := e.Shape.(Plane)
	if !ok {
		return geometry.Triangle{}, fmt.Errorf("%s is a %s, not a plane", id, e.Kind())
	}
	pts, err := s.Points(pl.PointIDs[:]...)
	if err != nil {
		return geometry.Triangle{}, err
	}
	return geometry.TriangleFromPoints(pts[0], pts[1], pts[2]), nil
}

// Bounds returns the bounding box of all positioned entities. Solids
// contribute their full extent.
func (s Snapshot) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, e := range s.entities {
		switch sh := e.Shape.(type) {
		case Point:
			bbox.Extend(sh.Position)
		case Sphere:
			r := geometry.NewVector3(sh.Radius, sh.Radius, sh.Radius)
			bbox.Extend(sh.Position.Sub(r))
			bbox.Extend(sh.Position.Add(r))
		case Cylinder:
			bbox.Extend(sh.Position.Sub(geometry.NewVector3(sh.Radius, 0, sh.Radius)))
			bbox.Extend(sh.Position.Add(geometry.NewVector3(sh.Radius, sh.Height, sh.Radius)))
		case Box:
			half := sh.Size.Mul(0.5)
			bbox.Extend(sh.Position.Sub(half))
			bbox.Extend(sh.Position.Add(half))
		}
	}
	return bbox
}

// with returns a new snapshot with the entity appended.
func (s Snapshot) with(e Entity) Snapshot {
	entities := make([]Entity, 0, len(s.entities)+1)
	entities = append(entities, s.entities...)
	return Snapshot{entities: append(entities, e)}
}

// replaced returns a new snapshot with the entity at i swapped for e.
func (s Snapshot) replaced(i int, e Entity) Snapshot {
	entities := s.Entities()
	entities[i] = e
	return Snapshot{entities: entities}
}

// without returns a new snapshot minus the entities drop selects.
func (s Snapshot) without(drop func(Entity) bool) Snapshot {
	entities := make([]Entity, 0, len(s.entities))
	for _, e := range s.entities {
		if !drop(e) {
			entities = append(entities, e)
		}
	}
	return Snapshot{entities: entities}
}
