package scene

import (
	"fmt"

	"github.com/philipparndt/trix3d/pkg/geometry"
)

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name         *string
	Color        *string
	Position     *geometry.Vector3
	StartPointID *ID
	EndPointID   *ID
	PointIDs     *[3]ID
	Radius       *float64
	Height       *float64
	Size         *geometry.Vector3
}

// WithName returns a copy of p that sets the name
func (p Patch) WithName(name string) Patch { p.Name = &name; return p }

// WithColor returns a copy of p that sets the color
func (p Patch) WithColor(color string) Patch { p.Color = &color; return p }

// WithPosition returns a copy of p that sets the position of a point or solid
func (p Patch) WithPosition(pos geometry.Vector3) Patch { p.Position = &pos; return p }

// WithStartPoint returns a copy of p that sets a line's start point
func (p Patch) WithStartPoint(id ID) Patch { p.StartPointID = &id; return p }

// WithEndPoint returns a copy of p that sets a line's end point
func (p Patch) WithEndPoint(id ID) Patch { p.EndPointID = &id; return p }

// WithPointIDs returns a copy of p that sets a plane's corner points
func (p Patch) WithPointIDs(ids [3]ID) Patch { p.PointIDs = &ids; return p }

// WithRadius returns a copy of p that sets a sphere or cylinder radius
func (p Patch) WithRadius(r float64) Patch { p.Radius = &r; return p }

// WithHeight returns a copy of p that sets a cylinder height
func (p Patch) WithHeight(h float64) Patch { p.Height = &h; return p }

// WithSize returns a copy of p that sets a box size
func (p Patch) WithSize(size geometry.Vector3) Patch { p.Size = &size; return p }

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// apply merges the patch into e. Fields foreign to the entity's kind fail
// with ErrKindMismatch.
func (p Patch) apply(e Entity) (Entity, error) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Color != nil {
		e.Color = *p.Color
	}

	mismatch := func(field string) error {
		return fmt.Errorf("%s has no %s: %w", e.Kind(), field, ErrKindMismatch)
	}
	geometric := p
	geometric.Name, geometric.Color = nil, nil

	switch s := e.Shape.(type) {
	case Point:
		if err := geometric.only(mismatch, "position"); err != nil {
			return e, err
		}
		if p.Position != nil {
			s.Position = *p.Position
		}
		e.Shape = s
	case Line:
		if err := geometric.only(mismatch, "startPointId", "endPointId"); err != nil {
			return e, err
		}
		if p.StartPointID != nil {
			s.StartPointID = *p.StartPointID
		}
		if p.EndPointID != nil {
			s.EndPointID = *p.EndPointID
		}
		e.Shape = s
	case Plane:
		if err := geometric.only(mismatch, "pointIds"); err != nil {
			return e, err
		}
		if p.PointIDs != nil {
			s.PointIDs = *p.PointIDs
		}
		e.Shape = s
	case Sphere:
		if err := geometric.only(mismatch, "position", "radius"); err != nil {
			return e, err
		}
		if p.Position != nil {
			s.Position = *p.Position
		}
		if p.Radius != nil {
			s.Radius = *p.Radius
		}
		e.Shape = s
	case Cylinder:
		if err := geometric.only(mismatch, "position", "radius", "height"); err != nil {
			return e, err
		}
		if p.Position != nil {
			s.Position = *p.Position
		}
		if p.Radius != nil {
			s.Radius = *p.Radius
		}
		if p.Height != nil {
			s.Height = *p.Height
		}
		e.Shape = s
	case Box:
		if err := geometric.only(mismatch, "position", "size"); err != nil {
			return e, err
		}
		if p.Position != nil {
			s.Position = *p.Position
		}
		if p.Size != nil {
			s.Size = *p.Size
		}
		e.Shape = s
	}
	return e, nil
}

// only fails for the first set field not named in allowed.
func (p Patch) only(mismatch func(string) error, allowed ...string) error {
	set := map[string]bool{
		"position":     p.Position != nil,
		"startPointId": p.StartPointID != nil,
		"endPointId":   p.EndPointID != nil,
		"pointIds":     p.PointIDs != nil,
		"radius":       p.Radius != nil,
		"height":       p.Height != nil,
		"size":         p.Size != nil,
	}
	for _, a := range allowed {
		delete(set, a)
	}
	for _, field := range []string{"position", "startPointId", "endPointId", "pointIds", "radius", "height", "size"} {
		if isSet, ok := set[field]; ok && isSet {
			return mismatch(field)
		}
	}
	return nil
}
