// Package scene holds the construction scene: entities, immutable snapshots
// and the store that mutates them while keeping point references intact.
package scene

import (
	"fmt"
	"strings"

	"github.com/philipparndt/trix3d/pkg/geometry"
)

// ID identifies an entity for its whole lifetime.
type ID string

// Kind enumerates the entity variants.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindPlane
	KindSphere
	KindCylinder
	KindBox
)

// Kinds lists every kind in declaration order.
var Kinds = []Kind{KindPoint, KindLine, KindPlane, KindSphere, KindCylinder, KindBox}

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindPlane:
		return "plane"
	case KindSphere:
		return "sphere"
	case KindCylinder:
		return "cylinder"
	case KindBox:
		return "box"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Title returns the capitalised kind used in default names.
func (k Kind) Title() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// IsSolid reports whether the kind encloses a volume.
func (k Kind) IsSolid() bool {
	return k == KindSphere || k == KindCylinder || k == KindBox
}

// ParseKind maps the lower-case kind name back to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown entity type %q", s)
}

// Shape is the kind-specific payload of an entity. It is implemented by
// Point, Line, Plane, Sphere, Cylinder and Box only.
type Shape interface {
	Kind() Kind
	shape()
}

// Point is a location in space.
type Point struct {
	Position geometry.Vector3
}

// Line is a segment between two existing points.
type Line struct {
	StartPointID ID
	EndPointID   ID
}

// Plane is spanned by three existing points. The order determines the normal.
type Plane struct {
	PointIDs [3]ID
}

// Sphere is centered at Position.
type Sphere struct {
	Position geometry.Vector3
	Radius   float64
}

// Cylinder stands on its base center Position along +Y.
type Cylinder struct {
	Position geometry.Vector3
	Radius   float64
	Height   float64
}

// Box is centered at Position with Size as width, height and depth.
type Box struct {
	Position geometry.Vector3
	Size     geometry.Vector3
}

func (Point) Kind() Kind    { return KindPoint }
func (Line) Kind() Kind     { return KindLine }
func (Plane) Kind() Kind    { return KindPlane }
func (Sphere) Kind() Kind   { return KindSphere }
func (Cylinder) Kind() Kind { return KindCylinder }
func (Box) Kind() Kind      { return KindBox }

func (Point) shape()    {}
func (Line) shape()     {}
func (Plane) shape()    {}
func (Sphere) shape()   {}
func (Cylinder) shape() {}
func (Box) shape()      {}

// Entity is one object of the scene.
type Entity struct {
	ID    ID
	Name  string
	Color string
	Shape Shape
}

// Kind returns the kind of the entity's shape.
func (e Entity) Kind() Kind {
	return e.Shape.Kind()
}

// References returns the point ids the entity depends on, in order.
func (e Entity) References() []ID {
	switch s := e.Shape.(type) {
	case Line:
		return []ID{s.StartPointID, s.EndPointID}
	case Plane:
		return s.PointIDs[:]
	default:
		return nil
	}
}

// Refers reports whether the entity depends on the point id.
func (e Entity) Refers(id ID) bool {
	for _, ref := range e.References() {
		if ref == id {
			return true
		}
	}
	return false
}

// Position returns the anchor position of point and solid entities.
func (e Entity) Position() (geometry.Vector3, bool) {
	switch s := e.Shape.(type) {
	case Point:
		return s.Position, true
	case Sphere:
		return s.Position, true
	case Cylinder:
		return s.Position, true
	case Box:
		return s.Position, true
	default:
		return geometry.Vector3{}, false
	}
}

// SolidVolume returns the enclosed volume of spheres, cylinders and boxes.
func SolidVolume(e Entity) (float64, bool) {
	switch s := e.Shape.(type) {
	case Sphere:
		return geometry.SphereVolume(s.Radius), true
	case Cylinder:
		return geometry.CylinderVolume(s.Radius, s.Height), true
	case Box:
		return geometry.BoxVolume(s.Size), true
	default:
		return 0, false
	}
}

func (e Entity) String() string {
	return fmt.Sprintf("%s %q (%s)", e.Kind(), e.Name, e.ID)
}
