package app

import (
	"fmt"
	"math"

	"github.com/philipparndt/trix3d/internal/construction"
	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
	"github.com/philipparndt/trix3d/pkg/watcher"
)

// Tool is the active editor tool
type Tool int

const (
	ToolSelect Tool = iota
	ToolPoint
	ToolLine
	ToolPlane
	ToolSphere
	ToolCylinder
	ToolBox
)

// Tools lists the tools in toolbar order
var Tools = []Tool{ToolSelect, ToolPoint, ToolLine, ToolPlane, ToolSphere, ToolCylinder, ToolBox}

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolPoint:
		return "point"
	case ToolLine:
		return "line"
	case ToolPlane:
		return "plane"
	case ToolSphere:
		return "sphere"
	case ToolCylinder:
		return "cylinder"
	case ToolBox:
		return "box"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// ParseTool accepts a tool name
func ParseTool(s string) (Tool, error) {
	for _, t := range Tools {
		if t.String() == s {
			return t, nil
		}
	}
	return ToolSelect, fmt.Errorf("unknown tool %q", s)
}

// construction maps the tool to the point-collecting session tool
func (t Tool) construction() construction.Tool {
	switch t {
	case ToolLine:
		return construction.ToolLine
	case ToolPlane:
		return construction.ToolPlane
	default:
		return construction.ToolNone
	}
}

// solid returns the entity kind placed by a solid tool
func (t Tool) solid() (scene.Kind, bool) {
	switch t {
	case ToolSphere:
		return scene.KindSphere, true
	case ToolCylinder:
		return scene.KindCylinder, true
	case ToolBox:
		return scene.KindBox, true
	default:
		return 0, false
	}
}

// ConstructionPlane is the plane through the origin that clicks land on
type ConstructionPlane string

const (
	PlaneXZ ConstructionPlane = "xz"
	PlaneXY ConstructionPlane = "xy"
	PlaneYZ ConstructionPlane = "yz"
)

// ParseConstructionPlane accepts xz, xy or yz
func ParseConstructionPlane(s string) (ConstructionPlane, error) {
	switch p := ConstructionPlane(s); p {
	case PlaneXZ, PlaneXY, PlaneYZ:
		return p, nil
	}
	return PlaneXZ, fmt.Errorf("unknown construction plane %q", s)
}

// Normal returns the unit normal of the plane
func (p ConstructionPlane) Normal() geometry.Vector3 {
	switch p {
	case PlaneXY:
		return geometry.NewVector3(0, 0, 1)
	case PlaneYZ:
		return geometry.NewVector3(1, 0, 0)
	default:
		return geometry.NewVector3(0, 1, 0)
	}
}

// Intersect casts a ray onto the plane. It fails for rays parallel to the
// plane or pointing away from it.
func (p ConstructionPlane) Intersect(origin, dir geometry.Vector3) (geometry.Vector3, bool) {
	n := p.Normal()
	denom := n.Dot(dir)
	if math.Abs(denom) < 1e-12 {
		return geometry.Vector3{}, false
	}
	t := -n.Dot(origin) / denom
	if t < 0 {
		return geometry.Vector3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}

// ViewSettings holds display settings
type ViewSettings struct {
	tool              Tool
	constructionPlane ConstructionPlane
	showLabels        bool
	calculatorOpen    bool
}

// SolidDefaults sizes newly placed solids
type SolidDefaults struct {
	SphereRadius   float64
	CylinderRadius float64
	CylinderHeight float64
	BoxSize        geometry.Vector3
}

// FileWatchState tracks the open project file
type FileWatchState struct {
	path    string
	content []byte // last loaded or saved bytes
	watcher *watcher.FileWatcher
}
