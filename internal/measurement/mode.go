package measurement

import (
	"fmt"

	"github.com/philipparndt/trix3d/pkg/scene"
)

// Mode selects what the calculator measures.
type Mode string

const (
	ModeNone      Mode = ""
	ModeDistance  Mode = "distance-point-point"
	ModeAngle     Mode = "angle-line-line"
	ModePolygon   Mode = "area-polygon"
	ModePlaneArea Mode = "area-plane"
	ModeVolume    Mode = "volume-solid"
)

// Modes lists the selectable modes.
var Modes = []Mode{ModeDistance, ModeAngle, ModePolygon, ModePlaneArea, ModeVolume}

// ParseMode accepts a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("unknown measurement mode %q", s)
}

// Label is a short human name for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeDistance:
		return "Distance"
	case ModeAngle:
		return "Angle"
	case ModePolygon:
		return "Area"
	case ModePlaneArea:
		return "Plane area"
	case ModeVolume:
		return "Volume"
	default:
		return "None"
	}
}

// Instructions tells the user what to pick.
func (m Mode) Instructions() string {
	switch m {
	case ModeDistance:
		return "Select 2 points in the scene."
	case ModeAngle:
		return "Select 2 lines in the scene."
	case ModePolygon:
		return "Select points to form a shape (3+ for area, 4 for tetrahedron volume)."
	case ModePlaneArea:
		return "Select 1 plane."
	case ModeVolume:
		return "Select 1 solid (Sphere, Cylinder, or Box)."
	default:
		return "Select a calculation type."
	}
}

// Accepts reports whether picks of the kind feed this mode.
func (m Mode) Accepts(kind scene.Kind) bool {
	switch m {
	case ModeDistance, ModePolygon:
		return kind == scene.KindPoint
	case ModeAngle:
		return kind == scene.KindLine
	case ModePlaneArea:
		return kind == scene.KindPlane
	case ModeVolume:
		return kind.IsSolid()
	default:
		return false
	}
}
