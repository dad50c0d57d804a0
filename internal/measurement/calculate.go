package measurement

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
)

var (
	// ErrInvalidInput means the inputs do not (yet) satisfy the mode.
	ErrInvalidInput = errors.New("invalid measurement input")
	// ErrCalculationFailed wraps an unexpected fault during a calculation.
	ErrCalculationFailed = errors.New("calculation failed")
)

// Calculate evaluates mode over the entities identified by ids in snap.
// Inputs of the wrong kind or count yield ErrInvalidInput.
func Calculate(mode Mode, snap scene.Snapshot, ids []scene.ID) (Result, error) {
	entities := make([]scene.Entity, 0, len(ids))
	for _, id := range ids {
		e, ok := snap.Get(id)
		if !ok {
			return Result{}, fmt.Errorf("%s: %w", id, ErrInvalidInput)
		}
		if !mode.Accepts(e.Kind()) {
			return Result{}, fmt.Errorf("%s does not take a %s: %w", mode, e.Kind(), ErrInvalidInput)
		}
		entities = append(entities, e)
	}

	result := Result{Mode: mode}
	switch mode {
	case ModeDistance:
		if len(entities) != 2 {
			return Result{}, ErrInvalidInput
		}
		pts, err := snap.Points(ids...)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		result.Quantities = append(result.Quantities, distance(geometry.Distance(pts[0], pts[1])))

	case ModeAngle:
		if len(entities) != 2 {
			return Result{}, ErrInvalidInput
		}
		var dirs [2]geometry.Vector3
		for i, id := range ids {
			start, end, err := snap.LineSegment(id)
			if err != nil {
				return Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			dirs[i] = end.Sub(start)
		}
		rad := geometry.AngleBetweenDirections(dirs[0], dirs[1])
		result.Quantities = append(result.Quantities, angle(geometry.RadToDeg(rad)))

	case ModePolygon:
		if len(entities) < 2 {
			return Result{}, ErrInvalidInput
		}
		pts, err := snap.Points(ids...)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		result.Quantities = append(result.Quantities, perimeter(geometry.PolygonPerimeter(pts)))
		if len(pts) >= 3 {
			a, err := geometry.PolygonArea(pts)
			if err != nil {
				return Result{}, err
			}
			result.Quantities = append(result.Quantities, area(a))
		}
		if len(pts) == 4 {
			result.Quantities = append(result.Quantities, volume(geometry.TetrahedronVolume(pts[0], pts[1], pts[2], pts[3])))
		}

	case ModePlaneArea:
		if len(entities) != 1 {
			return Result{}, ErrInvalidInput
		}
		tri, err := snap.PlaneTriangle(ids[0])
		if err != nil {
			return Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		result.Quantities = append(result.Quantities, area(tri.Area()))

	case ModeVolume:
		if len(entities) != 1 {
			return Result{}, ErrInvalidInput
		}
		v, ok := scene.SolidVolume(entities[0])
		if !ok {
			return Result{}, ErrInvalidInput
		}
		result.Quantities = append(result.Quantities, volume(math.Abs(v)))

	default:
		return Result{}, fmt.Errorf("mode %q: %w", mode, ErrInvalidInput)
	}
	return result, nil
}

// safeCalculate converts a panic inside Calculate into ErrCalculationFailed.
func safeCalculate(mode Mode, snap scene.Snapshot, ids []scene.ID) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{}
			err = fmt.Errorf("%w: %v", ErrCalculationFailed, r)
		}
	}()
	return calculate(mode, snap, ids)
}

// calculate is replaced in tests to inject faults.
var calculate = Calculate
