package analysis

import (
	"math"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/stl"
)

// DegenerateArea is the facet area at or below which a triangle counts as degenerate
const DegenerateArea = 1e-12

// MeshReport contains statistics of a tessellated model
type MeshReport struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	Degenerate    int
	MinEdgeLength float64
	MaxEdgeLength float64
}

// AnalyzeMesh measures an exported triangle model
func AnalyzeMesh(model *stl.Model) *MeshReport {
	result := &MeshReport{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
		Degenerate:    model.DegenerateCount(DegenerateArea),
	}
	result.Dimensions = result.BoundingBox.Size()

	if len(model.Triangles) == 0 {
		return result
	}
	result.MinEdgeLength = math.MaxFloat64
	for _, triangle := range model.Triangles {
		for _, length := range triangle.EdgeLengths() {
			result.MinEdgeLength = math.Min(result.MinEdgeLength, length)
			result.MaxEdgeLength = math.Max(result.MaxEdgeLength, length)
		}
	}
	return result
}
