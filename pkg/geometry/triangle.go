package geometry

import "math"

// Triangle is an oriented facet. Normal is stored for STL output and may be zero.
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// NewTriangle creates a triangle with an explicit normal
func NewTriangle(normal, v1, v2, v3 Vector3) Triangle {
	return Triangle{Normal: normal, V1: v1, V2: v2, V3: v3}
}

// TriangleFromPoints creates a triangle whose normal follows the right-hand rule
func TriangleFromPoints(v1, v2, v3 Vector3) Triangle {
	t := Triangle{V1: v1, V2: v2, V3: v3}
	t.Normal = t.CalculateNormal()
	return t
}

// CalculateNormal computes the unit normal from the vertex winding
func (t Triangle) CalculateNormal() Vector3 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Normalize()
}

// Area returns the surface area
func (t Triangle) Area() float64 {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1)).Length() / 2.0
}

// EdgeLengths returns |V1V2|, |V2V3| and |V3V1|
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total edge length
func (t Triangle) Perimeter() float64 {
	return PolygonPerimeter(t.Vertices())
}

// Vertices returns the corners in winding order
func (t Triangle) Vertices() []Vector3 {
	return []Vector3{t.V1, t.V2, t.V3}
}

// Center returns the centroid
func (t Triangle) Center() Vector3 {
	return t.V1.Add(t.V2).Add(t.V3).Mul(1.0 / 3.0)
}

// Angles returns the interior angles at V1, V2 and V3 in radians
func (t Triangle) Angles() [3]float64 {
	return [3]float64{
		AngleBetweenDirections(t.V2.Sub(t.V1), t.V3.Sub(t.V1)),
		AngleBetweenDirections(t.V1.Sub(t.V2), t.V3.Sub(t.V2)),
		AngleBetweenDirections(t.V1.Sub(t.V3), t.V2.Sub(t.V3)),
	}
}

// IsDegenerate reports whether the corners are collinear within eps
func (t Triangle) IsDegenerate(eps float64) bool {
	return math.Abs(t.Area()) <= eps
}
