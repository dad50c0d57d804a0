package geometry

import (
	"errors"
	"math"
)

// ErrTooFewPoints is returned when a polygon has fewer corners than a calculation needs.
var ErrTooFewPoints = errors.New("too few points")

// Distance returns the Euclidean distance between two points
func Distance(a, b Vector3) float64 {
	return a.Distance(b)
}

// Clamp limits x to [lo, hi]. NaN maps to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Max(lo, math.Min(hi, x))
}

// RadToDeg converts radians to degrees
func RadToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// AngleBetweenDirections returns the unsigned angle between two directions in
// radians. The cosine is clamped so rounding never leaves acos's domain.
// A zero direction yields π/2.
func AngleBetweenDirections(d1, d2 Vector3) float64 {
	cos := d1.Normalize().Dot(d2.Normalize())
	return math.Acos(Clamp(cos, -1, 1))
}

// PolygonPerimeter sums the edge lengths of a closed polygon, including the
// edge from the last point back to the first. Two points count the segment
// twice; fewer than two give zero.
func PolygonPerimeter(points []Vector3) float64 {
	if len(points) < 2 {
		return 0
	}
	perimeter := 0.0
	for i, p := range points {
		perimeter += p.Distance(points[(i+1)%len(points)])
	}
	return perimeter
}

// PolygonArea returns the area of a planar polygon as half the magnitude of
// the summed cross products of consecutive corners.
func PolygonArea(points []Vector3) (float64, error) {
	if len(points) < 3 {
		return 0, ErrTooFewPoints
	}
	var sum Vector3
	for i, p := range points {
		sum = sum.Add(p.Cross(points[(i+1)%len(points)]))
	}
	return sum.Length() / 2.0, nil
}

// TetrahedronVolume returns the unsigned volume spanned by four points
func TetrahedronVolume(p0, p1, p2, p3 Vector3) float64 {
	a := p0.Sub(p3)
	b := p1.Sub(p3)
	c := p2.Sub(p3)
	return math.Abs(a.Dot(b.Cross(c))) / 6.0
}

// SphereVolume returns 4/3·π·r³
func SphereVolume(radius float64) float64 {
	return 4.0 / 3.0 * math.Pi * radius * radius * radius
}

// CylinderVolume returns π·r²·h
func CylinderVolume(radius, height float64) float64 {
	return math.Pi * radius * radius * height
}

// BoxVolume returns width·height·depth
func BoxVolume(size Vector3) float64 {
	return size.X * size.Y * size.Z
}

// LerpPoint interpolates between a and b with t clamped to [0, 1]
func LerpPoint(a, b Vector3, t float64) Vector3 {
	return a.Lerp(b, Clamp(t, 0, 1))
}
