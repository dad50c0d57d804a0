package viewer

import (
	"math"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
)

// PickRadius is how close in pixels a tap must be to a point or line.
const PickRadius = 8.0

// Pick returns the entity under the screen position. Points win over lines,
// lines over meshes. Meshes are hit by casting a ray and taking the nearest
// intersected triangle.
func Pick(cam *Camera, s Scene, x, y, width, height float64) (scene.ID, bool) {
	best, bestDist := scene.ID(""), PickRadius
	for _, e := range s.Snapshot.OfKind(scene.KindPoint) {
		pos, _ := e.Position()
		px, py, _, ok := cam.Project(pos, width, height)
		if !ok {
			continue
		}
		if d := math.Hypot(px-x, py-y); d <= bestDist {
			best, bestDist = e.ID, d
		}
	}
	if best != "" {
		return best, true
	}

	for _, e := range s.Snapshot.OfKind(scene.KindLine) {
		start, end, err := s.Snapshot.LineSegment(e.ID)
		if err != nil {
			continue
		}
		ax, ay, _, okA := cam.Project(start, width, height)
		bx, by, _, okB := cam.Project(end, width, height)
		if !okA || !okB {
			continue
		}
		if d := segmentDistance(x, y, ax, ay, bx, by); d <= bestDist {
			best, bestDist = e.ID, d
		}
	}
	if best != "" {
		return best, true
	}

	origin, dir := cam.Unproject(x, y, width, height)
	nearest := math.Inf(1)
	for _, part := range s.Parts {
		for _, tri := range part.Triangles {
			if t, ok := intersect(origin, dir, tri); ok && t < nearest {
				best, nearest = part.Entity.ID, t
			}
		}
	}
	return best, best != ""
}

// segmentDistance is the distance from (x, y) to the segment a-b.
func segmentDistance(x, y, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = geometry.Clamp(((x-ax)*dx+(y-ay)*dy)/lenSq, 0, 1)
	}
	return math.Hypot(x-(ax+t*dx), y-(ay+t*dy))
}

// intersect is the Möller-Trumbore ray/triangle test. It returns the ray
// parameter of the hit.
func intersect(origin, dir geometry.Vector3, tri geometry.Triangle) (float64, bool) {
	const eps = 1e-9
	e1 := tri.V2.Sub(tri.V1)
	e2 := tri.V3.Sub(tri.V1)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < eps {
		return 0, false
	}
	inv := 1 / det
	s := origin.Sub(tri.V1)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	return t, t > eps
}
