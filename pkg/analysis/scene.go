// Package analysis derives reports from a scene: counts, extents, line
// lengths and plane areas.
package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
)

// LineInfo describes a resolved line entity
type LineInfo struct {
	ID     scene.ID
	Name   string
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
}

// PlaneInfo describes a resolved plane entity
type PlaneInfo struct {
	ID       scene.ID
	Name     string
	Triangle geometry.Triangle
	Area     float64
}

// SceneReport summarizes a scene
type SceneReport struct {
	Counts        map[scene.Kind]int
	Total         int
	BoundingBox   geometry.BoundingBox
	SolidVolume   float64
	PlaneArea     float64
	MinLineLength float64
	MaxLineLength float64
	AvgLineLength float64
	Lines         []LineInfo
	Planes        []PlaneInfo
}

// AnalyzeScene resolves all lines and planes and aggregates statistics.
// Entities with unresolvable references are skipped.
func AnalyzeScene(snap scene.Snapshot) *SceneReport {
	result := &SceneReport{
		Counts:      make(map[scene.Kind]int),
		Total:       snap.Len(),
		BoundingBox: snap.Bounds(),
	}

	minLength := math.MaxFloat64
	totalLength := 0.0

	for e := range snap.All() {
		result.Counts[e.Kind()]++

		if v, ok := scene.SolidVolume(e); ok {
			result.SolidVolume += math.Abs(v)
		}

		switch e.Kind() {
		case scene.KindLine:
			start, end, err := snap.LineSegment(e.ID)
			if err != nil {
				continue
			}
			info := LineInfo{ID: e.ID, Name: e.Name, Start: start, End: end, Length: start.Distance(end)}
			result.Lines = append(result.Lines, info)

			totalLength += info.Length
			minLength = math.Min(minLength, info.Length)
			result.MaxLineLength = math.Max(result.MaxLineLength, info.Length)
		case scene.KindPlane:
			tri, err := snap.PlaneTriangle(e.ID)
			if err != nil {
				continue
			}
			info := PlaneInfo{ID: e.ID, Name: e.Name, Triangle: tri, Area: tri.Area()}
			result.Planes = append(result.Planes, info)
			result.PlaneArea += info.Area
		}
	}

	if len(result.Lines) > 0 {
		result.MinLineLength = minLength
		result.AvgLineLength = totalLength / float64(len(result.Lines))
	}
	return result
}

// FindLinesByLength returns the lines whose length is within [minLength, maxLength]
func FindLinesByLength(result *SceneReport, minLength, maxLength float64) []LineInfo {
	var lines []LineInfo
	for _, line := range result.Lines {
		if line.Length >= minLength && line.Length <= maxLength {
			lines = append(lines, line)
		}
	}
	return lines
}

// FindLongestLines returns up to count lines, longest first
func FindLongestLines(result *SceneReport, count int) []LineInfo {
	return sortedLines(result.Lines, count, func(a, b LineInfo) bool { return a.Length > b.Length })
}

// FindShortestLines returns up to count lines, shortest first
func FindShortestLines(result *SceneReport, count int) []LineInfo {
	return sortedLines(result.Lines, count, func(a, b LineInfo) bool { return a.Length < b.Length })
}

func sortedLines(all []LineInfo, count int, less func(a, b LineInfo) bool) []LineInfo {
	lines := make([]LineInfo, len(all))
	copy(lines, all)
	sort.SliceStable(lines, func(i, j int) bool { return less(lines[i], lines[j]) })
	return lines[:min(count, len(lines))]
}

// FindLargestPlanes returns up to count planes, largest area first
func FindLargestPlanes(result *SceneReport, count int) []PlaneInfo {
	planes := make([]PlaneInfo, len(result.Planes))
	copy(planes, result.Planes)
	sort.SliceStable(planes, func(i, j int) bool { return planes[i].Area > planes[j].Area })
	return planes[:min(count, len(planes))]
}

// FindSmallestPlanes returns up to count planes, smallest area first
func FindSmallestPlanes(result *SceneReport, count int) []PlaneInfo {
	planes := make([]PlaneInfo, len(result.Planes))
	copy(planes, result.Planes)
	sort.SliceStable(planes, func(i, j int) bool { return planes[i].Area < planes[j].Area })
	return planes[:min(count, len(planes))]
}

// FindNearestPoint returns the point entity closest to target
func FindNearestPoint(snap scene.Snapshot, target geometry.Vector3) (scene.Entity, float64, bool) {
	var nearest scene.Entity
	minDistance := math.MaxFloat64
	found := false

	for _, e := range snap.OfKind(scene.KindPoint) {
		p := e.Shape.(scene.Point)
		if d := target.Distance(p.Position); d < minDistance {
			minDistance = d
			nearest = e
			found = true
		}
	}
	return nearest, minDistance, found
}

// FormatMeasurement formats a measurement with its unit
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
