package viewer

import (
	"image/color"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
	"github.com/philipparndt/trix3d/pkg/tessellate"
)

// Background is the clear color of the view.
var Background = color.RGBA{R: 32, G: 34, B: 40, A: 255}

var (
	fallbackColor  = colorful.Color{R: 0.7, G: 0.7, B: 0.7}
	selectionColor = colorful.Color{R: 1, G: 0.8, B: 0}
	highlightColor = colorful.Color{R: 0.2, G: 0.9, B: 1}
)

// Scene is what a view draws: the entities, the meshes of planes and solids,
// and the ids to emphasize.
type Scene struct {
	Snapshot    scene.Snapshot
	Parts       []tessellate.Part
	Selected    scene.ID
	Highlighted []scene.ID
}

// tint returns the display color of e, blended towards the selection or
// highlight color when it is emphasized.
func (s Scene) tint(e scene.Entity) colorful.Color {
	c, err := colorful.Hex(e.Color)
	if err != nil {
		c = fallbackColor
	}
	switch {
	case e.ID == s.Selected:
		return c.BlendRgb(selectionColor, 0.6)
	case slices.Contains(s.Highlighted, e.ID):
		return c.BlendRgb(highlightColor, 0.6)
	}
	return c
}

func shade(c colorful.Color, intensity float64) color.RGBA {
	r, g, b := colorful.Color{R: c.R * intensity, G: c.G * intensity, B: c.B * intensity}.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Draw renders the scene into f: meshes flat shaded with a headlight, lines
// as segments and points as dots.
func Draw(f *Frame, cam *Camera, s Scene) {
	f.Clear(Background)
	width, height := float64(f.Image.Bounds().Dx()), float64(f.Image.Bounds().Dy())
	project := func(p geometry.Vector3) (Vertex, bool) {
		x, y, z, ok := cam.Project(p, width, height)
		return Vertex{X: x, Y: y, Z: z}, ok
	}
	light := cam.Target.Sub(cam.Position()).Normalize()

	for _, part := range s.Parts {
		base := s.tint(part.Entity)
		for _, tri := range part.Triangles {
			a, okA := project(tri.V1)
			b, okB := project(tri.V2)
			c, okC := project(tri.V3)
			if !okA || !okB || !okC {
				continue
			}
			intensity := 0.3 + 0.7*math.Abs(tri.CalculateNormal().Dot(light))
			f.FillTriangle(a, b, c, shade(base, intensity))
		}
	}

	for _, e := range s.Snapshot.OfKind(scene.KindLine) {
		start, end, err := s.Snapshot.LineSegment(e.ID)
		if err != nil {
			continue
		}
		a, okA := project(start)
		b, okB := project(end)
		if okA && okB {
			f.Line(a, b, shade(s.tint(e), 1))
		}
	}

	for _, e := range s.Snapshot.OfKind(scene.KindPoint) {
		pos, _ := e.Position()
		v, ok := project(pos)
		if !ok {
			continue
		}
		radius := 3
		if e.ID == s.Selected || slices.Contains(s.Highlighted, e.ID) {
			radius = 5
		}
		f.Dot(v, radius, shade(s.tint(e), 1))
	}
}

// Label is an entity name placed on screen.
type Label struct {
	Text string
	X, Y float64
}

// Labels places the names of all named entities at their anchors: the
// position of points and solids, the midpoint of lines and the centroid of
// planes.
func Labels(cam *Camera, s Scene, width, height float64) []Label {
	var labels []Label
	for e := range s.Snapshot.All() {
		if e.Name == "" {
			continue
		}
		anchor, ok := anchorOf(s.Snapshot, e)
		if !ok {
			continue
		}
		x, y, _, visible := cam.Project(anchor, width, height)
		if visible {
			labels = append(labels, Label{Text: e.Name, X: x, Y: y})
		}
	}
	return labels
}

func anchorOf(snap scene.Snapshot, e scene.Entity) (geometry.Vector3, bool) {
	switch e.Kind() {
	case scene.KindLine:
		start, end, err := snap.LineSegment(e.ID)
		return start.Lerp(end, 0.5), err == nil
	case scene.KindPlane:
		tri, err := snap.PlaneTriangle(e.ID)
		return tri.Center(), err == nil
	default:
		return e.Position()
	}
}
