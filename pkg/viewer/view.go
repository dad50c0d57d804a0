package viewer

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/trix3d/pkg/geometry"
	"github.com/philipparndt/trix3d/pkg/scene"
)

// SceneView is a widget that draws a Scene with a software rasterizer.
// Dragging orbits the camera and scrolling zooms.
type SceneView struct {
	widget.BaseWidget

	// OnPick is called with the entity under a tap.
	OnPick func(id scene.ID)
	// OnEmpty is called with the world ray through a tap that hit nothing.
	OnEmpty func(origin, dir geometry.Vector3)

	mu         sync.Mutex
	camera     *Camera
	scene      Scene
	showLabels bool
	size       fyne.Size
	dragStart  *fyne.Position
	dragging   bool
}

// NewSceneView creates an empty view.
func NewSceneView() *SceneView {
	v := &SceneView{camera: NewCamera(geometry.NewBoundingBox())}
	v.ExtendBaseWidget(v)
	return v
}

// SetScene replaces what is drawn.
func (v *SceneView) SetScene(s Scene, showLabels bool) {
	v.mu.Lock()
	v.scene = s
	v.showLabels = showLabels
	v.mu.Unlock()
	v.Refresh()
}

// FitView frames the current scene.
func (v *SceneView) FitView() {
	v.mu.Lock()
	v.camera.Fit(v.scene.Snapshot.Bounds())
	v.mu.Unlock()
	v.Refresh()
}

// CreateRenderer implements fyne.Widget.
func (v *SceneView) CreateRenderer() fyne.WidgetRenderer {
	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	img.ScaleMode = canvas.ImageScalePixels
	return &sceneViewRenderer{view: v, image: img}
}

// Tapped picks the entity under the pointer.
func (v *SceneView) Tapped(event *fyne.PointEvent) {
	v.mu.Lock()
	if v.dragging {
		v.mu.Unlock()
		return
	}
	x, y := float64(event.Position.X), float64(event.Position.Y)
	w, h := float64(v.size.Width), float64(v.size.Height)
	if w <= 0 || h <= 0 {
		v.mu.Unlock()
		return
	}
	id, hit := Pick(v.camera, v.scene, x, y, w, h)
	origin, dir := v.camera.Unproject(x, y, w, h)
	v.mu.Unlock()

	switch {
	case hit && v.OnPick != nil:
		v.OnPick(id)
	case !hit && v.OnEmpty != nil:
		v.OnEmpty(origin, dir)
	}
}

// Dragged orbits the camera.
func (v *SceneView) Dragged(event *fyne.DragEvent) {
	v.mu.Lock()
	v.dragging = true
	if v.dragStart != nil {
		v.camera.Rotate(-float64(event.Dragged.DX)*0.01, float64(event.Dragged.DY)*0.01)
	}
	v.dragStart = &event.Position
	v.mu.Unlock()
	v.Refresh()
}

// DragEnd ends an orbit.
func (v *SceneView) DragEnd() {
	v.mu.Lock()
	v.dragStart = nil
	v.dragging = false
	v.mu.Unlock()
}

// Scrolled zooms.
func (v *SceneView) Scrolled(event *fyne.ScrollEvent) {
	v.mu.Lock()
	v.camera.Zoom(-float64(event.Scrolled.DY) * 0.002)
	v.mu.Unlock()
	v.Refresh()
}

type sceneViewRenderer struct {
	view    *SceneView
	image   *canvas.Image
	objects []fyne.CanvasObject
}

func (r *sceneViewRenderer) Layout(size fyne.Size) {
	r.view.mu.Lock()
	r.view.size = size
	r.view.mu.Unlock()
	r.image.Resize(size)
	r.render()
}

func (r *sceneViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *sceneViewRenderer) Refresh() {
	r.render()
	canvas.Refresh(r.view)
}

func (r *sceneViewRenderer) render() {
	v := r.view
	v.mu.Lock()
	defer v.mu.Unlock()

	r.objects = []fyne.CanvasObject{r.image}
	w, h := int(v.size.Width), int(v.size.Height)
	if w < 1 || h < 1 {
		return
	}

	frame := NewFrame(w, h)
	Draw(frame, v.camera, v.scene)
	r.image.Image = frame.Image
	r.image.Refresh()

	if !v.showLabels {
		return
	}
	for _, l := range Labels(v.camera, v.scene, float64(w), float64(h)) {
		text := canvas.NewText(l.Text, theme.Color(theme.ColorNameForeground))
		text.TextSize = theme.CaptionTextSize()
		text.Move(fyne.NewPos(float32(l.X)+6, float32(l.Y)-text.MinSize().Height))
		r.objects = append(r.objects, text)
	}
}

func (r *sceneViewRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *sceneViewRenderer) Destroy() {}
