package viewer

import (
	"math"

	"github.com/philipparndt/trix3d/pkg/geometry"
)

// Camera orbits a target point. Yaw turns around the world Y axis, pitch
// tilts towards it.
type Camera struct {
	Target   geometry.Vector3
	Distance float64
	Yaw      float64
	Pitch    float64
	FOV      float64 // vertical field of view in radians
}

const maxPitch = math.Pi/2 - 0.1

// NewCamera creates a camera looking at bbox from slightly above.
func NewCamera(bbox geometry.BoundingBox) *Camera {
	c := &Camera{FOV: math.Pi / 4, Yaw: math.Pi / 6, Pitch: math.Pi / 8}
	c.Fit(bbox)
	return c
}

// Fit centers the camera on bbox at a distance that keeps it in view.
// Empty boxes frame the origin.
func (c *Camera) Fit(bbox geometry.BoundingBox) {
	if bbox.IsEmpty() {
		c.Target = geometry.Vector3{}
		c.Distance = 10
		return
	}
	c.Target = bbox.Center()
	c.Distance = math.Max(bbox.Diagonal()*1.5, 2)
}

// Position returns the eye position.
func (c *Camera) Position() geometry.Vector3 {
	offset := geometry.NewVector3(
		math.Cos(c.Pitch)*math.Sin(c.Yaw),
		math.Sin(c.Pitch),
		math.Cos(c.Pitch)*math.Cos(c.Yaw),
	)
	return c.Target.Add(offset.Mul(c.Distance))
}

// basis returns the camera's right, up and forward unit vectors.
func (c *Camera) basis() (right, up, forward geometry.Vector3) {
	forward = c.Target.Sub(c.Position()).Normalize()
	right = forward.Cross(geometry.NewVector3(0, 1, 0)).Normalize()
	up = right.Cross(forward).Normalize()
	return right, up, forward
}

// Rotate orbits the camera. Pitch is clamped short of the poles.
func (c *Camera) Rotate(deltaYaw, deltaPitch float64) {
	c.Yaw += deltaYaw
	c.Pitch = geometry.Clamp(c.Pitch+deltaPitch, -maxPitch, maxPitch)
}

// Zoom scales the distance to the target by 1+delta.
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(c.Distance*(1+delta), 0.1)
}

// Project maps a world point to screen coordinates and its depth along the
// view direction. ok is false for points behind the camera.
func (c *Camera) Project(p geometry.Vector3, width, height float64) (x, y, depth float64, ok bool) {
	right, up, forward := c.basis()
	rel := p.Sub(c.Position())
	depth = rel.Dot(forward)
	if depth <= 1e-3 {
		return 0, 0, depth, false
	}

	scale := math.Tan(c.FOV / 2)
	aspect := width / height
	x = (rel.Dot(right)/(depth*scale*aspect) + 1) * width / 2
	y = (1 - rel.Dot(up)/(depth*scale)) * height / 2
	return x, y, depth, true
}

// Unproject returns the world ray through a screen position.
func (c *Camera) Unproject(x, y, width, height float64) (origin, dir geometry.Vector3) {
	right, up, forward := c.basis()
	scale := math.Tan(c.FOV / 2)
	ndcX := 2*x/width - 1
	ndcY := 1 - 2*y/height

	dir = forward.
		Add(right.Mul(ndcX * scale * width / height)).
		Add(up.Mul(ndcY * scale)).
		Normalize()
	return c.Position(), dir
}
