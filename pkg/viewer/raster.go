package viewer

import (
	"image"
	"image/color"
	"math"
)

// Frame is an RGBA image with a depth buffer.
type Frame struct {
	Image *image.RGBA
	depth []float64
}

// Vertex is a projected point: screen position plus view depth.
type Vertex struct {
	X, Y, Z float64
}

// NewFrame allocates a frame of the given pixel size.
func NewFrame(width, height int) *Frame {
	f := &Frame{
		Image: image.NewRGBA(image.Rect(0, 0, width, height)),
		depth: make([]float64, width*height),
	}
	f.Clear(color.RGBA{A: 255})
	return f
}

// Clear fills the frame with bg and resets depth.
func (f *Frame) Clear(bg color.RGBA) {
	for i := range f.depth {
		f.depth[i] = math.Inf(1)
	}
	b := f.Image.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			f.Image.SetRGBA(x, y, bg)
		}
	}
}

// plot writes a pixel if it is inside the frame and nearer than what is
// already there.
func (f *Frame) plot(x, y int, z float64, col color.RGBA) {
	b := f.Image.Bounds()
	if x < 0 || y < 0 || x >= b.Max.X || y >= b.Max.Y {
		return
	}
	idx := y*b.Max.X + x
	if z < f.depth[idx] {
		f.depth[idx] = z
		f.Image.SetRGBA(x, y, col)
	}
}

// FillTriangle scan converts a triangle with depth testing.
func (f *Frame) FillTriangle(a, b, c Vertex, col color.RGBA) {
	// Sort by y.
	if a.Y > b.Y {
		a, b = b, a
	}
	if b.Y > c.Y {
		b, c = c, b
	}
	if a.Y > b.Y {
		a, b = b, a
	}

	height := f.Image.Bounds().Max.Y
	yStart := int(math.Max(0, math.Ceil(a.Y)))
	yEnd := int(math.Min(float64(height-1), math.Floor(c.Y)))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)
		// The long edge a-c spans every row; the short edge is a-b or b-c.
		x1, z1 := edgeAt(a, c, fy)
		var x2, z2 float64
		if fy < b.Y {
			x2, z2 = edgeAt(a, b, fy)
		} else {
			x2, z2 = edgeAt(b, c, fy)
		}
		if x1 > x2 {
			x1, x2 = x2, x1
			z1, z2 = z2, z1
		}

		for x := int(math.Ceil(x1)); x <= int(math.Floor(x2)); x++ {
			t := 0.0
			if x2 != x1 {
				t = (float64(x) - x1) / (x2 - x1)
			}
			f.plot(x, y, z1+t*(z2-z1), col)
		}
	}
}

// edgeAt interpolates x and depth along p-q at row y.
func edgeAt(p, q Vertex, y float64) (x, z float64) {
	if q.Y == p.Y {
		return p.X, p.Z
	}
	t := (y - p.Y) / (q.Y - p.Y)
	return p.X + t*(q.X-p.X), p.Z + t*(q.Z-p.Z)
}

// Line draws a depth tested segment with Bresenham's algorithm. Depth is
// biased slightly towards the viewer so edges win over the faces they bound.
func (f *Frame) Line(a, b Vertex, col color.RGBA) {
	x1, y1 := int(math.Round(a.X)), int(math.Round(a.Y))
	x2, y2 := int(math.Round(b.X)), int(math.Round(b.Y))

	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	steps := max(dx, dy)
	err := dx - dy

	for i := 0; ; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		f.plot(x1, y1, (a.Z+t*(b.Z-a.Z))*0.999, col)

		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Dot draws a filled square of the given radius centered on v.
func (f *Frame) Dot(v Vertex, radius int, col color.RGBA) {
	cx, cy := int(math.Round(v.X)), int(math.Round(v.Y))
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			f.plot(x, y, v.Z*0.998, col)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
