package viewer

import (
	"image/color"
	"testing"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
)

func TestFillTriangleDepth(t *testing.T) {
	f := NewFrame(10, 10)
	tri := func(z float64, col color.RGBA) {
		f.FillTriangle(Vertex{0, 0, z}, Vertex{20, 0, z}, Vertex{0, 20, z}, col)
	}

	tri(5, red)
	if got := f.Image.RGBAAt(2, 2); got != red {
		t.Fatalf("FillTriangle failed: got %v", got)
	}
	tri(10, blue)
	if got := f.Image.RGBAAt(2, 2); got != red {
		t.Errorf("farther triangle overwrote nearer one: got %v", got)
	}
	tri(1, green)
	if got := f.Image.RGBAAt(2, 2); got != green {
		t.Errorf("nearer triangle was hidden: got %v", got)
	}
}

func TestFillTriangleOutside(t *testing.T) {
	f := NewFrame(10, 10)
	f.FillTriangle(Vertex{0, 0, 1}, Vertex{4, 0, 1}, Vertex{0, 4, 1}, red)
	if got := f.Image.RGBAAt(8, 8); got == red {
		t.Error("FillTriangle painted outside the triangle")
	}
}

func TestClear(t *testing.T) {
	f := NewFrame(4, 4)
	f.FillTriangle(Vertex{0, 0, 1}, Vertex{8, 0, 1}, Vertex{0, 8, 1}, red)
	f.Clear(blue)
	if got := f.Image.RGBAAt(1, 1); got != blue {
		t.Errorf("Clear failed: got %v", got)
	}
	// Depth is reset as well.
	f.FillTriangle(Vertex{0, 0, 5}, Vertex{8, 0, 5}, Vertex{0, 8, 5}, green)
	if got := f.Image.RGBAAt(1, 1); got != green {
		t.Errorf("Clear kept depth: got %v", got)
	}
}

func TestLine(t *testing.T) {
	f := NewFrame(10, 10)
	f.Line(Vertex{0, 0, 1}, Vertex{9, 9, 1}, red)
	for _, p := range [][2]int{{0, 0}, {5, 5}, {9, 9}} {
		if got := f.Image.RGBAAt(p[0], p[1]); got != red {
			t.Errorf("Line failed at %v: got %v", p, got)
		}
	}
	if got := f.Image.RGBAAt(0, 9); got == red {
		t.Error("Line painted off the diagonal")
	}
}

func TestLineClipsToFrame(t *testing.T) {
	f := NewFrame(5, 5)
	f.Line(Vertex{-10, 2, 1}, Vertex{20, 2, 1}, red)
	if got := f.Image.RGBAAt(2, 2); got != red {
		t.Errorf("Line failed: got %v", got)
	}
}

func TestDot(t *testing.T) {
	f := NewFrame(10, 10)
	f.Dot(Vertex{5, 5, 1}, 1, red)
	if f.Image.RGBAAt(4, 6) != red || f.Image.RGBAAt(6, 4) != red {
		t.Error("Dot failed to cover its square")
	}
	if f.Image.RGBAAt(2, 2) == red {
		t.Error("Dot too large")
	}
}
