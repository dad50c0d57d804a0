package viewer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// LabelFace returns the Go Regular face at the given point size.
func LabelFace(size float64) (font.Face, error) {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse label font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

// DrawLabels writes labels into the frame, offset up and right of their
// anchors. Text is drawn over the scene without depth testing.
func DrawLabels(f *Frame, labels []Label, face font.Face, col color.Color) {
	ascent := face.Metrics().Ascent
	d := &font.Drawer{
		Dst:  f.Image,
		Src:  image.NewUniform(col),
		Face: face,
	}
	for _, l := range labels {
		d.Dot = fixed.Point26_6{
			X: fixed.I(int(l.X) + 6),
			Y: fixed.I(int(l.Y)-4) - ascent/4,
		}
		d.DrawString(l.Text)
	}
}
