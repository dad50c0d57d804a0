package scene

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
)

// IDGenerator produces fresh entity ids.
type IDGenerator interface {
	NextID(kind Kind) ID
}

// ColorGenerator produces default entity colors as #rrggbb.
type ColorGenerator interface {
	NextColor() string
}

// UUIDGenerator issues ids of the form "<kind>-<uuid>".
type UUIDGenerator struct{}

// NextID returns a new random id for kind.
func (UUIDGenerator) NextID(kind Kind) ID {
	return ID(fmt.Sprintf("%s-%s", kind, uuid.NewString()))
}

// SequenceGenerator issues "<kind>-<n>" with n counting up from 1 across all kinds.
type SequenceGenerator struct {
	n atomic.Int64
}

// NextID returns the next id in sequence, prefixed with kind.
func (g *SequenceGenerator) NextID(kind Kind) ID {
	return ID(fmt.Sprintf("%s-%d", kind, g.n.Add(1)))
}

// RandomColors picks pleasant random colors.
type RandomColors struct{}

// NextColor returns a random color.
func (RandomColors) NextColor() string {
	return colorful.FastHappyColor().Clamped().Hex()
}

// DefaultPalette is cycled by PaletteColors.
var DefaultPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// PaletteColors cycles through a fixed palette.
type PaletteColors struct {
	Palette []string
	n       int
}

// NextColor returns the next palette color, wrapping around at the end.
func (p *PaletteColors) NextColor() string {
	palette := p.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	c := palette[p.n%len(palette)]
	p.n++
	return c
}

// NormalizeColor parses a hex color and returns it as lower-case #rrggbb.
func NormalizeColor(s string) (string, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("color %q: %w", s, ErrInvalidValue)
	}
	return c.Hex(), nil
}
