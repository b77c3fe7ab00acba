package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette hands out region fill colours, one call per feature.
type Palette interface {
	Next() color.Color
}

// RandomPalette picks a fresh pleasant colour on every call, so regions
// change colour on each redraw.
type RandomPalette struct{}

func (RandomPalette) Next() color.Color {
	return colorful.FastHappyColor()
}

// CyclePalette repeats a fixed list of colours. It keeps colours stable
// across redraws.
type CyclePalette struct {
	Colors []color.Color
	i      int
}

func (p *CyclePalette) Next() color.Color {
	if len(p.Colors) == 0 {
		return color.Gray{Y: 0x80}
	}
	c := p.Colors[p.i%len(p.Colors)]
	p.i++
	return c
}

// Rewind starts the cycle over.
func (p *CyclePalette) Rewind() { p.i = 0 }

// WarmPalette builds a CyclePalette of n evenly spread soft colours.
func WarmPalette(n int) *CyclePalette {
	p := &CyclePalette{}
	for i := 0; i < n; i++ {
		h := float64(i) * 360 / float64(n)
		p.Colors = append(p.Colors, colorful.Hcl(h, 0.45, 0.8).Clamped())
	}
	return p
}
