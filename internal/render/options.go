package render

import (
	"fmt"
	"image/color"
	"strings"

	"dario.cat/mergo"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// FontOption describes label text. Color is a CSS colour name or #hex.
type FontOption struct {
	Size   float64 `koanf:"size" validate:"gte=0"`
	Weight string  `koanf:"weight"`
	Family string  `koanf:"family"`
	Color  string  `koanf:"color"`
}

// String renders the option in canvas font shorthand, e.g. "bold 24px serif".
func (f FontOption) String() string {
	return fmt.Sprintf("%s %gpx %s", f.Weight, f.Size, f.Family)
}

// ViewOption carries per-render display settings.
type ViewOption struct {
	Font FontOption `koanf:"font"`
}

func DefaultViewOption() ViewOption {
	return ViewOption{Font: FontOption{
		Size:   24,
		Weight: "bold",
		Family: "serif",
		Color:  "black",
	}}
}

// Merge lays o over the defaults: fields set in o win, zero fields inherit.
func (o ViewOption) Merge() (ViewOption, error) {
	out := DefaultViewOption()
	if err := mergo.Merge(&out, o, mergo.WithOverride); err != nil {
		return ViewOption{}, fmt.Errorf("merge view options: %w", err)
	}
	return out, nil
}

// ParseColor accepts an SVG colour name ("white", "steelblue") or a
// #rrggbb hex string.
func ParseColor(s string) (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	c, err := colorful.Hex(name)
	if err != nil {
		return nil, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}
