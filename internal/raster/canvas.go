// Package raster is an in-memory RGBA drawing surface for headless renders.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"geopan/internal/render"
)

type point struct{ x, y float64 }

// Canvas implements render.Surface on an *image.RGBA. Path points are mapped
// through the current transform as they are added, so later transform
// changes do not move them.
type Canvas struct {
	render.StateStack

	img        *image.RGBA
	background color.Color
	strokeCol  color.Color
	lineWidth  float64

	subpaths [][]point
	closed   []bool

	ras   *vector.Rasterizer
	faces map[faceKey]font.Face
}

// NewCanvas allocates a width x height canvas cleared to bg.
func NewCanvas(width, height int, bg color.Color) *Canvas {
	if bg == nil {
		bg = color.White
	}
	c := &Canvas{
		StateStack: render.NewStateStack(),
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: bg,
		strokeCol:  color.Black,
		lineWidth:  1,
		ras:        vector.NewRasterizer(width, height),
		faces:      map[faceKey]font.Face{},
	}
	c.Clear()
	return c
}

// Image exposes the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// SetStroke sets the outline colour and width in device pixels.
func (c *Canvas) SetStroke(col color.Color, width float64) {
	c.strokeCol = col
	c.lineWidth = width
}

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)
}

func (c *Canvas) BeginPath() {
	c.subpaths = c.subpaths[:0]
	c.closed = c.closed[:0]
}

func (c *Canvas) MoveTo(x, y float64) {
	dx, dy := c.Current().CTM.Apply(x, y)
	c.subpaths = append(c.subpaths, []point{{dx, dy}})
	c.closed = append(c.closed, false)
}

func (c *Canvas) LineTo(x, y float64) {
	if len(c.subpaths) == 0 {
		c.MoveTo(x, y)
		return
	}
	dx, dy := c.Current().CTM.Apply(x, y)
	last := len(c.subpaths) - 1
	c.subpaths[last] = append(c.subpaths[last], point{dx, dy})
}

func (c *Canvas) ClosePath() {
	if len(c.closed) > 0 {
		c.closed[len(c.closed)-1] = true
	}
}

// Fill paints every subpath with the fill colour; open subpaths are closed
// implicitly.
func (c *Canvas) Fill() {
	c.resetRasterizer()
	for _, sp := range c.subpaths {
		if len(sp) < 3 {
			continue
		}
		c.ras.MoveTo(float32(sp[0].x), float32(sp[0].y))
		for _, p := range sp[1:] {
			c.ras.LineTo(float32(p.x), float32(p.y))
		}
		c.ras.ClosePath()
	}
	c.paint(c.Current().Fill)
}

// Stroke outlines every subpath with quads lineWidth pixels wide.
func (c *Canvas) Stroke() {
	c.resetRasterizer()
	half := c.lineWidth / 2
	for i, sp := range c.subpaths {
		pts := sp
		if c.closed[i] && len(sp) > 1 {
			pts = append(pts[:len(pts):len(pts)], sp[0])
		}
		for j := 1; j < len(pts); j++ {
			c.segment(pts[j-1], pts[j], half)
		}
	}
	c.paint(c.strokeCol)
}

func (c *Canvas) segment(a, b point, half float64) {
	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*half, dx/l*half
	c.ras.MoveTo(float32(a.x+nx), float32(a.y+ny))
	c.ras.LineTo(float32(b.x+nx), float32(b.y+ny))
	c.ras.LineTo(float32(b.x-nx), float32(b.y-ny))
	c.ras.LineTo(float32(a.x-nx), float32(a.y-ny))
	c.ras.ClosePath()
}

func (c *Canvas) resetRasterizer() {
	w, h := c.Size()
	c.ras.Reset(w, h)
}

func (c *Canvas) paint(col color.Color) {
	if col == nil {
		return
	}
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// FillText draws text with its baseline origin at (x, y). The glyphs are
// not rotated or sheared; the font size follows the transform's scale.
func (c *Canvas) FillText(text string, x, y float64) {
	st := c.Current()
	size := st.Font.Size * st.CTM.ScaleFactor()
	if size < 1 || text == "" {
		return
	}
	face, err := c.face(st.Font, size)
	if err != nil {
		return
	}
	dx, dy := st.CTM.Apply(x, y)
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(st.Fill),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(dx * 64), Y: fixed.Int26_6(dy * 64)},
	}
	d.DrawString(text)
}

type faceKey struct {
	family string
	bold   bool
	size   float64
}

func (c *Canvas) face(f render.FontOption, size float64) (font.Face, error) {
	key := faceKey{
		family: fontFamily(f.Family),
		bold:   strings.EqualFold(f.Weight, "bold") || f.Weight == "700" || f.Weight == "800" || f.Weight == "900",
		size:   math.Round(size*4) / 4,
	}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	sf, err := opentype.Parse(ttf(key.family, key.bold))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(sf, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	c.faces[key] = face
	return face, nil
}

// fontFamily folds CSS generic families onto the two Go font families.
func fontFamily(family string) string {
	switch strings.ToLower(family) {
	case "monospace", "mono", "courier", "courier new":
		return "mono"
	}
	return "proportional"
}

func ttf(family string, bold bool) []byte {
	switch {
	case family == "mono" && bold:
		return gomonobold.TTF
	case family == "mono":
		return gomono.TTF
	case bold:
		return gobold.TTF
	}
	return goregular.TTF
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// SavePNG writes the canvas to path.
func (c *Canvas) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return c.WritePNG(f)
}

var _ render.Surface = (*Canvas)(nil)

