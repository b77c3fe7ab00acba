package render

import (
	"fmt"
	"time"

	"github.com/paulmach/orb"

	"geopan/internal/affine"
	"geopan/internal/geom"
	"geopan/internal/logging"
	"geopan/internal/proj"
)

// Pipeline redraws a collection onto a surface. Each Render folds a transform
// request into the composer, clears the surface and draws every feature's
// regions first and every label second, so labels sit on top.
type Pipeline struct {
	surface  Surface
	composer *affine.Composer
	palette  Palette

	// projection of the last successful render, for hit testing.
	projection *proj.Projection
}

func NewPipeline(s Surface, c *affine.Composer, p Palette) *Pipeline {
	if p == nil {
		p = RandomPalette{}
	}
	return &Pipeline{surface: s, composer: c, palette: p}
}

func (p *Pipeline) Surface() Surface           { return p.surface }
func (p *Pipeline) Composer() *affine.Composer { return p.composer }

// SetSurface swaps the drawing target, e.g. after a terminal resize. The
// cumulative transform is kept.
func (p *Pipeline) SetSurface(s Surface) { p.surface = s }

// Projection returns the projection used by the last successful render, or
// nil before the first one.
func (p *Pipeline) Projection() *proj.Projection { return p.projection }

// Render draws coll with opts after composing req into the cumulative
// transform. Option, bounds and projection errors are returned before the
// composer or the surface are touched.
func (p *Pipeline) Render(coll geom.Collection, opts ViewOption, req affine.Transform) error {
	start := time.Now()

	o, err := opts.Merge()
	if err != nil {
		return err
	}
	fontColor, err := ParseColor(o.Font.Color)
	if err != nil {
		return fmt.Errorf("font color: %w", err)
	}
	bounds, err := geom.ExtractBounds(coll)
	if err != nil {
		return fmt.Errorf("render %s: %w", coll.Name, err)
	}
	w, h := p.surface.Size()
	pr, err := proj.New(bounds, w, h)
	if err != nil {
		return fmt.Errorf("render %s: %w", coll.Name, err)
	}

	cum := p.composer.Compose(req)

	flat := cum.Flat()
	s := p.surface
	s.Clear()
	s.Save()
	s.Transform(flat)

	rings := 0
	for _, f := range coll.Features {
		fill := p.palette.Next()
		for _, ring := range f.Rings() {
			if len(ring) == 0 {
				continue
			}
			s.Save()
			s.SetFillColor(fill)
			s.BeginPath()
			s.MoveTo(pr.Project(ring[0]))
			for _, pt := range ring[1:] {
				s.LineTo(pr.Project(pt))
			}
			s.ClosePath()
			s.Stroke()
			s.Fill()
			s.Restore()
			rings++
		}
	}

	for _, f := range coll.Features {
		x, y := pr.Project(f.Anchor())
		s.Save()
		s.SetFillColor(fontColor)
		s.SetFont(o.Font)
		s.Translate(x-o.Font.Size, y)
		s.FillText(f.Name, 0, 0)
		s.Restore()
	}

	s.Restore()
	p.projection = pr

	logging.Debug().
		Str("region", coll.Name).
		Int("features", len(coll.Features)).
		Int("rings", rings).
		Floats64("transform", flat[:]).
		Dur("took", time.Since(start)).
		Msg("rendered")
	return nil
}

// Invalidate forgets the last projection, so Locate fails until the next
// successful render. Callers use it when the surface no longer shows what
// the projection describes.
func (p *Pipeline) Invalidate() { p.projection = nil }

// Locate maps a device pixel back to lon/lat through the inverse cumulative
// transform and the last projection. It fails before the first render or
// when the transform is singular.
func (p *Pipeline) Locate(x, y float64) (orb.Point, bool) {
	if p.projection == nil {
		return orb.Point{}, false
	}
	inv, ok := p.composer.Current().Flat().Invert()
	if !ok {
		return orb.Point{}, false
	}
	return p.projection.Unproject(inv.Apply(x, y)), true
}
