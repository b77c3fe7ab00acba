// Package proj maps geographic coordinates to device pixels on a raster of
// a given size. Longitude grows to the right; latitude grows up on the map
// and down in pixels, so the vertical axis is flipped.
package proj

import (
	"fmt"

	"github.com/paulmach/orb"

	"geopan/internal/geom"
)

// K converts degrees into the arc-second units the scale factors use. It is
// applied to both axes and both directions.
const K = 3600.0

// Scale holds the per-axis units-per-pixel ratios.
type Scale struct {
	ScaleX float64
	ScaleY float64
}

// DegenerateBoundsError is returned when the bounds have zero extent on an
// axis or the raster has no area; either would divide by zero.
type DegenerateBoundsError struct {
	Bounds geom.GeoBounds
	Width  int
	Height int
}

func (e *DegenerateBoundsError) Error() string {
	return fmt.Sprintf("degenerate bounds %s for %dx%d raster", e.Bounds, e.Width, e.Height)
}

// Projection is built fresh whenever bounds or raster size change.
type Projection struct {
	bounds geom.GeoBounds
	scale  Scale
	width  int
	height int
}

// New derives the scale factors for bounds on a width x height raster.
func New(bounds geom.GeoBounds, width, height int) (*Projection, error) {
	if width <= 0 || height <= 0 || bounds.MaxLon <= bounds.MinLon || bounds.MaxLat <= bounds.MinLat {
		return nil, &DegenerateBoundsError{Bounds: bounds, Width: width, Height: height}
	}
	return &Projection{
		bounds: bounds,
		scale: Scale{
			ScaleX: (bounds.MaxLon - bounds.MinLon) * K / float64(width),
			ScaleY: (bounds.MaxLat - bounds.MinLat) * K / float64(height),
		},
		width:  width,
		height: height,
	}, nil
}

func (p *Projection) Scale() Scale           { return p.scale }
func (p *Projection) Bounds() geom.GeoBounds { return p.bounds }
func (p *Projection) Size() (int, int)       { return p.width, p.height }

// Project maps [lon, lat] to [x, y] device pixels.
func (p *Projection) Project(c orb.Point) (x, y float64) {
	x = (c[0] - p.bounds.MinLon) * K / p.scale.ScaleX
	y = (p.bounds.MaxLat - c[1]) * K / p.scale.ScaleY
	return x, y
}

// Unproject is the inverse of Project.
func (p *Projection) Unproject(x, y float64) orb.Point {
	return orb.Point{
		p.bounds.MinLon + x*p.scale.ScaleX/K,
		p.bounds.MaxLat - y*p.scale.ScaleY/K,
	}
}
