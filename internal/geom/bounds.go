package geom

import (
	"fmt"

	"github.com/paulmach/orb"
)

// GeoBounds is the enclosing longitude/latitude rectangle in degrees.
type GeoBounds struct {
	MinLon float64
	MaxLon float64
	MinLat float64
	MaxLat float64
}

func (b GeoBounds) String() string {
	return fmt.Sprintf("[%.5f, %.5f, %.5f, %.5f]", b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}

// Contains reports whether p lies inside b, edges included.
func (b GeoBounds) Contains(p orb.Point) bool {
	return p[0] >= b.MinLon && p[0] <= b.MaxLon && p[1] >= b.MinLat && p[1] <= b.MaxLat
}

// EmptyGeometryError is returned when a collection has no coordinates.
type EmptyGeometryError struct {
	Collection string
}

func (e *EmptyGeometryError) Error() string {
	if e.Collection == "" {
		return "empty geometry: no coordinates"
	}
	return fmt.Sprintf("empty geometry: collection %q has no coordinates", e.Collection)
}

// ExtractBounds scans every coordinate of every feature and returns the
// minimal rectangle enclosing them.
func ExtractBounds(c Collection) (GeoBounds, error) {
	var b GeoBounds
	n := 0
	add := func(p orb.Point) {
		if n == 0 {
			b = GeoBounds{MinLon: p[0], MaxLon: p[0], MinLat: p[1], MaxLat: p[1]}
		} else {
			if p[0] < b.MinLon {
				b.MinLon = p[0]
			}
			if p[0] > b.MaxLon {
				b.MaxLon = p[0]
			}
			if p[1] < b.MinLat {
				b.MinLat = p[1]
			}
			if p[1] > b.MaxLat {
				b.MaxLat = p[1]
			}
		}
		n++
	}
	for _, f := range c.Features {
		eachPoint(f.Geometry, add)
	}
	if n == 0 {
		return GeoBounds{}, &EmptyGeometryError{Collection: c.Name}
	}
	return b, nil
}

// FeatureBounds is ExtractBounds for a single feature.
func FeatureBounds(f Feature) (GeoBounds, error) {
	return ExtractBounds(Collection{Name: f.Name, Features: []Feature{f}})
}

func eachPoint(g orb.Geometry, fn func(orb.Point)) {
	switch g := g.(type) {
	case orb.Point:
		fn(g)
	case orb.Ring:
		for _, p := range g {
			fn(p)
		}
	case orb.Polygon:
		for _, r := range g {
			eachPoint(r, fn)
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			eachPoint(poly, fn)
		}
	}
}
