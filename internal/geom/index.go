package geom

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// minExtent pads zero-width bounds; rtreego rejects empty rectangles.
const minExtent = 1e-9

type indexEntry struct {
	idx    int
	bounds GeoBounds
}

func (e indexEntry) Bounds() rtreego.Rect {
	point := rtreego.Point{e.bounds.MinLon, e.bounds.MinLat}
	lengths := []float64{
		max(e.bounds.MaxLon-e.bounds.MinLon, minExtent),
		max(e.bounds.MaxLat-e.bounds.MinLat, minExtent),
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// Index answers "which feature is at this lon/lat" for hover readouts.
// Candidates come from an R-tree over feature bounds and are confirmed
// with a planar containment test.
type Index struct {
	features []Feature
	rtree    *rtreego.Rtree
}

// NewIndex indexes every feature of c that has coordinates.
func NewIndex(c Collection) *Index {
	idx := &Index{features: c.Features, rtree: rtreego.NewTree(2, 25, 50)}
	for i, f := range c.Features {
		b, err := FeatureBounds(f)
		if err != nil {
			continue
		}
		idx.rtree.Insert(indexEntry{idx: i, bounds: b})
	}
	return idx
}

// At returns the feature containing p. When features overlap the one
// listed last wins, matching draw order.
func (x *Index) At(p orb.Point) (Feature, bool) {
	if x == nil || x.rtree == nil {
		return Feature{}, false
	}
	hits := x.rtree.SearchIntersect(rtreego.Point{p[0], p[1]}.ToRect(minExtent))
	best := -1
	for _, h := range hits {
		e := h.(indexEntry)
		if e.idx > best && contains(x.features[e.idx].Geometry, p) {
			best = e.idx
		}
	}
	if best < 0 {
		return Feature{}, false
	}
	return x.features[best], true
}

func contains(g orb.Geometry, p orb.Point) bool {
	switch g := g.(type) {
	case orb.Ring:
		return planar.RingContains(g, p)
	case orb.Polygon:
		return planar.PolygonContains(g, p)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, p)
	}
	return false
}
