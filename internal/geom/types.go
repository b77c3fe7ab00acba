package geom

import (
	"sort"

	"github.com/paulmach/orb"
)

// Feature is a named region. Geometry is one of orb.Point, orb.Ring,
// orb.Polygon or orb.MultiPolygon; loaders convert or drop anything else.
type Feature struct {
	Name     string
	Geometry orb.Geometry
	// Centroid is the "cp" label anchor override, nil when absent.
	Centroid  *orb.Point
	Longitude float64
	Latitude  float64

	Properties map[string]any
}

// Anchor returns the label anchor: the centroid override when present,
// otherwise the raw longitude/latitude.
func (f Feature) Anchor() orb.Point {
	if f.Centroid != nil {
		return *f.Centroid
	}
	return orb.Point{f.Longitude, f.Latitude}
}

// Rings returns every ring drawn for the feature, one closed path each.
// A point has no rings.
func (f Feature) Rings() []orb.Ring {
	switch g := f.Geometry.(type) {
	case orb.Ring:
		return []orb.Ring{g}
	case orb.Polygon:
		return []orb.Ring(g)
	case orb.MultiPolygon:
		var out []orb.Ring
		for _, poly := range g {
			out = append(out, poly...)
		}
		return out
	}
	return nil
}

// Collection is the set of features drawn together as one region.
type Collection struct {
	Name     string
	Features []Feature
	// Skipped counts source features whose geometry type is not drawable.
	Skipped int
}

// Dataset is a keyed lookup of collections by region name.
type Dataset struct {
	regions map[string]Collection
	names   []string
}

func NewDataset() *Dataset {
	return &Dataset{regions: map[string]Collection{}}
}

// Add registers c under c.Name, replacing an existing region of that name.
func (d *Dataset) Add(c Collection) {
	if _, ok := d.regions[c.Name]; !ok {
		d.names = append(d.names, c.Name)
		sort.Strings(d.names)
	}
	d.regions[c.Name] = c
}

// Region looks up a collection by name.
func (d *Dataset) Region(name string) (Collection, bool) {
	c, ok := d.regions[name]
	return c, ok
}

// Names lists region names in sorted order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

func (d *Dataset) Len() int { return len(d.names) }
