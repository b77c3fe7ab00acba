package geom

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
)

func TestExtractBounds(t *testing.T) {
	tests := []struct {
		name string
		c    Collection
		want GeoBounds
	}{
		{
			name: "single polygon",
			c: Collection{Features: []Feature{{Geometry: orb.Polygon{{{100, 30}, {101, 30}, {101, 31}, {100, 31}, {100, 30}}}}}},
			want: GeoBounds{MinLon: 100, MaxLon: 101, MinLat: 30, MaxLat: 31},
		},
		{
			name: "multipolygon and point across features",
			c: Collection{Features: []Feature{
				{Geometry: orb.MultiPolygon{
					{{{110, 20}, {112, 20}, {112, 22}, {110, 20}}},
					{{{108.5, 18}, {109, 18}, {109, 19}, {108.5, 18}}},
				}},
				{Geometry: orb.Point{121.5, 25}},
				{Geometry: orb.Ring{{115, 39}, {117, 39}, {117, 41}, {115, 39}}},
			}},
			want: GeoBounds{MinLon: 108.5, MaxLon: 121.5, MinLat: 18, MaxLat: 41},
		},
		{
			name: "negative coordinates",
			c: Collection{Features: []Feature{{Geometry: orb.Polygon{{{-74.3, 40.4}, {-73.7, 40.4}, {-73.7, 40.9}, {-74.3, 40.4}}}}}},
			want: GeoBounds{MinLon: -74.3, MaxLon: -73.7, MinLat: 40.4, MaxLat: 40.9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBounds(tt.c)
			if err != nil {
				t.Fatalf("ExtractBounds() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractBounds() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestExtractBoundsEmpty(t *testing.T) {
	tests := []struct {
		name string
		c    Collection
	}{
		{"no features", Collection{Name: "China"}},
		{"features without coordinates", Collection{Name: "x", Features: []Feature{{Geometry: orb.MultiPolygon{}}, {Name: "nil"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractBounds(tt.c)
			var eErr *EmptyGeometryError
			if !errors.As(err, &eErr) {
				t.Fatalf("ExtractBounds() error = %v, want *EmptyGeometryError", err)
			}
			if eErr.Collection != tt.c.Name {
				t.Errorf("Collection = %q, want %q", eErr.Collection, tt.c.Name)
			}
		})
	}
}

func TestFeatureRingsAndAnchor(t *testing.T) {
	cp := orb.Point{113.3, 23.1}
	f := Feature{
		Name: "广东",
		Geometry: orb.MultiPolygon{
			{{{110, 20}, {112, 20}, {112, 22}, {110, 20}}, {{110.5, 20.5}, {111, 20.5}, {111, 21}, {110.5, 20.5}}},
			{{{113, 22}, {114, 22}, {114, 23}, {113, 22}}},
		},
		Centroid:  &cp,
		Longitude: 1,
		Latitude:  2,
	}
	if n := len(f.Rings()); n != 3 {
		t.Errorf("len(Rings()) = %d, want 3", n)
	}
	if got := f.Anchor(); got != cp {
		t.Errorf("Anchor() = %v, want cp %v", got, cp)
	}
	f.Centroid = nil
	if got := f.Anchor(); got != (orb.Point{1, 2}) {
		t.Errorf("Anchor() = %v, want [1 2]", got)
	}
	if rings := (Feature{Geometry: orb.Point{1, 2}}).Rings(); rings != nil {
		t.Errorf("point Rings() = %v, want nil", rings)
	}
}

func TestDatasetKeepsSortedNames(t *testing.T) {
	d := NewDataset()
	d.Add(Collection{Name: "上海"})
	d.Add(Collection{Name: "China"})
	d.Add(Collection{Name: "China", Skipped: 2})
	names := d.Names()
	if len(names) != 2 || names[0] != "China" {
		t.Fatalf("Names() = %v", names)
	}
	c, ok := d.Region("China")
	if !ok || c.Skipped != 2 {
		t.Errorf("Region(China) = %+v, %v; want replaced collection", c, ok)
	}
}
