package geom

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestParseWKTFeature(t *testing.T) {
	f, err := ParseWKTFeature("pasted", "POLYGON((100 30, 101 30, 101 31, 100 31, 100 30))")
	if err != nil {
		t.Fatalf("ParseWKTFeature() error = %v", err)
	}
	if _, ok := f.Geometry.(orb.Polygon); !ok {
		t.Errorf("geometry = %T, want orb.Polygon", f.Geometry)
	}
	if f.Anchor() != (orb.Point{100.5, 30.5}) {
		t.Errorf("Anchor() = %v, want [100.5 30.5]", f.Anchor())
	}

	for _, bad := range []string{"", "LINESTRING(0 0, 1 1)", "POLYGON((0 0"} {
		if _, err := ParseWKTFeature("x", bad); err == nil {
			t.Errorf("ParseWKTFeature(%q) error = nil", bad)
		}
	}
}

const kmlSample = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document><Folder>
  <Placemark><name>Island</name>
    <Polygon><outerBoundaryIs><LinearRing><coordinates>
      110,20,0 111,20,0 111,21,0 110,20,0
    </coordinates></LinearRing></outerBoundaryIs></Polygon>
  </Placemark>
  <Placemark><name>Pair</name><MultiGeometry>
    <Polygon><outerBoundaryIs><LinearRing><coordinates>0,0 1,0 1,1 0,0</coordinates></LinearRing></outerBoundaryIs></Polygon>
    <Polygon><outerBoundaryIs><LinearRing><coordinates>2,2 3,2 3,3 2,2</coordinates></LinearRing></outerBoundaryIs></Polygon>
  </MultiGeometry></Placemark>
  <Placemark><name>Pin</name><Point><coordinates>5,6</coordinates></Point></Placemark>
  <Placemark><name>Empty</name></Placemark>
</Folder></Document></kml>`

func TestLoadKML(t *testing.T) {
	p := writeFile(t, t.TempDir(), "islands.kml", kmlSample)
	c, err := LoadKML(p)
	if err != nil {
		t.Fatalf("LoadKML() error = %v", err)
	}
	if len(c.Features) != 3 || c.Skipped != 1 {
		t.Fatalf("features = %d skipped = %d, want 3 and 1", len(c.Features), c.Skipped)
	}
	if _, ok := c.Features[1].Geometry.(orb.MultiPolygon); !ok {
		t.Errorf("Pair geometry = %T, want orb.MultiPolygon", c.Features[1].Geometry)
	}
	if c.Features[2].Anchor() != (orb.Point{5, 6}) {
		t.Errorf("Pin anchor = %v", c.Features[2].Anchor())
	}
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, t.TempDir(), "cities.csv", "Name, Longitude, Latitude\nA,1.5,2.5\nB,bad,3\n")
	c, err := LoadCSV(p)
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if len(c.Features) != 1 || c.Skipped != 1 {
		t.Fatalf("features = %d skipped = %d", len(c.Features), c.Skipped)
	}
	if f := c.Features[0]; f.Name != "A" || f.Anchor() != (orb.Point{1.5, 2.5}) {
		t.Errorf("feature = %+v", f)
	}
}

func TestIndexAt(t *testing.T) {
	c := Collection{Features: []Feature{
		{Name: "big", Geometry: orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}},
		{Name: "small", Geometry: orb.Polygon{{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}}}},
		{Name: "pin", Geometry: orb.Point{20, 20}},
	}}
	idx := NewIndex(c)
	tests := []struct {
		p    orb.Point
		want string
		ok   bool
	}{
		{orb.Point{3, 3}, "small", true},
		{orb.Point{8, 8}, "big", true},
		{orb.Point{20, 20}, "", false},
		{orb.Point{-1, 5}, "", false},
	}
	for _, tt := range tests {
		f, ok := idx.At(tt.p)
		if ok != tt.ok || f.Name != tt.want {
			t.Errorf("At(%v) = %q, %v; want %q, %v", tt.p, f.Name, ok, tt.want, tt.ok)
		}
	}
}
