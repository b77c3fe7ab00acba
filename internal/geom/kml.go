package geom

import (
	"encoding/xml"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type kmlRing struct {
	Coordinates string `xml:"LinearRing>coordinates"`
}

type kmlPolygon struct {
	Outer kmlRing   `xml:"outerBoundaryIs"`
	Inner []kmlRing `xml:"innerBoundaryIs"`
}

type kmlPlacemark struct {
	Name  string `xml:"name"`
	Point *struct {
		Coordinates string `xml:"coordinates"`
	} `xml:"Point"`
	Polygons []kmlPolygon `xml:"Polygon"`
	Multi    *struct {
		Polygons []kmlPolygon `xml:"Polygon"`
	} `xml:"MultiGeometry"`
}

// LoadKML reads Placemarks (Point, Polygon, MultiGeometry of Polygons) at
// any depth of the document. KML coordinates are "lon,lat[,alt]"; altitude
// is ignored.
func LoadKML(path string) (Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return Collection{}, err
	}
	defer f.Close()

	c := Collection{Name: regionName(path)}
	dec := xml.NewDecoder(f)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Collection{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return Collection{}, err
		}
		feat, ok := pm.feature()
		if !ok {
			c.Skipped++
			continue
		}
		c.Features = append(c.Features, feat)
	}
	if len(c.Features) == 0 {
		return Collection{}, errors.New("kml: no placemarks found")
	}
	return c, nil
}

func (pm kmlPlacemark) feature() (Feature, bool) {
	polys := pm.Polygons
	if pm.Multi != nil {
		polys = append(polys, pm.Multi.Polygons...)
	}
	var mp orb.MultiPolygon
	for _, kp := range polys {
		outer := parseKMLCoords(kp.Outer.Coordinates)
		if len(outer) < 3 {
			continue
		}
		poly := orb.Polygon{orb.Ring(outer)}
		for _, in := range kp.Inner {
			if r := parseKMLCoords(in.Coordinates); len(r) >= 3 {
				poly = append(poly, orb.Ring(r))
			}
		}
		mp = append(mp, poly)
	}

	f := Feature{Name: strings.TrimSpace(pm.Name), Properties: map[string]any{"name": strings.TrimSpace(pm.Name)}}
	switch {
	case len(mp) == 1:
		f.Geometry = mp[0]
	case len(mp) > 1:
		f.Geometry = mp
	case pm.Point != nil:
		pts := parseKMLCoords(pm.Point.Coordinates)
		if len(pts) == 0 {
			return Feature{}, false
		}
		f.Geometry = pts[0]
		f.Longitude, f.Latitude = pts[0][0], pts[0][1]
		return f, true
	default:
		return Feature{}, false
	}
	ctr := f.Geometry.Bound().Center()
	f.Longitude, f.Latitude = ctr[0], ctr[1]
	return f, true
}

// parseKMLCoords splits whitespace separated "lon,lat[,alt]" tuples.
func parseKMLCoords(s string) []orb.Point {
	var out []orb.Point
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out = append(out, orb.Point{lon, lat})
	}
	return out
}
