package geom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type goccyCodec struct{}

func (goccyCodec) Marshal(v interface{}) ([]byte, error)      { return gojson.Marshal(v) }
func (goccyCodec) Unmarshal(data []byte, v interface{}) error { return gojson.Unmarshal(data, v) }

func init() {
	geojson.CustomJSONMarshaler = goccyCodec{}
	geojson.CustomJSONUnmarshaler = goccyCodec{}
}

// LoadGeo reads a GeoJSON file and returns its drawable features as one
// collection named after the file.
func LoadGeo(path string) (Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Collection{}, err
	}
	return ParseGeoJSON(regionName(path), data)
}

// ParseGeoJSON accepts a FeatureCollection, a Feature or a bare geometry.
func ParseGeoJSON(name string, data []byte) (Collection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := gojson.Unmarshal(data, &head); err != nil {
		return Collection{}, fmt.Errorf("geojson %s: %w", name, err)
	}
	var feats []*geojson.Feature
	switch head.Type {
	case "":
		return Collection{}, errors.New("invalid geojson: missing type")
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return Collection{}, fmt.Errorf("geojson %s: %w", name, err)
		}
		feats = fc.Features
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return Collection{}, fmt.Errorf("geojson %s: %w", name, err)
		}
		feats = []*geojson.Feature{f}
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return Collection{}, fmt.Errorf("geojson %s: %w", name, err)
		}
		feats = []*geojson.Feature{geojson.NewFeature(g.Geometry())}
	}

	c := Collection{Name: name}
	for _, gf := range feats {
		if gf == nil {
			continue
		}
		shape, ok := drawable(gf.Geometry)
		if !ok {
			c.Skipped++
			continue
		}
		c.Features = append(c.Features, newFeature(gf.Properties, shape))
	}
	if len(c.Features) == 0 {
		return Collection{}, &EmptyGeometryError{Collection: name}
	}
	return c, nil
}

// drawable narrows an orb geometry to the point/ring/polygon/multipolygon
// set. Closed line strings are promoted to rings.
func drawable(g orb.Geometry) (orb.Geometry, bool) {
	switch g := g.(type) {
	case orb.Point, orb.Ring, orb.Polygon, orb.MultiPolygon:
		return g, true
	case orb.LineString:
		if len(g) >= 4 && g[0] == g[len(g)-1] {
			return orb.Ring(g), true
		}
	}
	return nil, false
}

func newFeature(props map[string]interface{}, shape orb.Geometry) Feature {
	f := Feature{Geometry: shape, Properties: props}
	if props == nil {
		f.Properties = map[string]any{}
		return f
	}
	if s, ok := props["name"].(string); ok {
		f.Name = s
	}
	if cp, ok := parsePoint(props["cp"]); ok {
		f.Centroid = &cp
	}
	f.Longitude, _ = props["longitude"].(float64)
	f.Latitude, _ = props["latitude"].(float64)
	return f
}

func parsePoint(v any) (orb.Point, bool) {
	if a, ok := v.([]any); ok && len(a) >= 2 {
		lon, lok := a[0].(float64)
		lat, aok := a[1].(float64)
		if lok && aok {
			return orb.Point{lon, lat}, true
		}
	}
	return orb.Point{}, false
}

func regionName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
