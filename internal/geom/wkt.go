package geom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb/encoding/wkt"
)

// ParseWKTFeature parses a POINT, POLYGON or MULTIPOLYGON into a single
// feature. The label anchor is the centre of the geometry bound.
func ParseWKTFeature(name, s string) (Feature, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Feature{}, errors.New("empty wkt")
	}
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return Feature{}, fmt.Errorf("wkt: %w", err)
	}
	shape, ok := drawable(g)
	if !ok {
		return Feature{}, fmt.Errorf("unsupported wkt type: %s", g.GeoJSONType())
	}
	c := g.Bound().Center()
	return Feature{
		Name:       name,
		Geometry:   shape,
		Longitude:  c[0],
		Latitude:   c[1],
		Properties: map[string]any{"name": name},
	}, nil
}
