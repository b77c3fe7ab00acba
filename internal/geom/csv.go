package geom

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// LoadCSV reads labelled anchor points from a CSV file. Each row becomes a
// point feature: it draws no region, only its label.
// Column detection: lat|latitude|y, lon|lng|long|longitude|x and
// name|label|title (case-insensitive).
func LoadCSV(path string) (Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return Collection{}, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	recs, err := r.ReadAll()
	if err != nil {
		return Collection{}, err
	}
	if len(recs) == 0 {
		return Collection{}, errors.New("empty csv")
	}
	header := recs[0]
	idxLat, idxLon, idxName := -1, -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "name", "label", "title":
			if idxName == -1 {
				idxName = i
			}
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return Collection{}, errors.New("csv: latitude/longitude columns not found")
	}

	c := Collection{Name: regionName(path)}
	for _, row := range recs[1:] {
		if idxLon >= len(row) || idxLat >= len(row) {
			c.Skipped++
			continue
		}
		lon, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxLon]), 64)
		lat, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxLat]), 64)
		if err1 != nil || err2 != nil {
			c.Skipped++
			continue
		}
		props := make(map[string]any, len(header))
		for i, h := range header {
			if i < len(row) {
				props[h] = row[i]
			}
		}
		feat := Feature{Geometry: orb.Point{lon, lat}, Longitude: lon, Latitude: lat, Properties: props}
		if idxName >= 0 && idxName < len(row) {
			feat.Name = strings.TrimSpace(row[idxName])
		}
		c.Features = append(c.Features, feat)
	}
	if len(c.Features) == 0 {
		return Collection{}, errors.New("csv: no valid points parsed")
	}
	return c, nil
}
