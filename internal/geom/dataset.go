package geom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"geopan/internal/logging"
)

// Supported reports whether path has an extension LoadFile understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json", ".kml", ".csv", ".wkt":
		return true
	}
	return false
}

// LoadFile loads one supported file as a collection named after the file.
func LoadFile(path string) (Collection, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return LoadGeo(path)
	case ".kml":
		return LoadKML(path)
	case ".csv":
		return LoadCSV(path)
	case ".wkt":
		data, err := os.ReadFile(path)
		if err != nil {
			return Collection{}, err
		}
		name := regionName(path)
		f, err := ParseWKTFeature(name, string(data))
		if err != nil {
			return Collection{}, err
		}
		return Collection{Name: name, Features: []Feature{f}}, nil
	default:
		return Collection{}, fmt.Errorf("unsupported file: %s", ext)
	}
}

// LoadDataset loads a file or every supported file of a directory. Each
// file is a region keyed by its base name; named features of a multi-feature
// collection are also registered as single-feature regions unless a file
// already claims that name.
func LoadDataset(path string) (*Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	var files []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !Supported(e.Name()) {
				continue
			}
			files = append(files, filepath.Join(path, e.Name()))
		}
		sort.Strings(files)
	} else {
		files = []string{path}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no supported files in %s", path)
	}

	d := NewDataset()
	var errs []error
	var collections []Collection
	for _, p := range files {
		c, err := LoadFile(p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(p), err))
			continue
		}
		d.Add(c)
		collections = append(collections, c)
	}
	for _, c := range collections {
		if len(c.Features) < 2 {
			continue
		}
		for _, f := range c.Features {
			if f.Name == "" {
				continue
			}
			if _, taken := d.Region(f.Name); taken {
				continue
			}
			d.Add(Collection{Name: f.Name, Features: []Feature{f}})
		}
	}
	if d.Len() == 0 {
		return nil, errors.Join(errs...)
	}
	for _, err := range errs {
		logging.Warn().Err(err).Str("path", path).Msg("skipped dataset file")
	}
	logging.Info().Str("path", path).Int("files", len(files)).Int("regions", d.Len()).Msg("dataset loaded")
	return d, nil
}
