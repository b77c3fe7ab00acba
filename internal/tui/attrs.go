package tui

import (
	"fmt"
	"sort"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
	"github.com/goccy/go-json"

	"geopan/internal/geom"
)

// refreshAttrs rebuilds the table columns/rows from the current region
func (m *Model) refreshAttrs() {
	cols, rows := buildAttributes(m.view.coll)
	// no rows: leave the table untouched to avoid rendering an empty grid
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current region"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	maxColW := 24
	for _, c := range cols {
		w := len(c) + 2
		for _, r := range rows {
			w = max(w, len(r[len(tcols)-1])+2)
		}
		tcols = append(tcols, table.Column{Title: c, Width: min(w, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		row := make([]string, 0, len(r)+1)
		row = append(row, strconv.Itoa(i+1))
		row = append(row, r...)
		trows = append(trows, table.Row(row))
	}
	// clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes returns the name/geometry columns followed by the union of
// property keys, sorted, and one row per feature.
func buildAttributes(c geom.Collection) ([]string, [][]string) {
	seen := map[string]bool{}
	var keys []string
	for _, f := range c.Features {
		for k := range f.Properties {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	cols := append([]string{"name", "geometry", "rings"}, keys...)

	rows := make([][]string, 0, len(c.Features))
	for _, f := range c.Features {
		row := []string{f.Name, geometryType(f), strconv.Itoa(len(f.Rings()))}
		for _, k := range keys {
			row = append(row, formatValue(f.Properties[k]))
		}
		rows = append(rows, row)
	}
	return cols, rows
}

func geometryType(f geom.Feature) string {
	if f.Geometry == nil {
		return ""
	}
	return f.Geometry.GeoJSONType()
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		bs, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(bs)
	}
}
