package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"

	"geopan/internal/geom"
)

type regionItem struct {
	name     string
	features int
}

func (r regionItem) Title() string       { return r.name }
func (r regionItem) Description() string { return fmt.Sprintf("%d features", r.features) }
func (r regionItem) FilterValue() string { return r.name }

func (m *Model) refreshRegions() {
	var items []list.Item
	for _, name := range m.dataset.Names() {
		c, _ := m.dataset.Region(name)
		items = append(items, regionItem{name: name, features: len(c.Features)})
	}
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no regions loaded"
	}
}

// showRegion switches the map to the named region.
func (m *Model) showRegion(name string) {
	c, ok := m.dataset.Region(name)
	if !ok {
		m.status = "unknown region: " + name
		return
	}
	m.region = name
	if err := m.view.show(c); err != nil {
		m.status = "render error: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("region: %s  features=%d", name, len(c.Features))
	if c.Skipped > 0 {
		m.status += fmt.Sprintf(" skipped=%d", c.Skipped)
	}
	if m.showAttrs {
		m.refreshAttrs()
	}
}

// pasteWKT renders pasted WKT as the "pasted" region.
func (m *Model) pasteWKT(s string) error {
	f, err := geom.ParseWKTFeature("pasted", s)
	if err != nil {
		return err
	}
	m.dataset.Add(geom.Collection{Name: "pasted", Features: []geom.Feature{f}})
	m.refreshRegions()
	m.showRegion("pasted")
	return nil
}
