// Package tui is the interactive terminal map viewer.
package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geopan/internal/geom"
	"geopan/internal/logging"
	"geopan/internal/render"
)

const sidebarWidth = 28

// Options configure a viewer.
type Options struct {
	Dataset *geom.Dataset
	// DatasetPath is reloaded when Watch is set.
	DatasetPath string
	Region      string
	View        render.ViewOption
	Watch       bool
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	dataset *geom.Dataset
	region  string
	view    *mapView
	watch   *watcher

	// region sidebar
	l list.Model

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// hover state
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverName   string

	// attributes table
	showAttrs bool
	tbl       table.Model
}

func New(opts Options) Model {
	m := Model{
		helpVisible: true,
		status:      "geopan ready",
		dataset:     opts.Dataset,
		view:        newMapView(opts.View),
	}
	if m.dataset == nil {
		m.dataset = geom.NewDataset()
	}
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Regions"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.refreshRegions()
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POLYGON or MULTIPOLYGON). Enter renders; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table; columns follow the current region
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	m.region = opts.Region
	if _, ok := m.dataset.Region(m.region); !ok {
		if names := m.dataset.Names(); len(names) > 0 {
			m.region = names[0]
		}
	}
	if opts.Watch && opts.DatasetPath != "" {
		w, err := newWatcher(opts.DatasetPath)
		if err != nil {
			logging.Warn().Err(err).Str("path", opts.DatasetPath).Msg("dataset watch disabled")
			m.status = "watch error: " + err.Error()
		} else {
			m.watch = w
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.watch != nil {
		return m.watch.next()
	}
	return nil
}

// Close releases the dataset watcher.
func (m Model) Close() error {
	if m.watch != nil {
		return m.watch.Close()
	}
	return nil
}
