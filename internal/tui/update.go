package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geopan/internal/interaction"
	"geopan/internal/logging"
)

// panStep is the keyboard pan distance in braille dots.
const panStep = 8

type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	headerHeight := 1
	footerHeight := 2
	l := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	l.mapW = l.contentW
	if m.showSidebar {
		l.mapX = sidebarWidth + 1
		l.mapW = l.contentW - sidebarWidth - 1
	}
	l.mapW = max(10, l.mapW)
	l.mapH = l.contentH
	return l
}

// relayout fits the map and sidebar to the window and draws the initial
// region once a size is known.
func (m *Model) relayout() {
	l := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
	}
	if err := m.view.place(l.mapX, l.mapY, l.mapW, l.mapH); err != nil {
		m.status = "render error: " + err.Error()
	}
	if len(m.view.coll.Features) == 0 && m.region != "" {
		m.showRegion(m.region)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil
	case reloadMsg:
		m.onReload(msg)
		return m, m.watch.next()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		return m.updateKey(msg)
	case tea.MouseMsg:
		m.updateMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		if err := m.pasteWKT(w); err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctl := m.view.ctl
	var err error
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "+", "=":
		err = ctl.ZoomIn()
		m.status = fmt.Sprintf("zoom: %.1fx", ctl.State().ScaleBase)
	case "-", "_":
		err = ctl.ZoomOut()
		m.status = fmt.Sprintf("zoom: %.1fx", ctl.State().ScaleBase)
	case "0", "r":
		err = ctl.Reset()
		m.status = "view reset"
	case "tab":
		m.showSidebar = !m.showSidebar
		m.relayout()
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.ta.Focus()
		m.status = "paste mode"
	case "h":
		m.helpVisible = !m.helpVisible
	case "a":
		m.showAttrs = !m.showAttrs
		if m.showAttrs {
			m.refreshAttrs()
		}
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(regionItem); ok {
				m.showRegion(it.name)
			}
		}
	case "up", "down", "left", "right":
		switch {
		case m.showAttrs:
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		case m.showSidebar && (msg.String() == "up" || msg.String() == "down"):
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		err = ctl.Pan(panDelta(msg.String()))
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}
	if err != nil {
		m.status = "render error: " + err.Error()
	}
	return m, nil
}

func panDelta(key string) (float64, float64) {
	switch key {
	case "up":
		return 0, panStep
	case "down":
		return 0, -panStep
	case "left":
		return panStep, 0
	case "right":
		return -panStep, 0
	}
	return 0, 0
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	if m.pasteMode || m.showAttrs {
		return
	}
	v := m.view
	ctl := v.ctl
	x, y := v.dots(msg.X, msg.Y)
	var err error
	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		err = ctl.Wheel(interaction.NativeWheel{X: x, Y: y, DeltaY: -interaction.ButtonDelta})
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		err = ctl.Wheel(interaction.NativeWheel{X: x, Y: y, DeltaY: interaction.ButtonDelta})
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		ctl.PointerDown(x, y)
	case msg.Action == tea.MouseActionMotion:
		err = ctl.PointerMove(x, y)
	case msg.Action == tea.MouseActionRelease:
		ctl.PointerUp()
	}
	if err != nil {
		m.status = "render error: " + err.Error()
	}

	// hover readout
	if p, name, ok := v.locate(msg.X, msg.Y); ok {
		m.hoverHasGeo = true
		m.hoverLon, m.hoverLat = p[0], p[1]
		m.hoverName = name
	} else {
		m.hoverHasGeo = false
		m.hoverName = ""
	}
}

func (m *Model) onReload(msg reloadMsg) {
	if msg.err != nil {
		logging.Err(msg.err).Msg("dataset reload failed")
		m.status = "reload error: " + msg.err.Error()
		return
	}
	// pasted geometry is not on disk; carry it over
	if c, ok := m.dataset.Region("pasted"); ok {
		if _, clash := msg.dataset.Region("pasted"); !clash {
			msg.dataset.Add(c)
		}
	}
	m.dataset = msg.dataset
	m.refreshRegions()
	c, ok := m.dataset.Region(m.region)
	if !ok {
		m.status = "reloaded; region gone: " + m.region
		return
	}
	if err := m.view.replace(c); err != nil {
		m.status = "render error: " + err.Error()
		return
	}
	if m.showAttrs {
		m.refreshAttrs()
	}
	m.status = "reloaded: " + m.region
}
