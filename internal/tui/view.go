package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	// Header
	title := " geopan ─ " + m.region + " "
	header := titleStyle.Render(title)
	header = lipgloss.NewStyle().Width(l.contentW).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, l.contentW-6)
		}
		maxW := min(l.mapW, max(32, colW))
		tbl := m.tbl
		tbl.SetWidth(maxW - 4)
		tbl.SetHeight(min(l.mapH-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(tbl.View())
		mapView = lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		ta := m.ta
		ta.SetWidth(l.mapW)
		ta.SetHeight(min(l.mapH, 12))
		mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(ta.View())
	case m.view.lastErr != nil:
		msg := mapEmptyStyle.Render("nothing to draw for " + m.region)
		mapView = lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, msg)
	default:
		mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(m.view.View())
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	help := m.renderHelp()
	statusStyle := dimStyle
	if strings.Contains(m.status, "error") {
		statusStyle = errorStyle
	}
	status := statusStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		readout := fmt.Sprintf("lon=%.5f lat=%.5f", m.hoverLon, m.hoverLat)
		if m.hoverName != "" {
			readout += "  " + m.hoverName
		}
		coords = dimStyle.Render("  " + readout + "  ")
	}
	left := lipgloss.JoinVertical(lipgloss.Left, status, help)
	spacerW := max(0, l.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), lipgloss.Height(left), lipgloss.Right, lipgloss.Top, coords)
	footer := lipgloss.NewStyle().Width(l.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(l.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"drag/↑↓←→ pan",
		"wheel +/- zoom",
		"0 reset",
		"Tab regions",
		"Enter open",
		"p paste",
		"a attrs",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
