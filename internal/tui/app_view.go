package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"wayplan/internal/syncview"
)

// paneLayout fixes the day-view geometry. The mouse handler depends on
// the same numbers as the renderer, so both go through layout().
type paneLayout struct {
	listW    int
	mapX     int
	mapW     int
	contentY int
	contentH int
}

func (m *appModel) layout() paneLayout {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	listW := w * 2 / 5
	if listW < 24 {
		listW = 24
	}
	mapX := listW + 3
	mapW := w - mapX
	if mapW < 2 {
		mapW = 2
	}
	contentH := h - 4
	if contentH < 3 {
		contentH = 3
	}
	return paneLayout{listW: listW, mapX: mapX, mapW: mapW, contentY: 2, contentH: contentH}
}

func (m *appModel) View() string {
	if m.width == 0 {
		return "loading..."
	}
	lay := m.layout()

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteByte('\n')
	b.WriteString(m.renderBanner())
	b.WriteByte('\n')

	switch {
	case m.modal != modalNone:
		b.WriteString(lipgloss.Place(m.width, lay.contentH, lipgloss.Center, lipgloss.Center, m.renderModal()))
	case m.view == viewDetail:
		b.WriteString(m.renderDetail(lay))
	default:
		b.WriteString(m.renderDayContent(lay))
	}

	b.WriteByte('\n')
	b.WriteString(styleMuted().Render(m.status))
	b.WriteByte('\n')
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *appModel) renderTabs() string {
	if len(m.it.Days) == 0 {
		return styleMuted().Render("no days yet (N to add one)")
	}
	tabs := make([]string, 0, len(m.it.Days))
	for i, d := range m.it.Days {
		label := fmt.Sprintf(" %s ", d.Label)
		if i == m.dayIdx {
			tabs = append(tabs, styleSelected().Render(label))
		} else {
			tabs = append(tabs, styleChrome().Render(label))
		}
	}
	line := strings.Join(tabs, " ")
	return xansi.Truncate(line, m.width, "…")
}

func (m *appModel) renderBanner() string {
	switch {
	case m.fetchErr != "":
		return xansi.Truncate(
			styleDanger().Render("feed fetch failed: "+m.fetchErr+"  (r to retry)"), m.width, "…")
	case m.fetching:
		return styleMuted().Render("refreshing feed...")
	}
	return ""
}

func (m *appModel) renderDayContent(lay paneLayout) string {
	v := m.currentView()
	if v == nil {
		return styleMuted().Render("empty itinerary")
	}

	list := lipgloss.NewStyle().Width(lay.listW).Height(lay.contentH).
		Render(m.renderVisitList(v, lay))
	sep := styleChrome().Render(strings.Repeat("│\n", lay.contentH-1) + "│")
	mapPane := lipgloss.NewStyle().Width(lay.mapW).Height(lay.contentH).
		Render(v.Canvas.Render(lay.mapW, lay.contentH))
	return lipgloss.JoinHorizontal(lipgloss.Top, list, " ", sep, " ", mapPane)
}

func (m *appModel) renderVisitList(v *syncview.DayView, lay paneLayout) string {
	if len(v.Rows) == 0 {
		return styleMuted().Render("No places in this day. a: catalog, c: custom.")
	}

	gap := -1
	if m.move.active {
		to := m.insertionIndex()
		// Convert the after-removal index back to a gap in the rendered
		// (pre-removal) list.
		if to >= m.move.from {
			gap = to + 1
		} else {
			gap = to
		}
	}

	var lines []string
	for i, row := range v.Rows {
		if i == gap {
			lines = append(lines, styleAccent().Render(strings.Repeat("─", lay.listW-4)+"▶"))
		}
		lines = append(lines, m.renderRow(row, i, lay.listW))
	}
	if gap == len(v.Rows) {
		lines = append(lines, styleAccent().Render(strings.Repeat("─", lay.listW-4)+"▶"))
	}
	return strings.Join(lines, "\n")
}

func (m *appModel) renderRow(row syncview.Row, i, width int) string {
	prefix := "  "
	if i == m.cursor && !m.move.active {
		prefix = "▸ "
	}

	label := fmt.Sprintf("%s%d. %s", prefix, i+1, row.Display.Name)
	if row.Display.Time != "" {
		label = fmt.Sprintf("%s%d. %s %s", prefix, i+1, row.Display.Time, row.Display.Name)
	}
	if row.Display.City != "" {
		label += styleMuted().Render("  " + row.Display.City)
	}
	if !row.Located() {
		label += styleMuted().Render("  (no location)")
	}

	switch {
	case m.move.active && i == m.move.from:
		label = styleAccent().Bold(true).Render(xansi.Strip(label))
	case row.Hovered:
		label = styleSelected().Render(xansi.Strip(label))
	}
	return xansi.Truncate(label, width, "…")
}

func (m *appModel) renderDetail(lay paneLayout) string {
	v := m.currentView()
	if v == nil || m.detail < 0 || m.detail >= len(v.Rows) {
		return styleMuted().Render("nothing selected")
	}
	d := v.Rows[m.detail].Display

	var b strings.Builder
	b.WriteString(styleAccent().Bold(true).Render(d.Name))
	if d.Alt != "" {
		b.WriteString(styleMuted().Render("  " + d.Alt))
	}
	b.WriteByte('\n')

	meta := func(k, val string) {
		if val != "" {
			b.WriteString(styleMuted().Render(k+": ") + val + "\n")
		}
	}
	meta("city", d.City)
	meta("time", d.Time)
	meta("booking", d.Booking)
	meta("map", d.MapLink)
	if d.Coord != nil {
		meta("coords", fmt.Sprintf("%.5f, %.5f", d.Coord.Lat, d.Coord.Lng))
	}
	meta("page", d.DetailPath)

	if d.Note != "" {
		b.WriteByte('\n')
		b.WriteString(renderMarkdown(d.Note, m.width-4))
	}

	out := b.String()
	return lipgloss.NewStyle().Height(lay.contentH).MaxHeight(lay.contentH).Render(out)
}

func (m *appModel) renderHelp() string {
	var h string
	switch {
	case m.modal != modalNone:
		h = "tab: focus   enter: select   esc: cancel"
	case m.view == viewDetail:
		h = "esc: back   e: edit   g: directions"
	case m.move.active:
		h = "j/k: move   enter: drop   esc: cancel"
	default:
		h = "tab: day   j/k: select   enter: open   a: add   c: custom   e: edit   x: remove   m: move   g: directions   r: refresh   q: quit"
	}
	return xansi.Truncate(styleMuted().Render(h), m.width, "…")
}
