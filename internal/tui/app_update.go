package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"wayplan/internal/model"
)

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case rebuildMsg:
		if msg.all {
			m.rebuildAll()
		} else {
			m.rebuildDays(msg.dayIDs)
		}
		return m, nil

	case feedResultMsg:
		m.fetching = false
		if msg.err != nil {
			// Cold cache: nothing to show, keep the current itinerary and
			// surface the failure inline.
			m.fetchErr = msg.err.Error()
			return m, nil
		}
		m.fetchErr = ""
		m.it = msg.it
		m.st.Save(m.it)
		if msg.fresh {
			m.status = "feed refreshed"
		} else {
			m.status = "feed unreachable, showing cached data"
		}
		if m.dayIdx >= len(m.it.Days) {
			m.dayIdx = 0
		}
		return m, scheduleRebuild(nil, true)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		m.status = ""
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		if m.view == viewDetail {
			return m.updateDetailKey(msg)
		}
		if m.move.active {
			return m.updateMoveKey(msg)
		}
		return m.updateDayKey(msg)
	}
	return m, nil
}

func (m *appModel) updateDayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.currentDay()
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab", "right":
		if len(m.it.Days) > 0 {
			m.switchDay((m.dayIdx + 1) % len(m.it.Days))
		}
	case "shift+tab", "left":
		if len(m.it.Days) > 0 {
			m.switchDay((m.dayIdx - 1 + len(m.it.Days)) % len(m.it.Days))
		}

	case "j", "down":
		if d != nil && m.cursor < len(d.Visits)-1 {
			m.cursor++
			m.applyHover()
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
			m.applyHover()
		}

	case "enter":
		return m, m.activateRow()

	case "g":
		v := m.currentView()
		if v == nil {
			break
		}
		if url, ok := v.LegURL(m.cursor); ok {
			openExternal(url)
			m.status = "opening walking directions"
		} else {
			m.status = "no outgoing leg from this place"
		}

	case "a":
		m.openPicker()
	case "c":
		m.openCustomForm()
	case "e":
		m.openEditForm()

	case "x":
		if d == nil || m.cursor >= len(d.Visits) {
			break
		}
		id := d.Visits[m.cursor].ID
		if err := m.it.RemoveVisit(d.ID, id); err != nil {
			m.statusf("remove failed: %v", err)
			break
		}
		return m, m.persist([]string{d.ID}, false)

	case "m":
		if d == nil || len(d.Visits) < 2 {
			m.status = "nothing to reorder"
			break
		}
		m.move = moveState{active: true, from: m.cursor, pointerY: 2*m.cursor + 1}

	case "N":
		nd := m.it.AddDay()
		m.dayIdx = len(m.it.Days) - 1
		m.cursor = 0
		return m, m.persist([]string{nd.ID}, false)

	case "R":
		m.openRenameDay()

	case "D":
		if d == nil {
			break
		}
		if d.Empty() {
			return m, m.deleteCurrentDay()
		}
		m.modal = modalConfirmDeleteDay
		m.confirmFocus = confirmFocusCancel

	case "r":
		if m.fetching {
			break
		}
		return m, m.refreshFeedCmd()
	}
	return m, nil
}

// activateRow is the enter action: first press centers the map on the
// row's marker and opens its callout, a second press (callout already
// open) drills into the detail view. Unlocated rows go straight to the
// detail view.
func (m *appModel) activateRow() tea.Cmd {
	v := m.currentView()
	if v == nil || m.cursor >= len(v.Rows) {
		return nil
	}
	mk, located := v.Marker(m.cursor)
	if located && v.Canvas.Opened() != mk {
		v.Center(m.cursor)
		return nil
	}
	m.detail = m.cursor
	m.view = viewDetail
	return nil
}

func (m *appModel) switchDay(idx int) {
	m.dayIdx = idx
	m.cursor = 0
	m.move = moveState{}
	m.clampCursor()
	m.applyHover()
	m.sync.NotifyRendered()
}

func (m *appModel) deleteCurrentDay() tea.Cmd {
	d := m.currentDay()
	if d == nil {
		return nil
	}
	id := d.ID
	if err := m.it.DeleteDay(id); err != nil {
		m.statusf("delete failed: %v", err)
		return nil
	}
	m.sync.DropDay(id)
	if m.dayIdx >= len(m.it.Days) && m.dayIdx > 0 {
		m.dayIdx--
	}
	m.cursor = 0
	return m.persist(nil, true)
}

func (m *appModel) updateMoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.currentDay()
	if d == nil {
		m.move = moveState{}
		return m, nil
	}
	max := 2*len(d.Visits) - 1
	switch msg.String() {
	case "esc", "ctrl+g":
		m.move = moveState{}
	case "j", "down":
		if m.move.pointerY < max {
			m.move.pointerY += 2
		}
	case "k", "up":
		if m.move.pointerY > 1 {
			m.move.pointerY -= 2
		}
	case "enter", "m":
		return m, m.commitMove()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *appModel) updateDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		m.view = viewDay
	case "e":
		m.view = viewDay
		m.cursor = m.detail
		m.clampCursor()
		m.openEditForm()
	case "g":
		v := m.currentView()
		if v == nil {
			break
		}
		if url, ok := v.LegURL(m.detail); ok {
			openExternal(url)
		}
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// updateMouse drives the map-to-list hover direction and, in move mode,
// the pointer position for the insertion rule.
func (m *appModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.modal != modalNone || m.view != viewDay {
		return m, nil
	}
	lay := m.layout()
	v := m.currentView()
	if v == nil {
		return m, nil
	}

	if m.move.active {
		if msg.Y >= lay.contentY {
			y := 2*(msg.Y-lay.contentY) + 1
			max := 2*len(v.Rows) - 1
			if y > max {
				y = max
			}
			m.move.pointerY = y
		}
		if msg.Action == tea.MouseActionRelease {
			return m, m.commitMove()
		}
		return m, nil
	}

	// Map pane: hover highlights the marker and its list row.
	if msg.X >= lay.mapX && msg.Y >= lay.contentY && msg.Y < lay.contentY+lay.contentH {
		mk := v.Canvas.MarkerAt(msg.X-lay.mapX, msg.Y-lay.contentY, lay.mapW, lay.contentH)
		if mk == nil {
			m.applyHover()
			return m, nil
		}
		v.ClearHover()
		v.HoverMarker(mk, true)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if i, ok := v.MarkerIndex(mk); ok {
				m.cursor = i
				v.Center(i)
				m.applyHover()
			}
		}
		return m, nil
	}

	// List pane: click selects, hover follows the pointer row.
	if msg.X < lay.listW && msg.Y >= lay.contentY {
		i := msg.Y - lay.contentY
		if i >= 0 && i < len(v.Rows) {
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
				m.cursor = i
			}
			m.applyHover()
			if i != m.cursor {
				v.Hover(i, true)
			}
		}
	}
	return m, nil
}

func isValidation(err error) bool { return errors.Is(err, model.ErrValidation) }
