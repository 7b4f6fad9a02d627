package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"wayplan/internal/catalog"
	"wayplan/internal/config"
	"wayplan/internal/feed"
	"wayplan/internal/model"
	"wayplan/internal/reorder"
	"wayplan/internal/store"
	"wayplan/internal/syncview"
)

type appModel struct {
	cfg *config.Config
	cat *catalog.Catalog
	st  *store.Store
	it  *model.Itinerary

	sync *syncview.Synchronizer

	width  int
	height int

	view   view
	dayIdx int
	cursor int
	move   moveState
	detail int // row index shown in the detail view

	modal        modalKind
	filterInput  textinput.Model
	pickerList   []pickerEntry
	pickerIdx    int
	form         []formField
	formFocus    int
	formHint     string
	editVisitID  string
	confirmFocus confirmModalFocus

	fetchErr string // inline fetch error panel with retry affordance
	fetching bool
	status   string
}

// Run starts the interactive planner. Load order: the persisted editable
// copy when its schema version matches, otherwise the built-in default.
func Run(cfg *config.Config, cat *catalog.Catalog, st *store.Store) error {
	applyColorProfilePreference()
	applyThemePreference(cfg.TUI.Theme)

	it, ok := st.Load()
	if !ok {
		it = catalog.DefaultItinerary(cat)
		st.Save(it)
	}

	m := newAppModel(cfg, cat, st, it)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func newAppModel(cfg *config.Config, cat *catalog.Catalog, st *store.Store, it *model.Itinerary) *appModel {
	m := &appModel{
		cfg:  cfg,
		cat:  cat,
		st:   st,
		it:   it,
		sync: syncview.New(cat),
	}
	m.rebuildAll()
	return m
}

func (m *appModel) Init() tea.Cmd { return nil }

func (m *appModel) currentDay() *model.Day {
	if m.dayIdx < 0 || m.dayIdx >= len(m.it.Days) {
		return nil
	}
	return &m.it.Days[m.dayIdx]
}

func (m *appModel) currentView() *syncview.DayView {
	d := m.currentDay()
	if d == nil {
		return nil
	}
	return m.sync.View(d.ID)
}

func (m *appModel) rebuildAll() {
	for _, d := range m.it.Days {
		m.sync.BuildDay(d)
	}
	m.clampCursor()
	m.applyHover()
	m.sync.NotifyRendered()
}

func (m *appModel) rebuildDays(ids []string) {
	for _, id := range ids {
		if d := m.it.Day(id); d != nil {
			m.sync.BuildDay(*d)
		}
	}
	m.clampCursor()
	m.applyHover()
	m.sync.NotifyRendered()
}

func (m *appModel) clampCursor() {
	d := m.currentDay()
	if d == nil || len(d.Visits) == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= len(d.Visits) {
		m.cursor = len(d.Visits) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// applyHover re-applies the list→map highlight for the cursor row, and
// raises the hovered row's outgoing connector.
func (m *appModel) applyHover() {
	v := m.currentView()
	if v == nil {
		return
	}
	v.ClearHover()
	if len(v.Rows) == 0 {
		return
	}
	v.Hover(m.cursor, true)
	if l, ok := v.Leg(m.cursor); ok {
		l.SetHover(true)
	}
}

// persist writes the model through and schedules the affected rebuilds
// for the next update cycle, after the triggering render pass.
func (m *appModel) persist(dayIDs []string, all bool) tea.Cmd {
	m.st.Save(m.it)
	return scheduleRebuild(dayIDs, all)
}

func scheduleRebuild(dayIDs []string, all bool) tea.Cmd {
	return func() tea.Msg { return rebuildMsg{dayIDs: dayIDs, all: all} }
}

func (m *appModel) refreshFeedCmd() tea.Cmd {
	url := m.cfg.Feed.URL
	if url == "" {
		m.status = "no feed configured"
		return nil
	}
	m.fetching = true
	client := &feed.Client{URL: url, Timeout: m.cfg.Feed.Timeout()}
	st := m.st
	return func() tea.Msg {
		it, fresh, err := feed.Refresh(context.Background(), client, st)
		return feedResultMsg{it: it, fresh: fresh, err: err}
	}
}

// commitMove applies a finished drag as one atomic splice.
func (m *appModel) commitMove() tea.Cmd {
	d := m.currentDay()
	if d == nil || !m.move.active {
		return nil
	}
	from := m.move.from
	to := m.insertionIndex()
	m.move = moveState{}
	sp, ok := reorder.Plan(len(d.Visits), from, to)
	if !ok {
		return nil
	}
	if err := m.it.MoveVisit(d.ID, sp.From, sp.To); err != nil {
		slog.Warn("move failed", "err", err)
		return nil
	}
	m.cursor = sp.To
	return m.persist([]string{d.ID}, false)
}

// insertionIndex runs the midpoint rule over the rendered row rects.
func (m *appModel) insertionIndex() int {
	d := m.currentDay()
	if d == nil {
		return 0
	}
	rects := make([]reorder.Rect, len(d.Visits))
	for i := range rects {
		rects[i] = reorder.Rect{Top: 2 * i, Height: 2}
	}
	return reorder.InsertionIndex(rects, m.move.from, m.move.pointerY)
}

// openExternal launches the OS browser for directions and map links.
// Best-effort: a missing opener is logged, never surfaced.
func openExternal(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		slog.Warn("open external link failed", "url", url, "err", err)
	}
}

func (m *appModel) statusf(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
}
