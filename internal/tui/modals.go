package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"wayplan/internal/geo"
	"wayplan/internal/model"
)

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 60 {
		w = 60
	}
	if w < 24 {
		w = 24
	}
	return w
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorChrome).
		Padding(0, 2).
		Width(bodyW + 4)
	head := styleAccent().Bold(true).Render(title)
	return box.Render(head + "\n\n" + content)
}

func renderInputLine(bodyW int, inputView string) string {
	// Text inputs must stay a single visual line inside the box.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")
	line := " " + inputView
	if xansi.StringWidth(line) > bodyW {
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.pickerList = nil
	m.form = nil
	m.formHint = ""
	m.editVisitID = ""
}

func (m *appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalPicker:
		return m.updatePickerKey(msg)
	case modalCustomVisit, modalEditVisit:
		return m.updateFormKey(msg)
	case modalRenameDay:
		return m.updateRenameKey(msg)
	case modalConfirmDeleteDay:
		return m.updateConfirmKey(msg)
	}
	return m, nil
}

func (m *appModel) renderModal() string {
	switch m.modal {
	case modalPicker:
		return m.renderPickerModal()
	case modalCustomVisit:
		return m.renderFormModal("Add custom place")
	case modalEditVisit:
		return m.renderFormModal("Edit place")
	case modalRenameDay:
		return m.renderRenameModal()
	case modalConfirmDeleteDay:
		return m.renderConfirmDeleteModal()
	}
	return ""
}

// --- catalog picker ---

func (m *appModel) openPicker() {
	if m.currentDay() == nil {
		return
	}
	in := textinput.New()
	in.Placeholder = "filter places"
	in.Prompt = "/ "
	in.Focus()
	m.filterInput = in
	m.pickerIdx = 0
	m.modal = modalPicker
	m.rebuildPickerEntries()
}

// rebuildPickerEntries flattens the filtered city groups into picker rows
// and marks entries already present in the target day.
func (m *appModel) rebuildPickerEntries() {
	d := m.currentDay()
	added := map[string]bool{}
	if d != nil {
		for _, v := range d.Visits {
			if v.Origin == model.OriginCatalog {
				added[v.ID] = true
			}
		}
	}

	var entries []pickerEntry
	for _, g := range m.cat.Filter(m.filterInput.Value()) {
		entries = append(entries, pickerEntry{header: true, city: g.City})
		for _, id := range g.IDs {
			p, _ := m.cat.Lookup(id)
			entries = append(entries, pickerEntry{
				city:  g.City,
				id:    id,
				title: p.Title,
				added: added[id],
			})
		}
	}
	m.pickerList = entries
	m.clampPickerIdx(1)
}

// clampPickerIdx settles the selection on a selectable (non-header) row,
// searching in direction dir.
func (m *appModel) clampPickerIdx(dir int) {
	n := len(m.pickerList)
	if n == 0 {
		m.pickerIdx = 0
		return
	}
	if m.pickerIdx < 0 {
		m.pickerIdx = 0
	}
	if m.pickerIdx >= n {
		m.pickerIdx = n - 1
	}
	for i := m.pickerIdx; i >= 0 && i < n; i += dir {
		if !m.pickerList[i].header {
			m.pickerIdx = i
			return
		}
	}
	for i := m.pickerIdx; i >= 0 && i < n; i -= dir {
		if !m.pickerList[i].header {
			m.pickerIdx = i
			return
		}
	}
}

func (m *appModel) updatePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeModal()
		return m, nil
	case "down", "ctrl+n":
		m.pickerIdx++
		m.clampPickerIdx(1)
		return m, nil
	case "up", "ctrl+p":
		m.pickerIdx--
		m.clampPickerIdx(-1)
		return m, nil
	case "enter":
		return m, m.activatePickerEntry()
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.rebuildPickerEntries()
	return m, cmd
}

func (m *appModel) activatePickerEntry() tea.Cmd {
	if m.pickerIdx < 0 || m.pickerIdx >= len(m.pickerList) {
		return nil
	}
	e := m.pickerList[m.pickerIdx]
	if e.header {
		return nil
	}
	if e.added {
		m.status = e.title + " is already in this day"
		return nil
	}
	d := m.currentDay()
	if d == nil {
		m.closeModal()
		return nil
	}
	if err := m.it.AddVisit(d.ID, e.id); err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			m.status = e.title + " is already in this day"
			return nil
		}
		m.statusf("add failed: %v", err)
		m.closeModal()
		return nil
	}
	m.closeModal()
	m.cursor = len(d.Visits) - 1
	return m.persist([]string{d.ID}, false)
}

func (m *appModel) renderPickerModal() string {
	bodyW := modalBodyWidth(m.width)
	var b strings.Builder
	b.WriteString(renderInputLine(bodyW, m.filterInput.View()))
	b.WriteString("\n\n")

	if len(m.pickerList) == 0 {
		b.WriteString(styleMuted().Render("no matches"))
	}

	visible := m.height - 12
	if visible < 5 {
		visible = 5
	}
	start := 0
	if m.pickerIdx >= visible {
		start = m.pickerIdx - visible + 1
	}
	end := start + visible
	if end > len(m.pickerList) {
		end = len(m.pickerList)
	}

	for i := start; i < end; i++ {
		e := m.pickerList[i]
		prefix := "  "
		if i == m.pickerIdx && !e.header {
			prefix = "▸ "
		}
		var line string
		switch {
		case e.header:
			line = styleChrome().Bold(true).Render(e.city)
		case e.added:
			line = styleMuted().Render(prefix + e.title + "  (added)")
		case i == m.pickerIdx:
			line = styleSelected().Render(prefix + e.title)
		default:
			line = prefix + e.title
		}
		b.WriteString(xansi.Truncate(line, bodyW, "…"))
		b.WriteByte('\n')
	}
	if end < len(m.pickerList) {
		b.WriteString(styleMuted().Render(fmt.Sprintf("… %d more", len(m.pickerList)-end)))
	}
	return renderModalBox(m.width, "Add from catalog", strings.TrimRight(b.String(), "\n"))
}

// --- visit forms ---

func newFormField(key, label, value string, readOnly bool) formField {
	in := textinput.New()
	in.Prompt = ""
	in.SetValue(value)
	return formField{key: key, label: label, input: in, readOnly: readOnly}
}

func (m *appModel) openCustomForm() {
	if m.currentDay() == nil {
		return
	}
	m.form = []formField{
		newFormField("name", "Name", "", false),
		newFormField("alt", "Local name", "", false),
		newFormField("city", "City", "", false),
		newFormField("time", "Time", "", false),
		newFormField("note", "Note", "", false),
		newFormField("maplink", "Map link", "", false),
		newFormField("booking", "Booking", "", false),
		newFormField("lat", "Latitude", "", false),
		newFormField("lng", "Longitude", "", false),
	}
	m.formHint = ""
	m.editVisitID = ""
	m.modal = modalCustomVisit
	m.focusFormField(0)
}

func (m *appModel) openEditForm() {
	d := m.currentDay()
	v := m.currentView()
	if d == nil || v == nil || m.cursor >= len(v.Rows) {
		return
	}
	row := v.Rows[m.cursor]
	disp := row.Display
	ro := row.Visit.Origin != model.OriginCustom

	lat, lng := "", ""
	if disp.Coord != nil {
		lat = strconv.FormatFloat(disp.Coord.Lat, 'f', -1, 64)
		lng = strconv.FormatFloat(disp.Coord.Lng, 'f', -1, 64)
	}
	m.form = []formField{
		newFormField("name", "Name", disp.Name, ro),
		newFormField("alt", "Local name", disp.Alt, ro),
		newFormField("city", "City", disp.City, ro),
		newFormField("time", "Time", disp.Time, false),
		newFormField("note", "Note", disp.Note, false),
		newFormField("maplink", "Map link", disp.MapLink, false),
		newFormField("booking", "Booking", disp.Booking, false),
		newFormField("lat", "Latitude", lat, ro),
		newFormField("lng", "Longitude", lng, ro),
	}
	m.formHint = ""
	m.editVisitID = row.Visit.ID
	m.modal = modalEditVisit
	m.focusFormField(m.firstEditableField(0, 1))
}

func (m *appModel) firstEditableField(from, dir int) int {
	for i := from; i >= 0 && i < len(m.form); i += dir {
		if !m.form[i].readOnly {
			return i
		}
	}
	return 0
}

// nextEditableField cycles focus to the next non-read-only field,
// wrapping around the form in direction dir.
func (m *appModel) nextEditableField(from, dir int) int {
	n := len(m.form)
	for off := 1; off <= n; off++ {
		i := ((from+dir*off)%n + n) % n
		if !m.form[i].readOnly {
			return i
		}
	}
	return from
}

func (m *appModel) focusFormField(i int) {
	for j := range m.form {
		m.form[j].input.Blur()
	}
	if i >= 0 && i < len(m.form) {
		m.formFocus = i
		m.form[i].input.Focus()
	}
}

func (m *appModel) focusFormKey(key string) {
	for i := range m.form {
		if m.form[i].key == key {
			m.focusFormField(i)
			return
		}
	}
}

func (m *appModel) formValue(key string) string {
	for i := range m.form {
		if m.form[i].key == key {
			return strings.TrimSpace(m.form[i].input.Value())
		}
	}
	return ""
}

func (m *appModel) updateFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeModal()
		return m, nil
	case "tab", "down":
		m.focusFormField(m.nextEditableField(m.formFocus, 1))
		return m, nil
	case "shift+tab", "up":
		m.focusFormField(m.nextEditableField(m.formFocus, -1))
		return m, nil
	case "enter":
		return m, m.submitForm()
	}
	var cmd tea.Cmd
	m.form[m.formFocus].input, cmd = m.form[m.formFocus].input.Update(msg)
	return m, cmd
}

// parseFormCoord enforces the both-or-neither coordinate rule. The bad
// field key is returned so the form can focus it.
func (m *appModel) parseFormCoord() (*geo.Point, string, bool) {
	latS, lngS := m.formValue("lat"), m.formValue("lng")
	if latS == "" && lngS == "" {
		return nil, "", true
	}
	if latS == "" {
		return nil, "lat", false
	}
	if lngS == "" {
		return nil, "lng", false
	}
	lat, err := strconv.ParseFloat(latS, 64)
	if err != nil {
		return nil, "lat", false
	}
	lng, err := strconv.ParseFloat(lngS, 64)
	if err != nil {
		return nil, "lng", false
	}
	return &geo.Point{Lat: lat, Lng: lng}, "", true
}

func (m *appModel) submitForm() tea.Cmd {
	d := m.currentDay()
	if d == nil {
		m.closeModal()
		return nil
	}

	editable := func(key string) bool {
		for _, f := range m.form {
			if f.key == key {
				return !f.readOnly
			}
		}
		return false
	}

	var coord *geo.Point
	if editable("lat") {
		c, badKey, ok := m.parseFormCoord()
		if !ok {
			m.formHint = "latitude and longitude must both be valid numbers, or both empty"
			m.focusFormKey(badKey)
			return nil
		}
		coord = c
	}
	if editable("name") && m.formValue("name") == "" {
		m.formHint = "name is required"
		m.focusFormKey("name")
		return nil
	}

	if m.modal == modalCustomVisit {
		p := model.CustomVisitParams{
			Name:    m.formValue("name"),
			Alt:     m.formValue("alt"),
			City:    m.formValue("city"),
			Time:    m.formValue("time"),
			Note:    m.formValue("note"),
			MapLink: m.formValue("maplink"),
			Booking: m.formValue("booking"),
			Coord:   coord,
		}
		if _, err := m.it.AddCustomVisit(d.ID, p); err != nil {
			if isValidation(err) {
				m.formHint = "name is required"
				m.focusFormKey("name")
				return nil
			}
			m.statusf("add failed: %v", err)
			m.closeModal()
			return nil
		}
		m.closeModal()
		m.cursor = len(d.Visits) - 1
		return m.persist([]string{d.ID}, false)
	}

	patch := model.VisitPatch{
		Time:    ptr(m.formValue("time")),
		Note:    ptr(m.formValue("note")),
		MapLink: ptr(m.formValue("maplink")),
		Booking: ptr(m.formValue("booking")),
	}
	if editable("name") {
		patch.Name = ptr(m.formValue("name"))
		patch.Alt = ptr(m.formValue("alt"))
		patch.City = ptr(m.formValue("city"))
		patch.Coord = coord
		patch.SetCoord = true
	}
	if err := m.it.EditVisit(d.ID, m.editVisitID, patch); err != nil {
		if isValidation(err) {
			m.formHint = "name is required"
			m.focusFormKey("name")
			return nil
		}
		m.statusf("edit failed: %v", err)
		m.closeModal()
		return nil
	}
	m.closeModal()
	return m.persist([]string{d.ID}, false)
}

func ptr(s string) *string { return &s }

func (m *appModel) renderFormModal(title string) string {
	bodyW := modalBodyWidth(m.width)
	labelW := 12

	var b strings.Builder
	for i, f := range m.form {
		label := lipgloss.PlaceHorizontal(labelW, lipgloss.Left, f.label)
		switch {
		case f.readOnly:
			b.WriteString(styleMuted().Render(label + f.input.Value() + "  (from catalog)"))
		case i == m.formFocus:
			b.WriteString(styleAccent().Render(label) + renderInputLine(bodyW-labelW, f.input.View()))
		default:
			b.WriteString(label + renderInputLine(bodyW-labelW, f.input.View()))
		}
		b.WriteByte('\n')
	}
	if m.formHint != "" {
		b.WriteByte('\n')
		b.WriteString(styleDanger().Render(m.formHint))
	}
	b.WriteByte('\n')
	b.WriteString(styleMuted().Render("tab: next field   enter: save   esc: cancel"))
	return renderModalBox(m.width, title, strings.TrimRight(b.String(), "\n"))
}

// --- rename day ---

func (m *appModel) openRenameDay() {
	d := m.currentDay()
	if d == nil {
		return
	}
	in := textinput.New()
	in.Prompt = ""
	in.SetValue(d.Label)
	in.CursorEnd()
	in.Focus()
	m.filterInput = in
	m.modal = modalRenameDay
}

func (m *appModel) updateRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeModal()
		return m, nil
	case "enter":
		d := m.currentDay()
		label := strings.TrimSpace(m.filterInput.Value())
		m.closeModal()
		if d == nil || label == "" || label == d.Label {
			return m, nil
		}
		if err := m.it.RenameDay(d.ID, label); err != nil {
			m.statusf("rename failed: %v", err)
			return m, nil
		}
		return m, m.persist([]string{d.ID}, false)
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *appModel) renderRenameModal() string {
	bodyW := modalBodyWidth(m.width)
	content := renderInputLine(bodyW, m.filterInput.View()) + "\n\n" +
		styleMuted().Render("enter: save   esc: cancel")
	return renderModalBox(m.width, "Rename day", content)
}

// --- delete-day confirm ---

func (m *appModel) updateConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g", "n":
		m.closeModal()
		return m, nil
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		m.closeModal()
		return m, m.deleteCurrentDay()
	case "enter":
		focus := m.confirmFocus
		m.closeModal()
		if focus == confirmFocusConfirm {
			return m, m.deleteCurrentDay()
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) renderConfirmDeleteModal() string {
	d := m.currentDay()
	if d == nil {
		return ""
	}
	body := fmt.Sprintf("Delete %q and its %d place(s)?", d.Label, len(d.Visits))
	return renderConfirmModal(m.width, "Delete day", body, "Delete", "Keep", m.confirmFocus)
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	// No nested borders here: some terminals show background artifacts
	// when bordered components sit inside a colored modal.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{body, "", controls, "", help}, "\n")
	return renderModalBox(width, title, content)
}
