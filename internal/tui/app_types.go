package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"wayplan/internal/model"
)

type view int

const (
	viewDay view = iota
	viewDetail
)

type modalKind int

const (
	modalNone modalKind = iota
	modalPicker
	modalCustomVisit
	modalEditVisit
	modalRenameDay
	modalConfirmDeleteDay
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// rebuildMsg asks for a map-layer rebuild on the next update cycle, after
// the triggering render pass has given the panes their dimensions. all
// rebuilds every day (day added/removed or itinerary replaced).
type rebuildMsg struct {
	dayIDs []string
	all    bool
}

// feedResultMsg carries the outcome of an async feed refresh.
type feedResultMsg struct {
	it    *model.Itinerary
	fresh bool
	err   error
}

// formField is one input of the custom/edit visit form. A read-only field
// renders its value but is skipped by focus traversal.
type formField struct {
	key      string // name, alt, city, time, note, maplink, booking, lat, lng, label
	label    string
	input    textinput.Model
	readOnly bool
}

// pickerEntry is one row of the flattened catalog picker: either a city
// group header or a selectable place.
type pickerEntry struct {
	header bool
	city   string
	id     string
	title  string
	added  bool
}

// moveState tracks an in-flight row drag. pointerY lives in half-row
// units (each rendered row is 2 units tall) so the midpoint rule has
// resolution between rows.
type moveState struct {
	active   bool
	from     int
	pointerY int
}
