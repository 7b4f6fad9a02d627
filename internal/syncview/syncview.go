// Package syncview keeps each day's rendered list and map in permanent
// two-way synchronization. It owns the per-day registry of live map
// widget handles, keyed by original sequence index, and the rebuild
// policy: any change to a day's visit set or order tears the whole map
// layer down and rebuilds it, so an index mapping can never go stale.
package syncview

import (
	"wayplan/internal/geo"
	"wayplan/internal/mapview"
	"wayplan/internal/model"
)

// Row is one rendered list entry: the visit at sequence index Index plus
// its resolved display record.
type Row struct {
	Visit   model.Visit
	Display model.Display
	Index   int
	Hovered bool
}

// Located reports whether the row has a marker on the map.
func (r Row) Located() bool { return r.Display.Coord != nil }

// DayView binds one day's list rows to its map canvas. The index → marker
// mapping is sparse: unlocated visits have no entry.
type DayView struct {
	DayID string
	Label string
	Rows  []Row

	Canvas        *mapview.Canvas
	markerByIndex map[int]*mapview.Marker
	indexByMarker map[*mapview.Marker]int
	// legByIndex maps the row index of a leg's first located visit to its
	// connector line.
	legByIndex map[int]*mapview.Line
}

// Hover applies (or clears) the highlight on row i and, through the index
// mapping, on its marker. Hovering an unlocated row has no marker-side
// effect.
func (v *DayView) Hover(i int, on bool) {
	if i < 0 || i >= len(v.Rows) {
		return
	}
	v.Rows[i].Hovered = on
	if m, ok := v.markerByIndex[i]; ok {
		m.SetHover(on)
	}
}

// HoverMarker is the inverse direction: marker hover highlights the
// corresponding list row.
func (v *DayView) HoverMarker(m *mapview.Marker, on bool) {
	i, ok := v.indexByMarker[m]
	if !ok {
		return
	}
	m.SetHover(on)
	v.Rows[i].Hovered = on
}

// ClearHover drops every highlight on both sides.
func (v *DayView) ClearHover() {
	for i := range v.Rows {
		v.Rows[i].Hovered = false
	}
	for _, m := range v.markerByIndex {
		m.SetHover(false)
	}
	for _, l := range v.legByIndex {
		l.SetHover(false)
	}
}

// Center pans/zooms the map to row i's location and opens its marker's
// detail callout. Unlocated rows report false and leave the map alone.
func (v *DayView) Center(i int) bool {
	m, ok := v.markerByIndex[i]
	if !ok {
		return false
	}
	v.Canvas.SetView(m.Point, 2)
	v.Canvas.OpenCallout(m)
	return true
}

// Leg returns the connector line leaving the located visit at row i, if
// one exists (i.e. a later located visit follows it).
func (v *DayView) Leg(i int) (*mapview.Line, bool) {
	l, ok := v.legByIndex[i]
	return l, ok
}

// LegURL builds the external walking-directions request for the leg
// leaving row i.
func (v *DayView) LegURL(i int) (string, bool) {
	l, ok := v.legByIndex[i]
	if !ok {
		return "", false
	}
	return geo.WalkingDirectionsURL(l.A, l.B), true
}

// Marker returns row i's marker handle (ok=false for unlocated rows).
func (v *DayView) Marker(i int) (*mapview.Marker, bool) {
	m, ok := v.markerByIndex[i]
	return m, ok
}

// MarkerIndex returns the row index a marker handle belongs to.
func (v *DayView) MarkerIndex(m *mapview.Marker) (int, bool) {
	i, ok := v.indexByMarker[m]
	return i, ok
}

// Synchronizer owns the DayView registry for the itinerary's lifetime.
type Synchronizer struct {
	cat      model.Catalog
	views    map[string]*DayView
	rebuilds map[string]int
	rendered []func()
}

// New returns a synchronizer resolving visits against cat.
func New(cat model.Catalog) *Synchronizer {
	return &Synchronizer{
		cat:      cat,
		views:    map[string]*DayView{},
		rebuilds: map[string]int{},
	}
}

// OnRendered registers a listener for the content-rendered signal (an
// external search/filter layer re-applies itself on it).
func (s *Synchronizer) OnRendered(fn func()) {
	s.rendered = append(s.rendered, fn)
}

// NotifyRendered fires the content-rendered signal. The TUI calls it
// after each full re-render pass.
func (s *Synchronizer) NotifyRendered() {
	for _, fn := range s.rendered {
		fn()
	}
}

// BuildDay (re)builds the view for a day from its current sequence. An
// existing view's canvas is removed first; markers, connectors, and the
// viewport fit are derived fresh, never patched incrementally.
func (s *Synchronizer) BuildDay(d model.Day) *DayView {
	if old, ok := s.views[d.ID]; ok {
		old.Canvas.Remove()
	}

	v := &DayView{
		DayID:         d.ID,
		Label:         d.Label,
		Canvas:        mapview.New(),
		markerByIndex: map[int]*mapview.Marker{},
		indexByMarker: map[*mapview.Marker]int{},
		legByIndex:    map[int]*mapview.Line{},
	}

	var pts []geo.Point
	for i, visit := range d.Visits {
		row := Row{Visit: visit, Display: model.Resolve(visit, s.cat), Index: i}
		v.Rows = append(v.Rows, row)
		if row.Located() {
			m := v.Canvas.AddMarker(*row.Display.Coord, i+1, row.Display.Name)
			v.markerByIndex[i] = m
			v.indexByMarker[m] = i
			pts = append(pts, *row.Display.Coord)
		}
	}

	// Connectors between consecutive located visits, in sequence order.
	prev := -1
	for i := range v.Rows {
		if !v.Rows[i].Located() {
			continue
		}
		if prev >= 0 {
			l := v.Canvas.AddLine(*v.Rows[prev].Display.Coord, *v.Rows[i].Display.Coord)
			v.legByIndex[prev] = l
		}
		prev = i
	}

	if b, ok := geo.BoundsOf(pts); ok {
		v.Canvas.FitBounds(b)
	}

	s.views[d.ID] = v
	s.rebuilds[d.ID]++
	return v
}

// View returns the current view for a day, or nil.
func (s *Synchronizer) View(dayID string) *DayView { return s.views[dayID] }

// DropDay tears down a deleted day's view and releases its handles.
func (s *Synchronizer) DropDay(dayID string) {
	if v, ok := s.views[dayID]; ok {
		v.Canvas.Remove()
		delete(s.views, dayID)
	}
	delete(s.rebuilds, dayID)
}

// Rebuilds reports how many times a day's map layer has been built.
func (s *Synchronizer) Rebuilds(dayID string) int { return s.rebuilds[dayID] }
