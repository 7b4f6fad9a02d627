// Package mapview implements the map capability the planner consumes:
// a canvas bound to a pane, markers with badges and callouts, connector
// polylines, viewport fitting, pan/zoom, and teardown. The rendering
// substrate is a character grid using an equirectangular projection of
// the fitted bounds.
package mapview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wayplan/internal/geo"
)

// viewportPadding is the fixed margin applied when fitting bounds, as a
// fraction of each span.
const viewportPadding = 0.15

// Marker is a live widget handle for one located visit.
type Marker struct {
	Point   geo.Point
	Badge   int // 1-based sequence number in the day
	Label   string
	hovered bool
}

// SetHover toggles the highlight visual state. A hovered marker is also
// raised above sibling markers when cells collide.
func (m *Marker) SetHover(on bool) { m.hovered = on }

// Hovered reports the current highlight state.
func (m *Marker) Hovered() bool { return m.hovered }

// Line is a directional connector between two consecutive located visits.
type Line struct {
	A, B    geo.Point
	hovered bool
}

// SetHover thickens/brightens the connector.
func (l *Line) SetHover(on bool) { l.hovered = on }

// Hovered reports the current highlight state.
func (l *Line) Hovered() bool { return l.hovered }

// Canvas owns the live marker and line handles for one day's map. It is
// torn down and rebuilt whole whenever the day's visit set changes.
type Canvas struct {
	markers []*Marker
	lines   []*Line

	bounds  geo.Bounds
	fitted  bool
	removed bool

	// openCallout is the marker whose detail callout is showing, if any.
	openCallout *Marker
}

// New returns an empty canvas with no viewport.
func New() *Canvas { return &Canvas{} }

// AddMarker places a marker with a sequence badge at a coordinate.
func (c *Canvas) AddMarker(p geo.Point, badge int, label string) *Marker {
	m := &Marker{Point: p, Badge: badge, Label: label}
	c.markers = append(c.markers, m)
	return m
}

// AddLine draws a connector between two coordinates.
func (c *Canvas) AddLine(a, b geo.Point) *Line {
	l := &Line{A: a, B: b}
	c.lines = append(c.lines, l)
	return l
}

// Markers returns the live marker handles in add order.
func (c *Canvas) Markers() []*Marker { return c.markers }

// Lines returns the live line handles in add order.
func (c *Canvas) Lines() []*Line { return c.lines }

// FitBounds fits the viewport to a bounding set with the fixed padding
// margin.
func (c *Canvas) FitBounds(b geo.Bounds) {
	c.bounds = b.Pad(viewportPadding)
	c.fitted = true
}

// SetView pans and zooms to a point. Higher zoom means a tighter span;
// zoom 0 is roughly a city district.
func (c *Canvas) SetView(p geo.Point, zoom int) {
	span := 0.05
	for i := 0; i < zoom && span > 0.001; i++ {
		span /= 2
	}
	c.bounds = geo.Bounds{
		MinLat: p.Lat - span, MaxLat: p.Lat + span,
		MinLng: p.Lng - span, MaxLng: p.Lng + span,
	}
	c.fitted = true
}

// OpenCallout shows the marker's detail callout (closing any other).
func (c *Canvas) OpenCallout(m *Marker) { c.openCallout = m }

// CloseCallout hides the open callout, if any.
func (c *Canvas) CloseCallout() { c.openCallout = nil }

// Opened returns the marker whose callout is showing, or nil.
func (c *Canvas) Opened() *Marker { return c.openCallout }

// Remove tears the canvas down. A removed canvas renders nothing and
// drops its widget handles, so stale index mappings cannot survive it.
func (c *Canvas) Remove() {
	c.removed = true
	c.markers = nil
	c.lines = nil
	c.openCallout = nil
}

// Removed reports whether Remove was called.
func (c *Canvas) Removed() bool { return c.removed }

var (
	markerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"})
	markerHoverStyle = lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	lineStyle        = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "245", Dark: "241"})
	lineHoverStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "166", Dark: "214"})
	calloutStyle     = lipgloss.NewStyle().Italic(true)
)

// Placeholder is rendered when a day has no located visits.
const Placeholder = "No places with coordinates in this day yet."

func (c *Canvas) project(p geo.Point, w, h int) (int, int, bool) {
	latSpan := c.bounds.MaxLat - c.bounds.MinLat
	lngSpan := c.bounds.MaxLng - c.bounds.MinLng
	if latSpan <= 0 || lngSpan <= 0 {
		return 0, 0, false
	}
	x := int((p.Lng - c.bounds.MinLng) / lngSpan * float64(w-1))
	y := int((c.bounds.MaxLat - p.Lat) / latSpan * float64(h-1))
	if x < 0 || x >= w || y < 0 || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

// MarkerAt hit-tests a pane cell against the rendered marker positions,
// for hover in the map-to-list direction.
func (c *Canvas) MarkerAt(x, y, w, h int) *Marker {
	if c.removed || !c.fitted || w < 2 || h < 2 {
		return nil
	}
	// Scan back to front so a raised (hovered) marker wins collisions.
	for i := len(c.markers) - 1; i >= 0; i-- {
		mx, my, ok := c.project(c.markers[i].Point, w, h)
		if ok && mx == x && my == y {
			return c.markers[i]
		}
	}
	return nil
}

func badgeRune(badge int) rune {
	switch {
	case badge >= 1 && badge <= 9:
		return rune('0' + badge)
	case badge >= 10 && badge <= 35:
		return rune('a' + badge - 10)
	default:
		return '+'
	}
}

type cell struct {
	r     rune
	style lipgloss.Style
	set   bool
}

// Render draws the canvas into a w×h pane. Zero markers produce the
// explanatory placeholder instead of a map.
func (c *Canvas) Render(w, h int) string {
	if c.removed {
		return ""
	}
	if len(c.markers) == 0 {
		return Placeholder
	}
	if !c.fitted || w < 2 || h < 2 {
		return ""
	}

	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
	}
	put := func(x, y int, r rune, st lipgloss.Style) {
		if x >= 0 && x < w && y >= 0 && y < h {
			grid[y][x] = cell{r: r, style: st, set: true}
		}
	}

	for _, l := range c.lines {
		ax, ay, okA := c.project(l.A, w, h)
		bx, by, okB := c.project(l.B, w, h)
		if !okA || !okB {
			continue
		}
		r, st := '·', lineStyle
		if l.hovered {
			r, st = '●', lineHoverStyle
		}
		plotLine(ax, ay, bx, by, func(x, y int) { put(x, y, r, st) })
	}

	// Unhovered markers first, hovered last so they sit on top.
	for _, m := range c.markers {
		if m.hovered {
			continue
		}
		x, y, ok := c.project(m.Point, w, h)
		if ok {
			put(x, y, badgeRune(m.Badge), markerStyle)
		}
	}
	for _, m := range c.markers {
		if !m.hovered {
			continue
		}
		x, y, ok := c.project(m.Point, w, h)
		if ok {
			put(x, y, badgeRune(m.Badge), markerHoverStyle)
		}
	}

	var sb strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			cl := grid[y][x]
			if !cl.set {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(cl.style.Render(string(cl.r)))
		}
	}

	if c.openCallout != nil {
		sb.WriteByte('\n')
		sb.WriteString(calloutStyle.Render(
			fmt.Sprintf("[%c] %s", badgeRune(c.openCallout.Badge), c.openCallout.Label)))
	}
	return sb.String()
}

// plotLine walks the Bresenham line from (x0,y0) to (x1,y1).
func plotLine(x0, y0, x1, y1 int, visit func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		visit(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
