package syncview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayplan/internal/geo"
	"wayplan/internal/model"
)

type fakeCatalog map[string]model.CatalogEntry

func (c fakeCatalog) Entry(id string) (model.CatalogEntry, bool) {
	e, ok := c[id]
	return e, ok
}

var cat = fakeCatalog{
	"sensoji":   {Title: "Sensō-ji", City: "Tokyo", Coord: geo.Point{Lat: 35.714, Lng: 139.796}},
	"skytree":   {Title: "Tokyo Skytree", City: "Tokyo", Coord: geo.Point{Lat: 35.710, Lng: 139.810}},
	"ueno-park": {Title: "Ueno Park", City: "Tokyo", Coord: geo.Point{Lat: 35.714, Lng: 139.773}},
}

// mixedDay: visits 0, 1, 3 are located; visit 2 (custom, no coords) is
// list-only.
func mixedDay(t *testing.T) (*model.Itinerary, model.Day) {
	t.Helper()
	it := model.New()
	d := it.AddDay()
	require.NoError(t, it.AddVisit(d.ID, "sensoji"))
	require.NoError(t, it.AddVisit(d.ID, "skytree"))
	_, err := it.AddCustomVisit(d.ID, model.CustomVisitParams{Name: "Mystery spot"})
	require.NoError(t, err)
	require.NoError(t, it.AddVisit(d.ID, "ueno-park"))
	return it, *it.Day(d.ID)
}

func TestBuildDaySparseMarkerMapping(t *testing.T) {
	_, day := mixedDay(t)
	v := New(cat).BuildDay(day)

	require.Len(t, v.Rows, 4)
	_, ok := v.Marker(0)
	assert.True(t, ok)
	_, ok = v.Marker(2)
	assert.False(t, ok, "unlocated visit must have no marker entry")
	assert.Len(t, v.Canvas.Markers(), 3)

	// Badges carry the original sequence index, not the marker ordinal.
	m, _ := v.Marker(3)
	assert.Equal(t, 4, m.Badge)
}

func TestConnectorsSkipUnlocatedVisits(t *testing.T) {
	_, day := mixedDay(t)
	v := New(cat).BuildDay(day)

	// Located sequence is 0 → 1 → 3: two legs.
	assert.Len(t, v.Canvas.Lines(), 2)
	_, ok := v.Leg(1)
	assert.True(t, ok, "leg from row 1 jumps over the unlocated row 2")
	_, ok = v.Leg(2)
	assert.False(t, ok)
	_, ok = v.Leg(3)
	assert.False(t, ok, "last located visit has no outgoing leg")

	u, ok := v.LegURL(0)
	require.True(t, ok)
	assert.Contains(t, u, "travelmode=walking")
}

func TestHoverTogglesExactlyOneMarker(t *testing.T) {
	_, day := mixedDay(t)
	v := New(cat).BuildDay(day)

	v.Hover(1, true)
	for i := range v.Rows {
		m, ok := v.Marker(i)
		if !ok {
			continue
		}
		assert.Equal(t, i == 1, m.Hovered(), "only marker 1 may be highlighted (i=%d)", i)
	}
	assert.True(t, v.Rows[1].Hovered)

	v.Hover(1, false)
	m, _ := v.Marker(1)
	assert.False(t, m.Hovered())
}

func TestHoverUnlocatedRowHasNoMarkerSideEffect(t *testing.T) {
	_, day := mixedDay(t)
	v := New(cat).BuildDay(day)

	v.Hover(2, true)
	assert.True(t, v.Rows[2].Hovered)
	for _, m := range v.Canvas.Markers() {
		assert.False(t, m.Hovered())
	}
}

func TestHoverMarkerHighlightsRow(t *testing.T) {
	_, day := mixedDay(t)
	v := New(cat).BuildDay(day)

	m, _ := v.Marker(3)
	v.HoverMarker(m, true)
	assert.True(t, v.Rows[3].Hovered)
	assert.True(t, m.Hovered())

	v.ClearHover()
	assert.False(t, v.Rows[3].Hovered)
	assert.False(t, m.Hovered())
}

func TestCenterOnLocatedRow(t *testing.T) {
	_, day := mixedDay(t)
	v := New(cat).BuildDay(day)

	assert.True(t, v.Center(0))
	assert.False(t, v.Center(2), "centering an unlocated row is refused")
}

func TestReorderTriggersExactlyOneRebuild(t *testing.T) {
	it, day := mixedDay(t)
	s := New(cat)
	s.BuildDay(day)
	require.Equal(t, 1, s.Rebuilds(day.ID))

	old := s.View(day.ID)
	require.NoError(t, it.MoveVisit(day.ID, 3, 0))
	s.BuildDay(*it.Day(day.ID))

	assert.Equal(t, 2, s.Rebuilds(day.ID), "one move, one rebuild")
	assert.True(t, old.Canvas.Removed(), "previous canvas must be torn down")

	fresh := s.View(day.ID)
	assert.Equal(t, "ueno-park", fresh.Rows[0].Visit.ID)
	m, ok := fresh.Marker(0)
	require.True(t, ok)
	assert.Equal(t, 1, m.Badge, "badges follow the new sequence order")
}

func TestDropDayReleasesHandles(t *testing.T) {
	_, day := mixedDay(t)
	s := New(cat)
	v := s.BuildDay(day)

	s.DropDay(day.ID)
	assert.Nil(t, s.View(day.ID))
	assert.True(t, v.Canvas.Removed())
	assert.Equal(t, 0, s.Rebuilds(day.ID))
}

func TestRenderedSignal(t *testing.T) {
	s := New(cat)
	fired := 0
	s.OnRendered(func() { fired++ })
	s.NotifyRendered()
	s.NotifyRendered()
	assert.Equal(t, 2, fired)
}

func TestEmptyDayBuildsPlaceholderCanvas(t *testing.T) {
	it := model.New()
	d := it.AddDay()
	v := New(cat).BuildDay(*d)
	assert.Empty(t, v.Rows)
	assert.Empty(t, v.Canvas.Markers())
}
