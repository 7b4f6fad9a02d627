package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *Catalog {
	return FromPlaces(map[string]Place{
		"b-temple": {Title: "B Temple", City: "Kyoto", Lat: 35, Lng: 135.7},
		"a-shrine": {Title: "A Shrine", City: "Kyoto", Lat: 34.9, Lng: 135.77},
		"z-tower":  {Title: "Z Tower", City: "Osaka", Lat: 34.7, Lng: 135.5},
	})
}

func TestBuiltinCatalogDecodes(t *testing.T) {
	c := Builtin()
	assert.Greater(t, c.Len(), 0)

	p, ok := c.Lookup("sensoji")
	require.True(t, ok)
	assert.Equal(t, "Tokyo", p.City)
}

func TestGroupedSortsCitiesAndTitles(t *testing.T) {
	groups := testCatalog().Grouped()
	require.Len(t, groups, 2)
	assert.Equal(t, "Kyoto", groups[0].City)
	assert.Equal(t, []string{"a-shrine", "b-temple"}, groups[0].IDs, "sorted by title, not identifier")
	assert.Equal(t, "Osaka", groups[1].City)
}

func TestFilterMatchesTitleCityAndID(t *testing.T) {
	c := testCatalog()

	groups := c.Filter("temple")
	require.Len(t, groups, 1)
	assert.Equal(t, []string{"b-temple"}, groups[0].IDs)

	groups = c.Filter("osaka")
	require.Len(t, groups, 1)
	assert.Equal(t, "Osaka", groups[0].City)

	assert.Empty(t, c.Filter("nowhere"))
}

func TestEntryResolvesCoordinates(t *testing.T) {
	e, ok := testCatalog().Entry("z-tower")
	require.True(t, ok)
	assert.Equal(t, "Z Tower", e.Title)
	assert.Equal(t, 135.5, e.Coord.Lng)

	_, ok = testCatalog().Entry("missing")
	assert.False(t, ok)
}

func TestDefaultItineraryReferencesKnownPlaces(t *testing.T) {
	cat := Builtin()
	it := DefaultItinerary(cat)
	require.NotEmpty(t, it.Days)
	for _, d := range it.Days {
		for _, v := range d.Visits {
			_, ok := cat.Lookup(v.ID)
			assert.True(t, ok, "default itinerary references unknown place %q", v.ID)
		}
	}
}

func TestParseRejectsMissingTitle(t *testing.T) {
	_, err := Parse([]byte("x:\n  city: Tokyo\n"))
	assert.Error(t, err)
}
