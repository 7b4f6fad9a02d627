package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wayplan/internal/geo"
)

type fakeCatalog map[string]CatalogEntry

func (c fakeCatalog) Entry(id string) (CatalogEntry, bool) {
	e, ok := c[id]
	return e, ok
}

func TestResolveCatalogBacked(t *testing.T) {
	cat := fakeCatalog{
		"sensoji": {Title: "Sensō-ji", City: "Tokyo", Coord: geo.Point{Lat: 35.71, Lng: 139.79}},
	}
	v := Visit{ID: "sensoji", Origin: OriginCatalog, Time: "morning"}

	d := Resolve(v, cat)
	assert.Equal(t, "Sensō-ji", d.Name)
	assert.Equal(t, "Tokyo", d.City)
	assert.Equal(t, "morning", d.Time)
	require.NotNil(t, d.Coord)
	assert.Equal(t, 139.79, d.Coord.Lng)
	assert.Equal(t, "places/sensoji.md", d.DetailPath)
}

func TestResolveUnknownReferenceIsPlaceholder(t *testing.T) {
	v := Visit{ID: "ghost", Origin: OriginCatalog}
	d := Resolve(v, fakeCatalog{})
	assert.Equal(t, "ghost", d.Name)
	assert.Nil(t, d.Coord, "unknown reference must resolve unlocated")
}

func TestResolveCustomCopiesCoord(t *testing.T) {
	p := geo.Point{Lat: 1, Lng: 2}
	v := Visit{
		ID: "loc-1", Origin: OriginCustom,
		Custom: &CustomFields{Name: "Cafe", Coord: &p},
	}
	d := Resolve(v, nil)
	assert.Equal(t, "Cafe", d.Name)
	assert.Empty(t, d.DetailPath)
	require.NotNil(t, d.Coord)

	d.Coord.Lat = 99
	assert.Equal(t, 1.0, p.Lat, "resolution must not alias the stored coordinate")
}
