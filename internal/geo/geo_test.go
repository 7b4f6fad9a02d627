package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf(nil)
	assert.False(t, ok, "empty point set has no bounds")

	b, ok := BoundsOf([]Point{
		{Lat: 35.68, Lng: 139.76},
		{Lat: 35.71, Lng: 139.70},
		{Lat: 35.66, Lng: 139.73},
	})
	require.True(t, ok)
	assert.Equal(t, 35.66, b.MinLat)
	assert.Equal(t, 35.71, b.MaxLat)
	assert.Equal(t, 139.70, b.MinLng)
	assert.Equal(t, 139.76, b.MaxLng)
}

func TestPadSinglePoint(t *testing.T) {
	b, ok := BoundsOf([]Point{{Lat: 35.68, Lng: 139.76}})
	require.True(t, ok)

	padded := b.Pad(0.1)
	assert.Less(t, padded.MinLat, b.MinLat, "single point still gets a margin")
	assert.Greater(t, padded.MaxLat, b.MaxLat)
	assert.Less(t, padded.MinLng, b.MinLng)
	assert.Greater(t, padded.MaxLng, b.MaxLng)
	assert.True(t, padded.Contains(b.Center()))
}

func TestCenter(t *testing.T) {
	b := Bounds{MinLat: 10, MaxLat: 20, MinLng: 100, MaxLng: 110}
	c := b.Center()
	assert.Equal(t, Point{Lat: 15, Lng: 105}, c)
}

func TestWalkingDirectionsURL(t *testing.T) {
	u := WalkingDirectionsURL(Point{Lat: 35.68, Lng: 139.76}, Point{Lat: 35.69, Lng: 139.70})
	assert.Contains(t, u, "travelmode=walking")
	assert.Contains(t, u, "origin=35.680000%2C139.760000")
	assert.Contains(t, u, "destination=35.690000%2C139.700000")
}
