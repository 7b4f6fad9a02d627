// Package geo holds the small geographic vocabulary shared by the model,
// the map canvas, and the synchronizer: WGS 84 points and bounding boxes.
package geo

import (
	"fmt"
	"net/url"
)

// Point is a geographic coordinate (WGS 84).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// Extend grows b to include p.
func (b Bounds) Extend(p Point) Bounds {
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
	if p.Lng < b.MinLng {
		b.MinLng = p.Lng
	}
	if p.Lng > b.MaxLng {
		b.MaxLng = p.Lng
	}
	return b
}

// BoundsOf returns the bounding box of pts, or ok=false for an empty set.
func BoundsOf(pts []Point) (Bounds, bool) {
	if len(pts) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		MinLat: pts[0].Lat, MaxLat: pts[0].Lat,
		MinLng: pts[0].Lng, MaxLng: pts[0].Lng,
	}
	for _, p := range pts[1:] {
		b = b.Extend(p)
	}
	return b, true
}

// Pad expands the bounds by frac of each span on every side. A degenerate
// span (single point, or all points on one line) is given a small fixed
// margin so the fitted viewport never collapses to zero area.
func (b Bounds) Pad(frac float64) Bounds {
	const minSpan = 0.0005
	latSpan := b.MaxLat - b.MinLat
	lngSpan := b.MaxLng - b.MinLng
	if latSpan < minSpan {
		latSpan = minSpan
	}
	if lngSpan < minSpan {
		lngSpan = minSpan
	}
	b.MinLat -= latSpan * frac
	b.MaxLat += latSpan * frac
	b.MinLng -= lngSpan * frac
	b.MaxLng += lngSpan * frac
	return b
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}

// Contains reports whether p lies inside (or on the edge of) b.
func (b Bounds) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// WalkingDirectionsURL builds an external walking-directions request
// between two coordinate pairs, for connector-line activation.
func WalkingDirectionsURL(from, to Point) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", fmt.Sprintf("%f,%f", from.Lat, from.Lng))
	q.Set("destination", fmt.Sprintf("%f,%f", to.Lat, to.Lng))
	q.Set("travelmode", "walking")
	return "https://www.google.com/maps/dir/?" + q.Encode()
}
