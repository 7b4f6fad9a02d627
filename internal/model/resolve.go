package model

import "wayplan/internal/geo"

// CatalogEntry is the slice of a catalog place the model needs to render
// a catalog-backed visit.
type CatalogEntry struct {
	Title string
	City  string
	Coord geo.Point
}

// Catalog is the read-only lookup the planner is handed before it
// initializes. The concrete implementation lives in internal/catalog.
type Catalog interface {
	Entry(id string) (CatalogEntry, bool)
}

// Display is the uniform record every view renders from, regardless of
// visit origin. Rendering code never branches on the origin flag.
type Display struct {
	Name    string
	Alt     string
	City    string
	Time    string
	Note    string
	MapLink string
	Booking string
	// Coord is nil for an unlocated visit (list-only, no marker).
	Coord *geo.Point
	// DetailPath is the relative detail-document path for catalog-backed
	// visits ("" when no document convention applies). Not validated.
	DetailPath string
}

// Resolve produces the display record for a visit: inline fields for a
// custom visit, catalog lookup for a reference. A reference whose
// identifier is unknown resolves to a placeholder with no coordinates.
func Resolve(v Visit, cat Catalog) Display {
	d := Display{
		Time:    v.Time,
		Note:    v.Note,
		MapLink: v.MapLink,
		Booking: v.Booking,
	}
	if v.Origin == OriginCustom {
		if v.Page != "" {
			d.DetailPath = "places/" + v.Page + ".md"
		}
		if v.Custom != nil {
			d.Name = v.Custom.Name
			d.Alt = v.Custom.Alt
			d.City = v.Custom.City
			if v.Custom.Coord != nil {
				c := *v.Custom.Coord
				d.Coord = &c
			}
		}
		return d
	}

	d.DetailPath = "places/" + v.ID + ".md"
	if cat == nil {
		d.Name = v.ID
		return d
	}
	e, ok := cat.Entry(v.ID)
	if !ok {
		d.Name = v.ID
		return d
	}
	d.Name = e.Title
	d.City = e.City
	c := e.Coord
	d.Coord = &c
	return d
}
