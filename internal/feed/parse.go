package feed

import (
	"regexp"

	"wayplan/internal/geo"
	"wayplan/internal/model"
)

// Feed column labels. Lookup is case-insensitive; longitude is also
// accepted under the misspelling the live sheet has carried for years.
const (
	colTime     = "time" // doubles as the day-header marker column
	colShow     = "show"
	colName     = "name"
	colAltName  = "altname"
	colNote     = "note"
	colMapLink  = "maplink"
	colBooking  = "booking"
	colLat      = "lat"
	colLng      = "longitude"
	colLngTypo  = "longtitude"
	colPageLink = "link"
)

// dayHeaderRe matches "day ordinal, then separator": D<digits> followed by
// a single non-alphanumeric rune, e.g. "D1." or "D12:".
var dayHeaderRe = regexp.MustCompile(`^D[0-9]+[^0-9A-Za-z]`)

// Parse converts the decoded table into an itinerary. Rows are scanned in
// order; a day-header row in the marker column opens a new day and
// contributes no visit. Non-header rows are skipped when hidden, unnamed,
// or encountered before any day has been opened. An empty table yields an
// itinerary with zero days, which is not an error.
func Parse(t Table) (*model.Itinerary, error) {
	idx := colIndex(t.Cols)
	col := func(name string) int {
		i, ok := idx[name]
		if !ok {
			return -1
		}
		return i
	}
	lngCol := col(colLng)
	if lngCol < 0 {
		lngCol = col(colLngTypo)
	}

	it := model.New()
	var day *model.Day
	for _, row := range t.Rows {
		marker := cellAt(row, col(colTime)).Text()
		if dayHeaderRe.MatchString(marker) {
			day = it.AddDay()
			if label := cellAt(row, col(colName)).Text(); label != "" {
				day.Label = label
			}
			continue
		}

		if !cellAt(row, col(colShow)).Bool() {
			continue
		}
		name := cellAt(row, col(colName)).Text()
		if name == "" || day == nil {
			continue
		}

		v := model.Visit{
			Origin:  model.OriginCustom,
			Time:    marker,
			Note:    cellAt(row, col(colNote)).Text(),
			MapLink: cellAt(row, col(colMapLink)).Text(),
			Booking: cellAt(row, col(colBooking)).Text(),
			Page:    cellAt(row, col(colPageLink)).Text(),
			Custom: &model.CustomFields{
				Name: name,
				Alt:  cellAt(row, col(colAltName)).Text(),
			},
		}
		// Both coordinates must be present and numeric for the visit to be
		// located; a half-filled pair yields no coordinates at all.
		lat, okLat := cellAt(row, col(colLat)).Float()
		lng, okLng := cellAt(row, lngCol).Float()
		if okLat && okLng {
			v.Custom.Coord = &geo.Point{Lat: lat, Lng: lng}
		}
		v.ID = visitID(v.Page, day)
		day.Visits = append(day.Visits, v)
	}
	return it, nil
}

// visitID prefers the page-link identifier (unique per location in the
// source sheet); rows without one, or with a colliding one, fall back to a
// generated identifier so per-day uniqueness always holds.
func visitID(page string, day *model.Day) string {
	if page != "" {
		taken := false
		for _, v := range day.Visits {
			if v.ID == page {
				taken = true
				break
			}
		}
		if !taken {
			return page
		}
	}
	return model.NewVisitID()
}
