// Package model defines the itinerary tree (days and visits) and the
// mutation operations the planner applies to it. All mutations preserve
// visit-identifier uniqueness within a day and touch only the index an
// operation names.
package model

import (
	"strings"

	"github.com/google/uuid"

	"wayplan/internal/geo"
)

// SchemaVersion gates whether a persisted itinerary may be used as-is.
// On mismatch the persisted copy is discarded, never field-merged.
const SchemaVersion = "3"

type VisitOrigin string

const (
	// OriginCatalog marks a visit resolved by identifier lookup against
	// the read-only place catalog.
	OriginCatalog VisitOrigin = "catalog"
	// OriginCustom marks a free-form visit whose display fields are
	// stored inline because no catalog entry exists.
	OriginCustom VisitOrigin = "custom"
)

// CustomFields holds the inline display fields of a custom visit.
// Coord is nil for a visit without coordinates; a visit is never
// partially located.
type CustomFields struct {
	Name  string     `json:"name"`
	Alt   string     `json:"alt,omitempty"` // secondary name
	City  string     `json:"city,omitempty"`
	Coord *geo.Point `json:"coord,omitempty"`
}

// Visit is one location entry in a day. Time, note, map link and booking
// annotation are editable for every visit; display fields come from the
// catalog for OriginCatalog visits and from Custom for OriginCustom ones.
type Visit struct {
	ID      string        `json:"id"`
	Origin  VisitOrigin   `json:"origin"`
	Time    string        `json:"time,omitempty"` // free-form, order-significant within the day
	Note    string        `json:"note,omitempty"`
	MapLink string        `json:"mapLink,omitempty"`
	Booking string        `json:"booking,omitempty"`
	// Page is the detail-page identifier for feed-sourced visits whose
	// display fields arrive inline but which still link to a per-location
	// document. Catalog-backed visits use their ID instead.
	Page   string        `json:"page,omitempty"`
	Custom *CustomFields `json:"custom,omitempty"`
}

// Day is an ordered sequence of visits. The identifier is immutable once
// created; the label and the sequence are user-editable. An empty day is
// valid and renders an empty map placeholder.
type Day struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Visits []Visit `json:"visits"`
}

// Empty reports whether the day contains no visits. Deleting a non-empty
// day requires an explicit confirmation in the UI.
func (d Day) Empty() bool { return len(d.Visits) == 0 }

func (d Day) visitIndex(visitID string) int {
	for i := range d.Visits {
		if d.Visits[i].ID == visitID {
			return i
		}
	}
	return -1
}

// Itinerary is the aggregate root: an ordered sequence of days plus the
// schema version token the persistence layer checks on load.
type Itinerary struct {
	Version string `json:"version"`
	Days    []Day  `json:"days"`
}

// New returns an empty itinerary at the current schema version.
func New() *Itinerary {
	return &Itinerary{Version: SchemaVersion}
}

// Day returns a pointer into the itinerary's day slice, or nil.
func (it *Itinerary) Day(dayID string) *Day {
	for i := range it.Days {
		if it.Days[i].ID == dayID {
			return &it.Days[i]
		}
	}
	return nil
}

func newID(prefix string) string {
	return prefix + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0]
}

// NewVisitID generates a fresh visit identifier for callers that build
// visits directly (the feed parser, when a row has no usable page link).
func NewVisitID() string { return newID("loc") }
