package model

import (
	"fmt"
	"strings"

	"wayplan/internal/geo"
)

// AddDay appends a new empty day with a generated identifier and an
// auto-numbered default label, and returns it.
func (it *Itinerary) AddDay() *Day {
	d := Day{
		ID:     newID("day"),
		Label:  fmt.Sprintf("Day %d", len(it.Days)+1),
		Visits: []Visit{},
	}
	it.Days = append(it.Days, d)
	return &it.Days[len(it.Days)-1]
}

// DeleteDay removes the day. The destructive-action confirmation for a
// non-empty day is the caller's responsibility (see Day.Empty).
func (it *Itinerary) DeleteDay(dayID string) error {
	for i := range it.Days {
		if it.Days[i].ID == dayID {
			it.Days = append(it.Days[:i], it.Days[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("model.Itinerary.DeleteDay: day %q: %w", dayID, ErrNotFound)
}

// RenameDay replaces the day's label. The identifier never changes.
func (it *Itinerary) RenameDay(dayID, label string) error {
	d := it.Day(dayID)
	if d == nil {
		return fmt.Errorf("model.Itinerary.RenameDay: day %q: %w", dayID, ErrNotFound)
	}
	d.Label = label
	return nil
}

// AddVisit appends a catalog-backed visit reference. Adding an identifier
// already present in the day is an idempotent no-op, reported as
// ErrDuplicate so callers can distinguish it without re-scanning.
func (it *Itinerary) AddVisit(dayID, placeID string) error {
	d := it.Day(dayID)
	if d == nil {
		return fmt.Errorf("model.Itinerary.AddVisit: day %q: %w", dayID, ErrNotFound)
	}
	if d.visitIndex(placeID) >= 0 {
		return fmt.Errorf("model.Itinerary.AddVisit: %q: %w", placeID, ErrDuplicate)
	}
	d.Visits = append(d.Visits, Visit{ID: placeID, Origin: OriginCatalog})
	return nil
}

// CustomVisitParams carries the full field set of the free-form entry form.
type CustomVisitParams struct {
	Name    string
	Alt     string
	City    string
	Time    string
	Note    string
	MapLink string
	Booking string
	Coord   *geo.Point
}

// AddCustomVisit appends a free-form visit. A blank name rejects the whole
// operation with ErrValidation; nothing is mutated.
func (it *Itinerary) AddCustomVisit(dayID string, p CustomVisitParams) (*Visit, error) {
	d := it.Day(dayID)
	if d == nil {
		return nil, fmt.Errorf("model.Itinerary.AddCustomVisit: day %q: %w", dayID, ErrNotFound)
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("model.Itinerary.AddCustomVisit: empty name: %w", ErrValidation)
	}
	v := Visit{
		ID:      newID("loc"),
		Origin:  OriginCustom,
		Time:    p.Time,
		Note:    p.Note,
		MapLink: p.MapLink,
		Booking: p.Booking,
		Custom: &CustomFields{
			Name:  strings.TrimSpace(p.Name),
			Alt:   p.Alt,
			City:  p.City,
			Coord: p.Coord,
		},
	}
	d.Visits = append(d.Visits, v)
	return &d.Visits[len(d.Visits)-1], nil
}

// RemoveVisit removes the first visit with the identifier. An absent
// identifier is a no-op, not an error.
func (it *Itinerary) RemoveVisit(dayID, visitID string) error {
	d := it.Day(dayID)
	if d == nil {
		return fmt.Errorf("model.Itinerary.RemoveVisit: day %q: %w", dayID, ErrNotFound)
	}
	i := d.visitIndex(visitID)
	if i < 0 {
		return nil
	}
	d.Visits = append(d.Visits[:i], d.Visits[i+1:]...)
	return nil
}

// VisitPatch updates a visit in place. Nil pointer fields are left
// untouched. Name/Alt/City/Coord apply only to custom visits; on a
// catalog-backed visit they reject the whole patch with ErrReadOnlyField.
type VisitPatch struct {
	Time     *string
	Note     *string
	MapLink  *string
	Booking  *string
	Name     *string
	Alt      *string
	City     *string
	Coord    *geo.Point
	SetCoord bool // distinguishes "clear coordinates" (Coord=nil) from "leave alone"
}

func (p VisitPatch) touchesDisplayFields() bool {
	return p.Name != nil || p.Alt != nil || p.City != nil || p.SetCoord
}

// EditVisit applies the patch atomically: validation happens before any
// field is written.
func (it *Itinerary) EditVisit(dayID, visitID string, p VisitPatch) error {
	d := it.Day(dayID)
	if d == nil {
		return fmt.Errorf("model.Itinerary.EditVisit: day %q: %w", dayID, ErrNotFound)
	}
	i := d.visitIndex(visitID)
	if i < 0 {
		return fmt.Errorf("model.Itinerary.EditVisit: visit %q: %w", visitID, ErrNotFound)
	}
	v := &d.Visits[i]
	if p.touchesDisplayFields() && v.Origin != OriginCustom {
		return fmt.Errorf("model.Itinerary.EditVisit: visit %q: %w", visitID, ErrReadOnlyField)
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("model.Itinerary.EditVisit: empty name: %w", ErrValidation)
	}

	if p.Time != nil {
		v.Time = *p.Time
	}
	if p.Note != nil {
		v.Note = *p.Note
	}
	if p.MapLink != nil {
		v.MapLink = *p.MapLink
	}
	if p.Booking != nil {
		v.Booking = *p.Booking
	}
	if v.Origin == OriginCustom {
		if v.Custom == nil {
			v.Custom = &CustomFields{}
		}
		if p.Name != nil {
			v.Custom.Name = strings.TrimSpace(*p.Name)
		}
		if p.Alt != nil {
			v.Custom.Alt = *p.Alt
		}
		if p.City != nil {
			v.Custom.City = *p.City
		}
		if p.SetCoord {
			v.Custom.Coord = p.Coord
		}
	}
	return nil
}

// MoveVisit relocates the visit at from to position to within the day's
// sequence as a single splice. Equal indexes are a no-op.
func (it *Itinerary) MoveVisit(dayID string, from, to int) error {
	d := it.Day(dayID)
	if d == nil {
		return fmt.Errorf("model.Itinerary.MoveVisit: day %q: %w", dayID, ErrNotFound)
	}
	n := len(d.Visits)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("model.Itinerary.MoveVisit: from=%d to=%d len=%d: %w", from, to, n, ErrBadIndex)
	}
	if from == to {
		return nil
	}
	v := d.Visits[from]
	rest := append(d.Visits[:from], d.Visits[from+1:]...)
	rest = append(rest, Visit{})
	copy(rest[to+1:], rest[to:])
	rest[to] = v
	d.Visits = rest
	return nil
}
