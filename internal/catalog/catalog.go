// Package catalog loads the read-only place catalog: an identifier-keyed
// lookup from a YAML file, supplied fully formed before the planner
// initializes. The planner never mutates it.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"wayplan/internal/geo"
	"wayplan/internal/model"
)

// Place is one catalog entry.
type Place struct {
	Title string  `yaml:"title"`
	City  string  `yaml:"city"`
	Lat   float64 `yaml:"lat"`
	Lng   float64 `yaml:"lng"`
}

// Catalog is an immutable identifier → place mapping.
type Catalog struct {
	places map[string]Place
}

//go:embed places.yaml
var builtinPlaces []byte

// Builtin returns the catalog embedded in the binary. The embedded file is
// validated at test time, so a decode failure here is a build defect.
func Builtin() *Catalog {
	c, err := Parse(builtinPlaces)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded places.yaml: %v", err))
	}
	return c
}

// Load reads a catalog YAML file from disk.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %w", err)
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog.Load: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML (a mapping of identifier → place).
func Parse(raw []byte) (*Catalog, error) {
	places := map[string]Place{}
	if err := yaml.Unmarshal(raw, &places); err != nil {
		return nil, fmt.Errorf("decode places: %w", err)
	}
	for id, p := range places {
		if strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("place %q: missing title", id)
		}
	}
	return &Catalog{places: places}, nil
}

// FromPlaces builds a catalog from an in-memory map (tests, fixtures).
func FromPlaces(places map[string]Place) *Catalog {
	cp := make(map[string]Place, len(places))
	for id, p := range places {
		cp[id] = p
	}
	return &Catalog{places: cp}
}

// Lookup returns the place for an identifier.
func (c *Catalog) Lookup(id string) (Place, bool) {
	p, ok := c.places[id]
	return p, ok
}

// Entry implements model.Catalog.
func (c *Catalog) Entry(id string) (model.CatalogEntry, bool) {
	p, ok := c.places[id]
	if !ok {
		return model.CatalogEntry{}, false
	}
	return model.CatalogEntry{
		Title: p.Title,
		City:  p.City,
		Coord: geo.Point{Lat: p.Lat, Lng: p.Lng},
	}, true
}

// Len returns the number of places.
func (c *Catalog) Len() int { return len(c.places) }

// CityGroup is a picker section: one city and its place identifiers,
// sorted alphabetically by place title.
type CityGroup struct {
	City string
	IDs  []string
}

// Grouped returns all places grouped by city. Groups are sorted by city
// name, entries within a group by title (case-insensitive).
func (c *Catalog) Grouped() []CityGroup {
	return c.Filter("")
}

// Filter returns the grouped listing restricted to places whose title,
// city, or identifier contains q (case-insensitive). An empty q matches
// everything.
func (c *Catalog) Filter(q string) []CityGroup {
	q = strings.ToLower(strings.TrimSpace(q))
	byCity := map[string][]string{}
	for id, p := range c.places {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Title), q) &&
			!strings.Contains(strings.ToLower(p.City), q) &&
			!strings.Contains(strings.ToLower(id), q) {
			continue
		}
		byCity[p.City] = append(byCity[p.City], id)
	}

	groups := make([]CityGroup, 0, len(byCity))
	for city, ids := range byCity {
		sort.Slice(ids, func(i, j int) bool {
			ti := strings.ToLower(c.places[ids[i]].Title)
			tj := strings.ToLower(c.places[ids[j]].Title)
			if ti != tj {
				return ti < tj
			}
			return ids[i] < ids[j]
		})
		groups = append(groups, CityGroup{City: city, IDs: ids})
	}
	sort.Slice(groups, func(i, j int) bool {
		return strings.ToLower(groups[i].City) < strings.ToLower(groups[j].City)
	})
	return groups
}

// DetailPath returns the relative detail-document path for a place
// identifier. Whether the document exists is not validated.
func DetailPath(id string) string { return "places/" + id + ".md" }
