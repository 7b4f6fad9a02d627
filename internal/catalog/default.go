package catalog

import "wayplan/internal/model"

// DefaultItinerary builds the built-in reference itinerary used when
// nothing valid is persisted. It only references identifiers present in
// the catalog, so resolution never falls back to placeholders.
func DefaultItinerary(cat *Catalog) *model.Itinerary {
	days := []struct {
		label  string
		places []string
	}{
		{"Tokyo east", []string{"sensoji", "skytree", "ueno-park", "ameyoko", "akihabara"}},
		{"Tokyo west", []string{"meiji-jingu", "shibuya-crossing", "tsukiji-market", "teamlab-planets"}},
		{"Kyoto", []string{"fushimi-inari", "kiyomizudera", "nishiki-market", "kinkakuji", "arashiyama"}},
		{"Osaka + Nara", []string{"osaka-castle", "kuromon-market", "dotonbori", "nara-park", "todaiji"}},
	}

	it := model.New()
	for _, def := range days {
		d := it.AddDay()
		d.Label = def.label
		for _, id := range def.places {
			if _, ok := cat.Lookup(id); !ok {
				continue
			}
			_ = it.AddVisit(d.ID, id)
		}
	}
	return it
}
