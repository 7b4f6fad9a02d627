package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func b(v bool) *bool       { return &v }

// feedCols mirrors the live sheet's header, misspelled longitude included.
var feedCols = []string{"time", "show", "name", "altname", "note", "maplink", "booking", "lat", "longtitude", "link"}

func row(cells ...Cell) Row { return Row(cells) }

func TestParseTwoDaysOneVisibleVisitEach(t *testing.T) {
	table := Table{
		Cols: feedCols,
		Rows: []Row{
			row(Cell{S: "D1."}, Cell{}, Cell{S: "Tokyo east"}),
			row(Cell{S: "09:00"}, Cell{B: b(true)}, Cell{S: "Sensō-ji"}, Cell{}, Cell{}, Cell{}, Cell{}, Cell{N: f(35.71)}, Cell{N: f(139.79)}, Cell{S: "sensoji"}),
			row(Cell{S: "11:00"}, Cell{B: b(false)}, Cell{S: "Hidden place"}),
			row(Cell{S: "D2:"}, Cell{}, Cell{S: "Kyoto"}),
			row(Cell{S: "10:00"}, Cell{S: "TRUE"}, Cell{S: "Fushimi Inari"}, Cell{}, Cell{}, Cell{}, Cell{}, Cell{N: f(34.96)}, Cell{N: f(135.77)}, Cell{S: "fushimi-inari"}),
			row(Cell{S: "12:00"}, Cell{S: "FALSE"}, Cell{S: "Also hidden"}),
		},
	}

	it, err := Parse(table)
	require.NoError(t, err)
	require.Len(t, it.Days, 2)
	assert.Equal(t, "Tokyo east", it.Days[0].Label)
	assert.Equal(t, "Kyoto", it.Days[1].Label)
	require.Len(t, it.Days[0].Visits, 1)
	require.Len(t, it.Days[1].Visits, 1)
	assert.Equal(t, "sensoji", it.Days[0].Visits[0].ID)
	assert.Equal(t, "fushimi-inari", it.Days[1].Visits[0].ID)
}

func TestParseHalfLocatedRowYieldsNoCoordinates(t *testing.T) {
	table := Table{
		Cols: feedCols,
		Rows: []Row{
			row(Cell{S: "D1."}, Cell{}, Cell{S: "Day"}),
			row(Cell{S: ""}, Cell{B: b(true)}, Cell{S: "No longitude"}, Cell{}, Cell{}, Cell{}, Cell{}, Cell{N: f(35.0)}),
			row(Cell{S: ""}, Cell{B: b(true)}, Cell{S: "Bad longitude"}, Cell{}, Cell{}, Cell{}, Cell{}, Cell{N: f(35.0)}, Cell{S: "not-a-number"}),
			row(Cell{S: ""}, Cell{B: b(true)}, Cell{S: "String coords"}, Cell{}, Cell{}, Cell{}, Cell{}, Cell{S: "35.5"}, Cell{S: "139.5"}),
		},
	}

	it, err := Parse(table)
	require.NoError(t, err)
	require.Len(t, it.Days, 1)
	vs := it.Days[0].Visits
	require.Len(t, vs, 3)
	assert.Nil(t, vs[0].Custom.Coord, "missing longitude must yield an unlocated visit")
	assert.Nil(t, vs[1].Custom.Coord, "non-numeric longitude must yield an unlocated visit")
	require.NotNil(t, vs[2].Custom.Coord, "numeric strings parse as coordinates")
	assert.Equal(t, 139.5, vs[2].Custom.Coord.Lng)
}

func TestParseSkipRules(t *testing.T) {
	table := Table{
		Cols: feedCols,
		Rows: []Row{
			// Before any day header: skipped even when visible and named.
			row(Cell{S: "08:00"}, Cell{B: b(true)}, Cell{S: "Too early"}),
			row(Cell{S: "D1."}, Cell{}, Cell{S: "Day"}),
			// Empty name: skipped.
			row(Cell{S: "09:00"}, Cell{B: b(true)}, Cell{}),
			// Empty show cell evaluates false: skipped.
			row(Cell{S: "10:00"}, Cell{}, Cell{S: "Unchecked"}),
			row(Cell{S: "11:00"}, Cell{B: b(true)}, Cell{S: "Kept"}),
		},
	}

	it, err := Parse(table)
	require.NoError(t, err)
	require.Len(t, it.Days, 1)
	require.Len(t, it.Days[0].Visits, 1)
	assert.Equal(t, "Kept", it.Days[0].Visits[0].Custom.Name)
}

func TestParseEmptyTable(t *testing.T) {
	it, err := Parse(Table{})
	require.NoError(t, err)
	assert.Empty(t, it.Days)
}

func TestParseDayHeaderNeedsSeparator(t *testing.T) {
	table := Table{
		Cols: feedCols,
		Rows: []Row{
			row(Cell{S: "D1."}, Cell{}, Cell{S: "Day"}),
			// "D2" with no separator is an ordinary time cell, not a header.
			row(Cell{S: "D2"}, Cell{B: b(true)}, Cell{S: "Dock 2 tour"}),
		},
	}

	it, err := Parse(table)
	require.NoError(t, err)
	require.Len(t, it.Days, 1)
	require.Len(t, it.Days[0].Visits, 1)
	assert.Equal(t, "D2", it.Days[0].Visits[0].Time)
}

func TestParseGeneratesIDWhenPageLinkMissingOrDuplicate(t *testing.T) {
	table := Table{
		Cols: feedCols,
		Rows: []Row{
			row(Cell{S: "D1."}, Cell{}, Cell{S: "Day"}),
			row(Cell{}, Cell{B: b(true)}, Cell{S: "A"}, Cell{}, Cell{}, Cell{}, Cell{}, Cell{}, Cell{}, Cell{S: "spot"}),
			row(Cell{}, Cell{B: b(true)}, Cell{S: "B"}, Cell{}, Cell{}, Cell{}, Cell{}, Cell{}, Cell{}, Cell{S: "spot"}),
			row(Cell{}, Cell{B: b(true)}, Cell{S: "C"}),
		},
	}

	it, err := Parse(table)
	require.NoError(t, err)
	vs := it.Days[0].Visits
	require.Len(t, vs, 3)
	assert.Equal(t, "spot", vs[0].ID)
	assert.NotEqual(t, "spot", vs[1].ID, "duplicate page link must fall back to a generated id")
	assert.NotEmpty(t, vs[1].ID)
	assert.NotEmpty(t, vs[2].ID)
	assert.NotEqual(t, vs[1].ID, vs[2].ID)
}

func TestCellCoercions(t *testing.T) {
	assert.True(t, Cell{S: "TRUE"}.Bool())
	assert.True(t, Cell{S: "true"}.Bool())
	assert.False(t, Cell{S: "FALSE"}.Bool())
	assert.False(t, Cell{}.Bool())
	assert.True(t, Cell{B: b(true)}.Bool())

	v, ok := Cell{S: " 139.79 "}.Float()
	require.True(t, ok)
	assert.Equal(t, 139.79, v)
	_, ok = Cell{S: "x"}.Float()
	assert.False(t, ok)
	_, ok = Cell{}.Float()
	assert.False(t, ok)
}

func TestDecodeTableMixedCellTypes(t *testing.T) {
	body := []byte(`{"cols":["time","show","name","lat","longtitude"],
		"rows":[["09:00",true,"Sensō-ji",35.71,139.79],[null,"FALSE","Hidden",null,null]]}`)

	table, err := DecodeTable(body)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.True(t, table.Rows[0][1].Bool())
	lat, ok := table.Rows[0][3].Float()
	require.True(t, ok)
	assert.Equal(t, 35.71, lat)
	assert.True(t, table.Rows[1][3].Empty())

	_, err = DecodeTable([]byte(`{"cols":1}`))
	assert.Error(t, err)
}
