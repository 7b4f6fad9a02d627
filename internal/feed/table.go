// Package feed pulls the remote tabular itinerary source and parses its
// column-labeled rows into an itinerary. The transport is a plain HTTP
// fetch with a hard timeout; the parser consumes only the decoded
// column/row structure.
package feed

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Cell is one sparse typed table cell. Exactly one of S, N, B is set for
// a populated cell; a fully zero Cell is an empty cell.
type Cell struct {
	S string
	N *float64
	B *bool
}

// Empty reports whether the cell carries no value.
func (c Cell) Empty() bool {
	return c.N == nil && c.B == nil && strings.TrimSpace(c.S) == ""
}

// Text returns the cell's string rendering ("" when empty).
func (c Cell) Text() string {
	switch {
	case c.N != nil:
		return strconv.FormatFloat(*c.N, 'f', -1, 64)
	case c.B != nil:
		return strconv.FormatBool(*c.B)
	default:
		return strings.TrimSpace(c.S)
	}
}

// Bool evaluates the cell as a boolean. Native booleans and
// case-insensitive "TRUE"/"FALSE" strings are honored; anything else
// (including an empty cell) evaluates false.
func (c Cell) Bool() bool {
	if c.B != nil {
		return *c.B
	}
	return strings.EqualFold(strings.TrimSpace(c.S), "true")
}

// Float returns the cell as a float64. String cells are parsed; a
// non-numeric or empty cell returns ok=false.
func (c Cell) Float() (float64, bool) {
	if c.N != nil {
		return *c.N, true
	}
	s := strings.TrimSpace(c.S)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// UnmarshalJSON accepts string, number, boolean, or null cells.
func (c *Cell) UnmarshalJSON(raw []byte) error {
	*c = Cell{}
	if string(raw) == "null" {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		c.S = t
	case float64:
		c.N = &t
	case bool:
		c.B = &t
	default:
		return fmt.Errorf("feed: unsupported cell type %T", v)
	}
	return nil
}

// MarshalJSON emits the cell in its native type (null when empty).
func (c Cell) MarshalJSON() ([]byte, error) {
	switch {
	case c.N != nil:
		return json.Marshal(*c.N)
	case c.B != nil:
		return json.Marshal(*c.B)
	case strings.TrimSpace(c.S) != "":
		return json.Marshal(c.S)
	default:
		return []byte("null"), nil
	}
}

// Row is a sparse sequence of cells aligned to Table.Cols. Short rows are
// valid; missing trailing cells read as empty.
type Row []Cell

// Table is the decoded columnar response: ordered column labels plus rows.
type Table struct {
	Cols []string `json:"cols"`
	Rows []Row    `json:"rows"`
}

// DecodeTable parses the feed endpoint's JSON body.
func DecodeTable(body []byte) (Table, error) {
	var t Table
	if err := json.Unmarshal(body, &t); err != nil {
		return Table{}, fmt.Errorf("feed.DecodeTable: %w", err)
	}
	return t, nil
}

// colIndex maps lowercased column labels to their position.
func colIndex(cols []string) map[string]int {
	idx := make(map[string]int, len(cols))
	for i, name := range cols {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

// cellAt returns the row's cell for a column index, tolerating short rows.
func cellAt(r Row, i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}
