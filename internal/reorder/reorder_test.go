package reorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Five rows of height 2 stacked from y=0: midpoints at 1, 3, 5, 7, 9.
func fiveRows() []Rect {
	rects := make([]Rect, 5)
	for i := range rects {
		rects[i] = Rect{Top: i * 2, Height: 2}
	}
	return rects
}

func TestInsertionIndexMidpointRule(t *testing.T) {
	rects := fiveRows()

	cases := []struct {
		name     string
		dragIdx  int
		pointerY int
		want     int
	}{
		{"above everything", 2, 0, 0},
		{"below first midpoint", 2, 2, 1},
		{"over own slot is a stay", 2, 5, 2},
		{"between third and fourth", 2, 6, 2},
		{"below fourth midpoint", 2, 8, 3},
		{"below everything", 2, 99, 4},
		{"dragging first row down", 0, 4, 1},
		{"dragging last row up", 4, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InsertionIndex(rects, tc.dragIdx, tc.pointerY))
		})
	}
}

func TestInsertionIndexSingleRow(t *testing.T) {
	assert.Equal(t, 0, InsertionIndex([]Rect{{Top: 0, Height: 2}}, 0, 1))
}

func TestPlan(t *testing.T) {
	sp, ok := Plan(5, 2, 0)
	assert.True(t, ok)
	assert.Equal(t, Splice{From: 2, To: 0}, sp)

	_, ok = Plan(5, 2, 2)
	assert.False(t, ok, "same position is a no-op")

	sp, ok = Plan(5, 1, 99)
	assert.True(t, ok)
	assert.Equal(t, 4, sp.To, "destination clamps to the last index")

	_, ok = Plan(0, 0, 0)
	assert.False(t, ok)
	_, ok = Plan(5, 7, 0)
	assert.False(t, ok)
}
