// Package reorder computes drag-reorder geometry for a day's visit list:
// the live insertion point while a row is being dragged, and the atomic
// splice committed on drop. Everything here is pure; the model applies
// the splice and the TUI draws the indicator.
package reorder

// Rect is a row's vertical extent in the rendered list.
type Rect struct {
	Top    int
	Height int
}

func (r Rect) midpoint() int { return r.Top + r.Height/2 }

// InsertionIndex computes the drop position for the dragged row given the
// pointer's vertical position, using the midpoint rule: scanning
// non-dragged rows top to bottom, the insertion point sits before the
// first row whose vertical midpoint lies below the pointer; below every
// midpoint means insert at the end.
//
// The returned index is in "after removal" coordinates, i.e. directly
// usable as the destination of the remove-then-insert splice.
func InsertionIndex(rects []Rect, dragIdx, pointerY int) int {
	pos := 0
	for i, r := range rects {
		if i == dragIdx {
			continue
		}
		if pointerY < r.midpoint() {
			return pos
		}
		pos++
	}
	return pos
}

// Splice is the single atomic remove/insert pair committed on drop.
type Splice struct {
	From int
	To   int
}

// Plan clamps the drop position and reports whether the drop changes
// anything. An aborted drag simply never calls Plan.
func Plan(length, from, to int) (Splice, bool) {
	if length == 0 || from < 0 || from >= length {
		return Splice{}, false
	}
	if to < 0 {
		to = 0
	}
	if to > length-1 {
		to = length - 1
	}
	if to == from {
		return Splice{}, false
	}
	return Splice{From: from, To: to}, true
}
