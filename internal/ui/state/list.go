package state

import "github.com/quickvc/commit-control/internal/action"

// List holds the presentation state of the commit list: the full item set,
// the filtered view, cursor position and viewport offset.
type List struct {
	Items          []action.Item
	Full           []action.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList constructs list state over the given items with no selection.
func NewList(items []action.Item) *List {
	l := &List{Cursor: -1, LastCursor: -1}
	l.UpdateItems(items)
	return l
}

// UpdateItems replaces the item set wholesale, reapplying the filter and
// keeping the viewport where possible.
func (l *List) UpdateItems(items []action.Item) {
	prevOffset := l.ViewportOffset
	l.Full = CloneItems(items)
	l.applyFilter()
	if len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	if prevOffset < 0 || prevOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
		return
	}
	l.ViewportOffset = prevOffset
}

// IndexOf returns the position of an item identifier in the filtered view,
// or -1.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// CurrentItem returns the item under the cursor.
func (l *List) CurrentItem() (action.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return action.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// CloneItems returns an independent copy of items.
func CloneItems(items []action.Item) []action.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]action.Item, len(items))
	copy(dup, items)
	return dup
}
