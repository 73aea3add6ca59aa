// Package listview holds an entity collection, the filtered view derived from
// it, and the rows the user has selected.
package listview

import (
	"slices"

	"github.com/unclebandit/audience-crm/internal/filter"
)

// Entity is anything a list can key by id.
type Entity interface {
	GetID() string
}

// View is not safe for concurrent use.
type View[T Entity] struct {
	items    []T
	match    func(T) bool
	selected string
	checked  []string
}

// New builds a view over items. match is evaluated on every read of Filtered;
// a nil match passes everything.
func New[T Entity](items []T, match func(T) bool) *View[T] {
	return &View[T]{items: slices.Clone(items), match: match}
}

func (v *View[T]) SetMatch(match func(T) bool) {
	v.match = match
}

// Reset replaces the collection, dropping selections whose rows disappeared.
func (v *View[T]) Reset(items []T) {
	v.items = slices.Clone(items)
	if _, ok := v.Find(v.selected); !ok {
		v.selected = ""
	}
	v.checked = slices.DeleteFunc(v.checked, func(id string) bool {
		_, ok := v.Find(id)
		return !ok
	})
}

func (v *View[T]) Items() []T {
	return slices.Clone(v.items)
}

func (v *View[T]) Len() int {
	return len(v.items)
}

// Filtered recomputes the visible rows.
func (v *View[T]) Filtered() []T {
	if v.match == nil {
		return v.Items()
	}
	return filter.Apply(v.items, v.match)
}

func (v *View[T]) Find(id string) (T, bool) {
	for _, item := range v.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (v *View[T]) Append(item T) {
	v.items = append(v.items, item)
}

// Replace swaps the row with the same id. It reports whether one was found.
func (v *View[T]) Replace(item T) bool {
	for i := range v.items {
		if v.items[i].GetID() == item.GetID() {
			v.items[i] = item
			return true
		}
	}
	return false
}

// Delete removes the row and clears any selection pointing at it.
func (v *View[T]) Delete(id string) bool {
	n := len(v.items)
	v.items = slices.DeleteFunc(v.items, func(item T) bool { return item.GetID() == id })
	if v.selected == id {
		v.selected = ""
	}
	v.Uncheck(id)
	return len(v.items) != n
}

// Select makes id the selected row. Selecting the row that is already
// selected deselects it. It reports whether a row is selected afterwards.
func (v *View[T]) Select(id string) (bool, bool) {
	if _, ok := v.Find(id); !ok {
		return false, false
	}
	if v.selected == id {
		v.selected = ""
		return false, true
	}
	v.selected = id
	return true, true
}

func (v *View[T]) Deselect() {
	v.selected = ""
}

// Selected returns the selected row, re-read from the collection.
func (v *View[T]) Selected() (T, bool) {
	if v.selected == "" {
		var zero T
		return zero, false
	}
	return v.Find(v.selected)
}

func (v *View[T]) SelectedID() string {
	return v.selected
}

// ====================== Checkbox selection ======================

func (v *View[T]) Check(id string) bool {
	if _, ok := v.Find(id); !ok {
		return false
	}
	if !slices.Contains(v.checked, id) {
		v.checked = append(v.checked, id)
	}
	return true
}

func (v *View[T]) Uncheck(id string) {
	v.checked = slices.DeleteFunc(v.checked, func(c string) bool { return c == id })
}

// CheckAll checks every visible row, or clears the checks when all is false.
func (v *View[T]) CheckAll(all bool) {
	v.checked = v.checked[:0]
	if !all {
		return
	}
	for _, item := range v.Filtered() {
		v.checked = append(v.checked, item.GetID())
	}
}

func (v *View[T]) Checked() []T {
	out := make([]T, 0, len(v.checked))
	for _, id := range v.checked {
		if item, ok := v.Find(id); ok {
			out = append(out, item)
		}
	}
	return out
}

func (v *View[T]) IsChecked(id string) bool {
	return slices.Contains(v.checked, id)
}
