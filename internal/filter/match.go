package filter

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Predicate reports whether an item passes one filter dimension.
type Predicate[T any] func(T) bool

// Apply keeps the items that pass every predicate. With no predicates it
// returns a copy of items.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

// MatchText reports whether query is a case-insensitive substring of any
// field. An empty query matches everything; whitespace is significant.
func MatchText(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	fold := cases.Fold()
	q := fold.String(query)
	for _, f := range fields {
		if strings.Contains(fold.String(f), q) {
			return true
		}
	}
	return false
}

// MatchOneOf reports whether value is among selected. No selection matches everything.
func MatchOneOf(selected []string, value string) bool {
	return len(selected) == 0 || slices.Contains(selected, value)
}

// MatchAnyOf reports whether any of values is among selected.
func MatchAnyOf(selected []string, values []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, v := range values {
		if slices.Contains(selected, v) {
			return true
		}
	}
	return false
}

// MatchEquals treats an empty selection as inactive.
func MatchEquals(selected, value string) bool {
	return selected == "" || selected == value
}
