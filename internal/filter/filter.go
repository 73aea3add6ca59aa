// Package filter tracks which filter chips a list view shows, their values,
// and the predicates list views use to narrow their rows.
package filter

import (
	"fmt"
	"slices"
	"time"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
)

// Kind tags a filter so the presentation layer can dispatch on it.
type Kind string

const (
	Text        Kind = "text"
	Select      Kind = "select"
	MultiSelect Kind = "multiSelect"
	Date        Kind = "date"
	DateRange   Kind = "dateRange"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Descriptor declares one filter a view offers.
type Descriptor struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Kind    Kind     `json:"type"`
	Options []Option `json:"options,omitempty"`
	// Pinned filters are always active; removing them only resets the value.
	Pinned bool `json:"pinned,omitempty"`
	// Default is the value a select filter starts with and resets to.
	Default string `json:"default,omitempty"`
	// All is the select value that means "no constraint".
	All string `json:"-"`
}

// Range is an inclusive time window. A zero bound is open.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r Range) Empty() bool {
	return r.From.IsZero() && r.To.IsZero()
}

func (r Range) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// Value holds whatever the filter's kind stores.
type Value struct {
	Text     string   `json:"text,omitempty"`
	Selected string   `json:"selected,omitempty"`
	Options  []string `json:"options,omitempty"`
	Range    *Range   `json:"range,omitempty"`
}

// Chip is an active filter as the dashboard displays it.
type Chip struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Kind   Kind   `json:"type"`
	Pinned bool   `json:"pinned"`
	Value  Value  `json:"value"`
}

// Set is the filter-set manager of one list view. It is not safe for
// concurrent use; the owning view serializes access.
type Set struct {
	descriptors []Descriptor
	byID        map[string]Descriptor
	active      []string
	values      map[string]Value
}

func NewSet(descriptors ...Descriptor) *Set {
	s := &Set{
		descriptors: descriptors,
		byID:        make(map[string]Descriptor, len(descriptors)),
		values:      make(map[string]Value, len(descriptors)),
	}
	for _, d := range descriptors {
		s.byID[d.ID] = d
	}
	s.Clear()
	return s
}

func (s *Set) Descriptors() []Descriptor {
	return slices.Clone(s.descriptors)
}

// Active returns the active filter ids in display order.
func (s *Set) Active() []string {
	return slices.Clone(s.active)
}

func (s *Set) IsActive(id string) bool {
	return slices.Contains(s.active, id)
}

// Remaining returns the filters that can still be added.
func (s *Set) Remaining() []Descriptor {
	out := []Descriptor{}
	for _, d := range s.descriptors {
		if !s.IsActive(d.ID) {
			out = append(out, d)
		}
	}
	return out
}

// Add appends id to the active set. It reports whether the set changed.
func (s *Set) Add(id string) (bool, error) {
	if _, ok := s.byID[id]; !ok {
		return false, appErrors.NewNotFound("filter", id)
	}
	if s.IsActive(id) {
		return false, nil
	}
	s.active = append(s.active, id)
	return true, nil
}

// Remove resets the filter's value and drops it from the active set unless
// it is pinned.
func (s *Set) Remove(id string) error {
	d, ok := s.byID[id]
	if !ok {
		return appErrors.NewNotFound("filter", id)
	}
	s.values[id] = initialValue(d)
	if d.Pinned {
		return nil
	}
	s.active = slices.DeleteFunc(s.active, func(a string) bool { return a == id })
	return nil
}

// Clear restores the pinned defaults and resets every value.
func (s *Set) Clear() {
	s.active = s.active[:0]
	for _, d := range s.descriptors {
		s.values[d.ID] = initialValue(d)
		if d.Pinned {
			s.active = append(s.active, d.ID)
		}
	}
}

func initialValue(d Descriptor) Value {
	if d.Kind == Select {
		return Value{Selected: d.Default}
	}
	return Value{}
}

func (s *Set) descriptor(id string, kinds ...Kind) (Descriptor, error) {
	d, ok := s.byID[id]
	if !ok {
		return d, appErrors.NewNotFound("filter", id)
	}
	if !slices.Contains(kinds, d.Kind) {
		return d, appErrors.NewValidation(id, fmt.Sprintf("filter %s is a %s filter", id, d.Kind))
	}
	return d, nil
}

// set stores v and activates the filter if it was not already showing.
func (s *Set) set(id string, v Value) {
	s.values[id] = v
	if !s.IsActive(id) {
		s.active = append(s.active, id)
	}
}

func (s *Set) SetText(id, text string) error {
	if _, err := s.descriptor(id, Text); err != nil {
		return err
	}
	s.set(id, Value{Text: text})
	return nil
}

func (s *Set) SetSelect(id, value string) error {
	d, err := s.descriptor(id, Select)
	if err != nil {
		return err
	}
	if value != "" && value != d.All && len(d.Options) > 0 && !hasOption(d, value) {
		return appErrors.NewValidation(id, fmt.Sprintf("unknown option %q for filter %s", value, id))
	}
	s.set(id, Value{Selected: value})
	return nil
}

// Toggle flips one option of a multi-select filter.
func (s *Set) Toggle(id, option string) error {
	if _, err := s.descriptor(id, MultiSelect); err != nil {
		return err
	}
	opts := slices.Clone(s.values[id].Options)
	if i := slices.Index(opts, option); i >= 0 {
		opts = slices.Delete(opts, i, i+1)
	} else {
		opts = append(opts, option)
	}
	s.set(id, Value{Options: opts})
	return nil
}

func (s *Set) SetOptions(id string, options []string) error {
	if _, err := s.descriptor(id, MultiSelect); err != nil {
		return err
	}
	s.set(id, Value{Options: dedupe(options)})
	return nil
}

func (s *Set) SetRange(id string, r Range) error {
	if _, err := s.descriptor(id, Date, DateRange); err != nil {
		return err
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return appErrors.NewValidation(id, "la fecha final es anterior a la inicial")
	}
	s.set(id, Value{Range: &r})
	return nil
}

// Text returns the query of an active text filter.
func (s *Set) Text(id string) string {
	if !s.IsActive(id) {
		return ""
	}
	return s.values[id].Text
}

// Selected returns the value of an active select filter, or "" when the
// filter is inactive or set to its "all" value.
func (s *Set) Selected(id string) string {
	if !s.IsActive(id) {
		return ""
	}
	v := s.values[id].Selected
	if v == s.byID[id].All {
		return ""
	}
	return v
}

func (s *Set) Options(id string) []string {
	if !s.IsActive(id) {
		return nil
	}
	return slices.Clone(s.values[id].Options)
}

func (s *Set) Range(id string) Range {
	if !s.IsActive(id) || s.values[id].Range == nil {
		return Range{}
	}
	return *s.values[id].Range
}

// Chips returns the active filters with their values, in display order.
func (s *Set) Chips() []Chip {
	chips := make([]Chip, 0, len(s.active))
	for _, id := range s.active {
		d := s.byID[id]
		chips = append(chips, Chip{ID: id, Label: d.Label, Kind: d.Kind, Pinned: d.Pinned, Value: s.values[id]})
	}
	return chips
}

func hasOption(d Descriptor, value string) bool {
	return slices.ContainsFunc(d.Options, func(o Option) bool { return o.Value == value })
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
