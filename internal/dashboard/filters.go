package dashboard

import (
	"time"

	appErrors "github.com/unclebandit/audience-crm/internal/errors"
	"github.com/unclebandit/audience-crm/internal/filter"
	"github.com/unclebandit/audience-crm/internal/wizard"
)

// Filters is the filter bar of a view.
type Filters struct {
	Active    []filter.Chip       `json:"active"`
	Available []filter.Descriptor `json:"available"`
}

// FilterUpdate sets the value of one filter. Exactly one of the value fields
// is expected; they are tried in declaration order.
type FilterUpdate struct {
	Text    *string  `json:"text,omitempty"`
	Value   *string  `json:"value,omitempty"`
	Toggle  *string  `json:"toggle,omitempty"`
	Options []string `json:"options,omitempty"`
	From    *string  `json:"from,omitempty"`
	To      *string  `json:"to,omitempty"`
}

// FilterEditor is implemented by every view with a filter bar.
type FilterEditor interface {
	AddFilter(id string) error
	RemoveFilter(id string) error
	ClearFilters()
	UpdateFilter(id string, u FilterUpdate) error
}

// filterable is embedded by views to share the filter bar operations.
type filterable struct {
	filters *filter.Set
	// onChange runs after every edit that altered the set.
	onChange func()
}

func (f *filterable) changed() {
	if f.onChange != nil {
		f.onChange()
	}
}

func (f *filterable) AddFilter(id string) error {
	added, err := f.filters.Add(id)
	if err != nil {
		return err
	}
	if added {
		f.changed()
	}
	return nil
}

func (f *filterable) RemoveFilter(id string) error {
	if err := f.filters.Remove(id); err != nil {
		return err
	}
	f.changed()
	return nil
}

func (f *filterable) ClearFilters() {
	f.filters.Clear()
	f.changed()
}

func (f *filterable) UpdateFilter(id string, u FilterUpdate) error {
	var err error
	switch {
	case u.Text != nil:
		err = f.filters.SetText(id, *u.Text)
	case u.Value != nil:
		err = f.filters.SetSelect(id, *u.Value)
	case u.Toggle != nil:
		err = f.filters.Toggle(id, *u.Toggle)
	case u.Options != nil:
		err = f.filters.SetOptions(id, u.Options)
	case u.From != nil || u.To != nil:
		var r filter.Range
		if r, err = parseRange(id, u.From, u.To); err == nil {
			err = f.filters.SetRange(id, r)
		}
	default:
		err = appErrors.NewValidation(id, "no filter value given")
	}
	if err != nil {
		return err
	}
	f.changed()
	return nil
}

func (f *filterable) filterState() Filters {
	return Filters{Active: f.filters.Chips(), Available: f.filters.Remaining()}
}

// parseRange accepts dates or RFC 3339 timestamps. Dates are days in the
// wizard's default timezone and a date-only upper bound covers the whole day.
func parseRange(id string, from, to *string) (filter.Range, error) {
	var r filter.Range
	var err error
	if from != nil && *from != "" {
		if r.From, _, err = parseBound(*from); err != nil {
			return r, appErrors.NewValidation(id, "la fecha inicial no es válida")
		}
	}
	if to != nil && *to != "" {
		var dateOnly bool
		if r.To, dateOnly, err = parseBound(*to); err != nil {
			return r, appErrors.NewValidation(id, "la fecha final no es válida")
		}
		if dateOnly {
			r.To = r.To.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return r, nil
}

func parseBound(s string) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(time.DateOnly, s, wizard.Location(wizard.DefaultTimezone)); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}
